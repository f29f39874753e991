package config

import (
	"github.com/arthur-debert/openwith/pkg/errors"
	"github.com/arthur-debert/openwith/pkg/toolrun"
)

// Definition describes one boolean setting. Tool names the external tool the
// setting depends on, if any.
type Definition struct {
	Key         string
	DisplayName string
	Tool        string
	Default     bool

	get func(*Settings) bool
	set func(*Settings, bool)
}

// Get reads the setting from s
func (d Definition) Get(s *Settings) bool { return d.get(s) }

// Set writes the setting into s
func (d Definition) Set(s *Settings, v bool) { d.set(s, v) }

// Definitions is the ordered settings table
var Definitions = []Definition{
	{
		Key: "UseXdgMimeTool", DisplayName: "Use xdg-mime tool", Tool: toolrun.XdgMime, Default: true,
		get: func(s *Settings) bool { return s.UseXdgMimeTool },
		set: func(s *Settings, v bool) { s.UseXdgMimeTool = v },
	},
	{
		Key: "UseFileTool", DisplayName: "Use file tool", Tool: toolrun.File, Default: true,
		get: func(s *Settings) bool { return s.UseFileTool },
		set: func(s *Settings, v bool) { s.UseFileTool = v },
	},
	{
		Key: "UseMagikaTool", DisplayName: "Use magika tool", Tool: toolrun.Magika, Default: false,
		get: func(s *Settings) bool { return s.UseMagikaTool },
		set: func(s *Settings, v bool) { s.UseMagikaTool = v },
	},
	{
		Key: "UseBuiltinSniffer", DisplayName: "Use built-in content sniffer", Default: true,
		get: func(s *Settings) bool { return s.UseBuiltinSniffer },
		set: func(s *Settings, v bool) { s.UseBuiltinSniffer = v },
	},
	{
		Key: "UseExtensionBasedFallback", DisplayName: "Guess type from file extension", Default: false,
		get: func(s *Settings) bool { return s.UseExtensionBasedFallback },
		set: func(s *Settings, v bool) { s.UseExtensionBasedFallback = v },
	},
	{
		Key: "LoadMimeTypeAliases", DisplayName: "Load MIME type aliases", Default: true,
		get: func(s *Settings) bool { return s.LoadMimeTypeAliases },
		set: func(s *Settings, v bool) { s.LoadMimeTypeAliases = v },
	},
	{
		Key: "LoadMimeTypeSubclasses", DisplayName: "Load MIME type subclasses", Default: true,
		get: func(s *Settings) bool { return s.LoadMimeTypeSubclasses },
		set: func(s *Settings, v bool) { s.LoadMimeTypeSubclasses = v },
	},
	{
		Key: "LoadMimePackages", DisplayName: "Load MIME package definitions", Default: false,
		get: func(s *Settings) bool { return s.LoadMimePackages },
		set: func(s *Settings, v bool) { s.LoadMimePackages = v },
	},
	{
		Key: "ResolveStructuredSuffixes", DisplayName: "Resolve +xml/+zip/+json/+gzip suffixes", Default: true,
		get: func(s *Settings) bool { return s.ResolveStructuredSuffixes },
		set: func(s *Settings, v bool) { s.ResolveStructuredSuffixes = v },
	},
	{
		Key: "UseGenericMimeFallbacks", DisplayName: "Fall back to text/plain and major/*", Default: true,
		get: func(s *Settings) bool { return s.UseGenericMimeFallbacks },
		set: func(s *Settings, v bool) { s.UseGenericMimeFallbacks = v },
	},
	{
		Key: "ShowUniversalHandlers", DisplayName: "Show application/octet-stream handlers", Default: true,
		get: func(s *Settings) bool { return s.ShowUniversalHandlers },
		set: func(s *Settings, v bool) { s.ShowUniversalHandlers = v },
	},
	{
		Key: "UseMimeinfoCache", DisplayName: "Use mimeinfo.cache", Default: true,
		get: func(s *Settings) bool { return s.UseMimeinfoCache },
		set: func(s *Settings, v bool) { s.UseMimeinfoCache = v },
	},
	{
		Key: "FilterByShowIn", DisplayName: "Honor OnlyShowIn/NotShowIn", Default: false,
		get: func(s *Settings) bool { return s.FilterByShowIn },
		set: func(s *Settings, v bool) { s.FilterByShowIn = v },
	},
	{
		Key: "ValidateTryExec", DisplayName: "Hide apps whose TryExec is missing", Default: false,
		get: func(s *Settings) bool { return s.ValidateTryExec },
		set: func(s *Settings, v bool) { s.ValidateTryExec = v },
	},
	{
		Key: "SortAlphabetically", DisplayName: "Sort candidates alphabetically", Default: false,
		get: func(s *Settings) bool { return s.SortAlphabetically },
		set: func(s *Settings, v bool) { s.SortAlphabetically = v },
	},
	{
		Key: "TreatUrlsAsPaths", DisplayName: "Pass paths for %u/%U", Default: false,
		get: func(s *Settings) bool { return s.TreatUrlsAsPaths },
		set: func(s *Settings, v bool) { s.TreatUrlsAsPaths = v },
	},
}

// Lookup finds a definition by key
func Lookup(key string) (Definition, bool) {
	for _, d := range Definitions {
		if d.Key == key {
			return d, true
		}
	}
	return Definition{}, false
}

// Get reads a setting by key
func (c *Config) Get(key string) (bool, error) {
	d, ok := Lookup(key)
	if !ok {
		return false, errors.Newf(errors.ErrUnknownSetting, "unknown setting %q", key).WithDetail("key", key)
	}
	return d.Get(&c.Settings), nil
}

// Set writes a setting by key
func (c *Config) Set(key string, value bool) error {
	d, ok := Lookup(key)
	if !ok {
		return errors.Newf(errors.ErrUnknownSetting, "unknown setting %q", key).WithDetail("key", key)
	}
	d.Set(&c.Settings, value)
	return nil
}
