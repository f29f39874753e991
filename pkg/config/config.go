package config

import (
	"time"

	"github.com/arthur-debert/openwith/pkg/detect"
	"github.com/arthur-debert/openwith/pkg/mimetype"
	"github.com/arthur-debert/openwith/pkg/toolrun"
	"github.com/arthur-debert/openwith/pkg/xdgdb"
)

// Config is the complete openwith configuration
type Config struct {
	Settings Settings `koanf:"settings"`
	Tools    Tools    `koanf:"tools"`
}

// Settings are the user-facing resolution toggles
type Settings struct {
	UseXdgMimeTool            bool `koanf:"use_xdg_mime_tool" toml:"use_xdg_mime_tool"`
	UseFileTool               bool `koanf:"use_file_tool" toml:"use_file_tool"`
	UseMagikaTool             bool `koanf:"use_magika_tool" toml:"use_magika_tool"`
	UseBuiltinSniffer         bool `koanf:"use_builtin_sniffer" toml:"use_builtin_sniffer"`
	UseExtensionBasedFallback bool `koanf:"use_extension_based_fallback" toml:"use_extension_based_fallback"`
	LoadMimeTypeAliases       bool `koanf:"load_mime_type_aliases" toml:"load_mime_type_aliases"`
	LoadMimeTypeSubclasses    bool `koanf:"load_mime_type_subclasses" toml:"load_mime_type_subclasses"`
	LoadMimePackages          bool `koanf:"load_mime_packages" toml:"load_mime_packages"`
	ResolveStructuredSuffixes bool `koanf:"resolve_structured_suffixes" toml:"resolve_structured_suffixes"`
	UseGenericMimeFallbacks   bool `koanf:"use_generic_mime_fallbacks" toml:"use_generic_mime_fallbacks"`
	ShowUniversalHandlers     bool `koanf:"show_universal_handlers" toml:"show_universal_handlers"`
	UseMimeinfoCache          bool `koanf:"use_mimeinfo_cache" toml:"use_mimeinfo_cache"`
	FilterByShowIn            bool `koanf:"filter_by_show_in" toml:"filter_by_show_in"`
	ValidateTryExec           bool `koanf:"validate_try_exec" toml:"validate_try_exec"`
	SortAlphabetically        bool `koanf:"sort_alphabetically" toml:"sort_alphabetically"`
	TreatUrlsAsPaths          bool `koanf:"treat_urls_as_paths" toml:"treat_urls_as_paths"`
}

// Tools bounds every external query tool invocation
type Tools struct {
	Timeout   time.Duration `koanf:"timeout"`
	MaxOutput int           `koanf:"max_output"`
}

// DetectOptions projects the detector toggles
func (s Settings) DetectOptions() detect.Options {
	return detect.Options{
		UseXdgMimeTool:            s.UseXdgMimeTool,
		UseFileTool:               s.UseFileTool,
		UseMagikaTool:             s.UseMagikaTool,
		UseBuiltinSniffer:         s.UseBuiltinSniffer,
		UseExtensionBasedFallback: s.UseExtensionBasedFallback,
	}
}

// ExpandOptions projects the MIME expansion toggles
func (s Settings) ExpandOptions() mimetype.Options {
	return mimetype.Options{
		ResolveStructuredSuffixes: s.ResolveStructuredSuffixes,
		UseGenericFallbacks:       s.UseGenericMimeFallbacks,
		ShowUniversalHandlers:     s.ShowUniversalHandlers,
	}
}

// MimeDBOptions projects the shared-mime-info loading toggles
func (s Settings) MimeDBOptions() xdgdb.LoadOptions {
	return xdgdb.LoadOptions{
		Aliases:    s.LoadMimeTypeAliases,
		Subclasses: s.LoadMimeTypeSubclasses,
		Packages:   s.LoadMimePackages,
	}
}

// Runner builds the subprocess runner for the tool limits
func (t Tools) Runner() *toolrun.Exec {
	return toolrun.New(t.Timeout, t.MaxOutput)
}
