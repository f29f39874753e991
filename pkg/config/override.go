package config

import (
	"strings"
	"unicode"

	"github.com/arthur-debert/openwith/pkg/errors"
)

// ParseOverride splits a KEY=VALUE pair into a koanf path and its raw value.
// KEY is either a setting key such as UseFileTool or a dotted path such as
// tools.timeout.
func ParseOverride(s string) (string, string, error) {
	key, value, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", errors.Newf(errors.ErrInvalidInput, "override %q is not KEY=VALUE", s)
	}
	value = strings.TrimSpace(value)

	if d, ok := Lookup(key); ok {
		return d.Path(), value, nil
	}
	if strings.Contains(key, ".") {
		return strings.ToLower(key), value, nil
	}
	return "", "", errors.Newf(errors.ErrUnknownSetting, "unknown setting %q", key).
		WithDetail("key", key)
}

// ParseOverrides turns a list of KEY=VALUE pairs into a LoadWithOverrides map
func ParseOverrides(pairs []string) (map[string]interface{}, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	overrides := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		path, value, err := ParseOverride(pair)
		if err != nil {
			return nil, err
		}
		overrides[path] = value
	}
	return overrides, nil
}

// Path is the koanf path of the setting, e.g. settings.use_file_tool
func (d Definition) Path() string {
	var b strings.Builder
	b.WriteString("settings.")
	for i, r := range d.Key {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
