package config

import (
	_ "embed"
	stderrors "errors"
	"io/fs"
	"os"
	"strings"

	"github.com/arthur-debert/openwith/pkg/errors"
	"github.com/arthur-debert/openwith/pkg/filesystem"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix namespaces the environment overrides
const EnvPrefix = "OPENWITH_"

//go:embed embedded/defaults.toml
var defaultConfig []byte

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Default returns the built-in configuration
func Default() *Config {
	cfg, err := LoadWithOverrides("", nil)
	if err != nil {
		// the embedded file is part of the binary
		panic(err)
	}
	return cfg
}

// Load reads the configuration from the user file at path (missing is fine)
// layered over the defaults and under the environment
func Load(path string) (*Config, error) {
	return LoadWithOverrides(path, nil)
}

// LoadWithOverrides is Load with a final layer of dotted keys such as
// "settings.use_file_tool". An empty path skips the user file and the
// environment.
func LoadWithOverrides(path string, overrides map[string]interface{}) (*Config, error) {
	k, err := withDefaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		// 2. User file, if it exists
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
					WithDetail("path", path)
			}
		} else if !stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to stat config file %s", path).
				WithDetail("path", path)
		}

		// 3. Environment
		if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
		}
	}

	// 4. Overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	return unmarshal(k)
}

// LoadFile reads only the user file at path through fsys, over the
// defaults. The environment and overrides are left out so that a
// load-modify-save cycle writes back nothing but what the file held.
func LoadFile(fsys filesystem.FS, path string) (*Config, error) {
	k, err := withDefaults()
	if err != nil {
		return nil, err
	}

	data, err := fsys.ReadFile(path)
	switch {
	case err == nil:
		if err := k.Load(&rawBytesProvider{bytes: data}, toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
				WithDetail("path", path)
		}
	case !stderrors.Is(err, fs.ErrNotExist):
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read config file %s", path).
			WithDetail("path", path)
	}

	return unmarshal(k)
}

// withDefaults returns a koanf instance holding the embedded defaults
func withDefaults() (*koanf.Koanf, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load default config")
	}
	return k, nil
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

// envKey maps OPENWITH_SETTINGS_USE_FILE_TOOL to settings.use_file_tool.
// Only the first underscore separates the section from the key.
func envKey(s string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
}
