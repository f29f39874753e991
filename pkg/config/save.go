package config

import (
	"path/filepath"

	"github.com/arthur-debert/openwith/pkg/errors"
	"github.com/arthur-debert/openwith/pkg/filesystem"
	toml "github.com/pelletier/go-toml/v2"
)

type fileTools struct {
	Timeout   string `toml:"timeout"`
	MaxOutput int    `toml:"max_output"`
}

type fileConfig struct {
	Settings Settings  `toml:"settings"`
	Tools    fileTools `toml:"tools"`
}

// Save writes cfg to path as TOML, creating the parent directory
func Save(fsys filesystem.FS, path string, cfg *Config) error {
	out := fileConfig{
		Settings: cfg.Settings,
		Tools: fileTools{
			Timeout:   cfg.Tools.Timeout.String(),
			MaxOutput: cfg.Tools.MaxOutput,
		},
	}

	data, err := toml.Marshal(out)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigSave, "failed to encode config")
	}

	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create config directory %s", dir).
			WithDetail("path", dir)
	}
	if err := fsys.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigSave, "failed to write config to %s", path).
			WithDetail("path", path)
	}
	return nil
}
