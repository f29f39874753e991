package resolver

import (
	"github.com/arthur-debert/openwith/pkg/config"
)

// Setting is one boolean setting as shown to the user. Disabled settings
// depend on a tool that is not on PATH.
type Setting struct {
	Key         string `json:"key"`
	DisplayName string `json:"displayName"`
	Value       bool   `json:"value"`
	Disabled    bool   `json:"disabled"`
}

// GetPlatformSettings returns every setting in table order
func (p *Provider) GetPlatformSettings() []Setting {
	settings := make([]Setting, 0, len(config.Definitions))
	for _, d := range config.Definitions {
		settings = append(settings, Setting{
			Key:         d.Key,
			DisplayName: d.DisplayName,
			Value:       d.Get(&p.cfg.Settings),
			Disabled:    d.Tool != "" && !p.runner.LookPath(d.Tool),
		})
	}
	return settings
}

// SetPlatformSettings applies the values of settings. Unknown keys are
// ignored.
func (p *Provider) SetPlatformSettings(settings []Setting) {
	for _, s := range settings {
		if d, ok := config.Lookup(s.Key); ok {
			d.Set(&p.cfg.Settings, s.Value)
		}
	}
}

// Load replaces the configuration with the settings file as stored, read
// through the provider's filesystem. Environment overrides are not applied.
func (p *Provider) Load() error {
	cfg, err := config.LoadFile(p.fs, p.settingsPath())
	if err != nil {
		return err
	}
	p.cfg = cfg
	if !p.customRunner {
		p.runner = cfg.Tools.Runner()
	}
	return nil
}

// Save writes the configuration to disk
func (p *Provider) Save() error {
	path := p.settingsPath()
	if err := config.Save(p.fs, path, p.cfg); err != nil {
		return err
	}
	p.logger.Debug().Str("path", path).Msg("Saved settings")
	return nil
}

// Set changes one setting by key
func (p *Provider) Set(key string, value bool) error {
	return p.cfg.Set(key, value)
}
