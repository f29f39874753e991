// pkg/config/config_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: t.TempDir, t.Setenv
// PURPOSE: Verify layered loading, saving and the settings table

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/openwith/pkg/errors"
	"github.com/arthur-debert/openwith/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_MatchesDefinitions(t *testing.T) {
	cfg := Default()

	assert.Len(t, Definitions, 16)
	for _, d := range Definitions {
		assert.Equal(t, d.Default, d.Get(&cfg.Settings), d.Key)
	}
	assert.Equal(t, 2*time.Second, cfg.Tools.Timeout)
	assert.Equal(t, 65536, cfg.Tools.MaxOutput)
}

func TestDefinitions_UniqueKeysAndRoundTrip(t *testing.T) {
	seen := map[string]bool{}
	for _, d := range Definitions {
		assert.False(t, seen[d.Key], "duplicate key %s", d.Key)
		seen[d.Key] = true

		var s Settings
		d.Set(&s, true)
		assert.True(t, d.Get(&s), d.Key)

		on := 0
		for _, other := range Definitions {
			if other.Get(&s) {
				on++
			}
		}
		assert.Equal(t, 1, on, "%s touches only its own field", d.Key)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Layering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[settings]
use_file_tool = false
sort_alphabetically = true

[tools]
timeout = "500ms"
`), 0644))

	t.Setenv("OPENWITH_SETTINGS_USE_MAGIKA_TOOL", "true")
	t.Setenv("OPENWITH_SETTINGS_SORT_ALPHABETICALLY", "false")
	t.Setenv("OPENWITH_TOOLS_MAX_OUTPUT", "1024")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.Settings.UseFileTool, "user file")
	assert.True(t, cfg.Settings.UseXdgMimeTool, "default")
	assert.True(t, cfg.Settings.UseMagikaTool, "env")
	assert.False(t, cfg.Settings.SortAlphabetically, "env beats user file")
	assert.Equal(t, 500*time.Millisecond, cfg.Tools.Timeout)
	assert.Equal(t, 1024, cfg.Tools.MaxOutput)
}

func TestLoadWithOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[settings]\nvalidate_try_exec = false\n"), 0644))

	cfg, err := LoadWithOverrides(path, map[string]interface{}{
		"settings.validate_try_exec": true,
		"tools.timeout":              "5s",
	})
	require.NoError(t, err)
	assert.True(t, cfg.Settings.ValidateTryExec)
	assert.Equal(t, 5*time.Second, cfg.Tools.Timeout)
}

func TestLoad_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[settings\nuse_file_tool = "), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestLoadFile_SkipsEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[settings]\nsort_alphabetically = true\n"), 0644))
	t.Setenv("OPENWITH_SETTINGS_USE_FILE_TOOL", "false")

	layered, err := Load(path)
	require.NoError(t, err)
	assert.False(t, layered.Settings.UseFileTool)

	stored, err := LoadFile(filesystem.NewOS(), path)
	require.NoError(t, err)
	assert.True(t, stored.Settings.UseFileTool, "env is not part of the stored file")
	assert.True(t, stored.Settings.SortAlphabetically)
}

func TestLoadFile_MemoryFS(t *testing.T) {
	fsys := filesystem.NewMemory()

	cfg, err := LoadFile(fsys, "/conf/openwith/config.toml")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg, "missing file gives defaults")

	require.NoError(t, cfg.Set("TreatUrlsAsPaths", true))
	require.NoError(t, Save(fsys, "/conf/openwith/config.toml", cfg))

	loaded, err := LoadFile(fsys, "/conf/openwith/config.toml")
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	require.NoError(t, fsys.WriteFile("/conf/broken.toml", []byte("[settings"), 0644))
	_, err = LoadFile(fsys, "/conf/broken.toml")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "openwith", "config.toml")

	cfg := Default()
	require.NoError(t, cfg.Set("ShowUniversalHandlers", false))
	require.NoError(t, cfg.Set("FilterByShowIn", true))
	cfg.Tools.Timeout = 750 * time.Millisecond

	require.NoError(t, Save(filesystem.NewOS(), path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "show_universal_handlers = false")
	assert.Contains(t, string(data), "750ms")
}

func TestGetSet_UnknownKey(t *testing.T) {
	cfg := Default()

	_, err := cfg.Get("NoSuchSetting")
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownSetting))
	assert.True(t, errors.IsErrorCode(cfg.Set("NoSuchSetting", true), errors.ErrUnknownSetting))

	v, err := cfg.Get("UseXdgMimeTool")
	require.NoError(t, err)
	assert.True(t, v)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "settings.use_file_tool", envKey("OPENWITH_SETTINGS_USE_FILE_TOOL"))
	assert.Equal(t, "tools.max_output", envKey("OPENWITH_TOOLS_MAX_OUTPUT"))
}
