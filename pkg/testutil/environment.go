// pkg/testutil/environment.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Build isolated XDG directory trees for integration tests

package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// XDGEnv is a temporary XDG layout with one system data dir and one system
// config dir
type XDGEnv struct {
	Root       string
	Home       string
	DataHome   string
	ConfigHome string
	StateHome  string
	SysData    string
	SysConfig  string
	FilesDir   string

	t *testing.T
}

// NewXDGEnv creates the tree and points the XDG variables at it. Locale and
// desktop variables are cleared so tests start from a neutral environment.
func NewXDGEnv(t *testing.T) *XDGEnv {
	t.Helper()

	root := t.TempDir()
	env := &XDGEnv{
		Root:       root,
		Home:       filepath.Join(root, "home"),
		DataHome:   filepath.Join(root, "home", ".local", "share"),
		ConfigHome: filepath.Join(root, "home", ".config"),
		StateHome:  filepath.Join(root, "home", ".local", "state"),
		SysData:    filepath.Join(root, "usr", "share"),
		SysConfig:  filepath.Join(root, "etc", "xdg"),
		FilesDir:   filepath.Join(root, "files"),
		t:          t,
	}

	for _, dir := range []string{
		env.DataHome, env.ConfigHome, env.StateHome, env.SysConfig, env.FilesDir,
		filepath.Join(env.SysData, "applications"),
		filepath.Join(env.SysData, "mime"),
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	t.Setenv("HOME", env.Home)
	t.Setenv("XDG_DATA_HOME", env.DataHome)
	t.Setenv("XDG_CONFIG_HOME", env.ConfigHome)
	t.Setenv("XDG_STATE_HOME", env.StateHome)
	t.Setenv("XDG_DATA_DIRS", env.SysData)
	t.Setenv("XDG_CONFIG_DIRS", env.SysConfig)
	t.Setenv("XDG_CURRENT_DESKTOP", "")
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "")

	return env
}

// AppsDir is the system applications directory
func (e *XDGEnv) AppsDir() string {
	return filepath.Join(e.SysData, "applications")
}

// UserAppsDir is the user applications directory
func (e *XDGEnv) UserAppsDir() string {
	return filepath.Join(e.DataHome, "applications")
}

// WriteFile writes content to path, creating parent directories
func (e *XDGEnv) WriteFile(path, content string) string {
	e.t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.t.Fatalf("Failed to create parent of %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// AddDesktopEntry writes a .desktop file into the system applications dir
func (e *XDGEnv) AddDesktopEntry(id, content string) string {
	e.t.Helper()
	return e.WriteFile(filepath.Join(e.AppsDir(), id), content)
}

// AddUserDesktopEntry writes a .desktop file into the user applications dir
func (e *XDGEnv) AddUserDesktopEntry(id, content string) string {
	e.t.Helper()
	return e.WriteFile(filepath.Join(e.UserAppsDir(), id), content)
}

// WriteMimeapps writes the user mimeapps.list
func (e *XDGEnv) WriteMimeapps(content string) string {
	e.t.Helper()
	return e.WriteFile(filepath.Join(e.ConfigHome, "mimeapps.list"), content)
}

// WriteMimeinfoCache writes the system mimeinfo.cache
func (e *XDGEnv) WriteMimeinfoCache(content string) string {
	e.t.Helper()
	return e.WriteFile(filepath.Join(e.AppsDir(), "mimeinfo.cache"), content)
}

// WriteMimeDB writes a file (aliases, subclasses, packages/x.xml) into the system MIME dir
func (e *XDGEnv) WriteMimeDB(name, content string) string {
	e.t.Helper()
	return e.WriteFile(filepath.Join(e.SysData, "mime", name), content)
}

// CreateFile writes a plain file under FilesDir and returns its absolute path
func (e *XDGEnv) CreateFile(name, content string) string {
	e.t.Helper()
	return e.WriteFile(filepath.Join(e.FilesDir, name), content)
}

// DesktopEntry renders a minimal application entry. extra lines are appended
// verbatim inside the [Desktop Entry] section.
func DesktopEntry(name, exec, mimeTypes string, extra ...string) string {
	var b strings.Builder
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=Application\n")
	b.WriteString("Name=" + name + "\n")
	b.WriteString("Exec=" + exec + "\n")
	if mimeTypes != "" {
		b.WriteString("MimeType=" + mimeTypes + "\n")
	}
	for _, line := range extra {
		b.WriteString(line + "\n")
	}
	return b.String()
}
