package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/openwith/pkg/filesystem"
)

// Environment variable names
const (
	EnvCurrentDesktop = "XDG_CURRENT_DESKTOP"
	EnvHome           = "HOME"
)

const (
	// AppDirName is the directory name for openwith-specific files
	AppDirName = "openwith"

	// ConfigFileName is the user settings file inside the config dir
	ConfigFileName = "config.toml"

	// MimeappsListName is the association override file name
	MimeappsListName = "mimeapps.list"

	// MimeinfoCacheName is the prebuilt mime -> handlers cache file name
	MimeinfoCacheName = "mimeinfo.cache"
)

// SystemExportDirs are the system-wide flatpak and snap application
// directories searched after the XDG data dirs
var SystemExportDirs = []string{
	"/var/lib/flatpak/exports/share/applications",
	"/var/lib/snapd/desktop/applications",
}

// Paths is a snapshot of the XDG base directories
type Paths struct {
	fs         filesystem.FS
	home       string
	dataHome   string
	configHome string
	dataDirs   []string
	configDirs []string
}

// New snapshots the XDG base directories from the current environment
func New(fsys filesystem.FS) *Paths {
	xdg.Reload()

	home := os.Getenv(EnvHome)
	if home == "" {
		home = xdg.Home
	}

	return &Paths{
		fs:         fsys,
		home:       home,
		dataHome:   absOr(xdg.DataHome, filepath.Join(home, ".local", "share")),
		configHome: absOr(xdg.ConfigHome, filepath.Join(home, ".config")),
		dataDirs:   absOnly(xdg.DataDirs),
		configDirs: absOnly(xdg.ConfigDirs),
	}
}

// DesktopFileDirs returns the existing, traversable application directories
func (p *Paths) DesktopFileDirs() []string {
	var candidates []string
	candidates = append(candidates, filepath.Join(p.dataHome, "applications"))
	for _, dir := range p.dataDirs {
		candidates = append(candidates, filepath.Join(dir, "applications"))
	}
	if p.home != "" {
		candidates = append(candidates, filepath.Join(p.home, ".local", "share", "flatpak", "exports", "share", "applications"))
	}
	candidates = append(candidates, SystemExportDirs...)

	return p.uniqueDirs(candidates)
}

// MimeappsListFiles returns the readable mimeapps.list files, highest priority first.
// desktops are the XDG_CURRENT_DESKTOP components; they are lower-cased here.
func (p *Paths) MimeappsListFiles(desktops []string) []string {
	var dirs []string
	dirs = append(dirs, p.configHome)
	dirs = append(dirs, p.configDirs...)
	dirs = append(dirs, filepath.Join(p.dataHome, "applications"))
	for _, dir := range p.dataDirs {
		dirs = append(dirs, filepath.Join(dir, "applications"))
	}

	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		if seen[path] {
			return
		}
		seen[path] = true
		if filesystem.IsReadableFile(p.fs, path) {
			files = append(files, path)
		}
	}

	for _, dir := range dirs {
		for _, desktop := range desktops {
			add(filepath.Join(dir, strings.ToLower(desktop)+"-"+MimeappsListName))
		}
		add(filepath.Join(dir, MimeappsListName))
	}
	return files
}

// MimeDatabaseDirs returns the shared MIME database directories
func (p *Paths) MimeDatabaseDirs() []string {
	var candidates []string
	candidates = append(candidates, filepath.Join(p.dataHome, "mime"))
	for _, dir := range p.dataDirs {
		candidates = append(candidates, filepath.Join(dir, "mime"))
	}
	return p.uniqueDirs(candidates)
}

// ConfigFile returns the path of the openwith settings file
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.configHome, AppDirName, ConfigFileName)
}

// CurrentDesktops returns the XDG_CURRENT_DESKTOP components, in order
func CurrentDesktops() []string {
	var desktops []string
	for _, d := range strings.Split(os.Getenv(EnvCurrentDesktop), ":") {
		if d = strings.TrimSpace(d); d != "" {
			desktops = append(desktops, d)
		}
	}
	return desktops
}

func (p *Paths) uniqueDirs(candidates []string) []string {
	var dirs []string
	seen := make(map[string]bool)
	for _, dir := range candidates {
		if dir == "" || seen[dir] {
			continue
		}
		seen[dir] = true
		if filesystem.IsTraversableDir(p.fs, dir) {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

func absOr(path, fallback string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return fallback
}

func absOnly(dirs []string) []string {
	var out []string
	for _, dir := range dirs {
		if filepath.IsAbs(dir) {
			out = append(out, filepath.Clean(dir))
		}
	}
	return out
}
