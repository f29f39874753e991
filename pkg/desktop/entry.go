// Package desktop parses XDG desktop entries and keeps the per-call arena of
// loaded entries.
package desktop

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/openwith/pkg/execline"
	"github.com/arthur-debert/openwith/pkg/filesystem"
	"github.com/arthur-debert/openwith/pkg/keyfile"
)

const (
	mainSection     = "Desktop Entry"
	typeApplication = "Application"

	// Extension is the desktop entry file suffix
	Extension = ".desktop"
)

// Entry is a validated application entry. Analysis is computed once when the
// entry is parsed and never mutated afterwards.
type Entry struct {
	ID   string
	Path string

	Name        string
	GenericName string
	Comment     string
	Categories  string
	Exec        string
	TryExec     string
	Terminal    string
	MimeType    string
	OnlyShowIn  string
	NotShowIn   string

	Analysis execline.Analysis
}

// IsTerminal reports whether the application wants a terminal
func (e *Entry) IsTerminal() bool {
	return e.Terminal == "true"
}

// DisplayName is the key-file-unescaped Name
func (e *Entry) DisplayName() string {
	return keyfile.Unescape(e.Name)
}

// MimeTypes splits the MimeType key
func (e *Entry) MimeTypes() []string {
	return keyfile.SplitList(e.MimeType, ';')
}

// ShownIn applies OnlyShowIn and NotShowIn to the current desktops. Any
// matching component counts. An empty desktop list shows everything.
func (e *Entry) ShownIn(desktops []string) bool {
	if len(desktops) == 0 {
		return true
	}
	if e.OnlyShowIn != "" && !anyIn(desktops, keyfile.SplitList(e.OnlyShowIn, ';')) {
		return false
	}
	if e.NotShowIn != "" && anyIn(desktops, keyfile.SplitList(e.NotShowIn, ';')) {
		return false
	}
	return true
}

func anyIn(needles, haystack []string) bool {
	for _, n := range needles {
		for _, h := range haystack {
			if n == h {
				return true
			}
		}
	}
	return false
}

// Parse reads the [Desktop Entry] section of r. It returns false for hidden
// entries, non-applications and entries without Exec or Name.
func Parse(r io.Reader, path string, locales []string) (*Entry, bool) {
	kv := make(map[string]string)
	err := keyfile.Parse(r, func(section, key, value string) {
		if section == mainSection {
			kv[key] = value
		}
	})
	if err != nil {
		return nil, false
	}

	if kv["Type"] != typeApplication || kv["Hidden"] == "true" {
		return nil, false
	}

	entry := &Entry{
		ID:   filepath.Base(path),
		Path: path,
		Exec: kv["Exec"],
	}
	if entry.Exec == "" {
		return nil, false
	}
	entry.Name = localized(kv, "Name", locales)
	if entry.Name == "" {
		return nil, false
	}
	entry.GenericName = localized(kv, "GenericName", locales)
	entry.Comment = localized(kv, "Comment", locales)
	entry.Categories = kv["Categories"]
	entry.TryExec = kv["TryExec"]
	entry.Terminal = kv["Terminal"]
	entry.MimeType = kv["MimeType"]
	entry.OnlyShowIn = kv["OnlyShowIn"]
	entry.NotShowIn = kv["NotShowIn"]

	entry.Analysis = execline.Analyze(entry.Exec)
	return entry, true
}

// ParseFile opens and parses a desktop file on fsys
func ParseFile(fsys filesystem.FS, path string, locales []string) (*Entry, bool) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, false
	}
	defer func() { _ = f.Close() }()
	return Parse(f, path, locales)
}

func localized(kv map[string]string, key string, locales []string) string {
	for _, loc := range locales {
		if v, ok := kv[key+"["+loc+"]"]; ok {
			return v
		}
	}
	return kv[key]
}

// Locales returns the locale suffixes to try, most specific first, built from
// LC_ALL, LC_MESSAGES and LANG. The charset is dropped; for each variable
// lang_COUNTRY@MODIFIER, lang_COUNTRY, lang@MODIFIER and lang are tried.
func Locales() []string {
	var out []string
	seen := make(map[string]bool)
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		value := os.Getenv(name)
		if len(value) < 2 || value == "C" || value == "POSIX" {
			continue
		}

		modifier := ""
		if at := strings.IndexByte(value, '@'); at >= 0 {
			modifier = value[at+1:]
			value = value[:at]
		}
		if dot := strings.IndexByte(value, '.'); dot >= 0 {
			value = value[:dot]
		}
		if value == "" {
			continue
		}
		lang := value
		if us := strings.IndexByte(value, '_'); us >= 0 {
			lang = value[:us]
		}

		if modifier != "" {
			add(value + "@" + modifier)
		}
		add(value)
		if modifier != "" && lang != value {
			add(lang + "@" + modifier)
		}
		add(lang)
	}
	return out
}
