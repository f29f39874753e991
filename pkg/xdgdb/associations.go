// Package xdgdb loads the XDG association and MIME databases used by one
// resolution call: the mimeapps.list chain, mimeinfo.cache files, the
// shared MIME database (aliases, subclasses, package XML) and the full
// desktop-file scan index.
package xdgdb

import (
	"strings"

	"github.com/arthur-debert/openwith/pkg/filesystem"
	"github.com/arthur-debert/openwith/pkg/keyfile"
	"github.com/arthur-debert/openwith/pkg/logging"
)

// mimeapps.list sections
const (
	SectionDefault = "Default Applications"
	SectionAdded   = "Added Associations"
	SectionRemoved = "Removed Associations"
)

// Association is a desktop id together with the file that declared it
type Association struct {
	ID     string
	Source string
}

// Associations is the merged mimeapps.list chain
type Associations struct {
	Defaults map[string]Association
	Added    map[string][]Association
	Removed  map[string]map[string]bool
}

// NewAssociations returns an empty association set
func NewAssociations() *Associations {
	return &Associations{
		Defaults: make(map[string]Association),
		Added:    make(map[string][]Association),
		Removed:  make(map[string]map[string]bool),
	}
}

// LoadAssociations merges the mimeapps.list files, highest priority first.
//
// The first file naming a default for a MIME type wins. Added associations
// keep chain order and duplicates collapse onto the first occurrence.
// Removals accumulate, except that a file cannot remove an association that
// a higher-priority file added.
func LoadAssociations(fsys filesystem.FS, files []string) *Associations {
	logger := logging.GetLogger("xdgdb.mimeapps")
	assoc := NewAssociations()

	// (mime, id) -> index of the file that added it
	addedBy := make(map[string]int)

	for idx, path := range files {
		var removals [][2]string

		err := keyfile.ParseFile(fsys, path, func(section, mime, value string) {
			ids := keyfile.SplitList(value, ';')
			if len(ids) == 0 {
				return
			}
			switch section {
			case SectionDefault:
				if _, ok := assoc.Defaults[mime]; !ok {
					assoc.Defaults[mime] = Association{ID: ids[0], Source: path}
				}
			case SectionAdded:
				for _, id := range ids {
					key := mime + "\x00" + id
					if _, ok := addedBy[key]; ok {
						continue
					}
					addedBy[key] = idx
					assoc.Added[mime] = append(assoc.Added[mime], Association{ID: id, Source: path})
				}
			case SectionRemoved:
				for _, id := range ids {
					removals = append(removals, [2]string{mime, id})
				}
			}
		})
		if err != nil {
			logger.Debug().Err(err).Str("path", path).Msg("Skipping unreadable mimeapps.list")
			continue
		}

		for _, r := range removals {
			if by, ok := addedBy[r[0]+"\x00"+r[1]]; ok && by < idx {
				continue
			}
			if assoc.Removed[r[0]] == nil {
				assoc.Removed[r[0]] = make(map[string]bool)
			}
			assoc.Removed[r[0]][r[1]] = true
		}
	}

	logger.Debug().
		Int("files", len(files)).
		Int("defaults", len(assoc.Defaults)).
		Int("added", len(assoc.Added)).
		Int("removed", len(assoc.Removed)).
		Msg("Loaded mimeapps.list chain")
	return assoc
}

// IsRemoved reports whether id was removed for mime or for its major/* wildcard
func (a *Associations) IsRemoved(mime, id string) bool {
	if a.Removed[mime][id] {
		return true
	}
	if wildcard := Wildcard(mime); wildcard != "" && wildcard != mime {
		return a.Removed[wildcard][id]
	}
	return false
}

// MajorType returns the part before the slash, or "" when malformed
func MajorType(mime string) string {
	slash := strings.IndexByte(mime, '/')
	if slash <= 0 {
		return ""
	}
	return mime[:slash]
}

// Wildcard returns major/* for mime, or "" when malformed
func Wildcard(mime string) string {
	major := MajorType(mime)
	if major == "" {
		return ""
	}
	return major + "/*"
}
