package desktop

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/openwith/pkg/filesystem"
	"github.com/arthur-debert/openwith/pkg/logging"
	"github.com/rs/zerolog"
)

// Store is the arena of entries loaded during one resolution call. Entries
// are addressed by desktop id; a nil slot is the cached "not found" result.
// A Store is not safe for concurrent use.
type Store struct {
	fs      filesystem.FS
	dirs    []string
	locales []string
	entries map[string]*Entry
	logger  zerolog.Logger
}

// NewStore creates an empty store searching dirs in priority order
func NewStore(fsys filesystem.FS, dirs []string, locales []string) *Store {
	return &Store{
		fs:      fsys,
		dirs:    dirs,
		locales: locales,
		entries: make(map[string]*Entry),
		logger:  logging.GetLogger("desktop.store"),
	}
}

// GetOrLoad returns the entry for id, parsing it on first use. The first
// directory holding the file decides: a hidden or invalid user entry masks
// the system one.
func (s *Store) GetOrLoad(id string) (*Entry, bool) {
	if entry, ok := s.entries[id]; ok {
		return entry, entry != nil
	}
	if id == "" || strings.ContainsRune(id, '/') {
		s.entries[id] = nil
		return nil, false
	}

	var found *Entry
	for _, dir := range s.dirs {
		path := filepath.Join(dir, id)
		if !filesystem.IsReadableFile(s.fs, path) {
			continue
		}
		if entry, ok := ParseFile(s.fs, path, s.locales); ok {
			found = entry
		} else {
			s.logger.Trace().Str("path", path).Msg("Rejected desktop entry")
		}
		break
	}

	s.entries[id] = found
	return found, found != nil
}

// Get returns an already loaded entry without touching the filesystem
func (s *Store) Get(id string) (*Entry, bool) {
	entry := s.entries[id]
	return entry, entry != nil
}

// ListIDs returns the desktop ids found in the search directories, in
// directory priority order and sorted by name within each directory.
func (s *Store) ListIDs() []string {
	var ids []string
	seen := make(map[string]bool)
	for _, dir := range s.dirs {
		dirEntries, err := s.fs.ReadDir(dir)
		if err != nil {
			continue
		}
		names := make([]string, 0, len(dirEntries))
		for _, de := range dirEntries {
			name := de.Name()
			if len(name) <= len(Extension) || !strings.HasSuffix(name, Extension) {
				continue
			}
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if !seen[name] {
				seen[name] = true
				ids = append(ids, name)
			}
		}
	}
	return ids
}

// Len is the number of slots, including cached misses
func (s *Store) Len() int {
	return len(s.entries)
}
