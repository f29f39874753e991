package xdgdb

import (
	"path/filepath"

	"github.com/arthur-debert/openwith/pkg/desktop"
	"github.com/arthur-debert/openwith/pkg/filesystem"
	"github.com/arthur-debert/openwith/pkg/keyfile"
	"github.com/arthur-debert/openwith/pkg/logging"
	"github.com/arthur-debert/openwith/pkg/paths"
)

const mimeCacheSection = "MIME Cache"

// IndexKind tells where a handler index came from
type IndexKind int

const (
	// KindMimeinfoCache is built from mimeinfo.cache files
	KindMimeinfoCache IndexKind = iota
	// KindFullScan is built by reading every desktop file
	KindFullScan
)

// Handler is one desktop id able to open a MIME type
type Handler struct {
	ID string
	// Source is the mimeinfo.cache file or the scanned desktop file
	Source string
}

// Index maps MIME types to handlers, in discovery order
type Index struct {
	Kind     IndexKind
	Handlers map[string][]Handler
}

// Empty reports whether the index holds no MIME types
func (i *Index) Empty() bool {
	return i == nil || len(i.Handlers) == 0
}

// Lookup returns the handlers recorded for mime
func (i *Index) Lookup(mime string) []Handler {
	if i == nil {
		return nil
	}
	return i.Handlers[mime]
}

// LoadMimeinfoCache parses the mimeinfo.cache file of every directory.
// Handlers from all files are appended; duplicates are kept.
func LoadMimeinfoCache(fsys filesystem.FS, dirs []string) *Index {
	logger := logging.GetLogger("xdgdb.mimeinfo")
	index := &Index{Kind: KindMimeinfoCache, Handlers: make(map[string][]Handler)}

	for _, dir := range dirs {
		path := filepath.Join(dir, paths.MimeinfoCacheName)
		if !filesystem.IsReadableFile(fsys, path) {
			continue
		}
		err := keyfile.ParseFile(fsys, path, func(section, mime, value string) {
			if section != mimeCacheSection {
				return
			}
			for _, id := range keyfile.SplitList(value, ';') {
				index.Handlers[mime] = append(index.Handlers[mime], Handler{ID: id, Source: path})
			}
		})
		if err != nil {
			logger.Debug().Err(err).Str("path", path).Msg("Skipping unreadable mimeinfo.cache")
		}
	}

	logger.Debug().Int("mimeTypes", len(index.Handlers)).Msg("Loaded mimeinfo.cache index")
	return index
}

// ScanDesktopFiles loads every desktop file in the store's directories and
// indexes it by its MimeType key. Loaded entries stay in the store.
func ScanDesktopFiles(store *desktop.Store) *Index {
	logger := logging.GetLogger("xdgdb.scan")
	index := &Index{Kind: KindFullScan, Handlers: make(map[string][]Handler)}

	loaded := 0
	for _, id := range store.ListIDs() {
		entry, ok := store.GetOrLoad(id)
		if !ok {
			continue
		}
		loaded++
		for _, mime := range entry.MimeTypes() {
			index.Handlers[mime] = append(index.Handlers[mime], Handler{ID: entry.ID, Source: entry.Path})
		}
	}

	logger.Debug().
		Int("entries", loaded).
		Int("mimeTypes", len(index.Handlers)).
		Msg("Built full scan index")
	return index
}
