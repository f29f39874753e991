package xdgdb

import (
	"bufio"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/openwith/pkg/filesystem"
	"github.com/arthur-debert/openwith/pkg/logging"
)

// MimeDB holds the parts of the shared MIME database used for expansion.
// A nil map means the corresponding source was disabled.
type MimeDB struct {
	// Aliases maps alias -> canonical type
	Aliases map[string]string
	// Reverse maps canonical -> aliases sharing its major type, in file order
	Reverse map[string][]string
	// Subclasses maps child -> parent type
	Subclasses map[string]string
	// Globs maps a lower-cased ".ext" to a type, from package XML files
	Globs map[string]string
}

// LoadOptions selects which MIME database sources are read
type LoadOptions struct {
	Aliases    bool
	Subclasses bool
	Packages   bool
}

// LoadMimeDB reads the MIME database directories, highest priority first.
// Package XML files contribute at lower priority than the compiled
// aliases and subclasses files.
func LoadMimeDB(fsys filesystem.FS, dirs []string, opts LoadOptions) *MimeDB {
	logger := logging.GetLogger("xdgdb.mimedb")
	db := &MimeDB{}

	var pkg *packageData
	if opts.Packages {
		pkg = loadPackages(fsys, dirs)
		db.Globs = pkg.globs
	}

	if opts.Aliases {
		db.Aliases = make(map[string]string)
		var order []string
		for _, dir := range dirs {
			readColumns(fsys, filepath.Join(dir, "aliases"), func(alias, canonical string) {
				if _, ok := db.Aliases[alias]; !ok {
					db.Aliases[alias] = canonical
					order = append(order, alias)
				}
			})
		}
		if pkg != nil {
			for _, p := range pkg.aliases {
				if _, ok := db.Aliases[p[0]]; !ok {
					db.Aliases[p[0]] = p[1]
					order = append(order, p[0])
				}
			}
		}
		db.Reverse = reverseAliases(db.Aliases, order)
	}

	if opts.Subclasses {
		db.Subclasses = make(map[string]string)
		if pkg != nil {
			for _, p := range pkg.subclasses {
				db.Subclasses[p[0]] = p[1]
			}
		}
		for i := len(dirs) - 1; i >= 0; i-- {
			readColumns(fsys, filepath.Join(dirs[i], "subclasses"), func(child, parent string) {
				db.Subclasses[child] = parent
			})
		}
	}

	logger.Debug().
		Int("aliases", len(db.Aliases)).
		Int("subclasses", len(db.Subclasses)).
		Int("globs", len(db.Globs)).
		Msg("Loaded MIME database")
	return db
}

// reverseAliases keeps only aliases whose major type matches the canonical
// one, so text/ico never expands from image/vnd.microsoft.icon
func reverseAliases(aliases map[string]string, order []string) map[string][]string {
	reverse := make(map[string][]string)
	for _, alias := range order {
		canonical := aliases[alias]
		major := MajorType(alias)
		if major != "" && major == MajorType(canonical) {
			reverse[canonical] = append(reverse[canonical], alias)
		}
	}
	return reverse
}

// readColumns feeds the first two whitespace-separated columns of each line
func readColumns(fsys filesystem.FS, path string, visit func(a, b string)) {
	f, err := fsys.Open(path)
	if err != nil {
		return
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		visit(fields[0], fields[1])
	}
}
