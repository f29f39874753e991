package xdgdb

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/openwith/pkg/filesystem"
	"github.com/arthur-debert/openwith/pkg/logging"
	"github.com/beevik/etree"
)

// packageData is what the uncompiled shared-mime-info XML contributes
type packageData struct {
	aliases    [][2]string
	subclasses [][2]string
	globs      map[string]string
}

// loadPackages reads <dir>/packages/*.xml in directory priority order
func loadPackages(fsys filesystem.FS, dirs []string) *packageData {
	logger := logging.GetLogger("xdgdb.packages")
	data := &packageData{globs: make(map[string]string)}
	seenAlias := make(map[string]bool)
	seenChild := make(map[string]bool)

	for _, dir := range dirs {
		pkgDir := filepath.Join(dir, "packages")
		entries, err := fsys.ReadDir(pkgDir)
		if err != nil {
			continue
		}
		var names []string
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ".xml") {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)

		for _, name := range names {
			path := filepath.Join(pkgDir, name)
			doc, err := readXML(fsys, path)
			if err != nil {
				logger.Debug().Err(err).Str("path", path).Msg("Skipping malformed MIME package")
				continue
			}
			root := doc.SelectElement("mime-info")
			if root == nil {
				continue
			}
			for _, mt := range root.SelectElements("mime-type") {
				typ := strings.TrimSpace(mt.SelectAttrValue("type", ""))
				if !strings.Contains(typ, "/") {
					continue
				}
				for _, a := range mt.SelectElements("alias") {
					alias := strings.TrimSpace(a.SelectAttrValue("type", ""))
					if alias != "" && !seenAlias[alias] {
						seenAlias[alias] = true
						data.aliases = append(data.aliases, [2]string{alias, typ})
					}
				}
				if sc := mt.SelectElement("sub-class-of"); sc != nil && !seenChild[typ] {
					if parent := strings.TrimSpace(sc.SelectAttrValue("type", "")); parent != "" {
						seenChild[typ] = true
						data.subclasses = append(data.subclasses, [2]string{typ, parent})
					}
				}
				for _, g := range mt.SelectElements("glob") {
					ext, ok := globExtension(g.SelectAttrValue("pattern", ""))
					if !ok {
						continue
					}
					if _, exists := data.globs[ext]; !exists {
						data.globs[ext] = typ
					}
				}
			}
		}
	}

	return data
}

func readXML(fsys filesystem.FS, path string) (*etree.Document, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(f); err != nil {
		return nil, err
	}
	return doc, nil
}

// globExtension turns a simple "*.ext" pattern into ".ext". Patterns with
// other wildcards are not extension globs.
func globExtension(pattern string) (string, bool) {
	pattern = strings.TrimSpace(pattern)
	if !strings.HasPrefix(pattern, "*.") {
		return "", false
	}
	ext := pattern[1:]
	if len(ext) < 2 || strings.ContainsAny(ext[1:], "*?[]") {
		return "", false
	}
	return strings.ToLower(ext), true
}
