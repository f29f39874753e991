// Package mimetype turns a raw detection profile into the ordered list of
// MIME types used for ranking, most specific first.
package mimetype

import (
	"strings"

	"github.com/arthur-debert/openwith/pkg/detect"
	"github.com/arthur-debert/openwith/pkg/xdgdb"
)

// OctetStream is the universal binary fallback type
const OctetStream = "application/octet-stream"

// TextPlain is the fallback for every text/* type
const TextPlain = "text/plain"

// structuredSuffixes maps a "+suffix" to its base type
var structuredSuffixes = map[string]string{
	"xml":  "application/xml",
	"zip":  "application/zip",
	"json": "application/json",
	"gzip": "application/gzip",
}

// Options controls the optional expansion steps
type Options struct {
	ResolveStructuredSuffixes bool
	UseGenericFallbacks       bool
	ShowUniversalHandlers     bool
}

// Expander expands profiles against one MIME database snapshot
type Expander struct {
	db   *xdgdb.MimeDB
	opts Options
}

// NewExpander creates an expander; db may be nil
func NewExpander(db *xdgdb.MimeDB, opts Options) *Expander {
	if db == nil {
		db = &xdgdb.MimeDB{}
	}
	return &Expander{db: db, opts: opts}
}

type list struct {
	mimes       []string
	seen        map[string]bool
	octetStream bool
}

func (l *list) add(mime string) {
	mime = strings.TrimSpace(mime)
	if mime == "" {
		return
	}
	if mime == OctetStream {
		l.octetStream = true
		return
	}
	if !strings.Contains(mime, "/") || l.seen[mime] {
		return
	}
	l.seen[mime] = true
	l.mimes = append(l.mimes, mime)
}

// Expand returns the ranked MIME list for p. Every type appears once and
// application/octet-stream, when present, is always last.
func (e *Expander) Expand(p detect.Profile) []string {
	l := &list{seen: make(map[string]bool)}

	for _, m := range []string{p.XdgMime, p.FileMime, p.MagikaMime, p.BuiltinMime, p.StatMime, p.ExtMime} {
		l.add(m)
	}

	// the list grows while it is walked so discovered types expand too
	if e.db.Aliases != nil || e.db.Subclasses != nil {
		for i := 0; i < len(l.mimes); i++ {
			current := l.mimes[i]
			if e.db.Aliases != nil {
				if canonical, ok := e.db.Aliases[current]; ok {
					l.add(canonical)
				}
				for _, alias := range e.db.Reverse[current] {
					l.add(alias)
				}
			}
			if e.db.Subclasses != nil {
				if parent, ok := e.db.Subclasses[current]; ok {
					l.add(parent)
				}
			}
		}
	}

	if e.opts.ResolveStructuredSuffixes {
		n := len(l.mimes)
		for i := 0; i < n; i++ {
			if base, ok := suffixBase(l.mimes[i]); ok {
				l.add(base)
			}
		}
	}

	if e.opts.UseGenericFallbacks {
		n := len(l.mimes)
		for i := 0; i < n; i++ {
			mime := l.mimes[i]
			if strings.HasPrefix(mime, "text/") {
				l.add(TextPlain)
			}
			if wildcard := xdgdb.Wildcard(mime); wildcard != "" {
				l.add(wildcard)
			}
		}
	}

	if p.IsRegularFile && (e.opts.ShowUniversalHandlers || l.octetStream) {
		l.mimes = append(l.mimes, OctetStream)
	}
	return l.mimes
}

func suffixBase(mime string) (string, bool) {
	plus := strings.LastIndexByte(mime, '+')
	if plus < 0 || plus == len(mime)-1 {
		return "", false
	}
	base, ok := structuredSuffixes[mime[plus+1:]]
	return base, ok
}
