// Package keyfile reads the line-oriented "[Section] key=value" text format
// shared by desktop entries, mimeapps.list and mimeinfo.cache.
package keyfile

import (
	"bufio"
	"io"
	"strings"

	"github.com/arthur-debert/openwith/pkg/filesystem"
)

// maxLineSize bounds a single line. Longer lines are dropped whole and
// parsing continues with the next one.
const maxLineSize = 1 << 20

// VisitFunc receives every key=value pair together with its section name
type VisitFunc func(section, key, value string)

// Parse walks r line by line. Comments (#) and blank lines are skipped, keys
// and values are trimmed, and lines without '=' are ignored.
func Parse(r io.Reader, visit VisitFunc) error {
	lines := newLineReader(r)

	section := ""
	for {
		raw, err := lines.next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		line := strings.TrimSpace(raw)
		if line == "" || line[0] == '#' {
			continue
		}
		if line[0] == '[' {
			section = strings.TrimSuffix(line[1:], "]")
			continue
		}
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			continue
		}
		key := strings.TrimSpace(line[:eq])
		value := strings.TrimSpace(line[eq+1:])
		if key == "" {
			continue
		}
		visit(section, key, value)
	}
}

type lineReader struct {
	r   *bufio.Reader
	buf []byte
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReaderSize(r, 4096)}
}

// next returns the next line that fits in maxLineSize, without its line
// terminator. Oversized lines are consumed and skipped.
func (l *lineReader) next() (string, error) {
	for {
		l.buf = l.buf[:0]
		tooLong := false
		for {
			frag, isPrefix, err := l.r.ReadLine()
			if err != nil {
				if err == io.EOF && (len(l.buf) > 0 || tooLong) {
					break
				}
				return "", err
			}
			if !tooLong && len(l.buf)+len(frag) <= maxLineSize {
				l.buf = append(l.buf, frag...)
			} else {
				tooLong = true
				l.buf = l.buf[:0]
			}
			if !isPrefix {
				break
			}
		}
		if !tooLong {
			return string(l.buf), nil
		}
	}
}

// ParseFile opens path on fsys and parses it
func ParseFile(fsys filesystem.FS, path string, visit VisitFunc) error {
	f, err := fsys.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return Parse(f, visit)
}

// SplitList splits a separator-delimited value, trimming items and dropping empty ones
func SplitList(value string, sep byte) []string {
	if value == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(value, string(sep)) {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Unescape resolves the key-file string escapes \s \n \t \r and \\.
// Unknown escapes keep the character and drop the backslash; a trailing
// backslash is kept literally.
func Unescape(s string) string {
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(s) {
			b.WriteByte('\\')
			break
		}
		i++
		switch s[i] {
		case 's':
			b.WriteByte(' ')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
