package execline

import (
	"strings"

	"github.com/arthur-debert/openwith/pkg/keyfile"
)

// ArgTemplate is one argument of an Exec line before field code expansion
type ArgTemplate struct {
	Value string
	// Quoted is set when any part of the argument was double-quoted. Quoted
	// arguments are emitted literally and may be empty.
	Quoted bool
}

// Tokenize splits an already key-file-unescaped Exec value into argument
// templates. It returns nil when a double quote is left open.
func Tokenize(exec string) []ArgTemplate {
	if exec == "" {
		return nil
	}

	var (
		tokens   []ArgTemplate
		buf      strings.Builder
		escaped  bool
		inQuotes bool
		quoted   bool
	)

	flush := func() {
		if buf.Len() > 0 || quoted {
			tokens = append(tokens, ArgTemplate{Value: buf.String(), Quoted: quoted})
			buf.Reset()
			quoted = false
		}
	}

	for i := 0; i < len(exec); i++ {
		c := exec[i]

		if escaped {
			// inside quotes only ` " $ \ are escapable
			if inQuotes && c != '`' && c != '"' && c != '$' && c != '\\' {
				buf.WriteByte('\\')
			}
			buf.WriteByte(c)
			escaped = false
			continue
		}

		switch {
		case c == '\\':
			escaped = true
		case inQuotes:
			if c == '"' {
				inQuotes = false
			} else {
				buf.WriteByte(c)
			}
		case c == '"':
			inQuotes = true
			quoted = true
		case c == ' ':
			flush()
		default:
			buf.WriteByte(c)
		}
	}

	if inQuotes {
		return nil
	}
	if escaped {
		buf.WriteByte('\\')
	}
	flush()

	return tokens
}

// quote renders arg in Exec syntax so that Tokenize yields it back unchanged
func quote(arg string) string {
	if arg != "" && !strings.ContainsAny(arg, " \t\n\"'\\$`%<>~|&;*?#()") {
		return arg
	}
	var b strings.Builder
	b.Grow(len(arg) + 2)
	b.WriteByte('"')
	for i := 0; i < len(arg); i++ {
		switch arg[i] {
		case '"', '`', '$', '\\':
			b.WriteByte('\\')
		}
		b.WriteByte(arg[i])
	}
	b.WriteByte('"')
	return b.String()
}

// join renders templates back into a single Exec value
func join(templates []ArgTemplate) string {
	parts := make([]string, len(templates))
	for i, t := range templates {
		if t.Quoted {
			parts[i] = quote(t.Value)
			if parts[i] == t.Value {
				parts[i] = `"` + t.Value + `"`
			}
			continue
		}
		parts[i] = t.Value
	}
	return strings.Join(parts, " ")
}

// unescapeExec applies the key-file escape pass that precedes tokenization
func unescapeExec(exec string) string {
	return keyfile.Unescape(exec)
}
