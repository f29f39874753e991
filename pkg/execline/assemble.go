package execline

import (
	"path/filepath"
	"strings"
)

// Target carries the entry fields that %c and %k expand to
type Target struct {
	Name        string
	DesktopFile string
}

// Options control field code expansion
type Options struct {
	// URLsAsPaths makes %u and %U expand to plain paths instead of file:// URIs
	URLsAsPaths bool
}

// Assemble expands a's templates against files and returns one shell-escaped
// command line. Field codes other than %F and %U use the first file only.
func Assemble(a Analysis, target Target, files []string, opts Options) string {
	var args []string

	for _, t := range a.Templates {
		if t.Quoted || !hasPercent(t.Value) {
			args = append(args, ShellEscape(t.Value))
			continue
		}

		switch t.Value {
		case "%F":
			for _, f := range files {
				args = append(args, ShellEscape(f))
			}
			continue
		case "%U":
			for _, f := range files {
				args = append(args, ShellEscape(fileURL(f, opts)))
			}
			continue
		}

		first := ""
		if len(files) > 0 {
			first = files[0]
		}
		expanded, keep := expand(t.Value, first, target, opts)
		if keep && expanded != "" {
			args = append(args, ShellEscape(expanded))
		}
	}

	if a.Model == LegacyImplicit {
		for _, f := range files {
			args = append(args, ShellEscape(f))
		}
	}

	return strings.Join(args, " ")
}

// GenerateLaunchCommands returns one command per file for PerFile entries and a
// single command otherwise. An unusable analysis yields nil.
func GenerateLaunchCommands(a Analysis, target Target, files []string, opts Options) []string {
	if !a.Usable() {
		return nil
	}
	if a.Model == PerFile {
		commands := make([]string, 0, len(files))
		for _, f := range files {
			commands = append(commands, Assemble(a, target, []string{f}, opts))
		}
		return commands
	}
	return []string{Assemble(a, target, files, opts)}
}

// expand substitutes field codes in one template. keep is false when the
// argument must be dropped entirely.
func expand(tmpl, file string, target Target, opts Options) (string, bool) {
	var b strings.Builder
	b.Grow(len(tmpl) + len(file))

	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		if c != '%' || i+1 >= len(tmpl) {
			b.WriteByte(c)
			continue
		}
		i++
		switch code := tmpl[i]; code {
		case 'f', 'F':
			b.WriteString(file)
		case 'u', 'U':
			b.WriteString(fileURL(file, opts))
		case 'c':
			b.WriteString(unescapeExec(target.Name))
		case 'k':
			b.WriteString(target.DesktopFile)
		case '%':
			b.WriteByte('%')
		case 'i':
			return "", false
		case 'd', 'D', 'n', 'N', 'v', 'm':
			// deprecated
		default:
			b.WriteByte('%')
			b.WriteByte(code)
		}
	}
	return b.String(), true
}

func fileURL(path string, opts Options) string {
	if opts.URLsAsPaths || path == "" {
		return path
	}
	return PathToURI(path)
}

// PathToURI converts an absolute path to a file:// URI, percent-encoding every
// byte outside [A-Za-z0-9-_.~/]. Relative paths yield "".
func PathToURI(path string) string {
	if path == "" || !filepath.IsAbs(path) {
		return ""
	}

	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len("file://") + len(path)*3)
	b.WriteString("file://")
	for i := 0; i < len(path); i++ {
		c := path[i]
		if isURISafe(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isURISafe(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	}
	return c == '-' || c == '_' || c == '.' || c == '~' || c == '/'
}

// ShellEscape quotes s for a POSIX shell. Strings made only of
// [A-Za-z0-9._/-] pass through; everything else is single-quoted.
func ShellEscape(s string) string {
	if s == "" {
		return "''"
	}
	safe := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		if ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z') || ('0' <= c && c <= '9') ||
			c == '.' || c == '_' || c == '/' || c == '-' {
			continue
		}
		safe = false
		break
	}
	if safe {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
