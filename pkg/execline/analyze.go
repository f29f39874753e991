package execline

import "strings"

// Model describes how files are distributed across invocations
type Model int

const (
	// LegacyImplicit has no file field codes; files are appended
	LegacyImplicit Model = iota
	// PerFile runs one invocation per file (%f, %u)
	PerFile
	// FileList passes every file to a single invocation (%F, %U)
	FileList
)

func (m Model) String() string {
	switch m {
	case PerFile:
		return "per-file"
	case FileList:
		return "file-list"
	default:
		return "legacy-implicit"
	}
}

// Analysis is the compiled form of an Exec value. It is a pure function of
// the Exec string and never changes after Analyze returns.
type Analysis struct {
	Model     Model
	Templates []ArgTemplate
}

// Analyze unescapes, tokenizes and classifies an Exec value
func Analyze(exec string) Analysis {
	templates := Tokenize(unescapeExec(exec))
	if len(templates) == 0 {
		return Analysis{}
	}

	model := LegacyImplicit
	for _, t := range templates {
		if t.Quoted {
			continue
		}
		if t.Value == "%F" || t.Value == "%U" {
			model = FileList
			break
		}
		if model == LegacyImplicit && (hasFieldCode(t.Value, 'f') || hasFieldCode(t.Value, 'u')) {
			model = PerFile
		}
	}

	return Analysis{Model: model, Templates: templates}
}

// Usable reports whether at least one argument survives expansion. An Exec
// value that failed to tokenize, or whose arguments all carry %i, cannot be
// launched.
func (a Analysis) Usable() bool {
	for _, t := range a.Templates {
		if t.Quoted || !hasFieldCode(t.Value, 'i') {
			return true
		}
	}
	return false
}

// MultiFileAware reports whether one invocation can receive several files.
// Only PerFile entries need a command per file.
func (a Analysis) MultiFileAware() bool {
	return a.Model != PerFile
}

// hasFieldCode reports whether s contains %code, skipping %% pairs
func hasFieldCode(s string, code byte) bool {
	for i := 0; i+1 < len(s); i++ {
		if s[i] != '%' {
			continue
		}
		if s[i+1] == code {
			return true
		}
		// consume the pair so %%f is not read as %f
		i++
	}
	return false
}

func hasPercent(s string) bool {
	return strings.IndexByte(s, '%') >= 0
}
