package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/openwith/pkg/logging"
	"github.com/arthur-debert/openwith/pkg/resolver"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// Renderer writes command results in one of the output formats
type Renderer struct {
	w      io.Writer
	format Format
	styles Styles
	logger zerolog.Logger
}

// NewRenderer creates a renderer for w. FormatAuto is resolved against w
// when it is a file and falls back to plain text otherwise.
func NewRenderer(w io.Writer, format Format) *Renderer {
	if format == FormatAuto {
		format = FormatText
		if f, ok := w.(*os.File); ok {
			format = DetectFormat(f)
		}
	}

	r := &Renderer{
		w:      w,
		format: format,
		logger: logging.GetLogger("output"),
	}
	r.styles = DefaultStyles(lipgloss.NewRenderer(w))

	r.logger.Debug().Str("format", format.String()).Msg("Created renderer")
	return r
}

// Format returns the resolved output format
func (r *Renderer) Format() Format {
	return r.format
}

func (r *Renderer) json(v interface{}) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

func (r *Renderer) println(s string) error {
	_, err := fmt.Fprintln(r.w, s)
	return err
}

// Candidates lists the applications, numbered from 1
func (r *Renderer) Candidates(list []resolver.CandidateInfo) error {
	if r.format == FormatJSON {
		if list == nil {
			list = []resolver.CandidateInfo{}
		}
		return r.json(list)
	}

	for i, c := range list {
		var flags []string
		if c.Terminal {
			flags = append(flags, "terminal")
		}
		if !c.MultiFileAware {
			flags = append(flags, "one file per launch")
		}

		var line string
		if r.format == FormatTerminal {
			line = r.styles.Render("Index", fmt.Sprintf("%d.", i+1)) +
				r.styles.Render("Name", c.Name) + " " +
				r.styles.Render("ID", c.ID)
			if len(flags) > 0 {
				line += r.styles.Render("Badge", "["+strings.Join(flags, ", ")+"]")
			}
		} else {
			line = fmt.Sprintf("%d. %s (%s)", i+1, c.Name, c.ID)
			if len(flags) > 0 {
				line += " [" + strings.Join(flags, ", ") + "]"
			}
		}
		if err := r.println(line); err != nil {
			return err
		}
	}
	return nil
}

// Commands prints one launch command per line
func (r *Renderer) Commands(cmds []string) error {
	if r.format == FormatJSON {
		if cmds == nil {
			cmds = []string{}
		}
		return r.json(cmds)
	}
	for _, c := range cmds {
		if r.format == FormatTerminal {
			c = r.styles.Render("Command", c)
		}
		if err := r.println(c); err != nil {
			return err
		}
	}
	return nil
}

// Details prints the candidate fields. Terminals get a markdown table
// rendered with glamour.
func (r *Renderer) Details(title string, fields []resolver.Field) error {
	switch r.format {
	case FormatJSON:
		if fields == nil {
			fields = []resolver.Field{}
		}
		return r.json(fields)
	case FormatTerminal:
		md := DetailsMarkdown(title, fields)
		rendered, err := RenderMarkdown(md)
		if err != nil {
			r.logger.Debug().Err(err).Msg("Markdown rendering failed, printing plain")
			rendered = md
		}
		_, err = io.WriteString(r.w, rendered)
		return err
	}

	for _, f := range fields {
		if err := r.println(f.Label + ": " + f.Value); err != nil {
			return err
		}
	}
	return nil
}

// RenderMarkdown renders md for the terminal with glamour
func RenderMarkdown(md string) (string, error) {
	tr, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return "", err
	}
	return tr.Render(md)
}

// DetailsMarkdown renders fields as a two-column markdown table
func DetailsMarkdown(title string, fields []resolver.Field) string {
	var b strings.Builder
	if title != "" {
		b.WriteString("# " + title + "\n\n")
	}
	b.WriteString("| Field | Value |\n")
	b.WriteString("| --- | --- |\n")
	for _, f := range fields {
		b.WriteString("| " + escapeCell(f.Label) + " | " + escapeCell(f.Value) + " |\n")
	}
	return b.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// MimeTypes prints the detected MIME profiles
func (r *Renderer) MimeTypes(types []string) error {
	if r.format == FormatJSON {
		if types == nil {
			types = []string{}
		}
		return r.json(types)
	}
	for _, t := range types {
		if r.format == FormatTerminal {
			t = r.styles.Render("MimeType", t)
		}
		if err := r.println(t); err != nil {
			return err
		}
	}
	return nil
}

// Settings prints every setting with its value
func (r *Renderer) Settings(settings []resolver.Setting) error {
	if r.format == FormatJSON {
		return r.json(settings)
	}

	width := 0
	for _, s := range settings {
		if len(s.Key) > width {
			width = len(s.Key)
		}
	}

	for _, s := range settings {
		mark := "[ ]"
		if s.Value {
			mark = "[x]"
		}
		key := s.Key + strings.Repeat(" ", width-len(s.Key))
		suffix := ""
		if s.Disabled {
			suffix = " (tool not found)"
		}

		var line string
		if r.format == FormatTerminal {
			markStyle := "SettingOff"
			if s.Value {
				markStyle = "SettingOn"
			}
			line = r.styles.Render(markStyle, mark) + " " + r.styles.Render("Label", key) + "  " + s.DisplayName
			if s.Disabled {
				line += r.styles.Render("Disabled", suffix)
			}
		} else {
			line = mark + " " + key + "  " + s.DisplayName + suffix
		}
		if err := r.println(line); err != nil {
			return err
		}
	}
	return nil
}

// Message prints a free-form line, styled as style on terminals
func (r *Renderer) Message(style, text string) error {
	if r.format == FormatTerminal {
		text = r.styles.Render(style, text)
	}
	return r.println(text)
}
