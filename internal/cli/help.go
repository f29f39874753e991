package cli

import (
	"embed"

	"github.com/arthur-debert/openwith/pkg/cobrax/topics"
	"github.com/arthur-debert/openwith/pkg/output"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicFiles embed.FS

// renderTopic renders markdown topics with glamour on terminals
func renderTopic(content, ext string) string {
	if ext != ".md" || !stdoutIsTerminal() {
		return content
	}
	rendered, err := output.RenderMarkdown(content)
	if err != nil {
		return content
	}
	return rendered
}

// installTopics wires the embedded help topics into root
func installTopics(root *cobra.Command) {
	m, err := topics.Load(topicFiles, "topics", topics.Options{
		Extensions: []string{".md"},
		Renderer:   renderTopic,
	})
	if err != nil {
		log.Debug().Err(err).Msg("Help topics unavailable")
		return
	}
	m.Install(root)
}
