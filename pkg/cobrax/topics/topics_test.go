// pkg/cobrax/topics/topics_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: testing/fstest
// PURPOSE: Verify topic loading, lookup and the help command

package topics

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var helpFS = fstest.MapFS{
	"help/resolution.md":   {Data: []byte("# Resolution\n\nHow it works")},
	"help/option-set.md":   {Data: []byte("Overrides settings")},
	"help/notes.txt":       {Data: []byte("plain notes")},
	"help/ignored.json":    {Data: []byte("{}")},
	"help/nested/extra.md": {Data: []byte("nested topic")},
}

func TestLoad(t *testing.T) {
	m, err := Load(helpFS, "help", Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"extra", "notes", "option-set", "resolution"}, m.Names())

	topic, ok := m.Get("resolution")
	require.True(t, ok)
	assert.Equal(t, ".md", topic.Ext)
	assert.Equal(t, "# Resolution\n\nHow it works", topic.Content)

	_, ok = m.Get("ignored")
	assert.False(t, ok)

	m, err = Load(helpFS, "help", Options{Extensions: []string{".md"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"extra", "option-set", "resolution"}, m.Names())
}

func TestLoad_MissingDir(t *testing.T) {
	m, err := Load(helpFS, "nope", Options{})
	require.NoError(t, err)
	assert.Empty(t, m.Names())
}

func TestGet_FlagStyle(t *testing.T) {
	m, err := Load(helpFS, "help", Options{})
	require.NoError(t, err)

	for _, name := range []string{"--set", "-set", "set", "option-set"} {
		topic, ok := m.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, "option-set", topic.Name)
	}
}

func TestRender(t *testing.T) {
	upper := func(content, ext string) string {
		if ext == ".md" {
			return strings.ToUpper(content)
		}
		return content
	}
	m, err := Load(helpFS, "help", Options{Renderer: upper})
	require.NoError(t, err)

	md, _ := m.Get("resolution")
	txt, _ := m.Get("notes")
	assert.Equal(t, "# RESOLUTION\n\nHOW IT WORKS", m.Render(md))
	assert.Equal(t, "plain notes", m.Render(txt))
}

func newRoot(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	root := &cobra.Command{Use: "app", Run: func(cmd *cobra.Command, args []string) {}}
	root.AddCommand(&cobra.Command{Use: "sub", Short: "A subcommand", Run: func(cmd *cobra.Command, args []string) {}})

	m, err := Load(helpFS, "help", Options{})
	require.NoError(t, err)
	m.Install(root)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	return root, &out
}

func TestInstall(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"topic", []string{"help", "resolution"}, []string{"How it works"}},
		{"flag topic", []string{"help", "--", "--set"}, []string{"Overrides settings"}},
		{"list", []string{"help", "topics"}, []string{"General topics:", "  resolution", "Option topics:", "  --set", "app help <topic>"}},
		{"command", []string{"help", "sub"}, []string{"A subcommand"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, out := newRoot(t)
			root.SetArgs(tt.args)
			require.NoError(t, root.Execute())
			for _, w := range tt.want {
				assert.Contains(t, out.String(), w)
			}
		})
	}
}

func TestInstall_NoTopics(t *testing.T) {
	// a root without subcommands still gets the help command
	root := &cobra.Command{Use: "app", Run: func(cmd *cobra.Command, args []string) {}}
	m, err := Load(fstest.MapFS{}, "help", Options{})
	require.NoError(t, err)
	m.Install(root)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"help", "topics"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "No help topics available.\n", out.String())
}

func TestInstall_SingleHelpCommand(t *testing.T) {
	root := &cobra.Command{Use: "app", Run: func(cmd *cobra.Command, args []string) {}}
	root.AddCommand(&cobra.Command{Use: "sub", Run: func(cmd *cobra.Command, args []string) {}})
	m, err := Load(fstest.MapFS{}, "help", Options{})
	require.NoError(t, err)
	m.Install(root)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"help", "topics"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "No help topics available.\n", out.String())

	helps := 0
	for _, c := range root.Commands() {
		if c.Name() == "help" {
			helps++
		}
	}
	assert.Equal(t, 1, helps)
}
