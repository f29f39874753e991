// Package topics adds file-backed help topics to a Cobra command tree.
// "help <topic>" prints a topic, "help topics" lists them, and anything
// else falls through to the regular command help.
package topics

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// Topic is one help document
type Topic struct {
	Name    string
	Ext     string
	Content string
}

// Renderer formats topic content for display. ext is the file extension,
// including the dot.
type Renderer func(content, ext string) string

// Plain returns the content unchanged
func Plain(content, ext string) string { return content }

// Options configures Load and Install
type Options struct {
	// Extensions accepted as topics, default .txt and .md
	Extensions []string
	// Renderer for topic content, default Plain
	Renderer Renderer
}

// Manager holds the loaded topics
type Manager struct {
	topics   map[string]*Topic
	renderer Renderer
}

// Load reads every topic file under dir in fsys. A missing dir yields an
// empty manager.
func Load(fsys fs.FS, dir string, opts Options) (*Manager, error) {
	if len(opts.Extensions) == 0 {
		opts.Extensions = []string{".txt", ".md"}
	}
	if opts.Renderer == nil {
		opts.Renderer = Plain
	}
	m := &Manager{topics: make(map[string]*Topic), renderer: opts.Renderer}

	err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == dir && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipDir
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := path.Ext(p)
		if !hasExt(opts.Extensions, ext) {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(path.Base(p), ext)
		m.topics[name] = &Topic{Name: name, Ext: ext, Content: string(data)}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan topics: %w", err)
	}
	return m, nil
}

func hasExt(exts []string, ext string) bool {
	for _, e := range exts {
		if e == ext {
			return true
		}
	}
	return false
}

// Get finds a topic by name. Flag-style names such as --set also match an
// option-set topic.
func (m *Manager) Get(name string) (*Topic, bool) {
	name = strings.TrimLeft(name, "-")
	if t, ok := m.topics[name]; ok {
		return t, true
	}
	t, ok := m.topics["option-"+name]
	return t, ok
}

// Names lists the topic names, sorted
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render formats topic with the manager's renderer
func (m *Manager) Render(t *Topic) string {
	return m.renderer(t.Content, t.Ext)
}

func (m *Manager) printList(w io.Writer, root string) {
	names := m.Names()
	if len(names) == 0 {
		fmt.Fprintln(w, "No help topics available.")
		return
	}

	var general, options []string
	for _, name := range names {
		if opt, ok := strings.CutPrefix(name, "option-"); ok {
			options = append(options, opt)
		} else {
			general = append(general, name)
		}
	}

	fmt.Fprintln(w, "Available help topics:")
	if len(general) > 0 {
		fmt.Fprintln(w, "\nGeneral topics:")
		for _, name := range general {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
	if len(options) > 0 {
		fmt.Fprintln(w, "\nOption topics:")
		for _, name := range options {
			fmt.Fprintf(w, "  --%s\n", name)
		}
	}
	fmt.Fprintf(w, "\nUse '%s help <topic>' to read about a specific topic.\n", root)
}

// Install replaces the help command of root with one that also knows the
// topics
func (m *Manager) Install(root *cobra.Command) {
	originalHelp := root.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.
Simply type ` + root.Name() + ` help [path to command or topic] for full details.

To see all available help topics:
  ` + root.Name() + ` help topics`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range root.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			return append(completions, m.Names()...), cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			switch {
			case len(args) == 0:
				originalHelp(root, nil)
			case args[0] == "topics":
				m.printList(cmd.OutOrStdout(), root.Name())
			default:
				if t, ok := m.Get(args[0]); ok {
					fmt.Fprint(cmd.OutOrStdout(), m.Render(t))
					return
				}
				target, _, err := root.Find(args)
				if err != nil || target == nil {
					target = root
				}
				originalHelp(target, args)
			}
		},
	}

	for _, c := range root.Commands() {
		if c.Name() == "help" {
			root.RemoveCommand(c)
			break
		}
	}
	// cobra only adds the help command to roots that already have
	// subcommands, so add it here as well
	root.SetHelpCommand(helpCmd)
	root.AddCommand(helpCmd)
}
