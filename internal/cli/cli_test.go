// internal/cli/cli_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Temp XDG tree, mock tool runner
// PURPOSE: Verify the commands end to end, from files on disk to printed output

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/openwith/pkg/errors"
	"github.com/arthur-debert/openwith/pkg/logging"
	"github.com/arthur-debert/openwith/pkg/paths"
	"github.com/arthur-debert/openwith/pkg/resolver"
	"github.com/arthur-debert/openwith/pkg/testutil"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedChooser struct {
	answers []string
	prompt  string
	ids     []string
	closed  bool
}

func (s *scriptedChooser) Readline() (string, error) {
	if len(s.answers) == 0 {
		return "", io.EOF
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer, nil
}

func (s *scriptedChooser) Close() error {
	s.closed = true
	return nil
}

func newTestApp(sc *scriptedChooser) *app {
	return &app{
		providerOpts: []resolver.Option{resolver.WithRunner(testutil.NewMockRunner())},
		newChooser: func(cmd *cobra.Command, prompt string, ids []string) (chooser, error) {
			sc.prompt = prompt
			sc.ids = ids
			return sc, nil
		},
	}
}

func run(t *testing.T, a *app, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(logging.EnvLogFile, "off")
	cmd := newRootCmd(a)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// setupTextEditors installs two text/plain handlers and returns a text file
func setupTextEditors(t *testing.T) (*testutil.XDGEnv, string) {
	t.Helper()
	saved := paths.SystemExportDirs
	paths.SystemExportDirs = nil
	t.Cleanup(func() { paths.SystemExportDirs = saved })

	env := testutil.NewXDGEnv(t)
	env.AddDesktopEntry("gedit.desktop", testutil.DesktopEntry("Text Editor", "gedit %U", "text/plain;"))
	env.AddDesktopEntry("vim.desktop", testutil.DesktopEntry("Vim", "vim %f", "text/plain;", "Terminal=true"))
	return env, env.CreateFile("notes.txt", "some plain notes\n")
}

func TestCandidates(t *testing.T) {
	_, notes := setupTextEditors(t)

	out, _, err := run(t, newTestApp(nil), "candidates", "-o", "text", notes)
	require.NoError(t, err)
	assert.Equal(t,
		"1. Text Editor (gedit.desktop)\n"+
			"2. Vim (vim.desktop) [terminal, one file per launch]\n",
		out)

	out, _, err = run(t, newTestApp(nil), "candidates", "--format", "json", notes)
	require.NoError(t, err)
	var got []resolver.CandidateInfo
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.True(t, got[0].MultiFileAware)
	assert.True(t, got[1].Terminal)
}

func TestCandidates_SetOverride(t *testing.T) {
	env, notes := setupTextEditors(t)
	env.AddDesktopEntry("aaa.desktop", testutil.DesktopEntry("Aardvark", "aaa %f", "text/*;"))

	out, _, err := run(t, newTestApp(nil), "candidates", "-o", "text", notes)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "1. Text Editor (gedit.desktop)"), out)
	assert.Contains(t, out, "3. Aardvark (aaa.desktop)")

	out, _, err = run(t, newTestApp(nil), "candidates", "-o", "text", "--set", "SortAlphabetically=true", notes)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "1. Aardvark (aaa.desktop)"), out)

	_, _, err = run(t, newTestApp(nil), "candidates", "--set", "Bogus=true", notes)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownSetting), "got %v", err)
}

func TestCandidates_EmptyResults(t *testing.T) {
	env, notes := setupTextEditors(t)
	missing := filepath.Join(env.FilesDir, "missing.txt")
	photo := env.CreateFile("photo.png", "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

	_, _, err := run(t, newTestApp(nil), "candidates", missing)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoMimeType), "got %v", err)

	_, _, err = run(t, newTestApp(nil), "candidates", notes, missing)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoMimeType), "got %v", err)

	_, _, err = run(t, newTestApp(nil), "candidates", "--set", "ShowUniversalHandlers=false", photo)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoApplication), "got %v", err)

	_, _, err = run(t, newTestApp(nil), "candidates")
	assert.Error(t, err)
}

func TestLaunch(t *testing.T) {
	env, notes := setupTextEditors(t)
	todo := env.CreateFile("todo.txt", "buy milk\n")

	out, _, err := run(t, newTestApp(nil), "launch", "-o", "text", "--app", "vim.desktop", notes, todo)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2, "vim takes one file per launch")
	assert.True(t, strings.HasPrefix(lines[0], "vim "))
	assert.Contains(t, lines[0], "notes.txt")
	assert.Contains(t, lines[1], "todo.txt")

	out, _, err = run(t, newTestApp(nil), "launch", "-o", "text", "-a", "gedit.desktop", notes, todo)
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "file://")

	_, _, err = run(t, newTestApp(nil), "launch", "--app", "nope.desktop", notes)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound), "got %v", err)

	_, _, err = run(t, newTestApp(nil), "launch", notes)
	assert.Error(t, err, "--app is required")
}

func TestLaunch_RelativePaths(t *testing.T) {
	env, _ := setupTextEditors(t)
	env.AddDesktopEntry("ff.desktop", testutil.DesktopEntry("Firefox", "ff %u", "text/plain;"))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(env.FilesDir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	out, _, err := run(t, newTestApp(nil), "launch", "-o", "text", "--app", "gedit.desktop", "notes.txt")
	require.NoError(t, err)
	assert.NotEqual(t, "gedit ''\n", out)
	assert.Contains(t, out, "file://")
	assert.Contains(t, out, "/notes.txt")

	out, _, err = run(t, newTestApp(nil), "launch", "-o", "text", "--app", "ff.desktop", "notes.txt")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "ff 'file://"), out)
	assert.Contains(t, out, "/notes.txt'")

	out, _, err = run(t, newTestApp(nil), "launch", "-o", "text", "--app", "vim.desktop", "notes.txt")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "vim /"), out)
	assert.Contains(t, out, "/notes.txt")
}

func TestPick(t *testing.T) {
	_, notes := setupTextEditors(t)

	sc := &scriptedChooser{answers: []string{"", "7", "nope.desktop", "2"}}
	out, stderr, err := run(t, newTestApp(sc), "pick", "-o", "text", notes)
	require.NoError(t, err)

	assert.Equal(t, "Open with [1-2]: ", sc.prompt)
	assert.Equal(t, []string{"gedit.desktop", "vim.desktop"}, sc.ids)
	assert.True(t, sc.closed)
	assert.Contains(t, stderr, "1. Text Editor (gedit.desktop)")
	assert.Contains(t, stderr, `"7" is not one of the listed applications`)
	assert.True(t, strings.HasPrefix(out, "vim "), out)
	assert.NotContains(t, out, "Text Editor")

	sc = &scriptedChooser{answers: []string{"gedit.desktop"}}
	out, _, err = run(t, newTestApp(sc), "pick", "-o", "text", notes)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "gedit "), out)

	_, _, err = run(t, newTestApp(&scriptedChooser{}), "pick", notes)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), "got %v", err)
}

func TestParseChoice(t *testing.T) {
	candidates := []resolver.CandidateInfo{{ID: "a.desktop"}, {ID: "b.desktop"}}
	tests := []struct {
		answer string
		want   string
		ok     bool
	}{
		{"1", "a.desktop", true},
		{"2", "b.desktop", true},
		{"0", "", false},
		{"3", "", false},
		{"b.desktop", "b.desktop", true},
		{"c.desktop", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			got, ok := parseChoice(tt.answer, candidates)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got.ID)
		})
	}
}

func TestDetails(t *testing.T) {
	env, notes := setupTextEditors(t)

	out, _, err := run(t, newTestApp(nil), "details", "-o", "text", "--app", "gedit.desktop", notes)
	require.NoError(t, err)
	assert.Contains(t, out, "Desktop file: "+filepath.Join(env.AppsDir(), "gedit.desktop")+"\n")
	assert.Contains(t, out, "Source: full scan for text/plain\n")
	assert.Contains(t, out, "Exec: gedit %U\n")
}

func TestMimeTypes(t *testing.T) {
	env, notes := setupTextEditors(t)
	missing := filepath.Join(env.FilesDir, "missing.txt")

	out, _, err := run(t, newTestApp(nil), "mimetypes", "-o", "text", notes, missing)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "(none)", lines[0])
	assert.Contains(t, lines[1], "text/plain")
}

func TestSettings(t *testing.T) {
	env, _ := setupTextEditors(t)

	out, _, err := run(t, newTestApp(nil), "settings", "-o", "json")
	require.NoError(t, err)
	var settings []resolver.Setting
	require.NoError(t, json.Unmarshal([]byte(out), &settings))
	require.Len(t, settings, 16)
	assert.Equal(t, resolver.Setting{Key: "UseXdgMimeTool", DisplayName: "Use xdg-mime tool", Value: true, Disabled: true}, settings[0])

	// --set is not persisted by "settings set"
	out, _, err = run(t, newTestApp(nil), "settings", "set", "-o", "text", "--set", "UseFileTool=false", "SortAlphabetically", "yes")
	assert.Error(t, err, "yes is not a boolean")
	assert.Empty(t, out)

	_, _, err = run(t, newTestApp(nil), "settings", "set", "-o", "text", "--set", "UseFileTool=false", "SortAlphabetically", "true")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(env.ConfigHome, "openwith", "config.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "sort_alphabetically = true")
	assert.Contains(t, string(data), "use_file_tool = true")

	out, _, err = run(t, newTestApp(nil), "settings", "list", "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "[x] SortAlphabetically")

	_, _, err = run(t, newTestApp(nil), "settings", "set", "NoSuchSetting", "true")
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownSetting), "got %v", err)
}

func TestSettingsSet_DoesNotPersistEnvironment(t *testing.T) {
	env, _ := setupTextEditors(t)
	t.Setenv("OPENWITH_SETTINGS_USE_FILE_TOOL", "false")

	_, _, err := run(t, newTestApp(nil), "settings", "set", "SortAlphabetically", "true")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(env.ConfigHome, "openwith", "config.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "sort_alphabetically = true")
	assert.Contains(t, string(data), "use_file_tool = true")
	assert.NotContains(t, string(data), "use_file_tool = false")
}

func TestSettings_ExplicitConfigPath(t *testing.T) {
	setupTextEditors(t)
	path := filepath.Join(t.TempDir(), "custom.toml")

	_, _, err := run(t, newTestApp(nil), "--config", path, "settings", "set", "ValidateTryExec", "1")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "validate_try_exec = true")
}

func TestVersionAndCompletion(t *testing.T) {
	out, _, err := run(t, newTestApp(nil), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "openwith version dev")

	out, _, err = run(t, newTestApp(nil), "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "openwith")

	_, _, err = run(t, newTestApp(nil), "completion", "tcsh")
	assert.Error(t, err)
}

func TestRootWithoutCommand(t *testing.T) {
	_, _, err := run(t, newTestApp(nil))
	assert.Error(t, err)
}

func TestHelpTopics(t *testing.T) {
	out, _, err := run(t, newTestApp(nil), "help", "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "resolution")
	assert.Contains(t, out, "--set")

	out, _, err = run(t, newTestApp(nil), "help", "resolution")
	require.NoError(t, err)
	assert.Contains(t, out, "# How applications are found")
}
