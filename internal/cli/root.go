package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/openwith/internal/version"
	"github.com/arthur-debert/openwith/pkg/config"
	"github.com/arthur-debert/openwith/pkg/errors"
	"github.com/arthur-debert/openwith/pkg/filesystem"
	"github.com/arthur-debert/openwith/pkg/logging"
	"github.com/arthur-debert/openwith/pkg/output"
	"github.com/arthur-debert/openwith/pkg/paths"
	"github.com/arthur-debert/openwith/pkg/resolver"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// app carries the global flags and the hooks the commands share
type app struct {
	verbosity  int
	format     string
	configPath string
	overrides  []string

	providerOpts []resolver.Option
	newChooser   chooserFactory
}

// NewRootCmd creates and returns the root command. opts are applied to
// every Provider the commands create, after the flag-derived ones.
func NewRootCmd(opts ...resolver.Option) *cobra.Command {
	return newRootCmd(&app{providerOpts: opts, newChooser: newReadlineChooser})
}

func newRootCmd(a *app) *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:     "openwith",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(a.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVarP(&a.format, "format", "o", "auto", MsgFlagFormat)
	flags.StringVar(&a.configPath, "config", "", MsgFlagConfig)
	flags.StringArrayVar(&a.overrides, "set", nil, MsgFlagSet)

	rootCmd.AddGroup(&cobra.Group{ID: "resolve", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newCandidatesCmd(a))
	rootCmd.AddCommand(newLaunchCmd(a))
	rootCmd.AddCommand(newPickCmd(a))
	rootCmd.AddCommand(newDetailsCmd(a))
	rootCmd.AddCommand(newMimeTypesCmd(a))
	rootCmd.AddCommand(newSettingsCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	installTopics(rootCmd)
	return rootCmd
}

// settingsPath is --config or the XDG default
func (a *app) settingsPath() string {
	if a.configPath != "" {
		return a.configPath
	}
	return paths.New(filesystem.NewOS()).ConfigFile()
}

// provider loads the layered configuration and builds a Provider on it
func (a *app) provider() (*resolver.Provider, error) {
	overrides, err := config.ParseOverrides(a.overrides)
	if err != nil {
		return nil, err
	}
	path := a.settingsPath()
	cfg, err := config.LoadWithOverrides(path, overrides)
	if err != nil {
		return nil, err
	}

	opts := []resolver.Option{resolver.WithConfig(cfg), resolver.WithConfigPath(path)}
	return resolver.New(append(opts, a.providerOpts...)...), nil
}

func (a *app) renderer(cmd *cobra.Command) (*output.Renderer, error) {
	format, err := output.ParseFormat(a.format)
	if err != nil {
		return nil, err
	}
	return output.NewRenderer(cmd.OutOrStdout(), format), nil
}

// absFiles makes the file arguments absolute. Launch commands built from
// relative paths would lose them in %u and %U, which only take file URIs.
func absFiles(args []string) ([]string, error) {
	files := make([]string, 0, len(args))
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "cannot resolve path %q", arg).
				WithDetail("file", arg)
		}
		files = append(files, abs)
	}
	return files, nil
}

// resolve runs the candidate lookup and turns an empty result into an error
// that says whether detection or association came up short
func (a *app) resolve(cmd *cobra.Command, p *resolver.Provider, files []string) ([]resolver.CandidateInfo, error) {
	candidates := p.GetAppCandidates(cmd.Context(), files)
	if len(candidates) > 0 {
		return candidates, nil
	}

	names := strings.Join(files, ", ")
	if mimes := p.GetMimeTypes(); len(mimes) > 0 && mimes[0] == "(none)" {
		return nil, errors.Newf(errors.ErrNoMimeType, MsgErrNoMimeType, names).
			WithDetail("files", files)
	}
	return nil, errors.Newf(errors.ErrNoApplication, MsgErrNoApplication, names).
		WithDetail("files", files).
		WithDetail("mimeTypes", p.GetMimeTypes())
}

// selectCandidate finds the candidate with the given desktop file id
func selectCandidate(candidates []resolver.CandidateInfo, id string, files []string) (resolver.CandidateInfo, error) {
	for _, c := range candidates {
		if c.ID == id {
			return c, nil
		}
	}
	return resolver.CandidateInfo{}, errors.Newf(errors.ErrNotFound, MsgErrUnknownApp, id, strings.Join(files, ", ")).
		WithDetail("app", id)
}
