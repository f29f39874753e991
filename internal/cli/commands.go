package cli

import (
	"github.com/arthur-debert/openwith/pkg/errors"
	"github.com/arthur-debert/openwith/pkg/logging"
	"github.com/arthur-debert/openwith/pkg/resolver"
	"github.com/spf13/cobra"
)

func newCandidatesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "candidates FILE...",
		Short:   MsgCandidatesShort,
		Long:    MsgCandidatesLong,
		Args:    cobra.MinimumNArgs(1),
		GroupID: "resolve",
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := absFiles(args)
			if err != nil {
				return err
			}
			p, err := a.provider()
			if err != nil {
				return err
			}
			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			candidates, err := a.resolve(cmd, p, files)
			if err != nil {
				return err
			}
			return r.Candidates(candidates)
		},
	}
}

func newLaunchCmd(a *app) *cobra.Command {
	var appID string

	cmd := &cobra.Command{
		Use:     "launch --app ID FILE...",
		Short:   MsgLaunchShort,
		Long:    MsgLaunchLong,
		Args:    cobra.MinimumNArgs(1),
		GroupID: "resolve",
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := absFiles(args)
			if err != nil {
				return err
			}
			logger := logging.GetLogger("cli.launch")

			p, err := a.provider()
			if err != nil {
				return err
			}
			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			candidates, err := a.resolve(cmd, p, files)
			if err != nil {
				return err
			}
			candidate, err := selectCandidate(candidates, appID, files)
			if err != nil {
				return err
			}

			commands, err := launchCommands(p, candidate, files)
			if err != nil {
				return err
			}
			logger.Info().Str("app", appID).Int("commands", len(commands)).Msg("Generated launch commands")
			return r.Commands(commands)
		},
	}

	cmd.Flags().StringVarP(&appID, "app", "a", "", MsgFlagApp)
	_ = cmd.MarkFlagRequired("app")
	_ = cmd.RegisterFlagCompletionFunc("app", a.completeAppIDs)
	return cmd
}

func newDetailsCmd(a *app) *cobra.Command {
	var appID string

	cmd := &cobra.Command{
		Use:     "details --app ID FILE...",
		Short:   MsgDetailsShort,
		Args:    cobra.MinimumNArgs(1),
		GroupID: "resolve",
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := absFiles(args)
			if err != nil {
				return err
			}
			p, err := a.provider()
			if err != nil {
				return err
			}
			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			candidates, err := a.resolve(cmd, p, files)
			if err != nil {
				return err
			}
			candidate, err := selectCandidate(candidates, appID, files)
			if err != nil {
				return err
			}
			return r.Details(candidate.Name, p.GetCandidateDetails(candidate))
		},
	}

	cmd.Flags().StringVarP(&appID, "app", "a", "", MsgFlagApp)
	_ = cmd.MarkFlagRequired("app")
	_ = cmd.RegisterFlagCompletionFunc("app", a.completeAppIDs)
	return cmd
}

func newMimeTypesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "mimetypes FILE...",
		Short:   MsgMimeTypesShort,
		Args:    cobra.MinimumNArgs(1),
		GroupID: "resolve",
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := absFiles(args)
			if err != nil {
				return err
			}
			p, err := a.provider()
			if err != nil {
				return err
			}
			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			p.GetAppCandidates(cmd.Context(), files)
			return r.MimeTypes(p.GetMimeTypes())
		},
	}
}

// launchCommands wraps GenerateLaunchCommands with the unusable-exec error
func launchCommands(p *resolver.Provider, candidate resolver.CandidateInfo, files []string) ([]string, error) {
	commands := p.GenerateLaunchCommands(candidate, files)
	if len(commands) == 0 {
		return nil, errors.Newf(errors.ErrUnusableExec, MsgErrUnusableExec, candidate.ID).
			WithDetail("app", candidate.ID)
	}
	return commands, nil
}

// completeAppIDs offers the ids of the applications able to open the files
// already on the command line
func (a *app) completeAppIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	files, err := absFiles(args)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	p, err := a.provider()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var ids []string
	for _, c := range p.GetAppCandidates(cmd.Context(), files) {
		ids = append(ids, c.ID+"\t"+c.Name)
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}
