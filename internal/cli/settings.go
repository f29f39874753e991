package cli

import (
	"fmt"
	"strconv"

	"github.com/arthur-debert/openwith/pkg/config"
	"github.com/arthur-debert/openwith/pkg/errors"
	"github.com/spf13/cobra"
)

func newSettingsCmd(a *app) *cobra.Command {
	list := func(cmd *cobra.Command, args []string) error {
		p, err := a.provider()
		if err != nil {
			return err
		}
		r, err := a.renderer(cmd)
		if err != nil {
			return err
		}
		return r.Settings(p.GetPlatformSettings())
	}

	cmd := &cobra.Command{
		Use:     "settings",
		Short:   MsgSettingsShort,
		Long:    MsgSettingsLong,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE:    list,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: MsgSettingsList,
		Args:  cobra.NoArgs,
		RunE:  list,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set KEY BOOL",
		Short: MsgSettingsSet,
		Args:  cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				keys := make([]string, 0, len(config.Definitions))
				for _, d := range config.Definitions {
					keys = append(keys, d.Key+"\t"+d.DisplayName)
				}
				return keys, cobra.ShellCompDirectiveNoFileComp
			}
			return []string{"true", "false"}, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseBool(args[1])
			if err != nil {
				return errors.Wrapf(err, errors.ErrInvalidInput, MsgErrBadBool, args[1])
			}

			p, err := a.provider()
			if err != nil {
				return err
			}
			// --set and OPENWITH_* apply to this run only, so start over from the file
			if err := p.Load(); err != nil {
				return err
			}
			if err := p.Set(args[0], value); err != nil {
				return err
			}
			if err := p.Save(); err != nil {
				return err
			}

			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			return r.Message("Muted", fmt.Sprintf(MsgSettingSaved, args[0], value, a.settingsPath()))
		},
	})

	return cmd
}
