package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arthur-debert/openwith/pkg/errors"
	"github.com/arthur-debert/openwith/pkg/output"
	"github.com/arthur-debert/openwith/pkg/resolver"
	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

// chooser reads one answer per call
type chooser interface {
	Readline() (string, error)
	Close() error
}

type chooserFactory func(cmd *cobra.Command, prompt string, ids []string) (chooser, error)

// newReadlineChooser prompts on stderr and tab-completes the desktop ids
func newReadlineChooser(cmd *cobra.Command, prompt string, ids []string) (chooser, error) {
	items := make([]readline.PrefixCompleterInterface, 0, len(ids))
	for _, id := range ids {
		items = append(items, readline.PcItem(id))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		AutoComplete:    readline.NewPrefixCompleter(items...),
		InterruptPrompt: "^C",
		Stdin:           io.NopCloser(cmd.InOrStdin()),
		Stdout:          cmd.ErrOrStderr(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to start prompt")
	}
	return rl, nil
}

func newPickCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "pick FILE...",
		Short:   MsgPickShort,
		Long:    MsgPickLong,
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

			// the list and the prompt go to stderr so stdout only carries
			// the commands
			listFormat := r.Format()
			if listFormat == output.FormatJSON {
				listFormat = output.FormatAuto
			}
			list := output.NewRenderer(cmd.ErrOrStderr(), listFormat)
			if err := list.Candidates(candidates); err != nil {
				return err
			}

			candidate, err := a.choose(cmd, list, candidates)
			if err != nil {
				return err
			}
			commands, err := launchCommands(p, candidate, files)
			if err != nil {
				return err
			}
			return r.Commands(commands)
		},
	}
}

// choose prompts until the answer names a candidate or input ends
func (a *app) choose(cmd *cobra.Command, list *output.Renderer, candidates []resolver.CandidateInfo) (resolver.CandidateInfo, error) {
	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.ID)
	}

	in, err := a.newChooser(cmd, fmt.Sprintf(MsgPickPrompt, len(candidates)), ids)
	if err != nil {
		return resolver.CandidateInfo{}, err
	}
	defer func() { _ = in.Close() }()

	for {
		line, err := in.Readline()
		if err != nil {
			if stderrors.Is(err, io.EOF) || stderrors.Is(err, readline.ErrInterrupt) {
				return resolver.CandidateInfo{}, errors.New(errors.ErrInvalidInput, "no application selected")
			}
			return resolver.CandidateInfo{}, errors.Wrap(err, errors.ErrInternal, "failed to read answer")
		}

		answer := strings.TrimSpace(line)
		if answer == "" {
			continue
		}
		if c, ok := parseChoice(answer, candidates); ok {
			return c, nil
		}
		_ = list.Message("Error", fmt.Sprintf(MsgErrBadChoice, answer))
	}
}

// parseChoice accepts a 1-based list number or a desktop file id
func parseChoice(answer string, candidates []resolver.CandidateInfo) (resolver.CandidateInfo, bool) {
	if n, err := strconv.Atoi(answer); err == nil {
		if n >= 1 && n <= len(candidates) {
			return candidates[n-1], true
		}
		return resolver.CandidateInfo{}, false
	}
	for _, c := range candidates {
		if c.ID == answer {
			return c, true
		}
	}
	return resolver.CandidateInfo{}, false
}
