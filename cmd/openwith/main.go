package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/openwith/internal/cli"
	"github.com/arthur-debert/openwith/pkg/errors"
	"github.com/arthur-debert/openwith/pkg/output"
	"github.com/charmbracelet/lipgloss"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		styles := output.DefaultStyles(lipgloss.NewRenderer(os.Stderr))
		fmt.Fprintln(os.Stderr, styles.Render("Error", fmt.Sprintf("Error: %v", err)))
		os.Exit(errors.ExitCode(err))
	}
}
