package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/openwith/internal/cli"
	"github.com/arthur-debert/openwith/internal/version"
	"github.com/spf13/cobra/doc"
)

// Writes openwith.1 to stdout, or one page per command into the directory
// given as the only argument.
func main() {
	rootCmd := cli.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "OPENWITH",
		Section: "1",
		Source:  "openwith " + version.Version,
		Manual:  "openwith manual",
	}

	var err error
	if len(os.Args) > 1 {
		err = doc.GenManTree(rootCmd, header, os.Args[1])
	} else {
		err = doc.GenMan(rootCmd, header, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
