package commands

import (
	"github.com/simonhull/firebird-suite/quill"
	"github.com/simonhull/firebird-suite/quill/internal/output"
	"github.com/spf13/cobra"
)

// RootCmd creates and returns the root command for the quill CLI
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "quill",
		Short: "Typed GitHub Actions workflows for Go",
		Long: `Quill builds GitHub Actions workflows from typed Go definitions.

Workflows are validated before a single byte is written: job
references, runner labels, cron schedules, permission scopes, and
every other field are checked in one pass, and the exported YAML is
canonical and diff-stable.`,
		Version: quill.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")

	return cmd
}
