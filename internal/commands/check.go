package commands

import (
	"fmt"
	"os"

	"github.com/simonhull/firebird-suite/quill/gha"
	"github.com/simonhull/firebird-suite/quill/internal/output"
	"github.com/spf13/cobra"
)

// CheckCmd creates and returns the 'check' command for validating
// workflow files
func CheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [workflow.yml]",
		Short: "Validate a workflow file",
		Long: `Parses a workflow file against the closed schema and runs the full
validation pass. Unknown field names, broken job references, invalid
cron schedules, and every other violation are reported together.

Example:
  quill check .github/workflows/ci.yml`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			path := args[0]

			output.Verbose(fmt.Sprintf("Reading workflow from: %s", path))

			data, err := os.ReadFile(path)
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			w, err := gha.FromYAML(data)
			if err != nil {
				output.Error(fmt.Sprintf("%s is not valid", path))
				reportValidation(err)
				os.Exit(1)
			}

			output.Success(fmt.Sprintf("%s is valid (%d jobs)", path, len(w.Jobs)))
		},
	}

	return cmd
}

// reportValidation prints each collected violation on its own line.
func reportValidation(err error) {
	errs, ok := err.(gha.ValidationErrors)
	if !ok {
		output.Step(err.Error())
		return
	}
	if len(errs) > 1 {
		output.Info(fmt.Sprintf("found %d validation errors:", len(errs)))
	}
	for i := range errs {
		output.Step(errs[i].Error())
	}
}
