package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/simonhull/firebird-suite/quill/gha"
	"github.com/simonhull/firebird-suite/quill/internal/output"
	"github.com/spf13/cobra"
)

// ExportCmd creates and returns the 'export' command for rendering
// the built-in CI workflow
func ExportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the built-in CI workflow to YAML",
		Long: `Builds the repository's own CI workflow from its typed definition,
validates it, and writes the canonical YAML.

Example:
  quill export -o .github/workflows/ci.yml`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w, err := gha.New(ciWorkflow())
			if err != nil {
				output.Error("built-in workflow failed validation")
				reportValidation(err)
				os.Exit(1)
			}

			data, err := w.YAML()
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			if outPath == "" {
				fmt.Print(string(data))
				return
			}

			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}
			output.Success(fmt.Sprintf("Wrote %s", outPath))
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write to a file instead of stdout")

	return cmd
}

// ciWorkflow is the typed definition behind .github/workflows/ci.yml.
func ciWorkflow() gha.Workflow {
	return gha.Workflow{
		Name: "ci",
		On: gha.On{Triggers: &gha.Triggers{
			Push:        &gha.PushEvent{Branches: []string{"main"}},
			PullRequest: &gha.PullRequestEvent{},
		}},
		Jobs: gha.Jobs{
			{ID: "test", Job: &gha.Job{
				Name:   "test and vet",
				RunsOn: gha.RunsOn{Label: "ubuntu-latest"},
				Steps: []gha.Step{
					{Uses: "actions/checkout@v4"},
					{
						Uses: "actions/setup-go@v5",
						With: &gha.Env{Vars: gha.Vars{
							{Name: "go-version", Value: "stable"},
						}},
					},
					{
						Name: "test",
						Run: "go vet ./...\n" +
							"go test ./...",
					},
				},
			}},
		},
	}
}
