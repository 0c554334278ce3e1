package main

import (
	"os"

	"github.com/simonhull/firebird-suite/quill/internal/commands"
)

func main() {
	rootCmd := commands.RootCmd()

	rootCmd.AddCommand(commands.ExportCmd())
	rootCmd.AddCommand(commands.CheckCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
