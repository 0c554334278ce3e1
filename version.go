// Package quill builds GitHub Actions workflow files from typed Go
// values instead of hand-written YAML.
//
// The gha package holds the workflow schema, the export package the
// canonical YAML encoder. See cmd/quill for the CLI.
package quill

// Version is the current quill release.
const Version = "0.3.0"
