// Package gha models GitHub Actions workflows as closed Go records.
//
// A workflow is built from struct literals, prepared with New (which
// dedents run scripts and validates every rule in one pass), and
// serialized with Workflow.YAML. The output is canonical: mappings
// keep declaration order, unset optionals are omitted, multi-line
// scripts render as literal blocks, and YAML-1.1-ambiguous strings
// such as "on" are single quoted.
//
// FromYAML goes the other way, rejecting unknown field names instead
// of dropping them.
package gha
