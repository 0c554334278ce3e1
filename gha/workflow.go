package gha

import (
	"github.com/simonhull/firebird-suite/quill/export"
)

// Workflow is the root of a GitHub Actions workflow document.
//
// Build one with struct literals, then pass it to New to dedent run
// scripts and validate the whole tree before serializing with
// (*Workflow).YAML.
type Workflow struct {
	Name        string       `yaml:"name,omitempty"`
	RunName     string       `yaml:"run-name,omitempty"`
	Env         *Env         `yaml:"env,omitempty"`
	Defaults    *Defaults    `yaml:"defaults,omitempty"`
	Concurrency *Concurrency `yaml:"concurrency,omitempty"`
	Permissions *Permissions `yaml:"permissions,omitempty"`
	Jobs        Jobs         `yaml:"jobs"`
	On          On           `yaml:"on"`
}

// YAML serializes the workflow as canonical YAML.
func (w *Workflow) YAML() ([]byte, error) {
	return export.Marshal(w)
}

// JobEntry is one entry of the jobs mapping: an ID plus either a
// regular job or a reusable workflow call. Exactly one of Job and
// Call must be set.
type JobEntry struct {
	ID   string
	Job  *Job
	Call *WorkflowCall
}

// Jobs is the ordered jobs mapping.
type Jobs []JobEntry

// MarshalYAML renders the jobs as an ordered mapping.
func (j Jobs) MarshalYAML() (any, error) {
	items := make(export.MapSlice, 0, len(j))
	for i := range j {
		var value any
		if j[i].Call != nil {
			value = j[i].Call
		} else {
			value = j[i].Job
		}
		items = append(items, export.MapItem{Key: j[i].ID, Value: value})
	}
	return items, nil
}

// Job is a regular job: a runner plus an ordered list of steps.
type Job struct {
	Name            string       `yaml:"name,omitempty"`
	Needs           *Needs       `yaml:"needs,omitempty"`
	Permissions     *Permissions `yaml:"permissions,omitempty"`
	RunsOn          RunsOn       `yaml:"runs-on"`
	Environment     *Environment `yaml:"environment,omitempty"`
	Outputs         Outputs      `yaml:"outputs,omitempty"`
	Env             *Env         `yaml:"env,omitempty"`
	Defaults        *Defaults    `yaml:"defaults,omitempty"`
	If              any          `yaml:"if,omitempty"`
	Steps           []Step       `yaml:"steps"`
	TimeoutMinutes  *int         `yaml:"timeout-minutes,omitempty"`
	Strategy        *Strategy    `yaml:"strategy,omitempty"`
	ContinueOnError any          `yaml:"continue-on-error,omitempty"`
	Container       *Container   `yaml:"container,omitempty"`
	Services        Services     `yaml:"services,omitempty"`
	Concurrency     *Concurrency `yaml:"concurrency,omitempty"`
}

// WorkflowCall invokes a reusable workflow in place of inline steps.
// Uses takes the "{path}/{filename}@{ref}" form, or a plain path for
// workflows in the same repository.
type WorkflowCall struct {
	Name        string       `yaml:"name,omitempty"`
	Needs       *Needs       `yaml:"needs,omitempty"`
	Permissions *Permissions `yaml:"permissions,omitempty"`
	If          any          `yaml:"if,omitempty"`
	Uses        string       `yaml:"uses"`
	With        *Env         `yaml:"with,omitempty"`
	Secrets     *CallSecrets `yaml:"secrets,omitempty"`
	Strategy    *Strategy    `yaml:"strategy,omitempty"`
	Concurrency *Concurrency `yaml:"concurrency,omitempty"`
}

// Defaults carries settings steps inherit unless they override them.
type Defaults struct {
	Run *RunDefaults `yaml:"run,omitempty"`
}

// RunDefaults applies to every run step in scope.
type RunDefaults struct {
	Shell            Shell  `yaml:"shell,omitempty"`
	WorkingDirectory string `yaml:"working-directory,omitempty"`
}
