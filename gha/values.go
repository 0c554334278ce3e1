package gha

import (
	"github.com/simonhull/firebird-suite/quill/export"
)

// Var is one environment-style key/value pair. Values may be
// strings, numbers, or booleans.
type Var struct {
	Name  string
	Value any
}

// Vars is an ordered set of key/value pairs. Order is preserved in
// the serialized document.
type Vars []Var

// MarshalYAML renders the pairs as an ordered mapping.
func (v Vars) MarshalYAML() (any, error) {
	items := make(export.MapSlice, 0, len(v))
	for _, entry := range v {
		items = append(items, export.MapItem{Key: entry.Name, Value: entry.Value})
	}
	return items, nil
}

// Env sets environment variables: either explicit pairs or a single
// "${{ ... }}" expression referencing a whole map. Exactly one form
// must be used. The same shape serves step `with` blocks.
type Env struct {
	Vars Vars
	Expr string
}

// MarshalYAML collapses to whichever form is set.
func (e Env) MarshalYAML() (any, error) {
	if e.Expr != "" {
		return e.Expr, nil
	}
	return e.Vars, nil
}

// Output is one job output, usually an expression over step results.
type Output struct {
	Name  string
	Value string
}

// Outputs is an ordered set of job outputs.
type Outputs []Output

// MarshalYAML renders the outputs as an ordered mapping.
func (o Outputs) MarshalYAML() (any, error) {
	items := make(export.MapSlice, 0, len(o))
	for _, out := range o {
		items = append(items, export.MapItem{Key: out.Name, Value: out.Value})
	}
	return items, nil
}

// Needs names the jobs that must finish before this one runs: a
// single job ID or a non-empty list. Exactly one form must be set.
type Needs struct {
	Job  string
	Jobs []string
}

// MarshalYAML collapses to a scalar for the single-job form.
func (n Needs) MarshalYAML() (any, error) {
	if n.Job != "" {
		return n.Job, nil
	}
	return n.Jobs, nil
}

// RunsOn picks the runner: one label or a list of labels. A label is
// either an enumerated platform (ubuntu-latest, ...) or a free-form
// string carrying a "${{ ... }}" expression.
type RunsOn struct {
	Label  string
	Labels []string
}

// MarshalYAML collapses to a scalar for the single-label form.
func (r RunsOn) MarshalYAML() (any, error) {
	if r.Label != "" {
		return r.Label, nil
	}
	return r.Labels, nil
}

// Concurrency limits parallel runs sharing a group. With only Group
// set it serializes as the plain-string shorthand.
type Concurrency struct {
	Group            string `yaml:"group"`
	CancelInProgress any    `yaml:"cancel-in-progress,omitempty"`
}

// MarshalYAML collapses to the scalar shorthand when possible.
func (c Concurrency) MarshalYAML() (any, error) {
	if c.CancelInProgress == nil {
		return c.Group, nil
	}
	type record Concurrency
	return record(c), nil
}

// Environment references a deployment environment configured in the
// repository, optionally with a deployment URL.
type Environment struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url,omitempty"`
}

// MarshalYAML collapses to the plain-name shorthand when no URL is
// set.
func (e Environment) MarshalYAML() (any, error) {
	if e.URL == "" {
		return e.Name, nil
	}
	type record Environment
	return record(e), nil
}

// Credentials authenticate a container registry pull, matching what
// `docker login` would take.
type Credentials struct {
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
}

// Container describes the Docker container a job (or service) runs
// in. Volumes take the "<source>:<destinationPath>" form.
type Container struct {
	Image       string       `yaml:"image"`
	Credentials *Credentials `yaml:"credentials,omitempty"`
	Env         *Env         `yaml:"env,omitempty"`
	Ports       []any        `yaml:"ports,omitempty"`
	Volumes     []string     `yaml:"volumes,omitempty"`
	Options     string       `yaml:"options,omitempty"`
}

// MarshalYAML collapses to the image-name shorthand when nothing but
// the image is set.
func (c Container) MarshalYAML() (any, error) {
	if c.Credentials == nil && c.Env == nil && len(c.Ports) == 0 &&
		len(c.Volumes) == 0 && c.Options == "" {
		return c.Image, nil
	}
	type record Container
	return record(c), nil
}

// Service is a named service container attached to a job.
type Service struct {
	Name      string
	Container Container
}

// Services is an ordered set of service containers.
type Services []Service

// MarshalYAML renders the services as an ordered mapping.
func (s Services) MarshalYAML() (any, error) {
	items := make(export.MapSlice, 0, len(s))
	for _, svc := range s {
		items = append(items, export.MapItem{Key: svc.Name, Value: svc.Container})
	}
	return items, nil
}

// Axis is one matrix dimension: a name and its values.
type Axis struct {
	Name   string
	Values []any
}

// Axes is an ordered list of matrix dimensions.
type Axes []Axis

// MarshalYAML renders the axes as an ordered mapping.
func (a Axes) MarshalYAML() (any, error) {
	items := make(export.MapSlice, 0, len(a))
	for _, axis := range a {
		items = append(items, export.MapItem{Key: axis.Name, Value: axis.Values})
	}
	return items, nil
}

// Matrix is a build matrix: literal axes or one "${{ ... }}"
// expression producing the whole matrix. Exactly one form must be
// set.
type Matrix struct {
	Axes Axes
	Expr string
}

// MarshalYAML collapses to whichever form is set.
func (m Matrix) MarshalYAML() (any, error) {
	if m.Expr != "" {
		return m.Expr, nil
	}
	return m.Axes, nil
}

// Strategy fans a job out over a build matrix.
type Strategy struct {
	Matrix      Matrix `yaml:"matrix"`
	FailFast    *bool  `yaml:"fail-fast,omitempty"`
	MaxParallel *int   `yaml:"max-parallel,omitempty"`
}

// PermissionScopes grants the GITHUB_TOKEN an access level per API
// scope. Unset scopes keep GitHub's defaults.
type PermissionScopes struct {
	Actions            PermissionLevel `yaml:"actions,omitempty"`
	Checks             PermissionLevel `yaml:"checks,omitempty"`
	Contents           PermissionLevel `yaml:"contents,omitempty"`
	Deployments        PermissionLevel `yaml:"deployments,omitempty"`
	Discussions        PermissionLevel `yaml:"discussions,omitempty"`
	IDToken            PermissionLevel `yaml:"id-token,omitempty"`
	Issues             PermissionLevel `yaml:"issues,omitempty"`
	Packages           PermissionLevel `yaml:"packages,omitempty"`
	Pages              PermissionLevel `yaml:"pages,omitempty"`
	PullRequests       PermissionLevel `yaml:"pull-requests,omitempty"`
	RepositoryProjects PermissionLevel `yaml:"repository-projects,omitempty"`
	SecurityEvents     PermissionLevel `yaml:"security-events,omitempty"`
	Statuses           PermissionLevel `yaml:"statuses,omitempty"`
}

// Permissions modifies the default GITHUB_TOKEN grants: the blanket
// "read-all"/"write-all" form or a per-scope map. Exactly one form
// must be set.
type Permissions struct {
	All    string
	Scopes *PermissionScopes
}

// MarshalYAML collapses to whichever form is set.
func (p Permissions) MarshalYAML() (any, error) {
	if p.All != "" {
		return p.All, nil
	}
	return p.Scopes, nil
}

// CallSecrets passes secrets to a called reusable workflow: the
// literal "inherit", a "${{ ... }}" expression, or explicit pairs.
// Exactly one form must be set.
type CallSecrets struct {
	Inherit bool
	Vars    Vars
	Expr    string
}

// MarshalYAML collapses to whichever form is set.
func (s CallSecrets) MarshalYAML() (any, error) {
	if s.Inherit {
		return "inherit", nil
	}
	if s.Expr != "" {
		return s.Expr, nil
	}
	return s.Vars, nil
}
