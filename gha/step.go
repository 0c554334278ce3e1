package gha

// Step is one step of a job: either an action reference (Uses) or a
// shell script (Run). At least one of the two must be set; setting
// both is rejected.
//
// Run scripts are dedented before export, so the common indentation
// a script picks up from being embedded in Go source is stripped.
type Step struct {
	ID               string `yaml:"id,omitempty"`
	If               any    `yaml:"if,omitempty"`
	Name             string `yaml:"name,omitempty"`
	Uses             string `yaml:"uses,omitempty"`
	Run              string `yaml:"run,omitempty"`
	WorkingDirectory string `yaml:"working-directory,omitempty"`
	Shell            Shell  `yaml:"shell,omitempty"`
	With             *Env   `yaml:"with,omitempty"`
	Env              *Env   `yaml:"env,omitempty"`
	ContinueOnError  any    `yaml:"continue-on-error,omitempty"`
	TimeoutMinutes   *int   `yaml:"timeout-minutes,omitempty"`
}
