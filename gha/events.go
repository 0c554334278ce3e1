package gha

import (
	"github.com/simonhull/firebird-suite/quill/export"
)

// On selects what triggers the workflow: one event name, a list of
// event names, or a per-event configuration. Exactly one form must
// be set.
type On struct {
	Event    Event
	Events   []Event
	Triggers *Triggers
}

// MarshalYAML collapses to whichever form is set.
func (o On) MarshalYAML() (any, error) {
	if o.Event != "" {
		return o.Event, nil
	}
	if len(o.Events) > 0 {
		return o.Events, nil
	}
	return o.Triggers, nil
}

// Triggers configures individual events, in the order GitHub
// documents them. Events without a dedicated record take an
// ActivityEvent filter (or none).
type Triggers struct {
	BranchProtectionRule     *BranchProtectionRuleEvent `yaml:"branch_protection_rule,omitempty"`
	CheckRun                 *CheckRunEvent             `yaml:"check_run,omitempty"`
	CheckSuite               *CheckSuiteEvent           `yaml:"check_suite,omitempty"`
	Create                   *ActivityEvent             `yaml:"create,omitempty"`
	Delete                   *ActivityEvent             `yaml:"delete,omitempty"`
	Deployment               *ActivityEvent             `yaml:"deployment,omitempty"`
	DeploymentStatus         *ActivityEvent             `yaml:"deployment_status,omitempty"`
	Discussion               *ActivityEvent             `yaml:"discussion,omitempty"`
	DiscussionComment        *ActivityEvent             `yaml:"discussion_comment,omitempty"`
	Fork                     *ActivityEvent             `yaml:"fork,omitempty"`
	Gollum                   *ActivityEvent             `yaml:"gollum,omitempty"`
	IssueComment             *ActivityEvent             `yaml:"issue_comment,omitempty"`
	Issues                   *ActivityEvent             `yaml:"issues,omitempty"`
	Label                    *ActivityEvent             `yaml:"label,omitempty"`
	Member                   *ActivityEvent             `yaml:"member,omitempty"`
	MergeGroup               *ActivityEvent             `yaml:"merge_group,omitempty"`
	Milestone                *ActivityEvent             `yaml:"milestone,omitempty"`
	PageBuild                *ActivityEvent             `yaml:"page_build,omitempty"`
	Project                  *ActivityEvent             `yaml:"project,omitempty"`
	ProjectCard              *ActivityEvent             `yaml:"project_card,omitempty"`
	ProjectColumn            *ActivityEvent             `yaml:"project_column,omitempty"`
	Public                   *ActivityEvent             `yaml:"public,omitempty"`
	PullRequest              *PullRequestEvent          `yaml:"pull_request,omitempty"`
	PullRequestReview        *ActivityEvent             `yaml:"pull_request_review,omitempty"`
	PullRequestReviewComment *ActivityEvent             `yaml:"pull_request_review_comment,omitempty"`
	PullRequestTarget        *PullRequestEvent          `yaml:"pull_request_target,omitempty"`
	Push                     *PushEvent                 `yaml:"push,omitempty"`
	RegistryPackage          *ActivityEvent             `yaml:"registry_package,omitempty"`
	Release                  *ActivityEvent             `yaml:"release,omitempty"`
	Status                   *ActivityEvent             `yaml:"status,omitempty"`
	Watch                    *ActivityEvent             `yaml:"watch,omitempty"`
	WorkflowCall             *WorkflowCallEvent         `yaml:"workflow_call,omitempty"`
	WorkflowDispatch         *WorkflowDispatchEvent     `yaml:"workflow_dispatch,omitempty"`
	WorkflowRun              *ActivityEvent             `yaml:"workflow_run,omitempty"`
	RepositoryDispatch       *ActivityEvent             `yaml:"repository_dispatch,omitempty"`
	Schedule                 []ScheduleItem             `yaml:"schedule,omitempty"`
}

// ActivityEvent narrows a webhook event to specific activity types.
// An empty record subscribes to every type of the event.
type ActivityEvent struct {
	Types []string `yaml:"types,omitempty"`
}

// BranchProtectionRuleEvent filters branch_protection_rule activity.
type BranchProtectionRuleEvent struct {
	Types []string `yaml:"types,omitempty"`
}

// CheckRunEvent filters check_run activity.
type CheckRunEvent struct {
	Types []string `yaml:"types,omitempty"`
}

// CheckSuiteEvent filters check_suite activity.
type CheckSuiteEvent struct {
	Types []string `yaml:"types,omitempty"`
}

// PushEvent filters push triggers by ref and path. The branches,
// tags, and paths filters each exclude their -ignore counterpart.
type PushEvent struct {
	Types          []string `yaml:"types,omitempty"`
	Branches       []string `yaml:"branches,omitempty"`
	BranchesIgnore []string `yaml:"branches-ignore,omitempty"`
	Tags           []string `yaml:"tags,omitempty"`
	TagsIgnore     []string `yaml:"tags-ignore,omitempty"`
	Paths          []string `yaml:"paths,omitempty"`
	PathsIgnore    []string `yaml:"paths-ignore,omitempty"`
}

// PullRequestEvent filters pull_request (and pull_request_target)
// triggers by activity type, ref, and path.
type PullRequestEvent struct {
	Types          []string `yaml:"types,omitempty"`
	Branches       []string `yaml:"branches,omitempty"`
	BranchesIgnore []string `yaml:"branches-ignore,omitempty"`
	Paths          []string `yaml:"paths,omitempty"`
	PathsIgnore    []string `yaml:"paths-ignore,omitempty"`
}

// ScheduleItem runs the workflow on a five-field POSIX cron
// schedule, evaluated in UTC.
type ScheduleItem struct {
	Cron string `yaml:"cron"`
}

// WorkflowDispatchEvent makes the workflow manually runnable,
// optionally collecting typed inputs.
type WorkflowDispatchEvent struct {
	Inputs Inputs `yaml:"inputs,omitempty"`
}

// WorkflowCallEvent makes the workflow callable from other
// workflows, declaring the inputs and secrets callers may pass.
type WorkflowCallEvent struct {
	Inputs  Inputs  `yaml:"inputs,omitempty"`
	Secrets Secrets `yaml:"secrets,omitempty"`
}

// Input declares one dispatch or call input. Options is required
// exactly when Type is "choice".
type Input struct {
	Name               string    `yaml:"-"`
	Description        string    `yaml:"description"`
	DeprecationMessage string    `yaml:"deprecationMessage,omitempty"`
	Required           *bool     `yaml:"required,omitempty"`
	Default            string    `yaml:"default,omitempty"`
	Type               InputType `yaml:"type,omitempty"`
	Options            []string  `yaml:"options,omitempty"`
}

// Inputs is an ordered set of inputs keyed by name.
type Inputs []Input

// MarshalYAML renders the inputs as an ordered mapping.
func (in Inputs) MarshalYAML() (any, error) {
	items := make(export.MapSlice, 0, len(in))
	for i := range in {
		items = append(items, export.MapItem{Key: in[i].Name, Value: in[i]})
	}
	return items, nil
}

// Secret declares one secret a called workflow accepts.
type Secret struct {
	Name        string `yaml:"-"`
	Description string `yaml:"description,omitempty"`
	Required    bool   `yaml:"required"`
}

// Secrets is an ordered set of secret declarations keyed by name.
type Secrets []Secret

// MarshalYAML renders the secrets as an ordered mapping.
func (s Secrets) MarshalYAML() (any, error) {
	items := make(export.MapSlice, 0, len(s))
	for i := range s {
		items = append(items, export.MapItem{Key: s[i].Name, Value: s[i]})
	}
	return items, nil
}
