package gha

import (
	"regexp"
	"sort"
	"strings"

	"github.com/robfig/cron/v3"
)

var (
	// namePattern covers job IDs, needs references, and input names.
	namePattern = regexp.MustCompile(`^[_a-zA-Z][a-zA-Z0-9_-]*$`)

	// volumePattern matches "<source>:<destinationPath>" mounts.
	volumePattern = regexp.MustCompile(`^[^:]+:[^:]+$`)

	// workflowRefPattern matches reusable workflow references of the
	// form "./{path}/{file}.yml" or "{owner}/{repo}/{path}/{file}@{ref}".
	workflowRefPattern = regexp.MustCompile(`^(.+/)+(.+)\.(ya?ml)(@.+)?$`)

	// expressionPattern matches a string that is entirely one
	// "${{ ... }}" expression.
	expressionPattern = regexp.MustCompile(`(?s)^\$\{\{.*\}\}$`)

	// containsExpressionPattern matches a string with at least one
	// "${{ ... }}" expression anywhere inside it.
	containsExpressionPattern = regexp.MustCompile(`(?s)\$\{\{.*\}\}`)
)

// cronParser accepts the five-field POSIX syntax GitHub supports.
// Descriptor forms like @hourly are deliberately not enabled.
var cronParser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
)

func isName(s string) bool { return namePattern.MatchString(s) }

func isVolume(s string) bool { return volumePattern.MatchString(s) }

func isWorkflowRef(s string) bool { return workflowRefPattern.MatchString(s) }

func isExpression(s string) bool { return expressionPattern.MatchString(s) }

func containsExpression(s string) bool {
	return containsExpressionPattern.MatchString(s)
}

func isCron(s string) bool {
	_, err := cronParser.Parse(s)
	return err == nil
}

// Event names a webhook or meta event that can trigger a workflow.
type Event string

var eventSet = stringSet(
	"branch_protection_rule", "check_run", "check_suite", "create",
	"delete", "deployment", "deployment_status", "discussion",
	"discussion_comment", "fork", "gollum", "issue_comment", "issues",
	"label", "member", "merge_group", "milestone", "page_build",
	"project", "project_card", "project_column", "public",
	"pull_request", "pull_request_review",
	"pull_request_review_comment", "pull_request_target", "push",
	"registry_package", "release", "repository_dispatch", "schedule",
	"status", "watch", "workflow_call", "workflow_dispatch",
	"workflow_run",
)

// PermissionLevel is an access level granted to the workflow token.
type PermissionLevel string

var permissionLevelSet = stringSet("read", "write", "none")

// Shell names a shell usable for run steps.
type Shell string

var shellSet = stringSet("bash", "pwsh", "python", "sh", "cmd", "powershell")

// InputType discriminates workflow_dispatch input kinds.
type InputType string

var inputTypeSet = stringSet("string", "choice", "boolean", "environment")

// runnerPlatformSet lists the GitHub-hosted (and self-hosted) runner
// labels. Anything else must be an expression to be accepted.
var runnerPlatformSet = stringSet(
	"macos-10.15", "macos-11", "macos-12", "macos-latest",
	"self-hosted", "ubuntu-18.04", "ubuntu-20.04", "ubuntu-22.04",
	"ubuntu-latest", "windows-2019", "windows-2022", "windows-latest",
)

// Per-event activity types, for events whose types filter is closed.
var (
	branchProtectionRuleTypes = stringSet("created", "edited", "deleted")
	checkRunTypes             = stringSet("created", "requested", "completed", "requested_action")
	checkSuiteTypes           = stringSet("completed")
	pullRequestTypes          = stringSet(
		"assigned", "unassigned", "labeled", "unlabeled", "opened",
		"edited", "closed", "reopened", "synchronize",
		"converted_to_draft", "ready_for_review", "locked", "unlocked",
		"review_requested", "review_request_removed",
		"auto_merge_enabled", "auto_merge_disabled",
	)
)

func stringSet(values ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func inSet(set map[string]struct{}, value string) bool {
	_, ok := set[value]
	return ok
}

// suggestOneOf renders a set as a stable "use one of: ..." hint.
func suggestOneOf(set map[string]struct{}) string {
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Strings(values)
	return "use one of: " + strings.Join(values, ", ")
}

// isRunnerLabel accepts an enumerated runner platform or a free-form
// string carrying a "${{ ... }}" expression (e.g. "${{ matrix.os }}").
func isRunnerLabel(s string) bool {
	return inSet(runnerPlatformSet, s) || containsExpression(s)
}

// isCondition accepts the scalar kinds allowed for if-style fields.
func isCondition(v any) bool {
	switch v.(type) {
	case string, bool, int, int64, float64:
		return true
	}
	return false
}

// isScalar accepts the scalar kinds allowed for env and with values.
func isScalar(v any) bool {
	return isCondition(v)
}

// isBoolOrExpression accepts a bool or a full "${{ ... }}" string,
// the two forms allowed for continue-on-error and cancel-in-progress.
func isBoolOrExpression(v any) bool {
	switch t := v.(type) {
	case bool:
		return true
	case string:
		return isExpression(t)
	}
	return false
}
