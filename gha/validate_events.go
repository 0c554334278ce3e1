package gha

import "fmt"

func validateOn(l *errlist, path string, o *On) {
	set := 0
	if o.Event != "" {
		set++
	}
	if len(o.Events) > 0 {
		set++
	}
	if o.Triggers != nil {
		set++
	}
	if set != 1 {
		l.crossField(path, "triggers must be exactly one of an event name, a list of event names, or per-event configuration", "")
		return
	}

	switch {
	case o.Event != "":
		if !inSet(eventSet, string(o.Event)) {
			l.schema(path, fmt.Sprintf("unknown event %q", o.Event), "")
		}
	case len(o.Events) > 0:
		seen := make(map[Event]struct{}, len(o.Events))
		for i, ev := range o.Events {
			epath := fmt.Sprintf("%s[%d]", path, i)
			if !inSet(eventSet, string(ev)) {
				l.schema(epath, fmt.Sprintf("unknown event %q", ev), "")
			}
			if _, dup := seen[ev]; dup {
				l.crossField(epath, fmt.Sprintf("event %q listed twice", ev), "")
			}
			seen[ev] = struct{}{}
		}
	default:
		validateTriggers(l, path, o.Triggers)
	}
}

func validateTriggers(l *errlist, path string, t *Triggers) {
	configured := false

	typed := func(name string, types []string, allowed map[string]struct{}) {
		configured = true
		for i, v := range types {
			if !inSet(allowed, v) {
				l.schema(fmt.Sprintf("%s.%s.types[%d]", path, name, i),
					fmt.Sprintf("unknown activity type %q", v), suggestOneOf(allowed))
			}
		}
	}
	activity := func(name string, e *ActivityEvent) {
		if e == nil {
			return
		}
		configured = true
		for i, v := range e.Types {
			if v == "" {
				l.schema(fmt.Sprintf("%s.%s.types[%d]", path, name, i),
					"activity type is empty", "")
			}
		}
	}
	exclusive := func(name, field string, a, b []string) {
		if len(a) > 0 && len(b) > 0 {
			l.crossField(fmt.Sprintf("%s.%s", path, name),
				fmt.Sprintf("%s and %s-ignore are both set", field, field),
				"keep one of the two filters")
		}
	}

	if t.BranchProtectionRule != nil {
		typed("branch_protection_rule", t.BranchProtectionRule.Types, branchProtectionRuleTypes)
	}
	if t.CheckRun != nil {
		typed("check_run", t.CheckRun.Types, checkRunTypes)
	}
	if t.CheckSuite != nil {
		typed("check_suite", t.CheckSuite.Types, checkSuiteTypes)
	}

	activity("create", t.Create)
	activity("delete", t.Delete)
	activity("deployment", t.Deployment)
	activity("deployment_status", t.DeploymentStatus)
	activity("discussion", t.Discussion)
	activity("discussion_comment", t.DiscussionComment)
	activity("fork", t.Fork)
	activity("gollum", t.Gollum)
	activity("issue_comment", t.IssueComment)
	activity("issues", t.Issues)
	activity("label", t.Label)
	activity("member", t.Member)
	activity("merge_group", t.MergeGroup)
	activity("milestone", t.Milestone)
	activity("page_build", t.PageBuild)
	activity("project", t.Project)
	activity("project_card", t.ProjectCard)
	activity("project_column", t.ProjectColumn)
	activity("public", t.Public)
	activity("pull_request_review", t.PullRequestReview)
	activity("pull_request_review_comment", t.PullRequestReviewComment)
	activity("registry_package", t.RegistryPackage)
	activity("release", t.Release)
	activity("status", t.Status)
	activity("watch", t.Watch)
	activity("workflow_run", t.WorkflowRun)
	activity("repository_dispatch", t.RepositoryDispatch)

	if t.PullRequest != nil {
		typed("pull_request", t.PullRequest.Types, pullRequestTypes)
		exclusive("pull_request", "branches", t.PullRequest.Branches, t.PullRequest.BranchesIgnore)
		exclusive("pull_request", "paths", t.PullRequest.Paths, t.PullRequest.PathsIgnore)
	}
	if t.PullRequestTarget != nil {
		typed("pull_request_target", t.PullRequestTarget.Types, pullRequestTypes)
		exclusive("pull_request_target", "branches", t.PullRequestTarget.Branches, t.PullRequestTarget.BranchesIgnore)
		exclusive("pull_request_target", "paths", t.PullRequestTarget.Paths, t.PullRequestTarget.PathsIgnore)
	}
	if t.Push != nil {
		configured = true
		for i, v := range t.Push.Types {
			if v == "" {
				l.schema(fmt.Sprintf("%s.push.types[%d]", path, i), "activity type is empty", "")
			}
		}
		exclusive("push", "branches", t.Push.Branches, t.Push.BranchesIgnore)
		exclusive("push", "tags", t.Push.Tags, t.Push.TagsIgnore)
		exclusive("push", "paths", t.Push.Paths, t.Push.PathsIgnore)
	}

	if t.WorkflowCall != nil {
		configured = true
		validateInputs(l, path+".workflow_call.inputs", t.WorkflowCall.Inputs)
		for i := range t.WorkflowCall.Secrets {
			spath := fmt.Sprintf("%s.workflow_call.secrets[%d]", path, i)
			if !isName(t.WorkflowCall.Secrets[i].Name) {
				l.schema(spath, fmt.Sprintf("invalid secret name %q", t.WorkflowCall.Secrets[i].Name), "")
			}
		}
	}
	if t.WorkflowDispatch != nil {
		configured = true
		validateInputs(l, path+".workflow_dispatch.inputs", t.WorkflowDispatch.Inputs)
	}
	if len(t.Schedule) > 0 {
		configured = true
		for i := range t.Schedule {
			if !isCron(t.Schedule[i].Cron) {
				l.schema(fmt.Sprintf("%s.schedule[%d].cron", path, i),
					fmt.Sprintf("invalid cron expression %q", t.Schedule[i].Cron),
					"use the five-field minute hour day-of-month month day-of-week form")
			}
		}
	}

	if !configured {
		l.schema(path, "no event is configured", "configure at least one trigger event")
	}
}

func validateInputs(l *errlist, path string, inputs Inputs) {
	for i := range inputs {
		in := &inputs[i]
		ipath := fmt.Sprintf("%s.%s", path, in.Name)
		if !isName(in.Name) {
			l.schema(fmt.Sprintf("%s[%d]", path, i), fmt.Sprintf("invalid input name %q", in.Name), "")
		}
		if in.Description == "" {
			l.schema(ipath+".description", "input has no description", "")
		}
		if in.Type != "" && !inSet(inputTypeSet, string(in.Type)) {
			l.schema(ipath+".type", fmt.Sprintf("unknown input type %q", in.Type),
				suggestOneOf(inputTypeSet))
		}
		switch {
		case in.Type == "choice" && len(in.Options) == 0:
			l.crossField(ipath, "choice input has no options", "list the selectable values")
		case in.Type != "choice" && len(in.Options) > 0:
			l.crossField(ipath, "options are only valid for choice inputs", `set type to "choice" or drop options`)
		case in.Type == "choice" && in.Default != "":
			if !inSet(stringSet(in.Options...), in.Default) {
				l.crossField(ipath+".default",
					fmt.Sprintf("default %q is not one of the options", in.Default), "")
			}
		}
	}
}
