package gha

import (
	"fmt"

	"github.com/simonhull/firebird-suite/quill/internal/dedent"
)

// New prepares a workflow for export: every run script is dedented,
// then the whole tree is validated. On failure the returned error is
// a ValidationErrors collecting every rule violation found, not just
// the first.
func New(w Workflow) (*Workflow, error) {
	for ji := range w.Jobs {
		if w.Jobs[ji].Job == nil {
			continue
		}
		steps := w.Jobs[ji].Job.Steps
		for si := range steps {
			if steps[si].Run != "" {
				steps[si].Run = dedent.Dedent(steps[si].Run)
			}
		}
	}

	var l errlist
	validateWorkflow(&l, &w)
	if err := l.err(); err != nil {
		return nil, err
	}
	return &w, nil
}

func validateWorkflow(l *errlist, w *Workflow) {
	validateOn(l, "on", &w.On)

	if w.Env != nil {
		validateEnv(l, "env", w.Env)
	}
	if w.Defaults != nil {
		validateDefaults(l, "defaults", w.Defaults)
	}
	if w.Concurrency != nil {
		validateConcurrency(l, "concurrency", w.Concurrency)
	}
	if w.Permissions != nil {
		validatePermissions(l, "permissions", w.Permissions)
	}

	if len(w.Jobs) == 0 {
		l.schema("jobs", "workflow has no jobs", "add at least one job")
		return
	}

	ids := make(map[string]struct{}, len(w.Jobs))
	for i := range w.Jobs {
		path := fmt.Sprintf("jobs[%d]", i)
		entry := &w.Jobs[i]
		if !isName(entry.ID) {
			l.schema(path, fmt.Sprintf("invalid job ID %q", entry.ID),
				"job IDs start with a letter or _ and contain only alphanumerics, - and _")
		}
		if _, dup := ids[entry.ID]; dup {
			l.crossField(path, fmt.Sprintf("duplicate job ID %q", entry.ID), "rename one of the jobs")
		}
		ids[entry.ID] = struct{}{}
	}

	for i := range w.Jobs {
		path := fmt.Sprintf("jobs[%d]", i)
		entry := &w.Jobs[i]
		switch {
		case entry.Job != nil && entry.Call != nil:
			l.crossField(path, "job sets both steps and a workflow call", "use either a regular job or a uses reference, not both")
		case entry.Job != nil:
			validateJob(l, path, entry.Job, ids)
		case entry.Call != nil:
			validateCall(l, path, entry.Call, ids)
		default:
			l.crossField(path, "job sets neither steps nor a workflow call", "fill in Job or Call")
		}
	}
}

func validateJob(l *errlist, path string, j *Job, ids map[string]struct{}) {
	if j.Needs != nil {
		validateNeeds(l, path+".needs", j.Needs, ids)
	}
	if j.Permissions != nil {
		validatePermissions(l, path+".permissions", j.Permissions)
	}
	validateRunsOn(l, path+".runs-on", &j.RunsOn)
	if j.Environment != nil && j.Environment.Name == "" {
		l.schema(path+".environment", "environment has no name", "set the environment name")
	}
	validateOutputs(l, path+".outputs", j.Outputs)
	if j.Env != nil {
		validateEnv(l, path+".env", j.Env)
	}
	if j.Defaults != nil {
		validateDefaults(l, path+".defaults", j.Defaults)
	}
	if j.If != nil && !isCondition(j.If) {
		l.schema(path+".if", fmt.Sprintf("condition has unsupported type %T", j.If),
			"use a string expression or a literal scalar")
	}
	if len(j.Steps) == 0 {
		l.schema(path+".steps", "job has no steps", "add at least one step")
	}
	for i := range j.Steps {
		validateStep(l, fmt.Sprintf("%s.steps[%d]", path, i), &j.Steps[i])
	}
	if j.TimeoutMinutes != nil && *j.TimeoutMinutes <= 0 {
		l.schema(path+".timeout-minutes", fmt.Sprintf("timeout %d is not positive", *j.TimeoutMinutes), "")
	}
	if j.Strategy != nil {
		validateStrategy(l, path+".strategy", j.Strategy)
	}
	if j.ContinueOnError != nil && !isBoolOrExpression(j.ContinueOnError) {
		l.schema(path+".continue-on-error", "value is neither a bool nor a ${{ ... }} expression", "")
	}
	if j.Container != nil {
		validateContainer(l, path+".container", j.Container)
	}
	for i := range j.Services {
		spath := fmt.Sprintf("%s.services[%d]", path, i)
		if !isName(j.Services[i].Name) {
			l.schema(spath, fmt.Sprintf("invalid service name %q", j.Services[i].Name), "")
		}
		validateContainer(l, spath, &j.Services[i].Container)
	}
	if j.Concurrency != nil {
		validateConcurrency(l, path+".concurrency", j.Concurrency)
	}
}

func validateCall(l *errlist, path string, c *WorkflowCall, ids map[string]struct{}) {
	if c.Needs != nil {
		validateNeeds(l, path+".needs", c.Needs, ids)
	}
	if c.Permissions != nil {
		validatePermissions(l, path+".permissions", c.Permissions)
	}
	if c.If != nil && !isCondition(c.If) {
		l.schema(path+".if", fmt.Sprintf("condition has unsupported type %T", c.If),
			"use a string expression or a literal scalar")
	}
	if c.Uses == "" {
		l.schema(path+".uses", "workflow call has no uses reference", "")
	} else if !isWorkflowRef(c.Uses) {
		l.schema(path+".uses", fmt.Sprintf("invalid workflow reference %q", c.Uses),
			"use {owner}/{repo}/{path}/{file}.yml@{ref} or ./{path}/{file}.yml")
	}
	if c.With != nil {
		validateEnv(l, path+".with", c.With)
	}
	if c.Secrets != nil {
		validateCallSecrets(l, path+".secrets", c.Secrets)
	}
	if c.Strategy != nil {
		validateStrategy(l, path+".strategy", c.Strategy)
	}
	if c.Concurrency != nil {
		validateConcurrency(l, path+".concurrency", c.Concurrency)
	}
}

func validateStep(l *errlist, path string, s *Step) {
	switch {
	case s.Uses != "" && s.Run != "":
		l.crossField(path, "step sets both uses and run", "split it into two steps")
	case s.Uses == "" && s.Run == "":
		l.crossField(path, "step sets neither uses nor run", "reference an action or provide a script")
	}
	if s.If != nil && !isCondition(s.If) {
		l.schema(path+".if", fmt.Sprintf("condition has unsupported type %T", s.If),
			"use a string expression or a literal scalar")
	}
	if s.Shell != "" && !inSet(shellSet, string(s.Shell)) {
		l.schema(path+".shell", fmt.Sprintf("unknown shell %q", s.Shell),
			suggestOneOf(shellSet))
	}
	if s.With != nil {
		validateEnv(l, path+".with", s.With)
	}
	if s.Env != nil {
		validateEnv(l, path+".env", s.Env)
	}
	if s.ContinueOnError != nil && !isBoolOrExpression(s.ContinueOnError) {
		l.schema(path+".continue-on-error", "value is neither a bool nor a ${{ ... }} expression", "")
	}
	if s.TimeoutMinutes != nil && *s.TimeoutMinutes <= 0 {
		l.schema(path+".timeout-minutes", fmt.Sprintf("timeout %d is not positive", *s.TimeoutMinutes), "")
	}
}

func validateEnv(l *errlist, path string, e *Env) {
	if e.Expr != "" && len(e.Vars) > 0 {
		l.crossField(path, "both explicit pairs and an expression are set", "use one form")
		return
	}
	if e.Expr != "" {
		if !containsExpression(e.Expr) {
			l.schema(path, fmt.Sprintf("%q is not a ${{ ... }} expression", e.Expr), "")
		}
		return
	}
	for i, v := range e.Vars {
		vpath := fmt.Sprintf("%s.%s", path, v.Name)
		if v.Name == "" {
			l.schema(fmt.Sprintf("%s[%d]", path, i), "variable has no name", "")
		}
		if v.Value != nil && !isScalar(v.Value) {
			l.schema(vpath, fmt.Sprintf("value has unsupported type %T", v.Value),
				"values must be strings, numbers, or booleans")
		}
	}
}

func validateOutputs(l *errlist, path string, o Outputs) {
	for i := range o {
		opath := fmt.Sprintf("%s[%d]", path, i)
		if !isName(o[i].Name) {
			l.schema(opath, fmt.Sprintf("invalid output name %q", o[i].Name), "")
		}
		if o[i].Value == "" {
			l.schema(opath, "output has no value", "")
		}
	}
}

func validateNeeds(l *errlist, path string, n *Needs, ids map[string]struct{}) {
	switch {
	case n.Job != "" && len(n.Jobs) > 0:
		l.crossField(path, "both a single job and a list are set", "use one form")
		return
	case n.Job == "" && len(n.Jobs) == 0:
		l.crossField(path, "needs names no jobs", "list at least one job ID or drop the field")
		return
	}
	refs := n.Jobs
	if n.Job != "" {
		refs = []string{n.Job}
	}
	for _, ref := range refs {
		if _, ok := ids[ref]; !ok {
			l.crossField(path, fmt.Sprintf("needs references unknown job %q", ref),
				"reference a job ID declared in this workflow")
		}
	}
}

func validateRunsOn(l *errlist, path string, r *RunsOn) {
	switch {
	case r.Label != "" && len(r.Labels) > 0:
		l.crossField(path, "both a single label and a list are set", "use one form")
	case r.Label == "" && len(r.Labels) == 0:
		l.crossField(path, "job names no runner", "set a runner label")
	case r.Label != "":
		if !isRunnerLabel(r.Label) {
			l.schema(path, fmt.Sprintf("unknown runner label %q", r.Label),
				"use a hosted platform label or a ${{ ... }} expression")
		}
	default:
		for i, label := range r.Labels {
			if !isRunnerLabel(label) {
				l.schema(fmt.Sprintf("%s[%d]", path, i),
					fmt.Sprintf("unknown runner label %q", label),
					"use a hosted platform label or a ${{ ... }} expression")
			}
		}
	}
}

func validateConcurrency(l *errlist, path string, c *Concurrency) {
	if c.Group == "" {
		l.schema(path+".group", "concurrency has no group", "set the group name")
	}
	if c.CancelInProgress != nil && !isBoolOrExpression(c.CancelInProgress) {
		l.schema(path+".cancel-in-progress", "value is neither a bool nor a ${{ ... }} expression", "")
	}
}

func validatePermissions(l *errlist, path string, p *Permissions) {
	switch {
	case p.All != "" && p.Scopes != nil:
		l.crossField(path, "both a blanket grant and per-scope grants are set", "use one form")
	case p.All == "" && p.Scopes == nil:
		l.crossField(path, "permissions grants nothing", "set read-all, write-all, or per-scope levels")
	case p.All != "":
		if p.All != "read-all" && p.All != "write-all" {
			l.schema(path, fmt.Sprintf("unknown blanket grant %q", p.All),
				"use read-all or write-all")
		}
	default:
		validateScopes(l, path, p.Scopes)
	}
}

func validateScopes(l *errlist, path string, s *PermissionScopes) {
	check := func(name string, level PermissionLevel) {
		if level != "" && !inSet(permissionLevelSet, string(level)) {
			l.schema(path+"."+name, fmt.Sprintf("unknown access level %q", level),
				suggestOneOf(permissionLevelSet))
		}
	}
	check("actions", s.Actions)
	check("checks", s.Checks)
	check("contents", s.Contents)
	check("deployments", s.Deployments)
	check("discussions", s.Discussions)
	check("id-token", s.IDToken)
	check("issues", s.Issues)
	check("packages", s.Packages)
	check("pages", s.Pages)
	check("pull-requests", s.PullRequests)
	check("repository-projects", s.RepositoryProjects)
	check("security-events", s.SecurityEvents)
	check("statuses", s.Statuses)
}

func validateContainer(l *errlist, path string, c *Container) {
	if c.Image == "" {
		l.schema(path+".image", "container has no image", "")
	}
	if c.Env != nil {
		validateEnv(l, path+".env", c.Env)
	}
	for i, v := range c.Volumes {
		if !isVolume(v) {
			l.schema(fmt.Sprintf("%s.volumes[%d]", path, i),
				fmt.Sprintf("invalid volume %q", v),
				"use the <source>:<destinationPath> form")
		}
	}
}

func validateStrategy(l *errlist, path string, s *Strategy) {
	m := &s.Matrix
	switch {
	case m.Expr != "" && len(m.Axes) > 0:
		l.crossField(path+".matrix", "both literal axes and an expression are set", "use one form")
	case m.Expr == "" && len(m.Axes) == 0:
		l.crossField(path+".matrix", "matrix is empty", "declare axes or an expression")
	case m.Expr != "":
		if !isExpression(m.Expr) {
			l.schema(path+".matrix", fmt.Sprintf("%q is not a ${{ ... }} expression", m.Expr), "")
		}
	default:
		for i := range m.Axes {
			apath := fmt.Sprintf("%s.matrix.%s", path, m.Axes[i].Name)
			if m.Axes[i].Name == "" {
				l.schema(fmt.Sprintf("%s.matrix[%d]", path, i), "axis has no name", "")
			}
			if len(m.Axes[i].Values) == 0 {
				l.schema(apath, "axis has no values", "")
			}
		}
	}
	if s.MaxParallel != nil && *s.MaxParallel <= 0 {
		l.schema(path+".max-parallel", fmt.Sprintf("limit %d is not positive", *s.MaxParallel), "")
	}
}

func validateCallSecrets(l *errlist, path string, s *CallSecrets) {
	set := 0
	if s.Inherit {
		set++
	}
	if s.Expr != "" {
		set++
	}
	if len(s.Vars) > 0 {
		set++
	}
	if set != 1 {
		l.crossField(path, "secrets must be exactly one of inherit, an expression, or explicit pairs", "")
		return
	}
	if s.Expr != "" && !isExpression(s.Expr) {
		l.schema(path, fmt.Sprintf("%q is not a ${{ ... }} expression", s.Expr), "")
	}
}

func validateDefaults(l *errlist, path string, d *Defaults) {
	if d.Run == nil {
		return
	}
	if d.Run.Shell != "" && !inSet(shellSet, string(d.Run.Shell)) {
		l.schema(path+".run.shell", fmt.Sprintf("unknown shell %q", d.Run.Shell),
			suggestOneOf(shellSet))
	}
}
