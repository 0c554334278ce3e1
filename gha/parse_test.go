package gha

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromYAML(t *testing.T) {
	doc := `name: ci
'on': push
jobs:
  test:
    name: test-ubuntu
    runs-on: ubuntu-latest
    steps:
      - id: run pytest
        run: pytest -v
`
	w, err := FromYAML([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "ci", w.Name)
	assert.Equal(t, Event("push"), w.On.Event)
	require.Len(t, w.Jobs, 1)
	assert.Equal(t, "test", w.Jobs[0].ID)
	require.NotNil(t, w.Jobs[0].Job)
	assert.Equal(t, "test-ubuntu", w.Jobs[0].Job.Name)
	assert.Equal(t, "ubuntu-latest", w.Jobs[0].Job.RunsOn.Label)
	require.Len(t, w.Jobs[0].Job.Steps, 1)
	assert.Equal(t, "pytest -v", w.Jobs[0].Job.Steps[0].Run)
}

func TestFromYAMLRejectsUnknownFields(t *testing.T) {
	doc := `'on': push
jobs:
  test:
    runs-on: ubuntu-latest
    stepz:
      - run: pytest -v
`
	_, err := FromYAML([]byte(doc))
	require.Error(t, err)

	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.True(t, errs.Has(KindUnknownField))
	assert.Contains(t, err.Error(), `unknown field "stepz"`)
	assert.Contains(t, err.Error(), "line 5")
}

func TestFromYAMLUnknownTopLevelField(t *testing.T) {
	doc := `'on': push
jobz: {}
`
	_, err := FromYAML([]byte(doc))
	require.Error(t, err)
	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.True(t, errs.Has(KindUnknownField))
}

func TestFromYAMLTriggerForms(t *testing.T) {
	doc := `'on':
  push:
    branches:
      - main
  pull_request:
    types:
      - opened
  schedule:
    - cron: 0 4 * * 1-5
jobs:
  test:
    runs-on: ubuntu-latest
    steps:
      - run: go test ./...
`
	w, err := FromYAML([]byte(doc))
	require.NoError(t, err)

	trig := w.On.Triggers
	require.NotNil(t, trig)
	require.NotNil(t, trig.Push)
	assert.Equal(t, []string{"main"}, trig.Push.Branches)
	require.NotNil(t, trig.PullRequest)
	assert.Equal(t, []string{"opened"}, trig.PullRequest.Types)
	require.Len(t, trig.Schedule, 1)
	assert.Equal(t, "0 4 * * 1-5", trig.Schedule[0].Cron)
}

func TestFromYAMLWorkflowCallEntry(t *testing.T) {
	doc := `'on': push
jobs:
  release:
    uses: octo/repo/.github/workflows/release.yml@v2
    secrets: inherit
`
	w, err := FromYAML([]byte(doc))
	require.NoError(t, err)

	require.Len(t, w.Jobs, 1)
	assert.Nil(t, w.Jobs[0].Job)
	require.NotNil(t, w.Jobs[0].Call)
	assert.Equal(t, "octo/repo/.github/workflows/release.yml@v2", w.Jobs[0].Call.Uses)
	require.NotNil(t, w.Jobs[0].Call.Secrets)
	assert.True(t, w.Jobs[0].Call.Secrets.Inherit)
}

func TestFromYAMLCollapsedForms(t *testing.T) {
	doc := `'on': push
concurrency: deploy
jobs:
  deploy:
    runs-on: ubuntu-latest
    environment: production
    container: golang:1.25
    steps:
      - run: make deploy
`
	w, err := FromYAML([]byte(doc))
	require.NoError(t, err)

	require.NotNil(t, w.Concurrency)
	assert.Equal(t, "deploy", w.Concurrency.Group)
	job := w.Jobs[0].Job
	require.NotNil(t, job.Environment)
	assert.Equal(t, "production", job.Environment.Name)
	require.NotNil(t, job.Container)
	assert.Equal(t, "golang:1.25", job.Container.Image)
}

func TestFromYAMLRunsValidation(t *testing.T) {
	doc := `'on': push
jobs:
  test:
    runs-on: ubuntu-zesty
    steps:
      - run: go test ./...
`
	_, err := FromYAML([]byte(doc))
	require.Error(t, err)
	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.True(t, errs.Has(KindSchema))
	assert.Contains(t, err.Error(), "unknown runner label")
}

func TestFromYAMLRejectsEmptyLists(t *testing.T) {
	doc := `'on':
  push:
    types: []
jobs:
  test:
    runs-on: ubuntu-latest
    steps: []
`
	_, err := FromYAML([]byte(doc))
	require.Error(t, err)

	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.True(t, errs.Has(KindSchema))
	assert.Contains(t, err.Error(), "on.push.types")
	assert.Contains(t, err.Error(), "jobs.test.steps")
	assert.Contains(t, err.Error(), "list is empty")
}

func TestFromYAMLEmptyDocument(t *testing.T) {
	_, err := FromYAML([]byte(""))
	assert.Error(t, err)
}

func TestFromYAMLRejectsMalformedYAML(t *testing.T) {
	_, err := FromYAML([]byte("jobs: [unclosed"))
	assert.Error(t, err)
}

func TestFromYAMLRoundTrip(t *testing.T) {
	w, err := New(Workflow{
		Name: "ci",
		On: On{Triggers: &Triggers{
			Push:        &PushEvent{Branches: []string{"main"}},
			PullRequest: &PullRequestEvent{},
		}},
		Env: &Env{Vars: Vars{{Name: "CGO_ENABLED", Value: 0}}},
		Jobs: Jobs{
			{ID: "test", Job: &Job{
				RunsOn: RunsOn{Label: "ubuntu-latest"},
				Steps: []Step{
					{Uses: "actions/checkout@v4"},
					{Name: "test", Run: "go vet ./...\ngo test ./..."},
				},
			}},
		},
	})
	require.NoError(t, err)

	first, err := w.YAML()
	require.NoError(t, err)

	parsed, err := FromYAML(first)
	require.NoError(t, err)

	second, err := parsed.YAML()
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestFromYAMLVarsKeepDocumentOrder(t *testing.T) {
	doc := `'on': push
env:
  ZEBRA: z
  ALPHA: a
jobs:
  test:
    runs-on: ubuntu-latest
    steps:
      - run: make
`
	w, err := FromYAML([]byte(doc))
	require.NoError(t, err)

	require.NotNil(t, w.Env)
	require.Len(t, w.Env.Vars, 2)
	assert.Equal(t, "ZEBRA", w.Env.Vars[0].Name)
	assert.Equal(t, "ALPHA", w.Env.Vars[1].Name)
}
