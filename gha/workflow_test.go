package gha

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflowYAML(t *testing.T) {
	w, err := New(Workflow{
		On: On{Event: "push"},
		Jobs: Jobs{
			{ID: "test", Job: &Job{
				Name:   "test-ubuntu",
				RunsOn: RunsOn{Label: "ubuntu-latest"},
				Steps: []Step{
					{ID: "run pytest", Run: "pytest -v"},
				},
			}},
		},
	})
	require.NoError(t, err)

	got, err := w.YAML()
	require.NoError(t, err)

	want := "jobs:\n" +
		"  test:\n" +
		"    name: test-ubuntu\n" +
		"    runs-on: ubuntu-latest\n" +
		"    steps:\n" +
		"      - id: run pytest\n" +
		"        run: pytest -v\n" +
		"'on': push\n"
	assert.Equal(t, want, string(got))
}

func TestWorkflowYAMLMultilineRun(t *testing.T) {
	run := "        echo \"hello | world\"\n" +
		"        grep -c 'a b' file.txt | wc -l"

	w, err := New(Workflow{
		On: On{Event: "push"},
		Jobs: Jobs{
			{ID: "test", Job: &Job{
				RunsOn: RunsOn{Label: "ubuntu-latest"},
				Steps:  []Step{{Run: run}},
			}},
		},
	})
	require.NoError(t, err)

	got, err := w.YAML()
	require.NoError(t, err)

	want := "jobs:\n" +
		"  test:\n" +
		"    runs-on: ubuntu-latest\n" +
		"    steps:\n" +
		"      - run: |-\n" +
		"          echo \"hello | world\"\n" +
		"          grep -c 'a b' file.txt | wc -l\n" +
		"'on': push\n"
	assert.Equal(t, want, string(got))
}

func TestWorkflowYAMLEventList(t *testing.T) {
	w, err := New(Workflow{
		Name: "ci",
		On:   On{Events: []Event{"push", "pull_request"}},
		Jobs: Jobs{
			{ID: "build", Job: &Job{
				RunsOn: RunsOn{Label: "ubuntu-latest"},
				Steps:  []Step{{Uses: "actions/checkout@v4"}},
			}},
		},
	})
	require.NoError(t, err)

	got, err := w.YAML()
	require.NoError(t, err)

	want := "name: ci\n" +
		"jobs:\n" +
		"  build:\n" +
		"    runs-on: ubuntu-latest\n" +
		"    steps:\n" +
		"      - uses: actions/checkout@v4\n" +
		"'on':\n" +
		"  - push\n" +
		"  - pull_request\n"
	assert.Equal(t, want, string(got))
}

func TestWorkflowYAMLIsStable(t *testing.T) {
	w, err := New(Workflow{
		On: On{Triggers: &Triggers{
			Push: &PushEvent{Branches: []string{"main"}},
			Schedule: []ScheduleItem{
				{Cron: "0 4 * * 1-5"},
			},
		}},
		Env: &Env{Vars: Vars{
			{Name: "CGO_ENABLED", Value: 0},
			{Name: "APP", Value: "quill"},
		}},
		Jobs: Jobs{
			{ID: "build", Job: &Job{
				RunsOn: RunsOn{Label: "ubuntu-latest"},
				Steps:  []Step{{Run: "make build"}},
			}},
		},
	})
	require.NoError(t, err)

	first, err := w.YAML()
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := w.YAML()
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
	// Declaration order, not sorted order.
	assert.Contains(t, string(first), "env:\n  CGO_ENABLED: 0\n  APP: quill\n")
}

func TestNewDedentsRunScripts(t *testing.T) {
	w, err := New(Workflow{
		On: On{Event: "push"},
		Jobs: Jobs{
			{ID: "test", Job: &Job{
				RunsOn: RunsOn{Label: "ubuntu-latest"},
				Steps: []Step{
					{Run: "    echo 'a\n      b'\n    echo c"},
				},
			}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "echo 'a\n      b'\necho c", w.Jobs[0].Job.Steps[0].Run)
}

func TestWorkflowYAMLCollapsedForms(t *testing.T) {
	w, err := New(Workflow{
		On: On{Event: "push"},
		Concurrency: &Concurrency{
			Group: "deploy",
		},
		Jobs: Jobs{
			{ID: "deploy", Job: &Job{
				RunsOn:      RunsOn{Label: "ubuntu-latest"},
				Environment: &Environment{Name: "production"},
				Needs:       nil,
				Steps:       []Step{{Run: "make deploy"}},
				Container:   &Container{Image: "golang:1.25"},
			}},
		},
	})
	require.NoError(t, err)

	got, err := w.YAML()
	require.NoError(t, err)

	out := string(got)
	assert.Contains(t, out, "concurrency: deploy\n")
	assert.Contains(t, out, "environment: production\n")
	assert.Contains(t, out, "container: golang:1.25\n")
}

func TestWorkflowYAMLExpandedForms(t *testing.T) {
	cancel := true
	w, err := New(Workflow{
		On: On{Event: "push"},
		Concurrency: &Concurrency{
			Group:            "deploy",
			CancelInProgress: cancel,
		},
		Jobs: Jobs{
			{ID: "deploy", Job: &Job{
				RunsOn:      RunsOn{Label: "ubuntu-latest"},
				Environment: &Environment{Name: "production", URL: "https://example.com"},
				Steps:       []Step{{Run: "make deploy"}},
			}},
		},
	})
	require.NoError(t, err)

	got, err := w.YAML()
	require.NoError(t, err)

	out := string(got)
	assert.Contains(t, out, "concurrency:\n  group: deploy\n  cancel-in-progress: true\n")
	assert.Contains(t, out, "environment:\n      name: production\n      url: https://example.com\n")
}
