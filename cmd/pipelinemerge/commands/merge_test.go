package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipelinetools/concoursemerge/cmd/pipelinemerge/commands"
	"github.com/pipelinetools/concoursemerge/yamlcodec"
)

func TestHandleMerge_WritesOutputFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "merged.yml")

	err := commands.HandleMerge([]string{
		"-o", out,
		"-q",
		"testdata/left.yml",
		"testdata/right.yml",
	})
	require.NoError(t, err)

	merged, err := yamlcodec.ParseFile(out)
	require.NoError(t, err)

	require.Len(t, merged.ResourceTypes, 1)
	require.Len(t, merged.Resources, 2, "same-named but semantically different resources must both survive, one renamed")
	require.Len(t, merged.Jobs, 2)

	names := map[string]bool{}
	for _, r := range merged.Resources {
		names[r.Name] = true
	}
	assert.True(t, names["repo"])
	assert.True(t, names["repo-000"], "collision should mint the default zero-padded alt name")
}

func TestHandleMerge_DeepFlagFusesSameNamedJobs(t *testing.T) {
	out := filepath.Join(t.TempDir(), "merged.yml")

	samePlanLeft := filepath.Join(t.TempDir(), "a.yml")
	samePlanRight := filepath.Join(t.TempDir(), "b.yml")
	writeFile(t, samePlanLeft, `
resource_types:
- name: mock
  type: registry-image
resources:
- name: repo
  type: mock
- name: slack
  type: mock
jobs:
- name: build
  plan:
  - get: repo
  on_success:
    put: slack
`)
	writeFile(t, samePlanRight, `
resource_types:
- name: mock
  type: registry-image
resources:
- name: repo
  type: mock
- name: slack
  type: mock
jobs:
- name: build
  plan:
  - get: repo
  on_success:
    put: slack
`)

	err := commands.HandleMerge([]string{"--deep", "-o", out, "-q", samePlanLeft, samePlanRight})
	require.NoError(t, err)

	merged, err := yamlcodec.ParseFile(out)
	require.NoError(t, err)
	require.Len(t, merged.Jobs, 1, "deep mode should fuse two identical same-named jobs into one")
}

func TestHandleMerge_RequiresExactlyTwoInputs(t *testing.T) {
	err := commands.HandleMerge([]string{"testdata/left.yml"})
	require.Error(t, err)
}

func TestHandleMerge_RejectsOutputCollidingWithInput(t *testing.T) {
	err := commands.HandleMerge([]string{
		"-o", "testdata/left.yml",
		"testdata/left.yml",
		"testdata/right.yml",
	})
	require.Error(t, err)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
