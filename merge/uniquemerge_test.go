package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipelinetools/concoursemerge/pipeline"
)

func TestUniqueMerge_IdenticalEntityDedupes(t *testing.T) {
	left := []pipeline.Resource{{Name: "repo", Type: "git", Source: map[string]any{"uri": "x"}}}
	right := []pipeline.Resource{{Name: "repo", Type: "git", Source: map[string]any{"uri": "x"}}}

	merged, rewrite := UniqueMerge(left, right, nil, nil)
	assert.Len(t, merged, 1)
	assert.Equal(t, "repo", rewrite["repo"])
}

func TestUniqueMerge_SameNameDifferentContentRenames(t *testing.T) {
	left := []pipeline.Resource{{Name: "repo", Type: "git", Source: map[string]any{"uri": "left"}}}
	right := []pipeline.Resource{{Name: "repo", Type: "git", Source: map[string]any{"uri": "right"}}}

	var renamedOld, renamedNew string
	merged, rewrite := UniqueMerge(left, right, nil, func(oldName, newName string) {
		renamedOld, renamedNew = oldName, newName
	})

	require.Len(t, merged, 2)
	assert.Equal(t, "repo", merged[0].Name, "left always keeps its original name")
	assert.Equal(t, "repo-000", merged[1].Name)
	assert.Equal(t, "repo-000", rewrite["repo"])
	assert.Equal(t, "repo", renamedOld)
	assert.Equal(t, "repo-000", renamedNew)
}

func TestUniqueMerge_DistinctNamesBothKept(t *testing.T) {
	left := []pipeline.Resource{{Name: "repo", Type: "git"}}
	right := []pipeline.Resource{{Name: "image", Type: "docker-image"}}

	merged, rewrite := UniqueMerge(left, right, nil, nil)
	require.Len(t, merged, 2)
	assert.Equal(t, "image", rewrite["image"])
}

func TestUniqueMerge_RenameAvoidsExistingCollisionName(t *testing.T) {
	left := []pipeline.Resource{
		{Name: "repo", Type: "git", Source: map[string]any{"uri": "left"}},
		{Name: "repo-000", Type: "git", Source: map[string]any{"uri": "preexisting"}},
	}
	right := []pipeline.Resource{{Name: "repo", Type: "git", Source: map[string]any{"uri": "right"}}}

	merged, rewrite := UniqueMerge(left, right, nil, nil)
	require.Len(t, merged, 3)
	assert.Equal(t, "repo-001", rewrite["repo"])
}

func TestUniqueMerge_EmptySidesAreNoOps(t *testing.T) {
	left := []pipeline.Resource{{Name: "repo", Type: "git"}}

	merged, rewrite := UniqueMerge(left, nil, nil, nil)
	assert.Len(t, merged, 1)
	assert.Empty(t, rewrite)

	merged, rewrite = UniqueMerge[pipeline.Resource](nil, left, nil, nil)
	assert.Len(t, merged, 1)
	assert.Equal(t, "repo", rewrite["repo"])
}

func TestUniqueMerge_CustomRenameTemplate(t *testing.T) {
	tmpl, err := CompileRenameTemplate(`{{.Name}}_{{.Source}}_{{.Index}}`)
	require.NoError(t, err)

	left := []pipeline.Resource{{Name: "repo", Type: "git", Source: map[string]any{"uri": "left"}}}
	right := []pipeline.Resource{{Name: "repo", Type: "git", Source: map[string]any{"uri": "right"}}}

	merged, rewrite := UniqueMerge(left, right, tmpl, nil)
	require.Len(t, merged, 2)
	assert.Equal(t, "repo_right_0", merged[1].Name)
	assert.Equal(t, "repo_right_0", rewrite["repo"])
}
