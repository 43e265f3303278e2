package validate_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipelinetools/concoursemerge/mergeerrors"
	"github.com/pipelinetools/concoursemerge/pipeline"
	"github.com/pipelinetools/concoursemerge/validate"
)

func TestValidate_AllResourcesKnown(t *testing.T) {
	p := pipeline.Pipeline{
		ResourceTypes: []pipeline.ResourceType{{Name: "git", Type: "registry-image"}},
		Resources:     []pipeline.Resource{{Name: "repo", Type: "git"}},
	}

	require.NoError(t, validate.Validate(p))
}

func TestValidate_EmptyPipeline(t *testing.T) {
	require.NoError(t, validate.Validate(pipeline.Pipeline{}))
}

func TestValidate_UndeclaredResourceType(t *testing.T) {
	p := pipeline.Pipeline{
		Resources: []pipeline.Resource{{Name: "repo", Type: "git"}},
	}

	err := validate.Validate(p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, mergeerrors.ErrInvalidPipeline))

	var invalid mergeerrors.InvalidPipelineError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "repo", invalid.Resource)
	assert.Equal(t, "git", invalid.Type)
}

func TestValidate_FirstViolationWins(t *testing.T) {
	p := pipeline.Pipeline{
		ResourceTypes: []pipeline.ResourceType{{Name: "git", Type: "registry-image"}},
		Resources: []pipeline.Resource{
			{Name: "repo", Type: "git"},
			{Name: "missing-first", Type: "ghost"},
			{Name: "missing-second", Type: "phantom"},
		},
	}

	err := validate.Validate(p)
	require.Error(t, err)

	var invalid mergeerrors.InvalidPipelineError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "missing-first", invalid.Resource)
	assert.Equal(t, "ghost", invalid.Type)
}
