package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pipelinetools/concoursemerge/pipeline"
)

func TestHandles_GetUsesEffectiveResource(t *testing.T) {
	s := pipeline.NewGetStep(pipeline.GetStep{Get: "repo", Resource: "real-repo"})
	got := Handles(s)
	assert.Equal(t, []Handle{{Name: "repo", Resource: "real-repo"}}, got)
}

func TestHandles_PutUsesEffectiveResource(t *testing.T) {
	s := pipeline.NewPutStep(pipeline.PutStep{Put: "repo"})
	got := Handles(s)
	assert.Equal(t, []Handle{{Name: "repo", Resource: "repo"}}, got)
}

func TestHandles_TaskInputsAndOutputsAreLocal(t *testing.T) {
	s := pipeline.NewTaskStep(pipeline.TaskStep{
		Task: "unit-tests",
		Config: &pipeline.TaskConfig{
			Inputs:  []pipeline.TaskIO{{Name: "repo"}},
			Outputs: []pipeline.TaskIO{{Name: "results"}},
		},
	})
	got := Handles(s)
	assert.Equal(t, []Handle{
		{Name: "repo", IsLocal: true},
		{Name: "results", IsLocal: true},
	}, got)
}

func TestHandles_TaskWithoutConfigHasNoHandles(t *testing.T) {
	s := pipeline.NewTaskStep(pipeline.TaskStep{Task: "unit-tests"})
	assert.Empty(t, Handles(s))
}

func TestHandles_DoAndInParallelRecurse(t *testing.T) {
	do := pipeline.NewDoStep(pipeline.DoStep{
		Steps: []pipeline.Step{pipeline.NewGetStep(pipeline.GetStep{Get: "repo"})},
	})
	assert.Len(t, Handles(do), 1)

	par := pipeline.NewInParallelStep(pipeline.InParallelStep{
		Steps: []pipeline.Step{
			pipeline.NewGetStep(pipeline.GetStep{Get: "repo"}),
			pipeline.NewPutStep(pipeline.PutStep{Put: "slack"}),
		},
	})
	assert.Len(t, Handles(par), 2)
}

func TestJobHandles_ExcludesHooks(t *testing.T) {
	hook := pipeline.NewPutStep(pipeline.PutStep{Put: "slack"})
	job := pipeline.Job{
		Name:      "build",
		Plan:      []pipeline.Step{pipeline.NewGetStep(pipeline.GetStep{Get: "repo"})},
		OnFailure: &hook,
	}
	got := JobHandles(job)
	assert.Len(t, got, 1, "hook steps must not contribute handles")
	assert.Equal(t, "repo", got[0].Name)
}

func TestContainsHandle(t *testing.T) {
	handles := []Handle{{Name: "repo", Resource: "repo"}}
	assert.True(t, containsHandle(handles, Handle{Name: "repo", Resource: "repo"}))
	assert.False(t, containsHandle(handles, Handle{Name: "repo", Resource: "other"}))
}

func TestHasHandleName(t *testing.T) {
	handles := []Handle{{Name: "repo", Resource: "repo"}}
	assert.True(t, hasHandleName(handles, "repo"))
	assert.False(t, hasHandleName(handles, "other"))
}
