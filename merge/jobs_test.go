package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipelinetools/concoursemerge/pipeline"
)

func TestMergeJobs_Shallow_SameNameDifferentPlanRenames(t *testing.T) {
	left := []pipeline.Job{{Name: "build", Plan: []pipeline.Step{pipeline.NewGetStep(pipeline.GetStep{Get: "repo"})}}}
	right := []pipeline.Job{{Name: "build", Plan: []pipeline.Step{pipeline.NewGetStep(pipeline.GetStep{Get: "repo", Trigger: true})}}}

	merged, err := mergeJobs(left, right, false, nil, nil)
	require.NoError(t, err)
	require.Len(t, merged, 2)
	assert.Equal(t, "build", merged[0].Name)
	assert.Equal(t, "build-000", merged[1].Name)
}

func TestMergeJobs_Shallow_IdenticalJobDedupes(t *testing.T) {
	left := []pipeline.Job{{Name: "build", Plan: []pipeline.Step{pipeline.NewGetStep(pipeline.GetStep{Get: "repo"})}}}
	right := []pipeline.Job{{Name: "build", Plan: []pipeline.Step{pipeline.NewGetStep(pipeline.GetStep{Get: "repo"})}}}

	merged, err := mergeJobs(left, right, false, nil, nil)
	require.NoError(t, err)
	assert.Len(t, merged, 1)
}

func TestMergeJobs_Deep_FusesIdenticalStepsUnchanged(t *testing.T) {
	left := []pipeline.Job{{Name: "build", Plan: []pipeline.Step{pipeline.NewGetStep(pipeline.GetStep{Get: "repo"})}}}
	right := []pipeline.Job{{Name: "build", Plan: []pipeline.Step{pipeline.NewGetStep(pipeline.GetStep{Get: "repo"})}}}

	merged, err := mergeJobs(left, right, true, nil, nil)
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, "build", merged[0].Name)
}

func TestMergeJobs_Deep_UnionsInParallelBranches(t *testing.T) {
	left := []pipeline.Job{{
		Name: "build",
		Plan: []pipeline.Step{pipeline.NewInParallelStep(pipeline.InParallelStep{
			Steps: []pipeline.Step{pipeline.NewTaskStep(pipeline.TaskStep{Task: "lint"})},
		})},
	}}
	right := []pipeline.Job{{
		Name: "build",
		Plan: []pipeline.Step{pipeline.NewInParallelStep(pipeline.InParallelStep{
			Steps: []pipeline.Step{pipeline.NewTaskStep(pipeline.TaskStep{Task: "vet"})},
		})},
	}}

	merged, err := mergeJobs(left, right, true, nil, nil)
	require.NoError(t, err)
	require.Len(t, merged, 1)
	require.Len(t, merged[0].Plan[0].InParallel.Steps, 2)
}

func TestMergeJobs_Deep_PlanLengthMismatchConflicts(t *testing.T) {
	left := []pipeline.Job{{Name: "build", Plan: []pipeline.Step{pipeline.NewGetStep(pipeline.GetStep{Get: "repo"})}}}
	right := []pipeline.Job{{Name: "build", Plan: []pipeline.Step{
		pipeline.NewGetStep(pipeline.GetStep{Get: "repo"}),
		pipeline.NewTaskStep(pipeline.TaskStep{Task: "unit-tests"}),
	}}}

	_, err := mergeJobs(left, right, true, nil, nil)
	require.Error(t, err)
}

func TestMergeJobs_Deep_HookMismatchConflicts(t *testing.T) {
	hookA := pipeline.NewPutStep(pipeline.PutStep{Put: "slack"})
	hookB := pipeline.NewPutStep(pipeline.PutStep{Put: "email"})

	left := []pipeline.Job{{Name: "build", Plan: []pipeline.Step{pipeline.NewGetStep(pipeline.GetStep{Get: "repo"})}, OnFailure: &hookA}}
	right := []pipeline.Job{{Name: "build", Plan: []pipeline.Step{pipeline.NewGetStep(pipeline.GetStep{Get: "repo"})}, OnFailure: &hookB}}

	_, err := mergeJobs(left, right, true, nil, nil)
	require.Error(t, err)
}

func TestMergeJobs_Deep_IncompatibleStepKindConflicts(t *testing.T) {
	left := []pipeline.Job{{Name: "build", Plan: []pipeline.Step{pipeline.NewGetStep(pipeline.GetStep{Get: "repo"})}}}
	right := []pipeline.Job{{Name: "build", Plan: []pipeline.Step{pipeline.NewPutStep(pipeline.PutStep{Put: "repo"})}}}

	_, err := mergeJobs(left, right, true, nil, nil)
	require.Error(t, err)
}

func TestMergeJobs_Deep_RenamesCollidingHandleAcrossDifferentResource(t *testing.T) {
	left := []pipeline.Job{{
		Name: "build",
		Plan: []pipeline.Step{
			pipeline.NewGetStep(pipeline.GetStep{Get: "repo"}),
			pipeline.NewTaskStep(pipeline.TaskStep{Task: "unit-tests"}),
		},
	}}
	right := []pipeline.Job{{
		Name: "build",
		Plan: []pipeline.Step{
			pipeline.NewGetStep(pipeline.GetStep{Get: "repo", Resource: "other-repo"}),
			pipeline.NewTaskStep(pipeline.TaskStep{Task: "vet"}),
		},
	}}

	_, err := mergeJobs(left, right, true, nil, nil)
	require.Error(t, err, "the renamed get handle no longer matches target's step structurally")
}

func TestMergeJobs_DistinctNamesBothKept(t *testing.T) {
	left := []pipeline.Job{{Name: "build"}}
	right := []pipeline.Job{{Name: "deploy"}}

	merged, err := mergeJobs(left, right, false, nil, nil)
	require.NoError(t, err)
	assert.Len(t, merged, 2)
}

func TestDeepMergeHandleRewrites_NovelHandleKeepsName(t *testing.T) {
	target := pipeline.Job{Plan: []pipeline.Step{pipeline.NewGetStep(pipeline.GetStep{Get: "repo"})}}
	incoming := pipeline.Job{Plan: []pipeline.Step{pipeline.NewGetStep(pipeline.GetStep{Get: "other"})}}

	rewrite, err := deepMergeHandleRewrites(target, incoming, nil)
	require.NoError(t, err)
	assert.Equal(t, "other", rewrite["other"])
}

func TestDeepMergeHandleRewrites_SameHandleSameResourceIsIdentity(t *testing.T) {
	target := pipeline.Job{Plan: []pipeline.Step{pipeline.NewGetStep(pipeline.GetStep{Get: "repo"})}}
	incoming := pipeline.Job{Plan: []pipeline.Step{pipeline.NewGetStep(pipeline.GetStep{Get: "repo"})}}

	rewrite, err := deepMergeHandleRewrites(target, incoming, nil)
	require.NoError(t, err)
	assert.Equal(t, "repo", rewrite["repo"])
}

func TestDeepMergeHandleRewrites_SameHandleDifferentResourceRenames(t *testing.T) {
	target := pipeline.Job{Plan: []pipeline.Step{pipeline.NewGetStep(pipeline.GetStep{Get: "repo"})}}
	incoming := pipeline.Job{Plan: []pipeline.Step{pipeline.NewGetStep(pipeline.GetStep{Get: "repo", Resource: "other-repo"})}}

	rewrite, err := deepMergeHandleRewrites(target, incoming, nil)
	require.NoError(t, err)
	assert.Equal(t, "repo-000", rewrite["repo"])
}

func TestFuseStep_IdenticalStepsKeptAsIs(t *testing.T) {
	a := pipeline.NewGetStep(pipeline.GetStep{Get: "repo"})
	b := pipeline.NewGetStep(pipeline.GetStep{Get: "repo"})
	fused, ok := fuseStep(a, b)
	require.True(t, ok)
	assert.True(t, fused.Equal(a))
}

func TestFuseStep_InParallelUnionsSkippingDuplicates(t *testing.T) {
	lint := pipeline.NewTaskStep(pipeline.TaskStep{Task: "lint"})
	vet := pipeline.NewTaskStep(pipeline.TaskStep{Task: "vet"})

	target := pipeline.NewInParallelStep(pipeline.InParallelStep{Steps: []pipeline.Step{lint}})
	incoming := pipeline.NewInParallelStep(pipeline.InParallelStep{Steps: []pipeline.Step{lint, vet}})

	fused, ok := fuseStep(target, incoming)
	require.True(t, ok)
	assert.Len(t, fused.InParallel.Steps, 2)
}

func TestFuseStep_IncompatibleKindsConflict(t *testing.T) {
	a := pipeline.NewGetStep(pipeline.GetStep{Get: "repo"})
	b := pipeline.NewPutStep(pipeline.PutStep{Put: "repo"})
	_, ok := fuseStep(a, b)
	assert.False(t, ok)
}
