package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetStep_EffectiveResource(t *testing.T) {
	assert.Equal(t, "repo", GetStep{Get: "repo"}.EffectiveResource())
	assert.Equal(t, "real-repo", GetStep{Get: "repo", Resource: "real-repo"}.EffectiveResource())
}

func TestPutStep_EffectiveResource(t *testing.T) {
	assert.Equal(t, "repo", PutStep{Put: "repo"}.EffectiveResource())
	assert.Equal(t, "real-repo", PutStep{Put: "repo", Resource: "real-repo"}.EffectiveResource())
}

func TestStep_Equal_SameContent(t *testing.T) {
	a := NewGetStep(GetStep{Get: "repo", Trigger: true})
	b := NewGetStep(GetStep{Get: "repo", Trigger: true})
	assert.True(t, a.Equal(b))
}

func TestStep_Equal_DifferentContent(t *testing.T) {
	a := NewGetStep(GetStep{Get: "repo", Trigger: true})
	b := NewGetStep(GetStep{Get: "repo", Trigger: false})
	assert.False(t, a.Equal(b))
}

func TestStep_Equal_DifferentKind(t *testing.T) {
	a := NewGetStep(GetStep{Get: "repo"})
	b := NewPutStep(PutStep{Put: "repo"})
	assert.False(t, a.Equal(b))
}

func TestStep_DeepCopy_Get(t *testing.T) {
	orig := NewGetStep(GetStep{Get: "repo", Passed: []string{"build"}})
	cp := orig.DeepCopy()
	cp.Get.Passed[0] = "other"
	assert.Equal(t, "build", orig.Get.Passed[0])
}

func TestStep_DeepCopy_TaskWithConfig(t *testing.T) {
	orig := NewTaskStep(TaskStep{
		Task: "unit-tests",
		Config: &TaskConfig{
			Platform: "linux",
			Inputs:   []TaskIO{{Name: "repo"}},
			Params:   map[string]any{"FOO": "bar"},
		},
	})
	cp := orig.DeepCopy()
	cp.Task.Config.Inputs[0].Name = "other"
	cp.Task.Config.Params["FOO"] = "baz"

	assert.Equal(t, "repo", orig.Task.Config.Inputs[0].Name)
	assert.Equal(t, "bar", orig.Task.Config.Params["FOO"])
}

func TestStep_DeepCopy_InParallelRecursesIntoChildren(t *testing.T) {
	limit := 3
	orig := NewInParallelStep(InParallelStep{
		Steps:    []Step{NewGetStep(GetStep{Get: "repo"})},
		Limit:    &limit,
		FailFast: true,
	})
	cp := orig.DeepCopy()
	cp.InParallel.Steps[0].Get.Get = "other"
	*cp.InParallel.Limit = 9

	assert.Equal(t, "repo", orig.InParallel.Steps[0].Get.Get)
	assert.Equal(t, 3, *orig.InParallel.Limit)
}

func TestStep_DeepCopy_PreservesHooks(t *testing.T) {
	hook := NewGetStep(GetStep{Get: "notify"})
	orig := NewGetStep(GetStep{Get: "repo"})
	orig.OnFailure = &hook

	cp := orig.DeepCopy()
	cp.OnFailure.Get.Get = "other"
	assert.Equal(t, "notify", orig.OnFailure.Get.Get)
}

func TestStep_HookSteps(t *testing.T) {
	hook := NewGetStep(GetStep{Get: "notify"})
	s := NewGetStep(GetStep{Get: "repo"})
	s.OnSuccess = &hook
	s.Ensure = &hook

	assert.Len(t, s.HookSteps(), 2)
}

func TestStepKind_String(t *testing.T) {
	tests := map[StepKind]string{
		StepKindGet:         "get",
		StepKindPut:         "put",
		StepKindTask:        "task",
		StepKindDo:          "do",
		StepKindInParallel:  "in_parallel",
		StepKind(99):        "unknown",
	}
	for kind, want := range tests {
		assert.Equal(t, want, kind.String())
	}
}
