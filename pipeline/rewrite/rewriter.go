package rewrite

import (
	"github.com/pipelinetools/concoursemerge/mergeerrors"
	"github.com/pipelinetools/concoursemerge/pipeline"
)

// Step applies the resource rename map m to step, returning a new step. Get
// and Put steps have their resource field set to m[step.EffectiveResource()]
// when that differs from the effective resource; a step the map sends to
// itself is left as it was, so an identity map yields an equal step. The
// user-facing handle (get:/put:) is left untouched. Do and InParallel
// recurse into their children. Task steps are
// never affected by a resource rename (see pipeline.TaskStep doc): they
// still fail if they carry no usable config, since an unrewritable task is
// as much a rewrite failure as a missing map entry.
func Step(step pipeline.Step, m map[string]string) (pipeline.Step, error) {
	out := step.DeepCopy()

	switch step.Kind {
	case pipeline.StepKindGet:
		newResource, ok := m[step.Get.EffectiveResource()]
		if !ok {
			return pipeline.Step{}, mergeerrors.MissingRewriteKeyError{Name: step.Get.EffectiveResource(), Kind: "resource"}
		}
		if newResource != step.Get.EffectiveResource() {
			out.Get.Resource = newResource
		}

	case pipeline.StepKindPut:
		newResource, ok := m[step.Put.EffectiveResource()]
		if !ok {
			return pipeline.Step{}, mergeerrors.MissingRewriteKeyError{Name: step.Put.EffectiveResource(), Kind: "resource"}
		}
		if newResource != step.Put.EffectiveResource() {
			out.Put.Resource = newResource
		}

	case pipeline.StepKindTask:
		if step.Task.File != "" {
			return pipeline.Step{}, mergeerrors.UnsupportedTaskError{TaskLabel: step.Task.Task, Reason: "external file"}
		}
		if step.Task.Config == nil {
			return pipeline.Step{}, mergeerrors.UnsupportedTaskError{TaskLabel: step.Task.Task, Reason: "missing config"}
		}
		// Task is unaffected by resource renaming; out is already an
		// untouched deep copy.

	case pipeline.StepKindDo:
		children := make([]pipeline.Step, len(step.Do.Steps))
		for i, child := range step.Do.Steps {
			rewritten, err := Step(child, m)
			if err != nil {
				return pipeline.Step{}, err
			}
			children[i] = rewritten
		}
		out.Do.Steps = children

	case pipeline.StepKindInParallel:
		children := make([]pipeline.Step, len(step.InParallel.Steps))
		for i, child := range step.InParallel.Steps {
			rewritten, err := Step(child, m)
			if err != nil {
				return pipeline.Step{}, err
			}
			children[i] = rewritten
		}
		out.InParallel.Steps = children
	}

	if hooks, err := rewriteHooks(step.OnSuccess, step.OnFailure, step.OnError, step.OnAbort, step.Ensure, m); err != nil {
		return pipeline.Step{}, err
	} else {
		out.OnSuccess, out.OnFailure, out.OnError, out.OnAbort, out.Ensure = hooks[0], hooks[1], hooks[2], hooks[3], hooks[4]
	}

	return out, nil
}

// Job applies the resource rename map m to every step of job's plan and to
// each of its five hook steps, returning a new Job.
func Job(job pipeline.Job, m map[string]string) (pipeline.Job, error) {
	out := job.DeepCopy()

	plan := make([]pipeline.Step, len(job.Plan))
	for i, step := range job.Plan {
		rewritten, err := Step(step, m)
		if err != nil {
			return pipeline.Job{}, err
		}
		plan[i] = rewritten
	}
	out.Plan = plan

	hooks, err := rewriteHooks(job.OnSuccess, job.OnFailure, job.OnError, job.OnAbort, job.Ensure, m)
	if err != nil {
		return pipeline.Job{}, err
	}
	out.OnSuccess, out.OnFailure, out.OnError, out.OnAbort, out.Ensure = hooks[0], hooks[1], hooks[2], hooks[3], hooks[4]

	return out, nil
}

func rewriteHooks(onSuccess, onFailure, onError, onAbort, ensure *pipeline.Step, m map[string]string) ([5]*pipeline.Step, error) {
	var out [5]*pipeline.Step
	for i, h := range [5]*pipeline.Step{onSuccess, onFailure, onError, onAbort, ensure} {
		if h == nil {
			continue
		}
		rewritten, err := Step(*h, m)
		if err != nil {
			return out, err
		}
		out[i] = &rewritten
	}
	return out, nil
}
