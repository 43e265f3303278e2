package merge

import (
	"fmt"

	"github.com/pipelinetools/concoursemerge/mergeerrors"
	"github.com/pipelinetools/concoursemerge/pipeline"
)

// rewriteJobHandles applies a handle rewrite map (from
// deepMergeHandleRewrites) to job's plan and hooks, renaming Get/Put handle
// labels that collided with a different resource under the same name.
// Task input/output names are never renamed — they are local to the task's
// own container paths and unsafe to rename — so a rewrite entry that maps
// a local handle to a different name is rejected as a conflict naming job.
func rewriteJobHandles(job pipeline.Job, rewrite map[string]string) (pipeline.Job, error) {
	out := job.DeepCopy()
	inJob := func(err error) error {
		if conflict, ok := err.(mergeerrors.DeepMergeConflictError); ok {
			conflict.JobName = job.Name
			return conflict
		}
		return err
	}

	plan, err := rewriteStepHandles(job.Plan, rewrite)
	if err != nil {
		return pipeline.Job{}, inJob(err)
	}
	out.Plan = plan

	for _, hook := range []**pipeline.Step{&out.OnSuccess, &out.OnFailure, &out.OnError, &out.OnAbort, &out.Ensure} {
		if *hook == nil {
			continue
		}
		rewritten, err := rewriteStepHandles([]pipeline.Step{**hook}, rewrite)
		if err != nil {
			return pipeline.Job{}, inJob(err)
		}
		*hook = &rewritten[0]
	}

	return out, nil
}

func rewriteStepHandles(steps []pipeline.Step, rewrite map[string]string) ([]pipeline.Step, error) {
	out := make([]pipeline.Step, len(steps))
	for i, step := range steps {
		rewritten, err := rewriteOneStepHandles(step, rewrite)
		if err != nil {
			return nil, err
		}
		out[i] = rewritten
	}
	return out, nil
}

func rewriteOneStepHandles(step pipeline.Step, rewrite map[string]string) (pipeline.Step, error) {
	out := step.DeepCopy()

	switch step.Kind {
	case pipeline.StepKindGet:
		if alt, ok := rewrite[step.Get.Get]; ok {
			out.Get.Get = alt
		}
	case pipeline.StepKindPut:
		if alt, ok := rewrite[step.Put.Put]; ok {
			out.Put.Put = alt
		}
	case pipeline.StepKindTask:
		if step.Task.Config != nil {
			for _, in := range step.Task.Config.Inputs {
				if alt, ok := rewrite[in.Name]; ok && alt != in.Name {
					return pipeline.Step{}, mergeerrors.DeepMergeConflictError{Reason: fmt.Sprintf("task %q input handle collision", step.Task.Task)}
				}
			}
			for _, o := range step.Task.Config.Outputs {
				if alt, ok := rewrite[o.Name]; ok && alt != o.Name {
					return pipeline.Step{}, mergeerrors.DeepMergeConflictError{Reason: fmt.Sprintf("task %q output handle collision", step.Task.Task)}
				}
			}
		}
	case pipeline.StepKindDo:
		children, err := rewriteStepHandles(step.Do.Steps, rewrite)
		if err != nil {
			return pipeline.Step{}, err
		}
		out.Do.Steps = children
	case pipeline.StepKindInParallel:
		children, err := rewriteStepHandles(step.InParallel.Steps, rewrite)
		if err != nil {
			return pipeline.Step{}, err
		}
		out.InParallel.Steps = children
	}

	for _, hook := range []**pipeline.Step{&out.OnSuccess, &out.OnFailure, &out.OnError, &out.OnAbort, &out.Ensure} {
		if *hook == nil {
			continue
		}
		rewritten, err := rewriteOneStepHandles(**hook, rewrite)
		if err != nil {
			return pipeline.Step{}, err
		}
		*hook = &rewritten
	}

	return out, nil
}

// fuseStep fuses one positionally-paired (target, incoming) step during a
// deep job merge. Structurally identical steps are kept as-is. Two
// InParallel steps at the same position are unioned, skipping incoming
// entries already structurally present in target's branch. Anything else
// is a conflict.
func fuseStep(target, incoming pipeline.Step) (pipeline.Step, bool) {
	if target.Equal(incoming) {
		return target, true
	}

	if target.Kind == pipeline.StepKindInParallel && incoming.Kind == pipeline.StepKindInParallel {
		fused := target.DeepCopy()
		branch := fused.InParallel.Steps
		for _, candidate := range incoming.InParallel.Steps {
			if !stepPresent(branch, candidate) {
				branch = append(branch, candidate)
			}
		}
		fused.InParallel.Steps = branch
		return fused, true
	}

	return pipeline.Step{}, false
}

func stepPresent(steps []pipeline.Step, candidate pipeline.Step) bool {
	for _, s := range steps {
		if s.Equal(candidate) {
			return true
		}
	}
	return false
}
