package merge

import "github.com/pipelinetools/concoursemerge/pipeline"

// Handle is one (handle, resource) pair produced by walking a step tree.
// Resource is empty for a Task's input/output handles, which are local to
// the task and never resolve to a pipeline Resource.
type Handle struct {
	Name     string
	Resource string
	IsLocal  bool // true for Task input/output handles
}

// Handles returns the ordered sequence of handles a step subtree produces.
func Handles(step pipeline.Step) []Handle {
	switch step.Kind {
	case pipeline.StepKindGet:
		return []Handle{{Name: step.Get.Get, Resource: step.Get.EffectiveResource()}}

	case pipeline.StepKindPut:
		return []Handle{{Name: step.Put.Put, Resource: step.Put.EffectiveResource()}}

	case pipeline.StepKindTask:
		var out []Handle
		if step.Task.Config != nil {
			for _, in := range step.Task.Config.Inputs {
				out = append(out, Handle{Name: in.Name, IsLocal: true})
			}
			for _, o := range step.Task.Config.Outputs {
				out = append(out, Handle{Name: o.Name, IsLocal: true})
			}
		}
		return out

	case pipeline.StepKindDo:
		var out []Handle
		for _, child := range step.Do.Steps {
			out = append(out, Handles(child)...)
		}
		return out

	case pipeline.StepKindInParallel:
		var out []Handle
		for _, child := range step.InParallel.Steps {
			out = append(out, Handles(child)...)
		}
		return out

	default:
		return nil
	}
}

// JobHandles returns the concatenation of Handles(step) over job's plan,
// in order. Hook steps are excluded: they run after the job's own handle
// references are resolved and never participate in deep-merge handle
// collision analysis.
func JobHandles(job pipeline.Job) []Handle {
	var out []Handle
	for _, step := range job.Plan {
		out = append(out, Handles(step)...)
	}
	return out
}

func containsHandle(handles []Handle, h Handle) bool {
	for _, existing := range handles {
		if existing.Name == h.Name && existing.Resource == h.Resource && existing.IsLocal == h.IsLocal {
			return true
		}
	}
	return false
}

func hasHandleName(handles []Handle, name string) bool {
	for _, existing := range handles {
		if existing.Name == name {
			return true
		}
	}
	return false
}
