package merge

import (
	"fmt"
	"slices"
	"text/template"

	"github.com/pipelinetools/concoursemerge/internal/maputil"
	"github.com/pipelinetools/concoursemerge/mergeerrors"
	"github.com/pipelinetools/concoursemerge/pipeline"
)

// mergeJobs merges left and right job lists. When deep is false it behaves
// exactly like UniqueMerge[pipeline.Job]. When deep is true, a name clash
// between semantically different jobs is resolved by fusing them in place
// instead of renaming the right-hand job.
//
// onCollision, if non-nil, is invoked for every rename, every handle renamed
// during a deep fuse, and every deep fuse;
// its return value is ignored today (see Resolution) but it may observe
// every decision the engine makes.
func mergeJobs(left, right []pipeline.Job, deep bool, renameTmpl *template.Template, onCollision func(Collision) Resolution) ([]pipeline.Job, error) {
	original := slices.Clone(left)
	merged := slices.Clone(left)

	names := make(map[string]struct{}, len(merged))
	for _, j := range merged {
		names[j.Name] = struct{}{}
	}

	for _, item := range right {
		if idx := semanticMatchIndexJob(original, item); idx >= 0 {
			continue
		}

		if idx := indexByJobName(merged, item.Name); idx >= 0 {
			if deep {
				fused, err := deepMergeJob(merged[idx], item, renameTmpl, onCollision)
				if err != nil {
					return nil, err
				}
				merged[idx] = fused
				if onCollision != nil {
					onCollision(Collision{Kind: CollisionDeepMerge, Entity: EntityJob, Name: item.Name, ResolvedAs: merged[idx].Name})
				}
				continue
			}

			alt := uniqueName(item.Name, names, renameTmpl)
			renamed := item.Renamed(alt)
			merged = append(merged, renamed)
			names[alt] = struct{}{}
			if onCollision != nil {
				onCollision(Collision{Kind: CollisionRename, Entity: EntityJob, Name: item.Name, ResolvedAs: alt})
			}
			continue
		}

		merged = append(merged, item)
		names[item.Name] = struct{}{}
	}

	return merged, nil
}

func semanticMatchIndexJob(list []pipeline.Job, item pipeline.Job) int {
	for i, j := range list {
		if j.SemanticEqual(item) {
			return i
		}
	}
	return -1
}

func indexByJobName(list []pipeline.Job, name string) int {
	for i, j := range list {
		if j.Name == name {
			return i
		}
	}
	return -1
}

// deepMergeJob fuses incoming into target. It never mutates either
// argument; it returns a new Job. Once the fuse succeeds, onCollision (if
// non-nil) is told of every incoming handle that was renamed.
func deepMergeJob(target, incoming pipeline.Job, renameTmpl *template.Template, onCollision func(Collision) Resolution) (pipeline.Job, error) {
	if !hookStepEqual(target.OnSuccess, incoming.OnSuccess) ||
		!hookStepEqual(target.OnFailure, incoming.OnFailure) ||
		!hookStepEqual(target.OnError, incoming.OnError) ||
		!hookStepEqual(target.OnAbort, incoming.OnAbort) ||
		!hookStepEqual(target.Ensure, incoming.Ensure) {
		return pipeline.Job{}, mergeerrors.DeepMergeConflictError{JobName: target.Name, Reason: "hook mismatch"}
	}

	handleRewrite, err := deepMergeHandleRewrites(target, incoming, renameTmpl)
	if err != nil {
		return pipeline.Job{}, err
	}

	rewrittenIncoming, err := rewriteJobHandles(incoming, handleRewrite)
	if err != nil {
		return pipeline.Job{}, err
	}

	if len(target.Plan) != len(rewrittenIncoming.Plan) {
		return pipeline.Job{}, mergeerrors.DeepMergeConflictError{JobName: target.Name, Reason: "plan length mismatch"}
	}

	fusedPlan := make([]pipeline.Step, len(target.Plan))
	for i := range target.Plan {
		fused, ok := fuseStep(target.Plan[i], rewrittenIncoming.Plan[i])
		if !ok {
			return pipeline.Job{}, mergeerrors.DeepMergeConflictError{JobName: target.Name, Reason: fmt.Sprintf("step mismatch at index %d", i)}
		}
		fusedPlan[i] = fused
	}

	if onCollision != nil {
		for _, name := range maputil.SortedKeys(handleRewrite) {
			if alt := handleRewrite[name]; alt != name {
				onCollision(Collision{Kind: CollisionHandleRename, Entity: EntityJob, Name: name, ResolvedAs: alt})
			}
		}
	}

	result := target.DeepCopy()
	result.Plan = fusedPlan
	return result, nil
}

// deepMergeHandleRewrites computes the handle rewrite map for fusing
// incoming into target: handles that already match (name and
// resource) in target map to themselves; handles whose name clashes with a
// different resource get a freshly minted name; novel handles map to
// themselves.
func deepMergeHandleRewrites(target, incoming pipeline.Job, renameTmpl *template.Template) (map[string]string, error) {
	targetHandles := JobHandles(target)
	incomingHandles := JobHandles(incoming)

	names := make(map[string]struct{}, len(targetHandles))
	for _, h := range targetHandles {
		names[h.Name] = struct{}{}
	}

	rewrite := make(map[string]string, len(incomingHandles))
	for _, h := range incomingHandles {
		if containsHandle(targetHandles, h) {
			rewrite[h.Name] = h.Name
			continue
		}
		if hasHandleName(targetHandles, h.Name) {
			alt := uniqueName(h.Name, names, renameTmpl)
			rewrite[h.Name] = alt
			names[alt] = struct{}{}
			continue
		}
		rewrite[h.Name] = h.Name
		names[h.Name] = struct{}{}
	}

	return rewrite, nil
}

func hookStepEqual(a, b *pipeline.Step) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
