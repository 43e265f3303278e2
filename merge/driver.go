package merge

import (
	"fmt"

	"github.com/pipelinetools/concoursemerge/mergeerrors"
	"github.com/pipelinetools/concoursemerge/pipeline"
	"github.com/pipelinetools/concoursemerge/pipeline/rewrite"
	"github.com/pipelinetools/concoursemerge/validate"
)

// Options configures a Run call. The zero Options selects the default
// behavior: shallow job merge, the built-in "-NNN" rename scheme, and no
// collision observer.
type Options struct {
	// Deep enables job fusion for same-named, semantically different jobs
	// instead of renaming the incoming job.
	Deep bool

	// RenameTemplate, if non-empty, is a text/template string evaluated
	// against a RenameContext in place of the default "{{.Name}}-NNN"
	// scheme for every collision at every layer.
	RenameTemplate string

	// OnCollision, if non-nil, is invoked for every collision the engine
	// resolves, purely for observability. It never changes the merge
	// outcome.
	OnCollision func(Collision) Resolution
}

// Report is the result of a successful Run: the merged pipeline plus a log
// of what the engine did to produce it.
type Report struct {
	Pipeline Pipeline

	// ResourceTypeRewrites and ResourceRewrites are the name rewrite maps
	// produced by merging resource types and resources, respectively
	// (right-hand name -> merged name). Exposed for callers that want to
	// report renames themselves; the driver does not return the job
	// rewrite map, since nothing downstream of the job layer needs it.
	ResourceTypeRewrites map[string]string
	ResourceRewrites     map[string]string

	Collisions []Collision
}

// Pipeline is a type alias kept local to this package so Report's doc
// comment can refer to "the merged pipeline" without every caller needing
// to know the dependency runs through the pipeline package; it is simply
// pipeline.Pipeline.
type Pipeline = pipeline.Pipeline

// Run merges left and right into a single pipeline following the
// three-layer driver: resource types, then resources (with the resulting
// type-rename map applied first), then jobs (with the resulting
// resource-rename map applied first). left is never modified; right is
// never modified except through the explicit copies the rewriter and
// UniqueMerge produce.
func Run(left, right pipeline.Pipeline, opts Options) (*Report, error) {
	if err := validate.Validate(left); err != nil {
		return nil, decorateInvalid("left", err)
	}
	if err := validate.Validate(right); err != nil {
		return nil, decorateInvalid("right", err)
	}

	renameTmpl, err := CompileRenameTemplate(opts.RenameTemplate)
	if err != nil {
		return nil, fmt.Errorf("merge: invalid rename template: %w", err)
	}

	report := &Report{}
	notify := func(c Collision) Resolution {
		report.Collisions = append(report.Collisions, c)
		if opts.OnCollision != nil {
			return opts.OnCollision(c)
		}
		return Resolution{}
	}

	resourceTypes, rtMap := UniqueMerge(left.ResourceTypes, right.ResourceTypes, renameTmpl,
		func(oldName, newName string) {
			notify(Collision{Kind: CollisionRename, Entity: EntityResourceType, Name: oldName, ResolvedAs: newName})
		})
	report.ResourceTypeRewrites = rtMap

	rightResources := make([]pipeline.Resource, len(right.Resources))
	for i, res := range right.Resources {
		rewritten, ok := res.Rewrite(rtMap)
		if !ok {
			return nil, mergeerrors.MissingRewriteKeyError{Name: res.Type, Kind: "resource type"}
		}
		rightResources[i] = rewritten
	}

	resources, resMap := UniqueMerge(left.Resources, rightResources, renameTmpl,
		func(oldName, newName string) {
			notify(Collision{Kind: CollisionRename, Entity: EntityResource, Name: oldName, ResolvedAs: newName})
		})
	report.ResourceRewrites = resMap

	rightJobs := make([]pipeline.Job, len(right.Jobs))
	for i, job := range right.Jobs {
		rewritten, err := rewrite.Job(job, resMap)
		if err != nil {
			return nil, err
		}
		rightJobs[i] = rewritten
	}

	jobs, err := mergeJobs(left.Jobs, rightJobs, opts.Deep, renameTmpl, notify)
	if err != nil {
		return nil, err
	}

	report.Pipeline = pipeline.Pipeline{
		ResourceTypes: resourceTypes,
		Resources:     resources,
		Jobs:          jobs,
	}
	return report, nil
}

func decorateInvalid(side string, err error) error {
	var invalid mergeerrors.InvalidPipelineError
	if e, ok := err.(mergeerrors.InvalidPipelineError); ok {
		invalid = e
	}
	invalid.Side = side
	return invalid
}
