// Package validate implements the pre-merge well-formedness check: every
// resource must reference a resource type that actually exists in the same
// pipeline. It is intentionally narrow — handle-level validation (whether a
// Get/Put's handle resolves to a declared Resource) is left as future work —
// and is run once per side before the merge engine touches either pipeline.
package validate

import (
	"github.com/pipelinetools/concoursemerge/mergeerrors"
	"github.com/pipelinetools/concoursemerge/pipeline"
)

// Validate returns nil iff every Resource.Type in p names some
// ResourceType.Name declared in p. On the first violation found (in
// p.Resources order) it returns a mergeerrors.InvalidPipelineError naming
// the offending resource and its dangling type. The Side field is left
// blank; callers that validate more than one pipeline (e.g. merge.Run, which
// validates both sides of a merge) fill it in themselves.
func Validate(p pipeline.Pipeline) error {
	known := make(map[string]struct{}, len(p.ResourceTypes))
	for _, rt := range p.ResourceTypes {
		known[rt.Name] = struct{}{}
	}

	for _, r := range p.Resources {
		if _, ok := known[r.Type]; !ok {
			return mergeerrors.InvalidPipelineError{Resource: r.Name, Type: r.Type}
		}
	}

	return nil
}
