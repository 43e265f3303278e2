package mcpserver

import (
	"fmt"

	"github.com/pipelinetools/concoursemerge/internal/options"
	"github.com/pipelinetools/concoursemerge/pipeline"
	"github.com/pipelinetools/concoursemerge/yamlcodec"
)

// pipelineInput represents the two ways a pipeline can be provided to the
// merge tool. Exactly one of File or Content must be set. Unlike an OAS
// spec, a Concourse pipeline is never fetched by URL and a merge call only
// ever reads each side once, so there is no cache to key and no sweeper to
// run — resolve parses fresh every call.
type pipelineInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a pipeline YAML file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline pipeline YAML content"`
}

// resolve parses the input into a pipeline.Pipeline, preferring whichever of
// File or Content is set.
func (in pipelineInput) resolve(side string) (pipeline.Pipeline, error) {
	if err := options.ValidateSingleInputSource(
		fmt.Sprintf("%s: exactly one of file or content must be set, got neither", side),
		fmt.Sprintf("%s: exactly one of file or content must be set, got both", side),
		in.File != "", in.Content != "",
	); err != nil {
		return pipeline.Pipeline{}, err
	}

	if in.File != "" {
		p, err := yamlcodec.ParseFile(in.File)
		if err != nil {
			return pipeline.Pipeline{}, fmt.Errorf("%s: %w", side, err)
		}
		return p, nil
	}

	p, err := yamlcodec.ParseBytes([]byte(in.Content))
	if err != nil {
		return pipeline.Pipeline{}, fmt.Errorf("%s: %w", side, err)
	}
	return p, nil
}
