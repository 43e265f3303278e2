package yamlcodec

import (
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v4"

	"github.com/pipelinetools/concoursemerge/internal/fileutil"
	"github.com/pipelinetools/concoursemerge/internal/pathutil"
	"github.com/pipelinetools/concoursemerge/pipeline"
)

// Parse decodes a Concourse pipeline YAML document read from r into a
// pipeline.Pipeline.
func Parse(r io.Reader) (pipeline.Pipeline, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return pipeline.Pipeline{}, fmt.Errorf("yamlcodec: reading input: %w", err)
	}
	return ParseBytes(data)
}

// ParseBytes decodes a Concourse pipeline YAML document already held in
// memory, e.g. the MCP server's inline-content tool input.
func ParseBytes(data []byte) (pipeline.Pipeline, error) {
	var w wirePipeline
	if err := yaml.Unmarshal(data, &w); err != nil {
		return pipeline.Pipeline{}, fmt.Errorf("yamlcodec: parse: %w", err)
	}
	return pipelineFromWire(w), nil
}

// ParseFile reads and decodes the pipeline YAML file at path.
func ParseFile(path string) (pipeline.Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return pipeline.Pipeline{}, fmt.Errorf("yamlcodec: reading %s: %w", path, err)
	}
	return ParseBytes(data)
}

// Marshal encodes p as Concourse pipeline YAML.
func Marshal(p pipeline.Pipeline) ([]byte, error) {
	data, err := yaml.Marshal(pipelineToWire(p))
	if err != nil {
		return nil, fmt.Errorf("yamlcodec: marshal: %w", err)
	}
	return data, nil
}

// WriteFile encodes p and writes it to path with the given file permission,
// after sanitizing path against directory traversal and symlink targets.
func WriteFile(path string, p pipeline.Pipeline, perm os.FileMode) error {
	clean, err := pathutil.SanitizeOutputPath(path)
	if err != nil {
		return err
	}

	data, err := Marshal(p)
	if err != nil {
		return err
	}

	if err := os.WriteFile(clean, data, perm); err != nil {
		return fmt.Errorf("yamlcodec: writing %s: %w", clean, err)
	}
	return nil
}

// WriteMergedPipeline is a convenience wrapper around WriteFile using the
// file permission the codec recommends for pipeline definitions, which
// frequently embed credentials under source/params.
func WriteMergedPipeline(path string, p pipeline.Pipeline) error {
	return WriteFile(path, p, fileutil.OwnerReadWrite)
}
