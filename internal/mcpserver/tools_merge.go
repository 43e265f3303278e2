package mcpserver

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pipelinetools/concoursemerge/internal/pathutil"
	"github.com/pipelinetools/concoursemerge/merge"
	"github.com/pipelinetools/concoursemerge/yamlcodec"
)

type mergeInput struct {
	Left           pipelineInput `json:"left"                          jsonschema:"Left-hand pipeline (base)"`
	Right          pipelineInput `json:"right"                         jsonschema:"Right-hand pipeline (merged in on top of left)"`
	Deep           bool          `json:"deep,omitempty"                jsonschema:"Fuse same-named jobs instead of renaming the right-hand one"`
	RenameTemplate string        `json:"rename_template,omitempty"     jsonschema:"text/template string for collision names, evaluated against {Name, Index, Source}; default is {{.Name}}-{{printf \"%03d\" .Index}}"`
	Output         string        `json:"output,omitempty"              jsonschema:"File path to write the merged pipeline. If omitted the result is returned inline."`
}

type mergeOutput struct {
	ResourceTypeCount int    `json:"resource_type_count"`
	ResourceCount     int    `json:"resource_count"`
	JobCount          int    `json:"job_count"`
	CollisionCount    int    `json:"collision_count"`
	WrittenTo         string `json:"written_to,omitempty"`
	Document          string `json:"document,omitempty"`
	Summary           string `json:"summary"`
}

func handleMerge(_ context.Context, _ *mcp.CallToolRequest, input mergeInput) (*mcp.CallToolResult, mergeOutput, error) {
	left, err := input.Left.resolve("left")
	if err != nil {
		return errResult(err), mergeOutput{}, nil
	}
	right, err := input.Right.resolve("right")
	if err != nil {
		return errResult(err), mergeOutput{}, nil
	}

	var collisionCount int
	opts := merge.Options{
		Deep:           input.Deep,
		RenameTemplate: input.RenameTemplate,
		OnCollision: func(merge.Collision) merge.Resolution {
			collisionCount++
			return merge.Resolution{}
		},
	}

	report, err := merge.Run(left, right, opts)
	if err != nil {
		return errResult(err), mergeOutput{}, nil
	}

	output := mergeOutput{
		ResourceTypeCount: len(report.Pipeline.ResourceTypes),
		ResourceCount:     len(report.Pipeline.Resources),
		JobCount:          len(report.Pipeline.Jobs),
		CollisionCount:    collisionCount,
	}
	output.Summary = buildMergeSummary(output)

	data, err := yamlcodec.Marshal(report.Pipeline)
	if err != nil {
		return errResult(err), mergeOutput{}, nil
	}

	if input.Output != "" {
		cleanPath, pathErr := pathutil.SanitizeOutputPath(input.Output)
		if pathErr != nil {
			return errResult(fmt.Errorf("invalid output path: %w", pathErr)), mergeOutput{}, nil
		}
		if err := os.WriteFile(cleanPath, data, 0o600); err != nil {
			return errResult(fmt.Errorf("failed to write output file: %w", err)), mergeOutput{}, nil
		}
		output.WrittenTo = cleanPath
	} else {
		output.Document = string(data)
	}

	return nil, output, nil
}

func buildMergeSummary(output mergeOutput) string {
	summary := "Merged into a pipeline with " + formatCount(output.ResourceTypeCount, "resource type")
	summary += ", " + formatCount(output.ResourceCount, "resource")
	summary += ", and " + formatCount(output.JobCount, "job") + "."
	if output.CollisionCount > 0 {
		summary += " " + formatCount(output.CollisionCount, "collision") + " resolved."
	}
	return summary
}

func formatCount(n int, noun string) string {
	s := strconv.Itoa(n) + " " + noun
	if n != 1 {
		s += "s"
	}
	return s
}
