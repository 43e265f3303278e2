// Package mcpserver implements an MCP (Model Context Protocol) server that
// exposes pipeline merging as a single MCP tool over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	concoursemerge "github.com/pipelinetools/concoursemerge"
)

const serverInstructions = `pipelinemerge MCP server — merges two Concourse CI pipeline YAML documents into one.

The merge_pipelines tool takes a left (base) and right pipeline, each given
either inline as content or by file path, and returns the merged document
(or writes it to a file when output is set). Same-named resource types and
resources that are semantically identical are deduplicated; same-named
entities that differ are kept side by side, with the right-hand one
renamed. Identical same-named jobs are always deduplicated. Differing
same-named jobs are renamed unless deep is set, in which case they are
fused (same step shape, non-conflicting hooks and task handles); when they
cannot be fused the merge fails with an error.`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "pipelinemerge", Version: concoursemerge.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "merge_pipelines",
		Description: "Merge two Concourse CI pipeline YAML documents (left and right, each inline or by file path) into one. Resource types and resources that collide by name are deduplicated when semantically identical, renamed otherwise. Jobs that collide by name are renamed by default, or fused with deep=true. Returns the merged document inline, or writes it to output when set.",
	}, handleMerge)
}

// sanitizeError strips absolute filesystem paths from error messages to
// avoid leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
