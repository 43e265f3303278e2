// Package pathutil provides output-path safety helpers shared by the CLI
// and MCP server.
//
// [SanitizeOutputPath] validates and cleans an output file path before the
// merged pipeline is written to it: it rejects directory traversal and
// refuses to write through a symlink.
package pathutil
