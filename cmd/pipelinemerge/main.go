package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	concoursemerge "github.com/pipelinetools/concoursemerge"
	"github.com/pipelinetools/concoursemerge/cmd/pipelinemerge/commands"
	"github.com/pipelinetools/concoursemerge/internal/cliutil"
	"github.com/pipelinetools/concoursemerge/internal/mcpserver"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Println(concoursemerge.BuildInfo())
	case "help", "-h", "--help":
		printUsage()
	case "merge":
		if err := commands.HandleMerge(os.Args[2:]); err != nil {
			cliutil.Writef(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := mcpserver.Run(ctx); err != nil {
			cliutil.Writef(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		cliutil.Writef(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`pipelinemerge - merge Concourse CI pipeline YAML files

Usage:
  pipelinemerge <command> [options]

Commands:
  merge    Merge two pipeline YAML files into one
  mcp      Start an MCP server over stdio
  version  Show version information
  help     Show this help message

Examples:
  pipelinemerge merge -o merged.yaml base.yaml extra.yaml
  pipelinemerge merge --deep --rename-template '{{.Name}}_{{.Source}}' base.yaml extra.yaml
  pipelinemerge merge -q base.yaml extra.yaml | fly set-pipeline -p p -c -

Run 'pipelinemerge <command> -h' for more information on a command.`)
}
