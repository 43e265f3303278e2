// Package commands provides CLI command handlers for pipelinemerge.
package commands

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	concoursemerge "github.com/pipelinetools/concoursemerge"
	"github.com/pipelinetools/concoursemerge/internal/cliutil"
	"github.com/pipelinetools/concoursemerge/internal/pathutil"
	"github.com/pipelinetools/concoursemerge/merge"
	"github.com/pipelinetools/concoursemerge/yamlcodec"
)

// MergeFlags holds the bound values of the merge command's flags.
type MergeFlags struct {
	Output         string
	Deep           bool
	RenameTemplate string
	Quiet          bool
	Debug          bool
}

// SetupMergeFlags creates and configures a FlagSet for the merge command.
// Returns the FlagSet and a MergeFlags struct with bound flag variables.
func SetupMergeFlags() (*flag.FlagSet, *MergeFlags) {
	fs := flag.NewFlagSet("merge", flag.ContinueOnError)
	flags := &MergeFlags{}

	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.BoolVar(&flags.Deep, "deep", false, "fuse same-named jobs instead of renaming the right-hand one")
	fs.StringVar(&flags.RenameTemplate, "rename-template", "", "text/template for collision names (default: {{.Name}}-{{printf \"%03d\" .Index}})")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: suppress diagnostic messages (for pipelining)")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: suppress diagnostic messages (for pipelining)")
	fs.BoolVar(&flags.Debug, "debug", false, "verbose slog output, plus a recovered stack dump on panic")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: pipelinemerge merge [flags] <left.yaml> <right.yaml>\n\n")
		cliutil.Writef(fs.Output(), "Merge two Concourse pipeline YAML files into one.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  pipelinemerge merge -o merged.yaml base.yaml extra.yaml\n")
		cliutil.Writef(fs.Output(), "  pipelinemerge merge --deep -o merged.yaml base.yaml extra.yaml\n")
		cliutil.Writef(fs.Output(), "  pipelinemerge merge --rename-template '{{.Name}}_{{.Source}}' base.yaml extra.yaml\n")
		cliutil.Writef(fs.Output(), "\nPipelining:\n")
		cliutil.Writef(fs.Output(), "  pipelinemerge merge -q base.yaml extra.yaml | fly set-pipeline -p p -c -\n")
	}

	return fs, flags
}

// HandleMerge executes the merge command.
func HandleMerge(args []string) error {
	fs, flags := SetupMergeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if flags.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
		defer func() {
			if r := recover(); r != nil {
				cliutil.Writef(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
				os.Exit(1)
			}
		}()
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("merge command requires exactly 2 input files, got %d", fs.NArg())
	}

	leftPath, rightPath := fs.Arg(0), fs.Arg(1)

	if flags.Output != "" {
		if err := pathutil.RejectOutputCollision(flags.Output, leftPath, rightPath); err != nil {
			return err
		}
	}

	slog.Debug("parsing inputs", "left", leftPath, "right", rightPath)

	left, err := yamlcodec.ParseFile(leftPath)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", leftPath, err)
	}
	right, err := yamlcodec.ParseFile(rightPath)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", rightPath, err)
	}

	var collisionCount int
	opts := merge.Options{
		Deep:           flags.Deep,
		RenameTemplate: flags.RenameTemplate,
		OnCollision: func(c merge.Collision) merge.Resolution {
			collisionCount++
			slog.Debug("collision resolved", "kind", c.Kind, "entity", c.Entity, "name", c.Name, "resolved_as", c.ResolvedAs)
			return merge.Resolution{}
		},
	}

	slog.Debug("merging", "deep", flags.Deep)
	report, err := merge.Run(left, right, opts)
	if err != nil {
		return fmt.Errorf("merging %s and %s: %w", leftPath, rightPath, err)
	}

	if !flags.Quiet {
		cliutil.Writef(os.Stderr, "pipelinemerge %s\n", concoursemerge.Version())
		cliutil.Writef(os.Stderr, "Resource types: %d\n", len(report.Pipeline.ResourceTypes))
		cliutil.Writef(os.Stderr, "Resources: %d\n", len(report.Pipeline.Resources))
		cliutil.Writef(os.Stderr, "Jobs: %d\n", len(report.Pipeline.Jobs))
		cliutil.Writef(os.Stderr, "Collisions resolved: %d\n", collisionCount)
	}

	if flags.Output != "" {
		if err := yamlcodec.WriteMergedPipeline(flags.Output, report.Pipeline); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		if !flags.Quiet {
			cliutil.Writef(os.Stderr, "\nOutput written to: %s\n", flags.Output)
		}
		return nil
	}

	data, err := yamlcodec.Marshal(report.Pipeline)
	if err != nil {
		return fmt.Errorf("marshaling merged pipeline: %w", err)
	}
	if _, err := os.Stdout.Write(data); err != nil {
		return fmt.Errorf("writing merged pipeline to stdout: %w", err)
	}
	return nil
}
