// Package concoursemerge provides tools for merging Concourse CI pipeline
// definitions: a typed pipeline model, a semantic-diff-aware merge engine,
// and the YAML codec, CLI, and MCP server built on top of it.
//
// # Overview
//
// The module consists of a small core and a thin ambient layer:
//
//   - pipeline: typed model of ResourceTypes, Resources, Jobs, and Steps,
//     with both semantic (==) and exact equality
//   - pipeline/rewrite: applies name-rewrite maps across a step tree
//   - merge: the unique-merge primitive, handle analyzer, deep job merger,
//     and the three-layer pipeline driver
//   - validate: checks a pipeline's structural invariants
//   - mergeerrors: typed errors for each engine failure kind
//   - yamlcodec: parses and marshals pipelines to/from Concourse YAML
//   - cmd/pipelinemerge: a CLI wrapping the engine
//   - internal/mcpserver: an MCP tool exposing the engine over stdio
//
// # Installation
//
//	go get github.com/pipelinetools/concoursemerge
//
// # Quick Start
//
// Parse two pipelines and merge them:
//
//	import (
//		"github.com/pipelinetools/concoursemerge/merge"
//		"github.com/pipelinetools/concoursemerge/yamlcodec"
//	)
//
//	left, err := yamlcodec.ParseFile("base.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	right, err := yamlcodec.ParseFile("extra.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	report, err := merge.Run(left, right, merge.Options{})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	out, err := yamlcodec.Marshal(report.Pipeline)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Merge Engine
//
// The merge package implements a three-layer driver over ResourceTypes,
// Resources, and Jobs (in that order), so that a rename decided while
// merging ResourceTypes is visible by the time Resources are merged, and a
// rename decided while merging Resources is visible by the time Jobs are
// merged. Two entities with the same name and semantically equal content
// are treated as the same entity and simply unioned; two entities with the
// same name but different content trigger a rename of the second entity,
// using a "-NNN" zero-padded counter suffix by default.
//
// An optional deep-merge mode fuses two Jobs that share a name and
// structurally similar plans into a single Job by unioning the parallel
// branches their plans disagree on, rather than renaming one of them.
//
// # Error Handling
//
// All engine failures are returned as one of the typed errors in
// mergeerrors (InvalidPipelineError, UnsupportedTaskError,
// DeepMergeConflictError, MissingRewriteKeyError), each wrapping a sentinel
// usable with errors.Is. merge.Run aborts on the first error; it never
// returns a partially merged pipeline.
//
// # Command-Line Interface
//
//	# Merge two pipelines
//	pipelinemerge merge -o merged.yaml base.yaml extra.yaml
//
//	# Merge with deep job fusion and a custom rename template
//	pipelinemerge merge --deep --rename-template '{{.Name}}_{{.Source}}' base.yaml extra.yaml
//
// Install the CLI:
//
//	go install github.com/pipelinetools/concoursemerge/cmd/pipelinemerge@latest
//
// # License
//
// This library is released under the MIT License.
package concoursemerge
