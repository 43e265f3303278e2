// Package mergeerrors defines the typed failure kinds the merge engine can
// return: one struct type per kind, each wrapping a package-level sentinel
// so callers can classify a failure with errors.Is without inspecting
// struct fields.
package mergeerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per failure kind. Wrap these with errors.Is against
// an error returned from pipeline/rewrite, validate, or merge.
var (
	// ErrInvalidPipeline indicates a pre-merge validator rejected an input
	// pipeline because some resource references an undeclared resource
	// type.
	ErrInvalidPipeline = errors.New("mergeerrors: invalid pipeline")

	// ErrUnsupportedTask indicates a Task step lacks inline config or
	// references an external file, so the rewriter cannot inspect it.
	ErrUnsupportedTask = errors.New("mergeerrors: unsupported task")

	// ErrDeepMergeConflict indicates deep-mode job fusion found plans that
	// cannot be reconciled.
	ErrDeepMergeConflict = errors.New("mergeerrors: deep merge conflict")

	// ErrMissingRewriteKey indicates the rewriter was handed a map that
	// does not cover a name it encountered — a driver invariant violation.
	ErrMissingRewriteKey = errors.New("mergeerrors: missing rewrite key")
)

// InvalidPipelineError reports which side and which resource failed
// validation, and why.
type InvalidPipelineError struct {
	Side     string // "left" or "right"
	Resource string
	Type     string
}

func (e InvalidPipelineError) Error() string {
	return fmt.Sprintf("mergeerrors: %s pipeline invalid: resource %q references undeclared type %q", e.Side, e.Resource, e.Type)
}

// Unwrap lets errors.Is(err, ErrInvalidPipeline) match.
func (e InvalidPipelineError) Unwrap() error { return ErrInvalidPipeline }

// UnsupportedTaskError reports a task step the rewriter could not inspect.
type UnsupportedTaskError struct {
	JobName   string
	TaskLabel string
	Reason    string // "missing config" or "external file"
}

func (e UnsupportedTaskError) Error() string {
	return fmt.Sprintf("mergeerrors: job %q task %q unsupported: %s", e.JobName, e.TaskLabel, e.Reason)
}

// Unwrap lets errors.Is(err, ErrUnsupportedTask) match.
func (e UnsupportedTaskError) Unwrap() error { return ErrUnsupportedTask }

// DeepMergeConflictError reports why two same-named jobs could not be
// fused in deep mode.
type DeepMergeConflictError struct {
	JobName string
	Reason  string // "plan length mismatch", "step mismatch at index N", "hook mismatch", `task "T" input handle collision`, `task "T" output handle collision`
}

func (e DeepMergeConflictError) Error() string {
	return fmt.Sprintf("mergeerrors: deep merge of job %q failed: %s", e.JobName, e.Reason)
}

// Unwrap lets errors.Is(err, ErrDeepMergeConflict) match.
func (e DeepMergeConflictError) Unwrap() error { return ErrDeepMergeConflict }

// MissingRewriteKeyError reports a rewrite map that did not cover a name
// the rewriter encountered.
type MissingRewriteKeyError struct {
	Name string
	Kind string // e.g. "resource type", "resource"
}

func (e MissingRewriteKeyError) Error() string {
	return fmt.Sprintf("mergeerrors: rewrite map missing entry for %s %q", e.Kind, e.Name)
}

// Unwrap lets errors.Is(err, ErrMissingRewriteKey) match.
func (e MissingRewriteKeyError) Unwrap() error { return ErrMissingRewriteKey }
