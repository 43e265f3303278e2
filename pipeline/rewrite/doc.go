// Package rewrite implements a uniform walk that applies a name -> name
// map to every resource reference inside a step tree, producing a fresh
// tree without mutating the input.
//
// A dispatch-by-variant walk carrying one rewrite map, recursing into
// nested structures and leaving fields outside the map's scope untouched,
// dispatching over pipeline.StepKind and carrying resource renames.
package rewrite
