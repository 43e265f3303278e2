// Package pipeline defines the in-memory value model for a Concourse CI
// pipeline: resource types, resources, jobs, and the tagged step variant
// (Get, Put, Task, Do, InParallel) that makes up a job's plan.
//
// Every type in this package is an immutable value. Operations that would
// conceptually mutate an entity — renaming it, rewriting the resources its
// steps reference — instead return a new value; nothing here ever edits a
// caller's pipeline in place.
//
// Two notions of equality are distinguished throughout: SemanticEqual
// (semantic equality, ignoring Name) and ExactEqual (semantic equality plus a
// matching Name). The merge engine in package merge builds entirely on top of these
// two predicates.
package pipeline
