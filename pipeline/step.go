package pipeline

import (
	"maps"
	"reflect"
	"slices"
)

// StepKind discriminates the five step variants a Step can hold. Exactly
// one of the corresponding pointer fields on a Step is non-nil for its Kind.
type StepKind int

const (
	// StepKindGet is a `get:` step.
	StepKindGet StepKind = iota
	// StepKindPut is a `put:` step.
	StepKindPut
	// StepKindTask is a `task:` step.
	StepKindTask
	// StepKindDo is a `do:` step.
	StepKindDo
	// StepKindInParallel is an `in_parallel:` step.
	StepKindInParallel
)

func (k StepKind) String() string {
	switch k {
	case StepKindGet:
		return "get"
	case StepKindPut:
		return "put"
	case StepKindTask:
		return "task"
	case StepKindDo:
		return "do"
	case StepKindInParallel:
		return "in_parallel"
	default:
		return "unknown"
	}
}

// Step is a tagged union over Concourse's five plan step variants. A zero
// Step is not meaningful; construct one via NewGetStep, NewPutStep, etc., or
// via the yamlcodec package's decoder.
//
// The five hook fields (OnSuccess, OnFailure, OnError, OnAbort, Ensure) are
// legal on every variant, not only Job: the original model attaches them to
// every step, and the rewriter recurses into a step's own hooks in addition
// to a Job's top-level ones. The handle analyzer looks at plan steps only,
// not at hooks.
type Step struct {
	Kind StepKind

	Get        *GetStep
	Put        *PutStep
	Task       *TaskStep
	Do         *DoStep
	InParallel *InParallelStep

	OnSuccess *Step
	OnFailure *Step
	OnError   *Step
	OnAbort   *Step
	Ensure    *Step
}

// GetStep represents a `get:` plan step.
type GetStep struct {
	Get      string
	Resource string // empty means "defaults to Get"
	Passed   []string
	Params   any
	Trigger  bool
	// Version defaults to "latest". Unlike Resource, this default is
	// applied eagerly at decode time rather than left for callers to
	// resolve lazily: a decoded GetStep's Version is never empty, so an
	// omitted "version:" key and an explicit "version: latest" compare
	// equal everywhere, including Step.Equal's field-by-field comparison.
	Version string
}

// EffectiveResource returns Resource if set, else Get, per the Get step's
// documented invariant.
func (g GetStep) EffectiveResource() string {
	if g.Resource != "" {
		return g.Resource
	}
	return g.Get
}

// PutStep represents a `put:` plan step.
type PutStep struct {
	Put      string
	Resource string // empty means "defaults to Put"
	// Inputs defaults to "all", applied eagerly at decode time for the
	// same reason GetStep.Version is: so an omitted "inputs:" key and an
	// explicit "inputs: all" are indistinguishable afterward.
	Inputs    string
	Params    any
	GetParams any
}

// EffectiveResource returns Resource if set, else Put, per the Put step's
// documented invariant.
func (p PutStep) EffectiveResource() string {
	if p.Resource != "" {
		return p.Resource
	}
	return p.Put
}

// Command is the `run:` section of a Task's inline config.
type Command struct {
	Path string
	Args []string
	Dir  string
	User string
}

// TaskIO names one entry of a TaskConfig's inputs or outputs list.
type TaskIO struct {
	Name     string
	Path     string
	Optional bool
}

// ContainerLimits bounds a task container's CPU and memory.
type ContainerLimits struct {
	CPU    int
	Memory int
}

// TaskConfig is a Task step's inline configuration. A Task with an external
// File instead of Config cannot be rewritten or handle-analyzed; see
// mergeerrors.UnsupportedTaskError.
type TaskConfig struct {
	Platform        string
	Run             Command
	ImageResource   map[string]any
	Inputs          []TaskIO
	Outputs         []TaskIO
	Caches          []string
	Params          map[string]any
	RootfsURI       string
	ContainerLimits *ContainerLimits
}

// TaskStep represents a `task:` plan step. Exactly one of Config or File is
// normally set; a Task with neither, or with File set, cannot be rewritten
// (see mergeerrors.UnsupportedTaskError).
//
// Params, Vars, Tags, Attempts, Timeout, InputMapping, and OutputMapping are
// carried as opaque passthrough fields: the rewriter and handle analyzer
// never inspect them, since task I/O handles are local to the task's own
// container paths and never resolve to a pipeline Resource.
type TaskStep struct {
	Task            string
	Config          *TaskConfig
	File            string
	Image           string
	Privileged      bool
	Vars            map[string]any
	ContainerLimits *ContainerLimits
	Params          map[string]any
	InputMapping    map[string]string
	OutputMapping   map[string]string
	Tags            []string
	Attempts        int
	Timeout         string
}

// DoStep represents a `do:` plan step: an ordered, serially-executed
// sequence of child steps.
type DoStep struct {
	Steps []Step
}

// InParallelStep represents an `in_parallel:` plan step. The codec always
// canonicalizes the short form (a bare sequence) to this long form on
// ingest; Limit is nil when the short form carried no limit.
type InParallelStep struct {
	Steps    []Step
	Limit    *int
	FailFast bool
}

// NewGetStep constructs a Step wrapping a GetStep.
func NewGetStep(g GetStep) Step { return Step{Kind: StepKindGet, Get: &g} }

// NewPutStep constructs a Step wrapping a PutStep.
func NewPutStep(p PutStep) Step { return Step{Kind: StepKindPut, Put: &p} }

// NewTaskStep constructs a Step wrapping a TaskStep.
func NewTaskStep(t TaskStep) Step { return Step{Kind: StepKindTask, Task: &t} }

// NewDoStep constructs a Step wrapping a DoStep.
func NewDoStep(d DoStep) Step { return Step{Kind: StepKindDo, Do: &d} }

// NewInParallelStep constructs a Step wrapping an InParallelStep.
func NewInParallelStep(p InParallelStep) Step { return Step{Kind: StepKindInParallel, InParallel: &p} }

// Equal reports structural equality between two steps: same kind, same
// variant content (including names/handles), and equal hooks. This is a
// stricter notion than entity SemanticEqual — steps have no separate
// "name" to ignore.
func (s Step) Equal(other Step) bool {
	return reflect.DeepEqual(s, other)
}

// DeepCopy returns a value-independent copy of s.
func (s Step) DeepCopy() Step {
	c := Step{Kind: s.Kind}
	switch s.Kind {
	case StepKindGet:
		g := *s.Get
		g.Passed = slices.Clone(s.Get.Passed)
		c.Get = &g
	case StepKindPut:
		p := *s.Put
		c.Put = &p
	case StepKindTask:
		t := *s.Task
		t.Vars = maps.Clone(s.Task.Vars)
		t.Params = maps.Clone(s.Task.Params)
		t.InputMapping = maps.Clone(s.Task.InputMapping)
		t.OutputMapping = maps.Clone(s.Task.OutputMapping)
		t.Tags = slices.Clone(s.Task.Tags)
		if s.Task.Config != nil {
			cfg := *s.Task.Config
			cfg.Inputs = slices.Clone(s.Task.Config.Inputs)
			cfg.Outputs = slices.Clone(s.Task.Config.Outputs)
			cfg.Caches = slices.Clone(s.Task.Config.Caches)
			cfg.Params = maps.Clone(s.Task.Config.Params)
			cfg.ImageResource = maps.Clone(s.Task.Config.ImageResource)
			t.Config = &cfg
		}
		if s.Task.ContainerLimits != nil {
			cl := *s.Task.ContainerLimits
			t.ContainerLimits = &cl
		}
		c.Task = &t
	case StepKindDo:
		d := DoStep{Steps: make([]Step, len(s.Do.Steps))}
		for i, child := range s.Do.Steps {
			d.Steps[i] = child.DeepCopy()
		}
		c.Do = &d
	case StepKindInParallel:
		ip := InParallelStep{Steps: make([]Step, len(s.InParallel.Steps)), FailFast: s.InParallel.FailFast}
		for i, child := range s.InParallel.Steps {
			ip.Steps[i] = child.DeepCopy()
		}
		if s.InParallel.Limit != nil {
			v := *s.InParallel.Limit
			ip.Limit = &v
		}
		c.InParallel = &ip
	}
	c.OnSuccess = copyStepPtr(s.OnSuccess)
	c.OnFailure = copyStepPtr(s.OnFailure)
	c.OnError = copyStepPtr(s.OnError)
	c.OnAbort = copyStepPtr(s.OnAbort)
	c.Ensure = copyStepPtr(s.Ensure)
	return c
}

// HookSteps returns s's own five optional hook steps, non-nil ones only.
func (s Step) HookSteps() []*Step {
	hooks := make([]*Step, 0, 5)
	for _, h := range []*Step{s.OnSuccess, s.OnFailure, s.OnError, s.OnAbort, s.Ensure} {
		if h != nil {
			hooks = append(hooks, h)
		}
	}
	return hooks
}
