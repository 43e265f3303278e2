package pipeline

import (
	"maps"
	"reflect"
	"slices"

	"github.com/pipelinetools/concoursemerge/internal/equalutil"
)

// ResourceType declares a Concourse resource type plugin: the container
// image used to check, get, and put resources backed by it.
type ResourceType struct {
	Name       string
	Type       string
	Source     map[string]any
	Privileged bool
	Params     map[string]any
	CheckEvery string
	Tags       []string
	Defaults   map[string]any

	// UniqueVersionHistory, carried over from a later revision of the
	// original model, opts a resource type into per-resource version
	// history rather than sharing history across resources of the type.
	UniqueVersionHistory bool
}

// EntityName returns the resource type's name, satisfying merge.NamedEntity.
func (rt ResourceType) EntityName() string { return rt.Name }

// Renamed returns a copy of rt with Name set to name.
func (rt ResourceType) Renamed(name string) ResourceType {
	c := rt
	c.Name = name
	return c
}

// SemanticEqual reports whether rt and other are content-equal, ignoring Name.
func (rt ResourceType) SemanticEqual(other ResourceType) bool {
	return rt.Type == other.Type &&
		reflect.DeepEqual(rt.Source, other.Source) &&
		rt.Privileged == other.Privileged &&
		reflect.DeepEqual(rt.Params, other.Params) &&
		rt.CheckEvery == other.CheckEvery &&
		slices.Equal(rt.Tags, other.Tags) &&
		reflect.DeepEqual(rt.Defaults, other.Defaults) &&
		rt.UniqueVersionHistory == other.UniqueVersionHistory
}

// ExactEqual reports semantic equality plus a matching Name.
func (rt ResourceType) ExactEqual(other ResourceType) bool {
	return rt.Name == other.Name && rt.SemanticEqual(other)
}

// DeepCopy returns a value-independent copy of rt.
func (rt ResourceType) DeepCopy() ResourceType {
	c := rt
	c.Source = maps.Clone(rt.Source)
	c.Params = maps.Clone(rt.Params)
	c.Defaults = maps.Clone(rt.Defaults)
	c.Tags = slices.Clone(rt.Tags)
	return c
}

// Resource declares an external input or output bound to a ResourceType by
// name. Source and Version are opaque, plugin-specific values.
type Resource struct {
	Name                 string
	Type                 string
	Source               map[string]any
	OldName              *string
	Icon                 *string
	Version              map[string]any
	CheckEvery           string
	CheckTimeout         string
	ExposeBuildCreatedBy bool
	Tags                 []string
	Public               bool
	WebhookToken         *string
}

// EntityName returns the resource's name, satisfying merge.NamedEntity.
func (r Resource) EntityName() string { return r.Name }

// Renamed returns a copy of r with Name set to name.
func (r Resource) Renamed(name string) Resource {
	c := r
	c.Name = name
	return c
}

// SemanticEqual reports whether r and other are content-equal, ignoring Name.
func (r Resource) SemanticEqual(other Resource) bool {
	return r.Type == other.Type &&
		reflect.DeepEqual(r.Source, other.Source) &&
		equalutil.EqualPtr(r.OldName, other.OldName) &&
		equalutil.EqualPtr(r.Icon, other.Icon) &&
		reflect.DeepEqual(r.Version, other.Version) &&
		r.CheckEvery == other.CheckEvery &&
		r.CheckTimeout == other.CheckTimeout &&
		r.ExposeBuildCreatedBy == other.ExposeBuildCreatedBy &&
		slices.Equal(r.Tags, other.Tags) &&
		r.Public == other.Public &&
		equalutil.EqualPtr(r.WebhookToken, other.WebhookToken)
}

// ExactEqual reports semantic equality plus a matching Name.
func (r Resource) ExactEqual(other Resource) bool {
	return r.Name == other.Name && r.SemanticEqual(other)
}

// Rewrite applies a resource-type rename map to r's Type field, returning a
// new Resource. Fails if r.Type is not a key of typeRewrites.
func (r Resource) Rewrite(typeRewrites map[string]string) (Resource, bool) {
	newType, ok := typeRewrites[r.Type]
	if !ok {
		return Resource{}, false
	}
	c := r.DeepCopy()
	c.Type = newType
	return c, true
}

// DeepCopy returns a value-independent copy of r.
func (r Resource) DeepCopy() Resource {
	c := r
	c.Source = maps.Clone(r.Source)
	c.Version = maps.Clone(r.Version)
	c.Tags = slices.Clone(r.Tags)
	if r.OldName != nil {
		v := *r.OldName
		c.OldName = &v
	}
	if r.Icon != nil {
		v := *r.Icon
		c.Icon = &v
	}
	if r.WebhookToken != nil {
		v := *r.WebhookToken
		c.WebhookToken = &v
	}
	return c
}

// LogRetentionPolicy configures how long a job's build logs and artifacts
// are retained.
type LogRetentionPolicy struct {
	Days                   int
	Builds                 int
	MinimumSucceededBuilds int
}

// Job is a named plan of steps plus scheduling metadata and the five
// optional hook steps run on completion.
type Job struct {
	Name                 string
	Plan                 []Step
	OldName              *string
	Serial               bool
	SerialGroups         []string
	MaxInFlight          *int
	BuildLogRetention    *LogRetentionPolicy
	Public               bool
	DisableManualTrigger bool
	Interruptible        bool
	OnSuccess            *Step
	OnFailure            *Step
	OnError              *Step
	OnAbort              *Step
	Ensure               *Step
}

// EntityName returns the job's name, satisfying merge.NamedEntity.
func (j Job) EntityName() string { return j.Name }

// Renamed returns a copy of j with Name set to name.
func (j Job) Renamed(name string) Job {
	c := j
	c.Name = name
	return c
}

// SemanticEqual reports whether j and other are content-equal, ignoring
// Name. Per the data model, hook step bodies do not participate: only their
// presence/absence is not checked here either — deep merge is the one place
// hook equality is actually enforced (see merge.deepMergeJob).
func (j Job) SemanticEqual(other Job) bool {
	if len(j.Plan) != len(other.Plan) {
		return false
	}
	for i := range j.Plan {
		if !j.Plan[i].Equal(other.Plan[i]) {
			return false
		}
	}
	return equalutil.EqualPtr(j.OldName, other.OldName) &&
		j.Serial == other.Serial &&
		equalutil.EqualStringSet(j.SerialGroups, other.SerialGroups) &&
		equalutil.EqualPtr(j.MaxInFlight, other.MaxInFlight) &&
		logRetentionEqual(j.BuildLogRetention, other.BuildLogRetention) &&
		j.Public == other.Public &&
		j.DisableManualTrigger == other.DisableManualTrigger &&
		j.Interruptible == other.Interruptible
}

// ExactEqual reports semantic equality plus a matching Name.
func (j Job) ExactEqual(other Job) bool {
	return j.Name == other.Name && j.SemanticEqual(other)
}

func logRetentionEqual(a, b *LogRetentionPolicy) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// DeepCopy returns a value-independent copy of j.
func (j Job) DeepCopy() Job {
	c := j
	c.Plan = make([]Step, len(j.Plan))
	for i, s := range j.Plan {
		c.Plan[i] = s.DeepCopy()
	}
	c.SerialGroups = slices.Clone(j.SerialGroups)
	if j.OldName != nil {
		v := *j.OldName
		c.OldName = &v
	}
	if j.MaxInFlight != nil {
		v := *j.MaxInFlight
		c.MaxInFlight = &v
	}
	if j.BuildLogRetention != nil {
		v := *j.BuildLogRetention
		c.BuildLogRetention = &v
	}
	c.OnSuccess = copyStepPtr(j.OnSuccess)
	c.OnFailure = copyStepPtr(j.OnFailure)
	c.OnError = copyStepPtr(j.OnError)
	c.OnAbort = copyStepPtr(j.OnAbort)
	c.Ensure = copyStepPtr(j.Ensure)
	return c
}

func copyStepPtr(s *Step) *Step {
	if s == nil {
		return nil
	}
	c := s.DeepCopy()
	return &c
}

// HookSteps returns j's five optional hook steps, non-nil ones only, in a
// fixed order (OnSuccess, OnFailure, OnError, OnAbort, Ensure).
func (j Job) HookSteps() []*Step {
	hooks := make([]*Step, 0, 5)
	for _, h := range []*Step{j.OnSuccess, j.OnFailure, j.OnError, j.OnAbort, j.Ensure} {
		if h != nil {
			hooks = append(hooks, h)
		}
	}
	return hooks
}

// Pipeline is the top-level merged or mergeable unit: a set of resource
// types, resources, and jobs.
type Pipeline struct {
	ResourceTypes []ResourceType
	Resources     []Resource
	Jobs          []Job
}

// Equal reports whether p and other contain the same entities, comparing
// each of the three lists after sorting by name.
func (p Pipeline) Equal(other Pipeline) bool {
	a := sortedByName(p.ResourceTypes, func(rt ResourceType) string { return rt.Name })
	b := sortedByName(other.ResourceTypes, func(rt ResourceType) string { return rt.Name })
	if !equalSlices(a, b, ResourceType.SemanticEqual) {
		return false
	}

	ar := sortedByName(p.Resources, func(r Resource) string { return r.Name })
	br := sortedByName(other.Resources, func(r Resource) string { return r.Name })
	if !equalSlices(ar, br, Resource.SemanticEqual) {
		return false
	}

	aj := sortedByName(p.Jobs, func(j Job) string { return j.Name })
	bj := sortedByName(other.Jobs, func(j Job) string { return j.Name })
	return equalSlices(aj, bj, Job.SemanticEqual)
}

// ExactEqual reports Equal plus pairwise ExactEqual (matching names) after
// the same per-list sort.
func (p Pipeline) ExactEqual(other Pipeline) bool {
	if !p.Equal(other) {
		return false
	}

	a := sortedByName(p.ResourceTypes, func(rt ResourceType) string { return rt.Name })
	b := sortedByName(other.ResourceTypes, func(rt ResourceType) string { return rt.Name })
	if !equalSlices(a, b, ResourceType.ExactEqual) {
		return false
	}

	ar := sortedByName(p.Resources, func(r Resource) string { return r.Name })
	br := sortedByName(other.Resources, func(r Resource) string { return r.Name })
	if !equalSlices(ar, br, Resource.ExactEqual) {
		return false
	}

	aj := sortedByName(p.Jobs, func(j Job) string { return j.Name })
	bj := sortedByName(other.Jobs, func(j Job) string { return j.Name })
	return equalSlices(aj, bj, Job.ExactEqual)
}

func sortedByName[T any](in []T, key func(T) string) []T {
	out := slices.Clone(in)
	slices.SortFunc(out, func(a, b T) int {
		ka, kb := key(a), key(b)
		switch {
		case ka < kb:
			return -1
		case ka > kb:
			return 1
		default:
			return 0
		}
	})
	return out
}

func equalSlices[T any](a, b []T, eq func(T, T) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !eq(a[i], b[i]) {
			return false
		}
	}
	return true
}
