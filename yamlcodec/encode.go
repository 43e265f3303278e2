package yamlcodec

import (
	"fmt"

	"github.com/pipelinetools/concoursemerge/pipeline"
)

// MarshalYAML implements the step encoder: it returns whichever of the five
// variant wire shapes matches s's Kind, with hook fields inlined. in_parallel
// always encodes as the long-form mapping (see wireInParallelBody).
func (s wireStep) MarshalYAML() (any, error) {
	switch {
	case s.Get != nil:
		return struct {
			wireGetStep    `yaml:",inline"`
			wireHookFields `yaml:",inline"`
		}{wireGetStep: *s.Get, wireHookFields: s.hooks()}, nil

	case s.Put != nil:
		return struct {
			wirePutStep    `yaml:",inline"`
			wireHookFields `yaml:",inline"`
		}{wirePutStep: *s.Put, wireHookFields: s.hooks()}, nil

	case s.Task != nil:
		return struct {
			wireTaskStep   `yaml:",inline"`
			wireHookFields `yaml:",inline"`
		}{wireTaskStep: *s.Task, wireHookFields: s.hooks()}, nil

	case s.Do != nil:
		return struct {
			Do             []wireStep `yaml:"do"`
			wireHookFields `yaml:",inline"`
		}{Do: s.Do.Steps, wireHookFields: s.hooks()}, nil

	case s.InParallel != nil:
		return struct {
			InParallel     wireInParallelBody `yaml:"in_parallel"`
			wireHookFields `yaml:",inline"`
		}{
			InParallel: wireInParallelBody{
				Steps:    s.InParallel.Steps,
				Limit:    s.InParallel.Limit,
				FailFast: s.InParallel.FailFast,
			},
			wireHookFields: s.hooks(),
		}, nil

	default:
		return nil, fmt.Errorf("yamlcodec: step has no variant set, cannot encode")
	}
}

func pipelineToWire(p pipeline.Pipeline) wirePipeline {
	w := wirePipeline{
		ResourceTypes: make([]wireResourceType, len(p.ResourceTypes)),
		Resources:     make([]wireResource, len(p.Resources)),
		Jobs:          make([]wireJob, len(p.Jobs)),
	}
	for i, rt := range p.ResourceTypes {
		w.ResourceTypes[i] = resourceTypeToWire(rt)
	}
	for i, r := range p.Resources {
		w.Resources[i] = resourceToWire(r)
	}
	for i, j := range p.Jobs {
		w.Jobs[i] = jobToWire(j)
	}
	return w
}

func resourceTypeToWire(rt pipeline.ResourceType) wireResourceType {
	return wireResourceType{
		Name:                 rt.Name,
		Type:                 rt.Type,
		Source:               rt.Source,
		Privileged:           rt.Privileged,
		Params:               rt.Params,
		CheckEvery:           rt.CheckEvery,
		Tags:                 rt.Tags,
		Defaults:             rt.Defaults,
		UniqueVersionHistory: rt.UniqueVersionHistory,
	}
}

func resourceToWire(r pipeline.Resource) wireResource {
	return wireResource{
		Name:                 r.Name,
		Type:                 r.Type,
		Source:               r.Source,
		OldName:              r.OldName,
		Icon:                 r.Icon,
		Version:              r.Version,
		CheckEvery:           r.CheckEvery,
		CheckTimeout:         r.CheckTimeout,
		ExposeBuildCreatedBy: r.ExposeBuildCreatedBy,
		Tags:                 r.Tags,
		Public:               r.Public,
		WebhookToken:         r.WebhookToken,
	}
}

func jobToWire(j pipeline.Job) wireJob {
	plan := make([]wireStep, len(j.Plan))
	for i, s := range j.Plan {
		plan[i] = stepToWire(s)
	}

	var retention *wireLogRetentionPolicy
	if j.BuildLogRetention != nil {
		retention = &wireLogRetentionPolicy{
			Days:                   j.BuildLogRetention.Days,
			Builds:                 j.BuildLogRetention.Builds,
			MinimumSucceededBuilds: j.BuildLogRetention.MinimumSucceededBuilds,
		}
	}

	return wireJob{
		Name:                 j.Name,
		Plan:                 plan,
		OldName:              j.OldName,
		Serial:               j.Serial,
		SerialGroups:         j.SerialGroups,
		MaxInFlight:          j.MaxInFlight,
		BuildLogRetention:    retention,
		Public:               j.Public,
		DisableManualTrigger: j.DisableManualTrigger,
		Interruptible:        j.Interruptible,
		OnSuccess:            stepPtrToWire(j.OnSuccess),
		OnFailure:            stepPtrToWire(j.OnFailure),
		OnError:              stepPtrToWire(j.OnError),
		OnAbort:              stepPtrToWire(j.OnAbort),
		Ensure:               stepPtrToWire(j.Ensure),
	}
}

func stepPtrToWire(s *pipeline.Step) *wireStep {
	if s == nil {
		return nil
	}
	w := stepToWire(*s)
	return &w
}

func stepToWire(s pipeline.Step) wireStep {
	var w wireStep

	switch s.Kind {
	case pipeline.StepKindGet:
		w.Get = &wireGetStep{
			Get:      s.Get.Get,
			Resource: s.Get.Resource,
			Passed:   s.Get.Passed,
			Params:   s.Get.Params,
			Trigger:  s.Get.Trigger,
			Version:  s.Get.Version,
		}

	case pipeline.StepKindPut:
		w.Put = &wirePutStep{
			Put:       s.Put.Put,
			Resource:  s.Put.Resource,
			Inputs:    s.Put.Inputs,
			Params:    s.Put.Params,
			GetParams: s.Put.GetParams,
		}

	case pipeline.StepKindTask:
		t := taskStepToWire(*s.Task)
		w.Task = &t

	case pipeline.StepKindDo:
		steps := make([]wireStep, len(s.Do.Steps))
		for i, child := range s.Do.Steps {
			steps[i] = stepToWire(child)
		}
		w.Do = &wireDoStep{Steps: steps}

	case pipeline.StepKindInParallel:
		steps := make([]wireStep, len(s.InParallel.Steps))
		for i, child := range s.InParallel.Steps {
			steps[i] = stepToWire(child)
		}
		w.InParallel = &wireInParallelStep{
			Steps:    steps,
			Limit:    s.InParallel.Limit,
			FailFast: s.InParallel.FailFast,
		}
	}

	w.OnSuccess = stepPtrToWire(s.OnSuccess)
	w.OnFailure = stepPtrToWire(s.OnFailure)
	w.OnError = stepPtrToWire(s.OnError)
	w.OnAbort = stepPtrToWire(s.OnAbort)
	w.Ensure = stepPtrToWire(s.Ensure)
	return w
}

func taskStepToWire(t pipeline.TaskStep) wireTaskStep {
	var cfg *wireTaskConfig
	if t.Config != nil {
		cfg = &wireTaskConfig{
			Platform:      t.Config.Platform,
			Run:           wireCommand(t.Config.Run),
			ImageResource: t.Config.ImageResource,
			Inputs:        taskIOsToWire(t.Config.Inputs),
			Outputs:       taskIOsToWire(t.Config.Outputs),
			Caches:        t.Config.Caches,
			Params:        t.Config.Params,
			RootfsURI:     t.Config.RootfsURI,
		}
		if t.Config.ContainerLimits != nil {
			cl := wireContainerLimits(*t.Config.ContainerLimits)
			cfg.ContainerLimits = &cl
		}
	}

	w := wireTaskStep{
		Task:          t.Task,
		Config:        cfg,
		File:          t.File,
		Image:         t.Image,
		Privileged:    t.Privileged,
		Vars:          t.Vars,
		Params:        t.Params,
		InputMapping:  t.InputMapping,
		OutputMapping: t.OutputMapping,
		Tags:          t.Tags,
		Attempts:      t.Attempts,
		Timeout:       t.Timeout,
	}
	if t.ContainerLimits != nil {
		cl := wireContainerLimits(*t.ContainerLimits)
		w.ContainerLimits = &cl
	}
	return w
}

func taskIOsToWire(t []pipeline.TaskIO) []wireTaskIO {
	out := make([]wireTaskIO, len(t))
	for i, io := range t {
		out[i] = wireTaskIO(io)
	}
	return out
}
