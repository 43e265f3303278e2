package yamlcodec

import (
	"fmt"

	"go.yaml.in/yaml/v4"

	"github.com/pipelinetools/concoursemerge/pipeline"
)

// UnmarshalYAML implements the step discriminator lookup: exactly one of
// get/put/task/do/in_parallel must be present in the mapping. Hook fields
// (on_success, ..., ensure) may accompany any of them.
func (s *wireStep) UnmarshalYAML(value *yaml.Node) error {
	var probe map[string]yaml.Node
	if err := value.Decode(&probe); err != nil {
		return fmt.Errorf("yamlcodec: decoding step: %w", err)
	}

	kinds := 0
	for _, key := range []string{"get", "put", "task", "do", "in_parallel"} {
		if has(probe, key) {
			kinds++
		}
	}
	if kinds > 1 {
		return fmt.Errorf("yamlcodec: step must have exactly one of get/put/task/do/in_parallel, found %d", kinds)
	}

	switch {
	case has(probe, "get"):
		var body struct {
			wireGetStep    `yaml:",inline"`
			wireHookFields `yaml:",inline"`
		}
		if err := value.Decode(&body); err != nil {
			return fmt.Errorf("yamlcodec: decoding get step: %w", err)
		}
		s.Get = &body.wireGetStep
		s.setHooks(body.wireHookFields)

	case has(probe, "put"):
		var body struct {
			wirePutStep    `yaml:",inline"`
			wireHookFields `yaml:",inline"`
		}
		if err := value.Decode(&body); err != nil {
			return fmt.Errorf("yamlcodec: decoding put step: %w", err)
		}
		s.Put = &body.wirePutStep
		s.setHooks(body.wireHookFields)

	case has(probe, "task"):
		var body struct {
			wireTaskStep   `yaml:",inline"`
			wireHookFields `yaml:",inline"`
		}
		if err := value.Decode(&body); err != nil {
			return fmt.Errorf("yamlcodec: decoding task step: %w", err)
		}
		s.Task = &body.wireTaskStep
		s.setHooks(body.wireHookFields)

	case has(probe, "do"):
		var body struct {
			Do             []wireStep `yaml:"do"`
			wireHookFields `yaml:",inline"`
		}
		if err := value.Decode(&body); err != nil {
			return fmt.Errorf("yamlcodec: decoding do step: %w", err)
		}
		s.Do = &wireDoStep{Steps: body.Do}
		s.setHooks(body.wireHookFields)

	case has(probe, "in_parallel"):
		var body struct {
			InParallel     yaml.Node `yaml:"in_parallel"`
			wireHookFields `yaml:",inline"`
		}
		if err := value.Decode(&body); err != nil {
			return fmt.Errorf("yamlcodec: decoding in_parallel step: %w", err)
		}
		ip, err := decodeInParallel(&body.InParallel)
		if err != nil {
			return err
		}
		s.InParallel = ip
		s.setHooks(body.wireHookFields)

	default:
		return fmt.Errorf("yamlcodec: step has no recognized kind (expected one of get/put/task/do/in_parallel)")
	}

	return nil
}

// decodeInParallel handles both in_parallel forms: a bare sequence (short
// form, no limit or fail_fast) and a mapping with steps/limit/fail_fast
// (long form). The domain model only ever sees the long form.
func decodeInParallel(node *yaml.Node) (*wireInParallelStep, error) {
	switch node.Kind {
	case yaml.SequenceNode:
		var steps []wireStep
		if err := node.Decode(&steps); err != nil {
			return nil, fmt.Errorf("yamlcodec: decoding in_parallel short form: %w", err)
		}
		return &wireInParallelStep{Steps: steps}, nil

	case yaml.MappingNode:
		var body wireInParallelBody
		if err := node.Decode(&body); err != nil {
			return nil, fmt.Errorf("yamlcodec: decoding in_parallel long form: %w", err)
		}
		return &wireInParallelStep{Steps: body.Steps, Limit: body.Limit, FailFast: body.FailFast}, nil

	default:
		return nil, fmt.Errorf("yamlcodec: in_parallel must be a sequence or a mapping, got %v", node.Kind)
	}
}

func has(m map[string]yaml.Node, key string) bool {
	_, ok := m[key]
	return ok
}

func pipelineFromWire(w wirePipeline) pipeline.Pipeline {
	p := pipeline.Pipeline{
		ResourceTypes: make([]pipeline.ResourceType, len(w.ResourceTypes)),
		Resources:     make([]pipeline.Resource, len(w.Resources)),
		Jobs:          make([]pipeline.Job, len(w.Jobs)),
	}
	for i, rt := range w.ResourceTypes {
		p.ResourceTypes[i] = resourceTypeFromWire(rt)
	}
	for i, r := range w.Resources {
		p.Resources[i] = resourceFromWire(r)
	}
	for i, j := range w.Jobs {
		p.Jobs[i] = jobFromWire(j)
	}
	return p
}

func resourceTypeFromWire(w wireResourceType) pipeline.ResourceType {
	return pipeline.ResourceType{
		Name:                 w.Name,
		Type:                 w.Type,
		Source:               w.Source,
		Privileged:           w.Privileged,
		Params:               w.Params,
		CheckEvery:           w.CheckEvery,
		Tags:                 w.Tags,
		Defaults:             w.Defaults,
		UniqueVersionHistory: w.UniqueVersionHistory,
	}
}

func resourceFromWire(w wireResource) pipeline.Resource {
	return pipeline.Resource{
		Name:                 w.Name,
		Type:                 w.Type,
		Source:               w.Source,
		OldName:              w.OldName,
		Icon:                 w.Icon,
		Version:              w.Version,
		CheckEvery:           w.CheckEvery,
		CheckTimeout:         w.CheckTimeout,
		ExposeBuildCreatedBy: w.ExposeBuildCreatedBy,
		Tags:                 w.Tags,
		Public:               w.Public,
		WebhookToken:         w.WebhookToken,
	}
}

func jobFromWire(w wireJob) pipeline.Job {
	plan := make([]pipeline.Step, len(w.Plan))
	for i, s := range w.Plan {
		plan[i] = stepFromWire(s)
	}

	var retention *pipeline.LogRetentionPolicy
	if w.BuildLogRetention != nil {
		retention = &pipeline.LogRetentionPolicy{
			Days:                   w.BuildLogRetention.Days,
			Builds:                 w.BuildLogRetention.Builds,
			MinimumSucceededBuilds: w.BuildLogRetention.MinimumSucceededBuilds,
		}
	}

	return pipeline.Job{
		Name:                 w.Name,
		Plan:                 plan,
		OldName:              w.OldName,
		Serial:               w.Serial,
		SerialGroups:         w.SerialGroups,
		MaxInFlight:          w.MaxInFlight,
		BuildLogRetention:    retention,
		Public:               w.Public,
		DisableManualTrigger: w.DisableManualTrigger,
		Interruptible:        w.Interruptible,
		OnSuccess:            stepPtrFromWire(w.OnSuccess),
		OnFailure:            stepPtrFromWire(w.OnFailure),
		OnError:              stepPtrFromWire(w.OnError),
		OnAbort:              stepPtrFromWire(w.OnAbort),
		Ensure:               stepPtrFromWire(w.Ensure),
	}
}

func stepPtrFromWire(w *wireStep) *pipeline.Step {
	if w == nil {
		return nil
	}
	s := stepFromWire(*w)
	return &s
}

func stepFromWire(w wireStep) pipeline.Step {
	var s pipeline.Step

	switch {
	case w.Get != nil:
		version := w.Get.Version
		if version == "" {
			version = "latest"
		}
		s = pipeline.NewGetStep(pipeline.GetStep{
			Get:      w.Get.Get,
			Resource: w.Get.Resource,
			Passed:   w.Get.Passed,
			Params:   w.Get.Params,
			Trigger:  w.Get.Trigger,
			Version:  version,
		})

	case w.Put != nil:
		inputs := w.Put.Inputs
		if inputs == "" {
			inputs = "all"
		}
		s = pipeline.NewPutStep(pipeline.PutStep{
			Put:       w.Put.Put,
			Resource:  w.Put.Resource,
			Inputs:    inputs,
			Params:    w.Put.Params,
			GetParams: w.Put.GetParams,
		})

	case w.Task != nil:
		s = pipeline.NewTaskStep(taskStepFromWire(*w.Task))

	case w.Do != nil:
		steps := make([]pipeline.Step, len(w.Do.Steps))
		for i, child := range w.Do.Steps {
			steps[i] = stepFromWire(child)
		}
		s = pipeline.NewDoStep(pipeline.DoStep{Steps: steps})

	case w.InParallel != nil:
		steps := make([]pipeline.Step, len(w.InParallel.Steps))
		for i, child := range w.InParallel.Steps {
			steps[i] = stepFromWire(child)
		}
		s = pipeline.NewInParallelStep(pipeline.InParallelStep{
			Steps:    steps,
			Limit:    w.InParallel.Limit,
			FailFast: w.InParallel.FailFast,
		})
	}

	s.OnSuccess = stepPtrFromWire(w.OnSuccess)
	s.OnFailure = stepPtrFromWire(w.OnFailure)
	s.OnError = stepPtrFromWire(w.OnError)
	s.OnAbort = stepPtrFromWire(w.OnAbort)
	s.Ensure = stepPtrFromWire(w.Ensure)
	return s
}

func taskStepFromWire(w wireTaskStep) pipeline.TaskStep {
	var cfg *pipeline.TaskConfig
	if w.Config != nil {
		cfg = &pipeline.TaskConfig{
			Platform:      w.Config.Platform,
			Run:           pipeline.Command(w.Config.Run),
			ImageResource: w.Config.ImageResource,
			Inputs:        taskIOsFromWire(w.Config.Inputs),
			Outputs:       taskIOsFromWire(w.Config.Outputs),
			Caches:        w.Config.Caches,
			Params:        w.Config.Params,
			RootfsURI:     w.Config.RootfsURI,
		}
		if w.Config.ContainerLimits != nil {
			cl := pipeline.ContainerLimits(*w.Config.ContainerLimits)
			cfg.ContainerLimits = &cl
		}
	}

	t := pipeline.TaskStep{
		Task:          w.Task,
		Config:        cfg,
		File:          w.File,
		Image:         w.Image,
		Privileged:    w.Privileged,
		Vars:          w.Vars,
		Params:        w.Params,
		InputMapping:  w.InputMapping,
		OutputMapping: w.OutputMapping,
		Tags:          w.Tags,
		Attempts:      w.Attempts,
		Timeout:       w.Timeout,
	}
	if w.ContainerLimits != nil {
		cl := pipeline.ContainerLimits(*w.ContainerLimits)
		t.ContainerLimits = &cl
	}
	return t
}

func taskIOsFromWire(w []wireTaskIO) []pipeline.TaskIO {
	out := make([]pipeline.TaskIO, len(w))
	for i, io := range w {
		out[i] = pipeline.TaskIO(io)
	}
	return out
}
