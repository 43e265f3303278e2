package yamlcodec

// wirePipeline is the top-level document shape.
type wirePipeline struct {
	ResourceTypes []wireResourceType `yaml:"resource_types,omitempty"`
	Resources     []wireResource     `yaml:"resources,omitempty"`
	Jobs          []wireJob          `yaml:"jobs,omitempty"`
}

type wireResourceType struct {
	Name                 string         `yaml:"name"`
	Type                 string         `yaml:"type"`
	Source               map[string]any `yaml:"source,omitempty"`
	Privileged           bool           `yaml:"privileged,omitempty"`
	Params               map[string]any `yaml:"params,omitempty"`
	CheckEvery           string         `yaml:"check_every,omitempty"`
	Tags                 []string       `yaml:"tags,omitempty"`
	Defaults             map[string]any `yaml:"defaults,omitempty"`
	UniqueVersionHistory bool           `yaml:"unique_version_history,omitempty"`
}

type wireResource struct {
	Name                 string         `yaml:"name"`
	Type                 string         `yaml:"type"`
	Source               map[string]any `yaml:"source,omitempty"`
	OldName              *string        `yaml:"old_name,omitempty"`
	Icon                 *string        `yaml:"icon,omitempty"`
	Version              map[string]any `yaml:"version,omitempty"`
	CheckEvery           string         `yaml:"check_every,omitempty"`
	CheckTimeout         string         `yaml:"check_timeout,omitempty"`
	ExposeBuildCreatedBy bool           `yaml:"expose_build_created_by,omitempty"`
	Tags                 []string       `yaml:"tags,omitempty"`
	Public               bool           `yaml:"public,omitempty"`
	WebhookToken         *string        `yaml:"webhook_token,omitempty"`
}

type wireLogRetentionPolicy struct {
	Days                   int `yaml:"days,omitempty"`
	Builds                 int `yaml:"builds,omitempty"`
	MinimumSucceededBuilds int `yaml:"minimum_succeeded_builds,omitempty"`
}

type wireJob struct {
	Name                 string                  `yaml:"name"`
	Plan                 []wireStep              `yaml:"plan,omitempty"`
	OldName              *string                 `yaml:"old_name,omitempty"`
	Serial               bool                    `yaml:"serial,omitempty"`
	SerialGroups         []string                `yaml:"serial_groups,omitempty"`
	MaxInFlight          *int                    `yaml:"max_in_flight,omitempty"`
	BuildLogRetention    *wireLogRetentionPolicy `yaml:"build_log_retention,omitempty"`
	Public               bool                    `yaml:"public,omitempty"`
	DisableManualTrigger bool                    `yaml:"disable_manual_trigger,omitempty"`
	Interruptible        bool                    `yaml:"interruptible,omitempty"`
	OnSuccess            *wireStep               `yaml:"on_success,omitempty"`
	OnFailure            *wireStep               `yaml:"on_failure,omitempty"`
	OnError              *wireStep               `yaml:"on_error,omitempty"`
	OnAbort              *wireStep               `yaml:"on_abort,omitempty"`
	Ensure               *wireStep               `yaml:"ensure,omitempty"`
}

// wireHookFields is inlined into every step variant's encode/decode shape,
// since all five hooks are legal on every kind of step (see pipeline.Step).
type wireHookFields struct {
	OnSuccess *wireStep `yaml:"on_success,omitempty"`
	OnFailure *wireStep `yaml:"on_failure,omitempty"`
	OnError   *wireStep `yaml:"on_error,omitempty"`
	OnAbort   *wireStep `yaml:"on_abort,omitempty"`
	Ensure    *wireStep `yaml:"ensure,omitempty"`
}

type wireGetStep struct {
	Get      string   `yaml:"get"`
	Resource string   `yaml:"resource,omitempty"`
	Passed   []string `yaml:"passed,omitempty"`
	Params   any      `yaml:"params,omitempty"`
	Trigger  bool     `yaml:"trigger,omitempty"`
	Version  string   `yaml:"version,omitempty"`
}

type wirePutStep struct {
	Put       string `yaml:"put"`
	Resource  string `yaml:"resource,omitempty"`
	Inputs    string `yaml:"inputs,omitempty"`
	Params    any    `yaml:"params,omitempty"`
	GetParams any    `yaml:"get_params,omitempty"`
}

type wireCommand struct {
	Path string   `yaml:"path"`
	Args []string `yaml:"args,omitempty"`
	Dir  string   `yaml:"dir,omitempty"`
	User string   `yaml:"user,omitempty"`
}

type wireTaskIO struct {
	Name     string `yaml:"name"`
	Path     string `yaml:"path,omitempty"`
	Optional bool   `yaml:"optional,omitempty"`
}

type wireContainerLimits struct {
	CPU    int `yaml:"cpu,omitempty"`
	Memory int `yaml:"memory,omitempty"`
}

type wireTaskConfig struct {
	Platform        string               `yaml:"platform,omitempty"`
	Run             wireCommand          `yaml:"run"`
	ImageResource   map[string]any       `yaml:"image_resource,omitempty"`
	Inputs          []wireTaskIO         `yaml:"inputs,omitempty"`
	Outputs         []wireTaskIO         `yaml:"outputs,omitempty"`
	Caches          []string             `yaml:"caches,omitempty"`
	Params          map[string]any       `yaml:"params,omitempty"`
	RootfsURI       string               `yaml:"rootfs_uri,omitempty"`
	ContainerLimits *wireContainerLimits `yaml:"container_limits,omitempty"`
}

type wireTaskStep struct {
	Task            string               `yaml:"task"`
	Config          *wireTaskConfig      `yaml:"config,omitempty"`
	File            string               `yaml:"file,omitempty"`
	Image           string               `yaml:"image,omitempty"`
	Privileged      bool                 `yaml:"privileged,omitempty"`
	Vars            map[string]any       `yaml:"vars,omitempty"`
	ContainerLimits *wireContainerLimits `yaml:"container_limits,omitempty"`
	Params          map[string]any       `yaml:"params,omitempty"`
	InputMapping    map[string]string    `yaml:"input_mapping,omitempty"`
	OutputMapping   map[string]string    `yaml:"output_mapping,omitempty"`
	Tags            []string             `yaml:"tags,omitempty"`
	Attempts        int                  `yaml:"attempts,omitempty"`
	Timeout         string               `yaml:"timeout,omitempty"`
}

type wireDoStep struct {
	Steps []wireStep
}

type wireInParallelStep struct {
	Steps    []wireStep
	Limit    *int
	FailFast bool
}

// wireInParallelBody is in_parallel's long-form mapping shape, used both to
// decode that form and to always encode it: the codec canonicalizes the
// short bare-sequence form to long form on ingest, so there is only ever one
// shape to emit.
type wireInParallelBody struct {
	Steps    []wireStep `yaml:"steps"`
	Limit    *int       `yaml:"limit,omitempty"`
	FailFast bool       `yaml:"fail_fast,omitempty"`
}

// wireStep is a tagged union mirroring pipeline.Step, decoded and encoded by
// hand in decode.go/encode.go since the discriminator lookup needed to tell
// the five variants apart has no direct struct-tag expression.
type wireStep struct {
	Get        *wireGetStep
	Put        *wirePutStep
	Task       *wireTaskStep
	Do         *wireDoStep
	InParallel *wireInParallelStep

	OnSuccess *wireStep
	OnFailure *wireStep
	OnError   *wireStep
	OnAbort   *wireStep
	Ensure    *wireStep
}

func (s *wireStep) setHooks(h wireHookFields) {
	s.OnSuccess = h.OnSuccess
	s.OnFailure = h.OnFailure
	s.OnError = h.OnError
	s.OnAbort = h.OnAbort
	s.Ensure = h.Ensure
}

func (s wireStep) hooks() wireHookFields {
	return wireHookFields{
		OnSuccess: s.OnSuccess,
		OnFailure: s.OnFailure,
		OnError:   s.OnError,
		OnAbort:   s.OnAbort,
		Ensure:    s.Ensure,
	}
}
