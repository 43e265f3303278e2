// Package yamlcodec converts between Concourse pipeline YAML and the
// in-memory pipeline.Pipeline value model. It is the only package that knows
// field names on the wire: pipeline itself stays free of struct tags so the
// merge engine never has to reason about serialization concerns.
//
// Decoding a plan step requires a discriminator lookup (exactly one of
// get/put/task/do/in_parallel must be present) that go.yaml.in/yaml/v4
// cannot express through struct tags alone, so wireStep implements
// yaml.Unmarshaler and yaml.Marshaler by hand, using an alias-type decode
// pattern adapted to the Node-based YAML API.
package yamlcodec
