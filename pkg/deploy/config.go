package deploy

import (
	"github.com/kuberlab/deploy/pkg/errors"
)

// DeployType is the invocation style of a serving endpoint.
type DeployType string

const (
	DeployTypeRest  DeployType = "rest"
	DeployTypeBatch DeployType = "batch"
)

func (t DeployType) Valid() bool {
	switch t {
	case DeployTypeRest, DeployTypeBatch:
		return true
	}
	return false
}

func (t *DeployType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Invalid(errors.ReasonInvalidDeployConfig, "deploy type must be a string, got %s", data)
	}
	if !DeployType(s).Valid() {
		return errors.Invalid(errors.ReasonInvalidDeployConfig, "unsupported deploy type %q", s)
	}
	*t = DeployType(s)
	return nil
}

// DeployConfig holds the parameters of a deploy request.
type DeployConfig struct {
	Type                  DeployType `json:"type"`
	Replicas              int        `json:"replicas"`
	WithLogs              bool       `json:"withLogs"`
	WithServiceMonitoring bool       `json:"withServiceMonitoring"`
}

func (c DeployConfig) Validate() error {
	if !c.Type.Valid() {
		return errors.Invalid(errors.ReasonInvalidDeployConfig, "unsupported deploy type %q", c.Type)
	}
	if c.Replicas < 1 {
		return errors.Invalid(errors.ReasonInvalidDeployConfig, "replicas must be positive, got %v", c.Replicas)
	}
	return nil
}
