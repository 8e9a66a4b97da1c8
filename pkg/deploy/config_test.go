package deploy

import (
	"testing"

	"github.com/kuberlab/deploy/pkg/errors"
)

func TestDeployConfigValidate(t *testing.T) {
	var tests = []struct {
		raw   string
		valid bool
	}{
		{`{"type": "rest", "replicas": 1}`, true},
		{`{"type": "batch", "replicas": 3, "withLogs": true, "withServiceMonitoring": true}`, true},
		{`{"type": "rest", "replicas": 0}`, false},
		{`{"type": "rest", "replicas": -2}`, false},
		{`{"replicas": 1}`, false},
	}
	for _, tt := range tests {
		raw, valid := tt.raw, tt.valid
		c := DeployConfig{}
		if err := json.Unmarshal([]byte(raw), &c); err != nil {
			t.Fatalf("%v: %v", raw, err)
		}
		err := c.Validate()
		if valid && err != nil {
			t.Errorf("%v: unexpected error %v", raw, err)
		}
		if !valid && !errors.HasReason(err, errors.ReasonInvalidDeployConfig) {
			t.Errorf("%v: expected %v, got %v", raw, errors.ReasonInvalidDeployConfig, err)
		}
	}
}

func TestDeployConfigJSON(t *testing.T) {
	c := DeployConfig{Type: DeployTypeBatch, Replicas: 2, WithLogs: true}
	bts, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	Assert(`{"type":"batch","replicas":2,"withLogs":true,"withServiceMonitoring":false}`, string(bts), t)

	if err := json.Unmarshal([]byte(`{"type": "stream", "replicas": 1}`), &c); err == nil {
		t.Fatal("expected error for unsupported deploy type")
	}
}
