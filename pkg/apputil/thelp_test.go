package apputil

import (
	"strings"
	"testing"
	"time"

	"github.com/kuberlab/deploy/pkg/deploy"
	"github.com/kuberlab/deploy/pkg/types"
)

func TestRender(t *testing.T) {
	info := deploy.Deployed{Data: deploy.DeployedData{
		Uptime: types.NewTimestamp(time.Now()),
		Type:   deploy.DeployTypeRest,
		API:    "https://svc.example/api",
	}}
	out, err := Render(`{{ .Status }} {{ (deployed .).API | upper }} {{ uptime . }}`, info)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "deployed HTTPS://SVC.EXAMPLE/API ") {
		t.Errorf("unexpected output %q", out)
	}

	out, err = Render(`{{ .Status }}{{ if not (deployed .) }} -{{ uptime . }}-{{ end }}`, deploy.Deploying{})
	if err != nil {
		t.Fatal(err)
	}
	if out != "deploying --" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestRenderNoEnv(t *testing.T) {
	if _, err := Render(`{{ env "HOME" }}`, nil); err == nil {
		t.Fatal("env must not be available in templates")
	}
}

func TestToYaml(t *testing.T) {
	out := ToYaml(deploy.DeployConfig{Type: deploy.DeployTypeBatch, Replicas: 2})
	if !strings.Contains(out, "replicas: 2") || !strings.Contains(out, "type: batch") {
		t.Errorf("unexpected yaml %q", out)
	}
}
