package apputil

import (
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig"
	"github.com/ghodss/yaml"

	"github.com/kuberlab/deploy/pkg/deploy"
)

func ToYaml(v interface{}) string {
	data, err := yaml.Marshal(v)
	if err != nil {
		// Swallow errors inside of a template.
		return ""
	}
	return string(data)
}

// DeployedData returns the payload of a deployed status, or nil.
func DeployedData(info deploy.StatusInfo) *deploy.DeployedData {
	d, _ := deploy.Data(info)
	return d
}

// Uptime returns how long a deployed model has been running, or an empty
// string for any other status.
func Uptime(info deploy.StatusInfo) string {
	d, ok := deploy.Data(info)
	if !ok {
		return ""
	}
	return d.Uptime.Since(time.Now()).String()
}

func FuncMap() template.FuncMap {
	f := sprig.TxtFuncMap()
	delete(f, "env")
	delete(f, "expandenv")
	// Add some extra functionality
	extra := template.FuncMap{
		"toYaml":   ToYaml,
		"deployed": DeployedData,
		"uptime":   Uptime,
	}
	for k, v := range extra {
		f[k] = v
	}
	return f
}

// Render executes tpl against v with FuncMap available.
func Render(tpl string, v interface{}) (string, error) {
	t, err := template.New("gotpl").Funcs(FuncMap()).Parse(tpl)
	if err != nil {
		return "", err
	}
	var buf strings.Builder
	if err := t.Execute(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}
