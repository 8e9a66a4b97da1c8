// deploy-status prints the deploy status of one model version.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kuberlab/deploy/pkg/apputil"
	"github.com/kuberlab/deploy/pkg/dealerclient"
	"github.com/kuberlab/deploy/pkg/deploy"
	"github.com/kuberlab/deploy/pkg/project"
	"github.com/kuberlab/deploy/pkg/utils"
)

const defaultTemplate = `{{ toYaml . }}`

type statusView struct {
	Workspace string          `json:"workspace"`
	Model     string          `json:"model"`
	Version   string          `json:"version"`
	Status    deploy.Envelope `json:"status"`
}

func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML or JSON configuration")
		workspace  = flag.String("workspace", "", "Workspace name, overrides configuration")
		model      = flag.String("model", "", "Model name")
		version    = flag.String("version", "", "Model version")
		wait       = flag.Bool("wait", false, "Wait until the model is deployed")
		timeout    = flag.Duration("timeout", 0, "Wait timeout, overrides configuration")
		tpl        = flag.String("template", defaultTemplate, "Output template")
		fixtures   = flag.Bool("fixtures", false, "Print sample projects and exit")
	)
	flag.Parse()

	conf, err := utils.LoadConfiguration(*configPath)
	if err != nil {
		logrus.Fatal(err)
	}
	utils.SetupLogging(conf.LogLevel)
	logrus.Debugf("Configuration:\n%v", conf)

	if *fixtures {
		render(*tpl, project.Fixtures())
		return
	}

	if *workspace != "" {
		conf.Workspace = *workspace
	}
	if conf.DealerAPI == "" || conf.Workspace == "" || *model == "" || *version == "" {
		flag.Usage()
		logrus.Fatal("dealer api, workspace, model and version are required")
	}

	client, err := dealerclient.NewClient(conf.DealerAPI, &dealerclient.AuthOpts{
		Token:           conf.Token,
		Workspace:       conf.Workspace,
		WorkspaceSecret: conf.WorkspaceSecret,
		Insecure:        conf.Insecure,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	ctx := context.Background()
	var info deploy.StatusInfo
	if *wait {
		d := conf.Timeout()
		if *timeout > 0 {
			d = *timeout
		}
		waitCtx, cancel := context.WithTimeout(ctx, d)
		info, err = client.WaitDeployed(waitCtx, conf.Workspace, *model, *version, conf.PollInterval())
		cancel()
		if err != nil {
			logrus.Warnf("Stopped waiting after %v: %v", d.Truncate(time.Second), err)
		}
	} else {
		info = client.FetchDeployStatus(ctx, conf.Workspace, *model, *version)
	}

	render(*tpl, statusView{
		Workspace: conf.Workspace,
		Model:     *model,
		Version:   *version,
		Status:    deploy.Wrap(info),
	})

	if _, ok := info.(deploy.Deployed); !ok && *wait {
		os.Exit(1)
	}
}

func render(tpl string, v interface{}) {
	out, err := apputil.Render(tpl, v)
	if err != nil {
		logrus.Fatalf("Failed render output: %v", err)
	}
	fmt.Print(out)
}
