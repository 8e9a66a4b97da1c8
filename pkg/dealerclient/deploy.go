package dealerclient

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kuberlab/deploy/pkg/deploy"
	"github.com/kuberlab/deploy/pkg/errors"
)

func deployURL(workspace, model, version string) string {
	return fmt.Sprintf(
		"/workspace/%v/mlmodel/%v/versions/%v/deploy",
		url.PathEscape(workspace), url.PathEscape(model), url.PathEscape(version),
	)
}

// GetDeployStatus returns the strictly parsed deploy status of a model version.
func (c *Client) GetDeployStatus(ctx context.Context, workspace, model, version string) (deploy.StatusInfo, error) {
	req, err := c.NewRequest(ctx, "GET", deployURL(workspace, model, version), nil)
	if err != nil {
		return nil, err
	}
	var env deploy.Envelope
	if _, err = c.Do(req, &env); err != nil {
		return nil, err
	}
	return env.Info(), nil
}

// FetchDeployStatus is GetDeployStatus for callers that need a status in any
// case: transport, API and parse failures are reported as unknown.
func (c *Client) FetchDeployStatus(ctx context.Context, workspace, model, version string) deploy.StatusInfo {
	info, err := c.GetDeployStatus(ctx, workspace, model, version)
	if err != nil {
		logrus.Warnf("Failed get deploy status of %v/%v:%v: %v", workspace, model, version, err)
	}
	return deploy.StatusFromResult(info, err)
}

func (c *Client) Deploy(ctx context.Context, workspace, model, version string, config deploy.DeployConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}
	req, err := c.NewRequest(ctx, "POST", deployURL(workspace, model, version), config)
	if err != nil {
		return err
	}
	_, err = c.Do(req, nil)
	return err
}

// Undeploy removes the deployment of a model version. A deployment that is
// already gone is not an error.
func (c *Client) Undeploy(ctx context.Context, workspace, model, version string) error {
	req, err := c.NewRequest(ctx, "DELETE", deployURL(workspace, model, version), nil)
	if err != nil {
		return err
	}
	_, err = c.Do(req, nil)
	if errors.IsNotFound(err) {
		logrus.Debugf("Deployment of %v/%v:%v is already removed", workspace, model, version)
		return nil
	}
	return err
}

func (c *Client) GetServiceStatistics(ctx context.Context, workspace, model, version string) (*deploy.ServiceStatistics, error) {
	u := deployURL(workspace, model, version) + "/statistics/service"

	req, err := c.NewRequest(ctx, "GET", u, nil)
	if err != nil {
		return nil, err
	}
	stats := &deploy.ServiceStatistics{}
	if _, err = c.Do(req, stats); err != nil {
		return nil, err
	}
	if err = stats.Validate(); err != nil {
		return nil, err
	}
	return stats, nil
}

func (c *Client) GetDataStatistics(ctx context.Context, workspace, model, version string) (deploy.DataStatistics, error) {
	u := deployURL(workspace, model, version) + "/statistics/data"

	req, err := c.NewRequest(ctx, "GET", u, nil)
	if err != nil {
		return nil, err
	}
	var stats = make(deploy.DataStatistics)
	if _, err = c.Do(req, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// WaitDeployed polls the deploy status every interval. It returns once the
// model is deployed, or is reported not deployed after a deploying phase
// was seen. On context end the last fetched status is returned with the
// context error. A non-positive interval is rejected.
func (c *Client) WaitDeployed(ctx context.Context, workspace, model, version string, interval time.Duration) (deploy.StatusInfo, error) {
	if interval <= 0 {
		return deploy.Unknown{}, errors.Invalid(errors.ReasonInvalidArgument, "poll interval must be positive, got %v", interval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var seenDeploying bool
	for {
		last := c.FetchDeployStatus(ctx, workspace, model, version)
		switch last.(type) {
		case deploy.Deployed:
			return last, nil
		case deploy.Deploying:
			seenDeploying = true
		case deploy.NotDeployed:
			if seenDeploying {
				return last, nil
			}
		}
		logrus.Debugf("Deploy status of %v/%v:%v is %v", workspace, model, version, last.Status())

		select {
		case <-ctx.Done():
			return last, ctx.Err()
		case <-ticker.C:
		}
	}
}
