package kubernetes

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	apps_v1 "k8s.io/api/apps/v1"
	api_v1 "k8s.io/api/core/v1"
	k8s_errors "k8s.io/apimachinery/pkg/api/errors"
	meta_v1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/kuberlab/deploy/pkg/deploy"
	"github.com/kuberlab/deploy/pkg/types"
)

// GetDeployStatus derives the deploy status of the serving Deployment
// namespace/name. A missing Deployment is notDeployed; a Deployment that
// can not be read or described, or is not a model serving, is unknown.
func GetDeployStatus(ctx context.Context, client kubernetes.Interface, namespace, name string) deploy.StatusInfo {
	d, err := client.AppsV1().Deployments(namespace).Get(ctx, name, meta_v1.GetOptions{})
	if k8s_errors.IsNotFound(err) {
		return deploy.NotDeployed{}
	}
	if err != nil {
		logrus.Warnf("Failed get deployment %v/%v: %v", namespace, name, err)
		return deploy.Unknown{}
	}
	if c := d.Labels[types.ComponentTypeLabel]; c != types.ServingModelComponent {
		logrus.Warnf("Deployment %v/%v is not a model serving: %v=%q", namespace, name, types.ComponentTypeLabel, c)
		return deploy.Unknown{}
	}
	if deploymentStopped(d) {
		return deploy.NotDeployed{}
	}
	if !deploymentReady(d) {
		return deploy.Deploying{}
	}
	info, err := deployedInfo(ctx, client, d)
	return deploy.StatusFromResult(info, err)
}

// A Deployment being deleted or scaled to zero serves nothing.
func deploymentStopped(d *apps_v1.Deployment) bool {
	return d.DeletionTimestamp != nil || desiredReplicas(d) == 0
}

func desiredReplicas(d *apps_v1.Deployment) int32 {
	if d.Spec.Replicas == nil {
		return 1
	}
	return *d.Spec.Replicas
}

func deploymentReady(d *apps_v1.Deployment) bool {
	if d.Status.ObservedGeneration < d.Generation {
		return false
	}
	desired := desiredReplicas(d)
	return d.Status.UpdatedReplicas >= desired &&
		d.Status.ReadyReplicas >= desired &&
		d.Status.AvailableReplicas >= desired
}

func deployedInfo(ctx context.Context, client kubernetes.Interface, d *apps_v1.Deployment) (deploy.StatusInfo, error) {
	ann := d.Annotations
	data := deploy.DeployedData{
		Uptime: types.NewTimestamp(d.CreationTimestamp.Time),
		Type:   deploy.DeployType(ann[types.DeployTypeAnnotation]),
		API:    ann[types.APIURLAnnotation],
	}
	if data.Type == "" {
		data.Type = deploy.DeployTypeRest
	}

	modelAPI, err := deploy.ParseModelAPI([]byte(ann[types.ModelAPIAnnotation]))
	if err != nil {
		return nil, fmt.Errorf("Failed parse model api of %v/%v: %v", d.Namespace, d.Name, err)
	}
	data.ModelAPI = *modelAPI

	if secretName := ann[types.TokenSecretAnnotation]; secretName != "" {
		secret, err := client.CoreV1().Secrets(d.Namespace).Get(ctx, secretName, meta_v1.GetOptions{})
		if err != nil {
			return nil, fmt.Errorf("Failed get token secret %v/%v: %v", d.Namespace, secretName, err)
		}
		data.Token = secretToken(secret)
	}

	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("Invalid deployment %v/%v: %v", d.Namespace, d.Name, err)
	}
	return deploy.Deployed{Data: data}, nil
}

func secretToken(s *api_v1.Secret) string {
	if v, ok := s.StringData[types.TokenSecretKey]; ok {
		return v
	}
	return string(s.Data[types.TokenSecretKey])
}
