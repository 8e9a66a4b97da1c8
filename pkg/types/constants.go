package types

const (
	ComponentTypeLabel = "kuberlab.io/component-type"

	DeployTypeAnnotation  = "kuberlab.io/deploy-type"
	APIURLAnnotation      = "kuberlab.io/api-url"
	ModelAPIAnnotation    = "kuberlab.io/model-api"
	TokenSecretAnnotation = "kuberlab.io/token-secret"

	TokenSecretKey        = "token"
	ServingModelComponent = "serving-model"
)
