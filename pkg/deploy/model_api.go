package deploy

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/kuberlab/deploy/pkg/errors"
)

// ModelType names the framework a served model was built with.
type ModelType string

const (
	ModelTypeScikit  ModelType = "scikit"
	ModelTypeXGBoost ModelType = "xgboost"
)

func (t ModelType) Valid() bool {
	switch t {
	case ModelTypeScikit, ModelTypeXGBoost:
		return true
	}
	return false
}

func (t *ModelType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Invalid(errors.ReasonInvalidModelAPI, "model type must be a string, got %s", data)
	}
	if !ModelType(s).Valid() {
		return errors.Invalid(errors.ReasonInvalidModelAPI, "unsupported model type %q", s)
	}
	*t = ModelType(s)
	return nil
}

// PythonVersion is the major version of the serving runtime.
type PythonVersion int

const (
	Python2 PythonVersion = 2
	Python3 PythonVersion = 3
)

func (v PythonVersion) Valid() bool {
	return v == Python2 || v == Python3
}

// UnmarshalJSON accepts only the bare integers 2 and 3.
func (v *PythonVersion) UnmarshalJSON(data []byte) error {
	raw := string(bytes.TrimSpace(data))
	n, err := strconv.Atoi(raw)
	if err != nil {
		return errors.Invalid(errors.ReasonInvalidModelAPI, "python version must be an integer, got %s", raw)
	}
	if !PythonVersion(n).Valid() {
		return errors.Invalid(errors.ReasonInvalidModelAPI, "unsupported python version %v", n)
	}
	*v = PythonVersion(n)
	return nil
}

type InputType string

const InputTypeList InputType = "list"

type InputField struct {
	Name string `json:"name"`
	// Type is not checked against a fixed set of data types.
	Type string `json:"type"`
}

type OutputField = InputField

type ModelAPIInput struct {
	Type   InputType    `json:"type"`
	Fields []InputField `json:"fields"`
}

// ModelAPI is the inference contract of a deployed model.
type ModelAPI struct {
	ModelType     ModelType     `json:"modelType"`
	PythonVersion PythonVersion `json:"pythonVersion"`
	Input         ModelAPIInput `json:"input"`
	Output        OutputField   `json:"output"`
}

func (m ModelAPI) Validate() error {
	if !m.ModelType.Valid() {
		return errors.Invalid(errors.ReasonInvalidModelAPI, "unsupported model type %q", m.ModelType)
	}
	if !m.PythonVersion.Valid() {
		return errors.Invalid(errors.ReasonInvalidModelAPI, "unsupported python version %v", int(m.PythonVersion))
	}
	if m.Input.Type != InputTypeList {
		return errors.Invalid(errors.ReasonInvalidModelAPI, "unsupported input type %q", m.Input.Type)
	}
	return nil
}

// ParseModelAPI decodes and validates a model api document.
func ParseModelAPI(data []byte) (*ModelAPI, error) {
	m := &ModelAPI{}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, errors.Smart(errors.ReasonInvalidModelAPI, err, http.StatusBadRequest)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
