package deploy

import (
	"bytes"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/kuberlab/deploy/pkg/errors"
)

type wireStatus struct {
	Status Status        `json:"status"`
	Data   *DeployedData `json:"data,omitempty"`
}

type rawStatus struct {
	Status *string             `json:"status"`
	Data   jsoniter.RawMessage `json:"data"`
}

func invalidStatus(format string, args ...interface{}) error {
	return errors.Invalid(errors.ReasonInvalidStatus, format, args...)
}

// MarshalStatusInfo encodes info in its wire form. The data field is only
// written for Deployed.
func MarshalStatusInfo(info StatusInfo) ([]byte, error) {
	info = Normalize(info)
	w := wireStatus{Status: info.Status()}
	if d, ok := Data(info); ok {
		w.Data = d
	}
	return json.Marshal(w)
}

// ParseStatusInfo strictly decodes a status document. Unknown tags, data on
// a tag other than deployed, and a deployed tag without valid data are
// errors.
func ParseStatusInfo(data []byte) (StatusInfo, error) {
	raw := rawStatus{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Smart(errors.ReasonInvalidStatus, err, http.StatusBadRequest)
	}
	if raw.Status == nil {
		return nil, invalidStatus("status is missing")
	}
	payload := bytes.TrimSpace(raw.Data)
	hasData := len(payload) > 0 && !bytes.Equal(payload, []byte("null"))

	status := Status(*raw.Status)
	switch status {
	case StatusUnknown, StatusNotDeployed, StatusDeploying:
		if hasData {
			return nil, invalidStatus("status %q must not carry data", status)
		}
		return StatusFromString(string(status)), nil
	case StatusDeployed:
		if !hasData {
			return nil, invalidStatus("status %q requires data", status)
		}
		d := DeployedData{}
		if err := json.Unmarshal(payload, &d); err != nil {
			return nil, errors.Smart(errors.ReasonInvalidStatus, err, http.StatusBadRequest)
		}
		if err := d.Validate(); err != nil {
			return nil, err
		}
		return Deployed{Data: d}, nil
	}
	return nil, invalidStatus("unrecognized status %q", status)
}

// MapStatusInfo decodes a status document coming from an upstream source.
// Anything that does not parse is reported as Unknown.
func MapStatusInfo(data []byte) StatusInfo {
	info, err := ParseStatusInfo(data)
	if err != nil {
		logrus.Debugf("Mapping deploy status to %v: %v", StatusUnknown, err)
		return Unknown{}
	}
	return info
}

// StatusFromString maps a bare upstream status tag. Unrecognized tags, and
// deployed since it has no data here, become Unknown.
func StatusFromString(s string) StatusInfo {
	switch Status(s) {
	case StatusNotDeployed:
		return NotDeployed{}
	case StatusDeploying:
		return Deploying{}
	case StatusUnknown:
		return Unknown{}
	}
	if s != "" {
		logrus.Debugf("Mapping deploy status %q to %v", s, StatusUnknown)
	}
	return Unknown{}
}

// StatusFromResult maps the outcome of a fetch. Any error, or no value,
// is Unknown.
func StatusFromResult(info StatusInfo, err error) StatusInfo {
	if err != nil {
		logrus.Debugf("Mapping failed deploy status fetch to %v: %v", StatusUnknown, err)
		return Unknown{}
	}
	return Normalize(info)
}
