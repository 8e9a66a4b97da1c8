package deploy

import (
	"github.com/kuberlab/deploy/pkg/types"
)

// Status is the lifecycle tag of a deployment.
type Status string

const (
	StatusUnknown     Status = "unknown"
	StatusNotDeployed Status = "notDeployed"
	StatusDeploying   Status = "deploying"
	StatusDeployed    Status = "deployed"
)

// StatusInfo is the current lifecycle phase of one deployment. The set of
// implementations is closed: Unknown, NotDeployed, Deploying and Deployed.
// Only Deployed carries data.
type StatusInfo interface {
	Status() Status
	// Accept calls the visitor method matching the concrete variant.
	Accept(v StatusVisitor)
	isStatusInfo()
}

// StatusVisitor must handle every variant, so a new variant fails to
// compile until each consumer handles it.
type StatusVisitor interface {
	VisitUnknown(Unknown)
	VisitNotDeployed(NotDeployed)
	VisitDeploying(Deploying)
	VisitDeployed(Deployed)
}

// Unknown means the status could not be determined. It is distinct from
// NotDeployed, which is a confirmed absence.
type Unknown struct{}

type NotDeployed struct{}

type Deploying struct{}

type Deployed struct {
	Data DeployedData
}

type DeployedData struct {
	Uptime   types.Timestamp `json:"uptime"`
	Type     DeployType      `json:"type"`
	Token    string          `json:"token"`
	API      string          `json:"api"`
	ModelAPI ModelAPI        `json:"modelApi"`
}

func (Unknown) Status() Status     { return StatusUnknown }
func (NotDeployed) Status() Status { return StatusNotDeployed }
func (Deploying) Status() Status   { return StatusDeploying }
func (Deployed) Status() Status    { return StatusDeployed }

func (s Unknown) Accept(v StatusVisitor)     { v.VisitUnknown(s) }
func (s NotDeployed) Accept(v StatusVisitor) { v.VisitNotDeployed(s) }
func (s Deploying) Accept(v StatusVisitor)   { v.VisitDeploying(s) }
func (s Deployed) Accept(v StatusVisitor)    { v.VisitDeployed(s) }

func (Unknown) isStatusInfo()     {}
func (NotDeployed) isStatusInfo() {}
func (Deploying) isStatusInfo()   {}
func (Deployed) isStatusInfo()    {}

func (s Unknown) MarshalJSON() ([]byte, error)     { return MarshalStatusInfo(s) }
func (s NotDeployed) MarshalJSON() ([]byte, error) { return MarshalStatusInfo(s) }
func (s Deploying) MarshalJSON() ([]byte, error)   { return MarshalStatusInfo(s) }
func (s Deployed) MarshalJSON() ([]byte, error)    { return MarshalStatusInfo(s) }

func (d DeployedData) Validate() error {
	if !d.Uptime.Valid {
		return invalidStatus("deployed status requires uptime")
	}
	if !d.Type.Valid() {
		return invalidStatus("unsupported deploy type %q", d.Type)
	}
	return d.ModelAPI.Validate()
}

// Normalize returns the value variant held by info. Pointer variants are
// dereferenced; nil, including a typed nil pointer, is Unknown.
func Normalize(info StatusInfo) StatusInfo {
	switch v := info.(type) {
	case Unknown, NotDeployed, Deploying, Deployed:
		return v
	case *NotDeployed:
		if v != nil {
			return *v
		}
	case *Deploying:
		if v != nil {
			return *v
		}
	case *Deployed:
		if v != nil {
			return *v
		}
	}
	return Unknown{}
}

// Data returns the deployment payload when info is Deployed.
func Data(info StatusInfo) (*DeployedData, bool) {
	d, ok := Normalize(info).(Deployed)
	if !ok {
		return nil, false
	}
	data := d.Data
	return &data, true
}

// Envelope carries a StatusInfo through JSON documents, e.g. as a struct
// field or a decode target. The zero Envelope holds Unknown.
type Envelope struct {
	info StatusInfo
}

func Wrap(info StatusInfo) Envelope {
	return Envelope{info: Normalize(info)}
}

func (e Envelope) Info() StatusInfo {
	return Normalize(e.info)
}

func (e Envelope) MarshalJSON() ([]byte, error) {
	return MarshalStatusInfo(e.Info())
}

func (e *Envelope) UnmarshalJSON(data []byte) error {
	info, err := ParseStatusInfo(data)
	if err != nil {
		return err
	}
	e.info = info
	return nil
}
