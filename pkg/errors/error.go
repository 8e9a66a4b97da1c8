package errors

import (
	"fmt"
	"net/http"

	"github.com/jinzhu/gorm"
)

const (
	MessageUnknownError = "unknown error"
)

const (
	ReasonInvalidStatus       = errorReason("InvalidStatus")
	ReasonInvalidModelAPI     = errorReason("InvalidModelApi")
	ReasonInvalidDeployConfig = errorReason("InvalidDeployConfig")
	ReasonInvalidStatistics   = errorReason("InvalidStatistics")
	ReasonNotFound            = errorReason("NotFound")
	ReasonInvalidArgument     = errorReason("InvalidArgument")
)

type errorReason string

type Error struct {
	Status     int         `json:"status"`
	Message    string      `json:"message,omitempty"`
	Reason     errorReason `json:"reason,omitempty"`
	dbNotFound bool
}

func (e *Error) Error() string {
	if len(e.Message) == 0 {
		return MessageUnknownError
	}
	return e.Message
}

func (e *Error) HttpStatus() int {
	if e.Status <= 0 {
		return http.StatusInternalServerError
	}
	return e.Status
}

func New(text string) error {
	return NewStatus(http.StatusInternalServerError, text)
}

func NewStatus(status int, text string) error {
	return Smart(status, text)
}

func NewStatusReason(status int, text, reason string) error {
	return Smart(status, text, Reason(reason))
}

// Invalid returns a 400 error carrying reason.
func Invalid(reason errorReason, format string, args ...interface{}) error {
	return Smart(http.StatusBadRequest, fmt.Sprintf(format, args...), reason)
}

func Reason(reason string) errorReason {
	return errorReason(reason)
}

// HasReason reports whether err is an *Error with the given reason.
func HasReason(err error, reason errorReason) bool {
	e, ok := err.(*Error)
	return ok && e.Reason == reason
}

// IsNotFound reports whether err maps to a 404.
func IsNotFound(err error) bool {
	if err == gorm.ErrRecordNotFound {
		return true
	}
	e, ok := err.(*Error)
	return ok && (e.dbNotFound || e.Status == http.StatusNotFound)
}

// Smart builds an *Error from any mix of *Error, error, reason, message and
// status arguments. The first argument of each kind wins, except that a
// not-found database error always forces 404.
func Smart(args ...interface{}) error {
	err := &Error{}
	var statusSet, messageSet, reasonSet, errSet bool
	for _, arg := range args {
		switch a := arg.(type) {
		case *Error:
			if errSet {
				continue
			}
			if a.dbNotFound {
				err.Status = http.StatusNotFound
				err.dbNotFound = true
				statusSet = true
			} else if !statusSet {
				err.Status = a.Status
			}
			if !messageSet {
				err.Message = a.Message
			}
			if !reasonSet {
				err.Reason = a.Reason
				reasonSet = true
			}
			errSet = true
		case error:
			if errSet {
				continue
			}
			if a == gorm.ErrRecordNotFound {
				err.Status = http.StatusNotFound
				err.dbNotFound = true
				if !reasonSet {
					err.Reason = ReasonNotFound
				}
				if !messageSet {
					err.Message = a.Error()
				}
			} else {
				if messageSet {
					continue
				}
				err.Message = a.Error()
				messageSet = true
			}
			errSet = true
		case errorReason:
			if reasonSet {
				continue
			}
			err.Reason = a
			reasonSet = true
		case string:
			if messageSet {
				continue
			}
			err.Message = a
			messageSet = true
		case int:
			if statusSet {
				continue
			}
			err.Status = a
			statusSet = true
		}
	}
	return err
}
