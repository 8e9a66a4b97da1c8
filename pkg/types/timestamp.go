package types

import (
	"bytes"
	jsonStd "encoding/json"
	"reflect"
	"strconv"
	"time"
)

const Format = "2006-01-02T15:04:05Z"

// Timestamp is a UTC point in time with second precision.
// On the wire it is a unix-seconds integer, or null when not set.
type Timestamp struct {
	Time  time.Time
	Valid bool
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Second), Valid: true}
}

func Unix(sec int64) Timestamp {
	return NewTimestamp(time.Unix(sec, 0))
}

func (t Timestamp) Unix() int64 {
	if !t.Valid {
		return 0
	}
	return t.Time.Unix()
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(t.Time.Unix(), 10)), nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch v.(type) {
	case jsonStd.Number, float64:
		// Reparse the raw literal so fractional or exponent forms are rejected.
		sec, err := strconv.ParseInt(string(bytes.TrimSpace(data)), 10, 64)
		if err == nil {
			*t = Unix(sec)
			return nil
		}
	case nil:
		*t = Timestamp{Valid: false}
		return nil
	}
	return &jsonStd.UnmarshalTypeError{Value: string(data), Type: reflect.TypeOf(t).Elem()}
}

func (t Timestamp) String() string {
	if !t.Valid {
		return "<nil>"
	}
	return t.Time.UTC().Format(Format)
}

// Since returns the time elapsed from t, or zero when t is not set.
func (t Timestamp) Since(now time.Time) time.Duration {
	if !t.Valid {
		return 0
	}
	return now.Sub(t.Time).Truncate(time.Second)
}

// Before and After are false when either timestamp is not set.
func (t Timestamp) Before(u Timestamp) bool {
	return t.Valid && u.Valid && t.Time.Before(u.Time)
}

func (t Timestamp) After(u Timestamp) bool {
	return t.Valid && u.Valid && t.Time.After(u.Time)
}

func (t Timestamp) Equal(u Timestamp) bool {
	return t.Valid == u.Valid && t.Time.Equal(u.Time)
}
