package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// AppointmentStatus is a closed enumeration. It travels as a string in the
// database and in JSON, but the core only ever compares enum values.
type AppointmentStatus uint8

const (
	StatusPending AppointmentStatus = iota + 1
	StatusConfirmed
	StatusCompleted
	StatusCancelled
)

var statusNames = map[AppointmentStatus]string{
	StatusPending:   "pending",
	StatusConfirmed: "confirmed",
	StatusCompleted: "completed",
	StatusCancelled: "cancelled",
}

func ParseAppointmentStatus(raw string) (AppointmentStatus, error) {
	for st, name := range statusNames {
		if name == raw {
			return st, nil
		}
	}
	return 0, fmt.Errorf("unknown appointment status %q", raw)
}

func (s AppointmentStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s AppointmentStatus) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// Active is every status that still holds the barber's time.
func (s AppointmentStatus) Active() bool {
	return s.Valid() && s != StatusCancelled
}

func (s AppointmentStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid appointment status %d", s)
	}
	return s.String(), nil
}

func (s *AppointmentStatus) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into AppointmentStatus", src)
	}

	st, err := ParseAppointmentStatus(raw)
	if err != nil {
		return err
	}
	*s = st
	return nil
}

func (s AppointmentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *AppointmentStatus) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	st, err := ParseAppointmentStatus(raw)
	if err != nil {
		return err
	}
	*s = st
	return nil
}
