package models

import "fmt"

// FormData maps a field name to its current raw value.
type FormData map[string]string

// Clone returns an independent copy of d.
func (d FormData) Clone() FormData {
	out := make(FormData, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// ValidationErrors maps a field name to the message of its failing rule.
// Only fields that currently fail are present.
type ValidationErrors map[string]string

func (e ValidationErrors) Clone() ValidationErrors {
	out := make(ValidationErrors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// State is the submission lifecycle of one form session.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSubmitted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSubmitted:
		return "submitted"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Editable reports whether user edits are accepted in s.
func (s State) Editable() bool {
	return s == StateIdle || s == StateFailed
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for _, st := range []State{StateIdle, StateSubmitting, StateSubmitted, StateFailed} {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", text)
}

// Snapshot is a point-in-time copy of a form session, safe to hand to
// renderers and encoders.
type Snapshot struct {
	Form   string           `json:"form"`
	State  State            `json:"state"`
	Data   FormData         `json:"data"`
	Errors ValidationErrors `json:"errors"`
	// Error is the banner message, set only in StateFailed.
	Error string `json:"error,omitempty"`
}
