// Package flow drives a single wizard session: field edits with cascading
// invalidation, validation on submit, and the submission state machine.
package flow

import (
	"context"
	"errors"

	"github.com/mark3labs/chainform/internal/form"
	"github.com/mark3labs/chainform/internal/logger"
	"github.com/mark3labs/chainform/internal/submit"
)

// Phase is the position of a session in the submission state machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseValidating
	PhaseSubmitting
	PhaseSucceeded
	PhaseFailed
)

// String returns the name of the phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseValidating:
		return "validating"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Submit control labels
const (
	LabelSubmit     = "Submit"
	LabelSubmitting = "Submitting..."
)

type (
	// Result is the outcome of the last submission attempt: Success or Failure
	Result interface {
		result()
	}

	// Success carries the identifier the server assigned
	Success struct {
		ID string
	}

	// Failure carries the message shown to the user
	Failure struct {
		Message string
	}
)

func (Success) result() {}
func (Failure) result() {}

var (
	// ErrNotValid is returned by Begin when validation fails. Errors() holds
	// the per-field messages.
	ErrNotValid = errors.New("form has validation errors")

	// ErrSubmitInFlight is returned by Begin while a submission is running
	ErrSubmitInFlight = errors.New("a submission is already in flight")

	// ErrNotSubmitting is returned by Finish when no submission was started
	ErrNotSubmitting = errors.New("no submission in flight")
)

// Session holds one wizard's state. It is not safe for concurrent use; all calls
// are expected to come from a single input-handling loop.
type Session struct {
	state  form.State
	errors form.Errors
	result Result
	phase  Phase
}

// NewSession creates a session with the default form state.
func NewSession() *Session {
	return &Session{
		state:  form.New(),
		errors: form.Errors{},
	}
}

// State returns the current form values.
func (s *Session) State() form.State { return s.state }

// Errors returns the published error map.
func (s *Session) Errors() form.Errors { return s.errors }

// Result returns the outcome of the last submission, or nil.
func (s *Session) Result() Result { return s.result }

// Phase returns the current state machine phase.
func (s *Session) Phase() Phase { return s.phase }

// Path resolves the active branch from the current state.
func (s *Session) Path() form.Path { return form.Resolve(s.state) }

// Visible reports which inputs should be shown.
func (s *Session) Visible() form.Visibility { return form.Visible(s.state) }

// Complete reports whether every required field for the active path is filled.
func (s *Session) Complete() bool { return form.IsComplete(s.state) }

// CanSubmit reports whether the submit control should be enabled.
func (s *Session) CanSubmit() bool {
	return s.phase != PhaseSubmitting && s.Complete()
}

// SubmitLabel returns the text for the submit control.
func (s *Session) SubmitLabel() string {
	if s.phase == PhaseSubmitting {
		return LabelSubmitting
	}
	return LabelSubmit
}

// Set updates one field. A pivot change clears its dependents, the error map and
// the last result; any other edit only clears that field's own error.
func (s *Session) Set(field form.Field, value any) error {
	next, cascaded, err := form.SetField(s.state, field, value)
	if err != nil {
		return err
	}
	s.state = next

	if cascaded {
		logger.Debug("Pivot %s changed, cleared %v", field, form.Dependents[field])
		s.errors = form.Errors{}
		s.result = nil
	} else {
		s.errors = s.errors.Without(field)
	}

	if s.phase == PhaseSucceeded || s.phase == PhaseFailed {
		s.phase = PhaseIdle
	}
	return nil
}

// Begin starts a submission attempt. On validation failure the session returns to
// idle with the error map published and ErrNotValid is returned. Otherwise the
// session moves to submitting and the payload to send is returned.
func (s *Session) Begin() (form.Payload, error) {
	if s.phase == PhaseSubmitting {
		return form.Payload{}, ErrSubmitInFlight
	}

	s.phase = PhaseValidating
	errs := form.Validate(s.state)
	if !errs.Valid() {
		logger.Debug("Validation failed: %v", errs.Keys())
		s.errors = errs
		s.phase = PhaseIdle
		return form.Payload{}, ErrNotValid
	}

	s.errors = form.Errors{}
	s.result = nil
	s.phase = PhaseSubmitting
	return form.BuildPayload(s.state), nil
}

// Finish records the transport's outcome for the submission started by Begin.
func (s *Session) Finish(res *submit.Response, err error) error {
	if s.phase != PhaseSubmitting {
		return ErrNotSubmitting
	}

	if err == nil && res == nil {
		err = submit.ErrMissingID
	}
	if err != nil {
		msg := submit.FailureMessage(err)
		logger.Warn("Submission failed: %s", msg)
		s.result = Failure{Message: msg}
		s.phase = PhaseFailed
		return nil
	}

	s.result = Success{ID: res.ID}
	s.errors = form.Errors{}
	s.phase = PhaseSucceeded
	return nil
}

// Submit runs a full attempt through t: validate, send, record the outcome. The
// returned error is ErrNotValid or ErrSubmitInFlight; transport failures end up
// in Result rather than being returned.
func (s *Session) Submit(ctx context.Context, t submit.Transport) error {
	payload, err := s.Begin()
	if err != nil {
		return err
	}
	res, err := t.Submit(ctx, payload)
	return s.Finish(res, err)
}
