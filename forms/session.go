package forms

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/thebestschool/school_site/models"
	"github.com/thebestschool/school_site/relay"
	"github.com/thebestschool/school_site/validators"
)

var (
	ErrUnknownField       = errors.New("unknown field")
	ErrNotEditable        = errors.New("form is not editable")
	ErrSubmissionInFlight = errors.New("submission already in flight")
	ErrInvalidTransition  = errors.New("invalid state transition")
	ErrSubmissionFailed   = errors.New("submission failed")
	ErrClosed             = errors.New("form session closed")
)

// ValidationError carries the field errors that stopped a submission.
type ValidationError struct {
	Errors models.ValidationErrors
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for name := range e.Errors {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// Submitter delivers a payload to a relay endpoint.
type Submitter interface {
	Post(ctx context.Context, endpoint string, payload map[string]string) error
}

// Result is the terminal outcome of one submission attempt.
type Result struct {
	Snapshot models.Snapshot
	Err      error
}

// Session owns the field values, field errors and submission state of one
// form instance. It is safe for concurrent use; the lock is released while
// the relay request is in flight.
type Session struct {
	schema    Schema
	submitter Submitter
	logger    *zap.Logger

	mu     sync.Mutex
	data   models.FormData
	errs   models.ValidationErrors
	state  models.State
	banner string
	closed bool
}

// Open starts an idle session with every field blank.
func Open(schema Schema, submitter Submitter, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		schema:    schema,
		submitter: submitter,
		logger:    logger.With(zap.String("form", schema.Name)),
		data:      schema.Empty(),
		errs:      models.ValidationErrors{},
		state:     models.StateIdle,
	}
}

func (s *Session) Schema() Schema {
	return s.schema
}

// SetField overwrites one field and clears its validation error, if any.
func (s *Session) SetField(name, value string) error {
	if !s.schema.HasField(name) {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if !s.state.Editable() {
		return ErrNotEditable
	}
	s.data[name] = value
	delete(s.errs, name)
	return nil
}

// Validate reports the current failures without touching session state.
func (s *Session) Validate() models.ValidationErrors {
	s.mu.Lock()
	data := s.data.Clone()
	s.mu.Unlock()
	return validators.Validate(s.schema.Fields, data)
}

// SubmitAsync validates and, when the data is valid, moves the session to
// submitting and relays it on a separate goroutine. The returned channel
// receives exactly one Result once the relay answers. Validation failures
// and illegal states are reported synchronously and nothing is sent.
func (s *Session) SubmitAsync(ctx context.Context) (<-chan Result, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	switch s.state {
	case models.StateSubmitting:
		s.mu.Unlock()
		return nil, ErrSubmissionInFlight
	case models.StateSubmitted:
		s.mu.Unlock()
		return nil, ErrNotEditable
	}

	errs := validators.Validate(s.schema.Fields, s.data)
	if len(errs) > 0 {
		s.errs = errs
		s.mu.Unlock()
		return nil, &ValidationError{Errors: errs.Clone()}
	}

	s.state = models.StateSubmitting
	s.errs = models.ValidationErrors{}
	s.banner = ""
	payload := s.schema.Payload(s.data)
	s.mu.Unlock()

	// The attempt always runs to completion, even if the caller goes away.
	ctx = context.WithoutCancel(ctx)
	done := make(chan Result, 1)
	go func() {
		err := s.submitter.Post(ctx, s.schema.Endpoint, payload)
		done <- s.finish(err)
	}()
	return done, nil
}

// Submit is SubmitAsync followed by waiting for the outcome.
func (s *Session) Submit(ctx context.Context) (models.Snapshot, error) {
	done, err := s.SubmitAsync(ctx)
	if err != nil {
		return s.Snapshot(), err
	}
	res := <-done
	return res.Snapshot, res.Err
}

func (s *Session) finish(err error) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state = models.StateFailed
		s.banner = s.schema.FailureMessage
		fields := []zap.Field{zap.Error(err)}
		var statusErr *relay.StatusError
		if errors.As(err, &statusErr) {
			fields = append(fields, zap.Int("status", statusErr.Code))
		}
		s.logger.Warn("submission failed", fields...)
		return Result{Snapshot: s.snapshotLocked(), Err: fmt.Errorf("%w: %w", ErrSubmissionFailed, err)}
	}

	s.state = models.StateSubmitted
	if !s.closed {
		s.data = s.schema.Empty()
	}
	s.logger.Info("submission delivered")
	return Result{Snapshot: s.snapshotLocked()}
}

// Reset returns a submitted session to idle with blank fields.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.state != models.StateSubmitted {
		return fmt.Errorf("%w: reset from %s", ErrInvalidTransition, s.state)
	}
	s.state = models.StateIdle
	s.data = s.schema.Empty()
	s.errs = models.ValidationErrors{}
	s.banner = ""
	return nil
}

// Close discards the session's data. Later calls fail with ErrClosed; a
// request already in flight still completes.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.data = s.schema.Empty()
	s.errs = models.ValidationErrors{}
}

func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Session) State() models.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Snapshot() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() models.Snapshot {
	snap := models.Snapshot{
		Form:   s.schema.Name,
		State:  s.state,
		Data:   s.data.Clone(),
		Errors: s.errs.Clone(),
	}
	if s.state == models.StateFailed {
		snap.Error = s.banner
	}
	return snap
}
