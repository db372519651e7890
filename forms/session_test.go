package forms

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/thebestschool/school_site/models"
	"github.com/thebestschool/school_site/relay"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeSubmitter records payloads and answers with err.
type fakeSubmitter struct {
	mu       sync.Mutex
	err      error
	payloads []map[string]string
	release  chan struct{}
}

func (f *fakeSubmitter) Post(_ context.Context, _ string, payload map[string]string) error {
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, payload)
	return f.err
}

func (f *fakeSubmitter) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.payloads)
}

func validContact() models.FormData {
	return models.FormData{
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"phone":   "",
		"subject": "Admissions",
		"message": "Hello",
	}
}

func validEnrollment() models.FormData {
	return models.FormData{
		"studentName": "Emma",
		"parentName":  "Sarah Johnson",
		"email":       "sarah@example.com",
		"phone":       "+48 22 123 4567",
		"studentAge":  "10",
		"program":     "Elementary Program",
		"message":     "",
	}
}

func fill(t *testing.T, s *Session, data models.FormData) {
	t.Helper()
	for k, v := range data {
		require.NoError(t, s.SetField(k, v))
	}
}

func TestOpenStartsIdleAndBlank(t *testing.T) {
	s := Open(Contact("http://relay"), &fakeSubmitter{}, nil)

	snap := s.Snapshot()
	assert.Equal(t, models.StateIdle, snap.State)
	assert.Equal(t, models.FormData{"name": "", "email": "", "phone": "", "subject": "", "message": ""}, snap.Data)
	assert.Empty(t, snap.Errors)
	assert.Empty(t, snap.Error)
}

func TestSetFieldUnknownField(t *testing.T) {
	s := Open(Contact(""), &fakeSubmitter{}, nil)
	assert.ErrorIs(t, s.SetField("studentAge", "7"), ErrUnknownField)
}

func TestSetFieldClearsOnlyThatFieldsError(t *testing.T) {
	s := Open(Contact(""), &fakeSubmitter{}, nil)

	_, err := s.Submit(context.Background())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, s.Snapshot().Errors, "name")
	require.Contains(t, s.Snapshot().Errors, "email")

	require.NoError(t, s.SetField("name", "J"))

	errs := s.Snapshot().Errors
	assert.NotContains(t, errs, "name")
	assert.Equal(t, "Email is required", errs["email"])
	assert.Equal(t, "Subject is required", errs["subject"])
	assert.Equal(t, "Message is required", errs["message"])
}

func TestSubmitInvalidKeepsStateAndSendsNothing(t *testing.T) {
	sub := &fakeSubmitter{}
	s := Open(Contact("http://relay"), sub, nil)
	require.NoError(t, s.SetField("email", "not-an-email"))

	snap, err := s.Submit(context.Background())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Please enter a valid email address", verr.Errors["email"])
	assert.Equal(t, models.StateIdle, snap.State)
	assert.Equal(t, 0, sub.calls())
}

func TestSubmitSuccessClearsData(t *testing.T) {
	sub := &fakeSubmitter{}
	s := Open(Contact("http://relay"), sub, nil)
	fill(t, s, validContact())

	snap, err := s.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.StateSubmitted, snap.State)
	assert.Equal(t, Contact("").Empty(), snap.Data)

	require.Equal(t, 1, sub.calls())
	assert.Equal(t, "jane@example.com", sub.payloads[0]["_replyto"])
	assert.Equal(t, "Contact Form: Admissions", sub.payloads[0]["_subject"])
}

func TestSubmitFailureKeepsData(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("connection refused")}
	s := Open(Contact("http://relay"), sub, nil)
	fill(t, s, validContact())

	snap, err := s.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmissionFailed)
	assert.Equal(t, models.StateFailed, snap.State)
	assert.Equal(t, "Something went wrong. Please try again or contact us directly.", snap.Error)
	assert.Equal(t, validContact(), snap.Data)
}

func TestRetryFromFailed(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("boom")}
	s := Open(Enrollment("http://relay"), sub, nil)
	fill(t, s, validEnrollment())

	_, err := s.Submit(context.Background())
	require.ErrorIs(t, err, ErrSubmissionFailed)

	// failed accepts edits
	require.NoError(t, s.SetField("message", "second try"))

	sub.mu.Lock()
	sub.err = nil
	sub.mu.Unlock()

	snap, err := s.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.StateSubmitted, snap.State)
	assert.Empty(t, snap.Error)
	assert.Equal(t, 2, sub.calls())
	assert.Equal(t, "second try", sub.payloads[1]["message"])
}

func TestFailedWithInvalidDataStaysFailed(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("boom")}
	s := Open(Contact("http://relay"), sub, nil)
	fill(t, s, validContact())
	_, _ = s.Submit(context.Background())

	require.NoError(t, s.SetField("email", ""))
	snap, err := s.Submit(context.Background())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, models.StateFailed, snap.State)
	assert.Equal(t, 1, sub.calls())
}

func TestSubmittingRejectsEditsAndSecondSubmit(t *testing.T) {
	sub := &fakeSubmitter{release: make(chan struct{})}
	s := Open(Contact("http://relay"), sub, nil)
	fill(t, s, validContact())

	done, err := s.SubmitAsync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.StateSubmitting, s.State())

	assert.ErrorIs(t, s.SetField("name", "x"), ErrNotEditable)
	_, err = s.SubmitAsync(context.Background())
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	close(sub.release)
	res := <-done
	require.NoError(t, res.Err)
	assert.Equal(t, models.StateSubmitted, res.Snapshot.State)
	assert.Equal(t, 1, sub.calls())
}

func TestSubmitSurvivesCallerCancellation(t *testing.T) {
	sub := &fakeSubmitter{release: make(chan struct{})}
	s := Open(Contact("http://relay"), sub, nil)
	fill(t, s, validContact())

	ctx, cancel := context.WithCancel(context.Background())
	done, err := s.SubmitAsync(ctx)
	require.NoError(t, err)
	cancel()
	close(sub.release)

	res := <-done
	assert.NoError(t, res.Err)
	assert.Equal(t, models.StateSubmitted, res.Snapshot.State)
}

func TestSubmittedRejectsEditsUntilReset(t *testing.T) {
	s := Open(Contact("http://relay"), &fakeSubmitter{}, nil)
	fill(t, s, validContact())
	_, err := s.Submit(context.Background())
	require.NoError(t, err)

	assert.ErrorIs(t, s.SetField("name", "x"), ErrNotEditable)
	_, err = s.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNotEditable)

	require.NoError(t, s.Reset())
	snap := s.Snapshot()
	assert.Equal(t, models.StateIdle, snap.State)
	assert.Equal(t, Contact("").Empty(), snap.Data)
	assert.NoError(t, s.SetField("name", "x"))
}

func TestResetOnlyFromSubmitted(t *testing.T) {
	s := Open(Contact(""), &fakeSubmitter{}, nil)
	assert.ErrorIs(t, s.Reset(), ErrInvalidTransition)
}

func TestClosedSessionRejectsEverything(t *testing.T) {
	s := Open(Contact("http://relay"), &fakeSubmitter{}, nil)
	require.NoError(t, s.SetField("name", "Jane"))
	s.Close()

	assert.True(t, s.Closed())
	assert.Equal(t, "", s.Snapshot().Data["name"])
	assert.ErrorIs(t, s.SetField("name", "x"), ErrClosed)
	_, err := s.Submit(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, s.Reset(), ErrClosed)
}

func TestValidateIsPure(t *testing.T) {
	s := Open(Contact(""), &fakeSubmitter{}, nil)

	errs := s.Validate()
	assert.Len(t, errs, 4)
	assert.Empty(t, s.Snapshot().Errors)
}

func TestSessionsAreIndependent(t *testing.T) {
	sub := &fakeSubmitter{}
	contact := Open(Contact("http://relay"), sub, nil)
	enrollment := Open(Enrollment("http://relay"), sub, nil)

	fill(t, contact, validContact())
	_, err := contact.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.StateIdle, enrollment.State())
	assert.NoError(t, enrollment.SetField("studentName", "Emma"))
}

func TestSubmitAgainstRelayServer(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantState models.State
	}{
		{"ok", http.StatusOK, models.StateSubmitted},
		{"created", http.StatusCreated, models.StateSubmitted},
		{"rejected", http.StatusUnprocessableEntity, models.StateFailed},
		{"outage", http.StatusInternalServerError, models.StateFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got map[string]string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			client := relay.NewClient(srv.Client())
			s := Open(Enrollment(srv.URL), client, nil)
			fill(t, s, validEnrollment())

			snap, _ := s.Submit(context.Background())
			assert.Equal(t, tt.wantState, snap.State)
			assert.Equal(t, "New Enrollment - Emma", got["_subject"])
			assert.Equal(t, "sarah@example.com", got["_replyto"])
			assert.Equal(t, "10", got["studentAge"])
			if tt.wantState == models.StateFailed {
				assert.Equal(t, "Error submitting form. Please try again.", snap.Error)
				assert.Equal(t, validEnrollment(), snap.Data)
			} else {
				assert.Equal(t, Enrollment("").Empty(), snap.Data)
			}
		})
	}
}

func TestSubmitWithoutEndpointFails(t *testing.T) {
	s := Open(Enrollment(""), relay.NewClient(nil), nil)
	fill(t, s, validEnrollment())

	snap, err := s.Submit(context.Background())
	assert.ErrorIs(t, err, relay.ErrNoEndpoint)
	assert.Equal(t, models.StateFailed, snap.State)
}

func TestSubmitNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := relay.NewClient(&http.Client{Timeout: 2 * time.Second})
	s := Open(Contact(url), client, nil)
	fill(t, s, validContact())

	snap, err := s.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmissionFailed)
	assert.Equal(t, models.StateFailed, snap.State)
	assert.Equal(t, validContact(), snap.Data)
}
