package form

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/stackmint/chatwidget/internal/content"
)

// Key under which a transport failure is surfaced as a banner below the form.
const SubmitErrorKey = "submit"

const submitFailedText = "Failed to submit form. Please try again."

var (
	// ErrValidation means one or more fields failed; see Session.Errors.
	ErrValidation = errors.New("form: validation failed")
	// ErrInFlight means a submit is already running for this form.
	ErrInFlight = errors.New("form: submit already in flight")
	// ErrSubmitted means the form already completed successfully.
	ErrSubmitted = errors.New("form: already submitted")
)

// Session holds the mutable state of one rendered form: entered values,
// the current error mapping and the submit lifecycle flags. Its
// single-flight guard is independent of the conversation's send guard.
type Session struct {
	http *http.Client

	mu         sync.Mutex
	form       content.FormData
	values     map[string]any
	errors     map[string]string
	submitting bool
	submitted  bool
}

func NewSession(form content.FormData) *Session {
	return &Session{
		http:   &http.Client{Timeout: 30 * time.Second},
		form:   form,
		values: make(map[string]any),
		errors: make(map[string]string),
	}
}

// SetValue records user input for one field and clears that field's error,
// so a corrected field stops showing stale feedback immediately.
func (s *Session) SetValue(fieldID string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[fieldID] = value
	delete(s.errors, fieldID)
}

// Errors returns a snapshot of the current field-id → message mapping.
func (s *Session) Errors() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.errors))
	for k, v := range s.errors {
		out[k] = v
	}
	return out
}

func (s *Session) Submitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitted
}

// Submit re-validates every field, and on success posts the raw value
// mapping to the form's submit URL. A form without a submit URL succeeds
// locally; both outcomes end in the submitted state. Any field error blocks
// the whole submission — there is no partial submit.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.submitted {
		s.mu.Unlock()
		return ErrSubmitted
	}
	if s.submitting {
		s.mu.Unlock()
		return ErrInFlight
	}

	errs := Validate(s.form.Fields, s.values)
	if len(errs) > 0 {
		s.errors = errs
		s.mu.Unlock()
		return ErrValidation
	}

	s.submitting = true
	submitURL := s.form.SubmitURL
	payload := make(map[string]any, len(s.values))
	for k, v := range s.values {
		payload[k] = v
	}
	s.mu.Unlock()

	var postErr error
	if submitURL != "" {
		postErr = s.post(ctx, submitURL, payload)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
	if postErr != nil {
		s.errors[SubmitErrorKey] = submitFailedText
		return postErr
	}
	s.submitted = true
	return nil
}

func (s *Session) post(ctx context.Context, url string, values map[string]any) error {
	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshaling form values: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("form submit request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("form submit status %d", resp.StatusCode)
	}
	return nil
}
