package waitlist

import (
	"context"
	"sync"
	"time"

	"turn2law_web/models"
)

// State is the lifecycle position of a Form
type State int

const (
	// StateEditing accepts edits and submit
	StateEditing State = iota
	// StateSubmitting has one request outstanding; submit is disabled
	StateSubmitting
	// StateSubmitted is terminal for the session; fields are cleared
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateSubmitting:
		return "submitting"
	case StateSubmitted:
		return "submitted"
	default:
		return "editing"
	}
}

// Snapshot is a consistent, read-only view of a Form for rendering
type Snapshot struct {
	State   State
	Values  models.WaitlistSubmission
	Errors  FieldErrors // only fields the user has touched
	Failure *SubmitError
}

// CanSubmit reports whether the submit control should be enabled
func (s Snapshot) CanSubmit() bool {
	return s.State == StateEditing
}

// FailureMessage returns the failure annotation to display, or ""
func (s Snapshot) FailureMessage() string {
	if s.Failure == nil {
		return ""
	}
	return s.Failure.Message()
}

// Form owns the state of one waitlist form instance. Every method is safe
// for concurrent use; the lock is never held across the network call.
type Form struct {
	mu        sync.Mutex
	submitter Submitter
	metrics   *Metrics
	now       func() time.Time

	state   State
	values  models.WaitlistSubmission
	touched map[string]bool
	failure *SubmitError
}

// FormOption configures a Form
type FormOption func(*Form)

// WithMetrics records submission outcomes on m
func WithMetrics(m *Metrics) FormOption {
	return func(f *Form) {
		f.metrics = m
	}
}

// NewForm returns an empty form in the Editing state
func NewForm(submitter Submitter, opts ...FormOption) *Form {
	f := &Form{
		submitter: submitter,
		now:       time.Now,
		touched:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// State returns the current state
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Snapshot returns the current view of the form
func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

func (f *Form) snapshotLocked() Snapshot {
	errs := FieldErrors{}
	if len(f.touched) > 0 {
		for field, msgs := range Validate(f.values) {
			if f.touched[field] {
				errs[field] = msgs
			}
		}
	}
	return Snapshot{
		State:   f.state,
		Values:  f.values,
		Errors:  errs,
		Failure: f.failure,
	}
}

// Set stores a field value and returns that field's validation messages.
// Edits are allowed while a submission is in flight; they do not affect the
// values already sent.
func (f *Form) Set(field, value string) ([]string, error) {
	if !models.IsWaitlistField(field) {
		return nil, ErrUnknownField
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateSubmitted {
		return nil, ErrFormClosed
	}
	f.values = f.values.With(field, value)
	f.touched[field] = true
	return ValidateField(f.values, field), nil
}

// SetAll replaces every field at once, as on a full form post. It refuses
// while a submission is in flight so the values kept for a failed attempt
// are the ones that were sent.
func (f *Form) SetAll(s models.WaitlistSubmission) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.state {
	case StateSubmitted:
		return ErrFormClosed
	case StateSubmitting:
		return ErrSubmissionInFlight
	}
	f.values = s
	for _, field := range models.WaitlistFields {
		f.touched[field] = true
	}
	return nil
}

// Submit validates the current values and, if they pass, sends them once.
//
// Returns ErrSubmissionInFlight without side effects when a submission is
// already outstanding, ErrFormClosed after a successful submission, a
// *ValidationError when local validation fails, and a *SubmitError for
// every failed request. On success the form moves to Submitted and its
// values are cleared; on failure it returns to Editing with values kept.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	return f.submitLocked(ctx)
}

// SubmitValues stores s and submits it in one step, as on a full form post.
// A duplicate post while a submission is in flight leaves the stored values
// untouched.
func (f *Form) SubmitValues(ctx context.Context, s models.WaitlistSubmission) error {
	f.mu.Lock()
	if f.state == StateEditing {
		f.values = s
	}
	return f.submitLocked(ctx)
}

// submitLocked runs a submission. f.mu must be held; it is released before
// the network call.
func (f *Form) submitLocked(ctx context.Context) error {
	switch f.state {
	case StateSubmitted:
		f.mu.Unlock()
		return ErrFormClosed
	case StateSubmitting:
		f.mu.Unlock()
		f.metrics.count(OutcomeInFlight)
		return ErrSubmissionInFlight
	}

	for _, field := range models.WaitlistFields {
		f.touched[field] = true
	}
	if errs := Validate(f.values); len(errs) > 0 {
		f.failure = nil
		f.mu.Unlock()
		f.metrics.count(OutcomeRejectedLocal)
		return &ValidationError{Fields: errs}
	}

	sent := f.values
	f.state = StateSubmitting
	f.failure = nil
	f.mu.Unlock()

	// A panicking submitter must not leave the form stuck in Submitting
	returned := false
	defer func() {
		if !returned {
			f.mu.Lock()
			f.state = StateEditing
			f.mu.Unlock()
		}
	}()

	start := f.now()
	err := f.submitter.Submit(ctx, sent)
	returned = true
	elapsed := f.now().Sub(start)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err == nil {
		f.state = StateSubmitted
		f.values = models.WaitlistSubmission{}
		f.touched = make(map[string]bool)
		f.metrics.observe(OutcomeSuccess, elapsed)
		return nil
	}

	se := asSubmitError(err)
	f.state = StateEditing
	f.metrics.observe(se.Kind.String(), elapsed)
	if se.Kind != KindCanceled {
		f.failure = se
	}
	return se
}

// Reset starts a new session: empty values, Editing, no annotations. It is
// ignored while a submission is in flight.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateSubmitting {
		return
	}
	f.state = StateEditing
	f.values = models.WaitlistSubmission{}
	f.touched = make(map[string]bool)
	f.failure = nil
}
