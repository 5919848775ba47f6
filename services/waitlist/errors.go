package waitlist

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrSubmissionInFlight is returned when Submit is called while a previous
	// submission of the same form has not resolved yet. The call is a no-op.
	ErrSubmissionInFlight = errors.New("waitlist: submission already in flight")

	// ErrFormClosed is returned when a form that was already submitted is
	// edited or submitted again. Call Reset to start a new session.
	ErrFormClosed = errors.New("waitlist: form already submitted")

	// ErrUnknownField is returned by Form.Set for names outside the waitlist schema
	ErrUnknownField = errors.New("waitlist: unknown field")
)

// Message keys for failures that are not tied to a field. They resolve
// through services/i18n; untranslated keys fall back to themselves.
const (
	MsgNetworkError    = "waitlist.error.network"
	MsgTimeoutError    = "waitlist.error.timeout"
	MsgUnexpectedError = "waitlist.error.unexpected"
	MsgInFlight        = "waitlist.error.in_flight"
)

// FieldErrors maps a field name to one or more error messages
type FieldErrors map[string][]string

// Add appends a message for a field
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// First returns the first message for a field, or ""
func (fe FieldErrors) First(field string) string {
	if msgs := fe[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Fields returns the field names with errors, sorted
func (fe FieldErrors) Fields() []string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// ValidationError reports local, field-scoped validation failures. A
// submission that fails validation never reaches the network.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return "waitlist: invalid fields: " + strings.Join(e.Fields.Fields(), ", ")
}

// Kind classifies why a submission failed
type Kind int

const (
	// KindUnexpected is any failure shape not covered below
	KindUnexpected Kind = iota
	// KindRemoteValidation means the backend rejected a locally valid submission
	KindRemoteValidation
	// KindNetwork means no response was received
	KindNetwork
	// KindTimeout means the request exceeded the configured deadline
	KindTimeout
	// KindCanceled means the caller went away before the request resolved
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindRemoteValidation:
		return "remote_validation"
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindCanceled:
		return "canceled"
	default:
		return "unexpected"
	}
}

// SubmitError is the failure outcome of a submission
type SubmitError struct {
	Kind       Kind
	StatusCode int         // HTTP status, 0 when no response was received
	Fields     FieldErrors // set for KindRemoteValidation
	Err        error
}

func (e *SubmitError) Error() string {
	switch {
	case e.Kind == KindRemoteValidation:
		return fmt.Sprintf("waitlist: signup rejected (status %d): %s", e.StatusCode, e.Message())
	case e.Err != nil:
		return fmt.Sprintf("waitlist: %s error: %v", e.Kind, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("waitlist: %s error: status %d", e.Kind, e.StatusCode)
	default:
		return fmt.Sprintf("waitlist: %s error", e.Kind)
	}
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

// Message returns what the user should see. Remote validation errors are
// concatenated verbatim into one line, prefixed with the field they belong
// to; every other kind maps to a message key.
func (e *SubmitError) Message() string {
	switch e.Kind {
	case KindRemoteValidation:
		return joinFieldErrors(e.Fields)
	case KindNetwork:
		return MsgNetworkError
	case KindTimeout:
		return MsgTimeoutError
	default:
		return MsgUnexpectedError
	}
}

// joinFieldErrors flattens a field map into "Email: already registered; Full name: too short"
func joinFieldErrors(fields FieldErrors) string {
	parts := make([]string, 0, len(fields))
	for _, field := range fields.Fields() {
		msgs := strings.Join(fields[field], " ")
		if msgs == "" {
			continue
		}
		switch field {
		case "non_field_errors", "detail", "__all__":
			parts = append(parts, msgs)
		default:
			parts = append(parts, humanizeField(field)+": "+msgs)
		}
	}
	return strings.Join(parts, "; ")
}

// humanizeField turns "full_name" into "Full name"
func humanizeField(field string) string {
	s := strings.ReplaceAll(field, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// asSubmitError normalises whatever a Submitter returned
func asSubmitError(err error) *SubmitError {
	var se *SubmitError
	if errors.As(err, &se) {
		return se
	}
	if errors.Is(err, context.Canceled) {
		return &SubmitError{Kind: KindCanceled, Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &SubmitError{Kind: KindTimeout, Err: err}
	}
	return &SubmitError{Kind: KindUnexpected, Err: err}
}
