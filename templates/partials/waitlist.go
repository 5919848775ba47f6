package partials

import (
	"turn2law_web/models"
	"turn2law_web/services/waitlist"
	"turn2law_web/templates"

	"github.com/a-h/templ"
)

// WaitlistFormView is everything the waitlist form partial renders
type WaitlistFormView struct {
	FormID           string
	CSRFToken        string
	CSRFField        string
	TurnstileSiteKey string
	Values           models.WaitlistSubmission
	Errors           waitlist.FieldErrors
	// Failure is the annotation of the last failed attempt, an i18n key or
	// text from the signup backend
	Failure   string
	Submitted bool
	Roles     []models.RoleOption
}

// NewWaitlistFormView builds the view of a form instance
func NewWaitlistFormView(formID string, snap waitlist.Snapshot, csrfToken, csrfField, turnstileSiteKey string) WaitlistFormView {
	return WaitlistFormView{
		FormID:           formID,
		CSRFToken:        csrfToken,
		CSRFField:        csrfField,
		TurnstileSiteKey: turnstileSiteKey,
		Values:           snap.Values,
		Errors:           snap.Errors,
		Failure:          snap.FailureMessage(),
		Submitted:        snap.State == waitlist.StateSubmitted,
		Roles:            models.RoleOptions,
	}
}

// WithFailure returns a copy annotated with msg
func (v WaitlistFormView) WithFailure(msg string) WaitlistFormView {
	v.Failure = msg
	return v
}

// FieldErrorView is the error slot under one input
type FieldErrorView struct {
	Field    string
	Messages []string
}

// Notice is a transient message shown above the submit button
type Notice struct {
	Message string
}

// WaitlistSection renders the form, or the success panel once submitted
func WaitlistSection(v WaitlistFormView) templ.Component {
	return templates.Render("waitlist_section", v)
}

// WaitlistForm renders the editable form with values, errors and failure annotation
func WaitlistForm(v WaitlistFormView) templ.Component {
	return templates.Render("waitlist_form", v)
}

// WaitlistSuccess renders the confirmation panel
func WaitlistSuccess(v WaitlistFormView) templ.Component {
	return templates.Render("waitlist_success", v)
}

// FieldError renders the live-validation slot of a field
func FieldError(field string, messages []string) templ.Component {
	return templates.Render("field_error", FieldErrorView{Field: field, Messages: messages})
}

// WaitlistNotice renders a message into the form's notice slot
func WaitlistNotice(message string) templ.Component {
	return templates.Render("waitlist_notice", Notice{Message: message})
}
