package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"turn2law_web/config"
	"turn2law_web/models"
	"turn2law_web/services"
	"turn2law_web/services/i18n"
	"turn2law_web/services/waitlist"
	"turn2law_web/templates/partials"

	"github.com/labstack/echo/v4"
)

const (
	registryKey = "waitlist_registry"
	formIDField = "form_id"
	noticeSlot  = "#waitlist-notice"

	msgCaptchaMissing = "waitlist.error.captcha_missing"
	msgCaptchaFailed  = "waitlist.error.captcha_failed"
)

// WithRegistry makes the form registry available to handlers
func WithRegistry(reg *waitlist.Registry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(registryKey, reg)
			return next(c)
		}
	}
}

func getRegistry(c echo.Context) *waitlist.Registry {
	return c.Get(registryKey).(*waitlist.Registry)
}

// readSubmission reads the posted waitlist fields, trimmed
func readSubmission(c echo.Context) models.WaitlistSubmission {
	var s models.WaitlistSubmission
	for _, field := range models.WaitlistFields {
		s = s.With(field, strings.TrimSpace(c.FormValue(field)))
	}
	return s
}

// renderWaitlist answers htmx with the waitlist partial and everything else
// with the full page
func renderWaitlist(c echo.Context, status int, view partials.WaitlistFormView) error {
	if isHTMX(c) {
		return renderHTML(c, status, partials.WaitlistSection(view))
	}
	return renderLanding(c, status, view)
}

// WaitlistSubmitHandler handles the waitlist form post
func WaitlistSubmitHandler(c echo.Context) error {
	cfg := c.Get("config").(*config.Config)
	ctx := c.Request().Context()

	id, form := getRegistry(c).Get(c.FormValue(formIDField))
	posted := readSubmission(c)

	if form.State() == waitlist.StateSubmitted {
		// Already signed up; show the confirmation again
		return renderWaitlist(c, http.StatusOK, formView(c, id, form.Snapshot()))
	}

	// Validate Turnstile CAPTCHA (if configured)
	if cfg.TurnstileEnabled() {
		token := c.FormValue(services.TurnstileFormField)
		if token == "" {
			return renderCaptchaFailure(c, id, form, posted, msgCaptchaMissing)
		}

		ok, err := services.VerifyTurnstileToken(ctx, token, cfg.TurnstileSecretKey, c.RealIP())
		if err != nil || !ok {
			c.Logger().Warnf("Turnstile verification failed: %v", err)
			return renderCaptchaFailure(c, id, form, posted, msgCaptchaFailed)
		}
	}

	// Storing and sending happen in one step so a duplicate post cannot
	// replace the values of the submission in flight
	err := form.SubmitValues(ctx, posted)

	var validationErr *waitlist.ValidationError
	var submitErr *waitlist.SubmitError
	switch {
	case err == nil:
		log.Printf("[INFO] Waitlist signup accepted (form %s, role %s)", id, posted.Role)
		services.NotifyWaitlistSignup(cfg, posted, i18n.GetLocale(ctx))
		if !isHTMX(c) {
			// Post/redirect/get so a refresh does not post again
			return c.Redirect(http.StatusSeeOther, "/?form_id="+id+"#waitlist-form")
		}
		return renderHTML(c, http.StatusOK, partials.WaitlistSection(formView(c, id, form.Snapshot())))

	case errors.Is(err, waitlist.ErrSubmissionInFlight):
		if isHTMX(c) {
			retarget(c, noticeSlot, "innerHTML")
			return renderHTML(c, http.StatusConflict, partials.WaitlistNotice(waitlist.MsgInFlight))
		}
		return echo.NewHTTPError(http.StatusConflict, i18n.T(ctx, waitlist.MsgInFlight))

	case errors.Is(err, waitlist.ErrFormClosed):
		return renderWaitlist(c, http.StatusOK, formView(c, id, form.Snapshot()))

	case errors.As(err, &validationErr):
		return renderWaitlist(c, http.StatusUnprocessableEntity, formView(c, id, form.Snapshot()))

	case errors.As(err, &submitErr) && submitErr.Kind == waitlist.KindCanceled:
		// Nobody is waiting for the answer
		return c.NoContent(http.StatusNoContent)

	case errors.As(err, &submitErr) && submitErr.Kind == waitlist.KindRemoteValidation:
		c.Logger().Warnf("Waitlist signup rejected by backend: %v", err)
		return renderWaitlist(c, http.StatusUnprocessableEntity, formView(c, id, form.Snapshot()))

	default:
		c.Logger().Errorf("Waitlist signup failed: %v", err)
		return renderWaitlist(c, http.StatusOK, formView(c, id, form.Snapshot()))
	}
}

// renderCaptchaFailure keeps the posted values on the form and reports msg.
// While another submission is in flight the stored values stay as sent.
func renderCaptchaFailure(c echo.Context, id string, form *waitlist.Form, posted models.WaitlistSubmission, msg string) error {
	_ = form.SetAll(posted)
	view := formView(c, id, form.Snapshot()).WithFailure(msg)
	return renderWaitlist(c, http.StatusBadRequest, view)
}

// WaitlistValidateHandler validates one field as the user types and returns
// its error slot
func WaitlistValidateHandler(c echo.Context) error {
	field := c.Request().Header.Get("HX-Trigger-Name")
	if field == "" {
		field = c.FormValue("field")
	}
	if !models.IsWaitlistField(field) {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown field")
	}

	value := strings.TrimSpace(c.FormValue(field))

	// Only forms the server handed out are updated; anything else is
	// validated without being stored
	form, ok := getRegistry(c).Lookup(c.FormValue(formIDField))
	if !ok {
		messages := waitlist.ValidateField(models.WaitlistSubmission{}.With(field, value), field)
		return renderHTML(c, http.StatusOK, partials.FieldError(field, messages))
	}

	messages, err := form.Set(field, value)
	if err != nil && !errors.Is(err, waitlist.ErrFormClosed) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return renderHTML(c, http.StatusOK, partials.FieldError(field, messages))
}

// WaitlistResetHandler starts a new session on the same form instance
func WaitlistResetHandler(c echo.Context) error {
	id, form := getRegistry(c).Get(c.FormValue(formIDField))
	form.Reset()

	if !isHTMX(c) {
		return c.Redirect(http.StatusSeeOther, "/?form_id="+id+"#waitlist-form")
	}
	return renderHTML(c, http.StatusOK, partials.WaitlistSection(formView(c, id, form.Snapshot())))
}
