package waitlist

import (
	"reflect"
	"strings"

	"turn2law_web/models"

	"github.com/go-playground/validator/v10"
)

// Message keys for local validation failures
const (
	MsgFullNameMin  = "waitlist.error.full_name"
	MsgEmailInvalid = "waitlist.error.email"
	MsgRoleRequired = "waitlist.error.role"
)

// fieldMessages maps a field to the message shown for any rule it breaks.
// Each field has a single message, so the failing tag does not matter.
var fieldMessages = map[string]string{
	models.FieldFullName: MsgFullNameMin,
	models.FieldEmail:    MsgEmailInvalid,
	models.FieldRole:     MsgRoleRequired,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report errors under the wire/form name rather than the Go field name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks a submission against the waitlist schema. An empty result
// means the submission may be sent.
func Validate(s models.WaitlistSubmission) FieldErrors {
	result := FieldErrors{}

	err := validate.Struct(s)
	if err == nil {
		return result
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// InvalidValidationError only happens for non-struct input
		result.Add(models.FieldFullName, MsgUnexpectedError)
		return result
	}

	for _, fe := range verrs {
		field := fe.Field()
		msg, ok := fieldMessages[field]
		if !ok {
			msg = MsgUnexpectedError
		}
		// One message per field even when several rules fail
		if len(result[field]) == 0 {
			result.Add(field, msg)
		}
	}
	return result
}

// ValidateField returns the messages for a single field of s
func ValidateField(s models.WaitlistSubmission, field string) []string {
	return Validate(s)[field]
}
