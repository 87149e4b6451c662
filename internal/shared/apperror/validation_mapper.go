package apperror

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// formatFieldName turns date_of_joining into "Date Of Joining".
func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")

	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationError converts binding failures into an AppError. The first
// failing field drives the message; all fields are listed in Details.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		details := make(map[string]string, len(errs))
		for _, fe := range errs {
			details[fe.Field()] = fe.Tag()
		}

		e := errs[0]
		humanReadableField := formatFieldName(e.Field())

		switch e.Tag() {
		case "required":
			return RequiredField(humanReadableField).WithDetails(details)
		default:
			return InvalidField(humanReadableField).WithDetails(details)
		}
	}

	return ErrInvalidInput
}
