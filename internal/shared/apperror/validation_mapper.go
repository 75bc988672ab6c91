package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// humanizeField turns a json field name into a label: leave_start -> Leave Start.
func humanizeField(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	return cases.Title(language.English).String(s)
}

// MapValidationError converts the first binding failure reported by gin into
// an AppError with a message the portal can show next to the form.
func MapValidationError(err error) *AppError {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return New(CodeInvalidInput, "Invalid input", http.StatusBadRequest)
	}

	e := errs[0]
	field := humanizeField(e.Field())

	switch e.Tag() {
	case "required":
		return RequiredField(field)
	case "min":
		return New(
			CodeInvalidInput,
			fmt.Sprintf("%s must be at least %s characters", field, e.Param()),
			http.StatusBadRequest,
		)
	case "datetime":
		return New(
			CodeInvalidInput,
			fmt.Sprintf("%s must use the YYYY-MM-DD format", field),
			http.StatusBadRequest,
		)
	default:
		return InvalidField(field)
	}
}
