package dto

import (
	"fmt"
	"time"

	"github.com/centavoapp/centavo/internal/apperrors"
	"github.com/go-playground/validator/v10"
)

// DateLayout is the wire format for calendar dates at the API boundary.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", apperrors.ErrValidation, s)
	}
	return t.UTC(), nil
}

// FormatDate renders a calendar date in the wire format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateOnlyValidation is registered with gin's validator under the tag
// "dateonly" so request structs can validate date strings at bind time.
func DateOnlyValidation(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true // omitempty-style; required is a separate tag
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
