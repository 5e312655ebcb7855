package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/daycare-scheduler/internal/httperr"
	"github.com/BruksfildServices01/daycare-scheduler/internal/models"
)

const MaxDescriptionLength = 250

// Validate checks a full service definition.
func Validate(name, description string, price decimal.Decimal) error {
	var fields []httperr.FieldError
	if strings.TrimSpace(name) == "" {
		fields = append(fields, httperr.FieldError{Field: "name", Error: "is required"})
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		fields = append(fields, httperr.FieldError{Field: "description", Error: "must not exceed 250 characters"})
	}
	switch {
	case !price.IsPositive():
		fields = append(fields, httperr.FieldError{Field: "price", Error: "must be greater than 0"})
	case !price.Equal(price.Truncate(2)):
		fields = append(fields, httperr.FieldError{Field: "price", Error: "must have at most 2 decimal places"})
	case price.GreaterThan(models.MaxAmount):
		fields = append(fields, httperr.FieldError{Field: "price", Error: "must not exceed " + models.MaxAmount.String()})
	}
	if len(fields) > 0 {
		return httperr.Validation("invalid service").WithFields(fields...)
	}
	return nil
}
