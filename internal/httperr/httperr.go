package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type HTTPError struct {
	Code    string       `json:"error_code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

// Respond renders err through the kind table. Untyped errors are logged and
// hidden behind a generic 500.
func Respond(c *gin.Context, err error) {
	var e *Error
	if !errors.As(err, &e) {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).
			Str("path", c.FullPath()).
			Msg("unhandled error")
		e = New(KindInternal, "internal server error")
	}

	c.JSON(e.Kind.Status(), HTTPError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Fields,
	})
}

// Abort is Respond for middleware.
func Abort(c *gin.Context, err error) {
	c.Abort()
	Respond(c, err)
}

// FromBinding converts a gin binding failure into a validation error with
// per-field details.
func FromBinding(err error) *Error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		out := Validation("validation failed")
		for _, fe := range ve {
			out.Fields = append(out.Fields, FieldError{
				Field: lowerFirst(fe.Field()),
				Error: describe(fe),
			})
		}
		return out
	}

	var te *json.UnmarshalTypeError
	if errors.As(err, &te) {
		return Validation("invalid request body").WithFields(FieldError{
			Field: te.Field,
			Error: "must be " + te.Type.String(),
		})
	}

	return Validation("invalid request body: " + err.Error())
}

func describe(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if isString {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "email":
		return "must be a valid email address"
	default:
		if fe.Param() != "" {
			return fe.Tag() + ":" + fe.Param()
		}
		return fe.Tag()
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
