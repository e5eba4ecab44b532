// Package validation checks request payloads against their struct tags.
package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/shiftmatch/jobmatch-service/pkg/util"
)

// MaxPasswordBytes is bcrypt's input limit. It counts bytes, not runes.
const MaxPasswordBytes = 72

// FieldError names one offending field and the rule it broke.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	// bcryptlen: the string fits bcrypt's byte limit.
	_ = val.RegisterValidation("bcryptlen", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= MaxPasswordBytes
	})
	return val
}

// Struct validates s and returns a VALIDATION_ERROR listing every offending field.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return Fields("invalid payload", FieldError{Field: "body", Rule: "struct"})
	}
	fields := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return Fields("request validation failed", fields...)
}

// Fields builds a VALIDATION_ERROR carrying details.fields.
func Fields(message string, fields ...FieldError) error {
	return apperrors.NewValidationError(message, map[string]any{"fields": fields})
}

// Field is Fields for a single offending field.
func Field(message, field, rule string) error {
	return Fields(message, FieldError{Field: field, Rule: rule})
}

// DecodeError converts a body decoding failure into a VALIDATION_ERROR. Type
// mismatches name the JSON field; anything else is reported against "body".
func DecodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return Field("invalid payload", typeErr.Field, "type")
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return Field("malformed JSON body", "body", "json")
	}
	return Field("invalid payload", "body", "format")
}
