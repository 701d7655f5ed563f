// Package validate decodes and validates request bodies: JSON decoding plus
// struct-tag validation, with violations surfaced as field-level validation
// errors from the shared taxonomy.
package validate

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/baharkarakas/tours-backend/internal/apperr"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Body decodes the request body into dst and applies its validate tags.
func Body(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validation(apperr.FieldError{Field: "body", Msg: "invalid JSON"})
	}
	return Struct(dst)
}

func Struct(dst any) error {
	err := v.Struct(dst)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]apperr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperr.FieldError{
			Field: strings.ToLower(fe.Field()[:1]) + fe.Field()[1:],
			Msg:   tagMsg(fe),
		})
	}
	return apperr.Validation(fields...)
}

func tagMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		return "invalid value"
	}
}
