// Package validation configures go-playground/validator with English messages
// keyed by JSON field names.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

var (
	uniOnce sync.Once
	trans   ut.Translator
)

func translator() ut.Translator {
	uniOnce.Do(func() {
		locale := en.New()
		uni := ut.New(locale, locale)
		trans, _ = uni.GetTranslator("en")
	})
	return trans
}

// New returns a validator that names fields after their json tags and has
// English translations registered.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = enTranslations.RegisterDefaultTranslations(v, translator())
	return v
}

// FieldError carries per-field messages for a failed validation.
type FieldError struct {
	fields map[string]string
	err    error
}

// Error implements error.
func (e FieldError) Error() string {
	if e.err == nil {
		return "validation failed"
	}
	return e.err.Error()
}

// Unwrap exposes the original validator error.
func (e FieldError) Unwrap() error {
	return e.err
}

// FieldMessages returns field name to message pairs.
func (e FieldError) FieldMessages() map[string]string {
	return e.fields
}

// Translate converts validator errors into a FieldError. Other errors are
// returned unchanged.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = fe.Translate(translator())
	}
	return FieldError{fields: fields, err: err}
}
