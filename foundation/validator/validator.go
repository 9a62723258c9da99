// Package validator wraps a shared go-playground validator with IBAN tags.
//
//	type Beneficiary struct {
//		IBAN string `validate:"required,iban,iban_country"`
//	}
package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/vortex-fintech/go-iban/foundation/iban"
)

const (
	// TagIBAN passes when the value is a valid IBAN after normalization.
	TagIBAN = "iban"
	// TagIBANCountry passes when the value's country has a registered layout.
	TagIBANCountry = "iban_country"
)

var v *validator.Validate

func init() {
	v = validator.New()
	v.RegisterTagNameFunc(jsonName)
	mustRegister(TagIBAN, func(fl validator.FieldLevel) bool {
		return iban.IsValid(fl.Field().String())
	})
	mustRegister(TagIBANCountry, func(fl validator.FieldLevel) bool {
		_, ok := iban.LookupLayout(iban.CountryOf(iban.Normalize(fl.Field().String())))
		return ok
	})
}

// jsonName reports fields by their JSON name; untagged fields keep the Go name.
func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

func mustRegister(tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

func Instance() *validator.Validate {
	return v
}

// Validate returns a field -> reason code map, or nil when i is valid.
func Validate(i any) map[string]string {
	err := v.Struct(i)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		out := make(map[string]string, len(errs))
		for _, e := range errs {
			out[e.Field()] = mapTagToCode(e.Tag())
		}
		return out
	}
	return map[string]string{"_error": "validation_failed"}
}

// Var validates a single value against a tag expression such as "iban".
func Var(value any, tag string) error {
	return v.Var(value, tag)
}
