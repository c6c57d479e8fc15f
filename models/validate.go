package models

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"food-ordering-api/apperrors"

	"github.com/go-playground/validator/v10"
)

var phoneRegex = regexp.MustCompile(`^\+?\d{10,15}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	if err := RegisterValidations(v); err != nil {
		panic(err)
	}
	return v
}

// RegisterValidations installs the custom rules and json field naming on v.
// It is applied to our own validator and to gin's binding engine so both
// enforce the same tags.
func RegisterValidations(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRegex.MatchString(fl.Field().String())
	})
}

// Validate checks s against its binding tags. It returns nil or a validation
// *apperrors.Error carrying per-field details.
func Validate(s any) error {
	if err := validate.Struct(s); err != nil {
		return ValidationError(err)
	}
	return nil
}

// ValidationError converts a validator or binding failure into a validation
// *apperrors.Error.
func ValidationError(err error) *apperrors.Error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) && appErr.Kind == apperrors.KindValidation {
		return appErr
	}
	return apperrors.Validation(FieldErrors(err))
}

// FieldErrors flattens err into field -> rule. Errors that are not validator
// errors (malformed JSON, wrong types) end up under "body".
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"body": err.Error()}
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		fields[fieldPath(fe)] = "failed on " + rule
	}
	return fields
}

// fieldPath drops the root struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
