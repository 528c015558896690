// Package validation turns struct-tag validation failures and business-rule
// violations into field-keyed messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Errors maps a field path (e.g. "products.0.quantity") to its messages.
// A non-empty Errors value is the ValidationFailed error of every service.
type Errors map[string][]string

var (
	phonePattern   = regexp.MustCompile(`^\(\d{2}\)(9?\s?\d{4}-\d{4}|\d{4}-\d{4})$`)
	zipcodePattern = regexp.MustCompile(`^\d{5}-\d{3}$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("zipcode", func(fl validator.FieldLevel) bool {
		return zipcodePattern.MatchString(fl.Field().String())
	})

	return v
}

// Struct validates s against its `validate` tags.
// The result is never nil so callers can keep adding business-rule messages;
// it is empty when s is valid.
func Struct(s any) Errors {
	err := validate.Struct(s)
	if err == nil {
		return Errors{}
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Errors{"body": {err.Error()}}
	}

	out := Errors{}
	for _, fe := range fieldErrs {
		out.Add(fieldPath(fe.Namespace()), message(fe))
	}
	return out
}

// Field builds a single-field Errors value.
func Field(field, msg string) Errors {
	return Errors{field: {msg}}
}

// Add appends msg to field.
func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Merge copies every message of other into e.
func (e Errors) Merge(other Errors) {
	for field, msgs := range other {
		e[field] = append(e[field], msgs...)
	}
}

// Any reports whether at least one message is present.
func (e Errors) Any() bool {
	return len(e) > 0
}

// Err returns e as an error, or nil when empty.
func (e Errors) Err() error {
	if !e.Any() {
		return nil
	}
	return e
}

// First returns the first message of the alphabetically first field.
func (e Errors) First() string {
	if len(e) == 0 {
		return ""
	}
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return e[fields[0]][0]
}

func (e Errors) Error() string {
	first := e.First()
	if first == "" {
		return "validation failed"
	}
	if n := e.count() - 1; n > 0 {
		return fmt.Sprintf("%s (and %d more)", first, n)
	}
	return first
}

func (e Errors) count() int {
	n := 0
	for _, msgs := range e {
		n += len(msgs)
	}
	return n
}

// fieldPath drops the root struct name and rewrites indexes to dotted form:
// "CreateRequest.products[0].quantity" becomes "products.0.quantity".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		namespace = namespace[i+1:]
	}
	namespace = strings.ReplaceAll(namespace, "[", ".")
	return strings.ReplaceAll(namespace, "]", "")
}

// Attribute renders a json field name the way messages refer to it.
func Attribute(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

func message(fe validator.FieldError) string {
	attr := Attribute(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", attr)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", attr)
	case "phone":
		return fmt.Sprintf("The %s field format is invalid. Use (XX)9 XXXX-XXXX, (XX)9XXXX-XXXX or (XX)XXXX-XXXX.", attr)
	case "zipcode":
		return fmt.Sprintf("The %s field format is invalid. Use XXXXX-XXX.", attr)
	case "datetime":
		return fmt.Sprintf("The %s field must match the format YYYY-MM-DD.", attr)
	case "min":
		return boundMessage(fe, attr, "at least")
	case "max":
		return boundMessage(fe, attr, "at most")
	default:
		return fmt.Sprintf("The %s field is invalid.", attr)
	}
}

func boundMessage(fe validator.FieldError, attr, bound string) string {
	switch fe.Kind() {
	case reflect.String:
		return fmt.Sprintf("The %s field must be %s %s characters.", attr, bound, fe.Param())
	case reflect.Slice, reflect.Array, reflect.Map:
		return fmt.Sprintf("The %s field must have %s %s items.", attr, bound, fe.Param())
	default:
		return fmt.Sprintf("The %s field must be %s %s.", attr, bound, fe.Param())
	}
}
