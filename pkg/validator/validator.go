package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jwalitptl/dravail-api/internal/model"
)

// FieldError is one failed rule, keyed by the JSON name of the field.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// Validator wraps go-playground/validator with the directory's enumeration
// tags registered.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := Register(v); err != nil {
		panic(err)
	}
	return &Validator{v: v}
}

// Engine exposes the underlying validator, e.g. for gin's binding.
func (v *Validator) Engine() *validator.Validate {
	return v.v
}

// Validate returns every failed rule of obj, or nil.
func (v *Validator) Validate(obj interface{}) []FieldError {
	err := v.v.Struct(obj)
	if err == nil {
		return nil
	}
	return Translate(err)
}

var enumTags = map[string]func(string) bool{
	"speciality":   func(s string) bool { return model.Speciality(s).IsValid() },
	"district":     func(s string) bool { return model.District(s).IsValid() },
	"gender":       func(s string) bool { return model.Gender(s).IsValid() },
	"practice":     func(s string) bool { return model.Practice(s).IsValid() },
	"hospitaltype": func(s string) bool { return model.HospitalType(s).IsValid() },
	"contactpref":  func(s string) bool { return model.ContactPreference(s).IsValid() },
}

// Register installs the enumeration tags and JSON field naming on v.
func Register(v *validator.Validate) error {
	for tag, ok := range enumTags {
		check := ok
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return check(fl.Field().String())
		}); err != nil {
			return fmt.Errorf("failed to register %s validation: %w", tag, err)
		}
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return nil
}

var messages = map[string]string{
	"required":     "is required",
	"email":        "must be a valid email address",
	"speciality":   "is not a known speciality",
	"district":     "is not a known district",
	"gender":       "is not a known gender",
	"practice":     "is not a known practice",
	"hospitaltype": "is not a known hospital type",
	"contactpref":  "is not a known contact preference",
}

// Translate converts validator errors into FieldErrors. Other errors become
// a single entry without a field.
func Translate(err error) []FieldError {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, e := range verrs {
		msg, found := messages[e.Tag()]
		if !found {
			msg = ruleMessage(e)
		}
		out = append(out, FieldError{
			Field:   e.Field(),
			Tag:     e.Tag(),
			Message: fmt.Sprintf("%s %s", e.Field(), msg),
		})
	}
	return out
}

func ruleMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "min":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", e.Param())
	case "gte":
		return fmt.Sprintf("must be %s or more", e.Param())
	case "lte":
		return fmt.Sprintf("must be %s or less", e.Param())
	default:
		return fmt.Sprintf("failed %s validation", e.Tag())
	}
}
