package helper

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate  = newValidator()
	enumMu    sync.RWMutex
	enumValue = map[string][]string{}
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// messages use the wire (json) names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// RegisterEnum adds a closed-set validation tag, e.g.
//
//	RegisterEnum("mission_status", "Upcoming", "Ongoing", "Completed")
//	Status string `validate:"required,mission_status"`
func RegisterEnum(tag string, values ...string) {
	enumMu.Lock()
	enumValue[tag] = values
	enumMu.Unlock()

	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	if err := validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		_, ok := set[fl.Field().String()]
		return ok
	}); err != nil {
		panic(fmt.Sprintf("register enum %s: %v", tag, err))
	}
}

// RegisterStructRule adds a cross-field rule for the given struct types.
func RegisterStructRule(fn validator.StructLevelFunc, types ...any) {
	validate.RegisterStructValidation(fn, types...)
}

func EnumValues(tag string) []string {
	enumMu.RLock()
	defer enumMu.RUnlock()
	return enumValue[tag]
}

// ValidateStruct runs the schema tags of s. It returns nil or a
// *ValidationError with one message per invalid field.
func ValidateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return NewValidationError(err.Error())
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, messageFor(fe))
	}
	return NewValidationError(msgs...)
}

func messageFor(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "required_if", "required_when":
		parts := strings.Fields(fe.Param())
		if len(parts) == 2 {
			return fmt.Sprintf("%s is required when %s is %s", field, lowerFirst(parts[0]), parts[1])
		}
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "url":
		return field + " must be a valid URL"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(strings.Fields(fe.Param()), ", "))
	}
	if values := EnumValues(fe.Tag()); len(values) > 0 {
		return fmt.Sprintf("%s must be one of: %s (got %q)", field, strings.Join(values, ", "), fmt.Sprint(fe.Value()))
	}
	return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
}

// fieldPath drops the root struct name: "MissionModel.stats.treated" -> "stats.treated".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
