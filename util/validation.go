package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/ariebrainware/hospital-management/model"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var registerOnce sync.Once

func choiceValidator(valid func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return valid(fl.Field().String())
	}
}

// RegisterValidators installs the hospital choice validators on gin's binding
// engine and makes validation errors report JSON field names.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		if err := registerChoices(v, choiceRules); err != nil {
			log.Error().Err(err).Msg("failed to register choice validators")
		}
	})
}

var choiceRules = map[string]func(string) bool{
	"specialization": model.IsValidSpecialization,
	"staffrole":      model.IsValidStaffRole,
	"apptstatus":     model.IsValidAppointmentStatus,
	"gender":         model.IsValidGender,
	"bloodgroup":     model.IsValidBloodGroup,
}

// registerChoices installs one validator per tag and reports every tag the
// engine refused.
func registerChoices(v *validator.Validate, rules map[string]func(string) bool) error {
	var errs []error
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, choiceValidator(fn)); err != nil {
			errs = append(errs, fmt.Errorf("register %q: %w", tag, err))
		}
	}
	return errors.Join(errs...)
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min", "gte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "specialization", "staffrole", "apptstatus", "gender", "bloodgroup", "oneof":
		return fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(fe.Value()))
	default:
		return fmt.Sprintf("Failed on the '%s' rule.", fe.Tag())
	}
}

// BindingError converts an error returned by gin's ShouldBind* into a
// ValidationError keyed by JSON field name.
func BindingError(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &fieldErrs):
		verr := &ValidationError{}
		for _, fe := range fieldErrs {
			verr.Add(fe.Field(), describeFieldError(fe))
		}
		return verr
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return NewValidationError(field, fmt.Sprintf("Expected a value of type %s.", typeErr.Type))
	default:
		return NewValidationError("body", err.Error())
	}
}
