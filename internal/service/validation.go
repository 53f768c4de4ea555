package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/athlete-load-api/internal/models"
	"github.com/noah-isme/athlete-load-api/internal/workload"
	appErrors "github.com/noah-isme/athlete-load-api/pkg/errors"
)

// NewValidator returns a validator aware of the wellness field rules.
// Field names in messages follow the json/form tag.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return field.Name
	})
	mustRegister(v, "score", intBetween(1, 5))
	mustRegister(v, "rpe", intBetween(1, 10))
	mustRegister(v, "match_day_plus", matchDay('+'))
	mustRegister(v, "match_day_minus", matchDay('-'))
	mustRegister(v, "iso_date", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(models.DateLayout, fl.Field().String())
		return err == nil
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

func intBetween(lo, hi int64) validator.Func {
	return func(fl validator.FieldLevel) bool {
		n := fl.Field().Int()
		return n >= lo && n <= hi
	}
}

func matchDay(sign byte) validator.Func {
	return func(fl validator.FieldLevel) bool {
		_, err := workload.ParseMatchDay(fl.Field().String(), sign)
		return err == nil
	}
}

// validationError converts the first validator failure into a user-facing
// VALIDATION_ERROR.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	return appErrors.Validation(fieldMessage(fieldErrs[0]))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "score":
		return fmt.Sprintf("%s must be between 1 and 5", field)
	case "rpe":
		return "rpe must be between 1 and 10"
	case "gt":
		return fmt.Sprintf("%s must be a positive integer", field)
	case "match_day_plus":
		return fmt.Sprintf("%s must be between MD0 and MD+%d", field, workload.MaxMatchDayOffset)
	case "match_day_minus":
		return fmt.Sprintf("%s must be between MD-%d and MD0", field, workload.MaxMatchDayOffset)
	case "iso_date":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// parseSessionDate parses a YYYY-MM-DD date, defaulting to today.
func parseSessionDate(raw string, now time.Time) (time.Time, error) {
	if raw == "" {
		return workload.Day(now), nil
	}
	t, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		return time.Time{}, appErrors.Validation("session_date must be a date in YYYY-MM-DD format")
	}
	return t, nil
}
