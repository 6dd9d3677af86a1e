package validator

import (
	"fmt"
	"strings"

	"simplebanking/internal/metrics"

	"github.com/go-playground/validator/v10"
)

const sep = " and "

type Error struct {
	Error       bool
	FailedField string
	Tag         string
	Value       interface{}
}

type IXValidator interface {
	Validate(data interface{}) []Error
	Message(errs []Error, format string) string
}

type XValidator struct {
	validator *validator.Validate
	metrics   *metrics.Metrics
}

func NewXValidator(validator *validator.Validate, metrics *metrics.Metrics) IXValidator {
	return &XValidator{
		validator: validator,
		metrics:   metrics,
	}
}

func (x XValidator) Validate(data interface{}) []Error {
	var validationErrors []Error

	errs := x.validator.Struct(data)
	if errs != nil {
		for _, err := range errs.(validator.ValidationErrors) {
			var elem Error
			elem.FailedField = err.Field()
			elem.Tag = err.Tag()
			elem.Value = err.Value()
			elem.Error = true
			validationErrors = append(validationErrors, elem)

			if x.metrics != nil {
				x.metrics.RecordValidationError(err.Field(), err.Tag())
			}
		}
	}
	return validationErrors
}

// Message renders validation errors into one client-facing string, one
// formatted entry per failed field.
func (x XValidator) Message(errs []Error, format string) string {
	errMsgs := make([]string, 0, len(errs))
	for _, err := range errs {
		errMsgs = append(errMsgs, fmt.Sprintf(format, err.FailedField))
	}
	return strings.Join(errMsgs, sep)
}
