package model

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"golang.org/x/exp/slices"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

var ErrValidation = errors.New("validation failed")

type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() []error {
	return []error{ErrValidation, e.Err}
}

func validateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return &ValidationError{Err: err}
	}

	return nil
}

func (t *Train) Validate() error {
	for _, stop := range t.Schedule {
		if stop == nil {
			return &ValidationError{Err: errors.New("schedule contains an empty stop")}
		}
	}

	return validateStruct(t)
}

func (s *Station) Validate() error {
	for _, forecast := range s.Forecasts {
		if forecast == nil {
			return &ValidationError{Err: errors.New("forecasts contains an empty entry")}
		}
	}

	return validateStruct(s)
}

func (o *Observation) Validate() error {
	return validateStruct(o)
}

func (c Condition) Valid() bool {
	return slices.Contains(Conditions, c)
}

func (m MaintenanceType) Valid() bool {
	return slices.Contains(MaintenanceTypes, m)
}
