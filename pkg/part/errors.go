package part

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for model validation.
var (
	// ErrInvalidDimension is returned for a non-positive or non-finite
	// length.
	ErrInvalidDimension = errors.New("dimension must be positive")

	// ErrEmptyField is returned for a required identifier left blank.
	ErrEmptyField = errors.New("must not be empty")

	// ErrRatioRange is returned for a ratio or coverage outside its range.
	ErrRatioRange = errors.New("ratio out of range")

	// ErrOutOfRange is returned for a negative count or index.
	ErrOutOfRange = errors.New("value out of range")

	// ErrInvalidUnit is returned for a symbol unit number below 1.
	ErrInvalidUnit = errors.New("unit must be at least 1")

	// ErrUntrimmed is returned for an identifier with surrounding spaces.
	ErrUntrimmed = errors.New("has leading or trailing spaces")

	// ErrUnknownValue is returned for an enumeration value that is not defined.
	ErrUnknownValue = errors.New("unknown value")

	// ErrDuplicatePin is returned when two pins of a component share a number.
	ErrDuplicatePin = errors.New("duplicate pin numbers")

	// ErrPinCount is returned when a pin count does not divide evenly over
	// the sides of the package family.
	ErrPinCount = errors.New("pin count not divisible by side count")
)

// ValidationError names the field that failed a check.
type ValidationError struct {
	Field string
	Value any
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %v", e.Field, e.Value, e.Err)
}

// Unwrap returns the sentinel error.
func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(field string, value any, err error) error {
	return &ValidationError{Field: field, Value: value, Err: err}
}

func finite(v float64) bool { return !math.IsInf(v, 0) && !math.IsNaN(v) }

func positive(field string, v float64) error {
	if !(v > 0) || !finite(v) {
		return invalid(field, v, ErrInvalidDimension)
	}
	return nil
}

func optionalPositive(field string, v float64) error {
	if v < 0 || !finite(v) {
		return invalid(field, v, ErrInvalidDimension)
	}
	return nil
}
