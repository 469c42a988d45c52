package pvt

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Typed errors below unwrap to one of these so callers can
// test with errors.Is without knowing the concrete type.
var (
	ErrDomain             = errors.New("input outside physical domain")
	ErrUnsupportedVariant = errors.New("unsupported correlation variant")
	ErrOutOfRange         = errors.New("input outside validated range")
	ErrShape              = errors.New("inputs cannot be broadcast")
)

// DomainError reports an input that has no physical meaning, such as a
// negative pressure. Nothing is computed when it is returned.
type DomainError struct {
	Param  string
	Value  float64
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("invalid %s = %g: %s", e.Param, e.Value, e.Reason)
}

func (e *DomainError) Unwrap() error { return ErrDomain }

// UnsupportedVariantError reports a lookup of a variant that is not
// registered for a property.
type UnsupportedVariantError struct {
	Property string
	Variant  Variant
	Known    []Variant
}

func (e *UnsupportedVariantError) Error() string {
	known := make([]string, len(e.Known))
	for i, v := range e.Known {
		known[i] = string(v)
	}
	return fmt.Sprintf("%s: no correlation %q (available: %s)", e.Property, e.Variant, strings.Join(known, ", "))
}

func (e *UnsupportedVariantError) Unwrap() error { return ErrUnsupportedVariant }

// RangeError is returned under the Reject policy when an input falls outside
// the range a correlation was fitted on.
type RangeError struct {
	Warning
}

func (e *RangeError) Error() string {
	return e.Warning.String()
}

func (e *RangeError) Unwrap() error { return ErrOutOfRange }

// Positive returns a DomainError unless v > 0.
func Positive(param string, v float64) error {
	if !(v > 0) {
		return &DomainError{Param: param, Value: v, Reason: "must be positive"}
	}
	return nil
}

// NonNegative returns a DomainError unless v >= 0.
func NonNegative(param string, v float64) error {
	if !(v >= 0) {
		return &DomainError{Param: param, Value: v, Reason: "must not be negative"}
	}
	return nil
}

// Fraction returns a DomainError unless 0 <= v <= 1.
func Fraction(param string, v float64) error {
	if !(v >= 0 && v <= 1) {
		return &DomainError{Param: param, Value: v, Reason: "mole fraction must lie in [0, 1]"}
	}
	return nil
}

// Pressure checks an absolute pressure in psia.
func Pressure(param string, p float64) error {
	return Positive(param, p)
}

// Temperature checks an absolute temperature in °R.
func Temperature(param string, t float64) error {
	if !(t > 0) {
		return &DomainError{Param: param, Value: t, Reason: "temperature must be above absolute zero (°R)"}
	}
	return nil
}

// FirstError returns the first non-nil error.
func FirstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
