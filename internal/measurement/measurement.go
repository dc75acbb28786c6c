// Package measurement holds the physical readings of a package and the
// rules for turning operator input into them.
package measurement

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Field names used in errors and logs
const (
	FieldWidth  = "width"
	FieldHeight = "height"
	FieldLength = "length"
	FieldMass   = "mass"
)

var (
	// ErrNotPositive is returned for any reading that is zero, negative or NaN.
	ErrNotPositive = errors.New("all dimensions and mass must be positive values")
	// ErrNotANumber is returned when text input cannot be parsed as a finite number.
	ErrNotANumber = errors.New("not a valid number")
)

// Measurements contains the four readings taken for one package
type Measurements struct {
	Width  float64 `json:"width_cm"`
	Height float64 `json:"height_cm"`
	Length float64 `json:"length_cm"`
	Mass   float64 `json:"mass_kg"`
}

// FieldError reports which reading failed validation
type FieldError struct {
	Field string
	Value float64
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s = %v: %v", e.Field, e.Value, ErrNotPositive)
}

// Unwrap lets callers match the error with errors.Is(err, ErrNotPositive)
func (e *FieldError) Unwrap() error {
	return ErrNotPositive
}

// Validate returns a *FieldError for the first reading that is not strictly
// positive, checking width, height, length and mass in that order.
func (m Measurements) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{FieldWidth, m.Width},
		{FieldHeight, m.Height},
		{FieldLength, m.Length},
		{FieldMass, m.Mass},
	}

	for _, f := range fields {
		if !IsPositive(f.value) {
			return &FieldError{Field: f.name, Value: f.value}
		}
	}
	return nil
}

// Volume returns width * height * length
func (m Measurements) Volume() float64 {
	return m.Width * m.Height * m.Length
}

// IsPositive reports whether v is strictly greater than zero. NaN is not.
func IsPositive(v float64) bool {
	return v > 0
}

// ParseValue converts a single line of operator input into a reading.
// Surrounding whitespace is ignored.
func ParseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrNotANumber
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q: %w", s, ErrNotANumber)
	}

	if !IsPositive(v) {
		return 0, fmt.Errorf("%v: %w", v, ErrNotPositive)
	}
	return v, nil
}
