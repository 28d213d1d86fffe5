package validation

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Error collects per-field validation messages.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}

// fields accumulates the first failure per field.
type fields map[string]string

func (f fields) fail(field, format string, args ...any) {
	if _, ok := f[field]; !ok {
		f[field] = fmt.Sprintf(format, args...)
	}
}

func (f fields) between(field string, v, lo, hi float64) {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		f.fail(field, "%s must be a finite number", field)
	case v < lo || v > hi:
		f.fail(field, "%s must be between %g and %g", field, lo, hi)
	}
}

// rate accepts percentages in (0, hi].
func (f fields) rate(field string, v, hi float64) {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		f.fail(field, "%s must be a finite number", field)
	case v <= 0:
		f.fail(field, "%s must be greater than zero", field)
	case v > hi:
		f.fail(field, "%s must be %g or less", field, hi)
	}
}

func (f fields) amount(field string, v, max float64) {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		f.fail(field, "%s must be a finite number", field)
	case v < 0:
		f.fail(field, "%s cannot be negative", field)
	case v > max:
		f.fail(field, "%s is too high", field)
	}
}

func (f fields) err() error {
	if len(f) > 0 {
		return &Error{Fields: f}
	}
	return nil
}

// merge copies the field errors of err into f under prefix.
func (f fields) merge(prefix string, err error) {
	if err == nil {
		return
	}
	if ve, ok := err.(*Error); ok {
		for k, v := range ve.Fields {
			f.fail(prefix+k, "%s", v)
		}
		return
	}
	f.fail(strings.TrimSuffix(prefix, "."), "%s", err.Error())
}
