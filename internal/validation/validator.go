// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

// Package validation provides struct validation using
// go-playground/validator v10 through a thread-safe singleton instance,
// plus the custom validators the recommendation types rely on.
//
// Custom validators:
//   - finite_nonneg: float is finite (not NaN or Inf) and >= 0. Signal
//     weights use this; a NaN weight would silently poison every final
//     score downstream, so it is rejected at the boundary instead.
package validation

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is one field validation failure.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

// Error returns a human-readable message.
func (e *FieldError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("field %s failed %s=%s", e.Field, e.Tag, e.Param)
	}
	return fmt.Sprintf("field %s failed %s", e.Field, e.Tag)
}

// StructError collects every field failure from one ValidateStruct call.
type StructError struct {
	Fields []FieldError
}

// Error implements the error interface with a combined message.
func (e *StructError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e.Fields))
	for i := range e.Fields {
		msgs = append(msgs, e.Fields[i].Error())
	}
	return strings.Join(msgs, "; ")
}

// getValidator returns the singleton, initializing it on first use. The
// singleton caches struct metadata, so reuse matters for throughput.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Registration only fails for an empty tag or nil func.
		if err := validate.RegisterValidation("finite_nonneg", validateFiniteNonNeg); err != nil {
			panic(fmt.Sprintf("validation: register finite_nonneg: %v", err))
		}
	})
	return validate
}

// ValidateStruct validates a struct against its `validate` tags. Returns
// nil on success, a *StructError describing every failed field otherwise.
func ValidateStruct(s interface{}) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return fmt.Errorf("validation: invalid argument: %w", err)
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &StructError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field: fe.Field(),
			Tag:   fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}

// validateFiniteNonNeg accepts finite floats >= 0.
func validateFiniteNonNeg(fl validator.FieldLevel) bool {
	v := fl.Field().Float()
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
