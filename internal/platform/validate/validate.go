// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package validate collects field-level problems in an upstream gallery payload
and reports them together as one VALIDATION_ERROR.

Field names are the payload's JSON paths ("id", "upload_date", "tags[3].name")
so an importer can locate the offending value without reading server logs.

	err := (&validate.Validator{}).
		Positive("id", id).
		Required("tags[0].type", tagType).
		Err()

A Validator is single-use and not safe for concurrent use.
*/
package validate

import (
	"strings"

	"github.com/taibuivan/yomira-galleryinfo/internal/platform/apperr"
)

const summary = "Validation failed"

// ErrInvalidJSON marks a body that is not a JSON document at all.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// Validator accumulates [apperr.FieldError] values through chained rule calls.
type Validator struct {
	problems []apperr.FieldError
}

// Required fails when value is empty after trimming whitespace.
func (v *Validator) Required(field, value string) *Validator {
	return v.Custom(field, strings.TrimSpace(value) == "", "This field is required")
}

// Positive fails for zero and negative values. Gallery IDs and unix upload
// dates are both strictly positive.
func (v *Validator) Positive(field string, value int64) *Validator {
	return v.Custom(field, value <= 0, "Must be a positive integer")
}

// Custom records message against field when failed is true.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.problems = append(v.problems, apperr.FieldError{Field: field, Message: message})
	}
	return v
}

// HasErrors reports whether any rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.problems) > 0
}

// Err ends the chain: nil when every rule passed, otherwise one
// VALIDATION_ERROR listing the failures in the order they were found.
func (v *Validator) Err() error {
	if !v.HasErrors() {
		return nil
	}
	return apperr.ValidationError(summary, v.problems...)
}

// RequiredError builds a single-field VALIDATION_ERROR outside a chain.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError(summary, apperr.FieldError{Field: field, Message: message})
}
