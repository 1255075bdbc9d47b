// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// Messages are rendered in the locale the Validator was created with, so the
// field errors returned to the browser are already translated.
package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/authgate/internal/platform/apperr"
	"github.com/taibuivan/authgate/internal/platform/i18n"
)

// MinPasswordLength is the only password rule; complexity is left to the backend.
const MinPasswordLength = 8

var (
	// emailRegex is a shape check only; deliverability is the backend's concern.
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// usernameRegex allows Han characters, ASCII letters, digits, underscore, hyphen and dot.
	usernameRegex = regexp.MustCompile(`^[\p{Han}a-zA-Z0-9_\-.]+$`)

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")
)

// IsEmail reports whether value has the shape of an email address.
func IsEmail(value string) bool {
	return emailRegex.MatchString(value)
}

// IsUsername reports whether value is a non-blank username of allowed characters.
func IsUsername(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}
	return usernameRegex.MatchString(value)
}

// IsPassword reports whether value meets the minimum length in characters.
func IsPassword(value string) bool {
	return utf8.RuneCountInString(value) >= MinPasswordLength
}

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	locale string
	errs   []apperr.FieldError
}

// New creates a Validator that renders messages in locale.
func New(locale string) *Validator {
	return &Validator{locale: locale}
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, i18n.KeyRequired)
	}
	return v
}

// Email fails if the value is not shaped like an email address.
// Blank values are left to [Validator.Required].
func (v *Validator) Email(field, value string) *Validator {
	if value != "" && !IsEmail(value) {
		v.add(field, i18n.KeyInvalidEmail)
	}
	return v
}

// Username fails if the value contains characters outside the allowed set.
func (v *Validator) Username(field, value string) *Validator {
	if value != "" && !IsUsername(value) {
		v.add(field, i18n.KeyInvalidUsername)
	}
	return v
}

// Password fails if the value is shorter than [MinPasswordLength] characters.
func (v *Validator) Password(field, value string) *Validator {
	if value != "" && !IsPassword(value) {
		v.add(field, i18n.KeyPasswordTooShort, MinPasswordLength)
	}
	return v
}

// Matches fails if confirm differs from value.
func (v *Validator) Matches(field, value, confirm string) *Validator {
	if value != confirm {
		v.add(field, i18n.KeyPasswordMismatch)
	}
	return v
}

// Custom adds a failure with a message key if the condition is true.
//
// # Example
//
//	v.Custom("identifier", !ok, i18n.KeyInvalidUsername)
func (v *Validator) Custom(field string, failed bool, key string) *Validator {
	if failed {
		v.add(field, key)
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
//
// This is the only output method. Call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError(i18n.T(v.locale, i18n.KeyValidationFailed), v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// add appends a [apperr.FieldError], keeping only the first failure per field.
func (v *Validator) add(field, key string, args ...any) {
	for _, existing := range v.errs {
		if existing.Field == field {
			return
		}
	}
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: i18n.T(v.locale, key, args...)})
}
