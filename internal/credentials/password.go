// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TinyApp Contributors

package credentials

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/oops"
)

// ValidatePassword validates a password against DefaultPolicy.
func ValidatePassword(password string) error {
	return defaultPolicy.ValidatePassword(password)
}

// IsPasswordValid reports whether password is valid under DefaultPolicy.
func IsPasswordValid(password string) bool {
	return defaultPolicy.IsPasswordValid(password)
}

// validatePassword applies, in order: blank check, encoding, control
// characters, length, character classes, denylist.
func (p *Policy) validatePassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return invalidPassword("password cannot be blank")
	}
	if !utf8.ValidString(password) {
		return invalidPassword("must be valid UTF-8")
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsControl(r):
			return invalidPassword("must not contain control characters")
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}

	n := utf8.RuneCountInString(password)
	if n < p.rules.MinLength {
		return oops.Code(CodeInvalidPassword).
			With("field", string(FieldPassword)).
			With("min", p.rules.MinLength).
			Wrap(&ValidationError{
				Field:  FieldPassword,
				Reason: fmt.Sprintf("must be at least %d characters", p.rules.MinLength),
			})
	}
	if n > p.rules.MaxLength {
		return oops.Code(CodeInvalidPassword).
			With("field", string(FieldPassword)).
			With("max", p.rules.MaxLength).
			Wrap(&ValidationError{
				Field:  FieldPassword,
				Reason: fmt.Sprintf("must be at most %d characters", p.rules.MaxLength),
			})
	}

	switch {
	case p.rules.RequireUpper && !hasUpper:
		return invalidPassword("must contain an uppercase letter")
	case p.rules.RequireLower && !hasLower:
		return invalidPassword("must contain a lowercase letter")
	case p.rules.RequireDigit && !hasDigit:
		return invalidPassword("must contain a digit")
	case p.rules.RequireSymbol && !hasSymbol:
		return invalidPassword("must contain a symbol")
	}

	// A denylist entry may be a literal password, so only its index is reported.
	lower := strings.ToLower(password)
	for i, g := range p.deny {
		if g.Match(lower) {
			return oops.Code(CodeInvalidPassword).
				With("field", string(FieldPassword)).
				With("denylist_index", i).
				Wrap(&ValidationError{Field: FieldPassword, Reason: "matches a denied pattern"})
		}
	}
	return nil
}

func invalidPassword(reason string) error {
	return oops.Code(CodeInvalidPassword).
		With("field", string(FieldPassword)).
		Wrap(&ValidationError{Field: FieldPassword, Reason: reason})
}
