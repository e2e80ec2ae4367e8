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

// Username length constraints, counted in runes.
const (
	MinUsernameLength = 4
	MaxUsernameLength = 10
)

// ValidateUsername validates a username against rules.
// Username requirements:
// - Length: MinUsernameLength to MaxUsernameLength characters
// - Letters only
// - First letter uppercase
func ValidateUsername(username string) error {
	err := validateUsername(username)
	recordValidation(FieldUsername, err)
	return err
}

// IsUsernameValid reports whether username satisfies ValidateUsername.
func IsUsernameValid(username string) bool {
	return ValidateUsername(username) == nil
}

func validateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return invalidUsername("username cannot be blank")
	}

	n := utf8.RuneCountInString(username)
	if n < MinUsernameLength {
		return oops.Code(CodeInvalidUsername).
			With("field", string(FieldUsername)).
			With("min", MinUsernameLength).
			Wrap(&ValidationError{
				Field:  FieldUsername,
				Reason: fmt.Sprintf("must be at least %d characters", MinUsernameLength),
			})
	}
	if n > MaxUsernameLength {
		return oops.Code(CodeInvalidUsername).
			With("field", string(FieldUsername)).
			With("max", MaxUsernameLength).
			Wrap(&ValidationError{
				Field:  FieldUsername,
				Reason: fmt.Sprintf("must be at most %d characters", MaxUsernameLength),
			})
	}

	for i, r := range username {
		if !unicode.IsLetter(r) {
			return invalidUsername("must contain only letters")
		}
		if i == 0 && !unicode.IsUpper(r) {
			return invalidUsername("must start with an uppercase letter")
		}
	}
	return nil
}

func invalidUsername(reason string) error {
	return oops.Code(CodeInvalidUsername).
		With("field", string(FieldUsername)).
		Wrap(&ValidationError{Field: FieldUsername, Reason: reason})
}
