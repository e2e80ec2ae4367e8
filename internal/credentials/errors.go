// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TinyApp Contributors

package credentials

import (
	"errors"
	"fmt"
)

// Field names a credentials field.
type Field string

// Credential fields.
const (
	FieldUsername Field = "username"
	FieldPassword Field = "password"
)

// Error codes carried by oops errors returned from this package.
const (
	CodeInvalidUsername = "CREDENTIALS_INVALID_USERNAME"
	CodeInvalidPassword = "CREDENTIALS_INVALID_PASSWORD"
	CodeInvalidPolicy   = "CREDENTIALS_INVALID_POLICY"
)

// ValidationError reports which field was rejected and why.
// Reason never contains the rejected value.
type ValidationError struct {
	Field  Field
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// FieldOf returns the field named by the ValidationError in err's chain.
func FieldOf(err error) (Field, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Field, true
	}
	return "", false
}
