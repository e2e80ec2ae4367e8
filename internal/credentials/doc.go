// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TinyApp Contributors

// Package credentials provides a validated username/password value.
//
// # Rules
//
// A username consists of letters only, is 4 to 10 characters long and starts
// with an uppercase letter. Password rules come from a Policy; DefaultPolicy
// requires 8 to 64 characters with at least one uppercase letter, one
// lowercase letter and one digit, and rejects common patterns such as
// "*password*". Blank values are always rejected.
//
// # Credentials
//
// Credentials values are created with New or Policy.New, which validate the
// username and then the password. SetUsername and SetPassword validate before
// committing, so a Credentials value never holds an invalid field. A failed
// setter leaves the value unchanged.
//
// Direct struct initialization bypasses validation; the zero value is not a
// usable credential.
//
// # Errors
//
// Validation failures are oops errors coded CREDENTIALS_INVALID_USERNAME or
// CREDENTIALS_INVALID_PASSWORD wrapping a *ValidationError. Use FieldOf or
// errors.As to find the rejected field.
package credentials
