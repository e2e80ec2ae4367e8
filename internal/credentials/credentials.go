// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TinyApp Contributors

package credentials

import (
	"log/slog"
	"sync"
)

// Credentials holds a username and password that always satisfy the policy
// they were created under. Create values with New or Policy.New; the zero
// value holds no valid credentials.
type Credentials struct {
	mu       sync.RWMutex
	username string
	password string
	policy   *Policy
}

// New creates Credentials under DefaultPolicy.
// The username is validated before the password.
func New(username, password string) (*Credentials, error) {
	return defaultPolicy.New(username, password)
}

// Username returns the current username.
func (c *Credentials) Username() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.username
}

// Password returns the current password.
func (c *Credentials) Password() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.password
}

// Policy returns the policy the credentials are validated against.
func (c *Credentials) Policy() *Policy {
	if c.policy == nil {
		return defaultPolicy
	}
	return c.policy
}

// SetUsername replaces the username if it is valid.
// On error the current username is kept.
func (c *Credentials) SetUsername(username string) error {
	if err := c.Policy().ValidateUsername(username); err != nil {
		return err
	}
	c.mu.Lock()
	c.username = username
	c.mu.Unlock()
	return nil
}

// SetPassword replaces the password if it is valid.
// On error the current password is kept.
func (c *Credentials) SetPassword(password string) error {
	if err := c.Policy().ValidatePassword(password); err != nil {
		return err
	}
	c.mu.Lock()
	c.password = password
	c.mu.Unlock()
	return nil
}

// Clone returns an independent copy bound to the same policy.
func (c *Credentials) Clone() *Credentials {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return &Credentials{
		username: c.username,
		password: c.password,
		policy:   c.policy,
	}
}

// Equal reports whether both values hold the same username and password.
func (c *Credentials) Equal(other *Credentials) bool {
	if c == other {
		return true
	}
	if c == nil || other == nil {
		return false
	}
	u, p := other.snapshot()
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.username == u && c.password == p
}

func (c *Credentials) snapshot() (string, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.username, c.password
}

// String describes the credentials by username only.
func (c *Credentials) String() string {
	return "Username: " + c.Username() + "."
}

// GoString keeps %#v from printing the password.
func (c *Credentials) GoString() string {
	return c.String()
}

// LogValue implements slog.LogValuer; only the username is logged.
func (c *Credentials) LogValue() slog.Value {
	return slog.GroupValue(slog.String("username", c.Username()))
}
