// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TinyApp Contributors

package credentials

import (
	"slices"
	"strings"

	"github.com/gobwas/glob"
	"github.com/samber/oops"
)

// PasswordRules configures the password predicate.
// Lengths are counted in runes. Denylist entries are glob patterns matched
// case-insensitively against the whole password.
type PasswordRules struct {
	MinLength     int      `json:"min_length,omitempty" koanf:"min_length" jsonschema:"minimum=1,description=Minimum password length in characters"`
	MaxLength     int      `json:"max_length,omitempty" koanf:"max_length" jsonschema:"minimum=1,description=Maximum password length in characters"`
	RequireUpper  bool     `json:"require_upper,omitempty" koanf:"require_upper" jsonschema:"description=Require an uppercase letter"`
	RequireLower  bool     `json:"require_lower,omitempty" koanf:"require_lower" jsonschema:"description=Require a lowercase letter"`
	RequireDigit  bool     `json:"require_digit,omitempty" koanf:"require_digit" jsonschema:"description=Require a digit"`
	RequireSymbol bool     `json:"require_symbol,omitempty" koanf:"require_symbol" jsonschema:"description=Require a punctuation or symbol character"`
	Denylist      []string `json:"denylist,omitempty" koanf:"denylist" jsonschema:"description=Glob patterns a password must not match"`
}

// Default password rules.
const (
	DefaultMinPasswordLength = 8
	DefaultMaxPasswordLength = 64
)

// DefaultDenylist returns the default denied password patterns.
func DefaultDenylist() []string {
	return []string{"*password*", "*qwerty*", "*123456*"}
}

// DefaultPasswordRules returns the rules used by DefaultPolicy.
func DefaultPasswordRules() PasswordRules {
	return PasswordRules{
		MinLength:    DefaultMinPasswordLength,
		MaxLength:    DefaultMaxPasswordLength,
		RequireUpper: true,
		RequireLower: true,
		RequireDigit: true,
		Denylist:     DefaultDenylist(),
	}
}

// Policy is a compiled set of credential rules. It is immutable and safe for
// concurrent use.
type Policy struct {
	rules PasswordRules
	deny  []glob.Glob
}

var defaultPolicy = mustPolicy(DefaultPasswordRules())

// DefaultPolicy returns the policy built from DefaultPasswordRules.
func DefaultPolicy() *Policy {
	return defaultPolicy
}

// NewPolicy compiles rules into a Policy.
func NewPolicy(rules PasswordRules) (*Policy, error) {
	if rules.MinLength < 1 {
		return nil, oops.Code(CodeInvalidPolicy).
			With("min_length", rules.MinLength).
			Errorf("min_length must be at least 1")
	}
	if rules.MaxLength < rules.MinLength {
		return nil, oops.Code(CodeInvalidPolicy).
			With("min_length", rules.MinLength).
			With("max_length", rules.MaxLength).
			Errorf("max_length must not be less than min_length")
	}

	deny := make([]glob.Glob, 0, len(rules.Denylist))
	for _, p := range rules.Denylist {
		g, err := glob.Compile(strings.ToLower(p))
		if err != nil {
			return nil, oops.Code(CodeInvalidPolicy).
				With("pattern", p).
				Wrapf(err, "invalid denylist pattern")
		}
		deny = append(deny, g)
	}

	rules.Denylist = slices.Clone(rules.Denylist)
	return &Policy{rules: rules, deny: deny}, nil
}

func mustPolicy(rules PasswordRules) *Policy {
	p, err := NewPolicy(rules)
	if err != nil {
		panic(err)
	}
	return p
}

// Rules returns a copy of the policy's password rules.
func (p *Policy) Rules() PasswordRules {
	r := p.rules
	r.Denylist = slices.Clone(p.rules.Denylist)
	return r
}

// ValidateUsername validates a username. Username rules are not configurable.
func (p *Policy) ValidateUsername(username string) error {
	return ValidateUsername(username)
}

// IsUsernameValid reports whether username is valid.
func (p *Policy) IsUsernameValid(username string) bool {
	return p.ValidateUsername(username) == nil
}

// ValidatePassword validates a password against the policy's rules.
func (p *Policy) ValidatePassword(password string) error {
	err := p.validatePassword(password)
	recordValidation(FieldPassword, err)
	return err
}

// IsPasswordValid reports whether password is valid under the policy.
func (p *Policy) IsPasswordValid(password string) bool {
	return p.ValidatePassword(password) == nil
}

// New creates Credentials bound to this policy. The username is checked first.
func (p *Policy) New(username, password string) (*Credentials, error) {
	if err := p.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := p.ValidatePassword(password); err != nil {
		return nil, err
	}
	return &Credentials{
		username: username,
		password: password,
		policy:   p,
	}, nil
}
