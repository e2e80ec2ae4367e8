// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TinyApp Contributors

package credentials_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/tinyapp/tinyapp/internal/credentials"
	"github.com/tinyapp/tinyapp/pkg/errutil"
)

const (
	validUsername = "Alice"
	validPassword = "Secr3tive"
)

func TestNew(t *testing.T) {
	t.Run("creates valid credentials", func(t *testing.T) {
		c, err := credentials.New(validUsername, validPassword)
		require.NoError(t, err)
		require.NotNil(t, c)

		assert.Equal(t, validUsername, c.Username())
		assert.Equal(t, validPassword, c.Password())
		assert.Same(t, credentials.DefaultPolicy(), c.Policy())
	})

	t.Run("rejects invalid username", func(t *testing.T) {
		c, err := credentials.New("al", validPassword)
		assert.Nil(t, c)
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, credentials.CodeInvalidUsername)
	})

	t.Run("checks username before password", func(t *testing.T) {
		c, err := credentials.New("al", "")
		assert.Nil(t, c)
		field, ok := credentials.FieldOf(err)
		require.True(t, ok)
		assert.Equal(t, credentials.FieldUsername, field)
	})

	t.Run("rejects invalid password", func(t *testing.T) {
		c, err := credentials.New(validUsername, "   ")
		assert.Nil(t, c)
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, credentials.CodeInvalidPassword)

		var verr *credentials.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, credentials.FieldPassword, verr.Field)
		assert.NotEmpty(t, verr.Reason)
	})
}

func TestPolicyNew_BindsPolicy(t *testing.T) {
	p, err := credentials.NewPolicy(credentials.PasswordRules{MinLength: 4, MaxLength: 16})
	require.NoError(t, err)

	c, err := p.New(validUsername, "abcd")
	require.NoError(t, err)
	assert.Same(t, p, c.Policy())

	require.NoError(t, c.SetPassword("wxyz"))
	assert.Equal(t, "wxyz", c.Password())
}

func TestCredentials_SetUsername(t *testing.T) {
	t.Run("replaces valid username", func(t *testing.T) {
		c, err := credentials.New(validUsername, validPassword)
		require.NoError(t, err)

		require.NoError(t, c.SetUsername("Bobby"))
		assert.Equal(t, "Bobby", c.Username())
		assert.Equal(t, "Username: Bobby.", c.String())
	})

	t.Run("keeps username on failure", func(t *testing.T) {
		c, err := credentials.New(validUsername, validPassword)
		require.NoError(t, err)

		for _, bad := range []string{"", "   ", "Al", "alice", "Alice123", "Abcdefghijk"} {
			err := c.SetUsername(bad)
			require.Error(t, err, "username %q", bad)
			errutil.AssertErrorCode(t, err, credentials.CodeInvalidUsername)
			assert.Equal(t, validUsername, c.Username())
			assert.Equal(t, "Username: Alice.", c.String())
		}
	})
}

func TestCredentials_SetPassword(t *testing.T) {
	t.Run("replaces valid password", func(t *testing.T) {
		c, err := credentials.New(validUsername, validPassword)
		require.NoError(t, err)

		require.NoError(t, c.SetPassword("N3wSecret"))
		assert.Equal(t, "N3wSecret", c.Password())
	})

	t.Run("keeps password on failure", func(t *testing.T) {
		c, err := credentials.New(validUsername, validPassword)
		require.NoError(t, err)

		for _, bad := range []string{"", "\t", "short1A", "MyPassword1"} {
			err := c.SetPassword(bad)
			require.Error(t, err)
			errutil.AssertErrorCode(t, err, credentials.CodeInvalidPassword)
			assert.Equal(t, validPassword, c.Password())
		}
	})
}

func TestCredentials_DescribeHidesPassword(t *testing.T) {
	c, err := credentials.New(validUsername, validPassword)
	require.NoError(t, err)

	assert.Equal(t, "Username: Alice.", c.String())
	assert.NotContains(t, c.String(), validPassword)
	assert.NotContains(t, fmt.Sprintf("%v", c), validPassword)
	assert.NotContains(t, fmt.Sprintf("%+v", c), validPassword)
	assert.NotContains(t, fmt.Sprintf("%#v", c), validPassword)
}

func TestCredentials_LogValue(t *testing.T) {
	c, err := credentials.New(validUsername, validPassword)
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	logger.Info("login", "credentials", c)

	assert.NotContains(t, buf.String(), validPassword)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	group, ok := entry["credentials"].(map[string]any)
	require.True(t, ok, "credentials should log as a group")
	assert.Equal(t, validUsername, group["username"])
}

func TestCredentials_Clone(t *testing.T) {
	c, err := credentials.New(validUsername, validPassword)
	require.NoError(t, err)

	clone := c.Clone()
	assert.True(t, c.Equal(clone))
	assert.Same(t, c.Policy(), clone.Policy())

	require.NoError(t, clone.SetUsername("Bobby"))
	assert.Equal(t, validUsername, c.Username())
	assert.False(t, c.Equal(clone))
}

func TestCredentials_Equal(t *testing.T) {
	a, err := credentials.New(validUsername, validPassword)
	require.NoError(t, err)
	b, err := credentials.New(validUsername, validPassword)
	require.NoError(t, err)
	other, err := credentials.New(validUsername, "Different9")
	require.NoError(t, err)

	assert.True(t, a.Equal(a))
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(other))
	assert.False(t, a.Equal(nil))
}

func TestCredentials_ConcurrentMutation(t *testing.T) {
	defer goleak.VerifyNone(t)

	c, err := credentials.New(validUsername, validPassword)
	require.NoError(t, err)

	usernames := []string{"Alice", "Bobby", "x", "Carol", "carol", "Dave1"}
	passwords := []string{"Secr3tive", "", "Other5ecret", "weak"}

	var (
		wg      sync.WaitGroup
		invalid sync.Map
	)
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				_ = c.SetUsername(usernames[(i+w)%len(usernames)])
				_ = c.SetPassword(passwords[(i+w)%len(passwords)])
			}
		}(w)
	}
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				if u := c.Username(); !credentials.IsUsernameValid(u) {
					invalid.Store(u, true)
				}
				if p := c.Password(); !credentials.IsPasswordValid(p) {
					invalid.Store("password", true)
				}
			}
		}()
	}
	wg.Wait()

	var seen []any
	invalid.Range(func(k, _ any) bool {
		seen = append(seen, k)
		return true
	})
	assert.Empty(t, seen, "readers observed invalid values")
}
