// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TinyApp Contributors

package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/tinyapp/tinyapp/internal/config"
	"github.com/tinyapp/tinyapp/internal/credentials"
	"github.com/tinyapp/tinyapp/pkg/errutil"
)

// checkConfig holds configuration for the check command.
type checkConfig struct {
	username      string
	password      string
	passwordStdin bool
	jsonOutput    bool
}

// CheckResult is the outcome of validating one pair of credentials.
type CheckResult struct {
	Line     int    `json:"line,omitempty"`
	Username string `json:"username"`
	Valid    bool   `json:"valid"`
	Field    string `json:"field,omitempty"`
	Reason   string `json:"reason,omitempty"`
	Code     string `json:"code,omitempty"`
}

// NewCheckCmd creates the check subcommand.
func NewCheckCmd() *cobra.Command {
	cfg := &checkConfig{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a username and password",
		Long: `Validate a username and password against the configured rules.

Prints the credentials description on success. On failure prints the
rejected field and reason and exits non-zero. The password is never printed.
Prefer --password-stdin over --password to keep the password out of the
process list and shell history.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.username, "username", "", "username to validate")
	cmd.Flags().StringVar(&cfg.password, "password", "", "password to validate")
	cmd.Flags().BoolVar(&cfg.passwordStdin, "password-stdin", false, "read the password from the first line of stdin")
	cmd.Flags().BoolVar(&cfg.jsonOutput, "json", false, "output result as JSON")
	config.BindPolicyFlags(cmd.Flags())

	_ = cmd.MarkFlagRequired("username")
	cmd.MarkFlagsMutuallyExclusive("password", "password-stdin")

	return cmd
}

// runCheck executes the check command.
func runCheck(cmd *cobra.Command, cfg *checkConfig) error {
	settings, logger, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	policy, err := settings.Policy()
	if err != nil {
		return err
	}

	password := cfg.password
	if cfg.passwordStdin {
		password, err = readPassword(cmd.InOrStdin())
		if err != nil {
			return err
		}
	}

	creds, checkErr := policy.New(cfg.username, password)
	result := newCheckResult(cfg.username, checkErr)

	if cfg.jsonOutput {
		data, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to format JSON: %w", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	} else if checkErr == nil {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), creds.String())
	} else {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "invalid %s: %s\n", result.Field, result.Reason)
	}

	if checkErr != nil {
		errutil.LogError(cmd.Context(), logger, "credentials rejected", checkErr)
		return checkErr
	}
	logger.InfoContext(cmd.Context(), "credentials valid", "credentials", creds)
	return nil
}

// newCheckResult describes the outcome of validating username.
func newCheckResult(username string, err error) CheckResult {
	result := CheckResult{Username: username, Valid: err == nil}
	if err == nil {
		return result
	}

	result.Code = errutil.Code(err)
	var verr *credentials.ValidationError
	if errors.As(err, &verr) {
		result.Field = string(verr.Field)
		result.Reason = verr.Reason
	} else {
		result.Reason = err.Error()
	}
	return result
}

// readPassword reads the first line of r without its line terminator.
func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", oops.Code("CHECK_STDIN_FAILED").Wrap(err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
