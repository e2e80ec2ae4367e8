// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TinyApp Contributors

package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tinyapp/tinyapp/internal/config"
	"github.com/tinyapp/tinyapp/internal/credentials"
)

// PolicyView is the printable form of the rules in effect.
type PolicyView struct {
	UsernameMinLength int      `json:"username_min_length"`
	UsernameMaxLength int      `json:"username_max_length"`
	MinLength         int      `json:"min_length"`
	MaxLength         int      `json:"max_length"`
	RequireUpper      bool     `json:"require_upper"`
	RequireLower      bool     `json:"require_lower"`
	RequireDigit      bool     `json:"require_digit"`
	RequireSymbol     bool     `json:"require_symbol"`
	Denylist          []string `json:"denylist"`
}

// policyConfig holds configuration for the policy command.
type policyConfig struct {
	jsonOutput bool
}

// NewPolicyCmd creates the policy subcommand.
func NewPolicyCmd() *cobra.Command {
	cfg := &policyConfig{}

	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Show the credential rules in effect",
		Long:  `Show the username and password rules after applying the config file and flags.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPolicy(cmd, cfg)
		},
	}

	cmd.Flags().BoolVar(&cfg.jsonOutput, "json", false, "output rules as JSON")
	config.BindPolicyFlags(cmd.Flags())

	return cmd
}

// runPolicy executes the policy command.
func runPolicy(cmd *cobra.Command, cfg *policyConfig) error {
	settings, _, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	policy, err := settings.Policy()
	if err != nil {
		return err
	}
	view := newPolicyView(policy)

	var output string
	if cfg.jsonOutput {
		data, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format JSON: %w", err)
		}
		output = string(data) + "\n"
	} else {
		output = formatPolicyTable(view)
	}
	_, _ = fmt.Fprint(cmd.OutOrStdout(), output)
	return nil
}

func newPolicyView(p *credentials.Policy) PolicyView {
	rules := p.Rules()
	denylist := rules.Denylist
	if denylist == nil {
		denylist = []string{}
	}
	return PolicyView{
		UsernameMinLength: credentials.MinUsernameLength,
		UsernameMaxLength: credentials.MaxUsernameLength,
		MinLength:         rules.MinLength,
		MaxLength:         rules.MaxLength,
		RequireUpper:      rules.RequireUpper,
		RequireLower:      rules.RequireLower,
		RequireDigit:      rules.RequireDigit,
		RequireSymbol:     rules.RequireSymbol,
		Denylist:          denylist,
	}
}

// formatPolicyTable formats the rules as a two-column table.
func formatPolicyTable(v PolicyView) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(w, "RULE\tVALUE")
	_, _ = fmt.Fprintln(w, "----\t-----")
	_, _ = fmt.Fprintf(w, "username\t%d-%d letters, first uppercase\n", v.UsernameMinLength, v.UsernameMaxLength)
	_, _ = fmt.Fprintf(w, "password length\t%d-%d\n", v.MinLength, v.MaxLength)
	_, _ = fmt.Fprintf(w, "require upper\t%t\n", v.RequireUpper)
	_, _ = fmt.Fprintf(w, "require lower\t%t\n", v.RequireLower)
	_, _ = fmt.Fprintf(w, "require digit\t%t\n", v.RequireDigit)
	_, _ = fmt.Fprintf(w, "require symbol\t%t\n", v.RequireSymbol)
	denied := "-"
	if len(v.Denylist) > 0 {
		denied = strings.Join(v.Denylist, ", ")
	}
	_, _ = fmt.Fprintf(w, "denylist\t%s\n", denied)

	_ = w.Flush()
	return sb.String()
}
