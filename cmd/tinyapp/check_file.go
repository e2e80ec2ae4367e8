// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TinyApp Contributors

package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/tinyapp/tinyapp/internal/config"
	"github.com/tinyapp/tinyapp/internal/credentials"
)

// checkFileConfig holds configuration for the check-file command.
type checkFileConfig struct {
	jsonOutput bool
	metricsOut string
}

// NewCheckFileCmd creates the check-file subcommand.
func NewCheckFileCmd() *cobra.Command {
	cfg := &checkFileConfig{}

	cmd := &cobra.Command{
		Use:   "check-file FILE",
		Short: "Validate username:password lines from a file",
		Long: `Validate every "username:password" line of FILE ("-" reads stdin).
Blank lines and lines starting with # are skipped. The password is the text
after the first colon and may itself contain colons.

Exits non-zero if any line is invalid. Passwords are never printed.

With --metrics-out the validation counters are written in Prometheus text
format, suitable for the node_exporter textfile collector.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckFile(cmd, cfg, args[0])
		},
	}

	cmd.Flags().BoolVar(&cfg.jsonOutput, "json", false, "output results as JSON")
	cmd.Flags().StringVar(&cfg.metricsOut, "metrics-out", "", "write validation metrics to this file")
	config.BindPolicyFlags(cmd.Flags())

	return cmd
}

// runCheckFile executes the check-file command.
func runCheckFile(cmd *cobra.Command, cfg *checkFileConfig, name string) error {
	settings, logger, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	policy, err := settings.Policy()
	if err != nil {
		return err
	}

	var r io.Reader = cmd.InOrStdin()
	if name != "-" {
		f, err := os.Open(name) //nolint:gosec // path is supplied by the operator
		if err != nil {
			return oops.Code("CHECK_FILE_OPEN_FAILED").With("path", name).Wrap(err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	results, err := checkLines(policy, r)
	if err != nil {
		return oops.Code("CHECK_FILE_READ_FAILED").With("path", name).Wrap(err)
	}

	var output string
	if cfg.jsonOutput {
		output, err = formatResultsJSON(results)
		if err != nil {
			return err
		}
	} else {
		output = formatResultsTable(results)
	}
	_, _ = fmt.Fprint(cmd.OutOrStdout(), output)

	if cfg.metricsOut != "" {
		if err := writeMetrics(cfg.metricsOut); err != nil {
			return err
		}
	}

	invalid := 0
	for _, res := range results {
		if !res.Valid {
			invalid++
			logger.WarnContext(cmd.Context(), "credentials rejected",
				"line", res.Line, "username", res.Username, "field", res.Field, "code", res.Code)
		}
	}
	logger.InfoContext(cmd.Context(), "check-file complete", "total", len(results), "invalid", invalid)

	if invalid > 0 {
		return oops.Code("CHECK_FILE_INVALID").
			With("invalid", invalid).
			With("total", len(results)).
			Errorf("%d of %d entries invalid", invalid, len(results))
	}
	return nil
}

// checkLines validates each username:password line read from r.
func checkLines(policy *credentials.Policy, r io.Reader) ([]CheckResult, error) {
	var results []CheckResult
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}

		username, password, ok := strings.Cut(line, ":")
		if !ok {
			// The line may be a bare password; do not echo it.
			results = append(results, CheckResult{
				Line:   lineNo,
				Reason: "expected username:password",
			})
			continue
		}

		_, err := policy.New(username, password)
		res := newCheckResult(username, err)
		res.Line = lineNo
		results = append(results, res)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// formatResultsTable formats results as a human-readable table.
func formatResultsTable(results []CheckResult) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(w, "LINE\tUSERNAME\tRESULT\tFIELD\tREASON")
	_, _ = fmt.Fprintln(w, "----\t--------\t------\t-----\t------")
	for _, res := range results {
		if res.Valid {
			_, _ = fmt.Fprintf(w, "%d\t%s\tvalid\t-\t-\n", res.Line, res.Username)
			continue
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\tinvalid\t%s\t%s\n",
			res.Line, orDash(res.Username), orDash(res.Field), res.Reason)
	}

	_ = w.Flush()
	return sb.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// formatResultsJSON formats results as indented JSON.
func formatResultsJSON(results []CheckResult) (string, error) {
	if results == nil {
		results = []CheckResult{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal results: %w", err)
	}
	return string(data) + "\n", nil
}

// writeMetrics writes the credentials metrics to path in text format.
func writeMetrics(path string) error {
	reg := prometheus.NewRegistry()
	credentials.RegisterMetrics(reg)
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return oops.Code("CHECK_FILE_METRICS_FAILED").With("path", path).Wrap(err)
	}
	return nil
}
