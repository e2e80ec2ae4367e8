// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TinyApp Contributors

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tinyapp/tinyapp/internal/config"
	"github.com/tinyapp/tinyapp/internal/logging"
	"github.com/tinyapp/tinyapp/internal/xdg"
)

const serviceName = "tinyapp"

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the tinyapp CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tinyapp",
		Short: "tinyapp - credential validation",
		Long: `tinyapp validates usernames and passwords.

A username has 4 to 10 letters and starts with an uppercase letter.
Password rules come from the config file and flags; run "tinyapp policy"
to see the rules in effect.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (default: XDG_CONFIG_HOME/tinyapp/config.yaml if present)")
	cmd.PersistentFlags().String(config.FlagLogFormat, config.LogFormatJSON, "log format (json or text)")

	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewCheckFileCmd())
	cmd.AddCommand(NewPolicyCmd())

	return cmd
}

// loadSettings resolves the config file, loads configuration with the
// command's flags applied, and builds a logger writing to the command's
// error stream.
func loadSettings(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path := configFile
	if path == "" {
		path = xdg.ExistingConfigFile()
	}

	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}

	logger := logging.Setup(serviceName, version, cfg.Log.Format, cmd.ErrOrStderr())
	if path != "" {
		logger.Debug("loaded config", "path", path)
	}
	return cfg, logger, nil
}
