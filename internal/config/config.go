// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TinyApp Contributors

// Package config loads tinyapp configuration from a YAML file and CLI flags.
package config

import (
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/tinyapp/tinyapp/internal/credentials"
)

// Log formats.
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Flag names bound to config keys.
const (
	FlagLogFormat         = "log-format"
	FlagMinPasswordLength = "min-password-length"
	FlagMaxPasswordLength = "max-password-length"
)

var flagKeys = map[string]string{
	FlagLogFormat:         "log.format",
	FlagMinPasswordLength: "password.min_length",
	FlagMaxPasswordLength: "password.max_length",
}

// LogConfig configures logging.
type LogConfig struct {
	Format string `json:"format,omitempty" koanf:"format" jsonschema:"enum=json,enum=text,description=Log output format"`
}

// Config is the tinyapp configuration file.
type Config struct {
	Log      LogConfig                 `json:"log,omitempty" koanf:"log"`
	Password credentials.PasswordRules `json:"password,omitempty" koanf:"password"`
}

// Default returns the configuration used when no file or flag overrides it.
func Default() Config {
	return Config{
		Log:      LogConfig{Format: LogFormatJSON},
		Password: credentials.DefaultPasswordRules(),
	}
}

// Validate checks that the configuration is valid.
func (c Config) Validate() error {
	if c.Log.Format != LogFormatJSON && c.Log.Format != LogFormatText {
		return oops.Code("CONFIG_INVALID").
			With("log_format", c.Log.Format).
			Errorf("log format must be 'json' or 'text', got %q", c.Log.Format)
	}
	if _, err := credentials.NewPolicy(c.Password); err != nil {
		return invalidRules(err)
	}
	return nil
}

// Policy builds the credentials policy described by the configuration.
func (c Config) Policy() (*credentials.Policy, error) {
	p, err := credentials.NewPolicy(c.Password)
	if err != nil {
		return nil, invalidRules(err)
	}
	return p, nil
}

// invalidRules reports bad password rules as CONFIG_INVALID. oops takes the
// code of the innermost error, so the policy error is flattened, not wrapped.
func invalidRules(err error) error {
	builder := oops.Code("CONFIG_INVALID")
	if oopsErr, ok := oops.AsOops(err); ok {
		for k, v := range oopsErr.Context() {
			builder = builder.With(k, v)
		}
	}
	return builder.Errorf("invalid password rules: %s", err.Error())
}

// BindPolicyFlags registers flags that override password rules.
// Only flags set on the command line are applied by Load.
func BindPolicyFlags(fs *pflag.FlagSet) {
	fs.Int(FlagMinPasswordLength, credentials.DefaultMinPasswordLength, "minimum password length")
	fs.Int(FlagMaxPasswordLength, credentials.DefaultMaxPasswordLength, "maximum password length")
}

// Load builds a Config from defaults, the YAML file at path (if non-empty)
// and any changed flags in fs (if non-nil), in that order of precedence.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, oops.Code("CONFIG_READ_FAILED").With("path", path).Wrap(err)
		}
		if err := ValidateSchema(data); err != nil {
			return nil, oops.Code("CONFIG_SCHEMA_INVALID").With("path", path).Wrap(err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_READ_FAILED").With("path", path).Wrap(err)
		}
	}

	if fs != nil {
		if err := k.Load(posflag.ProviderWithFlag(fs, ".", k, changedFlag), nil); err != nil {
			return nil, oops.Code("CONFIG_READ_FAILED").Wrapf(err, "load flags")
		}
	}

	cfg := Default()
	// Slices are merged element-wise on unmarshal; a configured denylist
	// replaces the default one.
	if k.Exists("password.denylist") {
		cfg.Password.Denylist = nil
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.Code("CONFIG_INVALID").Wrap(err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// changedFlag maps explicitly set flags to config keys and skips the rest.
func changedFlag(f *pflag.Flag) (string, any) {
	key, ok := flagKeys[f.Name]
	if !ok || !f.Changed {
		return "", nil
	}
	return key, f.Value.String()
}
