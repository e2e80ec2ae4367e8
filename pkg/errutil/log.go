// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TinyApp Contributors

// Package errutil helps report oops errors.
package errutil

import (
	"context"
	"log/slog"

	"github.com/samber/oops"
)

// Code returns the oops error code of err, or "" if err carries none.
func Code(err error) string {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}
	code, _ := oopsErr.Code().(string)
	return code
}

// LogError logs err at error level. For oops errors the code and context are
// added as attributes.
func LogError(ctx context.Context, logger *slog.Logger, msg string, err error) {
	attrs := []slog.Attr{slog.String("error", err.Error())}
	if oopsErr, ok := oops.AsOops(err); ok {
		if code := Code(err); code != "" {
			attrs = append(attrs, slog.String("code", code))
		}
		if c := oopsErr.Context(); len(c) > 0 {
			attrs = append(attrs, slog.Any("context", c))
		}
	}
	logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}
