// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TinyApp Contributors

// Command gen-schema generates the config file JSON Schema.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tinyapp/tinyapp/internal/config"
)

func main() {
	out := flag.String("out", filepath.Join("schemas", "config.schema.json"), "output path")
	flag.Parse()

	if err := writeSchema(*out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated %s\n", *out)
}

func writeSchema(outPath string) error {
	schema, err := config.GenerateSchema()
	if err != nil {
		return fmt.Errorf("generating schema: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o750); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := os.WriteFile(outPath, schema, 0o600); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}
