// Package config loads export settings from a YAML file.
//
// Example rawheader.yaml:
//
//	format: svpkg
//	base_name: soc
//	license: "Copyright ACME\nSPDX-License-Identifier: Apache-2.0"
//	output: build/soc_pkg.sv
//	strict: true
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"rawheader/internal/export"
)

// DefaultFile is looked up in the working directory when no file is given.
const DefaultFile = "rawheader.yaml"

// File mirrors export.Options in YAML form.
type File struct {
	Format   string `yaml:"format,omitempty"`
	Template string `yaml:"template,omitempty"`
	BaseName string `yaml:"base_name,omitempty"`
	License  string `yaml:"license,omitempty"`
	Output   string `yaml:"output,omitempty"`
	Strict   bool   `yaml:"strict,omitempty"`
}

// Load reads and parses a config file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML config data. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	err := dec.Decode(&f)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return &f, nil
}

// Apply copies every non-empty setting onto opts.
func (f *File) Apply(opts *export.Options) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	set(&opts.Format, f.Format)
	set(&opts.TemplatePath, f.Template)
	set(&opts.BaseName, f.BaseName)
	set(&opts.License, f.License)
	set(&opts.Output, f.Output)

	if f.Strict {
		opts.Strict = true
	}
}
