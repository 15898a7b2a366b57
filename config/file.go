/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"dirpx.dev/argmap/apis"
	"dirpx.dev/argmap/errors"
)

// LoadFile loads and parses a YAML configuration file from the given path.
func LoadFile(path string) (apis.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return apis.Config{}, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Detail("read config file %s", path).
			Cause(err).
			Build()
	}

	return Parse(data)
}

// Parse parses YAML data into an apis.Config. Missing keys keep their
// defaults; unknown keys are rejected.
func Parse(data []byte) (apis.Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return apis.Config{}, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Detail("parse config YAML").
			Cause(err).
			Build()
	}

	return normalize(cfg), nil
}

// Marshal serializes cfg to YAML.
func Marshal(cfg apis.Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}
