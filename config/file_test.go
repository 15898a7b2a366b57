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

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/argmap/apis"
	"dirpx.dev/argmap/config"
	"dirpx.dev/argmap/errors"
)

func TestParse(t *testing.T) {
	yaml := `
precedence: latest
max_depth: 16
include_builtins: true
type_url_prefix: type.example.com
`
	cfg, err := config.Parse([]byte(yaml))
	require.NoError(t, err)

	assert.Equal(t, apis.Latest, cfg.Precedence)
	assert.Equal(t, 16, cfg.MaxDepth)
	assert.True(t, cfg.IncludeBuiltins)
	assert.Equal(t, "type.example.com", cfg.TypeURLPrefix)
	// Missing keys keep their defaults.
	assert.Equal(t, config.DefaultMaxUnwrap, cfg.MaxUnwrap)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := config.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestParse_Errors(t *testing.T) {
	_, err := config.Parse([]byte("unknown_key: 1\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = config.Parse([]byte("precedence: whatever\n"))
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "argmap.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_depth: 4\n"), 0o600))

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.MaxDepth)

	_, err = config.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestMarshal_RoundTrip(t *testing.T) {
	in := config.NewConfig(config.WithPrecedence(apis.Latest), config.WithMaxDepth(9))

	data, err := config.Marshal(in)
	require.NoError(t, err)

	out, err := config.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
