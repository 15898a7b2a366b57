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
	"dirpx.dev/argmap/apis"
)

const (
	// DefaultPrecedence represents the default for Precedence.
	// Ambiguity is reported, never resolved silently.
	DefaultPrecedence = apis.Strict
	// DefaultMaxDepth represents the default for MaxDepth, counted in
	// nesting levels of the converted value.
	DefaultMaxDepth = 64
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
	// DefaultIncludeBuiltins represents the default for IncludeBuiltins.
	DefaultIncludeBuiltins = false
	// DefaultTypeURLPrefix represents the default for TypeURLPrefix.
	DefaultTypeURLPrefix = "type.dirpx.dev"
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return normalize(cfg)
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		Precedence:      DefaultPrecedence,
		MaxDepth:        DefaultMaxDepth,
		MaxUnwrap:       DefaultMaxUnwrap,
		IncludeBuiltins: DefaultIncludeBuiltins,
		TypeURLPrefix:   DefaultTypeURLPrefix,
	}
}

// normalize resets out-of-range values to their defaults.
func normalize(cfg apis.Config) apis.Config {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	if cfg.TypeURLPrefix == "" {
		cfg.TypeURLPrefix = DefaultTypeURLPrefix
	}
	return cfg
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithPrecedence sets the Precedence option.
func WithPrecedence(p apis.Precedence) Option {
	return func(c *apis.Config) {
		c.Precedence = p
	}
}

// WithMaxDepth sets the MaxDepth option.
// A non-positive value resets to the default.
func WithMaxDepth(depth int) Option {
	return func(c *apis.Config) {
		if depth <= 0 {
			c.MaxDepth = DefaultMaxDepth
			return
		}
		c.MaxDepth = depth
	}
}

// WithMaxUnwrap sets the MaxUnwrap option.
// A negative value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}

// WithIncludeBuiltins sets the IncludeBuiltins option.
func WithIncludeBuiltins(include bool) Option {
	return func(c *apis.Config) {
		c.IncludeBuiltins = include
	}
}

// WithTypeURLPrefix sets the TypeURLPrefix option. Trailing slashes are dropped.
func WithTypeURLPrefix(prefix string) Option {
	return func(c *apis.Config) {
		for len(prefix) > 0 && prefix[len(prefix)-1] == '/' {
			prefix = prefix[:len(prefix)-1]
		}
		c.TypeURLPrefix = prefix
	}
}
