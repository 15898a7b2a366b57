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

package apis

// Config carries read-only knobs that influence tag resolution, dispatch and
// envelope naming. It is passed by value and should be treated as immutable.
type Config struct {
	// Precedence decides what happens when more than one mapper applies.
	Precedence Precedence `yaml:"precedence"`

	// MaxDepth bounds the nesting depth of recursive conversions. A level is
	// added each time a mapper converts a nested value through its registry
	// view; packing and unpacking envelopes add none, so a value nested
	// MaxDepth levels deep converts in both directions.
	MaxDepth int `yaml:"max_depth"`

	// MaxUnwrap limits pointer unwrapping when normalizing Go types for
	// tag lookup. Acts as a safety guard against pathological nesting.
	MaxUnwrap int `yaml:"max_unwrap"`

	// IncludeBuiltins controls whether the reflect fallback assigns tags to
	// builtin/no-package named types (e.g., "int32"). If false, such cases
	// stay unresolved and dispatch reports no mapper.
	IncludeBuiltins bool `yaml:"include_builtins"`

	// TypeURLPrefix is prepended to schema names to form envelope discriminators.
	TypeURLPrefix string `yaml:"type_url_prefix"`
}
