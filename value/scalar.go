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

package value

import (
	"reflect"

	"dirpx.dev/argmap/apis"
)

// String wraps a string decoded from the wire.
type String struct{ V string }

// Int wraps an integer decoded from the wire.
type Int struct{ V int64 }

// Float wraps a float decoded from the wire.
type Float struct{ V float64 }

// Bool wraps a boolean decoded from the wire.
type Bool struct{ V bool }

func (String) ArgType() apis.Type { return StringType }
func (Int) ArgType() apis.Type    { return IntType }
func (Float) ArgType() apis.Type  { return FloatType }
func (Bool) ArgType() apis.Type   { return BoolType }

func (s String) ScalarValue() any { return s.V }
func (i Int) ScalarValue() any    { return i.V }
func (f Float) ScalarValue() any  { return f.V }
func (b Bool) ScalarValue() any   { return b.V }

var (
	_ apis.Scalar = String{}
	_ apis.Scalar = Int{}
	_ apis.Scalar = Float{}
	_ apis.Scalar = Bool{}
)

// Unwrap returns v.ScalarValue() when v is a scalar wrapper and v otherwise.
func Unwrap(v any) any {
	if s, ok := v.(apis.Scalar); ok {
		return s.ScalarValue()
	}
	return v
}

// Builtins returns the tags assigned to bare Go scalars so they can sit
// inside sequences and mappings without a wrapper.
func Builtins() []apis.TypeEntry {
	return []apis.TypeEntry{
		{Type: reflect.TypeFor[string](), Tag: StringType},
		{Type: reflect.TypeFor[int](), Tag: IntType},
		{Type: reflect.TypeFor[int32](), Tag: IntType},
		{Type: reflect.TypeFor[int64](), Tag: IntType},
		{Type: reflect.TypeFor[float32](), Tag: FloatType},
		{Type: reflect.TypeFor[float64](), Tag: FloatType},
		{Type: reflect.TypeFor[bool](), Tag: BoolType},
	}
}
