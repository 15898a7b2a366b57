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

// Package value is the native, in-process side of argmap.
//
// A native value is one of Absent, Sequence, Mapping, Identifier or
// TypeReference, or a bare Go scalar (string, int64, float64, bool) inside a
// container. The String, Int, Float and Bool wrappers are what from-wire
// mappers produce for scalars at the top level; aggregates unwrap them.
//
// Values are built once and treated as immutable afterwards.
package value

import (
	"reflect"

	"dirpx.dev/argmap/apis"
	uref "dirpx.dev/argmap/utils/reflect"
)

// Native tags.
var (
	AbsentType        = apis.NilType
	SequenceType      = apis.NativeType("sequence")
	MappingType       = apis.NativeType("mapping")
	IdentifierType    = apis.NativeType("identifier")
	TypeReferenceType = apis.NativeType("type-reference")
	StringType        = apis.NativeType("string")
	IntType           = apis.NativeType("int")
	FloatType         = apis.NativeType("float")
	BoolType          = apis.NativeType("bool")
)

// Absent is the null value.
type Absent struct{}

// Nil is the Absent singleton.
var Nil = Absent{}

func (Absent) ArgType() apis.Type { return AbsentType }

// Sequence is an ordered list of native values.
type Sequence []any

func (Sequence) ArgType() apis.Type { return SequenceType }

// Mapping associates identifier keys with native values. Order is not significant.
type Mapping map[Identifier]any

func (Mapping) ArgType() apis.Type { return MappingType }

// Identifier is an interned symbolic token.
type Identifier string

func (Identifier) ArgType() apis.Type { return IdentifierType }

// String returns the textual form.
func (i Identifier) String() string { return string(i) }

// TypeReference refers to a Go type rather than an instance of it.
type TypeReference struct {
	Type reflect.Type
}

// TypeOf returns a reference to T.
func TypeOf[T any]() TypeReference {
	return TypeReference{Type: reflect.TypeFor[T]()}
}

func (TypeReference) ArgType() apis.Type { return TypeReferenceType }

// Name returns the canonical name of the referenced type.
func (r TypeReference) Name() string { return uref.CanonicalName(r.Type) }
