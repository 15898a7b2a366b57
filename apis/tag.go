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

import "strconv"

// Side tells which half of the mapping a Type belongs to.
type Side uint8

const (
	// Native marks in-process values.
	Native Side = iota + 1
	// Wire marks transport-side messages and envelopes.
	Wire
	// Meta marks values that only exist inside dispatch (e.g. the registry view).
	Meta
)

// String returns the lowercase name of the side.
func (s Side) String() string {
	switch s {
	case Native:
		return "native"
	case Wire:
		return "wire"
	case Meta:
		return "meta"
	default:
		return "side(" + strconv.Itoa(int(s)) + ")"
	}
}

// Type is the variant tag dispatch is keyed on.
// It is comparable and safe to use as a map key.
type Type struct {
	// Side is the model the tagged value belongs to.
	Side Side
	// Name identifies the variant within its side. Wire names are schema full names.
	Name string
}

// NativeType returns a Native tag with the given name.
func NativeType(name string) Type { return Type{Side: Native, Name: name} }

// WireType returns a Wire tag with the given schema name.
func WireType(schema string) Type { return Type{Side: Wire, Name: schema} }

// IsZero reports whether t is the zero tag (unresolved).
func (t Type) IsZero() bool { return t.Side == 0 && t.Name == "" }

// String renders t as "side:name".
func (t Type) String() string {
	if t.IsZero() {
		return "<none>"
	}
	return t.Side.String() + ":" + t.Name
}

var (
	// NilType is the tag of the absent value. Untyped Go nil resolves to it.
	NilType = NativeType("absent")
	// RegistryType is the tag of the dispatch view injected into mappers
	// that declare a second input.
	RegistryType = Type{Side: Meta, Name: "registry"}
)

// Tagged is implemented by values that carry their own variant tag.
type Tagged interface {
	ArgType() Type
}

// Scalar marks one-field wrapper values. Aggregate mappers replace such
// values with ScalarValue() before inserting them into native containers.
type Scalar interface {
	ScalarValue() any
}
