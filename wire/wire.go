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

package wire

import "dirpx.dev/argmap/apis"

// Schema full names. They are the stable discriminators exchanged on the wire.
const (
	AbsentSchema     = "argmap.wire.v1.Absent"
	SequenceSchema   = "argmap.wire.v1.Sequence"
	MappingSchema    = "argmap.wire.v1.Mapping"
	IdentifierSchema = "argmap.wire.v1.Identifier"
	StringSchema     = "argmap.wire.v1.String"
	IntSchema        = "argmap.wire.v1.Int"
	FloatSchema      = "argmap.wire.v1.Float"
	BoolSchema       = "argmap.wire.v1.Bool"
	SpecValueSchema  = "argmap.wire.v1.SpecValue"
)

// Wire tags.
var (
	AbsentType     = apis.WireType(AbsentSchema)
	SequenceType   = apis.WireType(SequenceSchema)
	MappingType    = apis.WireType(MappingSchema)
	IdentifierType = apis.WireType(IdentifierSchema)
	StringType     = apis.WireType(StringSchema)
	IntType        = apis.WireType(IntSchema)
	FloatType      = apis.WireType(FloatSchema)
	BoolType       = apis.WireType(BoolSchema)
	SpecValueType  = apis.WireType(SpecValueSchema)
)

// CBOR tag numbers. Every payload is enclosed in the tag of its schema, so a
// payload relabelled with another discriminator fails to decode.
const (
	AbsentTag uint64 = 61400 + iota
	SequenceTag
	MappingTag
	IdentifierTag
	StringTag
	IntTag
	FloatTag
	BoolTag
	SpecValueTag
)

// Absent is the wire form of the null value. It has no payload.
type Absent struct{}

// Sequence is the wire form of an ordered list.
type Sequence struct {
	List []*Envelope `cbor:"1,keyasint"`
}

// Mapping is the wire form of a key/value map.
type Mapping struct {
	Fields map[string]*Envelope `cbor:"1,keyasint"`
}

// Identifier carries the textual form of a symbolic token.
type Identifier struct {
	Str string `cbor:"1,keyasint"`
}

// String carries a string scalar.
type String struct {
	Value string `cbor:"1,keyasint"`
}

// Int carries an integer scalar.
type Int struct {
	Value int64 `cbor:"1,keyasint"`
}

// Float carries a floating point scalar.
type Float struct {
	Value float64 `cbor:"1,keyasint"`
}

// Bool carries a boolean scalar.
type Bool struct {
	Value bool `cbor:"1,keyasint"`
}

// SpecValue is a generic named value carrier: Type names the schema of the
// embedded Value, which may be absent.
type SpecValue struct {
	Name  string    `cbor:"1,keyasint"`
	Type  string    `cbor:"2,keyasint"`
	Value *Envelope `cbor:"3,keyasint"`
}

func (Absent) Schema() string     { return AbsentSchema }
func (Sequence) Schema() string   { return SequenceSchema }
func (Mapping) Schema() string    { return MappingSchema }
func (Identifier) Schema() string { return IdentifierSchema }
func (String) Schema() string     { return StringSchema }
func (Int) Schema() string        { return IntSchema }
func (Float) Schema() string      { return FloatSchema }
func (Bool) Schema() string       { return BoolSchema }
func (SpecValue) Schema() string  { return SpecValueSchema }

func (Absent) ArgType() apis.Type     { return AbsentType }
func (Sequence) ArgType() apis.Type   { return SequenceType }
func (Mapping) ArgType() apis.Type    { return MappingType }
func (Identifier) ArgType() apis.Type { return IdentifierType }
func (String) ArgType() apis.Type     { return StringType }
func (Int) ArgType() apis.Type        { return IntType }
func (Float) ArgType() apis.Type      { return FloatType }
func (Bool) ArgType() apis.Type       { return BoolType }
func (SpecValue) ArgType() apis.Type  { return SpecValueType }

func (Absent) CBORTag() uint64     { return AbsentTag }
func (Sequence) CBORTag() uint64   { return SequenceTag }
func (Mapping) CBORTag() uint64    { return MappingTag }
func (Identifier) CBORTag() uint64 { return IdentifierTag }
func (String) CBORTag() uint64     { return StringTag }
func (Int) CBORTag() uint64        { return IntTag }
func (Float) CBORTag() uint64      { return FloatTag }
func (Bool) CBORTag() uint64       { return BoolTag }
func (SpecValue) CBORTag() uint64  { return SpecValueTag }

// Numbered is a message whose payload is enclosed in a CBOR tag.
type Numbered interface {
	apis.Message
	CBORTag() uint64
}

// Factory returns a fresh, empty message to decode into.
type Factory func() apis.Message

// Factories returns a factory for every message in this package except Envelope.
func Factories() []Factory {
	return []Factory{
		func() apis.Message { return &Absent{} },
		func() apis.Message { return &Sequence{} },
		func() apis.Message { return &Mapping{} },
		func() apis.Message { return &Identifier{} },
		func() apis.Message { return &String{} },
		func() apis.Message { return &Int{} },
		func() apis.Message { return &Float{} },
		func() apis.Message { return &Bool{} },
		func() apis.Message { return &SpecValue{} },
	}
}
