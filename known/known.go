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

package known

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"dirpx.dev/argmap/apis"
	"dirpx.dev/argmap/codec"
	"dirpx.dev/argmap/errors"
	"dirpx.dev/argmap/mapper"
	"dirpx.dev/argmap/matcher"
	"dirpx.dev/argmap/value"
	"dirpx.dev/argmap/wire"
)

// Mapper names.
const (
	AbsentToWire             = "absent-to-wire"
	WireToAbsent             = "wire-to-absent"
	SequenceToWire           = "sequence-to-wire"
	WireToSequence           = "wire-to-sequence"
	MappingToWire            = "mapping-to-wire"
	WireToMapping            = "wire-to-mapping"
	TypeToString             = "type-to-string"
	IdentifierToWire         = "identifier-to-wire"
	IdentifierWireToEnvelope = "identifier-wire-to-envelope"
	WireToIdentifier         = "wire-to-identifier"
	SpecToMappingWire        = "spec-to-mapping-wire"
	StringToWire             = "string-to-wire"
	WireToString             = "wire-to-string"
	IntToWire                = "int-to-wire"
	WireToInt                = "wire-to-int"
	FloatToWire              = "float-to-wire"
	WireToFloat              = "wire-to-float"
	BoolToWire               = "bool-to-wire"
	WireToBool               = "wire-to-bool"
)

// MappingPayload is the predicate identity of the spec-to-mapping-wire input.
const MappingPayload = "mapping-payload"

// Mappers returns the primitive mapper set. c packs identifiers into
// envelopes (nil means codec.Default()); log receives conversion failures.
func Mappers(c apis.Codec, log *zap.Logger) []apis.Mapper {
	if c == nil {
		c = codec.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	opt := mapper.WithLogger(log)
	one := func(t apis.Type) []apis.Matcher { return []apis.Matcher{matcher.Type(t)} }
	rec := func(in apis.Matcher) []apis.Matcher { return []apis.Matcher{in, matcher.Registry()} }

	ms := []apis.Mapper{
		mapper.Must(AbsentToWire, one(value.AbsentType), wire.AbsentType, absentToWire, opt),
		mapper.Must(WireToAbsent, one(wire.AbsentType), value.AbsentType, wireToAbsent, opt),

		mapper.Must(SequenceToWire, rec(matcher.Type(value.SequenceType)), wire.SequenceType,
			mapper.Binary(SequenceToWire, sequenceToWire(log)), opt),
		mapper.Must(WireToSequence, rec(matcher.Type(wire.SequenceType)), value.SequenceType,
			mapper.Binary(WireToSequence, wireToSequence(log)), opt),
		mapper.Must(MappingToWire, rec(matcher.Type(value.MappingType)), wire.MappingType,
			mapper.Binary(MappingToWire, mappingToWire(log)), opt),
		mapper.Must(WireToMapping, rec(matcher.Type(wire.MappingType)), value.MappingType,
			mapper.Binary(WireToMapping, wireToMapping(log)), opt),

		mapper.Must(TypeToString, one(value.TypeReferenceType), value.StringType,
			mapper.Unary(TypeToString, typeToString), opt),

		mapper.Must(IdentifierToWire, one(value.IdentifierType), wire.IdentifierType,
			mapper.Unary(IdentifierToWire, identifierToWire), opt),
		mapper.Must(IdentifierWireToEnvelope, one(wire.IdentifierType), c.EnvelopeType(),
			mapper.Unary(IdentifierWireToEnvelope, identifierWireToEnvelope(c)), opt),
		mapper.Must(WireToIdentifier, one(wire.IdentifierType), value.IdentifierType,
			mapper.Unary(WireToIdentifier, wireToIdentifier), opt),

		mapper.Must(SpecToMappingWire,
			rec(matcher.Where(wire.SpecValueType, MappingPayload, hasMappingPayload)),
			wire.MappingType,
			mapper.Binary(SpecToMappingWire, specToMappingWire), opt),
	}
	return append(ms, scalars(opt)...)
}

// Register adds the primitive mapper set to reg, packing through reg's codec.
// All mappers are attempted; the failures are returned combined.
func Register(reg apis.Registry, log *zap.Logger) error {
	if reg == nil {
		return errors.InvalidInput(errors.PhaseRegister, "known: nil registry")
	}
	var err error
	for _, m := range Mappers(reg.Codec(), log) {
		err = multierr.Append(err, reg.Register(m))
	}
	return err
}

func absentToWire(...any) (any, error) { return &wire.Absent{}, nil }

func wireToAbsent(...any) (any, error) { return value.Nil, nil }

func typeToString(r value.TypeReference) (any, error) { return r.Name(), nil }

func identifierToWire(id value.Identifier) (any, error) {
	return &wire.Identifier{Str: string(id)}, nil
}

func wireToIdentifier(w *wire.Identifier) (any, error) {
	if w == nil {
		return nil, errors.UnexpectedInput(WireToIdentifier, w, "*wire.Identifier")
	}
	return value.Identifier(w.Str), nil
}

func identifierWireToEnvelope(c apis.Codec) func(*wire.Identifier) (any, error) {
	return func(w *wire.Identifier) (any, error) {
		if w == nil {
			return nil, errors.UnexpectedInput(IdentifierWireToEnvelope, w, "*wire.Identifier")
		}
		return c.Pack(w)
	}
}

// hasMappingPayload accepts carriers declaring the Mapping schema whose
// embedded envelope holds bytes.
func hasMappingPayload(v any) bool {
	sv, ok := v.(*wire.SpecValue)
	return ok && sv != nil &&
		sv.Type == wire.MappingSchema &&
		sv.Value != nil && len(sv.Value.Value) > 0
}

func specToMappingWire(sv *wire.SpecValue, reg apis.Mappers) (any, error) {
	out, err := reg.Map(sv.Value, apis.To(wire.MappingType))
	if err != nil {
		return nil, errors.AtPath(err, sv.Name)
	}
	m, ok := out.(*wire.Mapping)
	if !ok {
		return nil, errors.UnexpectedInput(SpecToMappingWire, out, "*wire.Mapping")
	}
	return m, nil
}
