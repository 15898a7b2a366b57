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
	"maps"
	"slices"
	"strconv"

	"go.uber.org/zap"

	"dirpx.dev/argmap/apis"
	"dirpx.dev/argmap/errors"
	"dirpx.dev/argmap/value"
	"dirpx.dev/argmap/wire"
)

func sequenceToWire(log *zap.Logger) func(value.Sequence, apis.Mappers) (any, error) {
	return func(s value.Sequence, reg apis.Mappers) (any, error) {
		list := make([]*wire.Envelope, len(s))
		for i, el := range s {
			env, err := toEnvelope(reg, el)
			if err != nil {
				log.Debug("sequence element failed", zap.Int("index", i), zap.Error(err))
				return nil, errors.AtPath(err, strconv.Itoa(i))
			}
			list[i] = env
		}
		return &wire.Sequence{List: list}, nil
	}
}

func wireToSequence(log *zap.Logger) func(*wire.Sequence, apis.Mappers) (any, error) {
	return func(w *wire.Sequence, reg apis.Mappers) (any, error) {
		if w == nil {
			return nil, errors.UnexpectedInput(WireToSequence, w, "*wire.Sequence")
		}
		out := make(value.Sequence, len(w.List))
		for i, env := range w.List {
			v, err := fromEnvelope(reg, env)
			if err != nil {
				log.Debug("sequence element failed", zap.Int("index", i), zap.Error(err))
				return nil, errors.AtPath(err, strconv.Itoa(i))
			}
			out[i] = v
		}
		return out, nil
	}
}

func mappingToWire(log *zap.Logger) func(value.Mapping, apis.Mappers) (any, error) {
	return func(m value.Mapping, reg apis.Mappers) (any, error) {
		fields := make(map[string]*wire.Envelope, len(m))
		// Sorted so that the first failure reported is always the same one.
		for _, k := range slices.Sorted(maps.Keys(m)) {
			env, err := toEnvelope(reg, m[k])
			if err != nil {
				log.Debug("mapping value failed", zap.String("key", string(k)), zap.Error(err))
				return nil, errors.AtPath(err, string(k))
			}
			fields[string(k)] = env
		}
		return &wire.Mapping{Fields: fields}, nil
	}
}

func wireToMapping(log *zap.Logger) func(*wire.Mapping, apis.Mappers) (any, error) {
	return func(w *wire.Mapping, reg apis.Mappers) (any, error) {
		if w == nil {
			return nil, errors.UnexpectedInput(WireToMapping, w, "*wire.Mapping")
		}
		out := make(value.Mapping, len(w.Fields))
		for _, k := range slices.Sorted(maps.Keys(w.Fields)) {
			v, err := fromEnvelope(reg, w.Fields[k])
			if err != nil {
				log.Debug("mapping value failed", zap.String("key", k), zap.Error(err))
				return nil, errors.AtPath(err, k)
			}
			out[value.Identifier(k)] = v
		}
		return out, nil
	}
}

// toEnvelope maps one child to an envelope through the registry.
func toEnvelope(reg apis.Mappers, v any) (*wire.Envelope, error) {
	out, err := reg.Map(v, apis.To(wire.EnvelopeType))
	if err != nil {
		return nil, err
	}
	switch e := out.(type) {
	case *wire.Envelope:
		return e, nil
	case apis.Envelope:
		return &wire.Envelope{TypeURL: e.Discriminator(), Value: e.Payload()}, nil
	}
	return nil, errors.New(errors.PhaseConvert, errors.KindConversion).
		Value(out).
		Want(wire.EnvelopeType).
		Detail("child mapped to %T, not an envelope", out).
		Build()
}

// fromEnvelope maps one envelope back to a native value, replacing scalar
// wrappers by the scalar they hold.
func fromEnvelope(reg apis.Mappers, env *wire.Envelope) (any, error) {
	if env == nil {
		return nil, errors.New(errors.PhaseUnpack, errors.KindMalformed).
			Detail("missing envelope").
			Build()
	}
	v, err := reg.Map(env, apis.ToSide(apis.Native))
	if err != nil {
		return nil, err
	}
	return value.Unwrap(v), nil
}
