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

package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"dirpx.dev/argmap/apis"
	"dirpx.dev/argmap/config"
	"dirpx.dev/argmap/errors"
	"dirpx.dev/argmap/mapper"
	"dirpx.dev/argmap/matcher"
	"dirpx.dev/argmap/registry"
	"dirpx.dev/argmap/value"
	"dirpx.dev/argmap/wire"
)

func identifierToWire() apis.Mapper {
	return mapper.Must("identifier-to-wire",
		[]apis.Matcher{matcher.Type(value.IdentifierType)},
		wire.IdentifierType,
		mapper.Unary("identifier-to-wire", func(id value.Identifier) (any, error) {
			return &wire.Identifier{Str: string(id)}, nil
		}),
	)
}

func wireToIdentifier() apis.Mapper {
	return mapper.Must("wire-to-identifier",
		[]apis.Matcher{matcher.Type(wire.IdentifierType)},
		value.IdentifierType,
		mapper.Unary("wire-to-identifier", func(w *wire.Identifier) (any, error) {
			return value.Identifier(w.Str), nil
		}),
	)
}

// constant returns a mapper from in to out that always yields v.
func constant(name string, in, out apis.Type, v any) apis.Mapper {
	return mapper.Must(name, []apis.Matcher{matcher.Type(in)}, out,
		func(...any) (any, error) { return v, nil })
}

func newRegistry(t *testing.T, opts []config.Option, ms ...apis.Mapper) *registry.Registry {
	t.Helper()
	r := registry.New(config.NewConfig(opts...))
	require.NoError(t, r.RegisterAll(ms...))
	return r
}

func TestMap_SingleCandidate(t *testing.T) {
	r := newRegistry(t, nil, identifierToWire())

	first, err := r.Map(value.Identifier("x"))
	require.NoError(t, err)
	assert.Equal(t, &wire.Identifier{Str: "x"}, first)

	for i := 0; i < 5; i++ {
		again, err := r.Map(value.Identifier("x"))
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestMap_NoMapper(t *testing.T) {
	r := newRegistry(t, nil, identifierToWire())

	_, err := r.Map(value.Sequence{})
	assert.ErrorIs(t, err, errors.ErrNoMapper)

	// Anonymous types cannot be tagged at all.
	_, err = r.Map(struct{ X int }{1})
	assert.ErrorIs(t, err, errors.ErrNoMapper)

	// Output constraint rules out the only candidate.
	_, err = r.Map(value.Identifier("x"), apis.To(wire.StringType))
	assert.ErrorIs(t, err, errors.ErrNoMapper)
	_, err = r.Map(value.Identifier("x"), apis.ToSide(apis.Native))
	assert.ErrorIs(t, err, errors.ErrNoMapper)
}

func TestMap_Ambiguous(t *testing.T) {
	r := newRegistry(t, nil,
		constant("to-string", value.IdentifierType, wire.StringType, &wire.String{Value: "s"}),
		constant("to-identifier", value.IdentifierType, wire.IdentifierType, &wire.Identifier{Str: "i"}),
	)

	for i := 0; i < 3; i++ {
		_, err := r.Map(value.Identifier("x"))
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrAmbiguous)
		assert.Contains(t, err.Error(), "to-string, to-identifier")
	}

	out, err := r.Map(value.Identifier("x"), apis.To(wire.IdentifierType))
	require.NoError(t, err)
	assert.Equal(t, &wire.Identifier{Str: "i"}, out)
}

func TestMap_LatestPrecedence(t *testing.T) {
	r := newRegistry(t, []config.Option{config.WithPrecedence(apis.Latest)},
		constant("first", value.IdentifierType, wire.StringType, "first"),
		constant("second", value.IdentifierType, wire.IdentifierType, "second"),
		constant("third", value.IdentifierType, wire.BoolType, "third"),
	)

	for i := 0; i < 3; i++ {
		out, err := r.Map(value.Identifier("x"))
		require.NoError(t, err)
		assert.Equal(t, "third", out)
	}

	// Filters still apply before precedence.
	out, err := r.Map(value.Identifier("x"), apis.To(wire.StringType))
	require.NoError(t, err)
	assert.Equal(t, "first", out)
}

func TestMap_Identity(t *testing.T) {
	r := newRegistry(t, nil)
	v := value.Identifier("x")

	out, err := r.Map(v, apis.To(value.IdentifierType))
	require.NoError(t, err)
	assert.Equal(t, v, out)
}

func TestMap_Predicate(t *testing.T) {
	nonEmpty := matcher.Where(value.IdentifierType, "non-empty", func(v any) bool {
		return v.(value.Identifier) != ""
	})
	m := mapper.Must("non-empty-identifier", []apis.Matcher{nonEmpty}, wire.IdentifierType,
		func(args ...any) (any, error) { return &wire.Identifier{Str: string(args[0].(value.Identifier))}, nil })
	r := newRegistry(t, nil, m)

	out, err := r.Map(value.Identifier("x"))
	require.NoError(t, err)
	assert.Equal(t, &wire.Identifier{Str: "x"}, out)

	_, err = r.Map(value.Identifier(""))
	assert.ErrorIs(t, err, errors.ErrNoMapper)
}

func TestMap_InjectsReadOnlyView(t *testing.T) {
	var got apis.Mappers
	m := mapper.Must("sequence-len",
		[]apis.Matcher{matcher.Type(value.SequenceType), matcher.Registry()},
		wire.IntType,
		mapper.Binary("sequence-len", func(s value.Sequence, reg apis.Mappers) (any, error) {
			got = reg
			return &wire.Int{Value: int64(len(s))}, nil
		}),
	)
	r := newRegistry(t, nil, m)

	out, err := r.Map(value.Sequence{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, &wire.Int{Value: 3}, out)

	require.NotNil(t, got)
	_, isRegistry := got.(apis.Registry)
	assert.False(t, isRegistry, "mappers must not be able to register")
	assert.Equal(t, apis.RegistryType, got.(apis.Tagged).ArgType())
}

func TestMap_ExtraInputsMustBeRegistry(t *testing.T) {
	m := mapper.Must("needs-two",
		[]apis.Matcher{matcher.Type(value.IdentifierType), matcher.Type(value.IdentifierType)},
		wire.IdentifierType,
		func(...any) (any, error) { return nil, nil },
	)
	r := newRegistry(t, nil, m)

	_, err := r.Map(value.Identifier("x"))
	assert.ErrorIs(t, err, errors.ErrNoMapper)
}

func TestMap_ConversionErrorPropagates(t *testing.T) {
	m := mapper.Must("wants-identifier",
		[]apis.Matcher{matcher.Type(value.IdentifierType)},
		wire.IdentifierType,
		mapper.Unary("wants-identifier", func(w *wire.Identifier) (any, error) { return w, nil }),
	)
	r := newRegistry(t, nil, m)

	_, err := r.Map(value.Identifier("x"))
	assert.ErrorIs(t, err, errors.ErrConversion)
}

func TestMap_TooDeep(t *testing.T) {
	nest := mapper.Must("nest",
		[]apis.Matcher{matcher.Type(value.SequenceType), matcher.Registry()},
		wire.SequenceType,
		mapper.Binary("nest", func(s value.Sequence, reg apis.Mappers) (any, error) {
			for _, el := range s {
				if _, err := reg.Map(el); err != nil {
					return nil, err
				}
			}
			return &wire.Sequence{}, nil
		}),
	)
	r := newRegistry(t, []config.Option{config.WithMaxDepth(2)}, nest)

	_, err := r.Map(value.Sequence{value.Sequence{value.Sequence{}}})
	require.NoError(t, err)

	_, err = r.Map(value.Sequence{value.Sequence{value.Sequence{value.Sequence{}}}})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrTooDeep)
}

func TestRegister_Conflict(t *testing.T) {
	r := newRegistry(t, nil, identifierToWire())

	err := r.Register(constant("again", value.IdentifierType, wire.IdentifierType, nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrConflict)
	assert.Contains(t, err.Error(), `"identifier-to-wire"`)
	assert.Equal(t, 1, r.Count())

	// Same input tag but a distinct predicate identity is a different signature.
	pm := mapper.Must("predicated",
		[]apis.Matcher{matcher.Where(value.IdentifierType, "p", nil)},
		wire.IdentifierType,
		func(...any) (any, error) { return nil, nil },
	)
	require.NoError(t, r.Register(pm))

	// Same input, different output.
	require.NoError(t, r.Register(constant("to-string", value.IdentifierType, wire.StringType, nil)))
	assert.Equal(t, 3, r.Count())
}

func TestRegister_Invalid(t *testing.T) {
	r := registry.New(config.DefaultConfig())
	assert.ErrorIs(t, r.Register(nil), errors.ErrInvalidInput)
}

func TestRegisterAll_CombinesErrors(t *testing.T) {
	r := registry.New(config.DefaultConfig())

	err := r.RegisterAll(
		identifierToWire(),
		identifierToWire(),
		wireToIdentifier(),
		nil,
	)
	require.Error(t, err)
	errs := multierr.Errors(err)
	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0], errors.ErrConflict)
	assert.ErrorIs(t, errs[1], errors.ErrInvalidInput)
	assert.Equal(t, 2, r.Count())
}

func TestSeal(t *testing.T) {
	r := newRegistry(t, nil, identifierToWire())
	assert.False(t, r.Sealed())

	r.Seal()
	assert.True(t, r.Sealed())

	err := r.Register(wireToIdentifier())
	assert.ErrorIs(t, err, errors.ErrSealed)
	assert.Equal(t, 1, r.Count())

	// Sealed registries still dispatch.
	_, err = r.Map(value.Identifier("x"))
	assert.NoError(t, err)
}

func TestEntries(t *testing.T) {
	r := newRegistry(t, nil, identifierToWire(), wireToIdentifier())

	es := r.Entries()
	require.Len(t, es, 2)
	assert.Equal(t, "identifier-to-wire", es[0].Name())
	assert.Equal(t, "wire-to-identifier", es[1].Name())

	es[0] = nil
	assert.NotNil(t, r.Entries()[0])

	assert.NotNil(t, r.Codec())
	assert.NotNil(t, r.Resolver())
	assert.Equal(t, config.DefaultMaxDepth, r.Config().MaxDepth)
	assert.Equal(t, value.StringType, r.Resolver().Resolve("x", r.Config()))
	assert.Equal(t, value.IntType, r.Resolver().Resolve(int32(1), r.Config()))
}
