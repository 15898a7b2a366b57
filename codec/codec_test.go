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

package codec_test

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/argmap/apis"
	"dirpx.dev/argmap/codec"
	"dirpx.dev/argmap/errors"
	"dirpx.dev/argmap/wire"
)

func pack(t *testing.T, c *codec.Codec, m apis.Message) apis.Envelope {
	t.Helper()
	env, err := c.Pack(m)
	require.NoError(t, err)
	return env
}

func TestPackUnpack_Fidelity(t *testing.T) {
	c := codec.Default()

	cases := []apis.Message{
		&wire.Absent{},
		&wire.Identifier{Str: "a.b"},
		&wire.String{Value: "hello"},
		&wire.Int{Value: -42},
		&wire.Float{Value: 1.5},
		&wire.Bool{Value: true},
		&wire.Sequence{List: []*wire.Envelope{
			pack(t, c, &wire.Identifier{Str: "x"}).(*wire.Envelope),
			pack(t, c, &wire.Absent{}).(*wire.Envelope),
		}},
		&wire.Mapping{Fields: map[string]*wire.Envelope{
			"k": pack(t, c, &wire.Int{Value: 7}).(*wire.Envelope),
		}},
	}

	for _, m := range cases {
		t.Run(m.Schema(), func(t *testing.T) {
			env := pack(t, c, m)
			assert.Equal(t, "type.dirpx.dev/"+m.Schema(), env.Discriminator())
			assert.Equal(t, wire.EnvelopeType, env.(apis.Tagged).ArgType())

			got, err := c.Unpack(env)
			require.NoError(t, err)
			assert.Equal(t, m, got)
		})
	}
}

func TestPack_Deterministic(t *testing.T) {
	c := codec.Default()
	m := &wire.Mapping{Fields: map[string]*wire.Envelope{
		"b": pack(t, c, &wire.Bool{Value: true}).(*wire.Envelope),
		"a": pack(t, c, &wire.Absent{}).(*wire.Envelope),
		"c": pack(t, c, &wire.String{Value: "s"}).(*wire.Envelope),
	}}

	first := pack(t, c, m)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first.Payload(), pack(t, c, m).Payload())
	}
}

func TestPack_Errors(t *testing.T) {
	c := codec.Default()

	_, err := c.Pack(nil)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	env := pack(t, c, &wire.Absent{})
	_, err = c.Pack(env.(apis.Message))
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = c.Pack((*wire.Identifier)(nil))
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestUnpack_UnknownDiscriminator(t *testing.T) {
	c := codec.Default()
	env := pack(t, c, &wire.Identifier{Str: "x"}).(*wire.Envelope)

	corrupted := &wire.Envelope{TypeURL: env.TypeURL + "Nope", Value: env.Value}
	_, err := c.Unpack(corrupted)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnknownDiscriminator)

	_, err = c.Unpack(&wire.Envelope{})
	assert.ErrorIs(t, err, errors.ErrUnknownDiscriminator)
}

func TestUnpack_OtherPrefixAccepted(t *testing.T) {
	c := codec.Default()
	env := pack(t, c, &wire.Int{Value: 3}).(*wire.Envelope)

	moved := &wire.Envelope{TypeURL: "example.com/x/" + wire.IntSchema, Value: env.Value}
	got, err := c.Unpack(moved)
	require.NoError(t, err)
	assert.Equal(t, &wire.Int{Value: 3}, got)
}

func TestUnpack_Malformed(t *testing.T) {
	c := codec.Default()
	env := pack(t, c, &wire.Identifier{Str: "abcdef"}).(*wire.Envelope)

	tests := []struct {
		name    string
		typeURL string
		payload []byte
	}{
		{"truncated", env.TypeURL, env.Value[:len(env.Value)-2]},
		{"trailing bytes", env.TypeURL, append(append([]byte{}, env.Value...), 0x00)},
		{"empty", env.TypeURL, nil},
		{"wrong schema", wire.TypeURL(c.Prefix(), wire.IntSchema), env.Value},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Unpack(&wire.Envelope{TypeURL: tt.typeURL, Value: tt.payload})
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrMalformed)
		})
	}
}

func TestRegister(t *testing.T) {
	c := codec.New()
	assert.Empty(t, c.Schemas())

	require.NoError(t, c.Register(func() apis.Message { return &wire.Bool{} }))
	err := c.Register(func() apis.Message { return &wire.Bool{} })
	assert.ErrorIs(t, err, errors.ErrConflict)

	assert.ErrorIs(t, c.Register(nil), errors.ErrInvalidInput)
	assert.ErrorIs(t, c.Register(func() apis.Message { return nil }), errors.ErrInvalidInput)

	// Only Bool is known, so Int can neither be packed nor unpacked.
	_, err = c.Pack(&wire.Int{Value: 1})
	assert.ErrorIs(t, err, errors.ErrUnknownDiscriminator)
	env := pack(t, codec.Default(), &wire.Int{Value: 1})
	_, err = c.Unpack(env)
	assert.ErrorIs(t, err, errors.ErrUnknownDiscriminator)

	assert.Equal(t, []string{wire.BoolSchema}, c.Schemas())
}

func TestWithTypeURLPrefix(t *testing.T) {
	c := codec.Default(codec.WithTypeURLPrefix("example.com/types"))
	env := pack(t, c, &wire.Absent{})
	assert.Equal(t, "example.com/types/"+wire.AbsentSchema, env.Discriminator())
	assert.Equal(t, wire.EnvelopeType, c.EnvelopeType())
}

func TestMarshalUnmarshal_Any(t *testing.T) {
	c := codec.Default()
	env := pack(t, c, &wire.String{Value: "over the wire"})

	b, err := c.Marshal(env)
	require.NoError(t, err)

	back, err := c.Unmarshal(b)
	require.NoError(t, err)
	assert.Equal(t, env.Discriminator(), back.Discriminator())
	assert.Equal(t, env.Payload(), back.Payload())

	m, err := c.Unpack(back)
	require.NoError(t, err)
	assert.Equal(t, &wire.String{Value: "over the wire"}, m)

	a := codec.ToAny(env)
	assert.Equal(t, env.Discriminator(), a.GetTypeUrl())
	assert.Equal(t, env, apis.Envelope(codec.FromAny(a)))
}

func TestUnmarshal_Errors(t *testing.T) {
	c := codec.Default()

	_, err := c.Unmarshal([]byte{0xff, 0xff, 0xff})
	assert.ErrorIs(t, err, errors.ErrMalformed)

	_, err = c.Unmarshal(nil)
	assert.ErrorIs(t, err, errors.ErrUnknownDiscriminator)

	_, err = c.Marshal(nil)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestUnpack_RelabelledPayload(t *testing.T) {
	c := codec.Default()

	tests := []struct {
		name  string
		msg   apis.Message
		label string
	}{
		{"identifier as string", &wire.Identifier{Str: "x"}, wire.StringSchema},
		{"string as identifier", &wire.String{Value: "x"}, wire.IdentifierSchema},
		{"absent as mapping", &wire.Absent{}, wire.MappingSchema},
		{"absent as sequence", &wire.Absent{}, wire.SequenceSchema},
		{"mapping as spec value", &wire.Mapping{}, wire.SpecValueSchema},
		{"int as float", &wire.Int{Value: 1}, wire.FloatSchema},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := pack(t, c, tt.msg)
			relabelled := &wire.Envelope{TypeURL: wire.TypeURL(c.Prefix(), tt.label), Value: env.Payload()}

			got, err := c.Unpack(relabelled)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, errors.ErrMalformed)
		})
	}
}

func TestUnpack_UntaggedPayload(t *testing.T) {
	c := codec.Default()
	b, err := cbor.Marshal(map[int]string{1: "x"})
	require.NoError(t, err)

	_, err = c.Unpack(&wire.Envelope{TypeURL: wire.TypeURL(c.Prefix(), wire.StringSchema), Value: b})
	assert.ErrorIs(t, err, errors.ErrMalformed)
}

type note struct {
	Text string `cbor:"1,keyasint"`
}

func (note) Schema() string     { return "test.v1.Note" }
func (note) ArgType() apis.Type { return apis.WireType("test.v1.Note") }
func (note) CBORTag() uint64    { return 61500 }

type untagged struct{}

func (untagged) Schema() string     { return "test.v1.Untagged" }
func (untagged) ArgType() apis.Type { return apis.WireType("test.v1.Untagged") }

type clash struct {
	Text string `cbor:"1,keyasint"`
}

func (clash) Schema() string     { return "test.v1.Clash" }
func (clash) ArgType() apis.Type { return apis.WireType("test.v1.Clash") }
func (clash) CBORTag() uint64    { return wire.StringTag }

func TestRegister_TagNumbers(t *testing.T) {
	c := codec.Default()

	err := c.Register(func() apis.Message { return &untagged{} })
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	err = c.Register(func() apis.Message { return &clash{} })
	assert.ErrorIs(t, err, errors.ErrConflict)
	assert.NotContains(t, c.Schemas(), "test.v1.Clash")

	require.NoError(t, c.Register(func() apis.Message { return &note{} }))
	env := pack(t, c, &note{Text: "hi"})
	got, err := c.Unpack(env)
	require.NoError(t, err)
	assert.Equal(t, &note{Text: "hi"}, got)

	// A string payload still cannot pass as a note.
	s := pack(t, c, &wire.String{Value: "hi"})
	_, err = c.Unpack(&wire.Envelope{TypeURL: wire.TypeURL(c.Prefix(), "test.v1.Note"), Value: s.Payload()})
	assert.ErrorIs(t, err, errors.ErrMalformed)
}
