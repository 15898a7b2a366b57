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

package codec

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/fxamacker/cbor/v2"

	"dirpx.dev/argmap/apis"
	"dirpx.dev/argmap/config"
	"dirpx.dev/argmap/errors"
	"dirpx.dev/argmap/wire"
)

var (
	encOptions = cbor.CoreDetEncOptions()
	decOptions = cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyEnforcedAPF,
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}
	tagOptions = cbor.TagOptions{
		EncTag: cbor.EncTagRequired,
		DecTag: cbor.DecTagRequired,
	}
)

// modes builds the encode and decode modes for the given tag set.
func modes(tags cbor.TagSet) (cbor.EncMode, cbor.DecMode, error) {
	em, err := encOptions.EncModeWithTags(tags)
	if err != nil {
		return nil, nil, err
	}
	dm, err := decOptions.DecModeWithTags(tags)
	if err != nil {
		return nil, nil, err
	}
	return em, dm, nil
}

// Codec packs wire messages into envelopes and unpacks them again.
// It is safe for concurrent use.
type Codec struct {
	prefix string

	mu      sync.RWMutex
	schemas map[string]wire.Factory
	// tags holds the CBOR tag number of every registered schema.
	tags cbor.TagSet
	// nums maps tag numbers back to their schema.
	nums map[uint64]string
	em   cbor.EncMode
	dm   cbor.DecMode
}

var _ apis.Codec = (*Codec)(nil)

// Option configures a Codec.
type Option func(*Codec)

// WithTypeURLPrefix sets the discriminator prefix.
func WithTypeURLPrefix(prefix string) Option {
	return func(c *Codec) {
		if prefix != "" {
			c.prefix = prefix
		}
	}
}

// WithSchemas registers the given message factories. Duplicates are ignored.
func WithSchemas(fs ...wire.Factory) Option {
	return func(c *Codec) {
		for _, f := range fs {
			_ = c.Register(f)
		}
	}
}

// New returns a codec with no schemas registered.
func New(opts ...Option) *Codec {
	c := &Codec{
		prefix:  config.DefaultTypeURLPrefix,
		schemas: make(map[string]wire.Factory),
		tags:    cbor.NewTagSet(),
		nums:    make(map[uint64]string),
	}
	em, dm, err := modes(c.tags)
	if err != nil {
		panic(err)
	}
	c.em, c.dm = em, dm
	for _, o := range opts {
		o(c)
	}
	return c
}

// Default returns a codec knowing every message of package wire.
func Default(opts ...Option) *Codec {
	return New(append([]Option{WithSchemas(wire.Factories()...)}, opts...)...)
}

// Register adds the schema produced by f. A schema can only be registered
// once, and its message must carry a CBOR tag number no other schema uses.
func (c *Codec) Register(f wire.Factory) error {
	if f == nil {
		return errors.InvalidInput(errors.PhaseRegister, "codec: nil factory")
	}
	m := f()
	if m == nil {
		return errors.InvalidInput(errors.PhaseRegister, "codec: factory returned nil")
	}
	name := m.Schema()
	n, ok := m.(wire.Numbered)
	if !ok {
		return errors.InvalidInput(errors.PhaseRegister, "codec: schema "+name+" has no CBOR tag number")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.schemas[name]; ok {
		return errors.Conflict(errors.PhaseRegister, "codec: schema "+name+" already registered")
	}
	num := n.CBORTag()
	if other, ok := c.nums[num]; ok {
		return errors.Conflict(errors.PhaseRegister, fmt.Sprintf("codec: CBOR tag %d of %s already used by %s", num, name, other))
	}
	typ := reflect.TypeOf(m)
	if err := c.tags.Add(tagOptions, typ, num); err != nil {
		return errors.Conflict(errors.PhaseRegister, fmt.Sprintf("codec: schema %s: %v", name, err))
	}
	em, dm, err := modes(c.tags)
	if err != nil {
		c.tags.Remove(typ)
		return errors.New(errors.PhaseRegister, errors.KindInvalidInput).
			Detail("codec: schema %s", name).
			Cause(err).
			Build()
	}
	c.schemas[name] = f
	c.nums[num] = name
	c.em, c.dm = em, dm
	return nil
}

// Schemas returns the registered schema names in sorted order.
func (c *Codec) Schemas() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, 0, len(c.schemas))
	for name := range c.schemas {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Prefix returns the discriminator prefix.
func (c *Codec) Prefix() string { return c.prefix }

// EnvelopeType is the tag of the envelopes produced by Pack.
func (c *Codec) EnvelopeType() apis.Type { return wire.EnvelopeType }

// Pack serializes m and stamps the envelope with m's schema. Only registered
// schemas can be packed.
func (c *Codec) Pack(m apis.Message) (apis.Envelope, error) {
	if m == nil {
		return nil, errors.InvalidInput(errors.PhasePack, "codec: nil message")
	}
	if _, ok := m.(apis.Envelope); ok {
		return nil, errors.InvalidInput(errors.PhasePack, "codec: refusing to pack an envelope")
	}
	if rv := reflect.ValueOf(m); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, errors.InvalidInput(errors.PhasePack, fmt.Sprintf("codec: nil %T message", m))
	}
	schema := m.Schema()

	c.mu.RLock()
	_, ok := c.schemas[schema]
	em := c.em
	c.mu.RUnlock()
	if !ok {
		err := errors.UnknownDiscriminator(schema)
		err.Phase = errors.PhasePack
		return nil, err
	}

	b, err := em.Marshal(m)
	if err != nil {
		return nil, errors.PackFailed(schema, err)
	}
	return &wire.Envelope{
		TypeURL: wire.TypeURL(c.prefix, schema),
		Value:   b,
	}, nil
}

// Unpack decodes the payload of e against the schema its discriminator names.
// A payload tagged for another schema is malformed.
func (c *Codec) Unpack(e apis.Envelope) (apis.Message, error) {
	if e == nil {
		return nil, errors.InvalidInput(errors.PhaseUnpack, "codec: nil envelope")
	}
	disc := e.Discriminator()

	c.mu.RLock()
	f, ok := c.schemas[wire.SchemaName(disc)]
	dm := c.dm
	c.mu.RUnlock()
	if !ok {
		return nil, errors.UnknownDiscriminator(disc)
	}

	m := f()
	if err := dm.Unmarshal(e.Payload(), m); err != nil {
		return nil, errors.Malformed(disc, err)
	}
	return m, nil
}
