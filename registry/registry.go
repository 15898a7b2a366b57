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

package registry

import (
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"dirpx.dev/argmap/apis"
	"dirpx.dev/argmap/codec"
	"dirpx.dev/argmap/config"
	"dirpx.dev/argmap/errors"
	"dirpx.dev/argmap/resolver"
	"dirpx.dev/argmap/strategy"
	"dirpx.dev/argmap/typereg"
	"dirpx.dev/argmap/value"
)

// Option configures a Registry.
type Option func(*Registry)

// WithResolver sets the resolver used to tag values. Nil keeps the default
// tagged -> builtin scalars -> reflect chain.
func WithResolver(res apis.Resolver) Option {
	return func(r *Registry) {
		if res != nil {
			r.res = res
		}
	}
}

// WithCodec sets the envelope codec used by the envelope fallbacks.
func WithCodec(c apis.Codec) Option {
	return func(r *Registry) {
		if c != nil {
			r.codec = c
		}
	}
}

// WithLogger sets the logger dispatch defects are reported to.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// New constructs an empty Registry. Zero or negative limits in cfg fall back
// to the config defaults.
func New(cfg apis.Config, opts ...Option) *Registry {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = config.DefaultMaxDepth
	}
	if cfg.TypeURLPrefix == "" {
		cfg.TypeURLPrefix = config.DefaultTypeURLPrefix
	}

	r := &Registry{cfg: cfg, log: zap.NewNop()}
	for _, o := range opts {
		o(r)
	}
	if r.res == nil {
		types := typereg.New(cfg)
		for _, e := range value.Builtins() {
			_ = types.Register(e.Type, e.Tag)
		}
		r.res = resolver.New(
			strategy.NewTaggedStrategy(),
			strategy.NewRegistryStrategy(types),
			strategy.NewReflectStrategy(),
		)
	}
	if r.codec == nil {
		r.codec = codec.Default(codec.WithTypeURLPrefix(cfg.TypeURLPrefix))
	}
	r.snap.Store(&snapshot{})
	return r
}

// Registry is the mapper registry. Registration is serialized and builds a new
// snapshot on every call; Map only loads the current snapshot and never locks.
type Registry struct {
	// cfg holds dispatch limits and the precedence rule.
	cfg apis.Config
	// res tags values before matching.
	res apis.Resolver
	// codec packs and unpacks envelopes for the envelope fallbacks.
	codec apis.Codec
	// log receives dispatch defects.
	log *zap.Logger

	// mu serializes writers.
	mu sync.Mutex
	// snap is the published, immutable set of mappers.
	snap atomic.Pointer[snapshot]
	// sealed forbids further registration once set.
	sealed atomic.Bool
}

// Ensure Registry implements apis.Registry.
var _ apis.Registry = (*Registry)(nil)

// snapshot is never modified after it has been published.
type snapshot struct {
	// entries in registration order.
	entries []apis.Mapper
	// sigs maps a signature to the name of the mapper holding it.
	sigs map[string]string
	// byInput indexes entries by the tag of their first input.
	byInput map[apis.Type][]int
}

func (s *snapshot) with(m apis.Mapper, sig string) *snapshot {
	n := &snapshot{
		entries: make([]apis.Mapper, len(s.entries), len(s.entries)+1),
		sigs:    make(map[string]string, len(s.sigs)+1),
		byInput: make(map[apis.Type][]int, len(s.byInput)+1),
	}
	copy(n.entries, s.entries)
	for k, v := range s.sigs {
		n.sigs[k] = v
	}
	for k, v := range s.byInput {
		n.byInput[k] = v
	}

	idx := len(n.entries)
	n.entries = append(n.entries, m)
	n.sigs[sig] = m.Name()
	in := m.Inputs()[0].Type()
	n.byInput[in] = append(append([]int(nil), s.byInput[in]...), idx)
	return n
}

// signature identifies a mapper for collision detection: the tag and predicate
// identity of every input plus the output tag.
func signature(m apis.Mapper) string {
	var b strings.Builder
	for i, in := range m.Inputs() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(in.Type().String())
		if id := in.ID(); id != "" {
			b.WriteByte('[')
			b.WriteString(id)
			b.WriteByte(']')
		}
	}
	b.WriteString("->")
	b.WriteString(m.Output().String())
	return b.String()
}

// Register adds m. A mapper whose signature is already taken is rejected
// with a conflict error; nothing is replaced.
func (r *Registry) Register(m apis.Mapper) error {
	if m == nil {
		return errors.InvalidInput(errors.PhaseRegister, "registry: nil mapper")
	}
	inputs := m.Inputs()
	if len(inputs) == 0 || inputs[0] == nil {
		return errors.New(errors.PhaseRegister, errors.KindInvalidInput).
			Mapper(m.Name()).
			Detail("mapper declares no inputs").
			Build()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed.Load() {
		return errors.Sealed(m.Name())
	}

	sig := signature(m)
	cur := r.snap.Load()
	if prev, ok := cur.sigs[sig]; ok {
		return errors.New(errors.PhaseRegister, errors.KindConflict).
			Mapper(m.Name()).
			Detail("signature %s already registered by %q", sig, prev).
			Build()
	}

	r.snap.Store(cur.with(m, sig))
	r.log.Debug("mapper registered", zap.String("mapper", m.Name()), zap.String("signature", sig))
	return nil
}

// RegisterAll registers every mapper and returns the combined failures.
// Mappers that register successfully stay registered.
func (r *Registry) RegisterAll(ms ...apis.Mapper) error {
	var err error
	for _, m := range ms {
		err = multierr.Append(err, r.Register(m))
	}
	return err
}

// Entries returns the registered mappers in registration order.
func (r *Registry) Entries() []apis.Mapper {
	return append([]apis.Mapper(nil), r.snap.Load().entries...)
}

// Count returns the number of registered mappers.
func (r *Registry) Count() int { return len(r.snap.Load().entries) }

// Seal forbids further registration. It cannot be undone.
func (r *Registry) Seal() {
	r.mu.Lock()
	r.sealed.Store(true)
	r.mu.Unlock()
}

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool { return r.sealed.Load() }

// Codec returns the envelope codec.
func (r *Registry) Codec() apis.Codec { return r.codec }

// Resolver returns the tag resolver.
func (r *Registry) Resolver() apis.Resolver { return r.res }

// Config returns the configuration the registry dispatches with.
func (r *Registry) Config() apis.Config { return r.cfg }
