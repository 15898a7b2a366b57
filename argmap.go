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

package argmap

import (
	"reflect"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"dirpx.dev/argmap/apis"
	"dirpx.dev/argmap/builder"
	"dirpx.dev/argmap/config"
	"dirpx.dev/argmap/errors"
)

// init publishes the default snapshot.
func init() {
	s := &state{
		cfg: config.DefaultConfig(),
		bld: builder.New(),
		log: zap.NewNop(),
	}
	s.rebuild(nil)
	st.Store(s)
}

var (
	// ErrNilTypes is raised when a builder returns nil types.
	ErrNilTypes = errors.InvalidInput(errors.PhaseConfig, "argmap: builder returned nil types")
	// ErrNilRegistry is raised when a builder returns a nil registry.
	ErrNilRegistry = errors.InvalidInput(errors.PhaseConfig, "argmap: builder returned nil registry")
	// ErrNilResolver is raised when a builder returns a nil resolver.
	ErrNilResolver = errors.InvalidInput(errors.PhaseConfig, "argmap: builder returned nil resolver")
)

// Map dispatches v through the global registry.
func Map(v any, opts ...apis.MapOption) (any, error) {
	return st.Load().reg.Map(v, opts...)
}

// ToEnvelope maps v to its wire form and wraps it in an envelope.
func ToEnvelope(v any) (apis.Envelope, error) {
	reg := st.Load().reg
	out, err := reg.Map(v, apis.To(reg.Codec().EnvelopeType()))
	if err != nil {
		return nil, err
	}
	env, ok := out.(apis.Envelope)
	if !ok {
		return nil, errors.New(errors.PhaseDispatch, errors.KindConversion).
			Value(out).
			Want(reg.Codec().EnvelopeType()).
			Detail("registry produced %T", out).
			Build()
	}
	return env, nil
}

// FromEnvelope unpacks e and maps its message back to a native value.
func FromEnvelope(e apis.Envelope) (any, error) {
	if e == nil {
		return nil, errors.InvalidInput(errors.PhaseUnpack, "argmap: nil envelope")
	}
	return st.Load().reg.Map(e, apis.ToSide(apis.Native))
}

// Resolve returns the dispatch tag of v.
func Resolve(v any) apis.Type {
	s := st.Load()
	return s.res.Resolve(v, s.cfg)
}

// ResolveType returns the dispatch tag of t.
func ResolveType(t reflect.Type) apis.Type {
	s := st.Load()
	return s.res.ResolveType(t, s.cfg)
}

// Register adds m to the global registry.
func Register(m apis.Mapper) error {
	return st.Load().reg.Register(m)
}

// RegisterType assigns tag to the Go type t in the global types table.
func RegisterType(t reflect.Type, tag apis.Type) error {
	return st.Load().types.Register(t, tag)
}

// Seal forbids further registration on the global registry. Rebuilt
// registries stay sealed.
func Seal() {
	st.Load().reg.Seal()
}

// SetAll explicitly sets all global state components.
//
// Nil arguments leave the corresponding component unchanged,
// except for ext which is always replaced. A non-nil reg or res is pinned;
// a nil one is rebuilt and unpinned.
func SetAll(cfg *apis.Config, ext any, log *zap.Logger, reg apis.Registry, res apis.Resolver, bld apis.Builder) {
	update(func(next *state) {
		if cfg != nil {
			next.cfg = *cfg
		}
		next.ext = ext
		if log != nil {
			next.log = log
		}
		if bld != nil {
			next.bld = bld
		}
		next.reg, next.preg = reg, reg != nil
		next.res, next.pres = res, res != nil
	})
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig replaces the global configuration and rebuilds unpinned layers.
func SetConfig(cfg apis.Config) {
	update(func(next *state) { next.cfg = cfg })
}

// LoadConfig reads a YAML configuration file and applies it with SetConfig.
func LoadConfig(path string) error {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	SetConfig(cfg)
	return nil
}

// Types returns the global types table.
func Types() apis.Types {
	return st.Load().types
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry installs reg as the global registry and pins it.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}
	swap(func(next *state) { next.reg, next.preg = reg, true })
}

// Resolver returns the global resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver installs res as the global resolver and pins it. An unpinned
// registry is rebuilt to dispatch through it.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}
	update(func(next *state) { next.res, next.pres = res, true })
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder replaces the global builder and rebuilds unpinned layers with it.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	update(func(next *state) { next.bld = b })
}

// Logger returns the global logger.
func Logger() *zap.Logger {
	return st.Load().log
}

// SetLogger replaces the global logger. An unpinned registry is rebuilt so
// that its mappers report through l.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	update(func(next *state) { next.log = l })
}

// SetExt replaces extension config and rebuilds non-pinned layers via the builder.
func SetExt[T any](ext T) {
	update(func(next *state) { next.ext = ext })
}

// ExtAs returns the global extension config as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsRegistryPinned reports whether the global registry is pinned.
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry stops the global registry from being rebuilt.
func PinRegistry() {
	swap(func(next *state) { next.preg = true })
}

// UnpinRegistry lets the global registry be rebuilt again on the next change.
func UnpinRegistry() {
	swap(func(next *state) { next.preg = false })
}

// IsResolverPinned reports whether the global resolver is pinned.
func IsResolverPinned() bool {
	return st.Load().pres
}

// PinResolver stops the global resolver (and types table) from being rebuilt.
func PinResolver() {
	swap(func(next *state) { next.pres = true })
}

// UnpinResolver lets the global resolver be rebuilt again on the next change.
func UnpinResolver() {
	swap(func(next *state) { next.pres = false })
}

// update derives a new snapshot from the current one, rebuilds its unpinned
// layers and publishes it.
func update(fn func(next *state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	fn(&next)
	next.rebuild(old)
	st.Store(&next)
}

// swap publishes a modified copy of the current snapshot without rebuilding.
func swap(fn func(next *state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	next := *st.Load()
	fn(&next)
	st.Store(&next)
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global state.
var st atomic.Pointer[state]

// state is the global state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// ext is the global extension configuration.
	ext any
	// log is the logger handed to the builder.
	log *zap.Logger
	// types assigns tags to foreign Go types.
	types apis.Types
	// res tags values for dispatch.
	res apis.Resolver
	// reg holds the mappers.
	reg apis.Registry
	// bld builds types, res and reg.
	bld apis.Builder
	// preg indicates whether reg is pinned.
	preg bool
	// pres indicates whether res (and types with it) is pinned.
	pres bool
}

// rebuild replaces the unpinned layers of s, migrating from old when given.
// Types and resolver go first because the registry dispatches through them.
func (s *state) rebuild(old *state) {
	var (
		ptypes apis.Types
		pres   apis.Resolver
		preg   apis.Registry
	)
	if old != nil {
		ptypes, pres, preg = old.types, old.res, old.reg
	}

	if !s.pres {
		s.types = s.bld.BuildTypes(s.cfg, ptypes, s.ext)
		if s.types == nil {
			panic(ErrNilTypes)
		}
		s.res = s.bld.BuildResolver(s.cfg, s.types, pres, s.ext)
	}
	if s.res == nil {
		panic(ErrNilResolver)
	}

	if !s.preg {
		s.reg = s.bld.BuildRegistry(s.cfg, s.res, s.log, preg, s.ext)
	}
	if s.reg == nil {
		panic(ErrNilRegistry)
	}
}
