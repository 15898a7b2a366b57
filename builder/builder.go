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

package builder

import (
	"go.uber.org/zap"

	"dirpx.dev/argmap/apis"
	"dirpx.dev/argmap/codec"
	"dirpx.dev/argmap/errors"
	"dirpx.dev/argmap/known"
	"dirpx.dev/argmap/registry"
	"dirpx.dev/argmap/resolver"
	"dirpx.dev/argmap/strategy"
	"dirpx.dev/argmap/typereg"
	"dirpx.dev/argmap/value"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildTypes builds a Types table holding the builtin scalar tags plus every
// entry of prev that does not conflict with them.
func (b *builder) BuildTypes(cfg apis.Config, prev apis.Types, _ any) apis.Types {
	types := typereg.New(cfg)
	for _, e := range value.Builtins() {
		_ = types.Register(e.Type, e.Tag)
	}
	if prev != nil {
		for _, e := range prev.Entries() {
			_ = types.Register(e.Type, e.Tag)
		}
	}
	return types
}

// BuildResolver builds the tagged -> types -> reflect resolution chain.
// The previous resolver holds no state worth keeping and is ignored.
func (b *builder) BuildResolver(_ apis.Config, types apis.Types, _ apis.Resolver, _ any) apis.Resolver {
	return resolver.New(
		strategy.NewTaggedStrategy(),
		strategy.NewRegistryStrategy(types),
		strategy.NewReflectStrategy(),
	)
}

// BuildRegistry builds a registry holding the primitive mapper set, then
// carries over the mappers of prev that the primitive set does not already
// cover. A sealed prev yields a sealed registry.
func (b *builder) BuildRegistry(cfg apis.Config, res apis.Resolver, log *zap.Logger, prev apis.Registry, _ any) apis.Registry {
	if log == nil {
		log = zap.NewNop()
	}
	reg := registry.New(cfg,
		registry.WithResolver(res),
		registry.WithCodec(codec.Default(codec.WithTypeURLPrefix(cfg.TypeURLPrefix))),
		registry.WithLogger(log),
	)
	if err := known.Register(reg, log); err != nil {
		log.Error("register primitive mappers", zap.Error(err))
	}

	if prev != nil {
		for _, m := range prev.Entries() {
			err := reg.Register(m)
			switch {
			case err == nil:
			case errors.Is(err, errors.ErrConflict):
				// Already provided by the primitive set.
			default:
				log.Warn("mapper not carried over", zap.String("mapper", m.Name()), zap.Error(err))
			}
		}
		if prev.Sealed() {
			reg.Seal()
		}
	}
	return reg
}
