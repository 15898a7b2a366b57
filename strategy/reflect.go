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

package strategy

import (
	"reflect"
	"sync"

	"dirpx.dev/argmap/apis"
	uref "dirpx.dev/argmap/utils/reflect"
)

// NewReflectStrategy creates an apis.Strategy that derives a Native tag from
// the Go type name, using utils/reflect.Name and memoization.
func NewReflectStrategy() apis.Strategy {
	return reflectStrategy{}
}

// reflectStrategy is the fallback that tags named Go types as
// Native "pkg.Type". It lets applications register mappers for their own
// types without touching the Types table. Unnamed types stay unresolved.
type reflectStrategy struct{}

// Ensure reflectStrategy implements apis.Strategy.
var _ apis.Strategy = (*reflectStrategy)(nil)

// cacheKey ensures memoization respects all config knobs that affect resolution.
type cacheKey struct {
	t              reflect.Type
	includeBuiltin bool
	maxUnwrap      int16
}

// tagCache caches resolved tags by (type, config knobs). A zero tag
// records a type that cannot be tagged.
var tagCache sync.Map // key: cacheKey, val: apis.Type

// TryResolve computes the tag for v's type.
func (reflectStrategy) TryResolve(v any, cfg apis.Config) (apis.Type, bool) {
	if v == nil {
		return apis.Type{}, false
	}
	return byType(reflect.TypeOf(v), cfg)
}

// TryResolveType computes the tag for t.
func (reflectStrategy) TryResolveType(t reflect.Type, cfg apis.Config) (apis.Type, bool) {
	if t == nil {
		return apis.Type{}, false
	}
	return byType(t, cfg)
}

// byType resolves the tag for t with memoization.
func byType(t reflect.Type, cfg apis.Config) (apis.Type, bool) {
	key := cacheKey{
		t:              t,
		includeBuiltin: cfg.IncludeBuiltins,
		maxUnwrap:      int16(cfg.MaxUnwrap),
	}
	if v, ok := tagCache.Load(key); ok {
		tag := v.(apis.Type)
		return tag, !tag.IsZero()
	}

	var tag apis.Type
	if name, err := uref.Name(t, cfg); err == nil {
		tag = apis.NativeType(name)
	}

	tagCache.Store(key, tag)
	return tag, !tag.IsZero()
}
