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

	"dirpx.dev/argmap/apis"
)

// NewRegistryStrategy creates an apis.Strategy backed by an apis.Types table.
func NewRegistryStrategy(types apis.Types) apis.Strategy {
	return &registryStrategy{types: types}
}

// registryStrategy consults explicit tag assignments for foreign Go types.
type registryStrategy struct {
	types apis.Types
}

// Ensure registryStrategy implements apis.Strategy.
var _ apis.Strategy = (*registryStrategy)(nil)

// TryResolve looks up v's type in the table.
func (s *registryStrategy) TryResolve(v any, _ apis.Config) (apis.Type, bool) {
	if v == nil || s.types == nil {
		return apis.Type{}, false
	}
	return s.types.Lookup(reflect.TypeOf(v))
}

// TryResolveType looks up t in the table.
func (s *registryStrategy) TryResolveType(t reflect.Type, _ apis.Config) (apis.Type, bool) {
	if t == nil || s.types == nil {
		return apis.Type{}, false
	}
	return s.types.Lookup(t)
}
