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

package apis

import (
	"reflect"
)

// Resolver coordinates strategies to resolve the dispatch tag of values and types.
// Typical chain: TaggedStrategy -> RegistryStrategy -> ReflectStrategy.
type Resolver interface {
	// Resolve returns the tag of v, or the zero Type if none can be determined.
	Resolve(v any, cfg Config) Type

	// ResolveType returns the tag of t, or the zero Type if none can be determined.
	ResolveType(t reflect.Type, cfg Config) Type
}
