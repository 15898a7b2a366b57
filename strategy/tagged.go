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

// NewTaggedStrategy creates an apis.Strategy that uses apis.Tagged.
func NewTaggedStrategy() apis.Strategy {
	return &taggedStrategy{}
}

// taggedStrategy is a zero-cost fast path: untyped nil is the absent value,
// and values implementing apis.Tagged describe themselves.
type taggedStrategy struct{}

// Ensure taggedStrategy implements apis.Strategy.
var _ apis.Strategy = (*taggedStrategy)(nil)

// TryResolve returns apis.NilType for nil (including nil native tagged
// pointers) and ArgType() for tagged values. A nil pointer to a wire message
// is handled but left untagged: it has no payload to stand for.
func (*taggedStrategy) TryResolve(v any, _ apis.Config) (apis.Type, bool) {
	if v == nil {
		return apis.NilType, true
	}
	if t, ok := v.(apis.Tagged); ok {
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
			if _, msg := v.(apis.Message); msg {
				return apis.Type{}, true
			}
			return apis.NilType, true
		}
		return t.ArgType(), true
	}
	return apis.Type{}, false
}

// TryResolveType always returns false: ArgType requires an instance.
func (*taggedStrategy) TryResolveType(_ reflect.Type, _ apis.Config) (apis.Type, bool) {
	return apis.Type{}, false
}
