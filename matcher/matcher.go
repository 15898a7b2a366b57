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

// Package matcher provides capability matchers: the per-input acceptance
// test of a mapper.
package matcher

import "dirpx.dev/argmap/apis"

// Predicate inspects the payload of a candidate whose tag already matched.
type Predicate func(v any) bool

// Type returns a matcher accepting any argument tagged t.
func Type(t apis.Type) apis.Matcher {
	return typeMatcher{t: t}
}

// Where returns a matcher accepting arguments tagged t for which pred holds.
// id names the predicate; two matchers on the same tag collide only when
// their ids are equal. A nil pred behaves like Type(t) with the given id.
func Where(t apis.Type, id string, pred Predicate) apis.Matcher {
	return predMatcher{t: t, id: id, pred: pred}
}

// Registry matches the dispatch view injected into recursive mappers.
func Registry() apis.Matcher {
	return Type(apis.RegistryType)
}

type typeMatcher struct {
	t apis.Type
}

func (m typeMatcher) Type() apis.Type         { return m.t }
func (typeMatcher) ID() string                { return "" }
func (m typeMatcher) Matches(a apis.Arg) bool { return a.Type == m.t }
func (m typeMatcher) String() string          { return m.t.String() }

type predMatcher struct {
	t    apis.Type
	id   string
	pred Predicate
}

func (m predMatcher) Type() apis.Type { return m.t }
func (m predMatcher) ID() string      { return m.id }

func (m predMatcher) Matches(a apis.Arg) bool {
	if a.Type != m.t {
		return false
	}
	return m.pred == nil || m.pred(a.Value)
}

func (m predMatcher) String() string {
	return m.t.String() + "[" + m.id + "]"
}
