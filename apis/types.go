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

import "reflect"

// Types assigns dispatch tags to foreign Go types that cannot implement Tagged
// (for example the builtin string). Keep it minimal so implementations can be
// lock-free or sync.Map-backed.
type Types interface {
	// Register associates a (pointer-normalized) reflect.Type with a tag.
	// Re-registering the same pair is a no-op; a different tag is a conflict.
	Register(t reflect.Type, tag Type) error
	// Lookup returns the tag for a type if present.
	Lookup(t reflect.Type) (tag Type, ok bool)
	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []TypeEntry
	// Count returns the number of registered entries.
	Count() int
	// Reset clears all registered entries.
	Reset()
}

// TypeEntry is a single (type, tag) association in a Types snapshot.
type TypeEntry struct {
	// Type is the registered reflect.Type.
	Type reflect.Type
	// Tag is the associated dispatch tag.
	Tag Type
}
