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

package typereg

import (
	"reflect"
	"sync"

	"dirpx.dev/argmap/apis"
	"dirpx.dev/argmap/config"
	"dirpx.dev/argmap/errors"
	uref "dirpx.dev/argmap/utils/reflect"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.InvalidInput(errors.PhaseRegister, "typereg: nil reflect.Type provided")
	// ErrZeroTag is returned when the zero apis.Type is provided.
	ErrZeroTag = errors.InvalidInput(errors.PhaseRegister, "typereg: zero tag provided")
	// ErrConflictingRegistration indicates an attempt to re-register
	// a type with a different tag.
	ErrConflictingRegistration = errors.Conflict(errors.PhaseRegister, "typereg: conflicting type registration")
)

// New constructs a Types table that normalizes types according to cfg.
// Only MaxUnwrap is used here.
func New(cfg apis.Config) apis.Types {
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = config.DefaultMaxUnwrap
	}
	return &table{cfg: cfg}
}

// table is a simple Types implementation backed by sync.Map.
type table struct {
	// cfg is the configuration used for type normalization.
	cfg apis.Config
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps reflect.Type to its registered tag.
	m sync.Map // map[reflect.Type]apis.Type
	// count tracks the number of registered entries.
	count int
}

// Register associates the normalized type of t with the given tag.
// It is idempotent for the same (type,tag) pair.
func (r *table) Register(t reflect.Type, tag apis.Type) error {
	// Validate inputs early.
	if t == nil {
		return ErrNilType
	}
	if tag.IsZero() {
		return ErrZeroTag
	}

	b, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return err
	}

	// Fast read path: idempotency / conflict check without locking.
	if old, ok := r.m.Load(b); ok {
		if old.(apis.Type) == tag {
			return nil // idempotent re-registration
		}
		return ErrConflictingRegistration
	}

	// Write path: guard with a mutex to keep counter consistent and avoid ABA.
	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := r.m.Load(b); ok {
		if old.(apis.Type) == tag {
			return nil
		}
		return ErrConflictingRegistration
	}

	r.m.Store(b, tag)
	r.count++
	return nil
}

// Lookup returns the tag for a type if present.
func (r *table) Lookup(t reflect.Type) (apis.Type, bool) {
	if t == nil {
		return apis.Type{}, false
	}
	nt, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return apis.Type{}, false
	}
	if v, ok := r.m.Load(nt); ok {
		return v.(apis.Type), true
	}
	return apis.Type{}, false
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *table) Entries() []apis.TypeEntry {
	entries := make([]apis.TypeEntry, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		entries = append(entries, apis.TypeEntry{
			Type: key.(reflect.Type),
			Tag:  value.(apis.Type),
		})
		return true
	})
	return entries
}

// Count returns the number of registered entries.
func (r *table) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered entries.
func (r *table) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.Clear()
	r.count = 0
}
