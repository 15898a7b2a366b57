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

// Package argmap provides a process-wide, bidirectional value-mapping engine.
//
// argmap converts between an in-process dynamic value model (absent values,
// sequences, mappings, identifiers, type references and scalars; see package
// value) and self-describing wire envelopes suitable for cross-process
// transport (see packages wire and codec).
//
// # Design
//
// Conversion is carried out by mappers: immutable descriptors made of
// positional input matchers, an output tag and a conversion function. A
// registry holds the mappers and, given a value, selects the single one that
// applies. Aggregate mappers recurse into their children through the registry
// they receive as a second input, so adding a new leaf type never touches them.
//
// The core of argmap is a read-mostly global snapshot (state). The snapshot
// holds:
//
//   - Config: dispatch limits, the precedence rule applied when several
//     mappers match, and the envelope type URL prefix.
//
//   - Types: explicit tags for foreign Go types such as the builtin string,
//     so bare scalars can sit inside sequences and mappings.
//
//   - Resolver: answers "what is the dispatch tag of this value?". It tries,
//     in order: the value's own ArgType(), the Types table, and finally a
//     reflect-based "pkg.Type" name.
//
//   - Registry: the mappers, the envelope codec and the dispatch algorithm.
//
//   - Builder: a pluggable factory constructing the three layers above from a
//     Config (and optional extension data), migrating state from the previous
//     instances.
//
//   - Logger: the zap logger mapper failures are reported to.
//
// Readers load the current snapshot and never lock:
//
//	env, err := argmap.ToEnvelope(value.Mapping{"a": value.Nil})
//	v, err := argmap.FromEnvelope(env)
//
// Writers (SetConfig, SetBuilder, SetExt, SetLogger, SetRegistry,
// SetResolver, SetAll) take a short build mutex, assemble a new snapshot and
// publish it with an atomic pointer swap.
//
// # Pinning
//
// SetRegistry and SetResolver install a layer and pin it: further
// reconfiguration leaves a pinned layer alone until it is unpinned. Pinning
// the resolver pins the Types table it reads from as well.
//
// # Registration
//
// Custom mappers are added with Register and foreign Go types are tagged with
// RegisterType, normally during process start-up. Seal then forbids further
// registration; rebuilt registries stay sealed. Registering two mappers with
// the same signature is an error, and so is a value matched by two mappers
// at dispatch time unless the Latest precedence is configured.
package argmap
