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

// Package registry implements the mapper registry and its dispatch algorithm.
//
// Dispatch tags a value through the resolver, collects every mapper whose
// first input accepts it, narrows the set by the requested output tag or
// side, and runs the single survivor. Zero survivors is a NoMapper error and
// several is an Ambiguous error, unless the registry was configured with the
// Latest precedence, in which case the most recently registered candidate wins.
//
// Mappers that declare a second input of tag apis.RegistryType receive a
// read-only view of the registry through which they recurse into nested
// values. The view tracks nesting depth and fails with TooDeep past the
// configured limit.
//
// Registration is expected to finish before concurrent dispatch begins; Seal
// enforces that. Reads are lock-free in any case.
package registry
