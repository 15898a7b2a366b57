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

// Package wire defines the transport-side messages of argmap.
//
// Each native variant has exactly one message with a fixed schema. Messages
// are only produced by mappers and are always handled by pointer. Envelope is
// the type-erased container used wherever heterogeneous messages share a
// slot, such as sequence elements and mapping values.
//
// Field keys are small integers so payloads stay compact and stable across
// renames.
package wire
