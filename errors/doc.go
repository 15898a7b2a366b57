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

// Package errors provides the structured error type used throughout argmap.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type carries the mapper name, the tags involved, the
// position inside a nested value and the cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDispatch, errors.KindNoMapper).
//		Type(tag).
//		Detail("no mapper accepts value").
//		Build()
//
// Or use convenience constructors:
//
//	err := errors.NoMapper(tag, want)
//	err := errors.Malformed(discriminator, cause)
//
// Every kind has a sentinel usable with the standard errors.Is:
//
//	if errors.Is(err, errors.ErrAmbiguous) { ... }
package errors
