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

// Package known provides the primitive mapper set: conversions between the
// native value model of package value and the wire messages of package wire.
//
// Aggregate mappers never call another mapper directly. Every child goes back
// through the registry view they receive, so adding a new leaf type needs no
// change here. A failing child aborts the whole aggregate; no partial result
// is ever returned.
//
//	reg := registry.New(cfg)
//	if err := known.Register(reg, log); err != nil {
//		return err
//	}
//	env, err := reg.Map(value.Sequence{value.Identifier("x")}, apis.To(wire.EnvelopeType))
package known
