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

// Package codec implements the envelope codec: a bridge between
// (discriminator, bytes) pairs and concrete wire messages.
//
// Payloads are encoded with CBOR using core deterministic encoding, so the
// same message always packs to the same bytes. Decoding is strict: unknown
// fields, duplicate keys, trailing bytes and truncated input are all
// reported as malformed payloads.
//
// Envelopes travel between processes as a protobuf google.protobuf.Any
// (see Marshal and Unmarshal); the discriminator becomes the Any type URL.
//
// The codec knows nothing about the native value model.
package codec
