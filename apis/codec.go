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

// Message is a concrete wire value with a fixed schema.
type Message interface {
	Tagged
	// Schema returns the full schema name, e.g. "argmap.wire.v1.Sequence".
	Schema() string
}

// Envelope is a type-erased container for one Message.
type Envelope interface {
	Message
	// Discriminator names the schema of the embedded payload.
	Discriminator() string
	// Payload returns the serialized embedded message.
	Payload() []byte
}

// Codec bridges (discriminator, bytes) and concrete messages.
// It has no knowledge of the native value model.
type Codec interface {
	// Pack serializes m and stamps the discriminator with m's schema.
	Pack(m Message) (Envelope, error)
	// Unpack decodes the payload of e against the schema named by its discriminator.
	Unpack(e Envelope) (Message, error)
	// EnvelopeType is the tag of the envelopes this codec produces.
	EnvelopeType() Type
}
