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

package wire

import (
	"strings"

	"dirpx.dev/argmap/apis"
)

// EnvelopeSchema is the schema of the envelope itself; on the transport it is
// a google.protobuf.Any.
const EnvelopeSchema = "google.protobuf.Any"

// EnvelopeType is the tag of Envelope.
var EnvelopeType = apis.WireType(EnvelopeSchema)

// Envelope holds one serialized message and the discriminator naming its schema.
type Envelope struct {
	TypeURL string `cbor:"1,keyasint"`
	Value   []byte `cbor:"2,keyasint"`
}

var _ apis.Envelope = (*Envelope)(nil)

func (*Envelope) Schema() string          { return EnvelopeSchema }
func (*Envelope) ArgType() apis.Type      { return EnvelopeType }
func (e *Envelope) Discriminator() string { return e.TypeURL }
func (e *Envelope) Payload() []byte       { return e.Value }

// SchemaName returns the schema named by the envelope discriminator.
func (e *Envelope) SchemaName() string { return SchemaName(e.TypeURL) }

// SchemaName returns the part of a discriminator after its last '/'.
func SchemaName(typeURL string) string {
	if i := strings.LastIndexByte(typeURL, '/'); i >= 0 {
		return typeURL[i+1:]
	}
	return typeURL
}

// TypeURL joins prefix and schema into a discriminator.
func TypeURL(prefix, schema string) string {
	if prefix == "" {
		return schema
	}
	return strings.TrimRight(prefix, "/") + "/" + schema
}
