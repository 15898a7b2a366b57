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

package codec

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/anypb"

	"dirpx.dev/argmap/apis"
	"dirpx.dev/argmap/errors"
	"dirpx.dev/argmap/wire"
)

// ToAny converts an envelope into its protobuf transport form.
func ToAny(e apis.Envelope) *anypb.Any {
	return &anypb.Any{
		TypeUrl: e.Discriminator(),
		Value:   e.Payload(),
	}
}

// FromAny converts a protobuf Any back into an envelope.
func FromAny(a *anypb.Any) *wire.Envelope {
	return &wire.Envelope{
		TypeURL: a.GetTypeUrl(),
		Value:   a.GetValue(),
	}
}

// Marshal encodes e as a serialized google.protobuf.Any.
func (c *Codec) Marshal(e apis.Envelope) ([]byte, error) {
	if e == nil {
		return nil, errors.InvalidInput(errors.PhasePack, "codec: nil envelope")
	}
	b, err := proto.Marshal(ToAny(e))
	if err != nil {
		return nil, errors.PackFailed(wire.EnvelopeSchema, err)
	}
	return b, nil
}

// Unmarshal decodes a serialized google.protobuf.Any into an envelope.
// The embedded payload is not inspected; use Unpack for that.
func (c *Codec) Unmarshal(b []byte) (apis.Envelope, error) {
	a := &anypb.Any{}
	if err := proto.Unmarshal(b, a); err != nil {
		return nil, errors.Malformed(wire.EnvelopeSchema, err)
	}
	if a.GetTypeUrl() == "" {
		return nil, errors.UnknownDiscriminator("")
	}
	return FromAny(a), nil
}
