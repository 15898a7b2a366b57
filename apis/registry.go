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

// MapRequest carries the output constraints of a single Map call.
type MapRequest struct {
	// To, when set, requires the mapper output to equal this tag.
	To Type
	// Side, when set, requires the mapper output to live on this side.
	Side Side
}

// MapOption configures a MapRequest.
type MapOption func(*MapRequest)

// To restricts dispatch to mappers producing t.
func To(t Type) MapOption {
	return func(r *MapRequest) { r.To = t }
}

// ToSide restricts dispatch to mappers producing a value on side s.
func ToSide(s Side) MapOption {
	return func(r *MapRequest) { r.Side = s }
}

// NewMapRequest applies opts to an empty request.
func NewMapRequest(opts ...MapOption) MapRequest {
	var r MapRequest
	for _, o := range opts {
		if o != nil {
			o(&r)
		}
	}
	return r
}

// Accepts reports whether a mapper producing out satisfies the request.
func (r MapRequest) Accepts(out Type) bool {
	if !r.To.IsZero() && out != r.To {
		return false
	}
	if r.Side != 0 && out.Side != r.Side {
		return false
	}
	return true
}

// Mappers is the read-only dispatch surface handed to mappers that
// recurse into nested values.
type Mappers interface {
	// Map selects the single applicable mapper for v and returns its result.
	Map(v any, opts ...MapOption) (any, error)
}

// Registry holds the registered mappers and dispatches values to them.
// Registration is expected to complete before concurrent Map calls begin.
type Registry interface {
	Mappers
	// Register adds m. Mappers with an identical signature are rejected.
	Register(m Mapper) error
	// Entries returns a snapshot of the registered mappers in registration order.
	Entries() []Mapper
	// Count returns the number of registered mappers.
	Count() int
	// Seal forbids further registration.
	Seal()
	// Sealed reports whether Seal has been called.
	Sealed() bool
	// Codec returns the envelope codec used for envelope fallbacks.
	Codec() Codec
	// Resolver returns the tag resolver used for dispatch.
	Resolver() Resolver
}
