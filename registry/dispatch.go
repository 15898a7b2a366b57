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

package registry

import (
	"reflect"

	"go.uber.org/zap"

	"dirpx.dev/argmap/apis"
	"dirpx.dev/argmap/errors"
)

// Map selects the single mapper applicable to v under opts, runs it and
// returns its result.
//
// When no mapper applies, envelope requests and envelope values are handled
// by the codec: a wire message is packed directly, a native value is first
// mapped to its wire form and then packed, and an envelope is unpacked and
// dispatched again with the same request.
func (r *Registry) Map(v any, opts ...apis.MapOption) (any, error) {
	return r.dispatch(v, apis.NewMapRequest(opts...), 0)
}

// view is the dispatch surface handed to mappers. It cannot register and it
// carries the nesting depth of the value being converted. Depth grows only
// when a mapper dispatches through its view.
type view struct {
	r     *Registry
	depth int
}

var (
	_ apis.Mappers = view{}
	_ apis.Tagged  = view{}
)

func (w view) Map(v any, opts ...apis.MapOption) (any, error) {
	return w.r.dispatch(v, apis.NewMapRequest(opts...), w.depth)
}

func (view) ArgType() apis.Type { return apis.RegistryType }

func (r *Registry) dispatch(v any, req apis.MapRequest, depth int) (any, error) {
	if m, ok := v.(apis.Message); ok && isNil(m) {
		return nil, errors.New(errors.PhaseDispatch, errors.KindInvalidInput).
			Want(req.To).
			Detail("nil %T message", v).
			Build()
	}
	tag := r.res.Resolve(v, r.cfg)
	if depth > r.cfg.MaxDepth {
		return nil, errors.TooDeep(tag, r.cfg.MaxDepth)
	}
	if tag.IsZero() {
		return nil, errors.New(errors.PhaseDispatch, errors.KindNoMapper).
			Want(req.To).
			Value(v).
			Detail("cannot tag value of Go type %T", v).
			Build()
	}
	if !req.To.IsZero() && req.To == tag {
		return v, nil
	}

	snap := r.snap.Load()
	sub := view{r: r, depth: depth + 1}

	m, err := r.pick(snap, tag, v, req, sub)
	if err != nil {
		return nil, err
	}
	if m != nil {
		return r.invoke(m, v, sub)
	}

	env := r.codec.EnvelopeType()
	switch {
	case req.To == env:
		if msg, ok := v.(apis.Message); ok {
			return r.codec.Pack(msg)
		}
		// Native value: map it to its wire form, then wrap that.
		wm, err := r.pick(snap, tag, v, apis.MapRequest{Side: apis.Wire}, sub)
		if err != nil {
			return nil, err
		}
		if wm == nil {
			return nil, errors.NoMapper(tag, req.To)
		}
		out, err := r.invoke(wm, v, sub)
		if err != nil {
			return nil, err
		}
		switch w := out.(type) {
		case apis.Envelope:
			return w, nil
		case apis.Message:
			return r.codec.Pack(w)
		}
		return nil, errors.NoMapper(r.res.Resolve(out, r.cfg), req.To)

	case tag == env:
		e, ok := v.(apis.Envelope)
		if !ok {
			return nil, errors.NoMapper(tag, req.To)
		}
		msg, err := r.codec.Unpack(e)
		if err != nil {
			return nil, err
		}
		if _, ok := msg.(apis.Envelope); ok {
			return nil, errors.New(errors.PhaseUnpack, errors.KindMalformed).
				Detail("payload of %q is itself an envelope", e.Discriminator()).
				Build()
		}
		// Unpacking does not nest; the payload is converted at the same depth.
		return r.dispatch(msg, req, depth)
	}

	return nil, errors.NoMapper(tag, req.To)
}

// pick returns the mapper to run, nil when none applies, or an ambiguity error.
func (r *Registry) pick(snap *snapshot, tag apis.Type, v any, req apis.MapRequest, sub view) (apis.Mapper, error) {
	var found []apis.Mapper
	for _, idx := range snap.byInput[tag] {
		m := snap.entries[idx]
		if !req.Accepts(m.Output()) {
			continue
		}
		if m.Accepts(args(m, tag, v, sub)...) {
			found = append(found, m)
		}
	}

	switch {
	case len(found) == 0:
		return nil, nil
	case len(found) == 1:
		return found[0], nil
	case r.cfg.Precedence == apis.Latest:
		return found[len(found)-1], nil
	}

	names := make([]string, len(found))
	for i, m := range found {
		names[i] = m.Name()
	}
	err := errors.Ambiguous(tag, req.To, names)
	r.log.Error("ambiguous dispatch", zap.Stringer("type", tag), zap.Strings("candidates", names))
	return nil, err
}

// args builds the candidate arguments for m: v first, then the dispatch view
// for every remaining input. Mappers whose extra inputs are anything other
// than the registry therefore never match.
func args(m apis.Mapper, tag apis.Type, v any, sub view) []apis.Arg {
	n := len(m.Inputs())
	out := make([]apis.Arg, n)
	out[0] = apis.Arg{Type: tag, Value: v}
	for i := 1; i < n; i++ {
		out[i] = apis.Arg{Type: apis.RegistryType, Value: sub}
	}
	return out
}

func (r *Registry) invoke(m apis.Mapper, v any, sub view) (any, error) {
	n := len(m.Inputs())
	in := make([]any, n)
	in[0] = v
	for i := 1; i < n; i++ {
		in[i] = sub
	}
	return m.Convert(in...)
}

func isNil(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
