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

// Package mapper implements apis.Mapper: an immutable descriptor made of
// positional input matchers, an output tag and a conversion function.
//
// Conversion failures are logged through the mapper's logger before they are
// returned, so failures deep inside nested values stay diagnosable.
package mapper

import (
	"strings"

	"go.uber.org/zap"

	"dirpx.dev/argmap/apis"
	"dirpx.dev/argmap/errors"
)

// Option configures a mapper.
type Option func(*mapper)

// WithLogger sets the logger conversion failures are reported to.
// A nil logger keeps the default no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *mapper) {
		if l != nil {
			m.log = l
		}
	}
}

type mapper struct {
	name   string
	inputs []apis.Matcher
	output apis.Type
	fn     apis.Func
	log    *zap.Logger
}

var _ apis.Mapper = (*mapper)(nil)

// New builds a mapper. It fails on an empty name, no inputs, a nil input
// matcher, a zero output tag or a nil function.
func New(name string, inputs []apis.Matcher, output apis.Type, fn apis.Func, opts ...Option) (apis.Mapper, error) {
	switch {
	case name == "":
		return nil, errors.InvalidInput(errors.PhaseRegister, "mapper: empty name")
	case len(inputs) == 0:
		return nil, errors.New(errors.PhaseRegister, errors.KindInvalidInput).Mapper(name).Detail("no inputs").Build()
	case output.IsZero():
		return nil, errors.New(errors.PhaseRegister, errors.KindInvalidInput).Mapper(name).Detail("zero output type").Build()
	case fn == nil:
		return nil, errors.New(errors.PhaseRegister, errors.KindInvalidInput).Mapper(name).Detail("nil conversion func").Build()
	}
	for i, in := range inputs {
		if in == nil {
			return nil, errors.New(errors.PhaseRegister, errors.KindInvalidInput).Mapper(name).Detail("nil matcher for input %d", i).Build()
		}
	}

	m := &mapper{
		name:   name,
		inputs: append([]apis.Matcher(nil), inputs...),
		output: output,
		fn:     fn,
		log:    zap.NewNop(),
	}
	for _, o := range opts {
		o(m)
	}
	m.log = m.log.With(zap.String("mapper", name))
	return m, nil
}

// Must is like New but panics on error. Intended for package-level tables.
func Must(name string, inputs []apis.Matcher, output apis.Type, fn apis.Func, opts ...Option) apis.Mapper {
	m, err := New(name, inputs, output, fn, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *mapper) Name() string      { return m.name }
func (m *mapper) Output() apis.Type { return m.output }
func (m *mapper) Inputs() []apis.Matcher {
	return append([]apis.Matcher(nil), m.inputs...)
}

// Accepts reports whether args has the declared arity and every argument
// satisfies the matcher at its position.
func (m *mapper) Accepts(args ...apis.Arg) bool {
	if len(args) != len(m.inputs) {
		return false
	}
	for i, in := range m.inputs {
		if !in.Matches(args[i]) {
			return false
		}
	}
	return true
}

// Convert runs the conversion function. Errors of type *errors.Error are
// returned as is; any other error becomes a conversion error carrying it as
// the cause.
func (m *mapper) Convert(args ...any) (any, error) {
	if len(args) != len(m.inputs) {
		err := errors.New(errors.PhaseConvert, errors.KindInvalidInput).
			Mapper(m.name).
			Detail("got %d arguments, want %d", len(args), len(m.inputs)).
			Build()
		m.log.Error("mapper called with wrong arity", zap.Error(err))
		return nil, err
	}

	out, err := m.fn(args...)
	if err == nil {
		return out, nil
	}

	m.log.Error("mapper conversion failed",
		zap.Stringer("output", m.output),
		zap.Error(err),
	)
	if _, ok := err.(*errors.Error); ok {
		return nil, err
	}
	return nil, errors.Conversion(m.name, err)
}

// String renders the mapper signature, e.g. "sequence-to-wire(native:sequence, meta:registry) -> wire:...".
func (m *mapper) String() string {
	var b strings.Builder
	b.WriteString(m.name)
	b.WriteByte('(')
	for i, in := range m.inputs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(in.Type().String())
		if id := in.ID(); id != "" {
			b.WriteByte('[')
			b.WriteString(id)
			b.WriteByte(']')
		}
	}
	b.WriteString(") -> ")
	b.WriteString(m.output.String())
	return b.String()
}
