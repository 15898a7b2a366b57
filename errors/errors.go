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

package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"dirpx.dev/argmap/apis"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseRegister Phase = "register" // mapper registration
	PhaseDispatch Phase = "dispatch" // mapper selection
	PhaseConvert  Phase = "convert"  // mapper execution
	PhasePack     Phase = "pack"     // wire message to envelope
	PhaseUnpack   Phase = "unpack"   // envelope to wire message
	PhaseConfig   Phase = "config"   // configuration loading
)

// Kind categorizes the error
type Kind string

const (
	KindNoMapper             Kind = "no_mapper"
	KindAmbiguous            Kind = "ambiguous"
	KindConversion           Kind = "conversion"
	KindUnknownDiscriminator Kind = "unknown_discriminator"
	KindMalformed            Kind = "malformed"
	KindConflict             Kind = "conflict"
	KindSealed               Kind = "sealed"
	KindTooDeep              Kind = "too_deep"
	KindInvalidInput         Kind = "invalid_input"
)

// Sentinels for errors.Is. They match any *Error of the same Kind.
var (
	ErrNoMapper             = &Error{Kind: KindNoMapper}
	ErrAmbiguous            = &Error{Kind: KindAmbiguous}
	ErrConversion           = &Error{Kind: KindConversion}
	ErrUnknownDiscriminator = &Error{Kind: KindUnknownDiscriminator}
	ErrMalformed            = &Error{Kind: KindMalformed}
	ErrConflict             = &Error{Kind: KindConflict}
	ErrSealed               = &Error{Kind: KindSealed}
	ErrTooDeep              = &Error{Kind: KindTooDeep}
	ErrInvalidInput         = &Error{Kind: KindInvalidInput}
)

// Error is the structured error type used throughout argmap
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Mapper string
	Type   apis.Type
	Want   apis.Type
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Mapper != "" {
		b.WriteString(" in mapper ")
		b.WriteString(e.Mapper)
	}

	if !e.Type.IsZero() || !e.Want.IsZero() {
		b.WriteString(": ")
		switch {
		case !e.Type.IsZero() && !e.Want.IsZero():
			b.WriteString(e.Type.String())
			b.WriteString(" -> ")
			b.WriteString(e.Want.String())
		case !e.Type.IsZero():
			b.WriteString(e.Type.String())
		default:
			b.WriteString("-> ")
			b.WriteString(e.Want.String())
		}
	}

	if e.Detail != "" {
		if !e.Type.IsZero() || !e.Want.IsZero() {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. Kinds must match; the phase
// must also match when the target names one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Phase == "" || t.Phase == e.Phase
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the position inside a nested value
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Mapper sets the mapper name
func (b *Builder) Mapper(name string) *Builder {
	b.err.Mapper = name
	return b
}

// Type sets the tag of the offending value
func (b *Builder) Type(t apis.Type) *Builder {
	b.err.Type = t
	return b
}

// Want sets the requested output tag
func (b *Builder) Want(t apis.Type) *Builder {
	b.err.Want = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors

// NoMapper reports that no registered mapper accepts a value of tag t
// (producing want, when set).
func NoMapper(t, want apis.Type) *Error {
	return &Error{
		Phase:  PhaseDispatch,
		Kind:   KindNoMapper,
		Type:   t,
		Want:   want,
		Detail: "no registered mapper accepts value",
	}
}

// Ambiguous reports that several mappers accept a value of tag t.
func Ambiguous(t, want apis.Type, candidates []string) *Error {
	return &Error{
		Phase:  PhaseDispatch,
		Kind:   KindAmbiguous,
		Type:   t,
		Want:   want,
		Detail: fmt.Sprintf("%d mappers apply: %s", len(candidates), strings.Join(candidates, ", ")),
	}
}

// Conversion wraps a failure raised inside a mapper.
func Conversion(mapper string, cause error) *Error {
	return &Error{
		Phase:  PhaseConvert,
		Kind:   KindConversion,
		Mapper: mapper,
		Detail: "conversion failed",
		Cause:  cause,
	}
}

// UnexpectedInput reports a Go value the mapper cannot handle despite its tag.
func UnexpectedInput(mapper string, v any, want string) *Error {
	return &Error{
		Phase:  PhaseConvert,
		Kind:   KindConversion,
		Mapper: mapper,
		Value:  v,
		Detail: fmt.Sprintf("unexpected input %T, want %s", v, want),
	}
}

// UnknownDiscriminator reports an envelope whose schema is not registered.
func UnknownDiscriminator(discriminator string) *Error {
	return &Error{
		Phase:  PhaseUnpack,
		Kind:   KindUnknownDiscriminator,
		Detail: fmt.Sprintf("no schema registered for %q", discriminator),
	}
}

// Malformed reports an envelope payload that does not decode against its schema.
func Malformed(discriminator string, cause error) *Error {
	return &Error{
		Phase:  PhaseUnpack,
		Kind:   KindMalformed,
		Detail: fmt.Sprintf("payload does not decode as %q", discriminator),
		Cause:  cause,
	}
}

// PackFailed reports a wire message that could not be serialized.
func PackFailed(schema string, cause error) *Error {
	return &Error{
		Phase:  PhasePack,
		Kind:   KindMalformed,
		Detail: fmt.Sprintf("serialize %s", schema),
		Cause:  cause,
	}
}

// Conflict reports a duplicate registration.
func Conflict(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindConflict,
		Detail: what,
	}
}

// Sealed reports a registration attempt after the registry was sealed.
func Sealed(mapper string) *Error {
	return &Error{
		Phase:  PhaseRegister,
		Kind:   KindSealed,
		Mapper: mapper,
		Detail: "registry is sealed",
	}
}

// TooDeep reports a nested value exceeding the configured depth.
func TooDeep(t apis.Type, max int) *Error {
	return &Error{
		Phase:  PhaseDispatch,
		Kind:   KindTooDeep,
		Type:   t,
		Detail: fmt.Sprintf("nesting exceeds max depth %d", max),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool { return stderrors.As(err, target) }

// AtPath returns err with segment prepended to its path. Errors that are not
// an *Error are returned unchanged. The original error is not modified.
func AtPath(err error, segment string) error {
	e, ok := err.(*Error)
	if !ok {
		return err
	}
	c := *e
	c.Path = append([]string{segment}, e.Path...)
	return &c
}
