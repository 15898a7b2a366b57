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

// Arg is a positional mapper argument together with its resolved tag.
type Arg struct {
	Type  Type
	Value any
}

// Matcher decides whether a candidate argument fits one mapper input.
// Implementations must be pure: dispatch calls them speculatively against
// every registered mapper, possibly from many goroutines.
type Matcher interface {
	// Type is the declared input tag.
	Type() Type
	// ID is the predicate identity, "" for a plain type match.
	ID() string
	// Matches reports whether a satisfies this input.
	Matches(a Arg) bool
}

// Func is the conversion function of a mapper.
// It receives exactly one value per declared input.
type Func func(args ...any) (any, error)

// Mapper is a registered unit of conversion from a fixed input shape to one output type.
type Mapper interface {
	// Name identifies the mapper in logs and errors.
	Name() string
	// Inputs returns the positional input matchers.
	Inputs() []Matcher
	// Output is the tag of the produced value.
	Output() Type
	// Accepts reports whether args has the declared arity and every
	// argument satisfies its matcher.
	Accepts(args ...Arg) bool
	// Convert runs the conversion. Failures are logged before being returned.
	Convert(args ...any) (any, error)
}
