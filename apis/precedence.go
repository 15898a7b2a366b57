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

import (
	"fmt"
	"strings"
)

// Precedence controls how dispatch treats several applicable mappers.
//
// # Values
//
//   - Strict: more than one candidate is a configuration defect and is
//     reported as an ambiguity error. This is the default.
//   - Latest: the most recently registered candidate wins.
type Precedence int

const (
	// Strict reports ambiguity instead of choosing.
	Strict Precedence = iota
	// Latest picks the most recently registered candidate.
	Latest
)

// String returns the canonical name of the precedence.
func (p Precedence) String() string {
	switch p {
	case Strict:
		return "strict"
	case Latest:
		return "latest"
	default:
		return fmt.Sprintf("unknown(%d)", int(p))
	}
}

// ParsePrecedence parses a case-insensitive precedence name.
func ParsePrecedence(s string) (Precedence, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Strict, fmt.Errorf("argmap: empty precedence")
	}

	switch strings.ToLower(trimmed) {
	case "strict":
		return Strict, nil
	case "latest":
		return Latest, nil
	default:
		return Strict, fmt.Errorf("argmap: unknown precedence %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Precedence) MarshalText() ([]byte, error) {
	switch p {
	case Strict, Latest:
		return []byte(p.String()), nil
	default:
		return nil, fmt.Errorf("argmap: cannot marshal unknown precedence %d", int(p))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Precedence) UnmarshalText(text []byte) error {
	value, err := ParsePrecedence(string(text))
	if err != nil {
		return err
	}
	*p = value
	return nil
}
