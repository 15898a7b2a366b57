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

package reflect

import (
	"errors"
	"path"
	"reflect"
	"strconv"
	"strings"

	"dirpx.dev/argmap/apis"
	"dirpx.dev/argmap/config"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectTypeNotNamed indicates that the provided type (after unwrapping pointers)
	// is not a named type (e.g., anonymous struct, func, []any).
	ErrReflectTypeNotNamed = errors.New("reflect: type is not named")
	// ErrReflectBuiltin indicates a builtin type while builtins are excluded by config.
	ErrReflectBuiltin = errors.New("reflect: builtin type excluded by config")
)

// Normalize unwraps pointers according to config (MaxUnwrap) and returns the
// innermost type. Containers are never unwrapped: a []T is not a T for
// dispatch purposes.
//
// If MaxUnwrap < 0, DefaultMaxUnwrap is used. MaxUnwrap == 0 disables unwrapping.
func Normalize(t reflect.Type, cfg apis.Config) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	maxUnwrap := cfg.MaxUnwrap
	if maxUnwrap < 0 {
		maxUnwrap = config.DefaultMaxUnwrap
	}

	for i := 0; i < maxUnwrap && t.Kind() == reflect.Ptr; i++ {
		t = t.Elem()
	}
	return t, nil
}

// Name returns the "pkg.Type" name of the normalized t.
// Builtin types yield their plain name when cfg.IncludeBuiltins is set and
// ErrReflectBuiltin otherwise; unnamed types yield ErrReflectTypeNotNamed.
func Name(t reflect.Type, cfg apis.Config) (string, error) {
	base, err := Normalize(t, cfg)
	if err != nil {
		return "", err
	}
	if base.Name() == "" {
		return "", ErrReflectTypeNotNamed
	}
	if base.PkgPath() == "" {
		if !cfg.IncludeBuiltins {
			return "", ErrReflectBuiltin
		}
		return base.Name(), nil
	}
	return path.Base(base.PkgPath()) + "." + stripTypeParams(base.Name()), nil
}

// CanonicalName renders t the way type references are exchanged: named types
// as "pkg.Type", builtins by name, composites structurally ("*pkg.T",
// "[]pkg.T", "map[string]pkg.T"). It never fails; nil yields "".
func CanonicalName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	if name := t.Name(); name != "" {
		if p := t.PkgPath(); p != "" {
			return path.Base(p) + "." + stripTypeParams(name)
		}
		return name
	}
	switch t.Kind() {
	case reflect.Ptr:
		return "*" + CanonicalName(t.Elem())
	case reflect.Slice:
		return "[]" + CanonicalName(t.Elem())
	case reflect.Array:
		return "[" + strconv.Itoa(t.Len()) + "]" + CanonicalName(t.Elem())
	case reflect.Map:
		return "map[" + CanonicalName(t.Key()) + "]" + CanonicalName(t.Elem())
	case reflect.Chan:
		return "chan " + CanonicalName(t.Elem())
	default:
		// func, interface and anonymous struct literals
		return t.String()
	}
}

// stripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
