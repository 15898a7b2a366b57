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

package mapper

import (
	"fmt"

	"dirpx.dev/argmap/apis"
	"dirpx.dev/argmap/errors"
)

// Unary adapts a single-input function over a concrete Go type to apis.Func.
// An argument of any other Go type fails with a conversion error.
func Unary[T any](name string, fn func(T) (any, error)) apis.Func {
	return func(args ...any) (any, error) {
		v, ok := args[0].(T)
		if !ok {
			return nil, errors.UnexpectedInput(name, args[0], typeName[T]())
		}
		return fn(v)
	}
}

// Binary adapts a function taking a concrete Go type and the dispatch view,
// for mappers declared with a second matcher.Registry() input.
func Binary[T any](name string, fn func(T, apis.Mappers) (any, error)) apis.Func {
	return func(args ...any) (any, error) {
		v, ok := args[0].(T)
		if !ok {
			return nil, errors.UnexpectedInput(name, args[0], typeName[T]())
		}
		reg, ok := args[1].(apis.Mappers)
		if !ok {
			return nil, errors.UnexpectedInput(name, args[1], "apis.Mappers")
		}
		return fn(v, reg)
	}
}

func typeName[T any]() string {
	return fmt.Sprintf("%T", (*T)(nil))[1:]
}
