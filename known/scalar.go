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

package known

import (
	"dirpx.dev/argmap/apis"
	"dirpx.dev/argmap/errors"
	"dirpx.dev/argmap/mapper"
	"dirpx.dev/argmap/matcher"
	"dirpx.dev/argmap/value"
	"dirpx.dev/argmap/wire"
)

// scalars maps bare Go scalars (and their wrappers) to wire scalars and wire
// scalars back to wrappers.
func scalars(opt mapper.Option) []apis.Mapper {
	one := func(t apis.Type) []apis.Matcher { return []apis.Matcher{matcher.Type(t)} }
	return []apis.Mapper{
		mapper.Must(StringToWire, one(value.StringType), wire.StringType, stringToWire, opt),
		mapper.Must(WireToString, one(wire.StringType), value.StringType,
			mapper.Unary(WireToString, func(w *wire.String) (any, error) { return value.String{V: w.Value}, nil }), opt),
		mapper.Must(IntToWire, one(value.IntType), wire.IntType, intToWire, opt),
		mapper.Must(WireToInt, one(wire.IntType), value.IntType,
			mapper.Unary(WireToInt, func(w *wire.Int) (any, error) { return value.Int{V: w.Value}, nil }), opt),
		mapper.Must(FloatToWire, one(value.FloatType), wire.FloatType, floatToWire, opt),
		mapper.Must(WireToFloat, one(wire.FloatType), value.FloatType,
			mapper.Unary(WireToFloat, func(w *wire.Float) (any, error) { return value.Float{V: w.Value}, nil }), opt),
		mapper.Must(BoolToWire, one(value.BoolType), wire.BoolType, boolToWire, opt),
		mapper.Must(WireToBool, one(wire.BoolType), value.BoolType,
			mapper.Unary(WireToBool, func(w *wire.Bool) (any, error) { return value.Bool{V: w.Value}, nil }), opt),
	}
}

func stringToWire(args ...any) (any, error) {
	if s, ok := value.Unwrap(args[0]).(string); ok {
		return &wire.String{Value: s}, nil
	}
	return nil, errors.UnexpectedInput(StringToWire, args[0], "string")
}

func intToWire(args ...any) (any, error) {
	switch n := value.Unwrap(args[0]).(type) {
	case int:
		return &wire.Int{Value: int64(n)}, nil
	case int32:
		return &wire.Int{Value: int64(n)}, nil
	case int64:
		return &wire.Int{Value: n}, nil
	}
	return nil, errors.UnexpectedInput(IntToWire, args[0], "int64")
}

func floatToWire(args ...any) (any, error) {
	switch f := value.Unwrap(args[0]).(type) {
	case float32:
		return &wire.Float{Value: float64(f)}, nil
	case float64:
		return &wire.Float{Value: f}, nil
	}
	return nil, errors.UnexpectedInput(FloatToWire, args[0], "float64")
}

func boolToWire(args ...any) (any, error) {
	if b, ok := value.Unwrap(args[0]).(bool); ok {
		return &wire.Bool{Value: b}, nil
	}
	return nil, errors.UnexpectedInput(BoolToWire, args[0], "bool")
}
