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

package builder_test

import (
	"reflect"
	"runtime"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"dirpx.dev/argmap/apis"
	"dirpx.dev/argmap/builder"
	"dirpx.dev/argmap/config"
	"dirpx.dev/argmap/errors"
	"dirpx.dev/argmap/known"
	"dirpx.dev/argmap/mapper"
	"dirpx.dev/argmap/matcher"
	"dirpx.dev/argmap/typereg"
	"dirpx.dev/argmap/value"
	"dirpx.dev/argmap/wire"
)

// userType is a plain named type with no special behavior.
// It is used to test fallback via reflection.
type userType struct{}

// hotType implements apis.Tagged and is used to verify that the
// tagged strategy takes priority over other strategies.
type hotType struct{}

func (hotType) ArgType() apis.Type { return apis.NativeType("hot") }

// build runs the three builder steps the way the root package does.
func build(t *testing.T, cfg apis.Config, log *zap.Logger) (apis.Types, apis.Resolver, apis.Registry) {
	t.Helper()
	b := builder.New()
	types := b.BuildTypes(cfg, nil, nil)
	res := b.BuildResolver(cfg, types, nil, nil)
	reg := b.BuildRegistry(cfg, res, log, nil, nil)
	if types == nil || res == nil || reg == nil {
		t.Fatal("builder returned nil")
	}
	return types, res, reg
}

// TestBuildTypes_Builtins asserts that bare Go scalars are tagged.
func TestBuildTypes_Builtins(t *testing.T) {
	types := builder.New().BuildTypes(config.DefaultConfig(), nil, nil)

	for _, e := range value.Builtins() {
		got, ok := types.Lookup(e.Type)
		if !ok || got != e.Tag {
			t.Fatalf("Lookup(%v) = (%v,%v), want (%v,true)", e.Type, got, ok, e.Tag)
		}
	}
	if got := types.Count(); got != len(value.Builtins()) {
		t.Fatalf("Count = %d, want %d", got, len(value.Builtins()))
	}
}

// TestBuildTypes_MigratesPrev asserts that entries of a previous table survive.
func TestBuildTypes_MigratesPrev(t *testing.T) {
	cfg := config.DefaultConfig()
	prev := typereg.New(cfg)
	if err := prev.Register(reflect.TypeOf(userType{}), apis.NativeType("user")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	// Conflicts with a builtin and must be dropped.
	if err := prev.Register(reflect.TypeFor[bool](), apis.NativeType("flag")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	types := builder.New().BuildTypes(cfg, prev, nil)
	if got, ok := types.Lookup(reflect.TypeOf(userType{})); !ok || got != apis.NativeType("user") {
		t.Fatalf("migrated entry lost: (%v,%v)", got, ok)
	}
	if got, _ := types.Lookup(reflect.TypeFor[bool]()); got != value.BoolType {
		t.Fatalf("builtin overridden: %v", got)
	}
}

// TestBuildResolver_Order_TaggedThenTypesThenReflect verifies resolution priority:
// 1. If the value implements apis.Tagged, use ArgType().
// 2. Otherwise, if the type is registered in Types, use that.
// 3. Otherwise, fall back to the reflect-based strategy ("pkg.Type").
func TestBuildResolver_Order_TaggedThenTypesThenReflect(t *testing.T) {
	cfg := config.DefaultConfig()
	types, res, _ := build(t, cfg, nil)

	type fromTypes struct{}
	if err := types.Register(reflect.TypeOf(fromTypes{}), apis.NativeType("from-types")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if got := res.Resolve(hotType{}, cfg); got != apis.NativeType("hot") {
		t.Fatalf("tagged priority broken: got %v", got)
	}
	if got := res.Resolve(fromTypes{}, cfg); got != apis.NativeType("from-types") {
		t.Fatalf("types strategy broken: got %v", got)
	}
	if got := res.Resolve("x", cfg); got != value.StringType {
		t.Fatalf("builtin scalar not tagged: got %v", got)
	}
	if got := res.Resolve(nil, cfg); got != value.AbsentType {
		t.Fatalf("nil not absent: got %v", got)
	}
	if got := res.Resolve(userType{}, cfg); got != apis.NativeType("builder_test.userType") {
		t.Fatalf("reflect fallback broken: got %v", got)
	}
}

// TestBuildRegistry_Primitives asserts the built registry carries the primitive set
// and dispatches bare scalars.
func TestBuildRegistry_Primitives(t *testing.T) {
	_, _, reg := build(t, config.DefaultConfig(), nil)

	if got, want := reg.Count(), len(known.Mappers(nil, nil)); got != want {
		t.Fatalf("Count = %d, want %d", got, want)
	}

	out, err := reg.Map("hello")
	if err != nil {
		t.Fatalf("Map(string): %v", err)
	}
	if w, ok := out.(*wire.String); !ok || w.Value != "hello" {
		t.Fatalf("Map(string) = %#v", out)
	}
}

// TestBuildRegistry_Prefix asserts the codec follows the configured prefix.
func TestBuildRegistry_Prefix(t *testing.T) {
	_, _, reg := build(t, config.NewConfig(config.WithTypeURLPrefix("example.com/t")), nil)

	out, err := reg.Map(value.Identifier("x"), apis.To(wire.EnvelopeType))
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if got := out.(apis.Envelope).Discriminator(); got != "example.com/t/"+wire.IdentifierSchema {
		t.Fatalf("discriminator = %q", got)
	}
}

// TestBuildRegistry_MigratesCustomMappers asserts that user mappers survive a
// rebuild while the primitive set is not duplicated.
func TestBuildRegistry_MigratesCustomMappers(t *testing.T) {
	cfg := config.DefaultConfig()
	core, logs := observer.New(zapcore.WarnLevel)
	_, res, prev := build(t, cfg, nil)

	custom := mapper.Must("user-to-wire",
		[]apis.Matcher{matcher.Type(apis.NativeType("user"))},
		wire.StringType,
		func(...any) (any, error) { return &wire.String{Value: "user"}, nil },
	)
	if err := prev.Register(custom); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	prev.Seal()

	next := builder.New().BuildRegistry(cfg, res, zap.New(core), prev, nil)
	if got, want := next.Count(), prev.Count(); got != want {
		t.Fatalf("Count = %d, want %d", got, want)
	}
	if !next.Sealed() {
		t.Fatal("sealed state not carried over")
	}
	if logs.Len() != 0 {
		t.Fatalf("unexpected warnings: %v", logs.All())
	}
	if err := next.Register(custom); !errors.Is(err, errors.ErrSealed) {
		t.Fatalf("Register after rebuild of sealed registry: %v", err)
	}
}

// TestBuildResolver_Concurrency_Smoke hammers the resolver in parallel to ensure
// it is safe to call Resolve/ResolveType concurrently after being built.
func TestBuildResolver_Concurrency_Smoke(t *testing.T) {
	cfg := config.DefaultConfig()
	types, res, _ := build(t, cfg, nil)
	_ = types.Register(reflect.TypeOf(userType{}), apis.NativeType("user"))

	rtypes := []reflect.Type{
		reflect.TypeOf(userType{}),
		reflect.TypeOf(hotType{}),
		reflect.TypeOf(&userType{}),
		reflect.TypeOf([]userType{}),
	}

	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				tt := rtypes[(i+id)%len(rtypes)]
				_ = res.ResolveType(tt, cfg)
				_ = res.Resolve(hotType{}, cfg)
				_ = res.Resolve(int64(i), cfg)
			}
		}(w)
	}

	wg.Wait()
}

// Compile-time check: builder.New() must satisfy apis.Builder.
var _ apis.Builder = builder.New()
