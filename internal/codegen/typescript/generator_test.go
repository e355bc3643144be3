package typescript

import (
	"context"
	"testing"

	"github.com/okra-platform/rpcgen/internal/codegen"
	"github.com/okra-platform/rpcgen/internal/codegen/javascript"
	"github.com/okra-platform/rpcgen/internal/codegen/output"
	"github.com/okra-platform/rpcgen/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(s *schema.Schema, cfg codegen.Config) (map[string]string, error) {
	reg := codegen.NewRegistry()
	if err := reg.Register(Name, New); err != nil {
		return nil, err
	}

	sink := output.NewMemorySink()
	written, err := codegen.Run(context.Background(), reg, Name, s, cfg, sink)
	if err != nil {
		return nil, err
	}
	units := make(map[string]string)
	for _, name := range written {
		data, _ := sink.File(name)
		units[name] = string(data)
	}
	return units, nil
}

func generate(t *testing.T, s *schema.Schema, cfg codegen.Config) map[string]string {
	t.Helper()
	if cfg.Indent == 0 {
		cfg.Indent = 4
	}
	units, err := run(s, cfg)
	require.NoError(t, err)
	require.Len(t, units, 3)
	return units
}

func calcSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.NewBuilder("acme.calc").
		Enum("Op", "Op selects an operation",
			schema.EnumEntry{Name: "ADD", Value: 1},
			schema.EnumEntry{Name: "SUB", Value: 2},
		).
		List("ListOfI32", "i32").
		Struct("Point", "Point is a location\non the plane",
			schema.FieldSpec{ID: 1, Name: "x", Type: "double", Required: true},
			schema.FieldSpec{ID: 2, Name: "label", Type: "string"},
		).
		Exception("DivByZero", "",
			schema.FieldSpec{ID: 1, Name: "msg", Type: "string"},
		).
		Method("divide", "Divides a by b", []schema.FieldSpec{
			{ID: 1, Name: "a", Type: "double", Required: true},
			{ID: 2, Name: "b", Type: "double", Required: true},
		}, "double", "DivByZero").
		Method("apply", "", []schema.FieldSpec{
			{ID: 1, Name: "op", Type: "Op", Required: true},
			{ID: 2, Name: "values", Type: "ListOfI32"},
		}, "i64").
		Method("origin", "", nil, "Point").
		Method("ping", "", nil, "").
		Build()
	require.NoError(t, err)
	return s
}

func TestGenerator_BrowserTypes(t *testing.T) {
	// Test: Browser declarations live in the global namespace with enums and classes under Types
	units := generate(t, calcSchema(t), codegen.Config{})

	types := units[typesFile]
	assert.Contains(t, types, "// Code generated by rpcgen. DO NOT EDIT.")
	assert.Contains(t, types, "declare namespace acme.calc {")
	assert.Contains(t, types, "    export interface Transport {}")
	assert.Contains(t, types, "    export namespace Types {")
	assert.Contains(t, types, "        /** Op selects an operation */\n        export enum Op {\n            ADD = 1,\n            SUB = 2,\n        }")
	assert.Contains(t, types, "        /**\n         * Point is a location\n         * on the plane\n         */\n        export class Point {")
	assert.Contains(t, types, "get_x(): number | null;")
	assert.Contains(t, types, "set_x(x: number | null): void;")
	assert.Contains(t, types, "get_label(): string | null;")
	assert.Contains(t, types, "export class DivByZero {")
	assert.NotContains(t, types, "ListOfI32")
	assert.NotContains(t, types, "export declare")
}

func TestGenerator_AccessStrategies(t *testing.T) {
	// Test: Members follow the access strategy of the matching js run
	tests := []struct {
		access   codegen.FieldAccess
		contains []string
	}{
		{codegen.AccessUnderscore, []string{"get_x(): number | null;", "set_x(x: number | null): void;"}},
		{codegen.AccessCapital, []string{"getX(): number | null;", "setX(x: number | null): void;"}},
		{codegen.AccessDirect, []string{"x: number | null;", "label: string | null;"}},
	}

	for _, tt := range tests {
		t.Run(tt.access.String(), func(t *testing.T) {
			types := generate(t, calcSchema(t), codegen.Config{Access: tt.access})[typesFile]
			for _, want := range tt.contains {
				assert.Contains(t, types, want)
			}
			if tt.access == codegen.AccessDirect {
				assert.NotContains(t, types, "get_x")
				assert.NotContains(t, types, "getX")
			}
		})
	}
}

func TestGenerator_ClientAndProcessor(t *testing.T) {
	// Test: Client methods take arg_ parameters plus a continuation; handlers may suspend
	units := generate(t, calcSchema(t), codegen.Config{})

	client := units[clientFile]
	assert.Contains(t, client, `/// <reference path="./Types.d.ts" />`)
	assert.Contains(t, client, "export class Client {")
	assert.Contains(t, client, "constructor(tr: Transport, codec: Codec);")
	assert.Contains(t, client, "/** Divides a by b */")
	assert.Contains(t, client, "divide(arg_a: number, arg_b: number, on_continue: ContinueCallback): void;")
	assert.Contains(t, client, "apply(arg_op: Types.Op, arg_values: number[], on_continue: ContinueCallback): void;")
	assert.Contains(t, client, "ping(on_continue: ContinueCallback): void;")
	assert.Contains(t, client, javascript.ContinueMethod+"(): boolean;")

	proc := units[processorFile]
	assert.Contains(t, proc, "export interface Handler {")
	assert.Contains(t, proc, "/** @throws {Types.DivByZero} */")
	assert.Contains(t, proc, "divide(arg_a: number, arg_b: number): number | NotFinished;")
	assert.Contains(t, proc, "origin(): Types.Point | NotFinished;")
	assert.Contains(t, proc, "ping(): void | NotFinished;")
	assert.Contains(t, proc, "constructor(impl: Handler);")
	assert.Contains(t, proc, "process_one(tr: Transport, codec: Codec): boolean;")
}

func TestGenerator_NodeTarget(t *testing.T) {
	// Test: Node declarations are modules that re-export Types
	units := generate(t, calcSchema(t), codegen.Config{Options: map[string]string{"target": javascript.TargetNode}})

	types := units[typesFile]
	assert.NotContains(t, types, "declare namespace acme")
	assert.Contains(t, types, "export interface Transport {}")
	assert.Contains(t, types, "export type ContinueCallback = (...args: any[]) => void;")
	assert.Contains(t, types, "export declare namespace Types {")

	for _, name := range []string{clientFile, processorFile} {
		assert.Contains(t, units[name], `export * from "./Types";`, name)
		assert.Contains(t, units[name], `from "./Types";`, name)
		assert.NotContains(t, units[name], "/// <reference", name)
	}
	assert.Contains(t, units[clientFile], "export declare class Client {")
	assert.Contains(t, units[processorFile], "export declare class Processor {")
}

func TestGenerator_Errors(t *testing.T) {
	// Test: Unknown targets, bad namespaces and clashing members fail generation
	_, err := run(calcSchema(t), codegen.Config{Options: map[string]string{"target": "deno"}})
	assert.ErrorIs(t, err, codegen.ErrInvariant)

	_, err = run(calcSchema(t), codegen.Config{Namespace: "acme-calc"})
	assert.ErrorIs(t, err, codegen.ErrNamespace)

	s, err := schema.NewBuilder("ns").Method("constructor", "", nil, "").Build()
	require.NoError(t, err)
	_, err = run(s, codegen.Config{})
	assert.ErrorIs(t, err, codegen.ErrInvariant)

	s, err = schema.NewBuilder("ns").
		Struct("Clash", "",
			schema.FieldSpec{ID: 1, Name: "a_b", Type: "i32"},
			schema.FieldSpec{ID: 2, Name: "A_b", Type: "i32"},
		).
		Build()
	require.NoError(t, err)
	_, err = run(s, codegen.Config{Access: codegen.AccessCapital})
	assert.ErrorIs(t, err, codegen.ErrAccessorConflict)
}

func TestGenerator_EmptySchema(t *testing.T) {
	// Test: A schema without declarations still yields the runtime handles and empty classes
	s, err := schema.NewBuilder("ns").Build()
	require.NoError(t, err)

	units := generate(t, s, codegen.Config{})
	assert.Contains(t, units[typesFile], "export namespace Types {\n    }")
	assert.Contains(t, units[clientFile], "rpc_continue(): boolean;")
	assert.Contains(t, units[processorFile], "export interface Handler {\n    }")
}
