package backends

import (
	"context"
	"testing"

	"github.com/okra-platform/rpcgen/internal/codegen"
	"github.com/okra-platform/rpcgen/internal/codegen/output"
	"github.com/okra-platform/rpcgen/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Backends(t *testing.T) {
	// Test: The default registry lists every built-in backend in sorted order
	reg := Default()
	assert.Equal(t, []string{"go", "js", "proto", "ts"}, reg.List())
}

func TestDefault_Independent(t *testing.T) {
	// Test: Each call returns a fresh registry
	a := Default()
	b := Default()
	require.NoError(t, a.Register("extra", func(*schema.Schema, codegen.Config) (codegen.Generator, error) {
		return nil, nil
	}))
	assert.NotContains(t, b.List(), "extra")
}

func TestDefault_GenerateEveryBackend(t *testing.T) {
	// Test: Every built-in backend generates three units for the same schema
	s, err := schema.NewBuilder("demo").
		Enum("Color", "", schema.EnumEntry{Name: "RED", Value: 0}, schema.EnumEntry{Name: "BLUE", Value: 1}).
		Struct("Pixel", "",
			schema.FieldSpec{ID: 1, Name: "color", Type: "Color", Required: true},
			schema.FieldSpec{ID: 2, Name: "alpha", Type: "ui8"},
		).
		Method("paint", "", []schema.FieldSpec{{ID: 1, Name: "px", Type: "Pixel", Required: true}}, "bool").
		Build()
	require.NoError(t, err)

	reg := Default()
	for _, backend := range reg.List() {
		t.Run(backend, func(t *testing.T) {
			sink := output.NewMemorySink()
			written, err := codegen.Run(context.Background(), reg, backend, s, codegen.Config{Indent: 4}, sink)
			require.NoError(t, err)
			assert.Len(t, written, 3)
			for _, name := range written {
				data, ok := sink.File(name)
				require.True(t, ok)
				assert.NotEmpty(t, data, name)
			}
		})
	}
}
