package codegen

import (
	"fmt"
	"testing"

	"github.com/okra-platform/rpcgen/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tagCodec(kind schema.Kind) KindCodec {
	return KindFuncs{
		TagName: kind.String(),
		ReadFunc: func(dt *schema.DataType, target string) (string, error) {
			return fmt.Sprintf("%s = read_%s()", target, dt.Kind), nil
		},
		WriteFunc: func(dt *schema.DataType, value string) (string, error) {
			return fmt.Sprintf("write_%s(%s)", dt.Kind, value), nil
		},
	}
}

func fullTypeManager(t *testing.T) *TypeManager {
	t.Helper()
	tm := NewTypeManager()
	require.NoError(t, tm.RegisterPrimitives(tagCodec))
	for _, kind := range []schema.Kind{schema.KindEnum, schema.KindList, schema.KindStruct} {
		require.NoError(t, tm.Register(kind, tagCodec(kind)))
	}
	require.NoError(t, tm.Register(schema.KindException, KindFuncs{}))
	return tm
}

func TestTypeManager_DuplicateKind(t *testing.T) {
	// Test: A kind can only be registered once
	tm := NewTypeManager()
	require.NoError(t, tm.Register(schema.KindI32, tagCodec(schema.KindI32)))

	err := tm.Register(schema.KindI32, tagCodec(schema.KindI32))
	assert.ErrorIs(t, err, ErrInvariant)
}

func TestTypeManager_Complete(t *testing.T) {
	// Test: Complete fails until every kind has a codec
	tm := NewTypeManager()
	require.NoError(t, tm.RegisterPrimitives(tagCodec))

	err := tm.Complete()
	assert.ErrorIs(t, err, ErrInvariant)
	assert.Contains(t, err.Error(), "enum")

	assert.NoError(t, fullTypeManager(t).Complete())
}

func TestTypeManager_CodecTagStable(t *testing.T) {
	// Test: CodecTag is defined for every wire kind and stable across calls
	tm := fullTypeManager(t)

	for _, kind := range schema.Kinds() {
		if kind == schema.KindException {
			continue
		}
		dt := &schema.DataType{Kind: kind, Name: "T"}
		first, err := tm.CodecTag(dt)
		require.NoError(t, err)
		second, err := tm.CodecTag(dt)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, kind.String(), first)
	}
}

func TestTypeManager_ExceptionHasNoTag(t *testing.T) {
	// Test: Exceptions cannot be tagged on the wire
	tm := fullTypeManager(t)

	_, err := tm.CodecTag(&schema.DataType{Kind: schema.KindException, Name: "Oops"})
	assert.ErrorIs(t, err, ErrInvariant)
}

func TestTypeManager_Dispatch(t *testing.T) {
	// Test: Read, Write and Define dispatch on the type's kind
	tm := fullTypeManager(t)
	dt := schema.Primitive(schema.KindDouble)

	read, err := tm.Read(dt, "v")
	require.NoError(t, err)
	assert.Equal(t, "v = read_double()", read)

	write, err := tm.Write(dt, "v")
	require.NoError(t, err)
	assert.Equal(t, "write_double(v)", write)

	def, err := tm.Define(dt)
	require.NoError(t, err)
	assert.Empty(t, def)

	_, err = tm.Read(&schema.DataType{Kind: schema.KindException, Name: "Oops"}, "v")
	assert.ErrorIs(t, err, ErrInvariant)
}

func TestTypeManager_UnregisteredKind(t *testing.T) {
	// Test: Dispatching an unregistered kind is an invariant violation
	tm := NewTypeManager()

	_, err := tm.Write(schema.Primitive(schema.KindBool), "v")
	assert.ErrorIs(t, err, ErrInvariant)
}
