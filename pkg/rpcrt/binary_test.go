package rpcrt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinaryProtocol_Primitives(t *testing.T) {
	// Test: every primitive survives an encode/decode pass, including extremes
	proto := NewBinaryProtocol()
	enc := proto.NewEncoder()

	require.NoError(t, enc.WriteBinary([]byte{0, 1, 2}))
	require.NoError(t, enc.WriteString("héllo"))
	require.NoError(t, enc.WriteBool(true))
	require.NoError(t, enc.WriteUI8(math.MaxUint8))
	require.NoError(t, enc.WriteUI16(math.MaxUint16))
	require.NoError(t, enc.WriteUI32(math.MaxUint32))
	require.NoError(t, enc.WriteUI64(math.MaxUint64))
	require.NoError(t, enc.WriteI8(math.MinInt8))
	require.NoError(t, enc.WriteI16(math.MinInt16))
	require.NoError(t, enc.WriteI32(math.MinInt32))
	require.NoError(t, enc.WriteI64(math.MinInt64))
	require.NoError(t, enc.WriteFloat(1.5))
	require.NoError(t, enc.WriteDouble(-2.25))

	dec := proto.NewDecoder(enc.Bytes())

	b, err := dec.ReadBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 2}, b)

	s, err := dec.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "héllo", s)

	bl, err := dec.ReadBool()
	require.NoError(t, err)
	assert.True(t, bl)

	u8, _ := dec.ReadUI8()
	u16, _ := dec.ReadUI16()
	u32, _ := dec.ReadUI32()
	u64, _ := dec.ReadUI64()
	assert.Equal(t, uint8(math.MaxUint8), u8)
	assert.Equal(t, uint16(math.MaxUint16), u16)
	assert.Equal(t, uint32(math.MaxUint32), u32)
	assert.Equal(t, uint64(math.MaxUint64), u64)

	i8, _ := dec.ReadI8()
	i16, _ := dec.ReadI16()
	i32, _ := dec.ReadI32()
	i64, _ := dec.ReadI64()
	assert.Equal(t, int8(math.MinInt8), i8)
	assert.Equal(t, int16(math.MinInt16), i16)
	assert.Equal(t, int32(math.MinInt32), i32)
	assert.Equal(t, int64(math.MinInt64), i64)

	f, _ := dec.ReadFloat()
	d, err := dec.ReadDouble()
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), f)
	assert.Equal(t, -2.25, d)

	assert.NoError(t, dec.ReadMessageEnd())
}

func TestBinaryProtocol_FieldFraming(t *testing.T) {
	// Test: field headers carry fid and tag; the stop marker reads as FIDStop
	proto := NewBinaryProtocol()
	enc := proto.NewEncoder()

	require.NoError(t, enc.WriteFieldBegin(7, DataTypeI32))
	require.NoError(t, enc.WriteI32(42))
	require.NoError(t, enc.WriteFieldStop())

	dec := proto.NewDecoder(enc.Bytes())
	fid, dt, err := dec.ReadFieldBegin()
	require.NoError(t, err)
	assert.Equal(t, int16(7), fid)
	assert.Equal(t, DataTypeI32, dt)

	v, err := dec.ReadI32()
	require.NoError(t, err)
	assert.Equal(t, int32(42), v)

	fid, _, err = dec.ReadFieldBegin()
	require.NoError(t, err)
	assert.Equal(t, FIDStop, fid)
}

func TestBinaryProtocol_Message(t *testing.T) {
	// Test: message headers round-trip and unknown message types are malformed
	proto := NewBinaryProtocol()
	enc := proto.NewEncoder()
	require.NoError(t, enc.WriteMessageBegin(MessageCall, "double"))

	mt, name, err := proto.NewDecoder(enc.Bytes()).ReadMessageBegin()
	require.NoError(t, err)
	assert.Equal(t, MessageCall, mt)
	assert.Equal(t, "double", name)

	_, _, err = proto.NewDecoder([]byte{9, 0, 0, 0, 0}).ReadMessageBegin()
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestBinaryProtocol_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		frame []byte
		read  func(Decoder) error
	}{
		{"truncated i32", []byte{0, 1}, func(d Decoder) error { _, err := d.ReadI32(); return err }},
		{"bad bool", []byte{2}, func(d Decoder) error { _, err := d.ReadBool(); return err }},
		{"string longer than frame", []byte{0, 0, 0, 9, 'a'}, func(d Decoder) error { _, err := d.ReadString(); return err }},
		{"list longer than frame", []byte{byte(DataTypeI32), 0, 0, 1, 0}, func(d Decoder) error { _, _, err := d.ReadListBegin(); return err }},
		{"unknown field tag", []byte{200, 0, 1}, func(d Decoder) error { _, _, err := d.ReadFieldBegin(); return err }},
		{"negative fid", []byte{byte(DataTypeI32), 0xff, 0xfe}, func(d Decoder) error { _, _, err := d.ReadFieldBegin(); return err }},
		{"trailing bytes", []byte{1}, func(d Decoder) error { return d.ReadMessageEnd() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.read(NewBinaryProtocol().NewDecoder(tt.frame))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestBinaryProtocol_EmptyList(t *testing.T) {
	// Test: a zero-length list still carries its element tag
	proto := NewBinaryProtocol()
	enc := proto.NewEncoder()
	require.NoError(t, enc.WriteListBegin(0, DataTypeString))
	require.NoError(t, enc.WriteListEnd())

	n, dt, err := proto.NewDecoder(enc.Bytes()).ReadListBegin()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, DataTypeString, dt)
}

func TestBinaryProtocol_NegativeFieldID(t *testing.T) {
	// Test: the encoder refuses ids that collide with the stop marker
	err := NewBinaryProtocol().NewEncoder().WriteFieldBegin(-1, DataTypeI32)
	assert.ErrorIs(t, err, ErrEncode)
}
