package rpcrt

import (
	"bytes"
	"encoding/binary"
	"math"
)

const fieldStop byte = 0

// BinaryProtocol is a compact big-endian framing. Field headers are a tag
// byte followed by an int16 fid; a zero tag ends a struct. List headers are
// a tag byte followed by a uint32 length. Strings and binaries are
// length-prefixed with a uint32.
type BinaryProtocol struct{}

// NewBinaryProtocol returns the binary wire protocol
func NewBinaryProtocol() BinaryProtocol {
	return BinaryProtocol{}
}

func (BinaryProtocol) NewEncoder() Encoder {
	return &binaryEncoder{}
}

func (BinaryProtocol) NewDecoder(frame []byte) Decoder {
	return &binaryDecoder{buf: frame}
}

type binaryEncoder struct {
	buf bytes.Buffer
}

func (e *binaryEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

func (e *binaryEncoder) WriteMessageBegin(mt MessageType, name string) error {
	e.buf.WriteByte(byte(mt))
	return e.WriteString(name)
}

func (e *binaryEncoder) WriteMessageEnd() error { return nil }
func (e *binaryEncoder) WriteStructBegin() error { return nil }
func (e *binaryEncoder) WriteStructEnd() error   { return nil }
func (e *binaryEncoder) WriteFieldEnd() error    { return nil }
func (e *binaryEncoder) WriteListEnd() error     { return nil }

func (e *binaryEncoder) WriteFieldBegin(fid int16, dt DataType) error {
	if fid < 0 {
		return &Error{Phase: PhaseEncode, Kind: KindInvalidHeader, Detail: "negative field id"}
	}
	e.buf.WriteByte(byte(dt))
	return binary.Write(&e.buf, binary.BigEndian, fid)
}

func (e *binaryEncoder) WriteFieldStop() error {
	return e.buf.WriteByte(fieldStop)
}

func (e *binaryEncoder) WriteListBegin(n int, dt DataType) error {
	if n < 0 || uint64(n) > math.MaxUint32 {
		return &Error{Phase: PhaseEncode, Kind: KindInvalidHeader, Detail: "list length out of range"}
	}
	e.buf.WriteByte(byte(dt))
	return binary.Write(&e.buf, binary.BigEndian, uint32(n))
}

func (e *binaryEncoder) WriteBinary(v []byte) error {
	if uint64(len(v)) > math.MaxUint32 {
		return &Error{Phase: PhaseEncode, Kind: KindInvalidHeader, Detail: "binary too long"}
	}
	if err := binary.Write(&e.buf, binary.BigEndian, uint32(len(v))); err != nil {
		return err
	}
	_, err := e.buf.Write(v)
	return err
}

func (e *binaryEncoder) WriteString(v string) error {
	return e.WriteBinary([]byte(v))
}

func (e *binaryEncoder) WriteBool(v bool) error {
	if v {
		return e.buf.WriteByte(1)
	}
	return e.buf.WriteByte(0)
}

func (e *binaryEncoder) WriteUI8(v uint8) error   { return e.buf.WriteByte(v) }
func (e *binaryEncoder) WriteUI16(v uint16) error { return binary.Write(&e.buf, binary.BigEndian, v) }
func (e *binaryEncoder) WriteUI32(v uint32) error { return binary.Write(&e.buf, binary.BigEndian, v) }
func (e *binaryEncoder) WriteUI64(v uint64) error { return binary.Write(&e.buf, binary.BigEndian, v) }
func (e *binaryEncoder) WriteI8(v int8) error     { return e.buf.WriteByte(byte(v)) }
func (e *binaryEncoder) WriteI16(v int16) error   { return binary.Write(&e.buf, binary.BigEndian, v) }
func (e *binaryEncoder) WriteI32(v int32) error   { return binary.Write(&e.buf, binary.BigEndian, v) }
func (e *binaryEncoder) WriteI64(v int64) error   { return binary.Write(&e.buf, binary.BigEndian, v) }

func (e *binaryEncoder) WriteFloat(v float32) error {
	return e.WriteUI32(math.Float32bits(v))
}

func (e *binaryEncoder) WriteDouble(v float64) error {
	return e.WriteUI64(math.Float64bits(v))
}

type binaryDecoder struct {
	buf []byte
	pos int
}

func (d *binaryDecoder) take(n int) ([]byte, error) {
	if n < 0 || len(d.buf)-d.pos < n {
		return nil, &Error{Phase: PhaseDecode, Kind: KindTruncated, Detail: "unexpected end of frame"}
	}
	b := d.buf[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

func (d *binaryDecoder) remaining() int {
	return len(d.buf) - d.pos
}

func (d *binaryDecoder) readTag() (DataType, error) {
	b, err := d.take(1)
	if err != nil {
		return 0, err
	}
	return DataType(b[0]), nil
}

func (d *binaryDecoder) ReadMessageBegin() (MessageType, string, error) {
	b, err := d.take(1)
	if err != nil {
		return 0, "", err
	}
	mt := MessageType(b[0])
	if mt < MessageCall || mt > MessageException {
		return 0, "", &Error{Phase: PhaseDecode, Kind: KindInvalidHeader, Detail: "unknown " + mt.String()}
	}
	name, err := d.ReadString()
	if err != nil {
		return 0, "", err
	}
	return mt, name, nil
}

func (d *binaryDecoder) ReadMessageEnd() error {
	if d.remaining() != 0 {
		return &Error{Phase: PhaseDecode, Kind: KindInvalidHeader, Detail: "trailing bytes after message"}
	}
	return nil
}

func (d *binaryDecoder) ReadStructBegin() error { return nil }
func (d *binaryDecoder) ReadStructEnd() error   { return nil }
func (d *binaryDecoder) ReadFieldEnd() error    { return nil }
func (d *binaryDecoder) ReadListEnd() error     { return nil }

func (d *binaryDecoder) ReadFieldBegin() (int16, DataType, error) {
	tag, err := d.readTag()
	if err != nil {
		return 0, 0, err
	}
	if byte(tag) == fieldStop {
		return FIDStop, 0, nil
	}
	if !tag.Valid() {
		return 0, 0, &Error{Phase: PhaseDecode, Kind: KindInvalidHeader, Detail: "unknown " + tag.String()}
	}
	fid, err := d.ReadI16()
	if err != nil {
		return 0, 0, err
	}
	if fid < 0 {
		return 0, 0, &Error{Phase: PhaseDecode, Kind: KindInvalidHeader, Detail: "negative field id"}
	}
	return fid, tag, nil
}

func (d *binaryDecoder) ReadListBegin() (int, DataType, error) {
	tag, err := d.readTag()
	if err != nil {
		return 0, 0, err
	}
	if !tag.Valid() {
		return 0, 0, &Error{Phase: PhaseDecode, Kind: KindInvalidHeader, Detail: "unknown " + tag.String()}
	}
	n, err := d.ReadUI32()
	if err != nil {
		return 0, 0, err
	}
	// Every element takes at least one byte
	if uint64(n) > uint64(d.remaining()) {
		return 0, 0, &Error{Phase: PhaseDecode, Kind: KindTruncated, Detail: "list length exceeds frame"}
	}
	return int(n), tag, nil
}

func (d *binaryDecoder) ReadBinary() ([]byte, error) {
	n, err := d.ReadUI32()
	if err != nil {
		return nil, err
	}
	if uint64(n) > uint64(d.remaining()) {
		return nil, &Error{Phase: PhaseDecode, Kind: KindTruncated, Detail: "binary length exceeds frame"}
	}
	b, err := d.take(int(n))
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), b...), nil
}

func (d *binaryDecoder) ReadString() (string, error) {
	b, err := d.ReadBinary()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (d *binaryDecoder) ReadBool() (bool, error) {
	b, err := d.take(1)
	if err != nil {
		return false, err
	}
	switch b[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, &Error{Phase: PhaseDecode, Kind: KindInvalidHeader, Detail: "invalid bool byte"}
	}
}

func (d *binaryDecoder) ReadUI8() (uint8, error) {
	b, err := d.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *binaryDecoder) ReadUI16() (uint16, error) {
	b, err := d.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (d *binaryDecoder) ReadUI32() (uint32, error) {
	b, err := d.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (d *binaryDecoder) ReadUI64() (uint64, error) {
	b, err := d.take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (d *binaryDecoder) ReadI8() (int8, error) {
	v, err := d.ReadUI8()
	return int8(v), err
}

func (d *binaryDecoder) ReadI16() (int16, error) {
	v, err := d.ReadUI16()
	return int16(v), err
}

func (d *binaryDecoder) ReadI32() (int32, error) {
	v, err := d.ReadUI32()
	return int32(v), err
}

func (d *binaryDecoder) ReadI64() (int64, error) {
	v, err := d.ReadUI64()
	return int64(v), err
}

func (d *binaryDecoder) ReadFloat() (float32, error) {
	v, err := d.ReadUI32()
	return math.Float32frombits(v), err
}

func (d *binaryDecoder) ReadDouble() (float64, error) {
	v, err := d.ReadUI64()
	return math.Float64frombits(v), err
}
