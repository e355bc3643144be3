// Package rpcrt is the runtime library called by Go code generated by rpcgen.
// It provides the wire protocol, transports, structured errors and the
// processor/client subroutines that implement suspendable calls.
package rpcrt

import "fmt"

// DataType is the wire tag written with field and list headers
type DataType uint8

const (
	DataTypeBinary DataType = iota + 1
	DataTypeString
	DataTypeBool
	DataTypeUI8
	DataTypeUI16
	DataTypeUI32
	DataTypeUI64
	DataTypeI8
	DataTypeI16
	DataTypeI32
	DataTypeI64
	DataTypeFloat
	DataTypeDouble
	DataTypeEnum
	DataTypeList
	DataTypeStruct
)

var dataTypeNames = map[DataType]string{
	DataTypeBinary: "binary",
	DataTypeString: "string",
	DataTypeBool:   "bool",
	DataTypeUI8:    "ui8",
	DataTypeUI16:   "ui16",
	DataTypeUI32:   "ui32",
	DataTypeUI64:   "ui64",
	DataTypeI8:     "i8",
	DataTypeI16:    "i16",
	DataTypeI32:    "i32",
	DataTypeI64:    "i64",
	DataTypeFloat:  "float",
	DataTypeDouble: "double",
	DataTypeEnum:   "enum",
	DataTypeList:   "list",
	DataTypeStruct: "struct",
}

func (dt DataType) String() string {
	if name, ok := dataTypeNames[dt]; ok {
		return name
	}
	return fmt.Sprintf("datatype(%d)", uint8(dt))
}

// Valid reports whether dt is a known tag
func (dt DataType) Valid() bool {
	_, ok := dataTypeNames[dt]
	return ok
}

// FIDStop is returned by ReadFieldBegin at the end of a struct. No schema
// field may use it.
const FIDStop int16 = -1

// MessageType identifies the kind of a message frame
type MessageType uint8

const (
	MessageCall MessageType = iota + 1
	MessageReply
	MessageException
)

func (mt MessageType) String() string {
	switch mt {
	case MessageCall:
		return "call"
	case MessageReply:
		return "reply"
	case MessageException:
		return "exception"
	default:
		return fmt.Sprintf("message(%d)", uint8(mt))
	}
}

// Encoder writes one message frame
type Encoder interface {
	WriteMessageBegin(mt MessageType, name string) error
	WriteMessageEnd() error
	WriteStructBegin() error
	WriteStructEnd() error
	WriteFieldBegin(fid int16, dt DataType) error
	WriteFieldEnd() error
	WriteFieldStop() error
	WriteListBegin(n int, dt DataType) error
	WriteListEnd() error

	WriteBinary(v []byte) error
	WriteString(v string) error
	WriteBool(v bool) error
	WriteUI8(v uint8) error
	WriteUI16(v uint16) error
	WriteUI32(v uint32) error
	WriteUI64(v uint64) error
	WriteI8(v int8) error
	WriteI16(v int16) error
	WriteI32(v int32) error
	WriteI64(v int64) error
	WriteFloat(v float32) error
	WriteDouble(v float64) error

	// Bytes returns the encoded frame
	Bytes() []byte
}

// Decoder reads one message frame
type Decoder interface {
	ReadMessageBegin() (MessageType, string, error)
	ReadMessageEnd() error
	ReadStructBegin() error
	ReadStructEnd() error
	// ReadFieldBegin returns FIDStop at the end of the struct
	ReadFieldBegin() (int16, DataType, error)
	ReadFieldEnd() error
	ReadListBegin() (int, DataType, error)
	ReadListEnd() error

	ReadBinary() ([]byte, error)
	ReadString() (string, error)
	ReadBool() (bool, error)
	ReadUI8() (uint8, error)
	ReadUI16() (uint16, error)
	ReadUI32() (uint32, error)
	ReadUI64() (uint64, error)
	ReadI8() (int8, error)
	ReadI16() (int16, error)
	ReadI32() (int32, error)
	ReadI64() (int64, error)
	ReadFloat() (float32, error)
	ReadDouble() (float64, error)
}

// Protocol creates encoders and decoders for one wire format
type Protocol interface {
	NewEncoder() Encoder
	NewDecoder(frame []byte) Decoder
}

// Struct is implemented by every generated struct, exception and marshaling struct
type Struct interface {
	RpcRead(dec Decoder) error
	RpcWrite(enc Encoder) error
}

// Exception is a generated exception type
type Exception interface {
	Struct
	error
}
