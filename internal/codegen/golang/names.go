package golang

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/okra-platform/rpcgen/internal/codegen"
	"github.com/okra-platform/rpcgen/internal/schema"
)

const (
	structRead     = "RpcRead"
	structWrite    = "RpcWrite"
	structValidate = "rpcValidate"
	excError       = "Error"
	clientContinue = "RpcContinue"
)

var wireMethods = map[schema.Kind]string{
	schema.KindBinary: "Binary",
	schema.KindString: "String",
	schema.KindBool:   "Bool",
	schema.KindUI8:    "UI8",
	schema.KindUI16:   "UI16",
	schema.KindUI32:   "UI32",
	schema.KindUI64:   "UI64",
	schema.KindI8:     "I8",
	schema.KindI16:    "I16",
	schema.KindI32:    "I32",
	schema.KindI64:    "I64",
	schema.KindFloat:  "Float",
	schema.KindDouble: "Double",
	schema.KindEnum:   "Enum",
	schema.KindList:   "List",
	schema.KindStruct: "Struct",
}

var goPrimitives = map[schema.Kind]string{
	schema.KindBinary: "[]byte",
	schema.KindString: "string",
	schema.KindBool:   "bool",
	schema.KindUI8:    "uint8",
	schema.KindUI16:   "uint16",
	schema.KindUI32:   "uint32",
	schema.KindUI64:   "uint64",
	schema.KindI8:     "int8",
	schema.KindI16:    "int16",
	schema.KindI32:    "int32",
	schema.KindI64:    "int64",
	schema.KindFloat:  "float32",
	schema.KindDouble: "float64",
}

// valueType maps a schema type to the Go type of a present value
func valueType(dt *schema.DataType) string {
	switch dt.Kind {
	case schema.KindList:
		return "[]" + valueType(dt.Elem)
	case schema.KindEnum, schema.KindStruct, schema.KindException:
		return dt.Name
	default:
		return goPrimitives[dt.Kind]
	}
}

// slotType is the type of a field slot; nil means absent
func slotType(dt *schema.DataType) string {
	return "*" + valueType(dt)
}

// resultType is how a handler returns a method result: structs by pointer, the rest by value
func resultType(dt *schema.DataType) string {
	if dt.Kind == schema.KindStruct {
		return "*" + dt.Name
	}
	return valueType(dt)
}

func isStruct(dt *schema.DataType) bool {
	return dt.Kind == schema.KindStruct || dt.Kind == schema.KindException
}

// ctorName returns the constructor of a type, unexported for unexported types
func ctorName(typeName string) string {
	if token.IsExported(typeName) {
		return "New" + typeName
	}
	return "new" + codegen.Capitalize(typeName)
}

func enumConst(dt *schema.DataType, entry schema.EnumEntry) string {
	return dt.Name + entry.Name
}

func enumReadFunc(name string) string     { return "rpcEnumRead_" + name }
func enumWriteFunc(name string) string    { return "rpcEnumWrite_" + name }
func enumValidateFunc(name string) string { return "rpcEnumValidate_" + name }
func listReadFunc(name string) string     { return "rpcListRead_" + name }
func listWriteFunc(name string) string    { return "rpcListWrite_" + name }
func argsStructName(method string) string { return "rpcArgs_" + method }
func resultStructName(m string) string    { return "rpcResult_" + m }
func excHandlerFunc(method string) string { return "rpcExcHandler_" + method }
func handleFunc(method string) string     { return "handle_" + method }

// exportedMethod is the Go name of a remote method on Client and Handler
func exportedMethod(name string) string {
	return codegen.Capitalize(name)
}

// addressOf turns a value expression into a pointer expression
func addressOf(expr string) string {
	if strings.HasPrefix(expr, "*") {
		return expr[1:]
	}
	return "&" + expr
}

// receiverOf turns a value expression into something a pointer method can be called on
func receiverOf(expr string) string {
	if strings.HasPrefix(expr, "*") {
		return expr[1:]
	}
	return expr
}

// nameSet detects duplicate top-level and member names
type nameSet struct {
	scope string
	names map[string]bool
}

func newNameSet(scope string) *nameSet {
	return &nameSet{scope: scope, names: make(map[string]bool)}
}

func (n *nameSet) add(name string) error {
	if n.names[name] {
		return codegen.Invariantf("%s %s generated twice", n.scope, name)
	}
	n.names[name] = true
	return nil
}

func validIdentifier(name string) error {
	if !token.IsIdentifier(name) {
		return fmt.Errorf("%w: %q is not a Go identifier", codegen.ErrInvariant, name)
	}
	if name == "_" {
		return fmt.Errorf("%w: the blank identifier cannot name a member", codegen.ErrInvariant)
	}
	return nil
}
