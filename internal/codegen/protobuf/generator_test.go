package protobuf

import (
	"context"
	"testing"

	"github.com/okra-platform/rpcgen/internal/codegen"
	"github.com/okra-platform/rpcgen/internal/codegen/output"
	"github.com/okra-platform/rpcgen/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
)

func run(s *schema.Schema, cfg codegen.Config) (map[string][]byte, error) {
	reg := codegen.NewRegistry()
	if err := reg.Register(Name, New); err != nil {
		return nil, err
	}

	sink := output.NewMemorySink()
	written, err := codegen.Run(context.Background(), reg, Name, s, cfg, sink)
	if err != nil {
		return nil, err
	}
	units := make(map[string][]byte)
	for _, name := range written {
		data, _ := sink.File(name)
		units[name] = data
	}
	return units, nil
}

func generate(t *testing.T, s *schema.Schema, cfg codegen.Config) map[string][]byte {
	t.Helper()
	if cfg.Indent == 0 {
		cfg.Indent = 2
	}
	units, err := run(s, cfg)
	require.NoError(t, err)
	require.Len(t, units, 3)
	return units
}

// loadDescriptors decodes service.pb.desc and resolves it into a file registry
func loadDescriptors(t *testing.T, data []byte) (protoreflect.FileDescriptor, protoreflect.FileDescriptor) {
	t.Helper()
	fds := &descriptorpb.FileDescriptorSet{}
	require.NoError(t, proto.Unmarshal(data, fds))

	files, err := protodesc.NewFiles(fds)
	require.NoError(t, err)

	types, err := files.FindFileByPath(typesFile)
	require.NoError(t, err)
	service, err := files.FindFileByPath(serviceFile)
	require.NoError(t, err)
	return types, service
}

func calcSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.NewBuilder("calc").
		Enum("Op", "Op selects an operation",
			schema.EnumEntry{Name: "ADD", Value: 1, Doc: "Addition"},
			schema.EnumEntry{Name: "SUB", Value: 2},
		).
		Enum("Mode", "",
			schema.EnumEntry{Name: "FAST", Value: 3},
			schema.EnumEntry{Name: "OFF", Value: 0},
			schema.EnumEntry{Name: "QUICK", Value: 3},
		).
		List("ListOfI32", "i32").
		List("ListOfListOfI32", "ListOfI32").
		Struct("Point", "A point on the plane",
			schema.FieldSpec{ID: 1, Name: "x", Type: "double", Required: true, Doc: "Horizontal"},
			schema.FieldSpec{ID: 2, Name: "y", Type: "double"},
			schema.FieldSpec{ID: 3, Name: "tags", Type: "ListOfI32"},
			schema.FieldSpec{ID: 4, Name: "grid", Type: "ListOfListOfI32"},
			schema.FieldSpec{ID: 5, Name: "op", Type: "Op"},
			schema.FieldSpec{ID: 6, Name: "small", Type: "ui8", Required: true},
			schema.FieldSpec{ID: 7, Name: "data", Type: "binary"},
		).
		Exception("DivByZero", "",
			schema.FieldSpec{ID: 1, Name: "msg", Type: "string"},
		).
		Method("divide", "Divides a by b", []schema.FieldSpec{
			{ID: 1, Name: "a", Type: "double", Required: true},
			{ID: 2, Name: "b", Type: "double", Required: true},
		}, "double", "DivByZero").
		Method("origin", "", nil, "Point").
		Method("ping", "", nil, "").
		Build()
	require.NoError(t, err)
	return s
}

func TestGenerator_Units(t *testing.T) {
	// Test: The backend writes the two proto sources and the binary descriptor set in phase order
	reg := codegen.NewRegistry()
	require.NoError(t, reg.Register(Name, New))

	written, err := codegen.Run(context.Background(), reg, Name, calcSchema(t), codegen.Config{}, output.NewMemorySink())
	require.NoError(t, err)
	assert.Equal(t, []string{typesFile, serviceFile, descriptorFile}, written)
}

func TestGenerator_Header(t *testing.T) {
	// Test: Text units start with the generated header, syntax and package
	units := generate(t, calcSchema(t), codegen.Config{})
	types := string(units[typesFile])

	assert.Contains(t, types, header+"\n\nsyntax = \"proto3\";\n\npackage calc;\n")
	assert.NotContains(t, types, "option go_package")

	service := string(units[serviceFile])
	assert.Contains(t, service, "import \"types.proto\";")
}

func TestGenerator_GoPackageOption(t *testing.T) {
	// Test: The go_package option is carried into both text and descriptors
	cfg := codegen.Config{Options: map[string]string{"go_package": "example.com/calc/pb"}}
	units := generate(t, calcSchema(t), cfg)

	assert.Contains(t, string(units[typesFile]), "option go_package = \"example.com/calc/pb\";")
	types, _ := loadDescriptors(t, units[descriptorFile])
	assert.Equal(t, "example.com/calc/pb", types.Options().(*descriptorpb.FileOptions).GetGoPackage())
}

func TestGenerator_Enum(t *testing.T) {
	// Test: Enums get a zero value first, prefixed entries, and allow_alias for duplicate values
	units := generate(t, calcSchema(t), codegen.Config{})
	types := string(units[typesFile])

	assert.Contains(t, types, "// Op selects an operation\nenum Op {\n  Op_UNSPECIFIED = 0;\n  // Addition\n  Op_ADD = 1;\n  Op_SUB = 2;\n}")
	assert.Contains(t, types, "enum Mode {\n  option allow_alias = true;\n  Mode_OFF = 0;\n  Mode_FAST = 3;\n  Mode_QUICK = 3;\n}")
	assert.NotContains(t, types, "Mode_UNSPECIFIED")
}

func TestGenerator_Message(t *testing.T) {
	// Test: Field numbers are fid+1, optional fields carry presence and lists become repeated fields
	units := generate(t, calcSchema(t), codegen.Config{})
	types := string(units[typesFile])

	assert.Contains(t, types, "// A point on the plane\nmessage Point {\n  // Horizontal\n  double x = 2;\n  optional double y = 3;\n  repeated int32 tags = 4;\n  repeated ListOfI32 grid = 5;\n  optional Op op = 6;\n  uint32 small = 7;\n  optional bytes data = 8;\n}")
	assert.Contains(t, types, "message ListOfI32 {\n  repeated int32 items = 1;\n}")
	assert.NotContains(t, types, "message ListOfListOfI32")
	assert.Contains(t, types, "message DivByZero {\n  optional string msg = 2;\n}")
}

func TestGenerator_MarshalMessages(t *testing.T) {
	// Test: Each method gets Args and Result messages; the result is field 1
	units := generate(t, calcSchema(t), codegen.Config{})
	types := string(units[typesFile])

	assert.Contains(t, types, "message DivideArgs {\n  double a = 2;\n  double b = 3;\n}")
	assert.Contains(t, types, "message DivideResult {\n  double result = 1;\n}")
	assert.Contains(t, types, "message OriginResult {\n  Point result = 1;\n}")
	assert.Contains(t, types, "message PingResult {\n}")
}

func TestGenerator_Service(t *testing.T) {
	// Test: service.proto declares one rpc per method, sorted by name
	units := generate(t, calcSchema(t), codegen.Config{})
	service := string(units[serviceFile])

	assert.Contains(t, service, "service Service {\n  // Divides a by b\n  rpc divide(DivideArgs) returns (DivideResult);\n  rpc origin(OriginArgs) returns (OriginResult);\n  rpc ping(PingArgs) returns (PingResult);\n}")

	renamed := generate(t, calcSchema(t), codegen.Config{Options: map[string]string{"service": "Calculator"}})
	assert.Contains(t, string(renamed[serviceFile]), "service Calculator {")
}

func TestGenerator_DescriptorSet(t *testing.T) {
	// Test: The descriptor set resolves and matches the declared messages and service
	units := generate(t, calcSchema(t), codegen.Config{})
	types, service := loadDescriptors(t, units[descriptorFile])

	point := types.Messages().ByName("Point")
	require.NotNil(t, point)
	x := point.Fields().ByName("x")
	assert.Equal(t, protoreflect.FieldNumber(2), x.Number())
	assert.False(t, x.HasPresence())
	assert.True(t, point.Fields().ByName("y").HasPresence())
	assert.True(t, point.Fields().ByName("tags").IsList())
	assert.Equal(t, protoreflect.FullName("calc.ListOfI32"), point.Fields().ByName("grid").Message().FullName())
	assert.Equal(t, protoreflect.FullName("calc.Op"), point.Fields().ByName("op").Enum().FullName())

	svc := service.Services().ByName("Service")
	require.NotNil(t, svc)
	divide := svc.Methods().ByName("divide")
	require.NotNil(t, divide)
	assert.Equal(t, protoreflect.FullName("calc.DivideArgs"), divide.Input().FullName())
	assert.Equal(t, protoreflect.FullName("calc.DivideResult"), divide.Output().FullName())
}

func TestGenerator_DescriptorDeterministic(t *testing.T) {
	// Test: Two runs produce byte-identical units
	a := generate(t, calcSchema(t), codegen.Config{})
	b := generate(t, calcSchema(t), codegen.Config{})
	assert.Equal(t, a, b)
}

func TestGenerator_InvalidPackage(t *testing.T) {
	// Test: Empty or malformed packages are rejected before any unit is written
	for _, ns := range []string{"calc..v1", "1calc", "calc-v1"} {
		_, err := run(calcSchema(t), codegen.Config{Namespace: ns})
		assert.ErrorIs(t, err, codegen.ErrNamespace, ns)
	}

	s, err := schema.NewBuilder("").Build()
	require.NoError(t, err)
	_, err = run(s, codegen.Config{})
	assert.ErrorIs(t, err, codegen.ErrNamespace)

	_, err = run(calcSchema(t), codegen.Config{Namespace: "acme.calc.v1"})
	assert.NoError(t, err)
}

func TestGenerator_ReservedFieldNumber(t *testing.T) {
	// Test: A fid that maps into protobuf's reserved number range is unsupported
	s, err := schema.NewBuilder("calc").
		Struct("S", "", schema.FieldSpec{ID: 19000, Name: "x", Type: "i32"}).
		Build()
	require.NoError(t, err)

	_, err = run(s, codegen.Config{})
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestGenerator_NameCollision(t *testing.T) {
	// Test: A declared type that shadows a generated message fails generation
	s, err := schema.NewBuilder("calc").
		Struct("PingArgs", "").
		Method("ping", "", nil, "").
		Build()
	require.NoError(t, err)

	_, err = run(s, codegen.Config{})
	assert.ErrorIs(t, err, codegen.ErrInvariant)

	clash := schema.NewBuilder("calc").Struct("Service", "")
	s, err = clash.Build()
	require.NoError(t, err)
	_, err = run(s, codegen.Config{})
	assert.ErrorIs(t, err, codegen.ErrInvariant)
}

func TestGenerator_AccessIgnored(t *testing.T) {
	// Test: The field access strategy does not change protobuf output
	underscore := generate(t, calcSchema(t), codegen.Config{Access: codegen.AccessUnderscore})
	direct := generate(t, calcSchema(t), codegen.Config{Access: codegen.AccessDirect})
	assert.Equal(t, underscore, direct)
}
