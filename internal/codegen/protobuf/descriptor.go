package protobuf

import (
	"fmt"
	"sort"

	"github.com/okra-platform/rpcgen/internal/codegen"
	"github.com/okra-platform/rpcgen/internal/schema"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
)

const (
	// Field numbers 19000-19999 are reserved by protobuf itself
	reservedFirst = 19000
	reservedLast  = 19999

	listItems = "items"
)

var scalarTypes = map[schema.Kind]descriptorpb.FieldDescriptorProto_Type{
	schema.KindBinary: descriptorpb.FieldDescriptorProto_TYPE_BYTES,
	schema.KindString: descriptorpb.FieldDescriptorProto_TYPE_STRING,
	schema.KindBool:   descriptorpb.FieldDescriptorProto_TYPE_BOOL,
	schema.KindUI8:    descriptorpb.FieldDescriptorProto_TYPE_UINT32,
	schema.KindUI16:   descriptorpb.FieldDescriptorProto_TYPE_UINT32,
	schema.KindUI32:   descriptorpb.FieldDescriptorProto_TYPE_UINT32,
	schema.KindUI64:   descriptorpb.FieldDescriptorProto_TYPE_UINT64,
	schema.KindI8:     descriptorpb.FieldDescriptorProto_TYPE_INT32,
	schema.KindI16:    descriptorpb.FieldDescriptorProto_TYPE_INT32,
	schema.KindI32:    descriptorpb.FieldDescriptorProto_TYPE_INT32,
	schema.KindI64:    descriptorpb.FieldDescriptorProto_TYPE_INT64,
	schema.KindFloat:  descriptorpb.FieldDescriptorProto_TYPE_FLOAT,
	schema.KindDouble: descriptorpb.FieldDescriptorProto_TYPE_DOUBLE,
}

// descriptorBuilder translates the schema into proto3 file descriptors.
// Comments are not part of descriptors, so docs are kept aside for rendering.
type descriptorBuilder struct {
	pkg     string
	docs    map[string]string
	names   map[string]bool
	wrapped map[string]*schema.DataType
}

func newDescriptorBuilder(pkg string) *descriptorBuilder {
	return &descriptorBuilder{
		pkg:     pkg,
		docs:    make(map[string]string),
		names:   make(map[string]bool),
		wrapped: make(map[string]*schema.DataType),
	}
}

// declare reserves a package-level name
func (b *descriptorBuilder) declare(name string) error {
	if b.names[name] {
		return codegen.Invariantf("protobuf name %s generated twice", name)
	}
	b.names[name] = true
	return nil
}

func (b *descriptorBuilder) fullName(name string) string {
	return "." + b.pkg + "." + name
}

func argsMessage(method string) string   { return codegen.Capitalize(method) + "Args" }
func resultMessage(method string) string { return codegen.Capitalize(method) + "Result" }

// typesFile builds types.proto: enums, messages, list wrappers and the
// per-method marshaling messages
func (b *descriptorBuilder) typesFile(types []*schema.DataType, methods []*schema.Method, goPackage string) (*descriptorpb.FileDescriptorProto, error) {
	fd := &descriptorpb.FileDescriptorProto{
		Name:    proto.String(typesFile),
		Package: proto.String(b.pkg),
		Syntax:  proto.String("proto3"),
	}
	if goPackage != "" {
		fd.Options = &descriptorpb.FileOptions{GoPackage: proto.String(goPackage)}
	}

	for _, dt := range types {
		if dt.Kind == schema.KindList {
			continue
		}
		if err := b.declare(dt.Name); err != nil {
			return nil, err
		}
	}
	for _, m := range methods {
		for _, name := range []string{argsMessage(m.Name), resultMessage(m.Name)} {
			if err := b.declare(name); err != nil {
				return nil, err
			}
		}
	}

	for _, dt := range types {
		switch dt.Kind {
		case schema.KindEnum:
			fd.EnumType = append(fd.EnumType, b.enum(dt))
		case schema.KindStruct, schema.KindException:
			msg, err := b.message(dt.Name, dt.Doc, dt.Fields)
			if err != nil {
				return nil, err
			}
			fd.MessageType = append(fd.MessageType, msg)
		}
	}

	for _, m := range methods {
		args, err := b.message(argsMessage(m.Name), "", codegen.ArgsStruct(m, argsMessage(m.Name)).Fields)
		if err != nil {
			return nil, fmt.Errorf("method %s: %w", m.Name, err)
		}
		result, err := b.message(resultMessage(m.Name), "", codegen.ResultStruct(m, resultMessage(m.Name)).Fields)
		if err != nil {
			return nil, fmt.Errorf("method %s: %w", m.Name, err)
		}
		fd.MessageType = append(fd.MessageType, args, result)
	}

	wrappers, err := b.listWrappers()
	if err != nil {
		return nil, err
	}
	fd.MessageType = append(fd.MessageType, wrappers...)
	return fd, nil
}

// serviceFile builds service.proto, which imports types.proto
func (b *descriptorBuilder) serviceFile(service string, methods []*schema.Method, goPackage string) (*descriptorpb.FileDescriptorProto, error) {
	if err := b.declare(service); err != nil {
		return nil, err
	}

	sd := &descriptorpb.ServiceDescriptorProto{Name: proto.String(service)}
	for _, m := range methods {
		sd.Method = append(sd.Method, &descriptorpb.MethodDescriptorProto{
			Name:       proto.String(m.Name),
			InputType:  proto.String(b.fullName(argsMessage(m.Name))),
			OutputType: proto.String(b.fullName(resultMessage(m.Name))),
		})
		b.docs[service+"."+m.Name] = m.Doc
	}

	fd := &descriptorpb.FileDescriptorProto{
		Name:       proto.String(serviceFile),
		Package:    proto.String(b.pkg),
		Syntax:     proto.String("proto3"),
		Dependency: []string{typesFile},
		Service:    []*descriptorpb.ServiceDescriptorProto{sd},
	}
	if goPackage != "" {
		fd.Options = &descriptorpb.FileOptions{GoPackage: proto.String(goPackage)}
	}
	return fd, nil
}

// enum prefixes entries with the enum name because proto enum values share
// the package scope. proto3 requires the first value to be zero.
func (b *descriptorBuilder) enum(dt *schema.DataType) *descriptorpb.EnumDescriptorProto {
	ed := &descriptorpb.EnumDescriptorProto{Name: proto.String(dt.Name)}
	b.docs[dt.Name] = dt.Doc

	var zero, rest []*descriptorpb.EnumValueDescriptorProto
	for _, entry := range dt.Entries {
		name := dt.Name + "_" + entry.Name
		v := &descriptorpb.EnumValueDescriptorProto{Name: proto.String(name), Number: proto.Int32(entry.Value)}
		b.docs[dt.Name+"."+name] = entry.Doc
		if entry.Value == 0 && len(zero) == 0 {
			zero = append(zero, v)
		} else {
			rest = append(rest, v)
		}
	}
	if len(zero) == 0 {
		zero = append(zero, &descriptorpb.EnumValueDescriptorProto{
			Name:   proto.String(dt.Name + "_UNSPECIFIED"),
			Number: proto.Int32(0),
		})
	}
	ed.Value = append(zero, rest...)

	if len(dt.Values()) < len(dt.Entries) {
		ed.Options = &descriptorpb.EnumOptions{AllowAlias: proto.Bool(true)}
	}
	return ed
}

func (b *descriptorBuilder) message(name, doc string, fields []*schema.Field) (*descriptorpb.DescriptorProto, error) {
	md := &descriptorpb.DescriptorProto{Name: proto.String(name)}
	b.docs[name] = doc

	for _, f := range fields {
		number := int32(f.ID) + 1
		if number >= reservedFirst && number <= reservedLast {
			return nil, fmt.Errorf("%w: field %s of %s maps to reserved field number %d", ErrUnsupported, f.Name, name, number)
		}

		fdp := &descriptorpb.FieldDescriptorProto{
			Name:   proto.String(f.Name),
			Number: proto.Int32(number),
			Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		}
		b.docs[name+"."+f.Name] = f.Doc

		elem := f.Type
		if f.Type.Kind == schema.KindList {
			fdp.Label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
			elem = f.Type.Elem
		}
		if err := b.setType(fdp, elem); err != nil {
			return nil, fmt.Errorf("field %s of %s: %w", f.Name, name, err)
		}

		// Optional singular fields track presence through a synthetic oneof
		if !f.Required && f.Type.Kind != schema.KindList {
			fdp.Proto3Optional = proto.Bool(true)
			fdp.OneofIndex = proto.Int32(int32(len(md.OneofDecl)))
			md.OneofDecl = append(md.OneofDecl, &descriptorpb.OneofDescriptorProto{Name: proto.String("_" + f.Name)})
		}
		md.Field = append(md.Field, fdp)
	}
	return md, nil
}

// setType points the field at dt. A list used as a value is wrapped in a
// message, since repeated fields cannot nest.
func (b *descriptorBuilder) setType(fdp *descriptorpb.FieldDescriptorProto, dt *schema.DataType) error {
	if t, ok := scalarTypes[dt.Kind]; ok {
		fdp.Type = t.Enum()
		return nil
	}
	switch dt.Kind {
	case schema.KindEnum:
		fdp.Type = descriptorpb.FieldDescriptorProto_TYPE_ENUM.Enum()
	case schema.KindStruct:
		fdp.Type = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum()
	case schema.KindList:
		fdp.Type = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum()
		b.wrapped[dt.Name] = dt
	default:
		return codegen.Invariantf("kind %s of %s cannot be a protobuf field", dt.Kind, dt.Name)
	}
	fdp.TypeName = proto.String(b.fullName(dt.Name))
	return nil
}

// listWrappers emits one message per wrapped list, following nested lists
func (b *descriptorBuilder) listWrappers() ([]*descriptorpb.DescriptorProto, error) {
	done := make(map[string]bool)
	var out []*descriptorpb.DescriptorProto

	for len(done) < len(b.wrapped) {
		pending := make([]string, 0, len(b.wrapped))
		for name := range b.wrapped {
			if !done[name] {
				pending = append(pending, name)
			}
		}
		sort.Strings(pending)

		for _, name := range pending {
			done[name] = true
			if err := b.declare(name); err != nil {
				return nil, err
			}
			dt := b.wrapped[name]
			items := &schema.Field{ID: 0, Name: listItems, Type: dt, Required: true}
			msg, err := b.message(name, dt.Doc, []*schema.Field{items})
			if err != nil {
				return nil, err
			}
			out = append(out, msg)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].GetName() < out[j].GetName() })
	return out, nil
}
