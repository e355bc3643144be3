package protobuf

import (
	"strings"

	"github.com/okra-platform/rpcgen/internal/codegen/writer"
	"google.golang.org/protobuf/types/descriptorpb"
)

// render writes the .proto text for a file descriptor
func (g *Generator) render(fd *descriptorpb.FileDescriptorProto) string {
	w := writer.New()

	w.WriteLine(header)
	w.BlankLine()
	w.WriteLinef("syntax = %q;", fd.GetSyntax())
	w.BlankLine()
	w.WriteLinef("package %s;", fd.GetPackage())
	w.BlankLine()

	for _, dep := range fd.GetDependency() {
		w.WriteLinef("import %q;", dep)
	}
	if len(fd.GetDependency()) > 0 {
		w.BlankLine()
	}

	if goPkg := fd.GetOptions().GetGoPackage(); goPkg != "" {
		w.WriteLinef("option go_package = %q;", goPkg)
		w.BlankLine()
	}

	for _, ed := range fd.GetEnumType() {
		g.renderEnum(w, ed)
	}
	for _, md := range fd.GetMessageType() {
		g.renderMessage(w, md)
	}
	for _, sd := range fd.GetService() {
		g.renderService(w, sd)
	}

	return w.String()
}

func (g *Generator) renderEnum(w *writer.Writer, ed *descriptorpb.EnumDescriptorProto) {
	w.WriteDocComment(g.docs[ed.GetName()])
	w.WriteBlock("enum "+ed.GetName()+" {", "}", func() {
		if ed.GetOptions().GetAllowAlias() {
			w.WriteLine("option allow_alias = true;")
		}
		for _, v := range ed.GetValue() {
			w.WriteDocComment(g.docs[ed.GetName()+"."+v.GetName()])
			w.WriteLinef("%s = %d;", v.GetName(), v.GetNumber())
		}
	})
	w.BlankLine()
}

func (g *Generator) renderMessage(w *writer.Writer, md *descriptorpb.DescriptorProto) {
	w.WriteDocComment(g.docs[md.GetName()])
	w.WriteBlock("message "+md.GetName()+" {", "}", func() {
		for _, f := range md.GetField() {
			w.WriteDocComment(g.docs[md.GetName()+"."+f.GetName()])
			label := ""
			switch {
			case f.GetLabel() == descriptorpb.FieldDescriptorProto_LABEL_REPEATED:
				label = "repeated "
			case f.GetProto3Optional():
				label = "optional "
			}
			w.WriteLinef("%s%s %s = %d;", label, g.typeName(f), f.GetName(), f.GetNumber())
		}
	})
	w.BlankLine()
}

func (g *Generator) renderService(w *writer.Writer, sd *descriptorpb.ServiceDescriptorProto) {
	w.WriteBlock("service "+sd.GetName()+" {", "}", func() {
		for _, m := range sd.GetMethod() {
			w.WriteDocComment(g.docs[sd.GetName()+"."+m.GetName()])
			w.WriteLinef("rpc %s(%s) returns (%s);", m.GetName(), g.localName(m.GetInputType()), g.localName(m.GetOutputType()))
		}
	})
	w.BlankLine()
}

// typeName returns the field type as written in .proto source
func (g *Generator) typeName(f *descriptorpb.FieldDescriptorProto) string {
	if f.GetTypeName() != "" {
		return g.localName(f.GetTypeName())
	}
	return strings.ToLower(strings.TrimPrefix(f.GetType().String(), "TYPE_"))
}

// localName strips the package from a fully-qualified type name
func (g *Generator) localName(full string) string {
	return strings.TrimPrefix(full, "."+g.pkg+".")
}
