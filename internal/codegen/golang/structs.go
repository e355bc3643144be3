package golang

import (
	"fmt"

	"github.com/okra-platform/rpcgen/internal/codegen"
	"github.com/okra-platform/rpcgen/internal/codegen/writer"
	"github.com/okra-platform/rpcgen/internal/schema"
)

// structDefine emits a declared struct or exception with the run's access strategy
func (g *Generator) structDefine(dt *schema.DataType) (string, error) {
	return g.defineStruct(dt, g.access)
}

// defineStruct emits the type, constructor, accessors, codec and validator of a struct
func (g *Generator) defineStruct(dt *schema.DataType, access codegen.FieldAccess) (string, error) {
	fa := codegen.FieldAccessor{Access: access, Receiver: "s", Export: codegen.Capitalize}
	name := dt.Name

	reserved := []string{structRead, structWrite, structValidate}
	if dt.Kind == schema.KindException {
		reserved = append(reserved, excError)
	}
	g.check.Start(name, reserved...)

	for _, f := range dt.Fields {
		storage := fa.StorageName(f.Name)
		if err := validIdentifier(storage); err != nil {
			return "", fmt.Errorf("field %s of %s: %w", f.Name, name, err)
		}
		for _, member := range []string{storage, fa.GetterName(f.Name), fa.SetterName(f.Name)} {
			if err := g.check.Add(member); err != nil {
				return "", err
			}
		}
	}

	w := writer.New()

	// Type
	w.WriteDocComment(dt.Doc)
	w.WriteLinef("type %s struct {", name)
	w.Indent()
	for _, f := range dt.Fields {
		w.WriteDocComment(f.Doc)
		w.WriteLinef("%s %s", fa.StorageName(f.Name), slotType(f.Type))
	}
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()

	// Constructor
	w.WriteLinef("// %s creates a %s with every field absent", ctorName(name), name)
	w.WriteLinef("func %s() *%s {", ctorName(name), name)
	w.Indent()
	if len(dt.Fields) == 0 {
		w.WriteLinef("return &%s{}", name)
	} else {
		w.WriteLinef("return &%s{", name)
		w.Indent()
		for _, f := range dt.Fields {
			w.WriteLinef("%s: nil,", fa.StorageName(f.Name))
		}
		w.Dedent()
		w.WriteLine("}")
	}
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()

	// Accessors
	if access.HasAccessors() {
		for _, f := range dt.Fields {
			w.WriteLinef("func (s *%s) %s() %s {", name, fa.GetterName(f.Name), slotType(f.Type))
			w.Indent()
			w.WriteLinef("return %s", fa.Var(f.Name))
			w.Dedent()
			w.WriteLine("}")
			w.BlankLine()

			w.WriteLinef("func (s *%s) %s(v %s) {", name, fa.SetterName(f.Name), slotType(f.Type))
			w.Indent()
			w.WriteLinef("%s = v", fa.Var(f.Name))
			w.Dedent()
			w.WriteLine("}")
			w.BlankLine()
		}
	}

	if err := g.writeStructRead(w, dt, fa); err != nil {
		return "", err
	}
	if err := g.writeStructWrite(w, dt, fa); err != nil {
		return "", err
	}
	if dt.HasRequired() {
		g.writeStructValidate(w, dt, fa)
	}

	if dt.Kind == schema.KindException {
		w.WriteLine("// Error implements error")
		w.WriteLinef("func (s *%s) %s() string {", name, excError)
		w.Indent()
		w.WriteLinef("return %q", name)
		w.Dedent()
		w.WriteLine("}")
		w.BlankLine()
	}

	return w.String(), nil
}

func (g *Generator) writeStructRead(w *writer.Writer, dt *schema.DataType, fa codegen.FieldAccessor) error {
	name := dt.Name

	w.WriteLinef("// %s decodes %s from dec", structRead, name)
	w.WriteLinef("func (s *%s) %s(dec rpcrt.Decoder) error {", name, structRead)
	w.Indent()
	w.WriteLine("var fid int16")
	w.WriteLine("var dt rpcrt.DataType")
	w.WriteLine("var err error")
	w.BlankLine()
	w.WriteIndented(assignErr("dec.ReadStructBegin()"))
	w.BlankLine()

	w.WriteLine("for {")
	w.Indent()
	w.WriteIndented(assignValue("fid, dt", "dec.ReadFieldBegin()"))
	w.WriteBlock("if fid == rpcrt.FIDStop {", "}", func() {
		w.WriteLine("break")
	})
	w.BlankLine()

	w.WriteLine("switch fid {")
	for _, f := range dt.Fields {
		tag, err := g.codecTag(f.Type)
		if err != nil {
			return err
		}
		slot := fa.Var(f.Name)
		read, err := g.tm.Read(f.Type, "*"+slot)
		if err != nil {
			return err
		}

		w.WriteLinef("case %d:", f.ID)
		w.Indent()
		w.WriteBlock(fmt.Sprintf("if dt != %s {", tag), "}", func() {
			w.WriteLinef("return rpcrt.FieldTypeError(%q, fid, dt)", name)
		})
		w.WriteBlock(fmt.Sprintf("if %s != nil {", slot), "}", func() {
			w.WriteLinef("return rpcrt.DuplicateFieldError(%q, fid)", name)
		})
		w.WriteLinef("%s = new(%s)", slot, valueType(f.Type))
		w.WriteIndented(read)
		w.Dedent()
	}
	w.WriteLine("default:")
	w.Indent()
	w.WriteLinef("return rpcrt.UnknownFieldError(%q, fid, dt)", name)
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()

	w.WriteIndented(assignErr("dec.ReadFieldEnd()"))
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()

	w.WriteIndented(assignErr("dec.ReadStructEnd()"))
	w.BlankLine()

	if dt.HasRequired() {
		w.WriteLinef("return s.%s(true)", structValidate)
	} else {
		w.WriteLine("return nil")
	}
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()
	return nil
}

func (g *Generator) writeStructWrite(w *writer.Writer, dt *schema.DataType, fa codegen.FieldAccessor) error {
	name := dt.Name

	w.WriteLinef("// %s encodes %s to enc", structWrite, name)
	w.WriteLinef("func (s *%s) %s(enc rpcrt.Encoder) error {", name, structWrite)
	w.Indent()

	if dt.HasRequired() {
		w.WriteIndented(checkErr(fmt.Sprintf("s.%s(false)", structValidate)))
		w.BlankLine()
	}

	w.WriteIndented(checkErr("enc.WriteStructBegin()"))
	w.BlankLine()

	for _, f := range dt.Fields {
		tag, err := g.codecTag(f.Type)
		if err != nil {
			return err
		}
		slot := fa.Var(f.Name)
		write, err := g.tm.Write(f.Type, "*"+slot)
		if err != nil {
			return err
		}

		body := func() {
			w.WriteIndented(checkErr(fmt.Sprintf("enc.WriteFieldBegin(%d, %s)", f.ID, tag)))
			w.WriteIndented(write)
			w.WriteIndented(checkErr("enc.WriteFieldEnd()"))
		}

		if f.Required {
			body()
		} else {
			w.WriteBlock(fmt.Sprintf("if %s != nil {", slot), "}", body)
		}
		w.BlankLine()
	}

	w.WriteIndented(checkErr("enc.WriteFieldStop()"))
	w.BlankLine()
	w.WriteLine("return enc.WriteStructEnd()")
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()
	return nil
}

// writeStructValidate reports the first absent required field in declaration order
func (g *Generator) writeStructValidate(w *writer.Writer, dt *schema.DataType, fa codegen.FieldAccessor) {
	w.WriteLinef("func (s *%s) %s(isRead bool) error {", dt.Name, structValidate)
	w.Indent()
	for _, f := range dt.Fields {
		if !f.Required {
			continue
		}
		w.WriteBlock(fmt.Sprintf("if %s == nil {", fa.Var(f.Name)), "}", func() {
			w.WriteLinef("return rpcrt.MissingFieldError(isRead, %q, %q)", dt.Name, f.Name)
		})
	}
	w.WriteLine("return nil")
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()
}
