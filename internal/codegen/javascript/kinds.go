package javascript

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/okra-platform/rpcgen/internal/codegen"
	"github.com/okra-platform/rpcgen/internal/codegen/writer"
	"github.com/okra-platform/rpcgen/internal/schema"
)

func (g *Generator) setupKinds() error {
	tm := codegen.NewTypeManager()

	if err := tm.RegisterPrimitives(func(kind schema.Kind) codegen.KindCodec {
		return codegen.KindFuncs{
			TagName:   codecTagName(kind),
			ReadFunc:  primitiveRead,
			WriteFunc: primitiveWrite,
		}
	}); err != nil {
		return err
	}

	kinds := []struct {
		kind  schema.Kind
		codec codegen.KindCodec
	}{
		{schema.KindEnum, codegen.KindFuncs{
			TagName:    codecTagName(schema.KindEnum),
			DefineFunc: g.enumDefine,
			ReadFunc:   g.enumRead,
			WriteFunc:  g.enumWrite,
		}},
		{schema.KindList, codegen.KindFuncs{
			TagName:    codecTagName(schema.KindList),
			DefineFunc: g.listDefine,
			ReadFunc:   g.listRead,
			WriteFunc:  g.listWrite,
		}},
		{schema.KindStruct, codegen.KindFuncs{
			TagName:    codecTagName(schema.KindStruct),
			DefineFunc: g.structDefine,
			ReadFunc:   g.structRead,
			WriteFunc:  structWriteFragment,
		}},
		{schema.KindException, codegen.KindFuncs{
			DefineFunc: g.structDefine,
		}},
	}

	for _, k := range kinds {
		if err := tm.Register(k.kind, k.codec); err != nil {
			return err
		}
	}

	if err := tm.Complete(); err != nil {
		return err
	}
	g.tm = tm
	return nil
}

func codecTagName(kind schema.Kind) string {
	return strings.ToUpper(kind.String())
}

// codecTag returns the runtime DataType constant for dt's wire tag
func (g *Generator) codecTag(dt *schema.DataType) (string, error) {
	tag, err := g.tm.CodecTag(dt)
	if err != nil {
		return "", err
	}
	return "rpcrt.codec.DataType." + tag, nil
}

func primitiveRead(dt *schema.DataType, target string) (string, error) {
	return fmt.Sprintf("%s = codec.read_%s();\n", target, dt.Kind), nil
}

func primitiveWrite(dt *schema.DataType, value string) (string, error) {
	return fmt.Sprintf("codec.write_%s(%s);\n", dt.Kind, value), nil
}

// throwByDirection throws a decode error while reading and an encode error while writing
func throwByDirection(w *writer.Writer) {
	w.WriteLine("if (is_read)")
	w.WriteLine("\tthrow new rpcrt.common.MessageBodyException(msg);")
	w.WriteLine("else")
	w.WriteLine("\tthrow new rpcrt.common.MessageEncodeException(msg);")
}

func (g *Generator) enumDefine(dt *schema.DataType) (string, error) {
	w := writer.New()
	name := dt.Name
	types := g.typesObject()

	w.WriteDocComment(dt.Doc)
	w.WriteLinef("%s = {", g.className(name))
	w.Indent()
	for i, entry := range dt.Entries {
		sep := ","
		if i == len(dt.Entries)-1 {
			sep = ""
		}
		w.WriteLinef("%s: %d%s", entry.Name, entry.Value, sep)
	}
	w.Dedent()
	w.WriteLine("};")
	w.BlankLine()

	w.WriteLinef("%s.%s = function(codec)", types, enumReadFunc(name))
	w.WriteBlock("{", "};", func() {
		w.WriteLine("var v = codec.read_i32();")
		w.BlankLine()
		w.WriteLinef("%s.%s(true, v);", types, enumValidateFunc(name))
		w.BlankLine()
		w.WriteLine("return v;")
	})
	w.BlankLine()

	w.WriteLinef("%s.%s = function(codec, v)", types, enumWriteFunc(name))
	w.WriteBlock("{", "};", func() {
		w.WriteLinef("%s.%s(false, v);", types, enumValidateFunc(name))
		w.BlankLine()
		w.WriteLine("codec.write_i32(v);")
	})
	w.BlankLine()

	values := make([]string, 0, len(dt.Entries))
	for _, v := range dt.Values() {
		values = append(values, strconv.FormatInt(int64(v), 10))
	}

	w.WriteLinef("%s.%s = function(is_read, v)", types, enumValidateFunc(name))
	w.WriteBlock("{", "};", func() {
		w.WriteLine("var msg;")
		w.WriteLinef("var values = [%s];", strings.Join(values, ", "))
		w.BlankLine()
		w.WriteBlock("if (values.indexOf(v) == -1) {", "}", func() {
			w.WriteLinef("msg = \"Enum %s unknown value \" + v;", name)
			w.BlankLine()
			throwByDirection(w)
		})
	})
	w.BlankLine()

	return w.String(), nil
}

func (g *Generator) enumRead(dt *schema.DataType, target string) (string, error) {
	return fmt.Sprintf("%s = %s.%s(codec);\n", target, g.typesObject(), enumReadFunc(dt.Name)), nil
}

func (g *Generator) enumWrite(dt *schema.DataType, value string) (string, error) {
	return fmt.Sprintf("%s.%s(codec, %s);\n", g.typesObject(), enumWriteFunc(dt.Name), value), nil
}

func (g *Generator) listDefine(dt *schema.DataType) (string, error) {
	w := writer.New()
	name := dt.Name
	types := g.typesObject()

	tag, err := g.codecTag(dt.Elem)
	if err != nil {
		return "", fmt.Errorf("list %s: %w", name, err)
	}
	read, err := g.tm.Read(dt.Elem, "elem")
	if err != nil {
		return "", fmt.Errorf("list %s: %w", name, err)
	}
	write, err := g.tm.Write(dt.Elem, "elem")
	if err != nil {
		return "", fmt.Errorf("list %s: %w", name, err)
	}

	w.WriteDocComment(dt.Doc)
	w.WriteLinef("%s.%s = function(codec)", types, listReadFunc(name))
	w.WriteBlock("{", "};", func() {
		w.WriteLine("var linfo;")
		w.WriteLine("var llen;")
		w.WriteLine("var dtype;")
		w.WriteLine("var i;")
		w.WriteLine("var elem;")
		w.WriteLine("var l = [];")
		w.BlankLine()
		w.WriteLine("linfo = codec.read_list_begin();")
		w.WriteLine("llen = linfo[0];")
		w.WriteLine("dtype = linfo[1];")
		w.BlankLine()
		w.WriteLinef("if (dtype != %s)", tag)
		w.WriteLinef("\tthrow new rpcrt.common.MessageBodyException(\"List %s has unexpected elem data type \" + dtype);", name)
		w.BlankLine()
		w.WriteBlock("for (i = 0; i < llen; i++) {", "}", func() {
			w.WriteIndented(read)
			w.WriteLine("l.push(elem);")
		})
		w.BlankLine()
		w.WriteLine("codec.read_list_end();")
		w.BlankLine()
		w.WriteLine("return l;")
	})
	w.BlankLine()

	w.WriteLinef("%s.%s = function(codec, l)", types, listWriteFunc(name))
	w.WriteBlock("{", "};", func() {
		w.WriteLinef("codec.write_list_begin(l.length, %s);", tag)
		w.BlankLine()
		w.WriteBlock("l.forEach(function(elem) {", "});", func() {
			w.WriteIndented(write)
		})
		w.BlankLine()
		w.WriteLine("codec.write_list_end();")
	})
	w.BlankLine()

	return w.String(), nil
}

func (g *Generator) listRead(dt *schema.DataType, target string) (string, error) {
	return fmt.Sprintf("%s = %s.%s(codec);\n", target, g.typesObject(), listReadFunc(dt.Name)), nil
}

func (g *Generator) listWrite(dt *schema.DataType, value string) (string, error) {
	return fmt.Sprintf("%s.%s(codec, %s);\n", g.typesObject(), listWriteFunc(dt.Name), value), nil
}

func (g *Generator) structRead(dt *schema.DataType, target string) (string, error) {
	return fmt.Sprintf("%s = new %s();\n%s.%s(codec);\n", target, g.className(dt.Name), target, structRead), nil
}

func structWriteFragment(dt *schema.DataType, value string) (string, error) {
	return fmt.Sprintf("%s.%s(codec);\n", value, structWrite), nil
}

// structDefine emits a declared struct or exception with the run's access strategy
func (g *Generator) structDefine(dt *schema.DataType) (string, error) {
	return g.defineStruct(dt, g.access)
}

// defineStruct emits the constructor, accessors, codec and validator of a struct
func (g *Generator) defineStruct(dt *schema.DataType, access codegen.FieldAccess) (string, error) {
	fa := codegen.FieldAccessor{Access: access, Receiver: "this"}
	name := dt.Name
	class := g.className(name)

	// Slots and accessors share the object with the codec methods
	g.check.Start(name, structRead, structWrite, structValidate)
	for _, f := range dt.Fields {
		if !identifierRegex.MatchString(access.Storage(f.Name)) {
			return "", codegen.Invariantf("field %s of %s is not a valid js member", f.Name, name)
		}
		for _, member := range []string{access.Storage(f.Name), fa.GetterName(f.Name), fa.SetterName(f.Name)} {
			if err := g.check.Add(member); err != nil {
				return "", err
			}
		}
	}

	w := writer.New()

	w.WriteDocComment(dt.Doc)
	w.WriteLinef("%s = function()", class)
	w.WriteBlock("{", "};", func() {
		for _, f := range dt.Fields {
			w.WriteLinef("%s = null;", fa.Var(f.Name))
		}
	})
	w.BlankLine()

	if access.HasAccessors() {
		for _, f := range dt.Fields {
			w.WriteLinef("%s.prototype.%s = function()", class, fa.GetterName(f.Name))
			w.WriteBlock("{", "};", func() {
				w.WriteLinef("return %s;", fa.Var(f.Name))
			})
			w.BlankLine()

			w.WriteLinef("%s.prototype.%s = function(%s)", class, fa.SetterName(f.Name), f.Name)
			w.WriteBlock("{", "};", func() {
				w.WriteLinef("%s = %s;", fa.Var(f.Name), f.Name)
			})
			w.BlankLine()
		}
	}

	if err := g.writeStructRead(w, dt, class, fa); err != nil {
		return "", err
	}
	if err := g.writeStructWrite(w, dt, class, fa); err != nil {
		return "", err
	}
	if dt.HasRequired() {
		writeStructValidate(w, dt, class, fa)
	}

	return w.String(), nil
}

func (g *Generator) writeStructRead(w *writer.Writer, dt *schema.DataType, class string, fa codegen.FieldAccessor) error {
	name := dt.Name

	type fieldRead struct {
		tag, slot, read string
		fid             int16
	}
	cases := make([]fieldRead, 0, len(dt.Fields))
	for _, f := range dt.Fields {
		tag, err := g.codecTag(f.Type)
		if err != nil {
			return fmt.Errorf("field %s of %s: %w", f.Name, name, err)
		}
		read, err := g.tm.Read(f.Type, fa.Var(f.Name))
		if err != nil {
			return fmt.Errorf("field %s of %s: %w", f.Name, name, err)
		}
		cases = append(cases, fieldRead{tag, fa.Var(f.Name), read, f.ID})
	}

	w.WriteLinef("%s.prototype.%s = function(codec)", class, structRead)
	w.WriteBlock("{", "};", func() {
		w.WriteLine("var finfo;")
		w.WriteLine("var fid;")
		w.WriteLine("var dtype;")
		w.WriteLine("var err_dtype;")
		w.WriteLine("var err_dup;")
		w.BlankLine()
		w.WriteLine("codec.read_struct_begin();")
		w.BlankLine()
		w.WriteBlock("while (true) {", "}", func() {
			w.WriteLine("finfo = codec.read_field_begin();")
			w.WriteLine("fid = finfo[0];")
			w.WriteLine("dtype = finfo[1];")
			w.WriteLine("err_dtype = false;")
			w.WriteLine("err_dup = false;")
			w.BlankLine()
			w.WriteLine("if (fid == rpcrt.codec.FID_STOP)")
			w.WriteLine("\tbreak;")
			w.BlankLine()
			w.WriteBlock("switch (fid) {", "}", func() {
				for _, c := range cases {
					w.WriteLinef("case %d:", c.fid)
					w.Indent()
					w.WriteLinef("if (dtype != %s) {", c.tag)
					w.WriteLine("\terr_dtype = true;")
					w.WriteLinef("} else if (%s != null) {", c.slot)
					w.WriteLine("\terr_dup = true;")
					w.WriteLine("} else {")
					w.Indent()
					w.WriteIndented(c.read)
					w.Dedent()
					w.WriteLine("}")
					w.WriteLine("break;")
					w.Dedent()
					w.BlankLine()
				}
				w.WriteLine("default:")
				w.WriteLinef("\tthrow new rpcrt.common.MessageBodyException(\"Struct %s unknown fid \" + fid);", name)
			})
			w.BlankLine()
			w.WriteLine("if (err_dtype)")
			w.WriteLinef("\tthrow new rpcrt.common.MessageBodyException(\"Struct %s fid \" + fid + \" has unexpected data type \" + dtype);", name)
			w.WriteLine("else if (err_dup)")
			w.WriteLinef("\tthrow new rpcrt.common.MessageBodyException(\"Struct %s fid \" + fid + \" is duplicated\");", name)
			w.BlankLine()
			w.WriteLine("codec.read_field_end();")
		})
		w.BlankLine()
		w.WriteLine("codec.read_struct_end();")
		if dt.HasRequired() {
			w.BlankLine()
			w.WriteLinef("this.%s(true);", structValidate)
		}
	})
	w.BlankLine()
	return nil
}

func (g *Generator) writeStructWrite(w *writer.Writer, dt *schema.DataType, class string, fa codegen.FieldAccessor) error {
	type fieldWrite struct {
		required        bool
		slot, tag, body string
		fid             int16
	}
	writes := make([]fieldWrite, 0, len(dt.Fields))
	for _, f := range dt.Fields {
		tag, err := g.codecTag(f.Type)
		if err != nil {
			return fmt.Errorf("field %s of %s: %w", f.Name, dt.Name, err)
		}
		body, err := g.tm.Write(f.Type, fa.Var(f.Name))
		if err != nil {
			return fmt.Errorf("field %s of %s: %w", f.Name, dt.Name, err)
		}
		writes = append(writes, fieldWrite{f.Required, fa.Var(f.Name), tag, body, f.ID})
	}

	w.WriteLinef("%s.prototype.%s = function(codec)", class, structWrite)
	w.WriteBlock("{", "};", func() {
		if dt.HasRequired() {
			w.WriteLinef("this.%s(false);", structValidate)
			w.BlankLine()
		}
		w.WriteLine("codec.write_struct_begin();")
		w.BlankLine()
		for _, fw := range writes {
			if !fw.required {
				w.WriteLinef("if (%s != null) {", fw.slot)
				w.Indent()
			}
			w.WriteLinef("codec.write_field_begin(%d, %s);", fw.fid, fw.tag)
			w.WriteIndented(fw.body)
			w.WriteLine("codec.write_field_end();")
			if !fw.required {
				w.Dedent()
				w.WriteLine("}")
			}
			w.BlankLine()
		}
		w.WriteLine("codec.write_field_stop();")
		w.BlankLine()
		w.WriteLine("codec.write_struct_end();")
	})
	w.BlankLine()
	return nil
}

// writeStructValidate reports the first absent required field in declaration order
func writeStructValidate(w *writer.Writer, dt *schema.DataType, class string, fa codegen.FieldAccessor) {
	w.WriteLinef("%s.prototype.%s = function(is_read)", class, structValidate)
	w.WriteBlock("{", "};", func() {
		w.WriteLine("var msg;")
		w.WriteLine("var name = null;")
		w.BlankLine()
		first := true
		for _, f := range dt.Fields {
			if !f.Required {
				continue
			}
			kw := "else if"
			if first {
				kw = "if"
				first = false
			}
			w.WriteLinef("%s (%s == null)", kw, fa.Var(f.Name))
			w.WriteLinef("\tname = %q;", f.Name)
		}
		w.BlankLine()
		w.WriteBlock("if (name != null) {", "}", func() {
			w.WriteLinef("msg = \"Struct %s field \" + name + \" is null\";", dt.Name)
			w.BlankLine()
			throwByDirection(w)
		})
	})
	w.BlankLine()
}
