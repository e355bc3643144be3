package golang

import (
	"fmt"
	"strings"

	"github.com/okra-platform/rpcgen/internal/codegen"
	"github.com/okra-platform/rpcgen/internal/codegen/writer"
	"github.com/okra-platform/rpcgen/internal/schema"
)

// checkErr wraps a call expression returning error
func checkErr(call string) string {
	return fmt.Sprintf("if err := %s; err != nil {\n\treturn err\n}\n", call)
}

// assignErr assigns to an existing err variable
func assignErr(call string) string {
	return fmt.Sprintf("if err = %s; err != nil {\n\treturn err\n}\n", call)
}

// assignValue stores a decoded value in target and the error in an existing err variable
func assignValue(target, call string) string {
	return fmt.Sprintf("if %s, err = %s; err != nil {\n\treturn err\n}\n", target, call)
}

func (g *Generator) setupKinds() error {
	tm := codegen.NewTypeManager()

	if err := tm.RegisterPrimitives(func(kind schema.Kind) codegen.KindCodec {
		return codegen.KindFuncs{
			TagName:   wireMethods[kind],
			ReadFunc:  g.primitiveRead,
			WriteFunc: g.primitiveWrite,
		}
	}); err != nil {
		return err
	}

	kinds := []struct {
		kind  schema.Kind
		codec codegen.KindCodec
	}{
		{schema.KindEnum, codegen.KindFuncs{
			TagName:    wireMethods[schema.KindEnum],
			DefineFunc: g.enumDefine,
			ReadFunc:   g.enumRead,
			WriteFunc:  g.enumWrite,
		}},
		{schema.KindList, codegen.KindFuncs{
			TagName:    wireMethods[schema.KindList],
			DefineFunc: g.listDefine,
			ReadFunc:   g.listRead,
			WriteFunc:  g.listWrite,
		}},
		{schema.KindStruct, codegen.KindFuncs{
			TagName:    wireMethods[schema.KindStruct],
			DefineFunc: g.structDefine,
			ReadFunc:   g.structRead,
			WriteFunc:  g.structWrite,
		}},
		// Exceptions share the struct definition but never appear as values
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

// codecTag returns the rpcrt constant for dt's wire tag
func (g *Generator) codecTag(dt *schema.DataType) (string, error) {
	tag, err := g.tm.CodecTag(dt)
	if err != nil {
		return "", err
	}
	return "rpcrt.DataType" + tag, nil
}

func (g *Generator) primitiveRead(dt *schema.DataType, target string) (string, error) {
	return assignValue(target, fmt.Sprintf("dec.Read%s()", wireMethods[dt.Kind])), nil
}

func (g *Generator) primitiveWrite(dt *schema.DataType, value string) (string, error) {
	return checkErr(fmt.Sprintf("enc.Write%s(%s)", wireMethods[dt.Kind], value)), nil
}

func (g *Generator) enumDefine(dt *schema.DataType) (string, error) {
	w := writer.New()
	name := dt.Name

	w.WriteDocComment(dt.Doc)
	w.WriteLinef("type %s int32", name)
	w.BlankLine()

	w.WriteLine("const (")
	w.Indent()
	for _, entry := range dt.Entries {
		w.WriteDocComment(entry.Doc)
		w.WriteLinef("%s %s = %d", enumConst(dt, entry), name, entry.Value)
	}
	w.Dedent()
	w.WriteLine(")")
	w.BlankLine()

	values := dt.Values()
	cases := make([]string, len(values))
	for i, v := range values {
		cases[i] = fmt.Sprintf("%d", v)
	}

	w.WriteLinef("// Valid returns true if the %s is a declared value", name)
	w.WriteLinef("func (e %s) Valid() bool {", name)
	w.Indent()
	w.WriteLine("switch e {")
	w.WriteLinef("case %s:", strings.Join(cases, ", "))
	w.Indent()
	w.WriteLine("return true")
	w.Dedent()
	w.WriteLine("default:")
	w.Indent()
	w.WriteLine("return false")
	w.Dedent()
	w.WriteLine("}")
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()

	w.WriteLinef("func %s(dec rpcrt.Decoder) (%s, error) {", enumReadFunc(name), name)
	w.Indent()
	w.WriteLine("v, err := dec.ReadI32()")
	w.WriteBlock("if err != nil {", "}", func() {
		w.WriteLine("return 0, err")
	})
	w.WriteBlock(fmt.Sprintf("if err := %s(true, %s(v)); err != nil {", enumValidateFunc(name), name), "}", func() {
		w.WriteLine("return 0, err")
	})
	w.WriteLinef("return %s(v), nil", name)
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()

	w.WriteLinef("func %s(enc rpcrt.Encoder, v %s) error {", enumWriteFunc(name), name)
	w.Indent()
	w.WriteIndented(checkErr(fmt.Sprintf("%s(false, v)", enumValidateFunc(name))))
	w.WriteLine("return enc.WriteI32(int32(v))")
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()

	w.WriteLinef("func %s(isRead bool, v %s) error {", enumValidateFunc(name), name)
	w.Indent()
	w.WriteBlock("if !v.Valid() {", "}", func() {
		w.WriteLinef("return rpcrt.EnumValueError(isRead, %q, int64(v))", name)
	})
	w.WriteLine("return nil")
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()

	return w.String(), nil
}

func (g *Generator) enumRead(dt *schema.DataType, target string) (string, error) {
	return assignValue(target, enumReadFunc(dt.Name)+"(dec)"), nil
}

func (g *Generator) enumWrite(dt *schema.DataType, value string) (string, error) {
	return checkErr(fmt.Sprintf("%s(enc, %s)", enumWriteFunc(dt.Name), value)), nil
}

func (g *Generator) listDefine(dt *schema.DataType) (string, error) {
	w := writer.New()
	name := dt.Name
	elem := valueType(dt.Elem)

	tag, err := g.codecTag(dt.Elem)
	if err != nil {
		return "", err
	}
	readElem, err := g.tm.Read(dt.Elem, "items[i]")
	if err != nil {
		return "", err
	}
	writeElem, err := g.tm.Write(dt.Elem, "l[i]")
	if err != nil {
		return "", err
	}

	w.WriteLinef("func %s(dec rpcrt.Decoder, l *[]%s) error {", listReadFunc(name), elem)
	w.Indent()
	w.WriteLine("n, dt, err := dec.ReadListBegin()")
	w.WriteBlock("if err != nil {", "}", func() {
		w.WriteLine("return err")
	})
	w.WriteBlock(fmt.Sprintf("if dt != %s {", tag), "}", func() {
		w.WriteLinef("return rpcrt.ListTypeError(%q, dt)", name)
	})
	w.BlankLine()
	w.WriteLinef("items := make([]%s, n)", elem)
	w.WriteBlock("for i := 0; i < n; i++ {", "}", func() {
		w.WriteIndented(readElem)
	})
	w.BlankLine()
	w.WriteIndented(checkErr("dec.ReadListEnd()"))
	w.WriteLine("*l = items")
	w.WriteLine("return nil")
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()

	w.WriteLinef("func %s(enc rpcrt.Encoder, l []%s) error {", listWriteFunc(name), elem)
	w.Indent()
	w.WriteIndented(checkErr(fmt.Sprintf("enc.WriteListBegin(len(l), %s)", tag)))
	w.WriteBlock("for i := range l {", "}", func() {
		w.WriteIndented(writeElem)
	})
	w.WriteLine("return enc.WriteListEnd()")
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()

	return w.String(), nil
}

func (g *Generator) listRead(dt *schema.DataType, target string) (string, error) {
	return assignErr(fmt.Sprintf("%s(dec, %s)", listReadFunc(dt.Name), addressOf(target))), nil
}

func (g *Generator) listWrite(dt *schema.DataType, value string) (string, error) {
	return checkErr(fmt.Sprintf("%s(enc, %s)", listWriteFunc(dt.Name), value)), nil
}

func (g *Generator) structRead(dt *schema.DataType, target string) (string, error) {
	return assignErr(fmt.Sprintf("%s.%s(dec)", receiverOf(target), structRead)), nil
}

func (g *Generator) structWrite(dt *schema.DataType, value string) (string, error) {
	return checkErr(fmt.Sprintf("%s.%s(enc)", receiverOf(value), structWrite)), nil
}
