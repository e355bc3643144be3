package golang

import (
	"fmt"
	"strings"

	"github.com/okra-platform/rpcgen/internal/codegen"
	"github.com/okra-platform/rpcgen/internal/codegen/output"
	"github.com/okra-platform/rpcgen/internal/codegen/writer"
	"github.com/okra-platform/rpcgen/internal/schema"
)

var marshal = codegen.FieldAccessor{Access: codegen.MarshalAccess, Receiver: "s", Export: codegen.Capitalize}

// handlerParams renders "arg_x *T, arg_y *U" for a method's inputs
func handlerParams(m *schema.Method) []string {
	params := make([]string, len(m.Args))
	for i, f := range m.Args {
		params[i] = fmt.Sprintf("arg_%s %s", f.Name, slotType(f.Type))
	}
	return params
}

// handlerSignature renders a Handler interface method
func handlerSignature(m *schema.Method) string {
	params := strings.Join(handlerParams(m), ", ")
	if m.Result == nil {
		return fmt.Sprintf("%s(%s) error", exportedMethod(m.Name), params)
	}
	return fmt.Sprintf("%s(%s) (%s, error)", exportedMethod(m.Name), params, resultType(m.Result))
}

// GenClient emits client.go
func (g *Generator) GenClient(e *output.Emitter) error {
	u, w, err := g.open(e, clientFile, true)
	if err != nil {
		return err
	}

	w.WriteLine("// Client sends calls over a transport; outcomes are delivered by RpcContinue")
	w.WriteLine("type Client struct {")
	w.Indent()
	w.WriteLine("client *rpcrt.ClientSubr")
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()

	w.WriteLine("// NewClient creates a client over a transport")
	w.WriteLine("func NewClient(tr rpcrt.Transport, proto rpcrt.Protocol) *Client {")
	w.Indent()
	w.WriteLine("return &Client{client: rpcrt.NewClientSubr(tr, proto)}")
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()

	for _, m := range g.methods {
		g.writeClientMethod(w, m)
	}

	w.WriteLinef("// %s finalizes the outstanding call if its reply has arrived", clientContinue)
	w.WriteLinef("func (c *Client) %s() (bool, error) {", clientContinue)
	w.Indent()
	w.WriteLine("return c.client.CallContinue()")
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()

	for _, m := range g.methods {
		g.writeExcHandler(w, m)
	}

	return g.close(e, u, w)
}

func (g *Generator) writeClientMethod(w *writer.Writer, m *schema.Method) {
	params := handlerParams(m)
	if m.Result == nil {
		params = append(params, "onContinue func(error)")
	} else {
		params = append(params, fmt.Sprintf("onContinue func(%s, error)", resultType(m.Result)))
	}

	w.WriteDocComment(m.Doc)
	w.WriteLinef("func (c *Client) %s(%s) error {", exportedMethod(m.Name), strings.Join(params, ", "))
	w.Indent()
	w.WriteLinef("args := %s()", ctorName(argsStructName(m.Name)))
	for _, f := range m.Args {
		w.WriteLine(marshal.SetterInvoke("args", f.Name, "arg_"+f.Name))
	}
	w.WriteLinef("result := %s()", ctorName(resultStructName(m.Name)))
	w.BlankLine()

	call := fmt.Sprintf("c.client.Call(%q, args, result, c.%s", m.Name, excHandlerFunc(m.Name))
	if m.Result == nil {
		w.WriteLinef("return %s, onContinue)", call)
	} else {
		value := marshal.GetterInvoke("result", codegen.ResultField)
		if m.Result.Kind != schema.KindStruct {
			value = "*" + value
		}
		w.WriteLinef("return %s, func(err error) {", call)
		w.Indent()
		w.WriteBlock("if err != nil {", "}", func() {
			w.WriteLinef("var zero %s", resultType(m.Result))
			w.WriteLine("onContinue(zero, err)")
			w.WriteLine("return")
		})
		w.WriteLinef("onContinue(%s, nil)", value)
		w.Dedent()
		w.WriteLine("})")
	}
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()
}

// writeExcHandler emits the name to constructor mapping for a method's declared exceptions
func (g *Generator) writeExcHandler(w *writer.Writer, m *schema.Method) {
	w.WriteLinef("func (c *Client) %s(dec rpcrt.Decoder, name string) (rpcrt.Exception, error) {", excHandlerFunc(m.Name))
	w.Indent()
	if len(m.Throws) == 0 {
		w.WriteLine("excmap := map[string]func() rpcrt.Exception{}")
	} else {
		w.WriteLine("excmap := map[string]func() rpcrt.Exception{")
		w.Indent()
		for _, exc := range m.Throws {
			w.WriteLinef("%q: func() rpcrt.Exception { return %s() },", exc.Name, ctorName(exc.Name))
		}
		w.Dedent()
		w.WriteLine("}")
	}
	w.BlankLine()
	w.WriteLine("ctor, ok := excmap[name]")
	w.WriteBlock("if !ok {", "}", func() {
		w.WriteLine("return nil, rpcrt.UnknownExceptionError(name)")
	})
	w.BlankLine()
	w.WriteLine("exc := ctor()")
	w.WriteBlock("if err := exc.RpcRead(dec); err != nil {", "}", func() {
		w.WriteLine("return nil, err")
	})
	w.WriteLine("return exc, nil")
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()
}

// GenProcessor emits processor.go
func (g *Generator) GenProcessor(e *output.Emitter) error {
	u, w, err := g.open(e, processorFile, true)
	if err != nil {
		return err
	}

	w.WriteLine("// Handler is implemented by the service. Returning rpcrt.ErrNotFinished")
	w.WriteLine("// suspends the call until Processor.CallContinue.")
	w.WriteLine("type Handler interface {")
	w.Indent()
	for i, m := range g.methods {
		w.WriteDocComment(m.Doc)
		w.WriteLine(handlerSignature(m))
		if i < len(g.methods)-1 {
			w.BlankLine()
		}
	}
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()

	w.WriteLine("// Processor dispatches incoming calls to a Handler")
	w.WriteLine("type Processor struct {")
	w.Indent()
	w.WriteLine("impl Handler")
	w.WriteLine("proc *rpcrt.ProcessorSubr")
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()

	w.WriteLine("// NewProcessor creates a processor serving impl")
	w.WriteLine("func NewProcessor(impl Handler, opts ...rpcrt.ProcessorOption) *Processor {")
	w.Indent()
	w.WriteLine("p := &Processor{impl: impl}")
	w.WriteLine("methods := map[string]rpcrt.MethodEntry{")
	w.Indent()
	for _, m := range g.methods {
		w.WriteLinef("%q: {NewArgs: func() rpcrt.Struct { return %s() }, Handle: p.%s},",
			m.Name, ctorName(argsStructName(m.Name)), handleFunc(m.Name))
	}
	w.Dedent()
	w.WriteLine("}")
	w.WriteLine("p.proc = rpcrt.NewProcessorSubr(methods, opts...)")
	w.WriteLine("return p")
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()

	w.WriteLine("// ProcessOne serves one queued call; finished is false when the call was suspended")
	w.WriteLine("func (p *Processor) ProcessOne(tr rpcrt.Transport, proto rpcrt.Protocol) (bool, error) {")
	w.Indent()
	w.WriteLine("return p.proc.ProcessOne(tr, proto)")
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()

	w.WriteLine("// CallContinue resumes the suspended call")
	w.WriteLine("func (p *Processor) CallContinue(fn rpcrt.ResumeFunc, userData any) (bool, error) {")
	w.Indent()
	w.WriteLine("return p.proc.CallContinue(fn, userData)")
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()

	for _, m := range g.methods {
		g.writeHandle(w, m)
	}

	return g.close(e, u, w)
}

// writeHandle emits the handler wrapper: fresh calls decode args, resumes call fn
func (g *Generator) writeHandle(w *writer.Writer, m *schema.Method) {
	w.WriteLinef("func (p *Processor) %s(args rpcrt.Struct, fn rpcrt.ResumeFunc, userData any) (*rpcrt.HandlerReturn, error) {", handleFunc(m.Name))
	w.Indent()

	if m.Result != nil {
		w.WriteLinef("var r %s", resultType(m.Result))
	}
	w.WriteLine("var err error")
	w.BlankLine()

	args := make([]string, len(m.Args))
	for i, f := range m.Args {
		args[i] = marshal.GetterInvoke("a", f.Name)
	}
	invoke := fmt.Sprintf("p.impl.%s(%s)", exportedMethod(m.Name), strings.Join(args, ", "))

	w.WriteLine("if args != nil {")
	w.Indent()
	if len(m.Args) > 0 {
		w.WriteLinef("a := args.(*%s)", argsStructName(m.Name))
	}
	if m.Result == nil {
		w.WriteLinef("err = %s", invoke)
	} else {
		w.WriteLinef("r, err = %s", invoke)
	}
	w.Dedent()
	w.WriteLine("} else {")
	w.Indent()
	if m.Result == nil {
		w.WriteLine("_, err = fn(userData)")
	} else {
		w.WriteLinef("r, err = rpcrt.Resume[%s](fn, userData)", resultType(m.Result))
	}
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()

	w.WriteLine("hr := rpcrt.NewHandlerReturn()")
	w.WriteLine("if err != nil {")
	w.Indent()
	w.WriteBlock("if rpcrt.IsNotFinished(err) {", "}", func() {
		w.WriteLine("hr.SetNotFinished()")
		w.WriteLine("return hr, nil")
	})
	for _, exc := range m.Throws {
		w.WriteBlock(fmt.Sprintf("if e, ok := rpcrt.AsException[*%s](err); ok {", exc.Name), "}", func() {
			w.WriteLinef("hr.SetException(e, %q)", exc.Name)
			w.WriteLine("return hr, nil")
		})
	}
	w.WriteLine("return nil, err")
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()

	w.WriteLinef("result := %s()", ctorName(resultStructName(m.Name)))
	if m.Result != nil {
		value := "&r"
		if m.Result.Kind == schema.KindStruct {
			value = "r"
		}
		w.WriteLine(marshal.SetterInvoke("result", codegen.ResultField, value))
	}
	w.WriteLine("hr.SetResult(result)")
	w.WriteLine("return hr, nil")
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()
}
