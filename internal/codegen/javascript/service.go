package javascript

import (
	"strings"

	"github.com/okra-platform/rpcgen/internal/codegen"
	"github.com/okra-platform/rpcgen/internal/codegen/output"
	"github.com/okra-platform/rpcgen/internal/codegen/writer"
	"github.com/okra-platform/rpcgen/internal/schema"
)

// marshal addresses fields of the args/result classes, whose accessor naming is fixed
var marshal = codegen.FieldAccessor{Access: codegen.MarshalAccess}

func argNames(m *schema.Method) []string {
	args := make([]string, 0, len(m.Args))
	for _, f := range m.Args {
		args = append(args, "arg_"+f.Name)
	}
	return args
}

// GenClient emits Client.js
func (g *Generator) GenClient(e *output.Emitter) error {
	u, w, err := g.open(e, clientFile, []string{"util/ClientSubr"}, false)
	if err != nil {
		return err
	}
	client := g.clientClass()

	w.WriteLinef("%s = function(tr, codec)", client)
	w.WriteBlock("{", "};", func() {
		w.WriteLine("this._client = new rpcrt.util.ClientSubr(tr, codec);")
	})
	w.BlankLine()

	for _, m := range g.methods {
		args := argNames(m)
		params := append(append([]string(nil), args...), onContinue)

		w.WriteDocComment(m.Doc)
		w.WriteLinef("%s.prototype.%s = function(%s)", client, m.Name, strings.Join(params, ", "))
		w.WriteBlock("{", "};", func() {
			w.WriteLine("var args_seri;")
			w.WriteLine("var result_seri;")
			w.WriteLine("var exc_handler;")
			w.BlankLine()
			w.WriteLinef("args_seri = new %s();", g.className(argsClass(m.Name)))
			for i, f := range m.Args {
				w.WriteLinef("%s;", marshal.SetterInvoke("args_seri", f.Name, args[i]))
			}
			w.BlankLine()
			w.WriteLinef("result_seri = new %s();", g.className(resultClass(m.Name)))
			w.BlankLine()
			w.WriteLinef("exc_handler = rpcrt.common.proxy(this.%s, this);", excHandlerFunc(m.Name))
			w.BlankLine()
			w.WriteLinef("this._client.call(%q, args_seri, result_seri, exc_handler, %s, this);", m.Name, onContinue)
		})
		w.BlankLine()
	}

	w.WriteLinef("%s.prototype.%s = function()", client, ContinueMethod)
	w.WriteBlock("{", "};", func() {
		w.WriteLine("var r = this._client.call_continue();")
		w.BlankLine()
		w.WriteLine("return r;")
	})
	w.BlankLine()

	for _, m := range g.methods {
		w.WriteLinef("%s.prototype.%s = function(codec, name)", client, excHandlerFunc(m.Name))
		w.WriteBlock("{", "};", func() {
			w.WriteLine("var excmap = {")
			w.Indent()
			for i, exc := range m.Throws {
				sep := ","
				if i == len(m.Throws)-1 {
					sep = ""
				}
				w.WriteLinef("%q: %s%s", prefix+exc.Name, g.className(exc.Name), sep)
			}
			w.Dedent()
			w.WriteLine("};")
			w.WriteLinef("var exc_name = %q + name;", prefix)
			w.WriteLine("var exc_class;")
			w.WriteLine("var exc;")
			w.BlankLine()
			w.WriteLine("if (!(exc_name in excmap))")
			w.WriteLine("\tthrow new rpcrt.common.MessageHeaderException(\"Unknown exception name \" + name);")
			w.BlankLine()
			w.WriteLine("exc_class = excmap[exc_name];")
			w.WriteLine("exc = new exc_class();")
			w.WriteLinef("exc.%s(codec);", structRead)
			w.BlankLine()
			w.WriteLine("return exc;")
		})
		w.BlankLine()
	}

	g.logger.Debug().Int("methods", len(g.methods)).Msg("generated js client")
	return g.close(e, u, w)
}

// GenProcessor emits Processor.js. Handlers are plain objects; JavaScript has
// no interface declaration to generate.
func (g *Generator) GenProcessor(e *output.Emitter) error {
	u, w, err := g.open(e, processorFile, []string{"util/ProcessorSubr"}, false)
	if err != nil {
		return err
	}
	proc := g.processorClass()

	w.WriteLinef("%s = function(impl)", proc)
	w.WriteBlock("{", "};", func() {
		w.WriteLine("var methodmap = {")
		w.Indent()
		for i, m := range g.methods {
			sep := ","
			if i == len(g.methods)-1 {
				sep = ""
			}
			w.WriteLinef("%q: [%s, rpcrt.common.proxy(this.%s, this)]%s", prefix+m.Name, g.className(argsClass(m.Name)), handleFunc(m.Name), sep)
		}
		w.Dedent()
		w.WriteLine("};")
		w.BlankLine()
		w.WriteLine("this._impl = impl;")
		w.WriteLine("this._proc = new rpcrt.util.ProcessorSubr(methodmap);")
	})
	w.BlankLine()

	w.WriteLinef("%s.prototype.process_one = function(tr, codec)", proc)
	w.WriteBlock("{", "};", func() {
		w.WriteLine("var finished = this._proc.process_one(tr, codec);")
		w.BlankLine()
		w.WriteLine("return finished;")
	})
	w.BlankLine()

	w.WriteLinef("%s.prototype.call_continue = function(func, user_data)", proc)
	w.WriteBlock("{", "};", func() {
		w.WriteLine("var finished = this._proc.call_continue(func, user_data);")
		w.BlankLine()
		w.WriteLine("return finished;")
	})
	w.BlankLine()

	for _, m := range g.methods {
		g.writeHandle(w, m)
	}

	g.logger.Debug().Int("methods", len(g.methods)).Msg("generated js processor")
	return g.close(e, u, w)
}

// writeHandle emits the per-method dispatch. A null args_seri means the call
// is being resumed through func(user_data).
func (g *Generator) writeHandle(w *writer.Writer, m *schema.Method) {
	args := argNames(m)

	w.WriteLinef("%s.prototype.%s = function(args_seri, func, user_data)", g.processorClass(), handleFunc(m.Name))
	w.WriteLine("{")
	for _, arg := range args {
		w.WriteLinef("\tvar %s;", arg)
	}
	w.WriteLine("\tvar exc_name = null;")
	w.WriteLine("\tvar exc;")
	w.WriteLine("\tvar r = null;")
	w.WriteLine("\tvar hr;")
	w.WriteLine("\tvar result_seri;")
	w.BlankLine()

	if len(m.Args) > 0 {
		w.WriteLine("\tif (args_seri) {")
		for i, f := range m.Args {
			w.WriteLinef("\t\t%s = %s;", args[i], marshal.GetterInvoke("args_seri", f.Name))
		}
		w.WriteLine("\t}")
		w.BlankLine()
	}

	// The handler's return value is always checked, even for void methods,
	// because it may signal ProcessorNotFinished
	indent := "\t"
	if len(m.Throws) > 0 {
		w.WriteLine("\ttry {")
		indent += "\t"
	}
	w.WriteLinef("%sr = args_seri ? this._impl.%s(%s) : func(user_data);", indent, m.Name, strings.Join(args, ", "))
	if len(m.Throws) > 0 {
		w.WriteLine("\t} catch (e) {")
		for i, exc := range m.Throws {
			kw := "if"
			if i > 0 {
				kw = "} else if"
			}
			w.WriteLinef("\t\t%s (e instanceof %s) {", kw, g.className(exc.Name))
			w.WriteLinef("\t\t\texc_name = %q;", exc.Name)
			w.WriteLine("\t\t\texc = e;")
		}
		w.WriteLine("\t\t} else {")
		w.WriteLine("\t\t\tthrow e;")
		w.WriteLine("\t\t}")
		w.WriteLine("\t}")
	}
	w.BlankLine()

	w.WriteLine("\thr = new rpcrt.util.HandlerReturn();")
	w.BlankLine()
	w.WriteLine("\tif (r instanceof rpcrt.util.ProcessorNotFinishedClass) {")
	w.WriteLine("\t\thr.set_notfinished();")
	w.WriteLine("\t} else if (exc_name != null) {")
	w.WriteLine("\t\thr.set_exc(exc, exc_name);")
	w.WriteLine("\t} else {")
	w.WriteLinef("\t\tresult_seri = new %s();", g.className(resultClass(m.Name)))
	if m.Result != nil {
		w.WriteLinef("\t\t%s;", marshal.SetterInvoke("result_seri", codegen.ResultField, "r"))
	}
	w.BlankLine()
	w.WriteLine("\t\thr.set_result(result_seri);")
	w.WriteLine("\t}")
	w.BlankLine()
	w.WriteLine("\treturn hr;")
	w.WriteLine("};")
	w.BlankLine()
}
