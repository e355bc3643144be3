// Package typescript generates TypeScript declaration files describing the
// public surface of the js backend's output.
package typescript

import (
	"fmt"
	"sort"
	"strings"

	"github.com/okra-platform/rpcgen/internal/codegen"
	"github.com/okra-platform/rpcgen/internal/codegen/javascript"
	"github.com/okra-platform/rpcgen/internal/codegen/output"
	"github.com/okra-platform/rpcgen/internal/codegen/writer"
	"github.com/okra-platform/rpcgen/internal/schema"
	"github.com/rs/zerolog"
)

const (
	// Name is the backend name in the registry
	Name = "ts"

	typesModule   = "Types"
	typesFile     = typesModule + ".d.ts"
	clientFile    = "Client.d.ts"
	processorFile = "Processor.d.ts"

	header = "// Code generated by rpcgen. DO NOT EDIT."
)

// Generator generates .d.ts files. It must run with the same target, namespace
// and access strategy as the js backend it describes.
type Generator struct {
	schema    *schema.Schema
	target    string
	namespace string
	access    codegen.FieldAccess
	logger    zerolog.Logger

	tm      *codegen.TypeManager
	check   *codegen.AccessorCheck
	types   []*schema.DataType
	methods []*schema.Method
}

// New creates a TypeScript generator. It is the backend's codegen.Factory.
func New(s *schema.Schema, cfg codegen.Config) (codegen.Generator, error) {
	g := &Generator{
		schema:  s,
		target:  cfg.Option("target", javascript.TargetBrowser),
		access:  cfg.Access,
		logger:  cfg.Logger,
		check:   codegen.NewAccessorCheck(),
		types:   sortedTypes(s.Types),
		methods: sortedMethods(s.Methods),
	}

	switch g.target {
	case javascript.TargetBrowser:
		g.namespace = cfg.ResolveNamespace(s)
		if err := javascript.ValidateNamespace(g.namespace); err != nil {
			return nil, err
		}
	case javascript.TargetNode:
		g.namespace = javascript.NodeNamespace
	default:
		return nil, codegen.Invariantf("ts target %q is unknown", g.target)
	}

	for _, m := range g.methods {
		if m.Name == "constructor" || m.Name == javascript.ContinueMethod {
			return nil, codegen.Invariantf("method %s clashes with a Client member", m.Name)
		}
	}

	if err := g.setupKinds(); err != nil {
		return nil, err
	}
	return g, nil
}

// Language returns the name of the target language
func (g *Generator) Language() string {
	return Name
}

func sortedTypes(types []*schema.DataType) []*schema.DataType {
	out := append([]*schema.DataType(nil), types...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func sortedMethods(methods []*schema.Method) []*schema.Method {
	out := append([]*schema.Method(nil), methods...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// setupKinds registers a declaration generator per kind. Primitives and lists
// are inlined at use sites and declare nothing.
func (g *Generator) setupKinds() error {
	tm := codegen.NewTypeManager()
	if err := tm.RegisterPrimitives(func(kind schema.Kind) codegen.KindCodec {
		return codegen.KindFuncs{}
	}); err != nil {
		return err
	}

	for kind, codec := range map[schema.Kind]codegen.KindCodec{
		schema.KindEnum:      codegen.KindFuncs{DefineFunc: g.enumDefine},
		schema.KindList:      codegen.KindFuncs{},
		schema.KindStruct:    codegen.KindFuncs{DefineFunc: g.classDefine},
		schema.KindException: codegen.KindFuncs{DefineFunc: g.classDefine},
	} {
		if err := tm.Register(kind, codec); err != nil {
			return err
		}
	}

	if err := tm.Complete(); err != nil {
		return err
	}
	g.tm = tm
	return nil
}

// tsType maps a schema type to a TypeScript type expression
func tsType(dt *schema.DataType) string {
	switch dt.Kind {
	case schema.KindBinary:
		return "Uint8Array"
	case schema.KindString:
		return "string"
	case schema.KindBool:
		return "boolean"
	case schema.KindList:
		return tsType(dt.Elem) + "[]"
	case schema.KindEnum, schema.KindStruct, schema.KindException:
		return typesModule + "." + dt.Name
	default:
		return "number"
	}
}

// writeJSDoc writes JSDoc style comments
func writeJSDoc(w *writer.Writer, doc string) {
	if doc == "" {
		return
	}

	lines := strings.Split(strings.TrimSpace(doc), "\n")
	if len(lines) == 1 {
		w.WriteLinef("/** %s */", lines[0])
	} else {
		w.WriteLine("/**")
		for _, line := range lines {
			w.WriteLinef(" * %s", strings.TrimSpace(line))
		}
		w.WriteLine(" */")
	}
}

// open starts a unit. Browser units declare into the global namespace; node
// units are modules re-exporting Types.
func (g *Generator) open(e *output.Emitter, name string, isTypes bool) (*output.Unit, *writer.Writer, error) {
	u, err := e.Open(name)
	if err != nil {
		return nil, nil, err
	}

	w := writer.New()
	w.WriteLine(header)
	w.BlankLine()

	if g.target == javascript.TargetBrowser {
		if !isTypes {
			w.WriteLinef("/// <reference path=\"./%s\" />", typesFile)
			w.BlankLine()
		}
		w.WriteLinef("declare namespace %s {", g.namespace)
		w.Indent()
	} else if !isTypes {
		w.WriteLinef("import { %s, Codec, ContinueCallback, NotFinished, Transport } from \"./%s\";", typesModule, typesModule)
		w.BlankLine()
		w.WriteLinef("export * from \"./%s\";", typesModule)
		w.BlankLine()
	}
	return u, w, nil
}

func (g *Generator) close(e *output.Emitter, u *output.Unit, w *writer.Writer) error {
	if g.target == javascript.TargetBrowser {
		w.Dedent()
		w.WriteLine("}")
	}
	u.Write(w.String())
	return e.Close(u)
}

// declare returns the keyword prefix for a top-level declaration
func (g *Generator) declare(keyword string) string {
	if g.target == javascript.TargetNode && keyword != "interface" && keyword != "type" {
		return "export declare " + keyword
	}
	return "export " + keyword
}

// GenTypes emits Types.d.ts with the runtime handles and every declared type
func (g *Generator) GenTypes(e *output.Emitter) error {
	u, w, err := g.open(e, typesFile, true)
	if err != nil {
		return err
	}

	w.WriteLine("/** Transport handle from the rpcrt JavaScript runtime */")
	w.WriteLinef("%s Transport {}", g.declare("interface"))
	w.WriteLine("/** Codec handle from the rpcrt JavaScript runtime */")
	w.WriteLinef("%s Codec {}", g.declare("interface"))
	w.WriteLine("/** Marker a handler returns to suspend the call */")
	w.WriteLinef("%s NotFinished {}", g.declare("interface"))
	w.WriteLinef("%s ContinueCallback = (...args: any[]) => void;", g.declare("type"))
	w.BlankLine()

	w.WriteLinef("%s %s {", g.declare("namespace"), typesModule)
	w.Indent()
	first := true
	for _, dt := range g.types {
		def, err := g.tm.Define(dt)
		if err != nil {
			return fmt.Errorf("type %s: %w", dt.Name, err)
		}
		if def == "" {
			continue
		}
		if !first {
			w.BlankLine()
		}
		first = false
		w.WriteIndented(def)
	}
	w.Dedent()
	w.WriteLine("}")

	g.logger.Debug().Str("target", g.target).Int("types", len(g.types)).Msg("generated ts declarations")
	return g.close(e, u, w)
}

func (g *Generator) enumDefine(dt *schema.DataType) (string, error) {
	w := writer.New()
	writeJSDoc(w, dt.Doc)
	w.WriteLinef("export enum %s {", dt.Name)
	w.Indent()
	for _, entry := range dt.Entries {
		writeJSDoc(w, entry.Doc)
		w.WriteLinef("%s = %d,", entry.Name, entry.Value)
	}
	w.Dedent()
	w.WriteLine("}")
	return w.String(), nil
}

// classDefine declares a struct or exception with the run's access strategy
func (g *Generator) classDefine(dt *schema.DataType) (string, error) {
	g.check.Start(dt.Name, "constructor")
	for _, f := range dt.Fields {
		members := []string{g.access.Getter(f.Name), g.access.Setter(f.Name)}
		if !g.access.HasAccessors() {
			members = []string{g.access.Storage(f.Name)}
		}
		for _, member := range members {
			if err := g.check.Add(member); err != nil {
				return "", err
			}
		}
	}

	w := writer.New()
	writeJSDoc(w, dt.Doc)
	w.WriteLinef("export class %s {", dt.Name)
	w.Indent()
	w.WriteLine("constructor();")

	for _, f := range dt.Fields {
		typ := tsType(f.Type) + " | null"
		if !g.access.HasAccessors() {
			writeJSDoc(w, f.Doc)
			w.WriteLinef("%s: %s;", g.access.Storage(f.Name), typ)
			continue
		}
		writeJSDoc(w, f.Doc)
		w.WriteLinef("%s(): %s;", g.access.Getter(f.Name), typ)
		w.WriteLinef("%s(%s: %s): void;", g.access.Setter(f.Name), f.Name, typ)
	}

	w.Dedent()
	w.WriteLine("}")
	return w.String(), nil
}

func params(m *schema.Method) []string {
	out := make([]string, 0, len(m.Args))
	for _, f := range m.Args {
		out = append(out, fmt.Sprintf("arg_%s: %s", f.Name, tsType(f.Type)))
	}
	return out
}

// GenClient emits Client.d.ts
func (g *Generator) GenClient(e *output.Emitter) error {
	u, w, err := g.open(e, clientFile, false)
	if err != nil {
		return err
	}

	w.WriteLinef("%s Client {", g.declare("class"))
	w.Indent()
	w.WriteLine("constructor(tr: Transport, codec: Codec);")
	for _, m := range g.methods {
		ps := append(params(m), "on_continue: ContinueCallback")
		writeJSDoc(w, m.Doc)
		w.WriteLinef("%s(%s): void;", m.Name, strings.Join(ps, ", "))
	}
	w.WriteLinef("%s(): boolean;", javascript.ContinueMethod)
	w.Dedent()
	w.WriteLine("}")

	g.logger.Debug().Int("methods", len(g.methods)).Msg("generated ts client")
	return g.close(e, u, w)
}

// GenProcessor emits Processor.d.ts with the Handler interface implementations satisfy
func (g *Generator) GenProcessor(e *output.Emitter) error {
	u, w, err := g.open(e, processorFile, false)
	if err != nil {
		return err
	}

	w.WriteLinef("%s Handler {", g.declare("interface"))
	w.Indent()
	for _, m := range g.methods {
		result := "void"
		if m.Result != nil {
			result = tsType(m.Result)
		}
		writeJSDoc(w, m.Doc)
		if len(m.Throws) > 0 {
			names := make([]string, 0, len(m.Throws))
			for _, exc := range m.Throws {
				names = append(names, typesModule+"."+exc.Name)
			}
			w.WriteLinef("/** @throws {%s} */", strings.Join(names, " | "))
		}
		w.WriteLinef("%s(%s): %s | NotFinished;", m.Name, strings.Join(params(m), ", "), result)
	}
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()

	w.WriteLinef("%s Processor {", g.declare("class"))
	w.Indent()
	w.WriteLine("constructor(impl: Handler);")
	w.WriteLine("process_one(tr: Transport, codec: Codec): boolean;")
	w.WriteLine("call_continue(func: (user_data: any) => unknown, user_data: any): boolean;")
	w.Dedent()
	w.WriteLine("}")

	g.logger.Debug().Int("methods", len(g.methods)).Msg("generated ts processor")
	return g.close(e, u, w)
}
