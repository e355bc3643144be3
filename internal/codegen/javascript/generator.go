package javascript

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/okra-platform/rpcgen/internal/codegen"
	"github.com/okra-platform/rpcgen/internal/codegen/output"
	"github.com/okra-platform/rpcgen/internal/codegen/writer"
	"github.com/okra-platform/rpcgen/internal/schema"
	"github.com/rs/zerolog"
)

const (
	// Name is the backend name in the registry
	Name = "js"

	// TargetBrowser attaches the namespace to window
	TargetBrowser = "browser"
	// TargetNode wraps every unit in a CommonJS module
	TargetNode = "node"

	// DefaultRuntime is the npm module generated node code requires
	DefaultRuntime = "rpcrt-runtime"

	// prefix keeps generated keys away from Object.prototype members
	prefix = "rpc_"

	typesModule   = "Types"
	typesFile     = typesModule + ".js"
	clientFile    = "Client.js"
	processorFile = "Processor.js"

	// NodeNamespace is the object every node unit exports
	NodeNamespace = prefix + "gen"
	nsSeparator   = "."

	structRead     = prefix + "read"
	structWrite    = prefix + "write"
	structValidate = "_" + prefix + "validate"
	onContinue     = prefix + "oncontinue"
	// ContinueMethod is the client method that delivers queued replies
	ContinueMethod = prefix + "continue"
	excHandler     = "_" + prefix + "exc_handler"

	header = "// Code generated by rpcgen. DO NOT EDIT."
)

var identifierRegex = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Generator generates JavaScript against the rpcrt JavaScript runtime
type Generator struct {
	schema    *schema.Schema
	target    string
	namespace string
	runtime   string
	access    codegen.FieldAccess
	logger    zerolog.Logger

	tm      *codegen.TypeManager
	check   *codegen.AccessorCheck
	types   []*schema.DataType
	methods []*schema.Method
}

// New creates a JavaScript generator. It is the backend's codegen.Factory.
func New(s *schema.Schema, cfg codegen.Config) (codegen.Generator, error) {
	g := &Generator{
		schema:  s,
		target:  cfg.Option("target", TargetBrowser),
		runtime: cfg.Option("runtime", DefaultRuntime),
		access:  cfg.Access,
		logger:  cfg.Logger,
		check:   codegen.NewAccessorCheck(),
		types:   sortedTypes(s.Types),
		methods: sortedMethods(s.Methods),
	}

	switch g.target {
	case TargetBrowser:
		g.namespace = cfg.ResolveNamespace(s)
		if err := ValidateNamespace(g.namespace); err != nil {
			return nil, err
		}
	case TargetNode:
		// Node modules export their namespace; the name is fixed
		g.namespace = NodeNamespace
	default:
		return nil, codegen.Invariantf("js target %q is unknown", g.target)
	}

	if err := g.setupKinds(); err != nil {
		return nil, err
	}
	if err := g.checkNames(); err != nil {
		return nil, err
	}
	return g, nil
}

// Language returns the name of the target language
func (g *Generator) Language() string {
	return Name
}

// ValidateNamespace requires dot-separated identifiers
func ValidateNamespace(ns string) error {
	if ns == "" {
		return fmt.Errorf("%w: js namespace is empty", codegen.ErrNamespace)
	}
	for _, comp := range strings.Split(ns, nsSeparator) {
		if !identifierRegex.MatchString(comp) {
			return fmt.Errorf("%w: js namespace %q has invalid component %q", codegen.ErrNamespace, ns, comp)
		}
	}
	return nil
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

// Names of members of the <namespace>.Types object

func (g *Generator) typesObject() string { return g.namespace + nsSeparator + typesModule }
func (g *Generator) className(name string) string {
	return g.typesObject() + nsSeparator + name
}
func (g *Generator) clientClass() string    { return g.namespace + nsSeparator + "Client" }
func (g *Generator) processorClass() string { return g.namespace + nsSeparator + "Processor" }

func enumReadFunc(name string) string     { return prefix + "enum_read_" + name }
func enumWriteFunc(name string) string    { return prefix + "enum_write_" + name }
func enumValidateFunc(name string) string { return prefix + "enum_validate_" + name }
func listReadFunc(name string) string     { return prefix + "list_read_" + name }
func listWriteFunc(name string) string    { return prefix + "list_write_" + name }
func argsClass(method string) string      { return prefix + "args_seri_" + method }
func resultClass(method string) string    { return prefix + "result_seri_" + method }
func excHandlerFunc(method string) string { return excHandler + "_" + method }
func handleFunc(method string) string     { return "_handle_" + method }

// checkNames rejects members of the Types object and the Client prototype
// that would be generated twice
func (g *Generator) checkNames() error {
	types := make(map[string]bool)
	add := func(scope string, set map[string]bool, name string) error {
		if set[name] {
			return codegen.Invariantf("%s %s generated twice", scope, name)
		}
		set[name] = true
		return nil
	}

	for _, dt := range g.types {
		names := []string{dt.Name}
		switch dt.Kind {
		case schema.KindEnum:
			names = append(names, enumReadFunc(dt.Name), enumWriteFunc(dt.Name), enumValidateFunc(dt.Name))
		case schema.KindList:
			names = []string{listReadFunc(dt.Name), listWriteFunc(dt.Name)}
		}
		for _, name := range names {
			if err := add("type member", types, name); err != nil {
				return err
			}
		}
	}

	client := map[string]bool{"_client": true, ContinueMethod: true}
	for _, m := range g.methods {
		for _, name := range []string{argsClass(m.Name), resultClass(m.Name)} {
			if err := add("type member", types, name); err != nil {
				return err
			}
		}
		for _, name := range []string{m.Name, excHandlerFunc(m.Name)} {
			if err := add("client member", client, name); err != nil {
				return err
			}
		}
	}
	return nil
}

// open starts a unit with the generated header. Node units get the CommonJS
// prologue requiring the runtime modules they use.
func (g *Generator) open(e *output.Emitter, name string, modules []string, createNamespace bool) (*output.Unit, *writer.Writer, error) {
	u, err := e.Open(name)
	if err != nil {
		return nil, nil, err
	}

	w := writer.New()
	w.WriteLine(header)
	w.BlankLine()

	if g.target == TargetNode {
		w.WriteLine("(function() {")
		w.WriteLine("var rpcrt;")
		w.WriteLinef("var %s;", g.namespace)
		w.BlankLine()
		w.WriteLinef("rpcrt = require(%q);", g.runtime)
		for _, mod := range modules {
			w.WriteLinef("require(%q);", g.runtime+"/lib/"+mod)
		}
		w.BlankLine()
		if createNamespace {
			w.WriteLinef("%s = {};", g.namespace)
		} else {
			w.WriteLinef("%s = require(%q);", g.namespace, "./"+typesModule)
		}
		w.BlankLine()
		w.WriteLinef("module.exports = %s;", g.namespace)
		w.BlankLine()
	}
	return u, w, nil
}

// close writes the node epilogue and hands the unit to the emitter
func (g *Generator) close(e *output.Emitter, u *output.Unit, w *writer.Writer) error {
	text := w.String()
	if g.target == TargetNode {
		text = strings.TrimRight(text, "\n") + "\n})();\n"
	}
	u.Write(text)
	return e.Close(u)
}

// writeBrowserNamespace creates each namespace component under window
func (g *Generator) writeBrowserNamespace(w *writer.Writer) {
	comps := strings.Split(g.namespace, nsSeparator)
	for i, comp := range comps {
		parent := "window"
		if i > 0 {
			parent = strings.Join(comps[:i], nsSeparator)
		}
		w.WriteLinef("if (!(%q in %s)) %s.%s = {};", comp, parent, parent, comp)
	}
	w.BlankLine()
}

// GenTypes emits Types.js. It must be loaded before the other units.
func (g *Generator) GenTypes(e *output.Emitter) error {
	u, w, err := g.open(e, typesFile, []string{"codec/CodecBase"}, true)
	if err != nil {
		return err
	}
	if g.target == TargetBrowser {
		g.writeBrowserNamespace(w)
	}

	w.WriteLinef("%s = {};", g.typesObject())
	w.BlankLine()

	for _, dt := range g.types {
		def, err := g.tm.Define(dt)
		if err != nil {
			return fmt.Errorf("type %s: %w", dt.Name, err)
		}
		w.Write(def)
	}

	for _, m := range g.methods {
		args := codegen.ArgsStruct(m, argsClass(m.Name))
		result := codegen.ResultStruct(m, resultClass(m.Name))
		for _, dt := range []*schema.DataType{args, result} {
			def, err := g.defineStruct(dt, codegen.MarshalAccess)
			if err != nil {
				return fmt.Errorf("method %s: %w", m.Name, err)
			}
			w.Write(def)
		}
	}

	g.logger.Debug().Str("target", g.target).Int("types", len(g.types)).Msg("generated js types")
	return g.close(e, u, w)
}
