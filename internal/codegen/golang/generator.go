package golang

import (
	"fmt"
	"go/format"
	"sort"

	"github.com/okra-platform/rpcgen/internal/codegen"
	"github.com/okra-platform/rpcgen/internal/codegen/output"
	"github.com/okra-platform/rpcgen/internal/codegen/writer"
	"github.com/okra-platform/rpcgen/internal/schema"
	"github.com/rs/zerolog"
)

const (
	// Name is the backend name in the registry
	Name = "go"

	// DefaultRuntime is the import path of the runtime generated code calls into
	DefaultRuntime = "github.com/okra-platform/rpcgen/pkg/rpcrt"

	typesFile     = "types.go"
	clientFile    = "client.go"
	processorFile = "processor.go"

	header = "// Code generated by rpcgen. DO NOT EDIT."
)

// Generator generates Go code against pkg/rpcrt
type Generator struct {
	schema      *schema.Schema
	packageName string
	runtime     string
	access      codegen.FieldAccess
	logger      zerolog.Logger

	tm      *codegen.TypeManager
	check   *codegen.AccessorCheck
	types   []*schema.DataType
	methods []*schema.Method
}

// New creates a Go generator. It is the backend's codegen.Factory.
func New(s *schema.Schema, cfg codegen.Config) (codegen.Generator, error) {
	pkg := cfg.ResolveNamespace(s)
	if err := validIdentifier(pkg); err != nil {
		return nil, fmt.Errorf("%w: go package %q", codegen.ErrNamespace, pkg)
	}

	g := &Generator{
		schema:      s,
		packageName: pkg,
		runtime:     cfg.Option("runtime", DefaultRuntime),
		access:      cfg.Access,
		logger:      cfg.Logger,
		check:       codegen.NewAccessorCheck(),
		types:       sortedTypes(s.Types),
		methods:     sortedMethods(s.Methods),
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

// checkNames rejects top-level declarations and exported methods that would collide
func (g *Generator) checkNames() error {
	top := newNameSet("top-level name")
	for _, name := range []string{"Client", "Processor", "Handler", "NewClient", "NewProcessor"} {
		if err := top.add(name); err != nil {
			return err
		}
	}

	for _, dt := range g.types {
		if err := validIdentifier(dt.Name); err != nil {
			return err
		}
		names := []string{dt.Name}
		switch dt.Kind {
		case schema.KindEnum:
			names = append(names, enumReadFunc(dt.Name), enumWriteFunc(dt.Name), enumValidateFunc(dt.Name))
			for _, entry := range dt.Entries {
				names = append(names, enumConst(dt, entry))
			}
		case schema.KindList:
			// Lists are Go slices; only their helpers are declared
			names = []string{listReadFunc(dt.Name), listWriteFunc(dt.Name)}
		case schema.KindStruct, schema.KindException:
			names = append(names, ctorName(dt.Name))
		}
		for _, name := range names {
			if err := top.add(name); err != nil {
				return err
			}
		}
	}

	methods := newNameSet("method")
	for _, name := range []string{clientContinue, "ProcessOne", "CallContinue"} {
		if err := methods.add(name); err != nil {
			return err
		}
	}

	for _, m := range g.methods {
		if err := validIdentifier(m.Name); err != nil {
			return err
		}
		for _, name := range []string{argsStructName(m.Name), resultStructName(m.Name), ctorName(argsStructName(m.Name)), ctorName(resultStructName(m.Name))} {
			if err := top.add(name); err != nil {
				return err
			}
		}
		if err := methods.add(exportedMethod(m.Name)); err != nil {
			return err
		}
	}
	return nil
}

// open starts a Go unit with the generated header, package clause and runtime import
func (g *Generator) open(e *output.Emitter, name string, useRuntime bool) (*output.Unit, *writer.Writer, error) {
	u, err := e.Open(name)
	if err != nil {
		return nil, nil, err
	}
	u.SetFormatter(g.format)

	w := writer.New()
	w.WriteLine(header)
	w.BlankLine()
	w.WriteLinef("package %s", g.packageName)
	w.BlankLine()
	if useRuntime {
		w.WriteLinef("import rpcrt %q", g.runtime)
		w.BlankLine()
	}
	return u, w, nil
}

func (g *Generator) close(e *output.Emitter, u *output.Unit, w *writer.Writer) error {
	u.Write(w.String())
	return e.Close(u)
}

// format runs gofmt over a finished unit
func (g *Generator) format(name string, src []byte) ([]byte, error) {
	formatted, err := format.Source(src)
	if err != nil {
		return nil, fmt.Errorf("gofmt: %w", err)
	}
	return formatted, nil
}

// GenTypes emits types.go: declared types followed by the marshaling structs
func (g *Generator) GenTypes(e *output.Emitter) error {
	u, w, err := g.open(e, typesFile, len(g.types) > 0 || len(g.methods) > 0)
	if err != nil {
		return err
	}

	for _, dt := range g.types {
		def, err := g.tm.Define(dt)
		if err != nil {
			return fmt.Errorf("type %s: %w", dt.Name, err)
		}
		w.Write(def)
	}

	for _, m := range g.methods {
		for _, dt := range []*schema.DataType{
			codegen.ArgsStruct(m, argsStructName(m.Name)),
			codegen.ResultStruct(m, resultStructName(m.Name)),
		} {
			def, err := g.defineStruct(dt, codegen.MarshalAccess)
			if err != nil {
				return fmt.Errorf("method %s: %w", m.Name, err)
			}
			w.Write(def)
		}
	}

	g.logger.Debug().Int("types", len(g.types)).Int("methods", len(g.methods)).Msg("generated go types")
	return g.close(e, u, w)
}
