package protobuf

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/okra-platform/rpcgen/internal/codegen"
	"github.com/okra-platform/rpcgen/internal/codegen/output"
	"github.com/okra-platform/rpcgen/internal/schema"
	"github.com/rs/zerolog"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/types/descriptorpb"
)

const (
	// Name is the backend name in the registry
	Name = "proto"

	// DefaultService is the service name used when the "service" option is unset
	DefaultService = "Service"

	typesFile      = "types.proto"
	serviceFile    = "service.proto"
	descriptorFile = "service.pb.desc"

	header = "// Code generated by rpcgen. DO NOT EDIT."
)

// ErrUnsupported is returned when a schema cannot be expressed in proto3
var ErrUnsupported = errors.New("schema not representable in protobuf")

var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Generator emits proto3 sources and a compiled descriptor set. The field
// access strategy does not apply: protobuf has no accessor naming to choose.
type Generator struct {
	pkg    string
	logger zerolog.Logger

	docs    map[string]string
	types   *descriptorpb.FileDescriptorProto
	service *descriptorpb.FileDescriptorProto
}

// New creates a protobuf generator. It is the backend's codegen.Factory.
// Descriptors are built and validated up front so no unit is written for a
// schema protobuf cannot express.
func New(s *schema.Schema, cfg codegen.Config) (codegen.Generator, error) {
	pkg := cfg.ResolveNamespace(s)
	if err := validatePackage(pkg); err != nil {
		return nil, err
	}

	types := append([]*schema.DataType(nil), s.Types...)
	sort.SliceStable(types, func(i, j int) bool { return types[i].Name < types[j].Name })
	methods := append([]*schema.Method(nil), s.Methods...)
	sort.SliceStable(methods, func(i, j int) bool { return methods[i].Name < methods[j].Name })

	goPackage := cfg.Option("go_package", "")
	b := newDescriptorBuilder(pkg)

	typesFD, err := b.typesFile(types, methods, goPackage)
	if err != nil {
		return nil, err
	}
	serviceFD, err := b.serviceFile(cfg.Option("service", DefaultService), methods, goPackage)
	if err != nil {
		return nil, err
	}

	g := &Generator{
		pkg:     pkg,
		logger:  cfg.Logger,
		docs:    b.docs,
		types:   typesFD,
		service: serviceFD,
	}
	if _, err := protodesc.NewFiles(g.descriptorSet()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupported, err)
	}
	return g, nil
}

// Language returns the name of the target language
func (g *Generator) Language() string {
	return Name
}

func validatePackage(pkg string) error {
	if pkg == "" {
		return fmt.Errorf("%w: protobuf package is empty", codegen.ErrNamespace)
	}
	for _, comp := range strings.Split(pkg, ".") {
		if !identifierRegex.MatchString(comp) {
			return fmt.Errorf("%w: protobuf package %q has invalid component %q", codegen.ErrNamespace, pkg, comp)
		}
	}
	return nil
}

func (g *Generator) descriptorSet() *descriptorpb.FileDescriptorSet {
	return &descriptorpb.FileDescriptorSet{
		File: []*descriptorpb.FileDescriptorProto{g.types, g.service},
	}
}

func (g *Generator) emitText(e *output.Emitter, name string, fd *descriptorpb.FileDescriptorProto) error {
	u, err := e.Open(name)
	if err != nil {
		return err
	}
	u.Write(g.render(fd))
	return e.Close(u)
}

// GenTypes emits types.proto
func (g *Generator) GenTypes(e *output.Emitter) error {
	g.logger.Debug().Int("messages", len(g.types.GetMessageType())).Int("enums", len(g.types.GetEnumType())).Msg("generated protobuf types")
	return g.emitText(e, typesFile, g.types)
}

// GenClient emits service.proto, the declaration clients are generated from
func (g *Generator) GenClient(e *output.Emitter) error {
	return g.emitText(e, serviceFile, g.service)
}

// GenProcessor emits the binary FileDescriptorSet servers load to dispatch
// calls without generated stubs
func (g *Generator) GenProcessor(e *output.Emitter) error {
	data, err := proto.MarshalOptions{Deterministic: true}.Marshal(g.descriptorSet())
	if err != nil {
		return fmt.Errorf("failed to marshal descriptor set: %w", err)
	}

	u, err := e.OpenRaw(descriptorFile)
	if err != nil {
		return err
	}
	u.WriteBytes(data)
	return e.Close(u)
}
