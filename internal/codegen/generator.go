package codegen

import (
	"github.com/okra-platform/rpcgen/internal/codegen/output"
	"github.com/okra-platform/rpcgen/internal/schema"
	"github.com/rs/zerolog"
)

// Generator is the interface that all language-specific backends must implement.
// A generator is created per run and emits its units through the emitter.
type Generator interface {
	// Language returns the backend name (e.g., "go", "js")
	Language() string

	// GenTypes emits the definitions and codecs of every declared type
	GenTypes(e *output.Emitter) error

	// GenClient emits the client stubs
	GenClient(e *output.Emitter) error

	// GenProcessor emits the server-side dispatch
	GenProcessor(e *output.Emitter) error
}

// Factory creates a generator for one schema
type Factory func(s *schema.Schema, cfg Config) (Generator, error)

// Config contains the options common to every backend
type Config struct {
	// Namespace is the package/module name for the generated code.
	// Empty falls back to the schema namespace.
	Namespace string

	// Indent is the number of spaces per indentation level; 0 keeps tabs
	Indent int

	// Access is the field access strategy for declared structs
	Access FieldAccess

	// Options holds backend-specific settings (e.g., "target" for js)
	Options map[string]string

	Logger zerolog.Logger
}

// ResolveNamespace returns the configured namespace or the schema's own
func (c Config) ResolveNamespace(s *schema.Schema) string {
	if c.Namespace != "" {
		return c.Namespace
	}
	return s.Namespace
}

// Option returns a backend option or def when unset
func (c Config) Option(key, def string) string {
	if v, ok := c.Options[key]; ok && v != "" {
		return v
	}
	return def
}
