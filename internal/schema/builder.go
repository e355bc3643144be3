package schema

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidSchema is returned by Build for any structural problem in the declarations
var ErrInvalidSchema = errors.New("invalid schema")

var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// FieldSpec declares a struct field or method argument by type name
type FieldSpec struct {
	ID       int16
	Name     string
	Type     string
	Required bool
	Doc      string
}

type typeDecl struct {
	kind    Kind
	name    string
	doc     string
	entries []EnumEntry
	elem    string
	fields  []FieldSpec
}

type methodDecl struct {
	name   string
	doc    string
	args   []FieldSpec
	result string
	throws []string
}

// Builder collects declarations and resolves them into a Schema.
// Type references are resolved in Build, so declarations may appear in any order.
type Builder struct {
	namespace string
	types     []typeDecl
	methods   []methodDecl
}

// NewBuilder creates a builder for the given namespace
func NewBuilder(namespace string) *Builder {
	return &Builder{namespace: namespace}
}

// Namespace overrides the namespace given to NewBuilder
func (b *Builder) Namespace(ns string) *Builder {
	b.namespace = ns
	return b
}

// Enum declares an enum type
func (b *Builder) Enum(name, doc string, entries ...EnumEntry) *Builder {
	b.types = append(b.types, typeDecl{kind: KindEnum, name: name, doc: doc, entries: entries})
	return b
}

// List declares a named list type
func (b *Builder) List(name, elem string) *Builder {
	b.types = append(b.types, typeDecl{kind: KindList, name: name, elem: elem})
	return b
}

// Struct declares a struct type
func (b *Builder) Struct(name, doc string, fields ...FieldSpec) *Builder {
	b.types = append(b.types, typeDecl{kind: KindStruct, name: name, doc: doc, fields: fields})
	return b
}

// Exception declares an exception type
func (b *Builder) Exception(name, doc string, fields ...FieldSpec) *Builder {
	b.types = append(b.types, typeDecl{kind: KindException, name: name, doc: doc, fields: fields})
	return b
}

// Method declares a remote method. An empty result means the method returns nothing.
func (b *Builder) Method(name, doc string, args []FieldSpec, result string, throws ...string) *Builder {
	b.methods = append(b.methods, methodDecl{name: name, doc: doc, args: args, result: result, throws: throws})
	return b
}

// HasType reports whether a type with the given name has been declared
func (b *Builder) HasType(name string) bool {
	for _, t := range b.types {
		if t.name == name {
			return true
		}
	}
	return false
}

// Build validates every declaration and returns the resolved schema
func (b *Builder) Build() (*Schema, error) {
	s := &Schema{
		Namespace: b.namespace,
		Types:     make([]*DataType, 0, len(b.types)),
		Methods:   make([]*Method, 0, len(b.methods)),
		byName:    make(map[string]*DataType, len(b.types)),
	}

	// First pass: allocate every named type so references can point at them
	for _, decl := range b.types {
		if err := checkIdentifier("type", decl.name); err != nil {
			return nil, err
		}
		if _, ok := primitives[decl.name]; ok {
			return nil, fmt.Errorf("%w: type %s shadows a primitive type", ErrInvalidSchema, decl.name)
		}
		if _, ok := s.byName[decl.name]; ok {
			return nil, fmt.Errorf("%w: type %s is declared twice", ErrInvalidSchema, decl.name)
		}
		dt := &DataType{Kind: decl.kind, Name: decl.name, Doc: decl.doc}
		s.byName[decl.name] = dt
		s.Types = append(s.Types, dt)
	}

	// Second pass: resolve payloads
	for i, decl := range b.types {
		dt := s.Types[i]
		switch decl.kind {
		case KindEnum:
			entries, err := resolveEntries(decl)
			if err != nil {
				return nil, err
			}
			dt.Entries = entries
		case KindList:
			elem, err := s.resolveValueType(decl.elem, "list "+decl.name)
			if err != nil {
				return nil, err
			}
			dt.Elem = elem
		case KindStruct, KindException:
			fields, err := s.resolveFields(decl.fields, decl.name)
			if err != nil {
				return nil, err
			}
			dt.Fields = fields
		default:
			return nil, fmt.Errorf("%w: type %s has unsupported kind %s", ErrInvalidSchema, decl.name, decl.kind)
		}
	}

	if err := s.checkListCycles(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(b.methods))
	for _, decl := range b.methods {
		if err := checkIdentifier("method", decl.name); err != nil {
			return nil, err
		}
		if seen[decl.name] {
			return nil, fmt.Errorf("%w: method %s is declared twice", ErrInvalidSchema, decl.name)
		}
		seen[decl.name] = true

		m, err := s.resolveMethod(decl)
		if err != nil {
			return nil, err
		}
		s.Methods = append(s.Methods, m)
	}

	return s, nil
}

func (s *Schema) resolveMethod(decl methodDecl) (*Method, error) {
	args, err := s.resolveFields(decl.args, "method "+decl.name)
	if err != nil {
		return nil, err
	}

	m := &Method{Name: decl.name, Doc: decl.doc, Args: args}

	if decl.result != "" {
		result, err := s.resolveValueType(decl.result, "method "+decl.name+" result")
		if err != nil {
			return nil, err
		}
		m.Result = result
	}

	thrown := make(map[string]bool, len(decl.throws))
	for _, name := range decl.throws {
		dt, ok := s.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: method %s throws unknown type %s", ErrInvalidSchema, decl.name, name)
		}
		if dt.Kind != KindException {
			return nil, fmt.Errorf("%w: method %s throws %s which is not an exception", ErrInvalidSchema, decl.name, name)
		}
		if thrown[name] {
			return nil, fmt.Errorf("%w: method %s throws %s twice", ErrInvalidSchema, decl.name, name)
		}
		thrown[name] = true
		m.Throws = append(m.Throws, dt)
	}

	return m, nil
}

func (s *Schema) resolveFields(specs []FieldSpec, owner string) ([]*Field, error) {
	fields := make([]*Field, 0, len(specs))
	names := make(map[string]bool, len(specs))
	ids := make(map[int16]string, len(specs))

	for _, spec := range specs {
		if err := checkIdentifier("field", spec.Name); err != nil {
			return nil, fmt.Errorf("%s: %w", owner, err)
		}
		if names[spec.Name] {
			return nil, fmt.Errorf("%w: %s has duplicate field name %s", ErrInvalidSchema, owner, spec.Name)
		}
		if spec.ID < 0 {
			return nil, fmt.Errorf("%w: %s field %s has negative id %d", ErrInvalidSchema, owner, spec.Name, spec.ID)
		}
		if other, ok := ids[spec.ID]; ok {
			return nil, fmt.Errorf("%w: %s fields %s and %s share id %d", ErrInvalidSchema, owner, other, spec.Name, spec.ID)
		}
		names[spec.Name] = true
		ids[spec.ID] = spec.Name

		dt, err := s.resolveValueType(spec.Type, owner+" field "+spec.Name)
		if err != nil {
			return nil, err
		}

		fields = append(fields, &Field{
			ID:       spec.ID,
			Name:     spec.Name,
			Type:     dt,
			Required: spec.Required,
			Doc:      spec.Doc,
		})
	}

	return fields, nil
}

// resolveValueType resolves a type usable as a value: anything except exceptions
func (s *Schema) resolveValueType(name, where string) (*DataType, error) {
	dt, ok := s.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s references unknown type %q", ErrInvalidSchema, where, name)
	}
	if dt.Kind == KindException {
		return nil, fmt.Errorf("%w: %s cannot use exception %s as a value type", ErrInvalidSchema, where, name)
	}
	return dt, nil
}

// checkListCycles rejects lists whose element chain leads back to the list itself
func (s *Schema) checkListCycles() error {
	for _, dt := range s.TypesOf(KindList) {
		seen := map[*DataType]bool{dt: true}
		for cur := dt.Elem; cur != nil && cur.Kind == KindList; cur = cur.Elem {
			if seen[cur] {
				return fmt.Errorf("%w: list %s contains itself", ErrInvalidSchema, dt.Name)
			}
			seen[cur] = true
		}
	}
	return nil
}

func resolveEntries(decl typeDecl) ([]EnumEntry, error) {
	if len(decl.entries) == 0 {
		return nil, fmt.Errorf("%w: enum %s has no entries", ErrInvalidSchema, decl.name)
	}
	names := make(map[string]bool, len(decl.entries))
	entries := make([]EnumEntry, 0, len(decl.entries))
	for _, e := range decl.entries {
		if err := checkIdentifier("enum entry", e.Name); err != nil {
			return nil, fmt.Errorf("enum %s: %w", decl.name, err)
		}
		if names[e.Name] {
			return nil, fmt.Errorf("%w: enum %s has duplicate entry %s", ErrInvalidSchema, decl.name, e.Name)
		}
		names[e.Name] = true
		entries = append(entries, e)
	}
	return entries, nil
}

func checkIdentifier(what, name string) error {
	if !identifierRegex.MatchString(name) {
		return fmt.Errorf("%w: %s name %q is not a valid identifier", ErrInvalidSchema, what, name)
	}
	return nil
}
