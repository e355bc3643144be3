package schema

import (
	"sort"
)

// Kind is the category of a declared type. Codec dispatch is keyed on it.
type Kind int

const (
	KindBinary Kind = iota + 1
	KindString
	KindBool
	KindUI8
	KindUI16
	KindUI32
	KindUI64
	KindI8
	KindI16
	KindI32
	KindI64
	KindFloat
	KindDouble
	KindEnum
	KindList
	KindStruct
	KindException
)

var kindNames = map[Kind]string{
	KindBinary:    "binary",
	KindString:    "string",
	KindBool:      "bool",
	KindUI8:       "ui8",
	KindUI16:      "ui16",
	KindUI32:      "ui32",
	KindUI64:      "ui64",
	KindI8:        "i8",
	KindI16:       "i16",
	KindI32:       "i32",
	KindI64:       "i64",
	KindFloat:     "float",
	KindDouble:    "double",
	KindEnum:      "enum",
	KindList:      "list",
	KindStruct:    "struct",
	KindException: "exception",
}

// Kinds returns every kind in declaration order
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(kindNames))
	for k := KindBinary; k <= KindException; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// String returns the canonical kind name (also the primitive type name)
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsPrimitive reports whether values of this kind are host-native scalars
func (k Kind) IsPrimitive() bool {
	return k >= KindBinary && k <= KindDouble
}

// DataType is a declared type. Types are owned by the Schema and shared by reference.
type DataType struct {
	Kind Kind   `json:"kind"`
	Name string `json:"name"`
	Doc  string `json:"doc,omitempty"`

	// Entries holds the enum entries in declaration order
	Entries []EnumEntry `json:"entries,omitempty"`

	// Elem is the list element type
	Elem *DataType `json:"elem,omitempty"`

	// Fields holds struct and exception fields in declaration order
	Fields []*Field `json:"fields,omitempty"`
}

// EnumEntry is a single enum name/value pair
type EnumEntry struct {
	Name  string `json:"name"`
	Value int32  `json:"value"`
	Doc   string `json:"doc,omitempty"`
}

// Field belongs to exactly one struct or exception
type Field struct {
	ID       int16     `json:"id"`
	Name     string    `json:"name"`
	Type     *DataType `json:"type"`
	Required bool      `json:"required"`
	Doc      string    `json:"doc,omitempty"`
}

// Method is a remote call signature
type Method struct {
	Name string `json:"name"`
	Doc  string `json:"doc,omitempty"`

	// Args are the input fields in declaration order
	Args []*Field `json:"args"`

	// Result is nil for methods without a return value
	Result *DataType `json:"result,omitempty"`

	// Throws lists the declared exception types in declaration order
	Throws []*DataType `json:"throws,omitempty"`
}

// Schema is the validated model produced by the Builder
type Schema struct {
	Namespace string      `json:"namespace"`
	Types     []*DataType `json:"types"`
	Methods   []*Method   `json:"methods"`

	byName map[string]*DataType
}

// Values returns the distinct valid values of an enum in ascending order
func (dt *DataType) Values() []int32 {
	seen := make(map[int32]bool, len(dt.Entries))
	values := make([]int32, 0, len(dt.Entries))
	for _, e := range dt.Entries {
		if seen[e.Value] {
			continue
		}
		seen[e.Value] = true
		values = append(values, e.Value)
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	return values
}

// HasRequired reports whether at least one field is required
func (dt *DataType) HasRequired() bool {
	for _, f := range dt.Fields {
		if f.Required {
			return true
		}
	}
	return false
}

// Field returns the field with the given wire id
func (dt *DataType) Field(id int16) (*Field, bool) {
	for _, f := range dt.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return nil, false
}

// Lookup resolves a type name, including primitive names
func (s *Schema) Lookup(name string) (*DataType, bool) {
	if p, ok := primitives[name]; ok {
		return p, true
	}
	dt, ok := s.byName[name]
	return dt, ok
}

// Method returns the method with the given name
func (s *Schema) Method(name string) (*Method, bool) {
	for _, m := range s.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// TypesOf returns the declared types of the given kind in declaration order
func (s *Schema) TypesOf(kind Kind) []*DataType {
	var out []*DataType
	for _, dt := range s.Types {
		if dt.Kind == kind {
			out = append(out, dt)
		}
	}
	return out
}

var primitives = func() map[string]*DataType {
	m := make(map[string]*DataType)
	for _, k := range Kinds() {
		if k.IsPrimitive() {
			m[k.String()] = &DataType{Kind: k, Name: k.String()}
		}
	}
	return m
}()

// Primitive returns the canonical primitive type for a kind
func Primitive(kind Kind) *DataType {
	return primitives[kind.String()]
}
