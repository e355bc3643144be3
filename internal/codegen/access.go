package codegen

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// FieldAccess selects how generated code names and addresses struct fields
type FieldAccess int

const (
	// AccessUnderscore stores a field in _x with accessors get_x/set_x
	AccessUnderscore FieldAccess = iota
	// AccessCapital stores a field in _x with accessors getX/setX
	AccessCapital
	// AccessDirect stores a field in x and generates no accessors
	AccessDirect
)

var accessNames = map[FieldAccess]string{
	AccessUnderscore: "underscore",
	AccessCapital:    "capital",
	AccessDirect:     "direct",
}

func (a FieldAccess) String() string {
	if name, ok := accessNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseFieldAccess converts a configuration value into a FieldAccess
func ParseFieldAccess(s string) (FieldAccess, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "underscore":
		return AccessUnderscore, nil
	case "capital":
		return AccessCapital, nil
	case "direct":
		return AccessDirect, nil
	default:
		return 0, Invariantf("unknown field access strategy %q", s)
	}
}

// Valid reports whether a is one of the declared strategies
func (a FieldAccess) Valid() bool {
	_, ok := accessNames[a]
	return ok
}

// HasAccessors reports whether getters and setters are generated
func (a FieldAccess) HasAccessors() bool {
	return a != AccessDirect
}

// Storage returns the name of the slot holding the field
func (a FieldAccess) Storage(name string) string {
	if a == AccessDirect {
		return name
	}
	return "_" + name
}

// Getter returns the getter name, or "" when the strategy has none
func (a FieldAccess) Getter(name string) string {
	return a.accessor("get", name)
}

// Setter returns the setter name, or "" when the strategy has none
func (a FieldAccess) Setter(name string) string {
	return a.accessor("set", name)
}

func (a FieldAccess) accessor(prefix, name string) string {
	switch a {
	case AccessUnderscore:
		return prefix + "_" + name
	case AccessCapital:
		return prefix + Capitalize(name)
	default:
		return ""
	}
}

// Capitalize upper-cases the first rune of s
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// FieldAccessor renders field access expressions for one strategy. Backends
// supply the receiver spelling ("this", "s") and how accessor names are
// exported in the host language.
type FieldAccessor struct {
	Access   FieldAccess
	Receiver string

	// Export maps a strategy accessor name, or a DIRECT slot name, to the
	// host-language member name. Nil keeps the name unchanged.
	Export func(string) string
}

func (fa FieldAccessor) export(name string) string {
	if fa.Export == nil || name == "" {
		return name
	}
	return fa.Export(name)
}

// StorageName is the host-language name of the storage slot. DIRECT slots
// are the public surface and go through Export; accessor strategies keep
// the slot private.
func (fa FieldAccessor) StorageName(name string) string {
	if fa.Access.HasAccessors() {
		return fa.Access.Storage(name)
	}
	return fa.export(fa.Access.Storage(name))
}

// Var addresses the storage slot from inside the struct's own code
func (fa FieldAccessor) Var(name string) string {
	return fa.Receiver + "." + fa.StorageName(name)
}

// GetterName returns the exported getter name, or "" for DIRECT
func (fa FieldAccessor) GetterName(name string) string {
	return fa.export(fa.Access.Getter(name))
}

// SetterName returns the exported setter name, or "" for DIRECT
func (fa FieldAccessor) SetterName(name string) string {
	return fa.export(fa.Access.Setter(name))
}

// GetterInvoke reads the field from obj through the getter, or the slot for DIRECT
func (fa FieldAccessor) GetterInvoke(obj, name string) string {
	if !fa.Access.HasAccessors() {
		return obj + "." + fa.StorageName(name)
	}
	return obj + "." + fa.GetterName(name) + "()"
}

// SetterInvoke assigns value to the field of obj through the setter, or the slot for DIRECT
func (fa FieldAccessor) SetterInvoke(obj, name, value string) string {
	if !fa.Access.HasAccessors() {
		return obj + "." + fa.StorageName(name) + " = " + value
	}
	return obj + "." + fa.SetterName(name) + "(" + value + ")"
}

// AccessorCheck detects member-name collisions within one struct. Start
// resets it for each struct.
type AccessorCheck struct {
	structName string
	names      map[string]bool
}

// NewAccessorCheck creates an empty checker
func NewAccessorCheck() *AccessorCheck {
	return &AccessorCheck{names: make(map[string]bool)}
}

// Start begins checking a new struct; reserved names are taken up front
func (c *AccessorCheck) Start(structName string, reserved ...string) {
	c.structName = structName
	c.names = make(map[string]bool, len(reserved))
	for _, name := range reserved {
		c.names[name] = true
	}
}

// Add records a generated member name, failing on collision
func (c *AccessorCheck) Add(name string) error {
	if name == "" {
		return nil
	}
	if c.names[name] {
		return fmt.Errorf("%w: member %s of %s generated twice", ErrAccessorConflict, name, c.structName)
	}
	c.names[name] = true
	return nil
}
