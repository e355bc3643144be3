package rpcrt

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates where a generated-code failure occurred
type Phase string

const (
	PhaseDecode   Phase = "decode"   // wire to Go
	PhaseEncode   Phase = "encode"   // Go to wire
	PhaseDispatch Phase = "dispatch" // method and exception lookup
)

// Kind categorizes the error within its phase
type Kind string

const (
	KindTruncated        Kind = "truncated"
	KindInvalidHeader    Kind = "invalid_header"
	KindUnknownField     Kind = "unknown_field"
	KindFieldType        Kind = "field_type"
	KindDuplicateField   Kind = "duplicate_field"
	KindMissingField     Kind = "missing_field"
	KindEnumValue        Kind = "enum_value"
	KindListType         Kind = "list_type"
	KindUnknownMethod    Kind = "unknown_method"
	KindUnknownException Kind = "unknown_exception"
	KindResumeType       Kind = "resume_type"
)

// Error is the structured error raised by generated code and the runtime
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Type   string
	Field  string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Type != "" {
		b.WriteString(" in ")
		b.WriteString(e.Type)
		if e.Field != "" {
			b.WriteByte('.')
			b.WriteString(e.Field)
		}
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches on Phase and Kind. An empty Kind in target matches any kind
// of that phase.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != e.Phase {
		return false
	}
	return t.Kind == "" || t.Kind == e.Kind
}

var (
	// ErrMalformed matches every decode-time error
	ErrMalformed = &Error{Phase: PhaseDecode}
	// ErrEncode matches every encode-time validation error
	ErrEncode = &Error{Phase: PhaseEncode}
	// ErrUnknownMessage matches every dispatch-time error
	ErrUnknownMessage = &Error{Phase: PhaseDispatch}

	ErrDuplicateField = &Error{Phase: PhaseDecode, Kind: KindDuplicateField}
	ErrFieldType      = &Error{Phase: PhaseDecode, Kind: KindFieldType}
	ErrUnknownField   = &Error{Phase: PhaseDecode, Kind: KindUnknownField}
	ErrListType       = &Error{Phase: PhaseDecode, Kind: KindListType}
)

func validationPhase(isRead bool) Phase {
	if isRead {
		return PhaseDecode
	}
	return PhaseEncode
}

// UnknownFieldError reports a field id the struct does not declare
func UnknownFieldError(typeName string, fid int16, dt DataType) error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnknownField,
		Type:   typeName,
		Detail: fmt.Sprintf("unknown fid %d (%s)", fid, dt),
	}
}

// FieldTypeError reports a wire tag that differs from the declared field type
func FieldTypeError(typeName string, fid int16, dt DataType) error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindFieldType,
		Type:   typeName,
		Detail: fmt.Sprintf("fid %d has unexpected data type %s", fid, dt),
	}
}

// DuplicateFieldError reports a field id seen twice in one struct
func DuplicateFieldError(typeName string, fid int16) error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindDuplicateField,
		Type:   typeName,
		Detail: fmt.Sprintf("fid %d is duplicated", fid),
	}
}

// MissingFieldError reports an absent required field
func MissingFieldError(isRead bool, typeName, field string) error {
	return &Error{
		Phase:  validationPhase(isRead),
		Kind:   KindMissingField,
		Type:   typeName,
		Field:  field,
		Detail: "required field is absent",
	}
}

// EnumValueError reports a value outside the enum's declared set
func EnumValueError(isRead bool, enumName string, value int64) error {
	return &Error{
		Phase:  validationPhase(isRead),
		Kind:   KindEnumValue,
		Type:   enumName,
		Detail: fmt.Sprintf("unknown value %d", value),
	}
}

// ListTypeError reports a list header whose element tag differs from the declared one
func ListTypeError(listName string, dt DataType) error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindListType,
		Type:   listName,
		Detail: fmt.Sprintf("unexpected elem data type %s", dt),
	}
}

// UnknownMethodError reports a call to a method the processor does not serve
func UnknownMethodError(name string) error {
	return &Error{
		Phase:  PhaseDispatch,
		Kind:   KindUnknownMethod,
		Detail: "unknown method name " + name,
	}
}

// UnknownExceptionError reports an exception name the method does not declare
func UnknownExceptionError(name string) error {
	return &Error{
		Phase:  PhaseDispatch,
		Kind:   KindUnknownException,
		Detail: "unknown exception name " + name,
	}
}

// ResumeTypeError reports a resume function returning a value of the wrong type
func ResumeTypeError(want string, got any) error {
	return &Error{
		Phase:  PhaseDispatch,
		Kind:   KindResumeType,
		Detail: fmt.Sprintf("resume returned %T, want %s", got, want),
	}
}

// AsError extracts the structured error from err
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
