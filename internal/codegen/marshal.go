package codegen

import (
	"github.com/okra-platform/rpcgen/internal/schema"
)

// MarshalAccess is the access strategy for argument and result structs.
// Client and processor glue address their fields directly by this convention.
const MarshalAccess = AccessUnderscore

// ResultField is the name of the single field of a result struct
const ResultField = "result"

// ArgsStruct synthesizes the struct carrying a method's input fields. name is
// the host-language type name chosen by the backend.
func ArgsStruct(m *schema.Method, name string) *schema.DataType {
	fields := make([]*schema.Field, len(m.Args))
	copy(fields, m.Args)
	return &schema.DataType{
		Kind:   schema.KindStruct,
		Name:   name,
		Fields: fields,
	}
}

// ResultStruct synthesizes the struct carrying a method's return value. It has
// no fields when the method returns nothing.
func ResultStruct(m *schema.Method, name string) *schema.DataType {
	dt := &schema.DataType{
		Kind: schema.KindStruct,
		Name: name,
	}
	if m.Result != nil {
		dt.Fields = []*schema.Field{{
			ID:       0,
			Name:     ResultField,
			Type:     m.Result,
			Required: true,
		}}
	}
	return dt
}
