package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wundergraph/graphql-go-tools/v2/pkg/ast"
	"github.com/wundergraph/graphql-go-tools/v2/pkg/astparser"
)

// VoidType is the result type name of methods that return nothing
const VoidType = "Void"

// scalarAliases maps GraphQL scalar names onto primitive type names
var scalarAliases = map[string]string{
	"Int":     "i32",
	"Int32":   "i32",
	"Int64":   "i64",
	"Boolean": "bool",
	"String":  "string",
	"ID":      "string",
	"Float":   "double",
	"Float32": "float",
	"Float64": "double",
	"Bytes":   "binary",
}

// ParseSchema parses an IDL document (after preprocessing) into a validated Schema
func ParseSchema(input string) (*Schema, error) {
	preprocessed := PreprocessGraphQL(input)

	doc, report := astparser.ParseGraphqlDocumentString(preprocessed)
	if report.HasErrors() {
		return nil, fmt.Errorf("%w: failed to parse GraphQL: %v", ErrInvalidSchema, report)
	}

	p := &parser{
		doc:   &doc,
		b:     NewBuilder(""),
		lists: make(map[string]bool),
	}

	for i := range doc.RootNodes {
		node := &doc.RootNodes[i]
		var err error
		switch node.Kind {
		case ast.NodeKindObjectTypeDefinition:
			err = p.parseObjectType(node.Ref)
		case ast.NodeKindEnumTypeDefinition:
			err = p.parseEnumType(node.Ref)
		}
		if err != nil {
			return nil, err
		}
	}

	return p.b.Build()
}

type parser struct {
	doc   *ast.Document
	b     *Builder
	lists map[string]bool
}

func (p *parser) parseObjectType(ref int) error {
	typeDef := p.doc.ObjectTypeDefinitions[ref]
	typeName := p.doc.Input.ByteSliceString(typeDef.Name)
	doc := getDescription(p.doc, typeDef.Description)

	switch {
	case typeName == metaTypeName:
		return p.parseMetadata(typeDef)
	case strings.HasPrefix(typeName, servicePrefix):
		return p.parseService(typeDef)
	case strings.HasPrefix(typeName, exceptionPrefix):
		fields, err := p.parseFields(typeDef.FieldsDefinition.Refs)
		if err != nil {
			return fmt.Errorf("exception %s: %w", strings.TrimPrefix(typeName, exceptionPrefix), err)
		}
		p.b.Exception(strings.TrimPrefix(typeName, exceptionPrefix), doc, fields...)
		return nil
	}

	fields, err := p.parseFields(typeDef.FieldsDefinition.Refs)
	if err != nil {
		return fmt.Errorf("type %s: %w", typeName, err)
	}
	p.b.Struct(typeName, doc, fields...)
	return nil
}

func (p *parser) parseEnumType(ref int) error {
	enumDef := p.doc.EnumTypeDefinitions[ref]
	name := p.doc.Input.ByteSliceString(enumDef.Name)

	var entries []EnumEntry
	next := int64(0)
	for _, valueRef := range enumDef.EnumValuesDefinition.Refs {
		valueDef := p.doc.EnumValueDefinitions[valueRef]
		value := next
		if args, ok := p.findDirective(valueDef.Directives, "value"); ok {
			v, err := strconv.ParseInt(args["v"], 10, 32)
			if err != nil {
				return fmt.Errorf("%w: enum %s has invalid @value: %v", ErrInvalidSchema, name, err)
			}
			value = v
		}
		entries = append(entries, EnumEntry{
			Name:  p.doc.Input.ByteSliceString(valueDef.EnumValue),
			Value: int32(value),
			Doc:   getDescription(p.doc, valueDef.Description),
		})
		next = value + 1
	}

	p.b.Enum(name, getDescription(p.doc, enumDef.Description), entries...)
	return nil
}

func (p *parser) parseMetadata(typeDef ast.ObjectTypeDefinition) error {
	for _, fieldRef := range typeDef.FieldsDefinition.Refs {
		fieldDef := p.doc.FieldDefinitions[fieldRef]
		if args, ok := p.findDirective(fieldDef.Directives, rpcDirectiveName); ok {
			p.b.Namespace(args["namespace"])
			return nil
		}
	}
	return nil
}

func (p *parser) parseService(typeDef ast.ObjectTypeDefinition) error {
	for _, fieldRef := range typeDef.FieldsDefinition.Refs {
		fieldDef := p.doc.FieldDefinitions[fieldRef]
		name := p.doc.Input.ByteSliceString(fieldDef.Name)

		args := make([]FieldSpec, 0, len(fieldDef.ArgumentsDefinition.Refs))
		for i, argRef := range fieldDef.ArgumentsDefinition.Refs {
			argDef := p.doc.InputValueDefinitions[argRef]
			spec, err := p.fieldSpec(i, p.doc.Input.ByteSliceString(argDef.Name), argDef.Type, argDef.Directives, argDef.Description)
			if err != nil {
				return fmt.Errorf("method %s: %w", name, err)
			}
			args = append(args, spec)
		}

		result, _, err := p.parseType(fieldDef.Type)
		if err != nil {
			return fmt.Errorf("method %s: %w", name, err)
		}
		if result == VoidType {
			result = ""
		}

		var throws []string
		if dargs, ok := p.findDirective(fieldDef.Directives, "throws"); ok {
			for _, exc := range strings.Split(dargs["exceptions"], ",") {
				if exc = strings.TrimSpace(exc); exc != "" {
					throws = append(throws, exc)
				}
			}
		}

		p.b.Method(name, getDescription(p.doc, fieldDef.Description), args, result, throws...)
	}
	return nil
}

func (p *parser) parseFields(refs []int) ([]FieldSpec, error) {
	fields := make([]FieldSpec, 0, len(refs))
	for i, fieldRef := range refs {
		fieldDef := p.doc.FieldDefinitions[fieldRef]
		spec, err := p.fieldSpec(i, p.doc.Input.ByteSliceString(fieldDef.Name), fieldDef.Type, fieldDef.Directives, fieldDef.Description)
		if err != nil {
			return nil, err
		}
		fields = append(fields, spec)
	}
	return fields, nil
}

// fieldSpec builds a field; the wire id defaults to its position plus one
func (p *parser) fieldSpec(pos int, name string, typeRef int, directives ast.DirectiveList, desc ast.Description) (FieldSpec, error) {
	typeName, required, err := p.parseType(typeRef)
	if err != nil {
		return FieldSpec{}, fmt.Errorf("field %s: %w", name, err)
	}

	spec := FieldSpec{
		ID:       int16(pos + 1),
		Name:     name,
		Type:     typeName,
		Required: required,
		Doc:      getDescription(p.doc, desc),
	}

	if args, ok := p.findDirective(directives, "id"); ok {
		id, err := strconv.ParseInt(args["fid"], 10, 16)
		if err != nil {
			return FieldSpec{}, fmt.Errorf("%w: field %s has invalid @id: %v", ErrInvalidSchema, name, err)
		}
		spec.ID = int16(id)
	}

	return spec, nil
}

// parseType returns the resolved type name and whether the outer type is non-null.
// List types are declared on the builder under a synthesized ListOf<Elem> name.
func (p *parser) parseType(typeRef int) (string, bool, error) {
	required := false
	currentRef := typeRef

	if p.doc.Types[currentRef].TypeKind == ast.TypeKindNonNull {
		required = true
		currentRef = p.doc.Types[currentRef].OfType
	}

	switch p.doc.Types[currentRef].TypeKind {
	case ast.TypeKindList:
		elem, _, err := p.parseType(p.doc.Types[currentRef].OfType)
		if err != nil {
			return "", false, err
		}
		return p.listType(elem), required, nil
	case ast.TypeKindNamed:
		typeName := p.doc.Input.ByteSliceString(p.doc.Types[currentRef].Name)
		if alias, ok := scalarAliases[typeName]; ok {
			typeName = alias
		}
		return typeName, required, nil
	}

	return "", false, fmt.Errorf("%w: unsupported type reference", ErrInvalidSchema)
}

func (p *parser) listType(elem string) string {
	name := "ListOf" + strings.ToUpper(elem[:1]) + elem[1:]
	if !p.lists[name] {
		p.lists[name] = true
		p.b.List(name, elem)
	}
	return name
}

func (p *parser) findDirective(directives ast.DirectiveList, name string) (map[string]string, bool) {
	for _, directiveRef := range directives.Refs {
		directive := p.doc.Directives[directiveRef]
		if p.doc.Input.ByteSliceString(directive.Name) == name {
			return parseDirectiveArgs(p.doc, directive), true
		}
	}
	return nil, false
}

func parseDirectiveArgs(doc *ast.Document, directive ast.Directive) map[string]string {
	args := make(map[string]string)

	for _, argRef := range directive.Arguments.Refs {
		arg := doc.Arguments[argRef]
		argName := doc.Input.ByteSliceString(arg.Name)
		args[argName] = parseValue(doc, doc.ArgumentValue(argRef))
	}

	return args
}

func parseValue(doc *ast.Document, value ast.Value) string {
	switch value.Kind {
	case ast.ValueKindString:
		return doc.StringValueContentString(value.Ref)

	case ast.ValueKindEnum:
		if value.Ref >= 0 && value.Ref < len(doc.EnumValues) {
			return doc.Input.ByteSliceString(doc.EnumValues[value.Ref].Name)
		}

	case ast.ValueKindBoolean:
		if value.Ref >= 0 && value.Ref < len(doc.BooleanValues) {
			return strconv.FormatBool(bool(doc.BooleanValues[value.Ref]))
		}

	case ast.ValueKindInteger:
		return fmt.Sprintf("%d", doc.IntValueAsInt(value.Ref))

	case ast.ValueKindFloat:
		return fmt.Sprintf("%f", doc.FloatValueAsFloat32(value.Ref))

	case ast.ValueKindList:
		// Lists flatten to a comma-separated string
		if value.Ref < 0 || value.Ref >= len(doc.ListValues) {
			return ""
		}
		items := make([]string, 0, len(doc.ListValues[value.Ref].Refs))
		for _, ref := range doc.ListValues[value.Ref].Refs {
			items = append(items, parseValue(doc, doc.Values[ref]))
		}
		return strings.Join(items, ",")
	}

	return ""
}

func getDescription(doc *ast.Document, desc ast.Description) string {
	if !desc.IsDefined {
		return ""
	}

	content := strings.TrimSpace(doc.Input.ByteSliceString(desc.Content))
	return strings.TrimSpace(strings.Trim(content, `"`))
}
