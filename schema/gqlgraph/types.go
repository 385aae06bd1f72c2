package gqlgraph

import (
	"github.com/graphql-go/graphql/language/ast"

	"github.com/reveald/federation-querygraph/schema"
)

// typenameField is the synthetic __typename field every composite type
// carries.
var typenameFieldType = schema.TypeRef{Kind: schema.WrapNonNull, OfType: &schema.TypeRef{Kind: schema.WrapNamed, Name: "String"}}

type objectTypeAdapter struct {
	doc *Document
	def *ast.ObjectDefinition
}

func (t *objectTypeAdapter) TypeName() string { return t.def.Name.Value }
func (t *objectTypeAdapter) IsObject() bool   { return true }
func (t *objectTypeAdapter) IsInterface() bool { return false }
func (t *objectTypeAdapter) IsUnion() bool     { return false }
func (t *objectTypeAdapter) IsScalar() bool    { return false }
func (t *objectTypeAdapter) IsEnum() bool      { return false }
func (t *objectTypeAdapter) IsInput() bool     { return false }
func (t *objectTypeAdapter) IsComposite() bool { return true }

func (t *objectTypeAdapter) HasAppliedDirective(name string) bool {
	return hasDirective(t.def.Directives, name)
}
func (t *objectTypeAdapter) AppliedDirectives(name string) []schema.AppliedDirective {
	return appliedDirectivesNamed(t.def.Directives, name)
}

func (t *objectTypeAdapter) AllFields() []schema.Field {
	return fieldsOf(t.doc, t.def.Name.Value, t.def.Fields)
}

func (t *objectTypeAdapter) FieldByName(name string) (schema.Field, bool) {
	return fieldByName(t.AllFields(), name)
}

type interfaceTypeAdapter struct {
	doc *Document
	def *ast.InterfaceDefinition
}

func (t *interfaceTypeAdapter) TypeName() string  { return t.def.Name.Value }
func (t *interfaceTypeAdapter) IsObject() bool    { return false }
func (t *interfaceTypeAdapter) IsInterface() bool { return true }
func (t *interfaceTypeAdapter) IsUnion() bool      { return false }
func (t *interfaceTypeAdapter) IsScalar() bool     { return false }
func (t *interfaceTypeAdapter) IsEnum() bool       { return false }
func (t *interfaceTypeAdapter) IsInput() bool      { return false }
func (t *interfaceTypeAdapter) IsComposite() bool  { return true }

func (t *interfaceTypeAdapter) HasAppliedDirective(name string) bool {
	return hasDirective(t.def.Directives, name)
}
func (t *interfaceTypeAdapter) AppliedDirectives(name string) []schema.AppliedDirective {
	return appliedDirectivesNamed(t.def.Directives, name)
}

func (t *interfaceTypeAdapter) AllFields() []schema.Field {
	return fieldsOf(t.doc, t.def.Name.Value, t.def.Fields)
}

func (t *interfaceTypeAdapter) FieldByName(name string) (schema.Field, bool) {
	return fieldByName(t.AllFields(), name)
}

func (t *interfaceTypeAdapter) PossibleRuntimeTypes() []schema.ObjectType {
	var out []schema.ObjectType
	for _, name := range t.doc.implementers[t.def.Name.Value] {
		if obj, ok := t.doc.resolve(name).(schema.ObjectType); ok {
			out = append(out, obj)
		}
	}
	return out
}

type unionTypeAdapter struct {
	doc *Document
	def *ast.UnionDefinition
}

func (t *unionTypeAdapter) TypeName() string  { return t.def.Name.Value }
func (t *unionTypeAdapter) IsObject() bool    { return false }
func (t *unionTypeAdapter) IsInterface() bool { return false }
func (t *unionTypeAdapter) IsUnion() bool     { return true }
func (t *unionTypeAdapter) IsScalar() bool    { return false }
func (t *unionTypeAdapter) IsEnum() bool      { return false }
func (t *unionTypeAdapter) IsInput() bool     { return false }
func (t *unionTypeAdapter) IsComposite() bool { return true }

func (t *unionTypeAdapter) HasAppliedDirective(name string) bool {
	return hasDirective(t.def.Directives, name)
}
func (t *unionTypeAdapter) AppliedDirectives(name string) []schema.AppliedDirective {
	return appliedDirectivesNamed(t.def.Directives, name)
}

func (t *unionTypeAdapter) Types() []schema.ObjectType {
	var out []schema.ObjectType
	for _, named := range t.def.Types {
		if obj, ok := t.doc.resolve(named.Name.Value).(schema.ObjectType); ok {
			out = append(out, obj)
		}
	}
	return out
}

type scalarTypeAdapter struct {
	name string
	def  *ast.ScalarDefinition
}

func (t *scalarTypeAdapter) TypeName() string  { return t.name }
func (t *scalarTypeAdapter) IsObject() bool    { return false }
func (t *scalarTypeAdapter) IsInterface() bool { return false }
func (t *scalarTypeAdapter) IsUnion() bool     { return false }
func (t *scalarTypeAdapter) IsScalar() bool    { return true }
func (t *scalarTypeAdapter) IsEnum() bool      { return false }
func (t *scalarTypeAdapter) IsInput() bool     { return false }
func (t *scalarTypeAdapter) IsComposite() bool { return false }

func (t *scalarTypeAdapter) HasAppliedDirective(name string) bool {
	if t.def == nil {
		return false
	}
	return hasDirective(t.def.Directives, name)
}
func (t *scalarTypeAdapter) AppliedDirectives(name string) []schema.AppliedDirective {
	if t.def == nil {
		return nil
	}
	return appliedDirectivesNamed(t.def.Directives, name)
}

type enumTypeAdapter struct {
	def *ast.EnumDefinition
}

func (t *enumTypeAdapter) TypeName() string  { return t.def.Name.Value }
func (t *enumTypeAdapter) IsObject() bool    { return false }
func (t *enumTypeAdapter) IsInterface() bool { return false }
func (t *enumTypeAdapter) IsUnion() bool     { return false }
func (t *enumTypeAdapter) IsScalar() bool    { return false }
func (t *enumTypeAdapter) IsEnum() bool      { return true }
func (t *enumTypeAdapter) IsInput() bool     { return false }
func (t *enumTypeAdapter) IsComposite() bool { return false }

func (t *enumTypeAdapter) HasAppliedDirective(name string) bool {
	return hasDirective(t.def.Directives, name)
}
func (t *enumTypeAdapter) AppliedDirectives(name string) []schema.AppliedDirective {
	return appliedDirectivesNamed(t.def.Directives, name)
}

// Values returns the declared enum member names, in declaration order.
func (t *enumTypeAdapter) Values() []string {
	out := make([]string, len(t.def.Values))
	for i, v := range t.def.Values {
		out[i] = v.Name.Value
	}
	return out
}

type inputTypeAdapter struct {
	def *ast.InputObjectDefinition
}

func (t *inputTypeAdapter) TypeName() string  { return t.def.Name.Value }
func (t *inputTypeAdapter) IsObject() bool    { return false }
func (t *inputTypeAdapter) IsInterface() bool { return false }
func (t *inputTypeAdapter) IsUnion() bool     { return false }
func (t *inputTypeAdapter) IsScalar() bool    { return false }
func (t *inputTypeAdapter) IsEnum() bool      { return false }
func (t *inputTypeAdapter) IsInput() bool     { return true }
func (t *inputTypeAdapter) IsComposite() bool { return false }

func (t *inputTypeAdapter) HasAppliedDirective(name string) bool {
	return hasDirective(t.def.Directives, name)
}
func (t *inputTypeAdapter) AppliedDirectives(name string) []schema.AppliedDirective {
	return appliedDirectivesNamed(t.def.Directives, name)
}

func fieldByName(fields []schema.Field, name string) (schema.Field, bool) {
	for _, f := range fields {
		if f.Name() == name {
			return f, true
		}
	}
	return nil, false
}

func astTypeToTypeRef(t ast.Type) schema.TypeRef {
	switch t := t.(type) {
	case *ast.NonNull:
		inner := astTypeToTypeRef(t.Type)
		return schema.TypeRef{Kind: schema.WrapNonNull, OfType: &inner}
	case *ast.List:
		inner := astTypeToTypeRef(t.Type)
		return schema.TypeRef{Kind: schema.WrapList, OfType: &inner}
	case *ast.Named:
		return schema.TypeRef{Kind: schema.WrapNamed, Name: t.Name.Value}
	default:
		return schema.TypeRef{Kind: schema.WrapNamed, Name: ""}
	}
}
