package gqlgraph

import (
	"github.com/graphql-go/graphql/language/ast"

	"github.com/reveald/federation-querygraph/schema"
)

type fieldAdapter struct {
	doc        *Document
	parentType string
	def        *ast.FieldDefinition
}

func (f *fieldAdapter) Name() string           { return f.def.Name.Value }
func (f *fieldAdapter) ParentTypeName() string { return f.parentType }
func (f *fieldAdapter) Type() schema.TypeRef    { return astTypeToTypeRef(f.def.Type) }

func (f *fieldAdapter) BaseType() schema.NamedType {
	return f.doc.resolve(f.Type().BaseName())
}

func (f *fieldAdapter) HasAppliedDirective(name string) bool {
	return hasDirective(f.def.Directives, name)
}

func (f *fieldAdapter) AppliedDirectives(name string) []schema.AppliedDirective {
	return appliedDirectivesNamed(f.def.Directives, name)
}

func (f *fieldAdapter) IsExternal() bool {
	return f.HasAppliedDirective(schema.ExternalDirectiveName)
}

// typenameField is a synthetic, directive-free field representing the
// built-in __typename meta-field every composite type exposes.
type typenameField struct {
	parentType string
}

func (f *typenameField) Name() string                                      { return "__typename" }
func (f *typenameField) ParentTypeName() string                            { return f.parentType }
func (f *typenameField) Type() schema.TypeRef                               { return typenameFieldType }
func (f *typenameField) BaseType() schema.NamedType                         { return &scalarTypeAdapter{name: "String"} }
func (f *typenameField) HasAppliedDirective(name string) bool               { return false }
func (f *typenameField) AppliedDirectives(name string) []schema.AppliedDirective { return nil }
func (f *typenameField) IsExternal() bool                                  { return false }

func fieldsOf(doc *Document, parentType string, defs []*ast.FieldDefinition) []schema.Field {
	out := make([]schema.Field, 0, len(defs)+1)
	for _, def := range defs {
		out = append(out, &fieldAdapter{doc: doc, parentType: parentType, def: def})
	}
	out = append(out, &typenameField{parentType: parentType})
	return out
}
