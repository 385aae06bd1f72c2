package gqlgraph

import (
	"github.com/graphql-go/graphql/language/ast"

	"github.com/reveald/federation-querygraph/schema"
)

// subgraphView is a schema.Schema that presents one subgraph's slice of
// a composed supergraph Document: only the types and fields owned by
// graphKey, with @join__type/@join__field metadata translated back
// into the @key/@requires/@provides/@external directives
// FederatedGraphBuilder expects to find.
type subgraphView struct {
	supergraph *Document
	graphKey   string
}

func (v *subgraphView) Roots() []schema.Root {
	var out []schema.Root
	for _, r := range v.supergraph.Roots() {
		if t := v.Type(r.Type.TypeName()); t != nil {
			if obj, ok := t.(schema.ObjectType); ok {
				out = append(out, schema.Root{Kind: r.Kind, Type: obj})
			}
		}
	}
	return out
}

func (v *subgraphView) Type(name string) schema.NamedType {
	def, ok := v.supergraph.defs[name]
	if !ok {
		// Builtin scalars and anything else the supergraph doesn't
		// define itself (shouldn't happen) pass through unchanged.
		return v.supergraph.resolve(name)
	}
	if !v.owns(extractDirectives(def)) {
		return nil
	}
	switch def := def.(type) {
	case *ast.ObjectDefinition:
		return &subgraphObject{view: v, def: def}
	case *ast.InterfaceDefinition:
		return &subgraphInterface{view: v, def: def}
	case *ast.UnionDefinition:
		return &subgraphUnion{view: v, def: def}
	default:
		// Scalars, enums and input types carry no field-level
		// ownership in the join convention; hand back the
		// supergraph's own (unfiltered) wrapper.
		return v.supergraph.resolve(name)
	}
}

func (v *subgraphView) IsFederationSubgraph() bool { return true }

// ParseSelectionSet implements schema.Parser. Field sets named by
// @key/@requires/@provides may reference fields owned by other
// subgraphs (that is the point of @requires and @provides), so
// resolution runs against the unfiltered supergraph document rather
// than this view.
func (v *subgraphView) ParseSelectionSet(parentType schema.NamedType, fieldsString string) (schema.SelectionSet, error) {
	return parseSelectionSet(v.supergraph, parentType.TypeName(), fieldsString)
}

// owns reports whether graphKey is one of this definition's
// @join__type graphs. A definition with no @join__type directives at
// all is treated as shared by every subgraph (covers scalars, enums
// and plain input types composed without join metadata).
func (v *subgraphView) owns(directives []*ast.Directive) bool {
	var joins []*ast.Directive
	for _, d := range directives {
		if d.Name.Value == joinTypeDirectiveName {
			joins = append(joins, d)
		}
	}
	if len(joins) == 0 {
		return true
	}
	for _, j := range joins {
		if stringArgValue(j, "graph") == v.graphKey {
			return true
		}
	}
	return false
}

func extractDirectives(node ast.Node) []*ast.Directive {
	switch def := node.(type) {
	case *ast.ObjectDefinition:
		return def.Directives
	case *ast.InterfaceDefinition:
		return def.Directives
	case *ast.UnionDefinition:
		return def.Directives
	case *ast.ScalarDefinition:
		return def.Directives
	case *ast.EnumDefinition:
		return def.Directives
	case *ast.InputObjectDefinition:
		return def.Directives
	default:
		return nil
	}
}

func argValue(dir *ast.Directive, name string) any {
	for _, a := range dir.Arguments {
		if a.Name.Value == name {
			return convertValue(a.Value)
		}
	}
	return nil
}

func stringArgValue(dir *ast.Directive, name string) string {
	v, _ := argValue(dir, name).(string)
	return v
}

func boolArgValue(dir *ast.Directive, name string, def bool) bool {
	if v, ok := argValue(dir, name).(bool); ok {
		return v
	}
	return def
}

// syntheticDirective is a schema.AppliedDirective materialized from a
// @join__type/@join__field argument rather than parsed directly off a
// definition.
type syntheticDirective struct {
	name string
	args map[string]any
}

func (d *syntheticDirective) Name() string              { return d.name }
func (d *syntheticDirective) Arguments() map[string]any { return d.args }

func (d *syntheticDirective) StringArg(name string) string {
	v, _ := d.args[name].(string)
	return v
}

func (d *syntheticDirective) BoolArg(name string, def bool) bool {
	if v, ok := d.args[name].(bool); ok {
		return v
	}
	return def
}

type subgraphObject struct {
	view *subgraphView
	def  *ast.ObjectDefinition
}

func (t *subgraphObject) TypeName() string  { return t.def.Name.Value }
func (t *subgraphObject) IsObject() bool    { return true }
func (t *subgraphObject) IsInterface() bool { return false }
func (t *subgraphObject) IsUnion() bool     { return false }
func (t *subgraphObject) IsScalar() bool    { return false }
func (t *subgraphObject) IsEnum() bool      { return false }
func (t *subgraphObject) IsInput() bool     { return false }
func (t *subgraphObject) IsComposite() bool { return true }

func (t *subgraphObject) HasAppliedDirective(name string) bool {
	return len(t.AppliedDirectives(name)) > 0
}

func (t *subgraphObject) AppliedDirectives(name string) []schema.AppliedDirective {
	return typeDirectives(t.view, t.def.Name.Value, t.def.Directives, name)
}

func (t *subgraphObject) AllFields() []schema.Field {
	return subgraphFieldsOf(t.view, t.def.Name.Value, t.def.Fields)
}

func (t *subgraphObject) FieldByName(name string) (schema.Field, bool) {
	return fieldByName(t.AllFields(), name)
}

type subgraphInterface struct {
	view *subgraphView
	def  *ast.InterfaceDefinition
}

func (t *subgraphInterface) TypeName() string  { return t.def.Name.Value }
func (t *subgraphInterface) IsObject() bool    { return false }
func (t *subgraphInterface) IsInterface() bool { return true }
func (t *subgraphInterface) IsUnion() bool     { return false }
func (t *subgraphInterface) IsScalar() bool    { return false }
func (t *subgraphInterface) IsEnum() bool      { return false }
func (t *subgraphInterface) IsInput() bool     { return false }
func (t *subgraphInterface) IsComposite() bool { return true }

func (t *subgraphInterface) HasAppliedDirective(name string) bool {
	return len(t.AppliedDirectives(name)) > 0
}

func (t *subgraphInterface) AppliedDirectives(name string) []schema.AppliedDirective {
	return typeDirectives(t.view, t.def.Name.Value, t.def.Directives, name)
}

func (t *subgraphInterface) AllFields() []schema.Field {
	return subgraphFieldsOf(t.view, t.def.Name.Value, t.def.Fields)
}

func (t *subgraphInterface) FieldByName(name string) (schema.Field, bool) {
	return fieldByName(t.AllFields(), name)
}

func (t *subgraphInterface) PossibleRuntimeTypes() []schema.ObjectType {
	var out []schema.ObjectType
	for _, name := range t.view.supergraph.implementers[t.def.Name.Value] {
		if obj, ok := t.view.Type(name).(schema.ObjectType); ok {
			out = append(out, obj)
		}
	}
	return out
}

type subgraphUnion struct {
	view *subgraphView
	def  *ast.UnionDefinition
}

func (t *subgraphUnion) TypeName() string  { return t.def.Name.Value }
func (t *subgraphUnion) IsObject() bool    { return false }
func (t *subgraphUnion) IsInterface() bool { return false }
func (t *subgraphUnion) IsUnion() bool     { return true }
func (t *subgraphUnion) IsScalar() bool    { return false }
func (t *subgraphUnion) IsEnum() bool      { return false }
func (t *subgraphUnion) IsInput() bool     { return false }
func (t *subgraphUnion) IsComposite() bool { return true }

func (t *subgraphUnion) HasAppliedDirective(name string) bool {
	return len(t.AppliedDirectives(name)) > 0
}

func (t *subgraphUnion) AppliedDirectives(name string) []schema.AppliedDirective {
	return typeDirectives(t.view, t.def.Name.Value, t.def.Directives, name)
}

func (t *subgraphUnion) Types() []schema.ObjectType {
	var out []schema.ObjectType
	for _, named := range t.def.Types {
		if obj, ok := t.view.Type(named.Name.Value).(schema.ObjectType); ok {
			out = append(out, obj)
		}
	}
	return out
}

// typeDirectives answers AppliedDirectives(name) for a composite type,
// special-casing @key: a directly-written @key is returned verbatim,
// otherwise one is synthesized from this graph's @join__type(key: "...")
// argument, if any.
func typeDirectives(view *subgraphView, typeName string, directives []*ast.Directive, name string) []schema.AppliedDirective {
	if name != schema.KeyDirectiveName {
		return appliedDirectivesNamed(directives, name)
	}
	if direct := appliedDirectivesNamed(directives, schema.KeyDirectiveName); len(direct) > 0 {
		return direct
	}
	var out []schema.AppliedDirective
	for _, dir := range directives {
		if dir.Name.Value != joinTypeDirectiveName {
			continue
		}
		if stringArgValue(dir, "graph") != view.graphKey {
			continue
		}
		fields := stringArgValue(dir, "key")
		if fields == "" {
			continue
		}
		out = append(out, &syntheticDirective{
			name: schema.KeyDirectiveName,
			args: map[string]any{
				"fields":     fields,
				"resolvable": boolArgValue(dir, "resolvable", true),
			},
		})
	}
	return out
}

func subgraphFieldsOf(view *subgraphView, parentType string, defs []*ast.FieldDefinition) []schema.Field {
	out := make([]schema.Field, 0, len(defs)+1)
	for _, def := range defs {
		if !ownsField(view, def) {
			continue
		}
		out = append(out, &subgraphField{view: view, parentType: parentType, def: def})
	}
	out = append(out, &typenameField{parentType: parentType})
	return out
}

// ownsField reports whether parentType's field def belongs to this
// subgraph: true when the field carries no @join__field at all (it is
// then common to every subgraph owning the parent type), or when one
// of its @join__field applications names this graph.
func ownsField(view *subgraphView, def *ast.FieldDefinition) bool {
	var joins []*ast.Directive
	for _, d := range def.Directives {
		if d.Name.Value == joinFieldDirectiveName {
			joins = append(joins, d)
		}
	}
	if len(joins) == 0 {
		return true
	}
	for _, j := range joins {
		if stringArgValue(j, "graph") == view.graphKey {
			return true
		}
	}
	return false
}

func matchingJoinField(view *subgraphView, def *ast.FieldDefinition) *ast.Directive {
	for _, d := range def.Directives {
		if d.Name.Value == joinFieldDirectiveName && stringArgValue(d, "graph") == view.graphKey {
			return d
		}
	}
	return nil
}

type subgraphField struct {
	view       *subgraphView
	parentType string
	def        *ast.FieldDefinition
}

func (f *subgraphField) Name() string           { return f.def.Name.Value }
func (f *subgraphField) ParentTypeName() string { return f.parentType }
func (f *subgraphField) Type() schema.TypeRef   { return astTypeToTypeRef(f.def.Type) }

func (f *subgraphField) BaseType() schema.NamedType {
	name := f.Type().BaseName()
	if t := f.view.Type(name); t != nil {
		return t
	}
	return f.view.supergraph.resolve(name)
}

func (f *subgraphField) HasAppliedDirective(name string) bool {
	return len(f.AppliedDirectives(name)) > 0
}

func (f *subgraphField) AppliedDirectives(name string) []schema.AppliedDirective {
	switch name {
	case schema.RequiresDirectiveName:
		return f.fieldSetDirective(schema.RequiresDirectiveName, "requires")
	case schema.ProvidesDirectiveName:
		return f.fieldSetDirective(schema.ProvidesDirectiveName, "provides")
	case schema.ExternalDirectiveName:
		if direct := appliedDirectivesNamed(f.def.Directives, schema.ExternalDirectiveName); len(direct) > 0 {
			return direct
		}
		if jf := matchingJoinField(f.view, f.def); jf != nil && boolArgValue(jf, "external", false) {
			return []schema.AppliedDirective{&syntheticDirective{name: schema.ExternalDirectiveName, args: map[string]any{}}}
		}
		return nil
	default:
		return appliedDirectivesNamed(f.def.Directives, name)
	}
}

func (f *subgraphField) fieldSetDirective(directiveName, joinArg string) []schema.AppliedDirective {
	if direct := appliedDirectivesNamed(f.def.Directives, directiveName); len(direct) > 0 {
		return direct
	}
	jf := matchingJoinField(f.view, f.def)
	if jf == nil {
		return nil
	}
	fields := stringArgValue(jf, joinArg)
	if fields == "" {
		return nil
	}
	return []schema.AppliedDirective{&syntheticDirective{name: directiveName, args: map[string]any{"fields": fields}}}
}

func (f *subgraphField) IsExternal() bool {
	return f.HasAppliedDirective(schema.ExternalDirectiveName)
}
