package querygraph_test

import (
	"strings"

	"github.com/reveald/federation-querygraph/schema"
)

// fakeType is a minimal, hand-rolled schema.NamedType covering the
// object/interface/union/scalar shapes these tests need, without
// depending on schema/gqlgraph's SDL parsing.
type fakeType struct {
	name       string
	kind       string // "object", "interface", "union", "scalar"
	fields     []schema.Field
	impls      []schema.ObjectType
	members    []schema.ObjectType
	directives map[string][]schema.AppliedDirective
}

func (t *fakeType) TypeName() string  { return t.name }
func (t *fakeType) IsObject() bool    { return t.kind == "object" }
func (t *fakeType) IsInterface() bool { return t.kind == "interface" }
func (t *fakeType) IsUnion() bool     { return t.kind == "union" }
func (t *fakeType) IsScalar() bool    { return t.kind == "scalar" }
func (t *fakeType) IsEnum() bool      { return t.kind == "enum" }
func (t *fakeType) IsInput() bool     { return t.kind == "input" }
func (t *fakeType) IsComposite() bool {
	return t.kind == "object" || t.kind == "interface" || t.kind == "union"
}

func (t *fakeType) HasAppliedDirective(name string) bool { return len(t.directives[name]) > 0 }
func (t *fakeType) AppliedDirectives(name string) []schema.AppliedDirective {
	return t.directives[name]
}

func (t *fakeType) AllFields() []schema.Field { return t.fields }
func (t *fakeType) FieldByName(name string) (schema.Field, bool) {
	for _, f := range t.fields {
		if f.Name() == name {
			return f, true
		}
	}
	return nil, false
}
func (t *fakeType) PossibleRuntimeTypes() []schema.ObjectType { return t.impls }
func (t *fakeType) Types() []schema.ObjectType                { return t.members }

func scalarType(name string) *fakeType { return &fakeType{name: name, kind: "scalar"} }

func objectType(name string, fields ...schema.Field) *fakeType {
	return &fakeType{name: name, kind: "object", fields: fields}
}

func interfaceType(name string, impls []schema.ObjectType, fields ...schema.Field) *fakeType {
	return &fakeType{name: name, kind: "interface", impls: impls, fields: fields}
}

func unionType(name string, members ...schema.ObjectType) *fakeType {
	return &fakeType{name: name, kind: "union", members: members}
}

// fakeField is a schema.Field with directly-supplied directives.
type fakeField struct {
	name       string
	parent     string
	base       schema.NamedType
	external   bool
	directives map[string][]schema.AppliedDirective
}

func field(name, parent string, base schema.NamedType) *fakeField {
	return &fakeField{name: name, parent: parent, base: base}
}

func (f *fakeField) Name() string           { return f.name }
func (f *fakeField) ParentTypeName() string { return f.parent }
func (f *fakeField) Type() schema.TypeRef {
	return schema.TypeRef{Kind: schema.WrapNamed, Name: f.base.TypeName()}
}
func (f *fakeField) BaseType() schema.NamedType           { return f.base }
func (f *fakeField) HasAppliedDirective(name string) bool { return len(f.directives[name]) > 0 }
func (f *fakeField) AppliedDirectives(name string) []schema.AppliedDirective {
	return f.directives[name]
}
func (f *fakeField) IsExternal() bool { return f.external }

func (f *fakeField) withDirective(name string, args map[string]any) *fakeField {
	if f.directives == nil {
		f.directives = make(map[string][]schema.AppliedDirective)
	}
	f.directives[name] = append(f.directives[name], &fakeDirective{name: name, args: args})
	return f
}

func (f *fakeField) withExternal() *fakeField {
	f.external = true
	return f
}

type fakeDirective struct {
	name string
	args map[string]any
}

func (d *fakeDirective) Name() string              { return d.name }
func (d *fakeDirective) Arguments() map[string]any { return d.args }
func (d *fakeDirective) StringArg(name string) string {
	v, _ := d.args[name].(string)
	return v
}
func (d *fakeDirective) BoolArg(name string, def bool) bool {
	if v, ok := d.args[name].(bool); ok {
		return v
	}
	return def
}

func withKey(t *fakeType, fields string) *fakeType {
	if t.directives == nil {
		t.directives = make(map[string][]schema.AppliedDirective)
	}
	t.directives[schema.KeyDirectiveName] = append(t.directives[schema.KeyDirectiveName],
		&fakeDirective{name: schema.KeyDirectiveName, args: map[string]any{"fields": fields}})
	return t
}

// fakeSchema is a minimal schema.Schema/schema.Parser usable both as a
// plain schema and, via ParseSelectionSet, as a subgraph in
// FederatedGraphBuilder tests.
type fakeSchema struct {
	roots    []schema.Root
	types    map[string]schema.NamedType
	subgraph bool
}

func newFakeSchema(subgraph bool, roots ...schema.Root) *fakeSchema {
	s := &fakeSchema{roots: roots, types: make(map[string]schema.NamedType), subgraph: subgraph}
	return s
}

func (s *fakeSchema) addType(t schema.NamedType) *fakeSchema {
	s.types[t.TypeName()] = t
	return s
}

func (s *fakeSchema) Roots() []schema.Root                { return s.roots }
func (s *fakeSchema) Type(name string) schema.NamedType   { return s.types[name] }
func (s *fakeSchema) IsFederationSubgraph() bool           { return s.subgraph }

// ParseSelectionSet implements schema.Parser with a flat, single-level
// field-name parser: sufficient for every @key/@requires/@provides
// field set these tests exercise.
func (s *fakeSchema) ParseSelectionSet(parentType schema.NamedType, fieldsString string) (schema.SelectionSet, error) {
	names := strings.Fields(fieldsString)
	sels := make([]schema.Selection, 0, len(names))
	for _, n := range names {
		sels = append(sels, &fakeFieldSelection{name: n})
	}
	return &fakeSelectionSet{parent: parentType.TypeName(), sels: sels}, nil
}

type fakeFieldSelection struct{ name string }

func (s *fakeFieldSelection) Kind() schema.SelectionKind               { return schema.FieldSelectionKind }
func (s *fakeFieldSelection) FieldName() string                        { return s.name }
func (s *fakeFieldSelection) SubSelection() (schema.SelectionSet, bool) { return nil, false }

type fakeSelectionSet struct {
	parent string
	sels   []schema.Selection
}

func (s *fakeSelectionSet) ParentTypeName() string      { return s.parent }
func (s *fakeSelectionSet) Selections() []schema.Selection { return s.sels }
func (s *fakeSelectionSet) IsEmpty() bool               { return len(s.sels) == 0 }

func (s *fakeSelectionSet) MergeIn(other schema.SelectionSet) schema.SelectionSet {
	seen := make(map[string]bool, len(s.sels))
	for _, sel := range s.sels {
		if fs, ok := sel.(schema.FieldSelection); ok {
			seen[fs.FieldName()] = true
		}
	}
	merged := append([]schema.Selection{}, s.sels...)
	for _, sel := range other.Selections() {
		if fs, ok := sel.(schema.FieldSelection); ok && seen[fs.FieldName()] {
			continue
		}
		merged = append(merged, sel)
	}
	return &fakeSelectionSet{parent: s.parent, sels: merged}
}

func (s *fakeSelectionSet) String() string {
	names := make([]string, 0, len(s.sels))
	for _, sel := range s.sels {
		if fs, ok := sel.(schema.FieldSelection); ok {
			names = append(names, fs.FieldName())
		}
	}
	return "{ " + strings.Join(names, " ") + " }"
}

// fakeExtractor implements schema.SubgraphExtractor by returning a
// fixed list, standing in for ExtractSubgraphsFromSupergraph.
type fakeExtractor struct {
	subgraphs []schema.Subgraph
}

func (e *fakeExtractor) ExtractSubgraphs(schema.Schema) ([]schema.Subgraph, error) {
	return e.subgraphs, nil
}
