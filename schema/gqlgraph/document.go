package gqlgraph

import (
	"fmt"
	"strings"

	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"

	"github.com/reveald/federation-querygraph/schema"
)

var builtinScalarNames = map[string]bool{
	"String": true, "Int": true, "Float": true, "Boolean": true, "ID": true,
}

// Document is a schema.Schema backed by one or more parsed GraphQL SDL
// documents. Type definitions are merged by name across documents; a
// name defined twice across the inputs is an error.
type Document struct {
	defs             map[string]ast.Node
	implementers     map[string][]string // interface name -> object type names, declaration order
	schemaDirectives []*ast.Directive
	roots            []schema.Root

	types map[string]schema.NamedType // resolution cache
}

// ParseSDL parses sources (each a complete or partial SDL document) into
// a single merged schema.
func ParseSDL(sources ...string) (*Document, error) {
	d := &Document{
		defs:         make(map[string]ast.Node),
		implementers: make(map[string][]string),
		types:        make(map[string]schema.NamedType),
	}

	rootTypeNames := map[schema.RootKind]string{
		schema.Query:        "Query",
		schema.Mutation:     "Mutation",
		schema.Subscription: "Subscription",
	}

	for _, src := range sources {
		doc, err := parser.Parse(parser.ParseParams{
			Source:  src,
			Options: parser.ParseOptions{NoSource: true},
		})
		if err != nil {
			return nil, fmt.Errorf("gqlgraph: parse schema document: %w", err)
		}

		for _, definition := range doc.Definitions {
			switch def := definition.(type) {
			case *ast.SchemaDefinition:
				d.schemaDirectives = append(d.schemaDirectives, def.Directives...)
				for _, ot := range def.OperationTypes {
					rootTypeNames[schema.RootKind(ot.Operation)] = ot.Type.Name.Value
				}
			case *ast.ObjectDefinition:
				if err := d.addDef(def.Name.Value, def); err != nil {
					return nil, err
				}
				for _, iface := range def.Interfaces {
					d.implementers[iface.Name.Value] = append(d.implementers[iface.Name.Value], def.Name.Value)
				}
			case *ast.InterfaceDefinition:
				if err := d.addDef(def.Name.Value, def); err != nil {
					return nil, err
				}
			case *ast.UnionDefinition:
				if err := d.addDef(def.Name.Value, def); err != nil {
					return nil, err
				}
			case *ast.ScalarDefinition:
				if err := d.addDef(def.Name.Value, def); err != nil {
					return nil, err
				}
			case *ast.EnumDefinition:
				if err := d.addDef(def.Name.Value, def); err != nil {
					return nil, err
				}
			case *ast.InputObjectDefinition:
				if err := d.addDef(def.Name.Value, def); err != nil {
					return nil, err
				}
			}
		}
	}

	for _, kind := range []schema.RootKind{schema.Query, schema.Mutation, schema.Subscription} {
		typeName, declared := rootTypeNames[kind]
		if !declared {
			continue
		}
		if _, ok := d.defs[typeName]; !ok {
			continue
		}
		t := d.resolve(typeName)
		obj, ok := t.(schema.ObjectType)
		if !ok {
			return nil, fmt.Errorf("gqlgraph: root type %q for %s is not an object type", typeName, kind)
		}
		d.roots = append(d.roots, schema.Root{Kind: kind, Type: obj})
	}

	return d, nil
}

func (d *Document) addDef(name string, node ast.Node) error {
	if _, exists := d.defs[name]; exists {
		return fmt.Errorf("gqlgraph: type %q defined more than once", name)
	}
	d.defs[name] = node
	return nil
}

// Roots implements schema.Schema.
func (d *Document) Roots() []schema.Root { return d.roots }

// Type implements schema.Schema.
func (d *Document) Type(name string) schema.NamedType { return d.resolve(name) }

// IsFederationSubgraph implements schema.Schema by checking for a
// `@link` to a federation specification URL.
func (d *Document) IsFederationSubgraph() bool {
	for _, dir := range d.schemaDirectives {
		if dir.Name.Value != "link" {
			continue
		}
		for _, arg := range dir.Arguments {
			if arg.Name.Value != "url" {
				continue
			}
			if sv, ok := arg.Value.(*ast.StringValue); ok {
				if strings.Contains(sv.Value, "specs.apollo.dev/federation") {
					return true
				}
			}
		}
	}
	return false
}

// resolve returns the cached NamedType wrapper for name, creating one
// on first access. Unknown non-builtin names resolve to nil.
func (d *Document) resolve(name string) schema.NamedType {
	if t, ok := d.types[name]; ok {
		return t
	}

	def, ok := d.defs[name]
	if !ok {
		if builtinScalarNames[name] {
			t := &scalarTypeAdapter{name: name}
			d.types[name] = t
			return t
		}
		return nil
	}

	var t schema.NamedType
	switch def := def.(type) {
	case *ast.ObjectDefinition:
		t = &objectTypeAdapter{doc: d, def: def}
	case *ast.InterfaceDefinition:
		t = &interfaceTypeAdapter{doc: d, def: def}
	case *ast.UnionDefinition:
		t = &unionTypeAdapter{doc: d, def: def}
	case *ast.ScalarDefinition:
		t = &scalarTypeAdapter{name: name, def: def}
	case *ast.EnumDefinition:
		t = &enumTypeAdapter{def: def}
	case *ast.InputObjectDefinition:
		t = &inputTypeAdapter{def: def}
	default:
		return nil
	}
	d.types[name] = t
	return t
}

// ParseSelectionSet implements schema.Parser, satisfying the builder's
// need to turn `@key`/`@requires`/`@provides` field-set strings into
// selection sets rooted at a given type.
func (d *Document) ParseSelectionSet(parentType schema.NamedType, fieldsString string) (schema.SelectionSet, error) {
	return parseSelectionSet(d, parentType.TypeName(), fieldsString)
}
