package gqlgraph

import (
	"fmt"
	"strings"

	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"

	"github.com/reveald/federation-querygraph/schema"
)

// parseSelectionSet parses fieldsString (a federation field-set body,
// e.g. `id` or `id sku` or `id variation { size }`) as the selection
// set of an anonymous query rooted at parentType.
func parseSelectionSet(doc *Document, parentType, fieldsString string) (schema.SelectionSet, error) {
	source := fmt.Sprintf("{ %s }", fieldsString)
	astDoc, err := parser.Parse(parser.ParseParams{
		Source:  source,
		Options: parser.ParseOptions{NoSource: true},
	})
	if err != nil {
		return nil, fmt.Errorf("gqlgraph: parse field set %q: %w", fieldsString, err)
	}
	if len(astDoc.Definitions) != 1 {
		return nil, fmt.Errorf("gqlgraph: field set %q did not parse to a single selection set", fieldsString)
	}
	op, ok := astDoc.Definitions[0].(*ast.OperationDefinition)
	if !ok {
		return nil, fmt.Errorf("gqlgraph: field set %q did not parse to an operation", fieldsString)
	}
	return &selectionSetAdapter{doc: doc, parentType: parentType, set: op.SelectionSet}, nil
}

type selectionSetAdapter struct {
	doc        *Document
	parentType string
	set        *ast.SelectionSet
}

func (s *selectionSetAdapter) ParentTypeName() string { return s.parentType }

func (s *selectionSetAdapter) IsEmpty() bool {
	return s.set == nil || len(s.set.Selections) == 0
}

func (s *selectionSetAdapter) Selections() []schema.Selection {
	if s.set == nil {
		return nil
	}
	out := make([]schema.Selection, 0, len(s.set.Selections))
	for _, sel := range s.set.Selections {
		switch sel := sel.(type) {
		case *ast.Field:
			out = append(out, &fieldSelectionAdapter{doc: s.doc, parentType: s.parentType, node: sel})
		case *ast.InlineFragment:
			out = append(out, &inlineFragmentAdapter{doc: s.doc, parentType: s.parentType, node: sel})
		}
	}
	return out
}

func (s *selectionSetAdapter) MergeIn(other schema.SelectionSet) schema.SelectionSet {
	o, ok := other.(*selectionSetAdapter)
	if !ok || o.set == nil {
		return s
	}
	if s.set == nil {
		return &selectionSetAdapter{doc: s.doc, parentType: s.parentType, set: o.set}
	}
	merged := &ast.SelectionSet{Kind: s.set.Kind, Selections: append([]ast.Selection{}, s.set.Selections...)}
	for _, osel := range o.set.Selections {
		merged.Selections = mergeSelectionInto(merged.Selections, osel)
	}
	return &selectionSetAdapter{doc: s.doc, parentType: s.parentType, set: merged}
}

func mergeSelectionInto(existing []ast.Selection, sel ast.Selection) []ast.Selection {
	switch sel := sel.(type) {
	case *ast.Field:
		for i, e := range existing {
			if ef, ok := e.(*ast.Field); ok && ef.Name.Value == sel.Name.Value {
				existing[i] = &ast.Field{
					Kind:         ef.Kind,
					Alias:        ef.Alias,
					Name:         ef.Name,
					Arguments:    ef.Arguments,
					Directives:   ef.Directives,
					SelectionSet: mergeASTSelectionSets(ef.SelectionSet, sel.SelectionSet),
				}
				return existing
			}
		}
		return append(existing, sel)
	case *ast.InlineFragment:
		cond := inlineFragmentTypeCondition(sel)
		for i, e := range existing {
			if ef, ok := e.(*ast.InlineFragment); ok && inlineFragmentTypeCondition(ef) == cond {
				existing[i] = &ast.InlineFragment{
					Kind:          ef.Kind,
					TypeCondition: ef.TypeCondition,
					Directives:    ef.Directives,
					SelectionSet:  mergeASTSelectionSets(ef.SelectionSet, sel.SelectionSet),
				}
				return existing
			}
		}
		return append(existing, sel)
	default:
		return append(existing, sel)
	}
}

func mergeASTSelectionSets(a, b *ast.SelectionSet) *ast.SelectionSet {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	merged := &ast.SelectionSet{Kind: a.Kind, Selections: append([]ast.Selection{}, a.Selections...)}
	for _, sel := range b.Selections {
		merged.Selections = mergeSelectionInto(merged.Selections, sel)
	}
	return merged
}

func inlineFragmentTypeCondition(f *ast.InlineFragment) string {
	if f.TypeCondition == nil {
		return ""
	}
	return f.TypeCondition.Name.Value
}

func (s *selectionSetAdapter) String() string {
	var b strings.Builder
	renderSelectionSet(&b, s.set)
	return b.String()
}

func renderSelectionSet(b *strings.Builder, set *ast.SelectionSet) {
	if set == nil || len(set.Selections) == 0 {
		return
	}
	b.WriteString("{ ")
	for i, sel := range set.Selections {
		if i > 0 {
			b.WriteString(" ")
		}
		switch sel := sel.(type) {
		case *ast.Field:
			b.WriteString(sel.Name.Value)
			if sel.SelectionSet != nil {
				b.WriteString(" ")
				renderSelectionSet(b, sel.SelectionSet)
			}
		case *ast.InlineFragment:
			b.WriteString("... ")
			if sel.TypeCondition != nil {
				b.WriteString("on ")
				b.WriteString(sel.TypeCondition.Name.Value)
				b.WriteString(" ")
			}
			renderSelectionSet(b, sel.SelectionSet)
		}
	}
	b.WriteString(" }")
}

type fieldSelectionAdapter struct {
	doc        *Document
	parentType string
	node       *ast.Field
}

func (f *fieldSelectionAdapter) Kind() schema.SelectionKind { return schema.FieldSelectionKind }
func (f *fieldSelectionAdapter) FieldName() string          { return f.node.Name.Value }

func (f *fieldSelectionAdapter) SubSelection() (schema.SelectionSet, bool) {
	if f.node.SelectionSet == nil {
		return nil, false
	}
	childType := ""
	if parent := f.doc.resolve(f.parentType); parent != nil {
		if container, ok := parent.(schema.FieldsContainer); ok {
			if field, ok := container.FieldByName(f.node.Name.Value); ok {
				childType = field.BaseType().TypeName()
			}
		}
	}
	return &selectionSetAdapter{doc: f.doc, parentType: childType, set: f.node.SelectionSet}, true
}

type inlineFragmentAdapter struct {
	doc        *Document
	parentType string
	node       *ast.InlineFragment
}

func (f *inlineFragmentAdapter) Kind() schema.SelectionKind { return schema.InlineFragmentSelectionKind }
func (f *inlineFragmentAdapter) ParentTypeName() string     { return f.parentType }

func (f *inlineFragmentAdapter) TypeCondition() (string, bool) {
	if f.node.TypeCondition == nil {
		return "", false
	}
	return f.node.TypeCondition.Name.Value, true
}

func (f *inlineFragmentAdapter) SubSelection() schema.SelectionSet {
	typeName := f.parentType
	if cond, ok := f.TypeCondition(); ok {
		typeName = cond
	}
	return &selectionSetAdapter{doc: f.doc, parentType: typeName, set: f.node.SelectionSet}
}
