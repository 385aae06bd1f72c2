package gqlgraph_test

import (
	"testing"

	"github.com/reveald/federation-querygraph/schema"
	"github.com/reveald/federation-querygraph/schema/gqlgraph"
)

func TestParseSelectionSet_NestedAndInlineFragments(t *testing.T) {
	doc, err := gqlgraph.ParseSDL(`
		type Query { a: A }
		interface Node { id: ID! }
		type A implements Node {
			id: ID!
			variation: Variation
		}
		type Variation { size: Int }
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a := doc.Type("A")
	sel, err := doc.ParseSelectionSet(a, `id variation { size } ... on A { id }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	selections := sel.Selections()
	if len(selections) != 3 {
		t.Fatalf("expected 3 top-level selections, got %d", len(selections))
	}

	var sawVariation, sawFragment bool
	for _, s := range selections {
		switch s.Kind() {
		case schema.FieldSelectionKind:
			fs := s.(schema.FieldSelection)
			if fs.FieldName() == "variation" {
				sawVariation = true
				sub, ok := fs.SubSelection()
				if !ok {
					t.Fatalf("expected variation to carry a subselection")
				}
				if sub.ParentTypeName() != "Variation" {
					t.Fatalf("expected the subselection's parent type to resolve to Variation, got %q", sub.ParentTypeName())
				}
				if len(sub.Selections()) != 1 {
					t.Fatalf("expected exactly one nested selection under variation")
				}
			}
		case schema.InlineFragmentSelectionKind:
			sawFragment = true
			ifs := s.(schema.InlineFragmentSelection)
			cond, ok := ifs.TypeCondition()
			if !ok || cond != "A" {
				t.Fatalf("expected the inline fragment's type condition to be A, got %q (ok=%v)", cond, ok)
			}
		}
	}
	if !sawVariation {
		t.Fatalf("expected to find the 'variation' field selection")
	}
	if !sawFragment {
		t.Fatalf("expected to find the inline fragment selection")
	}
}

func TestSelectionSet_MergeIn(t *testing.T) {
	doc, err := gqlgraph.ParseSDL(`type Query { a: A } type A { id: ID! name: String size: Int }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a := doc.Type("A")

	first, err := doc.ParseSelectionSet(a, "id name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := doc.ParseSelectionSet(a, "id size")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	merged := first.MergeIn(second)
	names := map[string]bool{}
	for _, s := range merged.Selections() {
		if fs, ok := s.(schema.FieldSelection); ok {
			names[fs.FieldName()] = true
		}
	}
	if len(names) != 3 || !names["id"] || !names["name"] || !names["size"] {
		t.Fatalf("expected the merge to union fields by name, got %v", names)
	}
}

func TestSelectionSet_MergeIn_NestedSelectionsCombine(t *testing.T) {
	doc, err := gqlgraph.ParseSDL(`
		type Query { a: A }
		type A { variation: Variation }
		type Variation { size: Int color: String }
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a := doc.Type("A")

	first, err := doc.ParseSelectionSet(a, "variation { size }")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := doc.ParseSelectionSet(a, "variation { color }")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	merged := first.MergeIn(second)
	if len(merged.Selections()) != 1 {
		t.Fatalf("expected the merge to collapse into a single 'variation' selection, got %d", len(merged.Selections()))
	}
	fs := merged.Selections()[0].(schema.FieldSelection)
	sub, ok := fs.SubSelection()
	if !ok {
		t.Fatalf("expected a merged subselection")
	}
	if len(sub.Selections()) != 2 {
		t.Fatalf("expected the nested selections to combine into size and color, got %d", len(sub.Selections()))
	}
}

func TestSelectionSet_IsEmpty(t *testing.T) {
	doc, err := gqlgraph.ParseSDL(`type Query { a: Int }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q := doc.Type("Query")
	sel, err := doc.ParseSelectionSet(q, "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel.IsEmpty() {
		t.Fatalf("expected a non-empty selection set")
	}
}
