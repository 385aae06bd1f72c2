package querygraphviz_test

import (
	"strings"
	"testing"

	"github.com/reveald/federation-querygraph/querygraph"
	"github.com/reveald/federation-querygraph/querygraphviz"
	"github.com/reveald/federation-querygraph/schema/gqlgraph"
)

func TestExportDOT(t *testing.T) {
	doc, err := gqlgraph.ParseSDL(`
		type Query {
			a: A
		}

		type A {
			x: Int
		}
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	g, err := querygraph.BuildQueryGraph("demo", doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := querygraphviz.ExportDOT(g)

	if !strings.HasPrefix(out, "digraph demo {") {
		t.Fatalf("expected the output to open with the graph's name, got %q", out)
	}
	if !strings.Contains(out, `label="Query\n[`) {
		t.Fatalf("expected a labelled Query vertex, got:\n%s", out)
	}
	if !strings.Contains(out, "shape=doublecircle") {
		t.Fatalf("expected the root vertex to be marked doublecircle, got:\n%s", out)
	}
	if !strings.Contains(out, `label="field a"`) {
		t.Fatalf("expected the a-edge to be labelled with its field transition, got:\n%s", out)
	}
	if !strings.HasSuffix(strings.TrimRight(out, "\n"), "}") {
		t.Fatalf("expected the output to close with a brace, got %q", out)
	}
}

func TestExportDOT_Deterministic(t *testing.T) {
	doc, err := gqlgraph.ParseSDL(`type Query { a: A b: B } type A { x: Int } type B { y: Int }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g, err := querygraph.BuildQueryGraph("repeat", doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := querygraphviz.ExportDOT(g)
	second := querygraphviz.ExportDOT(g)
	if first != second {
		t.Fatalf("expected repeated exports of the same graph to be identical")
	}
}
