package querygraph_test

import (
	"testing"

	"github.com/reveald/federation-querygraph/querygraph"
)

func twoVertexGraph(t *testing.T) *querygraph.QueryGraph {
	t.Helper()
	b := querygraph.NewGraphBuilder()
	str := scalarType("String")
	q := objectType("Query", field("name", "Query", str))
	qIdx := b.CreateNewVertex(q, "s", newFakeSchema(false))
	sIdx := b.CreateNewVertex(str, "s", newFakeSchema(false))
	b.AddEdge(qIdx, sIdx, querygraph.FieldCollection(q.fields[0]), nil)
	b.SetAsRoot(querygraph.Query, qIdx)
	return b.Build("t")
}

func TestQueryGraphState(t *testing.T) {
	g := twoVertexGraph(t)

	t.Run("vertex state round-trips", func(t *testing.T) {
		s := querygraph.NewQueryGraphState[string, int](g)
		if _, ok := s.GetVertex(0); ok {
			t.Fatalf("expected no state before SetVertex")
		}
		s.SetVertex(0, "hello")
		v, ok := s.GetVertex(0)
		if !ok || v != "hello" {
			t.Fatalf("got (%q, %v), want (\"hello\", true)", v, ok)
		}
		s.RemoveVertex(0)
		if _, ok := s.GetVertex(0); ok {
			t.Fatalf("expected no state after RemoveVertex")
		}
	})

	t.Run("edge state round-trips and lazily grows", func(t *testing.T) {
		s := querygraph.NewQueryGraphState[string, int](g)
		if _, ok := s.GetEdge(0, 0); ok {
			t.Fatalf("expected no state before SetEdge")
		}
		s.SetEdge(0, 0, 42)
		v, ok := s.GetEdge(0, 0)
		if !ok || v != 42 {
			t.Fatalf("got (%d, %v), want (42, true)", v, ok)
		}
		s.RemoveEdge(0, 0)
		if _, ok := s.GetEdge(0, 0); ok {
			t.Fatalf("expected no state after RemoveEdge")
		}
	})

	t.Run("GetEdge on an unset head is safe", func(t *testing.T) {
		s := querygraph.NewQueryGraphState[string, int](g)
		if _, ok := s.GetEdge(1, 0); ok {
			t.Fatalf("expected no state for a vertex with no edges ever set")
		}
	})
}
