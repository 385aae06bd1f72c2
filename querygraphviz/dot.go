// Package querygraphviz renders a built querygraph.QueryGraph as
// Graphviz DOT text, for debugging and visualization only. Nothing
// else in this module consumes its output.
package querygraphviz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/reveald/federation-querygraph/querygraph"
)

// ExportDOT renders g as a Graphviz "digraph" in DOT syntax. Vertices
// are walked in index order and each vertex's out-edges in adjacency
// order, so the output is deterministic for a given graph.
func ExportDOT(g *querygraph.QueryGraph) string {
	var b strings.Builder

	fmt.Fprintf(&b, "digraph %s {\n", quoteIdent(g.Name()))
	b.WriteString("  rankdir=LR;\n")

	for i := 0; i < g.VerticesCount(); i++ {
		b.WriteString("  " + vertexNode(g, i) + "\n")
	}

	roots := g.Roots()
	sort.Slice(roots, func(i, j int) bool { return roots[i].RootKind() < roots[j].RootKind() })
	for _, root := range roots {
		fmt.Fprintf(&b, "  %s [shape=doublecircle];\n", vertexID(root.Index()))
	}

	for i := 0; i < g.VerticesCount(); i++ {
		for _, e := range g.OutEdges(i) {
			b.WriteString("  " + edgeLine(e) + "\n")
		}
	}

	b.WriteString("}\n")
	return b.String()
}

func vertexID(index int) string {
	return fmt.Sprintf("v%d", index)
}

func vertexNode(g *querygraph.QueryGraph, index int) string {
	v := g.Vertex(index)
	label := fmt.Sprintf("%s\\n[%s]", v.Type().TypeName(), v.Source())
	return fmt.Sprintf("%s [label=%s];", vertexID(index), quoteString(label))
}

func edgeLine(e querygraph.Edge) string {
	line := fmt.Sprintf("%s -> %s", vertexID(e.Head()), vertexID(e.Tail()))
	if label := e.Label(); label != "" {
		line += fmt.Sprintf(" [label=%s]", quoteString(label))
	}
	return line + ";"
}

func quoteString(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// quoteIdent renders name as a valid DOT identifier, quoting it when
// it isn't already one (graph names may contain characters DOT
// reserves, e.g. spaces or hyphens).
func quoteIdent(name string) string {
	for i, r := range name {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
		isDigit := r >= '0' && r <= '9'
		if !isAlpha && !(isDigit && i > 0) {
			return quoteString(name)
		}
	}
	if name == "" {
		return quoteString(name)
	}
	return name
}
