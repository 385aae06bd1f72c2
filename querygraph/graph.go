package querygraph

import (
	"sort"

	"github.com/reveald/federation-querygraph/schema"
)

// FederatedRootSource is the fixed source name of the synthetic
// subgraph that owns a federated graph's root vertices.
const FederatedRootSource = "federated_subgraphs"

// FederatedRootTypeName returns the synthetic type name of the
// federated root vertex for the given root kind, e.g. "[query]".
func FederatedRootTypeName(kind RootKind) string {
	return "[" + string(kind) + "]"
}

// QueryGraph is the immutable container produced by a builder's
// build: a dense vertex array, a parallel per-vertex adjacency list, a
// type-name to vertex-index multimap, a root-kind to root-vertex map,
// and a source-name to schema map. Vertices and edges are created only
// during building; once returned by build, a QueryGraph never changes.
type QueryGraph struct {
	name            string
	vertices        []AnyVertex
	adjacencies     [][]Edge
	typesToVertices map[string][]int
	rootVertices    map[RootKind]RootVertex
	sources         map[string]schema.Schema
}

// Name returns the graph's name, as given to build.
func (g *QueryGraph) Name() string { return g.name }

// VerticesCount returns the number of vertices in the graph.
func (g *QueryGraph) VerticesCount() int { return len(g.vertices) }

// EdgesCount returns the total number of edges across all vertices.
func (g *QueryGraph) EdgesCount() int {
	count := 0
	for _, adj := range g.adjacencies {
		count += len(adj)
	}
	return count
}

// RootKinds returns the root kinds present in the graph, in no
// particular guaranteed order beyond being stable for a given graph.
func (g *QueryGraph) RootKinds() []RootKind {
	kinds := make([]RootKind, 0, len(g.rootVertices))
	for k := range g.rootVertices {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Roots returns every root vertex in the graph.
func (g *QueryGraph) Roots() []RootVertex {
	roots := make([]RootVertex, 0, len(g.rootVertices))
	for _, k := range g.RootKinds() {
		roots = append(roots, g.rootVertices[k])
	}
	return roots
}

// Root looks up the root vertex for kind, if any.
func (g *QueryGraph) Root(kind RootKind) (RootVertex, bool) {
	v, ok := g.rootVertices[kind]
	return v, ok
}

// Vertex returns the vertex at index i.
func (g *QueryGraph) Vertex(i int) AnyVertex { return g.vertices[i] }

// OutEdges returns the adjacency list of vertex v. Precondition: v
// belongs to this graph.
func (g *QueryGraph) OutEdges(v int) []Edge { return g.adjacencies[v] }

// OutEdge returns the i-th out-edge of vertex v, or (zero, false) if i
// is out of range.
func (g *QueryGraph) OutEdge(v, i int) (Edge, bool) {
	adj := g.adjacencies[v]
	if i < 0 || i >= len(adj) {
		return Edge{}, false
	}
	return adj[i], true
}

// IsTerminal reports whether v has no out-edges.
func (g *QueryGraph) IsTerminal(v int) bool {
	return len(g.adjacencies[v]) == 0
}

// VerticesForType returns every vertex index whose type has the given
// name, in insertion order. Empty if none.
func (g *QueryGraph) VerticesForType(name string) []int {
	return g.typesToVertices[name]
}

// Sources returns the schema backing each source (subgraph, or the
// synthetic federated root) known to the graph.
func (g *QueryGraph) Sources() map[string]schema.Schema { return g.sources }

// SchemaFor returns the schema backing source, if any.
func (g *QueryGraph) SchemaFor(source string) (schema.Schema, bool) {
	s, ok := g.sources[source]
	return s, ok
}
