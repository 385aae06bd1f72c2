package querygraph

import (
	"fmt"

	"github.com/reveald/federation-querygraph/schema"
)

// GraphBuilder is mutable scaffolding for vertices, edges, roots, and
// sources. It mirrors QueryGraph's storage plus a monotonically
// increasing nextIndex cursor, and is consumed by Build into an
// immutable QueryGraph. A builder is exclusively owned by one caller
// for its lifetime; see SchemaGraphBuilder and FederatedGraphBuilder
// for the two ways this package drives one.
//
// The invariant held across every operation: the vertex at any
// occupied index i has index i, and adjacency i exists iff vertex i
// exists.
type GraphBuilder struct {
	vertices        []AnyVertex
	occupied        []bool
	adjacencies     [][]Edge
	typesToVertices map[string][]int
	rootVertices    map[RootKind]RootVertex
	sources         map[string]schema.Schema
	nextIndex       int
	built           bool
}

// NewGraphBuilder returns an empty builder.
func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{
		typesToVertices: make(map[string][]int),
		rootVertices:    make(map[RootKind]RootVertex),
		sources:         make(map[string]schema.Schema),
	}
}

// Reserve grows the builder's backing storage to hold at least n more
// vertices without allocating any of them, so that callers who know
// their final vertex count up front (FederatedGraphBuilder) can avoid
// repeated reallocation during copyGraph.
func (b *GraphBuilder) Reserve(n int) {
	b.ensureCapacity(b.nextIndex + n)
}

func (b *GraphBuilder) ensureCapacity(n int) {
	if n <= len(b.vertices) {
		return
	}
	vertices := make([]AnyVertex, n)
	copy(vertices, b.vertices)
	b.vertices = vertices

	occupied := make([]bool, n)
	copy(occupied, b.occupied)
	b.occupied = occupied

	adjacencies := make([][]Edge, n)
	copy(adjacencies, b.adjacencies)
	b.adjacencies = adjacencies
}

// CreateNewVertex allocates a vertex at the next free index, registers
// source's schema on first sight, and returns the new index.
func (b *GraphBuilder) CreateNewVertex(typ schema.NamedType, source string, sch schema.Schema) int {
	index := b.nextIndex
	b.nextIndex++
	return b.createVertexAt(index, typ, source, sch)
}

// CreateNewVertexAt allocates a vertex at the given index. It panics
// with an InvariantError if that slot is already occupied.
func (b *GraphBuilder) CreateNewVertexAt(index int, typ schema.NamedType, source string, sch schema.Schema) int {
	if index >= b.nextIndex {
		b.nextIndex = index + 1
	}
	return b.createVertexAt(index, typ, source, sch)
}

func (b *GraphBuilder) createVertexAt(index int, typ schema.NamedType, source string, sch schema.Schema) int {
	b.ensureCapacity(index + 1)
	invariant(!b.occupied[index], "createNewVertex", fmt.Sprintf("index %d", index), "slot already occupied")

	v := newVertex(index, typ, source)
	b.vertices[index] = v
	b.occupied[index] = true
	b.typesToVertices[typ.TypeName()] = append(b.typesToVertices[typ.TypeName()], index)
	if _, seen := b.sources[source]; !seen {
		b.sources[source] = sch
	}
	return index
}

// CreateRootVertex creates a vertex and immediately promotes it via
// SetAsRoot. Panics if a root for kind already exists.
func (b *GraphBuilder) CreateRootVertex(kind RootKind, typ schema.NamedType, source string, sch schema.Schema) int {
	_, exists := b.rootVertices[kind]
	invariant(!exists, "createRootVertex", string(kind), "root already exists for this kind")
	index := b.CreateNewVertex(typ, source, sch)
	b.SetAsRoot(kind, index)
	return index
}

// SetAsRoot replaces the vertex at index with its RootVertex wrapping.
// Because edges address their head by index rather than by pointer,
// no existing out-edge needs to change: the adjacency list at index
// is unaffected by the vertex's promotion.
func (b *GraphBuilder) SetAsRoot(kind RootKind, index int) {
	invariant(index >= 0 && index < len(b.occupied) && b.occupied[index], "setAsRoot", fmt.Sprintf("index %d", index), "no vertex at this index")
	_, exists := b.rootVertices[kind]
	invariant(!exists, "setAsRoot", string(kind), "root already exists for this kind")

	base, ok := b.vertices[index].(Vertex)
	if !ok {
		base = b.vertices[index].(RootVertex).Vertex
	}
	rv := newRootVertex(base, kind)
	b.vertices[index] = rv
	b.rootVertices[kind] = rv
}

// AddEdge appends an edge to head's adjacency; the new edge's local
// index equals the prior adjacency length.
func (b *GraphBuilder) AddEdge(head, tail int, transition Transition, conditions schema.SelectionSet) Edge {
	invariant(head >= 0 && head < len(b.occupied) && b.occupied[head], "addEdge", fmt.Sprintf("head %d", head), "no vertex at this index")
	invariant(tail >= 0 && tail < len(b.occupied) && b.occupied[tail], "addEdge", fmt.Sprintf("tail %d", tail), "no vertex at this index")

	headType := b.vertices[head].Type()
	invariant(conditions == nil || headType.IsComposite(), "addEdge", headType.TypeName(), "conditions require a composite head type")

	index := len(b.adjacencies[head])
	e := Edge{head: head, tail: tail, transition: transition, conditions: conditions, index: index}
	b.adjacencies[head] = append(b.adjacencies[head], e)
	return e
}

// Edge returns the i-th out-edge of head, or (zero, false) if out of
// range.
func (b *GraphBuilder) Edge(head, i int) (Edge, bool) {
	if head < 0 || head >= len(b.adjacencies) || i < 0 || i >= len(b.adjacencies[head]) {
		return Edge{}, false
	}
	return b.adjacencies[head][i], true
}

// OutEdges returns head's current adjacency list.
func (b *GraphBuilder) OutEdges(head int) []Edge {
	return b.adjacencies[head]
}

// Vertex returns the vertex at index i.
func (b *GraphBuilder) Vertex(i int) AnyVertex { return b.vertices[i] }

// VertexForType returns the single vertex created for the named type,
// if any. It panics if more than one exists, the invariant a single
// schema's builder relies on for memoization.
func (b *GraphBuilder) VertexForType(name string) (int, bool) {
	ids := b.typesToVertices[name]
	if len(ids) == 0 {
		return 0, false
	}
	invariant(len(ids) == 1, "vertexForType", name, "expected at most one vertex for this type")
	return ids[0], true
}

// SchemaFor returns the schema registered for source, if any.
func (b *GraphBuilder) SchemaFor(source string) (schema.Schema, bool) {
	s, ok := b.sources[source]
	return s, ok
}

// RootVertexIndex returns the vertex index of the root registered for
// kind, if any.
func (b *GraphBuilder) RootVertexIndex(kind RootKind) (int, bool) {
	rv, ok := b.rootVertices[kind]
	if !ok {
		return 0, false
	}
	return rv.Index(), true
}

// VertexForTypeAndSource returns the vertex created for the named type
// within the given source, if any. Unlike VertexForType it does not
// assert uniqueness across the whole builder: a federated builder
// legitimately holds one vertex per (type, subgraph) pair.
func (b *GraphBuilder) VertexForTypeAndSource(name, source string) (int, bool) {
	for _, idx := range b.typesToVertices[name] {
		if b.vertices[idx].Source() == source {
			return idx, true
		}
	}
	return 0, false
}

// MergeEdgeConditions merges sel into the conditions of the edge at
// (e.Head(), e.Index()), in place of the identical-but-for-conditions
// replacement UpdateEdgeTail performs for tails. Precondition: e is
// still the current occupant of that slot.
func (b *GraphBuilder) MergeEdgeConditions(e Edge, sel schema.SelectionSet) Edge {
	adj := b.adjacencies[e.head]
	invariant(e.index >= 0 && e.index < len(adj), "mergeEdgeConditions", fmt.Sprintf("head %d index %d", e.head, e.index), "edge slot out of range")
	current := adj[e.index]
	invariant(current.transition == e.transition && current.tail == e.tail, "mergeEdgeConditions", fmt.Sprintf("head %d index %d", e.head, e.index), "edge is no longer the current occupant of this slot")

	current.addToConditions(sel)
	adj[e.index] = current
	return current
}

// UpdateEdgeTail replaces the edge at (e.Head(), e.Index()) with an
// identical edge whose tail is newTail. Precondition: e is still the
// current occupant of that slot.
func (b *GraphBuilder) UpdateEdgeTail(e Edge, newTail int) Edge {
	adj := b.adjacencies[e.head]
	invariant(e.index >= 0 && e.index < len(adj), "updateEdgeTail", fmt.Sprintf("head %d index %d", e.head, e.index), "edge slot out of range")
	current := adj[e.index]
	invariant(current.transition == e.transition && current.tail == e.tail, "updateEdgeTail", fmt.Sprintf("head %d index %d", e.head, e.index), "edge is no longer the current occupant of this slot")

	updated := Edge{head: e.head, tail: newTail, transition: e.transition, conditions: e.conditions, index: e.index}
	adj[e.index] = updated
	return updated
}

// MakeCopy allocates a fresh vertex with the same type and source as
// v, copying v's out-edges one-for-one (same transitions, same
// conditions, same tails, indices preserved). The copy has no
// in-edges.
func (b *GraphBuilder) MakeCopy(v int) int {
	orig := b.vertices[v]
	sch, _ := b.SchemaFor(orig.Source())
	newIndex := b.CreateNewVertex(orig.Type(), orig.Source(), sch)
	for _, e := range b.adjacencies[v] {
		b.AddEdge(newIndex, e.tail, e.transition, e.conditions)
	}
	return newIndex
}

// CopyPointer maps vertex indices of a copied graph to their
// counterparts in the builder that copied it.
type CopyPointer struct {
	offset int
}

// At returns the new index corresponding to oldIndex.
func (p CopyPointer) At(oldIndex int) int { return oldIndex + p.offset }

// CopyGraph reserves a contiguous block of g.VerticesCount() indices
// starting at offset == current nextIndex, then traverses g with
// SimpleTraversal, creating a fresh vertex at old.Index()+offset for
// each visited old vertex (reusing it if already created as the tail
// of a copied edge) and a fresh edge for each visited old edge between
// the corresponding new endpoints. Returns a CopyPointer translating
// old indices to new ones.
func (b *GraphBuilder) CopyGraph(g *QueryGraph) CopyPointer {
	offset := b.nextIndex
	b.nextIndex += g.VerticesCount()
	pointer := CopyPointer{offset: offset}

	copyVertex := func(oldV int) int {
		newIndex := pointer.At(oldV)
		if newIndex < len(b.occupied) && b.occupied[newIndex] {
			return newIndex
		}
		old := g.Vertex(oldV)
		sch, _ := g.SchemaFor(old.Source())
		return b.CreateNewVertexAt(newIndex, old.Type(), old.Source(), sch)
	}

	SimpleTraversal(g,
		func(oldV int) { copyVertex(oldV) },
		func(e Edge) bool {
			b.AddEdge(copyVertex(e.Head()), copyVertex(e.Tail()), e.Transition(), e.Conditions())
			return true
		},
	)

	return pointer
}

// Build freezes the builder's state into an immutable QueryGraph.
// Panics if called more than once.
func (b *GraphBuilder) Build(name string) *QueryGraph {
	invariant(!b.built, "build", name, "builder has already been built")
	b.built = true

	vertices := make([]AnyVertex, b.nextIndex)
	copy(vertices, b.vertices[:b.nextIndex])
	adjacencies := make([][]Edge, b.nextIndex)
	copy(adjacencies, b.adjacencies[:b.nextIndex])

	typesToVertices := make(map[string][]int, len(b.typesToVertices))
	for k, v := range b.typesToVertices {
		typesToVertices[k] = v
	}
	rootVertices := make(map[RootKind]RootVertex, len(b.rootVertices))
	for k, v := range b.rootVertices {
		rootVertices[k] = v
	}
	sources := make(map[string]schema.Schema, len(b.sources))
	for k, v := range b.sources {
		sources[k] = v
	}

	return &QueryGraph{
		name:            name,
		vertices:        vertices,
		adjacencies:     adjacencies,
		typesToVertices: typesToVertices,
		rootVertices:    rootVertices,
		sources:         sources,
	}
}
