package querygraph

import "github.com/reveald/federation-querygraph/schema"

// RootKind mirrors schema.RootKind for the vertex/root vocabulary used
// by the graph itself, so callers need not import schema just to
// enumerate root kinds.
type RootKind = schema.RootKind

const (
	Query        = schema.Query
	Mutation     = schema.Mutation
	Subscription = schema.Subscription
)

// AnyVertex is satisfied by both Vertex and RootVertex, letting a
// graph's vertex array hold either uniformly.
type AnyVertex interface {
	Index() int
	Type() schema.NamedType
	Source() string
	IsRoot() bool
}

// Vertex is an indexed (type, source) position in a QueryGraph. Index
// is stable for the lifetime of the owning graph and equals the
// vertex's position in the graph's vertex array.
type Vertex struct {
	index  int
	typ    schema.NamedType
	source string
}

// Index returns the vertex's position within its owning graph.
func (v Vertex) Index() int { return v.index }

// Type returns the schema type this vertex represents a position of.
func (v Vertex) Type() schema.NamedType { return v.typ }

// Source returns the subgraph (or federated-root) identifier this
// vertex belongs to.
func (v Vertex) Source() string { return v.source }

// IsRoot reports whether this vertex is a RootVertex.
func (v Vertex) IsRoot() bool { return false }

// RootVertex is a Vertex additionally tagged with the operation root
// kind it serves.
type RootVertex struct {
	Vertex
	rootKind RootKind
}

// RootKind returns the operation kind (query/mutation/subscription)
// this root vertex serves.
func (v RootVertex) RootKind() RootKind { return v.rootKind }

// IsRoot reports whether this vertex is a RootVertex.
func (v RootVertex) IsRoot() bool { return true }

func newVertex(index int, typ schema.NamedType, source string) Vertex {
	return Vertex{index: index, typ: typ, source: source}
}

func newRootVertex(v Vertex, kind RootKind) RootVertex {
	return RootVertex{Vertex: v, rootKind: kind}
}
