package querygraph

import (
	"fmt"

	"github.com/reveald/federation-querygraph/schema"
)

// federatedRootType is the synthetic object type backing a federated
// graph's per-root-kind root vertex: a bare composite type with no
// fields of its own, named "[query]", "[mutation]", "[subscription]".
type federatedRootType struct {
	name string
}

func (t federatedRootType) TypeName() string                                      { return t.name }
func (t federatedRootType) IsObject() bool                                        { return true }
func (t federatedRootType) IsInterface() bool                                     { return false }
func (t federatedRootType) IsUnion() bool                                         { return false }
func (t federatedRootType) IsScalar() bool                                        { return false }
func (t federatedRootType) IsEnum() bool                                          { return false }
func (t federatedRootType) IsInput() bool                                         { return false }
func (t federatedRootType) IsComposite() bool                                     { return true }
func (t federatedRootType) HasAppliedDirective(name string) bool                  { return false }
func (t federatedRootType) AppliedDirectives(name string) []schema.AppliedDirective { return nil }
func (t federatedRootType) AllFields() []schema.Field                              { return nil }
func (t federatedRootType) FieldByName(name string) (schema.Field, bool)          { return nil, false }

// federatedGraphBuilder orchestrates building one subgraph graph per
// subgraph, copying them into a single builder behind a synthetic
// federated root per root-kind, then wiring @key, @requires, and
// @provides edges between the copies.
type federatedGraphBuilder struct {
	supergraph schema.Schema
	extractor  schema.SubgraphExtractor
	builder    *GraphBuilder

	subgraphs     []schema.Subgraph
	subgraphGraph map[string]*QueryGraph
	copyPointer   map[string]CopyPointer
}

// BuildFederatedQueryGraph builds a single federated query graph from
// supergraph, extracting its constituent subgraphs via extractor.
func BuildFederatedQueryGraph(supergraph schema.Schema, extractor schema.SubgraphExtractor) (g *QueryGraph, err error) {
	defer recoverInvariant(&err)
	fb := &federatedGraphBuilder{
		supergraph:    supergraph,
		extractor:     extractor,
		builder:       NewGraphBuilder(),
		subgraphGraph: make(map[string]*QueryGraph),
		copyPointer:   make(map[string]CopyPointer),
	}
	g = fb.build()
	return g, nil
}

func (fb *federatedGraphBuilder) build() *QueryGraph {
	fb.extractSubgraphs()
	fb.buildSubgraphGraphs()
	rootKinds := fb.sizeAndAllocateRoots()
	fb.copySubgraphs()
	fb.linkRoots(rootKinds)
	fb.addKeyEdges()
	fb.addRequiresConditions()
	fb.addProvidesEdges()
	return fb.builder.Build("federated")
}

func (fb *federatedGraphBuilder) extractSubgraphs() {
	subgraphs, err := fb.extractor.ExtractSubgraphs(fb.supergraph)
	if err != nil {
		panic(&InvariantError{Op: "extractSubgraphs", Reason: err.Error()})
	}
	fb.subgraphs = subgraphs
}

func (fb *federatedGraphBuilder) buildSubgraphGraphs() {
	for _, sg := range fb.subgraphs {
		fb.subgraphGraph[sg.Name] = buildSubgraphQueryGraph(sg.Name, sg.Schema, sg.Name, fb.supergraph)
	}
}

// sizeAndAllocateRoots reserves Sum|V_sub| + |RK| vertex slots, then
// allocates a federated root vertex for each root-kind present across
// any subgraph in the first |RK| slots, in the fixed query/mutation/
// subscription order.
func (fb *federatedGraphBuilder) sizeAndAllocateRoots() []RootKind {
	totalVertices := 0
	present := make(map[RootKind]bool)
	for _, sg := range fb.subgraphs {
		g := fb.subgraphGraph[sg.Name]
		totalVertices += g.VerticesCount()
		for _, k := range g.RootKinds() {
			present[k] = true
		}
	}

	var rootKinds []RootKind
	for _, k := range []RootKind{schema.Query, schema.Mutation, schema.Subscription} {
		if present[k] {
			rootKinds = append(rootKinds, k)
		}
	}

	fb.builder.Reserve(totalVertices + len(rootKinds))
	for _, k := range rootKinds {
		fb.builder.CreateRootVertex(k, federatedRootType{name: FederatedRootTypeName(k)}, FederatedRootSource, nil)
	}
	return rootKinds
}

func (fb *federatedGraphBuilder) copySubgraphs() {
	for _, sg := range fb.subgraphs {
		fb.copyPointer[sg.Name] = fb.builder.CopyGraph(fb.subgraphGraph[sg.Name])
	}
}

func (fb *federatedGraphBuilder) linkRoots(rootKinds []RootKind) {
	for _, k := range rootKinds {
		federatedRoot, ok := fb.builder.RootVertexIndex(k)
		if !ok {
			continue
		}
		for _, sg := range fb.subgraphs {
			subgraphRoot, ok := fb.subgraphGraph[sg.Name].Root(k)
			if !ok {
				continue
			}
			target := fb.copyPointer[sg.Name].At(subgraphRoot.Index())
			fb.builder.AddEdge(federatedRoot, target, FreeTransition(), nil)
		}
	}
}

// addKeyEdges traverses every subgraph's vertices and, for each one
// whose type carries @key applications, adds a KeyResolution edge
// from every other subgraph's copy of that type-name's vertex to this
// subgraph's copy, with conditions parsed from the key's field set.
func (fb *federatedGraphBuilder) addKeyEdges() {
	for _, sg := range fb.subgraphs {
		g := fb.subgraphGraph[sg.Name]
		parser := fb.parserFor(sg)

		for v := 0; v < g.VerticesCount(); v++ {
			t := g.Vertex(v).Type()
			keys := t.AppliedDirectives(schema.KeyDirectiveName)
			if len(keys) == 0 {
				continue
			}
			invariant(t.IsObject() || t.IsInterface(), "addKeyEdges", t.TypeName(), "@key applied to a non-composite type")

			currentCopy := fb.copyPointer[sg.Name].At(v)
			for _, key := range keys {
				conditions, err := parser.ParseSelectionSet(t, key.StringArg("fields"))
				if err != nil {
					panic(&InvariantError{Op: "addKeyEdges", Entity: t.TypeName(), Reason: err.Error()})
				}

				for _, other := range fb.subgraphs {
					if other.Name == sg.Name {
						continue
					}
					otherVertices := fb.subgraphGraph[other.Name].VerticesForType(t.TypeName())
					if len(otherVertices) == 0 {
						continue
					}
					invariant(len(otherVertices) == 1, "addKeyEdges", t.TypeName(),
						fmt.Sprintf("expected at most one vertex for this type in subgraph %q before @provides handling", other.Name))

					otherCopy := fb.copyPointer[other.Name].At(otherVertices[0])
					fb.builder.AddEdge(otherCopy, currentCopy, KeyResolution(), conditions)
				}
			}
		}
	}
}

// addRequiresConditions traverses every subgraph's FieldCollection
// edges and, for each field carrying @requires, merges the parsed
// requirement selection into the corresponding copied edge's
// conditions. Relies on copyGraph preserving per-vertex edge order so
// the copied edge shares its original's local index.
func (fb *federatedGraphBuilder) addRequiresConditions() {
	for _, sg := range fb.subgraphs {
		g := fb.subgraphGraph[sg.Name]
		parser := fb.parserFor(sg)

		for v := 0; v < g.VerticesCount(); v++ {
			headType := g.Vertex(v).Type()
			for _, e := range g.OutEdges(v) {
				if e.Transition().Kind != FieldCollectionTransition {
					continue
				}
				requires := e.Transition().Field.AppliedDirectives(schema.RequiresDirectiveName)
				if len(requires) == 0 {
					continue
				}

				sel, err := parser.ParseSelectionSet(headType, requires[0].StringArg("fields"))
				if err != nil {
					panic(&InvariantError{Op: "addRequiresConditions", Entity: e.Transition().Field.Name(), Reason: err.Error()})
				}

				copiedHead := fb.copyPointer[sg.Name].At(v)
				copiedEdge, ok := fb.builder.Edge(copiedHead, e.Index())
				invariant(ok, "addRequiresConditions", e.Transition().Field.Name(), "copied edge not found at original's local index")
				fb.builder.MergeEdgeConditions(copiedEdge, sel)
			}
		}
	}
}

// addProvidesEdges traverses every subgraph's FieldCollection edges
// again and, for each field carrying @provides, redirects the copied
// edge into a fresh copy of its tail vertex, then materialises the
// provided selection as new vertices and edges reachable only from
// that fresh copy.
func (fb *federatedGraphBuilder) addProvidesEdges() {
	for _, sg := range fb.subgraphs {
		g := fb.subgraphGraph[sg.Name]
		parser := fb.parserFor(sg)

		for v := 0; v < g.VerticesCount(); v++ {
			for _, e := range g.OutEdges(v) {
				if e.Transition().Kind != FieldCollectionTransition {
					continue
				}
				field := e.Transition().Field
				provides := field.AppliedDirectives(schema.ProvidesDirectiveName)
				if len(provides) == 0 {
					continue
				}

				fieldType := field.BaseType()
				invariant(fieldType.IsObject() || fieldType.IsInterface(), "addProvidesEdges", field.Name(), "@provides applied to a non-composite field type")

				sel, err := parser.ParseSelectionSet(fieldType, provides[0].StringArg("fields"))
				if err != nil {
					panic(&InvariantError{Op: "addProvidesEdges", Entity: field.Name(), Reason: err.Error()})
				}

				copiedHead := fb.copyPointer[sg.Name].At(v)
				copiedEdge, ok := fb.builder.Edge(copiedHead, e.Index())
				invariant(ok, "addProvidesEdges", field.Name(), "copied edge not found at original's local index")

				tailPrime := fb.builder.MakeCopy(copiedEdge.Tail())
				updated := fb.builder.UpdateEdgeTail(copiedEdge, tailPrime)
				_ = updated
				fb.materializeProvides(tailPrime, sel, sg.Name)
			}
		}
	}
}

// materializeProvides walks a @provides selection from fromVertex,
// allocating a brand-new vertex for every non-leaf selected field
// (the provide reaches only a subset of the type) while reusing the
// existing same-source vertex for a leaf field's type if one exists.
// Inline fragments with a type condition insert an intermediate
// DownCast vertex; those without continue from the current vertex.
func (fb *federatedGraphBuilder) materializeProvides(fromVertex int, sel schema.SelectionSet, source string) {
	if sel == nil {
		return
	}
	sourceSchema, _ := fb.builder.SchemaFor(source)

	for _, selection := range sel.Selections() {
		switch s := selection.(type) {
		case schema.FieldSelection:
			parentType := fb.builder.Vertex(fromVertex).Type()
			container, ok := parentType.(schema.FieldsContainer)
			invariant(ok, "materializeProvides", parentType.TypeName(), "@provides selects a field of a non-composite type")

			f, ok := container.FieldByName(s.FieldName())
			invariant(ok, "materializeProvides", s.FieldName(), "field not found on provided type")

			subSel, hasSub := s.SubSelection()
			isLeaf := !hasSub || subSel.IsEmpty()

			var childIndex int
			if isLeaf {
				if existing, ok := fb.builder.VertexForTypeAndSource(f.BaseType().TypeName(), source); ok {
					childIndex = existing
				} else {
					childIndex = fb.builder.CreateNewVertex(f.BaseType(), source, sourceSchema)
				}
			} else {
				childIndex = fb.builder.CreateNewVertex(f.BaseType(), source, sourceSchema)
			}

			fb.builder.AddEdge(fromVertex, childIndex, FieldCollection(f), nil)
			if !isLeaf {
				fb.materializeProvides(childIndex, subSel, source)
			}

		case schema.InlineFragmentSelection:
			target := fromVertex
			if cond, ok := s.TypeCondition(); ok {
				fromType := fb.builder.Vertex(fromVertex).Type()
				toType := sourceSchema.Type(cond)
				invariant(toType != nil, "materializeProvides", cond, "inline fragment type condition not found in subgraph schema")
				target = fb.builder.CreateNewVertex(toType, source, sourceSchema)
				fb.builder.AddEdge(fromVertex, target, DownCast(fromType, toType), nil)
			}
			fb.materializeProvides(target, s.SubSelection(), source)
		}
	}
}

func (fb *federatedGraphBuilder) parserFor(sg schema.Subgraph) schema.Parser {
	parser, ok := sg.Schema.(schema.Parser)
	invariant(ok, "parserFor", sg.Name, "subgraph schema does not implement field-set parsing")
	return parser
}
