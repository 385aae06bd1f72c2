package querygraph

import "github.com/reveald/federation-querygraph/schema"

// APISourceName is the source identifier used for a supergraph API
// query graph, which is built over exactly one source.
const APISourceName = "api"

// SchemaGraphBuilder specializes GraphBuilder to walk a single GraphQL
// schema (API-level or subgraph-level), creating vertices and edges
// from root types reachable through fields, abstract-type
// implementations, and, when a supergraph is supplied, interface-field
// shortcuts.
type SchemaGraphBuilder struct {
	builder    *GraphBuilder
	schema     schema.Schema
	source     string
	supergraph schema.Schema
}

// NewSchemaGraphBuilder returns a builder walking sch, attributing its
// vertices to source. supergraph is nil for a plain (non-federated)
// build; when non-nil and sch.IsFederationSubgraph() is true, the
// builder runs in federated-subgraph mode and attempts interface-field
// shortcut edges. It panics with an InvariantError if
// sch.IsFederationSubgraph() is true and supergraph is nil.
func NewSchemaGraphBuilder(sch schema.Schema, source string, supergraph schema.Schema) *SchemaGraphBuilder {
	invariant(supergraph != nil || !sch.IsFederationSubgraph(), "newSchemaGraphBuilder", source,
		"missing supergraph schema for building a federated subgraph graph")
	return &SchemaGraphBuilder{
		builder:    NewGraphBuilder(),
		schema:     sch,
		source:     source,
		supergraph: supergraph,
	}
}

// Builder returns the underlying GraphBuilder, for callers that need
// to inspect or extend it before freezing.
func (sb *SchemaGraphBuilder) Builder() *GraphBuilder { return sb.builder }

// AddRecursivelyFromRoot adds rootType's subgraph of the type graph
// and promotes the resulting vertex to root for kind.
func (sb *SchemaGraphBuilder) AddRecursivelyFromRoot(kind RootKind, rootType schema.ObjectType) {
	index := sb.addTypeRecursively(rootType)
	sb.builder.SetAsRoot(kind, index)
}

// addTypeRecursively memoises on type-name (reusing the single
// existing vertex if any) and dispatches on the base type's kind.
func (sb *SchemaGraphBuilder) addTypeRecursively(t schema.NamedType) int {
	if index, ok := sb.builder.VertexForType(t.TypeName()); ok {
		return index
	}
	index := sb.builder.CreateNewVertex(t, sb.source, sb.schema)

	switch {
	case t.IsObject():
		sb.addObjectFields(index, t.(schema.ObjectType))
	case t.IsInterface():
		sb.addInterface(index, t.(schema.InterfaceType))
	case t.IsUnion():
		sb.addUnion(index, t.(schema.UnionType))
	default:
		// Scalar, enum, input: terminal, no out-edges.
	}
	return index
}

func (sb *SchemaGraphBuilder) addObjectFields(index int, obj schema.ObjectType) {
	for _, f := range obj.AllFields() {
		if f.IsExternal() {
			continue
		}
		fieldIndex := sb.addTypeRecursively(f.BaseType())
		sb.builder.AddEdge(index, fieldIndex, FieldCollection(f), nil)
	}
}

func (sb *SchemaGraphBuilder) addInterface(index int, iface schema.InterfaceType) {
	if sb.inFederatedSubgraphMode() {
		sb.addInterfaceFieldShortcuts(index, iface)
	}
	for _, impl := range iface.PossibleRuntimeTypes() {
		implIndex := sb.addTypeRecursively(impl)
		sb.builder.AddEdge(index, implIndex, DownCast(iface, impl), nil)
	}
}

func (sb *SchemaGraphBuilder) addUnion(index int, u schema.UnionType) {
	for _, member := range u.Types() {
		memberIndex := sb.addTypeRecursively(member)
		sb.builder.AddEdge(index, memberIndex, DownCast(u, member), nil)
	}
}

func (sb *SchemaGraphBuilder) inFederatedSubgraphMode() bool {
	return sb.supergraph != nil && sb.schema.IsFederationSubgraph()
}

// addInterfaceFieldShortcuts adds a direct FieldCollection edge from
// the interface vertex to a field's base-type vertex when every
// runtime implementation known to both the supergraph and this
// subgraph directly provides that field: declares it, does not mark
// it @external, and does not require other fields to resolve it. This
// avoids unnecessary type explosion in downstream query planning. If
// the interface is absent from the supergraph, or has no known
// implementations, no shortcut edges are added.
func (sb *SchemaGraphBuilder) addInterfaceFieldShortcuts(index int, iface schema.InterfaceType) {
	supergraphType := sb.supergraph.Type(iface.TypeName())
	supergraphIface, ok := supergraphType.(schema.InterfaceType)
	if !ok {
		return
	}

	local := make(map[string]schema.ObjectType, len(iface.PossibleRuntimeTypes()))
	for _, t := range iface.PossibleRuntimeTypes() {
		local[t.TypeName()] = t
	}

	var implementations []schema.ObjectType
	for _, t := range supergraphIface.PossibleRuntimeTypes() {
		if impl, ok := local[t.TypeName()]; ok {
			implementations = append(implementations, impl)
		}
	}
	if len(implementations) == 0 {
		return
	}

	for _, f := range iface.AllFields() {
		if f.IsExternal() {
			continue
		}
		if !allDirectlyProvide(implementations, f.Name()) {
			continue
		}
		fieldIndex := sb.addTypeRecursively(f.BaseType())
		sb.builder.AddEdge(index, fieldIndex, FieldCollection(f), nil)
	}
}

func allDirectlyProvide(implementations []schema.ObjectType, fieldName string) bool {
	for _, t := range implementations {
		f, ok := t.FieldByName(fieldName)
		if !ok {
			return false
		}
		if f.IsExternal() {
			return false
		}
		if f.HasAppliedDirective(schema.RequiresDirectiveName) {
			return false
		}
	}
	return true
}

// buildSubgraphQueryGraph builds and freezes a query graph for a
// single schema, attributing its vertices to source and, when
// supergraph is non-nil, enabling interface-field shortcuts.
func buildSubgraphQueryGraph(name string, sch schema.Schema, source string, supergraph schema.Schema) *QueryGraph {
	sb := NewSchemaGraphBuilder(sch, source, supergraph)
	for _, root := range sch.Roots() {
		sb.AddRecursivelyFromRoot(root.Kind, root.Type)
	}
	return sb.builder.Build(name)
}

// BuildQueryGraph builds a query graph from a single schema, with no
// supergraph context (so no interface-field shortcuts are attempted).
func BuildQueryGraph(name string, sch schema.Schema) (g *QueryGraph, err error) {
	defer recoverInvariant(&err)
	g = buildSubgraphQueryGraph(name, sch, name, nil)
	return g, nil
}

// BuildSupergraphAPIQueryGraph builds the query graph for a composed
// supergraph's own API schema: a single-source graph with no
// conditions and no KeyResolution edges.
func BuildSupergraphAPIQueryGraph(sch schema.Schema) (g *QueryGraph, err error) {
	defer recoverInvariant(&err)
	g = buildSubgraphQueryGraph("supergraph-api", sch, APISourceName, nil)
	return g, nil
}
