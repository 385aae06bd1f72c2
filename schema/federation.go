package schema

// Subgraph is one constituent schema of a federated supergraph.
type Subgraph struct {
	Name   string
	Schema Schema
}

// SubgraphExtractor recovers the constituent subgraph schemas from a
// composed supergraph schema. The mechanics of composition (join
// specs, `@join__type`/`@join__field`, or anything else a particular
// federation implementation uses) are entirely up to the concrete
// adapter; the query graph core only ever calls this interface.
type SubgraphExtractor interface {
	ExtractSubgraphs(supergraph Schema) ([]Subgraph, error)
}

// Parser turns a field-set string (as carried by `@key(fields: ...)`,
// `@requires(fields: ...)`, and `@provides(fields: ...)`) into a
// SelectionSet rooted at parentType.
type Parser interface {
	ParseSelectionSet(parentType NamedType, fieldsString string) (SelectionSet, error)
}
