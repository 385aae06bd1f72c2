package gqlgraph

import (
	"fmt"

	"github.com/graphql-go/graphql/language/ast"

	"github.com/reveald/federation-querygraph/schema"
)

// JoinGraphEnumName is the name of the enum a composed supergraph is
// expected to declare, one value per constituent subgraph. This
// mirrors (a deliberately reduced subset of) Apollo Federation's
// `join` specification.
const JoinGraphEnumName = "join__Graph"

const (
	joinTypeDirectiveName  = "join__type"
	joinFieldDirectiveName = "join__field"
	joinGraphDirectiveName = "join__graph"
)

// SubgraphExtractor implements schema.SubgraphExtractor by reading the
// join__Graph enum and @join__type/@join__field directives of a
// supergraph produced by ParseSDL.
type SubgraphExtractor struct{}

// ExtractSubgraphs implements schema.SubgraphExtractor.
func (SubgraphExtractor) ExtractSubgraphs(supergraph schema.Schema) ([]schema.Subgraph, error) {
	return ExtractSubgraphsFromSupergraph(supergraph)
}

// ExtractSubgraphsFromSupergraph partitions a supergraph produced by
// ParseSDL into one schema.Schema per subgraph named by its
// join__Graph enum. See Document's package doc for the directives
// this depends on.
func ExtractSubgraphsFromSupergraph(supergraph schema.Schema) ([]schema.Subgraph, error) {
	doc, ok := supergraph.(*Document)
	if !ok {
		return nil, fmt.Errorf("gqlgraph: supergraph must be produced by gqlgraph.ParseSDL")
	}

	enumNode, ok := doc.defs[JoinGraphEnumName]
	if !ok {
		return nil, fmt.Errorf("gqlgraph: supergraph is missing the %s enum required to extract subgraphs", JoinGraphEnumName)
	}
	enumDef, ok := enumNode.(*ast.EnumDefinition)
	if !ok {
		return nil, fmt.Errorf("gqlgraph: %s is not an enum", JoinGraphEnumName)
	}

	subgraphs := make([]schema.Subgraph, 0, len(enumDef.Values))
	for _, value := range enumDef.Values {
		graphKey := value.Name.Value
		name := graphKey
		for _, dir := range value.Directives {
			if dir.Name.Value != joinGraphDirectiveName {
				continue
			}
			for _, arg := range dir.Arguments {
				if arg.Name.Value == "name" {
					if sv, ok := arg.Value.(*ast.StringValue); ok && sv.Value != "" {
						name = sv.Value
					}
				}
			}
		}
		subgraphs = append(subgraphs, schema.Subgraph{
			Name:   name,
			Schema: &subgraphView{supergraph: doc, graphKey: graphKey},
		})
	}
	return subgraphs, nil
}
