// Package gqlgraph adapts github.com/graphql-go/graphql's SDL parser
// (language/parser, language/ast) into the schema.Schema contract
// consumed by the querygraph package. It is the concrete realization
// of the "schema library" the specification treats as an external
// collaborator.
//
// Schemas are built from SDL text rather than from graphql-go's
// programmatic NewObject/NewSchema builders, because directive
// applications — the thing this whole package exists to expose — are
// only preserved on the AST produced by the parser; the programmatic
// type builders have no concept of an applied directive at all.
//
// ExtractSubgraphsFromSupergraph splits a composed supergraph along a
// reduced form of the join convention: a join__Graph enum with one
// value per subgraph (optionally renamed by @join__graph(name: ...)),
// @join__type(graph: ..., key: ...) on types, and @join__field(graph:
// ..., requires: ..., provides: ..., external: ...) on fields. A type
// or field with no join directive is shared by every subgraph. @key,
// @requires, @provides and @external written directly on a definition
// take precedence over the ones derived from the join arguments.
package gqlgraph
