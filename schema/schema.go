// Package schema declares the abstract GraphQL schema contract that the
// querygraph package builds against. Nothing in this package knows how
// to parse or validate a schema; that is the job of a concrete adapter
// such as schema/gqlgraph. Keeping the contract as interfaces lets the
// query graph core stay agnostic of any particular GraphQL library.
package schema

// RootKind identifies one of the three top-level GraphQL operation types.
type RootKind string

const (
	Query        RootKind = "query"
	Mutation     RootKind = "mutation"
	Subscription RootKind = "subscription"
)

// Root pairs a root operation kind with the object type that answers it.
type Root struct {
	Kind RootKind
	Type ObjectType
}

// Schema is a GraphQL schema: a set of named types plus zero or more
// root operations. Implementations are expected to be immutable once
// constructed.
type Schema interface {
	// Roots returns every root operation this schema declares, in a
	// stable, deterministic order.
	Roots() []Root

	// Type looks up a named type by name. It returns nil if the schema
	// has no type with that name.
	Type(name string) NamedType

	// IsFederationSubgraph reports whether this schema declares itself
	// as a federation subgraph (e.g. via a `@link` to the federation
	// specification).
	IsFederationSubgraph() bool
}

// NamedType is the common contract shared by every kind of GraphQL
// named type (object, interface, union, scalar, enum, input object).
type NamedType interface {
	TypeName() string

	IsObject() bool
	IsInterface() bool
	IsUnion() bool
	IsScalar() bool
	IsEnum() bool
	IsInput() bool

	// IsComposite reports whether a selection set may be applied to
	// this type, i.e. whether it is an object, interface, or union.
	IsComposite() bool

	HasAppliedDirective(name string) bool
	AppliedDirectives(name string) []AppliedDirective
}

// FieldsContainer is implemented by named types that declare fields
// directly: object and interface types.
type FieldsContainer interface {
	NamedType

	// AllFields returns every field declared on the type, in
	// declaration order, including built-ins such as __typename.
	AllFields() []Field

	// FieldByName looks up a single declared field.
	FieldByName(name string) (Field, bool)
}

// ObjectType is a concrete GraphQL object type.
type ObjectType interface {
	FieldsContainer
}

// InterfaceType is a GraphQL interface type.
type InterfaceType interface {
	FieldsContainer

	// PossibleRuntimeTypes returns every object type known to
	// implement this interface, in declaration order.
	PossibleRuntimeTypes() []ObjectType
}

// UnionType is a GraphQL union type.
type UnionType interface {
	NamedType

	// Types returns the member object types, in declaration order.
	Types() []ObjectType
}
