package schema

// WrapKind discriminates the three shapes a GraphQL type reference can
// take: a bare named type, or a modifier (list, non-null) around
// another type reference.
type WrapKind int

const (
	WrapNamed WrapKind = iota
	WrapList
	WrapNonNull
)

// TypeRef is a GraphQL type reference, preserving list/non-null
// wrapping around a named type. It is the wire-level counterpart of
// NamedType, which is always the fully unwrapped base type.
type TypeRef struct {
	Kind WrapKind

	// Name is set only when Kind == WrapNamed.
	Name string

	// OfType is set only when Kind is WrapList or WrapNonNull.
	OfType *TypeRef
}

// BaseName returns the name of the innermost named type, unwrapping
// any list/non-null modifiers.
func (t TypeRef) BaseName() string {
	for t.Kind != WrapNamed {
		t = *t.OfType
	}
	return t.Name
}

// Field is a single field declaration on an object or interface type.
type Field interface {
	Name() string

	// ParentTypeName is the name of the type this field is declared on.
	ParentTypeName() string

	// Type is the field's full wire type, including list/non-null
	// wrapping.
	Type() TypeRef

	// BaseType is Type() stripped of all wrapping, resolved against
	// the owning schema.
	BaseType() NamedType

	HasAppliedDirective(name string) bool
	AppliedDirectives(name string) []AppliedDirective

	// IsExternal reports whether the field carries @external.
	IsExternal() bool
}

// IsStructuralFieldSubtype reports whether field a may stand in for
// field b wherever b is expected: same field name, and a's wire type
// is a structural subtype of b's wire type under ordinary GraphQL
// field covariance (a non-null type is a subtype of its nullable
// counterpart; a list is a subtype of another list iff its element
// type is a subtype of the other's).
//
// The relation is not symmetric: callers needing a symmetric check
// call this function twice, once in each direction.
func IsStructuralFieldSubtype(a, b Field) bool {
	if a.Name() != b.Name() {
		return false
	}
	return isTypeRefSubtype(a.Type(), b.Type())
}

func isTypeRefSubtype(a, b TypeRef) bool {
	// A non-null type is a subtype of its own inner type.
	if a.Kind == WrapNonNull && b.Kind != WrapNonNull {
		return isTypeRefSubtype(*a.OfType, b)
	}
	if a.Kind == WrapNonNull && b.Kind == WrapNonNull {
		return isTypeRefSubtype(*a.OfType, *b.OfType)
	}
	if b.Kind == WrapNonNull {
		// a is nullable (or equal-wrapped) but b demands non-null: a
		// cannot satisfy b's guarantee.
		return false
	}
	if a.Kind == WrapList && b.Kind == WrapList {
		return isTypeRefSubtype(*a.OfType, *b.OfType)
	}
	if a.Kind == WrapList || b.Kind == WrapList {
		return false
	}
	return a.Name == b.Name
}
