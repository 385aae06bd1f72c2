package schema

// SelectionKind discriminates the two selection variants this package
// models: a field selection and an inline fragment. Fragment spreads
// are intentionally unsupported — federation field sets never use
// named fragments.
type SelectionKind int

const (
	FieldSelectionKind SelectionKind = iota
	InlineFragmentSelectionKind
)

// Selection is one entry of a SelectionSet.
type Selection interface {
	Kind() SelectionKind
}

// FieldSelection selects a single field, optionally with a nested
// selection set when the field's type is composite.
type FieldSelection interface {
	Selection
	FieldName() string
	SubSelection() (SelectionSet, bool)
}

// InlineFragmentSelection narrows to a type condition before applying
// its nested selection set.
type InlineFragmentSelection interface {
	Selection
	// TypeCondition returns the fragment's type condition and true, or
	// ("", false) for a conditionless inline fragment.
	TypeCondition() (string, bool)
	ParentTypeName() string
	SubSelection() SelectionSet
}

// SelectionSet is a GraphQL selection set rooted at a composite type.
// Instances are treated as mutable only through MergeIn, which is used
// exclusively during graph construction (§4.1: Edge.addToConditions).
type SelectionSet interface {
	ParentTypeName() string
	Selections() []Selection
	IsEmpty() bool

	// MergeIn merges other's selections into the receiver, returning
	// the merged result. The merge is non-destructive at the call site
	// (it is legal, but not required, for an implementation to mutate
	// and return the receiver).
	MergeIn(other SelectionSet) SelectionSet

	// String renders the selection set using GraphQL syntax, e.g.
	// "{ id name }".
	String() string
}
