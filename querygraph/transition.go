// Package querygraph builds and traverses the query graph: an
// immutable, indexed multigraph layered over one or more GraphQL
// schemas, whose vertices are (type, subgraph) positions and whose
// edges are the moves a query planner may take between them.
package querygraph

import (
	"fmt"

	"github.com/reveald/federation-querygraph/schema"
)

// TransitionKind discriminates the Transition tagged union.
type TransitionKind int

const (
	// FieldCollectionTransition steps from an owner type to a field's
	// base type by selecting that field.
	FieldCollectionTransition TransitionKind = iota
	// DownCastTransition narrows from an interface/union position to
	// an implementation or member type.
	DownCastTransition
	// KeyResolutionTransition is a cross-subgraph jump via an entity
	// key; its edge's conditions carry the key fields.
	KeyResolutionTransition
	// FreeTransitionKind is an unconditional synthetic step, e.g. a
	// federated root to a per-subgraph root.
	FreeTransitionKind
)

func (k TransitionKind) String() string {
	switch k {
	case FieldCollectionTransition:
		return "FieldCollection"
	case DownCastTransition:
		return "DownCast"
	case KeyResolutionTransition:
		return "KeyResolution"
	case FreeTransitionKind:
		return "FreeTransition"
	default:
		return "Unknown"
	}
}

// Transition labels an edge with the semantic of the step it
// represents. Exactly one of the per-variant fields is meaningful,
// selected by Kind.
type Transition struct {
	Kind TransitionKind

	// Field is set when Kind == FieldCollectionTransition.
	Field schema.Field

	// FromType/ToType are set when Kind == DownCastTransition.
	FromType schema.NamedType
	ToType   schema.NamedType
}

// FieldCollection builds a Transition stepping through field f.
func FieldCollection(f schema.Field) Transition {
	return Transition{Kind: FieldCollectionTransition, Field: f}
}

// DownCast builds a Transition narrowing from to to.
func DownCast(from, to schema.NamedType) Transition {
	return Transition{Kind: DownCastTransition, FromType: from, ToType: to}
}

// KeyResolution builds a Transition representing a cross-subgraph
// entity-key jump.
func KeyResolution() Transition {
	return Transition{Kind: KeyResolutionTransition}
}

// FreeTransition builds an unconditional synthetic-step Transition.
func FreeTransition() Transition {
	return Transition{Kind: FreeTransitionKind}
}

// String renders a short human-readable label for the transition.
func (t Transition) String() string {
	switch t.Kind {
	case FieldCollectionTransition:
		return fmt.Sprintf("field %s", t.Field.Name())
	case DownCastTransition:
		return fmt.Sprintf("cast to %s", t.ToType.TypeName())
	case KeyResolutionTransition:
		return "key"
	case FreeTransitionKind:
		return ""
	default:
		return "?"
	}
}

// matchesTransition reports whether a and b are the same kind of step
// under the matching rules two edges' transitions must satisfy to be
// considered compatible by downstream consumers. It is not symmetric:
// structural field subtyping is directional.
func matchesTransition(a, b Transition) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case FieldCollectionTransition:
		return schema.IsStructuralFieldSubtype(a.Field, b.Field)
	case DownCastTransition:
		return a.ToType.TypeName() == b.ToType.TypeName()
	default:
		return true
	}
}

// MatchesTransition is the exported form of matchesTransition, used by
// downstream consumers of a built graph.
func MatchesTransition(a, b Transition) bool {
	return matchesTransition(a, b)
}
