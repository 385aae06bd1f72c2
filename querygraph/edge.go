package querygraph

import (
	"fmt"

	"github.com/reveald/federation-querygraph/schema"
)

// Edge is a directed head -> tail link labelled with a Transition, an
// optional condition selection set, and an index local to head's
// adjacency list.
type Edge struct {
	head       int
	tail       int
	transition Transition
	conditions schema.SelectionSet
	index      int
}

// Head returns the vertex index this edge originates from.
func (e Edge) Head() int { return e.head }

// Tail returns the vertex index this edge leads to.
func (e Edge) Tail() int { return e.tail }

// Transition returns the step this edge represents.
func (e Edge) Transition() Transition { return e.transition }

// Conditions returns the edge's condition selection set, or nil if it
// carries none.
func (e Edge) Conditions() schema.SelectionSet { return e.conditions }

// Index returns this edge's position within head's adjacency list.
func (e Edge) Index() int { return e.index }

// isEdgeForField reports whether e is a FieldCollection transition
// selecting the field named name.
func (e Edge) isEdgeForField(name string) bool {
	return e.transition.Kind == FieldCollectionTransition && e.transition.Field.Name() == name
}

// IsEdgeForField is the exported form of isEdgeForField.
func (e Edge) IsEdgeForField(name string) bool { return e.isEdgeForField(name) }

// label renders "<conditions> |- <transition>", or "" for a plain
// free transition with no conditions.
func (e Edge) label() string {
	transitionLabel := e.transition.String()
	if e.conditions == nil || e.conditions.IsEmpty() {
		if transitionLabel == "" {
			return ""
		}
		return transitionLabel
	}
	return fmt.Sprintf("%s |- %s", e.conditions.String(), transitionLabel)
}

// Label is the exported form of label.
func (e Edge) Label() string { return e.label() }

// addToConditions merges sel into e's existing conditions, used only
// during building (by FederatedGraphBuilder's @requires step).
func (e *Edge) addToConditions(sel schema.SelectionSet) {
	if sel == nil {
		return
	}
	if e.conditions == nil {
		e.conditions = sel
		return
	}
	e.conditions = e.conditions.MergeIn(sel)
}
