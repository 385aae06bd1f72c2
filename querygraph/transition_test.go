package querygraph_test

import (
	"testing"

	"github.com/reveald/federation-querygraph/querygraph"
	"github.com/reveald/federation-querygraph/schema"
)

func nonNull(ref schema.TypeRef) schema.TypeRef {
	return schema.TypeRef{Kind: schema.WrapNonNull, OfType: &ref}
}

func TestMatchesTransition(t *testing.T) {
	stringType := scalarType("String")

	t.Run("field collection matches a structural subtype", func(t *testing.T) {
		a := field("name", "T", stringType)
		b := field("name", "T", stringType)

		// a's wire type is String!, a subtype of b's String.
		wrapped := &wrappedField{fakeField: a, typeRef: nonNull(a.Type())}
		if !querygraph.MatchesTransition(querygraph.FieldCollection(wrapped), querygraph.FieldCollection(b)) {
			t.Fatalf("expected non-null field to match its nullable counterpart")
		}
	})

	t.Run("field collection rejects mismatched names", func(t *testing.T) {
		a := field("name", "T", stringType)
		b := field("title", "T", stringType)
		if querygraph.MatchesTransition(querygraph.FieldCollection(a), querygraph.FieldCollection(b)) {
			t.Fatalf("expected mismatched field names to never match")
		}
	})

	t.Run("field collection is not symmetric", func(t *testing.T) {
		a := field("name", "T", stringType)
		wrapped := &wrappedField{fakeField: a, typeRef: nonNull(a.Type())}
		b := field("name", "T", stringType)

		if querygraph.MatchesTransition(querygraph.FieldCollection(b), querygraph.FieldCollection(wrapped)) {
			t.Fatalf("expected nullable field to not match as a subtype of its non-null counterpart")
		}
	})

	t.Run("downcast matches on target type name only", func(t *testing.T) {
		iface := interfaceType("Node", nil)
		a := objectType("Foo")
		b := objectType("Foo")
		if !querygraph.MatchesTransition(querygraph.DownCast(iface, a), querygraph.DownCast(iface, b)) {
			t.Fatalf("expected downcasts to the same type name to match")
		}
	})

	t.Run("downcast rejects different target types", func(t *testing.T) {
		iface := interfaceType("Node", nil)
		a := objectType("Foo")
		b := objectType("Bar")
		if querygraph.MatchesTransition(querygraph.DownCast(iface, a), querygraph.DownCast(iface, b)) {
			t.Fatalf("expected downcasts to different type names to not match")
		}
	})

	t.Run("key resolution and free transitions match by kind alone", func(t *testing.T) {
		if !querygraph.MatchesTransition(querygraph.KeyResolution(), querygraph.KeyResolution()) {
			t.Fatalf("expected two key resolutions to match")
		}
		if !querygraph.MatchesTransition(querygraph.FreeTransition(), querygraph.FreeTransition()) {
			t.Fatalf("expected two free transitions to match")
		}
	})

	t.Run("different kinds never match", func(t *testing.T) {
		if querygraph.MatchesTransition(querygraph.KeyResolution(), querygraph.FreeTransition()) {
			t.Fatalf("expected different transition kinds to never match")
		}
	})
}

// wrappedField overrides Type() with an explicit TypeRef, letting tests
// exercise structural subtyping without a real SDL field.
type wrappedField struct {
	*fakeField
	typeRef schema.TypeRef
}

func (w *wrappedField) Type() schema.TypeRef { return w.typeRef }
