package gqlgraph_test

import (
	"testing"

	"github.com/reveald/federation-querygraph/schema"
	"github.com/reveald/federation-querygraph/schema/gqlgraph"
)

const supergraphSDL = `
enum join__Graph {
	USERS @join__graph(name: "users")
	REVIEWS @join__graph(name: "reviews")
}

type Query {
	users: [User] @join__field(graph: USERS)
	reviews: [Review] @join__field(graph: REVIEWS)
}

type User
	@join__type(graph: USERS, key: "id")
	@join__type(graph: REVIEWS, key: "id", extension: true)
{
	id: ID!
	name: String @join__field(graph: USERS)
	reviews: [Review] @join__field(graph: REVIEWS)
}

type Review @join__type(graph: REVIEWS, key: "id") {
	id: ID!
	body: String
	author: User @join__field(graph: REVIEWS, provides: "name")
}
`

func mustExtractSubgraphs(t *testing.T, sdl string) (map[string]schema.Schema, *gqlgraph.Document) {
	t.Helper()
	doc, err := gqlgraph.ParseSDL(sdl)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	subgraphs, err := gqlgraph.ExtractSubgraphsFromSupergraph(doc)
	if err != nil {
		t.Fatalf("unexpected extraction error: %v", err)
	}
	byName := map[string]schema.Schema{}
	for _, s := range subgraphs {
		byName[s.Name] = s.Schema
	}
	return byName, doc
}

func TestExtractSubgraphsFromSupergraph_Names(t *testing.T) {
	byName, _ := mustExtractSubgraphs(t, supergraphSDL)
	if len(byName) != 2 {
		t.Fatalf("expected 2 subgraphs, got %d", len(byName))
	}
	if _, ok := byName["users"]; !ok {
		t.Fatalf("expected a 'users' subgraph named from @join__graph")
	}
	if _, ok := byName["reviews"]; !ok {
		t.Fatalf("expected a 'reviews' subgraph named from @join__graph")
	}
	for name, s := range byName {
		if !s.IsFederationSubgraph() {
			t.Fatalf("expected subgraph %s to report itself as a federation subgraph", name)
		}
	}
}

func TestExtractSubgraphsFromSupergraph_TypeOwnership(t *testing.T) {
	byName, _ := mustExtractSubgraphs(t, supergraphSDL)
	users, reviews := byName["users"], byName["reviews"]

	if users.Type("Review") != nil {
		t.Fatalf("expected Review, owned only by REVIEWS, to be invisible to the users subgraph")
	}
	if reviews.Type("Review") == nil {
		t.Fatalf("expected Review to be visible to the reviews subgraph")
	}

	if users.Type("User") == nil || reviews.Type("User") == nil {
		t.Fatalf("expected User, joined to both graphs, to be visible in both subgraphs")
	}
}

func TestExtractSubgraphsFromSupergraph_FieldOwnership(t *testing.T) {
	byName, _ := mustExtractSubgraphs(t, supergraphSDL)
	users, reviews := byName["users"], byName["reviews"]

	usersUser := users.Type("User").(schema.ObjectType)
	reviewsUser := reviews.Type("User").(schema.ObjectType)

	if _, ok := usersUser.FieldByName("name"); !ok {
		t.Fatalf("expected 'name' to be owned by the users subgraph")
	}
	if _, ok := reviewsUser.FieldByName("name"); ok {
		t.Fatalf("expected 'name' to NOT be visible from the reviews subgraph's view of User")
	}
	if _, ok := usersUser.FieldByName("id"); !ok {
		t.Fatalf("expected 'id', unowned by any @join__field, to be shared and visible from users")
	}
	if _, ok := reviewsUser.FieldByName("id"); !ok {
		t.Fatalf("expected 'id' to likewise be visible from reviews")
	}
}

func TestExtractSubgraphsFromSupergraph_KeySynthesis(t *testing.T) {
	byName, _ := mustExtractSubgraphs(t, supergraphSDL)
	reviews := byName["reviews"]

	review := reviews.Type("Review").(schema.ObjectType)
	keys := review.AppliedDirectives(schema.KeyDirectiveName)
	if len(keys) != 1 {
		t.Fatalf("expected exactly one synthesized @key directive, got %d", len(keys))
	}
	if keys[0].StringArg("fields") != "id" {
		t.Fatalf("expected the synthesized @key to carry fields 'id', got %q", keys[0].StringArg("fields"))
	}
	if !keys[0].BoolArg("resolvable", false) {
		t.Fatalf("expected the synthesized @key to default resolvable to true")
	}
}

func TestExtractSubgraphsFromSupergraph_ProvidesSynthesis(t *testing.T) {
	byName, _ := mustExtractSubgraphs(t, supergraphSDL)
	reviews := byName["reviews"]

	review := reviews.Type("Review").(schema.ObjectType)
	author, ok := review.FieldByName("author")
	if !ok {
		t.Fatalf("expected an 'author' field on Review")
	}
	provides := author.AppliedDirectives(schema.ProvidesDirectiveName)
	if len(provides) != 1 || provides[0].StringArg("fields") != "name" {
		t.Fatalf("expected a synthesized @provides(fields: \"name\") on Review.author, got %+v", provides)
	}
}

func TestExtractSubgraphsFromSupergraph_RootsFilteredPerView(t *testing.T) {
	byName, _ := mustExtractSubgraphs(t, supergraphSDL)
	users, reviews := byName["users"], byName["reviews"]

	usersQuery := users.Type("Query").(schema.ObjectType)
	if _, ok := usersQuery.FieldByName("users"); !ok {
		t.Fatalf("expected Query.users to be visible from the users subgraph")
	}
	if _, ok := usersQuery.FieldByName("reviews"); ok {
		t.Fatalf("expected Query.reviews to be invisible from the users subgraph")
	}

	reviewsQuery := reviews.Type("Query").(schema.ObjectType)
	if _, ok := reviewsQuery.FieldByName("reviews"); !ok {
		t.Fatalf("expected Query.reviews to be visible from the reviews subgraph")
	}
}

func TestExtractSubgraphsFromSupergraph_MissingEnumIsAnError(t *testing.T) {
	doc, err := gqlgraph.ParseSDL(`type Query { a: Int }`)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if _, err := gqlgraph.ExtractSubgraphsFromSupergraph(doc); err == nil {
		t.Fatalf("expected an error when the supergraph lacks a join__Graph enum")
	}
}

func TestExtractSubgraphsFromSupergraph_RequiresNonGqlgraphSchemaIsAnError(t *testing.T) {
	if _, err := gqlgraph.ExtractSubgraphsFromSupergraph(notAGqlgraphSchema{}); err == nil {
		t.Fatalf("expected an error when the supergraph was not produced by gqlgraph.ParseSDL")
	}
}

type notAGqlgraphSchema struct{}

func (notAGqlgraphSchema) Roots() []schema.Root              { return nil }
func (notAGqlgraphSchema) Type(name string) schema.NamedType { return nil }
func (notAGqlgraphSchema) IsFederationSubgraph() bool        { return false }
