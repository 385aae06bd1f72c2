// Command querygraphdemo loads a GraphQL SDL file, builds a query graph
// from it, and prints either a summary or a Graphviz DOT export.
//
// Usage:
//
//	querygraphdemo -schema schema.graphql [-federated] [-dot] [-name demo]
//
// With -federated, schema.graphql is treated as a composed supergraph
// carrying a join__Graph enum (see schema/gqlgraph's package doc), and
// a federated query graph is built across its constituent subgraphs.
// Without it, the file is treated as a single schema and a plain
// supergraph-API query graph is built.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/reveald/federation-querygraph/querygraph"
	"github.com/reveald/federation-querygraph/querygraphviz"
	"github.com/reveald/federation-querygraph/schema/gqlgraph"
)

func main() {
	// A .env file, if present, supplies defaults for flags left unset
	// on the command line (e.g. QUERYGRAPHDEMO_SCHEMA). Its absence is
	// not an error: most invocations pass flags directly.
	_ = godotenv.Load()

	schemaPath := flag.String("schema", envDefault("QUERYGRAPHDEMO_SCHEMA", ""), "path to a .graphql SDL file")
	graphName := flag.String("name", envDefault("QUERYGRAPHDEMO_NAME", "demo"), "name to give the built query graph (ignored with -federated, whose graph is always named \"federated\")")
	federated := flag.Bool("federated", false, "treat -schema as a composed supergraph and build a federated query graph")
	dot := flag.Bool("dot", false, "print a Graphviz DOT export instead of a summary")
	flag.Parse()

	if *schemaPath == "" {
		log.Fatalf("querygraphdemo: -schema is required")
	}

	sdl, err := os.ReadFile(*schemaPath)
	if err != nil {
		log.Fatalf("querygraphdemo: read schema: %v", err)
	}

	doc, err := gqlgraph.ParseSDL(string(sdl))
	if err != nil {
		log.Fatalf("querygraphdemo: parse schema: %v", err)
	}

	g, err := buildGraph(doc, *graphName, *federated)
	if err != nil {
		log.Fatalf("querygraphdemo: build graph: %v", err)
	}

	if *dot {
		fmt.Print(querygraphviz.ExportDOT(g))
		return
	}
	printSummary(g)
}

func buildGraph(doc *gqlgraph.Document, name string, federated bool) (*querygraph.QueryGraph, error) {
	if !federated {
		return querygraph.BuildQueryGraph(name, doc)
	}
	return querygraph.BuildFederatedQueryGraph(doc, gqlgraph.SubgraphExtractor{})
}

func printSummary(g *querygraph.QueryGraph) {
	fmt.Printf("graph %q: %d vertices, %d edges\n", g.Name(), g.VerticesCount(), g.EdgesCount())

	for _, root := range g.Roots() {
		fmt.Printf("  root %s -> %s (source %s)\n", root.RootKind(), root.Type().TypeName(), root.Source())
	}

	for source, sch := range g.Sources() {
		if sch == nil {
			// The synthetic federated-root source has no backing schema.
			continue
		}
		roots := sch.Roots()
		fmt.Printf("  source %q: %d declared root(s)\n", source, len(roots))
	}

	fmt.Println("vertices:")
	for i := 0; i < g.VerticesCount(); i++ {
		v := g.Vertex(i)
		fmt.Printf("  [%d] %s (%s)\n", v.Index(), v.Type().TypeName(), v.Source())
		for _, e := range g.OutEdges(i) {
			fmt.Printf("      -> [%d] %s\n", e.Tail(), edgeDescription(e))
		}
	}
}

func edgeDescription(e querygraph.Edge) string {
	if label := e.Label(); label != "" {
		return label
	}
	return "(free)"
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
