// Package graph exposes the resolver layer as a GraphQL schema.
package graph

import (
	_ "embed"

	graphql "github.com/graph-gophers/graphql-go"

	"trip-gateway/internal/resolver"
)

//go:embed schema.graphql
var SchemaSDL string

// NewSchema parses the SDL against the root resolver. Every request must carry
// a *resolver.Scope in its context (see resolver.NewContext).
func NewSchema(r *resolver.Resolver) (*graphql.Schema, error) {
	return graphql.ParseSchema(SchemaSDL, &Root{r: r})
}
