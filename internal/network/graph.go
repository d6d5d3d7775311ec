// Package network builds the directed component graph from a parsed
// model definition and its connections, computes the execution order of
// the strong-edge subgraph, and drives pre-step data transfer. Grounded
// on the teacher's device/station wiring in internal/app/app.go, adapted
// from "start every configured weather station" to "resolve every
// component's upstream edges and order the steps that depend on them".
package network

import (
	"fmt"

	"github.com/basinsim/basinsim/internal/model"
	"github.com/basinsim/basinsim/internal/simerrors"
	"github.com/basinsim/basinsim/pkg/modeldef"
)

// Edge is one resolved connection: a source component's named output
// feeding a destination component's named input. IsFeedback is true iff
// the destination component is a lagged-value node.
type Edge struct {
	FromComponent string
	FromOutput    string
	ToComponent   string
	ToInput       string
	IsFeedback    bool
}

// Graph is the resolved component set plus its edges.
type Graph struct {
	Components map[string]model.Component
	Edges      []Edge
}

// Build resolves every connection against the component set, failing
// fast on a reference to an undefined component. Every edge whose
// target is a lagged-value component is marked as feedback.
func Build(components map[string]model.Component, connections []modeldef.ConnectionDefinition) (*Graph, error) {
	g := &Graph{Components: components}

	for _, c := range connections {
		if _, ok := components[c.FromComponent]; !ok {
			return nil, &simerrors.ReferenceError{
				From:      fmt.Sprintf("%s.%s", c.FromComponent, c.FromOutput),
				Reference: c.FromComponent,
				Reason:    "connection names an undefined source component",
			}
		}
		to, ok := components[c.ToComponent]
		if !ok {
			return nil, &simerrors.ReferenceError{
				From:      fmt.Sprintf("%s.%s", c.ToComponent, c.ToInput),
				Reference: c.ToComponent,
				Reason:    "connection names an undefined destination component",
			}
		}

		g.Edges = append(g.Edges, Edge{
			FromComponent: c.FromComponent,
			FromOutput:    c.FromOutput,
			ToComponent:   c.ToComponent,
			ToInput:       c.ToInput,
			IsFeedback:    to.Kind() == model.KindLaggedValue,
		})
	}

	return g, nil
}

// StrongEdges returns every non-feedback edge.
func (g *Graph) StrongEdges() []Edge {
	var strong []Edge
	for _, e := range g.Edges {
		if !e.IsFeedback {
			strong = append(strong, e)
		}
	}
	return strong
}

// EdgesInto returns every edge (strong or feedback) targeting component.
func (g *Graph) EdgesInto(component string) []Edge {
	var in []Edge
	for _, e := range g.Edges {
		if e.ToComponent == component {
			in = append(in, e)
		}
	}
	return in
}
