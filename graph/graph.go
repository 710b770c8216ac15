// Package graph projects entities into a property graph. Entities of
// ordinary schemata become nodes; entities of edge schemata (such as
// Ownership) and entity-typed property values become edges between nodes.
// The result maps onto graph stores and visualisation tools like Neo4j or
// Gephi.
package graph

import (
	"sort"
	"strings"

	"github.com/go-openapi/inflect"

	ftm "github.com/arp242/followthemoney"
)

// Node is a graph node derived from a non-edge entity.
type Node struct {
	// ID of the underlying entity.
	ID string
	// Caption is the display title of the node.
	Caption string
	// Schema of the underlying entity.
	Schema *ftm.Schema
}

// Edge is a directed or undirected link between two nodes. It is derived
// either from an entity of an edge schema, or from an entity-typed property
// value.
type Edge struct {
	// ID identifies the edge; for entity-derived edges it is the entity
	// ID, for property-derived edges it combines entity ID and property.
	ID string
	// SourceID and TargetID reference the linked nodes.
	SourceID string
	TargetID string
	// Type is the upper-snake-case relationship type, e.g. OWNERSHIP or
	// OWNERSHIP_OWNER.
	Type string
	// Label is the display label of the relationship.
	Label string
	// Caption is an optional display annotation, e.g. an ownership
	// percentage.
	Caption string
	// Directed reports whether the edge has a meaningful direction.
	Directed bool
}

// TypeName converts a schema or property name into a relationship type name:
// Ownership becomes OWNERSHIP, ownershipOwner becomes OWNERSHIP_OWNER.
func TypeName(name string) string {
	return strings.ToUpper(inflect.Underscore(name))
}

// Graph accumulates nodes and edges from a stream of entities.
type Graph struct {
	nodes map[string]*Node
	edges map[string]*Edge
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		edges: make(map[string]*Edge),
	}
}

// AddEntity projects one entity into the graph. Entities of edge schemata
// become edges between the values of the schema's source and target
// properties; all other entities become a node, plus one edge per
// entity-typed property value.
func (g *Graph) AddEntity(e *ftm.EntityProxy) error {
	if e.ID == "" {
		return ftm.NewModelError(e.Schema.Name, "", "entity has no ID")
	}
	if e.Schema.IsEdge() {
		return g.addEdgeEntity(e)
	}
	g.nodes[e.ID] = &Node{
		ID:      e.ID,
		Caption: e.Caption(),
		Schema:  e.Schema,
	}
	for name, prop := range e.Schema.Properties {
		if !prop.Type.IsEntity() {
			continue
		}
		for _, value := range e.Get(name) {
			id := e.ID + ":" + name + ":" + value
			g.edges[id] = &Edge{
				ID:       id,
				SourceID: e.ID,
				TargetID: value,
				Type:     TypeName(name),
				Label:    prop.Label(),
				Directed: true,
			}
		}
	}
	return nil
}

// addEdgeEntity turns an entity of an edge schema into edges between every
// source and target value pair.
func (g *Graph) addEdgeEntity(e *ftm.EntityProxy) error {
	schema := e.Schema
	sources := e.Get(schema.EdgeSource)
	targets := e.Get(schema.EdgeTarget)
	if len(sources) == 0 || len(targets) == 0 {
		return ftm.NewModelError(schema.Name, "", "edge entity is missing an endpoint")
	}
	var caption string
	for _, name := range schema.EdgeCaption {
		if values := e.Get(name); len(values) > 0 {
			caption = values[0]
			break
		}
	}
	for _, source := range sources {
		for _, target := range targets {
			id := e.ID + ":" + source + ":" + target
			g.edges[id] = &Edge{
				ID:       id,
				SourceID: source,
				TargetID: target,
				Type:     TypeName(schema.Name),
				Label:    schema.EdgeLabel(),
				Caption:  caption,
				Directed: schema.EdgeDirected,
			}
		}
	}
	return nil
}

// Nodes returns all nodes, sorted by ID.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.nodes))
	for _, node := range g.nodes {
		nodes = append(nodes, node)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	return nodes
}

// Edges returns all edges, sorted by ID.
func (g *Graph) Edges() []*Edge {
	edges := make([]*Edge, 0, len(g.edges))
	for _, edge := range g.edges {
		edges = append(edges, edge)
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].ID < edges[j].ID })
	return edges
}
