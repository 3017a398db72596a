package graph

import (
	"encoding/json"
	"fmt"
)

// =============================================================================
// Point - JSON as [x, y]
// =============================================================================

// MarshalJSON encodes the point as a two-element array.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.X, p.Y})
}

// UnmarshalJSON decodes a two-element array.
func (p *Point) UnmarshalJSON(data []byte) error {
	var xy []float64
	if err := json.Unmarshal(data, &xy); err != nil {
		return err
	}
	if len(xy) != 2 {
		return fmt.Errorf("point must have 2 components, got %d", len(xy))
	}
	p.X, p.Y = xy[0], xy[1]
	return nil
}

// =============================================================================
// Snapshot - Graph Serialization
// =============================================================================

// Snapshot is the serialization format of a laid-out graph.
// Used for CLI output, API responses and caching.
type Snapshot struct {
	Nodes []NodeSnapshot `json:"nodes" bson:"nodes"`
	Edges []EdgeSnapshot `json:"edges" bson:"edges"`
}

// NodeSnapshot is the serialized form of a [Node].
type NodeSnapshot struct {
	ID             string          `json:"id" bson:"id"`
	Pos            *Point          `json:"pos,omitempty" bson:"pos,omitempty"`
	Color          *Color          `json:"color,omitempty" bson:"color,omitempty"`
	CallbackGroups []CallbackGroup `json:"callback_group_list,omitempty" bson:"callback_group_list,omitempty"`
}

// EdgeSnapshot is the serialized form of an [Edge].
type EdgeSnapshot struct {
	From  string `json:"from" bson:"from"`
	To    string `json:"to" bson:"to"`
	Label string `json:"label" bson:"label"`
}

// Snapshot converts the graph to its serialization format.
// Nodes and edges keep insertion order. Pos and color are only emitted for
// placed nodes.
func (g *Graph) Snapshot() Snapshot {
	out := Snapshot{
		Nodes: make([]NodeSnapshot, 0, len(g.order)),
		Edges: make([]EdgeSnapshot, 0, len(g.edges)),
	}
	for _, n := range g.Nodes() {
		ns := NodeSnapshot{ID: n.ID, CallbackGroups: n.CallbackGroups}
		if n.Placed {
			pos, color := n.Pos, n.Color
			ns.Pos, ns.Color = &pos, &color
		}
		out.Nodes = append(out.Nodes, ns)
	}
	for _, e := range g.edges {
		out.Edges = append(out.Edges, EdgeSnapshot(e))
	}
	return out
}

// FromSnapshot rebuilds a graph from its serialization format.
func FromSnapshot(s Snapshot) (*Graph, error) {
	g := New()
	for _, ns := range s.Nodes {
		n, err := g.AddNode(ns.ID)
		if err != nil {
			return nil, fmt.Errorf("add node %q: %w", ns.ID, err)
		}
		if ns.Pos != nil {
			n.SetPos(*ns.Pos)
		}
		if ns.Color != nil {
			n.Color = *ns.Color
		}
		n.CallbackGroups = ns.CallbackGroups
	}
	for _, es := range s.Edges {
		if err := g.AddEdge(Edge(es)); err != nil {
			return nil, fmt.Errorf("add edge %s→%s: %w", es.From, es.To, err)
		}
	}
	return g, nil
}

// MarshalJSON encodes the graph as a [Snapshot].
func (g *Graph) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Snapshot())
}

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (*Graph, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return FromSnapshot(s)
}
