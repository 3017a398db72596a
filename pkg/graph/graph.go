package graph

import (
	"errors"
	"slices"
)

// ErrInvalidNodeID is returned by [Graph.AddNode] and [Graph.AddEdge] when
// a node ID is empty. All nodes must have non-empty identifiers.
var ErrInvalidNodeID = errors.New("node ID must not be empty")

// Point is a 2D layout coordinate. It serializes as a two-element JSON array
// ([x, y]) to match the layout.json format.
type Point struct {
	X, Y float64
}

// Color is an RGB triple with components in 0..255.
type Color [3]int

// White is the color used for callback groups that run alone in their executor.
var White = Color{255, 255, 255}

// CallbackDetail describes a single callback inside a callback group.
type CallbackDetail struct {
	Name        string `json:"callback_name"`
	Type        string `json:"callback_type"`
	Description string `json:"description"`
}

// CallbackGroup describes a callback group owned by a node, together with the
// executor that drives it.
type CallbackGroup struct {
	Name      string           `json:"callback_group_name"`
	Type      string           `json:"callback_group_type"`
	Executor  string           `json:"executor_name"`
	Color     Color            `json:"color"`
	Callbacks []CallbackDetail `json:"callback_detail_list"`
}

// Node is a ROS node in the canonical graph.
//
// ID is always the quoted ROS name (see [Quote]). Pos and Color are assigned by
// the layout stage; Placed reports whether Pos has been set.
type Node struct {
	ID             string
	Pos            Point
	Placed         bool
	Color          Color
	CallbackGroups []CallbackGroup
}

// SetPos assigns a layout position and marks the node as placed.
func (n *Node) SetPos(p Point) {
	n.Pos = p
	n.Placed = true
}

// Edge is a directed publisher → subscriber connection for one topic.
// Label holds the unquoted topic name. Parallel edges between the same
// ordered pair are distinct elements of the multigraph.
type Edge struct {
	From  string
	To    string
	Label string
}

// Graph is a directed multigraph of ROS nodes connected by topics.
//
// Nodes and edges keep insertion order, so iteration is deterministic and
// layouts are reproducible for the same input. Unlike a DAG, cycles and
// parallel edges are allowed: two nodes exchanging several topics are
// connected by one edge per topic.
//
// The zero value is not usable - use New to create a graph.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	nodes map[string]*Node
	order []string
	edges []Edge
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*Node)}
}

// AddNode adds a node with the given ID and returns it. Adding an ID that
// already exists is a no-op that returns the existing node.
// Returns ErrInvalidNodeID if the ID is empty.
func (g *Graph) AddNode(id string) (*Node, error) {
	if id == "" {
		return nil, ErrInvalidNodeID
	}
	if n, ok := g.nodes[id]; ok {
		return n, nil
	}
	n := &Node{ID: id}
	g.nodes[id] = n
	g.order = append(g.order, id)
	return n, nil
}

// AddEdge appends a directed edge. Missing endpoints are added implicitly,
// so an edge always implies its two nodes.
// Returns ErrInvalidNodeID if either endpoint is empty.
func (g *Graph) AddEdge(e Edge) error {
	if e.From == "" || e.To == "" {
		return ErrInvalidNodeID
	}
	if _, err := g.AddNode(e.From); err != nil {
		return err
	}
	if _, err := g.AddNode(e.To); err != nil {
		return err
	}
	g.edges = append(g.edges, e)
	return nil
}

// RemoveNode deletes a node and every edge incident to it.
// No error is returned if the node does not exist.
func (g *Graph) RemoveNode(id string) {
	if _, ok := g.nodes[id]; !ok {
		return
	}
	delete(g.nodes, id)
	g.order = slices.DeleteFunc(g.order, func(s string) bool { return s == id })
	g.edges = slices.DeleteFunc(g.edges, func(e Edge) bool { return e.From == id || e.To == id })
}

// RemoveEdges deletes every edge for which drop returns true and reports how
// many were removed. Nodes are never removed by this call.
func (g *Graph) RemoveEdges(drop func(Edge) bool) int {
	before := len(g.edges)
	g.edges = slices.DeleteFunc(g.edges, drop)
	return before - len(g.edges)
}

// Node returns the node with the given ID and true, or nil and false if not found.
// The returned pointer refers to the node stored in the graph.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// HasNode reports whether the graph contains the node.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// HasEdge reports whether an edge from→to with the given label exists.
func (g *Graph) HasEdge(from, to, label string) bool {
	return slices.ContainsFunc(g.edges, func(e Edge) bool {
		return e.From == from && e.To == to && e.Label == label
	})
}

// Nodes returns all nodes in insertion order. The pointers refer to the
// nodes stored in the graph.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// NodeIDs returns all node IDs in insertion order.
func (g *Graph) NodeIDs() []string { return slices.Clone(g.order) }

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph, counting parallel edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Degree returns the number of edges incident to the node, in or out.
// A self-loop counts twice.
func (g *Graph) Degree(id string) int {
	d := 0
	for _, e := range g.edges {
		if e.From == id {
			d++
		}
		if e.To == id {
			d++
		}
	}
	return d
}

// Isolates returns the IDs of nodes without incident edges, in insertion order.
func (g *Graph) Isolates() []string {
	connected := make(map[string]bool, len(g.nodes))
	for _, e := range g.edges {
		connected[e.From] = true
		connected[e.To] = true
	}
	var out []string
	for _, id := range g.order {
		if !connected[id] {
			out = append(out, id)
		}
	}
	return out
}

// Subscribers returns the distinct nodes that receive at least one topic
// published by id, in edge order.
func (g *Graph) Subscribers(id string) []string {
	var out []string
	for _, e := range g.edges {
		if e.From == id && !slices.Contains(out, e.To) {
			out = append(out, e.To)
		}
	}
	return out
}

// Publishers returns the distinct nodes that publish at least one topic
// subscribed by id, in edge order.
func (g *Graph) Publishers(id string) []string {
	var out []string
	for _, e := range g.edges {
		if e.To == id && !slices.Contains(out, e.From) {
			out = append(out, e.From)
		}
	}
	return out
}

// Subgraph returns a new graph induced by the nodes for which keep returns
// true: those nodes plus every edge whose endpoints are both kept.
// Node attributes are copied; the result shares no state with g.
func (g *Graph) Subgraph(keep func(id string) bool) *Graph {
	sub := New()
	for _, id := range g.order {
		if keep(id) {
			n := *g.nodes[id]
			n.CallbackGroups = slices.Clone(n.CallbackGroups)
			sub.nodes[id] = &n
			sub.order = append(sub.order, id)
		}
	}
	for _, e := range g.edges {
		if sub.HasNode(e.From) && sub.HasNode(e.To) {
			sub.edges = append(sub.edges, e)
		}
	}
	return sub
}

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	return g.Subgraph(func(string) bool { return true })
}

// Positions returns the positions of all placed nodes keyed by node ID.
func (g *Graph) Positions() map[string]Point {
	out := make(map[string]Point, len(g.nodes))
	for _, n := range g.nodes {
		if n.Placed {
			out[n.ID] = n.Pos
		}
	}
	return out
}

// Bounds returns the component-wise minimum and maximum over all placed
// nodes. ok is false if no node has been placed.
func (g *Graph) Bounds() (lo, hi Point, ok bool) {
	for _, id := range g.order {
		n := g.nodes[id]
		if !n.Placed {
			continue
		}
		if !ok {
			lo, hi, ok = n.Pos, n.Pos, true
			continue
		}
		lo.X = min(lo.X, n.Pos.X)
		lo.Y = min(lo.Y, n.Pos.Y)
		hi.X = max(hi.X, n.Pos.X)
		hi.Y = max(hi.Y, n.Pos.Y)
	}
	return lo, hi, ok
}
