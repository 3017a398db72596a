// Package dot reads rqt_graph style DOT files.
//
// rqt_graph writes two shapes of graph. In node-only form every DOT node is a
// ROS node and edges already carry the topic name as their label. In
// node+topic form ROS nodes are ellipses, topics are boxes, and publish and
// subscribe relations are edges into and out of the topic boxes. [Parse]
// detects the form (any box-shaped node means node+topic) and normalizes
// both into the canonical graph.
package dot

import (
	"maps"
	"os"
	"strconv"
	"strings"

	"github.com/awalterschulze/gographviz"
	"github.com/awalterschulze/gographviz/ast"

	"github.com/matzehuels/rosview/pkg/errors"
	"github.com/matzehuels/rosview/pkg/graph"
)

// Mode is the detected form of a DOT file.
type Mode int

const (
	// ModeNodeOnly means one DOT node per ROS node with labeled edges.
	ModeNodeOnly Mode = iota
	// ModeNodeTopic means topics are box-shaped nodes between ROS nodes.
	ModeNodeTopic
)

func (m Mode) String() string {
	if m == ModeNodeTopic {
		return "node_topic"
	}
	return "node_only"
}

const (
	shapeNode  = "ellipse"
	shapeTopic = "box"
)

// ParseFile reads a DOT file and builds the canonical graph.
func ParseFile(path string, displayUnconnected bool) (*graph.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapRead(err, path)
	}
	g, _, err := Parse(data, displayUnconnected)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse %s", path)
	}
	return g, nil
}

// Parse builds the canonical graph from DOT text and reports the detected mode.
//
// Only attributes written on a node's own statements count, wherever the
// statement appears (subgraphs included). Defaults from node [...] and
// edge [...] statements are not applied, so a node mentioned only in an edge
// has no label.
//
// In node-only mode, DOT nodes without a label are ignored and edges are kept
// only when both endpoints and the edge have labels; parallel edges with the
// same label are preserved. Nodes without edges are kept only when
// displayUnconnected is set.
//
// In node+topic mode every ellipse→box edge registers a publisher and every
// box→ellipse edge a subscriber, and publishers are connected to subscribers
// per topic. Only connected nodes appear.
func Parse(data []byte, displayUnconnected bool) (*graph.Graph, Mode, error) {
	tree, err := gographviz.ParseString(string(data))
	if err != nil {
		return nil, ModeNodeOnly, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid DOT syntax")
	}
	if err := gographviz.Analyse(tree, gographviz.NewGraph()); err != nil {
		return nil, ModeNodeOnly, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid DOT graph")
	}

	d := newDecls()
	d.collect(tree.StmtList)

	mode := ModeNodeOnly
	for _, id := range d.order {
		if d.nodes[id]["shape"] == shapeTopic {
			mode = ModeNodeTopic
			break
		}
	}

	var g *graph.Graph
	if mode == ModeNodeTopic {
		g, err = nodeTopic(d)
	} else {
		g, err = nodeOnly(d, displayUnconnected)
	}
	if err != nil {
		return nil, mode, err
	}
	return g, mode, nil
}

// decls holds the explicit node and edge statements of a DOT file.
type decls struct {
	nodes map[string]map[string]string
	order []string
	edges []edgeDecl
}

type edgeDecl struct {
	src, dst string
	attrs    map[string]string
}

func newDecls() *decls {
	return &decls{nodes: make(map[string]map[string]string)}
}

// collect walks a statement list and its subgraphs in file order.
func (d *decls) collect(stmts ast.StmtList) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.NodeStmt:
			d.node(s)
		case ast.NodeStmt:
			d.node(&s)
		case *ast.EdgeStmt:
			d.edge(s)
		case ast.EdgeStmt:
			d.edge(&s)
		case *ast.SubGraph:
			d.collect(s.StmtList)
		}
	}
}

func (d *decls) node(s *ast.NodeStmt) {
	id := s.NodeID.GetID().String()
	attrs, ok := d.nodes[id]
	if !ok {
		attrs = make(map[string]string)
		d.nodes[id] = attrs
		d.order = append(d.order, id)
	}
	maps.Copy(attrs, attrMap(s.Attrs.GetMap()))
}

func (d *decls) edge(s *ast.EdgeStmt) {
	attrs := attrMap(s.Attrs.GetMap())
	if sg, ok := s.Source.(*ast.SubGraph); ok {
		d.collect(sg.StmtList)
	}
	src := s.Source
	for _, rh := range s.EdgeRHS {
		dst := rh.Destination
		if sg, ok := dst.(*ast.SubGraph); ok {
			d.collect(sg.StmtList)
		}
		if src.IsNode() && dst.IsNode() {
			d.edges = append(d.edges, edgeDecl{
				src:   src.GetID().String(),
				dst:   dst.GetID().String(),
				attrs: attrs,
			})
		}
		src = dst
	}
}

func nodeOnly(d *decls, displayUnconnected bool) (*graph.Graph, error) {
	g := graph.New()
	if displayUnconnected {
		for _, id := range d.order {
			label, ok := d.nodes[id]["label"]
			if !ok {
				continue
			}
			if _, err := g.AddNode(graph.Quote(label)); err != nil {
				return nil, err
			}
		}
	}

	for _, e := range d.edges {
		from, okFrom := d.nodes[e.src]["label"]
		to, okTo := d.nodes[e.dst]["label"]
		topic, okTopic := e.attrs["label"]
		if !okFrom || !okTo || !okTopic || topic == "" {
			continue
		}
		edge := graph.Edge{From: graph.Quote(from), To: graph.Quote(to), Label: topic}
		if err := g.AddEdge(edge); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func nodeTopic(d *decls) (*graph.Graph, error) {
	idx := graph.NewTopicIndex()
	for _, e := range d.edges {
		s, t := d.nodes[e.src], d.nodes[e.dst]
		sLabel, ok1 := s["label"]
		tLabel, ok2 := t["label"]
		sShape, ok3 := s["shape"]
		tShape, ok4 := t["shape"]
		if !ok1 || !ok2 || !ok3 || !ok4 {
			continue
		}
		srcIsNode, dstIsNode := sShape == shapeNode, tShape == shapeNode
		switch {
		case srcIsNode && !dstIsNode:
			idx.AddPublisher(tLabel, graph.Quote(sLabel))
		case !srcIsNode && dstIsNode:
			idx.AddSubscriber(sLabel, graph.Quote(tLabel))
		}
	}
	g := graph.New()
	if _, err := idx.Connect(g); err != nil {
		return nil, err
	}
	return g, nil
}

// attrMap copies DOT attributes into a plain map with unquoted values.
func attrMap[K ~string](attrs map[K]string) map[string]string {
	out := make(map[string]string, len(attrs))
	for k, v := range attrs {
		out[string(k)] = unquote(v)
	}
	return out
}

// unquote strips DOT string quoting and any quotes embedded by tools that
// write pre-quoted labels such as "\"/talker\"".
func unquote(v string) string {
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		if s, err := strconv.Unquote(v); err == nil {
			v = s
		}
	}
	return strings.Trim(v, `"`)
}
