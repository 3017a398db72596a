package layout

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/rosview/pkg/errors"
	"github.com/matzehuels/rosview/pkg/graph"
	"github.com/matzehuels/rosview/pkg/observability"
)

// Normalize maps each axis independently into [0, 1]: (v - min) / extent,
// where extent is max(max - min, 1). Points that coincide on an axis map to 0
// on that axis. An empty input yields an empty result.
func Normalize(pos map[string]graph.Point) map[string]graph.Point {
	out := make(map[string]graph.Point, len(pos))
	if len(pos) == 0 {
		return out
	}

	first := true
	var lo, hi graph.Point
	for _, p := range pos {
		if first {
			lo, hi, first = p, p, false
			continue
		}
		lo.X, lo.Y = min(lo.X, p.X), min(lo.Y, p.Y)
		hi.X, hi.Y = max(hi.X, p.X), max(hi.Y, p.Y)
	}
	w := max(hi.X-lo.X, 1)
	h := max(hi.Y-lo.Y, 1)

	for id, p := range pos {
		out[id] = graph.Point{X: (p.X - lo.X) / w, Y: (p.Y - lo.Y) / h}
	}
	return out
}

// project maps a normalized point into the group's rectangle. The y axis is
// flipped first; horizontal groups then swap axes so the hierarchy runs along x.
func project(p graph.Point, grp Group) graph.Point {
	ox, oy, w, h := grp.Offset[0], grp.Offset[1], grp.Offset[2], grp.Offset[3]
	y := 1 - p.Y
	if grp.Direction == Vertical {
		return graph.Point{X: ox + p.X*w, Y: oy + y*h}
	}
	return graph.Point{X: ox + y*w, Y: oy + p.X*h}
}

// Place assigns a position and color to every node of g.
//
// Nodes are split into groups (see [Assign]); each group's induced subgraph
// is laid out independently by engine, normalized, and projected into the
// group's rectangle. Groups without members are skipped.
func Place(ctx context.Context, g *graph.Graph, groups Groups, engine Engine) (err error) {
	groups = groups.WithFallback()
	assign := Assign(g, groups)

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, len(groups), g.NodeCount())
	defer func() { observability.Pipeline().OnLayoutComplete(ctx, time.Since(start), err) }()

	for i, grp := range groups {
		if err := ctx.Err(); err != nil {
			return err
		}
		sub := g.Subgraph(func(id string) bool { return assign[id] == i })
		if sub.NodeCount() == 0 {
			continue
		}

		raw, err := engine.Layout(ctx, sub)
		if err != nil {
			return fmt.Errorf("layout group %q: %w", grp.Name, err)
		}
		norm := Normalize(raw)

		for _, id := range sub.NodeIDs() {
			p, ok := norm[id]
			if !ok {
				return errors.New(errors.ErrCodeInternal, "layout group %q: no position for %s", grp.Name, id)
			}
			n, _ := g.Node(id)
			n.SetPos(project(p, grp))
			n.Color = grp.Color
		}
	}
	return nil
}

// Align translates all placed nodes so the midpoint of their bounding box
// sits at the origin, and returns the applied shift. Nothing moves when no
// node is placed or when either midpoint component is exactly zero.
func Align(g *graph.Graph) (graph.Point, bool) {
	lo, hi, ok := g.Bounds()
	if !ok {
		return graph.Point{}, false
	}
	mid := graph.Point{X: (lo.X + hi.X) / 2, Y: (lo.Y + hi.Y) / 2}
	if mid.X == 0 || mid.Y == 0 {
		return graph.Point{}, false
	}
	for _, n := range g.Nodes() {
		if n.Placed {
			n.SetPos(graph.Point{X: n.Pos.X - mid.X, Y: n.Pos.Y - mid.Y})
		}
	}
	return mid, true
}

// Check verifies that engine can lay out a trivial graph.
func Check(ctx context.Context, engine Engine) error {
	probe := graph.New()
	if err := probe.AddEdge(graph.Edge{From: `"/probe_pub"`, To: `"/probe_sub"`, Label: "/probe"}); err != nil {
		return err
	}
	pos, err := engine.Layout(ctx, probe)
	if err != nil {
		return errors.Wrap(errors.ErrCodeDependencyUnavailable, err, "layout engine unavailable")
	}
	if len(pos) != probe.NodeCount() {
		return errors.New(errors.ErrCodeDependencyUnavailable, "layout engine returned %d of %d positions", len(pos), probe.NodeCount())
	}
	return nil
}
