package layout

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/rosview/pkg/cache"
	"github.com/matzehuels/rosview/pkg/errors"
	"github.com/matzehuels/rosview/pkg/graph"
	"github.com/matzehuels/rosview/pkg/observability"
)

// Engine computes raw 2D coordinates for every node of a graph.
// Coordinates may use any scale and origin; [Place] normalizes them.
type Engine interface {
	Layout(ctx context.Context, g *graph.Graph) (map[string]graph.Point, error)
}

// DefaultProgram is the Graphviz layout program used by [Graphviz].
const DefaultProgram = "dot"

// pointsPerInch converts Graphviz plain output (inches) to points.
const pointsPerInch = 72

// Graphviz lays graphs out with the in-process Graphviz library.
//
// The zero value uses the "dot" program without caching.
type Graphviz struct {
	// Program is the Graphviz layout program, "dot" if empty.
	Program string

	// Cache stores results keyed by the generated DOT text. Nil disables caching.
	Cache cache.Cache
	Keyer cache.Keyer
	TTL   time.Duration
}

func (e *Graphviz) program() string {
	if e.Program == "" {
		return DefaultProgram
	}
	return e.Program
}

// Layout returns node centers in points, with y growing upwards.
func (e *Graphviz) Layout(ctx context.Context, g *graph.Graph) (map[string]graph.Point, error) {
	out := make(map[string]graph.Point, g.NodeCount())
	if g.NodeCount() == 0 {
		return out, nil
	}

	ids := g.NodeIDs()
	dot := e.toDOT(g, ids)

	var key string
	if e.Cache != nil {
		keyer := e.Keyer
		if keyer == nil {
			keyer = cache.NewDefaultKeyer()
		}
		key = keyer.LayoutKey(cache.Hash([]byte(dot)), cache.LayoutKeyOpts{Program: e.program()})
		if pts, ok := e.cached(ctx, key, len(ids)); ok {
			for i, id := range ids {
				out[id] = pts[i]
			}
			return out, nil
		}
	}

	plain, err := e.render(ctx, dot)
	if err != nil {
		return nil, err
	}
	byName, err := parsePlain(plain)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read graphviz output")
	}

	pts := make([]graph.Point, len(ids))
	for i, id := range ids {
		p, ok := byName[syntheticID(i)]
		if !ok {
			return nil, errors.New(errors.ErrCodeInternal, "graphviz dropped node %s", id)
		}
		pts[i] = p
		out[id] = p
	}

	if e.Cache != nil {
		if data, err := json.Marshal(pts); err == nil {
			if err := e.Cache.Set(ctx, key, data, e.TTL); err == nil {
				observability.Cache().OnCacheSet(ctx, "layout", len(data))
			}
		}
	}
	return out, nil
}

func (e *Graphviz) cached(ctx context.Context, key string, n int) ([]graph.Point, bool) {
	data, ok, err := e.Cache.Get(ctx, key)
	if err != nil || !ok {
		observability.Cache().OnCacheMiss(ctx, "layout")
		return nil, false
	}
	var pts []graph.Point
	if err := json.Unmarshal(data, &pts); err != nil || len(pts) != n {
		observability.Cache().OnCacheMiss(ctx, "layout")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "layout")
	return pts, true
}

// toDOT writes g with synthetic node IDs (n0, n1, ...) so arbitrary ROS names
// never need DOT escaping. Labels carry the node key so node sizes match the
// displayed names.
func (e *Graphviz) toDOT(g *graph.Graph, ids []string) string {
	index := make(map[string]int, len(ids))
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  layout=%s;\n", e.program())
	for i, id := range ids {
		index[id] = i
		fmt.Fprintf(&buf, "  %s [label=%q];\n", syntheticID(i), id)
	}
	for _, edge := range g.Edges() {
		fmt.Fprintf(&buf, "  %s -> %s;\n", syntheticID(index[edge.From]), syntheticID(index[edge.To]))
	}
	buf.WriteString("}\n")
	return buf.String()
}

func (e *Graphviz) render(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDependencyUnavailable, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.Layout(e.program()))

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse generated DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.Format("plain"), &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDependencyUnavailable, err, "graphviz %s layout", e.program())
	}
	return buf.Bytes(), nil
}

func syntheticID(i int) string { return "n" + strconv.Itoa(i) }

// parsePlain reads node centers from Graphviz "plain" output:
//
//	node <name> <x> <y> <width> <height> <label> ...
func parsePlain(data []byte) (map[string]graph.Point, error) {
	out := make(map[string]graph.Point)
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 4 || fields[0] != "node" {
			continue
		}
		x, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("node %s: x: %w", fields[1], err)
		}
		y, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, fmt.Errorf("node %s: y: %w", fields[1], err)
		}
		out[strings.Trim(fields[1], `"`)] = graph.Point{X: x * pointsPerInch, Y: y * pointsPerInch}
	}
	return out, sc.Err()
}
