package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/rosview/pkg/errors"
	"github.com/matzehuels/rosview/pkg/graph"
	"github.com/matzehuels/rosview/pkg/observability"
)

// ToDOT converts a laid-out graph to Graphviz DOT for neato.
//
// Every placed node gets a pinned pos attribute ("x,y!") in inches. Layout
// y grows downwards, Graphviz y upwards, so y is negated. Node IDs are the
// quoted ROS names, which DOT accepts as quoted identifiers once escaped.
func ToDOT(g *graph.Graph, opts Options) string {
	scale := opts.scale()

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  overlap=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=10, color=\"#808080\"];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		attrs := nodeAttrs(n, opts, scale)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if opts.HideTopics {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.From, e.To, graph.DisplayName(e.Label, opts.Omit))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n *graph.Node, opts Options, scale float64) []string {
	c := fill(n)
	attrs := []string{
		fmt.Sprintf("label=%q", graph.DisplayName(n.ID, opts.Omit)),
		fmt.Sprintf("fillcolor=%q", hexColor(c)),
		fmt.Sprintf("fontcolor=%s", textColor(c)),
	}
	if n.Placed {
		attrs = append(attrs, fmt.Sprintf("pos=\"%s,%s!\"", fmtFloat(n.Pos.X*scale), fmtFloat(-n.Pos.Y*scale)))
	}
	if opts.highlighted(n.ID) {
		attrs = append(attrs, "color=red", "penwidth=3")
	}
	if len(n.CallbackGroups) > 0 {
		attrs = append(attrs, fmt.Sprintf("tooltip=%q", callbackTooltip(n)))
	}
	return attrs
}

func callbackTooltip(n *graph.Node) string {
	var lines []string
	for _, cg := range n.CallbackGroups {
		lines = append(lines, fmt.Sprintf("%s [%s] (%s)", cg.Name, cg.Type, cg.Executor))
		for _, cb := range cg.Callbacks {
			lines = append(lines, "  "+cb.Type+" "+cb.Description)
		}
	}
	return strings.Join(lines, "\n")
}

func fmtFloat(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }

// SVG renders DOT produced by [ToDOT] with neato.
func SVG(ctx context.Context, dot string) (_ []byte, err error) {
	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, "svg")
	defer func() { observability.Pipeline().OnRenderComplete(ctx, "svg", time.Since(start), err) }()

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDependencyUnavailable, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.Layout("neato"))

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a
// pixel-sized one so browsers scale the drawing consistently.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
