package render

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/matzehuels/rosview/pkg/graph"
	"github.com/matzehuels/rosview/pkg/observability"
)

// DefaultTitle is the HTML page title when Options.Title is empty.
const DefaultTitle = "rosview"

// HTML renders g as a standalone ECharts page.
func HTML(ctx context.Context, g *graph.Graph, o Options) (_ []byte, err error) {
	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, "html")
	defer func() { observability.Pipeline().OnRenderComplete(ctx, "html", time.Since(start), err) }()

	var buf bytes.Buffer
	if err := WriteHTML(&buf, g, o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteHTML writes the ECharts page for g to w.
func WriteHTML(w io.Writer, g *graph.Graph, o Options) error {
	page := components.NewPage()
	page.AddCharts(graphChart(g, o))
	return page.Render(w)
}

func graphChart(g *graph.Graph, o Options) *charts.Graph {
	title := o.Title
	if title == "" {
		title = DefaultTitle
	}

	chart := charts.NewGraph()
	chart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Height:    "100vh",
			Width:     "100vw",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
	)
	chart.AddSeries(
		"graph",
		chartNodes(g, o),
		chartLinks(g),
		charts.WithGraphChartOpts(
			opts.GraphChart{
				Layout:    "none",
				Draggable: opts.Bool(true),
				Roam:      opts.Bool(true),
			},
		),
		charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(true),
			Color:    "black",
			Position: "top",
		}),
	)
	return chart
}

func chartNodes(g *graph.Graph, o Options) []opts.GraphNode {
	px := o.scale() * 100
	nodes := make([]opts.GraphNode, 0, g.NodeCount())
	for _, n := range g.Nodes() {
		c := fill(n)
		node := opts.GraphNode{
			Name:      graph.Unquote(n.ID),
			X:         float32(n.Pos.X * px),
			Y:         float32(n.Pos.Y * px),
			ItemStyle: &opts.ItemStyle{Color: hexColor(c)},
		}
		if o.highlighted(n.ID) {
			node.ItemStyle.BorderColor = "red"
			node.ItemStyle.BorderWidth = 3
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// chartLinks collapses parallel edges; ECharts draws one line per pair.
func chartLinks(g *graph.Graph) []opts.GraphLink {
	seen := make(map[[2]string]bool)
	var links []opts.GraphLink
	for _, e := range g.Edges() {
		key := [2]string{e.From, e.To}
		if seen[key] {
			continue
		}
		seen[key] = true
		links = append(links, opts.GraphLink{
			Source: graph.Unquote(e.From),
			Target: graph.Unquote(e.To),
		})
	}
	return links
}
