// Package render draws a laid-out ROS graph.
//
// Node positions and colors come from the layout stage; the renderers only
// draw them. Two outputs are supported:
//
//   - SVG through Graphviz: [ToDOT] pins every node at its position and
//     [SVG] runs neato, which routes edges without moving nodes.
//   - Interactive HTML through ECharts: [HTML] writes a standalone page
//     with draggable nodes at the same coordinates.
//
// Both use [graph.DisplayName] for labels, so long ROS names can be shortened
// with [Options.Omit].
//
//	dot := render.ToDOT(g, render.Options{Omit: graph.OmitLast})
//	svg, err := render.SVG(ctx, dot)
package render
