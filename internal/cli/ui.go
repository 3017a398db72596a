package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/rosview/pkg/graph"
	"github.com/matzehuels/rosview/pkg/layout"
)

var (
	colorTeal  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	// StyleTitle for headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorTeal)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray)
	styleOK      = lipgloss.NewStyle().Foreground(colorGreen)
	styleCommand = lipgloss.NewStyle().Foreground(colorTeal)
)

const (
	iconOK    = "✓"
	iconInfo  = "›"
	iconArrow = "→"

	keyWidth = 16
)

// printer writes human-readable status lines for a command. Machine-readable
// output goes through writeJSON instead.
type printer struct {
	w io.Writer
}

func (o printer) line(s string) { fmt.Fprintln(o.w, s) }

func (o printer) ok(format string, args ...any) {
	o.line(styleOK.Render(iconOK) + " " + fmt.Sprintf(format, args...))
}

func (o printer) info(format string, args ...any) {
	o.line(styleKey.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

func (o printer) detail(format string, args ...any) {
	o.line("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

func (o printer) file(path string) {
	o.line("  " + StyleDim.Render(iconArrow) + " " + styleValue.Render(path))
}

func (o printer) keyValue(key, value string) {
	o.line(styleKey.Render(fmt.Sprintf("%-*s", keyWidth, key)) + " " + styleValue.Render(value))
}

func (o printer) nextStep(description, cmd string) {
	o.line("")
	o.line(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// graphSummary prints node, edge, topic and named path counts on one line.
func (o printer) graphSummary(g *graph.Graph, paths *graph.Paths) {
	parts := []string{
		plural(g.NodeCount(), "node"),
		plural(g.EdgeCount(), "edge"),
		plural(len(topics(g)), "topic"),
	}
	if n := len(namedPaths(paths)); n > 0 {
		parts = append(parts, plural(n, "path"))
	}
	o.line("  " + StyleDim.Render(strings.Join(parts, " · ")))
}

// groupSummary prints how many nodes each layout group received. Empty
// groups are skipped.
func (o printer) groupSummary(g *graph.Graph, gs layout.Groups) {
	gs = gs.WithFallback()
	assigned := layout.Assign(g, gs)
	for i, grp := range gs {
		if n := len(assigned.Members(g, i)); n > 0 {
			o.keyValue(grp.Name, plural(n, "node"))
		}
	}
}

// pathList prints one line per named path with its length and span.
func (o printer) pathList(paths *graph.Paths, omit graph.Omit) {
	names := namedPaths(paths)
	if len(names) == 0 {
		o.info("No named paths")
		return
	}
	for _, name := range names {
		nodes, _ := paths.Get(name)
		o.keyValue(name, plural(len(nodes), "node")+"  "+StyleDim.Render(pathSpan(nodes, omit)))
	}
}

// pathChain prints the nodes of one path in order, numbered from 1.
func (o printer) pathChain(nodes []string, omit graph.Omit) {
	for i, id := range nodes {
		o.line(fmt.Sprintf("  %s  %s", StyleDim.Render(fmt.Sprintf("%2d", i+1)), oneLine(id, omit)))
	}
}

// pathSpan describes a path by its first and last node.
func pathSpan(nodes []string, omit graph.Omit) string {
	switch len(nodes) {
	case 0:
		return "—"
	case 1:
		return oneLine(nodes[0], omit)
	default:
		return oneLine(nodes[0], omit) + " " + iconArrow + " " + oneLine(nodes[len(nodes)-1], omit)
	}
}

func oneLine(id string, omit graph.Omit) string {
	return strings.ReplaceAll(graph.DisplayName(id, omit), "\n", " ")
}

// namedPaths returns the path names without the clear entry.
func namedPaths(paths *graph.Paths) []string {
	return slices.DeleteFunc(paths.Names(), func(n string) bool { return n == graph.ClearPath })
}

// topics returns the distinct edge labels in edge order.
func topics(g *graph.Graph) []string {
	var labels []string
	for _, e := range g.Edges() {
		if !slices.Contains(labels, e.Label) {
			labels = append(labels, e.Label)
		}
	}
	return labels
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
