package render

import (
	"fmt"
	"slices"

	"github.com/matzehuels/rosview/pkg/graph"
)

// DefaultScale converts layout units to inches in [ToDOT] and to pixels
// divided by 100 in [HTML].
const DefaultScale = 12.0

// Options configures rendering.
type Options struct {
	// Scale multiplies layout coordinates. Zero selects DefaultScale.
	Scale float64

	// Omit shortens node and topic labels.
	Omit graph.Omit

	// HideTopics suppresses edge labels.
	HideTopics bool

	// Highlight lists node keys to emphasize, typically a named path.
	Highlight []string

	// Title is used for the HTML page.
	Title string
}

func (o Options) scale() float64 {
	if o.Scale <= 0 {
		return DefaultScale
	}
	return o.Scale
}

func (o Options) highlighted(id string) bool { return slices.Contains(o.Highlight, id) }

// hexColor formats an RGB triple as #rrggbb.
func hexColor(c graph.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", clamp(c[0]), clamp(c[1]), clamp(c[2]))
}

// textColor picks black or white text for a fill color.
func textColor(c graph.Color) string {
	lum := 0.299*float64(clamp(c[0])) + 0.587*float64(clamp(c[1])) + 0.114*float64(clamp(c[2]))
	if lum < 128 {
		return "white"
	}
	return "black"
}

func clamp(v int) int { return max(0, min(255, v)) }

// fill returns the fill color of a node. Unplaced nodes are drawn white.
func fill(n *graph.Node) graph.Color {
	if !n.Placed {
		return graph.White
	}
	return n.Color
}
