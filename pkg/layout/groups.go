package layout

import (
	"strings"

	"github.com/matzehuels/rosview/pkg/errors"
	"github.com/matzehuels/rosview/pkg/graph"
)

// Others is the reserved name of the fallback group.
const Others = "__others__"

// Direction controls how a group's hierarchy is mapped into its rectangle.
type Direction string

const (
	// Horizontal lays the hierarchy out left to right.
	Horizontal Direction = "horizontal"
	// Vertical keeps the engine's top to bottom layering.
	Vertical Direction = "vertical"
)

// Group places every node assigned to it inside the rectangle Offset
// ([x, y, w, h]) and paints it with Color.
type Group struct {
	Name      string      `json:"name"`
	Direction Direction   `json:"direction"`
	Offset    [4]float64  `json:"offset"`
	Color     graph.Color `json:"color"`
}

// DefaultOthers is appended when a group list has no Others entry.
var DefaultOthers = Group{
	Name:      Others,
	Direction: Horizontal,
	Offset:    [4]float64{0, 0, 1, 1},
	Color:     graph.Color{16, 64, 96},
}

// Validate checks direction and color.
func (g Group) Validate() error {
	if err := errors.ValidateDirection(string(g.Direction)); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSetting, err, "group %q", g.Name)
	}
	if err := errors.ValidateColor(g.Color); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSetting, err, "group %q", g.Name)
	}
	if err := errors.ValidateOffset(g.Offset[:]); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSetting, err, "group %q", g.Name)
	}
	return nil
}

// Groups is an ordered list of groups. Order decides membership: a node
// belongs to the first group whose name it contains.
type Groups []Group

// WithFallback returns the groups with DefaultOthers appended if no group is
// named Others.
func (gs Groups) WithFallback() Groups {
	for _, g := range gs {
		if g.Name == Others {
			return gs
		}
	}
	out := make(Groups, len(gs), len(gs)+1)
	copy(out, gs)
	return append(out, DefaultOthers)
}

// Index returns the position of the named group, or -1.
func (gs Groups) Index(name string) int {
	for i, g := range gs {
		if g.Name == name {
			return i
		}
	}
	return -1
}

// Displace shifts every group's rectangle by (dx, dy).
func (gs Groups) Displace(dx, dy float64) Groups {
	out := make(Groups, len(gs))
	for i, g := range gs {
		g.Offset[0] += dx
		g.Offset[1] += dy
		out[i] = g
	}
	return out
}

// Assignment maps node keys to an index into the Groups it was computed from.
type Assignment map[string]int

// Assign decides the group of every node in g. Groups are tried in order
// using substring containment against the quoted node key; Others is never
// matched by name and receives every node no other group claims. gs must
// contain an Others entry (see [Groups.WithFallback]).
func Assign(g *graph.Graph, gs Groups) Assignment {
	others := gs.Index(Others)
	out := make(Assignment, g.NodeCount())
	for _, id := range g.NodeIDs() {
		out[id] = others
		for i, grp := range gs {
			if i != others && strings.Contains(id, grp.Name) {
				out[id] = i
				break
			}
		}
	}
	return out
}

// Members returns the node keys assigned to group i, in graph order.
func (a Assignment) Members(g *graph.Graph, i int) []string {
	var out []string
	for _, id := range g.NodeIDs() {
		if a[id] == i {
			out = append(out, id)
		}
	}
	return out
}
