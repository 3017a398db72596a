package graph

import (
	"bytes"
	"encoding/json"
	"slices"
)

// ClearPath is the reserved path name that resets path highlighting.
// It always maps to an empty node list.
const ClearPath = "<< CLEAR >>"

// Paths is an ordered mapping from path name to an ordered list of node keys.
//
// Insertion order is preserved so presentation layers can list paths in the
// order they were declared. The zero value is an empty, usable mapping.
type Paths struct {
	names []string
	nodes map[string][]string
}

// NewPaths returns an empty path mapping.
func NewPaths() *Paths {
	return &Paths{nodes: make(map[string][]string)}
}

// Set assigns the node list for a path. Existing paths keep their position.
func (p *Paths) Set(name string, nodes []string) {
	if p.nodes == nil {
		p.nodes = make(map[string][]string)
	}
	if _, ok := p.nodes[name]; !ok {
		p.names = append(p.names, name)
	}
	p.nodes[name] = slices.Clone(nodes)
	if p.nodes[name] == nil {
		p.nodes[name] = []string{}
	}
}

// Get returns the node list of a path.
func (p *Paths) Get(name string) ([]string, bool) {
	nodes, ok := p.nodes[name]
	return slices.Clone(nodes), ok
}

// Names returns path names in insertion order.
func (p *Paths) Names() []string { return slices.Clone(p.names) }

// Len returns the number of paths, including the clear sentinel if present.
func (p *Paths) Len() int { return len(p.names) }

// Clear removes every path and leaves only the ClearPath sentinel.
func (p *Paths) Clear() {
	p.names = nil
	p.nodes = make(map[string][]string)
	p.Set(ClearPath, nil)
}

// Merge copies every path of other into p, overwriting existing names.
func (p *Paths) Merge(other *Paths) {
	if other == nil {
		return
	}
	for _, name := range other.names {
		p.Set(name, other.nodes[name])
	}
}

// Clone returns an independent copy.
func (p *Paths) Clone() *Paths {
	out := NewPaths()
	out.Merge(p)
	return out
}

// MarshalJSON encodes the paths as a JSON object in insertion order.
func (p *Paths) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range p.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(p.nodes[name])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
