package caret

import "github.com/matzehuels/rosview/pkg/graph"

// ExtractPaths returns every named path with its node chain, in declared
// order and with node names quoted like graph keys.
func ExtractPaths(arch *Architecture) *graph.Paths {
	paths := graph.NewPaths()
	for _, p := range arch.NamedPaths {
		nodes := make([]string, 0, len(p.Chain))
		for _, link := range p.Chain {
			nodes = append(nodes, graph.Quote(link.Node))
		}
		paths.Set(p.Name, nodes)
	}
	return paths
}
