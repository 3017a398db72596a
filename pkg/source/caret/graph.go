package caret

import (
	"github.com/matzehuels/rosview/pkg/errors"
	"github.com/matzehuels/rosview/pkg/graph"
)

// Parse loads path and builds the graph for target (see [BuildGraph]).
func Parse(path, target string, displayUnconnected bool) (*graph.Graph, *Architecture, error) {
	arch, err := LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	g, err := BuildGraph(arch, target, displayUnconnected)
	if err != nil {
		return nil, nil, err
	}
	return g, arch, nil
}

// BuildGraph converts an architecture into the canonical graph.
//
// With target == [AllGraph] every node's publishes and subscribes are
// collected per topic and every publisher is connected to every subscriber.
// When displayUnconnected is set, nodes without any edge are kept as
// isolated nodes.
//
// Any other target selects the named path of that name. Chain links
// contribute their publish and subscribe topics unless they are [Undefined].
// Nodes without a matching counterpart get no edge and are not part of the
// result; displayUnconnected has no effect in this mode.
func BuildGraph(arch *Architecture, target string, displayUnconnected bool) (*graph.Graph, error) {
	g := graph.New()
	idx := graph.NewTopicIndex()

	if target == AllGraph {
		for _, n := range arch.Nodes {
			key := graph.Quote(n.Name)
			if displayUnconnected {
				if _, err := g.AddNode(key); err != nil {
					return nil, err
				}
			}
			for _, t := range n.Publishes {
				idx.AddPublisher(t.Topic, key)
			}
			for _, t := range n.Subscribes {
				idx.AddSubscriber(t.Topic, key)
			}
		}
	} else {
		p, ok := arch.path(target)
		if !ok {
			return nil, errors.New(errors.ErrCodeUnknownPath, "named path %q not found", target)
		}
		for _, link := range p.Chain {
			key := graph.Quote(link.Node)
			if isTopic(link.PublishTopic) {
				idx.AddPublisher(link.PublishTopic, key)
			}
			if isTopic(link.SubscribeTopic) {
				idx.AddSubscriber(link.SubscribeTopic, key)
			}
		}
	}

	if _, err := idx.Connect(g); err != nil {
		return nil, err
	}
	return g, nil
}

func isTopic(name string) bool {
	return name != "" && name != Undefined
}
