// Package graph provides the canonical ROS architecture graph.
//
// Every source parser produces a [Graph] and every downstream stage (filter,
// layout, manager, renderers) consumes one. The graph is a directed
// multigraph: nodes are ROS nodes, edges are topics flowing from a publisher
// to a subscriber, and two nodes exchanging several topics are connected by
// one edge per topic.
//
// # Node Keys
//
// Node IDs are always the double-quoted ROS name, for example "\"/camera\"".
// [Quote] and [Unquote] are the only helpers that should produce or strip
// that form. Edge labels hold the unquoted topic name.
//
// # Building Graphs
//
// Parsers register topic endpoints in a [TopicIndex] and then connect every
// publisher to every subscriber of the same topic:
//
//	idx := graph.NewTopicIndex()
//	idx.AddPublisher("/scan", graph.Quote("/lidar"))
//	idx.AddSubscriber("/scan", graph.Quote("/planner"))
//	g := graph.New()
//	idx.Connect(g)
//
// # Paths
//
// [Paths] is an ordered mapping from a named execution chain to its node
// keys. [Paths.Clear] leaves only the [ClearPath] sentinel.
//
// # Serialization
//
// [Graph.Snapshot] and [FromSnapshot] convert to and from the JSON wire
// format used by the CLI and the HTTP API:
//
//	{
//	  "nodes": [{"id": "\"/a\"", "pos": [0.1, 0.2], "color": [16, 64, 96]}],
//	  "edges": [{"from": "\"/a\"", "to": "\"/b\"", "label": "/t"}]
//	}
package graph
