// Package pkg provides the libraries behind rosview, which turns the static
// architecture of a ROS2 application into a laid-out node and topic graph.
//
// # Overview
//
// The pkg directory is organized by pipeline stage:
//
//  1. [graph] - the canonical multigraph, ROS name handling and named paths
//  2. [source/caret], [source/dot], [source/live] - graph sources
//  3. [filter] - ignore lists and isolated-node removal
//  4. [layout] - grouped placement on top of Graphviz
//  5. [manager] - orchestration with staged, all-or-nothing loads
//
// Around the core sit [settings] (setting.json / setting.toml), [positions]
// (manually adjusted layouts), [cache] (Graphviz results), [render] (SVG and
// HTML drawings), [server] (HTTP and WebSocket API), [bindings] (handles for
// presentation layers), [observability] (pipeline hooks) and [errors]
// (coded errors).
//
// # Architecture
//
//	CARET architecture YAML / rqt_graph DOT / live snapshot
//	         ↓
//	    [source/*] (parse into the canonical graph)
//	         ↓
//	    [filter] (ignore lists, unconnected nodes)
//	         ↓
//	    [layout] (assign groups, Graphviz per group, normalize, recenter)
//	         ↓
//	    [manager] (commit graph, paths, revision)
//	         ↓
//	    JSON / SVG / HTML / HTTP API
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/rosview/pkg/manager"
//	    "github.com/matzehuels/rosview/pkg/settings"
//	)
//
//	s, _ := settings.Load("architecture.yaml", settings.Options{})
//	m := manager.New(manager.Config{Filter: s.App.Filter(), Groups: s.Groups})
//	if err := m.Load(ctx, "architecture.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//	for _, n := range m.Graph().Nodes() {
//	    fmt.Println(n.ID, n.Pos)
//	}
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/rosview/pkg/graph
// [source/caret]: https://pkg.go.dev/github.com/matzehuels/rosview/pkg/source/caret
// [source/dot]: https://pkg.go.dev/github.com/matzehuels/rosview/pkg/source/dot
// [source/live]: https://pkg.go.dev/github.com/matzehuels/rosview/pkg/source/live
// [filter]: https://pkg.go.dev/github.com/matzehuels/rosview/pkg/filter
// [layout]: https://pkg.go.dev/github.com/matzehuels/rosview/pkg/layout
// [manager]: https://pkg.go.dev/github.com/matzehuels/rosview/pkg/manager
// [settings]: https://pkg.go.dev/github.com/matzehuels/rosview/pkg/settings
// [positions]: https://pkg.go.dev/github.com/matzehuels/rosview/pkg/positions
// [cache]: https://pkg.go.dev/github.com/matzehuels/rosview/pkg/cache
// [render]: https://pkg.go.dev/github.com/matzehuels/rosview/pkg/render
// [server]: https://pkg.go.dev/github.com/matzehuels/rosview/pkg/server
// [bindings]: https://pkg.go.dev/github.com/matzehuels/rosview/pkg/bindings
// [observability]: https://pkg.go.dev/github.com/matzehuels/rosview/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/rosview/pkg/errors
package pkg
