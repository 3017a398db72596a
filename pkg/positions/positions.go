// Package positions persists manually arranged node positions.
//
// A layout is a map from quoted node name to position, scoped to the
// directory of the graph file it belongs to. [FileStore] writes the
// historical layout.json next to the graph file; [RedisStore] and
// [MongoStore] let a server share layouts between instances.
package positions

import (
	"context"
	"errors"

	"github.com/matzehuels/rosview/pkg/graph"
)

// ErrNotFound is returned by [Store.Load] when no layout is stored for a scope.
var ErrNotFound = errors.New("layout not found")

// Layout maps quoted node names to positions.
type Layout map[string]graph.Point

// Store loads and saves layouts by scope.
type Store interface {
	Load(ctx context.Context, scope string) (Layout, error)
	Save(ctx context.Context, scope string, layout Layout) error
	Delete(ctx context.Context, scope string) error
	Close() error
}

// Apply moves every node of g named in l and reports how many nodes moved.
// Names not present in g are ignored.
func Apply(g *graph.Graph, l Layout) int {
	applied := 0
	for id, p := range l {
		if n, ok := g.Node(id); ok {
			n.SetPos(p)
			applied++
		}
	}
	return applied
}
