package manager

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/rosview/pkg/errors"
	"github.com/matzehuels/rosview/pkg/filter"
	"github.com/matzehuels/rosview/pkg/graph"
	"github.com/matzehuels/rosview/pkg/layout"
	"github.com/matzehuels/rosview/pkg/observability"
	"github.com/matzehuels/rosview/pkg/source/caret"
	"github.com/matzehuels/rosview/pkg/source/dot"
	"github.com/matzehuels/rosview/pkg/source/live"
)

// staged is the result of a load before it is committed.
type staged struct {
	graph *graph.Graph
	paths *graph.Paths
	dir   string
}

// =============================================================================
// Loaders
// =============================================================================

// Load picks the loader by file extension: .yaml and .yml are CARET
// architectures (whole graph), .dot and .gv are rqt_graph exports.
func (m *Manager) Load(ctx context.Context, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return m.LoadCaret(ctx, path, caret.AllGraph)
	case ".dot", ".gv":
		return m.LoadDot(ctx, path)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported graph file: %s", path)
	}
}

// LoadCaret loads a CARET architecture file. target is [caret.AllGraph] or
// the name of a named path.
func (m *Manager) LoadCaret(ctx context.Context, path, target string) error {
	start := time.Now()
	observability.Pipeline().OnParseStart(ctx, string(KindCaret), path)
	g, arch, err := caret.Parse(path, target, m.displayUnconnected())
	if err == nil {
		err = caret.ExtendCallbackGroups(arch, g, m.cfg.Extend)
	}
	observability.Pipeline().OnParseComplete(ctx, string(KindCaret), path, nodeCount(g), time.Since(start), err)
	if err != nil {
		return err
	}

	st := &staged{graph: g}
	if err := m.postprocess(ctx, st, path); err != nil {
		return err
	}
	st.paths.Merge(caret.ExtractPaths(arch))

	m.commit(st, Source{Kind: KindCaret, Path: path, Target: target})
	return nil
}

// LoadDot loads an rqt_graph DOT export.
func (m *Manager) LoadDot(ctx context.Context, path string) error {
	start := time.Now()
	observability.Pipeline().OnParseStart(ctx, string(KindDot), path)
	g, err := dot.ParseFile(path, m.displayUnconnected())
	observability.Pipeline().OnParseComplete(ctx, string(KindDot), path, nodeCount(g), time.Since(start), err)
	if err != nil {
		return err
	}

	st := &staged{graph: g}
	if err := m.postprocess(ctx, st, path); err != nil {
		return err
	}
	m.commit(st, Source{Kind: KindDot, Path: path})
	return nil
}

// LoadRunning loads a snapshot of a running system. The source's own
// observer node is removed from the graph. Layout files for live graphs
// live in the working directory.
func (m *Manager) LoadRunning(ctx context.Context, src live.Source) error {
	if src == nil {
		return errors.New(errors.ErrCodeUnsupported, "no live graph source configured")
	}

	start := time.Now()
	observability.Pipeline().OnParseStart(ctx, string(KindLive), "")
	g, err := m.parseLive(ctx, src)
	observability.Pipeline().OnParseComplete(ctx, string(KindLive), "", nodeCount(g), time.Since(start), err)
	if err != nil {
		return err
	}

	st := &staged{graph: g}
	if err := m.postprocess(ctx, st, ""); err != nil {
		return err
	}
	m.commit(st, Source{Kind: KindLive, live: src})
	return nil
}

func (m *Manager) parseLive(ctx context.Context, src live.Source) (*graph.Graph, error) {
	data, err := src.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	g, _, err := dot.Parse(data, m.displayUnconnected())
	if err != nil {
		return nil, err
	}
	if obs := src.Observer(); obs != "" {
		g.RemoveNode(obs)
	}
	return g, nil
}

// Reload repeats the last successful load with the current configuration.
func (m *Manager) Reload(ctx context.Context) error {
	src := m.source
	switch src.Kind {
	case KindCaret:
		return m.LoadCaret(ctx, src.Path, src.Target)
	case KindDot:
		return m.LoadDot(ctx, src.Path)
	case KindLive:
		return m.LoadRunning(ctx, src.live)
	default:
		return errors.New(errors.ErrCodeUnsupported, "nothing loaded yet")
	}
}

// =============================================================================
// Post-processing
// =============================================================================

// postprocess runs the stages shared by every source: name validation,
// directory capture, path reset, filtering, layout and recentering.
func (m *Manager) postprocess(ctx context.Context, st *staged, path string) error {
	if err := validateNames(st.graph); err != nil {
		return err
	}
	st.dir = filepath.Dir(path)
	st.paths = graph.NewPaths()
	st.paths.Clear()

	f, err := filter.New(m.cfg.Filter)
	if err != nil {
		return err
	}
	res := f.Apply(st.graph)
	observability.Pipeline().OnFilterComplete(ctx, res.Topics, res.Nodes, res.Isolated)
	m.logger.Info("removed by filter", "topics", res.Topics, "nodes", res.Nodes, "isolated", res.Isolated)

	if st.graph.NodeCount() == 0 {
		return nil
	}
	if err := layout.Place(ctx, st.graph, m.cfg.Groups, m.cfg.Engine); err != nil {
		return err
	}
	if shift, ok := layout.Align(st.graph); ok {
		m.logger.Debug("recentered layout", "dx", shift.X, "dy", shift.Y)
	}
	return nil
}

func (m *Manager) commit(st *staged, src Source) {
	m.graph = st.graph
	m.paths = st.paths
	m.dir = st.dir
	m.source = src
	m.auto = st.graph.Positions()
	m.revision = uuid.NewString()

	m.logger.Info("loaded graph",
		"kind", src.Kind,
		"nodes", st.graph.NodeCount(),
		"edges", st.graph.EdgeCount(),
		"paths", st.paths.Len()-1)
}

// displayUnconnected reports whether parsers should keep nodes without
// edges. They are kept unless the filter would drop them anyway.
func (m *Manager) displayUnconnected() bool { return !m.cfg.Filter.IgnoreUnconnected }

// validateNames rejects graphs containing a node that is not an absolute
// ROS name.
func validateNames(g *graph.Graph) error {
	for _, id := range g.NodeIDs() {
		if err := errors.ValidateNodeName(graph.Unquote(id)); err != nil {
			return err
		}
	}
	return nil
}

func nodeCount(g *graph.Graph) int {
	if g == nil {
		return 0
	}
	return g.NodeCount()
}
