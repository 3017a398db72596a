// Package manager owns the canonical ROS graph and drives the load pipeline.
//
// Every load runs the same stages to completion:
//
//  1. Parse: CARET architecture YAML, rqt_graph DOT, or a live snapshot
//  2. Extend: callback groups and named paths (CARET only)
//  3. Filter: ignore lists and isolated nodes
//  4. Layout: grouped placement, then recentering
//
// All stages work on a staging copy. The manager's graph, paths, directory
// and revision change only when the whole load succeeds, so a failed load
// keeps the previous graph on screen.
//
// A Manager is not safe for concurrent use. Callers that share one (such as
// the HTTP server) serialize access themselves.
package manager

import (
	"io"
	"maps"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rosview/pkg/errors"
	"github.com/matzehuels/rosview/pkg/filter"
	"github.com/matzehuels/rosview/pkg/graph"
	"github.com/matzehuels/rosview/pkg/layout"
	"github.com/matzehuels/rosview/pkg/positions"
	"github.com/matzehuels/rosview/pkg/source/caret"
	"github.com/matzehuels/rosview/pkg/source/live"
)

// Config configures a Manager.
type Config struct {
	Filter filter.Options
	Groups layout.Groups

	// Engine computes per-group layouts. Defaults to Graphviz "dot".
	Engine layout.Engine

	// Store persists manual layouts. Defaults to layout.json files.
	Store positions.Store

	// Extend configures callback-group coloring for CARET sources.
	Extend caret.ExtendOptions

	Logger *log.Logger
}

// Kind identifies the type of a graph source.
type Kind string

const (
	KindNone  Kind = ""
	KindCaret Kind = "caret"
	KindDot   Kind = "dot"
	KindLive  Kind = "live"
)

// Source describes the last successful load.
type Source struct {
	Kind   Kind   `json:"kind"`
	Path   string `json:"path,omitempty"`
	Target string `json:"target,omitempty"`

	live live.Source
}

// Neighbors lists the nodes directly connected to a node.
type Neighbors struct {
	Publishers  []string `json:"publishers"`
	Subscribers []string `json:"subscribers"`
}

// Manager holds the current graph and everything derived from it.
type Manager struct {
	cfg    Config
	logger *log.Logger

	graph    *graph.Graph
	paths    *graph.Paths
	dir      string
	revision string
	source   Source
	auto     map[string]graph.Point
}

// New creates a manager with an empty graph.
func New(cfg Config) *Manager {
	if cfg.Engine == nil {
		cfg.Engine = &layout.Graphviz{}
	}
	if cfg.Store == nil {
		cfg.Store = positions.NewFileStore()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.Extend.Logger == nil {
		cfg.Extend.Logger = cfg.Logger
	}
	return &Manager{
		cfg:    cfg,
		logger: cfg.Logger,
		graph:  graph.New(),
		paths:  graph.NewPaths(),
		dir:    ".",
		auto:   map[string]graph.Point{},
	}
}

// Graph returns the current graph. Callers may move nodes but must not
// change the node or edge set.
func (m *Manager) Graph() *graph.Graph { return m.graph }

// Paths returns a copy of the named paths of the current source.
func (m *Manager) Paths() *graph.Paths { return m.paths.Clone() }

// ClearPaths drops every named path, leaving only [graph.ClearPath].
func (m *Manager) ClearPaths() { m.paths.Clear() }

// Dir returns the directory of the current source. Layout files are
// stored there.
func (m *Manager) Dir() string { return m.dir }

// Revision identifies the current graph. It changes on every successful load.
func (m *Manager) Revision() string { return m.revision }

// Source returns the last successful load.
func (m *Manager) Source() Source { return m.source }

// Groups returns the configured layout groups.
func (m *Manager) Groups() layout.Groups { return m.cfg.Groups.WithFallback() }

// Filter returns the active filter options.
func (m *Manager) Filter() filter.Options { return m.cfg.Filter }

// SetFilter replaces the filter options used by subsequent loads. Call
// [Manager.Reload] to apply them to the current source.
func (m *Manager) SetFilter(opts filter.Options) error {
	if _, err := filter.New(opts); err != nil {
		return err
	}
	m.cfg.Filter = opts
	return nil
}

// Neighbors returns the publishers and subscribers of a node. The name may
// be given quoted or unquoted.
func (m *Manager) Neighbors(name string) (Neighbors, error) {
	id := graph.Quote(name)
	if !m.graph.HasNode(id) {
		return Neighbors{}, errors.New(errors.ErrCodeUnknownNode, "node %s not in graph", id)
	}
	return Neighbors{
		Publishers:  nonNil(m.graph.Publishers(id)),
		Subscribers: nonNil(m.graph.Subscribers(id)),
	}, nil
}

// AutoPositions returns the positions computed by the last automatic layout.
func (m *Manager) AutoPositions() map[string]graph.Point { return maps.Clone(m.auto) }

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
