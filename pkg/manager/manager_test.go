package manager

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/matzehuels/rosview/pkg/errors"
	"github.com/matzehuels/rosview/pkg/filter"
	"github.com/matzehuels/rosview/pkg/graph"
	"github.com/matzehuels/rosview/pkg/source/caret"
	"github.com/matzehuels/rosview/pkg/source/live"
)

// rowEngine places nodes on a diagonal in graph order.
type rowEngine struct {
	calls int
	err   error
}

func (e *rowEngine) Layout(_ context.Context, g *graph.Graph) (map[string]graph.Point, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	out := make(map[string]graph.Point)
	for i, id := range g.NodeIDs() {
		out[id] = graph.Point{X: float64(i), Y: float64(2 * i)}
	}
	return out, nil
}

func newManager(t *testing.T, opts filter.Options) (*Manager, *rowEngine) {
	t.Helper()
	engine := &rowEngine{}
	return New(Config{Filter: opts, Engine: engine}), engine
}

func copyFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewIsEmpty(t *testing.T) {
	m, _ := newManager(t, filter.Options{})
	if m.Graph().NodeCount() != 0 || m.Paths().Len() != 0 {
		t.Errorf("new manager not empty")
	}
	if m.Dir() != "." || m.Revision() != "" || m.Source().Kind != KindNone {
		t.Errorf("dir=%q revision=%q source=%+v", m.Dir(), m.Revision(), m.Source())
	}
}

func TestLoadCaretAllGraph(t *testing.T) {
	m, engine := newManager(t, filter.Options{})
	path := filepath.Join("testdata", "architecture.yaml")
	if err := m.LoadCaret(context.Background(), path, caret.AllGraph); err != nil {
		t.Fatalf("LoadCaret() = %v", err)
	}

	g := m.Graph()
	want := []string{`"/node_src"`, `"/node_dst"`, `"/node_sink"`, `"/node_lonely"`}
	if got := g.NodeIDs(); !slices.Equal(got, want) {
		t.Errorf("nodes = %v, want %v", got, want)
	}
	if g.EdgeCount() != 2 || !g.HasEdge(`"/node_src"`, `"/node_dst"`, "/t") || !g.HasEdge(`"/node_dst"`, `"/node_sink"`, "/u") {
		t.Errorf("edges = %v", g.Edges())
	}
	for _, n := range g.Nodes() {
		if !n.Placed {
			t.Errorf("%s not placed", n.ID)
		}
	}
	if engine.calls != 1 {
		t.Errorf("engine calls = %d, want 1", engine.calls)
	}

	src, _ := g.Node(`"/node_src"`)
	if len(src.CallbackGroups) != 1 || src.CallbackGroups[0].Color != graph.White {
		t.Errorf("callback groups = %+v", src.CallbackGroups)
	}

	names := m.Paths().Names()
	if !slices.Equal(names, []string{graph.ClearPath, "target_path_0", "target_path_1"}) {
		t.Errorf("paths = %v", names)
	}
	if m.Dir() != "testdata" {
		t.Errorf("Dir() = %q", m.Dir())
	}
	if m.Revision() == "" {
		t.Error("Revision() empty after load")
	}
	if s := m.Source(); s.Kind != KindCaret || s.Path != path || s.Target != caret.AllGraph {
		t.Errorf("Source() = %+v", s)
	}
}

func TestLoadCaretFilter(t *testing.T) {
	m, _ := newManager(t, filter.Options{IgnoreTopics: []string{"/t"}, IgnoreUnconnected: true})
	if err := m.Load(context.Background(), filepath.Join("testdata", "architecture.yaml")); err != nil {
		t.Fatal(err)
	}
	got := m.Graph().NodeIDs()
	if !slices.Equal(got, []string{`"/node_dst"`, `"/node_sink"`}) {
		t.Errorf("nodes = %v", got)
	}
}

func TestLoadCaretEmptyPathSkipsLayout(t *testing.T) {
	m, engine := newManager(t, filter.Options{})
	if err := m.LoadCaret(context.Background(), filepath.Join("testdata", "architecture.yaml"), "target_path_1"); err != nil {
		t.Fatal(err)
	}
	if m.Graph().NodeCount() != 0 {
		t.Errorf("nodes = %v", m.Graph().NodeIDs())
	}
	if engine.calls != 0 {
		t.Errorf("engine ran on empty graph")
	}
}

func TestFailedLoadKeepsState(t *testing.T) {
	ctx := context.Background()
	m, engine := newManager(t, filter.Options{})
	if err := m.Load(ctx, filepath.Join("testdata", "architecture.yaml")); err != nil {
		t.Fatal(err)
	}
	g, rev := m.Graph(), m.Revision()

	relative := filepath.Join(t.TempDir(), "relative.yaml")
	arch := `named_paths:
- path_name: p
  node_chain:
  - node_name: node_src
    publish_topic_name: /t
    subscribe_topic_name: UNDEFINED
  - node_name: /node_dst
    publish_topic_name: UNDEFINED
    subscribe_topic_name: /t
nodes:
- node_name: node_src
- node_name: /node_dst
`
	if err := os.WriteFile(relative, []byte(arch), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		load func() error
		code errors.Code
	}{
		{"unknown path", func() error {
			return m.LoadCaret(ctx, filepath.Join("testdata", "architecture.yaml"), "no_such_path")
		}, errors.ErrCodeUnknownPath},
		{"relative node name", func() error { return m.LoadCaret(ctx, relative, "p") }, errors.ErrCodeInvalidName},
		{"relative dot label", func() error {
			return m.LoadRunning(ctx, live.Static{DOT: []byte(`digraph { a [label="a"]; b [label="/b"]; a -> b [label="/t"]; }`)})
		}, errors.ErrCodeInvalidName},
		{"missing file", func() error { return m.Load(ctx, filepath.Join("testdata", "missing.dot")) }, errors.ErrCodeFileNotFound},
		{"extension", func() error { return m.Load(ctx, "graph.txt") }, errors.ErrCodeInvalidFormat},
		{"no live source", func() error { return m.LoadRunning(ctx, nil) }, errors.ErrCodeUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.load(); !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
			if m.Graph() != g || m.Revision() != rev || m.Dir() != "testdata" {
				t.Error("failed load changed manager state")
			}
		})
	}

	engine.err = stderrors.New("layout failed")
	if err := m.LoadDot(ctx, filepath.Join("testdata", "rosgraph_nodetopic.dot")); err == nil {
		t.Fatal("expected layout error")
	}
	if m.Graph() != g || m.Source().Kind != KindCaret {
		t.Error("layout failure changed manager state")
	}
}

func TestLoadDot(t *testing.T) {
	m, _ := newManager(t, filter.Options{})
	if err := m.Load(context.Background(), filepath.Join("testdata", "rosgraph_nodetopic.dot")); err != nil {
		t.Fatal(err)
	}
	g := m.Graph()
	for _, e := range [][2]string{{"a", "c"}, {"a", "d"}, {"b", "c"}, {"b", "d"}} {
		if !g.HasEdge(graph.Quote("/"+e[0]), graph.Quote("/"+e[1]), "/x") {
			t.Errorf("missing edge %s -> %s", e[0], e[1])
		}
	}
	if g.HasNode(`"/idle"`) || g.HasNode(`"/x"`) {
		t.Error("topic-mode graph contains unconnected node or topic")
	}
	if names := m.Paths().Names(); !slices.Equal(names, []string{graph.ClearPath}) {
		t.Errorf("paths = %v", names)
	}
	if m.Source().Kind != KindDot {
		t.Errorf("Source() = %+v", m.Source())
	}
}

func TestLoadRunning(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "rosgraph_nodeonly.dot"))
	if err != nil {
		t.Fatal(err)
	}
	m, _ := newManager(t, filter.Options{})
	src := live.Static{DOT: data, ObserverNode: `"/monitor"`}
	if err := m.LoadRunning(context.Background(), src); err != nil {
		t.Fatal(err)
	}
	g := m.Graph()
	if g.HasNode(`"/monitor"`) {
		t.Error("observer node not removed")
	}
	if !g.HasEdge(`"/talker"`, `"/listener"`, "/chatter") {
		t.Errorf("edges = %v", g.Edges())
	}
	if m.Dir() != "." || m.Source().Kind != KindLive {
		t.Errorf("dir=%q source=%+v", m.Dir(), m.Source())
	}

	first := m.Revision()
	if err := m.Reload(context.Background()); err != nil {
		t.Fatal(err)
	}
	if m.Revision() == first {
		t.Error("Reload() did not change revision")
	}
}

func TestReloadWithFilter(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t, filter.Options{})
	if err := m.Reload(ctx); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Reload() before load = %v", err)
	}
	if err := m.Load(ctx, filepath.Join("testdata", "architecture.yaml")); err != nil {
		t.Fatal(err)
	}

	if err := m.SetFilter(filter.Options{IgnoreNodes: []string{"("}}); !errors.Is(err, errors.ErrCodeInvalidSetting) {
		t.Errorf("SetFilter(invalid) = %v", err)
	}
	if err := m.SetFilter(filter.Options{IgnoreNodes: []string{"/node_s.*"}}); err != nil {
		t.Fatal(err)
	}
	if err := m.Reload(ctx); err != nil {
		t.Fatal(err)
	}
	if got := m.Graph().NodeIDs(); !slices.Equal(got, []string{`"/node_dst"`, `"/node_lonely"`}) {
		t.Errorf("nodes = %v", got)
	}
}

func TestClearPaths(t *testing.T) {
	m, _ := newManager(t, filter.Options{})
	if err := m.Load(context.Background(), filepath.Join("testdata", "architecture.yaml")); err != nil {
		t.Fatal(err)
	}
	m.ClearPaths()
	p := m.Paths()
	nodes, ok := p.Get(graph.ClearPath)
	if p.Len() != 1 || !ok || len(nodes) != 0 {
		t.Errorf("paths after clear = %v", p.Names())
	}
}

func TestNeighbors(t *testing.T) {
	m, _ := newManager(t, filter.Options{})
	if err := m.Load(context.Background(), filepath.Join("testdata", "architecture.yaml")); err != nil {
		t.Fatal(err)
	}
	nb, err := m.Neighbors("/node_dst")
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(nb.Publishers, []string{`"/node_src"`}) || !slices.Equal(nb.Subscribers, []string{`"/node_sink"`}) {
		t.Errorf("Neighbors() = %+v", nb)
	}
	nb, err = m.Neighbors(`"/node_lonely"`)
	if err != nil || nb.Publishers == nil || len(nb.Subscribers) != 0 {
		t.Errorf("Neighbors(lonely) = %+v, %v", nb, err)
	}
	if _, err := m.Neighbors("/nope"); !errors.Is(err, errors.ErrCodeUnknownNode) {
		t.Errorf("Neighbors(unknown) = %v", err)
	}
}

func TestLayoutSideChannel(t *testing.T) {
	ctx := context.Background()
	path := copyFixture(t, "architecture.yaml")
	m, _ := newManager(t, filter.Options{})
	if err := m.Load(ctx, path); err != nil {
		t.Fatal(err)
	}

	if n, err := m.LoadLayout(ctx); err != nil || n != 0 {
		t.Fatalf("LoadLayout() without file = %d, %v", n, err)
	}

	src, _ := m.Graph().Node(`"/node_src"`)
	auto := src.Pos
	moved := graph.Point{X: 0.9, Y: 0.1}

	src.SetPos(moved)
	if err := m.SaveLayout(ctx, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(path), "layout.json")); err != nil {
		t.Fatalf("layout.json not written: %v", err)
	}

	reset := m.ResetLayout()
	if src.Pos != auto || reset[`"/node_src"`] != auto {
		t.Errorf("ResetLayout() left node at %v, want %v", src.Pos, auto)
	}

	n, err := m.LoadLayout(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 || src.Pos != moved {
		t.Errorf("LoadLayout() applied %d, node at %v", n, src.Pos)
	}

	if err := m.DeleteLayout(ctx); err != nil {
		t.Fatal(err)
	}
	if n, _ := m.LoadLayout(ctx); n != 0 {
		t.Errorf("LoadLayout() after delete applied %d", n)
	}
}
