package filter

import (
	"slices"
	"testing"

	"github.com/matzehuels/rosview/pkg/errors"
	"github.com/matzehuels/rosview/pkg/graph"
)

func srcDst() *graph.Graph {
	g := graph.New()
	g.AddEdge(graph.Edge{From: `"/node_src"`, To: `"/node_dst"`, Label: "/t"})
	return g
}

func sample() *graph.Graph {
	g := graph.New()
	g.AddEdge(graph.Edge{From: `"/a"`, To: `"/b"`, Label: "/t"})
	g.AddEdge(graph.Edge{From: `"/a"`, To: `"/b"`, Label: "/rosout"})
	g.AddEdge(graph.Edge{From: `"/b"`, To: `"/c"`, Label: "/t2"})
	g.AddEdge(graph.Edge{From: `"/rviz"`, To: `"/c"`, Label: "/marker"})
	g.AddNode(`"/lonely"`)
	return g
}

func TestApply(t *testing.T) {
	tests := []struct {
		name      string
		opts      Options
		build     func() *graph.Graph
		want      Result
		wantNodes []string
		wantEdges int
	}{
		{
			name:      "NoPatterns",
			opts:      Options{},
			build:     srcDst,
			wantNodes: []string{`"/node_src"`, `"/node_dst"`},
			wantEdges: 1,
		},
		{
			name:      "TopicKeepsNodes",
			opts:      Options{IgnoreTopics: []string{"/t"}},
			build:     srcDst,
			want:      Result{Topics: 1},
			wantNodes: []string{`"/node_src"`, `"/node_dst"`},
		},
		{
			name:  "TopicThenIsolated",
			opts:  Options{IgnoreTopics: []string{"/t"}, IgnoreUnconnected: true},
			build: srcDst,
			want:  Result{Topics: 1, Isolated: 2},
		},
		{
			name:      "FullMatchOnly",
			opts:      Options{IgnoreTopics: []string{"/t"}},
			build:     sample,
			want:      Result{Topics: 1},
			wantNodes: []string{`"/a"`, `"/b"`, `"/c"`, `"/rviz"`, `"/lonely"`},
			wantEdges: 3,
		},
		{
			name:      "NodePattern",
			opts:      Options{IgnoreNodes: []string{"/rv.*"}},
			build:     sample,
			want:      Result{Nodes: 1},
			wantNodes: []string{`"/a"`, `"/b"`, `"/c"`, `"/lonely"`},
			wantEdges: 3,
		},
		{
			name: "AllSteps",
			opts: Options{
				IgnoreTopics:      []string{"/rosout", "/t2"},
				IgnoreNodes:       []string{"/rviz"},
				IgnoreUnconnected: true,
			},
			build:     sample,
			want:      Result{Topics: 2, Nodes: 1, Isolated: 2},
			wantNodes: []string{`"/a"`, `"/b"`},
			wantEdges: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(tt.opts)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			g := tt.build()
			got := f.Apply(g)
			if got != tt.want {
				t.Errorf("Result = %+v, want %+v", got, tt.want)
			}
			if ids := g.NodeIDs(); !slices.Equal(ids, tt.wantNodes) {
				t.Errorf("nodes = %v, want %v", ids, tt.wantNodes)
			}
			if g.EdgeCount() != tt.wantEdges {
				t.Errorf("EdgeCount = %d, want %d", g.EdgeCount(), tt.wantEdges)
			}
		})
	}
}

func TestApplyIdempotent(t *testing.T) {
	f, err := New(Options{
		IgnoreTopics:      []string{"/rosout"},
		IgnoreNodes:       []string{"/rviz"},
		IgnoreUnconnected: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	g := sample()
	f.Apply(g)
	nodes, edges := g.NodeIDs(), g.Edges()

	if again := f.Apply(g); again != (Result{}) {
		t.Errorf("second Apply removed %+v", again)
	}
	if !slices.Equal(g.NodeIDs(), nodes) || !slices.Equal(g.Edges(), edges) {
		t.Error("second Apply changed the graph")
	}
}

func TestNewInvalidPattern(t *testing.T) {
	_, err := New(Options{IgnoreNodes: []string{"[unclosed"}})
	if !errors.Is(err, errors.ErrCodeInvalidSetting) {
		t.Errorf("error = %v, want INVALID_SETTING", err)
	}
}

func TestMatch(t *testing.T) {
	f, _ := New(Options{IgnoreNodes: []string{"/rviz.*"}, IgnoreTopics: []string{"/tf"}})
	if !f.MatchNode(`"/rviz2"`) || f.MatchNode(`"/a/rviz"`) {
		t.Error("MatchNode should full-match the unquoted name")
	}
	if !f.MatchTopic("/tf") || f.MatchTopic("/tf_static") {
		t.Error("MatchTopic should full-match")
	}
}
