package dot

import (
	"path/filepath"
	"slices"
	"testing"

	"github.com/matzehuels/rosview/pkg/errors"
)

func TestParseNodeOnly(t *testing.T) {
	tests := []struct {
		name               string
		displayUnconnected bool
		wantNodes          []string
	}{
		{"ConnectedOnly", false, []string{`"/talker"`, `"/listener"`, `"/monitor"`}},
		{"WithUnconnected", true, []string{`"/talker"`, `"/listener"`, `"/monitor"`, `"/lonely"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ParseFile("testdata/rosgraph_nodeonly.dot", tt.displayUnconnected)
			if err != nil {
				t.Fatalf("ParseFile: %v", err)
			}
			got := g.NodeIDs()
			slices.Sort(got)
			want := slices.Clone(tt.wantNodes)
			slices.Sort(want)
			if !slices.Equal(got, want) {
				t.Errorf("nodes = %v, want %v", got, want)
			}

			// The unlabeled listener -> monitor edge is dropped; the duplicate
			// /chatter edge is kept.
			if g.EdgeCount() != 4 {
				t.Errorf("EdgeCount = %d, want 4: %v", g.EdgeCount(), g.Edges())
			}
			for _, e := range g.Edges() {
				if e.Label == "" {
					t.Errorf("edge %v has no label", e)
				}
			}
			if !g.HasEdge(`"/talker"`, `"/monitor"`, "/status") {
				t.Error("missing /talker -> /monitor on /status")
			}
		})
	}
}

func TestParseNodeTopic(t *testing.T) {
	g, err := ParseFile("testdata/rosgraph_nodetopic.dot", true)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}

	if g.EdgeCount() != 4 {
		t.Fatalf("EdgeCount = %d, want 4: %v", g.EdgeCount(), g.Edges())
	}
	for _, pair := range [][2]string{{"/a", "/c"}, {"/a", "/d"}, {"/b", "/c"}, {"/b", "/d"}} {
		if !g.HasEdge(`"`+pair[0]+`"`, `"`+pair[1]+`"`, "/x") {
			t.Errorf("missing edge %s -> %s on /x", pair[0], pair[1])
		}
	}
	if g.HasNode(`"/idle"`) || g.HasNode(`"/x"`) {
		t.Errorf("unexpected nodes: %v", g.NodeIDs())
	}
}

func TestParseClusteredTopics(t *testing.T) {
	src := `digraph graphname {
		node [label="\N"];
		subgraph cluster_x {
			graph [label="/x"];
			t__x [label="/x", shape=box];
		}
		subgraph cluster_y {
			graph [label="/y"];
			t__y [label="/y", shape=box];
		}
		n__a [label="/a", shape=ellipse];
		n__b [label="/b", shape=ellipse];
		n__c [label="/c", shape=ellipse];
		n__d [label="/d", shape=ellipse];
		n__a -> t__x;
		t__x -> n__c;
		n__b -> t__y;
		t__y -> n__d;
	}`
	g, mode, err := Parse([]byte(src), true)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if mode != ModeNodeTopic {
		t.Errorf("mode = %v, want node_topic", mode)
	}
	if g.EdgeCount() != 2 {
		t.Fatalf("EdgeCount = %d, want 2: %v", g.EdgeCount(), g.Edges())
	}
	if !g.HasEdge(`"/a"`, `"/c"`, "/x") {
		t.Errorf("missing /a -> /c on /x: %v", g.Edges())
	}
	if !g.HasEdge(`"/b"`, `"/d"`, "/y") {
		t.Errorf("missing /b -> /d on /y: %v", g.Edges())
	}
}

func TestParseIgnoresNodeDefaults(t *testing.T) {
	tests := []struct {
		name               string
		displayUnconnected bool
		wantNodes          []string
	}{
		{"ConnectedOnly", false, nil},
		{"WithUnconnected", true, []string{`"/a"`}},
	}
	src := `digraph {
		node [label="\N"];
		_a [label="/a"];
		_a -> _b [label="/t"];
	}`
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _, err := Parse([]byte(src), tt.displayUnconnected)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if g.EdgeCount() != 0 {
				t.Errorf("edges = %v, want none", g.Edges())
			}
			if got := g.NodeIDs(); !slices.Equal(got, tt.wantNodes) {
				t.Errorf("nodes = %v, want %v", got, tt.wantNodes)
			}
		})
	}
}

func TestParseDetectsMode(t *testing.T) {
	tests := []struct {
		src  string
		want Mode
	}{
		{`digraph { a [label="/a", shape=ellipse]; }`, ModeNodeOnly},
		{`digraph { a [label="/a"]; b [label="/b"]; a -> b [label="/t"]; }`, ModeNodeOnly},
		{`digraph { a [label="/a", shape=ellipse]; t [label="/t", shape=box]; }`, ModeNodeTopic},
	}
	for _, tt := range tests {
		_, mode, err := Parse([]byte(tt.src), true)
		if err != nil {
			t.Fatalf("Parse(%s): %v", tt.src, err)
		}
		if mode != tt.want {
			t.Errorf("Parse(%s) mode = %v, want %v", tt.src, mode, tt.want)
		}
	}
}

func TestParseQuotedLabels(t *testing.T) {
	src := `digraph {
		a [label="\"/a\""];
		b [label="/b"];
		a -> b [label="\"/t\""];
	}`
	g, _, err := Parse([]byte(src), false)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !g.HasEdge(`"/a"`, `"/b"`, "/t") {
		t.Errorf("edges = %v", g.Edges())
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.dot"), true); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
	if _, _, err := Parse([]byte("digraph { a -> "), true); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("syntax error = %v, want INVALID_FORMAT", err)
	}
}
