package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/rosview/pkg/graph"
	"github.com/matzehuels/rosview/pkg/layout"
)

func summaryGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	for _, e := range []graph.Edge{
		{From: `"/sensing/lidar"`, To: `"/planning/planner"`, Label: "/points"},
		{From: `"/sensing/camera"`, To: `"/planning/planner"`, Label: "/image"},
		{From: `"/planning/planner"`, To: `"/control"`, Label: "/trajectory"},
		{From: `"/sensing/lidar"`, To: `"/control"`, Label: "/points"},
	} {
		if err := g.AddEdge(e); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestGraphSummary(t *testing.T) {
	g := summaryGraph(t)

	tests := []struct {
		name  string
		paths func() *graph.Paths
		want  string
	}{
		{"NoPaths", graph.NewPaths, "4 nodes · 4 edges · 3 topics"},
		{"ClearOnly", func() *graph.Paths {
			p := graph.NewPaths()
			p.Clear()
			return p
		}, "4 nodes · 4 edges · 3 topics"},
		{"Named", func() *graph.Paths {
			p := graph.NewPaths()
			p.Clear()
			p.Set("sense_to_act", []string{`"/sensing/lidar"`, `"/control"`})
			return p
		}, "4 nodes · 4 edges · 3 topics · 1 path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printer{w: &buf}.graphSummary(g, tt.paths())
			if got := strings.TrimSpace(buf.String()); got != tt.want {
				t.Errorf("graphSummary = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGroupSummary(t *testing.T) {
	g := summaryGraph(t)
	groups := layout.Groups{
		{Name: "/sensing", Direction: layout.Vertical, Offset: [4]float64{0, 0, 0.5, 1}},
		{Name: "/localization", Direction: layout.Vertical, Offset: [4]float64{0.5, 0, 0.5, 1}},
	}

	var buf bytes.Buffer
	printer{w: &buf}.groupSummary(g, groups)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	if len(lines) != 2 {
		t.Fatalf("groupSummary printed %d lines, want 2:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "/sensing") || !strings.Contains(lines[0], "2 nodes") {
		t.Errorf("first line = %q, want /sensing with 2 nodes", lines[0])
	}
	if !strings.Contains(lines[1], layout.Others) || !strings.Contains(lines[1], "2 nodes") {
		t.Errorf("second line = %q, want %s with 2 nodes", lines[1], layout.Others)
	}
	if strings.Contains(buf.String(), "/localization") {
		t.Error("empty group should be skipped")
	}
}

func TestPathList(t *testing.T) {
	paths := graph.NewPaths()
	paths.Clear()
	paths.Set("sense_to_act", []string{`"/sensing/lidar"`, `"/planning/planner"`, `"/control"`})

	var buf bytes.Buffer
	printer{w: &buf}.pathList(paths, graph.OmitLast)
	got := buf.String()

	for _, want := range []string{"sense_to_act", "3 nodes", "/lidar → /control"} {
		if !strings.Contains(got, want) {
			t.Errorf("pathList output %q missing %q", got, want)
		}
	}
	if strings.Contains(got, graph.ClearPath) {
		t.Errorf("pathList listed the clear entry: %q", got)
	}

	buf.Reset()
	printer{w: &buf}.pathList(graph.NewPaths(), graph.OmitFull)
	if !strings.Contains(buf.String(), "No named paths") {
		t.Errorf("empty pathList = %q", buf.String())
	}
}

func TestPathSpan(t *testing.T) {
	tests := []struct {
		nodes []string
		want  string
	}{
		{nil, "—"},
		{[]string{`"/a/b"`}, "/a/b"},
		{[]string{`"/a/b"`, `"/c"`, `"/d/e"`}, "/a/b → /d/e"},
	}
	for _, tt := range tests {
		if got := pathSpan(tt.nodes, graph.OmitFull); got != tt.want {
			t.Errorf("pathSpan(%v) = %q, want %q", tt.nodes, got, tt.want)
		}
	}
}

func TestPlural(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 nodes"},
		{1, "1 node"},
		{2, "2 nodes"},
	}
	for _, tt := range tests {
		if got := plural(tt.n, "node"); got != tt.want {
			t.Errorf("plural(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
