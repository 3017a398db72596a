package positions

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	rverrors "github.com/matzehuels/rosview/pkg/errors"
	"github.com/matzehuels/rosview/pkg/graph"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewFileStore()

	if _, err := s.Load(ctx, dir); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load(empty) = %v, want ErrNotFound", err)
	}

	want := Layout{`"/a"`: {X: 0.25, Y: -0.5}, `"/b"`: {X: 1, Y: 2}}
	if err := s.Save(ctx, dir, want); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "\n    \"\\\"/a\\\"\": [\n        0.25,\n        -0.5\n    ]") {
		t.Errorf("unexpected file layout:\n%s", data)
	}

	got, err := s.Load(ctx, dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[`"/a"`] != want[`"/a"`] || got[`"/b"`] != want[`"/b"`] {
		t.Errorf("Load() = %v, want %v", got, want)
	}

	if err := s.Delete(ctx, dir); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, dir); err != nil {
		t.Errorf("second Delete() = %v", err)
	}
	if _, err := s.Load(ctx, dir); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(deleted) = %v", err)
	}
}

func TestFileStoreInvalid(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := NewFileStore().Load(context.Background(), dir)
	if !rverrors.Is(err, rverrors.ErrCodeInvalidFormat) {
		t.Errorf("Load() = %v, want INVALID_FORMAT", err)
	}
}

func TestFileStorePath(t *testing.T) {
	if got := NewFileStore().Path(""); got != FileName {
		t.Errorf("Path(\"\") = %q", got)
	}
}

func TestApply(t *testing.T) {
	g := graph.New()
	if err := g.AddEdge(graph.Edge{From: `"/a"`, To: `"/b"`, Label: "/t"}); err != nil {
		t.Fatal(err)
	}
	n := Apply(g, Layout{`"/a"`: {X: 3, Y: 4}, `"/gone"`: {X: 1, Y: 1}})
	if n != 1 {
		t.Errorf("Apply() = %d, want 1", n)
	}
	a, _ := g.Node(`"/a"`)
	if !a.Placed || a.Pos != (graph.Point{X: 3, Y: 4}) {
		t.Errorf("node = %+v", a)
	}
	if b, _ := g.Node(`"/b"`); b.Placed {
		t.Error("unlisted node moved")
	}
}

func TestRedisStoreKey(t *testing.T) {
	s := NewRedisStoreFromClient(nil)
	if got := s.Key("/ws/arch"); got != "rosview:layout:/ws/arch" {
		t.Errorf("Key() = %q", got)
	}
}
