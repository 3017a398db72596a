package bindings

import (
	"slices"
	"testing"

	"github.com/matzehuels/rosview/pkg/graph"
)

func TestBind(t *testing.T) {
	b := New[int]()
	b.Bind(`"/a"`, 1)
	b.Bind(`"/b"`, 2)

	if h, ok := b.Handle(`"/a"`); !ok || h != 1 {
		t.Errorf("Handle(a) = %d, %v", h, ok)
	}
	if k, ok := b.Key(2); !ok || k != `"/b"` {
		t.Errorf("Key(2) = %q, %v", k, ok)
	}

	// rebinding a key drops its old handle
	b.Bind(`"/a"`, 3)
	if _, ok := b.Key(1); ok {
		t.Error("old handle still bound")
	}

	// binding a taken handle moves it
	b.Bind(`"/c"`, 2)
	if _, ok := b.Handle(`"/b"`); ok {
		t.Error("key of moved handle still bound")
	}
	if got := b.Keys(); !slices.Equal(got, []string{`"/a"`, `"/c"`}) {
		t.Errorf("Keys() = %v", got)
	}

	b.Unbind(`"/a"`)
	if b.Len() != 1 {
		t.Errorf("Len() = %d", b.Len())
	}
	b.Reset()
	if b.Len() != 0 {
		t.Errorf("Len() after Reset = %d", b.Len())
	}
}

func TestIndependentInstances(t *testing.T) {
	a, b := New[string](), New[string]()
	a.Bind(`"/x"`, "tag-1")
	if _, ok := b.Handle(`"/x"`); ok {
		t.Error("bindings shared between instances")
	}
}

func TestBindAll(t *testing.T) {
	g := graph.New()
	for _, e := range []graph.Edge{
		{From: `"/a"`, To: `"/b"`, Label: "/t"},
		{From: `"/a"`, To: `"/b"`, Label: "/t"},
		{From: `"/a"`, To: `"/b"`, Label: "/u"},
	} {
		if err := g.AddEdge(e); err != nil {
			t.Fatal(err)
		}
	}

	next := 0
	handle := func() int { next++; return next }
	b := NewGraph[int]()
	b.BindAll(g, func(string) int { return handle() }, func(graph.Edge) int { return handle() })

	if b.Nodes.Len() != 2 || b.Edges.Len() != 2 {
		t.Errorf("nodes=%d edges=%d", b.Nodes.Len(), b.Edges.Len())
	}
	key := EdgeKey(graph.Edge{From: `"/a"`, To: `"/b"`, Label: "/u"})
	if h, ok := b.Edges.Handle(key); !ok || h != 4 {
		t.Errorf("Handle(%s) = %d, %v", key, h, ok)
	}
}
