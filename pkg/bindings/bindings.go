// Package bindings associates graph elements with presentation handles.
//
// A presentation layer (a GUI node editor, an SVG document, a browser
// client) creates its own handle for every node and edge it draws. Bindings
// keeps the mapping in both directions so an event on a handle can be traced
// back to the node key and a node key can find its handle. Handles are
// opaque: nothing in rosview interprets them.
package bindings

import (
	"slices"

	"github.com/matzehuels/rosview/pkg/graph"
)

// Bindings is a one-to-one mapping between element keys and handles.
// The zero value is not usable; use New.
type Bindings[H comparable] struct {
	byKey    map[string]H
	byHandle map[H]string
	order    []string
}

// New returns an empty mapping.
func New[H comparable]() *Bindings[H] {
	return &Bindings[H]{
		byKey:    make(map[string]H),
		byHandle: make(map[H]string),
	}
}

// Bind associates key with h. Any previous binding of key or of h is removed.
func (b *Bindings[H]) Bind(key string, h H) {
	if old, ok := b.byKey[key]; ok {
		delete(b.byHandle, old)
	}
	if oldKey, ok := b.byHandle[h]; ok && oldKey != key {
		b.Unbind(oldKey)
	}
	if _, ok := b.byKey[key]; !ok {
		b.order = append(b.order, key)
	}
	b.byKey[key] = h
	b.byHandle[h] = key
}

// Handle returns the handle bound to key.
func (b *Bindings[H]) Handle(key string) (H, bool) {
	h, ok := b.byKey[key]
	return h, ok
}

// Key returns the key bound to h.
func (b *Bindings[H]) Key(h H) (string, bool) {
	key, ok := b.byHandle[h]
	return key, ok
}

// Unbind removes the binding of key.
func (b *Bindings[H]) Unbind(key string) {
	h, ok := b.byKey[key]
	if !ok {
		return
	}
	delete(b.byKey, key)
	delete(b.byHandle, h)
	b.order = slices.DeleteFunc(b.order, func(k string) bool { return k == key })
}

// Keys returns bound keys in binding order.
func (b *Bindings[H]) Keys() []string { return slices.Clone(b.order) }

// Len returns the number of bindings.
func (b *Bindings[H]) Len() int { return len(b.order) }

// Reset removes every binding.
func (b *Bindings[H]) Reset() {
	clear(b.byKey)
	clear(b.byHandle)
	b.order = nil
}

// EdgeKey returns the binding key of an edge. Parallel edges with the same
// label share a key.
func EdgeKey(e graph.Edge) string {
	return e.From + "###" + e.To + "###" + e.Label
}

// Graph holds node and edge bindings for one drawn graph.
type Graph[H comparable] struct {
	Nodes *Bindings[H]
	Edges *Bindings[H]
}

// NewGraph returns empty node and edge bindings.
func NewGraph[H comparable]() *Graph[H] {
	return &Graph[H]{Nodes: New[H](), Edges: New[H]()}
}

// BindAll binds every node and edge of g to handles created by node and
// edge. Existing bindings are discarded first.
func (b *Graph[H]) BindAll(g *graph.Graph, node func(id string) H, edge func(e graph.Edge) H) {
	b.Nodes.Reset()
	b.Edges.Reset()
	for _, id := range g.NodeIDs() {
		b.Nodes.Bind(id, node(id))
	}
	for _, e := range g.Edges() {
		key := EdgeKey(e)
		if _, ok := b.Edges.Handle(key); !ok {
			b.Edges.Bind(key, edge(e))
		}
	}
}
