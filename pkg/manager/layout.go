package manager

import (
	"context"
	"errors"
	"maps"

	"github.com/matzehuels/rosview/pkg/graph"
	"github.com/matzehuels/rosview/pkg/positions"
)

// LoadLayout applies the layout stored for the current directory and
// reports how many nodes moved. A missing layout is not an error.
func (m *Manager) LoadLayout(ctx context.Context) (int, error) {
	l, err := m.cfg.Store.Load(ctx, m.dir)
	if errors.Is(err, positions.ErrNotFound) {
		m.logger.Info("no saved layout, using auto layout", "dir", m.dir)
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	applied := positions.Apply(m.graph, l)
	m.logger.Info("loaded layout", "dir", m.dir, "applied", applied, "stored", len(l))
	return applied, nil
}

// SaveLayout stores l for the current directory. A nil layout saves the
// current node positions.
func (m *Manager) SaveLayout(ctx context.Context, l positions.Layout) error {
	if l == nil {
		l = positions.Layout(m.graph.Positions())
	}
	if err := m.cfg.Store.Save(ctx, m.dir, l); err != nil {
		return err
	}
	m.logger.Info("saved layout", "dir", m.dir, "nodes", len(l))
	return nil
}

// DeleteLayout removes the stored layout for the current directory.
func (m *Manager) DeleteLayout(ctx context.Context) error {
	return m.cfg.Store.Delete(ctx, m.dir)
}

// ResetLayout moves every node back to its automatic position and returns
// those positions.
func (m *Manager) ResetLayout() map[string]graph.Point {
	for id, p := range m.auto {
		if n, ok := m.graph.Node(id); ok {
			n.SetPos(p)
		}
	}
	return maps.Clone(m.auto)
}
