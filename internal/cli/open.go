package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rosview/pkg/cache"
	"github.com/matzehuels/rosview/pkg/errors"
	"github.com/matzehuels/rosview/pkg/layout"
	"github.com/matzehuels/rosview/pkg/manager"
	"github.com/matzehuels/rosview/pkg/positions"
	"github.com/matzehuels/rosview/pkg/settings"
	"github.com/matzehuels/rosview/pkg/source/caret"
	"github.com/matzehuels/rosview/pkg/source/live"
)

// graphOpts are the flags shared by every command that loads a graph.
type graphOpts struct {
	target              string
	live                bool
	program             string
	noCache             bool
	noSavedLayout       bool
	disableIgnoreFilter bool
	displaceNewNode     bool
}

func (o *graphOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.target, "target", caret.AllGraph, "CARET target: all_graph or a named path")
	cmd.Flags().BoolVar(&o.live, "live", false, "snapshot the running graph with $"+envLiveCmd)
	cmd.Flags().StringVar(&o.program, "program", layout.DefaultProgram, "Graphviz layout program")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable the layout cache")
	cmd.Flags().BoolVar(&o.noSavedLayout, "no-saved-layout", false, "ignore saved node positions")
	cmd.Flags().BoolVar(&o.disableIgnoreFilter, "disable-ignore-filter", false, "clear the ignore lists from the settings")
	cmd.Flags().BoolVar(&o.displaceNewNode, "displace-new-node", false, "shift every group by -20 on both axes")
}

// graphArgs accepts one graph file, or none with --live.
func graphArgs(o *graphOpts) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if o.live {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	}
}

// session is a loaded manager together with the backends it owns.
type session struct {
	mgr      *manager.Manager
	settings *settings.Settings
	cache    cache.Cache
	store    positions.Store
}

func (s *session) Close() {
	if s.cache != nil {
		_ = s.cache.Close()
	}
	if s.store != nil {
		_ = s.store.Close()
	}
}

// open loads settings, checks the layout backend and loads the graph.
// input is ignored for live sources.
func (c *CLI) open(ctx context.Context, input string, o graphOpts) (*session, error) {
	prog := newProgress(c.Logger)

	settingsFor := input
	if o.live {
		settingsFor = filepath.Join(".", "live")
	}
	st, err := settings.Load(settingsFor, settings.Options{
		DisableIgnoreFilter: o.disableIgnoreFilter,
		DisplaceNewNode:     o.displaceNewNode,
		Logger:              c.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	s := &session{settings: st}
	if s.cache, err = newCache(ctx, o.noCache); err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	if s.store, err = newStore(ctx); err != nil {
		s.Close()
		return nil, fmt.Errorf("open layout store: %w", err)
	}

	engine := &layout.Graphviz{
		Program: o.program,
		Cache:   s.cache,
		Keyer:   cache.NewScopedKeyer(cache.NewDefaultKeyer(), cachePrefix),
	}
	if err := layout.Check(ctx, engine); err != nil {
		s.Close()
		return nil, err
	}

	s.mgr = manager.New(manager.Config{
		Filter: st.App.Filter(),
		Groups: st.Groups,
		Engine: engine,
		Store:  s.store,
		Logger: c.Logger,
	})

	spin := startSpinner(ctx, os.Stderr, "Loading graph...")
	err = c.load(ctx, s.mgr, input, o)
	spin.stop()
	if err != nil {
		s.Close()
		return nil, err
	}

	if !o.noSavedLayout {
		if _, err := s.mgr.LoadLayout(ctx); err != nil {
			c.Logger.Warn("ignoring saved layout", "err", err)
		}
	}

	g := s.mgr.Graph()
	prog.done("loaded graph", "nodes", g.NodeCount(), "edges", g.EdgeCount(), "paths", s.mgr.Paths().Len())
	return s, nil
}

func (c *CLI) load(ctx context.Context, m *manager.Manager, input string, o graphOpts) error {
	if o.live {
		src, err := live.ParseCommand(os.Getenv(envLiveCmd), os.Getenv(envLiveObserver))
		if err != nil {
			return err
		}
		return m.LoadRunning(ctx, src)
	}
	switch strings.ToLower(filepath.Ext(input)) {
	case ".yaml", ".yml":
		return m.LoadCaret(ctx, input, o.target)
	default:
		if o.target != caret.AllGraph {
			return errors.New(errors.ErrCodeUnsupported, "--target applies to CARET files only")
		}
		return m.Load(ctx, input)
	}
}

// inputArg returns the graph file argument, or "" for live sources.
func inputArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
