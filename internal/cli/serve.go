package cli

import (
	"context"
	"io"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/rosview/pkg/graph"
	"github.com/matzehuels/rosview/pkg/observability"
	"github.com/matzehuels/rosview/pkg/render"
	"github.com/matzehuels/rosview/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		watch    bool
		debounce time.Duration
		omit     string
	)
	var o graphOpts

	cmd := &cobra.Command{
		Use:   "serve [graph-file]",
		Short: "Serve a graph over HTTP and WebSocket",
		Long: `Load a graph and serve it to a front end.

The API serves the graph, named paths and node neighbors, accepts layout
updates, and pushes a reload message to /ws clients whenever the graph is
reloaded. With --watch the graph file is reloaded when it changes on disk.`,
		Args: graphArgs(&o),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), cmd.OutOrStdout(), inputArg(args), o, addr, watch, debounce, graph.ParseOmit(omit))
		},
	}

	o.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload when the graph file changes")
	cmd.Flags().DurationVar(&debounce, "debounce", server.DefaultDebounce, "delay between a file change and the reload")
	cmd.Flags().StringVar(&omit, "omit", "full", "label style for the HTML view: full, first_last, last")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, w io.Writer, input string, o graphOpts, addr string, watch bool, debounce time.Duration, omit graph.Omit) error {
	s, err := c.open(ctx, input, o)
	if err != nil {
		return err
	}
	defer s.Close()

	observability.SetServerHooks(observability.NewLogHooks(c.Logger))
	defer observability.Reset()

	srv := server.New(server.Config{
		Manager: s.mgr,
		Render:  render.Options{Omit: omit, Title: appName},
		Logger:  c.Logger,
	})

	ui := printer{w: w}
	ui.ok("Serving %s", plural(s.mgr.Graph().NodeCount(), "node"))
	ui.keyValue("address", "http://"+addr)
	if watch && !o.live {
		ui.keyValue("watching", s.mgr.Source().Path)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.ListenAndServe(ctx, addr) })
	if watch && !o.live {
		g.Go(func() error { return srv.Watch(ctx, debounce) })
	}
	return g.Wait()
}
