package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rosview/pkg/graph"
	"github.com/matzehuels/rosview/pkg/manager"
)

// layoutDocument is the JSON printed by "rosview layout".
type layoutDocument struct {
	Revision string         `json:"revision"`
	Source   manager.Source `json:"source"`
	Graph    graph.Snapshot `json:"graph"`
	Paths    *graph.Paths   `json:"paths"`
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		save   bool
	)
	var o graphOpts

	cmd := &cobra.Command{
		Use:   "layout [graph-file]",
		Short: "Lay out a graph and print it as JSON",
		Long: `Lay out a ROS graph and print nodes, positions, edges and named paths as JSON.

The graph file is a CARET architecture YAML (.yaml, .yml) or an rqt_graph DOT
file (.dot, .gv). Groups and ignore lists come from setting.json or
setting.toml next to the graph file, then the working directory, then built-in
defaults. With --save the computed positions are written to the layout store.`,
		Args: graphArgs(&o),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), cmd.OutOrStdout(), inputArg(args), o, output, save)
		},
	}

	o.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&save, "save", false, "save the positions to the layout store")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, w io.Writer, input string, o graphOpts, output string, save bool) error {
	s, err := c.open(ctx, input, o)
	if err != nil {
		return err
	}
	defer s.Close()

	if save {
		if err := s.mgr.SaveLayout(ctx, nil); err != nil {
			return fmt.Errorf("save layout: %w", err)
		}
	}

	doc := layoutDocument{
		Revision: s.mgr.Revision(),
		Source:   s.mgr.Source(),
		Graph:    s.mgr.Graph().Snapshot(),
		Paths:    s.mgr.Paths(),
	}

	if output == "" {
		return writeJSON(w, doc)
	}
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	if err := writeJSON(f, doc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	ui := printer{w: w}
	ui.ok("Layout complete")
	ui.file(output)
	ui.graphSummary(s.mgr.Graph(), s.mgr.Paths())
	ui.groupSummary(s.mgr.Graph(), s.settings.Groups)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
