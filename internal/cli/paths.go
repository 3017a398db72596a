package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rosview/pkg/graph"
)

// pathsCommand creates the paths command.
func (c *CLI) pathsCommand() *cobra.Command {
	var (
		interactive bool
		omit        string
	)
	var o graphOpts

	cmd := &cobra.Command{
		Use:   "paths [graph-file]",
		Short: "List the named paths of a graph",
		Long: `List the named paths declared in a CARET architecture file.

With -i, pick a path interactively and print its nodes in order.`,
		Args: graphArgs(&o),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPaths(cmd.Context(), cmd.OutOrStdout(), inputArg(args), o, interactive, graph.ParseOmit(omit))
		},
	}

	o.register(cmd)
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick a path interactively")
	cmd.Flags().StringVar(&omit, "omit", "full", "label style: full, first_last, last")

	return cmd
}

func (c *CLI) runPaths(ctx context.Context, w io.Writer, input string, o graphOpts, interactive bool, omit graph.Omit) error {
	s, err := c.open(ctx, input, o)
	if err != nil {
		return err
	}
	defer s.Close()

	ui := printer{w: w}
	paths := s.mgr.Paths()
	if !interactive {
		ui.pathList(paths, omit)
		return nil
	}

	model := NewPathListModel(paths, omit)
	final, err := tea.NewProgram(model, tea.WithContext(ctx), tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return fmt.Errorf("path picker: %w", err)
	}
	picked := final.(PathListModel).Selected
	if picked == nil {
		ui.info("No path selected")
		return nil
	}

	ui.ok("%s", picked.Name)
	ui.pathChain(picked.Nodes, omit)
	if len(picked.Nodes) > 0 {
		ui.nextStep("Render", fmt.Sprintf("%s render %s --path %q -f html", appName, input, picked.Name))
	}
	return nil
}
