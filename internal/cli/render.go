package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rosview/pkg/errors"
	"github.com/matzehuels/rosview/pkg/graph"
	"github.com/matzehuels/rosview/pkg/manager"
	"github.com/matzehuels/rosview/pkg/render"
)

const (
	formatSVG  = "svg"
	formatHTML = "html"
	formatJSON = "json"
	formatDOT  = "dot"
)

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{formatSVG: true, formatHTML: true, formatJSON: true, formatDOT: true}

// renderOpts holds the render command flags.
type renderOpts struct {
	output     string
	formats    []string
	omit       string
	hideTopics bool
	path       string
	scale      float64
	title      string
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var o graphOpts
	opts := renderOpts{omit: "full", scale: render.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [graph-file]",
		Short: "Render a laid-out graph to SVG, HTML, DOT or JSON",
		Long: `Render a laid-out ROS graph.

Formats:
  svg   Graphviz drawing with pinned positions
  html  interactive ECharts page
  dot   the Graphviz source of the svg drawing
  json  graph snapshot with positions and colors

With several formats, --output is a base path and each file gets its
format's extension.`,
		Args: graphArgs(&o),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), inputArg(args), o, opts)
		},
	}

	o.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), html, dot, json (comma-separated)")
	cmd.Flags().StringVar(&opts.omit, "omit", opts.omit, "label style: full, first_last, last")
	cmd.Flags().BoolVar(&opts.hideTopics, "hide-topics", false, "do not label edges with topic names")
	cmd.Flags().StringVar(&opts.path, "path", "", "highlight the nodes of a named path")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "layout to drawing scale")
	cmd.Flags().StringVar(&opts.title, "title", "", "HTML page title")

	return cmd
}

// parseFormats parses the --format flag. Empty selects svg.
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(strings.ToLower(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// validateFormats rejects formats outside validFormats.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return fmt.Errorf("invalid format: %s (must be 'svg', 'html', 'dot', or 'json')", f)
		}
	}
	return nil
}

// basePath derives the base output path. Without --output the input's
// extension is stripped; a known format extension on --output is stripped too.
func basePath(output, input string) string {
	if output == "" {
		if input == "" {
			return "rosgraph"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func (c *CLI) runRender(ctx context.Context, w io.Writer, input string, o graphOpts, opts renderOpts) error {
	s, err := c.open(ctx, input, o)
	if err != nil {
		return err
	}
	defer s.Close()

	ropts, err := renderOptions(s.mgr, opts)
	if err != nil {
		return err
	}

	ui := printer{w: w}
	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		path := base + "." + format
		if len(opts.formats) == 1 && opts.output != "" {
			path = opts.output
		}

		data, err := renderGraph(ctx, s.mgr, format, ropts)
		if err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		c.Logger.Debug("wrote output", "format", format, "path", path, "bytes", len(data))
		ui.file(path)
	}

	ui.ok("Rendered %s", plural(len(opts.formats), "file"))
	ui.graphSummary(s.mgr.Graph(), s.mgr.Paths())
	return nil
}

// renderOptions resolves the highlighted path and label style.
func renderOptions(m *manager.Manager, opts renderOpts) (render.Options, error) {
	ro := render.Options{
		Scale:      opts.scale,
		Omit:       graph.ParseOmit(opts.omit),
		HideTopics: opts.hideTopics,
		Title:      opts.title,
	}
	if opts.path != "" {
		nodes, ok := m.Paths().Get(opts.path)
		if !ok {
			return ro, errors.New(errors.ErrCodeUnknownPath, "no path named %q", opts.path)
		}
		ro.Highlight = nodes
	}
	return ro, nil
}

func renderGraph(ctx context.Context, m *manager.Manager, format string, opts render.Options) ([]byte, error) {
	g := m.Graph()
	switch format {
	case formatSVG:
		return render.SVG(ctx, render.ToDOT(g, opts))
	case formatDOT:
		return []byte(render.ToDOT(g, opts)), nil
	case formatHTML:
		return render.HTML(ctx, g, opts)
	case formatJSON:
		return json.MarshalIndent(g.Snapshot(), "", "  ")
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
