package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/specatlas/specatlas/pkg/export"
	"github.com/specatlas/specatlas/pkg/graph"
	"github.com/specatlas/specatlas/pkg/view"
)

// exportCommand creates the export command for static artifacts.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		format   string
		output   string
		detailed bool
		pinned   bool
		noCache  bool
	)
	flags := &stateFlags{}

	cmd := &cobra.Command{
		Use:   "export [graph.json]",
		Short: "Export an exploration view as DOT, SVG, or PNG",
		Long: `Export an exploration view as DOT, SVG, or PNG.

The export command runs the same filter, focus, and layout pipeline as
'layout', then renders the view through Graphviz. Focus dimming and
critical-edge highlighting carry over into the static artifact.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := flags.state()
			if err != nil {
				return err
			}
			return c.runExport(cmd.Context(), args[0], state, format, output, detailed, pinned, noCache)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg (default), png, dot")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include number and status in node labels")
	cmd.Flags().BoolVar(&pinned, "pinned", false, "pin nodes to the computed layout positions")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runExport(ctx context.Context, input string, state view.State, format, output string, detailed, pinned, noCache bool) error {
	switch format {
	case "svg", "png", "dot":
	default:
		return fmt.Errorf("unsupported format %q (svg, png, dot)", format)
	}

	g, err := graph.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}
	snap, err := view.NewSnapshot(g)
	if err != nil {
		return fmt.Errorf("snapshot graph: %w", err)
	}

	runner := c.newRunner(noCache)
	defer runner.Close()

	result, err := runner.Run(ctx, snap, state)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	prog := newProgress(c.Logger)
	dot := export.ToDOT(result.Nodes, result.Edges, export.Options{
		Detailed:     detailed,
		UsePositions: pinned,
	})

	var data []byte
	switch format {
	case "dot":
		data = []byte(dot)
	case "svg":
		data, err = export.RenderSVG(ctx, dot)
	case "png":
		data, err = export.RenderPNG(ctx, dot)
	}
	if err != nil {
		printError("Export failed")
		return fmt.Errorf("render %s: %w", format, err)
	}
	prog.done(fmt.Sprintf("Rendered %s", format))

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + "." + format
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Export complete")
	printFile(outputPath)
	printStats(result.Timings.NodeCount, result.Timings.EdgeCount, result.Timings.CacheHit)
	return nil
}
