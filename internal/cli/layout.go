package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/specatlas/specatlas/pkg/graph"
	"github.com/specatlas/specatlas/pkg/view"
)

// layoutCommand creates the layout command for computing exploration layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	flags := &stateFlags{}

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute an exploration layout from a spec graph",
		Long: `Compute an exploration layout from a spec graph.

The layout command takes a graph.json file, applies the selected filters and
focus, positions the visible nodes with the chosen strategy, and writes the
resulting render payload as JSON.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := flags.state()
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], state, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.register(cmd)

	return cmd
}

// runLayout loads the graph, runs one pipeline pass, and writes the result.
func (c *CLI) runLayout(ctx context.Context, input string, state view.State, output string, noCache bool) error {
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

	prog := newProgress(c.Logger)
	result, err := runner.Run(ctx, snap, state)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	prog.done(fmt.Sprintf("Computed layout for %d nodes", result.Timings.NodeCount))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(result.Timings.NodeCount, result.Timings.EdgeCount, result.Timings.CacheHit)
	printNewline()
	printNextStep("Export", appName+" export "+input)

	return nil
}
