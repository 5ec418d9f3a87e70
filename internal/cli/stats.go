package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/specatlas/specatlas/pkg/graph"
	"github.com/specatlas/specatlas/pkg/graph/traverse"
)

// statsCommand creates the stats command for inspecting graph connectivity.
func (c *CLI) statsCommand() *cobra.Command {
	var (
		focus    string
		maxDepth int
	)

	cmd := &cobra.Command{
		Use:   "stats [graph.json]",
		Short: "Show connectivity statistics for a spec graph",
		Long: `Show connectivity statistics for a spec graph.

Without a focus, prints node, edge, and standalone counts. With --focus,
additionally prints the hop-distance histogram from the focus node and its
upstream and downstream dependency chains.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(args[0], focus, maxDepth)
		},
	}

	cmd.Flags().StringVar(&focus, "focus", "", "focus node ID")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "cap connectivity depth from the focus (0 = unbounded)")

	return cmd
}

func runStats(input, focus string, maxDepth int) error {
	g, err := graph.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}
	idx := graph.NewIndex(g)
	stats := idx.Stats()

	printKeyValue("Nodes", fmt.Sprintf("%d", idx.NodeCount()))
	printKeyValue("Edges", fmt.Sprintf("%d", idx.EdgeCount()))
	printKeyValue("Connected", fmt.Sprintf("%d", stats.Connected))
	printKeyValue("Standalone", fmt.Sprintf("%d", stats.Standalone))
	if dropped := idx.DroppedEdges(); dropped > 0 {
		printKeyValue("Dropped edges", fmt.Sprintf("%d", dropped))
	}

	if focus == "" {
		return nil
	}
	if !idx.HasNode(focus) {
		return fmt.Errorf("node %s not found in graph", focus)
	}

	printNewline()
	printInfo("Connectivity from %s", focus)
	depths := traverse.Depths(idx, focus, maxDepth)
	printDepthHistogram(depths)

	details := traverse.Details(idx, focus)
	printNewline()
	printChains("Upstream (depends on)", details.Upstream)
	printChains("Downstream (depended on by)", details.Downstream)
	return nil
}

// printDepthHistogram prints reachable-node counts per hop distance.
func printDepthHistogram(depths map[string]int) {
	counts := make(map[int]int)
	maxDepth := 0
	for _, d := range depths {
		counts[d]++
		if d > maxDepth {
			maxDepth = d
		}
	}
	for d := 0; d <= maxDepth; d++ {
		printDetail("depth %d  %3d  %s", d, counts[d], strings.Repeat("█", counts[d]))
	}
}

// printChains prints the depth-grouped node IDs of one direction.
func printChains(title string, groups []traverse.DepthGroup) {
	printInfo("%s", title)
	if len(groups) == 0 {
		printDetail("none")
		return
	}
	for _, grp := range groups {
		ids := make([]string, 0, len(grp.Specs))
		for _, n := range grp.Specs {
			ids = append(ids, n.DisplayName())
		}
		slices.Sort(ids)
		printDetail("%d: %v", grp.Depth, ids)
	}
}
