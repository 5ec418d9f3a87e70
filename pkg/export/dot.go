// Package export renders exploration views to DOT, SVG, and PNG.
//
// The DOT output mirrors the interactive presentation: status-coloured nodes,
// dimmed background tiers when a focus is active, and bold critical edges.
// SVG/PNG rendering goes through Graphviz.
package export

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/specatlas/specatlas/pkg/graph"
	"github.com/specatlas/specatlas/pkg/render"
)

// Options configures DOT generation.
type Options struct {
	// Detailed includes spec numbers and status in node labels.
	// When false, only the display name is shown.
	Detailed bool

	// UsePositions pins nodes to their computed layout coordinates instead of
	// letting Graphviz arrange them.
	UsePositions bool
}

// statusFill maps spec statuses to fill colours.
var statusFill = map[string]string{
	graph.StatusPlanned:    "#e2e8f0",
	graph.StatusInProgress: "#bfdbfe",
	graph.StatusComplete:   "#bbf7d0",
	graph.StatusArchived:   "#f1f5f9",
}

// ToDOT converts a rendered view to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
func ToDOT(nodes []render.Node, edges []render.Edge, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph specs {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range nodes {
		attrs := nodeAttrs(n, opts)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range edges {
		attrs := edgeAttrs(e)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n render.Node, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", nodeLabel(n, opts.Detailed))}

	fill := statusFill[n.Status]
	if fill == "" {
		fill = "white"
	}
	attrs = append(attrs, fmt.Sprintf("fillcolor=%q", fill))

	switch {
	case n.Focused:
		attrs = append(attrs, "penwidth=2.5", "color=\"#1d4ed8\"")
	case n.Dimmed:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fontcolor=grey", "color=grey")
	case n.Secondary:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"")
	}

	if opts.UsePositions {
		// Graphviz points run bottom-up; screen coordinates run top-down.
		attrs = append(attrs, fmt.Sprintf("pos=\"%.1f,%.1f!\"", n.X, -n.Y))
	}
	return attrs
}

func nodeLabel(n render.Node, detailed bool) string {
	if !detailed {
		return n.Label
	}
	parts := []string{n.Label}
	if n.Number != "" && !strings.HasPrefix(n.Label, n.Number) {
		parts = append(parts, n.Number)
	}
	if n.Status != "" {
		parts = append(parts, n.Status)
	}
	return strings.Join(parts, "\n")
}

func edgeAttrs(e render.Edge) []string {
	var attrs []string
	if e.IsDependsOn() {
		if e.Highlighted {
			attrs = append(attrs, "penwidth=2", "color=\"#1d4ed8\"")
		}
	} else {
		attrs = append(attrs, "style=dashed", "arrowhead=none")
	}
	if e.Opacity < 0.5 {
		attrs = append(attrs, "color=\"#cbd5e1\"")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG, normalizeViewBox)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG, nil)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format, post func([]byte) []byte) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	out := buf.Bytes()
	if post != nil {
		out = post(out)
	}
	return out, nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
