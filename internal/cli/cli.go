// Package cli implements the specatlas command-line interface.
//
// This package provides commands for computing exploration layouts from
// spec dependency graphs, inspecting connectivity, serving the HTTP API,
// exploring graphs interactively, and managing the layout cache. The CLI is
// built using cobra and supports verbose logging via the charmbracelet/log
// library.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/specatlas/specatlas/pkg/buildinfo"
	"github.com/specatlas/specatlas/pkg/cache"
	"github.com/specatlas/specatlas/pkg/view"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "specatlas"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Specatlas explores spec dependency graphs",
		Long:         `Specatlas is a tool for exploring specification dependency graphs: compute hierarchical or force-directed layouts, trace upstream and downstream dependency chains from a focus node, and serve the exploration API.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) *view.Runner {
	return view.NewRunner(newCache(noCache), nil, c.Logger)
}

func newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return fc
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/specatlas/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// View State Flags
// =============================================================================

// stateFlags binds the shared view-state flags and assembles a view.State.
type stateFlags struct {
	statuses       []string
	search         string
	focus          string
	mode           string
	maxDepth       int
	compact        bool
	showStandalone bool
	related        bool
}

// register binds the flags to a command.
func (f *stateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.statuses, "status", nil, "filter by status (planned, in-progress, complete, archived)")
	cmd.Flags().StringVar(&f.search, "search", "", "filter by substring on number, name, and tags")
	cmd.Flags().StringVar(&f.focus, "focus", "", "focus node ID")
	cmd.Flags().StringVarP(&f.mode, "mode", "m", "", "layout mode: hierarchical (default), force")
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", 0, "cap connectivity depth from the focus (0 = unbounded)")
	cmd.Flags().BoolVar(&f.compact, "compact", false, "compact node presentation")
	cmd.Flags().BoolVar(&f.showStandalone, "standalone", false, "include standalone nodes")
	cmd.Flags().BoolVar(&f.related, "related", false, "include related edges")
}

// state assembles and validates the view state.
func (f *stateFlags) state() (view.State, error) {
	s := view.State{
		Statuses:       f.statuses,
		Search:         f.search,
		FocusID:        f.focus,
		Mode:           f.mode,
		MaxDepth:       f.maxDepth,
		Compact:        f.compact,
		ShowStandalone: f.showStandalone,
		IncludeRelated: f.related,
	}
	return s, s.Validate()
}
