package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rosview/pkg/buildinfo"
	"github.com/matzehuels/rosview/pkg/cache"
	"github.com/matzehuels/rosview/pkg/positions"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "rosview"

	// cachePrefix scopes cache keys in shared stores.
	cachePrefix = "rosview:"
)

// Environment variables read after .env is loaded.
const (
	envRedisAddr    = "ROSVIEW_REDIS_ADDR"
	envMongoURI     = "ROSVIEW_MONGO_URI"
	envLiveCmd      = "ROSVIEW_LIVE_CMD"
	envLiveObserver = "ROSVIEW_LIVE_OBSERVER"
)

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
		Use:   appName,
		Short: "rosview lays out ROS2 architecture graphs",
		Long: `rosview builds the node and topic graph of a ROS2 application from a CARET
architecture YAML or an rqt_graph DOT file, arranges it by the groups in
setting.json, and prints, renders or serves the result.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnv(c.Logger)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.pathsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())
	registerCompletions(root)

	return root
}

// loadEnv reads .env from the working directory if present.
func loadEnv(logger *log.Logger) error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	if err := godotenv.Load(); err != nil {
		return err
	}
	logger.Debug("loaded environment", "file", ".env")
	return nil
}

// =============================================================================
// Backends
// =============================================================================

// newCache returns the layout cache: redis when configured, otherwise files
// under the user cache directory. A nil cache disables caching.
func newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return nil, nil
	}
	if addr := os.Getenv(envRedisAddr); addr != "" {
		return cache.NewRedisCache(ctx, addr, cachePrefix)
	}
	dir, err := cacheDir()
	if err != nil {
		return nil, nil
	}
	return cache.NewFileCache(dir)
}

// newStore returns the saved-layout store: MongoDB, then redis, then
// layout.json files next to the graph.
func newStore(ctx context.Context) (positions.Store, error) {
	if uri := os.Getenv(envMongoURI); uri != "" {
		return positions.NewMongoStore(ctx, uri)
	}
	if addr := os.Getenv(envRedisAddr); addr != "" {
		return positions.NewRedisStore(ctx, addr)
	}
	return positions.NewFileStore(), nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/rosview/).
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
