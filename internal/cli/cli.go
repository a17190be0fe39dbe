package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/permsample/pkg/buildinfo"
	"github.com/matzehuels/permsample/pkg/cache"
	"github.com/matzehuels/permsample/pkg/history"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "permsample"

	// defaultTimeout is the default sampling timeout (seconds).
	defaultTimeout = 60

	// mongoDatabase is the database used by --mongo.
	mongoDatabase = appName
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
		Short: "Permsample searches job sequences by stochastic sampling",
		Long: `Permsample builds single-machine job sequences one job at a time, guided by
dispatching heuristics, and keeps the best sequence found over many randomized
runs (VBSS, HBSS, acceptance band) or one greedy run.`,
		Version:       buildinfo.Get().Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.sampleCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.heuristicsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Backends
// =============================================================================

// newCache returns the best-solution cache: Redis if redisURL is set, the
// file cache otherwise, and a null cache when caching is disabled or the
// cache directory cannot be determined.
func newCache(ctx context.Context, noCache bool, redisURL string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisURL != "" {
		return cache.NewRedisCache(ctx, redisURL)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newKeyer returns the cache keyer. Keys on a shared Redis server are
// prefixed with the app name.
func newKeyer(redisURL string) cache.Keyer {
	if redisURL != "" {
		return cache.NewScopedKeyer(cache.NewDefaultKeyer(), appName+":")
	}
	return cache.NewDefaultKeyer()
}

// newHistory returns the run history store: MongoDB if mongoURI is set,
// the file store otherwise.
func newHistory(ctx context.Context, mongoURI string) (history.Store, error) {
	if mongoURI != "" {
		return history.NewMongoStore(ctx, mongoURI, mongoDatabase)
	}
	dir, err := historyDir()
	if err != nil {
		return nil, err
	}
	return history.NewFileStore(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/permsample/).
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

// historyDir returns the run history directory using XDG standard
// (~/.local/share/permsample/history/).
func historyDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName, "history"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName, "history"), nil
}
