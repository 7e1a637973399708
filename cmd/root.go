package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/treeutil/internal/config"
	"github.com/ziadkadry99/treeutil/internal/logger"
	"github.com/ziadkadry99/treeutil/internal/walker"
)

var (
	cfgFile    string
	verbose    bool
	noProgress bool
)

// platformStat is resolved once per process; nil where no lstat record is available.
var platformStat = walker.PlatformStatProvider()

var rootCmd = &cobra.Command{
	Use:   "treeutil",
	Short: "Pattern-based directory listing, copying and disk usage",
	Long: `treeutil enumerates file system entries from paths that may contain
* and ? wildcards in any segment, and builds listing, copy and disk usage
reports on top of that enumeration. It can also expose the same operations
to AI agents as an MCP server.`,
	SilenceUsage: true,
}

// Execute runs the root command, cancelling it on interrupt.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noProgress, "no-progress", false, "disable progress bars")
}

// env is what a command needs to run: the loaded configuration, a logger on
// the command's stderr and the working directory relative paths resolve against.
type env struct {
	cfg *config.Config
	log *logger.Logger
	cwd string
}

func setup(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return &env{
		cfg: cfg,
		log: logger.New(cmd.ErrOrStderr(), level),
		cwd: cwd,
	}, nil
}

// newWalker builds a walker that reports unreadable directories as warnings.
func (e *env) newWalker(withStat bool) *walker.Walker {
	opts := []walker.Option{
		walker.WithErrorHandler(func(path string, err error) {
			e.log.Warnf("Cannot read '%s': %v", path, err)
		}),
	}
	if withStat {
		if platformStat == nil {
			e.log.Warnf("Stat records are not available on this platform")
		} else {
			opts = append(opts, walker.WithStatProvider(platformStat))
		}
	}
	return walker.New(opts...)
}

func (e *env) progressEnabled() bool {
	return e.cfg.Progress && !noProgress
}
