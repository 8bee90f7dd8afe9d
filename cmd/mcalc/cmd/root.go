package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/msto63/mcalc/foundation/calc"
	"github.com/msto63/mcalc/foundation/calc/result"
	mdwlog "github.com/msto63/mcalc/foundation/core/log"
	"github.com/msto63/mcalc/internal/history"
	"github.com/msto63/mcalc/pkg/core/cache"
	"github.com/msto63/mcalc/pkg/core/config"
	"github.com/msto63/mcalc/pkg/core/logging"
)

var (
	cfgFile string
	verbose bool

	appConfig *config.Config
	appLogger *mdwlog.Logger
	logCloser io.Closer
)

// errEvaluationFailed is returned after failed evaluations were already reported
var errEvaluationFailed = errors.New("one or more evaluations failed")

var rootCmd = &cobra.Command{
	Use:   "mcalc",
	Short: "mcalc - integer expression calculator",
	Long: `mcalc evaluates integer arithmetic expressions with + - * /.

Multiplication and division bind tighter than addition and subtraction,
operators of the same tier associate to the left, and division truncates.
Errors report the character index where the input went wrong.

Commands:
  eval     - Evaluate expressions
  lex      - Show the tokens of an expression
  repl     - Interactive calculator
  history  - Inspect recorded evaluations
  doctor   - Self check`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if logCloser != nil {
		logCloser.Close()
	}
	if err != nil && !errors.Is(err, errEvaluationFailed) && !errors.Is(err, errUnhealthy) {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $MCALC_CONFIG, ./mcalc.toml, ~/.config/mcalc/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// setup loads the configuration and configures logging
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		appConfig, err = config.Load(cfgFile)
	} else {
		appConfig, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	appLogger, logCloser, err = logging.NewLogger(logging.FromConfig(appConfig.General, verbose, cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	mdwlog.SetDefault(appLogger)

	appLogger.Debug("Configuration loaded", mdwlog.Fields{
		"source":  appConfig.Source,
		"command": cmd.Name(),
	})
	return nil
}

// newEngine creates an engine from the loaded configuration
func newEngine() (*calc.Engine, error) {
	opts := calc.Options{
		Logger:         appLogger,
		MaxInputLength: appConfig.Engine.MaxInputLength,
	}
	if appConfig.Engine.CacheEnabled {
		opts.Cache = cache.New[result.Result[int]](cache.Config{
			MaxItems: appConfig.Engine.CacheSize,
			TTL:      appConfig.Engine.CacheTTL.Duration,
		})
	}
	return calc.New(opts)
}

// openStore opens the history database
func openStore() (*history.SQLiteStore, error) {
	return history.NewSQLiteStore(history.Config{Path: appConfig.History.Path})
}

// openRecorder opens the history database when recording is enabled.
// It returns nil without error when history is disabled.
func openRecorder(disabled bool) (history.Store, error) {
	if disabled || !appConfig.History.Enabled {
		return nil, nil
	}
	store, err := openStore()
	if err != nil {
		return nil, err
	}
	return store, nil
}

// closeStore closes the history database and logs a failed close
func closeStore(store history.Store) {
	if err := store.Close(); err != nil {
		appLogger.WarnWithErr("Failed to close history database", err, mdwlog.Fields{
			"path": appConfig.History.Path,
		})
	}
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %s\n", calc.Message(err))
}
