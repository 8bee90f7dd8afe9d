package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/mcalc/foundation/calc"
	mdwlog "github.com/msto63/mcalc/foundation/core/log"
	"github.com/msto63/mcalc/pkg/core/health"
	"github.com/msto63/mcalc/pkg/core/version"
)

var doctorJSON bool

var errUnhealthy = errors.New("self check failed")

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration, engine and history database",
	Args:  cobra.NoArgs,
	RunE:  runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)

	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "print the report as JSON")
}

// engineSelfTest lists expressions with their expected outcome
var engineSelfTest = []struct {
	input string
	value int
	kind  calc.ErrorKind
}{
	{"10 + 3 * 5 * 3", 55, calc.KindNone},
	{"10 - 3 - 2", 5, calc.KindNone},
	{"7 / 2", 3, calc.KindNone},
	{"4 / 0", 0, calc.KindEvaluation},
	{"10 3", 0, calc.KindParse},
	{"7a", 0, calc.KindLex},
}

func runDoctor(cmd *cobra.Command, args []string) error {
	registry := health.NewRegistry("mcalc", Version)

	registry.RegisterFunc("config", func(ctx context.Context) health.CheckResult {
		if err := appConfig.Validate(); err != nil {
			return health.CheckResult{Status: health.StatusUnhealthy, Message: err.Error()}
		}
		source := appConfig.Source
		if source == "" {
			source = "defaults"
		}
		return health.CheckResult{Status: health.StatusHealthy, Message: source}
	})

	registry.RegisterFunc("engine", checkEngine)

	if appConfig.History.Enabled {
		registry.Register(health.DirWritableCheck("history-dir", appConfig.History.Path))
		registry.RegisterFunc("history", checkHistory)
	} else {
		registry.RegisterFunc("history", func(ctx context.Context) health.CheckResult {
			return health.CheckResult{Status: health.StatusHealthy, Message: "disabled"}
		})
	}

	report := registry.CheckWithTimeout(10 * time.Second)

	out := cmd.OutOrStdout()
	if doctorJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(out, "mcalc v%s: %s\n", report.Version, report.Status)
		for _, c := range report.Checks {
			fmt.Fprintf(out, "  %-12s %-10s %s\n", c.Name, c.Status, c.Message)
		}
	}

	if report.Status == health.StatusUnhealthy {
		return errUnhealthy
	}
	return nil
}

func checkEngine(ctx context.Context) health.CheckResult {
	engine, err := calc.New(calc.Options{
		Logger:         mdwlog.NewNop(),
		MaxInputLength: appConfig.Engine.MaxInputLength,
	})
	if err != nil {
		return health.CheckResult{Status: health.StatusUnhealthy, Message: err.Error()}
	}

	for _, tc := range engineSelfTest {
		value, err := engine.EvaluateString(tc.input)
		if calc.Kind(err) != tc.kind || (err == nil && value != tc.value) {
			return health.CheckResult{
				Status:  health.StatusUnhealthy,
				Message: fmt.Sprintf("%q evaluated to %d (%v)", tc.input, value, err),
			}
		}
	}

	return health.CheckResult{
		Status:  health.StatusHealthy,
		Message: fmt.Sprintf("engine %s, %d expressions verified", version.Engine, len(engineSelfTest)),
	}
}

func checkHistory(ctx context.Context) health.CheckResult {
	store, err := openStore()
	if err != nil {
		return health.CheckResult{Status: health.StatusUnhealthy, Message: calc.Message(err)}
	}
	defer closeStore(store)

	schema, err := store.SchemaVersion(ctx)
	if err != nil {
		return health.CheckResult{Status: health.StatusUnhealthy, Message: calc.Message(err)}
	}
	stats, err := store.Stats(ctx)
	if err != nil {
		return health.CheckResult{Status: health.StatusDegraded, Message: calc.Message(err)}
	}

	return health.CheckResult{
		Status:  health.StatusHealthy,
		Message: fmt.Sprintf("schema %d, %d entries", schema, stats.Total),
		Details: map[string]interface{}{"path": appConfig.History.Path},
	}
}
