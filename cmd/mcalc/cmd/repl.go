package cmd

import (
	"github.com/spf13/cobra"

	"github.com/msto63/mcalc/internal/tui/repl"
)

var replNoHistory bool

var replCmd = &cobra.Command{
	Use:     "repl",
	Aliases: []string{"shell", "i"},
	Short:   "Start the interactive calculator",
	Long: `Starts the interactive calculator.

Each submitted line is evaluated and shown with its value or with the
error and a caret under the offending character.

Keys:
  Enter       Evaluate
  Up/Down     Previous inputs
  Ctrl+T      Toggle token display (also :tokens)
  Ctrl+L      Clear scrollback (also :clear)
  Esc/Ctrl+C  Quit (also quit, exit, :q)`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().BoolVar(&replNoHistory, "no-history", false, "do not record evaluations")
}

func runRepl(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	store, err := openRecorder(replNoHistory)
	if err != nil {
		return err
	}
	if store != nil {
		defer closeStore(store)
	}

	return repl.Run(repl.Config{
		Engine:       engine,
		Store:        store,
		Prompt:       appConfig.Repl.Prompt,
		ShowTokens:   appConfig.Repl.ShowTokens,
		HistoryLimit: appConfig.History.Limit,
	})
}
