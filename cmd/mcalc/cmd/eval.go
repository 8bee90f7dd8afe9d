package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/mcalc/foundation/calc"
	"github.com/msto63/mcalc/foundation/calc/token"
	mdwlog "github.com/msto63/mcalc/foundation/core/log"
	"github.com/msto63/mcalc/internal/history"
)

var (
	evalTokens    bool
	evalNoHistory bool
)

var evalCmd = &cobra.Command{
	Use:   "eval [expression...]",
	Short: "Evaluate expressions",
	Long: `Evaluates each argument as an expression and prints its value.
Without arguments every line read from stdin is evaluated.

Examples:
  mcalc eval "10 + 3 * 5"            # 25
  mcalc eval "8 / 3" "1 - 2 - 3"     # 2 and -4
  echo "4 / 0" | mcalc eval          # Error: Division by zero at index 2
  mcalc eval --tokens "1 + 2"`,
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().BoolVarP(&evalTokens, "tokens", "t", false, "print the tokens of each expression")
	evalCmd.Flags().BoolVar(&evalNoHistory, "no-history", false, "do not record evaluations")
}

func runEval(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	store, err := openRecorder(evalNoHistory)
	if err != nil {
		return err
	}
	if store != nil {
		defer closeStore(store)
	}

	out := cmd.OutOrStdout()
	failed := 0
	evaluate := func(input string) {
		if !evaluateLine(cmd, engine, store, out, input) {
			failed++
		}
	}

	if len(args) > 0 {
		for _, input := range args {
			evaluate(input)
		}
	} else {
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			line := scanner.Text()
			if strings.TrimSpace(line) == "" {
				continue
			}
			evaluate(line)
		}
		if err := scanner.Err(); err != nil {
			return err
		}
	}

	if failed > 0 {
		return errEvaluationFailed
	}
	return nil
}

// evaluateLine prints the outcome of one expression and reports success
func evaluateLine(cmd *cobra.Command, engine *calc.Engine, store history.Store, out io.Writer, input string) bool {
	if evalTokens {
		if tokens, err := engine.Lex(input); err == nil {
			fmt.Fprintln(out, token.Format(tokens))
		}
	}

	r := engine.EvaluateResult(input)
	value, err := r.Get()
	if err != nil {
		printError(out, err)
	} else {
		fmt.Fprintln(out, value)
	}

	if store != nil {
		if recErr := store.Record(cmd.Context(), history.NewEntry(input, value, err)); recErr != nil {
			appLogger.LogError(recErr, mdwlog.Fields{"input": input})
		}
	}

	return err == nil
}
