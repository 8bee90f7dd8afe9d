package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/mcalc/foundation/calc/lexer"
	"github.com/msto63/mcalc/foundation/calc/token"
)

var lexPositions bool

var lexCmd = &cobra.Command{
	Use:   "lex <expression...>",
	Short: "Show the tokens of expressions",
	Long: `Converts each argument into tokens and prints them.

Examples:
  mcalc lex "10 + 3"                 # [Number: 10, Symbol: +, Number: 3]
  mcalc lex --positions "10 + 3"     # adds the character index of each token`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().BoolVarP(&lexPositions, "positions", "p", false, "print the character index of each token")
}

func runLex(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, input := range args {
		tokens, err := engine.Lex(input)
		if err != nil {
			printError(out, err)
			failed++
			continue
		}

		if !lexPositions {
			fmt.Fprintln(out, token.Format(tokens))
			continue
		}

		_, positions, _ := lexer.LexWithPositions(input)
		parts := make([]string, len(tokens))
		for i, tok := range tokens {
			parts[i] = fmt.Sprintf("%d:%s", positions.At(i), tok)
		}
		fmt.Fprintf(out, "[%s] end=%d\n", strings.Join(parts, ", "), positions.End)
	}

	if failed > 0 {
		return errEvaluationFailed
	}
	return nil
}
