package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bigcalc/internal/diag"
	"bigcalc/internal/diagfmt"
	"bigcalc/internal/lexer"
	"bigcalc/internal/source"
	"bigcalc/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   `tokenize [flags] "<expr>"`,
	Short: "Show the tokens of an expression",
	Long:  `Tokenize breaks an expression into the tokens the parser sees`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	env, err := prepareEnv(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	return tokenize(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], format, env.colorErr, env.maxDiagnostics)
}

// tokenize lexes expr, prints lexer diagnostics to errOut and the token
// table to out.
func tokenize(out, errOut io.Writer, expr, format string, useColor bool, maxDiagnostics int) error {
	var write func(io.Writer, []token.Token, *source.FileSet) error
	switch format {
	case "pretty":
		write = diagfmt.FormatTokensPretty
	case "json":
		write = diagfmt.FormatTokensJSON
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("<arg>", []byte(expr)))
	bag := diag.NewBag(maxDiagnostics)
	tokens := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}}).All()

	if bag.Len() > 0 {
		if err := diagfmt.Pretty(errOut, bag, fs, diagfmt.PrettyOpts{Color: useColor}); err != nil {
			return err
		}
	}
	return write(out, tokens, fs)
}
