package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bigcalc/internal/driver"
)

var evalCmd = &cobra.Command{
	Use:   `eval "<expr>"...`,
	Short: "Evaluate expressions given as arguments",
	Long: `Evaluate each argument as one line, exactly as the interactive mode would.
Exits with status 1 if any expression failed.`,
	Example: `  bigcalc eval "123456789012345678901234567890 * 987654321"
  bigcalc eval "-10 % 3" "5 % 0"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEval,
}

func runEval(cmd *cobra.Command, args []string) error {
	env, err := prepareEnv(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	// SkipBlank не применяется: пустой аргумент считается ошибкой пользователя
	session := &driver.Session{
		In:    strings.NewReader(strings.Join(args, "\n")),
		Out:   cmd.OutOrStdout(),
		Err:   cmd.ErrOrStderr(),
		Color: env.colorErr,
		Cache: env.cache,
	}

	var stats driver.Stats
	env.timer.Measure("eval", func() string {
		stats, err = session.Run(cmd.Context())
		return fmt.Sprintf("%d expressions", stats.Lines)
	})
	if err != nil {
		return err
	}
	if stats.Failed > 0 {
		return &exitCodeError{code: 1}
	}
	return nil
}
