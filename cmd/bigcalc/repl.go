package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"bigcalc/internal/driver"
)

// runRepl reads stdin line by line until EOF. Failing lines are reported on
// stderr and never change the exit status.
func runRepl(cmd *cobra.Command, _ []string) error {
	env, err := prepareEnv(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	prompt := env.cfg.REPL.Prompt
	if cmd.Flags().Changed("prompt") {
		if prompt, err = cmd.Flags().GetString("prompt"); err != nil {
			return fmt.Errorf("failed to get prompt flag: %w", err)
		}
	}
	// приглашение только для интерактивного ввода
	if !isTerminal(os.Stdin) {
		prompt = ""
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	session := &driver.Session{
		In:        cmd.InOrStdin(),
		Out:       cmd.OutOrStdout(),
		Err:       cmd.ErrOrStderr(),
		Prompt:    prompt,
		SkipBlank: env.cfg.REPL.SkipBlank,
		Color:     env.colorErr,
		Cache:     env.cache,
	}

	stage := env.timer.Start("repl")
	stats, err := session.Run(ctx)
	stage.Stop(fmt.Sprintf("%d lines, %d failed", stats.Lines, stats.Failed))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
