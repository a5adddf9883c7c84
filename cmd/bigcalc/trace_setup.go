package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"bigcalc/internal/trace"
)

// traceConfig turns the --trace* persistent flags into a trace.Config.
// --trace without --trace-level means phase level.
func traceConfig(pf *pflag.FlagSet) (trace.Config, error) {
	var (
		cfg                 trace.Config
		level, mode, fmtStr string
		errs                []error
	)
	str := func(name string, dst *string) {
		v, err := pf.GetString(name)
		*dst = v
		errs = append(errs, err)
	}
	str("trace", &cfg.OutputPath)
	str("trace-level", &level)
	str("trace-mode", &mode)
	str("trace-format", &fmtStr)
	size, err := pf.GetInt("trace-ring-size")
	cfg.RingSize = size
	if err = errors.Join(append(errs, err)...); err != nil {
		return cfg, fmt.Errorf("trace flags: %w", err)
	}

	if cfg.Level, err = trace.ParseLevel(level); err != nil {
		return cfg, err
	}
	if cfg.Level == trace.LevelOff && cfg.OutputPath != "" && !pf.Changed("trace-level") {
		cfg.Level = trace.LevelPhase
	}
	if cfg.Mode, err = trace.ParseMode(mode); err != nil {
		return cfg, err
	}
	if cfg.Format, err = trace.ParseFormat(fmtStr); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// setupTracing attaches the configured tracer to cmd's context. The returned
// cleanup dumps the ring (in ring mode), then flushes and closes.
func setupTracing(cmd *cobra.Command) (func(), error) {
	cfg, err := traceConfig(cmd.Root().PersistentFlags())
	if err != nil {
		return nil, err
	}
	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))
	if cfg.Level == trace.LevelOff {
		return func() {}, nil
	}

	errOut := cmd.ErrOrStderr()
	return func() {
		var dumpErr error
		if cfg.Mode == trace.ModeRing {
			dumpErr = dumpRing(tracer, cfg.OutputPath, cfg.Format)
		}
		if err := errors.Join(dumpErr, tracer.Flush(), tracer.Close()); err != nil {
			fmt.Fprintf(errOut, "trace: %v\n", err)
		}
	}, nil
}

func ringOf(t trace.Tracer) *trace.RingTracer {
	switch t := t.(type) {
	case *trace.RingTracer:
		return t
	case *trace.MultiTracer:
		return t.Ring()
	}
	return nil
}

// dumpRing writes the ring's events to path ("" or "-" is stderr).
func dumpRing(t trace.Tracer, path string, format trace.Format) (err error) {
	ring := ringOf(t)
	if ring == nil {
		return nil
	}
	var w io.Writer = os.Stderr
	if path != "" && path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer func() { err = errors.Join(err, f.Close()) }()
		w = f
	}
	return ring.Dump(w, trace.ResolveFormat(format, path))
}
