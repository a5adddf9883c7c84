package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"bigcalc/internal/driver"
	"bigcalc/internal/observ"
	"bigcalc/internal/prof"
)

// appEnv carries what every command needs after flags and config are merged.
type appEnv struct {
	cfg            appConfig
	quiet          bool
	colorOut       bool
	colorErr       bool
	maxDiagnostics int
	cache          *driver.DiskCache
	timer          *observ.Timer

	cleanups []func()
}

// prepareEnv merges flags over bigcalc.toml over defaults and starts tracing
// and profiling. Callers must defer env.close().
func prepareEnv(cmd *cobra.Command) (*appEnv, error) {
	pf := cmd.Root().PersistentFlags()

	configPath, err := pf.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := loadConfig(configPath, "")
	if err != nil {
		return nil, err
	}

	env := &appEnv{cfg: cfg}
	if env.quiet, err = pf.GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if env.maxDiagnostics, err = pf.GetInt("max-diagnostics"); err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	colorValue := cfg.Output.Color
	if pf.Changed("color") {
		if colorValue, err = pf.GetString("color"); err != nil {
			return nil, fmt.Errorf("failed to get color flag: %w", err)
		}
	}
	mode, err := parseSwitch("color", colorValue)
	if err != nil {
		return nil, err
	}
	env.colorOut = mode.on(os.Stdout)
	env.colorErr = mode.on(os.Stderr)
	color.NoColor = !env.colorOut

	useCache := cfg.Cache.Enabled
	if pf.Changed("cache") {
		if useCache, err = pf.GetBool("cache"); err != nil {
			return nil, fmt.Errorf("failed to get cache flag: %w", err)
		}
	}
	clearCache, err := pf.GetBool("clear-cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	if env.cache, err = openCache(cfg.Cache, useCache, clearCache); err != nil {
		return nil, err
	}

	timings, err := pf.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if timings {
		env.timer = observ.NewTimer()
		errOut := cmd.ErrOrStderr()
		env.cleanups = append(env.cleanups, func() {
			fmt.Fprint(errOut, env.timer.Summary())
		})
	}

	if err := env.startProfiling(cmd); err != nil {
		env.close()
		return nil, err
	}
	stopTrace, err := setupTracing(cmd)
	if err != nil {
		env.close()
		return nil, err
	}
	env.cleanups = append(env.cleanups, stopTrace)
	return env, nil
}

// openCache returns the result cache when enabled. drop empties it first,
// even when caching is off for this run.
func openCache(cfg cacheConfig, enabled, drop bool) (*driver.DiskCache, error) {
	if !enabled && !drop {
		return nil, nil
	}
	var (
		cache *driver.DiskCache
		err   error
	)
	if cfg.Dir != "" {
		cache, err = driver.NewDiskCache(cfg.Dir)
	} else {
		cache, err = driver.OpenDiskCache("bigcalc")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open result cache: %w", err)
	}
	if drop {
		if err := cache.DropAll(); err != nil {
			return nil, fmt.Errorf("failed to clear result cache: %w", err)
		}
	}
	if !enabled {
		return nil, nil
	}
	return cache, nil
}

func (e *appEnv) startProfiling(cmd *cobra.Command) error {
	pf := cmd.Root().PersistentFlags()
	cpu, err := pf.GetString("cpu-profile")
	if err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	mem, err := pf.GetString("mem-profile")
	if err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	session, err := prof.Start(prof.Options{CPUPath: cpu, MemPath: mem})
	if err != nil {
		return err
	}
	errOut := cmd.ErrOrStderr()
	e.cleanups = append(e.cleanups, func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(errOut, "profile: %v\n", err)
		}
	})
	return nil
}

// close runs cleanups in reverse order.
func (e *appEnv) close() {
	for i := len(e.cleanups) - 1; i >= 0; i-- {
		e.cleanups[i]()
	}
	e.cleanups = nil
}
