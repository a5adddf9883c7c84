package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"bigcalc/internal/diag"
	"bigcalc/internal/diagfmt"
	"bigcalc/internal/driver"
	"bigcalc/internal/source"
)

var batchCmd = &cobra.Command{
	Use:   "batch [flags] <file.calc|directory>...",
	Short: "Evaluate files of expressions in parallel",
	Long: `Evaluate every line of the given files. Directories are searched for *.calc files.
Results go to stdout as path:line: value, failures are reported as diagnostics.
Exits with status 1 if any line failed or any file could not be read.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().Int("jobs", 0, "max parallel files (0=auto)")
	batchCmd.Flags().String("ui", "auto", "progress user interface (auto|on|off)")
	batchCmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	batchCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	batchCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
}

type batchRender struct {
	format    string
	color     bool
	quiet     bool
	withNotes bool
	pathMode  diagfmt.PathMode
	maxDiags  int
}

func runBatch(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	format, err := flags.GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	withNotes, err := flags.GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := flags.GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}

	env, err := prepareEnv(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	jobs := env.cfg.Batch.Jobs
	if flags.Changed("jobs") {
		if jobs, err = flags.GetInt("jobs"); err != nil {
			return fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	uiValue := env.cfg.Batch.UI
	if flags.Changed("ui") {
		if uiValue, err = flags.GetString("ui"); err != nil {
			return fmt.Errorf("failed to get ui flag: %w", err)
		}
	}
	mode, err := parseSwitch("ui", uiValue)
	if err != nil {
		return err
	}

	files, err := driver.ExpandInputs(args)
	if err != nil {
		return fmt.Errorf("failed to collect inputs: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s files found", driver.InputExt)
	}

	opts := driver.BatchOptions{
		Jobs:           jobs,
		MaxDiagnostics: env.maxDiagnostics,
		SkipBlank:      env.cfg.REPL.SkipBlank,
		Cache:          env.cache,
		Timer:          env.timer,
	}

	var (
		fileSet *source.FileSet
		results []driver.FileResult
	)
	// прогресс рисуется в stderr, поэтому json в stdout ему не мешает
	if !env.quiet && mode.on(os.Stderr) {
		title := fmt.Sprintf("evaluating %d files", len(files))
		fileSet, results, err = runBatchWithUI(cmd.Context(), title, files, opts)
	} else {
		fileSet, results, err = driver.EvaluateFiles(cmd.Context(), files, opts)
	}
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	render := batchRender{
		format:    format,
		color:     env.colorErr,
		quiet:     env.quiet,
		withNotes: withNotes,
		pathMode:  pathMode,
		maxDiags:  env.maxDiagnostics,
	}
	if err := render.write(cmd.OutOrStdout(), cmd.ErrOrStderr(), fileSet, results); err != nil {
		return err
	}
	if batchFailed(results) {
		return &exitCodeError{code: 1}
	}
	return nil
}

func batchFailed(results []driver.FileResult) bool {
	for _, r := range results {
		if r.LoadErr != nil || r.Stats.Failed > 0 {
			return true
		}
	}
	return false
}

func mergedBag(results []driver.FileResult) *diag.Bag {
	bag := diag.NewBag(0)
	for _, r := range results {
		bag.Merge(r.Bag)
	}
	bag.Dedup()
	bag.Sort()
	return bag
}

func (r batchRender) write(out, errOut io.Writer, fs *source.FileSet, results []driver.FileResult) error {
	if r.format == "json" {
		return r.writeJSON(out, fs, results)
	}

	if !r.quiet {
		for _, fr := range results {
			for _, line := range fr.Lines {
				if line.Result.OK() {
					fmt.Fprintf(out, "%s:%d: %s\n", r.path(fr.Path), line.Line, line.Result.Output)
				}
			}
		}
	}

	bag := mergedBag(results)
	switch r.format {
	case "short":
		if output := diag.FormatShortDiagnostics(bag.Items(), fs, r.withNotes); output != "" {
			fmt.Fprintln(errOut, output)
		}
	default:
		opts := diagfmt.PrettyOpts{
			Color:     r.color,
			PathMode:  r.pathMode,
			ShowNotes: r.withNotes,
			Max:       r.maxDiags,
		}
		if err := diagfmt.Pretty(errOut, bag, fs, opts); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	}

	if !r.quiet {
		writeSummary(errOut, userLanguage(), len(results), driver.Totals(results))
	}
	return nil
}

func (r batchRender) path(p string) string {
	if r.pathMode == diagfmt.PathModeAbsolute {
		return absPath(p)
	}
	return p
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return filepath.ToSlash(abs)
	}
	return p
}

type batchLineJSON struct {
	Line   uint32 `json:"line"`
	Input  string `json:"input"`
	Output string `json:"output,omitempty"`
	Stage  string `json:"stage"`
	Error  string `json:"error,omitempty"`
	Cached bool   `json:"cached,omitempty"`
}

type batchFileJSON struct {
	Path  string          `json:"path"`
	Error string          `json:"error,omitempty"`
	Lines []batchLineJSON `json:"lines"`
}

type batchTotalsJSON struct {
	Files     int `json:"files"`
	Lines     int `json:"lines"`
	OK        int `json:"ok"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
	CacheHits int `json:"cache_hits"`
}

type batchJSON struct {
	Files       []batchFileJSON `json:"files"`
	Totals      batchTotalsJSON `json:"totals"`
	Diagnostics diagfmt.Report  `json:"diagnostics"`
}

func (r batchRender) writeJSON(out io.Writer, fs *source.FileSet, results []driver.FileResult) error {
	total := driver.Totals(results)
	doc := batchJSON{
		Files: make([]batchFileJSON, 0, len(results)),
		Totals: batchTotalsJSON{
			Files:     len(results),
			Lines:     total.Lines,
			OK:        total.OK,
			Failed:    total.Failed,
			Skipped:   total.Skipped,
			CacheHits: total.CacheHits,
		},
		Diagnostics: diagfmt.BuildReport(mergedBag(results), fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         r.pathMode,
			Max:              r.maxDiags,
			IncludeNotes:     r.withNotes,
		}),
	}
	for _, fr := range results {
		file := batchFileJSON{Path: r.path(fr.Path), Lines: make([]batchLineJSON, 0, len(fr.Lines))}
		if fr.LoadErr != nil {
			file.Error = fr.LoadErr.Error()
		}
		for _, line := range fr.Lines {
			file.Lines = append(file.Lines, batchLineJSON{
				Line:   line.Line,
				Input:  strings.TrimRight(line.Result.Input, "\r"),
				Output: line.Result.Output,
				Stage:  line.Result.Stage.String(),
				Error:  errorText(line.Result.Err),
				Cached: line.Cached,
			})
		}
		doc.Files = append(doc.Files, file)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
