package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"bigcalc/internal/diag"
	"bigcalc/internal/eval"
	"bigcalc/internal/observ"
	"bigcalc/internal/parser"
	"bigcalc/internal/source"
	"bigcalc/internal/trace"
)

// InputExt is the extension picked up when a directory is given to batch.
const InputExt = ".calc"

// DefaultMaxDiagnostics is the per-file limit used when none is configured.
const DefaultMaxDiagnostics = 100

type BatchOptions struct {
	Jobs           int // <= 0 means GOMAXPROCS
	MaxDiagnostics int
	SkipBlank      bool
	Cache          *DiskCache
	Progress       ProgressSink
	Timer          *observ.Timer
}

// LineResult is the outcome of one line of a file.
type LineResult struct {
	Line   uint32 // 1-based
	Result eval.Result
	Cached bool
}

// FileResult содержит результат вычисления одного файла
type FileResult struct {
	Path    string
	FileID  source.FileID
	Lines   []LineResult
	Bag     *diag.Bag
	Stats   Stats
	LoadErr error
}

// ExpandInputs replaces directories with the sorted *.calc files they contain.
// Plain files are kept as given, in order.
func ExpandInputs(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			// ошибку чтения покажет загрузка файла
			out = append(out, p)
			continue
		}
		var found []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, InputExt) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		slices.Sort(found)
		out = append(out, found...)
	}
	return out, nil
}

// EvaluateFiles evaluates every line of every file. Files are processed in
// parallel; results keep the order of files. The returned error is non-nil
// only when ctx is cancelled: per-line failures live in the results.
func EvaluateFiles(ctx context.Context, files []string, opts BatchOptions) (*source.FileSet, []FileResult, error) {
	ctx, span := trace.StartSpan(ctx, trace.ScopeDriver, "batch")
	defer span.WithExtra("files", fmt.Sprint(len(files))).End("")

	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = DefaultMaxDiagnostics
	}
	fileSet := source.NewFileSet()
	results := make([]FileResult, len(files))
	if len(files) == 0 {
		return fileSet, results, nil
	}

	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	// FileSet не потокобезопасен на запись: грузим всё до старта воркеров
	loadStage := opts.Timer.Start("load")
	fileIDs := make([]source.FileID, len(files))
	for i, path := range files {
		results[i] = FileResult{Path: path, Bag: diag.NewBag(opts.MaxDiagnostics)}
		id, err := fileSet.Load(path)
		if err != nil {
			// пустой виртуальный файл, чтобы диагностика ссылалась на путь
			id = fileSet.AddVirtual(path, nil)
			results[i].FileID = id
			results[i].LoadErr = err
			results[i].Bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: id}, "failed to load file: "+err.Error()))
			emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err})
			continue
		}
		fileIDs[i] = id
		results[i].FileID = id
	}
	loadStage.Stop(fmt.Sprintf("%d files", len(files)))

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i := range files {
		if results[i].LoadErr != nil {
			continue
		}
		g.Go(func() error {
			// индекс i уникален для горутины, мьютекс не нужен
			return evaluateFile(gctx, fileSet.Get(fileIDs[i]), &results[i], opts)
		})
	}

	err := g.Wait()
	emit(opts.Progress, Event{Stage: StageEval, Status: StatusDone})
	return fileSet, results, err
}

func evaluateFile(ctx context.Context, file *source.File, out *FileResult, opts BatchOptions) error {
	ctx, span := trace.StartSpan(ctx, trace.ScopeFile, "file:"+out.Path)
	started := time.Now()
	emit(opts.Progress, Event{File: out.Path, Stage: StageEval, Status: StatusWorking})

	stage := opts.Timer.Start("eval " + filepath.Base(out.Path))

	reporter := diag.BagReporter{Bag: out.Bag}
	count := file.LineCount()
	out.Lines = make([]LineResult, 0, count)

	for n := uint32(1); n <= count; n++ {
		if err := ctx.Err(); err != nil {
			span.End("cancelled")
			return err
		}
		start, end, _ := file.LineBounds(n)
		text := string(file.Content[start:end])
		if opts.SkipBlank && strings.TrimSpace(text) == "" {
			out.Stats.Skipped++
			continue
		}

		_, lineSpan := trace.StartSpan(ctx, trace.ScopeLine, lineName(n))
		var (
			res eval.Result
			hit bool
		)
		expr, perr := parser.Parse(file, start, end, parser.Options{Reporter: reporter})
		if perr != nil {
			res = eval.Result{Input: text, Err: perr, Stage: eval.StageParse}
		} else {
			res, hit = evaluateExpr(opts.Cache, text, expr)
			reportResult(reporter, res)
		}
		lineSpan.WithExtra("stage", res.Stage.String()).End(res.Message())

		out.Stats.add(res, hit)
		out.Lines = append(out.Lines, LineResult{Line: n, Result: res, Cached: hit})
	}

	status := StatusDone
	if out.Stats.Failed > 0 {
		status = StatusError
	}
	stage.Stop(fmt.Sprintf("%d lines", out.Stats.Lines))
	emit(opts.Progress, Event{
		File:    out.Path,
		Stage:   StageEval,
		Status:  status,
		Elapsed: time.Since(started),
		Lines:   out.Stats.Lines,
		Failed:  out.Stats.Failed,
	})
	span.WithExtra("lines", fmt.Sprint(out.Stats.Lines)).
		WithExtra("failed", fmt.Sprint(out.Stats.Failed)).
		End("")
	return nil
}

// Totals sums the stats of all files.
func Totals(results []FileResult) Stats {
	var total Stats
	for _, r := range results {
		total.Lines += r.Stats.Lines
		total.OK += r.Stats.OK
		total.Failed += r.Stats.Failed
		total.Skipped += r.Stats.Skipped
		total.CacheHits += r.Stats.CacheHits
	}
	return total
}
