package driver

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"bigcalc/internal/eval"
	"bigcalc/internal/parser"
	"bigcalc/internal/trace"
)

// DefaultMaxLineBytes bounds a single REPL line (operands can be long).
const DefaultMaxLineBytes = 64 << 20

// Session evaluates lines read from In one at a time: results go to Out,
// failures to Err. A failing line never stops the session.
type Session struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// Prompt is written to Out before every line when non-empty.
	Prompt string
	// SkipBlank drops whitespace-only lines instead of reporting them.
	SkipBlank bool
	// Color highlights the "<stage> error:" prefix on Err.
	Color bool
	// Cache is optional.
	Cache        *DiskCache
	MaxLineBytes int
}

// errPrefixColor ignores color.NoColor: Session.Color already decided.
var errPrefixColor = func() *color.Color {
	c := color.New(color.FgRed, color.Bold)
	c.EnableColor()
	return c
}()

// Stats summarises a session or a batch.
type Stats struct {
	Lines     int
	OK        int
	Failed    int
	Skipped   int
	CacheHits int
}

func (s *Stats) add(res eval.Result, hit bool) {
	s.Lines++
	if res.OK() {
		s.OK++
	} else {
		s.Failed++
	}
	if hit {
		s.CacheHits++
	}
}

// Run reads until EOF or until ctx is done, also while waiting for input.
// The error is ctx.Err() in the latter case, or the read/write error that
// stopped the loop.
func (s *Session) Run(ctx context.Context) (Stats, error) {
	var stats Stats

	ctx, span := trace.StartSpan(ctx, trace.ScopeDriver, "repl")
	defer func() {
		span.WithExtra("lines", fmt.Sprint(stats.Lines)).
			WithExtra("failed", fmt.Sprint(stats.Failed)).
			End("")
	}()

	done := make(chan struct{})
	defer close(done)
	lines := s.scanLines(done)

	var lineNo uint32
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if err := s.prompt(); err != nil {
			return stats, err
		}

		var (
			in scanned
			ok bool
		)
		select {
		case <-ctx.Done():
			return stats, errors.Join(ctx.Err(), s.endPrompt())
		case in, ok = <-lines:
		}
		if !ok {
			return stats, s.endPrompt()
		}
		if in.err != nil {
			return stats, in.err
		}
		lineNo++

		if s.SkipBlank && strings.TrimSpace(in.line) == "" {
			stats.Skipped++
			continue
		}

		res, hit := s.evalLine(ctx, lineNo, in.line)
		stats.add(res, hit)
		if err := s.write(res); err != nil {
			return stats, err
		}
	}
}

type scanned struct {
	line string
	err  error
}

// scanLines reads In on its own goroutine so Run can leave a blocked read
// behind. The goroutine exits at EOF, on a read error, or once done is
// closed and it has nothing left to hand over.
func (s *Session) scanLines(done <-chan struct{}) <-chan scanned {
	maxLine := s.MaxLineBytes
	if maxLine <= 0 {
		maxLine = DefaultMaxLineBytes
	}
	sc := bufio.NewScanner(s.In)
	sc.Buffer(make([]byte, 0, min(64*1024, maxLine)), maxLine)

	out := make(chan scanned)
	go func() {
		defer close(out)
		send := func(v scanned) bool {
			select {
			case out <- v:
				return true
			case <-done:
				return false
			}
		}
		for sc.Scan() {
			if !send(scanned{line: sc.Text()}) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			send(scanned{err: err})
		}
	}()
	return out
}

func (s *Session) evalLine(ctx context.Context, lineNo uint32, line string) (eval.Result, bool) {
	_, span := trace.StartSpan(ctx, trace.ScopeLine, lineName(lineNo))

	var (
		res eval.Result
		hit bool
	)
	expr, perr := parser.ParseString(line)
	if perr != nil {
		res = eval.Result{Input: line, Err: perr, Stage: eval.StageParse}
	} else {
		res, hit = evaluateExpr(s.Cache, line, expr)
	}

	if hit {
		span.Point("cache", "hit")
	}
	span.WithExtra("stage", res.Stage.String())
	span.End(res.Message())
	return res, hit
}

func (s *Session) prompt() error {
	if s.Prompt == "" {
		return nil
	}
	_, err := io.WriteString(s.Out, s.Prompt)
	return err
}

// endPrompt terminates a prompt left on the last line at EOF or interrupt.
func (s *Session) endPrompt() error {
	if s.Prompt == "" {
		return nil
	}
	_, err := io.WriteString(s.Out, "\n")
	return err
}

func (s *Session) write(res eval.Result) error {
	if res.OK() {
		_, err := fmt.Fprintln(s.Out, res.Output)
		return err
	}
	if !s.Color {
		_, err := fmt.Fprintln(s.Err, res.Message())
		return err
	}
	_, err := fmt.Fprintln(s.Err, errPrefixColor.Sprint(res.Stage.String()+" error:"), res.Err.Error())
	return err
}
