package driver

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"bigcalc/internal/trace"
)

func runSession(t *testing.T, s *Session, input string) (string, string, Stats) {
	t.Helper()
	var out, errOut bytes.Buffer
	s.In = strings.NewReader(input)
	s.Out = &out
	s.Err = &errOut
	stats, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String(), errOut.String(), stats
}

func TestSessionFaultIsolation(t *testing.T) {
	input := strings.Join([]string{
		"123 + 456",
		"1 & 2",
		"5 % 0",
		"-10 % 3",
		"",
		"99999999999999999999 * 99999999999999999999",
	}, "\n") + "\n"

	out, errOut, stats := runSession(t, &Session{}, input)

	wantOut := "579\n-1\n9999999999999999999800000000000000000001\n"
	if diff := cmp.Diff(wantOut, out); diff != "" {
		t.Errorf("stdout mismatch (-want +got):\n%s", diff)
	}
	wantErr := "parse error: invalid character at pos 2\n" +
		"math error: division by zero\n" +
		"parse error: unexpected end of input at pos 0\n"
	if diff := cmp.Diff(wantErr, errOut); diff != "" {
		t.Errorf("stderr mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Stats{Lines: 6, OK: 3, Failed: 3}, stats); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestSessionSkipBlankAndPrompt(t *testing.T) {
	out, errOut, stats := runSession(t, &Session{Prompt: "> ", SkipBlank: true}, "  \n2 * 3\n")
	if out != "> > 6\n> \n" {
		t.Errorf("stdout = %q", out)
	}
	if errOut != "" {
		t.Errorf("stderr = %q", errOut)
	}
	if stats.Skipped != 1 || stats.OK != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestSessionNoTrailingNewline(t *testing.T) {
	out, _, _ := runSession(t, &Session{}, "1 - 2")
	if out != "-1\n" {
		t.Errorf("stdout = %q", out)
	}
}

func TestSessionCRLF(t *testing.T) {
	out, errOut, _ := runSession(t, &Session{}, "7 * 6\r\n")
	if out != "42\n" || errOut != "" {
		t.Errorf("stdout = %q, stderr = %q", out, errOut)
	}
}

func TestSessionCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	s := &Session{In: strings.NewReader("1 + 1\n"), Out: &out, Err: &out}
	if _, err := s.Run(ctx); err != context.Canceled {
		t.Errorf("Run err = %v, want context.Canceled", err)
	}
	if out.Len() != 0 {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestSessionLineTooLong(t *testing.T) {
	s := &Session{MaxLineBytes: 16}
	s.In = strings.NewReader(strings.Repeat("1", 64) + " + 1\n")
	var out bytes.Buffer
	s.Out, s.Err = &out, &out
	if _, err := s.Run(context.Background()); err == nil {
		t.Error("expected bufio.ErrTooLong")
	}
}

func TestSessionUsesCache(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s := &Session{Cache: cache}
	out, errOut, stats := runSession(t, s, "12 * 12\n  12   *  12\n4 % 0\n4 % 0\n")
	if out != "144\n144\n" {
		t.Errorf("stdout = %q", out)
	}
	if errOut != "math error: division by zero\nmath error: division by zero\n" {
		t.Errorf("stderr = %q", errOut)
	}
	if stats.CacheHits != 2 {
		t.Errorf("CacheHits = %d, want 2", stats.CacheHits)
	}
}

func TestSessionColorPrefix(t *testing.T) {
	_, errOut, _ := runSession(t, &Session{Color: true}, "5 % 0\n")
	if !strings.Contains(errOut, "\x1b[") {
		t.Errorf("expected ANSI escape in %q", errOut)
	}
	if !strings.Contains(errOut, "math error:") || !strings.HasSuffix(errOut, " division by zero\n") {
		t.Errorf("unexpected colored output %q", errOut)
	}
}

func TestSessionCancelWhileWaitingForInput(t *testing.T) {
	pr, pw := io.Pipe()
	// закрываем запись, чтобы читающая горутина завершилась
	t.Cleanup(func() { pw.Close() })

	var out bytes.Buffer
	s := &Session{In: pr, Out: &out, Err: io.Discard, Prompt: "> "}
	ctx, cancel := context.WithCancel(context.Background())

	type result struct {
		stats Stats
		err   error
	}
	finished := make(chan result, 1)
	go func() {
		stats, err := s.Run(ctx)
		finished <- result{stats, err}
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case r := <-finished:
		if !errors.Is(r.err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", r.err)
		}
		if r.stats.Lines != 0 {
			t.Errorf("Lines = %d, want 0", r.stats.Lines)
		}
		if out.String() != "> \n" {
			t.Errorf("stdout = %q", out.String())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run still waiting for input after cancel")
	}
}

func TestSessionNoPromptLeftAtEOF(t *testing.T) {
	out, _, _ := runSession(t, &Session{Prompt: "calc> "}, "1 + 1\n")
	if out != "calc> 2\ncalc> \n" {
		t.Errorf("stdout = %q", out)
	}
	// без приглашения вывод не меняется
	out, _, _ = runSession(t, &Session{}, "1 + 1\n")
	if out != "2\n" {
		t.Errorf("stdout = %q", out)
	}
}

func TestSessionTracesCacheHit(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ring := trace.NewRingTracer(64, trace.LevelDebug)
	var out bytes.Buffer
	s := &Session{In: strings.NewReader("7 * 6\n7*6\n"), Out: &out, Err: &out, Cache: cache}
	if _, err := s.Run(trace.WithTracer(context.Background(), ring)); err != nil {
		t.Fatal(err)
	}

	var hits int
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindPoint && ev.Name == "cache" && ev.Detail == "hit" {
			hits++
		}
	}
	if hits != 1 {
		t.Errorf("cache hit points = %d, want 1", hits)
	}
}
