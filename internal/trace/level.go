package trace

import (
	"fmt"
	"strings"
)

// Level controls which scopes are recorded.
type Level uint8

const (
	LevelOff    Level = iota
	LevelPhase        // ScopeDriver
	LevelDetail       // + ScopeFile
	LevelDebug        // + ScopeLine
)

// Scope is the granularity of a span; lower values are coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // repl, batch, eval
	ScopeFile
	ScopeLine
)

// StorageMode selects where events go.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1
	ModeRing               // dumped on exit
	ModeBoth
)

// Format is the event encoding.
type Format uint8

const (
	FormatAuto Format = iota // text, or NDJSON for *.ndjson outputs
	FormatText
	FormatNDJSON
)

var (
	levelNames = []string{"off", "phase", "detail", "debug"}
	scopeNames = []string{"", "driver", "file", "line"}
	modeNames  = []string{"", "stream", "ring", "both"}
	fmtNames   = []string{"auto", "text", "ndjson"}
)

func nameOf(names []string, i uint8) string {
	if int(i) < len(names) && names[i] != "" {
		return names[i]
	}
	return "unknown"
}

// lookup ищет s в names без учёта регистра.
func lookup[T ~uint8](what string, names []string, s string) (T, error) {
	s = strings.ToLower(s)
	for i, n := range names {
		if n != "" && n == s {
			return T(i), nil //nolint:gosec // names tables are tiny
		}
	}
	return 0, fmt.Errorf("invalid trace %s: %q (expected: %s)", what, s, strings.Join(nonEmpty(names), "|"))
}

func nonEmpty(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}

func (l Level) String() string       { return nameOf(levelNames, uint8(l)) }
func (s Scope) String() string       { return nameOf(scopeNames, uint8(s)) }
func (m StorageMode) String() string { return nameOf(modeNames, uint8(m)) }
func (f Format) String() string      { return nameOf(fmtNames, uint8(f)) }

func ParseLevel(s string) (Level, error) { return lookup[Level]("level", levelNames, s) }

func ParseMode(s string) (StorageMode, error) { return lookup[StorageMode]("mode", modeNames, s) }

// ParseFormat also accepts "" for auto and "json" for NDJSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "":
		return FormatAuto, nil
	case "json":
		return FormatNDJSON, nil
	}
	return lookup[Format]("format", fmtNames, s)
}

// ShouldEmit reports whether spans of scope are recorded at l.
func (l Level) ShouldEmit(scope Scope) bool {
	return scope != 0 && uint8(scope) <= uint8(l)
}

// resolve picks text or NDJSON for FormatAuto from the output path.
func (f Format) resolve(path string) Format {
	if f != FormatAuto {
		return f
	}
	if strings.HasSuffix(path, ".ndjson") {
		return FormatNDJSON
	}
	return FormatText
}

// ResolveFormat is Format.resolve for callers that dump rings themselves.
func ResolveFormat(f Format, path string) Format { return f.resolve(path) }
