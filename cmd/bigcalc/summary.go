package main

import (
	"io"
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"bigcalc/internal/driver"
)

// userLanguage picks the message language from LC_ALL, LC_MESSAGES or LANG.
func userLanguage() language.Tag {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		value := os.Getenv(key)
		if value == "" || value == "C" || value == "POSIX" {
			continue
		}
		// ru_RU.UTF-8@euro -> ru-RU
		value, _, _ = strings.Cut(value, ".")
		value, _, _ = strings.Cut(value, "@")
		if tag, err := language.Parse(strings.ReplaceAll(value, "_", "-")); err == nil {
			return tag
		}
	}
	return language.English
}

// writeSummary prints totals with locale-aware digit grouping.
func writeSummary(w io.Writer, tag language.Tag, files int, total driver.Stats) {
	p := message.NewPrinter(tag)
	p.Fprintf(w, "%d files, %d lines: %d ok, %d failed", files, total.Lines, total.OK, total.Failed)
	if total.Skipped > 0 {
		p.Fprintf(w, ", %d skipped", total.Skipped)
	}
	if total.CacheHits > 0 {
		p.Fprintf(w, ", %d cached", total.CacheHits)
	}
	p.Fprintln(w)
}
