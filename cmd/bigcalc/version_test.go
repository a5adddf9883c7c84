package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"

	"bigcalc/internal/version"
)

func TestRenderVersionPretty(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	info := version.Info{Version: version.Version, GitCommit: "abc123"}
	var buf bytes.Buffer
	renderVersionPretty(&buf, info, versionOptions{showHash: true, showDate: true})

	want := "bigcalc " + version.Version + "\ncommit:  abc123\nbuilt:   unknown\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("pretty mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderVersionJSON(t *testing.T) {
	info := version.Info{Version: "1.2.3", GitCommit: "abc123", Message: "fix carry"}
	var buf bytes.Buffer
	if err := renderVersionJSON(&buf, info, versionOptions{showHash: true}); err != nil {
		t.Fatal(err)
	}
	var got map[string]string
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	want := map[string]string{"tool": "bigcalc", "version": "1.2.3", "git_commit": "abc123"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("json mismatch (-want +got):\n%s", diff)
	}
}
