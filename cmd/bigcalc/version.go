package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"bigcalc/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show bigcalc build information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	f := versionCmd.Flags()
	f.Bool("hash", false, "include git commit hash")
	f.Bool("message", false, "include git commit message")
	f.Bool("date", false, "include build timestamp")
	f.Bool("full", false, "show all recorded build metadata")
	f.String("format", "pretty", "output format (pretty|json)")
}

// versionOptions selects the optional lines of the report.
type versionOptions struct {
	showHash    bool
	showMessage bool
	showDate    bool
}

// versionField is one optional line: its pretty label, JSON key and value.
type versionField struct {
	label, key, value string
}

func (o versionOptions) fields(info version.Info) []versionField {
	var out []versionField
	if o.showHash {
		out = append(out, versionField{"commit", "git_commit", orUnknown(info.GitCommit)})
	}
	if o.showMessage {
		out = append(out, versionField{"message", "git_message", orUnknown(info.Message)})
	}
	if o.showDate {
		out = append(out, versionField{"built", "build_date", orUnknown(info.BuildDate)})
	}
	return out
}

func runVersion(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	format, _ := f.GetString("format")
	full, _ := f.GetBool("full")
	hash, _ := f.GetBool("hash")
	msg, _ := f.GetBool("message")
	date, _ := f.GetBool("date")
	opts := versionOptions{showHash: hash || full, showMessage: msg || full, showDate: date || full}

	env, err := prepareEnv(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	info := version.Current()
	switch strings.ToLower(format) {
	case "pretty":
		renderVersionPretty(cmd.OutOrStdout(), info, opts)
		return nil
	case "json":
		return renderVersionJSON(cmd.OutOrStdout(), info, opts)
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}

func renderVersionPretty(out io.Writer, info version.Info, opts versionOptions) {
	v := info.Version
	if v == version.Version {
		v = version.Colored()
	}
	fmt.Fprintf(out, "bigcalc %s\n", v)
	for _, fld := range opts.fields(info) {
		fmt.Fprintf(out, "%-9s%s\n", fld.label+":", fld.value)
	}
}

func renderVersionJSON(out io.Writer, info version.Info, opts versionOptions) error {
	doc := map[string]string{"tool": "bigcalc", "version": info.Version}
	for _, fld := range opts.fields(info) {
		doc[fld.key] = fld.value
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func orUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "unknown"
	}
	return s
}
