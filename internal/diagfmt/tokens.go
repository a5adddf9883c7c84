package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"bigcalc/internal/source"
	"bigcalc/internal/token"
)

// TokenRecord is the JSON form of a token; Line and Col locate Span[0].
type TokenRecord struct {
	Kind string    `json:"kind"`
	Text string    `json:"text,omitempty"`
	Span [2]uint32 `json:"span"`
	Line uint32    `json:"line"`
	Col  uint32    `json:"col"`
}

// untilEOF cuts tokens after the first EOF.
func untilEOF(tokens []token.Token) []token.Token {
	for i, tok := range tokens {
		if tok.Kind == token.EOF {
			return tokens[:i+1]
		}
	}
	return tokens
}

// FormatTokensPretty prints an aligned table: index, kind, quoted text and
// the line:col range of each token.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tKIND\tTEXT\tAT")
	for i, tok := range untilEOF(tokens) {
		s, e := fs.Resolve(tok.Span)
		text := ""
		if tok.Text != "" {
			text = strconv.Quote(tok.Text)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d:%d-%d:%d\n", i+1, tok.Kind, text, s.Line, s.Col, e.Line, e.Col)
	}
	return tw.Flush()
}

// FormatTokensJSON writes the tokens as an indented JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	toks := untilEOF(tokens)
	out := make([]TokenRecord, len(toks))
	for i, tok := range toks {
		s, _ := fs.Resolve(tok.Span)
		out[i] = TokenRecord{
			Kind: tok.Kind.String(),
			Text: tok.Text,
			Span: [2]uint32{tok.Span.Start, tok.Span.End},
			Line: s.Line,
			Col:  s.Col,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
