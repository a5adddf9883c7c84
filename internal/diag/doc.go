// Package diag defines the diagnostic model shared by the lexer, the parser
// and the evaluator.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error).
//   - Code – compact numeric identifier (see codes.go) with stable string form
//     such as LEX1001 or MTH4001.
//   - Message – human oriented text, e.g. "invalid character at pos 2".
//   - Primary span – the source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages.
//
// # Collecting
//
// Producers talk to a Reporter, usually through ReportError(...).Emit();
// BagReporter stores into a Bag which enforces
// the --max-diagnostics limit. Bag.Sort orders entries by file and offset so
// output is deterministic regardless of evaluation order.
//
// Package diag does no colouring or terminal IO. Rendering lives in
// internal/diagfmt; FormatShortDiagnostics is the only formatter kept here
// because tests and `batch --format short` share it.
package diag
