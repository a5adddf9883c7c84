// Package token defines lexical token kinds for bigcalc expressions.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - A sign directly followed by a digit belongs to the IntLit; a sign followed by
//     anything else is an operator token.
//   - EOF carries an empty span positioned at the end of the line.
package token
