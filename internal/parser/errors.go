package parser

import (
	"fmt"

	"bigcalc/internal/diag"
	"bigcalc/internal/source"
)

type ErrorKind uint8

const (
	ErrInvalidChar ErrorKind = iota + 1
	ErrUnexpectedEOF
	ErrExpected
)

// Expected описывает, что парсер ждал на месте ошибки.
type Expected uint8

const (
	ExpectInteger Expected = iota + 1
	ExpectOperator
	ExpectEnd
)

func (e Expected) String() string {
	switch e {
	case ExpectInteger:
		return "integer"
	case ExpectOperator:
		return "operator"
	case ExpectEnd:
		return "end"
	default:
		return "token"
	}
}

// Error describes the first problem found in a line.
type Error struct {
	Kind     ErrorKind
	Expected Expected
	Pos      uint32 // байтовое смещение внутри строки
	Span     source.Span
	Text     string // текст неожиданного токена
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrInvalidChar:
		return fmt.Sprintf("invalid character at pos %d", e.Pos)
	case ErrUnexpectedEOF:
		return fmt.Sprintf("unexpected end of input at pos %d", e.Pos)
	default:
		return fmt.Sprintf("expected %s at pos %d", e.Expected, e.Pos)
	}
}

// Code maps the error onto a diagnostic code.
func (e *Error) Code() diag.Code {
	switch e.Kind {
	case ErrInvalidChar:
		return diag.LexInvalidChar
	case ErrUnexpectedEOF:
		return diag.SynUnexpectedEOF
	default:
		return diag.SynExpected
	}
}
