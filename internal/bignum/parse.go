package bignum

import (
	"errors"
	"strings"
)

// ErrMalformed is wrapped by every *ParseError.
var ErrMalformed = errors.New("malformed integer")

// ParseErrKind identifies why a decimal string was rejected.
type ParseErrKind uint8

const (
	// ParseInvalid is the zero value; Parse never reports it.
	ParseInvalid ParseErrKind = iota
	// ParseEmpty: nothing left after trimming whitespace.
	ParseEmpty
	// ParseNoDigits: an explicit sign with nothing after it.
	ParseNoDigits
	// ParseBadChar: a character that is not a decimal digit.
	ParseBadChar
)

// String returns a stable label for the parse error kind.
func (k ParseErrKind) String() string {
	switch k {
	case ParseEmpty:
		return "empty integer"
	case ParseNoDigits:
		return "expected digits after sign"
	case ParseBadChar:
		return "invalid digit in integer"
	default:
		return "invalid integer"
	}
}

// ParseError represents a rejected integer literal.
type ParseError struct {
	Kind  ParseErrKind
	Input string
}

// Error returns the formatted error message.
func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return e.Kind.String()
}

// Unwrap makes errors.Is(err, ErrMalformed) hold.
func (e *ParseError) Unwrap() error { return ErrMalformed }

// asciiSpace matches C isspace in the default locale.
const asciiSpace = " \t\n\v\f\r"

// Parse reads an optionally signed decimal integer. Surrounding whitespace and
// leading zeros are accepted; "-0", "+0" and "000" all yield zero.
func Parse(s string) (BigInt, error) {
	trimmed := strings.Trim(s, asciiSpace)
	if trimmed == "" {
		return BigInt{}, &ParseError{Kind: ParseEmpty, Input: s}
	}

	sign := Positive
	digits := trimmed
	switch trimmed[0] {
	case '+':
		digits = trimmed[1:]
	case '-':
		sign = Negative
		digits = trimmed[1:]
	}
	if digits == "" {
		return BigInt{}, &ParseError{Kind: ParseNoDigits, Input: s}
	}
	for i := range len(digits) {
		if !isDigit(digits[i]) {
			return BigInt{}, &ParseError{Kind: ParseBadChar, Input: s}
		}
	}

	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return BigInt{}, nil
	}

	// Least-significant chunk first; the leftmost chunk may be short.
	limbs := make([]uint32, 0, (len(digits)+limbDigits-1)/limbDigits)
	for end := len(digits); end > 0; end -= limbDigits {
		start := max(end-limbDigits, 0)
		limbs = append(limbs, chunkValue(digits[start:end]))
	}
	return normalize(sign, limbs), nil
}

// MustParse is like Parse but panics on malformed input. Intended for tests and
// constants.
func MustParse(s string) BigInt {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func chunkValue(s string) uint32 {
	var v uint32
	for i := range len(s) {
		v = v*10 + uint32(s[i]-'0')
	}
	return v
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }
