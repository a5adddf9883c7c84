package diag

import "strconv"

// Code identifies a diagnostic. The thousands digit is its family.
type Code uint16

const (
	UnknownCode Code = 0

	LexInfo        Code = 1000
	LexInvalidChar Code = 1001

	SynInfo          Code = 2000
	SynUnexpectedEOF Code = 2001
	SynExpected      Code = 2002

	NumInfo      Code = 3000
	NumMalformed Code = 3001

	MathInfo          Code = 4000
	MathDivByZero     Code = 4001
	MathUnsupportedOp Code = 4002

	IOLoadFileError Code = 5001
)

// family описывает тысячу кодов: префикс ID и стадию REPL.
type family struct {
	prefix string
	stage  string
}

var families = [...]family{
	1: {"LEX", "parse"},
	2: {"SYN", "parse"},
	3: {"NUM", "number"},
	4: {"MTH", "math"},
	5: {"IO", "io"},
}

var titles = map[Code]string{
	UnknownCode:       "Unknown error",
	LexInfo:           "Lexical information",
	LexInvalidChar:    "Invalid character",
	SynInfo:           "Syntax information",
	SynUnexpectedEOF:  "Unexpected end of input",
	SynExpected:       "Unexpected token",
	NumInfo:           "Number information",
	NumMalformed:      "Malformed integer",
	MathInfo:          "Arithmetic information",
	MathDivByZero:     "Division by zero",
	MathUnsupportedOp: "Unsupported operator",
	IOLoadFileError:   "I/O load file error",
}

func (c Code) family() (family, bool) {
	i := int(c) / 1000
	if i <= 0 || i >= len(families) {
		return family{}, false
	}
	return families[i], true
}

// ID is the printable form, e.g. "SYN2002"; unknown families give "E0000".
func (c Code) ID() string {
	f, ok := c.family()
	if !ok {
		return "E0000"
	}
	id := strconv.Itoa(int(c))
	for len(id) < 4 {
		id = "0" + id
	}
	return f.prefix + id
}

// Stage names the REPL prefix this code is printed under: parse, number,
// math or io. Unknown codes have no stage.
func (c Code) Stage() string {
	f, _ := c.family()
	return f.stage
}

func (c Code) Title() string {
	if t, ok := titles[c]; ok {
		return t
	}
	return titles[UnknownCode]
}

func (c Code) String() string {
	return "[" + c.ID() + "]: " + c.Title()
}
