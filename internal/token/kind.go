package token

// Kind is the category of a token.
type Kind uint8

const (
	Invalid Kind = iota // one unexpected character
	EOF                 // end of the line
	IntLit              // [+-]?[0-9]+

	Plus    // +
	Minus   // -
	Star    // *
	Percent // %
)

var kinds = [...]struct {
	name string
	sym  byte
}{
	Invalid: {"Invalid", 0},
	EOF:     {"EOF", 0},
	IntLit:  {"IntLit", 0},
	Plus:    {"Plus", '+'},
	Minus:   {"Minus", '-'},
	Star:    {"Star", '*'},
	Percent: {"Percent", '%'},
}

func (k Kind) String() string {
	if int(k) < len(kinds) {
		return kinds[k].name
	}
	return "Unknown"
}

// Symbol is the operator character of k, or 0 for non-operators.
func (k Kind) Symbol() byte {
	if int(k) < len(kinds) {
		return kinds[k].sym
	}
	return 0
}

// OperatorKind maps '+', '-', '*' and '%' to their kinds.
func OperatorKind(sym byte) (Kind, bool) {
	for k := Plus; k <= Percent; k++ {
		if kinds[k].sym == sym {
			return k, true
		}
	}
	return Invalid, false
}
