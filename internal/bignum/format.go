package bignum

import (
	"fmt"
	"strings"
)

// String renders the canonical decimal form: "0", or an optional '-' followed by
// the top limb unpadded and every lower limb padded to nine digits.
func (i BigInt) String() string {
	if i.sign == Zero {
		return "0"
	}
	var sb strings.Builder
	sb.Grow(len(i.limbs)*limbDigits + 1)
	if i.sign == Negative {
		sb.WriteByte('-')
	}
	top := len(i.limbs) - 1
	fmt.Fprintf(&sb, "%d", i.limbs[top])
	for k := top - 1; k >= 0; k-- {
		fmt.Fprintf(&sb, "%09d", i.limbs[k])
	}
	return sb.String()
}
