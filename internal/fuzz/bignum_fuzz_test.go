package fuzztests

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"bigcalc/internal/bignum"
)

const maxOperandDigits = 2048

// FuzzBigIntAgainstMathBig cross-checks all four operations against math/big.
// Rem truncates towards zero, which is the semantics of Mod.
func FuzzBigIntAgainstMathBig(f *testing.F) {
	f.Add("0", "0")
	f.Add("-10", "3")
	f.Add("10", "-3")
	f.Add("999999999", "1000000000")
	f.Add("-000123", "+45")
	f.Add("123456789012345678901234567890", "-987654321")
	f.Add(strings.Repeat("9", 40), strings.Repeat("9", 19))

	f.Fuzz(func(t *testing.T, lhs, rhs string) {
		if len(lhs) > maxOperandDigits || len(rhs) > maxOperandDigits {
			t.Skip()
		}
		a, errA := bignum.Parse(lhs)
		b, errB := bignum.Parse(rhs)
		wantA, okA := parseMathBig(lhs)
		wantB, okB := parseMathBig(rhs)
		if (errA == nil) != okA || (errB == nil) != okB {
			t.Fatalf("acceptance differs: %q -> %v/%v, %q -> %v/%v", lhs, errA, okA, rhs, errB, okB)
		}
		if errA != nil || errB != nil {
			return
		}
		if a.String() != wantA.String() {
			t.Fatalf("String(%q) = %s, want %s", lhs, a, wantA)
		}

		check := func(op string, got bignum.BigInt, want *big.Int) {
			t.Helper()
			if got.String() != want.String() {
				t.Fatalf("%s %s %s = %s, want %s", lhs, op, rhs, got, want)
			}
		}
		check("+", bignum.Add(a, b), new(big.Int).Add(wantA, wantB))
		check("-", bignum.Sub(a, b), new(big.Int).Sub(wantA, wantB))
		check("*", bignum.Mul(a, b), new(big.Int).Mul(wantA, wantB))

		got, err := bignum.Mod(a, b)
		if wantB.Sign() == 0 {
			if !errors.Is(err, bignum.ErrDivByZero) {
				t.Fatalf("%s %% 0: err = %v, want ErrDivByZero", lhs, err)
			}
			return
		}
		if err != nil {
			t.Fatalf("%s %% %s: %v", lhs, rhs, err)
		}
		check("%", got, new(big.Int).Rem(wantA, wantB))
	})
}

// parseMathBig mirrors the accepted grammar: optional sign, decimal digits,
// surrounding ASCII whitespace.
func parseMathBig(s string) (*big.Int, bool) {
	trimmed := strings.Trim(s, " \t\n\v\f\r")
	digits := strings.TrimLeft(trimmed, "+-")
	if len(trimmed)-len(digits) > 1 || digits == "" {
		return nil, false
	}
	for i := range len(digits) {
		if digits[i] < '0' || digits[i] > '9' {
			return nil, false
		}
	}
	v, ok := new(big.Int).SetString(trimmed, 10)
	return v, ok
}
