package bignum

import (
	"math"
	"strconv"
	"testing"
)

func TestFromInt64(t *testing.T) {
	values := []int64{0, 1, -1, 999999999, 1000000000, -1000000000, 123456789012345678, math.MaxInt64, math.MinInt64}
	for _, v := range values {
		got := FromInt64(v).String()
		want := strconv.FormatInt(v, 10)
		if got != want {
			t.Errorf("FromInt64(%d) = %s, want %s", v, got, want)
		}
		if !FromInt64(v).Equal(MustParse(want)) {
			t.Errorf("FromInt64(%d) differs structurally from Parse(%q)", v, want)
		}
	}
}

func TestCanonicalZero(t *testing.T) {
	zeros := []BigInt{
		{},
		IntZero(),
		FromInt64(0),
		MustParse("-0"),
		MustParse("000"),
		Add(FromInt64(5), FromInt64(-5)),
		Sub(FromInt64(7), FromInt64(7)),
		Mul(FromInt64(0), FromInt64(-3)),
		FromInt64(0).Neg(),
	}
	for i, z := range zeros {
		if !z.IsZero() || z.Sign() != Zero || len(z.limbs) != 0 {
			t.Errorf("zero #%d not canonical: sign=%v limbs=%v", i, z.Sign(), z.limbs)
		}
		if !z.Equal(BigInt{}) {
			t.Errorf("zero #%d not equal to BigInt{}", i)
		}
	}
}

func TestNegAbs(t *testing.T) {
	v := MustParse("-123456789012")
	if got := v.Neg().String(); got != "123456789012" {
		t.Errorf("Neg = %s", got)
	}
	if got := v.Abs().String(); got != "123456789012" {
		t.Errorf("Abs = %s", got)
	}
	if got := v.Neg().Neg(); !got.Equal(v) {
		t.Errorf("double negation changed value: %s", got)
	}
	if got := IntZero().Abs(); !got.IsZero() {
		t.Errorf("Abs(0) = %s", got)
	}
}

func TestImmutability(t *testing.T) {
	a := MustParse("999999999999999999")
	b := MustParse("1")
	before := a.String()
	_ = Add(a, b)
	_ = Sub(a, b)
	_ = Mul(a, a)
	_, _ = Mod(a, b)
	_ = a.Neg()
	if a.String() != before {
		t.Fatalf("operand mutated: %s -> %s", before, a.String())
	}
}

func TestCompareInts(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"0", "0", 0},
		{"1", "-1", 1},
		{"-1", "0", -1},
		{"10", "2", 1},
		{"-10", "-2", -1},
		{"1000000000", "999999999", 1},
		{"-1000000000", "-999999999", -1},
		{"123456789123", "123456789123", 0},
	}
	for _, tc := range tests {
		if got := compareInts(MustParse(tc.a), MustParse(tc.b)); got != tc.want {
			t.Errorf("compareInts(%s, %s) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestSignString(t *testing.T) {
	if Negative.String() != "negative" || Zero.String() != "zero" || Positive.String() != "positive" {
		t.Fatal("unexpected Sign labels")
	}
	if Sign(5).String() != "unknown" {
		t.Fatal("expected unknown label")
	}
}

// compareInts orders two values: -1, 0 or 1.
func compareInts(a, b BigInt) int {
	if a.sign != b.sign {
		if a.sign < b.sign {
			return -1
		}
		return 1
	}
	if a.sign == Zero {
		return 0
	}
	c := cmpLimbs(a.limbs, b.limbs)
	if a.sign == Negative {
		return -c
	}
	return c
}
