package bignum

// Base is the radix of a single limb.
const Base = 1_000_000_000

// limbDigits is the number of decimal digits held by one full limb.
const limbDigits = 9

// Sign is the sign of a BigInt.
type Sign int8

const (
	// Negative marks values below zero.
	Negative Sign = -1
	// Zero is the sign of the canonical zero.
	Zero Sign = 0
	// Positive marks values above zero.
	Positive Sign = 1
)

func (s Sign) String() string {
	switch s {
	case Negative:
		return "negative"
	case Zero:
		return "zero"
	case Positive:
		return "positive"
	default:
		return "unknown"
	}
}

// BigInt represents an unbounded signed integer.
//
// A BigInt is immutable: every operation returns a fresh value and never writes
// into the limbs of its operands, so values may be shared freely.
type BigInt struct {
	sign Sign
	// limbs are base-1e9 little-endian magnitude (limbs[0] is least significant).
	//
	// Canonical zero is sign=Zero and nil limbs; otherwise the last limb is non-zero.
	limbs []uint32
}

// IntZero returns a zero BigInt.
func IntZero() BigInt { return BigInt{} }

// FromInt64 creates a BigInt from an int64.
func FromInt64(v int64) BigInt {
	if v == 0 {
		return BigInt{}
	}
	sign := Positive
	var mag uint64
	if v < 0 {
		sign = Negative
		mag = uint64(-(v + 1)) + 1 //nolint:gosec // G115: -(v+1) is non-negative, +1 restores MinInt64.
	} else {
		mag = uint64(v)
	}
	limbs := make([]uint32, 0, 3)
	for mag > 0 {
		limbs = append(limbs, uint32(mag%Base)) //nolint:gosec // G115: value is below Base.
		mag /= Base
	}
	return BigInt{sign: sign, limbs: limbs}
}

// normalize restores canonical form: strips most-significant zero limbs and
// forces Zero when nothing is left.
func normalize(sign Sign, limbs []uint32) BigInt {
	limbs = trimLimbs(limbs)
	if len(limbs) == 0 || sign == Zero {
		return BigInt{}
	}
	return BigInt{sign: sign, limbs: limbs}
}

// Sign reports the sign of the integer.
func (i BigInt) Sign() Sign { return i.sign }

// IsZero reports whether the integer is zero.
func (i BigInt) IsZero() bool { return i.sign == Zero }

// Abs returns the magnitude of i with the sign forced to Positive (or Zero).
func (i BigInt) Abs() BigInt {
	if i.sign == Zero {
		return BigInt{}
	}
	return BigInt{sign: Positive, limbs: i.limbs}
}

// Neg returns -i. Zero negates to itself.
func (i BigInt) Neg() BigInt {
	if i.sign == Zero {
		return BigInt{}
	}
	return BigInt{sign: -i.sign, limbs: i.limbs}
}

// Equal reports whether i and j hold the same value.
// Canonical form makes this a structural comparison.
func (i BigInt) Equal(j BigInt) bool {
	if i.sign != j.sign || len(i.limbs) != len(j.limbs) {
		return false
	}
	for k := range i.limbs {
		if i.limbs[k] != j.limbs[k] {
			return false
		}
	}
	return true
}
