package bignum

import "errors"

// ErrDivByZero indicates a modulo by zero.
var ErrDivByZero = errors.New("division by zero")

// Add returns a+b.
func Add(a, b BigInt) BigInt {
	if a.sign == Zero {
		return b
	}
	if b.sign == Zero {
		return a
	}
	if a.sign == b.sign {
		return normalize(a.sign, addLimbs(a.limbs, b.limbs))
	}
	switch cmpLimbs(a.limbs, b.limbs) {
	case 0:
		return BigInt{}
	case 1:
		return normalize(a.sign, subLimbs(a.limbs, b.limbs))
	default:
		return normalize(b.sign, subLimbs(b.limbs, a.limbs))
	}
}

// Sub returns a-b.
func Sub(a, b BigInt) BigInt {
	return Add(a, b.Neg())
}

// Mul returns a*b.
func Mul(a, b BigInt) BigInt {
	if a.sign == Zero || b.sign == Zero {
		return BigInt{}
	}
	return normalize(a.sign*b.sign, mulLimbs(a.limbs, b.limbs))
}

// Mod returns the truncating remainder a%b: a non-zero result carries the sign
// of a, never the sign of b, so Mod(-10, 3) is -1.
func Mod(a, b BigInt) (BigInt, error) {
	if b.sign == Zero {
		return BigInt{}, ErrDivByZero
	}
	if a.sign == Zero {
		return BigInt{}, nil
	}
	return normalize(a.sign, remLimbs(a.limbs, b.limbs)), nil
}
