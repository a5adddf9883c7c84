package bignum

// remLimbs returns dividend mod divisor for a non-zero divisor.
//
// Classic long division over base-1e9 digits, except that each quotient digit is
// found by binary search over [0, Base-1] instead of being estimated from the top
// limbs. Only the remainder is kept.
func remLimbs(dividend, divisor []uint32) []uint32 {
	if cmpLimbs(dividend, divisor) < 0 {
		return dividend
	}

	shift := len(dividend) - len(divisor)
	shifted := make([]uint32, shift+len(divisor))
	copy(shifted[shift:], divisor)

	rem := dividend
	for pos := shift; pos >= 0; pos-- {
		if q := quotientDigit(shifted, rem); q != 0 {
			// q was chosen so that shifted*q <= rem.
			rem = subLimbs(rem, mulLimbsSmall(shifted, q))
		}
		if pos > 0 {
			shifted = shifted[1:]
		}
	}
	return trimLimbs(rem)
}

// quotientDigit finds the largest q in [0, Base-1] with d*q <= rem.
func quotientDigit(d, rem []uint32) uint32 {
	lo, hi := uint32(0), uint32(Base-1)
	var best uint32
	for lo <= hi {
		mid := lo + (hi-lo)/2
		if cmpLimbs(mulLimbsSmall(d, mid), rem) <= 0 {
			best = mid
			lo = mid + 1
			continue
		}
		if mid == 0 {
			break
		}
		hi = mid - 1
	}
	return best
}
