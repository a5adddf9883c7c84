package bignum

// Magnitude primitives. They see only limb slices, never signs, expect trimmed
// inputs and always allocate their result.

func trimLimbs(limbs []uint32) []uint32 {
	for len(limbs) > 0 && limbs[len(limbs)-1] == 0 {
		limbs = limbs[:len(limbs)-1]
	}
	if len(limbs) == 0 {
		return nil
	}
	return limbs
}

// cmpLimbs compares magnitudes by length first, then from the most significant limb.
func cmpLimbs(a, b []uint32) int {
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	for i := len(a) - 1; i >= 0; i-- {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

func addLimbs(a, b []uint32) []uint32 {
	n := max(len(a), len(b))
	out := make([]uint32, n, n+1)
	var carry uint64
	for i := range n {
		sum := carry
		if i < len(a) {
			sum += uint64(a[i])
		}
		if i < len(b) {
			sum += uint64(b[i])
		}
		out[i] = uint32(sum % Base) //nolint:gosec // G115: value is below Base.
		carry = sum / Base
	}
	if carry != 0 {
		out = append(out, uint32(carry)) //nolint:gosec // G115: carry is 0 or 1.
	}
	return trimLimbs(out)
}

// subLimbs returns a-b. The caller guarantees |a| >= |b|; otherwise the result is
// meaningless.
func subLimbs(a, b []uint32) []uint32 {
	out := make([]uint32, len(a))
	var borrow int64
	for i := range a {
		diff := int64(a[i]) - borrow
		if i < len(b) {
			diff -= int64(b[i])
		}
		if diff < 0 {
			diff += Base
			borrow = 1
		} else {
			borrow = 0
		}
		out[i] = uint32(diff) //nolint:gosec // G115: 0 <= diff < Base.
	}
	return trimLimbs(out)
}

// mulLimbs is the schoolbook product. Each partial product plus carry stays
// below 2^64 because limbs are below 1e9.
func mulLimbs(a, b []uint32) []uint32 {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	out := make([]uint32, len(a)+len(b)+1)
	for i, ai := range a {
		var carry uint64
		for j, bj := range b {
			cur := uint64(out[i+j]) + uint64(ai)*uint64(bj) + carry
			out[i+j] = uint32(cur % Base) //nolint:gosec // G115: value is below Base.
			carry = cur / Base
		}
		for k := i + len(b); carry != 0; k++ {
			cur := uint64(out[k]) + carry
			out[k] = uint32(cur % Base) //nolint:gosec // G115: value is below Base.
			carry = cur / Base
		}
	}
	return trimLimbs(out)
}

// mulLimbsSmall multiplies by a single limb; only the remainder search uses it.
func mulLimbsSmall(a []uint32, m uint32) []uint32 {
	if len(a) == 0 || m == 0 {
		return nil
	}
	out := make([]uint32, len(a), len(a)+1)
	var carry uint64
	for i, ai := range a {
		cur := uint64(ai)*uint64(m) + carry
		out[i] = uint32(cur % Base) //nolint:gosec // G115: value is below Base.
		carry = cur / Base
	}
	if carry != 0 {
		out = append(out, uint32(carry)) //nolint:gosec // G115: carry < Base.
	}
	return trimLimbs(out)
}
