package wide

// Mask holds one flag per lane. Throughout the collision code a set flag
// means the lane is inactive and must not produce contacts.
type Mask [Lanes]bool

// InactiveMask returns a mask with every lane at or beyond pairCount set.
func InactiveMask(pairCount int) Mask {
	var result Mask
	for i := range result {
		result[i] = i >= pairCount
	}
	return result
}

// Or performs lane-wise logical or.
func (m Mask) Or(other Mask) Mask {
	var result Mask
	for i := range m {
		result[i] = m[i] || other[i]
	}
	return result
}

// All reports whether every lane is set.
func (m Mask) All() bool {
	for _, set := range m {
		if !set {
			return false
		}
	}
	return true
}

// Count returns the number of set lanes.
func (m Mask) Count() int {
	n := 0
	for _, set := range m {
		if set {
			n++
		}
	}
	return n
}
