package wide

import "math"

// Lanes is the number of independent pairs processed by one batch.
const Lanes = 8

// F64 represents Lanes float64 values, one per lane.
type F64 [Lanes]float64

// Splat creates an F64 with all lanes set to n.
func Splat(n float64) F64 {
	var result F64
	for i := range result {
		result[i] = n
	}
	return result
}

// Add performs lane-wise addition.
func (v F64) Add(other F64) F64 {
	var result F64
	for i := range v {
		result[i] = v[i] + other[i]
	}
	return result
}

// Sub performs lane-wise subtraction.
func (v F64) Sub(other F64) F64 {
	var result F64
	for i := range v {
		result[i] = v[i] - other[i]
	}
	return result
}

// Mul performs lane-wise multiplication.
func (v F64) Mul(other F64) F64 {
	var result F64
	for i := range v {
		result[i] = v[i] * other[i]
	}
	return result
}

// Div performs lane-wise division.
// Division by zero follows IEEE 754 (Inf or NaN).
func (v F64) Div(other F64) F64 {
	var result F64
	for i := range v {
		result[i] = v[i] / other[i]
	}
	return result
}

// Scale multiplies every lane by s.
func (v F64) Scale(s float64) F64 {
	var result F64
	for i := range v {
		result[i] = v[i] * s
	}
	return result
}

// Neg negates every lane.
func (v F64) Neg() F64 {
	var result F64
	for i := range v {
		result[i] = -v[i]
	}
	return result
}

// Sqrt computes the square root of every lane.
// Negative values result in NaN according to IEEE 754.
func (v F64) Sqrt() F64 {
	var result F64
	for i := range v {
		result[i] = math.Sqrt(v[i])
	}
	return result
}

// Min performs lane-wise minimum.
func (v F64) Min(other F64) F64 {
	var result F64
	for i := range v {
		if v[i] < other[i] {
			result[i] = v[i]
		} else {
			result[i] = other[i]
		}
	}
	return result
}

// Less returns a mask with lane i set when v[i] < other[i].
func (v F64) Less(other F64) Mask {
	var result Mask
	for i := range v {
		result[i] = v[i] < other[i]
	}
	return result
}

// LessEqual returns a mask with lane i set when v[i] <= other[i].
func (v F64) LessEqual(other F64) Mask {
	var result Mask
	for i := range v {
		result[i] = v[i] <= other[i]
	}
	return result
}

// GreaterEqual returns a mask with lane i set when v[i] >= other[i].
func (v F64) GreaterEqual(other F64) Mask {
	var result Mask
	for i := range v {
		result[i] = v[i] >= other[i]
	}
	return result
}

// Select returns onTrue[i] where mask[i] is set and v[i] elsewhere.
func (v F64) Select(mask Mask, onTrue F64) F64 {
	var result F64
	for i := range v {
		if mask[i] {
			result[i] = onTrue[i]
		} else {
			result[i] = v[i]
		}
	}
	return result
}
