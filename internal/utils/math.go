package utils

import "cmp"

// Max returns the larger of two values (works for numbers and strings)
func Max[T cmp.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// Min returns the smaller of two values
func Min[T cmp.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}
