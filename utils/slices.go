package utils

import (
	"golang.org/x/exp/constraints"
)

// EqualSlice returns true if a and b have the same length and the same elements.
func EqualSlice[V comparable](a, b []V) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// HammingDistance returns the number of positions at which a and b differ.
// Both slices must be of the same length.
func HammingDistance[V constraints.Integer](a, b []V) (d int, err error) {
	if len(a) != len(b) {
		return 0, NewDimensionError("HammingDistance", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			d++
		}
	}
	return
}

// AllDistinct returns true if all elements in s are distinct, and false otherwise.
func AllDistinct[V comparable](s []V) bool {
	m := make(map[V]struct{}, len(s))
	for _, si := range s {
		if _, exists := m[si]; exists {
			return false
		}
		m[si] = struct{}{}
	}
	return true
}

// BitReverseInPlaceSlice applies an in-place bit-reverse permutation on the input slice.
func BitReverseInPlaceSlice[V any](slice []V, N int) {

	var bit, j int

	for i := 1; i < N; i++ {

		bit = N >> 1

		for j >= bit {
			j -= bit
			bit >>= 1
		}

		j += bit

		if i < j {
			slice[i], slice[j] = slice[j], slice[i]
		}
	}
}
