package utils

import "cmp"

// MaxIndices returns the indices of every element equal to the maximum, in order.
func MaxIndices[T cmp.Ordered](values []T) []int {
	indices := []int{}
	for i, v := range values {
		switch {
		case len(indices) == 0 || v > values[indices[0]]:
			indices = append(indices[:0], i)
		case v == values[indices[0]]:
			indices = append(indices, i)
		}
	}
	return indices
}
