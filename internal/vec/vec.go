// Package vec holds helpers for K×D centroid sets stored as [][]float64.
package vec

import (
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Clone returns a deep copy of m. Every row gets its own backing array.
func Clone(m [][]float64) [][]float64 {
	if m == nil {
		return nil
	}
	c := make([][]float64, len(m))
	for i := range m {
		c[i] = slices.Clone(m[i])
	}
	return c
}

// Zeros returns a rows×cols matrix of zeros.
func Zeros(rows, cols int) [][]float64 {
	data := make([]float64, rows*cols)
	m := make([][]float64, rows)
	for i := range m {
		m[i] = data[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return m
}

// Equal reports whether a and b have the same shape and identical values.
func Equal(a, b [][]float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !floats.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
