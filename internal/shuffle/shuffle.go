package shuffle

import (
	"encoding/binary"
	"math"
	"math/rand"
)

// Perm returns the first k entries of a random permutation of [0, n).
// It panics if k > n.
func Perm(rd *rand.Rand, n, k int) []int {
	index := make([]int, n)
	for i := range index {
		index[i] = i
	}
	rd.Shuffle(len(index), func(i, j int) {
		index[i], index[j] = index[j], index[i]
	})
	return index[:k:k]
}

// Sample picks k elements of data without replacement. data keeps its order;
// each picked element is passed through clone before it is returned.
func Sample[T any](rd *rand.Rand, data []T, k int, clone func(T) T) []T {
	picked := make([]T, k)
	for i, x := range Perm(rd, len(data), k) {
		picked[i] = clone(data[x])
	}
	return picked
}

// Distinct returns the rows of data with exact duplicates removed, keeping
// the first occurrence of each. Rows are shared with data, not copied.
func Distinct(data [][]float64) [][]float64 {
	seen := make(map[string]struct{}, len(data))
	var uniq [][]float64
	for _, row := range data {
		k := key(row)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		uniq = append(uniq, row)
	}
	return uniq
}

func key(row []float64) string {
	b := make([]byte, 0, 8*len(row))
	for _, v := range row {
		if v == 0 {
			v = 0 // -0 and +0 are the same point
		}
		b = binary.LittleEndian.AppendUint64(b, math.Float64bits(v))
	}
	return string(b)
}
