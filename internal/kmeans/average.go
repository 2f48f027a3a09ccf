package kmeans

import (
	"slices"

	"gonum.org/v1/gonum/floats"
)

// MeanStore accumulates vectors assigned to one cluster during an update
// phase. The zero value is unusable; use NewMeanStore.
type MeanStore struct {
	sum   []float64
	count int
}

func NewMeanStore(dim int) *MeanStore {
	return &MeanStore{sum: make([]float64, dim)}
}

func (s *MeanStore) Add(v []float64) {
	floats.Add(s.sum, v)
	s.count += 1
}

func (s *MeanStore) Count() int { return s.count }

func (s *MeanStore) Sum() []float64 { return slices.Clone(s.sum) }

// Mean returns the arithmetic mean of the added vectors as a new slice.
// The result is undefined when Count is zero.
func (s *MeanStore) Mean() []float64 {
	m := make([]float64, len(s.sum))
	n := float64(s.count)
	for i, v := range s.sum {
		m[i] = v / n
	}
	return m
}

func (s *MeanStore) Reset() {
	clear(s.sum)
	s.count = 0
}
