package main

import (
	"testing"

	"github.com/yyyoichi/psokmeans"
)

func TestPurity(t *testing.T) {
	test := []struct {
		name        string
		assignments []int
		labels      []int
		k           int
		want        float64
	}{
		{"identical", []int{0, 0, 1, 1}, []int{0, 0, 1, 1}, 2, 1},
		{"relabeled", []int{1, 1, 0, 0}, []int{0, 0, 1, 1}, 2, 1},
		{"one stray", []int{0, 0, 0, 1}, []int{0, 0, 1, 1}, 2, 0.75},
		{"merged", []int{0, 0, 0, 0}, []int{0, 0, 1, 1}, 2, 0.5},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			if got := purity(tt.assignments, tt.labels, tt.k); got != tt.want {
				t.Errorf("purity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQuality_WellSeparated(t *testing.T) {
	cfg := psokmeans.PSOConfig{SwarmSize: 10, MaxIterations: 30, W: 0.72, C1: 1.49, C2: 1.49}
	p, _, err := testQuality(TestParams{NumPoints: 200, K: 1, Spread: 0.5}, cfg, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if p != 1 {
		t.Errorf("purity = %v, want 1", p)
	}
}
