package kmeans

import (
	"slices"

	"github.com/yyyoichi/psokmeans/internal/vec"
	"github.com/yyyoichi/psokmeans/internal/wcss"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// Step names the phase that produced an Iteration record.
type Step string

const (
	StepInitialization Step = "Initialization"
	StepAssignment     Step = "Assignment"
	StepUpdate         Step = "Update"
)

// Iteration is a snapshot of the clustering state after one phase.
// Centroids and Assignments are never shared with the running iterator.
type Iteration struct {
	Centroids   [][]float64
	Assignments []int
	Step        Step
	Number      int
}

type Result struct {
	Assignments []int
	Centroids   [][]float64
	Inertia     float64
	Iterations  int
}

type Config struct {
	// MaxIterations bounds the number of assignment/update cycles.
	MaxIterations int
	// Workers splits the assignment phase across goroutines when > 1.
	Workers int
	// Observe, if set, receives every record right after it is appended.
	Observe func(Iteration)
}

// Run executes Lloyd's algorithm from the given centroids and records every
// phase. Inputs are assumed validated: points is non-empty, all rows and
// centroids share one dimension and len(initial) >= 1.
//
// A cycle is one assignment phase followed by one update phase. The run stops
// after the first cycle in which the assignments or the centroids did not
// change, or after cfg.MaxIterations cycles. A cluster that receives no
// points keeps its previous centroid.
func Run(points, initial [][]float64, cfg Config) ([]Iteration, Result) {
	var (
		centroids   = vec.Clone(initial)
		assignments = make([]int, len(points))
		history     = make([]Iteration, 0, 1+2*max(0, min(cfg.MaxIterations, 16)))
	)
	record := func(step Step, number int) {
		it := Iteration{
			Centroids:   vec.Clone(centroids),
			Assignments: slices.Clone(assignments),
			Step:        step,
			Number:      number,
		}
		history = append(history, it)
		if cfg.Observe != nil {
			cfg.Observe(it)
		}
	}

	record(StepInitialization, 0)
	cycles := 0
	for cycle := 1; cycle <= cfg.MaxIterations; cycle++ {
		cycles = cycle

		var assignmentsChanged bool
		assignments, assignmentsChanged = assign(points, centroids, assignments, cfg.Workers)
		record(StepAssignment, cycle)

		var centroidsChanged bool
		centroids, centroidsChanged = update(points, assignments, centroids)
		record(StepUpdate, cycle)

		if !assignmentsChanged || !centroidsChanged {
			break
		}
	}

	return history, Result{
		Assignments: slices.Clone(assignments),
		Centroids:   vec.Clone(centroids),
		Inertia:     wcss.Fitness(points, centroids),
		Iterations:  cycles,
	}
}

// assign returns a new assignment vector and whether it differs from prev.
func assign(points, centroids [][]float64, prev []int, workers int) ([]int, bool) {
	next := make([]int, len(points))
	if workers <= 1 || len(points) < workers {
		return next, assignRange(points, centroids, prev, next, 0, len(points))
	}

	chunk := (len(points) + workers - 1) / workers
	changed := make([]bool, workers)
	var g errgroup.Group
	for w := range workers {
		lo, hi := w*chunk, min((w+1)*chunk, len(points))
		if lo >= hi {
			break
		}
		g.Go(func() error {
			changed[w] = assignRange(points, centroids, prev, next, lo, hi)
			return nil
		})
	}
	_ = g.Wait()
	return next, slices.Contains(changed, true)
}

func assignRange(points, centroids [][]float64, prev, next []int, lo, hi int) bool {
	changed := false
	for i := lo; i < hi; i++ {
		next[i], _ = wcss.Nearest(points[i], centroids)
		if next[i] != prev[i] {
			changed = true
		}
	}
	return changed
}

// update returns the new centroid set and whether any coordinate moved.
func update(points [][]float64, assignments []int, prev [][]float64) ([][]float64, bool) {
	stores := make([]*MeanStore, len(prev))
	for j := range stores {
		stores[j] = NewMeanStore(len(prev[j]))
	}
	for i, p := range points {
		stores[assignments[i]].Add(p)
	}

	next := make([][]float64, len(prev))
	changed := false
	for j, s := range stores {
		if s.Count() == 0 {
			next[j] = slices.Clone(prev[j])
			continue
		}
		next[j] = s.Mean()
		if !floats.Equal(next[j], prev[j]) {
			changed = true
		}
	}
	return next, changed
}

// Sizes returns the number of points assigned to each cluster.
func (r Result) Sizes() []int {
	sizes := make([]int, len(r.Centroids))
	for _, a := range r.Assignments {
		sizes[a]++
	}
	return sizes
}
