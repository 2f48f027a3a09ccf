// Package pso searches centroid space with a particle swarm, scoring every
// candidate centroid set by its within-cluster sum of squares.
package pso

import (
	"math/rand"

	"github.com/yyyoichi/psokmeans/internal/vec"
	"github.com/yyyoichi/psokmeans/internal/wcss"
	"golang.org/x/sync/errgroup"
)

type Config struct {
	SwarmSize     int
	MaxIterations int
	// W is the inertia weight, C1 the cognitive and C2 the social coefficient.
	W, C1, C2 float64
	// Workers evaluates particles concurrently when > 1.
	Workers int
	// Observe, if set, is called once per iteration with the 1-based
	// iteration number and the global best fitness after it.
	Observe func(iteration int, best float64)
}

type Result struct {
	Centroids      [][]float64
	Fitness        float64
	FitnessHistory []float64
}

// Run optimizes k centroids for points. candidates are the points particles
// may start from; they must hold at least k rows. Inputs are assumed
// validated.
//
// Every iteration is three phases over the whole swarm: move all particles
// against the global best of the previous iteration, evaluate all new
// positions, then update personal and global bests. The run always performs
// cfg.MaxIterations iterations.
func Run(rd *rand.Rand, points, candidates [][]float64, k int, cfg Config) Result {
	s := NewSwarm(rd, candidates, k, cfg.SwarmSize)
	s.init(evaluate(points, s.Particles, cfg.Workers))

	history := make([]float64, 0, cfg.MaxIterations)
	for iter := 1; iter <= cfg.MaxIterations; iter++ {
		s.move(rd, cfg.W, cfg.C1, cfg.C2)
		s.selectBest(evaluate(points, s.Particles, cfg.Workers))
		history = append(history, s.BestFitness)
		if cfg.Observe != nil {
			cfg.Observe(iter, s.BestFitness)
		}
	}

	return Result{
		Centroids:      vec.Clone(s.BestPosition),
		Fitness:        s.BestFitness,
		FitnessHistory: history,
	}
}

func evaluate(points [][]float64, particles []*Particle, workers int) []float64 {
	fitness := make([]float64, len(particles))
	if workers <= 1 {
		for i, p := range particles {
			fitness[i] = wcss.Fitness(points, p.Position)
		}
		return fitness
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i, p := range particles {
		g.Go(func() error {
			fitness[i] = wcss.Fitness(points, p.Position)
			return nil
		})
	}
	_ = g.Wait()
	return fitness
}
