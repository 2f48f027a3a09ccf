package pso

import (
	"math/rand"
	"slices"

	"github.com/yyyoichi/psokmeans/internal/shuffle"
	"github.com/yyyoichi/psokmeans/internal/vec"
	"gonum.org/v1/gonum/floats"
)

// Particle is one candidate centroid set. Position, Velocity and BestPosition
// never share backing arrays.
type Particle struct {
	Position     [][]float64
	Velocity     [][]float64
	BestPosition [][]float64
	BestFitness  float64
}

// Swarm owns its particles and the best position any of them has reached.
type Swarm struct {
	Particles    []*Particle
	BestPosition [][]float64
	BestFitness  float64
}

// NewSwarm seeds size particles, each with k centroids drawn without
// replacement from candidates. candidates is never reordered.
func NewSwarm(rd *rand.Rand, candidates [][]float64, k, size int) *Swarm {
	dim := len(candidates[0])
	s := &Swarm{Particles: make([]*Particle, size)}
	for i := range s.Particles {
		pos := shuffle.Sample(rd, candidates, k, slices.Clone[[]float64])
		s.Particles[i] = &Particle{
			Position:     pos,
			Velocity:     vec.Zeros(k, dim),
			BestPosition: vec.Clone(pos),
		}
	}
	return s
}

// init records the fitness of every starting position. The first particle
// with the lowest fitness becomes the global best.
func (s *Swarm) init(fitness []float64) {
	best := 0
	for i, p := range s.Particles {
		p.BestFitness = fitness[i]
		if fitness[i] < fitness[best] {
			best = i
		}
	}
	s.BestFitness = fitness[best]
	s.BestPosition = vec.Clone(s.Particles[best].BestPosition)
}

// move advances every particle by one velocity step. The global best is read
// but not changed. Random draws are consumed in particle, centroid, dimension
// order, two per coordinate.
func (s *Swarm) move(rd *rand.Rand, w, c1, c2 float64) {
	for _, p := range s.Particles {
		for j := range p.Position {
			x, v := p.Position[j], p.Velocity[j]
			pb, gb := p.BestPosition[j], s.BestPosition[j]
			for d := range x {
				r1, r2 := rd.Float64(), rd.Float64()
				v[d] = w*v[d] + c1*r1*(pb[d]-x[d]) + c2*r2*(gb[d]-x[d])
			}
			floats.Add(x, v)
		}
	}
}

// selectBest folds the fitness of the current positions into personal and
// global bests. Only strict improvements are taken, in particle order.
func (s *Swarm) selectBest(fitness []float64) {
	for i, p := range s.Particles {
		f := fitness[i]
		if f < p.BestFitness {
			p.BestFitness = f
			p.BestPosition = vec.Clone(p.Position)
		}
		if f < s.BestFitness {
			s.BestFitness = f
			s.BestPosition = vec.Clone(p.Position)
		}
	}
}
