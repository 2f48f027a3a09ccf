// Package psokmeans clusters numeric points with a step-recording k-means
// iterator whose seed can be refined by a particle swarm search.
package psokmeans

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"slices"
	"time"

	"github.com/yyyoichi/psokmeans/internal/kmeans"
	"github.com/yyyoichi/psokmeans/internal/pso"
	"github.com/yyyoichi/psokmeans/internal/shuffle"
	"github.com/yyyoichi/psokmeans/internal/synth"
	"github.com/yyyoichi/psokmeans/internal/wcss"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

const DefaultMaxIterations = 100

type (
	// Iteration is an immutable snapshot of one k-means phase.
	Iteration = kmeans.Iteration
	// Step names the phase of an Iteration.
	Step = kmeans.Step
	// Result is the terminal state of a k-means run.
	Result = kmeans.Result
	// PSOResult is the best centroid set a swarm found and the global best
	// fitness after every iteration.
	PSOResult = pso.Result
	// Blobs is a generated demo data set with its true centers and labels.
	Blobs = synth.Blobs
)

const (
	StepInitialization = kmeans.StepInitialization
	StepAssignment     = kmeans.StepAssignment
	StepUpdate         = kmeans.StepUpdate
)

// PSOConfig holds the swarm parameters. Every field must be set.
type PSOConfig struct {
	SwarmSize     int
	MaxIterations int
	// W is the inertia weight.
	W float64
	// C1 pulls a particle toward its own best position.
	C1 float64
	// C2 pulls a particle toward the swarm's best position.
	C2 float64
}

// Fitness returns the within-cluster sum of squares of points against
// centroids: every point contributes its squared Euclidean distance to the
// nearest centroid.
func Fitness(points, centroids [][]float64) (float64, error) {
	dim, err := validatePoints(points)
	if err != nil {
		return 0, err
	}
	if len(centroids) == 0 {
		return 0, errorf("no centroids")
	}
	if err := validateCentroids(centroids, len(centroids), dim); err != nil {
		return 0, err
	}
	return wcss.Fitness(points, centroids), nil
}

// RunKMeansWithHistory runs k-means from initialCentroids, or from k distinct
// points sampled at random when initialCentroids is nil, and returns every
// phase of the run. maxIterations of 0 means DefaultMaxIterations.
func RunKMeansWithHistory(points [][]float64, k int, initialCentroids [][]float64, maxIterations int, opts ...Option) ([]Iteration, *Result, error) {
	c, err := New(opts...)
	if err != nil {
		return nil, nil, err
	}
	if maxIterations < 0 {
		return nil, nil, errorf("max iterations %d < 0", maxIterations)
	}
	if maxIterations == 0 {
		maxIterations = c.maxIterations
	}
	return c.kmeans(points, k, initialCentroids, maxIterations)
}

// RunPSO searches for k centroids with low within-cluster sum of squares.
func RunPSO(points [][]float64, k int, cfg PSOConfig, opts ...Option) (*PSOResult, error) {
	c, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return c.PSO(points, k, cfg)
}

// GenerateSyntheticData returns numPoints 2-D points scattered around
// numClusters random centers with standard deviation spread, and the names
// of the two features.
func GenerateSyntheticData(numPoints, numClusters int, spread float64, opts ...Option) ([][]float64, []string, error) {
	c, err := New(opts...)
	if err != nil {
		return nil, nil, err
	}
	return c.Generate(numPoints, numClusters, spread)
}

// Clusterer carries the options shared by the clustering entry points.
// A Clusterer built without WithRand holds no mutable state and may be used
// from several goroutines.
type Clusterer struct {
	newRand       func() *rand.Rand
	maxIterations int
	workers       int
	logger        *slog.Logger
}

// New initializes a Clusterer.
// For default values, refer to the init function.
func New(opts ...Option) (*Clusterer, error) {
	c := new(Clusterer)
	if err := c.init(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// KMeans runs k-means and records every phase. initial may be nil, in which
// case k distinct points are sampled as the seed.
//
// Process:
//  1. Records the seed as the Initialization step, all points in cluster 0.
//  2. Assigns every point to its nearest centroid (ties go to the lower index).
//  3. Moves every centroid to the mean of its points. Empty clusters keep
//     their centroid.
//  4. Repeats 2 and 3 until a cycle leaves the assignments or the centroids
//     unchanged, or the iteration budget is spent.
func (c *Clusterer) KMeans(points [][]float64, k int, initial [][]float64) ([]Iteration, *Result, error) {
	return c.kmeans(points, k, initial, c.maxIterations)
}

// PSO runs the particle swarm search and returns the best centroids found.
func (c *Clusterer) PSO(points [][]float64, k int, cfg PSOConfig) (*PSOResult, error) {
	dim, err := validatePoints(points)
	if err != nil {
		return nil, err
	}
	if err := validatePSOConfig(cfg); err != nil {
		return nil, err
	}
	distinct := shuffle.Distinct(points)
	if err := validateK(k, len(distinct)); err != nil {
		return nil, err
	}

	log := c.logger.With("k", k, "points", len(points), "dimension", dim, "swarm", cfg.SwarmSize)
	pc := pso.Config{
		SwarmSize:     cfg.SwarmSize,
		MaxIterations: cfg.MaxIterations,
		W:             cfg.W,
		C1:            cfg.C1,
		C2:            cfg.C2,
		Workers:       c.workers,
	}
	if log.Enabled(context.Background(), slog.LevelDebug) {
		pc.Observe = func(iteration int, best float64) {
			log.Debug("pso iteration", "iteration", iteration, "best_fitness", best)
		}
	}
	start := time.Now()
	res := pso.Run(c.newRand(), points, distinct, k, pc)
	log.Info("pso finished",
		"iterations", cfg.MaxIterations,
		"best_fitness", res.Fitness,
		"elapsed", time.Since(start),
	)
	return &res, nil
}

// PSOKMeans refines a seed with PSO and then runs k-means from it.
func (c *Clusterer) PSOKMeans(points [][]float64, k int, cfg PSOConfig) (*PSOResult, []Iteration, *Result, error) {
	seed, err := c.PSO(points, k, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	history, res, err := c.KMeans(points, k, seed.Centroids)
	if err != nil {
		return nil, nil, nil, err
	}
	return seed, history, res, nil
}

// Generate returns demo points and their feature names.
func (c *Clusterer) Generate(numPoints, numClusters int, spread float64) ([][]float64, []string, error) {
	b, err := c.Blobs(numPoints, numClusters, spread)
	if err != nil {
		return nil, nil, err
	}
	return b.Points, slices.Clone(synth.FeatureNames), nil
}

// Blobs is like Generate but also returns the centers and labels the points
// were drawn from.
func (c *Clusterer) Blobs(numPoints, numClusters int, spread float64) (*Blobs, error) {
	if err := validateBlobs(numPoints, numClusters, spread); err != nil {
		return nil, err
	}
	b := synth.Generate(c.newRand(), numPoints, numClusters, spread)
	return &b, nil
}

func (c *Clusterer) kmeans(points [][]float64, k int, initial [][]float64, maxIterations int) ([]Iteration, *Result, error) {
	dim, err := validatePoints(points)
	if err != nil {
		return nil, nil, err
	}
	distinct := shuffle.Distinct(points)
	if err := validateK(k, len(distinct)); err != nil {
		return nil, nil, err
	}
	if initial == nil {
		initial = shuffle.Sample(c.newRand(), distinct, k, slices.Clone[[]float64])
	} else if err := validateCentroids(initial, k, dim); err != nil {
		return nil, nil, err
	}

	log := c.logger.With("k", k, "points", len(points), "dimension", dim)
	cfg := kmeans.Config{
		MaxIterations: maxIterations,
		Workers:       c.workers,
	}
	if log.Enabled(context.Background(), slog.LevelDebug) {
		cfg.Observe = func(it Iteration) {
			log.Debug("kmeans step", "step", it.Step, "iteration", it.Number)
		}
	}
	history, res := kmeans.Run(points, initial, cfg)
	log.Info("kmeans finished",
		"iterations", res.Iterations,
		"records", len(history),
		"inertia", res.Inertia,
	)
	return history, &res, nil
}

func (c *Clusterer) init(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	if c.newRand == nil {
		c.newRand = func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		}
	}
	if c.maxIterations == 0 {
		c.maxIterations = DefaultMaxIterations
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return nil
}
