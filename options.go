package psokmeans

import (
	"fmt"
	"log/slog"
	"math/rand"
)

type Option func(*Clusterer) error

// WithSeed makes every run start from rand.NewSource(seed). Two runs with the
// same seed, points and parameters produce identical output.
func WithSeed(seed int64) Option {
	return func(c *Clusterer) error {
		c.newRand = func() *rand.Rand {
			return rand.New(rand.NewSource(seed))
		}
		return nil
	}
}

// WithRand draws all randomness from rd. Successive runs continue the same
// stream. rd is not safe for concurrent use, so neither is a Clusterer built
// with this option.
func WithRand(rd *rand.Rand) Option {
	return func(c *Clusterer) error {
		if rd == nil {
			return fmt.Errorf("%w: nil random source", ErrInvalidInput)
		}
		c.newRand = func() *rand.Rand { return rd }
		return nil
	}
}

// WithMaxIterations bounds the number of assignment/update cycles of a
// k-means run. 0 restores DefaultMaxIterations.
func WithMaxIterations(n int) Option {
	return func(c *Clusterer) error {
		if n < 0 {
			return fmt.Errorf("%w: max iterations %d < 0", ErrInvalidInput, n)
		}
		c.maxIterations = n
		return nil
	}
}

// WithWorkers spreads the k-means assignment phase and the swarm's fitness
// evaluation across n goroutines. Results do not depend on n.
// Values below 2 keep everything on the calling goroutine.
func WithWorkers(n int) Option {
	return func(c *Clusterer) error {
		if n < 0 {
			return fmt.Errorf("%w: workers %d < 0", ErrInvalidInput, n)
		}
		c.workers = n
		return nil
	}
}

// WithLogger sets the structured logger. Per-step records are logged at
// debug level, run summaries at info level. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Clusterer) error {
		c.logger = logger
		return nil
	}
}
