package psokmeans

import (
	"fmt"
	"math"
)

func errorf(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, a...))
}

// validatePoints checks that points is a non-empty matrix of finite values
// and returns its dimension.
func validatePoints(points [][]float64) (int, error) {
	if len(points) == 0 {
		return 0, errorf("no points")
	}
	dim := len(points[0])
	if dim == 0 {
		return 0, errorf("points have no features")
	}
	for i, p := range points {
		if len(p) != dim {
			return 0, errorf("point %d has %d features, want %d", i, len(p), dim)
		}
		for j, v := range p {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, errorf("point %d feature %d is %v", i, j, v)
			}
		}
	}
	return dim, nil
}

func validateK(k, distinct int) error {
	if k < 1 {
		return errorf("k %d < 1", k)
	}
	if k > distinct {
		return errorf("k %d > %d distinct points", k, distinct)
	}
	return nil
}

func validateCentroids(centroids [][]float64, k, dim int) error {
	if len(centroids) != k {
		return errorf("%d centroids, want %d", len(centroids), k)
	}
	for i, c := range centroids {
		if len(c) != dim {
			return errorf("centroid %d has %d features, want %d", i, len(c), dim)
		}
		for j, v := range c {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return errorf("centroid %d feature %d is %v", i, j, v)
			}
		}
	}
	return nil
}

func validatePSOConfig(cfg PSOConfig) error {
	if cfg.SwarmSize < 1 {
		return errorf("swarm size %d < 1", cfg.SwarmSize)
	}
	if cfg.MaxIterations < 1 {
		return errorf("pso iterations %d < 1", cfg.MaxIterations)
	}
	for _, c := range []struct {
		name string
		v    float64
	}{{"w", cfg.W}, {"c1", cfg.C1}, {"c2", cfg.C2}} {
		if math.IsNaN(c.v) || math.IsInf(c.v, 0) {
			return errorf("coefficient %s is %v", c.name, c.v)
		}
	}
	return nil
}

func validateBlobs(numPoints, numClusters int, spread float64) error {
	if numPoints < 1 {
		return errorf("number of points %d < 1", numPoints)
	}
	if numClusters < 1 {
		return errorf("number of clusters %d < 1", numClusters)
	}
	if spread < 0 || math.IsNaN(spread) || math.IsInf(spread, 0) {
		return errorf("spread %v", spread)
	}
	return nil
}
