// Package synth generates 2-D Gaussian blobs for demonstration runs.
package synth

import (
	"math"
	"math/rand"
)

// Bound is the side of the square [0, Bound) cluster centers are placed in.
const Bound = 100.0

// FeatureNames names the two generated coordinates.
var FeatureNames = []string{"x", "y"}

type Blobs struct {
	Points  [][]float64
	Centers [][]float64
	// Labels[i] is the index of the center Points[i] was drawn around.
	Labels []int
}

// Generate places numClusters centers uniformly in the square and draws
// numPoints points around them, point i belonging to center i%numClusters.
// Each coordinate gets independent N(0, spread²) noise.
func Generate(rd *rand.Rand, numPoints, numClusters int, spread float64) Blobs {
	b := Blobs{
		Points:  make([][]float64, numPoints),
		Centers: make([][]float64, numClusters),
		Labels:  make([]int, numPoints),
	}
	for i := range b.Centers {
		x := rd.Float64() * Bound
		y := rd.Float64() * Bound
		b.Centers[i] = []float64{x, y}
	}
	for i := range b.Points {
		c := b.Centers[i%numClusters]
		x := Gaussian(rd, c[0], spread)
		y := Gaussian(rd, c[1], spread)
		b.Points[i] = []float64{x, y}
		b.Labels[i] = i % numClusters
	}
	return b
}

// Gaussian draws one normal variate with the Box–Muller transform.
func Gaussian(rd *rand.Rand, mean, stddev float64) float64 {
	u := 1 - rd.Float64() // (0, 1], keeps the log finite
	v := rd.Float64()
	z := math.Sqrt(-2*math.Log(u)) * math.Cos(2*math.Pi*v)
	return z*stddev + mean
}
