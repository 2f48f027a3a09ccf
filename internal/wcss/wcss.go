// Package wcss computes the within-cluster sum of squares used as the
// clustering objective by both the k-means iterator and the swarm optimizer.
package wcss

// SquaredDistance returns the squared Euclidean distance between a and b.
// Both slices must have the same length.
func SquaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// Nearest returns the index of the centroid closest to point and the squared
// distance to it. Equidistant centroids resolve to the lowest index.
// centroids must not be empty.
func Nearest(point []float64, centroids [][]float64) (int, float64) {
	best, bestDist := 0, SquaredDistance(point, centroids[0])
	for j := 1; j < len(centroids); j++ {
		if d := SquaredDistance(point, centroids[j]); d < bestDist {
			best, bestDist = j, d
		}
	}
	return best, bestDist
}

// Fitness returns the sum over points of the squared distance to the
// nearest centroid.
func Fitness(points, centroids [][]float64) float64 {
	var total float64
	for _, p := range points {
		_, d := Nearest(p, centroids)
		total += d
	}
	return total
}
