// Command quality measures how well PSO-seeded k-means recovers generated
// blobs compared with randomly seeded k-means.
package main

import (
	"flag"
	"log"
	"slices"

	"github.com/yyyoichi/psokmeans"
)

// TestParams is one generated data set shape.
type TestParams struct {
	NumPoints int
	K         int
	Spread    float64
}

func main() {
	numSeeds := flag.Int("seeds", 20, "Seeds per data set shape")
	numPoints := flag.Int("n", 300, "Points per data set")
	minPurity := flag.Float64("min-purity", 0.95, "Purity a run needs to count as a success")
	swarm := flag.Int("swarm", 20, "Swarm size")
	iters := flag.Int("iters", 50, "Swarm iterations")
	workers := flag.Int("workers", 4, "Concurrent workers per run")
	flag.Parse()

	spreads := []float64{1, 3, 5, 8, 12}
	ks := []int{2, 3, 5, 8}
	cfg := psokmeans.PSOConfig{
		SwarmSize:     *swarm,
		MaxIterations: *iters,
		W:             0.72,
		C1:            1.49,
		C2:            1.49,
	}

	log.Printf("Starting quality evaluation with %d seeds\n", *numSeeds)
	log.Printf("Total test cases per seed: %d (spreads) x %d (cluster counts) = %d\n",
		len(spreads), len(ks), len(spreads)*len(ks))

	var totalTests, psoSuccess, randomSuccess int
	for _, k := range ks {
		for _, spread := range spreads {
			params := TestParams{NumPoints: *numPoints, K: k, Spread: spread}
			var psoOK, randomOK int
			for seed := int64(1); seed <= int64(*numSeeds); seed++ {
				p, r, err := testQuality(params, cfg, seed, *workers)
				if err != nil {
					log.Printf("    Error on k=%d spread=%.1f seed=%d: %v\n", k, spread, seed, err)
					continue
				}
				totalTests++
				if p >= *minPurity {
					psoOK++
				}
				if r >= *minPurity {
					randomOK++
				}
			}
			log.Printf("  k=%d spread=%4.1f: PSO %d/%d, random %d/%d\n", k, spread, psoOK, *numSeeds, randomOK, *numSeeds)
			psoSuccess += psoOK
			randomSuccess += randomOK
		}
	}

	if totalTests == 0 {
		log.Fatal("No test completed")
	}
	log.Printf("\n=== Results ===\n")
	log.Printf("Total tests: %d\n", totalTests)
	log.Printf("PSO seeded: %d (%.2f%%)\n", psoSuccess, float64(psoSuccess)/float64(totalTests)*100)
	log.Printf("Random seeded: %d (%.2f%%)\n", randomSuccess, float64(randomSuccess)/float64(totalTests)*100)
}

// testQuality returns the purity of a PSO-seeded and of a randomly seeded
// run on the same blobs.
func testQuality(params TestParams, cfg psokmeans.PSOConfig, seed int64, workers int) (float64, float64, error) {
	c, err := psokmeans.New(psokmeans.WithSeed(seed), psokmeans.WithWorkers(workers))
	if err != nil {
		return 0, 0, err
	}
	blobs, err := c.Blobs(params.NumPoints, params.K, params.Spread)
	if err != nil {
		return 0, 0, err
	}
	_, _, psoRes, err := c.PSOKMeans(blobs.Points, params.K, cfg)
	if err != nil {
		return 0, 0, err
	}
	_, randRes, err := c.KMeans(blobs.Points, params.K, nil)
	if err != nil {
		return 0, 0, err
	}
	return purity(psoRes.Assignments, blobs.Labels, params.K), purity(randRes.Assignments, blobs.Labels, params.K), nil
}

// purity is the share of points whose cluster's majority label is their own.
func purity(assignments, labels []int, k int) float64 {
	counts := make([][]int, k)
	for i := range counts {
		counts[i] = make([]int, k)
	}
	for i, a := range assignments {
		counts[a][labels[i]]++
	}
	hit := 0
	for _, row := range counts {
		hit += slices.Max(row)
	}
	return float64(hit) / float64(len(assignments))
}
