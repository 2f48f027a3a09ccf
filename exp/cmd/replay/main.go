// Command replay clusters a CSV file or generated blobs and renders every
// recorded k-means step as an HTML page of scatter charts.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"exp/internal/plot"

	"github.com/yyyoichi/psokmeans"
	"github.com/yyyoichi/psokmeans/dataset"
)

func main() {
	csvPath := flag.String("csv", "", "CSV file to cluster; generated blobs are used when empty")
	columns := flag.String("columns", "", "Comma separated columns to cluster on (default: every numeric column)")
	k := flag.Int("k", 3, "Number of clusters")
	numPoints := flag.Int("n", 300, "Generated points")
	spread := flag.Float64("spread", 8, "Standard deviation of generated blobs")
	seed := flag.Int64("seed", 1, "Random seed")
	usePSO := flag.Bool("pso", true, "Seed k-means with a particle swarm instead of random points")
	swarm := flag.Int("swarm", 20, "Swarm size")
	iters := flag.Int("iters", 50, "Swarm iterations")
	w := flag.Float64("w", 0.72, "Inertia weight")
	c1 := flag.Float64("c1", 1.49, "Cognitive coefficient")
	c2 := flag.Float64("c2", 1.49, "Social coefficient")
	maxIter := flag.Int("max-iter", psokmeans.DefaultMaxIterations, "Maximum k-means cycles")
	workers := flag.Int("workers", 1, "Concurrent workers")
	outPath := flag.String("out", "./tmp/replay/replay.html", "Output HTML file")
	exportPath := flag.String("export", "", "Write the clustered rows as CSV to this file")
	verbose := flag.Bool("v", false, "Log every step")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	c, err := psokmeans.New(
		psokmeans.WithSeed(*seed),
		psokmeans.WithMaxIterations(*maxIter),
		psokmeans.WithWorkers(*workers),
		psokmeans.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))),
	)
	if err != nil {
		log.Fatalf("Failed to create clusterer: %v", err)
	}

	var (
		table   *dataset.Table
		headers []string
		points  [][]float64
		centers [][]float64
	)
	if *csvPath == "" {
		blobs, err := c.Blobs(*numPoints, *k, *spread)
		if err != nil {
			log.Fatalf("Failed to generate data: %v", err)
		}
		headers = []string{"x", "y"}
		points, centers = blobs.Points, blobs.Centers
		if table, err = dataset.FromPoints(headers, points); err != nil {
			log.Fatalf("Failed to build table: %v", err)
		}
		log.Printf("Generated %d points around %d centers\n", len(points), len(centers))
	} else {
		f, err := os.Open(*csvPath)
		if err != nil {
			log.Fatalf("Failed to open CSV: %v", err)
		}
		table, err = dataset.Read(f)
		f.Close()
		if err != nil {
			log.Fatalf("Failed to read CSV: %v", err)
		}
		headers = table.NumericHeaders()
		if *columns != "" {
			headers = strings.Split(*columns, ",")
		}
		if points, err = table.Select(headers...); err != nil {
			log.Fatalf("Failed to select columns: %v", err)
		}
		log.Printf("Loaded %d rows, clustering on %v\n", len(points), headers)
	}

	replay := plot.Replay{Headers: headers, Points: points, Centers: centers}
	var res *psokmeans.Result
	if *usePSO {
		seedRes, history, kmRes, err := c.PSOKMeans(points, *k, psokmeans.PSOConfig{
			SwarmSize:     *swarm,
			MaxIterations: *iters,
			W:             *w,
			C1:            *c1,
			C2:            *c2,
		})
		if err != nil {
			log.Fatalf("Failed to cluster: %v", err)
		}
		replay.History, replay.Fitness, res = history, seedRes.FitnessHistory, kmRes
		log.Printf("PSO seed fitness: %.4f\n", seedRes.Fitness)
	} else {
		history, kmRes, err := c.KMeans(points, *k, nil)
		if err != nil {
			log.Fatalf("Failed to cluster: %v", err)
		}
		replay.History, res = history, kmRes
	}
	log.Printf("Converged after %d cycles, inertia %.4f, sizes %v\n", res.Iterations, res.Inertia, res.Sizes())

	if err := os.MkdirAll(filepath.Dir(*outPath), 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}
	out, err := os.Create(*outPath)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer out.Close()
	if err := plot.RenderReplay(out, replay); err != nil {
		log.Fatalf("Failed to render replay: %v", err)
	}
	log.Printf("Generated: %s\n", *outPath)

	if *exportPath != "" {
		f, err := os.Create(*exportPath)
		if err != nil {
			log.Fatalf("Failed to create export file: %v", err)
		}
		defer f.Close()
		if err := dataset.Write(f, table, res.Assignments); err != nil {
			log.Fatalf("Failed to export: %v", err)
		}
		log.Printf("Exported: %s\n", *exportPath)
	}
}
