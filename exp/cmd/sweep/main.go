// Command sweep compares PSO-seeded k-means against randomly seeded k-means
// over a grid of swarm parameters and records every trial in SQLite.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"exp/internal/db"
	"exp/internal/plot"
	"exp/internal/sources"

	"github.com/yyyoichi/psokmeans"
	"gonum.org/v1/gonum/stat"
)

// input is one point set of the sweep.
type input struct {
	name   string
	k      int
	points [][]float64
}

func main() {
	dbPath := flag.String("db", "./tmp/sweep/sweep.db", "Path to database file")
	outDir := flag.String("out", "./tmp/sweep", "Directory for heatmaps")
	trials := flag.Int("trials", 10, "Trials (seeds) per parameter combination")
	swarms := flag.String("swarms", "10,30", "Comma separated swarm sizes")
	iters := flag.Int("iters", 50, "Swarm iterations")
	ws := flag.String("w", "0.4,0.72", "Comma separated inertia weights")
	c1s := flag.String("c1", "0.5,1.0,1.49,2.0", "Comma separated cognitive coefficients")
	c2s := flag.String("c2", "0.5,1.0,1.49,2.0", "Comma separated social coefficients")
	numPoints := flag.Int("n", 300, "Generated points per synthetic set")
	spread := flag.Float64("spread", 10, "Standard deviation of generated blobs")
	clusters := flag.String("k", "3,5", "Comma separated cluster counts of synthetic sets")
	remote := flag.Bool("remote", true, "Also sweep the remote CSV sets")
	workers := flag.Int("workers", 4, "Concurrent workers per run")
	flag.Parse()

	grid, err := buildGrid(*swarms, *iters, *ws, *c1s, *c2s)
	if err != nil {
		log.Fatalf("Invalid grid: %v", err)
	}
	ks, err := parseInts(*clusters)
	if err != nil {
		log.Fatalf("Invalid -k: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}
	database, err := db.Open(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()
	log.Printf("Database initialized: %s\n", *dbPath)

	var inputs []input
	for _, k := range ks {
		points, _, err := psokmeans.GenerateSyntheticData(*numPoints, k, *spread, psokmeans.WithSeed(int64(k)))
		if err != nil {
			log.Fatalf("Failed to generate data: %v", err)
		}
		inputs = append(inputs, input{name: fmt.Sprintf("blobs-k%d-n%d", k, *numPoints), k: k, points: points})
	}
	if *remote {
		srcs, err := sources.Parse()
		if err != nil {
			log.Fatalf("Failed to parse sources: %v", err)
		}
		for _, src := range srcs {
			points, err := sources.Points(src)
			if err != nil {
				log.Printf("Skipping %s: %v\n", src.Name, err)
				continue
			}
			inputs = append(inputs, input{name: src.Name, k: src.K, points: points})
		}
	}

	for _, in := range inputs {
		if err := sweep(database, in, grid, *trials, *workers); err != nil {
			log.Fatalf("Sweep failed on %s: %v", in.name, err)
		}
		if err := summarize(database, in.name); err != nil {
			log.Printf("Failed to summarize %s: %v\n", in.name, err)
		}
		path := filepath.Join(*outDir, fmt.Sprintf("heatmap_c1c2_%s.html", in.name))
		if err := writeHeatmap(database, in.name, path); err != nil {
			log.Printf("Failed to generate heatmap: %v\n", err)
		} else {
			log.Printf("Generated: %s\n", path)
		}
	}
}

func sweep(database *db.DB, in input, grid []db.SwarmParam, trials, workers int) error {
	datasetID, err := database.InsertDataset(in.name, len(in.points), len(in.points[0]), in.k)
	if err != nil {
		return err
	}
	log.Printf("Sweeping %s: %d points, k=%d, %d parameter sets\n", in.name, len(in.points), in.k, len(grid))

	for _, p := range grid {
		paramID, err := database.InsertSwarmParam(p)
		if err != nil {
			return err
		}
		for seed := int64(1); seed <= int64(trials); seed++ {
			ok, err := database.TrialExists(datasetID, paramID, seed)
			if err != nil {
				return err
			}
			if ok {
				continue
			}
			trial, err := runTrial(in, p, seed, workers)
			if err != nil {
				return err
			}
			trial.DatasetID, trial.ParamID = datasetID, paramID
			if _, err := database.InsertTrial(trial); err != nil {
				return err
			}
		}
	}
	return nil
}

// runTrial clusters in once from a swarm seed and once from random points
// drawn with the same seed.
func runTrial(in input, p db.SwarmParam, seed int64, workers int) (*db.Trial, error) {
	c, err := psokmeans.New(psokmeans.WithSeed(seed), psokmeans.WithWorkers(workers))
	if err != nil {
		return nil, err
	}
	start := time.Now()
	seeded, _, psoRes, err := c.PSOKMeans(in.points, in.k, psokmeans.PSOConfig{
		SwarmSize:     p.SwarmSize,
		MaxIterations: p.Iterations,
		W:             p.W,
		C1:            p.C1,
		C2:            p.C2,
	})
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)
	_, randRes, err := c.KMeans(in.points, in.k, nil)
	if err != nil {
		return nil, err
	}
	return &db.Trial{
		Seed:          seed,
		PSOFitness:    seeded.Fitness,
		PSOInertia:    psoRes.Inertia,
		PSOCycles:     psoRes.Iterations,
		RandomInertia: randRes.Inertia,
		RandomCycles:  randRes.Iterations,
		ElapsedMS:     elapsed.Milliseconds(),
	}, nil
}

func summarize(database *db.DB, name string) error {
	trials, err := database.GetTrialsByDataset(name)
	if err != nil {
		return err
	}
	if len(trials) == 0 {
		return nil
	}
	psoInertia := make([]float64, len(trials))
	randInertia := make([]float64, len(trials))
	for i, t := range trials {
		psoInertia[i] = t.PSOInertia
		randInertia[i] = t.RandomInertia
	}
	pm, ps := stat.MeanStdDev(psoInertia, nil)
	rm, rs := stat.MeanStdDev(randInertia, nil)
	log.Printf("%s: %d trials, PSO inertia %.3f ± %.3f, random inertia %.3f ± %.3f\n",
		name, len(trials), pm, ps, rm, rs)
	return nil
}

func writeHeatmap(database *db.DB, name, path string) error {
	stats, err := database.GetCoefficientStats(name)
	if err != nil {
		return err
	}
	h := plot.Heatmap{
		Title:    fmt.Sprintf("%s: PSO seed gain", name),
		Subtitle: "mean relative inertia reduction (%) against random seeding",
		XName:    "c1",
		YName:    "c2",
	}
	for i, s := range stats {
		v := s.AvgGain * 100
		if i == 0 || v < h.Min {
			h.Min = v
		}
		if i == 0 || v > h.Max {
			h.Max = v
		}
		h.Cells = append(h.Cells, plot.Cell{X: s.C1, Y: s.C2, Value: v})
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return plot.RenderHeatmap(f, h)
}
