package psokmeans

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var square = [][]float64{{0, 0}, {0, 1}, {10, 10}, {10, 11}}

func TestRunKMeansWithHistory(t *testing.T) {
	t.Run("two blobs", func(t *testing.T) {
		history, res, err := RunKMeansWithHistory(square, 2, [][]float64{{0, 0}, {10, 10}}, 0)
		require.NoError(t, err)
		require.Len(t, history, 5)
		assert.Equal(t, 2, res.Iterations)
		assert.Equal(t, []int{0, 0, 1, 1}, res.Assignments)
		assert.Equal(t, [][]float64{{0, 0.5}, {10, 10.5}}, res.Centroids)
		assert.Equal(t, []int{2, 2}, res.Sizes())
		assert.InDelta(t, 1.0, res.Inertia, 1e-12)

		steps := make([]Step, len(history))
		for i, it := range history {
			steps[i] = it.Step
		}
		assert.Equal(t, []Step{
			StepInitialization,
			StepAssignment, StepUpdate,
			StepAssignment, StepUpdate,
		}, steps)
	})

	t.Run("random seed", func(t *testing.T) {
		points := gridPoints()
		h1, r1, err := RunKMeansWithHistory(points, 4, nil, 0, WithSeed(10))
		require.NoError(t, err)
		h2, r2, err := RunKMeansWithHistory(points, 4, nil, 0, WithSeed(10))
		require.NoError(t, err)
		assert.Equal(t, h1, h2)
		assert.Equal(t, r1, r2)
		assert.Len(t, h1, 1+2*r1.Iterations)

		// the seed is made of k distinct input points
		seed := h1[0].Centroids
		require.Len(t, seed, 4)
		for i := range seed {
			assert.Contains(t, points, seed[i])
			for j := range i {
				assert.NotEqual(t, seed[j], seed[i])
			}
		}
	})

	t.Run("duplicates still leave enough distinct points", func(t *testing.T) {
		points := [][]float64{{1, 1}, {1, 1}, {1, 1}, {5, 5}}
		_, res, err := RunKMeansWithHistory(points, 2, nil, 0, WithSeed(3))
		require.NoError(t, err)
		sizes := res.Sizes()
		slices.Sort(sizes)
		assert.Equal(t, []int{1, 3}, sizes)
		assert.Zero(t, res.Inertia)
	})

	t.Run("max iterations", func(t *testing.T) {
		points := gridPoints()
		for _, n := range []int{1, 2, 5} {
			history, res, err := RunKMeansWithHistory(points, 3, nil, n, WithSeed(4))
			require.NoError(t, err)
			assert.LessOrEqual(t, res.Iterations, n)
			assert.Len(t, history, 1+2*res.Iterations)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		test := []struct {
			name          string
			points        [][]float64
			k             int
			initial       [][]float64
			maxIterations int
			opts          []Option
		}{
			{name: "no points", points: nil, k: 1},
			{name: "no features", points: [][]float64{{}, {}}, k: 1},
			{name: "ragged", points: [][]float64{{0, 0}, {1}}, k: 1},
			{name: "nan", points: [][]float64{{0, math.NaN()}}, k: 1},
			{name: "inf", points: [][]float64{{math.Inf(-1), 0}}, k: 1},
			{name: "k zero", points: square, k: 0},
			{name: "k too large", points: square, k: 5},
			{name: "k above distinct", points: [][]float64{{1, 1}, {1, 1}, {2, 2}}, k: 3},
			{name: "centroid count", points: square, k: 2, initial: [][]float64{{0, 0}}},
			{name: "empty initial", points: square, k: 2, initial: [][]float64{}},
			{name: "centroid dimension", points: square, k: 2, initial: [][]float64{{0, 0}, {1, 1, 1}}},
			{name: "centroid nan", points: square, k: 1, initial: [][]float64{{0, math.NaN()}}},
			{name: "negative iterations", points: square, k: 2, maxIterations: -1},
			{name: "bad option", points: square, k: 2, opts: []Option{WithWorkers(-1)}},
		}
		for _, tt := range test {
			t.Run(tt.name, func(t *testing.T) {
				history, res, err := RunKMeansWithHistory(tt.points, tt.k, tt.initial, tt.maxIterations, tt.opts...)
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidInput), "error should wrap ErrInvalidInput: %v", err)
				assert.Nil(t, history)
				assert.Nil(t, res)
			})
		}
	})
}

func TestRunPSO(t *testing.T) {
	points := gridPoints()
	cfg := PSOConfig{SwarmSize: 10, MaxIterations: 30, W: 0.7, C1: 1.5, C2: 1.5}

	t.Run("fitness history", func(t *testing.T) {
		res, err := RunPSO(points, 4, cfg, WithSeed(1))
		require.NoError(t, err)
		require.Len(t, res.FitnessHistory, cfg.MaxIterations)
		for i := 1; i < len(res.FitnessHistory); i++ {
			assert.LessOrEqual(t, res.FitnessHistory[i], res.FitnessHistory[i-1])
		}
		f, err := Fitness(points, res.Centroids)
		require.NoError(t, err)
		assert.Equal(t, res.Fitness, f)
	})

	t.Run("seeded runs repeat", func(t *testing.T) {
		a, err := RunPSO(points, 4, cfg, WithSeed(2))
		require.NoError(t, err)
		b, err := RunPSO(points, 4, cfg, WithSeed(2), WithWorkers(4))
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("single particle without pull", func(t *testing.T) {
		res, err := RunPSO(points, 3, PSOConfig{SwarmSize: 1, MaxIterations: 10, W: 0.5}, WithSeed(6))
		require.NoError(t, err)
		for _, f := range res.FitnessHistory {
			assert.Equal(t, res.FitnessHistory[0], f)
		}
		f, err := Fitness(points, res.Centroids)
		require.NoError(t, err)
		assert.Equal(t, f, res.FitnessHistory[0])
		for _, c := range res.Centroids {
			assert.Contains(t, points, c)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		test := []struct {
			name string
			k    int
			cfg  PSOConfig
		}{
			{"swarm size", 2, PSOConfig{SwarmSize: 0, MaxIterations: 1}},
			{"iterations", 2, PSOConfig{SwarmSize: 1, MaxIterations: 0}},
			{"w nan", 2, PSOConfig{SwarmSize: 1, MaxIterations: 1, W: math.NaN()}},
			{"c1 inf", 2, PSOConfig{SwarmSize: 1, MaxIterations: 1, C1: math.Inf(1)}},
			{"c2 inf", 2, PSOConfig{SwarmSize: 1, MaxIterations: 1, C2: math.Inf(-1)}},
			{"k zero", 0, cfg},
			{"k too large", len(points) + 1, cfg},
		}
		for _, tt := range test {
			t.Run(tt.name, func(t *testing.T) {
				res, err := RunPSO(points, tt.k, tt.cfg)
				assert.ErrorIs(t, err, ErrInvalidInput)
				assert.Nil(t, res)
			})
		}
	})
}

func TestClusterer_PSOKMeans(t *testing.T) {
	c, err := New(WithSeed(12), WithWorkers(3))
	require.NoError(t, err)

	points, names, err := c.Generate(300, 4, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, names)

	seed, history, res, err := c.PSOKMeans(points, 4, PSOConfig{SwarmSize: 15, MaxIterations: 40, W: 0.72, C1: 1.49, C2: 1.49})
	require.NoError(t, err)
	assert.Equal(t, seed.Centroids, history[0].Centroids)
	assert.LessOrEqual(t, res.Inertia, seed.Fitness*(1+1e-12))
	assert.Equal(t, len(history), 1+2*res.Iterations)
	assert.Equal(t, 300, sum(res.Sizes()))
}

func TestFitness(t *testing.T) {
	t.Run("zero only on coincidence", func(t *testing.T) {
		f, err := Fitness(square, square)
		require.NoError(t, err)
		assert.Zero(t, f)

		f, err = Fitness(square, [][]float64{{0, 0}, {0, 1}, {10, 10}, {10, 11.000001}})
		require.NoError(t, err)
		assert.Positive(t, f)
	})

	t.Run("non negative", func(t *testing.T) {
		rd := rand.New(rand.NewSource(1))
		for range 50 {
			centroids := [][]float64{{rd.NormFloat64() * 10, rd.NormFloat64() * 10}}
			f, err := Fitness(gridPoints(), centroids)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, f, 0.0)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := Fitness(square, nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
		_, err = Fitness(square, [][]float64{{0, 0, 0}})
		assert.ErrorIs(t, err, ErrInvalidInput)
		_, err = Fitness(nil, [][]float64{{0, 0}})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGenerateSyntheticData(t *testing.T) {
	points, names, err := GenerateSyntheticData(150, 3, 5, WithSeed(1))
	require.NoError(t, err)
	assert.Len(t, points, 150)
	assert.Equal(t, []string{"x", "y"}, names)

	again, _, err := GenerateSyntheticData(150, 3, 5, WithSeed(1))
	require.NoError(t, err)
	assert.Equal(t, points, again)

	test := []struct {
		name                   string
		numPoints, numClusters int
		spread                 float64
	}{
		{"no points", 0, 1, 1},
		{"no clusters", 10, 0, 1},
		{"negative spread", 10, 2, -1},
		{"nan spread", 10, 2, math.NaN()},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := GenerateSyntheticData(tt.numPoints, tt.numClusters, tt.spread)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestOptions(t *testing.T) {
	t.Run("WithRand continues the stream", func(t *testing.T) {
		c, err := New(WithRand(rand.New(rand.NewSource(5))))
		require.NoError(t, err)
		a, _, err := c.Generate(10, 2, 1)
		require.NoError(t, err)
		b, _, err := c.Generate(10, 2, 1)
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("WithSeed restarts the stream", func(t *testing.T) {
		c, err := New(WithSeed(5))
		require.NoError(t, err)
		a, _, _ := c.Generate(10, 2, 1)
		b, _, _ := c.Generate(10, 2, 1)
		assert.Equal(t, a, b)
	})

	t.Run("WithMaxIterations", func(t *testing.T) {
		c, err := New(WithSeed(1), WithMaxIterations(1))
		require.NoError(t, err)
		history, res, err := c.KMeans(gridPoints(), 3, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Iterations)
		assert.Len(t, history, 3)
	})

	t.Run("WithLogger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		_, _, err := RunKMeansWithHistory(square, 2, [][]float64{{0, 0}, {10, 10}}, 0, WithLogger(logger))
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "kmeans step")
		assert.Contains(t, buf.String(), "kmeans finished")
	})

	t.Run("invalid", func(t *testing.T) {
		for _, opt := range []Option{WithRand(nil), WithMaxIterations(-1), WithWorkers(-2)} {
			_, err := New(opt)
			assert.ErrorIs(t, err, ErrInvalidInput)
		}
	})
}

// gridPoints returns four loose groups of 2-D points.
func gridPoints() [][]float64 {
	var points [][]float64
	for _, c := range [][]float64{{0, 0}, {0, 20}, {20, 0}, {20, 20}} {
		for i := range 5 {
			for j := range 5 {
				points = append(points, []float64{c[0] + float64(i), c[1] + float64(j)})
			}
		}
	}
	return points
}

func sum(s []int) int {
	var n int
	for _, v := range s {
		n += v
	}
	return n
}
