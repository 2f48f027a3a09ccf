package plot

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yyyoichi/psokmeans"
)

func TestRenderReplay(t *testing.T) {
	points := [][]float64{{0, 0}, {0, 1}, {10, 10}, {10, 11}}
	history, _, err := psokmeans.RunKMeansWithHistory(points, 2, [][]float64{{0, 0}, {10, 10}}, 10)
	require.NoError(t, err)

	t.Run("2d", func(t *testing.T) {
		var buf bytes.Buffer
		err := RenderReplay(&buf, Replay{
			Headers: []string{"x", "y"},
			Points:  points,
			History: history,
			Centers: [][]float64{{0, 0.5}, {10, 10.5}},
			Fitness: []float64{3, 2, 1},
		})
		require.NoError(t, err)
		html := buf.String()
		assert.Contains(t, html, "Cluster 2")
		assert.Contains(t, html, "True centers")
		assert.Contains(t, html, "PSO global best fitness")
		assert.Contains(t, html, "#4 Update")
	})
	t.Run("3d", func(t *testing.T) {
		points3 := [][]float64{{0, 0, 0}, {0, 1, 0}, {10, 10, 10}, {10, 11, 10}}
		history3, _, err := psokmeans.RunKMeansWithHistory(points3, 2, nil, 10, psokmeans.WithSeed(1))
		require.NoError(t, err)
		var buf bytes.Buffer
		err = RenderReplay(&buf, Replay{Headers: []string{"a", "b", "c"}, Points: points3, History: history3})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Centroids")
		assert.NotContains(t, buf.String(), "PSO global best fitness")
	})
	t.Run("invalid", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Error(t, RenderReplay(&buf, Replay{Headers: []string{"x"}, Points: points, History: history}))
		assert.Error(t, RenderReplay(&buf, Replay{Headers: []string{"x", "y"}, Points: points}))
	})
}

func TestRenderHeatmap(t *testing.T) {
	var buf bytes.Buffer
	err := RenderHeatmap(&buf, Heatmap{
		Title: "win rate",
		XName: "c1",
		YName: "c2",
		Cells: []Cell{
			{X: 1.5, Y: 0.5, Value: 0.2},
			{X: 0.5, Y: 0.5, Value: 0.4},
			{X: 0.5, Y: 1.5, Value: 0.9},
		},
		Max: 1,
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "c1=0.5")
	assert.Contains(t, buf.String(), "c2=1.5")

	assert.Error(t, RenderHeatmap(&buf, Heatmap{Title: "empty"}))
}

func TestGroups(t *testing.T) {
	got := groups(3, []int{2, 0, 2, 0})
	assert.Equal(t, [][]int{{1, 3}, nil, {0, 2}}, got)
}
