// Package plot renders clustering runs as go-echarts HTML pages.
package plot

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/yyyoichi/psokmeans"
)

// Replay is everything needed to draw a k-means history.
type Replay struct {
	// Headers name the point columns. Points with three columns are drawn
	// in 3D, otherwise the first two columns are used.
	Headers []string
	Points  [][]float64
	History []psokmeans.Iteration
	// Centers are the true centers of generated data, if known.
	Centers [][]float64
	// Fitness is the swarm's global best per iteration, if the seed came
	// from PSO.
	Fitness []float64
}

// RenderReplay writes one scatter chart per history record, followed by
// the swarm fitness line when r.Fitness is set.
func RenderReplay(w io.Writer, r Replay) error {
	if len(r.Headers) < 2 {
		return errors.New("need at least two columns to plot")
	}
	if len(r.History) == 0 {
		return errors.New("empty history")
	}
	page := components.NewPage()
	for i, it := range r.History {
		title := opts.Title{
			Title:    fmt.Sprintf("#%d %s", i, it.Step),
			Subtitle: fmt.Sprintf("iteration %d", it.Number),
		}
		if len(r.Headers) == 3 {
			page.AddCharts(scatter3D(title, r, it))
		} else {
			page.AddCharts(scatter2D(title, r, it))
		}
	}
	if len(r.Fitness) > 0 {
		page.AddCharts(fitnessLine(r.Fitness))
	}
	return page.Render(w)
}

// groups splits point indexes by cluster.
func groups(k int, assignments []int) [][]int {
	g := make([][]int, k)
	for i, a := range assignments {
		g[a] = append(g[a], i)
	}
	return g
}

func scatter2D(title opts.Title, r Replay, it psokmeans.Iteration) *charts.Scatter {
	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithTitleOpts(title),
		charts.WithXAxisOpts(opts.XAxis{Name: r.Headers[0], Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: r.Headers[1], Type: "value"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "5%"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	xy := func(p []float64) opts.ScatterData {
		return opts.ScatterData{Value: []any{p[0], p[1]}}
	}
	for c, idx := range groups(len(it.Centroids), it.Assignments) {
		data := make([]opts.ScatterData, 0, len(idx))
		for _, i := range idx {
			data = append(data, xy(r.Points[i]))
		}
		sc.AddSeries(fmt.Sprintf("Cluster %d", c+1), data)
	}

	centroids := make([]opts.ScatterData, 0, len(it.Centroids))
	for _, c := range it.Centroids {
		d := xy(c)
		d.Symbol = "diamond"
		d.SymbolSize = 18
		centroids = append(centroids, d)
	}
	sc.AddSeries("Centroids", centroids, charts.WithItemStyleOpts(opts.ItemStyle{Color: "black"}))

	if len(r.Centers) > 0 {
		centers := make([]opts.ScatterData, 0, len(r.Centers))
		for _, c := range r.Centers {
			d := xy(c)
			d.Symbol = "triangle"
			d.SymbolSize = 14
			centers = append(centers, d)
		}
		sc.AddSeries("True centers", centers, charts.WithItemStyleOpts(opts.ItemStyle{Color: "red"}))
	}
	return sc
}

func scatter3D(title opts.Title, r Replay, it psokmeans.Iteration) *charts.Scatter3D {
	sc := charts.NewScatter3D()
	sc.SetGlobalOptions(
		charts.WithTitleOpts(title),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "5%"}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: r.Headers[0]}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: r.Headers[1]}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: r.Headers[2]}),
	)

	xyz := func(p []float64) opts.Chart3DData {
		return opts.Chart3DData{Value: []any{p[0], p[1], p[2]}}
	}
	for c, idx := range groups(len(it.Centroids), it.Assignments) {
		data := make([]opts.Chart3DData, 0, len(idx))
		for _, i := range idx {
			data = append(data, xyz(r.Points[i]))
		}
		sc.AddSeries(fmt.Sprintf("Cluster %d", c+1), data)
	}
	centroids := make([]opts.Chart3DData, 0, len(it.Centroids))
	for _, c := range it.Centroids {
		centroids = append(centroids, xyz(c))
	}
	sc.AddSeries("Centroids", centroids, charts.WithItemStyleOpts(opts.ItemStyle{Color: "black"}))
	return sc
}

func fitnessLine(fitness []float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "PSO global best fitness",
			Subtitle: "within-cluster sum of squares per iteration",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "iteration", Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "WCSS", Type: "value"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
	)

	xs := make([]string, len(fitness))
	data := make([]opts.LineData, len(fitness))
	for i, f := range fitness {
		xs[i] = fmt.Sprint(i + 1)
		data[i] = opts.LineData{Value: f}
	}
	line.SetXAxis(xs).AddSeries("best fitness", data,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}),
	)
	return line
}

// Cell is one heatmap value at (X, Y).
type Cell struct {
	X, Y  float64
	Value float64
}

// Heatmap describes a grid of cells over two swarm coefficients.
type Heatmap struct {
	Title, Subtitle string
	XName, YName    string
	Cells           []Cell
	Min, Max        float64
}

// RenderHeatmap writes h as a single heatmap chart. Cells sharing an (X, Y)
// keep the last value.
func RenderHeatmap(w io.Writer, h Heatmap) error {
	if len(h.Cells) == 0 {
		return errors.New("no cells")
	}
	var xs, ys []float64
	for _, c := range h.Cells {
		xs = append(xs, c.X)
		ys = append(ys, c.Y)
	}
	slices.Sort(xs)
	slices.Sort(ys)
	xs = slices.Compact(xs)
	ys = slices.Compact(ys)

	xLabels := make([]string, len(xs))
	for i, x := range xs {
		xLabels[i] = fmt.Sprintf("%s=%g", h.XName, x)
	}
	yLabels := make([]string, len(ys))
	for i, y := range ys {
		yLabels[i] = fmt.Sprintf("%s=%g", h.YName, y)
	}

	data := make([]opts.HeatMapData, 0, len(h.Cells))
	for _, c := range h.Cells {
		i, _ := slices.BinarySearch(xs, c.X)
		j, _ := slices.BinarySearch(ys, c.Y)
		data = append(data, opts.HeatMapData{Value: [3]any{i, j, c.Value}})
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: h.Title, Subtitle: h.Subtitle}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:      h.XName,
			Type:      "category",
			Data:      xLabels,
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      h.YName,
			Type:      "category",
			Data:      yLabels,
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        float32(h.Min),
			Max:        float32(h.Max),
			InRange:    &opts.VisualMapInRange{Color: []string{"#313695", "#74add1", "#fee090", "#f46d43", "#a50026"}},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	hm.AddSeries(h.Title, data)
	return hm.Render(w)
}
