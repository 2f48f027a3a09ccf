package main

import (
	"fmt"
	"strconv"
	"strings"

	"exp/internal/db"
)

// buildGrid expands the comma separated flag values into every parameter
// combination.
func buildGrid(swarms string, iters int, ws, c1s, c2s string) ([]db.SwarmParam, error) {
	sizes, err := parseInts(swarms)
	if err != nil {
		return nil, fmt.Errorf("swarms: %w", err)
	}
	wv, err := parseFloats(ws)
	if err != nil {
		return nil, fmt.Errorf("w: %w", err)
	}
	c1v, err := parseFloats(c1s)
	if err != nil {
		return nil, fmt.Errorf("c1: %w", err)
	}
	c2v, err := parseFloats(c2s)
	if err != nil {
		return nil, fmt.Errorf("c2: %w", err)
	}
	if iters < 1 {
		return nil, fmt.Errorf("iters must be positive, got %d", iters)
	}

	var grid []db.SwarmParam
	for _, s := range sizes {
		for _, w := range wv {
			for _, c1 := range c1v {
				for _, c2 := range c2v {
					grid = append(grid, db.SwarmParam{SwarmSize: s, Iterations: iters, W: w, C1: c1, C2: c2})
				}
			}
		}
	}
	return grid, nil
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, f := range strings.Split(s, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, err
		}
		if v < 1 {
			return nil, fmt.Errorf("%d is not positive", v)
		}
		out = append(out, v)
	}
	return out, nil
}

func parseFloats(s string) ([]float64, error) {
	var out []float64
	for _, f := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
