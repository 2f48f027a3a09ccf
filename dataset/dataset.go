// Package dataset turns CSV tables into point matrices for clustering and
// writes cluster assignments back next to the original columns.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// ClusterColumn is the header of the column Write appends.
const ClusterColumn = "Cluster"

var (
	ErrEmpty         = errors.New("table has no rows")
	ErrUnknownColumn = errors.New("unknown column")
	ErrNotNumeric    = errors.New("column is not numeric")
	ErrMissingValue  = errors.New("missing value")
)

// Table is a parsed CSV file. Numeric cells are kept in a dense matrix where
// NaN marks an empty cell.
type Table struct {
	headers []string
	records [][]string
	values  *mat.Dense
	numeric []bool
}

// Read parses a CSV document whose first record is the header.
// A column is numeric when every non-empty cell parses as a float and at
// least one cell is non-empty.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, ErrEmpty
	}
	if len(rows[0]) == 0 {
		return nil, ErrEmpty
	}

	t := &Table{
		headers: rows[0],
		records: rows[1:],
		numeric: make([]bool, len(rows[0])),
	}
	n, cols := len(t.records), len(t.headers)
	data := make([]float64, n*cols)
	for c := range cols {
		seen, numeric := false, true
		for i, rec := range t.records {
			cell := strings.TrimSpace(rec[c])
			if cell == "" {
				data[i*cols+c] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				numeric = false
				data[i*cols+c] = math.NaN()
				continue
			}
			seen = true
			data[i*cols+c] = v
		}
		t.numeric[c] = seen && numeric
	}
	t.values = mat.NewDense(n, cols, data)
	return t, nil
}

// FromPoints builds a table from generated points so they can be exported
// like loaded data.
func FromPoints(headers []string, points [][]float64) (*Table, error) {
	if len(points) == 0 {
		return nil, ErrEmpty
	}
	cols := len(headers)
	if cols == 0 {
		return nil, errors.New("no headers")
	}
	t := &Table{
		headers: slices.Clone(headers),
		records: make([][]string, len(points)),
		values:  mat.NewDense(len(points), cols, nil),
		numeric: make([]bool, cols),
	}
	for c := range t.numeric {
		t.numeric[c] = true
	}
	for i, p := range points {
		if len(p) != cols {
			return nil, fmt.Errorf("point %d has %d values for %d headers", i, len(p), cols)
		}
		t.values.SetRow(i, p)
		rec := make([]string, cols)
		for c, v := range p {
			rec[c] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		t.records[i] = rec
	}
	return t, nil
}

func (t *Table) Len() int { return len(t.records) }

func (t *Table) Headers() []string { return slices.Clone(t.headers) }

// NumericHeaders returns the headers of numeric columns in file order.
func (t *Table) NumericHeaders() []string {
	var h []string
	for c, ok := range t.numeric {
		if ok {
			h = append(h, t.headers[c])
		}
	}
	return h
}

// Select returns one point per row made of the named numeric columns.
// Any empty cell in a selected column is an error.
func (t *Table) Select(columns ...string) ([][]float64, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: no columns selected", ErrUnknownColumn)
	}
	idx := make([]int, len(columns))
	for i, name := range columns {
		c := slices.Index(t.headers, name)
		if c < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
		}
		if !t.numeric[c] {
			return nil, fmt.Errorf("%w: %q", ErrNotNumeric, name)
		}
		idx[i] = c
	}

	points := make([][]float64, t.Len())
	for r := range points {
		p := make([]float64, len(idx))
		for i, c := range idx {
			v := t.values.At(r, c)
			if math.IsNaN(v) {
				return nil, fmt.Errorf("%w: row %d column %q", ErrMissingValue, r+1, t.headers[c])
			}
			p[i] = v
		}
		points[r] = p
	}
	return points, nil
}

// Write writes t as CSV with an extra ClusterColumn holding the 1-based
// cluster of every row.
func Write(w io.Writer, t *Table, assignments []int) error {
	if len(assignments) != t.Len() {
		return fmt.Errorf("%d assignments for %d rows", len(assignments), t.Len())
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(append(t.Headers(), ClusterColumn)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, rec := range t.records {
		row := append(slices.Clone(rec), strconv.Itoa(assignments[i]+1))
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
