package dataset

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `name,age,income,score
ann,31,52000,0.5
bob,45,,0.75
cid,27,31000,1e-1
`

func TestRead(t *testing.T) {
	tbl, err := Read(strings.NewReader(sample))
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, []string{"name", "age", "income", "score"}, tbl.Headers())
	assert.Equal(t, []string{"age", "income", "score"}, tbl.NumericHeaders())

	t.Run("empty", func(t *testing.T) {
		_, err := Read(strings.NewReader("a,b\n"))
		assert.ErrorIs(t, err, ErrEmpty)
	})
	t.Run("ragged", func(t *testing.T) {
		_, err := Read(strings.NewReader("a,b\n1,2\n3\n"))
		assert.Error(t, err)
	})
	t.Run("all empty column is not numeric", func(t *testing.T) {
		tbl, err := Read(strings.NewReader("a,b\n1,\n2,\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, tbl.NumericHeaders())
	})
}

func TestTable_Select(t *testing.T) {
	tbl, err := Read(strings.NewReader(sample))
	require.NoError(t, err)

	points, err := tbl.Select("score", "age")
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0.5, 31}, {0.75, 45}, {0.1, 27}}, points)

	test := []struct {
		name    string
		columns []string
		wantErr error
	}{
		{"missing value", []string{"age", "income"}, ErrMissingValue},
		{"unknown", []string{"height"}, ErrUnknownColumn},
		{"text", []string{"name"}, ErrNotNumeric},
		{"none", nil, ErrUnknownColumn},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tbl.Select(tt.columns...)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestWrite(t *testing.T) {
	tbl, err := Read(strings.NewReader(sample))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tbl, []int{1, 0, 1}))
	want := `name,age,income,score,Cluster
ann,31,52000,0.5,2
bob,45,,0.75,1
cid,27,31000,1e-1,2
`
	assert.Equal(t, want, buf.String())

	t.Run("length mismatch", func(t *testing.T) {
		assert.Error(t, Write(&bytes.Buffer{}, tbl, []int{0}))
	})

	t.Run("re-read", func(t *testing.T) {
		again, err := Read(&buf)
		require.NoError(t, err)
		clusters, err := again.Select(ClusterColumn)
		require.NoError(t, err)
		assert.Equal(t, [][]float64{{2}, {1}, {2}}, clusters)
	})
}

func TestFromPoints(t *testing.T) {
	tbl, err := FromPoints([]string{"x", "y"}, [][]float64{{1.5, -2}, {0, 3.25}})
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, tbl.NumericHeaders())

	points, err := tbl.Select("x", "y")
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1.5, -2}, {0, 3.25}}, points)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tbl, []int{0, 0}))
	assert.Equal(t, "x,y,Cluster\n1.5,-2,1\n0,3.25,1\n", buf.String())

	_, err = FromPoints([]string{"x"}, nil)
	assert.ErrorIs(t, err, ErrEmpty)
	_, err = FromPoints([]string{"x"}, [][]float64{{1, 2}})
	assert.Error(t, err)
}
