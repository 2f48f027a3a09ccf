package db

import (
	"database/sql"
	"fmt"
)

// DetailedTrial contains all joined information for a trial
type DetailedTrial struct {
	ID int64

	// Dataset info
	Dataset string
	Points  int
	Dims    int
	K       int

	// Parameters
	SwarmSize  int
	Iterations int
	W          float64
	C1         float64
	C2         float64

	// Metrics
	Seed          int64
	PSOFitness    float64
	PSOInertia    float64
	PSOCycles     int
	RandomInertia float64
	RandomCycles  int
	ElapsedMS     int64
}

// QueryDetailed executes a query on the trials_detailed view
func (d *DB) QueryDetailed(query string, args ...any) ([]*DetailedTrial, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	var trials []*DetailedTrial
	for rows.Next() {
		var t DetailedTrial
		err := rows.Scan(
			&t.ID,
			&t.Dataset,
			&t.Points,
			&t.Dims,
			&t.K,
			&t.SwarmSize,
			&t.Iterations,
			&t.W,
			&t.C1,
			&t.C2,
			&t.Seed,
			&t.PSOFitness,
			&t.PSOInertia,
			&t.PSOCycles,
			&t.RandomInertia,
			&t.RandomCycles,
			&t.ElapsedMS,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan: %w", err)
		}
		trials = append(trials, &t)
	}
	return trials, rows.Err()
}

// GetTrialsByDataset returns every trial recorded for a dataset
func (d *DB) GetTrialsByDataset(name string) ([]*DetailedTrial, error) {
	return d.QueryDetailed(`
		SELECT * FROM trials_detailed
		WHERE dataset = ?
		ORDER BY swarm_size, iterations, w, c1, c2, seed
	`, name)
}

// ParameterStats holds statistics for a parameter combination on a dataset
type ParameterStats struct {
	Dataset          string
	SwarmSize        int
	Iterations       int
	W                float64
	C1               float64
	C2               float64
	TotalTrials      int
	Wins             int     // PSO-seeded inertia <= random inertia
	WinRate          float64 // Wins / TotalTrials
	AvgPSOInertia    float64
	AvgRandomInertia float64
	AvgPSOCycles     float64
	AvgRandomCycles  float64
}

// GetBestParameters returns parameter combinations whose win rate reaches
// minWinRate, best first
func (d *DB) GetBestParameters(minWinRate float64) ([]*ParameterStats, error) {
	rows, err := d.db.Query(`
		SELECT
			dataset, swarm_size, iterations, w, c1, c2,
			COUNT(*) as total_trials,
			SUM(CASE WHEN pso_inertia <= random_inertia THEN 1 ELSE 0 END) as wins,
			AVG(CASE WHEN pso_inertia <= random_inertia THEN 1.0 ELSE 0.0 END) as win_rate,
			AVG(pso_inertia) as avg_pso_inertia,
			AVG(random_inertia) as avg_random_inertia,
			AVG(pso_cycles) as avg_pso_cycles,
			AVG(random_cycles) as avg_random_cycles
		FROM trials_detailed
		GROUP BY dataset, swarm_size, iterations, w, c1, c2
		HAVING win_rate >= ?
		ORDER BY dataset, win_rate DESC, avg_pso_inertia
	`, minWinRate)
	if err != nil {
		return nil, fmt.Errorf("failed to query best parameters: %w", err)
	}
	defer rows.Close()

	var stats []*ParameterStats
	for rows.Next() {
		var s ParameterStats
		err := rows.Scan(
			&s.Dataset, &s.SwarmSize, &s.Iterations, &s.W, &s.C1, &s.C2,
			&s.TotalTrials, &s.Wins, &s.WinRate,
			&s.AvgPSOInertia, &s.AvgRandomInertia,
			&s.AvgPSOCycles, &s.AvgRandomCycles,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan: %w", err)
		}
		stats = append(stats, &s)
	}
	return stats, rows.Err()
}

// CoefficientStats holds statistics for a (c1, c2) pair, averaged over the
// other swarm parameters
type CoefficientStats struct {
	C1          float64
	C2          float64
	TotalTrials int
	WinRate     float64
	// AvgGain is the mean relative inertia reduction of the PSO seed
	// against the random one: (random - pso) / random.
	AvgGain float64
}

// GetCoefficientStats returns statistics grouped by (c1, c2) for a dataset
func (d *DB) GetCoefficientStats(dataset string) ([]*CoefficientStats, error) {
	rows, err := d.db.Query(`
		SELECT
			c1, c2,
			COUNT(*) as total_trials,
			AVG(CASE WHEN pso_inertia <= random_inertia THEN 1.0 ELSE 0.0 END) as win_rate,
			AVG(CASE WHEN random_inertia > 0 THEN (random_inertia - pso_inertia) / random_inertia ELSE 0.0 END) as avg_gain
		FROM trials_detailed
		WHERE dataset = ?
		GROUP BY c1, c2
		ORDER BY c1, c2
	`, dataset)
	if err != nil {
		return nil, fmt.Errorf("failed to query coefficient stats: %w", err)
	}
	defer rows.Close()

	var stats []*CoefficientStats
	for rows.Next() {
		var s CoefficientStats
		if err := rows.Scan(&s.C1, &s.C2, &s.TotalTrials, &s.WinRate, &s.AvgGain); err != nil {
			return nil, fmt.Errorf("failed to scan: %w", err)
		}
		stats = append(stats, &s)
	}
	return stats, rows.Err()
}

// DatasetStats holds statistics for a dataset
type DatasetStats struct {
	Dataset     string
	Points      int
	Dims        int
	K           int
	TotalTrials int
	WinRate     float64
	MinInertia  float64
}

// GetDatasetStats returns statistics grouped by dataset
func (d *DB) GetDatasetStats() ([]*DatasetStats, error) {
	rows, err := d.db.Query(`
		SELECT
			dataset, points, dims, k,
			COUNT(*) as total_trials,
			AVG(CASE WHEN pso_inertia <= random_inertia THEN 1.0 ELSE 0.0 END) as win_rate,
			MIN(MIN(pso_inertia, random_inertia)) as min_inertia
		FROM trials_detailed
		GROUP BY dataset, points, dims, k
		ORDER BY dataset
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query dataset stats: %w", err)
	}
	defer rows.Close()

	var stats []*DatasetStats
	for rows.Next() {
		var s DatasetStats
		err := rows.Scan(
			&s.Dataset, &s.Points, &s.Dims, &s.K,
			&s.TotalTrials, &s.WinRate, &s.MinInertia,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan: %w", err)
		}
		stats = append(stats, &s)
	}
	return stats, rows.Err()
}

// ExecuteRawQuery executes a raw SQL query and returns rows
func (d *DB) ExecuteRawQuery(query string, args ...any) (*sql.Rows, error) {
	return d.db.Query(query, args...)
}
