package db

import (
	"database/sql"
	"fmt"
)

// InsertDataset inserts or gets an existing dataset by name
func (d *DB) InsertDataset(name string, points, dims, k int) (int64, error) {
	var id int64
	err := d.db.QueryRow("SELECT id FROM datasets WHERE name = ?", name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("failed to query dataset: %w", err)
	}

	result, err := d.db.Exec(
		"INSERT INTO datasets (name, points, dims, k) VALUES (?, ?, ?, ?)",
		name, points, dims, k,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert dataset: %w", err)
	}
	return result.LastInsertId()
}

// InsertSwarmParam inserts or gets existing swarm parameters
func (d *DB) InsertSwarmParam(p SwarmParam) (int64, error) {
	var id int64
	err := d.db.QueryRow(
		"SELECT id FROM swarm_params WHERE swarm_size = ? AND iterations = ? AND w = ? AND c1 = ? AND c2 = ?",
		p.SwarmSize, p.Iterations, p.W, p.C1, p.C2,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("failed to query swarm param: %w", err)
	}

	result, err := d.db.Exec(
		"INSERT INTO swarm_params (swarm_size, iterations, w, c1, c2) VALUES (?, ?, ?, ?, ?)",
		p.SwarmSize, p.Iterations, p.W, p.C1, p.C2,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert swarm param: %w", err)
	}
	return result.LastInsertId()
}

// InsertTrial inserts a trial (or updates if already exists)
func (d *DB) InsertTrial(t *Trial) (int64, error) {
	var existingID int64
	err := d.db.QueryRow(
		"SELECT id FROM trials WHERE dataset_id = ? AND param_id = ? AND seed = ?",
		t.DatasetID, t.ParamID, t.Seed,
	).Scan(&existingID)

	if err == nil {
		_, err = d.db.Exec(`
			UPDATE trials SET
				pso_fitness = ?,
				pso_inertia = ?,
				pso_cycles = ?,
				random_inertia = ?,
				random_cycles = ?,
				elapsed_ms = ?
			WHERE id = ?`,
			t.PSOFitness,
			t.PSOInertia,
			t.PSOCycles,
			t.RandomInertia,
			t.RandomCycles,
			t.ElapsedMS,
			existingID,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to update trial: %w", err)
		}
		return existingID, nil
	}

	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("failed to query existing trial: %w", err)
	}

	res, err := d.db.Exec(`
		INSERT INTO trials (
			dataset_id, param_id, seed,
			pso_fitness, pso_inertia, pso_cycles,
			random_inertia, random_cycles, elapsed_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.DatasetID,
		t.ParamID,
		t.Seed,
		t.PSOFitness,
		t.PSOInertia,
		t.PSOCycles,
		t.RandomInertia,
		t.RandomCycles,
		t.ElapsedMS,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert trial: %w", err)
	}
	return res.LastInsertId()
}

// TrialExists reports whether a trial was already recorded, so an
// interrupted sweep can resume.
func (d *DB) TrialExists(datasetID, paramID, seed int64) (bool, error) {
	var n int
	err := d.db.QueryRow(
		"SELECT COUNT(*) FROM trials WHERE dataset_id = ? AND param_id = ? AND seed = ?",
		datasetID, paramID, seed,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to query trial: %w", err)
	}
	return n > 0, nil
}

// GetDataset retrieves a dataset by name
func (d *DB) GetDataset(name string) (*Dataset, error) {
	var ds Dataset
	err := d.db.QueryRow(
		"SELECT id, name, points, dims, k FROM datasets WHERE name = ?", name,
	).Scan(&ds.ID, &ds.Name, &ds.Points, &ds.Dims, &ds.K)
	if err != nil {
		return nil, fmt.Errorf("failed to get dataset: %w", err)
	}
	return &ds, nil
}

// GetSwarmParam retrieves swarm parameters by ID
func (d *DB) GetSwarmParam(id int64) (*SwarmParam, error) {
	var p SwarmParam
	err := d.db.QueryRow(
		"SELECT id, swarm_size, iterations, w, c1, c2 FROM swarm_params WHERE id = ?", id,
	).Scan(&p.ID, &p.SwarmSize, &p.Iterations, &p.W, &p.C1, &p.C2)
	if err != nil {
		return nil, fmt.Errorf("failed to get swarm param: %w", err)
	}
	return &p, nil
}

// CountTrials returns the total number of trials
func (d *DB) CountTrials() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM trials").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count trials: %w", err)
	}
	return count, nil
}
