package db

type (
	// Dataset is a point set the sweep ran on.
	Dataset struct {
		ID     int64
		Name   string // Unique constraint
		Points int
		Dims   int
		K      int
	}

	// SwarmParam is one point of the parameter grid.
	SwarmParam struct {
		ID         int64
		SwarmSize  int
		Iterations int
		W          float64
		C1         float64
		C2         float64
		// Unique constraint on all fields but ID
	}

	// Trial compares a PSO-seeded k-means run against a randomly seeded one
	// drawn with the same seed.
	Trial struct {
		ID        int64
		DatasetID int64
		ParamID   int64
		Seed      int64

		PSOFitness    float64 // best swarm fitness before refinement
		PSOInertia    float64
		PSOCycles     int
		RandomInertia float64
		RandomCycles  int
		ElapsedMS     int64

		// Unique constraint on (DatasetID, ParamID, Seed)
	}
)
