package db

const schema = `
-- Datasets table (synthetic blobs or remote CSV sources)
CREATE TABLE IF NOT EXISTS datasets (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    points INTEGER NOT NULL,
    dims INTEGER NOT NULL,
    k INTEGER NOT NULL
);

-- Swarm parameters table
CREATE TABLE IF NOT EXISTS swarm_params (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    swarm_size INTEGER NOT NULL,
    iterations INTEGER NOT NULL,
    w REAL NOT NULL,
    c1 REAL NOT NULL,
    c2 REAL NOT NULL,
    UNIQUE(swarm_size, iterations, w, c1, c2)
);

-- Trials table: one PSO-seeded and one randomly seeded k-means run
CREATE TABLE IF NOT EXISTS trials (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    dataset_id INTEGER NOT NULL,
    param_id INTEGER NOT NULL,
    seed INTEGER NOT NULL,

    pso_fitness REAL NOT NULL,
    pso_inertia REAL NOT NULL,
    pso_cycles INTEGER NOT NULL,
    random_inertia REAL NOT NULL,
    random_cycles INTEGER NOT NULL,
    elapsed_ms INTEGER NOT NULL,

    FOREIGN KEY (dataset_id) REFERENCES datasets(id) ON DELETE CASCADE,
    FOREIGN KEY (param_id) REFERENCES swarm_params(id) ON DELETE CASCADE,
    UNIQUE(dataset_id, param_id, seed)
);

CREATE INDEX IF NOT EXISTS idx_trials_dataset ON trials(dataset_id);
CREATE INDEX IF NOT EXISTS idx_trials_param ON trials(param_id);
CREATE INDEX IF NOT EXISTS idx_swarm_params_c1c2 ON swarm_params(c1, c2);

CREATE VIEW IF NOT EXISTS trials_detailed AS
SELECT
    t.id,

    d.name as dataset,
    d.points,
    d.dims,
    d.k,

    p.swarm_size,
    p.iterations,
    p.w,
    p.c1,
    p.c2,

    t.seed,
    t.pso_fitness,
    t.pso_inertia,
    t.pso_cycles,
    t.random_inertia,
    t.random_cycles,
    t.elapsed_ms
FROM trials t
JOIN datasets d ON t.dataset_id = d.id
JOIN swarm_params p ON t.param_id = p.id;
`
