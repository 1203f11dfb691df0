package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS files (
    file_path    TEXT PRIMARY KEY,
    sha256       TEXT NOT NULL,
    size_bytes   INTEGER NOT NULL,
    loaded_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS financial_records (
    file_path    TEXT NOT NULL REFERENCES files(file_path) ON DELETE CASCADE,
    record_date  TEXT NOT NULL,
    category     TEXT NOT NULL,
    nature       TEXT NOT NULL,
    budget       TEXT NOT NULL,
    actual_est   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS objective_records (
    file_path    TEXT NOT NULL REFERENCES files(file_path) ON DELETE CASCADE,
    objective    TEXT NOT NULL,
    child_item   TEXT NOT NULL,
    progress     REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_financial_file ON financial_records(file_path);
CREATE INDEX IF NOT EXISTS idx_financial_category ON financial_records(category);
CREATE INDEX IF NOT EXISTS idx_objective_file ON objective_records(file_path);
`
