package journal

const Schema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id TEXT PRIMARY KEY,
	instrument TEXT NOT NULL,
	started DATETIME NOT NULL,
	risk_per_trade REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS executions (
	execution_id TEXT PRIMARY KEY,
	session_id TEXT NOT NULL,
	instrument TEXT NOT NULL,
	time DATETIME NOT NULL,
	command TEXT NOT NULL,
	operation TEXT NOT NULL,
	shares_count INTEGER NOT NULL,
	stock_price REAL NOT NULL,
	risk_line REAL NOT NULL,
	net_shares INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshots (
	session_id TEXT NOT NULL,
	time DATETIME NOT NULL,
	command TEXT NOT NULL,
	net_shares INTEGER NOT NULL,
	avg_price REAL NOT NULL,
	realized_pl REAL NOT NULL,
	unrealized_pl REAL NOT NULL,
	bert REAL,
	stops_percent INTEGER NOT NULL,
	targets_percent INTEGER NOT NULL,
	stock_price REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_executions_session ON executions(session_id, execution_id);
CREATE INDEX IF NOT EXISTS idx_snapshots_session ON snapshots(session_id, time);
`
