package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordSession(s SessionRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO sessions
		(session_id, instrument, started, risk_per_trade)
		VALUES (?, ?, ?, ?)`,
		s.SessionID, s.Instrument, s.Started, s.RiskPerTrade,
	)
	return err
}

func (j *SQLite) RecordExecution(e ExecutionRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO executions
		(execution_id, session_id, instrument, time, command, operation, shares_count, stock_price, risk_line, net_shares)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ExecutionID, e.SessionID, e.Instrument, e.Time, e.Command,
		e.Operation, e.SharesCount, e.StockPrice, e.RiskLine, e.NetShares,
	)
	return err
}

func (j *SQLite) RecordSnapshot(s SnapshotRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO snapshots
		(session_id, time, command, net_shares, avg_price, realized_pl, unrealized_pl, bert, stops_percent, targets_percent, stock_price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.SessionID, s.Time, s.Command, s.NetShares, s.AveragePrice,
		s.RealizedPL, s.UnrealizedPL, s.BERT, s.StopsPercent, s.TargetsPercent, s.StockPrice,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
