package journal

import (
	"database/sql"
	"errors"
	"fmt"
)

// GetSession returns a session by ID with its execution count.
func (j *SQLite) GetSession(sessionID string) (SessionRecord, error) {
	var rec SessionRecord

	row := j.db.QueryRow(`
		SELECT s.session_id, s.instrument, s.started, s.risk_per_trade, COUNT(e.execution_id)
		FROM sessions s
		LEFT JOIN executions e ON e.session_id = s.session_id
		WHERE s.session_id = ?
		GROUP BY s.session_id`, sessionID)

	err := row.Scan(&rec.SessionID, &rec.Instrument, &rec.Started, &rec.RiskPerTrade, &rec.Executions)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SessionRecord{}, fmt.Errorf("session %q not found", sessionID)
		}
		return SessionRecord{}, err
	}
	return rec, nil
}

// ListSessions returns every session, newest first.
func (j *SQLite) ListSessions() ([]SessionRecord, error) {
	rows, err := j.db.Query(`
		SELECT s.session_id, s.instrument, s.started, s.risk_per_trade, COUNT(e.execution_id)
		FROM sessions s
		LEFT JOIN executions e ON e.session_id = s.session_id
		GROUP BY s.session_id
		ORDER BY s.session_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		if err := rows.Scan(&rec.SessionID, &rec.Instrument, &rec.Started, &rec.RiskPerTrade, &rec.Executions); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListExecutions returns the executions of a session in the order they
// were taken. Execution IDs are ULIDs, so ID order is time order.
func (j *SQLite) ListExecutions(sessionID string) ([]ExecutionRecord, error) {
	rows, err := j.db.Query(`
		SELECT execution_id, session_id, instrument, time, command, operation, shares_count, stock_price, risk_line, net_shares
		FROM executions
		WHERE session_id = ?
		ORDER BY execution_id ASC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ExecutionRecord
	for rows.Next() {
		var rec ExecutionRecord
		if err := rows.Scan(
			&rec.ExecutionID,
			&rec.SessionID,
			&rec.Instrument,
			&rec.Time,
			&rec.Command,
			&rec.Operation,
			&rec.SharesCount,
			&rec.StockPrice,
			&rec.RiskLine,
			&rec.NetShares,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// LatestSnapshot returns the last snapshot recorded for a session.
func (j *SQLite) LatestSnapshot(sessionID string) (SnapshotRecord, error) {
	var (
		rec  SnapshotRecord
		bert sql.NullFloat64
	)

	row := j.db.QueryRow(`
		SELECT session_id, time, command, net_shares, avg_price, realized_pl, unrealized_pl, bert, stops_percent, targets_percent, stock_price
		FROM snapshots
		WHERE session_id = ?
		ORDER BY rowid DESC
		LIMIT 1`, sessionID)

	err := row.Scan(
		&rec.SessionID,
		&rec.Time,
		&rec.Command,
		&rec.NetShares,
		&rec.AveragePrice,
		&rec.RealizedPL,
		&rec.UnrealizedPL,
		&bert,
		&rec.StopsPercent,
		&rec.TargetsPercent,
		&rec.StockPrice,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SnapshotRecord{}, fmt.Errorf("no snapshots for session %q", sessionID)
		}
		return SnapshotRecord{}, err
	}
	if bert.Valid {
		rec.BERT = &bert.Float64
	}
	return rec, nil
}
