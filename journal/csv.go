package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// CSVJournal writes executions and snapshots to two CSV files. Sessions are
// not written separately; every row carries its session ID.
type CSVJournal struct {
	executions *csv.Writer
	snapshots  *csv.Writer
	ef, sf     *os.File
}

func NewCSV(executionsPath, snapshotsPath string) (*CSVJournal, error) {
	ef, err := os.Create(executionsPath)
	if err != nil {
		return nil, err
	}
	sf, err := os.Create(snapshotsPath)
	if err != nil {
		_ = ef.Close()
		return nil, err
	}

	ew := csv.NewWriter(ef)
	sw := csv.NewWriter(sf)

	if err := ew.Write([]string{"execution_id", "session_id", "instrument", "time", "command", "operation", "shares_count", "stock_price", "risk_line", "net_shares"}); err != nil {
		return nil, err
	}
	if err := sw.Write([]string{"session_id", "time", "command", "net_shares", "avg_price", "realized_pl", "unrealized_pl", "bert", "stops_percent", "targets_percent", "stock_price"}); err != nil {
		return nil, err
	}

	ew.Flush()
	if err := ew.Error(); err != nil {
		return nil, err
	}
	sw.Flush()
	if err := sw.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{ew, sw, ef, sf}, nil
}

func (j *CSVJournal) RecordSession(SessionRecord) error {
	return nil
}

func (j *CSVJournal) RecordExecution(e ExecutionRecord) error {
	err := j.executions.Write([]string{
		e.ExecutionID,
		e.SessionID,
		e.Instrument,
		e.Time.Format(time.RFC3339),
		e.Command,
		e.Operation,
		i(e.SharesCount),
		f(e.StockPrice),
		f(e.RiskLine),
		i(e.NetShares),
	})
	if err != nil {
		return err
	}
	j.executions.Flush()
	return j.executions.Error()
}

func (j *CSVJournal) RecordSnapshot(s SnapshotRecord) error {
	bert := ""
	if s.BERT != nil {
		bert = f(*s.BERT)
	}
	err := j.snapshots.Write([]string{
		s.SessionID,
		s.Time.Format(time.RFC3339),
		s.Command,
		i(s.NetShares),
		f(s.AveragePrice),
		f(s.RealizedPL),
		f(s.UnrealizedPL),
		bert,
		i(s.StopsPercent),
		i(s.TargetsPercent),
		f(s.StockPrice),
	})
	if err != nil {
		return err
	}
	j.snapshots.Flush()
	return j.snapshots.Error()
}

func (j *CSVJournal) Close() error {
	j.executions.Flush()
	if err := j.executions.Error(); err != nil {
		return err
	}
	j.snapshots.Flush()
	if err := j.snapshots.Error(); err != nil {
		return err
	}

	if err := j.ef.Close(); err != nil {
		return err
	}
	if err := j.sf.Close(); err != nil {
		return err
	}
	return nil
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}

func i(x int64) string {
	return strconv.FormatInt(x, 10)
}
