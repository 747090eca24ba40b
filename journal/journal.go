package journal

import "time"

// SessionRecord describes one run of the calculator against an instrument.
type SessionRecord struct {
	SessionID    string
	Instrument   string
	Started      time.Time
	RiskPerTrade float64

	// Filled by queries, ignored on insert.
	Executions int
}

// ExecutionRecord is one trade accepted by the position book.
type ExecutionRecord struct {
	ExecutionID string
	SessionID   string
	Instrument  string
	Time        time.Time
	Command     string
	Operation   string
	SharesCount int64
	StockPrice  float64
	RiskLine    float64
	NetShares   int64 // open shares after the execution
}

// SnapshotRecord is the derived state after a command.
type SnapshotRecord struct {
	SessionID      string
	Time           time.Time
	Command        string
	NetShares      int64
	AveragePrice   float64
	RealizedPL     float64
	UnrealizedPL   float64
	BERT           *float64 // nil when flat
	StopsPercent   int64
	TargetsPercent int64
	StockPrice     float64
}

type Journal interface {
	RecordSession(SessionRecord) error
	RecordExecution(ExecutionRecord) error
	RecordSnapshot(SnapshotRecord) error
	Close() error
}

// Discard is a Journal that records nothing.
var Discard Journal = discard{}

type discard struct{}

func (discard) RecordSession(SessionRecord) error     { return nil }
func (discard) RecordExecution(ExecutionRecord) error { return nil }
func (discard) RecordSnapshot(SnapshotRecord) error   { return nil }
func (discard) Close() error                          { return nil }
