package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVJournalHeaders(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	execPath := filepath.Join(dir, "executions.csv")
	snapPath := filepath.Join(dir, "snapshots.csv")

	j, err := NewCSV(execPath, snapPath)
	require.NoError(t, err)
	require.NoError(t, j.Close())

	execRows := readCSV(t, execPath)
	require.Len(t, execRows, 1)
	assert.Equal(t, []string{"execution_id", "session_id", "instrument", "time", "command", "operation", "shares_count", "stock_price", "risk_line", "net_shares"}, execRows[0])

	snapRows := readCSV(t, snapPath)
	require.Len(t, snapRows, 1)
	assert.Equal(t, "bert", snapRows[0][7])
}

func TestCSVJournalRecords(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	execPath := filepath.Join(dir, "executions.csv")
	snapPath := filepath.Join(dir, "snapshots.csv")

	j, err := NewCSV(execPath, snapPath)
	require.NoError(t, err)

	at := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	require.NoError(t, j.RecordSession(SessionRecord{SessionID: "S1"}))
	require.NoError(t, j.RecordExecution(ExecutionRecord{
		ExecutionID: "E1",
		SessionID:   "S1",
		Instrument:  "AAPL",
		Time:        at,
		Command:     "add_trade",
		Operation:   "sell",
		SharesCount: -100,
		StockPrice:  100,
		RiskLine:    110,
		NetShares:   -100,
	}))
	require.NoError(t, j.RecordSnapshot(SnapshotRecord{
		SessionID:    "S1",
		Time:         at,
		Command:      "add_trade",
		NetShares:    -100,
		AveragePrice: 100,
		StockPrice:   100,
	}))
	require.NoError(t, j.Close())

	execRows := readCSV(t, execPath)
	require.Len(t, execRows, 2)
	assert.Equal(t, []string{"E1", "S1", "AAPL", "2024-05-06T07:08:09Z", "add_trade", "sell", "-100", "100.00", "110.00", "-100"}, execRows[1])

	snapRows := readCSV(t, snapPath)
	require.Len(t, snapRows, 2)
	assert.Equal(t, "", snapRows[1][7])
	assert.Equal(t, "100.00", snapRows[1][4])
}

func TestNewCSVBadPath(t *testing.T) {
	t.Parallel()

	_, err := NewCSV("/nonexistent/dir/e.csv", "/nonexistent/dir/s.csv")
	assert.Error(t, err)
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Discard.RecordSession(SessionRecord{}))
	assert.NoError(t, Discard.RecordExecution(ExecutionRecord{}))
	assert.NoError(t, Discard.RecordSnapshot(SnapshotRecord{}))
	assert.NoError(t, Discard.Close())
}
