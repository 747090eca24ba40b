package position

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSnapshotFlat(t *testing.T) {
	t.Parallel()

	b := NewBook()
	b.SetStockPrice(50)
	b.SetRiskPerTrade(500)

	s, err := b.Snapshot()
	require.NoError(t, err)

	assert.False(t, s.InRoundTrip)
	assert.Equal(t, Undefined, s.Direction)
	assert.Nil(t, s.BreakEvenAdjusted)
	assert.Nil(t, s.LastOperationCount)
	assert.Zero(t, s.ExecutionsCount)
	assert.Zero(t, s.AveragePrice)
	assert.Equal(t, 50.0, s.StockPrice)
	assert.Equal(t, 500.0, s.RiskPerTrade)

	raw, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"bert":null`)
	assert.Contains(t, string(raw), `"direction":"N/A"`)
}

func TestSnapshotSession(t *testing.T) {
	t.Parallel()

	b := NewBook()
	b.SetRiskPerTrade(1000)
	b.SetStockPrice(100)

	_, err := b.AddTrade(AddTradeRequest{Multiplier: 1, Operation: Buy, RiskLine: 90})
	require.NoError(t, err)
	require.NoError(t, b.AddStop(Order{SharesCount: 100, StockPrice: 90}))
	require.NoError(t, b.AddTarget(Order{SharesCount: 50, StockPrice: 120}))

	b.SetStockPrice(110)
	_, err = b.SellByPositionPercent(PositionPercentRequest{PositionPercent: 50, RiskLine: 90})
	require.NoError(t, err)

	s, err := b.Snapshot()
	require.NoError(t, err)

	assert.True(t, s.InRoundTrip)
	assert.Equal(t, Long, s.Direction)
	assert.Equal(t, 2, s.ExecutionsCount)
	assert.Equal(t, int64(50), s.NetShares)
	assert.Equal(t, int64(100), s.TotalEntryShares)
	require.NotNil(t, s.LastOperationCount)
	assert.Equal(t, int64(-50), *s.LastOperationCount)

	assert.Equal(t, 100.0, s.AveragePrice)
	assert.Equal(t, 500.0, s.RealizedProfit)
	assert.Equal(t, 500.0, s.UnrealizedProfit)
	require.NotNil(t, s.BreakEvenAdjusted)
	assert.Equal(t, 90.0, *s.BreakEvenAdjusted)

	assert.Equal(t, Protection{StopsPercent: 200, TargetsPercent: 100, StopsCount: 100, TargetsCount: 50}, s.Protection)
	assert.Equal(t, Prediction{StopsFlag: 1, TargetsFlag: 1}, s.Prediction)

	out, err := yaml.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(out), "direction: long")
}

func TestSnapshotDoesNotAlias(t *testing.T) {
	t.Parallel()

	b := bookWith(100, 1000, buy(100, 100))
	require.NoError(t, b.AddStop(Order{SharesCount: 10, StockPrice: 90}))

	s, err := b.Snapshot()
	require.NoError(t, err)
	s.Trades[0].SharesCount = 1
	s.Stops[0].SharesCount = 1

	assert.Equal(t, int64(100), b.NetShares())
	assert.Equal(t, int64(10), b.Stops()[0].SharesCount)
}
