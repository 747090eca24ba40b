package position

import (
	"fmt"
	"math"
)

// Snapshot is everything a renderer needs after a command. Currency values
// are rounded to cents. BreakEvenAdjusted and LastOperationCount are nil
// when the book is flat.
type Snapshot struct {
	Trades  []Trade `json:"trades" yaml:"trades"`
	Stops   []Order `json:"stops" yaml:"stops"`
	Targets []Order `json:"targets" yaml:"targets"`

	InRoundTrip bool      `json:"is_in_roundtrip_trade" yaml:"is_in_roundtrip_trade"`
	Direction   Direction `json:"direction" yaml:"direction"`

	AveragePrice      float64  `json:"avg_price" yaml:"avg_price"`
	RealizedProfit    float64  `json:"roundtrip_profit" yaml:"roundtrip_profit"`
	UnrealizedProfit  float64  `json:"unrealized_roundtrip_profit" yaml:"unrealized_roundtrip_profit"`
	BreakEvenAdjusted *float64 `json:"bert" yaml:"bert"`

	LastOperationCount *int64 `json:"last_operation_count" yaml:"last_operation_count"`
	ExecutionsCount    int    `json:"executions_count" yaml:"executions_count"`

	Protection Protection `json:"percent_protected_shares" yaml:"percent_protected_shares"`
	Prediction Prediction `json:"update_orders_prediction" yaml:"update_orders_prediction"`

	NetShares        int64   `json:"active_shares_count" yaml:"active_shares_count"`
	TotalEntryShares int64   `json:"total_entry_shares_count" yaml:"total_entry_shares_count"`
	StockPrice       float64 `json:"stock_price" yaml:"stock_price"`
	RiskPerTrade     float64 `json:"risk_per_trade" yaml:"risk_per_trade"`
}

// Snapshot computes every query over the current book. It never mutates.
func (b *Book) Snapshot() (Snapshot, error) {
	s := Snapshot{
		Trades:           b.Trades(),
		Stops:            b.Stops(),
		Targets:          b.Targets(),
		InRoundTrip:      len(b.trades) > 0,
		Direction:        b.Direction(),
		ExecutionsCount:  len(b.trades),
		Protection:       b.PercentProtected(),
		Prediction:       b.UpdateOrdersPrediction(),
		NetShares:        b.NetShares(),
		TotalEntryShares: b.TotalEntrySharesCount(),
		StockPrice:       b.stockPrice,
		RiskPerTrade:     b.riskPerTrade,
	}

	var err error
	if s.AveragePrice, err = b.AveragePrice(); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: %w", err)
	}
	if s.RealizedProfit, err = b.RealizedProfit(); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: %w", err)
	}
	if s.UnrealizedProfit, err = b.UnrealizedProfit(); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: %w", err)
	}

	bert, err := b.BreakEvenAdjusted()
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: %w", err)
	}
	if !math.IsNaN(bert) {
		s.BreakEvenAdjusted = &bert
	}

	if n := len(b.trades); n > 0 {
		last := b.trades[n-1].SharesCount
		s.LastOperationCount = &last
	}
	return s, nil
}
