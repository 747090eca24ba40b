package position

import (
	"fmt"
	"math"
)

// ExitRequest reduces (or flips) the open position by a fixed share count.
// SharesCount is unsigned; Sell stores it negative.
type ExitRequest struct {
	Operation   Operation
	SharesCount int64
	RiskLine    float64
}

// PositionPercentRequest exits a percentage of the open position.
type PositionPercentRequest struct {
	PositionPercent float64
	RiskLine        float64
}

// SellExistingTrade appends an execution at the current stock price.
// SharesCount is an unsigned quantity; zero or negative counts, a missing
// risk line or no live price are rejected.
// The appended trade is returned even when it closes the round trip.
func (b *Book) SellExistingTrade(req ExitRequest) (Trade, error) {
	if req.SharesCount <= 0 || b.stockPrice <= 0 || req.RiskLine == 0 {
		return Trade{}, fmt.Errorf("exit: %w", ErrMissingData)
	}
	if !req.Operation.Valid() {
		return Trade{}, fmt.Errorf("exit: %w: operation %q", ErrMissingInput, req.Operation)
	}

	shares := req.SharesCount
	if req.Operation == Sell {
		shares = -shares
	}

	t := Trade{
		StockPrice:  b.stockPrice,
		SharesCount: shares,
		Operation:   req.Operation,
		RiskLine:    req.RiskLine,
	}
	b.appendTrade(t)
	return t, nil
}

// SellByPositionPercent closes PositionPercent of the open shares with the
// operation opposite to the current direction. 100 closes everything and
// more than 100 flips the position. A negative percent sizes a negative
// count, which SellExistingTrade rejects.
func (b *Book) SellByPositionPercent(req PositionPercentRequest) (Trade, error) {
	if req.PositionPercent == 0 {
		return Trade{}, fmt.Errorf("exit by position: %w: position percent", ErrMissingInput)
	}

	dir := b.Direction()
	open := abs64(b.NetShares())

	shares := open
	if req.PositionPercent != 100 {
		n := math.Floor(float64(open) * req.PositionPercent / 100)
		if math.Abs(n) >= math.MaxInt64 {
			return Trade{}, fmt.Errorf("exit by position: %w: position percent %.2f overflows", ErrMissingInput, req.PositionPercent)
		}
		shares = int64(n)
	}

	return b.SellExistingTrade(ExitRequest{
		Operation:   dir.ClosingSide(),
		SharesCount: shares,
		RiskLine:    req.RiskLine,
	})
}
