package position

import (
	"errors"
	"fmt"

	"github.com/rustyeddy/tradebrain/risk"
)

// AddTradeRequest opens or adds to a position sized from the risk budget.
// Multiplier scales RiskPerTrade (1 = full budget).
type AddTradeRequest struct {
	Multiplier float64
	Operation  Operation
	RiskLine   float64
}

// RiskPercentRequest executes a trade sized from RiskPercent of the budget.
// Whether it adds to or exits the position depends on the current direction.
type RiskPercentRequest struct {
	RiskPercent float64
	RiskLine    float64
	Operation   Operation
}

// AddTrade sizes a new entry so that a move to the risk line loses
// RiskPerTrade*Multiplier, appends it to the ledger and returns it.
func (b *Book) AddTrade(req AddTradeRequest) (Trade, error) {
	if req.Multiplier == 0 {
		return Trade{}, fmt.Errorf("add trade: %w: multiplier", ErrMissingInput)
	}
	if !req.Operation.Valid() {
		return Trade{}, fmt.Errorf("add trade: %w: operation %q", ErrMissingInput, req.Operation)
	}

	price := b.stockPrice
	if req.Operation == Sell && req.RiskLine < price {
		return Trade{}, fmt.Errorf("add trade: %w: to sell the risk line must not be below %.2f", ErrInvalidRiskLine, price)
	}
	if req.Operation == Buy && req.RiskLine > price {
		return Trade{}, fmt.Errorf("add trade: %w: to buy the risk line must not be above %.2f", ErrInvalidRiskLine, price)
	}

	res, err := b.size(req.Multiplier, sideOf(req.Operation), req.RiskLine)
	if err != nil {
		return Trade{}, fmt.Errorf("add trade: %w", err)
	}
	if res.Shares == 0 {
		return Trade{}, fmt.Errorf("add trade: %w: risk of %.2f buys no shares over %.2f", ErrMissingInput, res.RiskAmount, res.Distance)
	}

	shares := res.Shares
	if req.Operation == Sell {
		shares = -shares
	}

	t := Trade{
		StockPrice:  price,
		SharesCount: shares,
		Operation:   req.Operation,
		RiskLine:    req.RiskLine,
	}
	b.appendTrade(t)
	return t, nil
}

// ExecuteByRiskPercent adds to the position when the operation is on its
// opening side and exits otherwise. While short a buy covers and a sell
// adds; while long a sell closes and a buy adds. A flat book always opens
// with the requested operation.
func (b *Book) ExecuteByRiskPercent(req RiskPercentRequest) (Trade, error) {
	if req.RiskPercent == 0 {
		return Trade{}, fmt.Errorf("execute by risk: %w: risk percent", ErrMissingInput)
	}
	if !req.Operation.Valid() {
		return Trade{}, fmt.Errorf("execute by risk: %w: operation %q", ErrMissingInput, req.Operation)
	}

	dir := b.Direction()
	multiplier := req.RiskPercent / 100

	if dir == Undefined || req.Operation == dir.OpeningSide() {
		return b.AddTrade(AddTradeRequest{
			Multiplier: multiplier,
			Operation:  req.Operation,
			RiskLine:   req.RiskLine,
		})
	}

	res, err := b.size(multiplier, dir.side(), req.RiskLine)
	if err != nil {
		return Trade{}, fmt.Errorf("execute by risk: %w", err)
	}

	return b.SellExistingTrade(ExitRequest{
		Operation:   dir.ClosingSide(),
		SharesCount: res.Shares,
		RiskLine:    req.RiskLine,
	})
}

func (b *Book) size(multiplier float64, side risk.Side, riskLine float64) (risk.Result, error) {
	res, err := risk.Calculate(risk.Inputs{
		RiskPerTrade: b.riskPerTrade,
		Multiplier:   multiplier,
		EntryPrice:   b.stockPrice,
		RiskLine:     riskLine,
		Side:         side,
	})
	if errors.Is(err, risk.ErrWrongSide) {
		return res, fmt.Errorf("%w: %v", ErrInvalidRiskLine, err)
	}
	return res, err
}
