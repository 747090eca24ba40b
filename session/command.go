package session

import (
	"github.com/rustyeddy/tradebrain/position"
)

// Command is one mutation of the position book. Commands that execute a
// trade return it so the session can journal it.
type Command interface {
	Name() string
	apply(b *position.Book) (*position.Trade, error)
}

type SetStockPrice struct {
	Price float64
}

func (SetStockPrice) Name() string { return "set_stock_price" }

func (c SetStockPrice) apply(b *position.Book) (*position.Trade, error) {
	b.SetStockPrice(c.Price)
	return nil, nil
}

type SetRiskPerTrade struct {
	Amount float64
}

func (SetRiskPerTrade) Name() string { return "set_risk_per_trade" }

func (c SetRiskPerTrade) apply(b *position.Book) (*position.Trade, error) {
	b.SetRiskPerTrade(c.Amount)
	return nil, nil
}

type AddTrade struct {
	position.AddTradeRequest
}

func (AddTrade) Name() string { return "add_trade" }

func (c AddTrade) apply(b *position.Book) (*position.Trade, error) {
	return executed(b.AddTrade(c.AddTradeRequest))
}

type ExecuteByRiskPercent struct {
	position.RiskPercentRequest
}

func (ExecuteByRiskPercent) Name() string { return "execute_by_risk_percent" }

func (c ExecuteByRiskPercent) apply(b *position.Book) (*position.Trade, error) {
	return executed(b.ExecuteByRiskPercent(c.RiskPercentRequest))
}

type SellExistingTrade struct {
	position.ExitRequest
}

func (SellExistingTrade) Name() string { return "sell_existing_trade" }

func (c SellExistingTrade) apply(b *position.Book) (*position.Trade, error) {
	return executed(b.SellExistingTrade(c.ExitRequest))
}

type SellByPositionPercent struct {
	position.PositionPercentRequest
}

func (SellByPositionPercent) Name() string { return "sell_by_position_percent" }

func (c SellByPositionPercent) apply(b *position.Book) (*position.Trade, error) {
	return executed(b.SellByPositionPercent(c.PositionPercentRequest))
}

type AddStop struct {
	position.Order
}

func (AddStop) Name() string { return "add_stop" }

func (c AddStop) apply(b *position.Book) (*position.Trade, error) {
	return nil, b.AddStop(c.Order)
}

type AddTarget struct {
	position.Order
}

func (AddTarget) Name() string { return "add_target" }

func (c AddTarget) apply(b *position.Book) (*position.Trade, error) {
	return nil, b.AddTarget(c.Order)
}

// RebalanceOrders spreads uncovered shares over the resting orders.
type RebalanceOrders struct{}

func (RebalanceOrders) Name() string { return "rebalance_orders" }

func (RebalanceOrders) apply(b *position.Book) (*position.Trade, error) {
	b.RebalanceOrders()
	return nil, nil
}

func executed(t position.Trade, err error) (*position.Trade, error) {
	if err != nil {
		return nil, err
	}
	return &t, nil
}
