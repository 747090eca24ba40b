package position

import "fmt"

// Book is the position ledger for one instrument along with the resting
// stop and target orders and the instrument scalars every calculation reads.
type Book struct {
	trades  []Trade
	stops   []Order
	targets []Order

	stockPrice   float64
	riskPerTrade float64
}

func NewBook() *Book {
	return &Book{}
}

// SetStockPrice stores the last known market price. No validation is done;
// exits reject a non-positive price on their own.
func (b *Book) SetStockPrice(v float64) {
	b.stockPrice = v
}

func (b *Book) StockPrice() float64 {
	return b.stockPrice
}

// SetRiskPerTrade stores the currency risked at a 100% allocation.
func (b *Book) SetRiskPerTrade(v float64) {
	b.riskPerTrade = v
}

func (b *Book) RiskPerTrade() float64 {
	return b.riskPerTrade
}

// Trades returns a copy of the ledger in execution order.
func (b *Book) Trades() []Trade {
	return append([]Trade(nil), b.trades...)
}

func (b *Book) Stops() []Order {
	return append([]Order(nil), b.stops...)
}

func (b *Book) Targets() []Order {
	return append([]Order(nil), b.targets...)
}

// NetShares is the signed sum of SharesCount over trades.
func NetShares(trades []Trade) int64 {
	var n int64
	for _, t := range trades {
		n += t.SharesCount
	}
	return n
}

// DirectionOf derives the tri-state direction of a list of trades.
func DirectionOf(trades []Trade) Direction {
	return directionFor(NetShares(trades))
}

func (b *Book) NetShares() int64 {
	return NetShares(b.trades)
}

func (b *Book) Direction() Direction {
	return DirectionOf(b.trades)
}

// ReplaceTrades swaps in a new ledger. A list that nets to zero closes the
// round trip and leaves the book empty.
func (b *Book) ReplaceTrades(trades []Trade) {
	if NetShares(trades) == 0 {
		b.trades = nil
		return
	}
	b.trades = append([]Trade(nil), trades...)
}

func (b *Book) appendTrade(t Trade) {
	next := make([]Trade, 0, len(b.trades)+1)
	next = append(next, b.trades...)
	next = append(next, t)
	b.ReplaceTrades(next)
}

// TotalEntrySharesCount sums the signed share counts of the trades on the
// opening side of the current direction: sells when short, buys otherwise.
func (b *Book) TotalEntrySharesCount() int64 {
	open := b.Direction().OpeningSide()
	var n int64
	for _, t := range b.trades {
		if t.Operation == open {
			n += t.SharesCount
		}
	}
	return n
}

// AddStop rests a protective stop. Share count and price must be positive.
func (b *Book) AddStop(o Order) error {
	if err := validateOrder(o); err != nil {
		return fmt.Errorf("add stop: %w", err)
	}
	b.stops = append(b.Stops(), o)
	return nil
}

// AddTarget rests a profit target. Share count and price must be positive.
func (b *Book) AddTarget(o Order) error {
	if err := validateOrder(o); err != nil {
		return fmt.Errorf("add target: %w", err)
	}
	b.targets = append(b.Targets(), o)
	return nil
}

func validateOrder(o Order) error {
	if o.SharesCount <= 0 || o.StockPrice <= 0 {
		return ErrMissingData
	}
	return nil
}
