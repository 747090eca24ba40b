package position

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

const epsilon = 0x1p-52

var half = decimal.NewFromFloat(0.5)

// roundCents rounds half up to two decimals after nudging by machine
// epsilon. NaN and infinities pass through.
func roundCents(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v + epsilon).Shift(2).Add(half).Floor().Shift(-2).InexactFloat64()
}

// AveragePriceOf returns the volume weighted price of the sell side of
// trades when dir is Short, and of the buy side otherwise. Empty input
// averages to zero.
func AveragePriceOf(trades []Trade, dir Direction) (float64, error) {
	if len(trades) == 0 {
		return 0, nil
	}

	var (
		buyCount, sellCount   int64
		buyAmount, sellAmount decimal.Decimal
	)
	for _, t := range trades {
		price := decimal.NewFromFloat(t.StockPrice)
		if t.SharesCount < 0 {
			sellCount += -t.SharesCount
			sellAmount = sellAmount.Add(price.Mul(decimal.NewFromInt(-t.SharesCount)))
		} else {
			buyCount += t.SharesCount
			buyAmount = buyAmount.Add(price.Mul(decimal.NewFromInt(t.SharesCount)))
		}
	}

	count, amount := buyCount, buyAmount
	if dir == Short {
		count, amount = sellCount, sellAmount
	}
	if count == 0 {
		return 0, fmt.Errorf("average price (%s): %w", dir, ErrDegenerateAverage)
	}

	avg := amount.Div(decimal.NewFromInt(count)).InexactFloat64()
	return roundCents(avg), nil
}

// AveragePrice is the break-even entry price of the open position.
func (b *Book) AveragePrice() (float64, error) {
	return AveragePriceOf(b.trades, b.Direction())
}

// RealizedProfit walks the ledger in order and books profit whenever a
// trade reduces the position built by the trades before it. A sell that
// extends a short books nothing.
func (b *Book) RealizedProfit() (float64, error) {
	if len(b.trades) < 2 {
		return 0, nil
	}

	var realized float64
	for i := 1; i < len(b.trades); i++ {
		prior := b.trades[:i]
		t := b.trades[i]

		net := NetShares(prior)
		avg, err := AveragePriceOf(prior, directionFor(net))
		if err != nil {
			return 0, fmt.Errorf("realized profit at execution %d: %w", i, err)
		}

		shares := float64(abs64(t.SharesCount))
		switch {
		case net < 0 && t.Operation == Buy:
			realized += (avg - t.StockPrice) * shares
		case net > 0 && t.Operation == Sell:
			realized += (t.StockPrice - avg) * shares
		case net < 0 && t.Operation == Sell:
			// adding to a short realizes nothing
		}
	}
	return roundCents(realized), nil
}

// UnrealizedProfit marks the open shares to the current stock price.
func (b *Book) UnrealizedProfit() (float64, error) {
	avg, err := b.AveragePrice()
	if err != nil {
		return 0, err
	}

	net := float64(b.NetShares())
	if b.Direction() == Short {
		return roundCents((avg - b.stockPrice) * net * -1), nil
	}
	return roundCents((b.stockPrice - avg) * net), nil
}

// BreakEvenAdjusted (BERT) is the average price moved by the profit already
// realized, spread over the open shares. It is NaN for a flat book.
func (b *Book) BreakEvenAdjusted() (float64, error) {
	net := b.NetShares()
	if net == 0 {
		return math.NaN(), nil
	}

	avg, err := b.AveragePrice()
	if err != nil {
		return 0, err
	}
	realized, err := b.RealizedProfit()
	if err != nil {
		return 0, err
	}
	return roundCents(avg - realized/float64(net)), nil
}
