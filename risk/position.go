package risk

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrDegenerateRiskLine is returned when the risk line sits on the price,
	// which would size the position with a division by zero.
	ErrDegenerateRiskLine = errors.New("risk line equals stock price")

	// ErrWrongSide is returned when the risk line is on the profitable side of price.
	ErrWrongSide = errors.New("risk line on wrong side of price")
)

// Side is the direction of the entry. Long entries have their risk line
// below the price, shorts above.
type Side int

const (
	Long  Side = 1
	Short Side = -1
)

type Inputs struct {
	RiskPerTrade float64 // currency risked at 100% allocation
	Multiplier   float64 // 1.0 = full budget, 0.25 = quarter
	EntryPrice   float64
	RiskLine     float64
	Side         Side
}

type Result struct {
	Shares     int64
	Distance   float64
	RiskAmount float64
}

// Calculate converts a risk budget and the distance to the risk line into a
// whole share count.
func Calculate(in Inputs) (Result, error) {
	riskAmt := in.RiskPerTrade * in.Multiplier
	dist := Distance(in.Side, in.EntryPrice, in.RiskLine)

	if dist == 0 {
		return Result{}, ErrDegenerateRiskLine
	}
	if dist < 0 {
		return Result{}, fmt.Errorf("%w: distance %.4f", ErrWrongSide, dist)
	}

	shares := math.Floor(riskAmt / dist)
	if math.IsNaN(shares) || math.IsInf(shares, 0) {
		return Result{}, ErrDegenerateRiskLine
	}
	if math.Abs(shares) >= math.MaxInt64 {
		return Result{}, fmt.Errorf("%w: %.0f shares overflows", ErrDegenerateRiskLine, shares)
	}

	return Result{
		Shares:     int64(shares),
		Distance:   dist,
		RiskAmount: riskAmt,
	}, nil
}
