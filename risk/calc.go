package risk

// Distance is the price move from entry to the risk line, signed so that a
// stop on the losing side of the trade is positive.
func Distance(side Side, entry, riskLine float64) float64 {
	if side == Short {
		return riskLine - entry
	}
	return entry - riskLine
}

// RiskAmount is the currency at stake for the given share count if price
// travels to the risk line.
func RiskAmount(shares int64, side Side, entry, riskLine float64) float64 {
	d := Distance(side, entry, riskLine)
	if shares < 0 {
		shares = -shares
	}
	return float64(shares) * d
}
