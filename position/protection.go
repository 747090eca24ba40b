package position

// Protection reports how much of the open position resting orders cover.
// Percentages are floored whole percents of the open share count.
type Protection struct {
	StopsPercent   int64 `json:"protected_percent_with_stops" yaml:"protected_percent_with_stops"`
	TargetsPercent int64 `json:"protected_percent_with_targets" yaml:"protected_percent_with_targets"`
	StopsCount     int64 `json:"protected_with_stops_count" yaml:"protected_with_stops_count"`
	TargetsCount   int64 `json:"protected_with_targets_count" yaml:"protected_with_targets_count"`
}

// Prediction tells whether stops and targets need resizing after the
// position changed. The flags are 0 or 1 regardless of how many orders
// exist; the share counts are the unprotected quantity to spread.
type Prediction struct {
	StopsFlag     int   `json:"stops_count" yaml:"stops_count"`
	StopsShares   int64 `json:"stops_shares_count" yaml:"stops_shares_count"`
	TargetsFlag   int   `json:"targets_count" yaml:"targets_count"`
	TargetsShares int64 `json:"targets_shares_count" yaml:"targets_shares_count"`
}

// PercentProtected counts targets on the favorable side of the current
// price and stops on the unfavorable side. A flat book is 0% protected.
func (b *Book) PercentProtected() Protection {
	dir := b.Direction()
	price := b.stockPrice

	var p Protection
	for _, t := range b.targets {
		if (dir == Short && t.StockPrice < price) || (dir != Short && t.StockPrice > price) {
			p.TargetsCount += t.SharesCount
		}
	}
	for _, s := range b.stops {
		if (dir == Short && s.StockPrice > price) || (dir != Short && s.StockPrice < price) {
			p.StopsCount += s.SharesCount
		}
	}

	open := abs64(b.NetShares())
	p.StopsPercent = percentOf(p.StopsCount, open)
	p.TargetsPercent = percentOf(p.TargetsCount, open)
	return p
}

func percentOf(count, open int64) int64 {
	if open == 0 {
		return 0
	}
	return count * 100 / open
}

// UpdateOrdersPrediction reports the shares left uncovered by each order
// kind that already protects part of the position.
func (b *Book) UpdateOrdersPrediction() Prediction {
	p := b.PercentProtected()
	open := abs64(b.NetShares())

	var pr Prediction
	if p.StopsCount > 0 {
		pr.StopsFlag = 1
		pr.StopsShares = uncovered(p.StopsCount, open)
	}
	if p.TargetsCount > 0 {
		pr.TargetsFlag = 1
		pr.TargetsShares = uncovered(p.TargetsCount, open)
	}
	return pr
}

func uncovered(protected, open int64) int64 {
	if protected < open {
		return open - protected
	}
	return 0
}

// RebalanceOrders grows existing orders so each kind that already protects
// some shares covers the whole position. The missing shares are handed out
// one at a time starting from the first order and wrapping around. With no
// orders of a kind nothing changes.
func (b *Book) RebalanceOrders() {
	p := b.PercentProtected()
	open := abs64(b.NetShares())

	if p.TargetsCount > 0 {
		b.targets = spread(b.targets, open-p.TargetsCount)
	}
	if p.StopsCount > 0 {
		b.stops = spread(b.stops, open-p.StopsCount)
	}
}

// spread is the closed form of a round-robin +1 walk over orders.
func spread(orders []Order, delta int64) []Order {
	out := append([]Order(nil), orders...)
	n := int64(len(out))
	if n == 0 || delta <= 0 {
		return out
	}

	each, rest := delta/n, delta%n
	for i := range out {
		out[i].SharesCount += each
		if int64(i) < rest {
			out[i].SharesCount++
		}
	}
	return out
}
