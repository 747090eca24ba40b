package position

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/tradebrain/risk"
)

type Operation string

const (
	Buy  Operation = "buy"
	Sell Operation = "sell"
)

// ParseOperation accepts "buy" or "sell" in any case.
func ParseOperation(s string) (Operation, error) {
	switch Operation(strings.ToLower(strings.TrimSpace(s))) {
	case Buy:
		return Buy, nil
	case Sell:
		return Sell, nil
	default:
		return "", fmt.Errorf("%w: unknown operation %q", ErrMissingInput, s)
	}
}

func (o Operation) Valid() bool {
	return o == Buy || o == Sell
}

func (o Operation) Opposite() Operation {
	if o == Sell {
		return Buy
	}
	return Sell
}

// Trade is one execution. SharesCount is signed: sells are stored negative
// whether they open a short or close a long.
type Trade struct {
	StockPrice  float64   `json:"stock_price" yaml:"stock_price"`
	SharesCount int64     `json:"shares_count" yaml:"shares_count"`
	Operation   Operation `json:"operation_type" yaml:"operation_type"`
	RiskLine    float64   `json:"risk_line" yaml:"risk_line"`
}

// Order is a resting stop or target against the aggregate open position.
type Order struct {
	SharesCount int64   `json:"shares_count" yaml:"shares_count"`
	StockPrice  float64 `json:"stock_price" yaml:"stock_price"`
}

type Direction int

const (
	Undefined Direction = iota
	Long
	Short
)

func (d Direction) String() string {
	switch d {
	case Long:
		return "long"
	case Short:
		return "short"
	default:
		return "N/A"
	}
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	switch string(b) {
	case "long":
		*d = Long
	case "short":
		*d = Short
	case "N/A", "":
		*d = Undefined
	default:
		return fmt.Errorf("unknown direction %q", string(b))
	}
	return nil
}

// IsShort mirrors the tri-state flag: nil when flat.
func (d Direction) IsShort() *bool {
	if d == Undefined {
		return nil
	}
	short := d == Short
	return &short
}

// OpeningSide is the operation that adds to a position in this direction.
// Flat books open with a buy.
func (d Direction) OpeningSide() Operation {
	if d == Short {
		return Sell
	}
	return Buy
}

// ClosingSide is the operation that reduces a position in this direction.
func (d Direction) ClosingSide() Operation {
	return d.OpeningSide().Opposite()
}

func (d Direction) side() risk.Side {
	if d == Short {
		return risk.Short
	}
	return risk.Long
}

func directionFor(net int64) Direction {
	switch {
	case net > 0:
		return Long
	case net < 0:
		return Short
	default:
		return Undefined
	}
}

func sideOf(op Operation) risk.Side {
	if op == Sell {
		return risk.Short
	}
	return risk.Long
}

func abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}
