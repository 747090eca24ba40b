package session

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rustyeddy/tradebrain/position"
)

// LoadScript reads a command script from path. See ParseScript.
func LoadScript(path string, defaultRiskLine float64) ([]Command, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseScript(f, defaultRiskLine)
}

// ParseScript reads one command per CSV row:
//
//	command,p1,p2,p3
//
// A header row starting with "command" is skipped, as are blank rows and
// lines starting with '#'. An empty risk line column takes defaultRiskLine.
//
//	set_stock_price,<price>
//	set_risk_per_trade,<amount>
//	add_trade,<multiplier>,<buy|sell>,[risk line]
//	execute_by_risk_percent,<percent>,<buy|sell>,[risk line]
//	sell_existing_trade,<buy|sell>,<shares>,[risk line]
//	sell_by_position_percent,<percent>,[risk line]
//	add_stop,<shares>,<price>
//	add_target,<shares>,<price>
//	rebalance_orders
func ParseScript(r io.Reader, defaultRiskLine float64) ([]Command, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	var (
		cmds     []Command
		sawFirst bool
	)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return cmds, nil
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)

		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		if !sawFirst {
			sawFirst = true
			if strings.EqualFold(strings.TrimSpace(row[0]), "command") {
				continue
			}
		}
		if len(row) > 4 {
			return nil, fmt.Errorf("line %d: too many columns (expected <=4): %v", line, row)
		}

		cmd, err := parseRow(row, defaultRiskLine)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		cmds = append(cmds, cmd)
	}
}

func parseRow(row []string, defaultRiskLine float64) (Command, error) {
	p := make([]string, 4)
	for n := range row {
		p[n] = strings.TrimSpace(row[n])
	}
	name := strings.ToLower(p[0])

	riskLine := func(s string) (float64, error) {
		if s == "" {
			return defaultRiskLine, nil
		}
		return parseFloat(s, "risk line")
	}

	switch name {
	case "set_stock_price":
		v, err := parseFloat(p[1], "price")
		if err != nil {
			return nil, err
		}
		return SetStockPrice{Price: v}, nil

	case "set_risk_per_trade":
		v, err := parseFloat(p[1], "amount")
		if err != nil {
			return nil, err
		}
		return SetRiskPerTrade{Amount: v}, nil

	case "add_trade", "execute_by_risk_percent":
		what := "multiplier"
		if name == "execute_by_risk_percent" {
			what = "risk percent"
		}
		v, err := parseFloat(p[1], what)
		if err != nil {
			return nil, err
		}
		op, err := position.ParseOperation(p[2])
		if err != nil {
			return nil, err
		}
		rl, err := riskLine(p[3])
		if err != nil {
			return nil, err
		}
		if name == "add_trade" {
			return AddTrade{position.AddTradeRequest{Multiplier: v, Operation: op, RiskLine: rl}}, nil
		}
		return ExecuteByRiskPercent{position.RiskPercentRequest{RiskPercent: v, Operation: op, RiskLine: rl}}, nil

	case "sell_existing_trade":
		op, err := position.ParseOperation(p[1])
		if err != nil {
			return nil, err
		}
		n, err := parseInt(p[2], "shares")
		if err != nil {
			return nil, err
		}
		rl, err := riskLine(p[3])
		if err != nil {
			return nil, err
		}
		return SellExistingTrade{position.ExitRequest{Operation: op, SharesCount: n, RiskLine: rl}}, nil

	case "sell_by_position_percent":
		v, err := parseFloat(p[1], "percent")
		if err != nil {
			return nil, err
		}
		rl, err := riskLine(p[2])
		if err != nil {
			return nil, err
		}
		return SellByPositionPercent{position.PositionPercentRequest{PositionPercent: v, RiskLine: rl}}, nil

	case "add_stop", "add_target":
		n, err := parseInt(p[1], "shares")
		if err != nil {
			return nil, err
		}
		v, err := parseFloat(p[2], "price")
		if err != nil {
			return nil, err
		}
		o := position.Order{SharesCount: n, StockPrice: v}
		if name == "add_stop" {
			return AddStop{o}, nil
		}
		return AddTarget{o}, nil

	case "rebalance_orders":
		return RebalanceOrders{}, nil
	}

	return nil, fmt.Errorf("unknown command %q", p[0])
}

func parseFloat(s, what string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad %s %q: %w", what, s, err)
	}
	return v, nil
}

func parseInt(s, what string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad %s %q: %w", what, s, err)
	}
	return v, nil
}
