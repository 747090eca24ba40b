package position

import (
	"errors"

	"github.com/rustyeddy/tradebrain/risk"
)

var (
	// ErrMissingInput is returned when a required percent, multiplier or
	// operation is zero or absent.
	ErrMissingInput = errors.New("input is missing")

	// ErrMissingData is returned by exits and order entry when the share
	// count, stock price or risk line is not usable.
	ErrMissingData = errors.New("data is missing")

	// ErrInvalidRiskLine is returned when the risk line is on the wrong side
	// of the stock price for the requested operation.
	ErrInvalidRiskLine = errors.New("invalid risk line")

	// ErrDegenerateRiskLine is returned when the risk line equals the stock
	// price and no share count can be derived.
	ErrDegenerateRiskLine = risk.ErrDegenerateRiskLine

	// ErrDegenerateAverage is returned when an average price is requested
	// for a side that has no volume.
	ErrDegenerateAverage = errors.New("no volume to average")
)
