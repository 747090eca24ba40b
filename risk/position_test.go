package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		side     Side
		entry    float64
		riskLine float64
		want     float64
	}{
		{"long below", Long, 100, 90, 10},
		{"long above", Long, 100, 110, -10},
		{"short above", Short, 100, 110, 10},
		{"short below", Short, 100, 95, -5},
		{"flat", Long, 50, 50, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, Distance(tt.side, tt.entry, tt.riskLine), 1e-12)
		})
	}
}

func TestCalculate_Long(t *testing.T) {
	t.Parallel()

	got, err := Calculate(Inputs{
		RiskPerTrade: 1000,
		Multiplier:   1,
		EntryPrice:   100,
		RiskLine:     90,
		Side:         Long,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(100), got.Shares)
	assert.InDelta(t, 10.0, got.Distance, 1e-9)
	assert.InDelta(t, 1000.0, got.RiskAmount, 1e-9)
}

func TestCalculate_ShortFloors(t *testing.T) {
	t.Parallel()

	got, err := Calculate(Inputs{
		RiskPerTrade: 1000,
		Multiplier:   0.5,
		EntryPrice:   100,
		RiskLine:     103,
		Side:         Short,
	})
	require.NoError(t, err)

	// 500 / 3 = 166.67
	assert.Equal(t, int64(166), got.Shares)
	assert.InDelta(t, 500.0, got.RiskAmount, 1e-9)
}

func TestCalculate_TooManyShares(t *testing.T) {
	t.Parallel()

	_, err := Calculate(Inputs{RiskPerTrade: 1e30, Multiplier: 1, EntryPrice: 100, RiskLine: 99.99, Side: Long})
	assert.ErrorIs(t, err, ErrDegenerateRiskLine)

	_, err = Calculate(Inputs{RiskPerTrade: 1e30, Multiplier: 1, EntryPrice: 100, RiskLine: 100.01, Side: Short})
	assert.ErrorIs(t, err, ErrDegenerateRiskLine)
}

func TestCalculate_ZeroDistance(t *testing.T) {
	t.Parallel()

	_, err := Calculate(Inputs{RiskPerTrade: 1000, Multiplier: 1, EntryPrice: 100, RiskLine: 100, Side: Long})
	assert.ErrorIs(t, err, ErrDegenerateRiskLine)
}

func TestCalculate_WrongSide(t *testing.T) {
	t.Parallel()

	_, err := Calculate(Inputs{RiskPerTrade: 1000, Multiplier: 1, EntryPrice: 100, RiskLine: 105, Side: Long})
	assert.ErrorIs(t, err, ErrWrongSide)
}

func TestRiskAmount(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 1000.0, RiskAmount(100, Long, 100, 90), 1e-9)
	assert.InDelta(t, 1000.0, RiskAmount(-100, Short, 100, 110), 1e-9)
}
