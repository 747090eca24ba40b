package position

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundCents(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{100, 100},
		{10.006666, 10.01},
		{1.005, 1.01},
		{2.344, 2.34},
		{-2.345, -2.34},
		{-2.346, -2.35},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, roundCents(tt.in), "roundCents(%v)", tt.in)
	}

	assert.True(t, math.IsNaN(roundCents(math.NaN())))
	assert.True(t, math.IsInf(roundCents(math.Inf(1)), 1))
}

func TestAveragePrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		trades []Trade
		want   float64
	}{
		{"empty", nil, 0},
		{"single long", []Trade{buy(100, 100)}, 100},
		{"two buys", []Trade{buy(100, 100), buy(100, 110)}, 105},
		{"long ignores sells", []Trade{buy(100, 100), sell(50, 120)}, 100},
		{"rounds to cents", []Trade{buy(1, 10), buy(2, 10.01)}, 10.01},
		{"short uses sells", []Trade{sell(100, 100), sell(300, 96), buy(50, 90)}, 97},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := bookWith(100, 1000, tt.trades...).AveragePrice()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAveragePriceOfDegenerate(t *testing.T) {
	t.Parallel()

	_, err := AveragePriceOf([]Trade{buy(100, 100)}, Short)
	assert.ErrorIs(t, err, ErrDegenerateAverage)

	_, err = AveragePriceOf([]Trade{sell(100, 100)}, Long)
	assert.ErrorIs(t, err, ErrDegenerateAverage)

	got, err := AveragePriceOf(nil, Short)
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestRealizedProfit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		trades []Trade
		want   float64
	}{
		{"empty", nil, 0},
		{"single trade", []Trade{buy(100, 100)}, 0},
		{"long partial close", []Trade{buy(100, 100), sell(50, 110)}, 500},
		{"long partial close at a loss", []Trade{buy(100, 100), sell(50, 95)}, -250},
		{"long scale in then out", []Trade{buy(100, 100), buy(100, 110), sell(100, 120)}, 1500},
		{"short partial cover", []Trade{sell(100, 100), buy(40, 90)}, 400},
		{"short add realizes nothing", []Trade{sell(100, 100), sell(100, 90)}, 0},
		{"short add then cover", []Trade{sell(100, 100), sell(100, 90), buy(50, 80)}, 750},
		{"fractional cents", []Trade{buy(3, 10.01), sell(1, 10.02)}, 0.01},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := bookWith(100, 1000, tt.trades...).RealizedProfit()
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestUnrealizedProfit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		price  float64
		trades []Trade
		want   float64
	}{
		{"flat", 100, nil, 0},
		{"long in profit", 110, []Trade{buy(100, 100)}, 1000},
		{"long under water", 95, []Trade{buy(100, 100)}, -500},
		{"short in profit", 90, []Trade{sell(100, 100)}, 1000},
		{"short under water", 102.5, []Trade{sell(100, 100)}, -250},
		{"after partial close", 110, []Trade{buy(100, 100), sell(50, 105)}, 500},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := bookWith(tt.price, 1000, tt.trades...).UnrealizedProfit()
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestBreakEvenAdjusted(t *testing.T) {
	t.Parallel()

	got, err := bookWith(110, 1000, buy(100, 100), sell(50, 110)).BreakEvenAdjusted()
	require.NoError(t, err)
	assert.InDelta(t, 90.0, got, 1e-9)

	got, err = bookWith(90, 1000, sell(100, 100), buy(40, 90)).BreakEvenAdjusted()
	require.NoError(t, err)
	// 100 - 400 / -60
	assert.InDelta(t, 106.67, got, 1e-9)

	got, err = bookWith(100, 1000).BreakEvenAdjusted()
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got))
}

func TestQueriesAreIdempotent(t *testing.T) {
	t.Parallel()

	b := bookWith(104, 1000, buy(100, 100), buy(50, 103), sell(70, 106))

	first, err := b.Snapshot()
	require.NoError(t, err)
	second, err := b.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
