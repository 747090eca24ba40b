package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New(nil)

	m.Commands.WithLabelValues("add_trade").Inc()
	m.Commands.WithLabelValues("add_trade").Inc()
	m.CommandErrors.WithLabelValues("add_trade", "invalid_risk_line").Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Commands.WithLabelValues("add_trade")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CommandErrors.WithLabelValues("add_trade", "invalid_risk_line")))
}

func TestGauges(t *testing.T) {
	m := New(nil)

	m.NetShares.Set(-150)
	m.ProtectedRatio.WithLabelValues("stops").Set(40)

	assert.Equal(t, -150.0, testutil.ToFloat64(m.NetShares))
	assert.Equal(t, 40.0, testutil.ToFloat64(m.ProtectedRatio.WithLabelValues("stops")))
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.StockPrice.Set(101.5)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "tradebrain_stock_price 101.5"), body)
}
