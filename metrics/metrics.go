// Package metrics exposes prometheus collectors for a tradebrain session.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	Commands       *prometheus.CounterVec
	CommandErrors  *prometheus.CounterVec
	NetShares      prometheus.Gauge
	Executions     prometheus.Gauge
	Realized       prometheus.Gauge
	Unrealized     prometheus.Gauge
	StockPrice     prometheus.Gauge
	ProtectedRatio *prometheus.GaugeVec
}

// New creates the collectors and registers them with reg. A nil reg
// leaves them unregistered, which tests use to avoid global state.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tradebrain",
			Name:      "commands_total",
			Help:      "Commands applied to the position book.",
		}, []string{"command"}),
		CommandErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tradebrain",
			Name:      "command_errors_total",
			Help:      "Commands rejected by the position book, by error kind.",
		}, []string{"command", "kind"}),
		NetShares: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tradebrain",
			Name:      "net_shares",
			Help:      "Signed open share count.",
		}),
		Executions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tradebrain",
			Name:      "executions",
			Help:      "Executions in the current round trip.",
		}),
		Realized: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tradebrain",
			Name:      "realized_profit",
			Help:      "Realized profit of the current round trip.",
		}),
		Unrealized: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tradebrain",
			Name:      "unrealized_profit",
			Help:      "Mark to market profit of the open shares.",
		}),
		StockPrice: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tradebrain",
			Name:      "stock_price",
			Help:      "Last stock price pushed to the book.",
		}),
		ProtectedRatio: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "tradebrain",
			Name:      "protected_percent",
			Help:      "Percent of the open position covered by resting orders.",
		}, []string{"order"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.Commands,
			m.CommandErrors,
			m.NetShares,
			m.Executions,
			m.Realized,
			m.Unrealized,
			m.StockPrice,
			m.ProtectedRatio,
		)
	}
	return m
}

// Handler serves the registry in the prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
