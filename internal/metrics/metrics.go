package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TicksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "ticks_total", Help: "Count of market ticks processed"},
		[]string{"symbol"},
	)
	OrdersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "orders_total", Help: "Orders emitted by the strategy"},
		[]string{"symbol", "side"},
	)
	PnLTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "pnl_total", Help: "Cumulative mark-to-market PnL"},
	)
	EngineHalted = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "engine_halted", Help: "1 once the profit-target kill-switch has latched"},
	)
)

func init() {
	prometheus.MustRegister(TicksTotal, OrdersTotal, PnLTotal, EngineHalted)
}

func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
