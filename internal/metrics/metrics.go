package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ContractCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "apwine_contract_calls_total", Help: "Read-only contract calls issued"},
		[]string{"contract", "method"},
	)
	TransactionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "apwine_transactions_total", Help: "Transactions submitted"},
		[]string{"contract", "method"},
	)
)

func init() {
	prometheus.MustRegister(ContractCallsTotal, TransactionsTotal)
}

// Serve exposes /metrics on addr in a background goroutine.
func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
