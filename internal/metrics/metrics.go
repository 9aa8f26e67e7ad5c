package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "backoffice", Name: "http_requests_total", Help: "Processed HTTP requests",
	}, []string{"method", "status"})
	HandlerErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "backoffice", Name: "handler_errors_total", Help: "Handler errors",
	})
	ContractsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "backoffice", Name: "contracts_created_total", Help: "Contracts created",
	})
	SalaryBatches = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "backoffice", Name: "salary_batches_total", Help: "Salary batches persisted",
	})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "backoffice", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(HTTPRequests, HandlerErrors, ContractsCreated, SalaryBatches, DBPing)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }
