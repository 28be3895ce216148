// internal/metrics/metrics.go
//
// Prometheus 指標：帳戶數、帳本操作結果與 HTTP 請求數。
// 所有方法對 nil *Metrics 安全，關閉 metrics 時呼叫端不需判斷。

package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mybank/internal/bank"
)

// 操作名稱（operation label）
const (
	OpCreate   = "create"
	OpDeposit  = "deposit"
	OpWithdraw = "withdraw"
	OpDelete   = "delete"
	OpLookup   = "lookup"
)

// Metrics contains all Prometheus metrics for the application
type Metrics struct {
	Accounts         prometheus.Gauge
	LedgerOperations *prometheus.CounterVec
	HTTPRequests     *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New 以獨立 registry 建立指標，避免與 DefaultRegisterer 或其他測試衝突。
func New() *Metrics {
	reg := prometheus.NewRegistry()
	return NewWithRegistry(reg, reg)
}

// NewWithRegistry initializes and registers Prometheus metrics with a custom registry
func NewWithRegistry(registry prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	factory := promauto.With(registry)

	return &Metrics{
		Accounts: factory.NewGauge(prometheus.GaugeOpts{
			Name: "mybank_accounts",
			Help: "The current number of accounts in the ledger",
		}),
		LedgerOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mybank_ledger_operations_total",
				Help: "The total number of ledger operations by outcome",
			},
			[]string{"operation", "outcome"},
		),
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mybank_http_requests_total",
				Help: "The total number of HTTP requests by method and status code",
			},
			[]string{"method", "code"},
		),
		gatherer: gatherer,
	}
}

// Outcome 把領域錯誤轉成 outcome label。
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, bank.ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, bank.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, bank.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// ObserveOperation 記錄一次帳本操作。
func (m *Metrics) ObserveOperation(op string, err error) {
	if m == nil {
		return
	}
	m.LedgerOperations.WithLabelValues(op, Outcome(err)).Inc()
}

// SetAccounts 更新帳戶數量。
func (m *Metrics) SetAccounts(n int) {
	if m == nil {
		return
	}
	m.Accounts.Set(float64(n))
}

// ObserveRequest 記錄一次 HTTP 請求的方法與狀態碼。
func (m *Metrics) ObserveRequest(method, code string) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, code).Inc()
}

// Handler 回傳 /metrics 的 HTTP handler。
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
