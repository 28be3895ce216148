// internal/server/server.go
//
// Package server 提供 HTTP 介面，作為 bank 模組的應用層。
// 同一個 Ledger 同時服務兩種呈現：
//   - HTML 表單頁面（開戶、管理帳戶、帳戶清單）
//   - /api/v1 JSON API
//
// Ledger 本身不加鎖；所有請求經 serialize middleware 逐一處理，
// 一個使用者動作完成後才會處理下一個。
package server

import (
	"html/template"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"mybank/internal/bank"
	"mybank/internal/metrics"
	"mybank/pkg/log"
)

// Server 為 HTTP 層核心結構：
// - ledger：注入的帳本（唯一狀態來源）。
// - mu：序列化所有請求。
// - pages：已解析的頁面模板。
type Server struct {
	ledger   *bank.Ledger
	logger   log.Logger
	metrics  *metrics.Metrics
	validate *validator.Validate
	pages    map[string]*template.Template

	defaultType bank.AccountType
	corsOrigins []string
	now         func() time.Time

	mu sync.Mutex
}

// Option 調整 Server 的可注入依賴。
type Option func(*Server)

// WithLogger 注入 logger（預設不輸出）。
func WithLogger(lg log.Logger) Option {
	return func(s *Server) { s.logger = lg }
}

// WithMetrics 注入 prometheus 指標；nil 代表不收集。
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithDefaultAccountType 設定開戶表單預選的帳戶類型。
func WithDefaultAccountType(t bank.AccountType) Option {
	return func(s *Server) { s.defaultType = t }
}

// WithCORSOrigins 設定 API 允許的來源；空值代表不加 CORS 標頭。
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) { s.corsOrigins = origins }
}

// WithClock 替換對帳單時間戳的來源。
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// NewServer 建立新的 HTTP 伺服器。
func NewServer(l *bank.Ledger, opts ...Option) *Server {
	s := &Server{
		ledger:      l,
		logger:      log.NewNoopLogger(),
		validate:    newValidator(),
		pages:       parsePages(),
		defaultType: bank.Savings,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithName("server")
	s.metrics.SetAccounts(s.ledger.Len())
	return s
}

// changed 於每次成功變更帳本後呼叫。
func (s *Server) changed() {
	s.metrics.SetAccounts(s.ledger.Len())
}
