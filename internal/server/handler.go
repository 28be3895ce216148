// internal/server/handler.go
//
// JSON API handler。每個 handler 僅負責：
//  1. 接收與驗證 HTTP 請求
//  2. 呼叫 bank 層執行商業邏輯
//  3. 回傳標準化 JSON 回應
//  4. 成功變更帳本後呼叫 s.changed()

package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"mybank/internal/bank"
	"mybank/internal/metrics"
	"mybank/internal/report"
	"mybank/pkg/log"
)

// accounts 處理：
//   - POST /accounts  → 建立帳戶
//   - GET  /accounts  → 列出所有帳戶
func (s *Server) accounts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req createAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, errors.Wrap(err, "decode request"), http.StatusBadRequest)
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if err := s.validate.Struct(req); err != nil {
			writeErr(w, err, http.StatusBadRequest)
			return
		}
		initial := decimal.Zero
		if req.InitialBalance != nil {
			initial = *req.InitialBalance
		}
		accountType, err := bank.ParseAccountType(req.AccountType)
		if err == nil && req.AccountType == "" {
			accountType = s.defaultType
		}
		id := ""
		if err == nil {
			id, err = s.ledger.CreateAccount(req.Name, initial, accountType)
		}
		s.metrics.ObserveOperation(metrics.OpCreate, err)
		if err != nil {
			writeErr(w, err, statusFor(err))
			return
		}
		s.changed()
		writeJSON(w, http.StatusCreated, map[string]string{"account_number": id})

	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.ledger.ListAccounts())
	default:
		methodNotAllowed(w)
	}
}

// accountSubroutes 處理子路徑：
//
//	GET    /accounts/{id}              → 查詢帳戶
//	DELETE /accounts/{id}              → 刪除帳戶
//	POST   /accounts/{id}/deposit      → 存款
//	POST   /accounts/{id}/withdraw     → 提款
//	GET    /accounts/{id}/history      → 交易紀錄
//	GET    /accounts/{id}/history.csv  → 交易紀錄 CSV 下載
//	GET    /accounts/{id}/statement    → 對帳單
func (s *Server) accountSubroutes(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/accounts/")
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 0 || parts[0] == "" || len(parts) > 2 {
		http.NotFound(w, r)
		return
	}
	id := parts[0]

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			a, err := s.lookup(id)
			if err != nil {
				writeErr(w, err, statusFor(err))
				return
			}
			writeJSON(w, http.StatusOK, a.Details())
		case http.MethodDelete:
			s.deleteAccount(w, id)
		default:
			methodNotAllowed(w)
		}
		return
	}

	switch parts[1] {
	case "deposit", "withdraw":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		s.transact(w, r, id, parts[1])
	case "history", "history.csv", "statement":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		a, err := s.lookup(id)
		if err != nil {
			writeErr(w, err, statusFor(err))
			return
		}
		s.export(w, r, a, parts[1])
	default:
		http.NotFound(w, r)
	}
}

// lookup 取得帳戶並記錄查詢結果。
func (s *Server) lookup(id string) (*bank.Account, error) {
	a, err := s.ledger.GetAccount(id)
	s.metrics.ObserveOperation(metrics.OpLookup, err)
	return a, err
}

func (s *Server) deleteAccount(w http.ResponseWriter, id string) {
	res := s.ledger.DeleteAccount(id)
	if !res.Found() {
		s.metrics.ObserveOperation(metrics.OpDelete, bank.ErrNotFound)
		writeJSON(w, http.StatusNotFound, map[string]string{"message": string(res)})
		return
	}
	s.metrics.ObserveOperation(metrics.OpDelete, nil)
	s.changed()
	writeJSON(w, http.StatusOK, map[string]string{"message": string(res)})
}

// transact 處理存款與提款；op 為 "deposit" 或 "withdraw"。
func (s *Server) transact(w http.ResponseWriter, r *http.Request, id, op string) {
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, errors.Wrap(err, "decode request"), http.StatusBadRequest)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeErr(w, err, http.StatusBadRequest)
		return
	}
	a, err := s.lookup(id)
	if err != nil {
		writeErr(w, err, statusFor(err))
		return
	}

	if op == "deposit" {
		err = a.Deposit(*req.Amount)
		s.metrics.ObserveOperation(metrics.OpDeposit, err)
	} else {
		err = a.Withdraw(*req.Amount)
		s.metrics.ObserveOperation(metrics.OpWithdraw, err)
	}
	if err != nil {
		log.FromContext(r.Context()).Debug("transaction rejected", "account", id, "op", op, "error", err)
		writeErr(w, err, statusFor(err))
		return
	}
	s.changed()
	writeJSON(w, http.StatusOK, a.Details())
}

// export 輸出交易紀錄或對帳單。
func (s *Server) export(w http.ResponseWriter, r *http.Request, a *bank.Account, kind string) {
	switch kind {
	case "history":
		history := a.History()
		if history == nil {
			history = []bank.Transaction{}
		}
		writeJSON(w, http.StatusOK, history)
	case "history.csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="transactions_`+a.ID()+`.csv"`)
		if err := report.WriteHistoryCSV(w, a.History()); err != nil {
			log.FromContext(r.Context()).Error("failed to write csv", "account", a.ID(), "error", err)
		}
	case "statement":
		writeJSON(w, http.StatusOK, report.NewStatement(a, s.now()))
	}
}

// health 提供健康檢查端點：GET /health。
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "accounts": s.ledger.Len()})
}
