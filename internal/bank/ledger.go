// internal/bank/ledger.go

// Package bank 定義核心商業邏輯：帳戶建立、存款、提款、查詢、刪除與交易紀錄。
// Ledger 為聚合根，獨佔所有 Account；呈現層只透過 Ledger 取得帳戶。
// Ledger 本身不加鎖，併發存取由呼叫端在請求邊界序列化。
package bank

import (
	"time"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"mybank/pkg/log"
)

// maxIDAttempts 產生帳號時允許的碰撞重試次數。
const maxIDAttempts = 8

// DeleteResult 為刪除操作的狀態訊息，可直接顯示給使用者。
type DeleteResult string

const (
	DeleteOK       DeleteResult = "Account deleted successfully."
	DeleteNotFound DeleteResult = "Account not found."
)

// Found 回報刪除時帳戶是否存在。
func (r DeleteResult) Found() bool { return r == DeleteOK }

// Ledger 管理全系統帳戶。
// - accounts：帳號 → *Account，迭代順序即開戶順序。
// - issued：曾經發出的帳號，刪除後也不會重複使用。
type Ledger struct {
	accounts *linkedhashmap.Map
	issued   map[string]struct{}

	newID  func() string
	now    func() time.Time
	logger log.Logger
}

// Option 調整 Ledger 的可注入依賴。
type Option func(*Ledger)

// WithIDGenerator 替換帳號產生器（預設為 UUID v4）。
func WithIDGenerator(gen func() string) Option {
	return func(l *Ledger) { l.newID = gen }
}

// WithClock 替換時間來源，測試可固定開戶日與交易時間。
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithLogger 注入 logger，名稱會加上 "ledger"。
func WithLogger(lg log.Logger) Option {
	return func(l *Ledger) { l.logger = lg }
}

// NewLedger 建立空白帳本。
func NewLedger(opts ...Option) *Ledger {
	l := &Ledger{
		accounts: linkedhashmap.New(),
		issued:   make(map[string]struct{}),
		newID:    uuid.NewString,
		now:      time.Now,
		logger:   log.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.WithName("ledger")
	return l
}

// CreateAccount 以持有人、初始餘額與類型開戶，回傳新帳號。
// 驗證失敗時回傳空字串與 *CreateError；原因可用 errors.Is 取得。
func (l *Ledger) CreateAccount(holder string, initial decimal.Decimal, accountType AccountType) (string, error) {
	a, err := newAccount(holder, initial, accountType, l.now)
	if err != nil {
		l.logger.Debug("account creation rejected", "holder", holder, "error", err)
		return "", &CreateError{Holder: holder, Err: err}
	}
	// 驗證通過才配發帳號，失敗的開戶不消耗帳號
	id, err := l.nextID()
	if err != nil {
		return "", &CreateError{Holder: holder, Err: err}
	}
	a.id = id
	l.issued[id] = struct{}{}
	l.accounts.Put(id, a)
	l.logger.Info("account created", "account", id, "type", a.Type(), "initial_balance", initial.String())
	return id, nil
}

// nextID 產生尚未發出過的帳號。
func (l *Ledger) nextID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := l.newID()
		if id == "" {
			continue
		}
		if _, used := l.issued[id]; !used {
			return id, nil
		}
	}
	return "", errors.Errorf("could not allocate a unique account number after %d attempts", maxIDAttempts)
}

// GetAccount 依帳號取得帳戶；不存在回傳 ErrNotFound。
// 回傳的是 Ledger 持有的帳戶本身，呼叫端透過它存提款。
func (l *Ledger) GetAccount(id string) (*Account, error) {
	v, ok := l.accounts.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return v.(*Account), nil
}

// DeleteAccount 移除帳戶；帳號不存在時不做任何變更。
func (l *Ledger) DeleteAccount(id string) DeleteResult {
	if _, ok := l.accounts.Get(id); !ok {
		return DeleteNotFound
	}
	l.accounts.Remove(id)
	l.logger.Info("account deleted", "account", id)
	return DeleteOK
}

// ListAccounts 依開戶順序回傳所有帳戶快照。
func (l *Ledger) ListAccounts() []Details {
	out := make([]Details, 0, l.accounts.Size())
	it := l.accounts.Iterator()
	for it.Next() {
		out = append(out, it.Value().(*Account).Details())
	}
	return out
}

// Len 回傳目前帳戶數。
func (l *Ledger) Len() int { return l.accounts.Size() }
