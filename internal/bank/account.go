// internal/bank/account.go
//
// 本檔定義 Account 與交易紀錄結構，不含任何 HTTP、終端機或儲存細節。
// 金額一律以 decimal.Decimal 保存原始數值，格式化（兩位小數、貨幣符號）交給呈現層。

package bank

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// AccountType 為帳戶類型標籤，僅供顯示，不影響任何行為。
type AccountType string

const (
	Savings  AccountType = "Savings"
	Checking AccountType = "Checking"
)

// MaxHolderLength 持有人姓名的字元上限，由各呈現層在開戶前檢查。
const MaxHolderLength = 100

// HolderTooLong 回報姓名（以字元計）是否超過 MaxHolderLength。
func HolderTooLong(name string) bool {
	return utf8.RuneCountInString(name) > MaxHolderLength
}

// AccountTypes 回傳所有合法類型（依畫面選單順序）。
func AccountTypes() []AccountType {
	return []AccountType{Savings, Checking}
}

func (t AccountType) valid() bool {
	return t == Savings || t == Checking
}

// TransactionKind 交易種類。
type TransactionKind string

const (
	Deposit    TransactionKind = "Deposit"
	Withdrawal TransactionKind = "Withdrawal"
)

// Transaction represents a transaction record.
// Amount 為帶正負號的金額：存款為正、提款為負。
type Transaction struct {
	Timestamp time.Time       `json:"timestamp"`
	Kind      TransactionKind `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
}

// Date 為不含時間的日曆日期（開戶日）。
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf 取 t 在其時區下的日期部分。
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// String 回傳 YYYY-MM-DD。
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText 解析 YYYY-MM-DD。
func (d *Date) UnmarshalText(b []byte) error {
	t, err := time.Parse(time.DateOnly, string(b))
	if err != nil {
		return errors.Wrapf(err, "parse date %q", b)
	}
	*d = DateOf(t)
	return nil
}

// Details 為帳戶的唯讀快照，供清單與明細畫面使用。
type Details struct {
	Number      string          `json:"account_number"`
	Holder      string          `json:"account_holder"`
	Type        AccountType     `json:"account_type"`
	Balance     decimal.Decimal `json:"balance"`
	CreatedDate Date            `json:"creation_date"`
}

// Field 為帶標籤的明細欄位。
type Field struct {
	Name  string
	Value any
}

// Fields 依顯示順序回傳明細欄位；Balance 保留原始 decimal，由呈現層決定格式。
func (d Details) Fields() []Field {
	return []Field{
		{Name: "Account Number", Value: d.Number},
		{Name: "Account Holder", Value: d.Holder},
		{Name: "Account Type", Value: d.Type},
		{Name: "Balance", Value: d.Balance},
		{Name: "Creation Date", Value: d.CreatedDate},
	}
}

// Account represents a bank account.
//
// 不變量：
//   - balance 永不為負。
//   - balance == initial + 所有交易 Amount 的總和。
//   - transactions 只會 append，順序即時間先後。
//
// Account 不具備併發保護；同一時間只應有一個呼叫端操作（見 server 的請求序列化）。
type Account struct {
	id           string
	holder       string
	accountType  AccountType
	initial      decimal.Decimal
	balance      decimal.Decimal
	transactions []Transaction
	created      Date

	now func() time.Time
}

// newAccount 建立帳戶並檢查初始餘額與類型；帳號由 Ledger.CreateAccount 之後填入。
func newAccount(holder string, initial decimal.Decimal, accountType AccountType, now func() time.Time) (*Account, error) {
	if accountType == "" {
		accountType = Savings
	}
	if !accountType.valid() {
		return nil, invalidArgument(fmt.Sprintf("unknown account type %q", accountType))
	}
	if initial.IsNegative() {
		return nil, invalidArgument("initial balance cannot be negative")
	}
	if err := CheckAmount(initial); err != nil {
		return nil, err
	}
	return &Account{
		holder:      holder,
		accountType: accountType,
		initial:     initial,
		balance:     initial,
		created:     DateOf(now()),
		now:         now,
	}, nil
}

// Deposit 存款：金額需 > 0 且通過 CheckAmount。成功後同時更新餘額並追加一筆 {Deposit, +amount}。
func (a *Account) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return invalidArgument("deposit amount must be positive")
	}
	if err := CheckAmount(amount); err != nil {
		return err
	}
	a.balance = a.balance.Add(amount)
	a.record(Deposit, amount)
	return nil
}

// Withdraw 提款：金額需 > 0 且不得超過餘額。
// 任一檢查失敗時餘額與交易紀錄皆不變。
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return invalidArgument("withdrawal amount must be positive")
	}
	// 先檢查範圍，再與餘額比較
	if err := CheckAmount(amount); err != nil {
		return err
	}
	if amount.GreaterThan(a.balance) {
		return errors.Wrapf(ErrInsufficientFunds, "withdrawal of %s exceeds balance %s", amount.StringFixed(2), a.balance.StringFixed(2))
	}
	a.balance = a.balance.Sub(amount)
	a.record(Withdrawal, amount.Neg())
	return nil
}

func (a *Account) record(kind TransactionKind, signed decimal.Decimal) {
	a.transactions = append(a.transactions, Transaction{
		Timestamp: a.now(),
		Kind:      kind,
		Amount:    signed,
	})
}

// Balance 回傳目前餘額。
func (a *Account) Balance() decimal.Decimal { return a.balance }

// InitialBalance 回傳開戶時的初始餘額，用於對帳。
func (a *Account) InitialBalance() decimal.Decimal { return a.initial }

// ID 回傳帳號。
func (a *Account) ID() string { return a.id }

// Holder 回傳持有人姓名。
func (a *Account) Holder() string { return a.holder }

// Type 回傳帳戶類型。
func (a *Account) Type() AccountType { return a.accountType }

// CreatedDate 回傳開戶日。
func (a *Account) CreatedDate() Date { return a.created }

// Details 回傳帳戶快照。
func (a *Account) Details() Details {
	return Details{
		Number:      a.id,
		Holder:      a.holder,
		Type:        a.accountType,
		Balance:     a.balance,
		CreatedDate: a.created,
	}
}

// History 回傳交易紀錄的複本，呼叫端修改不會影響帳戶內部狀態。
func (a *Account) History() []Transaction {
	out := make([]Transaction, len(a.transactions))
	copy(out, a.transactions)
	return out
}
