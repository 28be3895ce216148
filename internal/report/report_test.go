// internal/report/report_test.go
//
// 驗證格式化、表格、CSV 與 JSON 對帳單輸出。
// 檔案輸出一律寫到 t.TempDir()。

package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mybank/internal/bank"
)

var fixedNow = time.Date(2024, time.March, 9, 14, 30, 5, 0, time.UTC)

// aliceAccount 建立一個有兩筆交易的帳戶：100 → +50 → -150。
func aliceAccount(t *testing.T) *bank.Account {
	t.Helper()
	l := bank.NewLedger(
		bank.WithClock(func() time.Time { return fixedNow }),
		bank.WithIDGenerator(func() string { return "ACC-1" }),
	)
	id, err := l.CreateAccount("Alice", decimal.NewFromInt(100), bank.Savings)
	require.NoError(t, err)
	a, err := l.GetAccount(id)
	require.NoError(t, err)
	require.NoError(t, a.Deposit(decimal.NewFromInt(50)))
	require.NoError(t, a.Withdraw(decimal.NewFromInt(150)))
	return a
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$150.00", FormatCurrency(decimal.NewFromInt(150)))
	assert.Equal(t, "$0.10", FormatCurrency(decimal.RequireFromString("0.1")))
	assert.Equal(t, "$-150.00", FormatCurrency(decimal.NewFromInt(-150)))
	assert.Equal(t, "$1.01", FormatCurrency(decimal.RequireFromString("1.005")))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "$2.50", FormatValue(decimal.RequireFromString("2.5")))
	assert.Equal(t, "2024-03-09", FormatValue(bank.DateOf(fixedNow)))
	assert.Equal(t, "Checking", FormatValue(bank.Checking))
	assert.Equal(t, "abc", FormatValue("abc"))
}

func TestRenderTables(t *testing.T) {
	a := aliceAccount(t)

	var buf bytes.Buffer
	RenderDetails(&buf, a.Details())
	out := buf.String()
	for _, want := range []string{"Account Number", "ACC-1", "Alice", "Savings", "$0.00", "2024-03-09"} {
		assert.Contains(t, out, want)
	}

	buf.Reset()
	RenderHistory(&buf, a.History())
	out = buf.String()
	assert.Contains(t, out, "2024-03-09 14:30:05")
	assert.Contains(t, out, "$50.00")
	assert.Contains(t, out, "$-150.00")
	assert.Contains(t, out, "Withdrawal")

	buf.Reset()
	RenderAccounts(&buf, []bank.Details{a.Details()})
	assert.Contains(t, buf.String(), "Alice")
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	RenderHistory(&buf, nil)
	assert.Equal(t, "No transactions yet.\n", buf.String())

	buf.Reset()
	RenderAccounts(&buf, nil)
	assert.Equal(t, "No accounts in the system.\n", buf.String())
}

func TestWriteHistoryCSV(t *testing.T) {
	a := aliceAccount(t)

	var buf bytes.Buffer
	require.NoError(t, WriteHistoryCSV(&buf, a.History()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Timestamp", "Type", "Amount"},
		{"2024-03-09 14:30:05", "Deposit", "50.00"},
		{"2024-03-09 14:30:05", "Withdrawal", "-150.00"},
	}, records)
}

func TestStatementJSON(t *testing.T) {
	a := aliceAccount(t)
	st := NewStatement(a, fixedNow)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, st))
	assert.Contains(t, buf.String(), "\n  \"_meta\"", "output is indented")

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	meta := got["_meta"].(map[string]any)
	assert.Equal(t, "account_statement", meta["format"])
	assert.EqualValues(t, StatementVersion, meta["version"])

	account := got["account"].(map[string]any)
	assert.Equal(t, "ACC-1", account["account_number"])
	assert.Equal(t, "2024-03-09", account["creation_date"])
	assert.Equal(t, "0", account["balance"])

	txs := got["transactions"].([]any)
	require.Len(t, txs, 2)
	assert.Equal(t, "Deposit", txs[0].(map[string]any)["type"])
	assert.Equal(t, "-150", txs[1].(map[string]any)["amount"])
}

func TestStatementWithoutTransactions(t *testing.T) {
	l := bank.NewLedger()
	id, err := l.CreateAccount("Bob", decimal.Zero, bank.Checking)
	require.NoError(t, err)
	a, _ := l.GetAccount(id)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, NewStatement(a, fixedNow)))
	assert.Contains(t, buf.String(), `"transactions": []`)
}

func TestSaveJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "statement.json")
	st := NewStatement(aliceAccount(t), fixedNow)

	require.NoError(t, SaveJSON(path, st))
	assert.NoFileExists(t, path+".tmp")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var loaded Statement
	require.NoError(t, json.Unmarshal(raw, &loaded))
	assert.Equal(t, "account_statement", loaded.Meta.Format)
	assert.Equal(t, "Alice", loaded.Account.Holder)
	assert.Len(t, loaded.Transactions, 2)
}

func TestMessage(t *testing.T) {
	a := aliceAccount(t)
	assert.Equal(t, "Deposit amount must be positive.", Message(a.Deposit(decimal.Zero)))
	assert.Equal(t, "Withdrawal amount must be positive.", Message(a.Withdraw(decimal.NewFromInt(-1))))
	assert.Equal(t, "Insufficient funds.", Message(a.Withdraw(decimal.NewFromInt(1))))
	assert.Equal(t, "Account not found.", Message(bank.ErrNotFound))

	_, err := bank.ParseAmount("x")
	assert.Equal(t, "Amount must be a number.", Message(err))
}
