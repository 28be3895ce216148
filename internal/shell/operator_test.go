package shell

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/c-bata/go-prompt"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mybank/internal/bank"
)

var fixedNow = time.Date(2024, time.March, 9, 14, 30, 5, 0, time.UTC)

// answers 依序回傳預先準備的輸入，並記錄被詢問的參數名稱。
type answers struct {
	values []string
	asked  []string
}

func (a *answers) read(name string, _ []prompt.Suggest) string {
	a.asked = append(a.asked, name)
	if len(a.values) == 0 {
		return ""
	}
	v := a.values[0]
	a.values = a.values[1:]
	return v
}

func newTestOperator(t *testing.T, in *answers) (*Operator, *bank.Ledger, *bytes.Buffer) {
	t.Helper()
	n := 0
	l := bank.NewLedger(
		bank.WithClock(func() time.Time { return fixedNow }),
		bank.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("ACC-%d", n)
		}),
	)
	if in == nil {
		in = &answers{}
	}
	out := &bytes.Buffer{}
	return NewOperator(l, WithOutput(out), WithInput(in.read)), l, out
}

// run 執行一個指令並回傳該指令的輸出。
func run(o *Operator, out *bytes.Buffer, cmd string) string {
	out.Reset()
	o.Execute(cmd)
	return out.String()
}

func TestCreateWithArguments(t *testing.T) {
	o, l, out := newTestOperator(t, nil)

	assert.Equal(t, "Account created successfully! Account Number: ACC-1\n", run(o, out, "create Alice 100 checking"))
	a, err := l.GetAccount("ACC-1")
	require.NoError(t, err)
	assert.Equal(t, bank.Checking, a.Type())
	assert.True(t, a.Balance().Equal(decimal.NewFromInt(100)))

	assert.Equal(t, "Account creation failed. Please check the input values.\n", run(o, out, "create Bob -5 savings"))
	assert.Equal(t, "Account creation failed. Please check the input values.\n", run(o, out, "create Bob 5 brokerage"))
	assert.Equal(t, 1, l.Len())
}

func TestCreateQuotedHolder(t *testing.T) {
	o, l, out := newTestOperator(t, nil)

	assert.Contains(t, run(o, out, `create "Alice Smith" 100 checking`), "Account Number: ACC-1")
	a, err := l.GetAccount("ACC-1")
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", a.Holder())
	assert.Equal(t, bank.Checking, a.Type())
	assert.True(t, a.Balance().Equal(decimal.NewFromInt(100)))

	assert.Equal(t, "Please enter an account holder name.\n", run(o, out, `create "" 100`))
	assert.Equal(t, 1, l.Len())
}

func TestCreateHolderTooLong(t *testing.T) {
	o, l, out := newTestOperator(t, nil)

	long := strings.Repeat("x", bank.MaxHolderLength+1)
	assert.Equal(t, "Account holder name must be at most 100 characters.\n", run(o, out, "create "+long+" 1 savings"))
	assert.Zero(t, l.Len())
}

func TestSplitArgs(t *testing.T) {
	assert.Equal(t, []string{"create", "Alice Smith", "100"}, splitArgs(`create  "Alice Smith"  100`))
	assert.Equal(t, []string{"deposit", "ACC-1", "5"}, splitArgs("deposit\tACC-1 5 "))
	assert.Empty(t, splitArgs("   "))
}

func TestCreateInteractive(t *testing.T) {
	in := &answers{values: []string{"Alice Smith", "", ""}}
	o, l, out := newTestOperator(t, in)

	assert.Contains(t, run(o, out, "create"), "Account Number: ACC-1")
	assert.Equal(t, []string{"holder name", "initial balance", "account type"}, in.asked)

	a, err := l.GetAccount("ACC-1")
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", a.Holder())
	assert.Equal(t, bank.Savings, a.Type())
	assert.True(t, a.Balance().IsZero())

	in.values = []string{"   "}
	assert.Equal(t, "Please enter an account holder name.\n", run(o, out, "create"))
}

func TestTransactions(t *testing.T) {
	o, l, out := newTestOperator(t, &answers{values: []string{"25"}})
	run(o, out, "create Alice 100 savings")

	assert.Equal(t, "Deposited $50.00. New balance: $150.00\n", run(o, out, "deposit ACC-1 50"))
	assert.Equal(t, "Insufficient funds.\n", run(o, out, "withdraw ACC-1 200"))
	assert.Equal(t, "Withdrawal amount must be positive.\n", run(o, out, "withdraw ACC-1 0"))
	assert.Equal(t, "Amount must be a number.\n", run(o, out, "deposit ACC-1 lots"))
	assert.Equal(t, "Amount is out of range.\n", run(o, out, "deposit ACC-1 1e20000000"))
	assert.Equal(t, "Amount cannot have more than 2 decimal places.\n", run(o, out, "withdraw ACC-1 0.001"))
	assert.Equal(t, "Withdrew $25.00. New balance: $125.00\n", run(o, out, "withdraw ACC-1"), "amount read interactively")
	assert.Equal(t, "Account not found.\n", run(o, out, "deposit ACC-9 1"))
	assert.Equal(t, "Usage: deposit <account number> <amount>\n", run(o, out, "deposit"))

	a, _ := l.GetAccount("ACC-1")
	assert.Len(t, a.History(), 2)

	hist := run(o, out, "history ACC-1")
	assert.Contains(t, hist, "2024-03-09 14:30:05")
	assert.Contains(t, hist, "$-25.00")

	show := run(o, out, "show ACC-1")
	assert.Contains(t, show, "Account Holder")
	assert.Contains(t, show, "$125.00")
}

func TestDeleteAndList(t *testing.T) {
	o, _, out := newTestOperator(t, nil)

	assert.Equal(t, "No accounts in the system.\n", run(o, out, "list"))
	run(o, out, "create Alice 1")
	run(o, out, "create Bob 2")

	list := run(o, out, "list")
	assert.Contains(t, list, "Alice")
	assert.Less(t, strings.Index(list, "ACC-1"), strings.Index(list, "ACC-2"))

	assert.Equal(t, "Account deleted successfully.\n", run(o, out, "delete ACC-1"))
	assert.Equal(t, "Account not found.\n", run(o, out, "delete ACC-1"))
	assert.NotContains(t, run(o, out, "list"), "Alice")
	assert.Equal(t, "No transactions yet.\n", run(o, out, "history ACC-2"))
}

func TestExport(t *testing.T) {
	o, _, out := newTestOperator(t, nil)
	run(o, out, "create Alice 100")
	run(o, out, "deposit ACC-1 50")

	assert.Equal(t, "Timestamp,Type,Amount\n2024-03-09 14:30:05,Deposit,50.00\n", run(o, out, "export ACC-1"))

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "alice.csv")
	assert.Equal(t, "Exported 1 transactions to "+csvPath+"\n", run(o, out, "export ACC-1 "+csvPath))
	raw, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Deposit,50.00")

	jsonPath := filepath.Join(dir, "nested", "alice.json")
	run(o, out, "export ACC-1 "+jsonPath)
	raw, err = os.ReadFile(jsonPath)
	require.NoError(t, err)
	var st map[string]any
	require.NoError(t, json.Unmarshal(raw, &st))
	assert.Equal(t, "account_statement", st["_meta"].(map[string]any)["format"])
}

func TestHelpUnknownAndExit(t *testing.T) {
	o, _, out := newTestOperator(t, nil)

	help := run(o, out, "help")
	for _, c := range commands {
		assert.Contains(t, help, c.Text)
	}
	assert.Equal(t, "Unknown command: transfer A B\n", run(o, out, "transfer A B"))
	assert.Empty(t, run(o, out, "   "))

	o.Execute("exit")
	o.Execute("exit")
	select {
	case <-o.Wait():
	default:
		t.Fatal("exit should close the wait channel")
	}
}

func document(text string) prompt.Document {
	buf := prompt.NewBuffer()
	buf.InsertText(text, false, true)
	return *buf.Document()
}

func TestComplete(t *testing.T) {
	o, _, out := newTestOperator(t, nil)
	run(o, out, "create Alice 100")

	var texts []string
	for _, s := range o.Complete(document("de")) {
		texts = append(texts, s.Text)
	}
	assert.Equal(t, []string{"deposit", "delete"}, texts)

	got := o.Complete(document("deposit AC"))
	require.Len(t, got, 1)
	assert.Equal(t, "ACC-1", got[0].Text)
	assert.Equal(t, "Alice ($100.00)", got[0].Description)

	got = o.Complete(document("create Bob 10 Ch"))
	require.Len(t, got, 1)
	assert.Equal(t, "Checking", got[0].Text)

	assert.Empty(t, o.Complete(document("list x")))
}
