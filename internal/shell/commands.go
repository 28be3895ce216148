// internal/shell/commands.go

package shell

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/shopspring/decimal"

	"mybank/internal/bank"
	"mybank/internal/report"
)

// handleCreate: create [name] [initial balance] [account type]
// 含空白的姓名需加雙引號；缺少的參數以子提示補齊。
func (o *Operator) handleCreate(args []string) {
	name := argOr(args, 1, func() string { return o.input("holder name", nil) })
	name = strings.TrimSpace(name)
	if name == "" {
		o.printf("Please enter an account holder name.\n")
		return
	}
	if bank.HolderTooLong(name) {
		o.printf("Account holder name must be at most %d characters.\n", bank.MaxHolderLength)
		return
	}
	initialText := argOr(args, 2, func() string { return o.input("initial balance", nil) })
	typeText := argOr(args, 3, func() string { return o.input("account type", typeSuggestions()) })

	id, err := o.create(name, initialText, typeText)
	if err != nil {
		o.logger.Debug("account creation failed", "holder", name, "error", err)
		o.printf("Account creation failed. Please check the input values.\n")
		return
	}
	o.printf("Account created successfully! Account Number: %s\n", id)
}

func (o *Operator) create(name, initialText, typeText string) (string, error) {
	initial := decimal.Zero
	if strings.TrimSpace(initialText) != "" {
		d, err := bank.ParseAmount(initialText)
		if err != nil {
			return "", err
		}
		initial = d
	}
	accountType := o.defaultType
	if strings.TrimSpace(typeText) != "" {
		t, err := bank.ParseAccountType(typeText)
		if err != nil {
			return "", err
		}
		accountType = t
	}
	return o.ledger.CreateAccount(name, initial, accountType)
}

// account 取出 args[1] 指定的帳戶；失敗時印出訊息並回傳 nil。
func (o *Operator) account(args []string, usage string) *bank.Account {
	if len(args) < 2 {
		o.printf("Usage: %s\n", usage)
		return nil
	}
	a, err := o.ledger.GetAccount(args[1])
	if err != nil {
		o.printf("%s\n", report.Message(err))
		return nil
	}
	return a
}

func (o *Operator) handleShow(args []string) {
	a := o.account(args, "show <account number>")
	if a == nil {
		return
	}
	report.RenderDetails(o.out, a.Details())
}

// handleTransact: deposit|withdraw <account number> [amount]
func (o *Operator) handleTransact(args []string) {
	a := o.account(args, args[0]+" <account number> <amount>")
	if a == nil {
		return
	}
	amountText := argOr(args, 2, func() string { return o.input("amount", nil) })
	amount, err := bank.ParseAmount(amountText)
	if err != nil {
		o.printf("%s\n", report.Message(err))
		return
	}

	if args[0] == "deposit" {
		if err := a.Deposit(amount); err != nil {
			o.printf("%s\n", report.Message(err))
			return
		}
		o.printf("Deposited %s. New balance: %s\n", report.FormatCurrency(amount), report.FormatCurrency(a.Balance()))
		return
	}
	if err := a.Withdraw(amount); err != nil {
		o.printf("%s\n", report.Message(err))
		return
	}
	o.printf("Withdrew %s. New balance: %s\n", report.FormatCurrency(amount), report.FormatCurrency(a.Balance()))
}

func (o *Operator) handleHistory(args []string) {
	a := o.account(args, "history <account number>")
	if a == nil {
		return
	}
	report.RenderHistory(o.out, a.History())
}

func (o *Operator) handleDelete(args []string) {
	if len(args) < 2 {
		o.printf("Usage: delete <account number>\n")
		return
	}
	o.printf("%s\n", o.ledger.DeleteAccount(args[1]))
}

// handleExport: export <account number> [path]
// 未指定路徑時以 CSV 輸出到畫面；副檔名為 .json 時寫入對帳單。
func (o *Operator) handleExport(args []string) {
	a := o.account(args, "export <account number> [path]")
	if a == nil {
		return
	}
	if len(args) < 3 {
		if err := report.WriteHistoryCSV(o.out, a.History()); err != nil {
			o.printf("Failed to export transactions: %s\n", err.Error())
		}
		return
	}

	path := args[2]
	var err error
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = report.SaveJSON(path, report.NewStatement(a, time.Now()))
	} else {
		err = writeCSVFile(path, a.History())
	}
	if err != nil {
		o.logger.Error("export failed", "account", a.ID(), "path", path, "error", err)
		o.printf("Failed to export transactions: %s\n", err.Error())
		return
	}
	o.printf("Exported %d transactions to %s\n", len(a.History()), path)
}

func writeCSVFile(path string, history []bank.Transaction) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.WriteHistoryCSV(f, history); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (o *Operator) handleHelp() {
	t := table.NewWriter()
	t.SetOutputMirror(o.out)
	t.AppendHeader(table.Row{"Command", "Description"})
	t.AppendSeparator()
	for _, c := range commands {
		t.AppendRow(table.Row{c.Text, c.Description})
	}
	t.Render()
}

// argOr 回傳 args[i]；不存在時呼叫 ask 取得。
func argOr(args []string, i int, ask func() string) string {
	if i < len(args) {
		return args[i]
	}
	return ask()
}
