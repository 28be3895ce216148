// internal/report/table.go
//
// 呈現層共用的格式化：貨幣、時間戳與 go-pretty 表格。
// Web UI 與 shell 都透過這裡輸出，確保兩邊顯示一致。

package report

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"

	"mybank/internal/bank"
)

// TimestampLayout 為交易時間的顯示格式。
const TimestampLayout = "2006-01-02 15:04:05"

// FormatCurrency 例如 150 → "$150.00"、-0.5 → "$-0.50"。
func FormatCurrency(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// FormatTimestamp 以 TimestampLayout 格式化交易時間。
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// FormatValue 將明細欄位值轉成顯示字串；金額套用 FormatCurrency。
func FormatValue(v any) string {
	switch x := v.(type) {
	case decimal.Decimal:
		return FormatCurrency(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

// RenderDetails 以兩欄（欄位 / 值）輸出帳戶明細。
func RenderDetails(w io.Writer, d bank.Details) {
	t := newTable(w)
	for _, f := range d.Fields() {
		t.AppendRow(table.Row{f.Name, FormatValue(f.Value)})
	}
	t.Render()
}

// RenderHistory 輸出交易紀錄表；沒有交易時只印一行提示。
func RenderHistory(w io.Writer, history []bank.Transaction) {
	if len(history) == 0 {
		fmt.Fprintln(w, "No transactions yet.")
		return
	}
	t := newTable(w)
	t.AppendHeader(table.Row{"Timestamp", "Type", "Amount"})
	for _, tx := range history {
		t.AppendRow(table.Row{FormatTimestamp(tx.Timestamp), tx.Kind, FormatCurrency(tx.Amount)})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
	})
	t.Render()
}

// RenderAccounts 輸出帳戶清單；清單為空時只印一行提示。
func RenderAccounts(w io.Writer, accounts []bank.Details) {
	if len(accounts) == 0 {
		fmt.Fprintln(w, "No accounts in the system.")
		return
	}
	t := newTable(w)
	t.AppendHeader(table.Row{"Account Number", "Account Holder", "Account Type", "Balance", "Creation Date"})
	for _, d := range accounts {
		t.AppendRow(table.Row{d.Number, d.Holder, d.Type, FormatCurrency(d.Balance), d.CreatedDate})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
	})
	t.Render()
}
