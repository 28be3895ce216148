// internal/report/csv.go

package report

import (
	"encoding/csv"
	"io"

	"github.com/pkg/errors"

	"mybank/internal/bank"
)

// HistoryCSVHeader 為交易紀錄 CSV 的欄位順序。
var HistoryCSVHeader = []string{"Timestamp", "Type", "Amount"}

// WriteHistoryCSV 將交易紀錄輸出為 CSV；金額保留正負號與兩位小數。
func WriteHistoryCSV(w io.Writer, history []bank.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(HistoryCSVHeader); err != nil {
		return errors.Wrap(err, "failed to write header to CSV")
	}
	for _, tx := range history {
		row := []string{
			FormatTimestamp(tx.Timestamp),
			string(tx.Kind),
			tx.Amount.StringFixed(2),
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "failed to write row to CSV")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flush CSV")
}
