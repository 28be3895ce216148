// internal/report/model.go
//
// 匯出格式的資料結構：帳戶對帳單 (Statement) 與其中繼資訊 (Meta)。
// 只描述輸出形狀，不涉入商業邏輯。

package report

import (
	"time"

	"mybank/internal/bank"
)

// StatementVersion 為對帳單結構版本，欄位變動時遞增。
const StatementVersion = 1

// Meta 為所有匯出文件的中繼資料。
type Meta struct {
	Format    string    `json:"format"`         // 例如 "account_statement"
	Version   int       `json:"version"`        // 結構版本號
	Timestamp time.Time `json:"timestamp"`      // 產生時間
	Note      string    `json:"note,omitempty"` // 備註，可選
}

// Statement 為單一帳戶的完整對帳單：帳戶快照加上全部交易紀錄。
type Statement struct {
	Meta         Meta               `json:"_meta"`
	Account      bank.Details       `json:"account"`
	Transactions []bank.Transaction `json:"transactions"`
}

// NewStatement 以帳戶目前狀態建立對帳單；交易紀錄為空時輸出空陣列而非 null。
func NewStatement(a *bank.Account, at time.Time) Statement {
	history := a.History()
	if history == nil {
		history = []bank.Transaction{}
	}
	return Statement{
		Meta: Meta{
			Format:    "account_statement",
			Version:   StatementVersion,
			Timestamp: at,
		},
		Account:      a.Details(),
		Transactions: history,
	}
}
