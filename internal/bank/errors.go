// internal/bank/errors.go
//
// 本檔集中定義領域錯誤（domain errors）。
// 呈現層（HTTP / shell）以 errors.Is 判斷類別，再轉為狀態碼或畫面訊息。
// 細節訊息以 pkg/errors 附加在哨兵錯誤之上，不影響 errors.Is 判斷。

package bank

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidArgument 代表金額非數值、非正數、初始餘額為負，或帳戶類型不在列舉內。
	// 對應 HTTP 400。
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInsufficientFunds 代表提款金額大於目前餘額。
	// 對應 HTTP 409。
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrNotFound 代表帳號不存在（查詢或刪除未知帳號）。
	// 對應 HTTP 404。
	ErrNotFound = errors.New("account not found")
)

// CreateError 保留開戶失敗的原因。
// 呼叫端若只在意成功與否，檢查 error 是否為 nil 即可；需要原因時用 errors.Is / errors.As。
type CreateError struct {
	Holder string
	Err    error
}

func (e *CreateError) Error() string {
	return "account creation failed: " + e.Err.Error()
}

func (e *CreateError) Unwrap() error { return e.Err }

func invalidArgument(msg string) error {
	return errors.WithMessage(ErrInvalidArgument, msg)
}
