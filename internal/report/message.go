// internal/report/message.go

package report

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"mybank/internal/bank"
)

// Message 將領域錯誤轉為顯示給使用者的句子，
// 例如 "deposit amount must be positive: invalid argument" → "Deposit amount must be positive."
func Message(err error) string {
	switch {
	case errors.Is(err, bank.ErrInsufficientFunds):
		return "Insufficient funds."
	case errors.Is(err, bank.ErrNotFound):
		return string(bank.DeleteNotFound)
	case errors.Is(err, bank.ErrInvalidArgument):
		return sentence(strings.TrimSuffix(err.Error(), ": "+bank.ErrInvalidArgument.Error()))
	default:
		return sentence(err.Error())
	}
}

func sentence(s string) string {
	if s == "" {
		return s
	}
	r, n := utf8.DecodeRuneInString(s)
	s = string(unicode.ToUpper(r)) + s[n:]
	if !strings.HasSuffix(s, ".") {
		s += "."
	}
	return s
}
