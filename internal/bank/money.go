// internal/bank/money.go
//
// 邊界輸入轉換：把使用者輸入的文字轉成靜態型別（decimal、AccountType），
// 非法輸入一律以 ErrInvalidArgument 回報。範圍檢查（>0、>=0）留在 Account 操作內。

package bank

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount 解析金額文字，例如 "150"、"99.95"。
// 空字串、非數值、含多餘字元或超出 CheckAmount 範圍皆視為 ErrInvalidArgument。
func ParseAmount(text string) (decimal.Decimal, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return decimal.Zero, invalidArgument("amount is required")
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, invalidArgument("amount must be a number")
	}
	if err := CheckAmount(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

const (
	// MaxAmountScale 金額最多兩位小數。
	MaxAmountScale = 2
	// MaxAmountIntegerDigits 金額整數部分最多 15 位。
	MaxAmountIntegerDigits = 15

	// 粗篩上限：指數或係數超過此範圍時不做任何換算
	maxAmountExponent  = 32
	maxCoefficientBits = 128
)

var maxAmount = decimal.New(1, MaxAmountIntegerDigits)

// CheckAmount 檢查金額的位數與小數位數，不檢查正負。
// 係數與指數先行粗篩，極端值（例如 1e20000000）不會被展開成字串或重新縮放。
func CheckAmount(d decimal.Decimal) error {
	exp := int(d.Exponent())
	if exp > MaxAmountIntegerDigits || exp < -maxAmountExponent || d.Coefficient().BitLen() > maxCoefficientBits {
		return invalidArgument("amount is out of range")
	}
	if !d.Equal(d.Truncate(MaxAmountScale)) {
		return invalidArgument("amount cannot have more than 2 decimal places")
	}
	if d.Abs().GreaterThanOrEqual(maxAmount) {
		return invalidArgument("amount is out of range")
	}
	return nil
}

// ParseAccountType 解析帳戶類型；空字串代表預設的 Savings。
// 比對不分大小寫，回傳標準寫法。
func ParseAccountType(text string) (AccountType, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Savings, nil
	}
	for _, t := range AccountTypes() {
		if strings.EqualFold(string(t), text) {
			return t, nil
		}
	}
	return "", invalidArgument("unknown account type " + text)
}
