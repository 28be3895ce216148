// internal/server/validate.go

package server

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"mybank/internal/bank"
)

func newValidator() *validator.Validate {
	validate := validator.New()

	// 錯誤訊息使用 JSON 欄位名稱
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})

	if err := validate.RegisterValidation("accounttype", func(fl validator.FieldLevel) bool {
		_, err := bank.ParseAccountType(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(fmt.Sprintf("failed to register accounttype validation: %v", err))
	}

	// amount：位數與小數位數在 bank.CheckAmount 的範圍內（正負由 bank 判斷）
	if err := validate.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		return ok && bank.CheckAmount(d) == nil
	}); err != nil {
		panic(fmt.Sprintf("failed to register amount validation: %v", err))
	}

	if err := validate.RegisterValidation("holder", func(fl validator.FieldLevel) bool {
		return !bank.HolderTooLong(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("failed to register holder validation: %v", err))
	}
	return validate
}

// createAccountRequest 為 POST /accounts 的內容。
// initial_balance 省略時視為 0。
type createAccountRequest struct {
	Name           string           `json:"name" validate:"required,holder"`
	InitialBalance *decimal.Decimal `json:"initial_balance" validate:"omitempty,amount"`
	AccountType    string           `json:"account_type" validate:"omitempty,accounttype"`
}

type amountRequest struct {
	Amount *decimal.Decimal `json:"amount" validate:"required,amount"`
}

// createForm 為開戶表單欄位；數值欄位保留原始文字，交給 bank.ParseAmount 解析。
type createForm struct {
	Name           string `validate:"required,holder"`
	InitialBalance string
	AccountType    string
}

// validationMessage 把 validator 的錯誤轉成單行訊息，例如 "name is required"。
func validationMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "accounttype":
			msgs = append(msgs, fmt.Sprintf("unknown account type %q", fe.Value()))
		case "holder":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %d characters", field, bank.MaxHolderLength))
		case "amount":
			msgs = append(msgs, fmt.Sprintf("%s must have at most %d decimal places and %d integer digits",
				field, bank.MaxAmountScale, bank.MaxAmountIntegerDigits))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
