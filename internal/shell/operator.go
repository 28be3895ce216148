// internal/shell/operator.go
//
// 互動式終端機介面：以 go-prompt 讀取指令，直接操作同一個 Ledger。
// 輸出與補字都是同步執行，一次只處理一個指令。

package shell

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"unicode"

	"github.com/c-bata/go-prompt"

	"mybank/internal/bank"
	"mybank/internal/report"
	"mybank/pkg/log"
)

// InputFunc 讀取一個額外參數；suggestions 為 nil 時為自由輸入。
type InputFunc func(name string, suggestions []prompt.Suggest) string

// Operator 以同一個 Ledger 執行終端機指令，並提供 go-prompt 補字。
type Operator struct {
	ledger      *bank.Ledger
	logger      log.Logger
	out         io.Writer
	input       InputFunc
	defaultType bank.AccountType

	exitCh   chan struct{}
	exitOnce sync.Once
}

// Option 調整 Operator 的可注入依賴。
type Option func(*Operator)

// WithOutput 替換輸出目的地（預設 os.Stdout）。
func WithOutput(w io.Writer) Option {
	return func(o *Operator) { o.out = w }
}

// WithInput 替換互動式參數讀取方式，測試時可注入固定回答。
func WithInput(in InputFunc) Option {
	return func(o *Operator) { o.input = in }
}

// WithLogger 注入 logger（預設不輸出）。
func WithLogger(lg log.Logger) Option {
	return func(o *Operator) { o.logger = lg }
}

// WithDefaultAccountType 設定 create 未指定類型時使用的帳戶類型。
func WithDefaultAccountType(t bank.AccountType) Option {
	return func(o *Operator) { o.defaultType = t }
}

// NewOperator 建立操作 l 的 Operator，預設輸出到 os.Stdout 並以子提示讀取缺少的參數。
func NewOperator(l *bank.Ledger, opts ...Option) *Operator {
	o := &Operator{
		ledger:      l,
		logger:      log.NewNoopLogger(),
		out:         os.Stdout,
		input:       readArg,
		defaultType: bank.Savings,
		exitCh:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.logger = o.logger.WithName("shell")
	return o
}

var commands = []prompt.Suggest{
	{Text: "create", Description: "Create a new account"},
	{Text: "show", Description: "Show account details"},
	{Text: "deposit", Description: "Deposit funds into an account"},
	{Text: "withdraw", Description: "Withdraw funds from an account"},
	{Text: "history", Description: "Show the transaction history of an account"},
	{Text: "delete", Description: "Delete an account"},
	{Text: "list", Description: "List all accounts"},
	{Text: "export", Description: "Export transactions as CSV, or a JSON statement when the path ends in .json"},
	{Text: "help", Description: "Show available commands"},
	{Text: "exit", Description: "Exit the application"},
}

// Complete 為 go-prompt 的補字函式：指令、帳號與帳戶類型。
func (o *Operator) Complete(d prompt.Document) []prompt.Suggest {
	return prompt.FilterHasPrefix(o.complete(d), d.GetWordBeforeCursor(), true)
}

func (o *Operator) complete(d prompt.Document) []prompt.Suggest {
	args := strings.Split(d.TextBeforeCursor(), " ")

	if len(args) < 2 {
		return commands
	}

	if len(args) < 3 {
		switch args[0] {
		case "show", "deposit", "withdraw", "history", "delete", "export":
			return o.getAccountSuggestions()
		default:
			return nil
		}
	}

	if len(args) == 4 && args[0] == "create" {
		return typeSuggestions()
	}
	return nil
}

// Execute 解析並執行一行指令。
func (o *Operator) Execute(s string) {
	args := splitArgs(s)
	if len(args) == 0 {
		return
	}

	switch args[0] {
	case "create":
		o.handleCreate(args)
	case "show":
		o.handleShow(args)
	case "deposit", "withdraw":
		o.handleTransact(args)
	case "history":
		o.handleHistory(args)
	case "delete":
		o.handleDelete(args)
	case "list":
		report.RenderAccounts(o.out, o.ledger.ListAccounts())
	case "export":
		o.handleExport(args)
	case "help":
		o.handleHelp()
	case "exit":
		o.exit()
	default:
		o.printf("Unknown command: %s\n", s)
	}
}

// splitArgs 以空白切分參數；雙引號內的空白不切分，例如 create "Alice Smith" 100。
func splitArgs(s string) []string {
	quoted := false
	fields := strings.FieldsFunc(s, func(r rune) bool {
		if r == '"' {
			quoted = !quoted
		}
		return !quoted && unicode.IsSpace(r)
	})
	for i, f := range fields {
		fields[i] = strings.ReplaceAll(f, `"`, "")
	}
	return fields
}

// Wait 回傳在使用者輸入 exit 後關閉的 channel。
func (o *Operator) Wait() <-chan struct{} {
	// Wait for exit signal
	return o.exitCh
}

func (o *Operator) exit() {
	o.exitOnce.Do(func() { close(o.exitCh) })
}

func (o *Operator) printf(format string, a ...any) {
	fmt.Fprintf(o.out, format, a...)
}

// getAccountSuggestions returns the known account numbers, described by holder and balance.
func (o *Operator) getAccountSuggestions() []prompt.Suggest {
	accounts := o.ledger.ListAccounts()
	s := make([]prompt.Suggest, 0, len(accounts))
	for _, d := range accounts {
		s = append(s, prompt.Suggest{
			Text:        d.Number,
			Description: fmt.Sprintf("%s (%s)", d.Holder, report.FormatCurrency(d.Balance)),
		})
	}
	return s
}

func typeSuggestions() []prompt.Suggest {
	types := bank.AccountTypes()
	s := make([]prompt.Suggest, len(types))
	for i, t := range types {
		s[i] = prompt.Suggest{Text: string(t), Description: string(t) + " account"}
	}
	return s
}

// readArg 以子提示讀取一個參數；有 suggestions 時提供補字。
func readArg(name string, suggestions []prompt.Suggest) string {
	completer := func(d prompt.Document) []prompt.Suggest {
		if suggestions == nil || len(strings.Split(d.TextBeforeCursor(), " ")) > 1 {
			return []prompt.Suggest{}
		}
		return prompt.FilterHasPrefix(suggestions, d.GetWordBeforeCursor(), true)
	}

	promptPrefix := fmt.Sprintf("{%s}>>> ", name)
	return prompt.Input(promptPrefix, completer, getStyleOptions()...)
}
