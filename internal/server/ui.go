// internal/server/ui.go
//
// HTML 表單頁面：開戶、管理帳戶、帳戶清單。
// 頁面訊息沿用既有文案；領域錯誤經 report.Message 轉成句子。

package server

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"mybank/internal/bank"
	"mybank/internal/metrics"
	"mybank/internal/report"
	"mybank/pkg/log"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	msgNameRequired   = "Please enter an account holder name."
	msgCreateFailed   = "Account creation failed. Please check the input values."
	msgAccountMissing = "Account not found."
	msgNoAccount      = "Please enter an account number."
)

var msgNameTooLong = fmt.Sprintf("Account holder name must be at most %d characters.", bank.MaxHolderLength)

type flash struct {
	Kind string // success, warning, error
	Text string
}

type fieldRow struct {
	Name  string
	Value string
}

type txRow struct {
	Timestamp string
	Type      string
	Amount    string
}

type accountRow struct {
	Number      string
	Holder      string
	Type        bank.AccountType
	Balance     string
	CreatedDate bank.Date
}

// pageData 為所有頁面共用的模板資料，各頁只填自己需要的欄位。
type pageData struct {
	Title   string
	Tab     string
	Flashes []flash

	// create
	Form         createForm
	AccountTypes []bank.AccountType
	SelectedType bank.AccountType

	// manage
	AccountNumber string
	Account       *bank.Details
	Fields        []fieldRow
	History       []txRow

	// accounts
	Accounts []accountRow
}

func (p *pageData) add(kind, text string) {
	p.Flashes = append(p.Flashes, flash{Kind: kind, Text: text})
}

// parsePages 以 layout 為底，為每個頁面各自解析一份模板。
func parsePages() map[string]*template.Template {
	base := template.Must(template.ParseFS(templateFS, "templates/layout.html"))
	pages := make(map[string]*template.Template)
	for _, name := range []string{"create", "manage", "accounts"} {
		t := template.Must(base.Clone())
		pages[name] = template.Must(t.ParseFS(templateFS, "templates/"+name+".html"))
	}
	return pages
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, code int, page string, data *pageData) {
	data.Tab = page
	var buf bytes.Buffer
	if err := s.pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		log.FromContext(r.Context()).Error("failed to render page", "page", page, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = buf.WriteTo(w)
}

// index 將根路徑導向開戶頁；其他未知路徑回 404。
func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/create", http.StatusFound)
}

// createPage 處理：
//   - GET  /create → 空白表單
//   - POST /create → 開戶
func (s *Server) createPage(w http.ResponseWriter, r *http.Request) {
	data := &pageData{
		Title:        "Create Account",
		AccountTypes: bank.AccountTypes(),
		SelectedType: s.defaultType,
	}
	switch r.Method {
	case http.MethodGet:
		s.render(w, r, http.StatusOK, "create", data)
	case http.MethodPost:
		form := createForm{
			Name:           strings.TrimSpace(r.PostFormValue("name")),
			InitialBalance: strings.TrimSpace(r.PostFormValue("initial_balance")),
			AccountType:    r.PostFormValue("account_type"),
		}
		data.Form = form
		if t, err := bank.ParseAccountType(form.AccountType); err == nil && form.AccountType != "" {
			data.SelectedType = t
		}
		if err := s.validate.Struct(form); err != nil {
			data.add("warning", formMessage(err))
			s.render(w, r, http.StatusBadRequest, "create", data)
			return
		}

		id, err := s.createFromForm(form)
		s.metrics.ObserveOperation(metrics.OpCreate, err)
		if err != nil {
			log.FromContext(r.Context()).Debug("account creation failed", "holder", form.Name, "error", err)
			data.add("error", msgCreateFailed)
			s.render(w, r, http.StatusBadRequest, "create", data)
			return
		}
		s.changed()
		data.Form = createForm{}
		data.add("success", "Account created successfully! Account Number: "+id)
		s.render(w, r, http.StatusOK, "create", data)
	default:
		methodNotAllowed(w)
	}
}

// formMessage 將開戶表單的驗證錯誤轉為提示文字。
func formMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "holder" {
		return msgNameTooLong
	}
	return msgNameRequired
}

func (s *Server) createFromForm(form createForm) (string, error) {
	initial := decimal.Zero
	if form.InitialBalance != "" {
		d, err := bank.ParseAmount(form.InitialBalance)
		if err != nil {
			return "", err
		}
		initial = d
	}
	accountType := s.defaultType
	if form.AccountType != "" {
		t, err := bank.ParseAccountType(form.AccountType)
		if err != nil {
			return "", err
		}
		accountType = t
	}
	return s.ledger.CreateAccount(form.Name, initial, accountType)
}

// managePage 處理 GET /manage?account=<id>。
func (s *Server) managePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	id := strings.TrimSpace(r.URL.Query().Get("account"))
	data := &pageData{Title: "Manage Account", AccountNumber: id}
	if id == "" {
		s.render(w, r, http.StatusOK, "manage", data)
		return
	}
	a, err := s.lookup(id)
	if err != nil {
		data.add("error", msgAccountMissing)
		s.render(w, r, http.StatusNotFound, "manage", data)
		return
	}
	fillAccount(data, a)
	s.render(w, r, http.StatusOK, "manage", data)
}

// manageTransact 處理 POST /manage/transact（type = Deposit 或 Withdraw）。
func (s *Server) manageTransact(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	id := strings.TrimSpace(r.PostFormValue("account"))
	data := &pageData{Title: "Manage Account", AccountNumber: id}
	if id == "" {
		data.add("error", msgNoAccount)
		s.render(w, r, http.StatusBadRequest, "manage", data)
		return
	}
	a, err := s.lookup(id)
	if err != nil {
		data.add("error", msgAccountMissing)
		s.render(w, r, http.StatusNotFound, "manage", data)
		return
	}

	code := http.StatusOK
	amount, err := bank.ParseAmount(r.PostFormValue("amount"))
	if err == nil {
		switch kind := r.PostFormValue("type"); kind {
		case "Deposit", "":
			err = a.Deposit(amount)
			s.metrics.ObserveOperation(metrics.OpDeposit, err)
			if err == nil {
				data.add("success", fmt.Sprintf("Deposited %s. New balance: %s",
					report.FormatCurrency(amount), report.FormatCurrency(a.Balance())))
			}
		case "Withdraw":
			err = a.Withdraw(amount)
			s.metrics.ObserveOperation(metrics.OpWithdraw, err)
			if err == nil {
				data.add("success", fmt.Sprintf("Withdrew %s. New balance: %s",
					report.FormatCurrency(amount), report.FormatCurrency(a.Balance())))
			}
		default:
			err = bank.ErrInvalidArgument
		}
	}
	if err != nil {
		code = statusFor(err)
		data.add("error", report.Message(err))
	} else {
		s.changed()
	}
	fillAccount(data, a)
	s.render(w, r, code, "manage", data)
}

// manageDelete 處理 POST /manage/delete；完成後清空帳號欄位。
func (s *Server) manageDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	id := strings.TrimSpace(r.PostFormValue("account"))
	res := s.ledger.DeleteAccount(id)
	data := &pageData{Title: "Manage Account"}
	if !res.Found() {
		s.metrics.ObserveOperation(metrics.OpDelete, bank.ErrNotFound)
		data.AccountNumber = id
		data.add("error", string(res))
		s.render(w, r, http.StatusNotFound, "manage", data)
		return
	}
	s.metrics.ObserveOperation(metrics.OpDelete, nil)
	s.changed()
	data.add("success", string(res))
	s.render(w, r, http.StatusOK, "manage", data)
}

// accountsPage 處理 GET /accounts。
func (s *Server) accountsPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	data := &pageData{Title: "List All Accounts"}
	for _, d := range s.ledger.ListAccounts() {
		data.Accounts = append(data.Accounts, accountRow{
			Number:      d.Number,
			Holder:      d.Holder,
			Type:        d.Type,
			Balance:     report.FormatCurrency(d.Balance),
			CreatedDate: d.CreatedDate,
		})
	}
	s.render(w, r, http.StatusOK, "accounts", data)
}

// fillAccount 填入帳戶明細與交易紀錄（已格式化）。
func fillAccount(data *pageData, a *bank.Account) {
	d := a.Details()
	data.Account = &d
	for _, f := range d.Fields() {
		data.Fields = append(data.Fields, fieldRow{Name: f.Name, Value: report.FormatValue(f.Value)})
	}
	for _, tx := range a.History() {
		data.History = append(data.History, txRow{
			Timestamp: report.FormatTimestamp(tx.Timestamp),
			Type:      string(tx.Kind),
			Amount:    report.FormatCurrency(tx.Amount),
		})
	}
}
