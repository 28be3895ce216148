// internal/server/router.go
//
// 本檔負責 HTTP 路由註冊與中介層組裝。
//   - handler.go / ui.go 定義「如何處理請求」
//   - router.go 定義「請求如何被導向」
package server

import "net/http"

// Router 建立並回傳整個 HTTP 處理鏈。
// 順序：logging → serialize → 路由；CORS 只包在 /api/v1 外層。
func (s *Server) Router() http.Handler {
	v1 := http.NewServeMux()

	// 健康檢查：可供監控或 liveness probe 使用。
	v1.HandleFunc("/health", s.health)

	// 帳戶操作：
	//   - GET  /accounts          → 列出帳戶
	//   - POST /accounts          → 建立帳戶
	v1.HandleFunc("/accounts", s.accounts)

	// 帳戶子操作，見 accountSubroutes。
	v1.HandleFunc("/accounts/", s.accountSubroutes)

	root := http.NewServeMux()
	root.Handle("/api/v1/", s.corsMiddleware(http.StripPrefix("/api/v1", v1)))
	root.HandleFunc("/health", s.health)

	// 表單頁面
	root.HandleFunc("/", s.index)
	root.HandleFunc("/create", s.createPage)
	root.HandleFunc("/manage", s.managePage)
	root.HandleFunc("/manage/transact", s.manageTransact)
	root.HandleFunc("/manage/delete", s.manageDelete)
	root.HandleFunc("/accounts", s.accountsPage)

	return s.loggingMiddleware(s.serializeMiddleware(root))
}
