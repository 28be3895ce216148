// pkg/log/context.go

package log

import "context"

type contextKey struct{}

// SetContextLogger 將 logger 掛到 context 上，供 HTTP handler 取得帶有請求資訊的 logger。
// lg 為 nil 時改存 NoopLogger。
func SetContextLogger(ctx context.Context, lg Logger) context.Context {
	if lg == nil {
		lg = NewNoopLogger()
	}
	return context.WithValue(ctx, contextKey{}, lg)
}

// FromContext 取出 context 內的 logger；找不到時回傳 NoopLogger。
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(contextKey{}).(Logger); ok {
		return l
	}
	return NewNoopLogger()
}
