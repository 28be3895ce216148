// pkg/log/types.go

package log

// Logger 為結構化日誌介面。
// keysAndValues 以成對方式傳入（例如 "account", id, "amount", amt）。
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
	// Fatal 記錄後結束程式（NoopLogger 除外）。
	Fatal(msg string, keysAndValues ...any)

	// WithKV 回傳附帶固定鍵值的新 logger，原 logger 不受影響。
	WithKV(key string, value any) Logger
	// WithName 以 "." 串接子系統名稱，例如 "server.http"。
	WithName(name string) Logger
	Name() string
}

// Level 日誌等級。
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
	LevelFatal Level = "fatal"
)
