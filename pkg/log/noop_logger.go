package log

var _ Logger = NoopLogger{}

// NoopLogger 丟棄所有日誌，供測試或未注入 logger 時使用。
type NoopLogger struct{}

// NewNoopLogger 回傳不輸出任何內容的 Logger。
func NewNoopLogger() Logger { return NoopLogger{} }

func (NoopLogger) Debug(string, ...any) {}
func (NoopLogger) Info(string, ...any) {}
func (NoopLogger) Warn(string, ...any) {}
func (NoopLogger) Error(string, ...any) {}
func (NoopLogger) Fatal(string, ...any) {}
func (n NoopLogger) WithKV(string, any) Logger { return n }
func (n NoopLogger) WithName(string) Logger { return n }
func (NoopLogger) Name() string { return "noop" }
