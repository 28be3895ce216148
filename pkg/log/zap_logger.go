// pkg/log/zap_logger.go
//
// 以 zap 實作 Logger。
// 支援三種輸出格式（console / logfmt / json）與三種目的地（stderr / stdout / 檔案）。
// 寫入檔案時交由 lumberjack 負責輪替，避免單一日誌檔無限成長。

package log

import (
	"os"
	"path/filepath"
	"time"

	zaplogfmt "github.com/jsternberg/zap-logfmt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var _ Logger = &ZapLogger{}

// ZapLogger 為 Logger 的 zap 實作。
type ZapLogger struct {
	lg *zap.SugaredLogger
}

// Config 可直接交給 cleanenv 讀取環境變數。
type Config struct {
	Format string `env:"LOG_FORMAT" env-default:"console"` // console, logfmt, json
	Level  Level  `env:"LOG_LEVEL" env-default:"info"`     // debug, info, warn, error, fatal
	Output string `env:"LOG_OUTPUT" env-default:"stderr"`  // stderr, stdout 或檔案路徑

	// 以下僅在 Output 為檔案路徑時生效
	MaxSizeMB  int  `env:"LOG_MAX_SIZE_MB" env-default:"100"`
	MaxBackups int  `env:"LOG_MAX_BACKUPS" env-default:"10"`
	MaxAgeDays int  `env:"LOG_MAX_AGE_DAYS" env-default:"30"`
	Compress   bool `env:"LOG_COMPRESS" env-default:"true"`
}

// NewZapLogger 依設定建立 logger。
// extraWriters 會與主要輸出一起寫入，測試時可藉此攔截日誌內容。
func NewZapLogger(conf Config, extraWriters ...zapcore.WriteSyncer) Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = func(ts time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(ts.UTC().Format(time.RFC3339))
	}

	var encoder zapcore.Encoder
	switch conf.Format {
	case "logfmt":
		encoder = zaplogfmt.NewEncoder(encCfg)
	case "json":
		encoder = zapcore.NewJSONEncoder(encCfg)
	default:
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	wss := zapcore.NewMultiWriteSyncer(append(extraWriters, outputSyncer(conf))...)
	core := zapcore.NewCore(encoder, wss, toZapLevel(conf.Level))

	// AddCallerSkip(2)：略過 Info → log 兩層包裝
	zl := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2)).Sugar()
	return &ZapLogger{lg: zl}
}

func outputSyncer(conf Config) zapcore.WriteSyncer {
	switch conf.Output {
	case "", "stderr":
		return zapcore.Lock(os.Stderr)
	case "stdout":
		return zapcore.Lock(os.Stdout)
	}

	// 目錄建立失敗時退回 stderr，不讓日誌設定錯誤阻擋服務啟動
	if err := os.MkdirAll(filepath.Dir(conf.Output), 0o755); err != nil {
		return zapcore.Lock(os.Stderr)
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   conf.Output,
		MaxSize:    conf.MaxSizeMB,
		MaxBackups: conf.MaxBackups,
		MaxAge:     conf.MaxAgeDays,
		Compress:   conf.Compress,
		LocalTime:  true,
	})
}

func (l *ZapLogger) Debug(msg string, keysAndValues ...any) { l.log(LevelDebug, msg, keysAndValues...) }
func (l *ZapLogger) Info(msg string, keysAndValues ...any) { l.log(LevelInfo, msg, keysAndValues...) }
func (l *ZapLogger) Warn(msg string, keysAndValues ...any) { l.log(LevelWarn, msg, keysAndValues...) }
func (l *ZapLogger) Error(msg string, keysAndValues ...any) { l.log(LevelError, msg, keysAndValues...) }
func (l *ZapLogger) Fatal(msg string, keysAndValues ...any) { l.log(LevelFatal, msg, keysAndValues...) }

func (l *ZapLogger) log(level Level, msg string, keysAndValues ...any) {
	l.lg.Logw(toZapLevel(level), msg, keysAndValues...)
}

// WithKV 回傳帶有額外鍵值的新 logger。
func (l *ZapLogger) WithKV(key string, value any) Logger {
	return &ZapLogger{lg: l.lg.With(key, value)}
}

// WithName 以 "." 串接子系統名稱。
func (l *ZapLogger) WithName(name string) Logger {
	return &ZapLogger{lg: l.lg.Named(name)}
}

func (l *ZapLogger) Name() string {
	return l.lg.Desugar().Name()
}

func toZapLevel(level Level) zapcore.Level {
	switch level {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	case LevelFatal:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}
