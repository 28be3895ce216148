// internal/config/config.go
//
// 設定來源：<config dir>/.env（可選）→ 環境變數 → 預設值。
// .env 不會覆蓋已存在的環境變數。

package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"mybank/internal/bank"
	"mybank/pkg/log"
)

const (
	ConfigDirPathEnv     = "MYBANK_CONFIG_DIR_PATH"
	defaultConfigDirPath = "."
)

// Config represents the overall application configuration
type Config struct {
	HTTPAddr        string        `env:"MYBANK_HTTP_ADDR" env-default:":8080"`
	CORSOrigins     []string      `env:"MYBANK_CORS_ORIGINS" env-default:"*" env-separator:","`
	ShutdownTimeout time.Duration `env:"MYBANK_SHUTDOWN_TIMEOUT" env-default:"5s"`

	MetricsEnabled bool   `env:"MYBANK_METRICS_ENABLED" env-default:"true"`
	MetricsAddr    string `env:"MYBANK_METRICS_ADDR" env-default:":4242"`

	// 開戶表單與 shell 未指定類型時使用
	DefaultAccountType string `env:"MYBANK_DEFAULT_ACCOUNT_TYPE" env-default:"Savings"`

	Log log.Config
}

// AccountType 回傳已驗證的預設帳戶類型。
func (c *Config) AccountType() bank.AccountType {
	t, err := bank.ParseAccountType(c.DefaultAccountType)
	if err != nil {
		return bank.Savings
	}
	return t
}

// Load builds configuration from the .env file in dir and environment variables.
// dir 為空時改用 MYBANK_CONFIG_DIR_PATH，再退回目前目錄。
func Load(dir string, logger log.Logger) (*Config, error) {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	logger = logger.WithName("config")

	if dir == "" {
		dir = os.Getenv(ConfigDirPathEnv)
	}
	if dir == "" {
		dir = defaultConfigDirPath
	}

	dotEnvPath := filepath.Join(dir, ".env")
	logger.Info("loading .env file", "path", dotEnvPath)
	if err := godotenv.Load(dotEnvPath); err != nil {
		logger.Warn(".env file not found", "path", dotEnvPath)
	}

	var conf Config
	if err := cleanenv.ReadEnv(&conf); err != nil {
		logger.Error("failed to read env", "err", err)
		return nil, errors.Wrap(err, "read env")
	}

	if _, err := bank.ParseAccountType(conf.DefaultAccountType); err != nil {
		return nil, errors.Wrap(err, "MYBANK_DEFAULT_ACCOUNT_TYPE")
	}
	if conf.ShutdownTimeout <= 0 {
		return nil, errors.Errorf("MYBANK_SHUTDOWN_TIMEOUT must be positive, got %s", conf.ShutdownTimeout)
	}

	logger.Info("configuration loaded",
		"http_addr", conf.HTTPAddr,
		"metrics_enabled", conf.MetricsEnabled,
		"default_account_type", conf.DefaultAccountType,
	)
	return &conf, nil
}
