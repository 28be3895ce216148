package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mybank/internal/bank"
	"mybank/pkg/log"
)

var managedEnv = []string{
	ConfigDirPathEnv,
	"MYBANK_HTTP_ADDR",
	"MYBANK_CORS_ORIGINS",
	"MYBANK_SHUTDOWN_TIMEOUT",
	"MYBANK_METRICS_ENABLED",
	"MYBANK_METRICS_ADDR",
	"MYBANK_DEFAULT_ACCOUNT_TYPE",
	"LOG_FORMAT",
	"LOG_LEVEL",
	"LOG_OUTPUT",
}

// clearEnv 清掉相關環境變數；測試結束後由 t.Setenv 還原。
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range managedEnv {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	conf, err := Load(t.TempDir(), log.NewNoopLogger())
	require.NoError(t, err)

	assert.Equal(t, ":8080", conf.HTTPAddr)
	assert.Equal(t, []string{"*"}, conf.CORSOrigins)
	assert.Equal(t, 5*time.Second, conf.ShutdownTimeout)
	assert.True(t, conf.MetricsEnabled)
	assert.Equal(t, ":4242", conf.MetricsAddr)
	assert.Equal(t, bank.Savings, conf.AccountType())
	assert.Equal(t, "console", conf.Log.Format)
	assert.Equal(t, log.LevelInfo, conf.Log.Level)
	assert.Equal(t, "stderr", conf.Log.Output)
}

func TestLoadFromDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	dotEnv := "MYBANK_HTTP_ADDR=127.0.0.1:9000\n" +
		"MYBANK_CORS_ORIGINS=http://a.test,http://b.test\n" +
		"MYBANK_METRICS_ENABLED=false\n" +
		"MYBANK_DEFAULT_ACCOUNT_TYPE=checking\n" +
		"LOG_FORMAT=json\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(dotEnv), 0o600))

	// 已存在的環境變數優先於 .env
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MYBANK_SHUTDOWN_TIMEOUT", "250ms")

	conf, err := Load(dir, nil)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", conf.HTTPAddr)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, conf.CORSOrigins)
	assert.False(t, conf.MetricsEnabled)
	assert.Equal(t, bank.Checking, conf.AccountType())
	assert.Equal(t, "json", conf.Log.Format)
	assert.Equal(t, log.LevelDebug, conf.Log.Level)
	assert.Equal(t, 250*time.Millisecond, conf.ShutdownTimeout)
}

func TestLoadDirFromEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MYBANK_METRICS_ADDR=:9999\n"), 0o600))
	t.Setenv(ConfigDirPathEnv, dir)

	conf, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, ":9999", conf.MetricsAddr)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("MYBANK_DEFAULT_ACCOUNT_TYPE", "Brokerage")
	_, err := Load(t.TempDir(), nil)
	assert.ErrorIs(t, err, bank.ErrInvalidArgument)

	clearEnv(t)
	t.Setenv("MYBANK_SHUTDOWN_TIMEOUT", "0s")
	_, err = Load(t.TempDir(), nil)
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("MYBANK_METRICS_ENABLED", "maybe")
	_, err = Load(t.TempDir(), nil)
	assert.Error(t, err)
}
