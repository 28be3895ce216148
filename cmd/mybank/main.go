// cmd/mybank/main.go

// mybank 為記憶體內的銀行帳本，提供網頁表單、JSON API 與互動式 shell。
// 此檔案負責組裝命令列：serve（預設）與 shell 兩個子命令。
package main

import (
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/urfave/cli.v1"

	"mybank/internal/config"
	"mybank/pkg/log"
)

const version = "0.1.0"

var (
	app = cli.NewApp()

	// bootLogger 在設定載入前使用，輸出到 stderr
	bootLogger = log.NewZapLogger(log.Config{Format: "console", Level: log.LevelInfo, Output: "stderr"}).WithName("boot")

	configDirFlag = cli.StringFlag{
		Name:   "config-dir",
		Usage:  "directory containing the .env file",
		EnvVar: config.ConfigDirPathEnv,
	}
)

func init() {
	app.Name = filepath.Base(os.Args[0])
	app.Version = version
	app.Usage = "in-memory banking ledger with a web UI and an interactive shell"

	app.Commands = []cli.Command{
		serveCommand,
		shellCommand,
	}
	sort.Sort(cli.CommandsByName(app.Commands))

	app.Flags = []cli.Flag{configDirFlag}
	app.Action = serveAction
}

func main() {
	if err := app.Run(os.Args); err != nil {
		bootLogger.Fatal("mybank exited", "error", err)
	}
}

// setup 讀取設定並依設定建立 logger。
// 設定讀取期間與啟動失敗時使用 bootLogger。
func setup(ctx *cli.Context) (*config.Config, log.Logger, error) {
	conf, err := config.Load(ctx.GlobalString(configDirFlag.Name), bootLogger)
	if err != nil {
		return nil, nil, err
	}
	return conf, log.NewZapLogger(conf.Log).WithName("mybank"), nil
}
