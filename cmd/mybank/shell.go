// cmd/mybank/shell.go

package main

import (
	"context"

	"gopkg.in/urfave/cli.v1"

	"mybank/internal/bank"
	"mybank/internal/shell"
)

var shellCommand = cli.Command{
	Name:   "shell",
	Usage:  "Start an interactive shell over a fresh ledger",
	Action: shellAction,
}

func shellAction(ctx *cli.Context) error {
	conf, logger, err := setup(ctx)
	if err != nil {
		return err
	}

	ledger := bank.NewLedger(bank.WithLogger(logger))
	op := shell.NewOperator(ledger,
		shell.WithLogger(logger),
		shell.WithDefaultAccountType(conf.AccountType()),
	)
	shell.Run(context.Background(), op)
	return nil
}
