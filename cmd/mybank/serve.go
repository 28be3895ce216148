// cmd/mybank/serve.go

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/urfave/cli.v1"

	"mybank/internal/bank"
	"mybank/internal/metrics"
	"mybank/internal/server"
)

var serveCommand = cli.Command{
	Name:   "serve",
	Usage:  "Run the web UI and JSON API",
	Action: serveAction,
}

func serveAction(ctx *cli.Context) error {
	conf, logger, err := setup(ctx)
	if err != nil {
		return err
	}

	ledger := bank.NewLedger(bank.WithLogger(logger))

	var m *metrics.Metrics
	var metricsSrv *http.Server
	if conf.MetricsEnabled {
		m = metrics.New()
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		metricsSrv = &http.Server{Addr: conf.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			logger.Info("metrics server listening", "addr", conf.MetricsAddr)
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	s := server.NewServer(ledger,
		server.WithLogger(logger),
		server.WithMetrics(m),
		server.WithDefaultAccountType(conf.AccountType()),
		server.WithCORSOrigins(conf.CORSOrigins),
	)
	httpSrv := &http.Server{Addr: conf.HTTPAddr, Handler: s.Router(), ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("bank server listening", "addr", conf.HTTPAddr)
		errCh <- httpSrv.ListenAndServe()
	}()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-sigCtx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "http server")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), conf.ShutdownTimeout)
	defer cancel()
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics server shutdown", "error", err)
		}
	}
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	logger.Info("server stopped", "accounts", ledger.Len())
	return nil
}
