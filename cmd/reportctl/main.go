package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/mamadbah2/productreport/internal/config"
	"github.com/mamadbah2/productreport/internal/console"
	"github.com/mamadbah2/productreport/internal/repository/logfile"
	"github.com/mamadbah2/productreport/internal/repository/memory"
	commandsvc "github.com/mamadbah2/productreport/internal/service/commands"
	"github.com/mamadbah2/productreport/internal/service/reporting"
	"github.com/mamadbah2/productreport/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.NewConsole())
	defer func() { _ = baseLogger.Sync() }()

	engine := reporting.NewEngine(cfg.Reporting.LowStockThreshold)
	sink := logfile.NewSink(cfg.Reporting.LogPath, logger.Named(baseLogger, "repo.logfile"))
	reportSvc := commandsvc.NewService(engine, memory.NewSampleStore(), sink, logger.Named(baseLogger, "svc.reports"))

	admin := console.Admin{ID: "A001", Name: "John Doe"}
	session := console.NewSession(admin, console.NewReportGenerator(reportSvc), os.Stdin, os.Stdout, logger.Named(baseLogger, "console"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := session.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		baseLogger.Error("console session ended", zap.Error(err))
		os.Exit(1)
	}
}
