package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/productreport/internal/config"
	"github.com/mamadbah2/productreport/internal/repository/logfile"
	"github.com/mamadbah2/productreport/internal/repository/memory"
	"github.com/mamadbah2/productreport/internal/repository/mongodb"
	"github.com/mamadbah2/productreport/internal/repository/sheets"
	"github.com/mamadbah2/productreport/internal/server/handlers"
	"github.com/mamadbah2/productreport/internal/server/router"
	commandsvc "github.com/mamadbah2/productreport/internal/service/commands"
	"github.com/mamadbah2/productreport/internal/service/reporting"
	"github.com/mamadbah2/productreport/pkg/clients/webhook"
	"github.com/mamadbah2/productreport/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	var (
		mirrors []commandsvc.Mirror
		history handlers.History
	)

	if cfg.MongoDB.URI != "" {
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		mirrors = append(mirrors, mongoRepo)
		baseLogger.Info("mongodb report archive enabled", zap.String("db", cfg.MongoDB.DBName))
	}

	if cfg.Sheets.Enabled() {
		table, err := sheets.NewSheetTable(context.Background(), cfg.Sheets, sheets.ReportsRange, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sheetMirror := sheets.NewReportMirror(table)
		mirrors = append(mirrors, sheetMirror)
		history = sheetMirror
		baseLogger.Info("google sheets report mirror enabled")
	}

	if cfg.Notify.WebhookURL != "" {
		mirrors = append(mirrors, webhook.NewClient(cfg.Notify.WebhookURL))
		baseLogger.Info("webhook notifications enabled")
	} else {
		baseLogger.Warn("notify webhook url missing, report notifications disabled")
	}

	store := memory.NewSampleStore()
	engine := reporting.NewEngine(cfg.Reporting.LowStockThreshold)
	sink := logfile.NewSink(cfg.Reporting.LogPath, logger.Named(baseLogger, "repo.logfile"))

	reportSvc := commandsvc.NewService(engine, store, sink, logger.Named(baseLogger, "svc.reports"), mirrors...)
	reportHandler := handlers.NewReportHandler(reportSvc, logger.Named(baseLogger, "handlers.reports"))
	if history != nil {
		reportHandler.WithHistory(history)
	}
	routerEngine := router.New(reportHandler, logger.Named(baseLogger, "router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      routerEngine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("report_log", sink.Path()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
