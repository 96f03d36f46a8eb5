package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/mamadbah2/labshare/internal/config"
	"github.com/mamadbah2/labshare/internal/metrics"
	"github.com/mamadbah2/labshare/internal/repository/mongodb"
	"github.com/mamadbah2/labshare/internal/repository/sheets"
	"github.com/mamadbah2/labshare/internal/scheduler"
	"github.com/mamadbah2/labshare/internal/server/handlers"
	"github.com/mamadbah2/labshare/internal/server/router"
	"github.com/mamadbah2/labshare/internal/server/views"
	catalogsvc "github.com/mamadbah2/labshare/internal/service/catalog"
	reportingsvc "github.com/mamadbah2/labshare/internal/service/reporting"
	"github.com/mamadbah2/labshare/pkg/clients/facts"
	"github.com/mamadbah2/labshare/pkg/logger"
)

type options struct {
	EnvFile string `long:"env-file" description:"Path to a .env file (defaults to ./.env when present)"`
	Args    struct {
		Port string `positional-arg-name:"PORT" description:"Port to listen on (overrides APP_PORT)"`
	} `positional-args:"yes"`
}

func main() {
	var opts options
	if _, err := flags.NewParser(&opts, flags.Default).Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	cfg, err := config.Load(opts.EnvFile, opts.Args.Port)
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)
	prometheus.MustRegister(metrics.Collectors()...)

	// Connections are opened and closed per store operation; see mongodb.MongoDBRepository.
	mongoRepo := mongodb.NewMongoDBRepository(mongodb.URIDialer{
		URI:            cfg.MongoDB.URI,
		DBName:         cfg.MongoDB.DBName,
		Collection:     cfg.MongoDB.Collection,
		ConnectTimeout: cfg.MongoDB.ConnectTimeout,
	}, baseLogger.Named("repo.mongodb"))

	pingCtx, cancelPing := context.WithTimeout(context.Background(), cfg.MongoDB.ConnectTimeout+5*time.Second)
	if err := mongoRepo.Ping(pingCtx); err != nil {
		baseLogger.Warn("mongodb not reachable at startup", zap.Error(err))
	}
	cancelPing()

	catalogSvc := catalogsvc.NewService(mongoRepo, baseLogger.Named("svc.catalog"))
	factsClient := facts.NewClient(cfg.Facts)

	var sheetsRepo sheets.Repository
	if cfg.Sheets.Enabled() {
		repo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sheetsRepo = repo
		baseLogger.Info("google sheets export enabled", zap.String("range", cfg.Sheets.Range))
	} else {
		baseLogger.Info("google sheets export disabled")
	}

	reportingSvc := reportingsvc.NewService(mongoRepo, sheetsRepo, baseLogger.Named("svc.reporting"))
	sched, err := scheduler.NewScheduler(cfg.Reporting, reportingSvc, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	tmpl, err := views.Load()
	if err != nil {
		baseLogger.Fatal("failed to load templates", zap.Error(err))
	}

	engine := router.New(router.Handlers{
		Materials: handlers.NewMaterialHandler(catalogSvc, baseLogger.Named("handlers.materials")),
		Facts:     handlers.NewFactsHandler(factsClient, baseLogger.Named("handlers.facts")),
		Health:    handlers.NewHealthHandler(mongoRepo, baseLogger.Named("handlers.health")),
	}, tmpl, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		fmt.Printf("To access server: http://localhost:%s\n", cfg.Server.Port)
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
