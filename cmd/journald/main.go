package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tradejournal/internal/config"
	cronrunner "tradejournal/internal/cron"
	"tradejournal/internal/db"
	"tradejournal/internal/form"
	"tradejournal/internal/handler"
	"tradejournal/internal/logger"
	"tradejournal/internal/service"
	"tradejournal/internal/store"
	"tradejournal/internal/store/docstore"
	"tradejournal/internal/store/memstore"
)

func main() {
	cfgPath := os.Getenv("TJ_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("TJ_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	var (
		tradeStore store.Store
		dbConn     *db.DB
	)
	if strings.EqualFold(cfg.DB.Driver, "memory") {
		tradeStore = memstore.New()
		logger.Info("using in-memory store")
	} else {
		dbConn, err = db.Open(cfg.DB)
		if err != nil {
			logger.Fatal("db open failed", zap.Error(err))
		}
		defer db.Close(dbConn)
		if err := db.AutoMigrate(dbConn); err != nil {
			logger.Fatal("auto-migrate failed", zap.Error(err))
		}
		tradeStore = docstore.New(dbConn.Gorm, logger)
		logger.Info("using database store", zap.String("driver", cfg.DB.Driver))
	}

	feed := &service.TradeFeed{Store: tradeStore, Logger: logger}
	stopFeed := feed.Start(nil)
	defer stopFeed()

	writer := &service.TradeWriter{Store: tradeStore, Feed: feed, Logger: logger}
	statsSvc := &service.StatsService{Store: tradeStore, Logger: logger}
	adapter := form.Adapter{Policy: form.ParsePolicy(cfg.Form.Validation)}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{}
	if dbConn != nil {
		healthHandler.DB = dbConn.Gorm
	}
	healthHandler.Register(engine)

	tradeHandler := &handler.TradeHandler{
		Feed:    feed,
		Writer:  writer,
		Adapter: adapter,
		Logger:  logger,
	}
	tradeHandler.Register(engine)

	statsHandler := &handler.StatsHandler{Stats: statsSvc}
	statsHandler.Register(engine)

	feedHandler := &handler.FeedHandler{
		Feed:         feed,
		Logger:       logger,
		WriteTimeout: cfg.Feed.WriteTimeout,
	}
	feedHandler.Register(engine)

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Cron.Enabled {
		cronRunner := cronrunner.New(logger, ctx)
		if _, err := cronRunner.Add(cfg.Cron.DailyStats, statsSvc.LogDaily); err != nil {
			logger.Warn("cron register daily stats failed", zap.Error(err))
		}
		cronRunner.Start()
		defer cronRunner.Stop()
	}

	errCh := make(chan error, 2)

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
