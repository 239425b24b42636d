package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/rushteam/recserve/aggregate"
	"github.com/rushteam/recserve/catalog"
	"github.com/rushteam/recserve/config"
	"github.com/rushteam/recserve/core"
	"github.com/rushteam/recserve/filter"
	"github.com/rushteam/recserve/model"
	"github.com/rushteam/recserve/pkg/logger"
	"github.com/rushteam/recserve/pkg/metrics"
	"github.com/rushteam/recserve/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("starting recserve", "env", cfg.App.Environment)
	metrics.Init()

	db, err := catalog.Open(cfg.Database.DSN())
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	logger.Info("database connected")

	var cache *catalog.EngagementCache
	if cfg.Redis.Addr != "" {
		cache, err = catalog.NewEngagementCache(cfg.Redis.Addr, cfg.Redis.DB, cfg.Redis.TTL)
		if err != nil {
			// cache is an optimization, not a dependency
			logger.Warn("engagement cache disabled", "error", err)
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	store := catalog.NewStore(db, cache)
	registry := model.LoadRegistry(cfg.Models.Dir)

	var filters []filter.Filter
	if cfg.Recommend.FilterExpr != "" {
		f, err := filter.NewCELFilter(cfg.Recommend.FilterExpr)
		if err != nil {
			logger.Fatal("invalid RECOMMEND_FILTER expression", "error", err)
		}
		filters = append(filters, f)
	}

	var serialize []core.Signal
	for _, name := range cfg.Recommend.Serialize {
		sig, ok := core.ParseSignal(name)
		if !ok {
			logger.Fatal("unknown signal in RECOMMEND_SERIALIZE", "signal", name)
		}
		serialize = append(serialize, sig)
	}

	engine := aggregate.NewEngine(store, registry, cfg.Recommend.Deadline, aggregate.Options{
		Transactions: store,
		Filters:      filters,
		Serialize:    serialize,
	})

	e := echo.New()
	e.HideBanner = true
	e.JSONSerializer = server.JSONSerializer{}
	handler := server.NewRecommendationHandler(engine, validator.New())
	server.SetupRoutes(e, handler)

	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info("http server listening", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
