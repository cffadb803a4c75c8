package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"webapp/internal/config"
	"webapp/internal/db"
	apihttp "webapp/internal/http"
	"webapp/internal/logging"
	"webapp/internal/metrics"
	"webapp/internal/repository"
	"webapp/internal/security"
	"webapp/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.MigrateOnStart {
		if err := migrate(ctx, cfg, logger); err != nil {
			logger.Fatal("db migrate", zap.Error(err))
		}
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewPrometheusRecorder(reg, cfg.MetricsNamespace)

	userRepo := repository.NewPgUserRepository(pool)
	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	userSvc := service.NewUserService(logger, userRepo, hasher, cfg.DBQueryTimeout)

	gin.SetMode(gin.ReleaseMode)
	router := apihttp.NewRouter(apihttp.RouterDeps{
		Logger:         logger,
		Users:          apihttp.NewUserHandler(logger, userSvc),
		Health:         apihttp.NewHealthHandler(logger, recorder, pool),
		Auth:           apihttp.BasicAuthMiddleware(logger, userSvc),
		Observer:       recorder,
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	grp, ctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		logger.Info("starting server", zap.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	grp.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down server")
		return server.Shutdown(shutdownCtx)
	})

	if err := grp.Wait(); err != nil {
		logger.Error("server error", zap.Error(err))
	}
}

func migrate(ctx context.Context, cfg *config.Config, logger *zap.Logger) (err error) {
	handle, err := db.OpenSQL(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, handle.Close())
	}()
	return db.MigrateUp(ctx, handle, logger)
}
