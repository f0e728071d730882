package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"task-tracker/internal/cache"
	"task-tracker/internal/config"
	"task-tracker/internal/handler"
	"task-tracker/internal/httpserver"
	"task-tracker/internal/logger"
	"task-tracker/internal/metrics"
	"task-tracker/internal/model"
	"task-tracker/internal/repository"
	"task-tracker/internal/service"
	"task-tracker/internal/util"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to YAML config file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Sync()

	db, err := repository.NewDB(cfg.Database.URL, lg)
	if err != nil {
		lg.Fatal("db initialization failed", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		lg.Fatal("db handle", zap.Error(err))
	}
	defer sqlDB.Close()

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	statusRepo := repository.NewStatusRepository(db, cfg.Tasks.DefaultStatusID)
	taskRepo := repository.NewTaskRepository(db)

	var (
		categoryStore handler.Store[model.Category] = categoryRepo
		statusStore   handler.Store[model.Status]   = statusRepo
	)
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			lg.Fatal("redis initialization failed", zap.Error(err))
		}
		defer rdb.Close()
		categoryStore = cache.NewListCache[model.Category](categoryRepo, rdb, "categories", cfg.Redis.CacheTTL, lg)
		statusStore = cache.NewListCache[model.Status](statusRepo, rdb, "statuses", cfg.Redis.CacheTTL, lg)
		lg.Info("list cache enabled", zap.String("redis", cfg.Redis.Addr), zap.Duration("ttl", cfg.Redis.CacheTTL))
	}

	authSvc := service.NewAuthService(userRepo, util.NewPasswordHasher(cfg.Auth.BcryptCost), cfg.JWT.Secret, cfg.JWT.TTL)
	taskSvc := service.NewTaskService(taskRepo, categoryRepo, statusRepo)
	purgeSvc := service.NewPurgeService(taskRepo, cfg.Tasks.PurgeRetention, lg)

	scheduler := service.NewSchedulerService(time.Local, lg)
	scheduled, err := scheduler.Schedule(cfg.Tasks.PurgeAt, cfg.Tasks.PurgeInterval, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		n, err := purgeSvc.Run(jobCtx)
		if err == nil {
			metrics.AddPurgedTasks(n)
		}
	})
	if err != nil {
		lg.Fatal("schedule purge", zap.Error(err))
	}
	if scheduled {
		scheduler.Start()
		defer scheduler.Stop()
		lg.Info("scheduler started", zap.Int("jobs", scheduler.Entries()))
	}

	gin.SetMode(gin.ReleaseMode)
	router := httpserver.NewRouter(
		authSvc,
		handler.NewAuthHandler(authSvc, lg),
		handler.NewCategoryResource(categoryStore, lg),
		handler.NewStatusResource(statusStore, lg),
		handler.NewTaskResource(func(userID uint) handler.Store[model.Task] {
			return taskRepo.OwnedBy(userID)
		}, taskSvc, lg),
		sqlDB,
		lg,
	)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info("task tracker started", zap.String("addr", cfg.Server.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("server stopped with error", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("graceful shutdown failed", zap.Error(err))
	}
	lg.Info("shutdown complete")
}
