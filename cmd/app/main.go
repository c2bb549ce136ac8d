package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopfloor/cmd"
	httpserver "shopfloor/internal/adapters/in/http"
	"shopfloor/internal/adapters/out/postgres/auditrepo"
	"shopfloor/internal/adapters/out/postgres/locationrepo"
	"shopfloor/internal/adapters/out/postgres/machinerepo"
	"shopfloor/internal/adapters/out/postgres/orderrepo"
	"shopfloor/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg := cmd.LoadConfig()

	log, err := logger.New(cfg.LogLevel, cfg.LogEncoding, "shopfloor")
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to build logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	db, err := openDatabase(cfg)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	root := cmd.NewCompositionRoot(cfg, db, redisClient, log)
	defer func() { _ = root.Close() }()

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatal("failed to start jobs", zap.Error(err))
	}
	defer jobManager.StopAll()

	e := buildEcho(&root)

	go func() {
		if err := e.Start("0.0.0.0:" + cfg.HTTPPort); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server stopped", zap.Error(err))
		}
	}()
	log.Info("server started", zap.String("port", cfg.HTTPPort))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}

func openDatabase(cfg cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSslMode)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ProgressDTO{},
		&locationrepo.LocationDTO{},
		&machinerepo.MachineDTO{},
		&machinerepo.AssignmentDTO{},
		&auditrepo.EntryDTO{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func buildEcho(root *cmd.CompositionRoot) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	server := httpserver.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateStartLocationCommandHandler(),
		root.CreatePauseLocationCommandHandler(),
		root.CreateFinishLocationCommandHandler(),
		root.CreateUpdateLocationQuantityCommandHandler(),
		root.CreateReorderQueueCommandHandler(),
		root.CreateSetQueuePositionCommandHandler(),
		root.CreateMarkRushCommandHandler(),
		root.CreateShipOrderCommandHandler(),
		root.CreateRequestHelpCommandHandler(),
		root.CreateAssignMachineCommandHandler(),
		root.CreateUpdateAssignmentQuantityCommandHandler(),
		root.CreateGetLocationQueueQueryHandler(),
		root.CreateGetEligibilityQueryHandler(),
		root.CreateGetUpcomingOrdersQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
