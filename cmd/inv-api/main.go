package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/invenhq/inventory-api/internal/auth"
	"github.com/invenhq/inventory-api/internal/config"
	"github.com/invenhq/inventory-api/internal/http"
	"github.com/invenhq/inventory-api/internal/log"
	"github.com/invenhq/inventory-api/internal/repository"
	"github.com/invenhq/inventory-api/internal/service"
	"github.com/invenhq/inventory-api/internal/storage/db"
	"github.com/invenhq/inventory-api/internal/storage/upload"
	"github.com/invenhq/inventory-api/internal/telemetry"
	"github.com/invenhq/inventory-api/pkg/cmdutil"
	"github.com/invenhq/inventory-api/pkg/validator"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running api application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log      config.Log
		Postgres config.Postgres
		HTTP     config.HTTP
		Auth     config.Auth
		Upload   config.Upload
		Otel     config.Otel
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	cleanupTracer, err := telemetry.InitTracer(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("error initializing tracer: %w", err)
	}
	defer func() {
		if err := cleanupTracer(ctx); err != nil {
			logger.ErrorContext(ctx, "error cleaning up tracer", slog.Any("error", err))
		}
	}()

	pgxPool, err := db.NewPgxPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("error creating pgx pool: %w", err)
	}
	defer pgxPool.Close()

	dbClient := db.NewClient(pgxPool)

	uploadStore, err := upload.NewStore(cfg.Upload.Dir, cfg.Upload.MaxSizeBytes)
	if err != nil {
		return fmt.Errorf("error creating upload store: %w", err)
	}

	v, err := validator.NewDefaultValidator()
	if err != nil {
		return fmt.Errorf("error creating validator: %w", err)
	}

	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)

	adminRepository := repository.NewAdminRepository(dbClient)
	categoryRepository := repository.NewCategoryRepository(dbClient)
	productRepository := repository.NewProductRepository(dbClient)
	transactionRepository := repository.NewTransactionRepository(dbClient)

	adminService := service.NewAdminService(adminRepository, issuer)
	categoryService := service.NewCategoryService(categoryRepository)
	productService := service.NewProductService(productRepository)
	transactionService := service.NewTransactionService(dbClient, transactionRepository, productRepository)

	svc := http.New(
		cfg.HTTP,
		logger,
		issuer,
		v,
		dbClient,
		uploadStore,
		adminService,
		categoryService,
		productService,
		transactionService,
	)
	cleanup, err := svc.Run(ctx)
	if err != nil {
		return fmt.Errorf("error running http service: %w", err)
	}

	logger.InfoContext(ctx, "http service started", slog.String("address", fmt.Sprintf(":%d", cfg.HTTP.Port)))

	<-cmdutil.InterruptChan()

	logger.InfoContext(ctx, "http service is shutting down")
	if err := cleanup(ctx); err != nil {
		logger.ErrorContext(ctx, "error shutting down http service", slog.Any("error", err))
	}

	logger.InfoContext(ctx, "http service is stopped")

	return nil
}
