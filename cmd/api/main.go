package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/commandes-api/internal/application/service"
	"github.com/sangkips/commandes-api/internal/config"
	"github.com/sangkips/commandes-api/internal/infrastructure/database"
	"github.com/sangkips/commandes-api/internal/infrastructure/repository"
	"github.com/sangkips/commandes-api/internal/presentation/http/handler"
	"github.com/sangkips/commandes-api/internal/presentation/http/middleware"
	"github.com/sangkips/commandes-api/internal/presentation/http/routes"
	"github.com/sangkips/commandes-api/pkg/logger"
	"github.com/sangkips/commandes-api/pkg/printer"
	"github.com/sangkips/commandes-api/pkg/utils"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	var missing *config.MissingFileError
	if err != nil && !errors.As(err, &missing) {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.App.Env, cfg.App.Debug)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if missing != nil {
		log.Info("no .env file, using environment only", zap.Error(missing.Err))
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewDB(&cfg.Database, cfg.App.Debug, log)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := database.AutoMigrate(db, log); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := database.SeedAdmin(db, cfg.Admin, log); err != nil {
		log.Warn("admin account not seeded", zap.Error(err))
	}

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	typeRepo := repository.NewTypeRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	clientService := service.NewClientService(clientRepo)
	typeService := service.NewTypeService(typeRepo)
	orderService := service.NewOrderService(orderRepo, clientRepo, typeRepo, log)
	receiptService := service.NewReceiptService(orderRepo, service.ReceiptSettings{
		Currency:    cfg.Receipt.Currency,
		Title:       cfg.Receipt.Title,
		TicketWidth: cfg.Receipt.TicketWidth,
	}, log)
	exportService := service.NewExportService(orderRepo)

	ticketPrinter, err := printer.New(printer.Config{
		Kind:       cfg.Printer.Type,
		DevicePath: cfg.Printer.DevicePath,
		Address:    cfg.Printer.Address,
	})
	if err != nil {
		return fmt.Errorf("init printer: %w", err)
	}
	printerService := service.NewPrinterService(receiptService, ticketPrinter, log)
	dashboardService := service.NewDashboardService(clientRepo, typeRepo, analyticsRepo)

	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Client:    handler.NewClientHandler(clientService),
		Type:      handler.NewTypeHandler(typeService),
		Order:     handler.NewOrderHandler(orderService, exportService),
		Receipt:   handler.NewReceiptHandler(receiptService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Printer:   handler.NewPrinterHandler(printerService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Log:             log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go middleware.SweepIdempotencyKeys(ctx, idempotencyRepo, time.Hour, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting",
			zap.String("service", cfg.App.Name),
			zap.String("port", cfg.App.Port),
			zap.String("env", cfg.App.Env),
			zap.String("db_driver", cfg.Database.Driver),
			zap.String("printer", ticketPrinter.Kind()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
