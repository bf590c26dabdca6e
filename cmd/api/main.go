package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"bank-ledger/config"
	httpHandler "bank-ledger/internal/adapter/http/handler"
	"bank-ledger/internal/adapter/storage/memory"
	"bank-ledger/internal/bootstrap"
	"bank-ledger/internal/core/domain"
	"bank-ledger/internal/service"
	"bank-ledger/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Bank Ledger Engine")

	if cfg.Bank.ReferenceCurrency != domain.ReferenceCurrency {
		log.Fatal().
			Str("configured", cfg.Bank.ReferenceCurrency).
			Str("supported", domain.ReferenceCurrency).
			Msg("Unsupported reference currency")
	}

	ctx := context.Background()

	// Initialize repositories
	userRepo := memory.NewUserRepo()
	accountRepo := memory.NewAccountRepo()
	merchantRepo := memory.NewMerchantRepo()

	// Seed users, merchants and exchange rates from the fixture
	fx, err := bootstrap.LoadFixture(cfg.Bank.FixturePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load fixture")
	}
	resolver, err := bootstrap.Seed(ctx, fx, userRepo, merchantRepo)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed state")
	}
	log.Info().
		Int("users", len(fx.Users)).
		Int("merchants", len(fx.Merchants)).
		Strs("currencies", resolver.Currencies()).
		Msg("Fixture loaded")

	policy := service.Policy{
		FreezeFloor:          decimal.NewFromInt(cfg.Bank.FreezeFloor),
		PromotionCount:       cfg.Bank.PromotionCount,
		PromotionMinAmount:   decimal.NewFromInt(cfg.Bank.PromotionMinAmount),
		InitialBusinessLimit: decimal.NewFromInt(cfg.Bank.InitialBusinessLimit),
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	accountSvc := service.NewAccountService(userRepo, accountRepo, resolver, policy, log)
	paymentSvc := service.NewPaymentService(userRepo, accountRepo, merchantRepo, resolver, policy, log)
	splitSvc := service.NewSplitService(userRepo, accountRepo, resolver, log)
	reportSvc := service.NewReportingService(userRepo, accountRepo, log)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:    authSvc,
		AccountSvc: accountSvc,
		PaymentSvc: paymentSvc,
		SplitSvc:   splitSvc,
		ReportSvc:  reportSvc,
		Logger:     log,
	})

	// HTTP Server with graceful shutdown
	addr := cfg.Server.Addr()
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
