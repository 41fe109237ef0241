package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/rslakra/BankService/internal/config"
	"github.com/rslakra/BankService/internal/handler"
	"github.com/rslakra/BankService/internal/logging"
	"github.com/rslakra/BankService/internal/middleware"
	"github.com/rslakra/BankService/internal/repository"
	"github.com/rslakra/BankService/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Init("bank-api", cfg.LogLevel, cfg.AppEnv)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := repository.NewPostgresDB(ctx, cfg.DatabaseURL, repository.PoolConfig{
		MaxOpenConns:     cfg.DBMaxOpenConns,
		MaxIdleConns:     cfg.DBMaxIdleConns,
		ConnMaxLifetimeS: cfg.DBConnMaxLifetimeS,
		ConnMaxIdleTimeS: cfg.DBConnMaxIdleTimeS,
	})
	cancel()
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	users := repository.NewUserRepository(db)
	accounts := repository.NewAccountRepository(db)
	transactions := repository.NewTransactionRepository(db)
	transfers := repository.NewTransferRepository(db)
	cards := repository.NewCardRepository(db)

	accountSvc := service.NewAccountService(accounts)
	ledgerSvc := service.NewLedgerService(db, accounts, transactions, transfers)
	cardSvc := service.NewCardService(accounts, cards)

	jwtExpiry := time.Duration(cfg.JWTExpiryMinutes) * time.Minute
	authHandler := handler.NewAuthHandler(users, cfg.JWTSecret, jwtExpiry)
	userHandler := handler.NewUserHandler(users)
	accountHandler := handler.NewAccountHandler(accountSvc)
	transactionHandler := handler.NewTransactionHandler(ledgerSvc)
	transferHandler := handler.NewTransferHandler(ledgerSvc)
	cardHandler := handler.NewCardHandler(cardSvc)
	statementHandler := handler.NewStatementHandler(ledgerSvc)
	healthHandler := handler.NewHealthHandler(db)

	authRequired := middleware.Auth(cfg.JWTSecret)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /signup", authHandler.Signup)
	mux.HandleFunc("POST /login", authHandler.Login)
	mux.HandleFunc("GET /health", healthHandler.Liveness)
	mux.HandleFunc("GET /health/ready", healthHandler.Readiness)
	mux.HandleFunc("GET /docs", handler.ServeDocs())
	if spec, err := os.ReadFile("docs/openapi.yaml"); err == nil {
		mux.HandleFunc("GET /docs/openapi.yaml", handler.ServeSpec(spec))
	} else {
		slog.Warn("openapi spec not found, /docs/openapi.yaml disabled", "error", err)
	}

	mux.Handle("GET /me", authRequired(http.HandlerFunc(userHandler.Me)))
	mux.Handle("PUT /me", authRequired(http.HandlerFunc(userHandler.UpdateMe)))
	mux.Handle("POST /accounts", authRequired(http.HandlerFunc(accountHandler.Create)))
	mux.Handle("GET /accounts", authRequired(http.HandlerFunc(accountHandler.List)))
	mux.Handle("GET /accounts/{id}", authRequired(http.HandlerFunc(accountHandler.Get)))
	mux.Handle("POST /accounts/{id}/transactions", authRequired(http.HandlerFunc(transactionHandler.Create)))
	mux.Handle("GET /accounts/{id}/transactions", authRequired(http.HandlerFunc(transactionHandler.List)))
	mux.Handle("POST /transfers", authRequired(http.HandlerFunc(transferHandler.Create)))
	mux.Handle("GET /transfers", authRequired(http.HandlerFunc(transferHandler.List)))
	mux.Handle("POST /accounts/{id}/cards", authRequired(http.HandlerFunc(cardHandler.Create)))
	mux.Handle("GET /accounts/{id}/cards", authRequired(http.HandlerFunc(cardHandler.List)))
	mux.Handle("GET /accounts/{id}/statements", authRequired(http.HandlerFunc(statementHandler.Get)))

	chain := middleware.Tracing(middleware.Logging(middleware.Recovery(mux)))

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           chain,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
