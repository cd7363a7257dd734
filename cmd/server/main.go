package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/ruralpay/ledger/docs"
	"github.com/ruralpay/ledger/internal/audit"
	"github.com/ruralpay/ledger/internal/cache"
	"github.com/ruralpay/ledger/internal/config"
	"github.com/ruralpay/ledger/internal/database"
	"github.com/ruralpay/ledger/internal/gateway"
	"github.com/ruralpay/ledger/internal/handlers"
	"github.com/ruralpay/ledger/internal/logger"
	mW "github.com/ruralpay/ledger/internal/middleware"
	"github.com/ruralpay/ledger/internal/services"
)

// @title Ledger API
// @version 1.0
// @description Wallet ledgers backed by Instamoney virtual accounts
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg := config.Load(".env")

	log := logger.NewLogger(cfg.LogMode)
	defer log.Sync()

	docs.SwaggerInfo.Host = "localhost:" + cfg.Port

	db := database.InitDatabase(cfg.Database, log)
	defer db.Close()

	var bankCache cache.BankCache = cache.NewMemoryBankCache()
	redisClient := database.InitRedis(cfg.Redis, log)
	if redisClient != nil {
		defer redisClient.Close()
		bankCache = cache.NewRedisBankCache(redisClient)
	}

	instamoney := gateway.NewClient(cfg.Gateway, log)
	if cfg.Gateway.Sandbox {
		log.Warn("instamoney sandbox mode enabled, virtual accounts are simulated")
	}

	auditLogger := audit.NewLogger(log)

	ledgerService := services.NewLedgerService(db, instamoney, auditLogger, log)
	callbackService := services.NewCallbackService(instamoney, ledgerService, log)
	bankService := services.NewBankService(instamoney, bankCache, cfg.Bank.CacheTTL, log)

	ledgerHandler := handlers.NewLedgerHandler(ledgerService, bankService, log)
	transactionHandler := handlers.NewTransactionHandler(ledgerService, services.NewStatementService(), log)
	qrHandler := handlers.NewQRHandler(ledgerService, services.NewQRService(), log)
	callbackHandler := handlers.NewCallbackHandler(callbackService, log)

	// Setup router
	r := chi.NewRouter()

	r.Use(mW.SecurityHeaders)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mW.RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", gateway.CallbackTokenHeader},
		ExposedHeaders:   []string{"Content-Disposition", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		status, code := "healthy", http.StatusOK
		if err := db.PingContext(r.Context()); err != nil {
			status, code = "degraded", http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]string{"status": status})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/banks", bankService.GetAllBanks)

		// Gateway webhooks authenticate with the callback token
		r.Post("/callbacks/fixed-virtual-account-created", callbackHandler.VirtualAccountCreated)
		r.Post("/callbacks/fixed-virtual-account-payment", callbackHandler.PaymentReceived)

		r.Group(func(r chi.Router) {
			r.Use(mW.Auth(cfg.JWT.SecretKey))

			r.Post("/ledgers", ledgerHandler.CreateLedger)
			r.Get("/ledgers", ledgerHandler.ListLedgers)

			r.Route("/ledgers/{ledgerId}", func(r chi.Router) {
				r.Get("/", ledgerHandler.GetLedger)
				r.Post("/send-to", ledgerHandler.SendTo)
				r.Get("/status-history", ledgerHandler.StatusHistory)
				r.Get("/deposit-qr", qrHandler.DepositQR)

				r.Post("/transactions", transactionHandler.CreateTransaction)
				r.Get("/transactions", transactionHandler.ListTransactions)
				r.Get("/transactions/export", transactionHandler.ExportTransactions)
				r.Get("/transactions/{txId}", transactionHandler.GetTransaction)
			})
		})
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
