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

	"relief-coordination-api/config"
	"relief-coordination-api/internal/alert"
	"relief-coordination-api/internal/api/handlers"
	"relief-coordination-api/internal/api/routes"
	"relief-coordination-api/internal/auth"
	"relief-coordination-api/internal/blockchain"
	"relief-coordination-api/internal/database"
	"relief-coordination-api/internal/inventory"
	"relief-coordination-api/internal/lock"
	"relief-coordination-api/internal/logger"
	"relief-coordination-api/internal/organization"
	"relief-coordination-api/internal/s3"
	"relief-coordination-api/internal/socket"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	logg, err := logger.New(cfg.Log.Level, cfg.Log.Format, "relief-coordination-api")
	if err != nil {
		log.Fatalf("Could not build logger: %v", err)
	}
	defer logg.Sync()

	if cfg.JWT.Secret == "" {
		logg.Fatal("jwt.secret must be set")
	}
	gin.SetMode(cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. MongoDB and collections
	client, db, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		logg.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer client.Disconnect(context.Background())

	users := auth.NewUserRepository(db)
	orgRepo := organization.NewMongoRepository(db)
	invRepo := inventory.NewMongoRepository(db)
	alertRepo := alert.NewMongoRepository(db)
	if err := database.EnsureIndexes(ctx, users, orgRepo, invRepo, alertRepo); err != nil {
		logg.Fatal("failed to create indexes", zap.Error(err))
	}
	if err := database.SeedSuperAdmin(ctx, users, cfg.Seed, logg); err != nil {
		logg.Fatal("failed to seed super admin", zap.Error(err))
	}

	// 3. Supporting infrastructure
	hub := socket.NewHub(logg.Named("socket"))
	locker := newLocker(cfg.Redis, logg)

	uploader, err := s3.NewUploader(ctx, cfg.S3)
	if err != nil {
		logg.Fatal("failed to initialize S3 uploader", zap.Error(err))
	}

	// 4. Services
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL())
	orgService := organization.NewService(orgRepo, users, uploader, logg.Named("organization"))
	invService := inventory.NewService(invRepo, orgService, locker, hub, logg.Named("inventory"))
	alertService := alert.NewService(alertRepo, hub, logg.Named("alert"))

	deps := routes.Dependencies{
		Log:           logg.Named("http"),
		Tokens:        tokens,
		CORSOrigins:   cfg.Server.CORSOrigins,
		Auth:          &handlers.AuthHandler{Users: users, Tokens: tokens},
		Inventory:     &handlers.InventoryHandler{Service: invService},
		Organizations: &handlers.OrganizationHandler{Service: orgService},
		Alerts:        &handlers.AlertHandler{Service: alertService},
		WebSocket:     &handlers.WebSocketHandler{Hub: hub, Tokens: tokens, Log: logg.Named("ws")},
	}

	// 5. Optional donations ledger
	if cfg.Fabric.Enabled() {
		fabricSetup, err := blockchain.Initialize(cfg.Fabric)
		if err != nil {
			logg.Fatal("failed to initialize Fabric setup", zap.Error(err))
		}
		defer fabricSetup.Close()
		ledger := blockchain.NewCampaignLedger(fabricSetup.Contract, logg.Named("ledger"))
		deps.Campaigns = &handlers.CampaignHandler{Ledger: ledger}
	} else {
		logg.Info("fabric.connectionProfile not set, campaign routes disabled")
	}

	// 6. Start server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           routes.SetupRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logg.Info("starting API server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal("failed to run server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logg.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error("graceful shutdown failed", zap.Error(err))
	}
}

// newLocker uses Redis when configured so several API instances serialize
// submissions for the same organization, and an in-process lock otherwise.
func newLocker(cfg config.RedisConfig, logg *zap.Logger) lock.Locker {
	if !cfg.Enabled() {
		return lock.NewKeyedMutex()
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	logg.Info("using redis lock", zap.String("addr", cfg.Addr))
	return lock.NewRedisLocker(rdb, "relief:lock:", cfg.LockTimeout(), logg.Named("lock"))
}
