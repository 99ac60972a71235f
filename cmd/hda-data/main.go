package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hda-data/common/database"
	"hda-data/common/logger"
	commonredis "hda-data/common/redis"
	"hda-data/internal/cache"
	"hda-data/internal/config"
	httpapi "hda-data/internal/http"
	"hda-data/internal/repository"
	"hda-data/internal/service"
	"hda-data/internal/store"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "hda-data")
	if err != nil {
		log, _ = zap.NewProduction()
		log.Warn("Invalid log configuration, using production defaults", zap.Error(err))
	}
	defer log.Sync()

	// Record store: Postgres when reachable, memory otherwise.
	var db *sql.DB
	var records repository.RecordStore = repository.NewMemoryRecordStore()
	if cfg.DBEnabled {
		if d, err := database.NewPostgresDB(&cfg.Database); err == nil {
			db = d
			records = repository.NewPostgresRecordStore(db)
			log.Info("DB enabled for hda-data", zap.String("host", cfg.Database.Host), zap.String("database", cfg.Database.Database))
		} else {
			log.Warn("DB enabled but connection failed, falling back to memory store", zap.Error(err))
		}
	} else {
		log.Info("DB disabled, using memory store")
	}

	// Cache substrate: Redis when enabled and reachable.
	var redisClient *redis.Client
	var kv store.KV = store.NewMemoryKV(cfg.Cache.QuotaBytes)
	if cfg.RedisEnabled {
		client := commonredis.NewRedisClient(&cfg.Redis)
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := commonredis.Ping(pingCtx, client)
		cancel()
		if err == nil {
			redisClient = client
			kv = store.NewRedisKV(client)
			log.Info("Redis enabled for hda-data", zap.String("addr", cfg.Redis.Addr))
		} else {
			_ = client.Close()
			log.Warn("Redis enabled but ping failed, falling back to memory cache", zap.Error(err))
		}
	}
	localCache := cache.New(kv, log)

	secret := []byte(cfg.Session.Secret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			log.Fatal("Failed to generate session secret", zap.Error(err))
		}
		log.Warn("SESSION_SECRET not set, using a random per-process secret; sessions end on restart")
	}
	if cfg.Auth.SecretPolicy == config.SecretPolicyPresence {
		log.Warn("Login secret policy is 'presence': any non-empty secret is accepted for allow-listed identities")
	}

	authService, err := service.NewAuthService(service.AuthOptions{
		AllowedIdentities: cfg.Auth.AllowedIdentities,
		AdminIdentity:     cfg.Auth.AdminIdentity,
		SecretPolicy:      cfg.Auth.SecretPolicy,
		PasswordHashes:    cfg.Auth.PasswordHashes,
		SigningSecret:     secret,
		TTL:               cfg.Session.TTL,
	}, log)
	if err != nil {
		log.Fatal("Invalid auth configuration", zap.Error(err))
	}

	recordService := service.NewRecordService(records, localCache, log)
	if cfg.HoneyBook.APIToken == "" {
		log.Warn("HONEYBOOK_API_TOKEN not set, HoneyBook calls will be rejected upstream")
	}
	honeyBook := service.NewHoneyBookClient(cfg.HoneyBook.BaseURL, cfg.HoneyBook.APIToken, cfg.HoneyBook.Timeout, log)

	router := httpapi.NewRouter(authService, log)
	router.RegisterAuthRoutes(httpapi.NewAuthHandler(authService, log))
	router.RegisterRecordRoutes(httpapi.NewRecordsHandler(recordService, log))
	router.RegisterCacheRoutes(httpapi.NewCacheHandler(localCache, log))
	router.RegisterHoneyBookRoutes(httpapi.NewHoneyBookHandler(honeyBook, recordService, log))

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			log.Error("HTTP server stopped", zap.Error(err))
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	_ = commonredis.Close(redisClient)
	if db != nil {
		_ = database.Close(db)
	}
}
