package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"panascoop/config"
	"panascoop/internal/connmgr"
	"panascoop/internal/handlers"
	"panascoop/internal/present"
	"panascoop/internal/restapi"
	"panascoop/internal/session"
	"panascoop/internal/store"
)

func main() {
	log := logrus.New()

	// 1. Загружаем конфиг из .env / окружения
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	// 1.1 Определяем режим запуска (dev/prod)
	env := os.Getenv("APP_ENV")
	if env == "prod" || env == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// 2. Выбираем бэкенд локального хранилища
	storage, err := newStorage(cfg)
	if err != nil {
		log.Fatalf("storage init failed: %v", err)
	}

	// 3. Собираем ядро: Store, менеджер соединения, адаптер, сессию
	st := store.New(storage, log)
	mgr := connmgr.New(cfg.BrokerURL, connmgr.Options{}, log)
	ad := present.New(st, &present.LogAlerter{Log: log}, log)
	sess := session.New(mgr, st, ad, log)
	sess.Init(cfg.UserID)
	defer sess.Dispose()

	api := restapi.NewClient(cfg.APIBaseURL, cfg.APIToken, log)

	// 4. Запускаем локальный управляющий API
	r := handlers.NewRouter(mgr, st, ad, api, cfg.AllowedOrigin)
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Infof("listening on %s …", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	// 5. Ждём сигнал и гасим всё аккуратно
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warnf("server shutdown: %v", err)
	}
}

// newStorage создаёт хранилище по конфигурации.
func newStorage(cfg *config.Config) (store.Storage, error) {
	switch cfg.Storage {
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(cfg.StoragePath), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.StoragePath, err)
		}
		return store.NewDBStorage(db)
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("REDIS_ADDR must be set for redis storage")
		}
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return store.NewRedisStorage(client), nil
	default:
		return store.NewMemoryStorage(0), nil
	}
}
