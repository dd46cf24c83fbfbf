package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/sweetdelights/storefront/internal/config"
	"github.com/sweetdelights/storefront/internal/database"
	"github.com/sweetdelights/storefront/internal/handler"
	"github.com/sweetdelights/storefront/internal/queue"
	"github.com/sweetdelights/storefront/internal/router"
	"github.com/sweetdelights/storefront/internal/service"
	"github.com/sweetdelights/storefront/internal/store"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting disabled")
	}

	st, err := openStore(cfg, rdb)
	if err != nil {
		log.Fatalf("open store (%s): %v", cfg.StoreBackend, err)
	}

	// Seed the admin account and the launch menu on first run.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	accounts := service.NewAccounts(st, cfg.BcryptCost)
	if err := accounts.EnsureSeed(ctx); err != nil {
		log.Fatalf("seed accounts: %v", err)
	}
	catalog := service.NewCatalog(st)
	if err := catalog.EnsureSeed(ctx); err != nil {
		log.Fatalf("seed catalog: %v", err)
	}
	cart := service.NewCart(st, catalog, queue.NewPublisher())
	catalog.AttachCart(cart)
	newsletter := service.NewNewsletter(st)

	if cfg.OrderConsumer {
		go queue.StartOrderConsumer()
	}

	e := echo.New()
	router.Register(e, cfg, router.Handlers{
		Auth:       handler.NewAuthHandler(cfg, accounts),
		Catalog:    handler.NewCatalogHandler(catalog),
		Cart:       handler.NewCartHandler(cart),
		Orders:     handler.NewOrdersHandler(cart),
		Newsletter: handler.NewNewsletterHandler(newsletter),
	}, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s store=%s)", addr, cfg.Env, cfg.StoreBackend)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// openStore builds the configured persistence backend.
func openStore(cfg config.Config, rdb *redis.Client) (store.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return store.NewMemory(), nil
	case config.BackendFile:
		return store.NewFile(cfg.StoreFile)
	case config.BackendMySQL:
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return store.NewMySQL(ctx, db)
	case config.BackendRedis:
		if rdb == nil {
			return nil, errors.New("redis backend selected but redis is unreachable")
		}
		return store.NewRedis(rdb, cfg.StorePrefix), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
