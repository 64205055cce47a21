package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	cartapp "github.com/dwikikusuma/techhub-store/internal/cart/app"
	cartmemory "github.com/dwikikusuma/techhub-store/internal/cart/infra/memory"
	cartpg "github.com/dwikikusuma/techhub-store/internal/cart/infra/postgres"
	"github.com/dwikikusuma/techhub-store/internal/cart/infra/redisrepo"
	catalogapp "github.com/dwikikusuma/techhub-store/internal/catalog/app"
	catalogmemory "github.com/dwikikusuma/techhub-store/internal/catalog/infra/memory"
	catalogpg "github.com/dwikikusuma/techhub-store/internal/catalog/infra/postgres"
	orderapp "github.com/dwikikusuma/techhub-store/internal/order/app"
	ordermemory "github.com/dwikikusuma/techhub-store/internal/order/infra/memory"
	orderpg "github.com/dwikikusuma/techhub-store/internal/order/infra/postgres"
	"github.com/dwikikusuma/techhub-store/pkg/config"
	"github.com/dwikikusuma/techhub-store/pkg/database"
	"github.com/dwikikusuma/techhub-store/pkg/shutdown"
)

type stores struct {
	products catalogapp.ProductRepo
	cart     cartapp.CartRepo
	orders   orderapp.OrderRepo

	ready func(ctx context.Context) error
	close shutdown.Hook
}

func openStores(ctx context.Context, cfg config.Config, log *zap.Logger) (*stores, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return &stores{
			products: catalogmemory.NewProductRepo(),
			cart:     cartmemory.NewCartRepo(),
			orders:   ordermemory.NewOrderRepo(),
		}, nil

	case config.BackendRedis:
		client, err := redisrepo.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		log.Info("redis connected", zap.String("prefix", cfg.RedisPrefix), zap.Duration("cart_ttl", cfg.CartTTL))
		return &stores{
			products: catalogmemory.NewProductRepo(),
			cart:     redisrepo.NewCartRepo(client, redisrepo.Options{Prefix: cfg.RedisPrefix, TTL: cfg.CartTTL}),
			orders:   ordermemory.NewOrderRepo(),
			ready:    func(ctx context.Context) error { return client.Ping(ctx).Err() },
			close:    shutdown.Closer(client.Close),
		}, nil

	case config.BackendPostgres, config.BackendSQLite:
		dsn := cfg.DatabaseURL
		if cfg.StoreBackend == config.BackendSQLite {
			dsn = cfg.SQLitePath
		}
		db, err := database.Open(database.Options{Driver: cfg.StoreBackend, DSN: dsn, Quiet: !cfg.IsDev()})
		if err != nil {
			return nil, err
		}

		products := catalogpg.NewProductRepo(db)
		cart := cartpg.NewCartRepo(db)
		orders := orderpg.NewOrderRepo(db)
		for _, m := range []interface {
			Migrate(context.Context) error
		}{products, cart, orders} {
			if err := m.Migrate(ctx); err != nil {
				_ = database.Close(db)
				return nil, fmt.Errorf("migrate: %w", err)
			}
		}
		log.Info("database ready", zap.String("driver", cfg.StoreBackend))

		return &stores{
			products: products,
			cart:     cart,
			orders:   orders,
			ready: func(ctx context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			},
			close: shutdown.Closer(func() error { return database.Close(db) }),
		}, nil

	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
}
