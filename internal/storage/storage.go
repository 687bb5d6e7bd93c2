// Package storage opens the configured persistence backend and hands out the
// repositories built on it.
package storage

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/migrate"
	catalogrepo "storefront/internal/repository/catalog"
	orderrepo "storefront/internal/repository/order"
)

// Stores bundles the repositories of one backend.
type Stores struct {
	Driver  string
	Catalog catalogrepo.Repository
	Orders  orderrepo.Repository

	ping  func(ctx context.Context) error
	close func()
}

// Ping checks that the backend is reachable.
func (s *Stores) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

// Close releases the backend connection.
func (s *Stores) Close() {
	s.close()
}

// Open connects to the backend named by cfg.DBDriver.
func Open(ctx context.Context, cfg config.Config, logger *log.Logger) (*Stores, error) {
	switch cfg.DBDriver {
	case config.DriverMongo:
		client, err := db.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, fmt.Errorf("connect to mongo: %w", err)
		}
		database := client.Database(cfg.MongoDatabase)
		if err := catalogrepo.EnsureMongoIndexes(ctx, database); err != nil {
			disconnect(client, logger)
			return nil, fmt.Errorf("create mongo indexes: %w", err)
		}
		return &Stores{
			Driver:  config.DriverMongo,
			Catalog: catalogrepo.NewMongo(database, logger),
			Orders:  orderrepo.NewMongo(database, logger),
			ping:    func(ctx context.Context) error { return client.Ping(ctx, readpref.Primary()) },
			close:   func() { disconnect(client, logger) },
		}, nil
	case config.DriverPostgres:
		pool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		if cfg.MigrateOnStart {
			version, err := migrate.Apply(ctx, pool)
			if err != nil {
				pool.Close()
				return nil, fmt.Errorf("apply migrations: %w", err)
			}
			logger.Printf("migrations applied version=%d", version)
		}
		return &Stores{
			Driver:  config.DriverPostgres,
			Catalog: catalogrepo.NewPostgres(pool, logger),
			Orders:  orderrepo.NewPostgres(pool, logger),
			ping:    pool.Ping,
			close:   pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DBDriver)
	}
}

func disconnect(client *mongo.Client, logger *log.Logger) {
	if err := client.Disconnect(context.Background()); err != nil {
		logger.Printf("mongo disconnect: %v", err)
	}
}
