package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"ahorra-oink/pkg/config"
	"ahorra-oink/pkg/logger"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.SSLMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		appLogger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		appLogger.Fatal("Failed to create migration driver", zap.Error(err))
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		appLogger.Fatal("Failed to create migrator", zap.Error(err))
	}

	before, _, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		before = 0
	} else if err != nil {
		appLogger.Fatal("Failed to read migration version", zap.Error(err))
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		appLogger.Fatal("Migration failed", zap.Error(err))
	}

	after, _, err := m.Version()
	if err != nil {
		appLogger.Fatal("Failed to read migration version", zap.Error(err))
	}

	appLogger.Info("Migration status",
		zap.Uint("before", before),
		zap.Uint("after", after),
	)
}
