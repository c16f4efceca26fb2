package main

import (
	"flag"
	"log"
	"strings"

	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"

	"github.com/johnquangdev/customer-pulse/internal/infrastructure/database"
	"github.com/johnquangdev/customer-pulse/pkg/config"
)

func main() {
	dir := flag.String("dir", database.MigrationsDir, "directory holding sql-migrate files")
	direction := flag.String("direction", "up", "up or down")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.LoadDatabase()
	if err != nil {
		logger.Fatal("❌ Failed to load configuration", zap.Error(err))
	}

	db, err := database.NewPostgresDB(cfg, logger)
	if err != nil {
		logger.Fatal("❌ Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	dirn := migrate.Up
	switch strings.ToLower(*direction) {
	case "up":
	case "down":
		dirn = migrate.Down
	default:
		logger.Fatal("❌ Unknown migration direction", zap.String("direction", *direction))
	}

	logger.Info("🔄 Applying migrations", zap.String("dir", *dir), zap.String("direction", *direction))
	n, err := database.Migrate(db, *dir, dirn)
	if err != nil {
		logger.Fatal("❌ Migration failed", zap.Error(err))
	}
	logger.Info("✅ Migrations applied", zap.Int("count", n))
}
