package database

import (
	"context"
	"fmt"
	"time"

	"deckbuilder/catalog"
	"deckbuilder/config"
	"deckbuilder/logger"
	"deckbuilder/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// DSN builds the postgres connection string from the configuration
func DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=disable TimeZone=UTC",
		config.PostgresHost, config.PostgresPort, config.PostgresUser, config.PostgresDB, config.PostgresPassword)
}

// InitDB opens the connection pool, migrates the models and seeds the catalog if needed
func InitDB() error {
	db, err := Open(DSN())
	if err != nil {
		return err
	}
	DB = db

	if err := Migrate(DB); err != nil {
		return err
	}

	if err := Populate(context.Background(), DB, config.CatalogSeedPath); err != nil {
		// A broken seed file must not keep the API down
		logger.L().Error("catalog seed failed", zap.String("path", config.CatalogSeedPath), zap.Error(err))
	}
	return nil
}

// Open connects to postgres and configures the pool
func Open(dsn string) (*gorm.DB, error) {
	level := gormlogger.Silent
	if !config.IsProduction() && config.LogLevel == "debug" {
		level = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get the sql connection: %w", err)
	}
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates every table
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("failed to enable pgcrypto: %w", err)
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.Spell{},
		&models.Deck{},
		&models.Comment{},
		&models.PasswordReset{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Public deck listing filters on visibility and sorts by recency
	return db.Exec(`CREATE INDEX IF NOT EXISTS idx_decks_public_created ON decks (created_at DESC) WHERE is_public = true`).Error
}

// Populate imports the catalog seed file when the spell table is empty
func Populate(ctx context.Context, db *gorm.DB, seedPath string) error {
	if seedPath == "" {
		return nil
	}

	var count int64
	if err := db.WithContext(ctx).Model(&models.Spell{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	spells, err := catalog.LoadFile(seedPath)
	if err != nil {
		return err
	}
	imported, err := catalog.Import(ctx, db, spells)
	if err != nil {
		return err
	}
	logger.L().Info("catalog seeded", zap.String("path", seedPath), zap.Int("spells", imported))
	return nil
}

// Close releases the connection pools
func Close() error {
	if REDIS != nil {
		_ = REDIS.Close()
	}
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
