package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/storefront/commerce-api/internal/core/domain"
)

const defaultTimeout = 5 * time.Second

// Config captures the settings for the relational store.
type Config struct {
	URL      string
	MaxConns int
	Timeout  time.Duration
}

// Connect opens a GORM pool over Postgres and validates it with a ping.
// Duplicate-key errors are translated to gorm.ErrDuplicatedKey.
func Connect(ctx context.Context, cfg Config) (*gorm.DB, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	db, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("postgres pool: %w", err)
	}
	if cfg.MaxConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxConns)
		sqlDB.SetMaxIdleConns(cfg.MaxConns / 2)
	}
	sqlDB.SetConnMaxIdleTime(15 * time.Minute)
	sqlDB.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return db, nil
}

// Migrate creates or updates every table and seeds user_types from the role
// table so stored ids and credential ordinals stay identical.
func Migrate(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	err := db.WithContext(ctx).AutoMigrate(
		&userTypeModel{},
		&userModel{},
		&userPaymentModel{},
		&passwordResetModel{},
		&categoryModel{},
		&categoryTypeModel{},
		&inventoryModel{},
		&productModel{},
		&promotionModel{},
		&cartModel{},
		&cartItemModel{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	roles := domain.Roles()
	rows := make([]userTypeModel, len(roles))
	for i, r := range roles {
		rows[i] = userTypeModel{ID: r.Ordinal(), UserType: string(r)}
	}
	err = db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_type"}),
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("seed user types: %w", err)
	}

	log.Info().Int("roles", len(rows)).Msg("relational schema ready")
	return nil
}

// Close releases the underlying pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks connectivity for readiness probes.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// forUpdate adds a row lock where the dialect supports one.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
