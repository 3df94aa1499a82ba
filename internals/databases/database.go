package database

import (
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"vetmissions_backend/internals/configs"
	galleryModel "vetmissions_backend/internals/features/content/galleries/model"
	missionModel "vetmissions_backend/internals/features/content/missions/model"
	newsModel "vetmissions_backend/internals/features/content/news/model"
	settingModel "vetmissions_backend/internals/features/content/settings/model"
)

// ConnectDB opens the content database. Postgres is the production store;
// sqlite serves local development.
func ConnectDB(cfg *configs.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		log.Info().Str("path", cfg.SQLitePath).Msg("connecting to sqlite")
		dialector = sqlite.Open(cfg.SQLitePath)
	case "postgres", "":
		log.Info().Str("host", cfg.DBHost).Msg("connecting to postgres")
		dialector = postgres.New(postgres.Config{
			DSN:                  postgresDSN(cfg),
			PreferSimpleProtocol: true,
		})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	level := gormLogger.Warn
	if cfg.Environment == "development" {
		level = gormLogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: configs.NewGormLogger(level)})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	log.Info().Msg("database connected")
	return db, nil
}

// postgresDSN builds the connection URL; credentials are escaped.
func postgresDSN(cfg *configs.Config) string {
	q := url.Values{}
	q.Set("sslmode", cfg.DBSSLMode)
	q.Set("application_name", "vetmissions")
	q.Set("options", "-c statement_timeout=3000")

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.DBUser, cfg.DBPassword),
		Host:     net.JoinHostPort(cfg.DBHost, cfg.DBPort),
		Path:     "/" + cfg.DBName,
		RawQuery: q.Encode(),
	}
	return u.String()
}

func TunePool(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Error().Err(err).Msg("pool tune")
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate creates or updates the content tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&missionModel.MissionModel{},
		&newsModel.NewsModel{},
		&galleryModel.GalleryModel{},
		&settingModel.SettingModel{},
	)
}

func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func Close(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
