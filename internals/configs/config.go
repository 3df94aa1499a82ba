package configs

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// Config is the typed runtime configuration of the API server.
type Config struct {
	Environment string
	Port        string

	DBDriver   string // "postgres" | "sqlite"
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	CorsOrigins  []string
	ListCacheTTL time.Duration
	ListCacheMax int
	LogLevel     string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	ContactTo    string

	SeedOnStart bool
	SeedDir     string
}

// =======================
// ENV LOADER
// =======================

// LoadEnv loads .env (outside production) and resolves the typed Config from
// the environment, falling back to defaults.
func LoadEnv() *Config {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Info().Msg("no .env file found, using system environment")
		} else {
			log.Info().Msg(".env file loaded")
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Environment:  v.GetString("APP_ENV"),
		Port:         v.GetString("PORT"),
		DBDriver:     strings.ToLower(v.GetString("DB_DRIVER")),
		DBHost:       v.GetString("DB_HOST"),
		DBPort:       v.GetString("DB_PORT"),
		DBUser:       v.GetString("DB_USER"),
		DBPassword:   v.GetString("DB_PASSWORD"),
		DBName:       v.GetString("DB_NAME"),
		DBSSLMode:    v.GetString("DB_SSLMODE"),
		SQLitePath:   v.GetString("SQLITE_PATH"),
		CorsOrigins:  splitList(v.GetString("CORS_ORIGINS")),
		ListCacheTTL: v.GetDuration("LIST_CACHE_TTL"),
		ListCacheMax: v.GetInt("LIST_CACHE_SIZE"),
		LogLevel:     v.GetString("LOG_LEVEL"),
		SMTPHost:     v.GetString("SMTP_HOST"),
		SMTPPort:     v.GetString("SMTP_PORT"),
		SMTPUsername: v.GetString("SMTP_USERNAME"),
		SMTPPassword: v.GetString("SMTP_PASSWORD"),
		SMTPFrom:     v.GetString("SMTP_FROM"),
		ContactTo:    v.GetString("CONTACT_TO"),
		SeedOnStart:  v.GetBool("SEED_ON_START"),
		SeedDir:      v.GetString("SEED_DIR"),
	}

	if cfg.SMTPHost == "" {
		log.Warn().Msg("SMTP_HOST is not set, contact form mail will fail")
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "3000")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "require")
	v.SetDefault("SQLITE_PATH", "vetmissions.db")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")
	v.SetDefault("LIST_CACHE_TTL", "30s")
	v.SetDefault("LIST_CACHE_SIZE", 64)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SMTP_PORT", "587")
	v.SetDefault("CONTACT_TO", "info@vetmissions.org")
	v.SetDefault("SEED_ON_START", false)
	v.SetDefault("SEED_DIR", "internals/seeds/data")
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
	Logger        zerolog.Logger
}

func NewGormLogger(level gormLogger.LogLevel) gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      level,
		Logger:        log.Logger.With().Str("component", "gorm").Logger(),
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	nl := *l
	nl.LogLevel = level
	return &nl
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		l.Logger.Info().Msgf(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		l.Logger.Warn().Msgf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		l.Logger.Error().Msgf(msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && l.LogLevel >= gormLogger.Error:
		// not-found lookups are an expected outcome for controllers
		if errors.Is(err, gormLogger.ErrRecordNotFound) {
			return
		}
		l.Logger.Error().Err(err).Str("file", file).Dur("elapsed", elapsed).Int64("rows", rows).Msg(sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		l.Logger.Warn().Str("file", file).Dur("elapsed", elapsed).Int64("rows", rows).Msg("slow sql: " + sql)
	case l.LogLevel >= gormLogger.Info:
		l.Logger.Debug().Str("file", file).Dur("elapsed", elapsed).Int64("rows", rows).Msg(sql)
	}
}
