package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds everything the app needs at startup. It is constructed once
// in main and passed explicitly to the components that need it.
type Config struct {
	DBDriver   string // "mysql" or "sqlite"
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	SQLitePath string
	Port       string
	ReportDir  string
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads configuration from environment variables (godotenv is loaded
// beforehand in main) with sensible development defaults.
func Load() Config {
	return Config{
		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBName:     getEnv("DB_NAME", "reservation_app"),
		SQLitePath: getEnv("SQLITE_PATH", "reservation_app.db"),
		Port:       getEnv("PORT", "8080"),
		ReportDir:  getEnv("REPORT_DIR", "reports"),
	}
}

// MySQLDSN builds the DSN for the mysql driver.
func (c Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// InitDB opens the database connection for the configured driver.
func InitDB(cfg Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	switch cfg.DBDriver {
	case "mysql":
		return gorm.Open(mysql.Open(cfg.MySQLDSN()), gormCfg)
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.SQLitePath), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}
