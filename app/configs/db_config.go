package configs

import (
	"fmt"
	"net"
	"time"

	"github.com/glebarez/sqlite"
	gomysql "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MySQLDSN builds the go-sql-driver DSN for the configured database.
func (c *Config) MySQLDSN() string {
	dsn := gomysql.NewConfig()
	dsn.User = c.DBUser
	dsn.Passwd = c.DBPassword
	dsn.Net = "tcp"
	dsn.Addr = net.JoinHostPort(c.DBHost, c.DBPort)
	dsn.DBName = c.DBName
	dsn.ParseTime = true
	dsn.Loc = time.Local
	dsn.Params = map[string]string{"charset": "utf8mb4"}
	return dsn.FormatDSN()
}

func (c *Config) dialector() gorm.Dialector {
	if c.DBDriver == "mysql" {
		return mysql.Open(c.MySQLDSN())
	}
	return sqlite.Open(c.SQLitePath)
}

// OpenConnection opens the database and pings it, retrying while the server
// is still coming up.
func OpenConnection(cfg *Config, log *zap.Logger) (*gorm.DB, error) {
	gormLogLevel := logger.Warn
	if !cfg.IsProduction() {
		gormLogLevel = logger.Info
	}

	maxRetries := cfg.DBMaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		log.Info("connecting to database",
			zap.String("driver", cfg.DBDriver),
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", maxRetries))

		db, err := gorm.Open(cfg.dialector(), &gorm.Config{Logger: logger.Default.LogMode(gormLogLevel)})
		if err == nil {
			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				pingErr = sqlDB.Ping()
				if pingErr == nil {
					log.Info("database connection successful", zap.String("driver", cfg.DBDriver))
					return db, nil
				}
			}
			err = pingErr
		}

		lastErr = err
		log.Warn("database not ready", zap.Error(err), zap.Duration("retry_in", cfg.DBRetryDelay))
		if i < maxRetries-1 {
			time.Sleep(cfg.DBRetryDelay)
		}
	}

	return nil, fmt.Errorf("connect to %s database after %d attempts: %w", cfg.DBDriver, maxRetries, lastErr)
}
