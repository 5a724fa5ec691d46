package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

func init() {
	// Load env from .env
	godotenv.Load()
}

func DatabaseDriver() string {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("DB_DRIVER")))
	if v == "" {
		return DriverMySQL
	}
	return v
}

func mysqlDSN() string {
	dbHost := os.Getenv("DB_HOST")
	network := "tcp"
	address := fmt.Sprintf("%s:%s", dbHost, os.Getenv("DB_PORT"))

	// DB_HOST=/cloudsql/<CONNECTION_NAME> connects through the Cloud SQL Auth Proxy socket.
	if strings.HasPrefix(dbHost, "/cloudsql/") {
		network = "unix"
		address = dbHost
	}

	return fmt.Sprintf("%s:%s@%s(%s)/%s?parseTime=true&loc=UTC",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		network,
		address,
		os.Getenv("DB_NAME"),
	)
}

func sqlitePath() string {
	if v := strings.TrimSpace(os.Getenv("SQLITE_PATH")); v != "" {
		return v
	}
	return "workshop.db"
}

// ConnectDatabaseWithRetry opens the configured database, retrying with capped
// exponential backoff until it succeeds.
func ConnectDatabaseWithRetry() *gorm.DB {
	var attempt int
	for {
		attempt++
		conn, err := OpenDatabase(DatabaseDriver())
		if err == nil {
			log.Printf("connected to database (driver=%s attempt=%d)", DatabaseDriver(), attempt)
			return conn
		}

		sleep := time.Second * time.Duration(1<<min(attempt, 5))
		if sleep > 30*time.Second {
			sleep = 30 * time.Second
		}
		log.Printf("failed to connect database (attempt=%d): %v; retrying in %s", attempt, err, sleep)
		time.Sleep(sleep)
	}
}

// OpenDatabase opens one connection pool for driver without retrying.
func OpenDatabase(driver string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverMySQL:
		dialector = mysql.Open(mysqlDSN())
	case DriverSQLite:
		dialector = sqlite.Open(sqlitePath())
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	conn, err := gorm.Open(dialector, initConfig())
	if err != nil {
		return nil, err
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	if driver == DriverSQLite {
		// SQLite allows one writer; a single connection serialises transactions.
		sqlDB.SetMaxOpenConns(1)
	} else {
		maxOpen := intFromEnv("DB_MAX_OPEN_CONNS", 50)
		maxIdle := intFromEnv("DB_MAX_IDLE_CONNS", 25)
		connMaxLife := time.Duration(intFromEnv("DB_CONN_MAX_LIFETIME_MINUTES", 5)) * time.Minute
		if maxOpen > 0 {
			sqlDB.SetMaxOpenConns(maxOpen)
		}
		if maxIdle >= 0 {
			sqlDB.SetMaxIdleConns(maxIdle)
		}
		if connMaxLife > 0 {
			sqlDB.SetConnMaxLifetime(connMaxLife)
		}
	}

	if pluginErr := conn.Use(otelgorm.NewPlugin()); pluginErr != nil {
		log.Printf("db connected but failed to install otelgorm plugin: %v", pluginErr)
	}
	return conn, nil
}

// OpenMemoryDatabase opens a private in-memory SQLite database. Used by tests
// and the demo seed.
func OpenMemoryDatabase() (*gorm.DB, error) {
	conn, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), initConfig())
	if err != nil {
		return nil, err
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return conn, nil
}

func CloseDatabase(conn *gorm.DB) {
	if conn == nil {
		return
	}
	if sqlDB, err := conn.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func intFromEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func initConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         initLog(),
		NamingStrategy: initNamingStrategy(),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// initLog only surfaces errors and slow queries.
func initLog() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			Colorful:                  false,
			LogLevel:                  logger.Error,
			SlowThreshold:             time.Second,
			IgnoreRecordNotFoundError: true,
		},
	)
}

func initNamingStrategy() *schema.NamingStrategy {
	return &schema.NamingStrategy{
		SingularTable: false,
		TablePrefix:   "",
	}
}
