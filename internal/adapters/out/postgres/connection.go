package postgres

import (
	"fmt"
	"time"

	"valet/internal/adapters/out/postgres/orderrepo"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	// DriverPgx uses the pgx stdlib driver bundled with gorm.io/driver/postgres.
	DriverPgx = "pgx"
	// DriverPq uses github.com/lib/pq.
	DriverPq = "postgres"
)

// Config describes the connection to the remote order store.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	Driver   string
}

// DSN renders the key/value connection string understood by both drivers.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Open connects to PostgreSQL through the configured driver and migrates the
// orders table. Slow statements and errors are written to logger.
func Open(cfg Config, logger *zap.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(zapWriter{logger.Sugar()}, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err = Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the orders table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&orderrepo.OrderDTO{}); err != nil {
		return fmt.Errorf("failed to migrate orders table: %w", err)
	}
	return nil
}

func dialectorFor(cfg Config) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", DriverPgx:
		return postgresdriver.Open(cfg.DSN()), nil
	case DriverPq:
		return postgresdriver.New(postgresdriver.Config{
			DriverName: DriverPq,
			DSN:        cfg.DSN(),
		}), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

type zapWriter struct {
	log *zap.SugaredLogger
}

func (w zapWriter) Printf(format string, args ...any) {
	w.log.Infof(format, args...)
}
