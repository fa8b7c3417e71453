package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/chrissnell/climateapi/internal/log"
	"github.com/chrissnell/climateapi/pkg/config"
	"go.uber.org/zap"
)

// Client holds the connection to the SQL database that stores the climate dataset
type Client struct {
	config *config.StorageData
	DB     *gorm.DB // Exported so it can be accessed from other packages
	logger *zap.SugaredLogger
}

// NewClient creates a new database client
func NewClient(c *config.StorageData, logger *zap.SugaredLogger) *Client {
	if logger == nil {
		logger = log.GetSugaredLogger()
	}
	return &Client{
		config: c,
		logger: logger,
	}
}

// Connect opens the database named by the storage configuration
func (c *Client) Connect() error {
	dialector, err := Dialector(c.config)
	if err != nil {
		return err
	}

	c.logger.Infof("connecting to %s database...", c.config.Backend)
	c.DB, err = CreateConnection(dialector)
	if err != nil {
		c.logger.Warnf("warning: unable to create a %s connection: %v", c.config.Backend, err)
		return err
	}

	if c.config.Postgres != nil && c.config.Backend == config.BackendPostgres {
		if err := applyPoolLimits(c.DB, c.config.Postgres.MaxOpenConns); err != nil {
			return err
		}
	}

	c.logger.Infof("%s connection successful", c.config.Backend)
	return nil
}

// Store returns the observation store backed by this client's connection
func (c *Client) Store() *Store {
	return NewStore(c.DB)
}

// Close releases the underlying connection pool
func (c *Client) Close() error {
	if c.DB == nil {
		return nil
	}
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Dialector picks the GORM dialector for the configured SQL backend
func Dialector(c *config.StorageData) (gorm.Dialector, error) {
	switch c.Backend {
	case config.BackendSQLite:
		if c.SQLite == nil || c.SQLite.Path == "" {
			return nil, fmt.Errorf("sqlite backend requires storage.sqlite.path")
		}
		return sqlite.Open(c.SQLite.Path), nil
	case config.BackendPostgres:
		if c.Postgres == nil || c.Postgres.ConnectionString == "" {
			return nil, fmt.Errorf("postgres backend requires storage.postgres.connection_string")
		}
		return postgres.Open(c.Postgres.ConnectionString), nil
	default:
		return nil, fmt.Errorf("storage backend %q is not a SQL backend", c.Backend)
	}
}

// CreateConnection is a helper function to create a database connection with standard GORM configuration
func CreateConnection(dialector gorm.Dialector) (*gorm.DB, error) {
	// Create a logger for gorm
	dbLogger := logger.New(
		zap.NewStdLog(log.GetZapLogger()),
		logger.Config{
			SlowThreshold:             time.Second, // Slow SQL threshold
			LogLevel:                  logger.Warn, // Log level
			IgnoreRecordNotFoundError: true,        // Ignore ErrRecordNotFound error for logger
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{Logger: dbLogger})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func applyPoolLimits(db *gorm.DB, maxOpen int) error {
	if maxOpen <= 0 {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("error getting sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxOpen)
	return nil
}
