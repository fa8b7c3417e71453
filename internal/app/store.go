package app

import (
	"context"
	"fmt"

	"github.com/chrissnell/climateapi/internal/climate"
	"github.com/chrissnell/climateapi/internal/database"
	"github.com/chrissnell/climateapi/internal/dataset"
	"github.com/chrissnell/climateapi/pkg/config"
	"go.uber.org/zap"
)

// OpenStore opens the observation store selected by the storage configuration.
// The returned close function releases whatever the store holds open.
func OpenStore(ctx context.Context, cfg *config.StorageData, logger *zap.SugaredLogger) (climate.Store, func(), error) {
	switch cfg.Backend {
	case config.BackendSQLite, config.BackendPostgres:
		client := database.NewClient(cfg, logger.Named("database"))
		if err := client.Connect(); err != nil {
			return nil, nil, fmt.Errorf("could not connect to %s database: %w", cfg.Backend, err)
		}
		store := client.Store()
		if err := store.Ping(ctx); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("could not reach %s database: %w", cfg.Backend, err)
		}
		return store, func() {
			if err := client.Close(); err != nil {
				logger.Warnf("error closing database: %v", err)
			}
		}, nil

	case config.BackendCSV:
		if cfg.CSV == nil {
			return nil, nil, fmt.Errorf("csv backend requires storage.csv settings")
		}
		logger.Infof("loading dataset from %s and %s", cfg.CSV.StationsFile, cfg.CSV.MeasurementsFile)
		store, err := dataset.NewMemoryStoreFromFiles(cfg.CSV.StationsFile, cfg.CSV.MeasurementsFile)
		if err != nil {
			return nil, nil, fmt.Errorf("could not load csv dataset: %w", err)
		}
		return store, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported storage backend: %s", cfg.Backend)
	}
}
