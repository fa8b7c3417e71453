package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"

	"github.com/chrissnell/climateapi/internal/climate"
	"github.com/chrissnell/climateapi/internal/database"
	"github.com/chrissnell/climateapi/internal/dataset"
	"github.com/chrissnell/climateapi/internal/log"
	"github.com/chrissnell/climateapi/pkg/config"
)

type Config struct {
	Backend          string
	SQLitePath       string
	DSN              string
	StationsFile     string
	MeasurementsFile string
	BatchSize        int
	Replace          bool
}

func main() {
	var cfg Config

	flag.StringVar(&cfg.Backend, "backend", config.BackendSQLite, "Target database: 'sqlite' or 'postgres'")
	flag.StringVar(&cfg.SQLitePath, "sqlite", config.DefaultSQLitePath, "SQLite database file to create or fill")
	flag.StringVar(&cfg.DSN, "dsn", "", "PostgreSQL connection string")
	flag.StringVar(&cfg.StationsFile, "stations", "Resources/hawaii_stations.csv", "Stations CSV file")
	flag.StringVar(&cfg.MeasurementsFile, "measurements", "Resources/hawaii_measurements.csv", "Measurements CSV file")
	flag.IntVar(&cfg.BatchSize, "batch", 1000, "Number of rows to insert per batch (sqlite)")
	flag.BoolVar(&cfg.Replace, "replace", false, "Delete existing rows before loading")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	flag.Parse()

	if err := log.Init(*debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(context.Background(), cfg); err != nil {
		log.Errorf("load failed: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config) error {
	stations, measurements, err := dataset.LoadFiles(cfg.StationsFile, cfg.MeasurementsFile)
	if err != nil {
		return err
	}
	log.Infof("read %d stations and %d measurements", len(stations), len(measurements))

	storage := &config.StorageData{Backend: cfg.Backend}
	switch cfg.Backend {
	case config.BackendSQLite:
		storage.SQLite = &config.SQLiteData{Path: cfg.SQLitePath}
	case config.BackendPostgres:
		if cfg.DSN == "" {
			return fmt.Errorf("-dsn is required for the postgres backend")
		}
		storage.Postgres = &config.PostgresData{ConnectionString: cfg.DSN}
	default:
		return fmt.Errorf("unsupported backend: %s", cfg.Backend)
	}

	client := database.NewClient(storage, log.GetSugaredLogger())
	if err := client.Connect(); err != nil {
		return err
	}
	defer client.Close()

	if err := database.AutoMigrate(client.DB); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if cfg.Backend == config.BackendPostgres {
		return copyToPostgres(ctx, cfg, stations, measurements)
	}
	return insertWithGorm(ctx, client.DB, cfg, stations, measurements)
}

// insertWithGorm loads both tables inside one transaction
func insertWithGorm(ctx context.Context, db *gorm.DB, cfg Config, stations []climate.Station, measurements []climate.Measurement) error {
	stationRows := make([]database.StationRecord, 0, len(stations))
	for _, s := range stations {
		stationRows = append(stationRows, database.NewStationRecord(s))
	}
	measurementRows := make([]database.MeasurementRecord, 0, len(measurements))
	for _, m := range measurements {
		measurementRows = append(measurementRows, database.NewMeasurementRecord(m))
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if cfg.Replace {
			if err := tx.Where("1 = 1").Delete(&database.MeasurementRecord{}).Error; err != nil {
				return fmt.Errorf("failed to clear measurements: %w", err)
			}
			if err := tx.Where("1 = 1").Delete(&database.StationRecord{}).Error; err != nil {
				return fmt.Errorf("failed to clear stations: %w", err)
			}
		}

		if len(stationRows) > 0 {
			if err := tx.CreateInBatches(stationRows, cfg.BatchSize).Error; err != nil {
				return fmt.Errorf("failed to insert stations: %w", err)
			}
		}
		if len(measurementRows) > 0 {
			if err := tx.CreateInBatches(measurementRows, cfg.BatchSize).Error; err != nil {
				return fmt.Errorf("failed to insert measurements: %w", err)
			}
		}

		log.Infof("inserted %d stations and %d measurements into %s", len(stationRows), len(measurementRows), cfg.SQLitePath)
		return nil
	})
}

// copyToPostgres streams both tables through COPY in one transaction
func copyToPostgres(ctx context.Context, cfg Config, stations []climate.Station, measurements []climate.Measurement) error {
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if cfg.Replace {
		if _, err := tx.Exec(ctx, "TRUNCATE measurement, station"); err != nil {
			return fmt.Errorf("failed to clear tables: %w", err)
		}
	}

	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{"station"},
		[]string{"id", "station", "name", "latitude", "longitude", "elevation"},
		pgx.CopyFromSlice(len(stations), func(i int) ([]any, error) {
			s := stations[i]
			return []any{s.ID, s.Station, s.Name, s.Latitude, s.Longitude, s.Elevation}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to copy stations: %w", err)
	}
	log.Infof("copied %d stations", n)

	n, err = tx.CopyFrom(ctx,
		pgx.Identifier{"measurement"},
		[]string{"id", "station", "date", "prcp", "tobs"},
		pgx.CopyFromSlice(len(measurements), func(i int) ([]any, error) {
			m := measurements[i]
			return []any{m.ID, m.Station, m.Date, m.Prcp, m.Tobs}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to copy measurements: %w", err)
	}
	log.Infof("copied %d measurements", n)

	// COPY bypasses the id sequences; move them past the loaded ids
	for _, table := range []string{"station", "measurement"} {
		q := fmt.Sprintf("SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), (SELECT MAX(id) FROM %[1]s))", table)
		if _, err := tx.Exec(ctx, q); err != nil {
			return fmt.Errorf("failed to advance %s id sequence: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}
