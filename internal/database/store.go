package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/chrissnell/climateapi/internal/climate"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store implements climate.Store over the station and measurement tables.
// Aggregates are computed by the database.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store over an open GORM handle
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// session scopes the handle to ctx and turns on SQL statement logging when the
// request asked for it
func (s *Store) session(ctx context.Context) *gorm.DB {
	db := s.db.WithContext(ctx)
	if SQLDebugEnabled(ctx) {
		db = db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Info)})
	}
	return db
}

// measurements returns a query over the measurement table constrained by f. The
// month-day predicate compares the MM-DD tail of the ISO date, which SQLite and
// PostgreSQL both express as SUBSTR(date, 6, 5).
func (s *Store) measurements(ctx context.Context, f climate.Filter) *gorm.DB {
	q := s.session(ctx).Model(&MeasurementRecord{})
	if f.From != "" {
		q = q.Where("date >= ?", f.From)
	}
	if f.To != "" {
		q = q.Where("date <= ?", f.To)
	}
	if f.MonthDay != "" {
		q = q.Where("SUBSTR(date, 6, 5) = ?", f.MonthDay)
	}
	return q
}

// StationIDs returns the station column of every station row in table order
func (s *Store) StationIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := s.session(ctx).Model(&StationRecord{}).Order("id ASC").Pluck("station", &ids).Error; err != nil {
		return nil, fmt.Errorf("error querying stations: %w", err)
	}
	return ids, nil
}

// TemperatureStats aggregates tobs over the measurements matching f. The average is
// taken over a FLOAT cast so integer-typed tobs columns are not truncated.
func (s *Store) TemperatureStats(ctx context.Context, f climate.Filter) (climate.Stats, error) {
	var row statsRow
	err := s.measurements(ctx, f).
		Select("MIN(tobs) AS tmin, AVG(CAST(tobs AS FLOAT)) AS tavg, MAX(tobs) AS tmax, COUNT(tobs) AS n").
		Scan(&row).Error
	if err != nil {
		return climate.Stats{}, fmt.Errorf("error aggregating temperatures: %w", err)
	}

	if row.Count == 0 {
		return climate.Stats{}, nil
	}
	return climate.Stats{
		TMin:  row.TMin,
		TAvg:  row.TAvg,
		TMax:  row.TMax,
		Count: int(row.Count),
	}, nil
}

// Observations returns the measurements matching f ordered by date, ties broken
// by row id so that repeated calls return identical sequences
func (s *Store) Observations(ctx context.Context, f climate.Filter) ([]climate.Observation, error) {
	var rows []observationRow
	err := s.measurements(ctx, f).
		Select("date, tobs, prcp").
		Order("date ASC").
		Order("id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("error querying observations: %w", err)
	}

	obs := make([]climate.Observation, 0, len(rows))
	for _, r := range rows {
		obs = append(obs, climate.Observation{Date: r.Date, Tobs: r.Tobs, Prcp: r.Prcp})
	}
	return obs, nil
}

// LatestDate returns MAX(date) over the measurement table
func (s *Store) LatestDate(ctx context.Context) (string, error) {
	var latest sql.NullString
	err := s.measurements(ctx, climate.Filter{}).Select("MAX(date)").Row().Scan(&latest)
	if err != nil {
		return "", fmt.Errorf("error querying latest date: %w", err)
	}
	return latest.String, nil
}

// Ping checks the database connection
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("error getting sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
