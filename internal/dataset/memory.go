package dataset

import (
	"context"
	"sort"

	"github.com/chrissnell/climateapi/internal/climate"
)

// MemoryStore serves the dataset from memory. The slices are never modified after
// construction, so concurrent readers need no locking.
type MemoryStore struct {
	stations     []climate.Station
	measurements []climate.Measurement
}

// NewMemoryStore creates a store over the given records, kept in the order given
func NewMemoryStore(stations []climate.Station, measurements []climate.Measurement) *MemoryStore {
	return &MemoryStore{
		stations:     append([]climate.Station(nil), stations...),
		measurements: append([]climate.Measurement(nil), measurements...),
	}
}

// NewMemoryStoreFromFiles loads the station and measurement CSV files into a new store
func NewMemoryStoreFromFiles(stationsPath, measurementsPath string) (*MemoryStore, error) {
	stations, measurements, err := LoadFiles(stationsPath, measurementsPath)
	if err != nil {
		return nil, err
	}
	return NewMemoryStore(stations, measurements), nil
}

// StationIDs returns station identifiers in load order
func (m *MemoryStore) StationIDs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(m.stations))
	for _, s := range m.stations {
		ids = append(ids, s.Station)
	}
	return ids, nil
}

// TemperatureStats summarizes tobs over the matching measurements
func (m *MemoryStore) TemperatureStats(ctx context.Context, f climate.Filter) (climate.Stats, error) {
	if err := ctx.Err(); err != nil {
		return climate.Stats{}, err
	}

	var temps []float64
	for _, ms := range m.measurements {
		if f.Match(ms.Date) {
			temps = append(temps, ms.Tobs)
		}
	}
	return climate.Summarize(temps), nil
}

// Observations returns the matching measurements sorted by date. Rows sharing a
// date keep their load order.
func (m *MemoryStore) Observations(ctx context.Context, f climate.Filter) ([]climate.Observation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	obs := make([]climate.Observation, 0)
	for _, ms := range m.measurements {
		if f.Match(ms.Date) {
			obs = append(obs, climate.Observation{Date: ms.Date, Tobs: ms.Tobs, Prcp: ms.Prcp})
		}
	}
	sort.SliceStable(obs, func(i, j int) bool {
		return obs[i].Date < obs[j].Date
	})
	return obs, nil
}

// LatestDate returns the greatest stored date
func (m *MemoryStore) LatestDate(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var latest string
	for _, ms := range m.measurements {
		if ms.Date > latest {
			latest = ms.Date
		}
	}
	return latest, nil
}

// Ping always succeeds; the data is already in memory
func (m *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}
