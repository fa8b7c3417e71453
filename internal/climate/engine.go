package climate

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Engine answers aggregate and window queries against a Store. It holds no state
// beyond its collaborators, so a single Engine is safe for concurrent use.
type Engine struct {
	store  Store
	logger *zap.SugaredLogger
}

// NewEngine creates a new aggregation engine over store
func NewEngine(store Store, logger *zap.SugaredLogger) *Engine {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Engine{
		store:  store,
		logger: logger,
	}
}

// RangeStats returns min/avg/max temperature over [start, end], both ends inclusive.
// A reversed range matches nothing and yields the null triple.
func (e *Engine) RangeStats(ctx context.Context, start, end time.Time) (Stats, error) {
	f := Filter{From: FormatDate(start), To: FormatDate(end)}
	if f.From > f.To {
		e.logger.Debugw("reversed date range will match no measurements", "start", f.From, "end", f.To)
	}

	stats, err := e.store.TemperatureStats(ctx, f)
	if err != nil {
		return Stats{}, fmt.Errorf("error querying range stats for %s..%s: %w", f.From, f.To, err)
	}
	return stats, nil
}

// StatsSince returns min/avg/max temperature for every measurement on or after start
func (e *Engine) StatsSince(ctx context.Context, start time.Time) (Stats, error) {
	f := Filter{From: FormatDate(start)}

	stats, err := e.store.TemperatureStats(ctx, f)
	if err != nil {
		return Stats{}, fmt.Errorf("error querying stats since %s: %w", f.From, err)
	}
	return stats, nil
}

// DailyNormals returns min/avg/max temperature for the calendar day key across
// every year on record
func (e *Engine) DailyNormals(ctx context.Context, key MonthDay) (Stats, error) {
	f := Filter{MonthDay: key.String()}

	stats, err := e.store.TemperatureStats(ctx, f)
	if err != nil {
		return Stats{}, fmt.Errorf("error querying daily normals for %s: %w", f.MonthDay, err)
	}
	return stats, nil
}

// ListStations returns every station identifier in store order
func (e *Engine) ListStations(ctx context.Context) ([]string, error) {
	ids, err := e.store.StationIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing stations: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// DefaultWindow resolves the trailing year of data ending on the latest date on
// record. The boolean is false when the store holds no measurements.
func (e *Engine) DefaultWindow(ctx context.Context) (Window, bool, error) {
	latest, err := e.store.LatestDate(ctx)
	if err != nil {
		return Window{}, false, fmt.Errorf("error querying latest date: %w", err)
	}
	if latest == "" {
		return Window{}, false, nil
	}

	end, err := time.Parse(DateLayout, latest)
	if err != nil {
		return Window{}, false, fmt.Errorf("latest date on record %q is malformed: %v", latest, err)
	}
	return TrailingYear(end), true, nil
}

// ObservationsInWindow returns the observations inside w ordered by date. A nil
// window means the trailing year of data on record.
func (e *Engine) ObservationsInWindow(ctx context.Context, w *Window) ([]Observation, error) {
	if w == nil {
		resolved, ok, err := e.DefaultWindow(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return []Observation{}, nil
		}
		w = &resolved
		e.logger.Debugw("resolved default observation window", "start", FormatDate(w.Start), "end", FormatDate(w.End))
	}

	f := w.filter()
	obs, err := e.store.Observations(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("error querying observations for %s..%s: %w", f.From, f.To, err)
	}
	if obs == nil {
		obs = []Observation{}
	}
	return obs, nil
}

// Ping checks that the underlying store is reachable
func (e *Engine) Ping(ctx context.Context) error {
	return e.store.Ping(ctx)
}
