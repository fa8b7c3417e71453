package climate

import "context"

// Filter selects measurements by date. From and To are inclusive bounds in
// YYYY-MM-DD form; MonthDay matches the MM-DD tail of the date in any year.
// Empty fields do not constrain the selection.
type Filter struct {
	From     string
	To       string
	MonthDay string
}

// Match reports whether a stored date satisfies the filter. Stores that evaluate
// filters themselves (SQL) must give the same answer for every date.
func (f Filter) Match(date string) bool {
	if f.From != "" && date < f.From {
		return false
	}
	if f.To != "" && date > f.To {
		return false
	}
	if f.MonthDay != "" {
		if len(date) < len(DateLayout) || date[5:10] != f.MonthDay {
			return false
		}
	}
	return true
}

// Store is the read-only observation store the engine queries
type Store interface {
	// StationIDs returns every station identifier in the store's natural order
	StationIDs(ctx context.Context) ([]string, error)

	// TemperatureStats returns min/avg/max of tobs over the measurements matching f
	TemperatureStats(ctx context.Context, f Filter) (Stats, error)

	// Observations returns the measurements matching f ordered by date ascending
	Observations(ctx context.Context, f Filter) ([]Observation, error)

	// LatestDate returns the greatest stored date, or "" when there are no measurements
	LatestDate(ctx context.Context) (string, error)

	Ping(ctx context.Context) error
}
