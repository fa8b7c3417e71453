// Package climate holds the station and measurement model of the climate dataset
// and the aggregation engine that answers range, daily-normal and window queries.
package climate

// Station is a fixed observation point from the dataset
type Station struct {
	ID        int
	Station   string
	Name      string
	Latitude  float64
	Longitude float64
	Elevation float64
}

// Measurement is one observational record. Station is not required to resolve to a
// known Station and Date is kept as the ISO text stored in the dataset.
type Measurement struct {
	ID      int
	Station string
	Date    string
	Prcp    *float64
	Tobs    float64
}

// Observation is a single (date, temperature, precipitation) row returned by window queries
type Observation struct {
	Date string
	Tobs float64
	Prcp *float64
}

// Stats is a min/avg/max temperature triple. All three values are nil when no rows
// matched the query.
type Stats struct {
	TMin  *float64
	TAvg  *float64
	TMax  *float64
	Count int
}

// Empty reports whether the triple was computed over zero rows
func (s Stats) Empty() bool {
	return s.TMin == nil && s.TAvg == nil && s.TMax == nil
}
