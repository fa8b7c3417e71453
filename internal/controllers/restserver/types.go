package restserver

// PrecipitationEntry is one row of the precipitation listing
type PrecipitationEntry struct {
	Date string  `json:"Date"`
	TOBS float64 `json:"TOBS"`
}

// TOBSEntry is one row of the temperature listing
type TOBSEntry struct {
	TOBS float64 `json:"TOBS"`
}

// StationEntry is one row of the station listing
type StationEntry struct {
	Station string `json:"Stations"`
}

// TemperatureSummary is a min/avg/max triple. Absent values encode as null.
type TemperatureSummary struct {
	TMin *float64 `json:"TMIN"`
	TAvg *float64 `json:"TAVG"`
	TMax *float64 `json:"TMAX"`
}

// HealthStatus is the body of the health check
type HealthStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}
