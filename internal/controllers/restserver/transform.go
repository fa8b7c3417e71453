package restserver

import (
	"github.com/chrissnell/climateapi/internal/climate"
)

// transformPrecipitation converts window observations to the precipitation listing
func transformPrecipitation(obs []climate.Observation) []PrecipitationEntry {
	entries := make([]PrecipitationEntry, 0, len(obs))
	for _, o := range obs {
		entries = append(entries, PrecipitationEntry{Date: o.Date, TOBS: o.Tobs})
	}
	return entries
}

// transformTOBS converts window observations to the temperature-only listing
func transformTOBS(obs []climate.Observation) []TOBSEntry {
	entries := make([]TOBSEntry, 0, len(obs))
	for _, o := range obs {
		entries = append(entries, TOBSEntry{TOBS: o.Tobs})
	}
	return entries
}

func transformStations(ids []string) []StationEntry {
	entries := make([]StationEntry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, StationEntry{Station: id})
	}
	return entries
}

// transformStats wraps a single triple in a one-element array
func transformStats(s climate.Stats) []TemperatureSummary {
	return []TemperatureSummary{{TMin: s.TMin, TAvg: s.TAvg, TMax: s.TMax}}
}
