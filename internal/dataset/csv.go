// Package dataset reads the climate dataset from its CSV distribution and serves it
// from memory.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chrissnell/climateapi/internal/climate"
)

var (
	stationColumns     = []string{"station", "name", "latitude", "longitude", "elevation"}
	measurementColumns = []string{"station", "date", "prcp", "tobs"}
)

// ReadStations reads station rows from a CSV stream with a header line. Columns are
// matched by name, so extra columns (such as an id) are ignored.
func ReadStations(r io.Reader) ([]climate.Station, error) {
	reader, idx, err := openCSV(r, stationColumns)
	if err != nil {
		return nil, fmt.Errorf("error reading stations header: %w", err)
	}

	var stations []climate.Station
	for line := 2; ; line++ {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading stations line %d: %w", line, err)
		}

		s := climate.Station{
			ID:      len(stations) + 1,
			Station: field(rec, idx, "station"),
			Name:    field(rec, idx, "name"),
		}
		if s.Latitude, err = parseFloat(field(rec, idx, "latitude")); err != nil {
			return nil, fmt.Errorf("stations line %d: latitude: %w", line, err)
		}
		if s.Longitude, err = parseFloat(field(rec, idx, "longitude")); err != nil {
			return nil, fmt.Errorf("stations line %d: longitude: %w", line, err)
		}
		if s.Elevation, err = parseFloat(field(rec, idx, "elevation")); err != nil {
			return nil, fmt.Errorf("stations line %d: elevation: %w", line, err)
		}
		stations = append(stations, s)
	}

	return stations, nil
}

// ReadMeasurements reads measurement rows from a CSV stream with a header line. An
// empty prcp cell is kept as a missing value; tobs is required.
func ReadMeasurements(r io.Reader) ([]climate.Measurement, error) {
	reader, idx, err := openCSV(r, measurementColumns)
	if err != nil {
		return nil, fmt.Errorf("error reading measurements header: %w", err)
	}

	var measurements []climate.Measurement
	for line := 2; ; line++ {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading measurements line %d: %w", line, err)
		}

		m := climate.Measurement{
			ID:      len(measurements) + 1,
			Station: field(rec, idx, "station"),
			Date:    field(rec, idx, "date"),
		}
		if raw := field(rec, idx, "prcp"); raw != "" {
			p, err := parseFloat(raw)
			if err != nil {
				return nil, fmt.Errorf("measurements line %d: prcp: %w", line, err)
			}
			m.Prcp = &p
		}
		if m.Tobs, err = parseFloat(field(rec, idx, "tobs")); err != nil {
			return nil, fmt.Errorf("measurements line %d: tobs: %w", line, err)
		}
		measurements = append(measurements, m)
	}

	return measurements, nil
}

// LoadFiles reads the station and measurement CSV files
func LoadFiles(stationsPath, measurementsPath string) ([]climate.Station, []climate.Measurement, error) {
	sf, err := os.Open(stationsPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open stations file: %w", err)
	}
	defer sf.Close()

	stations, err := ReadStations(sf)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", stationsPath, err)
	}

	mf, err := os.Open(measurementsPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open measurements file: %w", err)
	}
	defer mf.Close()

	measurements, err := ReadMeasurements(mf)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", measurementsPath, err)
	}

	return stations, measurements, nil
}

func openCSV(r io.Reader, required []string) (*csv.Reader, map[string]int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, nil, err
	}

	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var missing []string
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, nil, fmt.Errorf("missing columns %v in header %v", missing, headers)
	}

	// Rows may carry fewer cells than the header when trailing values are empty
	reader.FieldsPerRecord = -1

	return reader, idx, nil
}

func field(rec []string, idx map[string]int, name string) string {
	i := idx[name]
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
