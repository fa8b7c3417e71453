package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const stationsCSV = `station,name,latitude,longitude,elevation
USC00519397,"WAIKIKI 717.2, HI US",21.2716,-157.8168,3.0
USC00513117,"KANEOHE 838.1, HI US",21.4234,-157.8015,14.6
`

const measurementsCSV = `station,date,prcp,tobs
USC00519397,2010-01-01,0.08,65
USC00519397,2010-01-02,,63
USC00513117,2010-01-03,0.0,74
`

func TestReadStations(t *testing.T) {
	stations, err := ReadStations(strings.NewReader(stationsCSV))
	if err != nil {
		t.Fatalf("ReadStations returned error: %v", err)
	}
	if len(stations) != 2 {
		t.Fatalf("got %d stations, want 2", len(stations))
	}

	s := stations[0]
	if s.ID != 1 || s.Station != "USC00519397" || s.Name != "WAIKIKI 717.2, HI US" {
		t.Errorf("unexpected first station: %+v", s)
	}
	if s.Latitude != 21.2716 || s.Longitude != -157.8168 || s.Elevation != 3.0 {
		t.Errorf("unexpected coordinates: %+v", s)
	}
	if stations[1].ID != 2 {
		t.Errorf("second station ID = %d, want 2", stations[1].ID)
	}
}

func TestReadMeasurements(t *testing.T) {
	measurements, err := ReadMeasurements(strings.NewReader(measurementsCSV))
	if err != nil {
		t.Fatalf("ReadMeasurements returned error: %v", err)
	}
	if len(measurements) != 3 {
		t.Fatalf("got %d measurements, want 3", len(measurements))
	}

	first := measurements[0]
	if first.Station != "USC00519397" || first.Date != "2010-01-01" || first.Tobs != 65 {
		t.Errorf("unexpected first measurement: %+v", first)
	}
	if first.Prcp == nil || *first.Prcp != 0.08 {
		t.Errorf("first prcp = %v, want 0.08", first.Prcp)
	}
	if measurements[1].Prcp != nil {
		t.Errorf("empty prcp cell should be nil, got %v", *measurements[1].Prcp)
	}
	if measurements[2].Prcp == nil || *measurements[2].Prcp != 0 {
		t.Errorf("zero prcp should be kept, got %v", measurements[2].Prcp)
	}
}

func TestReadMeasurementsColumnOrder(t *testing.T) {
	input := "id,tobs,date,station,prcp\n7,70,2011-05-05,USC00519281,0.1\n"

	measurements, err := ReadMeasurements(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadMeasurements returned error: %v", err)
	}
	if len(measurements) != 1 {
		t.Fatalf("got %d measurements, want 1", len(measurements))
	}
	m := measurements[0]
	if m.Station != "USC00519281" || m.Date != "2011-05-05" || m.Tobs != 70 {
		t.Errorf("unexpected measurement: %+v", m)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		read  func(string) error
	}{
		{
			name:  "missing measurement column",
			input: "station,date,prcp\nUSC00519397,2010-01-01,0.08\n",
			read: func(s string) error {
				_, err := ReadMeasurements(strings.NewReader(s))
				return err
			},
		},
		{
			name:  "bad tobs",
			input: "station,date,prcp,tobs\nUSC00519397,2010-01-01,0.08,warm\n",
			read: func(s string) error {
				_, err := ReadMeasurements(strings.NewReader(s))
				return err
			},
		},
		{
			name:  "missing tobs value",
			input: "station,date,prcp,tobs\nUSC00519397,2010-01-01,0.08\n",
			read: func(s string) error {
				_, err := ReadMeasurements(strings.NewReader(s))
				return err
			},
		},
		{
			name:  "bad latitude",
			input: "station,name,latitude,longitude,elevation\nUSC00519397,WAIKIKI,north,-157.8,3\n",
			read: func(s string) error {
				_, err := ReadStations(strings.NewReader(s))
				return err
			},
		},
		{
			name:  "empty input",
			input: "",
			read: func(s string) error {
				_, err := ReadStations(strings.NewReader(s))
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.read(tt.input); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	sp := filepath.Join(dir, "stations.csv")
	mp := filepath.Join(dir, "measurements.csv")
	if err := os.WriteFile(sp, []byte(stationsCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(mp, []byte(measurementsCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	stations, measurements, err := LoadFiles(sp, mp)
	if err != nil {
		t.Fatalf("LoadFiles returned error: %v", err)
	}
	if len(stations) != 2 || len(measurements) != 3 {
		t.Errorf("got %d stations and %d measurements", len(stations), len(measurements))
	}

	if _, _, err := LoadFiles(filepath.Join(dir, "missing.csv"), mp); err == nil {
		t.Error("expected error for missing stations file")
	}
}
