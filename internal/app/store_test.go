package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/chrissnell/climateapi/pkg/config"
	"go.uber.org/zap"
)

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()
	stations := filepath.Join(dir, "stations.csv")
	measurements := filepath.Join(dir, "measurements.csv")
	if err := os.WriteFile(stations, []byte("station,name,latitude,longitude,elevation\nUSC00519397,WAIKIKI,21.27,-157.82,3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(measurements, []byte("station,date,prcp,tobs\nUSC00519397,2010-01-01,0.08,65\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	logger := zap.NewNop().Sugar()
	ctx := context.Background()

	tests := []struct {
		name    string
		cfg     config.StorageData
		wantErr bool
	}{
		{
			name: "csv",
			cfg:  config.StorageData{Backend: config.BackendCSV, CSV: &config.CSVData{StationsFile: stations, MeasurementsFile: measurements}},
		},
		{
			name: "sqlite",
			cfg:  config.StorageData{Backend: config.BackendSQLite, SQLite: &config.SQLiteData{Path: filepath.Join(dir, "climate.sqlite")}},
		},
		{
			name:    "csv without files",
			cfg:     config.StorageData{Backend: config.BackendCSV},
			wantErr: true,
		},
		{
			name:    "csv with missing file",
			cfg:     config.StorageData{Backend: config.BackendCSV, CSV: &config.CSVData{StationsFile: stations, MeasurementsFile: filepath.Join(dir, "nope.csv")}},
			wantErr: true,
		},
		{
			name:    "unknown backend",
			cfg:     config.StorageData{Backend: "influxdb"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, closeStore, err := OpenStore(ctx, &tt.cfg, logger)
			if tt.wantErr {
				if err == nil {
					closeStore()
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("OpenStore returned error: %v", err)
			}
			defer closeStore()

			if err := store.Ping(ctx); err != nil {
				t.Errorf("Ping returned error: %v", err)
			}
		})
	}
}
