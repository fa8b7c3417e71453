package config

import (
	"database/sql"
	"fmt"
	"sort"
	"strconv"

	_ "modernc.org/sqlite"
)

// SQLiteProvider implements ConfigProvider for a SQLite configuration database.
// Settings live in a single key/value table:
//
//	CREATE TABLE settings (key TEXT PRIMARY KEY, value TEXT NOT NULL);
//
// with keys such as storage.backend, storage.sqlite.path and rest.port.
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider creates a new SQLite configuration provider
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// LoadConfig loads the complete configuration from SQLite database
func (s *SQLiteProvider) LoadConfig() (*ConfigData, error) {
	config := &ConfigData{}

	storage, err := s.GetStorageConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}
	config.Storage = *storage

	rest, err := s.GetRESTServerConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load rest config: %w", err)
	}
	config.REST = *rest

	return config, nil
}

// GetStorageConfig returns storage configuration from the database
func (s *SQLiteProvider) GetStorageConfig() (*StorageData, error) {
	settings, err := s.settings("storage.")
	if err != nil {
		return nil, err
	}

	storage := &StorageData{
		Backend: settings["storage.backend"],
	}

	if path, ok := settings["storage.sqlite.path"]; ok {
		storage.SQLite = &SQLiteData{Path: path}
	}

	if dsn, ok := settings["storage.postgres.connection_string"]; ok {
		storage.Postgres = &PostgresData{ConnectionString: dsn}
		if raw, ok := settings["storage.postgres.max_open_conns"]; ok {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid storage.postgres.max_open_conns %q: %w", raw, err)
			}
			storage.Postgres.MaxOpenConns = n
		}
	}

	stationsFile, hasStations := settings["storage.csv.stations_file"]
	measurementsFile, hasMeasurements := settings["storage.csv.measurements_file"]
	if hasStations || hasMeasurements {
		storage.CSV = &CSVData{
			StationsFile:     stationsFile,
			MeasurementsFile: measurementsFile,
		}
	}

	return storage, nil
}

// GetRESTServerConfig returns the REST server configuration from the database
func (s *SQLiteProvider) GetRESTServerConfig() (*RESTServerData, error) {
	settings, err := s.settings("rest.")
	if err != nil {
		return nil, err
	}

	rest := &RESTServerData{
		Cert:       settings["rest.cert"],
		Key:        settings["rest.key"],
		ListenAddr: settings["rest.listen_addr"],
	}

	if raw, ok := settings["rest.port"]; ok {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid rest.port %q: %w", raw, err)
		}
		rest.Port = port
	}

	start, hasStart := settings["rest.observation_window.start"]
	end, hasEnd := settings["rest.observation_window.end"]
	if hasStart || hasEnd {
		rest.ObservationWindow = &WindowData{Start: start, End: end}
	}

	return rest, nil
}

// settings returns every key/value pair whose key begins with prefix
func (s *SQLiteProvider) settings(prefix string) (map[string]string, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings WHERE key LIKE ? || '%'`, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan settings row: %w", err)
		}
		settings[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	return settings, nil
}

// SaveConfig writes cfg into the settings table, creating the table if needed.
// Every existing setting is replaced.
func (s *SQLiteProvider) SaveConfig(cfg *ConfigData) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(settingsSchema); err != nil {
		return fmt.Errorf("failed to create settings table: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM settings`); err != nil {
		return fmt.Errorf("failed to clear settings: %w", err)
	}

	settings := Flatten(cfg)
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if _, err := tx.Exec(`INSERT INTO settings (key, value) VALUES (?, ?)`, k, settings[k]); err != nil {
			return fmt.Errorf("failed to save setting %s: %w", k, err)
		}
	}

	return tx.Commit()
}

const settingsSchema = `CREATE TABLE IF NOT EXISTS settings (key TEXT PRIMARY KEY, value TEXT NOT NULL)`

// Flatten renders cfg as the dotted key/value pairs stored by the SQLite provider.
// Unset optional values are omitted.
func Flatten(cfg *ConfigData) map[string]string {
	settings := map[string]string{
		"storage.backend": cfg.Storage.Backend,
	}
	put := func(key, value string) {
		if value != "" {
			settings[key] = value
		}
	}

	if sq := cfg.Storage.SQLite; sq != nil {
		settings["storage.sqlite.path"] = sq.Path
	}
	if pg := cfg.Storage.Postgres; pg != nil {
		settings["storage.postgres.connection_string"] = pg.ConnectionString
		if pg.MaxOpenConns != 0 {
			settings["storage.postgres.max_open_conns"] = strconv.Itoa(pg.MaxOpenConns)
		}
	}
	if c := cfg.Storage.CSV; c != nil {
		settings["storage.csv.stations_file"] = c.StationsFile
		settings["storage.csv.measurements_file"] = c.MeasurementsFile
	}

	put("rest.cert", cfg.REST.Cert)
	put("rest.key", cfg.REST.Key)
	put("rest.listen_addr", cfg.REST.ListenAddr)
	if cfg.REST.Port != 0 {
		settings["rest.port"] = strconv.Itoa(cfg.REST.Port)
	}
	if w := cfg.REST.ObservationWindow; w != nil {
		settings["rest.observation_window.start"] = w.Start
		settings["rest.observation_window.end"] = w.End
	}

	return settings
}

// IsReadOnly returns false; the settings table can be edited in place
func (s *SQLiteProvider) IsReadOnly() bool {
	return false
}

// Close closes the database connection
func (s *SQLiteProvider) Close() error {
	return s.db.Close()
}
