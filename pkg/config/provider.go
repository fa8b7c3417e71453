package config

// Storage backends
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendCSV      = "csv"
)

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Get specific configuration sections
	GetStorageConfig() (*StorageData, error)
	GetRESTServerConfig() (*RESTServerData, error)

	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Storage StorageData    `json:"storage" yaml:"storage" toml:"storage"`
	REST    RESTServerData `json:"rest" yaml:"rest" toml:"rest"`
}

// StorageData selects and configures the observation store
type StorageData struct {
	Backend  string        `json:"backend" yaml:"backend" toml:"backend" validate:"required,oneof=sqlite postgres csv"`
	SQLite   *SQLiteData   `json:"sqlite,omitempty" yaml:"sqlite,omitempty" toml:"sqlite,omitempty" validate:"required_if=Backend sqlite"`
	Postgres *PostgresData `json:"postgres,omitempty" yaml:"postgres,omitempty" toml:"postgres,omitempty" validate:"required_if=Backend postgres"`
	CSV      *CSVData      `json:"csv,omitempty" yaml:"csv,omitempty" toml:"csv,omitempty" validate:"required_if=Backend csv"`
}

// SQLiteData points at a SQLite copy of the dataset
type SQLiteData struct {
	Path string `json:"path" yaml:"path" toml:"path" validate:"required"`
}

// PostgresData holds the connection settings for a PostgreSQL or TimescaleDB copy of the dataset
type PostgresData struct {
	ConnectionString string `json:"connection_string" yaml:"connection_string" toml:"connection_string" validate:"required"`
	MaxOpenConns     int    `json:"max_open_conns,omitempty" yaml:"max_open_conns,omitempty" toml:"max_open_conns,omitempty" validate:"gte=0"`
}

// CSVData points at the CSV distribution of the dataset, served from memory
type CSVData struct {
	StationsFile     string `json:"stations_file" yaml:"stations_file" toml:"stations_file" validate:"required"`
	MeasurementsFile string `json:"measurements_file" yaml:"measurements_file" toml:"measurements_file" validate:"required"`
}

// RESTServerData configures the HTTP API
type RESTServerData struct {
	Cert              string      `json:"cert,omitempty" yaml:"cert,omitempty" toml:"cert,omitempty" validate:"required_with=Key"`
	Key               string      `json:"key,omitempty" yaml:"key,omitempty" toml:"key,omitempty" validate:"required_with=Cert"`
	Port              int         `json:"port,omitempty" yaml:"port,omitempty" toml:"port,omitempty" validate:"gte=0,lte=65535"`
	ListenAddr        string      `json:"listen_addr,omitempty" yaml:"listen_addr,omitempty" toml:"listen_addr,omitempty"`
	ObservationWindow *WindowData `json:"observation_window,omitempty" yaml:"observation_window,omitempty" toml:"observation_window,omitempty"`
}

// WindowData pins the window served by the precipitation and tobs endpoints.
// When absent, the trailing year of data on record is served.
type WindowData struct {
	Start string `json:"start" yaml:"start" toml:"start" validate:"required,datetime=2006-01-02"`
	End   string `json:"end" yaml:"end" toml:"end" validate:"required,datetime=2006-01-02"`
}

// Defaults
const (
	DefaultSQLitePath = "Resources/hawaii.sqlite"
	DefaultListenAddr = "0.0.0.0"
	DefaultHTTPPort   = 8080
)

// ApplyDefaults fills in the storage backend and its location when they were not configured
func (c *ConfigData) ApplyDefaults() {
	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendSQLite
	}
	if c.Storage.Backend == BackendSQLite && c.Storage.SQLite == nil {
		c.Storage.SQLite = &SQLiteData{Path: DefaultSQLitePath}
	}
}
