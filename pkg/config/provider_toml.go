package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// TOMLProvider implements ConfigProvider for TOML configuration files
type TOMLProvider struct {
	filename string
	config   *ConfigData
}

// NewTOMLProvider creates a new TOML configuration provider
func NewTOMLProvider(filename string) *TOMLProvider {
	return &TOMLProvider{
		filename: filename,
	}
}

// LoadConfig loads the complete configuration from the TOML file. Unknown keys are
// reported as an error so that typos do not silently fall back to defaults.
func (t *TOMLProvider) LoadConfig() (*ConfigData, error) {
	config := &ConfigData{}
	md, err := toml.DecodeFile(t.filename, config)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown configuration keys in %s: %v", t.filename, undecoded)
	}

	t.config = config
	return config, nil
}

func (t *TOMLProvider) GetStorageConfig() (*StorageData, error) {
	if t.config == nil {
		if _, err := t.LoadConfig(); err != nil {
			return nil, err
		}
	}
	return &t.config.Storage, nil
}

func (t *TOMLProvider) GetRESTServerConfig() (*RESTServerData, error) {
	if t.config == nil {
		if _, err := t.LoadConfig(); err != nil {
			return nil, err
		}
	}
	return &t.config.REST, nil
}

func (t *TOMLProvider) IsReadOnly() bool {
	return true
}

func (t *TOMLProvider) Close() error {
	return nil
}
