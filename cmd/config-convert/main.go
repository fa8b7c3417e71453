package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/chrissnell/climateapi/pkg/config"
)

func main() {
	var (
		sourceFile = flag.String("source", "", "Path to YAML or TOML configuration file (required)")
		sqliteFile = flag.String("sqlite", "", "Path to SQLite configuration database (required)")
		force      = flag.Bool("force", false, "Overwrite existing SQLite database")
		dryRun     = flag.Bool("dry-run", false, "Show what would be done without executing")
	)
	flag.Parse()

	if *sourceFile == "" || *sqliteFile == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -source <config.yaml|config.toml> -sqlite <config.db>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Check if source file exists
	if _, err := os.Stat(*sourceFile); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error: configuration file does not exist: %s\n", *sourceFile)
		os.Exit(1)
	}

	// Check if SQLite file already exists
	if _, err := os.Stat(*sqliteFile); err == nil && !*force {
		fmt.Fprintf(os.Stderr, "Error: SQLite file already exists: %s\n", *sqliteFile)
		fmt.Fprintf(os.Stderr, "Use -force to overwrite or choose a different filename\n")
		os.Exit(1)
	}

	fmt.Printf("Converting configuration to SQLite...\n")
	fmt.Printf("  Source: %s\n", *sourceFile)
	fmt.Printf("  Target: %s\n", *sqliteFile)

	configData, err := sourceProvider(*sourceFile).LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if err := configData.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *dryRun {
		fmt.Println("DRY RUN - No changes will be made")
		printSettings(configData)
		return
	}

	// Remove existing SQLite file if force is specified
	if *force {
		if err := os.Remove(*sqliteFile); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error removing existing SQLite file: %v\n", err)
			os.Exit(1)
		}
	}

	if err := os.MkdirAll(filepath.Dir(*sqliteFile), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating directory: %v\n", err)
		os.Exit(1)
	}

	if err := convert(*sqliteFile, configData); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Conversion completed successfully!\n")
	fmt.Printf("You can now use the SQLite backend with: -config-backend sqlite -config %s\n", *sqliteFile)
}

func sourceProvider(filename string) config.ConfigProvider {
	if strings.EqualFold(filepath.Ext(filename), ".toml") {
		return config.NewTOMLProvider(filename)
	}
	return config.NewYAMLProvider(filename)
}

// convert writes configData to dbPath and reads it back to confirm nothing was lost
func convert(dbPath string, configData *config.ConfigData) error {
	provider, err := config.NewSQLiteProvider(dbPath)
	if err != nil {
		return fmt.Errorf("failed to create SQLite provider: %w", err)
	}
	defer provider.Close()

	if err := provider.SaveConfig(configData); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	stored, err := provider.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to read back configuration: %w", err)
	}
	if !reflect.DeepEqual(configData, stored) {
		return fmt.Errorf("stored configuration differs from source: %+v vs %+v", stored, configData)
	}

	fmt.Printf("  Saved %d settings\n", len(config.Flatten(stored)))
	return nil
}

func printSettings(configData *config.ConfigData) {
	settings := config.Flatten(configData)
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Println("\nSettings:")
	for _, k := range keys {
		fmt.Printf("  %s = %s\n", k, settings[k])
	}
}
