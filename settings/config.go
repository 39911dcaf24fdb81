package main

import (
	"encoding/json"
	"fmt"
	"os"

	pmtconfig "github.com/icarus-exp/pmtconfig_go/pkg"
)

// LoadConfiguration reads the optional JSON configuration. The scraper is
// fully functional without one, the file only enables the database
// cross-check and the verbosity settings.
func LoadConfiguration(filename string) (pmtconfig.Configuration, error) {
	var config pmtconfig.Configuration

	// Set default values
	config.Verbosity = 0
	config.NoDB = true
	config.RunNumber = 0
	config.Host = "icarus-db.fnal.gov"
	config.User = "icarusreader"
	config.Passwd = "readonly"
	config.DBName = "ICARUS"

	if filename == "" {
		return config, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	err = json.Unmarshal(data, &config)
	if err != nil {
		return config, err
	}
	return config, nil
}

func printConfiguration(config pmtconfig.Configuration, logger Logger) {
	logger.Info(fmt.Sprintf("No DB: %t", config.NoDB), "config")
	logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
	logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
	logger.Info(fmt.Sprintf("Run number: %d", config.RunNumber), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
}
