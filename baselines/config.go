package main

import (
	"encoding/json"
	"fmt"
	"os"

	pmtconfig "github.com/icarus-exp/pmtconfig_go/pkg"
)

func LoadConfiguration(filename string) (pmtconfig.Configuration, error) {
	var config pmtconfig.Configuration

	// Set default values
	config.MaxEvents = 1000000000
	config.Skip = 0
	config.NChannels = 0
	config.Verbosity = 0
	config.FileOut = "baselines.h5"
	config.WriteData = false
	config.CompressionLevel = 4
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
	logger.Info(fmt.Sprintf("File in: %s", config.FileIn), "config")
	logger.Info(fmt.Sprintf("File out: %s", config.FileOut), "config")
	logger.Info(fmt.Sprintf("Write data: %t", config.WriteData), "config")
	logger.Info(fmt.Sprintf("Compression level: %d", config.CompressionLevel), "config")
	logger.Info(fmt.Sprintf("No DB: %t", config.NoDB), "config")
	logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
	logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
	logger.Info(fmt.Sprintf("Run number: %d", config.RunNumber), "config")
	logger.Info(fmt.Sprintf("Number of channels: %d", config.NChannels), "config")
	logger.Info(fmt.Sprintf("Skip: %d", config.Skip), "config")
	logger.Info(fmt.Sprintf("Max events: %d", config.MaxEvents), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
}
