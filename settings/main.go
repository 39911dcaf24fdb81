package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	pmtconfig "github.com/icarus-exp/pmtconfig_go/pkg"
)

var configuration pmtconfig.Configuration

var (
	logger         Logger
	VerbosityLevel int
)

func init() {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	// stdout carries the formatted settings block, all diagnostics go to
	// stderr so the output stays consumable by DrawWaveforms
	handlerText := NewHandler(os.Stderr, opts)
	handlerJSON := slog.NewJSONHandler(os.Stderr, opts)
	logger = Logger{
		InfoLog:  slog.New(handlerText),
		ErrorLog: slog.New(handlerJSON),
	}
}

func main() {
	outputFormat := flag.String("format", pmtconfig.FormatPython, "output format (FHiCL or Python)")
	varName := flag.String("varname", "", "the output data structure is assigned to a variable with this name")
	configFilename := flag.String("config", "", "configuration file path")
	flag.Parse()

	if flag.NArg() != 1 {
		logger.Error("usage: settings [-format FHiCL|Python] [-varname NAME] [-config FILE] <input log>")
		os.Exit(2)
	}
	inputLog := flag.Arg(0)

	var err error
	configuration, err = LoadConfiguration(*configFilename)
	if err != nil {
		message := fmt.Errorf("Error reading configuration file: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}
	pmtconfig.SetConfiguration(configuration)
	pmtconfig.SetLogger(logger)

	VerbosityLevel = configuration.Verbosity
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Reading input log: %s", inputLog)
		logger.Info(message, "main")
		printConfiguration(configuration, logger)
	}

	file, err := os.Open(inputLog)
	if err != nil {
		openErr := &pmtconfig.ErrOpenFile{Filename: inputLog, Err: err}
		logger.Error(openErr.Error())
		os.Exit(1)
	}
	defer file.Close()

	settings, warnings, err := pmtconfig.ExtractReadoutSettings(file)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	for _, warning := range warnings {
		logger.Warning(warning.Message(), "settings")
	}
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Found settings for %d channels", len(settings))
		logger.Info(message, "main")
	}

	if !configuration.NoDB {
		checkChannelsAgainstDB(settings)
	}

	output, err := pmtconfig.FormatSettings(settings, *outputFormat, *varName)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	// This is the format required by the DrawWaveforms utility
	fmt.Print(output)
}

// checkChannelsAgainstDB warns about offline channel IDs that the database
// channel mapping does not know for the configured run. Data quality only,
// the extracted settings are emitted either way.
func checkChannelsAgainstDB(settings []pmtconfig.ChannelRecord) {
	dbConn, err := pmtconfig.ConnectToDatabase(configuration.User, configuration.Passwd, configuration.Host, configuration.DBName)
	if err != nil {
		message := fmt.Errorf("Error connecting to database: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}
	defer dbConn.Close()

	mapping, err := pmtconfig.GetChannelMappingFromDB(dbConn, configuration.RunNumber)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	for _, channel := range pmtconfig.UnknownChannels(settings, mapping) {
		message := fmt.Sprintf("Offline channel %d is not in the database channel mapping", channel)
		logger.Warning(message, "database")
	}
}
