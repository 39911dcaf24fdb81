package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	sqlx "github.com/jmoiron/sqlx"

	pmtconfig "github.com/icarus-exp/pmtconfig_go/pkg"
)

var dbConn *sqlx.DB
var configuration pmtconfig.Configuration

var (
	logger         Logger
	VerbosityLevel int
)

func init() {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	handlerStdOut := NewHandler(os.Stdout, opts)
	handlerStdErr := slog.NewJSONHandler(os.Stderr, opts)
	logger = Logger{
		InfoLog:  slog.New(handlerStdOut),
		ErrorLog: slog.New(handlerStdErr),
	}
}

func main() {
	configFilename := flag.String("config", "", "configuration file path")
	maxEvents := flag.Int("n", -1, "maximum number of events to process")
	skipEvents := flag.Int("nskip", -1, "number of events to skip from the first one")
	flag.Parse()

	var err error
	configuration, err = LoadConfiguration(*configFilename)
	if err != nil {
		message := fmt.Errorf("Error reading configuration file: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}
	if *maxEvents >= 0 {
		configuration.MaxEvents = *maxEvents
	}
	if *skipEvents >= 0 {
		configuration.Skip = *skipEvents
	}

	inputFiles := flag.Args()
	if len(inputFiles) == 0 {
		if configuration.FileIn == "" {
			logger.Error("usage: baselines [-config FILE] [-n N] [-nskip N] <input files>")
			os.Exit(2)
		}
		inputFiles = []string{configuration.FileIn}
	}

	pmtconfig.SetConfiguration(configuration)
	pmtconfig.SetLogger(logger)

	VerbosityLevel = configuration.Verbosity
	if VerbosityLevel > 0 {
		printConfiguration(configuration, logger)
	}

	if !configuration.NoDB {
		dbConn, err = pmtconfig.ConnectToDatabase(configuration.User, configuration.Passwd, configuration.Host, configuration.DBName)
		if err != nil {
			message := fmt.Errorf("Error connecting to database: %w", err)
			logger.Error(message.Error())
			os.Exit(1)
		}
		defer dbConn.Close()

		if err := loadChannelMapping(inputFiles[0]); err != nil {
			logger.Error(err.Error())
			os.Exit(1)
		}
	}

	var writer *pmtconfig.Writer
	if configuration.WriteData {
		writer = pmtconfig.NewWriter(configuration.FileOut)
		defer writer.Close()
	}

	for _, filename := range inputFiles {
		if err := processFile(filename, writer); err != nil {
			logger.Error(err.Error())
			os.Exit(1)
		}
	}
}

// loadChannelMapping reads the run number from the first input file and
// loads the matching channel mapping. All inputs are assumed to belong to
// the same run, a configured run number takes precedence.
func loadChannelMapping(filename string) error {
	runNumber := configuration.RunNumber
	if runNumber == 0 {
		file, err := os.Open(filename)
		if err != nil {
			return &pmtconfig.ErrOpenFile{Filename: filename, Err: err}
		}
		defer file.Close()

		evtCount, fileRun := countEvents(file)
		if VerbosityLevel > 0 {
			message := fmt.Sprintf("Number of events in %s: %d", filename, evtCount)
			logger.Info(message, "main")
		}
		runNumber = fileRun
	}
	return pmtconfig.LoadDatabase(dbConn, runNumber)
}

func processFile(filename string, writer *pmtconfig.Writer) error {
	file, err := os.Open(filename)
	if err != nil {
		return &pmtconfig.ErrOpenFile{Filename: filename, Err: err}
	}
	defer file.Close()

	fileReader := NewFileReader(file)
	for {
		header, eventData, err := fileReader.getNextEvent()
		if err != nil {
			if err != io.EOF {
				return fmt.Errorf("error reading event: %w", err)
			}
			break
		}
		processEvent(eventData, header, writer)
	}
	return nil
}

func processEvent(eventData []byte, header pmtconfig.EventHeaderStruct, writer *pmtconfig.Writer) {
	defer func() {
		if r := recover(); r != nil {
			errMessage := fmt.Errorf("baselines recovered from panic on event %d: %v", header.EventId, r)
			logger.Error(errMessage.Error())
			message := fmt.Sprintf("discarding event %d", header.EventId)
			logger.Error(message)
		}
	}()

	event, err := pmtconfig.DecodeEvent(eventData, header)
	if err != nil {
		message := fmt.Errorf("error decoding event: %w", err)
		logger.Error(message.Error())
		return
	}

	if !configuration.NoDB {
		pmtconfig.RemapChannels(&event, pmtconfig.ChannelMapping())
	}

	grouped := pmtconfig.GroupWaveformsByChannel(event.Waveforms, configuration.NChannels)
	fmt.Printf("Event %d: %d waveforms on %d channels\n", event.EventID, len(event.Waveforms), len(grouped))

	baselines := make([]float64, len(grouped))
	for channel, channelWaveforms := range grouped {
		baselines[channel] = pmtconfig.ComputeBaseline(channelWaveforms)
		fmt.Printf("Channel %3d: baseline %g from %d PMT waveforms\n", channel, baselines[channel], len(channelWaveforms))
	}

	if configuration.WriteData && writer != nil {
		writer.WriteEvent(&event, baselines)
	}
}
