package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	sqlx "github.com/jmoiron/sqlx"
	lightmap "github.com/nexo-exp/lightmap_go/pkg"
)

var dbConn *sqlx.DB
var configuration lightmap.Configuration

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
	configFilename := flag.String("config", "", "Configuration file path")
	flag.Parse()

	var err error
	configuration, err = LoadConfiguration(*configFilename)
	if err != nil {
		message := fmt.Errorf("Error reading configuration file: %w", err)
		logger.Error(message.Error())
		return
	}
	lightmap.SetConfiguration(configuration)
	lightmap.SetLogger(logger)

	VerbosityLevel = configuration.Verbosity
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Reading configuration file: %s", *configFilename)
		logger.Info(message, "main")
		printConfiguration(configuration, logger)
	}

	file, err := os.Open(configuration.FileIn)
	if err != nil {
		message := fmt.Errorf("Error opening file: %w", err)
		logger.Error(message.Error())
		return
	}
	defer file.Close()

	evtCount, runNumber := lightmap.CountEvents(file)
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Number of events: %d", evtCount)
		logger.Info(message, "main")
	}

	if !configuration.NoDB {
		dbConn, err = lightmap.ConnectToDatabase(configuration.User, configuration.Passwd,
			configuration.Host, configuration.DBName)
		if err != nil {
			message := fmt.Errorf("Error connecting to database: %w", err)
			logger.Error(message.Error())
			return
		}
		defer dbConn.Close()

		if err := lightmap.LoadStripGeometry(dbConn, runNumber); err != nil {
			message := fmt.Errorf("Error loading strip geometry: %w", err)
			logger.Error(message.Error())
			return
		}
	}

	events, err := readAllEvents(file)
	if err != nil {
		message := fmt.Errorf("Error reading events: %w", err)
		logger.Error(message.Error())
		return
	}
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Events read: %d", len(events))
		logger.Info(message, "main")
	}

	params := lightmap.Params{
		ChannelThreshold: configuration.ChannelThreshold,
		Seed:             configuration.Seed,
	}

	start := time.Now()
	var set *lightmap.ObservableSet
	if configuration.Parallel {
		set = computeParallel(events, params, configuration.NumWorkers)
	} else {
		set, err = lightmap.ComputeObservables(events, params)
		if err != nil {
			message := fmt.Errorf("Error computing observables: %w", err)
			logger.Error(message.Error())
			return
		}
	}
	duration := time.Since(start)
	message := fmt.Sprintf("Observables computed for %d events in %d ms", set.Len(), duration.Milliseconds())
	logger.Info(message, "main")

	if configuration.WriteData {
		start = time.Now()
		writer := lightmap.NewWriter(configuration.FileOut)
		writer.WriteObservables(set, runNumber, params)
		if err := writer.Close(); err != nil {
			message := fmt.Errorf("Error closing writer: %w", err)
			logger.Error(message.Error())
			return
		}
		duration = time.Since(start)
		message = fmt.Sprintf("Total time writing: %d ms", duration.Milliseconds())
		logger.Info(message, "main")
	}
}
