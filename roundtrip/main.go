package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"time"

	lightmap "github.com/nexo-exp/lightmap_go/pkg"
)

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
		printConfiguration(configuration, logger)
	}

	// Fail fast on an unrecognized fit type, before any event is processed.
	// Neural-network ensembles are fit with external tooling.
	if configuration.FitType != "KS" {
		err := &lightmap.ErrUnknownFitType{FitType: configuration.FitType}
		logger.Error(err.Error())
		os.Exit(1)
	}

	events, err := readEvents()
	if err != nil {
		message := fmt.Errorf("Error reading events: %w", err)
		logger.Error(message.Error())
		return
	}
	logger.Info(fmt.Sprintf("Events read from %d files: %d", len(inputFiles()), len(events)), "main")

	if configuration.Events > 0 {
		message := fmt.Sprintf("Sampling %d events randomly using seed %d", configuration.Events, configuration.Seed)
		logger.Info(message, "main")
		events = sampleEvents(events, configuration.Events, configuration.Seed)
	}

	params := lightmap.Params{
		ChannelThreshold: configuration.ChannelThreshold,
		Seed:             configuration.Seed,
	}
	set, err := lightmap.ComputeObservables(events, params)
	if err != nil {
		message := fmt.Errorf("Error computing observables: %w", err)
		logger.Error(message.Error())
		return
	}

	tpc := lightmap.DefaultTPC()
	selected, z, stats := lightmap.ApplyCuts(set, tpc, configuration.Standoff)
	reportCuts(stats)

	peaks := lightmap.ClassifyPeaks(set)
	means := lightmap.PeakMeans(set, selected, peaks)
	logger.Info(fmt.Sprintf("Mean initial photons per peak: %.1f / %.1f", means[0], means[1]), "main")

	efficiencies := lightmap.ComputeEfficiencies(set, peaks, means)
	if err := writeEfficiencies(configuration.EfficOut, efficiencies); err != nil {
		message := fmt.Errorf("Error writing efficiencies: %w", err)
		logger.Error(message.Error())
		return
	}

	x, y, zSel, eff := trainingSet(set, z, efficiencies, selected, peaks, configuration.BothPeaks)
	logger.Info(fmt.Sprintf("Training on %d events", len(eff)), "main")

	lm := lightmap.NewLightMapKS(configuration.Sigma)
	start := time.Now()
	lm.Fit(x, y, zSel, eff)
	mean, std := lm.Accuracy()
	duration := time.Since(start)

	logger.Info("Fitting results", "main")
	logger.Info("-----------------------------", "main")
	logger.Info(fmt.Sprintf("Mean: %.6f", mean), "main")
	logger.Info(fmt.Sprintf("Standard deviation: %.6f", std), "main")
	logger.Info(fmt.Sprintf("Fit time: %d ms", duration.Milliseconds()), "main")
	logger.Info("-----------------------------", "main")

	if err := lightmap.SaveModel(configuration.ModelOut, lm); err != nil {
		message := fmt.Errorf("Error saving model: %w", err)
		logger.Error(message.Error())
		return
	}
	logger.Info(fmt.Sprintf("Model saved to %s", configuration.ModelOut), "main")
}

func inputFiles() []string {
	if len(configuration.FilesIn) > 0 {
		return configuration.FilesIn
	}
	return []string{configuration.FileIn}
}

// readEvents concatenates the events of every input file, in file order.
func readEvents() ([]lightmap.EventType, error) {
	events := make([]lightmap.EventType, 0)
	evtCount := -1
	for _, filename := range inputFiles() {
		file, err := os.Open(filename)
		if err != nil {
			return nil, &lightmap.ErrOpenFile{Filename: filename, Err: err}
		}
		for {
			event, err := lightmap.ReadEvent(file)
			if err == io.EOF {
				break
			}
			if err != nil {
				file.Close()
				return nil, err
			}
			evtCount++
			if evtCount >= configuration.MaxEvents {
				break
			}
			if evtCount < configuration.Skip {
				continue
			}
			events = append(events, event)
		}
		file.Close()
		if evtCount >= configuration.MaxEvents {
			break
		}
	}
	return events, nil
}

// sampleEvents draws a random subset of the concatenated events without
// replacement, reproducible for a given seed. Asking for at least the full
// set returns it unchanged.
func sampleEvents(events []lightmap.EventType, n int, seed uint64) []lightmap.EventType {
	if n >= len(events) {
		return events
	}
	rng := rand.New(rand.NewPCG(seed, 0))
	perm := rng.Perm(len(events))
	sampled := make([]lightmap.EventType, n)
	for i := range sampled {
		sampled[i] = events[perm[i]]
	}
	return sampled
}

func reportCuts(stats lightmap.CutStats) {
	logger.Info(fmt.Sprintf("Events before thermal electron cut: %d", stats.Total), "cuts")
	logger.Info(fmt.Sprintf("Events after thermal electron cut: %d (%.1f %%)",
		stats.AfterCharge, stats.ChargeEfficiency()), "cuts")
	logger.Info(fmt.Sprintf("Events after z quality cut: %d (%.1f %%)",
		stats.AfterDrift, stats.DriftEfficiency()), "cuts")
	logger.Info(fmt.Sprintf("Events after photon cut: %d (%.1f %%)",
		stats.AfterPhoton, stats.PhotonEfficiency()), "cuts")
	logger.Info(fmt.Sprintf("Events after fiducial cut: %d (%.1f %%)",
		stats.AfterFiducial, stats.FiducialEfficiency()), "cuts")
	logger.Info(fmt.Sprintf("Events after charge/light cut: %d (%.1f %%)",
		stats.AfterChargeLight, stats.ChargeLightEfficiency()), "cuts")
}

// trainingSet collects (position, efficiency) pairs for the fit: all selected
// events, or only the high-energy peak unless both peaks were requested.
func trainingSet(set *lightmap.ObservableSet, z []float64, efficiencies []float64,
	selected []bool, peaks []int, bothPeaks bool) ([]float64, []float64, []float64, []float64) {
	var x, y, zOut, eff []float64
	for i := 0; i < set.Len(); i++ {
		if !selected[i] {
			continue
		}
		if !bothPeaks && peaks[i] != 2 {
			continue
		}
		x = append(x, set.WeightedX[i])
		y = append(y, set.WeightedY[i])
		zOut = append(zOut, z[i])
		eff = append(eff, efficiencies[i])
	}
	return x, y, zOut, eff
}

func writeEfficiencies(filename string, efficiencies []float64) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	for _, eff := range efficiencies {
		if math.IsNaN(eff) {
			fmt.Fprintln(file, "nan")
			continue
		}
		fmt.Fprintf(file, "%.18e\n", eff)
	}
	return nil
}
