package main

import (
	"encoding/json"
	"fmt"
	"os"

	lightmap "github.com/nexo-exp/lightmap_go/pkg"
)

func LoadConfiguration(filename string) (lightmap.Configuration, error) {
	var config lightmap.Configuration

	// Set default values
	config.MaxEvents = 1000000000
	config.Skip = 0
	config.Verbosity = 0
	config.ChannelThreshold = lightmap.DefaultChannelThreshold
	config.Seed = 1
	config.NoDB = true
	config.Host = "nexo.llnl.gov"
	config.User = "nexoreader"
	config.Passwd = "readonly"
	config.DBName = "NEXOCALIB"
	config.FitType = "KS"
	config.Sigma = lightmap.DefaultSigma
	config.Standoff = 0.
	config.BothPeaks = false
	config.Events = 0
	config.ModelOut = "lightmap_ks.json.gz"
	config.EfficOut = "effic.txt"

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

func printConfiguration(config lightmap.Configuration, logger Logger) {
	logger.Info(fmt.Sprintf("File in: %s", config.FileIn), "config")
	logger.Info(fmt.Sprintf("Files in: %v", config.FilesIn), "config")
	logger.Info(fmt.Sprintf("Events to sample: %d", config.Events), "config")
	logger.Info(fmt.Sprintf("Model out: %s", config.ModelOut), "config")
	logger.Info(fmt.Sprintf("Efficiencies out: %s", config.EfficOut), "config")
	logger.Info(fmt.Sprintf("Fit type: %s", config.FitType), "config")
	logger.Info(fmt.Sprintf("Sigma: %g", config.Sigma), "config")
	logger.Info(fmt.Sprintf("Standoff: %g", config.Standoff), "config")
	logger.Info(fmt.Sprintf("Both peaks: %t", config.BothPeaks), "config")
	logger.Info(fmt.Sprintf("Channel threshold: %g", config.ChannelThreshold), "config")
	logger.Info(fmt.Sprintf("Seed: %d", config.Seed), "config")
	logger.Info(fmt.Sprintf("Max events: %d", config.MaxEvents), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
}
