package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(filename, []byte(content), 0644))
	return filename
}

func TestLoadConfigurationDefaults(t *testing.T) {
	filename := writeConfigFile(t, `{"file_in": "events.bin", "file_out": "obs.h5"}`)

	config, err := LoadConfiguration(filename)
	require.NoError(t, err)

	assert.Equal(t, "events.bin", config.FileIn)
	assert.Equal(t, "obs.h5", config.FileOut)
	// The threshold default is the large negative sentinel that disables
	// the threshold filter.
	assert.Equal(t, -100000., config.ChannelThreshold)
	assert.Equal(t, uint64(1), config.Seed)
	assert.Equal(t, 1000000000, config.MaxEvents)
	assert.True(t, config.NoDB)
	assert.True(t, config.WriteData)
	assert.False(t, config.Parallel)
}

func TestLoadConfigurationOverrides(t *testing.T) {
	filename := writeConfigFile(t, `{
		"file_in": "events.bin",
		"file_out": "obs.h5",
		"channel_threshold": 1500,
		"seed": 99,
		"max_events": 1000,
		"skip": 10,
		"num_workers": 4,
		"parallel": true
	}`)

	config, err := LoadConfiguration(filename)
	require.NoError(t, err)

	assert.Equal(t, 1500., config.ChannelThreshold)
	assert.Equal(t, uint64(99), config.Seed)
	assert.Equal(t, 1000, config.MaxEvents)
	assert.Equal(t, 10, config.Skip)
	assert.Equal(t, 4, config.NumWorkers)
	assert.True(t, config.Parallel)
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	_, err := LoadConfiguration(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
