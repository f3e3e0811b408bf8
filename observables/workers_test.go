package main

import (
	"math"
	"math/rand/v2"
	"testing"

	lightmap "github.com/nexo-exp/lightmap_go/pkg"
	"github.com/stretchr/testify/require"
)

func randomEvents(n int, seed uint64) []lightmap.EventType {
	rng := rand.New(rand.NewPCG(seed, 0))
	events := make([]lightmap.EventType, n)
	for i := range events {
		nch := rng.IntN(8)
		event := lightmap.EventType{
			EventID:        int32(i),
			RunNumber:      1,
			InitialPhotons: int32(rng.IntN(20000)),
			LocalID:        make([]uint16, nch),
			Charge:         make([]float64, nch),
			Time:           make([]float64, nch),
			XPosition:      make([]float64, nch),
			YPosition:      make([]float64, nch),
			NoiseTag:       make([]lightmap.NoiseTag, nch),
		}
		for c := 0; c < nch; c++ {
			event.LocalID[c] = uint16(rng.IntN(32))
			event.Charge[c] = rng.Float64() * 2000.
			event.Time[c] = rng.Float64() * 1000.
			event.XPosition[c] = rng.Float64()*1000. - 500.
			event.YPosition[c] = rng.Float64()*1000. - 500.
			event.NoiseTag[c] = lightmap.NoiseTag{uint8(rng.IntN(2))}
		}
		events[i] = event
	}
	return events
}

func float64Bits(values []float64) []uint64 {
	bits := make([]uint64, len(values))
	for i, v := range values {
		bits[i] = math.Float64bits(v)
	}
	return bits
}

// requireSameSets compares two observable sets bit for bit. Zero-non-noise
// events carry NaN in the float columns and NaN never compares equal to
// itself, so the columns go through their bit patterns.
func requireSameSets(t *testing.T, expected *lightmap.ObservableSet, actual *lightmap.ObservableSet) {
	t.Helper()
	require.Equal(t, expected.NumChannelsInEvt, actual.NumChannelsInEvt)
	require.Equal(t, float64Bits(expected.EvtChargeIncludingNoise), float64Bits(actual.EvtChargeIncludingNoise))
	require.Equal(t, float64Bits(expected.EvtChargeExcludingNoise), float64Bits(actual.EvtChargeExcludingNoise))
	require.Equal(t, float64Bits(expected.EvtChargeAboveThreshold), float64Bits(actual.EvtChargeAboveThreshold))
	require.Equal(t, expected.NumChannelsAboveThreshold, actual.NumChannelsAboveThreshold)
	require.Equal(t, expected.NumChannelsExcludingNoise, actual.NumChannelsExcludingNoise)
	require.Equal(t, expected.NumChannelsCollection, actual.NumChannelsCollection)
	require.Equal(t, expected.NumCollectionBelowThreshold, actual.NumCollectionBelowThreshold)
	require.Equal(t, expected.NumChannelsInduction, actual.NumChannelsInduction)
	require.Equal(t, expected.NumChannelsNonzeroChargeWithNoise, actual.NumChannelsNonzeroChargeWithNoise)
	require.Equal(t, expected.NumChannelsNonzeroChargeExcludingNoise, actual.NumChannelsNonzeroChargeExcludingNoise)
	require.Equal(t, float64Bits(expected.WeightedX), float64Bits(actual.WeightedX))
	require.Equal(t, float64Bits(expected.WeightedY), float64Bits(actual.WeightedY))
	require.Equal(t, float64Bits(expected.WeightedRadius), float64Bits(actual.WeightedRadius))
	require.Equal(t, float64Bits(expected.WeightedDrift), float64Bits(actual.WeightedDrift))
	require.Equal(t, expected.DetectedPhotoelectrons, actual.DetectedPhotoelectrons)
	require.Equal(t, expected.InitialPhotons, actual.InitialPhotons)
}

// The substream RNG design makes the output independent of worker
// scheduling: the pool must reproduce the sequential result exactly.
func TestComputeParallelMatchesSequential(t *testing.T) {
	events := randomEvents(200, 17)
	params := lightmap.Params{ChannelThreshold: lightmap.DefaultChannelThreshold, Seed: 3}

	sequential, err := lightmap.ComputeObservables(events, params)
	require.NoError(t, err)

	// The fixture must contain zero-non-noise-channel events so the NaN
	// outputs are part of the comparison.
	nanRecords := 0
	for _, radius := range sequential.WeightedRadius {
		if math.IsNaN(radius) {
			nanRecords++
		}
	}
	require.Greater(t, nanRecords, 0)

	for _, workers := range []int{1, 4, 16} {
		parallel := computeParallel(events, params, workers)
		requireSameSets(t, sequential, parallel)
	}
}
