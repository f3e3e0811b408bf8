package lightmap

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// DefaultChannelThreshold effectively disables the threshold regime: no
	// fluctuated charge ever falls below it.
	DefaultChannelThreshold = -100000.

	// DriftTimeJitterSigma is the Gaussian jitter added to each non-noise
	// channel time, in the detector's native sampling units.
	DriftTimeJitterSigma = 2.

	// ChargeNoiseSigma is the electronic-noise fluctuation added to every
	// channel charge before the threshold comparison.
	ChargeNoiseSigma = 600.
)

const progressInterval = 100000

// Params are the tunables of the observable extraction.
type Params struct {
	ChannelThreshold float64
	Seed             uint64
}

func DefaultParams() Params {
	return Params{
		ChannelThreshold: DefaultChannelThreshold,
		Seed:             1,
	}
}

// ObservableRecord holds the derived quantities of one event.
type ObservableRecord struct {
	NumChannelsInEvt                       int32
	EvtChargeIncludingNoise                float64
	EvtChargeExcludingNoise                float64
	EvtChargeAboveThreshold                float64
	NumChannelsAboveThreshold              int32
	NumChannelsExcludingNoise              int32
	NumChannelsCollection                  int32
	NumCollectionBelowThreshold            int32
	NumChannelsInduction                   int32
	NumChannelsNonzeroChargeWithNoise      int32
	NumChannelsNonzeroChargeExcludingNoise int32
	WeightedX                              float64
	WeightedY                              float64
	WeightedRadius                         float64
	WeightedDrift                          float64
	DetectedPhotoelectrons                 int64
	InitialPhotons                         int64
}

// ComputeEventObservables classifies every channel of one event and
// aggregates the charge, count and weighted-position observables. The event
// must already be validated; index is the position of the event in the batch
// and seeds its random substreams.
//
// An event with zero non-noise channels yields NaN weighted position and
// drift. That is a valid output, downstream cuts remove such events.
func ComputeEventObservables(event *EventType, index int, params Params) ObservableRecord {
	nch := event.NumChannels()

	jitter := distuv.Normal{
		Mu:    0.,
		Sigma: DriftTimeJitterSigma,
		Src:   eventStream(params.Seed, index, streamJitter),
	}
	fluctuation := distuv.Normal{
		Mu:    0.,
		Sigma: ChargeNoiseSigma,
		Src:   eventStream(params.Seed, index, streamFluctuation),
	}

	rec := ObservableRecord{
		NumChannelsInEvt:       int32(nch),
		InitialPhotons:         int64(event.InitialPhotons),
		DetectedPhotoelectrons: ObservedLight(event.InitialPhotons, eventStream(params.Seed, index, streamLight)),
	}

	var sumWeightedX, sumXWeights float64
	var sumWeightedY, sumYWeights float64
	var sumWeightedDrift, sumChargeWeights float64

	for i := 0; i < nch; i++ {
		charge := event.Charge[i]
		nonzero := charge != 0
		// The fluctuation is drawn for every channel, noise included, to
		// keep the draw sequence independent of the noise pattern.
		fluctuated := charge + fluctuation.Rand()
		aboveThreshold := fluctuated > params.ChannelThreshold

		if nonzero {
			rec.NumChannelsNonzeroChargeWithNoise++
			rec.EvtChargeIncludingNoise += charge
		}

		if event.NoiseTag[i].Truthy() {
			continue
		}

		geometry := ChannelGeometry(event.LocalID[i])
		driftTime := event.Time[i] + jitter.Rand()
		xPosition := event.XPosition[i] + geometry.XOffset
		yPosition := event.YPosition[i] + geometry.YOffset

		sumWeightedX += xPosition * charge / geometry.Width
		sumXWeights += charge / geometry.Width
		sumWeightedY += yPosition * charge / geometry.Height
		sumYWeights += charge / geometry.Height
		sumWeightedDrift += driftTime * charge
		sumChargeWeights += charge

		rec.NumChannelsExcludingNoise++
		if nonzero {
			rec.NumChannelsNonzeroChargeExcludingNoise++
			rec.NumChannelsCollection++
			rec.EvtChargeExcludingNoise += charge
			if !aboveThreshold {
				rec.NumCollectionBelowThreshold++
			}
		} else {
			rec.NumChannelsInduction++
		}
		if aboveThreshold {
			rec.NumChannelsAboveThreshold++
			rec.EvtChargeAboveThreshold += fluctuated
		}
	}

	rec.WeightedX = sumWeightedX / sumXWeights
	rec.WeightedY = sumWeightedY / sumYWeights
	rec.WeightedRadius = math.Sqrt(rec.WeightedX*rec.WeightedX + rec.WeightedY*rec.WeightedY)
	rec.WeightedDrift = sumWeightedDrift / sumChargeWeights

	return rec
}

// ComputeObservables runs the extraction over a full event batch, in input
// order. Every event is validated before any work starts: a mismatched
// channel array aborts the whole batch.
func ComputeObservables(events []EventType, params Params) (*ObservableSet, error) {
	for i := range events {
		if err := events[i].Validate(); err != nil {
			return nil, fmt.Errorf("invalid event at index %d: %w", i, err)
		}
	}

	set := NewObservableSet(len(events))
	for i := range events {
		set.SetRecord(i, ComputeEventObservables(&events[i], i, params))
		if (i+1)%progressInterval == 0 && logger != nil {
			logger.Info(fmt.Sprintf("Processed %d events", i+1), "observables")
		}
	}
	return set, nil
}
