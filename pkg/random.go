package lightmap

import "math/rand/v2"

// Random streams used while processing one event. The original analysis drew
// photon smearing, drift-time jitter and charge fluctuations from one global
// generator in file order; here every (event, step) pair gets its own
// PCG substream derived from the run seed, so the output is bit-identical
// for a given seed no matter how events are scheduled across workers.
const (
	streamLight uint64 = iota
	streamJitter
	streamFluctuation
)

func eventStream(seed uint64, eventIndex int, stream uint64) *rand.PCG {
	return rand.NewPCG(seed, uint64(eventIndex)<<8|stream)
}
