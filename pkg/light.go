package lightmap

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// PhotonDetectionEfficiency is the probability for an initial photon to
	// produce a detected photon.
	PhotonDetectionEfficiency = 0.03
	// PhotoelectronSmearing scales the Poisson smearing added on top of the
	// detected photons to model the electronics response.
	PhotoelectronSmearing = 0.2
)

// ObservedLight converts the true initial photon count of an event into the
// observed photoelectron count: Binomial thinning with the detection
// efficiency, plus Poisson smearing proportional to the detected photons.
func ObservedLight(initialPhotons int32, src rand.Source) int64 {
	if initialPhotons <= 0 {
		return 0
	}
	binomial := distuv.Binomial{
		N:   float64(initialPhotons),
		P:   PhotonDetectionEfficiency,
		Src: src,
	}
	detected := binomial.Rand()
	if detected == 0 {
		return 0
	}
	poisson := distuv.Poisson{
		Lambda: detected * PhotoelectronSmearing,
		Src:    src,
	}
	return int64(detected + poisson.Rand())
}
