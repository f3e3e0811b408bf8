package lightmap

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// TPC is the reduced active volume within the field rings, between cathode
// and anode, in mm.
type TPC struct {
	R    float64
	ZMin float64
	ZMax float64
}

func DefaultTPC() TPC {
	return TPC{R: 566.65, ZMin: -1585.97, ZMax: -402.97}
}

// DriftVelocity converts drift time to drift distance, mm per sampling unit.
const DriftVelocity = 1.709

// DriftToZ maps a weighted drift time to a z coordinate below the anode.
// A NaN drift (event with no usable channels) maps to NaN.
func (t TPC) DriftToZ(drift float64) float64 {
	return t.ZMax - drift*DriftVelocity
}

const (
	// QuantumEfficiency enters the light-collection efficiency observable.
	QuantumEfficiency = 0.1

	peakSepSlope     = -0.068
	peakSepIntercept = 1600.

	// minPhotoelectrons cuts events outside both energy peaks.
	minPhotoelectrons = 100.
)

// PeakSeparation is the line in the (charge, light) plane separating the low
// and high energy peaks.
func PeakSeparation(charge float64) float64 {
	return peakSepSlope*charge + peakSepIntercept
}

// CutStats counts the events surviving each cut stage, in application order.
type CutStats struct {
	Total            int
	AfterCharge      int
	AfterDrift       int
	AfterPhoton      int
	AfterFiducial    int
	AfterChargeLight int
}

func efficiency(after int, before int) float64 {
	if before == 0 {
		return 0.
	}
	return float64(after) * 100. / float64(before)
}

func (s CutStats) ChargeEfficiency() float64 {
	return efficiency(s.AfterCharge, s.Total)
}

func (s CutStats) DriftEfficiency() float64 {
	return efficiency(s.AfterDrift, s.AfterCharge)
}

func (s CutStats) PhotonEfficiency() float64 {
	return efficiency(s.AfterPhoton, s.AfterDrift)
}

func (s CutStats) FiducialEfficiency() float64 {
	return efficiency(s.AfterFiducial, s.AfterPhoton)
}

func (s CutStats) ChargeLightEfficiency() float64 {
	return efficiency(s.AfterChargeLight, s.AfterFiducial)
}

// ApplyCuts computes per-event z coordinates and the quality and fiducial
// selection. Events with NaN drift or position fail the finite-z and fiducial
// comparisons, which is where zero-non-noise-channel events get dropped.
func ApplyCuts(set *ObservableSet, tpc TPC, standoff float64) ([]bool, []float64, CutStats) {
	n := set.Len()
	selected := make([]bool, n)
	z := make([]float64, n)
	stats := CutStats{Total: n}

	zlim := [2]float64{tpc.ZMin + standoff, tpc.ZMax - standoff}
	rlim := tpc.R - standoff

	for i := 0; i < n; i++ {
		z[i] = tpc.DriftToZ(set.WeightedDrift[i])

		if set.EvtChargeIncludingNoise[i] == 0 {
			continue
		}
		stats.AfterCharge++
		if math.IsNaN(z[i]) {
			continue
		}
		stats.AfterDrift++
		if set.DetectedPhotoelectrons[i] == 0 {
			continue
		}
		stats.AfterPhoton++
		if z[i] < zlim[0] || z[i] > zlim[1] || !(set.WeightedRadius[i] <= rlim) {
			continue
		}
		stats.AfterFiducial++
		if float64(set.DetectedPhotoelectrons[i]) <= minPhotoelectrons {
			continue
		}
		stats.AfterChargeLight++
		selected[i] = true
	}
	return selected, z, stats
}

// ClassifyPeaks assigns every event to energy peak 1 or 2 depending on which
// side of the separation line it falls in the (charge, light) plane.
func ClassifyPeaks(set *ObservableSet) []int {
	peaks := make([]int, set.Len())
	for i := range peaks {
		peaks[i] = 1
		if float64(set.DetectedPhotoelectrons[i]) > PeakSeparation(set.EvtChargeIncludingNoise[i]) {
			peaks[i] = 2
		}
	}
	return peaks
}

// PeakMeans computes the mean true initial photon count of the selected
// events in each peak.
func PeakMeans(set *ObservableSet, selected []bool, peaks []int) [2]float64 {
	var means [2]float64
	for j := 0; j < 2; j++ {
		var photons []float64
		for i := 0; i < set.Len(); i++ {
			if selected[i] && peaks[i] == j+1 {
				photons = append(photons, float64(set.InitialPhotons[i]))
			}
		}
		means[j] = stat.Mean(photons, nil)
	}
	return means
}

// ComputeEfficiencies derives the light-collection efficiency observable for
// every event from the predicted mean photon count of its peak.
func ComputeEfficiencies(set *ObservableSet, peaks []int, means [2]float64) []float64 {
	eff := make([]float64, set.Len())
	for i := range eff {
		eff[i] = float64(set.DetectedPhotoelectrons[i]) / (QuantumEfficiency * means[peaks[i]-1])
	}
	return eff
}
