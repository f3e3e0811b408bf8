package lightmap

import (
	"compress/gzip"
	"encoding/json"
	"math"
	"os"

	"gonum.org/v1/gonum/stat"
)

// DefaultSigma is the kernel smoothing length scale in mm.
const DefaultSigma = 50.

// LightMapKS is a Gaussian kernel-smoothing lightmap: the light-collection
// efficiency at a point is the kernel-weighted average of the training
// efficiencies. Far outside the training cloud the weights underflow and the
// estimate degrades to NaN.
type LightMapKS struct {
	Sigma float64   `json:"sigma"`
	X     []float64 `json:"x"`
	Y     []float64 `json:"y"`
	Z     []float64 `json:"z"`
	Eff   []float64 `json:"eff"`
}

func NewLightMapKS(sigma float64) *LightMapKS {
	return &LightMapKS{Sigma: sigma}
}

func (lm *LightMapKS) Kind() string {
	return "LightMapKS"
}

// Fit adds training points. Repeated calls accumulate, matching ensemble
// fitting where every member sees the full training set.
func (lm *LightMapKS) Fit(x []float64, y []float64, z []float64, eff []float64) {
	lm.X = append(lm.X, x...)
	lm.Y = append(lm.Y, y...)
	lm.Z = append(lm.Z, z...)
	lm.Eff = append(lm.Eff, eff...)
}

func (lm *LightMapKS) NumPoints() int {
	return len(lm.Eff)
}

// Evaluate returns the smoothed efficiency at a detector position.
func (lm *LightMapKS) Evaluate(x float64, y float64, z float64) float64 {
	twoSigmaSq := 2. * lm.Sigma * lm.Sigma
	var sumWeighted, sumWeights float64
	for i := range lm.Eff {
		dx := x - lm.X[i]
		dy := y - lm.Y[i]
		dz := z - lm.Z[i]
		weight := math.Exp(-(dx*dx + dy*dy + dz*dz) / twoSigmaSq)
		sumWeighted += weight * lm.Eff[i]
		sumWeights += weight
	}
	return sumWeighted / sumWeights
}

// Accuracy evaluates the fitted map at its own training points and returns
// the mean and standard deviation of predicted over observed efficiency.
func (lm *LightMapKS) Accuracy() (float64, float64) {
	ratios := make([]float64, lm.NumPoints())
	for i := range ratios {
		ratios[i] = lm.Evaluate(lm.X[i], lm.Y[i], lm.Z[i]) / lm.Eff[i]
	}
	mean, std := stat.MeanStdDev(ratios, nil)
	return mean, std
}

// SaveModel persists a fitted lightmap as gzipped JSON.
func SaveModel(filename string, lm *LightMapKS) error {
	file, err := os.Create(filename)
	if err != nil {
		return &ErrOpenFile{Filename: filename, Err: err}
	}
	defer file.Close()

	zw := gzip.NewWriter(file)
	if err := json.NewEncoder(zw).Encode(lm); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

func LoadModel(filename string) (*LightMapKS, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, &ErrOpenFile{Filename: filename, Err: err}
	}
	defer file.Close()

	zr, err := gzip.NewReader(file)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	lm := &LightMapKS{}
	if err := json.NewDecoder(zr).Decode(lm); err != nil {
		return nil, err
	}
	return lm, nil
}
