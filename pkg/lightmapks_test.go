package lightmap

import (
	"math/rand/v2"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fittedLightMap() *LightMapKS {
	rng := rand.New(rand.NewPCG(5, 0))
	n := 200
	x := make([]float64, n)
	y := make([]float64, n)
	z := make([]float64, n)
	eff := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = rng.Float64()*400. - 200.
		y[i] = rng.Float64()*400. - 200.
		z[i] = -500. - rng.Float64()*400.
		eff[i] = 0.5
	}
	lm := NewLightMapKS(DefaultSigma)
	lm.Fit(x, y, z, eff)
	return lm
}

func TestLightMapKSConstantField(t *testing.T) {
	t.Parallel()

	lm := fittedLightMap()
	require.Equal(t, 200, lm.NumPoints())

	// A weighted average of a constant is the constant.
	assert.InDelta(t, 0.5, lm.Evaluate(0., 0., -700.), 1e-12)
	assert.InDelta(t, 0.5, lm.Evaluate(150., -150., -550.), 1e-12)

	mean, std := lm.Accuracy()
	assert.InDelta(t, 1., mean, 1e-12)
	assert.InDelta(t, 0., std, 1e-12)
}

func TestLightMapKSLocality(t *testing.T) {
	t.Parallel()

	lm := NewLightMapKS(10.)
	lm.Fit(
		[]float64{0., 1000.},
		[]float64{0., 0.},
		[]float64{-500., -500.},
		[]float64{0.2, 0.8})

	// 1000 mm apart with a 10 mm kernel: each training point dominates its
	// own neighbourhood completely.
	assert.InDelta(t, 0.2, lm.Evaluate(1., 0., -500.), 1e-6)
	assert.InDelta(t, 0.8, lm.Evaluate(999., 0., -500.), 1e-6)
}

func TestLightMapKSFitAccumulates(t *testing.T) {
	t.Parallel()

	lm := NewLightMapKS(DefaultSigma)
	lm.Fit([]float64{0.}, []float64{0.}, []float64{-500.}, []float64{0.3})
	lm.Fit([]float64{10.}, []float64{10.}, []float64{-510.}, []float64{0.5})
	assert.Equal(t, 2, lm.NumPoints())
}

func TestLightMapKSSaveLoad(t *testing.T) {
	t.Parallel()

	lm := fittedLightMap()
	filename := filepath.Join(t.TempDir(), "lightmap_ks.json.gz")
	require.NoError(t, SaveModel(filename, lm))

	loaded, err := LoadModel(filename)
	require.NoError(t, err)
	assert.Equal(t, lm, loaded)
	assert.Equal(t, "LightMapKS", loaded.Kind())
}

func TestLoadModelMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadModel(filepath.Join(t.TempDir(), "nope.json.gz"))
	var openErr *ErrOpenFile
	require.ErrorAs(t, err, &openErr)
}
