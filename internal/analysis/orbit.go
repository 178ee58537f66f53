package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/san-kum/orbitsim/internal/dynamo"
)

// Coordinate selects one component of a particle's phase space.
type Coordinate int

const (
	X Coordinate = iota
	Y
	VX
	VY
)

// Component returns one coordinate of particle idx for every snapshot that
// contains it.
func Component(timeline []dynamo.Snapshot, idx int, c Coordinate) []float64 {
	out := make([]float64, 0, len(timeline))
	for _, snap := range timeline {
		if idx < 0 || idx >= len(snap.Particles) {
			continue
		}
		p := snap.Particles[idx]
		switch c {
		case X:
			out = append(out, p.X)
		case Y:
			out = append(out, p.Y)
		case VX:
			out = append(out, p.VX)
		case VY:
			out = append(out, p.VY)
		}
	}
	return out
}

// Radii returns the distance of particle idx from the star over time.
func Radii(timeline []dynamo.Snapshot, idx int) []float64 {
	out := make([]float64, 0, len(timeline))
	for _, snap := range timeline {
		if idx < 0 || idx >= len(snap.Particles) {
			continue
		}
		out = append(out, snap.Particles[idx].Radius())
	}
	return out
}

// Apsides returns the smallest and largest radius. ok is false for an empty
// series.
func Apsides(radii []float64) (peri, apo float64, ok bool) {
	if len(radii) == 0 {
		return 0, 0, false
	}
	peri, apo = math.Inf(1), math.Inf(-1)
	for _, r := range radii {
		peri = math.Min(peri, r)
		apo = math.Max(apo, r)
	}
	return peri, apo, true
}

// Eccentricity estimates e from the apsides of a closed orbit.
func Eccentricity(peri, apo float64) float64 {
	if apo+peri == 0 {
		return 0
	}
	return (apo - peri) / (apo + peri)
}

// PowerSpectrum returns the magnitudes of the non-negative frequency bins of
// the mean-removed signal.
func PowerSpectrum(samples []float64) []float64 {
	n := len(samples)
	if n == 0 {
		return nil
	}

	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(n)

	centred := make([]float64, n)
	for i, v := range samples {
		centred[i] = v - mean
	}

	spectrum := fft.FFTReal(centred)
	ps := make([]float64, n/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantPeriod returns the period of the strongest non-constant component
// of samples taken every dt. ok is false when the signal is too short or
// flat.
func DominantPeriod(samples []float64, dt float64) (float64, bool) {
	n := len(samples)
	if n < 4 || dt <= 0 {
		return 0, false
	}

	ps := PowerSpectrum(samples)
	peak := 0
	for k := 1; k < len(ps); k++ {
		if ps[k] > ps[peak] || peak == 0 {
			peak = k
		}
	}
	if ps[peak] < 1e-12 {
		return 0, false
	}
	return float64(n) * dt / float64(peak), true
}
