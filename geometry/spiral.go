package geometry

import (
	"math"

	"github.com/fib-lab/opendrive-importer/model"
)

// spiralSubsteps is the number of Simpson's-rule intervals used for each
// evaluation of the clothoid kernel; every sample integrates over the
// whole stretch from the segment start to that sample with this fixed
// subdivision.
const spiralSubsteps = 16

// discretiseSpiral samples a clothoid from CurvStart to CurvEnd over
// Length using a canonical-frame Fresnel-like kernel: curvature varies
// linearly with arclength, so heading varies
// quadratically; x(s) and y(s) are the cumulative cosine/sine integrals of
// that heading. The kernel is evaluated in its own local frame starting at
// the origin with heading 0 (so "t0", the canonical kernel's tangent at
// the segment's starting arclength, is always 0 by construction) then
// rotated by Hdg and translated to Start.
func (e *Engine) discretiseSpiral(s model.SpiralSegment) model.Polyline {
	rate := s.CurvatureRate()
	if s.Length == 0 || rate == 0 {
		e.warnf("Degenerate spiral (zero length or constant curvature), keeping start point only")
		return model.Polyline{s.Start}
	}

	kernel := func(arc float64) (x, y float64) {
		return integrateClothoid(s.CurvStart, rate, arc)
	}

	var pts model.Polyline
	traveled := 0.0
	for {
		kx, ky := kernel(traveled)
		pts = append(pts, rotateTranslate(kx, ky, s.Start, s.Hdg))
		if traveled >= s.Length {
			break
		}
		traveled += e.CurveResolution
		if traveled > s.Length {
			traveled = s.Length
		}
	}
	return pts
}

// integrateClothoid numerically integrates x(s)=∫cos(theta(u))du,
// y(s)=∫sin(theta(u))du for theta(u) = curvStart*u + rate*u^2/2, from 0 to
// arc, using composite Simpson's rule over spiralSubsteps intervals.
func integrateClothoid(curvStart, rate, arc float64) (x, y float64) {
	if arc == 0 {
		return 0, 0
	}
	n := spiralSubsteps
	if n%2 != 0 {
		n++
	}
	h := arc / float64(n)
	theta := func(u float64) float64 { return curvStart*u + 0.5*rate*u*u }

	sumCos, sumSin := math.Cos(theta(0)), math.Sin(theta(0))
	sumCos += math.Cos(theta(arc))
	sumSin += math.Sin(theta(arc))
	for i := 1; i < n; i++ {
		u := float64(i) * h
		w := 4.0
		if i%2 == 0 {
			w = 2.0
		}
		sumCos += w * math.Cos(theta(u))
		sumSin += w * math.Sin(theta(u))
	}
	x = sumCos * h / 3
	y = sumSin * h / 3
	return x, y
}
