package geometry

import (
	"math"

	"github.com/fib-lab/opendrive-importer/model"
)

// discretiseSegment dispatches on the segment's concrete kind, applying its
// own per-segment discretisation rule.
func (e *Engine) discretiseSegment(seg model.GeometrySegment, nonLinearElev bool) model.Polyline {
	switch s := seg.(type) {
	case model.LineSegment:
		return e.discretiseLine(s, nonLinearElev)
	case model.SpiralSegment:
		return e.discretiseSpiral(s)
	case model.ArcSegment:
		return e.discretiseArc(s)
	case model.Poly3Segment:
		return e.discretisePoly3(s)
	case model.ParamPoly3Segment:
		return e.discretiseParamPoly3(s)
	default:
		return model.Polyline{seg.StartPoint()}
	}
}

func endpoint(start model.Point, hdg, length float64) model.Point {
	return model.Point{
		X: start.X + length*math.Cos(hdg),
		Y: start.Y + length*math.Sin(hdg),
	}
}

func (e *Engine) discretiseLine(s model.LineSegment, nonLinearElev bool) model.Polyline {
	end := endpoint(s.Start, s.Hdg, s.Length)
	if !nonLinearElev || s.Length == 0 {
		return model.Polyline{s.Start, end}
	}
	n := int(math.Ceil(s.Length/e.CurveResolution)) + 1
	pts := make(model.Polyline, 0, n)
	for i := 0; i < n; i++ {
		frac := float64(i) / float64(n-1)
		pts = append(pts, model.Point{
			X: s.Start.X + frac*(end.X-s.Start.X),
			Y: s.Start.Y + frac*(end.Y-s.Start.Y),
		})
	}
	return pts
}

func (e *Engine) discretiseArc(s model.ArcSegment) model.Polyline {
	if s.Length == 0 || s.Curvature == 0 {
		return model.Polyline{s.Start, endpoint(s.Start, s.Hdg, s.Length)}
	}
	radius := 1 / s.Curvature
	sign := 1.0
	if s.Curvature < 0 {
		sign = -1.0
	}
	// Centre is start + r * (tangent rotated by sign*90deg).
	tx, ty := math.Cos(s.Hdg), math.Sin(s.Hdg)
	nx, ny := -sign*ty, sign*tx
	cx, cy := s.Start.X+math.Abs(radius)*nx, s.Start.Y+math.Abs(radius)*ny

	pts := model.Polyline{}
	traveled := 0.0
	for {
		angle := traveled / radius
		pts = append(pts, arcPoint(cx, cy, radius, s.Hdg, sign, angle))
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

// arcPoint evaluates the arc at arclength `traveled` (encoded via angle =
// traveled/radius) given the start heading and curvature sign.
func arcPoint(cx, cy, radius, startHdg, sign, angle float64) model.Point {
	// Start point is at angle 0 relative to the centre, offset by -sign*90deg
	// from startHdg (the centre lies to the left/right of the tangent).
	baseAngle := startHdg - sign*math.Pi/2
	theta := baseAngle + angle
	return model.Point{
		X: cx + math.Abs(radius)*math.Cos(theta),
		Y: cy + math.Abs(radius)*math.Sin(theta),
	}
}

func (e *Engine) discretisePoly3(s model.Poly3Segment) model.Polyline {
	n := stepsFor(s.Length, e.CurveResolution)
	pts := make(model.Polyline, 0, n+1)
	for i := 0; i <= n; i++ {
		u := float64(i) * s.Length / float64(n)
		if i == n {
			u = s.Length
		}
		v := s.A + u*(s.B+u*(s.C+u*s.D))
		pts = append(pts, rotateTranslate(u, v, s.Start, s.Hdg))
	}
	return pts
}

func (e *Engine) discretiseParamPoly3(s model.ParamPoly3Segment) model.Polyline {
	pMax := 1.0
	if s.Range == model.PRangeArcLength {
		pMax = s.Length
	}
	n := stepsFor(s.Length, e.CurveResolution)
	pts := make(model.Polyline, 0, n+1)
	for i := 0; i <= n; i++ {
		p := float64(i) * pMax / float64(n)
		if i == n {
			p = pMax
		}
		u := s.AU + p*(s.BU+p*(s.CU+p*s.DU))
		v := s.AV + p*(s.BV+p*(s.CV+p*s.DV))
		pts = append(pts, rotateTranslate(u, v, s.Start, s.Hdg))
	}
	return pts
}

func rotateTranslate(u, v float64, start model.Point, hdg float64) model.Point {
	cosH, sinH := math.Cos(hdg), math.Sin(hdg)
	return model.Point{
		X: start.X + u*cosH - v*sinH,
		Y: start.Y + u*sinH + v*cosH,
	}
}

func stepsFor(length, resolution float64) int {
	if length <= 0 || resolution <= 0 {
		return 1
	}
	n := int(math.Ceil(length / resolution))
	if n < 1 {
		n = 1
	}
	return n
}
