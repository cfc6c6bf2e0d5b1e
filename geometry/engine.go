// Package geometry implements the Geometry Engine: it turns a
// road's parametric segments into a polyline, lifts it with elevation,
// shifts it with lane offset, and projects it to the output frame.
package geometry

import (
	"math"

	"github.com/fib-lab/opendrive-importer/model"
	"github.com/fib-lab/opendrive-importer/warn"
)

// Projector converts a world-space (or geo-referenced) position into the
// output local cartesian frame. It is injected — the core does not
// perform map projection itself.
type Projector interface {
	Project(x, y float64) (px, py float64, err error)
}

// IdentityProjector is the documented-limitation default: a flat local
// tangent-plane pass-through. OpenDRIVE's <geoReference> PROJ strings are
// not parsed by the core (no corpus library offers that; see DESIGN.md).
type IdentityProjector struct{}

func (IdentityProjector) Project(x, y float64) (float64, float64, error) {
	return x, y, nil
}

// Engine discretises and lifts roads into their final local-frame polyline.
type Engine struct {
	CurveResolution   float64 // metres between discretised curve vertices
	MinVertexDistance float64 // 0 disables vertex decimation
	Projector         Projector
	Sink              warn.Sink
}

// NewEngine returns an Engine with the given resolution and projector. A
// nil projector defaults to IdentityProjector.
func NewEngine(curveResolution, minVertexDistance float64, proj Projector, sink warn.Sink) *Engine {
	if proj == nil {
		proj = IdentityProjector{}
	}
	return &Engine{
		CurveResolution:   curveResolution,
		MinVertexDistance: minVertexDistance,
		Projector:         proj,
		Sink:              sink,
	}
}

// BuildPolyline discretises r's geometry segments, concatenates them,
// applies elevation and lane offset, and projects the result. On
// projection failure it warns and clears r.Polyline.
func (e *Engine) BuildPolyline(r *model.Road) {
	if len(r.Geometry) == 0 {
		r.Polyline = nil
		return
	}
	nonLinearElev := hasNonLinearElevation(r.Elevation)

	var pts model.Polyline
	for i, seg := range r.Geometry {
		segPts := e.discretiseSegment(seg, nonLinearElev)
		if i > 0 && len(pts) > 0 && len(segPts) > 0 {
			prevKind := r.Geometry[i-1].DiscretisationKind()
			if prevKind == model.KindLine && pts[len(pts)-1].AlmostSame(segPts[0], model.Epsilon) {
				pts = pts[:len(pts)-1]
			} else if !pts[len(pts)-1].AlmostSame(segPts[0], model.Epsilon) {
				e.warnf("Mismatched geometry on road %s between segment %d and %d", r.ID, i-1, i)
			}
		}
		pts = append(pts, segPts...)
	}

	if e.MinVertexDistance > 0 {
		pts = decimate(pts, e.MinVertexDistance)
	}

	applyElevation(pts, r.Elevation)
	pts = applyLaneOffset(pts, r.LaneOffset, e)

	projected := make(model.Polyline, 0, len(pts))
	for _, p := range pts {
		px, py, err := e.Projector.Project(p.X, p.Y)
		if err != nil {
			e.warnf("Projection failed for road %s, discarding geometry: %v", r.ID, err)
			r.Polyline = nil
			return
		}
		projected = append(projected, model.Point{X: px, Y: py, Z: p.Z})
	}
	r.Polyline = projected
}

func (e *Engine) warnf(format string, args ...any) {
	if e.Sink != nil {
		e.Sink.Warnf(format, args...)
	}
}

func hasNonLinearElevation(elev []model.CubicPoly) bool {
	for _, p := range elev {
		if p.C != 0 || p.D != 0 {
			return true
		}
	}
	return false
}

// decimate removes vertices closer than minDist to the previously kept
// vertex, always keeping the first and last.
func decimate(pts model.Polyline, minDist float64) model.Polyline {
	if len(pts) < 3 {
		return pts
	}
	out := model.Polyline{pts[0]}
	for i := 1; i < len(pts)-1; i++ {
		if out[len(out)-1].Distance2D(pts[i]) >= minDist {
			out = append(out, pts[i])
		}
	}
	out = append(out, pts[len(pts)-1])
	return out
}
