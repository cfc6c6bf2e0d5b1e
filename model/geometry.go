package model

// GeometrySegment is the tagged-variant interface over a road's parametric
// geometry primitives. Every variant carries its start arclength,
// world-space start position, heading and length; DiscretisationKind
// identifies the concrete variant for the Geometry Engine's type switch.
type GeometrySegment interface {
	StartS() float64
	StartPoint() Point
	Heading() float64
	SegLength() float64
	DiscretisationKind() SegmentKind
}

// SegmentKind enumerates the five geometry primitives the core understands.
type SegmentKind int

const (
	KindLine SegmentKind = iota
	KindSpiral
	KindArc
	KindPoly3
	KindParamPoly3
)

// segBase is embedded by every concrete segment to avoid repeating the
// four common fields.
type segBase struct {
	S      float64
	Start  Point
	Hdg    float64
	Length float64
}

func (b segBase) StartS() float64      { return b.S }
func (b segBase) StartPoint() Point    { return b.Start }
func (b segBase) Heading() float64     { return b.Hdg }
func (b segBase) SegLength() float64   { return b.Length }

// LineSegment is a straight segment.
type LineSegment struct{ segBase }

func (LineSegment) DiscretisationKind() SegmentKind { return KindLine }

// NewLineSegment constructs a LineSegment.
func NewLineSegment(s float64, start Point, hdg, length float64) LineSegment {
	return LineSegment{segBase{s, start, hdg, length}}
}

// SpiralSegment is a clothoid whose curvature varies linearly from
// CurvStart to CurvEnd over Length.
type SpiralSegment struct {
	segBase
	CurvStart, CurvEnd float64
}

func (SpiralSegment) DiscretisationKind() SegmentKind { return KindSpiral }

// NewSpiralSegment constructs a SpiralSegment.
func NewSpiralSegment(s float64, start Point, hdg, length, curvStart, curvEnd float64) SpiralSegment {
	return SpiralSegment{segBase{s, start, hdg, length}, curvStart, curvEnd}
}

// CurvatureRate returns (CurvEnd-CurvStart)/Length, or 0 if Length is 0.
func (s SpiralSegment) CurvatureRate() float64 {
	if s.Length == 0 {
		return 0
	}
	return (s.CurvEnd - s.CurvStart) / s.Length
}

// ArcSegment has constant curvature.
type ArcSegment struct {
	segBase
	Curvature float64
}

func (ArcSegment) DiscretisationKind() SegmentKind { return KindArc }

// NewArcSegment constructs an ArcSegment.
func NewArcSegment(s float64, start Point, hdg, length, curvature float64) ArcSegment {
	return ArcSegment{segBase{s, start, hdg, length}, curvature}
}

// Poly3Segment is a cubic offset from the tangent line, evaluated in the
// road-local frame then rotated/translated into world space.
type Poly3Segment struct {
	segBase
	A, B, C, D float64
}

func (Poly3Segment) DiscretisationKind() SegmentKind { return KindPoly3 }

// NewPoly3Segment constructs a Poly3Segment.
func NewPoly3Segment(s float64, start Point, hdg, length, a, b, c, d float64) Poly3Segment {
	return Poly3Segment{segBase{s, start, hdg, length}, a, b, c, d}
}

// PRange selects how a ParamPoly3's parameter maps to arclength.
type PRange int

const (
	PRangeNormalized PRange = iota // p in [0,1]
	PRangeArcLength                // p in [0,length]
)

// ParamPoly3Segment is a pair of cubics u(p), v(p) in the road-local frame.
type ParamPoly3Segment struct {
	segBase
	AU, BU, CU, DU float64
	AV, BV, CV, DV float64
	Range          PRange
}

func (ParamPoly3Segment) DiscretisationKind() SegmentKind { return KindParamPoly3 }

// NewParamPoly3Segment constructs a ParamPoly3Segment.
func NewParamPoly3Segment(s float64, start Point, hdg, length float64, au, bu, cu, du, av, bv, cv, dv float64, pr PRange) ParamPoly3Segment {
	return ParamPoly3Segment{segBase{s, start, hdg, length}, au, bu, cu, du, av, bv, cv, dv, pr}
}
