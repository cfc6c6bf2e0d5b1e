package model

// CubicPoly is the OpenDRIVE cubic polynomial p(ds) = a + b*ds + c*ds^2 +
// d*ds^3, anchored at S (an absolute or section-relative arclength
// depending on context — see the Eval callers for which).
type CubicPoly struct {
	S          float64
	A, B, C, D float64
}

// Eval evaluates the polynomial at ds arclength past S.
func (c CubicPoly) Eval(ds float64) float64 {
	return c.A + ds*(c.B+ds*(c.C+ds*c.D))
}

// EvalAt evaluates the polynomial at absolute arclength s, i.e. Eval(s-c.S).
func (c CubicPoly) EvalAt(s float64) float64 {
	return c.Eval(s - c.S)
}
