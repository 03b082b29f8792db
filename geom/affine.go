package geom

import "math"

// Affine is a 2D affine transform:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
//
// Transforms compose by post-concatenation: m.Translate(...).Scale(...)
// builds a matrix whose rightmost operation is applied to points first,
// so a chain reads in the same order the operations were appended.
type Affine struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transform.
func Identity() Affine {
	return Affine{A: 1, D: 1}
}

// Translation returns a pure translation by (dx, dy).
func Translation(dx, dy float64) Affine {
	return Affine{A: 1, D: 1, E: dx, F: dy}
}

// Scaling returns a pure scale by (sx, sy) about the origin.
func Scaling(sx, sy float64) Affine {
	return Affine{A: sx, D: sy}
}

// Rotation returns a counterclockwise rotation by rad about the origin
// (in the Y-up mathematical sense).
func Rotation(rad float64) Affine {
	sin, cos := math.Sincos(rad)
	return Affine{A: cos, B: sin, C: -sin, D: cos}
}

// Mul returns the concatenation m*n: applying the result to a point
// applies n first, then m.
func (m Affine) Mul(n Affine) Affine {
	return Affine{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Translate appends a translation to the transform chain.
func (m Affine) Translate(dx, dy float64) Affine {
	return m.Mul(Translation(dx, dy))
}

// Scale appends a scale to the transform chain.
func (m Affine) Scale(sx, sy float64) Affine {
	return m.Mul(Scaling(sx, sy))
}

// Rotate appends a rotation to the transform chain.
func (m Affine) Rotate(rad float64) Affine {
	return m.Mul(Rotation(rad))
}

// Apply transforms the point (x, y).
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// ApplyPoint transforms p.
func (m Affine) ApplyPoint(p Point) Point {
	x, y := m.Apply(p.X, p.Y)
	return Point{X: x, Y: y}
}

// Det returns the determinant of the linear part. A negative
// determinant means the transform flips orientation.
func (m Affine) Det() float64 {
	return m.A*m.D - m.B*m.C
}

const conformalEps = 1e-9

// IsConformal reports whether the linear part preserves circles:
// a rotation and/or uniform scale, possibly mirrored.
func (m Affine) IsConformal() bool {
	if math.Abs(m.A-m.D) < conformalEps && math.Abs(m.B+m.C) < conformalEps {
		return true
	}
	return math.Abs(m.A+m.D) < conformalEps && math.Abs(m.B-m.C) < conformalEps
}

// uniformScale returns the length scale of a conformal transform.
func (m Affine) uniformScale() float64 {
	return math.Hypot(m.A, m.B)
}

// decompose splits the linear part into rotation/scale/rotation:
//
//	L = Rot(phi) * diag(sx, sy) * Rot(psi)
//
// via the closed-form 2x2 singular value decomposition. sy carries the
// sign of the determinant, so reflections stay representable.
func (m Affine) decompose() (phi, sx, sy, psi float64) {
	e := (m.A + m.D) / 2
	f := (m.A - m.D) / 2
	g := (m.B + m.C) / 2
	h := (m.B - m.C) / 2
	q := math.Hypot(e, h)
	r := math.Hypot(f, g)
	sx = q + r
	sy = q - r
	a1 := math.Atan2(g, f)
	a2 := math.Atan2(h, e)
	psi = (a2 - a1) / 2
	phi = (a2 + a1) / 2
	return phi, sx, sy, psi
}
