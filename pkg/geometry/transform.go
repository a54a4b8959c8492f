package geometry

import "math"

// Transform is a 4x4 affine matrix acting on column vectors.
// Row 3 is always (0, 0, 0, 1); T[r][3] holds the translation.
type Transform [4][4]float64

// Identity returns the identity transform
func Identity() Transform {
	return Transform{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translate returns a pure translation
func Translate(x, y, z float64) Transform {
	t := Identity()
	t[0][3] = x
	t[1][3] = y
	t[2][3] = z
	return t
}

// Scale returns a scale along each axis
func Scale(sx, sy, sz float64) Transform {
	t := Identity()
	t[0][0] = sx
	t[1][1] = sy
	t[2][2] = sz
	return t
}

// RotateZ returns a rotation about the Z axis (angle in radians)
func RotateZ(radians float64) Transform {
	c, s := math.Cos(radians), math.Sin(radians)
	t := Identity()
	t[0][0], t[0][1] = c, -s
	t[1][0], t[1][1] = s, c
	return t
}

// FromRows builds a transform from the three rows of its 3x4 affine part
func FromRows(r0, r1, r2 [4]float64) Transform {
	return Transform{r0, r1, r2, {0, 0, 0, 1}}
}

// Multiply returns m * other, which applies other first and then m
func (m Transform) Multiply(other Transform) Transform {
	var out Transform
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[r][c] = m[r][0]*other[0][c] + m[r][1]*other[1][c] + m[r][2]*other[2][c] + m[r][3]*other[3][c]
		}
	}
	return out
}

// Apply transforms a point (homogeneous w = 1, result w dropped)
func (m Transform) Apply(p Vector3) Vector3 {
	return Vector3{
		X: m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3],
		Y: m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3],
		Z: m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3],
	}
}

// Det3 returns the determinant of the 3x3 linear part
func (m Transform) Det3() float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// IsIdentity reports whether m equals the identity exactly
func (m Transform) IsIdentity() bool {
	return m == Identity()
}
