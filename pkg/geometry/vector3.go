package geometry

import "math"

// Vector3 is a point or direction in model space. Decoded meshes are in
// millimeters once the document unit has been applied.
type Vector3 struct {
	X, Y, Z float64
}

// NewVector3 creates a new 3D vector
func NewVector3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Add returns v + o
func (v Vector3) Add(o Vector3) Vector3 { return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o
func (v Vector3) Sub(o Vector3) Vector3 { return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Mul scales v by s
func (v Vector3) Mul(s float64) Vector3 { return Vector3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns v · o
func (v Vector3) Dot(o Vector3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns v × o
func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Triple returns the scalar triple product v · (a × b), six times the signed
// volume of the tetrahedron spanned by the origin, v, a and b
func (v Vector3) Triple(a, b Vector3) float64 {
	return v.X*(a.Y*b.Z-a.Z*b.Y) + v.Y*(a.Z*b.X-a.X*b.Z) + v.Z*(a.X*b.Y-a.Y*b.X)
}

// Length returns the Euclidean norm
func (v Vector3) Length() float64 { return math.Sqrt(v.Dot(v)) }

// Distance returns the distance between two points
func (v Vector3) Distance(o Vector3) float64 { return v.Sub(o).Length() }

// Unit scales v to length 1. A zero vector stays zero, which is what a
// degenerate facet stores as its normal.
func (v Vector3) Unit() Vector3 {
	if l := v.Length(); l > 0 {
		return v.Mul(1 / l)
	}
	return Vector3{}
}

// IsFinite reports whether no component is NaN or infinite
func (v Vector3) IsFinite() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Min returns the component-wise minimum, the low corner of a bounding box
func (v Vector3) Min(o Vector3) Vector3 {
	return Vector3{math.Min(v.X, o.X), math.Min(v.Y, o.Y), math.Min(v.Z, o.Z)}
}

// Max returns the component-wise maximum, the high corner of a bounding box
func (v Vector3) Max(o Vector3) Vector3 {
	return Vector3{math.Max(v.X, o.X), math.Max(v.Y, o.Y), math.Max(v.Z, o.Z)}
}
