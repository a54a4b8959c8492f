package geometry

import (
	"fmt"
	"math"
)

// Unit folds used by the kernel. Meshes are in millimeters, results in
// centimeters.
const (
	MM3PerCM3 = 1000.0
	MM2PerCM2 = 100.0
)

// Face is a triangle given by three indices into a vertex slice
type Face struct {
	V1, V2, V3 int
}

// Mesh is an indexed triangle mesh. Every face index must be < len(Vertices).
// The order of vertices and faces does not affect any measure.
type Mesh struct {
	Vertices []Vector3
	Faces    []Face
}

// NewMesh creates an empty mesh with room for the given counts
func NewMesh(vertexCap, faceCap int) *Mesh {
	return &Mesh{
		Vertices: make([]Vector3, 0, vertexCap),
		Faces:    make([]Face, 0, faceCap),
	}
}

// VertexCount returns the number of vertices
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of faces
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// IsEmpty reports whether the mesh has no vertices or no faces
func (m *Mesh) IsEmpty() bool {
	return m == nil || len(m.Vertices) == 0 || len(m.Faces) == 0
}

// Validate checks that every vertex is finite and every face index is in
// range
func (m *Mesh) Validate() error {
	n := len(m.Vertices)
	for i, v := range m.Vertices {
		if !v.IsFinite() {
			return fmt.Errorf("vertex %d has a non-finite coordinate %v", i, v)
		}
	}
	for i, f := range m.Faces {
		if f.V1 < 0 || f.V1 >= n || f.V2 < 0 || f.V2 >= n || f.V3 < 0 || f.V3 >= n {
			return fmt.Errorf("triangle %d references vertex (%d, %d, %d) outside 0..%d", i, f.V1, f.V2, f.V3, n-1)
		}
	}
	return nil
}

// Triangle returns face i resolved to its vertex positions
func (m *Mesh) Triangle(i int) Triangle {
	f := m.Faces[i]
	return Triangle{V1: m.Vertices[f.V1], V2: m.Vertices[f.V2], V3: m.Vertices[f.V3]}
}

// Append adds the vertices and faces of other, rebasing its indices
func (m *Mesh) Append(other *Mesh) {
	if other == nil {
		return
	}
	offset := len(m.Vertices)
	m.Vertices = append(m.Vertices, other.Vertices...)
	for _, f := range other.Faces {
		m.Faces = append(m.Faces, Face{V1: f.V1 + offset, V2: f.V2 + offset, V3: f.V3 + offset})
	}
}

// Transformed returns a copy of the mesh with t applied to every vertex.
// Faces are shared with the receiver.
func (m *Mesh) Transformed(t Transform) *Mesh {
	out := &Mesh{
		Vertices: make([]Vector3, len(m.Vertices)),
		Faces:    m.Faces,
	}
	for i, v := range m.Vertices {
		out.Vertices[i] = t.Apply(v)
	}
	return out
}

// Scaled returns a copy of the mesh with every coordinate multiplied by s
func (m *Mesh) Scaled(s float64) *Mesh {
	if s == 1 {
		return m
	}
	return m.Transformed(Scale(s, s, s))
}

// SignedVolumeMM3 returns the signed enclosed volume in cubic model units.
// The sign follows the winding of the faces.
func (m *Mesh) SignedVolumeMM3() float64 {
	if m.IsEmpty() {
		return 0
	}
	var sum float64
	for i := range m.Faces {
		sum += m.Triangle(i).SignedVolume6()
	}
	return sum / 6.0
}

// Volume returns the enclosed volume in cm³ using signed tetrahedron
// decomposition. Only meaningful for closed surfaces.
func (m *Mesh) Volume() float64 {
	return math.Abs(m.SignedVolumeMM3()) / MM3PerCM3
}

// BoundingBox calculates the axis-aligned bounding box of all vertices
func (m *Mesh) BoundingBox() BoundingBox {
	bbox := NewBoundingBox()
	if m == nil {
		return bbox
	}
	for _, v := range m.Vertices {
		bbox.Extend(v)
	}
	return bbox
}

// BoundingBoxVolume returns the bounding box volume in cm³
func (m *Mesh) BoundingBoxVolume() float64 {
	if m.IsEmpty() {
		return 0
	}
	return m.BoundingBox().Volume() / MM3PerCM3
}

// SurfaceArea returns the total triangle area in cm²
func (m *Mesh) SurfaceArea() float64 {
	if m.IsEmpty() {
		return 0
	}
	total := 0.0
	for i := range m.Faces {
		total += m.Triangle(i).Area()
	}
	return total / MM2PerCM2
}

// FootprintArea returns the XY bounding box area in cm², an approximation
// of the top/bottom cap area
func (m *Mesh) FootprintArea() float64 {
	if m.IsEmpty() {
		return 0
	}
	return m.BoundingBox().Footprint() / MM2PerCM2
}
