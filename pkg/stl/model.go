package stl

import (
	"github.com/philipparndt/printcost/pkg/geometry"
)

// Model represents a decoded STL file as an indexed mesh
type Model struct {
	Name string
	Mesh *geometry.Mesh
	// ASCII is set when the model was decoded from the text format
	ASCII bool

	// index maps a vertex position to its slot in Mesh.Vertices
	index map[geometry.Vector3]int
}

// NewModel creates a new STL model with room for n triangles
func NewModel(name string, n int) *Model {
	return &Model{
		Name:  name,
		Mesh:  geometry.NewMesh(n/2+3, n),
		index: make(map[geometry.Vector3]int, n/2+3),
	}
}

// AddTriangle adds a triangle, reusing vertices already present at the
// exact same position
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	m.Mesh.Faces = append(m.Mesh.Faces, geometry.Face{
		V1: m.vertex(triangle.V1),
		V2: m.vertex(triangle.V2),
		V3: m.vertex(triangle.V3),
	})
}

func (m *Model) vertex(v geometry.Vector3) int {
	if i, ok := m.index[v]; ok {
		return i
	}
	i := len(m.Mesh.Vertices)
	m.Mesh.Vertices = append(m.Mesh.Vertices, v)
	m.index[v] = i
	return i
}

// TriangleCount returns the number of triangles in the model
func (m *Model) TriangleCount() int {
	return m.Mesh.TriangleCount()
}

// BoundingBox calculates the bounding box of the entire model
func (m *Model) BoundingBox() geometry.BoundingBox {
	return m.Mesh.BoundingBox()
}

// Volume returns the enclosed volume in cm³
func (m *Model) Volume() float64 {
	return m.Mesh.Volume()
}
