package geometry

// NewBox returns a closed, outward-wound box mesh spanning min..max
func NewBox(min, max Vector3) *Mesh {
	m := NewMesh(8, 12)
	m.Vertices = append(m.Vertices,
		Vector3{min.X, min.Y, min.Z},
		Vector3{max.X, min.Y, min.Z},
		Vector3{max.X, max.Y, min.Z},
		Vector3{min.X, max.Y, min.Z},
		Vector3{min.X, min.Y, max.Z},
		Vector3{max.X, min.Y, max.Z},
		Vector3{max.X, max.Y, max.Z},
		Vector3{min.X, max.Y, max.Z},
	)
	m.Faces = append(m.Faces,
		Face{0, 2, 1}, Face{0, 3, 2}, // bottom
		Face{4, 5, 6}, Face{4, 6, 7}, // top
		Face{0, 1, 5}, Face{0, 5, 4}, // front
		Face{3, 7, 6}, Face{3, 6, 2}, // back
		Face{0, 4, 7}, Face{0, 7, 3}, // left
		Face{1, 2, 6}, Face{1, 6, 5}, // right
	)
	return m
}

// Triangles expands the mesh into a flat triangle list in face order
func (m *Mesh) Triangles() []Triangle {
	out := make([]Triangle, len(m.Faces))
	for i := range m.Faces {
		out[i] = m.Triangle(i)
	}
	return out
}
