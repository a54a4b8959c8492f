package geometry

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func unitCube() *Mesh {
	// 10 mm cube is 1 cm³
	return NewBox(NewVector3(0, 0, 0), NewVector3(10, 10, 10))
}

func TestMeshCounts(t *testing.T) {
	tests := []struct {
		name      string
		mesh      *Mesh
		vertices  int
		triangles int
		empty     bool
	}{
		{"nil", nil, 0, 0, true},
		{"no faces", &Mesh{Vertices: []Vector3{{1, 2, 3}}}, 1, 0, true},
		{"cube", unitCube(), 8, 12, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mesh.IsEmpty(); got != tt.empty {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.empty)
			}
			if tt.mesh == nil {
				return
			}
			if got := tt.mesh.VertexCount(); got != tt.vertices {
				t.Errorf("VertexCount() = %d, want %d", got, tt.vertices)
			}
			if got := tt.mesh.TriangleCount(); got != tt.triangles {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.triangles)
			}
		})
	}
}

func TestMeshUnitCubeMeasures(t *testing.T) {
	cube := unitCube()

	if v := cube.Volume(); math.Abs(v-1.0) > tolerance {
		t.Errorf("Volume failed: expected 1.0, got %v", v)
	}
	if v := cube.BoundingBoxVolume(); math.Abs(v-1.0) > tolerance {
		t.Errorf("BoundingBoxVolume failed: expected 1.0, got %v", v)
	}
	if a := cube.SurfaceArea(); math.Abs(a-6.0) > tolerance {
		t.Errorf("SurfaceArea failed: expected 6.0, got %v", a)
	}
	if a := cube.FootprintArea(); math.Abs(a-1.0) > tolerance {
		t.Errorf("FootprintArea failed: expected 1.0, got %v", a)
	}
}

func TestMeshVolumeIgnoresWinding(t *testing.T) {
	cube := unitCube()
	flipped := &Mesh{Vertices: cube.Vertices}
	for _, f := range cube.Faces {
		flipped.Faces = append(flipped.Faces, Face{f.V1, f.V3, f.V2})
	}

	if math.Signbit(cube.SignedVolumeMM3()) == math.Signbit(flipped.SignedVolumeMM3()) {
		t.Errorf("expected opposite signs, got %v and %v", cube.SignedVolumeMM3(), flipped.SignedVolumeMM3())
	}
	if math.Abs(flipped.Volume()-cube.Volume()) > tolerance {
		t.Errorf("Volume failed: expected %v, got %v", cube.Volume(), flipped.Volume())
	}
}

func TestMeshEmptyMeasuresAreZero(t *testing.T) {
	for _, m := range []*Mesh{nil, {}, {Vertices: []Vector3{{1, 1, 1}}}} {
		if m.Volume() != 0 || m.BoundingBoxVolume() != 0 || m.SurfaceArea() != 0 || m.FootprintArea() != 0 {
			t.Errorf("expected all zero measures for %+v", m)
		}
	}
}

func TestMeshTranslationInvariance(t *testing.T) {
	cube := NewBox(NewVector3(0, 0, 0), NewVector3(20, 10, 5))
	want := cube.Volume()

	for _, offset := range []Vector3{{100, 0, 0}, {-3.5, 1e3, 42}, {1e3, -1e3, 500}} {
		got := cube.Transformed(Translate(offset.X, offset.Y, offset.Z)).Volume()
		if math.Abs(got-want) > 1e-6 {
			t.Errorf("translated by %v: expected %v, got %v", offset, want, got)
		}
	}
}

func TestMeshScaleLaw(t *testing.T) {
	cube := unitCube()
	for _, s := range []float64{0.5, 2, 3.7, 25.4} {
		got := cube.Scaled(s).Volume()
		want := cube.Volume() * s * s * s
		if math.Abs(got-want) > 1e-9*want {
			t.Errorf("scale %v: expected %v, got %v", s, want, got)
		}
	}
}

func TestMeshDeterminantVolumeMatchesTransformed(t *testing.T) {
	base := NewBox(NewVector3(-1, 2, 0), NewVector3(9, 7, 4))
	transforms := []Transform{
		RotateZ(0.3),
		Scale(2, 0.5, 3),
		FromRows([4]float64{1, 0.4, 0.2, 5}, [4]float64{0, 1, 0.7, -2}, [4]float64{0.1, 0, 1, 8}),
		Scale(-1, 1, 1).Multiply(RotateZ(1.2)),
	}
	for i, tr := range transforms {
		exact := base.Transformed(tr).Volume()
		fast := math.Abs(base.SignedVolumeMM3()) * math.Abs(tr.Det3()) / MM3PerCM3
		if math.Abs(exact-fast) > 1e-9 {
			t.Errorf("transform %d: exact %v, fast %v", i, exact, fast)
		}
	}
}

func TestMeshValidate(t *testing.T) {
	m := &Mesh{
		Vertices: []Vector3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Faces:    []Face{{0, 1, 2}},
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}

	m.Faces = append(m.Faces, Face{0, 1, 3})
	if err := m.Validate(); err == nil {
		t.Error("Validate() = nil for out of range index, want error")
	}

	m.Faces = m.Faces[:1]
	m.Vertices[1].X = math.NaN()
	if err := m.Validate(); err == nil {
		t.Error("Validate() = nil for NaN vertex, want error")
	}
}

func TestMeshAppendRebasesIndices(t *testing.T) {
	a := unitCube()
	b := NewBox(NewVector3(20, 0, 0), NewVector3(30, 10, 10))

	combined := NewMesh(0, 0)
	combined.Append(a)
	combined.Append(b)

	if combined.VertexCount() != 16 || combined.TriangleCount() != 24 {
		t.Fatalf("unexpected counts: %d vertices, %d triangles", combined.VertexCount(), combined.TriangleCount())
	}
	if err := combined.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if combined.Faces[12].V1 != b.Faces[0].V1+8 {
		t.Errorf("expected rebased index %d, got %d", b.Faces[0].V1+8, combined.Faces[12].V1)
	}
	if v := combined.Volume(); math.Abs(v-2.0) > tolerance {
		t.Errorf("Volume failed: expected 2.0, got %v", v)
	}
}
