package analysis

import (
	"testing"

	"github.com/philipparndt/printcost/pkg/engine"
	"github.com/philipparndt/printcost/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boxObject() engine.Object {
	mesh := geometry.NewBox(geometry.NewVector3(0, 0, 0), geometry.NewVector3(20, 10, 5))
	return engine.Object{Name: "box", Mesh: mesh, FastVolume: mesh.Volume()}
}

func TestAnalyzeObject(t *testing.T) {
	result := AnalyzeObject(boxObject())

	assert.Equal(t, "box", result.Name)
	assert.Equal(t, 12, result.TriangleCount)
	assert.Equal(t, 8, result.VertexCount)
	assert.Equal(t, 36, result.EdgeCount)
	assert.Equal(t, geometry.NewVector3(20, 10, 5), result.Dimensions)
	assert.InDelta(t, 1.0, result.Volume, 1e-9)
	assert.InDelta(t, 1.0, result.FastVolume, 1e-9)
	assert.InDelta(t, 1.0, result.BoundingBoxVolume, 1e-9)
	assert.InDelta(t, 7.0, result.SurfaceArea, 1e-9)
	assert.InDelta(t, 2.0, result.FootprintArea, 1e-9)
	assert.InDelta(t, 5.0, result.MinEdgeLength, 1e-9)
	assert.Greater(t, result.MaxEdgeLength, 20.0)
	assert.Greater(t, result.AvgEdgeLength, result.MinEdgeLength)
}

func TestAnalyzeEmptyObject(t *testing.T) {
	result := AnalyzeObject(engine.Object{Name: "empty", Mesh: geometry.NewMesh(0, 0)})

	assert.Zero(t, result.EdgeCount)
	assert.Zero(t, result.MinEdgeLength)
	assert.Zero(t, result.Volume)
	assert.Zero(t, result.SurfaceArea)
}

func TestEdgeQueries(t *testing.T) {
	result := AnalyzeObject(boxObject())

	longest := FindLongestEdges(result, 3)
	require.Len(t, longest, 3)
	assert.GreaterOrEqual(t, longest[0].Length, longest[1].Length)
	assert.GreaterOrEqual(t, longest[1].Length, longest[2].Length)

	shortest := FindShortestEdges(result, 100)
	assert.Len(t, shortest, result.EdgeCount)
	assert.InDelta(t, 5.0, shortest[0].Length, 1e-9)

	assert.Empty(t, FindShortestEdges(result, -1))

	exact := FindEdgesByLength(result, 9.999, 10.001)
	require.NotEmpty(t, exact)
	for _, e := range exact {
		assert.InDelta(t, 10.0, e.Length, 1e-3)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "(1.000000, -2.500000, 0.000000)", FormatVector(geometry.NewVector3(1, -2.5, 0)))
	assert.Equal(t, "3.000000 cm³", FormatMeasurement(3, "cm³"))
	assert.Equal(t, "3.000000 units", FormatMeasurement(3, ""))
}
