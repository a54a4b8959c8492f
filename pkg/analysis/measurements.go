package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/printcost/pkg/engine"
	"github.com/philipparndt/printcost/pkg/geometry"
)

// EdgeInfo contains information about an edge in the model
type EdgeInfo struct {
	Start      geometry.Vector3
	End        geometry.Vector3
	Length     float64
	TriangleID int
}

// MeasurementResult contains the geometric measurements of one object.
// Lengths are in mm, areas in cm² and volumes in cm³.
type MeasurementResult struct {
	Name              string
	BoundingBox       geometry.BoundingBox
	Dimensions        geometry.Vector3
	Volume            float64
	FastVolume        float64
	BoundingBoxVolume float64
	SurfaceArea       float64
	FootprintArea     float64
	TriangleCount     int
	VertexCount       int
	EdgeCount         int
	MinEdgeLength     float64
	MaxEdgeLength     float64
	AvgEdgeLength     float64
	AllEdges          []EdgeInfo
}

// AnalyzeObject measures an object's mesh
func AnalyzeObject(obj engine.Object) *MeasurementResult {
	mesh := obj.Mesh
	result := &MeasurementResult{
		Name:              obj.Name,
		BoundingBox:       mesh.BoundingBox(),
		Volume:            mesh.Volume(),
		FastVolume:        obj.FastVolume,
		BoundingBoxVolume: mesh.BoundingBoxVolume(),
		SurfaceArea:       mesh.SurfaceArea(),
		FootprintArea:     mesh.FootprintArea(),
		TriangleCount:     mesh.TriangleCount(),
		VertexCount:       mesh.VertexCount(),
		AllEdges:          make([]EdgeInfo, 0, 3*mesh.TriangleCount()),
	}
	result.Dimensions = result.BoundingBox.Size()

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0

	for i := 0; i < mesh.TriangleCount(); i++ {
		triangle := mesh.Triangle(i)
		edges := []struct {
			start, end geometry.Vector3
		}{
			{triangle.V1, triangle.V2},
			{triangle.V2, triangle.V3},
			{triangle.V3, triangle.V1},
		}

		for _, edge := range edges {
			length := edge.start.Distance(edge.end)
			result.AllEdges = append(result.AllEdges, EdgeInfo{
				Start:      edge.start,
				End:        edge.end,
				Length:     length,
				TriangleID: i,
			})

			totalLength += length
			minLength = math.Min(minLength, length)
			maxLength = math.Max(maxLength, length)
		}
	}

	result.EdgeCount = len(result.AllEdges)
	if result.EdgeCount > 0 {
		result.MinEdgeLength = minLength
		result.MaxEdgeLength = maxLength
		result.AvgEdgeLength = totalLength / float64(result.EdgeCount)
	}

	return result
}

// FindEdgesByLength finds all edges within a length range
func FindEdgesByLength(result *MeasurementResult, minLength, maxLength float64) []EdgeInfo {
	var edges []EdgeInfo
	for _, edge := range result.AllEdges {
		if edge.Length >= minLength && edge.Length <= maxLength {
			edges = append(edges, edge)
		}
	}
	return edges
}

// FindLongestEdges returns the N longest edges in the model
func FindLongestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b float64) bool { return a > b })
}

// FindShortestEdges returns the N shortest edges in the model
func FindShortestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b float64) bool { return a < b })
}

func sortedEdges(result *MeasurementResult, count int, less func(a, b float64) bool) []EdgeInfo {
	edges := make([]EdgeInfo, len(result.AllEdges))
	copy(edges, result.AllEdges)

	sort.SliceStable(edges, func(i, j int) bool {
		return less(edges[i].Length, edges[j].Length)
	})

	count = max(0, min(count, len(edges)))
	return edges[:count]
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
