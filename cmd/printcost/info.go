package main

import (
	"fmt"

	"github.com/philipparndt/printcost/pkg/analysis"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display geometry information for every object in a file",
	Long:  "Show dimensions, triangle and vertex counts, volumes, surface area, footprint and edge statistics per object.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	loader, err := newLoader()
	if err != nil {
		return err
	}
	session, err := loader.Load(filename)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "Model File Information")
	fmt.Fprintln(w, "======================")
	fmt.Fprintf(w, "File: %s\n", filename)
	fmt.Fprintf(w, "Objects: %d\n", len(session.Objects))
	if len(session.Warnings) > 0 {
		fmt.Fprintf(w, "Skipped objects: %d\n", len(session.Warnings))
		for _, warning := range session.Warnings {
			fmt.Fprintf(w, "  - %v\n", warning)
		}
	}

	for i, obj := range session.Objects {
		result := analysis.AnalyzeObject(obj)

		fmt.Fprintf(w, "\n[%d] %s (%s)\n", i+1, result.Name, obj.Source.Format)

		fmt.Fprintln(w, "Model Statistics:")
		fmt.Fprintf(w, "  Triangles: %d\n", result.TriangleCount)
		fmt.Fprintf(w, "  Vertices: %d\n", result.VertexCount)
		fmt.Fprintf(w, "  Surface Area: %s\n", analysis.FormatMeasurement(result.SurfaceArea, "cm²"))
		fmt.Fprintf(w, "  Footprint: %s\n", analysis.FormatMeasurement(result.FootprintArea, "cm²"))

		fmt.Fprintln(w, "Bounding Box:")
		fmt.Fprintf(w, "  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
		fmt.Fprintf(w, "  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
		fmt.Fprintf(w, "  Center: %s\n", analysis.FormatVector(result.BoundingBox.Center()))

		fmt.Fprintln(w, "Dimensions:")
		fmt.Fprintf(w, "  Width (X): %s\n", analysis.FormatMeasurement(result.Dimensions.X, "mm"))
		fmt.Fprintf(w, "  Depth (Y): %s\n", analysis.FormatMeasurement(result.Dimensions.Y, "mm"))
		fmt.Fprintf(w, "  Height (Z): %s\n", analysis.FormatMeasurement(result.Dimensions.Z, "mm"))
		fmt.Fprintf(w, "  Diagonal: %s\n", analysis.FormatMeasurement(result.BoundingBox.Diagonal(), "mm"))

		fmt.Fprintln(w, "Volume:")
		fmt.Fprintf(w, "  Mesh: %s\n", analysis.FormatMeasurement(result.Volume, "cm³"))
		fmt.Fprintf(w, "  Fast: %s\n", analysis.FormatMeasurement(result.FastVolume, "cm³"))
		fmt.Fprintf(w, "  Bounding box: %s\n", analysis.FormatMeasurement(result.BoundingBoxVolume, "cm³"))

		fmt.Fprintln(w, "Edge Lengths:")
		fmt.Fprintf(w, "  Minimum: %s\n", analysis.FormatMeasurement(result.MinEdgeLength, "mm"))
		fmt.Fprintf(w, "  Maximum: %s\n", analysis.FormatMeasurement(result.MaxEdgeLength, "mm"))
		fmt.Fprintf(w, "  Average: %s\n", analysis.FormatMeasurement(result.AvgEdgeLength, "mm"))
	}
	return nil
}
