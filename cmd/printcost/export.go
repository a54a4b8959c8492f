package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/printcost/pkg/stl"
	"github.com/spf13/cobra"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write every resolved object as a binary STL file",
	Long: `Resolve all objects of a 3MF or STL file into world-space meshes in millimeters
and write each of them to its own binary STL file.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportDir, "output", "o", ".", "Output directory")
}

func runExport(cmd *cobra.Command, args []string) error {
	loader, err := newLoader()
	if err != nil {
		return err
	}
	session, err := loader.Load(args[0])
	if err != nil {
		return err
	}

	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := cmd.OutOrStdout()
	for i, obj := range session.Objects {
		name := fmt.Sprintf("%02d_%s.stl", i+1, fileSafe(obj.Name))
		path := filepath.Join(exportDir, name)
		if err := stl.WriteBinaryFile(path, obj.Name, obj.Mesh); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s: %d triangles → %s\n", obj.Name, obj.Mesh.TriangleCount(), path)
	}
	return nil
}

func fileSafe(name string) string {
	if strings.EqualFold(filepath.Ext(name), ".stl") {
		name = name[:len(name)-len(".stl")]
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, name)
}
