// Package fdm splits a model volume into the wall shell, the top and bottom
// caps and the sparse infill of an FDM print, and converts the material
// volume into weight and cost.
package fdm

import (
	"fmt"
	"math"
	"strings"

	"github.com/philipparndt/printcost/pkg/errs"
)

// Parameters are the slicer settings the estimate depends on
type Parameters struct {
	WallCount       int     `toml:"wall_count"`
	WallWidth       float64 `toml:"wall_width"`   // mm
	LayerHeight     float64 `toml:"layer_height"` // mm
	TopBottomLayers int     `toml:"top_bottom_layers"`
	// InfillFraction is the sparse fill density in [0, 1]
	InfillFraction float64 `toml:"infill"`
}

// DefaultParameters returns two 0.4 mm walls, 0.2 mm layers, four solid
// top/bottom layers and 10% infill
func DefaultParameters() Parameters {
	return Parameters{
		WallCount:       2,
		WallWidth:       0.4,
		LayerHeight:     0.2,
		TopBottomLayers: 4,
		InfillFraction:  0.10,
	}
}

// Validate checks the parameters for values the model cannot use
func (p Parameters) Validate() error {
	if math.IsNaN(p.InfillFraction) || p.InfillFraction < 0 || p.InfillFraction > 1 {
		return errs.Invalid("infill", "%v is outside [0, 1]", p.InfillFraction)
	}
	if p.WallCount < 0 {
		return errs.Invalid("wall count", "%d is negative", p.WallCount)
	}
	if p.TopBottomLayers < 0 {
		return errs.Invalid("top/bottom layers", "%d is negative", p.TopBottomLayers)
	}
	if !(p.WallWidth > 0) {
		return errs.Invalid("wall width", "%v mm must be positive", p.WallWidth)
	}
	if !(p.LayerHeight > 0) {
		return errs.Invalid("layer height", "%v mm must be positive", p.LayerHeight)
	}
	return nil
}

// VolumeMode selects how the model volume is measured
type VolumeMode int

const (
	// ModeTetra integrates signed tetrahedra over the surface
	ModeTetra VolumeMode = iota
	// ModeBoundingBox uses the axis-aligned bounding box volume
	ModeBoundingBox
)

func (m VolumeMode) String() string {
	switch m {
	case ModeBoundingBox:
		return "bbox"
	default:
		return "tetra"
	}
}

// ParseVolumeMode parses "tetra" or "bbox"
func ParseVolumeMode(s string) (VolumeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "tetra", "tetrahedron", "mesh":
		return ModeTetra, nil
	case "bbox", "box", "boundingbox":
		return ModeBoundingBox, nil
	}
	return ModeTetra, &errs.ValidationError{Field: "volume mode", Reason: fmt.Sprintf("unknown mode %q", s)}
}
