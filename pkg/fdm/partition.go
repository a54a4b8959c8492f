package fdm

import (
	"math"

	"github.com/philipparndt/printcost/pkg/catalog"
)

// ClampRatio bounds shell plus caps as a fraction of the model volume
const ClampRatio = 0.6

// Breakdown holds material volumes in cm³
type Breakdown struct {
	Shell  float64
	Caps   float64
	Infill float64
	Total  float64
	// Clamped reports whether shell and caps were scaled down to the limit
	Clamped bool
}

// Partition splits a model of volume v (cm³), surface area a (cm²) and
// footprint f (cm²) into shell, caps and infill.
//
//	shell  = a · walls · width / 10
//	caps   = f · layers · height / 10
//	infill = max(0, v − shell − caps) · infill fraction
//
// Shell and caps together never exceed ClampRatio · v. A zero shell and cap
// sum, or v ≤ 0, skips the clamp.
func Partition(v, a, f float64, p Parameters) Breakdown {
	shell := a * float64(p.WallCount) * p.WallWidth / 10
	caps := f * float64(p.TopBottomLayers) * p.LayerHeight / 10

	var clamped bool
	limit := ClampRatio * v
	if sum := shell + caps; v > 0 && sum > 0 && sum > limit {
		k := limit / sum
		shell *= k
		caps *= k
		clamped = true
	}

	infill := math.Max(0, v-shell-caps) * p.InfillFraction
	return Breakdown{
		Shell:   shell,
		Caps:    caps,
		Infill:  infill,
		Total:   shell + caps + infill,
		Clamped: clamped,
	}
}

// Sparse is the fast path: the whole volume is treated as infill
func Sparse(v float64, p Parameters) Breakdown {
	infill := math.Max(0, v) * p.InfillFraction
	return Breakdown{Infill: infill, Total: infill}
}

// Estimate converts a material volume in cm³ to grams and price
func Estimate(materialVolume float64, m catalog.Material) (weight, cost float64) {
	weight = materialVolume * m.Density
	cost = weight * m.PricePerGram
	return weight, cost
}
