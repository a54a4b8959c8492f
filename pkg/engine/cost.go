package engine

import (
	"context"
	"fmt"

	"github.com/philipparndt/printcost/pkg/catalog"
	"github.com/philipparndt/printcost/pkg/errs"
	"github.com/philipparndt/printcost/pkg/fdm"
	"github.com/philipparndt/printcost/pkg/stl"
	"golang.org/x/sync/errgroup"
)

// Options selects how volumes are measured
type Options struct {
	Mode fdm.VolumeMode
	// Fast uses the precomputed volume and skips the shell/cap partition:
	// material = volume · infill
	Fast bool
	// StreamSTL re-reads binary STL sources without a vertex table in fast mode
	StreamSTL bool
	// Workers bounds parallel computation in Calculate; <= 1 runs sequentially
	Workers int
}

// Estimate is the computed result for one object. Err is set when the
// object could not be estimated; the other fields are then zero.
type Estimate struct {
	Name     string
	Material string
	// Volume is the model volume in cm³
	Volume float64
	// MaterialVolume is the extruded volume in cm³
	MaterialVolume float64
	Weight         float64 // g
	Cost           float64
	Breakdown      fdm.Breakdown
	Fast           bool
	Err            error
}

// ComputeCost estimates weight and cost of a single object
func ComputeCost(obj Object, m catalog.Material, p fdm.Parameters, opts Options) (Estimate, error) {
	if err := p.Validate(); err != nil {
		return Estimate{}, err
	}
	if err := m.Validate(); err != nil {
		return Estimate{}, err
	}

	v, err := volume(obj, opts)
	if err != nil {
		return Estimate{}, err
	}
	if !(v > 0) {
		return Estimate{}, errs.Invalid("volume", "%s has volume %v cm³", obj.Name, v)
	}

	var b fdm.Breakdown
	if opts.Fast {
		b = fdm.Sparse(v, p)
	} else {
		b = fdm.Partition(v, obj.Mesh.SurfaceArea(), obj.Mesh.FootprintArea(), p)
	}
	weight, cost := fdm.Estimate(b.Total, m)

	return Estimate{
		Name:           obj.Name,
		Material:       m.Name,
		Volume:         v,
		MaterialVolume: b.Total,
		Weight:         weight,
		Cost:           cost,
		Breakdown:      b,
		Fast:           opts.Fast,
	}, nil
}

func volume(obj Object, opts Options) (float64, error) {
	if opts.Mode == fdm.ModeBoundingBox {
		return obj.Mesh.BoundingBoxVolume(), nil
	}
	if !opts.Fast {
		return obj.Mesh.Volume(), nil
	}
	if opts.StreamSTL && obj.Source.Format == FormatBinarySTL {
		v, err := stl.StreamVolumeFile(obj.Source.Path)
		if err != nil {
			return 0, fmt.Errorf("failed to stream %s: %w", obj.Source.Path, err)
		}
		return v, nil
	}
	return obj.FastVolume, nil
}

// Calculate computes an estimate for every object of the session. Results
// keep the session's object order. An object that cannot be estimated gets
// its error in Estimate.Err and does not affect the others; invalid
// parameters or material and cancellation fail the whole run.
func Calculate(ctx context.Context, s *Session, m catalog.Material, p fdm.Parameters, opts Options) ([]Estimate, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	results := make([]Estimate, len(s.Objects))
	compute := func(i int, obj Object) {
		est, err := ComputeCost(obj, m, p, opts)
		if err != nil {
			est = Estimate{Name: obj.Name, Material: m.Name, Fast: opts.Fast, Err: err}
		}
		results[i] = est
	}

	if opts.Workers <= 1 {
		for i, obj := range s.Objects {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			compute(i, obj)
		}
		return results, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, obj := range s.Objects {
		i, obj := i, obj
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			compute(i, obj)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Failed returns the estimates that carry an error
func Failed(estimates []Estimate) []Estimate {
	var failed []Estimate
	for _, e := range estimates {
		if e.Err != nil {
			failed = append(failed, e)
		}
	}
	return failed
}

// Total sums volumes, weights and costs of the successful estimates
func Total(name string, estimates []Estimate) Estimate {
	total := Estimate{Name: name}
	for _, e := range estimates {
		if e.Err != nil {
			continue
		}
		total.Material = e.Material
		total.Fast = e.Fast
		total.Volume += e.Volume
		total.MaterialVolume += e.MaterialVolume
		total.Weight += e.Weight
		total.Cost += e.Cost
		total.Breakdown.Shell += e.Breakdown.Shell
		total.Breakdown.Caps += e.Breakdown.Caps
		total.Breakdown.Infill += e.Breakdown.Infill
		total.Breakdown.Total += e.Breakdown.Total
		total.Breakdown.Clamped = total.Breakdown.Clamped || e.Breakdown.Clamped
	}
	return total
}
