package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/philipparndt/printcost/pkg/catalog"
	"github.com/philipparndt/printcost/pkg/engine"
	"github.com/philipparndt/printcost/pkg/fdm"
	"github.com/spf13/cobra"
)

type calcOptions struct {
	material  string
	infill    float64 // percent
	mode      string
	fast      bool
	streamSTL bool
	workers   int
	json      bool
	// paramsFile is a TOML file of slicer settings; flags override it
	paramsFile string
	params     fdm.Parameters
}

var calcOpts calcOptions

var calcCmd = &cobra.Command{
	Use:   "calc [file]",
	Short: "Estimate material volume, weight and cost",
	Long: `Load a 3MF or STL file and estimate, for every printable object, the model volume,
the extruded material volume (walls, top/bottom layers and infill), its weight and its cost.`,
	Args: cobra.ExactArgs(1),
	RunE: runCalc,
}

func init() {
	rootCmd.AddCommand(calcCmd)
	addCalcFlags(calcCmd, &calcOpts)
}

func addCalcFlags(cmd *cobra.Command, o *calcOptions) {
	d := fdm.DefaultParameters()
	cmd.Flags().StringVarP(&o.material, "material", "m", catalog.DefaultMaterial, "Material name from the catalog")
	cmd.Flags().Float64VarP(&o.infill, "infill", "i", d.InfillFraction*100, "Infill in percent")
	cmd.Flags().StringVar(&o.mode, "mode", fdm.ModeTetra.String(), "Volume mode (tetra, bbox)")
	cmd.Flags().BoolVar(&o.fast, "fast", false, "Use the precomputed volume and skip the wall/cap split")
	cmd.Flags().BoolVar(&o.streamSTL, "stream-stl", false, "In fast mode, stream binary STL volume without a vertex table")
	cmd.Flags().IntVarP(&o.workers, "workers", "w", 1, "Objects computed in parallel")
	cmd.Flags().BoolVar(&o.json, "json", false, "Print the estimate as JSON")
	cmd.Flags().StringVar(&o.paramsFile, "params", "", "Slicer settings TOML file")
	cmd.Flags().IntVar(&o.params.WallCount, "walls", d.WallCount, "Wall count")
	cmd.Flags().Float64Var(&o.params.WallWidth, "wall-width", d.WallWidth, "Wall width in mm")
	cmd.Flags().Float64Var(&o.params.LayerHeight, "layer-height", d.LayerHeight, "Layer height in mm")
	cmd.Flags().IntVar(&o.params.TopBottomLayers, "top-bottom", d.TopBottomLayers, "Solid top/bottom layer count")
}

// resolve merges flags with the environment config. Flags that were not
// set on the command line fall back to config values.
func (o *calcOptions) resolve(cmd *cobra.Command) (catalog.Material, fdm.Parameters, engine.Options, error) {
	materialName := o.material
	if !cmd.Flags().Changed("material") && cfg.Material != "" {
		materialName = cfg.Material
	}
	workers := o.workers
	if !cmd.Flags().Changed("workers") {
		workers = cfg.Workers
	}

	cat, err := loadCatalog()
	if err != nil {
		return catalog.Material{}, fdm.Parameters{}, engine.Options{}, err
	}
	material, err := cat.Lookup(materialName)
	if err != nil {
		return catalog.Material{}, fdm.Parameters{}, engine.Options{}, err
	}

	params, err := o.parameters(cmd)
	if err != nil {
		return catalog.Material{}, fdm.Parameters{}, engine.Options{}, err
	}

	mode, err := fdm.ParseVolumeMode(o.mode)
	if err != nil {
		return catalog.Material{}, fdm.Parameters{}, engine.Options{}, err
	}

	return material, params, engine.Options{
		Mode:      mode,
		Fast:      o.fast,
		StreamSTL: o.streamSTL,
		Workers:   workers,
	}, nil
}

// parameters starts from the settings file, if any, and applies the slicer
// flags given on the command line
func (o *calcOptions) parameters(cmd *cobra.Command) (fdm.Parameters, error) {
	params := fdm.DefaultParameters()
	if path := o.settingsFile(cmd); path != "" {
		p, err := fdm.LoadParameters(path)
		if err != nil {
			return fdm.Parameters{}, err
		}
		params = p
	}

	flags := cmd.Flags()
	if flags.Changed("walls") {
		params.WallCount = o.params.WallCount
	}
	if flags.Changed("wall-width") {
		params.WallWidth = o.params.WallWidth
	}
	if flags.Changed("layer-height") {
		params.LayerHeight = o.params.LayerHeight
	}
	if flags.Changed("top-bottom") {
		params.TopBottomLayers = o.params.TopBottomLayers
	}
	if flags.Changed("infill") {
		params.InfillFraction = o.infill / 100
	}
	if err := params.Validate(); err != nil {
		return fdm.Parameters{}, err
	}
	return params, nil
}

func (o *calcOptions) settingsFile(cmd *cobra.Command) string {
	if cmd.Flags().Changed("params") {
		return o.paramsFile
	}
	return cfg.Params
}

func runCalc(cmd *cobra.Command, args []string) error {
	material, params, opts, err := calcOpts.resolve(cmd)
	if err != nil {
		return err
	}
	return calculate(cmd, args[0], material, params, opts, calcOpts.json)
}

func calculate(cmd *cobra.Command, filename string, material catalog.Material, params fdm.Parameters, opts engine.Options, asJSON bool) error {
	loader, err := newLoader()
	if err != nil {
		return err
	}
	session, err := loader.Load(filename)
	if err != nil {
		return err
	}
	if len(session.Warnings) > 0 {
		logger.Warn("some objects were skipped", "count", len(session.Warnings))
	}

	estimates, err := engine.Calculate(cmd.Context(), session, material, params, opts)
	if err != nil {
		return err
	}
	for _, e := range engine.Failed(estimates) {
		logger.Warn("object not estimated", "object", e.Name, "err", e.Err)
	}

	if asJSON {
		return writeReport(cmd.OutOrStdout(), session, material, params, opts, estimates)
	}
	printEstimates(cmd.OutOrStdout(), session, material, params, opts, estimates)
	return nil
}

func printEstimates(w io.Writer, session *engine.Session, material catalog.Material, params fdm.Parameters, opts engine.Options, estimates []engine.Estimate) {
	fmt.Fprintln(w, "Print Estimate")
	fmt.Fprintln(w, "==============")
	fmt.Fprintf(w, "File: %s\n", session.Path)
	fmt.Fprintf(w, "Material: %s (%.2f g/cm³, %.2f per g)\n", material.Name, material.Density, material.PricePerGram)

	method := "walls + caps + infill"
	if opts.Fast {
		method = "fast (volume × infill)"
	}
	fmt.Fprintf(w, "Volume: %s, %s\n", opts.Mode, method)
	fmt.Fprintf(w, "Infill: %.0f%%, walls: %d × %.2f mm, top/bottom: %d × %.2f mm\n\n",
		params.InfillFraction*100, params.WallCount, params.WallWidth, params.TopBottomLayers, params.LayerHeight)

	if len(estimates) == 0 {
		fmt.Fprintln(w, "No printable objects found.")
		return
	}

	failed := engine.Failed(estimates)
	if len(failed) < len(estimates) {
		fmt.Fprintf(w, "%-32s %12s %14s %10s %10s\n", "Object", "Volume cm³", "Material cm³", "Weight g", "Cost")
		fmt.Fprintln(w, strings.Repeat("-", 82))
		for _, e := range estimates {
			if e.Err == nil {
				printRow(w, e)
			}
		}
		if len(estimates)-len(failed) > 1 {
			fmt.Fprintln(w, strings.Repeat("-", 82))
			printRow(w, engine.Total("Total", estimates))
		}
	}

	if len(failed) > 0 {
		fmt.Fprintf(w, "\nNot estimated: %d\n", len(failed))
		for _, e := range failed {
			fmt.Fprintf(w, "  - %s: %v\n", e.Name, e.Err)
		}
	}
}

func printRow(w io.Writer, e engine.Estimate) {
	name := e.Name
	if r := []rune(name); len(r) > 32 {
		name = "…" + string(r[len(r)-31:])
	}
	fmt.Fprintf(w, "%-32s %12.2f %14.2f %10.2f %10.2f\n", name, e.Volume, e.MaterialVolume, e.Weight, e.Cost)
}
