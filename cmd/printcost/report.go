package main

import (
	"encoding/json"
	"io"
	"time"

	"github.com/philipparndt/printcost/pkg/catalog"
	"github.com/philipparndt/printcost/pkg/engine"
	"github.com/philipparndt/printcost/pkg/fdm"
)

// ReportData is the JSON form of a calc run
type ReportData struct {
	Session    string         `json:"session"`
	File       string         `json:"file"`
	LoadedAt   time.Time      `json:"loadedAt"`
	Material   MaterialData   `json:"material"`
	Parameters ParameterData  `json:"parameters"`
	Mode       string         `json:"mode"`
	Fast       bool           `json:"fast"`
	Objects    []EstimateData `json:"objects"`
	Total      EstimateData   `json:"total"`
	Warnings   []string       `json:"warnings,omitempty"`
}

// MaterialData is a saved material profile
type MaterialData struct {
	Name         string  `json:"name"`
	Density      float64 `json:"density"`
	PricePerGram float64 `json:"pricePerGram"`
}

// ParameterData holds the slicer settings of the run
type ParameterData struct {
	WallCount       int     `json:"wallCount"`
	WallWidth       float64 `json:"wallWidth"`
	LayerHeight     float64 `json:"layerHeight"`
	TopBottomLayers int     `json:"topBottomLayers"`
	Infill          float64 `json:"infill"`
}

// EstimateData is one object row
type EstimateData struct {
	Name           string  `json:"name"`
	Volume         float64 `json:"volume"`
	MaterialVolume float64 `json:"materialVolume"`
	Shell          float64 `json:"shell"`
	Caps           float64 `json:"caps"`
	Infill         float64 `json:"infill"`
	Clamped        bool    `json:"clamped,omitempty"`
	Weight         float64 `json:"weight"`
	Cost           float64 `json:"cost"`
	Error          string  `json:"error,omitempty"`
}

func toEstimateData(e engine.Estimate) EstimateData {
	if e.Err != nil {
		return EstimateData{Name: e.Name, Error: e.Err.Error()}
	}
	return EstimateData{
		Name:           e.Name,
		Volume:         e.Volume,
		MaterialVolume: e.MaterialVolume,
		Shell:          e.Breakdown.Shell,
		Caps:           e.Breakdown.Caps,
		Infill:         e.Breakdown.Infill,
		Clamped:        e.Breakdown.Clamped,
		Weight:         e.Weight,
		Cost:           e.Cost,
	}
}

func writeReport(w io.Writer, session *engine.Session, material catalog.Material, params fdm.Parameters, opts engine.Options, estimates []engine.Estimate) error {
	data := ReportData{
		Session:  session.ID.String(),
		File:     session.Path,
		LoadedAt: session.LoadedAt,
		Material: MaterialData{
			Name:         material.Name,
			Density:      material.Density,
			PricePerGram: material.PricePerGram,
		},
		Parameters: ParameterData{
			WallCount:       params.WallCount,
			WallWidth:       params.WallWidth,
			LayerHeight:     params.LayerHeight,
			TopBottomLayers: params.TopBottomLayers,
			Infill:          params.InfillFraction,
		},
		Mode:    opts.Mode.String(),
		Fast:    opts.Fast,
		Objects: make([]EstimateData, 0, len(estimates)),
		Total:   toEstimateData(engine.Total("Total", estimates)),
	}
	for _, e := range estimates {
		data.Objects = append(data.Objects, toEstimateData(e))
	}
	for _, warning := range session.Warnings {
		data.Warnings = append(data.Warnings, warning.Error())
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
