package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/philipparndt/printcost/internal/config"
	"github.com/philipparndt/printcost/internal/logging"
	"github.com/philipparndt/printcost/pkg/catalog"
	"github.com/philipparndt/printcost/pkg/engine"
	"github.com/philipparndt/printcost/pkg/threemf"
	"github.com/philipparndt/printcost/version"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	logger *log.Logger

	logLevel        string
	catalogPath     string
	transformLayout string
)

var rootCmd = &cobra.Command{
	Use:   "printcost",
	Short: "Estimate volume, weight and cost of FDM prints",
	Long: `printcost reads 3MF and STL files, resolves every printable object into a
world-space mesh and estimates its volume, material use, weight and cost.`,
	Version:           version.GetFullVersion(),
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Material catalog TOML file (default: built-in catalog)")
	rootCmd.PersistentFlags().StringVar(&transformLayout, "transform-layout", "", "3MF transform attribute layout (rows, columns)")
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if catalogPath != "" {
		c.Catalog = catalogPath
	}
	if transformLayout != "" {
		c.TransformLayout = transformLayout
	}

	cfg = c
	logger = logging.NewWithWriter(cmd.ErrOrStderr(), cfg.LogLevel)
	return nil
}

func loadCatalog() (*catalog.Catalog, error) {
	if cfg.Catalog == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(cfg.Catalog)
}

func newLoader() (*engine.Loader, error) {
	layout, err := threemf.ParseLayout(cfg.TransformLayout)
	if err != nil {
		return nil, err
	}
	loader := engine.NewLoader(logger)
	loader.Layout = layout
	return loader, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
