package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var materialsCmd = &cobra.Command{
	Use:   "materials",
	Short: "List the materials of the catalog",
	Args:  cobra.NoArgs,
	RunE:  runMaterials,
}

func init() {
	rootCmd.AddCommand(materialsCmd)
}

func runMaterials(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%-24s %16s %14s\n", "Material", "Density g/cm³", "Price per g")
	fmt.Fprintln(w, strings.Repeat("-", 56))
	for _, m := range cat.Materials() {
		marker := " "
		if strings.EqualFold(m.Name, cfg.Material) {
			marker = "*"
		}
		fmt.Fprintf(w, "%-23s%s %16.2f %14.2f\n", m.Name, marker, m.Density, m.PricePerGram)
	}
	return nil
}
