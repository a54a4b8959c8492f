// Package catalog holds named material profiles used for weight and cost.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/philipparndt/printcost/pkg/errs"
)

//go:embed default.toml
var defaultCatalog []byte

// DefaultMaterial is selected when the caller names none
const DefaultMaterial = "Enduse PETG"

// Material is a printable material
type Material struct {
	Name         string  `toml:"name"`
	Density      float64 `toml:"density"`        // g/cm³
	PricePerGram float64 `toml:"price_per_gram"` // currency per gram
}

// Catalog is an ordered set of materials looked up by name
type Catalog struct {
	materials []Material
	index     map[string]int
}

type file struct {
	Material []Material `toml:"material"`
}

// Default returns the built-in catalog
func Default() *Catalog {
	c, err := Decode(bytes.NewReader(defaultCatalog))
	if err != nil {
		panic(fmt.Sprintf("built-in material catalog: %v", err))
	}
	return c
}

// Load reads a catalog from a TOML file
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}
	return c, nil
}

// Decode parses a TOML catalog of [[material]] tables
func Decode(r io.Reader) (*Catalog, error) {
	var doc file
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&doc); err != nil {
		return nil, err
	}
	return New(doc.Material...)
}

// New builds a catalog, rejecting invalid or duplicate entries
func New(materials ...Material) (*Catalog, error) {
	c := &Catalog{index: make(map[string]int, len(materials))}
	for _, m := range materials {
		if err := m.Validate(); err != nil {
			return nil, err
		}
		key := normalize(m.Name)
		if _, dup := c.index[key]; dup {
			return nil, errs.Invalid("material", "duplicate name %q", m.Name)
		}
		c.index[key] = len(c.materials)
		c.materials = append(c.materials, m)
	}
	return c, nil
}

// Validate checks a single material profile
func (m Material) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return errs.Invalid("material", "empty name")
	}
	if !(m.Density > 0) {
		return errs.Invalid("material", "%s: density %v must be positive", m.Name, m.Density)
	}
	if !(m.PricePerGram >= 0) {
		return errs.Invalid("material", "%s: price %v must not be negative", m.Name, m.PricePerGram)
	}
	return nil
}

// Lookup finds a material by name, ignoring case and surrounding space
func (c *Catalog) Lookup(name string) (Material, error) {
	if i, ok := c.index[normalize(name)]; ok {
		return c.materials[i], nil
	}
	return Material{}, errs.Invalid("material", "unknown material %q", name)
}

// Materials returns the materials in catalog order
func (c *Catalog) Materials() []Material {
	out := make([]Material, len(c.materials))
	copy(out, c.materials)
	return out
}

// Len returns the number of materials
func (c *Catalog) Len() int {
	return len(c.materials)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
