package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philipparndt/printcost/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	assert.Equal(t, 29, c.Len())

	petg, err := c.Lookup(DefaultMaterial)
	require.NoError(t, err)
	assert.Equal(t, 1.27, petg.Density)
	assert.Equal(t, 2.33, petg.PricePerGram)

	steel, err := c.Lookup("  metalcast-316l ")
	require.NoError(t, err)
	assert.Equal(t, 8.0, steel.Density)
	assert.Equal(t, 16.0, steel.PricePerGram)

	pc, err := c.Lookup("Enduse PC")
	require.NoError(t, err)
	assert.Zero(t, pc.PricePerGram)

	materials := c.Materials()
	assert.Equal(t, "Sealant TPU93", materials[0].Name)
	assert.Equal(t, "Other material", materials[len(materials)-1].Name)
}

func TestLookupUnknown(t *testing.T) {
	_, err := Default().Lookup("Unobtainium")
	var ve *errs.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, err.Error(), "Unobtainium")
}

func TestMaterialsIsACopy(t *testing.T) {
	c := Default()
	m := c.Materials()
	m[0].Density = 99

	first, err := c.Lookup(m[0].Name)
	require.NoError(t, err)
	assert.NotEqual(t, 99.0, first.Density)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLen int
		wantErr string
	}{
		{
			name: "valid",
			input: `
[[material]]
name = "PLA"
density = 1.24
price_per_gram = 0.03

[[material]]
name = "Nylon"
density = 1.15
price_per_gram = 0
`,
			wantLen: 2,
		},
		{
			name:    "empty",
			input:   ``,
			wantLen: 0,
		},
		{
			name:    "non-positive density",
			input:   "[[material]]\nname = \"X\"\ndensity = 0\nprice_per_gram = 1\n",
			wantErr: "density",
		},
		{
			name:    "negative price",
			input:   "[[material]]\nname = \"X\"\ndensity = 1\nprice_per_gram = -1\n",
			wantErr: "price",
		},
		{
			name:    "duplicate",
			input:   "[[material]]\nname = \"X\"\ndensity = 1\n[[material]]\nname = \"x\"\ndensity = 2\n",
			wantErr: "duplicate",
		},
		{
			name:    "missing name",
			input:   "[[material]]\ndensity = 1\n",
			wantErr: "empty name",
		},
		{
			name:    "unknown field",
			input:   "[[material]]\nname = \"X\"\ndensity = 1\ncolour = \"red\"\n",
			wantErr: "strict mode",
		},
		{
			name:    "syntax",
			input:   "[[material]\nname = ",
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Decode(strings.NewReader(tt.input))
			if tt.wantErr != "" || tt.name == "syntax" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLen, c.Len())
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "materials.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[material]]\nname = \"PETG\"\ndensity = 1.27\nprice_per_gram = 0.05\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	m, err := c.Lookup("petg")
	require.NoError(t, err)
	assert.Equal(t, 0.05, m.PricePerGram)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
