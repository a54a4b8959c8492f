package fdm

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

func TestDecodeParameters(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want Parameters
	}{
		{"empty keeps defaults", "", DefaultParameters()},
		{
			"partial",
			"wall_count = 3\ninfill = 0.25\n",
			Parameters{WallCount: 3, WallWidth: 0.4, LayerHeight: 0.2, TopBottomLayers: 4, InfillFraction: 0.25},
		},
		{
			"all keys",
			"wall_count = 1\nwall_width = 0.6\nlayer_height = 0.3\ntop_bottom_layers = 0\ninfill = 1.0\n",
			Parameters{WallCount: 1, WallWidth: 0.6, LayerHeight: 0.3, TopBottomLayers: 0, InfillFraction: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := DecodeParameters(strings.NewReader(tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestDecodeParametersRejects(t *testing.T) {
	_, err := DecodeParameters(strings.NewReader("walls = 2\n"))
	assert.ErrorContains(t, err, "strict mode")

	_, err = DecodeParameters(strings.NewReader("layer_height = 0\n"))
	var ve *errs.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "layer height", ve.Field)
}

func TestLoadParameters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.toml")
	require.NoError(t, os.WriteFile(path, []byte("top_bottom_layers = 6\n"), 0o644))

	p, err := LoadParameters(path)
	require.NoError(t, err)
	assert.Equal(t, 6, p.TopBottomLayers)
	assert.Equal(t, DefaultParameters().WallCount, p.WallCount)

	_, err = LoadParameters(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
