package fdm

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// LoadParameters reads slicer settings from a TOML file. Keys missing from
// the file keep their DefaultParameters value.
func LoadParameters(path string) (Parameters, error) {
	f, err := os.Open(path)
	if err != nil {
		return Parameters{}, fmt.Errorf("failed to open parameters: %w", err)
	}
	defer f.Close()

	p, err := DecodeParameters(f)
	if err != nil {
		return Parameters{}, fmt.Errorf("failed to load parameters %s: %w", path, err)
	}
	return p, nil
}

// DecodeParameters parses top-level TOML keys over the defaults and
// validates the result
func DecodeParameters(r io.Reader) (Parameters, error) {
	p := DefaultParameters()
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&p); err != nil {
		return Parameters{}, err
	}
	if err := p.Validate(); err != nil {
		return Parameters{}, err
	}
	return p, nil
}
