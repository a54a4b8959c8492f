package threemf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/philipparndt/printcost/pkg/geometry"
)

// Layout selects how the twelve values of a transform attribute map onto
// the affine matrix
type Layout int

const (
	// LayoutRows reads the values as three matrix rows "a b c d e f g h i j k l"
	// giving [a b c d; e f g h; i j k l]. Translation is d, h, l.
	LayoutRows Layout = iota
	// LayoutColumns reads the 3MF core order
	// "m00 m01 m02 m10 m11 m12 m20 m21 m22 m30 m31 m32" for row vectors,
	// so the last three values are the translation.
	LayoutColumns
)

func (l Layout) String() string {
	switch l {
	case LayoutColumns:
		return "columns"
	default:
		return "rows"
	}
}

// ParseLayout parses "rows" or "columns"
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rows":
		return LayoutRows, nil
	case "columns", "3mf":
		return LayoutColumns, nil
	}
	return LayoutRows, fmt.Errorf("unknown transform layout %q", s)
}

// ParseTransform parses a transform attribute in the row layout
func ParseTransform(s string) (geometry.Transform, bool) {
	return LayoutRows.Parse(s)
}

// Parse parses a transform attribute. Whitespace and commas both separate
// values. An empty or malformed value yields the identity and ok == false.
func (l Layout) Parse(s string) (t geometry.Transform, ok bool) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) != 12 {
		return geometry.Identity(), false
	}

	var m [12]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geometry.Identity(), false
		}
		m[i] = v
	}

	if l == LayoutColumns {
		return geometry.FromRows(
			[4]float64{m[0], m[3], m[6], m[9]},
			[4]float64{m[1], m[4], m[7], m[10]},
			[4]float64{m[2], m[5], m[8], m[11]},
		), true
	}
	return geometry.FromRows(
		[4]float64{m[0], m[1], m[2], m[3]},
		[4]float64{m[4], m[5], m[6], m[7]},
		[4]float64{m[8], m[9], m[10], m[11]},
	), true
}

// Format renders t as a transform attribute
func (l Layout) Format(t geometry.Transform) string {
	var vals []float64
	if l == LayoutColumns {
		vals = []float64{
			t[0][0], t[1][0], t[2][0],
			t[0][1], t[1][1], t[2][1],
			t[0][2], t[1][2], t[2][2],
			t[0][3], t[1][3], t[2][3],
		}
	} else {
		vals = append(vals, t[0][:]...)
		vals = append(vals, t[1][:]...)
		vals = append(vals, t[2][:]...)
	}
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}
