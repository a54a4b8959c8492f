// Package scene holds the object/component graph of a composite model
// document and resolves it into world-space meshes.
package scene

import (
	"slices"
	"strings"

	"github.com/philipparndt/printcost/pkg/geometry"
)

// Millimeters per document unit. Unknown units fall back to millimeter.
var unitScale = map[string]float64{
	"micron":     0.001,
	"millimeter": 1.0,
	"centimeter": 10.0,
	"meter":      1000.0,
	"inch":       25.4,
	"foot":       304.8,
}

// UnitScale returns the millimeter multiplier for a document unit
func UnitScale(unit string) float64 {
	if s, ok := unitScale[strings.ToLower(strings.TrimSpace(unit))]; ok {
		return s
	}
	return 1.0
}

// Object is either a leaf carrying a mesh or a composite of components
type Object struct {
	ID         string
	Name       string
	Mesh       *geometry.Mesh
	Components []Component
}

// IsLeaf reports whether the object carries its own mesh
func (o *Object) IsLeaf() bool {
	return o.Mesh != nil
}

// Component places a child object relative to its parent
type Component struct {
	ObjectID  string
	Transform geometry.Transform
}

// Item is a top-level build instance
type Item struct {
	ObjectID  string
	Transform geometry.Transform
}

// Document is one parsed model part
type Document struct {
	Name    string
	Unit    string
	Scale   float64
	Objects map[string]*Object
	// Order lists object ids in document order
	Order []string
	Items []Item
	// Skipped holds ids of objects dropped by the reader; references to
	// them resolve to nothing
	Skipped map[string]bool
}

// NewDocument creates an empty document in the given unit
func NewDocument(name, unit string) *Document {
	return &Document{
		Name:    name,
		Unit:    unit,
		Scale:   UnitScale(unit),
		Objects: make(map[string]*Object),
		Skipped: make(map[string]bool),
	}
}

// AddObject registers an object; a later object with the same id replaces
// the earlier one, or an earlier skip, but keeps its position in Order
func (d *Document) AddObject(obj *Object) {
	if _, exists := d.Objects[obj.ID]; !exists {
		d.Order = append(d.Order, obj.ID)
	}
	d.Objects[obj.ID] = obj
	delete(d.Skipped, obj.ID)
}

// Skip records an object id the reader could not decode. The last
// occurrence of an id wins, so a skip drops an earlier object of that id.
func (d *Document) Skip(id string) {
	if _, exists := d.Objects[id]; exists {
		delete(d.Objects, id)
		d.Order = slices.DeleteFunc(d.Order, func(o string) bool { return o == id })
	}
	d.Skipped[id] = true
}

// BuildItems returns the declared build items, or one identity item for
// every object that no component references when none are declared
func (d *Document) BuildItems() []Item {
	if len(d.Items) > 0 {
		return d.Items
	}

	referenced := make(map[string]bool)
	for _, id := range d.Order {
		for _, c := range d.Objects[id].Components {
			referenced[c.ObjectID] = true
		}
	}

	var items []Item
	for _, id := range d.Order {
		if !referenced[id] {
			items = append(items, Item{ObjectID: id, Transform: geometry.Identity()})
		}
	}
	return items
}
