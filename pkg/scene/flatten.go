package scene

import (
	"fmt"
	"math"
	"slices"

	"github.com/philipparndt/printcost/pkg/errs"
	"github.com/philipparndt/printcost/pkg/geometry"
)

// Instance is a build item resolved to a world-space mesh in millimeters
type Instance struct {
	Index    int
	ObjectID string
	Name     string
	Mesh     *geometry.Mesh
	// FastVolume is the determinant-scaled volume in cm³. It equals
	// Mesh.Volume() for closed leaves and needs no transformed vertices.
	FastVolume float64
}

// Flattener resolves objects of one document, caching leaf volumes
type Flattener struct {
	doc        *Document
	leafVolume map[string]float64
}

// NewFlattener creates a flattener for doc
func NewFlattener(doc *Document) *Flattener {
	return &Flattener{doc: doc, leafVolume: make(map[string]float64)}
}

// Flatten resolves id under transform into a single mesh and its fast
// volume in cubic model units. Revisiting an object on the current path
// fails with a GraphError.
func (f *Flattener) Flatten(id string, transform geometry.Transform) (*geometry.Mesh, float64, error) {
	return f.flatten(id, transform, nil)
}

func (f *Flattener) flatten(id string, transform geometry.Transform, path []string) (*geometry.Mesh, float64, error) {
	if slices.Contains(path, id) {
		return nil, 0, &errs.GraphError{Path: append(slices.Clone(path), id), Err: errs.ErrCyclicGraph}
	}
	path = append(path, id)

	obj, ok := f.doc.Objects[id]
	if !ok {
		return nil, 0, &errs.GraphError{Path: slices.Clone(path), Err: errs.ErrUnresolvedReference}
	}

	if obj.IsLeaf() {
		if obj.Mesh.IsEmpty() {
			return geometry.NewMesh(0, 0), 0, nil
		}
		fast := f.baseVolume(obj) * math.Abs(transform.Det3())
		return obj.Mesh.Transformed(transform), fast, nil
	}

	out := geometry.NewMesh(0, 0)
	fast := 0.0
	for _, c := range obj.Components {
		if f.doc.Skipped[c.ObjectID] {
			continue
		}
		mesh, vol, err := f.flatten(c.ObjectID, transform.Multiply(c.Transform), path)
		if err != nil {
			return nil, 0, err
		}
		out.Append(mesh)
		fast += vol
	}
	return out, fast, nil
}

func (f *Flattener) baseVolume(obj *Object) float64 {
	if v, ok := f.leafVolume[obj.ID]; ok {
		return v
	}
	v := math.Abs(obj.Mesh.SignedVolumeMM3())
	f.leafVolume[obj.ID] = v
	return v
}

// Check walks the whole graph, including objects no build item reaches,
// and reports the first cycle or unresolved reference
func (d *Document) Check() error {
	const (
		unvisited = iota
		active
		done
	)
	state := make(map[string]int, len(d.Objects))

	var visit func(id string, path []string) error
	visit = func(id string, path []string) error {
		path = append(path, id)
		obj, ok := d.Objects[id]
		if !ok {
			return &errs.GraphError{Path: slices.Clone(path), Err: errs.ErrUnresolvedReference}
		}
		switch state[id] {
		case active:
			return &errs.GraphError{Path: slices.Clone(path), Err: errs.ErrCyclicGraph}
		case done:
			return nil
		}
		state[id] = active
		for _, c := range obj.Components {
			if d.Skipped[c.ObjectID] {
				continue
			}
			if err := visit(c.ObjectID, path); err != nil {
				return err
			}
		}
		state[id] = done
		return nil
	}

	for _, id := range d.Order {
		if err := visit(id, nil); err != nil {
			return err
		}
	}
	for _, item := range d.Items {
		if d.Skipped[item.ObjectID] {
			continue
		}
		if err := visit(item.ObjectID, nil); err != nil {
			return err
		}
	}
	return nil
}

// Instances resolves every build item to a world-space mesh in millimeters.
// Items that resolve to nothing are omitted.
func (d *Document) Instances() ([]Instance, error) {
	if err := d.Check(); err != nil {
		return nil, err
	}

	flattener := NewFlattener(d)
	unit := geometry.Scale(d.Scale, d.Scale, d.Scale)
	implicit := len(d.Items) == 0

	var out []Instance
	for i, item := range d.BuildItems() {
		if d.Skipped[item.ObjectID] {
			continue
		}
		mesh, fast, err := flattener.Flatten(item.ObjectID, unit.Multiply(item.Transform))
		if err != nil {
			return nil, err
		}
		if mesh.IsEmpty() && fast == 0 {
			continue
		}
		out = append(out, Instance{
			Index:      i + 1,
			ObjectID:   item.ObjectID,
			Name:       d.instanceName(i+1, item.ObjectID, implicit),
			Mesh:       mesh,
			FastVolume: fast / geometry.MM3PerCM3,
		})
	}
	return out, nil
}

func (d *Document) instanceName(index int, id string, implicit bool) string {
	if obj := d.Objects[id]; obj != nil && obj.Name != "" {
		return fmt.Sprintf("%s:%s", d.Name, obj.Name)
	}
	if implicit {
		return fmt.Sprintf("%s:object_%s", d.Name, id)
	}
	return fmt.Sprintf("%s:item_%d", d.Name, index)
}
