package threemf

import (
	"strings"

	"github.com/philipparndt/printcost/pkg/geometry"
	"github.com/philipparndt/printcost/pkg/scene"
)

// part is one decoded model entry of the archive
type part struct {
	name     string
	doc      *scene.Document
	warnings []error
	layout   Layout
	// external holds qualified ids ("<part>#<id>") this part references
	external []string
}

// ref returns the id under which a reference is stored in this part's
// document. References into other parts are qualified with the part name.
func (p *part) ref(refPath, id string) string {
	target := strings.TrimPrefix(strings.TrimSpace(refPath), "/")
	if target == "" || target == p.name {
		return id
	}
	q := target + "#" + id
	p.external = append(p.external, q)
	return q
}

func splitRef(q string) (target, id string, ok bool) {
	i := strings.LastIndex(q, "#")
	if i < 0 {
		return "", q, false
	}
	return q[:i], q[i+1:], true
}

// link copies objects referenced across parts into the referencing
// document and returns the documents that should be instantiated
func link(parts []*part) []*scene.Document {
	byName := make(map[string]*part, len(parts))
	referenced := make(map[string]bool)
	for _, p := range parts {
		byName[p.name] = p
	}
	for _, p := range parts {
		for _, q := range p.external {
			if target, _, ok := splitRef(q); ok {
				referenced[target] = true
			}
		}
	}

	var docs []*scene.Document
	for _, p := range parts {
		if referenced[p.name] && len(p.doc.Items) == 0 {
			continue
		}
		for _, q := range p.external {
			importObject(p.doc, byName, q)
		}
		docs = append(docs, p.doc)
	}
	return docs
}

// importObject copies the object named by q, and everything it references,
// into doc. Unknown targets are left unresolved for the flattener to report.
func importObject(doc *scene.Document, byName map[string]*part, q string) {
	if _, ok := doc.Objects[q]; ok || doc.Skipped[q] {
		return
	}
	target, id, ok := splitRef(q)
	if !ok {
		return
	}
	src := byName[target]
	if src == nil {
		return
	}
	if src.doc.Skipped[id] {
		doc.Skip(q)
		return
	}
	obj := src.doc.Objects[id]
	if obj == nil {
		return
	}

	// Express the source geometry in the units of doc
	ratio := src.doc.Scale / doc.Scale
	toDoc := geometry.Scale(ratio, ratio, ratio)
	fromDoc := geometry.Scale(1/ratio, 1/ratio, 1/ratio)

	cp := &scene.Object{ID: q, Name: obj.Name}
	if obj.IsLeaf() {
		cp.Mesh = obj.Mesh.Scaled(ratio)
	}
	var children []string
	for _, c := range obj.Components {
		child := c.ObjectID
		if _, _, qualified := splitRef(child); !qualified {
			child = target + "#" + child
		}
		transform := c.Transform
		if ratio != 1 {
			transform = toDoc.Multiply(transform).Multiply(fromDoc)
		}
		cp.Components = append(cp.Components, scene.Component{ObjectID: child, Transform: transform})
		children = append(children, child)
	}

	doc.AddObject(cp)
	for _, child := range children {
		importObject(doc, byName, child)
	}
}
