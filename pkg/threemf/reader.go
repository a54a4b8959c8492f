// Package threemf reads 3MF packages into scene documents.
package threemf

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/philipparndt/printcost/pkg/errs"
	"github.com/philipparndt/printcost/pkg/geometry"
	"github.com/philipparndt/printcost/pkg/scene"
)

const (
	modelPrefix = "3D/"
	modelSuffix = ".model"
)

// Result is the outcome of reading one 3MF package
type Result struct {
	Path string
	// Documents holds one document per instantiable model part in archive
	// order. Parts only reached through another part's components are
	// merged into the referencing document.
	Documents []*scene.Document
	// Warnings lists objects that were skipped
	Warnings []error
}

// Reader reads 3MF files. The zero value reads the row layout and logs to
// the default logger.
type Reader struct {
	// Layout controls how transform attributes are read
	Layout Layout
	logger *log.Logger
}

// NewReader creates a reader that reports skipped objects to logger.
// A nil logger uses the charmbracelet default logger.
func NewReader(logger *log.Logger) *Reader {
	if logger == nil {
		logger = log.Default()
	}
	return &Reader{logger: logger}
}

func (r *Reader) log() *log.Logger {
	if r.logger == nil {
		return log.Default()
	}
	return r.logger
}

// Read opens and parses a 3MF file
func (r *Reader) Read(filename string) (*Result, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, &errs.FormatError{Path: filename, Err: fmt.Errorf("error opening ZIP: %w", err)}
	}
	defer zr.Close()

	return r.ReadArchive(&zr.Reader, filename)
}

// ReadArchive parses every model part of an opened archive
func (r *Reader) ReadArchive(zr *zip.Reader, filename string) (*Result, error) {
	result := &Result{Path: filename}
	var parts []*part

	for _, f := range zr.File {
		if !strings.HasPrefix(f.Name, modelPrefix) || !strings.HasSuffix(f.Name, modelSuffix) {
			continue
		}

		p, err := r.readPart(f)
		if err != nil {
			return nil, &errs.FormatError{Path: filename, Err: err}
		}
		result.Warnings = append(result.Warnings, p.warnings...)
		parts = append(parts, p)
	}

	if len(parts) == 0 {
		return nil, &errs.FormatError{Path: filename, Err: errors.New("no 3D model parts found in archive")}
	}

	result.Documents = link(parts)
	return result, nil
}

func (r *Reader) readPart(f *zip.File) (*part, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("error opening model file %s: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("error reading model file %s: %w", f.Name, err)
	}

	return r.decodePart(f.Name, data)
}

// DecodePart parses a single model part. Objects that fail to decode are
// skipped and returned as warnings; malformed XML fails the whole part.
func (r *Reader) DecodePart(name string, rd io.Reader) (*scene.Document, []error, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, nil, fmt.Errorf("error reading model file %s: %w", name, err)
	}
	p, err := r.decodePart(name, data)
	if err != nil {
		return nil, nil, err
	}
	return p.doc, p.warnings, nil
}

func (r *Reader) decodePart(name string, data []byte) (*part, error) {
	var model xmlModel
	if err := xml.NewDecoder(bytes.NewReader(data)).Decode(&model); err != nil {
		return nil, fmt.Errorf("error parsing XML in %s: %w", name, err)
	}
	if model.XMLName.Space != "" && model.XMLName.Space != Namespace {
		r.log().Debug("model part uses a non-core namespace", "part", name, "namespace", model.XMLName.Space)
	}

	p := &part{
		name:   name,
		doc:    scene.NewDocument(path.Base(name), model.Unit),
		layout: r.Layout,
	}

	for _, xo := range model.Resources.Objects {
		obj, err := p.decodeObject(xo)
		if err != nil {
			warning := &errs.ObjectDecodeError{Part: name, ObjectID: xo.ID, Err: err}
			r.log().Warn("skipping object", "part", name, "object", xo.ID, "err", err)
			p.warnings = append(p.warnings, warning)
			p.doc.Skip(xo.ID)
			continue
		}
		p.doc.AddObject(obj)
	}

	for _, xi := range model.Build.Items {
		transform, _ := r.Layout.Parse(xi.Transform)
		p.doc.Items = append(p.doc.Items, scene.Item{
			ObjectID:  p.ref(xi.Path, xi.ObjectID),
			Transform: transform,
		})
	}

	return p, nil
}

func (p *part) decodeObject(xo xmlObject) (*scene.Object, error) {
	if xo.ID == "" {
		return nil, errors.New("missing id attribute")
	}
	obj := &scene.Object{ID: xo.ID, Name: xo.Name}

	if xo.Mesh != nil {
		mesh, err := decodeMesh(xo.Mesh)
		if err != nil {
			return nil, err
		}
		obj.Mesh = mesh
		return obj, nil
	}

	if xo.Components != nil {
		for _, xc := range xo.Components.Component {
			transform, _ := p.layout.Parse(xc.Transform)
			obj.Components = append(obj.Components, scene.Component{
				ObjectID:  p.ref(xc.Path, xc.ObjectID),
				Transform: transform,
			})
		}
	}
	return obj, nil
}

func decodeMesh(xm *xmlMesh) (*geometry.Mesh, error) {
	mesh := geometry.NewMesh(len(xm.Vertices), len(xm.Triangles))

	for i, xv := range xm.Vertices {
		x, err := parseFloat(xv.X)
		if err != nil {
			return nil, fmt.Errorf("vertex %d: x: %w", i, err)
		}
		y, err := parseFloat(xv.Y)
		if err != nil {
			return nil, fmt.Errorf("vertex %d: y: %w", i, err)
		}
		z, err := parseFloat(xv.Z)
		if err != nil {
			return nil, fmt.Errorf("vertex %d: z: %w", i, err)
		}
		mesh.Vertices = append(mesh.Vertices, geometry.NewVector3(x, y, z))
	}

	for i, xt := range xm.Triangles {
		var idx [3]int
		for j, s := range []string{xt.V1, xt.V2, xt.V3} {
			v, err := parseIndex(s)
			if err != nil {
				return nil, fmt.Errorf("triangle %d: v%d: %w", i, j+1, err)
			}
			idx[j] = v
		}
		mesh.Faces = append(mesh.Faces, geometry.Face{V1: idx[0], V2: idx[1], V3: idx[2]})
	}

	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	return mesh, nil
}

// parseFloat treats a missing attribute as 0
func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseIndex(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
