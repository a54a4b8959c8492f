// Package engine loads model files into caller-owned sessions and computes
// print estimates for the objects they contain.
package engine

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/philipparndt/printcost/pkg/errs"
	"github.com/philipparndt/printcost/pkg/geometry"
	"github.com/philipparndt/printcost/pkg/stl"
	"github.com/philipparndt/printcost/pkg/threemf"
)

// Format identifies the container a model came from
type Format int

const (
	Format3MF Format = iota
	FormatBinarySTL
	FormatASCIISTL
)

func (f Format) String() string {
	switch f {
	case Format3MF:
		return "3mf"
	case FormatBinarySTL:
		return "stl"
	case FormatASCIISTL:
		return "stl (ascii)"
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// Source describes where an object was read from
type Source struct {
	Format Format
	Path   string
	// Part is the 3MF model part, empty for STL
	Part string
}

// Object is one printable object in world space, in millimeters
type Object struct {
	Name string
	Mesh *geometry.Mesh
	// FastVolume is the determinant-scaled volume in cm³
	FastVolume float64
	Source     Source
}

// Session is the result of one load. Each load returns a new session.
type Session struct {
	ID       uuid.UUID
	Path     string
	LoadedAt time.Time
	Objects  []Object
	// Warnings lists objects the reader skipped
	Warnings []error
}

// Loader reads model files
type Loader struct {
	// Layout selects how 3MF transform attributes are read
	Layout threemf.Layout
	logger *log.Logger
}

// NewLoader creates a loader. A nil logger uses the default logger.
func NewLoader(logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{logger: logger}
}

// Load reads path with a default loader
func Load(path string) (*Session, error) {
	return NewLoader(nil).Load(path)
}

// Supported reports whether path has an extension Load understands
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".3mf", ".stl":
		return true
	}
	return false
}

// Load reads a .3mf or .stl file into a new session
func (l *Loader) Load(path string) (*Session, error) {
	session := &Session{
		ID:       uuid.New(),
		Path:     path,
		LoadedAt: time.Now(),
	}

	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".3mf":
		err = l.load3MF(session)
	case ".stl":
		err = l.loadSTL(session)
	default:
		return nil, &errs.FormatError{Path: path, Err: fmt.Errorf("%w: %q", errs.ErrUnsupportedFormat, ext)}
	}
	if err != nil {
		return nil, err
	}

	l.logger.Debug("loaded model", "path", path, "objects", len(session.Objects), "warnings", len(session.Warnings))
	return session, nil
}

func (l *Loader) loadSTL(session *Session) error {
	model, err := stl.Parse(session.Path)
	if err != nil {
		return err
	}

	format := FormatBinarySTL
	if model.ASCII {
		format = FormatASCIISTL
	}
	if model.Mesh.IsEmpty() {
		l.logger.Warn("STL file contains no triangles", "path", session.Path)
		return nil
	}

	session.Objects = append(session.Objects, Object{
		Name:       filepath.Base(session.Path),
		Mesh:       model.Mesh,
		FastVolume: model.Volume(),
		Source:     Source{Format: format, Path: session.Path},
	})
	return nil
}

func (l *Loader) load3MF(session *Session) error {
	reader := threemf.NewReader(l.logger)
	reader.Layout = l.Layout

	result, err := reader.Read(session.Path)
	if err != nil {
		return err
	}
	session.Warnings = result.Warnings

	for _, doc := range result.Documents {
		instances, err := doc.Instances()
		if err != nil {
			return fmt.Errorf("failed to resolve %s in %s: %w", doc.Name, session.Path, err)
		}
		for _, inst := range instances {
			session.Objects = append(session.Objects, Object{
				Name:       inst.Name,
				Mesh:       inst.Mesh,
				FastVolume: inst.FastVolume,
				Source:     Source{Format: Format3MF, Path: session.Path, Part: doc.Name},
			})
		}
	}
	return nil
}
