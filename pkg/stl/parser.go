package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/philipparndt/printcost/pkg/errs"
	"github.com/philipparndt/printcost/pkg/geometry"
)

const (
	headerSize = 80
	recordSize = 50
	// preallocation cap when the triangle count cannot be checked against
	// the stream length
	maxPrealloc = 1 << 20
)

// Parse reads an STL file and returns a Model.
// A file whose length matches 84 + 50*count is binary. Otherwise a file
// starting with "solid" whose leading bytes are plain text is read as
// ASCII, anything else as binary.
func Parse(filename string) (*Model, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, &errs.FormatError{Path: filename, Err: fmt.Errorf("failed to open file: %w", err)}
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, &errs.FormatError{Path: filename, Err: fmt.Errorf("failed to stat file: %w", err)}
	}

	head := make([]byte, headerSize+4)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, &errs.FormatError{Path: filename, Err: fmt.Errorf("failed to read file header: %w", err)}
	}
	head = head[:n]

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, &errs.FormatError{Path: filename, Err: fmt.Errorf("failed to reset file pointer: %w", err)}
	}

	var model *Model
	if isASCII(head, info.Size()) {
		model, err = DecodeASCII(file)
	} else {
		model, err = DecodeBinary(file)
	}
	if err != nil {
		return nil, &errs.FormatError{Path: filename, Err: err}
	}
	return model, nil
}

func isASCII(head []byte, size int64) bool {
	if len(head) == headerSize+4 {
		count := binary.LittleEndian.Uint32(head[headerSize:])
		if int64(headerSize+4)+int64(count)*recordSize == size {
			return false
		}
	}
	if !bytes.HasPrefix(bytes.TrimLeft(head, " \t\r\n"), []byte("solid")) {
		return false
	}
	// binary headers are NUL padded and the count field rarely avoids zero bytes
	for _, b := range head {
		if (b < 0x20 && b != '\t' && b != '\n' && b != '\r') || b == 0x7f {
			return false
		}
	}
	return true
}

// DecodeASCII parses an ASCII STL stream. A stream that ends before
// "endsolid" is reported as truncated.
func DecodeASCII(reader io.Reader) (*Model, error) {
	scanner := bufio.NewScanner(reader)
	model := NewModel("", 0)
	model.ASCII = true

	var vertices []geometry.Vector3
	line := 0
	closed := false

	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				model.Name = strings.Join(fields[1:], " ")
			}

		case "vertex":
			if len(fields) != 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates, got %d", line, len(fields)-1)
			}
			var xyz [3]float64
			for i := range xyz {
				f, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: invalid coordinate %q: %w", line, fields[i+1], err)
				}
				xyz[i] = f
			}
			vertices = append(vertices, geometry.NewVector3(xyz[0], xyz[1], xyz[2]))

		case "endfacet":
			if len(vertices) != 3 {
				return nil, fmt.Errorf("line %d: facet has %d vertices, expected 3", line, len(vertices))
			}
			model.AddTriangle(geometry.NewTriangle(vertices[0], vertices[1], vertices[2]))
			vertices = vertices[:0]

		case "endsolid":
			closed = true
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}
	if !closed {
		return nil, fmt.Errorf("%w: missing endsolid after line %d", errs.ErrTruncated, line)
	}

	return model, nil
}

// DecodeBinary parses a binary STL stream into a model with a
// deduplicated vertex table
func DecodeBinary(reader io.Reader) (*Model, error) {
	var model *Model
	err := readBinary(reader, func(name string, count uint32) {
		model = NewModel(name, int(min(count, maxPrealloc)))
	}, func(t geometry.Triangle) {
		model.AddTriangle(t)
	})
	if err != nil {
		return nil, err
	}
	return model, nil
}

// StreamVolume computes the enclosed volume in cm³ of a binary STL stream
// without building a vertex table
func StreamVolume(reader io.Reader) (float64, error) {
	var sum float64
	err := readBinary(reader, func(string, uint32) {}, func(t geometry.Triangle) {
		sum += t.SignedVolume6()
	})
	if err != nil {
		return 0, err
	}
	return math.Abs(sum) / 6.0 / geometry.MM3PerCM3, nil
}

// StreamVolumeFile opens a binary STL file and computes its volume in cm³
func StreamVolumeFile(filename string) (float64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, &errs.FormatError{Path: filename, Err: fmt.Errorf("failed to open file: %w", err)}
	}
	defer file.Close()

	volume, err := StreamVolume(bufio.NewReader(file))
	if err != nil {
		return 0, &errs.FormatError{Path: filename, Err: err}
	}
	return volume, nil
}

// readBinary walks the fixed-layout records, ignoring normals and
// attribute bytes
func readBinary(reader io.Reader, start func(name string, count uint32), emit func(geometry.Triangle)) error {
	header := make([]byte, headerSize)
	if _, err := io.ReadFull(reader, header); err != nil {
		return fmt.Errorf("failed to read header: %w", truncated(err))
	}

	var triangleCount uint32
	if err := binary.Read(reader, binary.LittleEndian, &triangleCount); err != nil {
		return fmt.Errorf("failed to read triangle count: %w", truncated(err))
	}

	start(headerName(header), triangleCount)

	var record [recordSize]byte
	for i := uint32(0); i < triangleCount; i++ {
		if _, err := io.ReadFull(reader, record[:]); err != nil {
			return fmt.Errorf("failed to read triangle %d of %d: %w", i, triangleCount, truncated(err))
		}
		// record[0:12] is the stored normal, record[48:50] the attribute count
		emit(geometry.NewTriangle(
			vertexAt(record[12:24]),
			vertexAt(record[24:36]),
			vertexAt(record[36:48]),
		))
	}

	return nil
}

func vertexAt(b []byte) geometry.Vector3 {
	return geometry.NewVector3(
		float64(math.Float32frombits(binary.LittleEndian.Uint32(b[0:4]))),
		float64(math.Float32frombits(binary.LittleEndian.Uint32(b[4:8]))),
		float64(math.Float32frombits(binary.LittleEndian.Uint32(b[8:12]))),
	)
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %w", errs.ErrTruncated, io.ErrUnexpectedEOF)
	}
	return err
}

// headerName extracts a printable name from the binary header, if present
func headerName(header []byte) string {
	name := strings.TrimSpace(string(bytes.TrimRight(header, "\x00")))
	for _, r := range name {
		if !unicode.IsPrint(r) {
			return ""
		}
	}
	return name
}
