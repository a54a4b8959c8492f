package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/philipparndt/printcost/pkg/geometry"
)

// WriteBinary encodes a mesh as binary STL. Normals are computed from the
// face winding; degenerate faces get a zero normal.
func WriteBinary(w io.Writer, name string, mesh *geometry.Mesh) error {
	bw := bufio.NewWriter(w)

	header := make([]byte, headerSize)
	copy(header, name)
	if _, err := bw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	count := uint32(0)
	if mesh != nil {
		count = uint32(len(mesh.Faces))
	}
	if err := binary.Write(bw, binary.LittleEndian, count); err != nil {
		return fmt.Errorf("failed to write triangle count: %w", err)
	}

	var record [recordSize]byte
	for i := 0; i < int(count); i++ {
		t := mesh.Triangle(i)
		normal := t.V2.Sub(t.V1).Cross(t.V3.Sub(t.V1)).Unit()
		putVertex(record[0:12], normal)
		putVertex(record[12:24], t.V1)
		putVertex(record[24:36], t.V2)
		putVertex(record[36:48], t.V3)
		record[48], record[49] = 0, 0
		if _, err := bw.Write(record[:]); err != nil {
			return fmt.Errorf("failed to write triangle %d: %w", i, err)
		}
	}

	return bw.Flush()
}

// WriteBinaryFile writes a mesh to a binary STL file
func WriteBinaryFile(filename, name string, mesh *geometry.Mesh) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	if err := WriteBinary(file, name, mesh); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func putVertex(b []byte, v geometry.Vector3) {
	binary.LittleEndian.PutUint32(b[0:4], math.Float32bits(float32(v.X)))
	binary.LittleEndian.PutUint32(b[4:8], math.Float32bits(float32(v.Y)))
	binary.LittleEndian.PutUint32(b[8:12], math.Float32bits(float32(v.Z)))
}
