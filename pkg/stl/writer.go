package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/philipparndt/gomesh/pkg/geometry"
)

// WriteASCII writes the model in the text format
func WriteASCII(w io.Writer, m *Model) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "solid %s\n", m.Name)
	for _, t := range m.Triangles {
		n := t.Normal()
		fmt.Fprintf(bw, "  facet normal %g %g %g\n", n.X, n.Y, n.Z)
		fmt.Fprintln(bw, "    outer loop")
		for _, v := range []geometry.Vector3{t.A, t.B, t.C} {
			fmt.Fprintf(bw, "      vertex %g %g %g\n", v.X, v.Y, v.Z)
		}
		fmt.Fprintln(bw, "    endloop")
		fmt.Fprintln(bw, "  endfacet")
	}
	fmt.Fprintf(bw, "endsolid %s\n", m.Name)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write ASCII STL: %w", err)
	}
	return nil
}

// WriteBinary writes the model in the binary format
func WriteBinary(w io.Writer, m *Model) error {
	buf := make([]byte, binaryPrefix, binaryPrefix+len(m.Triangles)*facetSize)
	copy(buf[:headerSize], m.Name)
	binary.LittleEndian.PutUint32(buf[headerSize:], uint32(len(m.Triangles)))

	facet := make([]byte, facetSize)
	for _, t := range m.Triangles {
		for i, v := range []geometry.Vector3{t.Normal(), t.A, t.B, t.C} {
			putVector(facet[i*12:], v)
		}
		// attribute byte count stays zero
		buf = append(buf, facet...)
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("failed to write binary STL: %w", err)
	}
	return nil
}

func putVector(b []byte, v geometry.Vector3) {
	binary.LittleEndian.PutUint32(b[0:], math.Float32bits(float32(v.X)))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(float32(v.Y)))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(float32(v.Z)))
}

// Write stores the model at filename in the requested format
func Write(filename string, m *Model, ascii bool) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if ascii {
		err = WriteASCII(f, m)
	} else {
		err = WriteBinary(f, m)
	}
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close file: %w", cerr)
	}
	return err
}
