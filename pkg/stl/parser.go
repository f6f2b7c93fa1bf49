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

	"github.com/philipparndt/gomesh/pkg/geometry"
)

const (
	headerSize   = 80
	facetSize    = 50
	binaryPrefix = headerSize + 4
)

// ErrMalformed is returned for STL data that cannot be decoded
var ErrMalformed = errors.New("malformed STL")

// Parse reads an STL file. ASCII and binary files are detected
// automatically.
func Parse(filename string) (*Model, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return Decode(data)
}

// Read decodes STL data from r
func Read(r io.Reader) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read STL: %w", err)
	}
	return Decode(data)
}

// Decode decodes STL data. Binary files may start with "solid" too, so the
// size implied by the binary facet count wins over the ASCII keyword.
func Decode(data []byte) (*Model, error) {
	if isBinary(data) {
		return parseBinary(data)
	}
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("solid")) {
		return parseASCII(bytes.NewReader(data))
	}
	if len(data) < binaryPrefix {
		return nil, fmt.Errorf("%w: %d bytes is too short", ErrMalformed, len(data))
	}
	return parseBinary(data)
}

func isBinary(data []byte) bool {
	if len(data) < binaryPrefix {
		return false
	}
	count := binary.LittleEndian.Uint32(data[headerSize:binaryPrefix])
	return uint64(len(data)) == binaryPrefix+uint64(count)*facetSize
}

func parseVector(fields []string) (geometry.Vector3, error) {
	var c [3]float64
	for i := range c {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return geometry.Vector3{}, err
		}
		c[i] = v
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}

// parseASCII parses the text format. Facet normals are ignored; they are
// recomputed from the winding.
func parseASCII(reader io.Reader) (*Model, error) {
	scanner := bufio.NewScanner(reader)
	model := NewModel("")

	var corners []geometry.Vector3
	line := 0
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
		case "outer":
			corners = corners[:0]
		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: line %d: vertex needs three coordinates", ErrMalformed, line)
			}
			v, err := parseVector(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, line, err)
			}
			corners = append(corners, v)
		case "endfacet":
			if len(corners) != 3 {
				return nil, fmt.Errorf("%w: line %d: facet has %d vertices", ErrMalformed, line, len(corners))
			}
			model.AddTriangle(geometry.NewTriangle(corners[0], corners[1], corners[2]))
			corners = corners[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}
	return model, nil
}

// parseBinary parses the binary format: an 80 byte header, a facet count and
// 50 bytes per facet
func parseBinary(data []byte) (*Model, error) {
	model := NewModel(strings.TrimSpace(string(bytes.TrimRight(data[:headerSize], "\x00"))))

	count := binary.LittleEndian.Uint32(data[headerSize:binaryPrefix])
	body := data[binaryPrefix:]
	if uint64(len(body)) < uint64(count)*facetSize {
		return nil, fmt.Errorf("%w: %d facets declared, %d bytes present", ErrMalformed, count, len(body))
	}

	model.Triangles = make([]geometry.Triangle, 0, count)
	for i := uint32(0); i < count; i++ {
		facet := body[i*facetSize : (i+1)*facetSize]
		// the first 12 bytes are the stored normal, skipped
		model.AddTriangle(geometry.NewTriangle(
			readVector(facet[12:24]),
			readVector(facet[24:36]),
			readVector(facet[36:48]),
		))
	}
	return model, nil
}

func readVector(b []byte) geometry.Vector3 {
	f := func(off int) float64 {
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b[off:])))
	}
	return geometry.NewVector3(f(0), f(4), f(8))
}
