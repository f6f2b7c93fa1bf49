package stl

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gomesh/pkg/geometry"
	"github.com/philipparndt/gomesh/pkg/mesh"
)

const asciiQuad = `solid quad
  facet normal 0 1 0
    outer loop
      vertex 0 0 0
      vertex 1 0 1
      vertex 1 0 0
    endloop
  endfacet
  facet normal 0 1 0
    outer loop
      vertex 0 0 0
      vertex 0 0 1
      vertex 1 0 1
    endloop
  endfacet
endsolid quad
`

func quadModel() *Model {
	m := NewModel("quad")
	m.AddTriangle(geometry.NewTriangle(
		geometry.NewVector3(0, 0, 0), geometry.NewVector3(1, 0, 1), geometry.NewVector3(1, 0, 0)))
	m.AddTriangle(geometry.NewTriangle(
		geometry.NewVector3(0, 0, 0), geometry.NewVector3(0, 0, 1), geometry.NewVector3(1, 0, 1)))
	return m
}

func TestDecodeASCII(t *testing.T) {
	model, err := Decode([]byte(asciiQuad))
	require.NoError(t, err)

	assert.Equal(t, "quad", model.Name)
	assert.Equal(t, 2, model.TriangleCount())
	assert.Equal(t, quadModel().Triangles, model.Triangles)
	assert.InDelta(t, 1.0, model.SurfaceArea(), 1e-9)
}

func TestDecodeASCIIErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad number", "solid x\nfacet normal 0 0 0\nouter loop\nvertex a 0 0\n"},
		{"short vertex", "solid x\nfacet normal 0 0 0\nouter loop\nvertex 0 0\n"},
		{"two corners", "solid x\nfacet normal 0 0 0\nouter loop\nvertex 0 0 0\nvertex 1 0 0\nendloop\nendfacet\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, quadModel()))
	assert.Equal(t, 84+2*50, buf.Len())

	model, err := Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "quad", model.Name)
	assert.Equal(t, quadModel().Triangles, model.Triangles)
}

func TestBinaryStartingWithSolid(t *testing.T) {
	m := quadModel()
	m.Name = "solid but binary"
	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, m))

	model, err := Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 2, model.TriangleCount())
}

func TestDecodeTruncatedBinary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, quadModel()))

	_, err := Decode(buf.Bytes()[:100])
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Decode([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestASCIIRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteASCII(&buf, quadModel()))
	assert.True(t, strings.HasPrefix(buf.String(), "solid quad\n"))
	assert.Contains(t, buf.String(), "facet normal 0 1 0")

	model, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, quadModel().Triangles, model.Triangles)
}

func TestWriteAndParseFile(t *testing.T) {
	dir := t.TempDir()
	for _, ascii := range []bool{true, false} {
		path := filepath.Join(dir, "quad.stl")
		require.NoError(t, Write(path, quadModel(), ascii))

		model, err := Parse(path)
		require.NoError(t, err)
		assert.Equal(t, 2, model.TriangleCount())
		require.NoError(t, os.Remove(path))
	}

	_, err := Parse(filepath.Join(dir, "missing.stl"))
	assert.Error(t, err)
}

func TestToMeshWelds(t *testing.T) {
	m := quadModel().ToMesh(mesh.DefaultWeldEpsilon)

	assert.Equal(t, 4, m.VertexCount())
	assert.Equal(t, 2, m.FaceCount())
	assert.Len(t, m.Edges(), 5)
}

func TestFromMesh(t *testing.T) {
	model := FromMesh(mesh.NewDefault(), "seed")

	require.Equal(t, 1, model.TriangleCount())
	assert.Equal(t, "seed", model.Name)
	assert.Equal(t, geometry.NewVector3(1, 0, 0), model.Triangles[0].B)

	bbox := model.BoundingBox()
	assert.Equal(t, geometry.NewVector3(1, 0, 1), bbox.Max)
}
