package meshio

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gomesh/pkg/geometry"
	"github.com/philipparndt/gomesh/pkg/mesh"
)

func quad() *mesh.EditableMesh {
	m := mesh.NewDefault()
	d := m.AddVertex(geometry.NewVector3(1, 0, 1))
	m.AddFace(1, d, 2)
	return m
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"a.json", FormatJSON},
		{"dir/B.STL", FormatSTL},
		{"c.scad", FormatSCAD},
	}
	for _, tt := range tests {
		got, err := FormatOf(tt.path)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
	_, err := FormatOf("model.obj")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.json")
	require.NoError(t, Save(path, quad(), Options{}))

	m, err := Load(context.Background(), path, Options{})
	require.NoError(t, err)
	assert.Equal(t, quad().ToJSON(), m.ToJSON())
}

func TestSTLRoundTripWelds(t *testing.T) {
	for _, ascii := range []bool{false, true} {
		path := filepath.Join(t.TempDir(), "quad.stl")
		require.NoError(t, Save(path, quad(), Options{ASCII: ascii}))

		m, err := Load(context.Background(), path, Options{})
		require.NoError(t, err)
		assert.Equal(t, 4, m.VertexCount())
		assert.Equal(t, 2, m.FaceCount())
	}
}

func TestLoadRejectsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"vertices":[[0,0]],"faces":[]}`), 0644))

	_, err := Load(context.Background(), path, Options{})
	assert.ErrorIs(t, err, mesh.ErrInvalidDocument)
}

func TestSaveRejectsSCAD(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "out.scad"), quad(), Options{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDependencies(t *testing.T) {
	dir := t.TempDir()
	main := filepath.Join(dir, "main.scad")
	require.NoError(t, os.WriteFile(main, []byte("use <lib.scad>\ncube(1);\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib.scad"), []byte("module m() {}\n"), 0644))

	deps, err := Dependencies(main)
	require.NoError(t, err)
	assert.Equal(t, []string{main, filepath.Join(dir, "lib.scad")}, deps)

	deps, err = Dependencies("mesh.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"mesh.json"}, deps)
}
