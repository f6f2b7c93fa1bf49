// Package meshio loads and saves editable meshes by file extension
package meshio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/gomesh/pkg/mesh"
	"github.com/philipparndt/gomesh/pkg/openscad"
	"github.com/philipparndt/gomesh/pkg/stl"
)

// ErrUnsupportedFormat is returned for file extensions without a codec
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Format is a mesh file format
type Format string

const (
	FormatJSON Format = "json"
	FormatSTL  Format = "stl"
	FormatSCAD Format = "scad"
)

// FormatOf returns the format of path from its extension
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".stl":
		return FormatSTL, nil
	case ".scad":
		return FormatSCAD, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// Options configures loading and saving
type Options struct {
	// WeldEpsilon joins the corners of imported triangle soups
	WeldEpsilon float64
	// ASCII writes text STL instead of binary
	ASCII  bool
	Logger *slog.Logger
}

func (o Options) eps() float64 {
	if o.WeldEpsilon <= 0 {
		return mesh.DefaultWeldEpsilon
	}
	return o.WeldEpsilon
}

// Load reads the mesh stored at path. OpenSCAD sources are rendered first.
func Load(ctx context.Context, path string, opts Options) (*mesh.EditableMesh, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatJSON:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		doc, err := mesh.ParseDocument(data)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
		return mesh.FromDocument(doc)
	case FormatSTL:
		model, err := stl.Parse(path)
		if err != nil {
			return nil, err
		}
		return model.ToMesh(opts.eps()), nil
	default:
		r := openscad.NewRenderer(filepath.Dir(path), opts.Logger)
		return r.Import(ctx, path, opts.eps())
	}
}

// Save writes m to path in the format given by its extension
func Save(path string, m *mesh.EditableMesh, opts Options) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	switch format {
	case FormatJSON:
		data, err := m.Encode()
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		return nil
	case FormatSTL:
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return stl.Write(path, stl.FromMesh(m, name), opts.ASCII)
	}
	return fmt.Errorf("%w: cannot write %s", ErrUnsupportedFormat, format)
}

// Dependencies returns the files whose change affects the mesh at path
func Dependencies(path string) ([]string, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	if format != FormatSCAD {
		return []string{path}, nil
	}
	return openscad.NewRenderer(filepath.Dir(path), nil).ResolveDependencies(filepath.Base(path))
}
