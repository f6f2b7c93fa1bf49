// Package openscad imports OpenSCAD sources by rendering them with the
// openscad binary
package openscad

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/philipparndt/gomesh/pkg/mesh"
	"github.com/philipparndt/gomesh/pkg/stl"
)

// ErrNotInstalled is returned when the openscad binary cannot be found
var ErrNotInstalled = errors.New("openscad not found in PATH")

// dependencyPattern matches use <file> and include <file> statements
var dependencyPattern = regexp.MustCompile(`^\s*(?:use|include)\s*<([^>]+)>`)

// Renderer runs openscad relative to a working directory
type Renderer struct {
	workDir string
	binary  string
	logger  *slog.Logger
}

// NewRenderer creates a renderer. A nil logger uses slog.Default().
func NewRenderer(workDir string, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{workDir: workDir, binary: "openscad", logger: logger}
}

func (r *Renderer) abs(file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(r.workDir, file)
}

// RenderToSTL renders scadFile into outputFile
func (r *Renderer) RenderToSTL(ctx context.Context, scadFile, outputFile string) error {
	bin, err := exec.LookPath(r.binary)
	if err != nil {
		return fmt.Errorf("%w: install it from https://openscad.org/", ErrNotInstalled)
	}

	cmd := exec.CommandContext(ctx, bin, "-o", outputFile, r.abs(scadFile))
	cmd.Dir = r.workDir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	r.logger.Debug("rendering", "source", scadFile, "output", outputFile)
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return fmt.Errorf("failed to render %s: %w", scadFile, err)
		}
		return fmt.Errorf("failed to render %s: %w: %s", scadFile, err, msg)
	}
	return nil
}

// Import renders scadFile and converts the result to an editable mesh,
// welding corners closer than eps
func (r *Renderer) Import(ctx context.Context, scadFile string, eps float64) (*mesh.EditableMesh, error) {
	dir, err := os.MkdirTemp("", "gomesh-scad-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	out := filepath.Join(dir, "render.stl")
	if err := r.RenderToSTL(ctx, scadFile, out); err != nil {
		return nil, err
	}
	model, err := stl.Parse(out)
	if err != nil {
		return nil, err
	}
	m := model.ToMesh(eps)
	r.logger.Info("imported OpenSCAD source", "source", scadFile, "vertices", m.VertexCount(), "faces", m.FaceCount())
	return m, nil
}

// ResolveDependencies returns scadFile and every file it uses or includes,
// transitively, as absolute paths in discovery order
func (r *Renderer) ResolveDependencies(scadFile string) ([]string, error) {
	visited := make(map[string]bool)
	var deps []string
	queue := []string{r.abs(scadFile)}
	for len(queue) > 0 {
		file := queue[0]
		queue = queue[1:]
		if visited[file] {
			continue
		}
		visited[file] = true
		deps = append(deps, file)

		direct, err := r.parseDependencies(file)
		if err != nil {
			return nil, err
		}
		queue = append(queue, direct...)
	}
	return deps, nil
}

func (r *Renderer) parseDependencies(scadFile string) ([]string, error) {
	file, err := os.Open(scadFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", scadFile, err)
	}
	defer file.Close()

	var deps []string
	dir := filepath.Dir(scadFile)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		if m := dependencyPattern.FindStringSubmatch(line); m != nil {
			deps = append(deps, r.resolveDepPath(m[1], dir))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", scadFile, err)
	}
	return deps, nil
}

// resolveDepPath looks next to the including file first, then in the
// working directory
func (r *Renderer) resolveDepPath(dep, currentDir string) string {
	local := filepath.Clean(filepath.Join(currentDir, dep))
	if strings.HasPrefix(dep, "./") || strings.HasPrefix(dep, "../") {
		return local
	}
	if _, err := os.Stat(local); err == nil {
		return local
	}
	return filepath.Clean(filepath.Join(r.workDir, dep))
}
