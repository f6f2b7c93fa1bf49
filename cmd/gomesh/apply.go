package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gomesh/internal/config"
	"github.com/philipparndt/gomesh/internal/meshio"
	"github.com/philipparndt/gomesh/internal/metrics"
	"github.com/philipparndt/gomesh/pkg/mesh"
)

var (
	applyFaces    []int
	applyVertices []int
	applyHeight   float64
	applyInset    float64
	applyIters    int
	applyOutput   string
	applyASCII    bool
)

// operationArgs are the operands of a single operation
type operationArgs struct {
	Faces    []int
	Vertices []int
	Height   float64
	Inset    float64
	Iters    int
}

type operation func(m *mesh.EditableMesh, a operationArgs, ops config.OperationsConfig) (string, error)

var errOperand = errors.New("missing operand")

var operations = map[string]operation{
	"extrude": func(m *mesh.EditableMesh, a operationArgs, _ config.OperationsConfig) (string, error) {
		if len(a.Faces) != 1 {
			return "", fmt.Errorf("%w: extrude needs exactly one face", errOperand)
		}
		top, ok := m.ExtrudeFace(a.Faces[0], a.Height)
		if !ok {
			return "", fmt.Errorf("cannot extrude face %d", a.Faces[0])
		}
		return fmt.Sprintf("extruded face %d, new top face %d", a.Faces[0], top), nil
	},
	"inset": func(m *mesh.EditableMesh, a operationArgs, _ config.OperationsConfig) (string, error) {
		if len(a.Faces) != 1 {
			return "", fmt.Errorf("%w: inset needs exactly one face", errOperand)
		}
		inner, ok := m.InsetFace(a.Faces[0], a.Inset, a.Height)
		if !ok {
			return "", fmt.Errorf("cannot inset face %d", a.Faces[0])
		}
		return fmt.Sprintf("inset face %d, new inner face %d", a.Faces[0], inner), nil
	},
	"split-edge": func(m *mesh.EditableMesh, a operationArgs, _ config.OperationsConfig) (string, error) {
		if len(a.Vertices) != 2 {
			return "", fmt.Errorf("%w: split-edge needs the two vertices of an edge", errOperand)
		}
		mid, ok := m.SplitEdge(mesh.NewEdge(a.Vertices[0], a.Vertices[1]))
		if !ok {
			return "", fmt.Errorf("no edge between %d and %d", a.Vertices[0], a.Vertices[1])
		}
		return fmt.Sprintf("split edge, new vertex %d", mid), nil
	},
	"merge": func(m *mesh.EditableMesh, a operationArgs, _ config.OperationsConfig) (string, error) {
		if len(a.Vertices) < 2 {
			return "", fmt.Errorf("%w: merge needs at least two vertices", errOperand)
		}
		v, ok := m.MergeVertices(a.Vertices)
		if !ok {
			return "", errors.New("cannot merge the given vertices")
		}
		return fmt.Sprintf("merged into vertex %d", v), nil
	},
	"delete-faces": func(m *mesh.EditableMesh, a operationArgs, _ config.OperationsConfig) (string, error) {
		if len(a.Faces) == 0 {
			return "", fmt.Errorf("%w: delete-faces needs faces", errOperand)
		}
		return fmt.Sprintf("deleted %d faces", m.DeleteFaces(a.Faces)), nil
	},
	"delete-vertices": func(m *mesh.EditableMesh, a operationArgs, _ config.OperationsConfig) (string, error) {
		if len(a.Vertices) == 0 {
			return "", fmt.Errorf("%w: delete-vertices needs vertices", errOperand)
		}
		n, kept := m.DeleteVertices(a.Vertices)
		if len(kept) > 0 {
			return fmt.Sprintf("deleted %d vertices, kept %v (in use)", n, kept), nil
		}
		return fmt.Sprintf("deleted %d vertices", n), nil
	},
	"duplicate-faces": func(m *mesh.EditableMesh, a operationArgs, _ config.OperationsConfig) (string, error) {
		if len(a.Faces) == 0 {
			return "", fmt.Errorf("%w: duplicate-faces needs faces", errOperand)
		}
		return fmt.Sprintf("new faces %v", m.DuplicateFaces(a.Faces)), nil
	},
	"mirror": func(m *mesh.EditableMesh, _ operationArgs, ops config.OperationsConfig) (string, error) {
		m.MirrorX(ops.WeldEpsilon)
		return fmt.Sprintf("mirrored across X, %d faces", m.FaceCount()), nil
	},
	"smooth": func(m *mesh.EditableMesh, a operationArgs, ops config.OperationsConfig) (string, error) {
		m.Smooth(a.Iters, ops.SmoothLambda)
		return fmt.Sprintf("smoothed %d iterations", a.Iters), nil
	},
	"weld": func(m *mesh.EditableMesh, _ operationArgs, ops config.OperationsConfig) (string, error) {
		return fmt.Sprintf("welded %d vertices", m.Weld(ops.WeldEpsilon)), nil
	},
}

func operationNames() []string {
	names := make([]string, 0, len(operations))
	for name := range operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// applyOperation runs the named operation on m and returns a summary
func applyOperation(m *mesh.EditableMesh, name string, a operationArgs, ops config.OperationsConfig) (string, error) {
	op, ok := operations[name]
	if !ok {
		return "", fmt.Errorf("unknown operation %q, expected one of %s", name, strings.Join(operationNames(), ", "))
	}
	summary, err := op(m, a, ops)
	metrics.RecordOperation(name, err == nil)
	return summary, err
}

var applyCmd = &cobra.Command{
	Use:   "apply [file] [operation]",
	Short: "Apply an editing operation to a mesh file",
	Long: fmt.Sprintf(`Apply an editing operation and write the result back, or to --output.
Operations: %s.`, strings.Join(operationNames(), ", ")),
	Args: cobra.ExactArgs(2),
	Run:  runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)

	applyCmd.Flags().IntSliceVarP(&applyFaces, "faces", "f", nil, "Face indices")
	applyCmd.Flags().IntSliceVarP(&applyVertices, "vertices", "V", nil, "Vertex indices")
	applyCmd.Flags().Float64Var(&applyHeight, "height", -1, "Extrude or inset height (defaults from config)")
	applyCmd.Flags().Float64Var(&applyInset, "inset", -1, "Inset amount (defaults from config)")
	applyCmd.Flags().IntVar(&applyIters, "iterations", -1, "Smoothing iterations (defaults from config)")
	applyCmd.Flags().StringVarP(&applyOutput, "output", "o", "", "Output file (defaults to the input)")
	applyCmd.Flags().BoolVar(&applyASCII, "ascii", false, "Write ASCII STL")
}

func runApply(cmd *cobra.Command, args []string) {
	input, name := args[0], args[1]

	m, err := meshio.Load(cmd.Context(), input, ioOptions(false))
	if err != nil {
		fail("%v", err)
	}

	a := operationArgs{
		Faces:    applyFaces,
		Vertices: applyVertices,
		Height:   applyHeight,
		Inset:    applyInset,
		Iters:    applyIters,
	}
	if a.Height < 0 {
		a.Height = cfg.Operations.ExtrudeHeight
		if name == "inset" {
			a.Height = cfg.Operations.InsetHeight
		}
	}
	if a.Inset < 0 {
		a.Inset = cfg.Operations.InsetAmount
	}
	if a.Iters < 0 {
		a.Iters = cfg.Operations.SmoothIterations
	}

	summary, err := applyOperation(m, name, a, cfg.Operations)
	if err != nil {
		fail("%v", err)
	}
	m.Sync()

	output := applyOutput
	if output == "" {
		output = input
	}
	if err := meshio.Save(output, m, ioOptions(applyASCII)); err != nil {
		fail("%v", err)
	}
	logger.Info("operation applied", "operation", name, "output", output)
	fmt.Println(summary)
}
