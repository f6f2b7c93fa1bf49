package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gomesh/internal/meshio"
	"github.com/philipparndt/gomesh/pkg/mesh"
	"github.com/philipparndt/gomesh/pkg/script"
)

var (
	scriptInput   string
	scriptOutput  string
	scriptTimeout time.Duration
	scriptASCII   bool
)

var scriptCmd = &cobra.Command{
	Use:   "script [source.zy]",
	Short: "Build or edit a mesh with a Lisp script",
	Long: `Run a zygomys script against a mesh. Builtins: vertex, face, move-vertex,
extrude, inset, split-edge, merge, delete-faces, duplicate-faces, mirror-x,
smooth, weld, vertex-count and face-count.`,
	Args: cobra.ExactArgs(1),
	Run:  runScript,
}

func init() {
	rootCmd.AddCommand(scriptCmd)

	scriptCmd.Flags().StringVarP(&scriptInput, "input", "i", "", "Mesh to start from (defaults to the default triangle)")
	scriptCmd.Flags().StringVarP(&scriptOutput, "output", "o", "", "Write the result to this file")
	scriptCmd.Flags().DurationVar(&scriptTimeout, "timeout", script.DefaultTimeout, "Evaluation timeout")
	scriptCmd.Flags().BoolVar(&scriptASCII, "ascii", false, "Write ASCII STL")
}

func runScript(cmd *cobra.Command, args []string) {
	source, err := os.ReadFile(args[0])
	if err != nil {
		fail("failed to read script: %v", err)
	}

	m := mesh.NewDefault()
	if scriptInput != "" {
		if m, err = meshio.Load(cmd.Context(), scriptInput, ioOptions(false)); err != nil {
			fail("%v", err)
		}
	}

	runner := &script.Runner{Timeout: scriptTimeout}
	res, err := runner.Run(string(source), m)
	if err != nil {
		fail("%s: %v", args[0], err)
	}
	res.Mesh.Sync()

	if res.Value != "" {
		fmt.Printf("=> %s\n", res.Value)
	}
	fmt.Printf("Mesh: %d vertices, %d faces\n", res.Mesh.VertexCount(), res.Mesh.FaceCount())
	if scriptOutput != "" {
		if err := meshio.Save(scriptOutput, res.Mesh, ioOptions(scriptASCII)); err != nil {
			fail("%v", err)
		}
	}
}
