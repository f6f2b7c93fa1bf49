package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gomesh/internal/meshio"
)

var convertASCII bool

var convertCmd = &cobra.Command{
	Use:   "convert [input] [output]",
	Short: "Convert between mesh formats",
	Long: `Convert a mesh by file extension. Inputs may be .json, .stl or .scad
(rendered with openscad); outputs may be .json or .stl. Triangle soups are
welded on import.`,
	Args: cobra.ExactArgs(2),
	Run:  runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().BoolVar(&convertASCII, "ascii", false, "Write ASCII STL")
}

func runConvert(cmd *cobra.Command, args []string) {
	m, err := meshio.Load(cmd.Context(), args[0], ioOptions(false))
	if err != nil {
		fail("%v", err)
	}
	m.Sync()
	if err := meshio.Save(args[1], m, ioOptions(convertASCII)); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Wrote %s: %d vertices, %d faces\n", args[1], m.VertexCount(), m.FaceCount())
}
