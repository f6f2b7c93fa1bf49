package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gomesh/internal/meshio"
	"github.com/philipparndt/gomesh/pkg/mesh"
	"github.com/philipparndt/gomesh/pkg/primitive"
)

var (
	newPrimitive string
	newDims      []float64
	newCells     int
	newASCII     bool
)

var newCmd = &cobra.Command{
	Use:   "new [file]",
	Short: "Create a mesh file",
	Long: `Create a new mesh. Without --primitive the mesh is the default triangle.
Primitives are box (width,height,depth), sphere (radius) and cylinder (height,radius).`,
	Args: cobra.ExactArgs(1),
	Run:  runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().StringVarP(&newPrimitive, "primitive", "p", "", "Primitive to create (box, sphere, cylinder)")
	newCmd.Flags().Float64SliceVarP(&newDims, "dims", "d", nil, "Primitive dimensions")
	newCmd.Flags().IntVar(&newCells, "cells", primitive.DefaultCells, "Tessellation cells along the longest axis")
	newCmd.Flags().BoolVar(&newASCII, "ascii", false, "Write ASCII STL")
}

func runNew(cmd *cobra.Command, args []string) {
	m := mesh.NewDefault()
	if newPrimitive != "" {
		var err error
		m, err = primitive.Build(newPrimitive, newDims, primitive.Options{
			Cells:       newCells,
			WeldEpsilon: cfg.Operations.WeldEpsilon,
		})
		if err != nil {
			fail("%v", err)
		}
	}
	m.Sync()
	if err := meshio.Save(args[0], m, ioOptions(newASCII)); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Created %s: %d vertices, %d faces\n", args[0], m.VertexCount(), m.FaceCount())
}
