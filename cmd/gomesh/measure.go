package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gomesh/internal/meshio"
	"github.com/philipparndt/gomesh/pkg/analysis"
	"github.com/philipparndt/gomesh/pkg/geometry"
)

var (
	point1X, point1Y, point1Z float64
	point2X, point2Y, point2Z float64
)

var measureCmd = &cobra.Command{
	Use:   "measure [file]",
	Short: "Measure distance between two points",
	Long: `Measure the straight-line distance between two 3D points and between the
mesh vertices nearest to them.`,
	Args: cobra.ExactArgs(1),
	Run:  runMeasure,
}

func init() {
	rootCmd.AddCommand(measureCmd)

	measureCmd.Flags().Float64Var(&point1X, "x1", 0.0, "X coordinate of first point")
	measureCmd.Flags().Float64Var(&point1Y, "y1", 0.0, "Y coordinate of first point")
	measureCmd.Flags().Float64Var(&point1Z, "z1", 0.0, "Z coordinate of first point")
	measureCmd.Flags().Float64Var(&point2X, "x2", 0.0, "X coordinate of second point")
	measureCmd.Flags().Float64Var(&point2Y, "y2", 0.0, "Y coordinate of second point")
	measureCmd.Flags().Float64Var(&point2Z, "z2", 0.0, "Z coordinate of second point")

	measureCmd.MarkFlagsRequiredTogether("x1", "y1", "z1", "x2", "y2", "z2")
}

func runMeasure(cmd *cobra.Command, args []string) {
	m, err := meshio.Load(cmd.Context(), args[0], ioOptions(false))
	if err != nil {
		fail("%v", err)
	}

	p1 := geometry.NewVector3(point1X, point1Y, point1Z)
	p2 := geometry.NewVector3(point2X, point2Y, point2Z)

	fmt.Println("Point-to-Point Measurement")
	fmt.Println("==========================")
	fmt.Printf("\nPoint 1: %s\n", analysis.FormatVector(p1))
	fmt.Printf("Point 2: %s\n", analysis.FormatVector(p2))
	fmt.Printf("\nDirect distance: %s\n", analysis.FormatMeasurement(p1.Distance(p2), ""))

	i1, d1 := analysis.NearestVertex(m, p1)
	i2, d2 := analysis.NearestVertex(m, p2)
	if i1 < 0 || i2 < 0 {
		return
	}
	v1, v2 := m.Vertex(i1), m.Vertex(i2)
	fmt.Printf("\nNearest vertex to point 1: %d %s (distance: %.6f)\n", i1, analysis.FormatVector(v1), d1)
	fmt.Printf("Nearest vertex to point 2: %d %s (distance: %.6f)\n", i2, analysis.FormatVector(v2), d2)
	fmt.Printf("Distance between nearest vertices: %s\n", analysis.FormatMeasurement(v1.Distance(v2), ""))
}
