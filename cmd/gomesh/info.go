package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gomesh/internal/meshio"
	"github.com/philipparndt/gomesh/pkg/analysis"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about a mesh",
	Long:  "Show counts, dimensions, surface area, volume, edge statistics and topology problems.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	filename := args[0]

	m, err := meshio.Load(cmd.Context(), filename, ioOptions(false))
	if err != nil {
		fail("%v", err)
	}
	r := analysis.Analyze(m)

	fmt.Println("Mesh Information")
	fmt.Println("================")
	fmt.Printf("File: %s\n\n", filename)

	fmt.Println("Statistics:")
	fmt.Printf("  Vertices: %d\n", r.VertexCount)
	fmt.Printf("  Triangles: %d\n", r.TriangleCount)
	fmt.Printf("  Edges: %d\n", len(r.Edges))
	fmt.Printf("  Surface Area: %s\n", analysis.FormatMeasurement(r.SurfaceArea, "square units"))
	fmt.Printf("  Live Symmetry X: %t\n\n", m.LiveSymmetryX())

	if r.VertexCount > 0 {
		fmt.Println("Bounding Box:")
		fmt.Printf("  Min: %s\n", analysis.FormatVector(r.BoundingBox.Min))
		fmt.Printf("  Max: %s\n", analysis.FormatVector(r.BoundingBox.Max))
		fmt.Printf("  Center: %s\n\n", analysis.FormatVector(r.BoundingBox.Center()))

		fmt.Println("Dimensions:")
		fmt.Printf("  Width (X): %.6f units\n", r.Dimensions.X)
		fmt.Printf("  Height (Y): %.6f units\n", r.Dimensions.Y)
		fmt.Printf("  Depth (Z): %.6f units\n", r.Dimensions.Z)
		fmt.Printf("  Diagonal: %.6f units\n\n", r.BoundingBox.Diagonal())
	}

	fmt.Println("Topology:")
	fmt.Printf("  Closed: %t\n", r.Closed())
	if r.Closed() {
		fmt.Printf("  Volume: %.6f cubic units\n", r.Volume)
	}
	fmt.Printf("  Boundary edges: %d\n", len(r.BoundaryEdges))
	fmt.Printf("  Non-manifold edges: %d\n", len(r.NonManifoldEdges))
	fmt.Printf("  Isolated vertices: %d\n", len(r.IsolatedVertices))
	fmt.Printf("  Degenerate faces: %d\n\n", len(r.DegenerateFaces))

	if len(r.Edges) > 0 {
		fmt.Println("Edge Lengths:")
		fmt.Printf("  Minimum: %.6f units\n", r.MinEdgeLength)
		fmt.Printf("  Maximum: %.6f units\n", r.MaxEdgeLength)
		fmt.Printf("  Average: %.6f units\n", r.AvgEdgeLength)
	}
}
