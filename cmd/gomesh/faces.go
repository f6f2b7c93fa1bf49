package main

import (
	"fmt"
	"math"
	"sort"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gomesh/internal/meshio"
	"github.com/philipparndt/gomesh/pkg/analysis"
)

var (
	facesCount    int
	facesLargest  bool
	facesSmallest bool
)

type faceInfo struct {
	Index     int
	Indices   string
	Area      float64
	Perimeter float64
	Normal    string
}

var facesCmd = &cobra.Command{
	Use:   "faces [file]",
	Short: "Analyze the faces of a mesh",
	Long:  "Display faces with their vertex indices, area, perimeter and normal.",
	Args:  cobra.ExactArgs(1),
	Run:   runFaces,
}

func init() {
	rootCmd.AddCommand(facesCmd)

	facesCmd.Flags().IntVarP(&facesCount, "count", "n", 10, "Number of faces to display")
	facesCmd.Flags().BoolVarP(&facesLargest, "largest", "l", false, "Show largest faces by area")
	facesCmd.Flags().BoolVarP(&facesSmallest, "smallest", "s", false, "Show smallest faces by area")
}

func runFaces(cmd *cobra.Command, args []string) {
	m, err := meshio.Load(cmd.Context(), args[0], ioOptions(false))
	if err != nil {
		fail("%v", err)
	}

	faces := make([]faceInfo, 0, m.FaceCount())
	totalArea := 0.0
	minArea := math.MaxFloat64
	maxArea := 0.0

	for i := 0; i < m.FaceCount(); i++ {
		f := m.Face(i)
		tri := m.Triangle(i)
		area := tri.Area()
		faces = append(faces, faceInfo{
			Index:     i,
			Indices:   fmt.Sprintf("%d %d %d", f[0], f[1], f[2]),
			Area:      area,
			Perimeter: tri.Perimeter(),
			Normal:    analysis.FormatVector(tri.Normal()),
		})
		totalArea += area
		minArea = math.Min(minArea, area)
		maxArea = math.Max(maxArea, area)
	}

	title := "Faces"
	switch {
	case facesLargest:
		sort.SliceStable(faces, func(i, j int) bool { return faces[i].Area > faces[j].Area })
		title = "Largest Faces"
	case facesSmallest:
		sort.SliceStable(faces, func(i, j int) bool { return faces[i].Area < faces[j].Area })
		title = "Smallest Faces"
	}

	fmt.Println(title)
	fmt.Println("====================")
	fmt.Printf("Total faces: %d\n", len(faces))
	if len(faces) == 0 {
		return
	}
	fmt.Printf("Total area: %.6f square units\n", totalArea)
	fmt.Printf("Min area: %.6f square units\n", minArea)
	fmt.Printf("Max area: %.6f square units\n", maxArea)
	fmt.Printf("Avg area: %.6f square units\n\n", totalArea/float64(len(faces)))

	if len(faces) > facesCount {
		faces = faces[:facesCount]
	}
	fmt.Printf("%-6s %-15s %-12s %-12s %s\n", "Index", "Vertices", "Area", "Perimeter", "Normal")
	fmt.Println("-----------------------------------------------------------------------------------")
	for _, f := range faces {
		fmt.Printf("%-6d %-15s %-12.6f %-12.6f %s\n", f.Index, f.Indices, f.Area, f.Perimeter, f.Normal)
	}
}
