package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gomesh/internal/meshio"
	"github.com/philipparndt/gomesh/pkg/analysis"
)

var (
	edgesCount     int
	edgesLongest   bool
	edgesShortest  bool
	edgesBoundary  bool
	edgesMinLength float64
	edgesMaxLength float64
)

var edgesCmd = &cobra.Command{
	Use:   "edges [file]",
	Short: "Analyze and measure edges of a mesh",
	Long:  "List edges by length, boundary edges, or edges within a length range.",
	Args:  cobra.ExactArgs(1),
	Run:   runEdges,
}

func init() {
	rootCmd.AddCommand(edgesCmd)

	edgesCmd.Flags().IntVarP(&edgesCount, "count", "n", 10, "Number of edges to display")
	edgesCmd.Flags().BoolVarP(&edgesLongest, "longest", "l", false, "Show longest edges")
	edgesCmd.Flags().BoolVarP(&edgesShortest, "shortest", "s", false, "Show shortest edges")
	edgesCmd.Flags().BoolVarP(&edgesBoundary, "boundary", "b", false, "Show edges bordering a single face")
	edgesCmd.Flags().Float64Var(&edgesMinLength, "min", 0.0, "Minimum edge length filter")
	edgesCmd.Flags().Float64Var(&edgesMaxLength, "max", 0.0, "Maximum edge length filter")
}

func runEdges(cmd *cobra.Command, args []string) {
	m, err := meshio.Load(cmd.Context(), args[0], ioOptions(false))
	if err != nil {
		fail("%v", err)
	}
	result := analysis.Analyze(m)

	var edges []analysis.EdgeInfo
	var title string

	switch {
	case edgesLongest:
		edges = analysis.LongestEdges(result, edgesCount)
		title = fmt.Sprintf("Top %d Longest Edges", len(edges))
	case edgesShortest:
		edges = analysis.ShortestEdges(result, edgesCount)
		title = fmt.Sprintf("Top %d Shortest Edges", len(edges))
	case edgesBoundary:
		for _, e := range result.Edges {
			if e.Faces == 1 {
				edges = append(edges, e)
			}
		}
		title = fmt.Sprintf("Boundary Edges (found %d)", len(edges))
	case edgesMaxLength > 0:
		edges = analysis.EdgesByLength(result, edgesMinLength, edgesMaxLength)
		title = fmt.Sprintf("Edges between %.6f and %.6f units (found %d)", edgesMinLength, edgesMaxLength, len(edges))
	default:
		edges = result.Edges
		title = fmt.Sprintf("All Edges (showing first %d of %d)", min(edgesCount, len(edges)), len(edges))
	}
	if len(edges) > edgesCount {
		edges = edges[:edgesCount]
	}

	fmt.Println(title)
	fmt.Println("====================")
	fmt.Printf("Total edges in mesh: %d\n", len(result.Edges))
	fmt.Printf("Min edge length: %.6f units\n", result.MinEdgeLength)
	fmt.Printf("Max edge length: %.6f units\n", result.MaxEdgeLength)
	fmt.Printf("Avg edge length: %.6f units\n\n", result.AvgEdgeLength)

	if len(edges) == 0 {
		fmt.Println("No edges found matching the criteria.")
		return
	}
	fmt.Printf("%-12s %-35s %-35s %-12s %s\n", "Vertices", "Start", "End", "Length", "Faces")
	fmt.Println("----------------------------------------------------------------------------------------------------------")
	for _, e := range edges {
		fmt.Printf("%-12s %-35s %-35s %-12.6f %d\n",
			fmt.Sprintf("%d-%d", e.Edge.A, e.Edge.B),
			analysis.FormatVector(e.Start),
			analysis.FormatVector(e.End),
			e.Length,
			e.Faces)
	}
}
