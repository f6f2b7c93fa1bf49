package main

import (
	"fmt"
	"image/png"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gomesh/internal/meshio"
	"github.com/philipparndt/gomesh/pkg/viewer"
)

var (
	previewWidth     int
	previewHeight    int
	previewYaw       float64
	previewPitch     float64
	previewWireframe bool
	previewPoints    bool
)

var previewCmd = &cobra.Command{
	Use:   "preview [file] [image.png]",
	Short: "Render a shaded preview image of a mesh",
	Args:  cobra.ExactArgs(2),
	Run:   runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	defaults := viewer.DefaultPreviewOptions()
	previewCmd.Flags().IntVar(&previewWidth, "width", defaults.Width, "Image width")
	previewCmd.Flags().IntVar(&previewHeight, "height", defaults.Height, "Image height")
	previewCmd.Flags().Float64Var(&previewYaw, "yaw", 45, "Camera yaw in degrees")
	previewCmd.Flags().Float64Var(&previewPitch, "pitch", 30, "Camera pitch in degrees")
	previewCmd.Flags().BoolVar(&previewWireframe, "wireframe", defaults.Wireframe, "Draw edges")
	previewCmd.Flags().BoolVar(&previewPoints, "points", defaults.Points, "Draw vertices")
}

func runPreview(cmd *cobra.Command, args []string) {
	m, err := meshio.Load(cmd.Context(), args[0], ioOptions(false))
	if err != nil {
		fail("%v", err)
	}

	cam := viewer.NewCamera(m.Bounds())
	cam.RotationY = previewYaw * math.Pi / 180
	cam.RotationX = previewPitch * math.Pi / 180
	cam.Rotate(0, 0)

	opts := viewer.DefaultPreviewOptions()
	opts.Width, opts.Height = previewWidth, previewHeight
	opts.Wireframe, opts.Points = previewWireframe, previewPoints
	img := viewer.RenderPreview(m.Sync(), cam, opts)

	f, err := os.Create(args[1])
	if err != nil {
		fail("failed to create %s: %v", args[1], err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		fail("failed to encode png: %v", err)
	}
	if err := f.Close(); err != nil {
		fail("failed to write %s: %v", args[1], err)
	}
	fmt.Printf("Wrote %s (%dx%d)\n", args[1], previewWidth, previewHeight)
}
