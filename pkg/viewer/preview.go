package viewer

import (
	"image"
	"image/color"
	"math"

	"github.com/philipparndt/gomesh/pkg/geometry"
	"github.com/philipparndt/gomesh/pkg/mesh"
)

// PreviewOptions configures the software preview
type PreviewOptions struct {
	Width      int
	Height     int
	Background color.RGBA
	Surface    color.RGBA
	Wire       color.RGBA
	Point      color.RGBA
	Highlight  color.RGBA
	Wireframe  bool
	Points     bool
	// Selected vertices are drawn with the highlight colour
	Selected []geometry.Vector3
}

// DefaultPreviewOptions returns a 512x512 shaded preview with wireframe
func DefaultPreviewOptions() PreviewOptions {
	return PreviewOptions{
		Width:      512,
		Height:     512,
		Background: color.RGBA{30, 30, 36, 255},
		Surface:    color.RGBA{170, 180, 200, 255},
		Wire:       color.RGBA{20, 20, 20, 255},
		Point:      color.RGBA{240, 240, 240, 255},
		Highlight:  color.RGBA{255, 140, 0, 255},
		Wireframe:  true,
		Points:     true,
	}
}

// RenderPreview rasterizes synced mesh buffers through the camera. The
// camera aspect is set from the image size.
func RenderPreview(buffers *mesh.Buffers, cam *Camera, opts PreviewOptions) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	for i := range img.Pix {
		switch i % 4 {
		case 0:
			img.Pix[i] = opts.Background.R
		case 1:
			img.Pix[i] = opts.Background.G
		case 2:
			img.Pix[i] = opts.Background.B
		default:
			img.Pix[i] = opts.Background.A
		}
	}
	if opts.Width == 0 || opts.Height == 0 {
		return img
	}
	cam.Aspect = float64(opts.Width) / float64(opts.Height)

	zbuffer := make([]float64, opts.Width*opts.Height)
	for i := range zbuffer {
		zbuffer[i] = math.Inf(1)
	}

	view := cam.Target.Sub(cam.Position).Normalize()
	for t := 0; t < buffers.TriangleCount(); t++ {
		var corners [3]screenVertex
		visible := true
		for k := 0; k < 3; k++ {
			p := point(buffers.Positions, t*3+k)
			sv, ok := toScreen(cam, p, opts)
			if !ok {
				visible = false
				break
			}
			corners[k] = sv
		}
		if !visible {
			continue
		}
		normal := point(buffers.Normals, t*3)
		// two-sided headlight shading
		light := 0.25 + 0.75*math.Abs(normal.Dot(view))
		fillTriangle(img, zbuffer, corners[0], corners[1], corners[2], shade(opts.Surface, light))
	}

	if opts.Wireframe {
		for i := 0; i+1 < len(buffers.Lines)/3; i += 2 {
			a, okA := toScreen(cam, point(buffers.Lines, i), opts)
			b, okB := toScreen(cam, point(buffers.Lines, i+1), opts)
			if okA && okB {
				drawLine(img, int(a.x), int(a.y), int(b.x), int(b.y), opts.Wire)
			}
		}
	}
	if opts.Points {
		for i := 0; i < len(buffers.Points)/3; i++ {
			if sv, ok := toScreen(cam, point(buffers.Points, i), opts); ok {
				drawMarker(img, int(sv.x), int(sv.y), 1, opts.Point)
			}
		}
	}
	for _, p := range opts.Selected {
		if sv, ok := toScreen(cam, p, opts); ok {
			drawMarker(img, int(sv.x), int(sv.y), 3, opts.Highlight)
		}
	}
	return img
}

// point reads the i-th xyz triple of a flat buffer
func point(buf []float32, i int) geometry.Vector3 {
	return geometry.NewVector3(float64(buf[i*3]), float64(buf[i*3+1]), float64(buf[i*3+2]))
}

func toScreen(cam *Camera, p geometry.Vector3, opts PreviewOptions) (screenVertex, bool) {
	ndc, depth, ok := cam.ProjectDepth(p)
	if !ok {
		return screenVertex{}, false
	}
	return screenVertex{
		x: (ndc.X + 1) / 2 * float64(opts.Width),
		y: (1 - ndc.Y) / 2 * float64(opts.Height),
		z: depth,
	}, true
}

func shade(c color.RGBA, factor float64) color.RGBA {
	scale := func(v uint8) uint8 {
		return uint8(math.Min(255, float64(v)*factor))
	}
	return color.RGBA{scale(c.R), scale(c.G), scale(c.B), c.A}
}
