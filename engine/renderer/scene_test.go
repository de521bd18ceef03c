package renderer

import (
	"image/color"
	m "math"
	"testing"

	"github.com/spaghettifunk/tinyrender/engine/math"
)

// solidShader paints every fragment with one color.
type solidShader struct {
	color   uint32
	discard bool
}

func (s solidShader) Vertex(face, nthvert int) math.Vector[float32] {
	return math.NewVectorZero[float32](4)
}

func (s solidShader) Fragment(bar math.Vector[float32]) (uint32, bool) {
	return s.color, s.discard
}

// clipFromPoints builds a 4x3 clip matrix from screen corners with w = 1.
func clipFromPoints(pts ...[3]float32) math.Matrix {
	clip := math.NewMatrix(4, 3)
	for i, p := range pts {
		clip.SetCol(i, math.NewVector(p[0], p[1], p[2], 1))
	}
	return clip
}

func TestTriangleCoverage(t *testing.T) {
	scene := NewScene(16, 16)
	clip := clipFromPoints([3]float32{0, 0, 0}, [3]float32{10, 0, 0}, [3]float32{0, 10, 0})

	written := scene.Triangle(clip, solidShader{color: ColorWhite}, math.Identity(4))

	if written < 50 || written > 66 {
		t.Errorf("written = %d, want within [50, 66]", written)
	}
	if got := scene.ColorAt(5, 2); got != ColorWhite {
		t.Errorf("pixel (5,2) = %06x, want white", got)
	}
	if got := scene.ColorAt(9, 9); got != ColorBlack {
		t.Errorf("pixel (9,9) = %06x, want untouched", got)
	}
	if got := scene.DepthAt(9, 9); got != DepthCleared {
		t.Errorf("depth (9,9) = %v, want cleared", got)
	}
}

func TestTriangleDepthOrder(t *testing.T) {
	near := clipFromPoints([3]float32{0, 0, 10}, [3]float32{12, 0, 10}, [3]float32{0, 12, 10})
	far := clipFromPoints([3]float32{0, 0, -10}, [3]float32{12, 0, -10}, [3]float32{0, 12, -10})

	tests := []struct {
		name  string
		order []math.Matrix
		color []uint32
	}{
		{"near first", []math.Matrix{near, far}, []uint32{ColorRed, ColorBlue}},
		{"far first", []math.Matrix{far, near}, []uint32{ColorBlue, ColorRed}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene := NewScene(16, 16)
			for i, clip := range tt.order {
				scene.Triangle(clip, solidShader{color: tt.color[i]}, math.Identity(4))
			}
			if got := scene.ColorAt(3, 3); got != ColorRed {
				t.Errorf("pixel (3,3) = %06x, want nearer red", got)
			}
			if got := scene.DepthAt(3, 3); got < 9.99 || got > 10.01 {
				t.Errorf("depth (3,3) = %v, want 10", got)
			}
		})
	}
}

// clipFromCorners builds a 4x3 clip matrix from homogeneous corners.
func clipFromCorners(pts ...[4]float32) math.Matrix {
	clip := math.NewMatrix(4, 3)
	for i, p := range pts {
		clip.SetCol(i, math.NewVector(p[0], p[1], p[2], p[3]))
	}
	return clip
}

func TestTriangleNonFiniteCorners(t *testing.T) {
	nan := float32(m.NaN())
	tests := []struct {
		name string
		clip math.Matrix
	}{
		{"eye plane at origin", clipFromCorners([4]float32{0, 0, 0, 0}, [4]float32{10, 0, 0, 1}, [4]float32{0, 10, 0, 1})},
		{"eye plane off origin", clipFromCorners([4]float32{5, 5, 1, 0}, [4]float32{10, 0, 0, 1}, [4]float32{0, 10, 0, 1})},
		{"nan position", clipFromCorners([4]float32{nan, 0, 0, 1}, [4]float32{10, 0, 0, 1}, [4]float32{0, 10, 0, 1})},
		{"nan depth", clipFromCorners([4]float32{0, 0, nan, 1}, [4]float32{10, 0, 0, 1}, [4]float32{0, 10, 0, 1})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene := NewScene(16, 16)
			if written := scene.Triangle(tt.clip, solidShader{color: ColorWhite}, math.Identity(4)); written != 0 {
				t.Errorf("written = %d, want 0", written)
			}
			for y := 0; y < 16; y++ {
				for x := 0; x < 16; x++ {
					if d := scene.DepthAt(x, y); d != DepthCleared {
						t.Fatalf("depth (%d,%d) = %v, want cleared", x, y, d)
					}
				}
			}

			// The buffer still accepts an ordinary triangle afterwards.
			ok := clipFromPoints([3]float32{0, 0, 0}, [3]float32{10, 0, 0}, [3]float32{0, 10, 0})
			if written := scene.Triangle(ok, solidShader{color: ColorRed}, math.Identity(4)); written == 0 {
				t.Error("triangle after rejected one wrote nothing")
			}
		})
	}
}

func TestTriangleDegenerate(t *testing.T) {
	scene := NewScene(16, 16)
	clip := clipFromPoints([3]float32{0, 5, 0}, [3]float32{5, 5, 0}, [3]float32{10, 5, 0})
	if written := scene.Triangle(clip, solidShader{color: ColorWhite}, math.Identity(4)); written != 0 {
		t.Errorf("degenerate triangle wrote %d pixels", written)
	}
}

func TestTriangleDiscard(t *testing.T) {
	scene := NewScene(16, 16)
	clip := clipFromPoints([3]float32{0, 0, 0}, [3]float32{10, 0, 0}, [3]float32{0, 10, 0})
	if written := scene.Triangle(clip, solidShader{color: ColorWhite, discard: true}, math.Identity(4)); written != 0 {
		t.Errorf("discarding shader wrote %d pixels", written)
	}
	if got := scene.DepthAt(2, 2); got != DepthCleared {
		t.Errorf("discarded fragment updated depth to %v", got)
	}
}

func TestTriangleClipsToBuffer(t *testing.T) {
	scene := NewScene(8, 8)
	clip := clipFromPoints([3]float32{-20, -20, 0}, [3]float32{40, -20, 0}, [3]float32{-20, 40, 0})
	written := scene.Triangle(clip, solidShader{color: ColorGreen}, math.Identity(4))
	if written != 64 {
		t.Errorf("written = %d, want the whole 8x8 buffer", written)
	}
}

func TestFillTriangle(t *testing.T) {
	scene := NewScene(16, 16)
	pts := [3]math.Vector[float32]{
		math.NewVector[float32](0, 0, 1),
		math.NewVector[float32](10, 0, 1),
		math.NewVector[float32](0, 10, 1),
	}
	written := scene.FillTriangle(pts, ColorRed)
	if written == 0 {
		t.Fatal("fill wrote no pixels")
	}
	if got := scene.ColorAt(5, 2); got != ColorRed {
		t.Errorf("pixel (5,2) = %06x, want red", got)
	}
	if got := scene.ColorAt(9, 9); got != ColorBlack {
		t.Errorf("pixel (9,9) = %06x, want untouched", got)
	}

	// A farther triangle over the same area must not overwrite anything.
	for i := range pts {
		pts[i].Set(2, -1)
	}
	if n := scene.FillTriangle(pts, ColorBlue); n != 0 {
		t.Errorf("farther fill wrote %d pixels", n)
	}

	flat := [3]math.Vector[float32]{
		math.NewVector[float32](0, 4, 0),
		math.NewVector[float32](5, 4, 0),
		math.NewVector[float32](9, 4, 0),
	}
	if n := scene.FillTriangle(flat, ColorWhite); n != 0 {
		t.Errorf("degenerate fill wrote %d pixels", n)
	}
}

func TestLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           int
	}{
		{"horizontal", 0, 0, 9, 0, 10},
		{"reversed", 9, 3, 0, 3, 10},
		{"steep", 0, 0, 3, 9, 10},
		{"diagonal", 0, 0, 7, 7, 8},
		{"clipped", -5, 2, 4, 2, 5},
		{"single pixel", 2, 2, 2, 2, 1},
		{"far endpoint", 0, 0, 1 << 30, 3, 16},
		{"far both ends", -(1 << 30), 5, 1 << 30, 5, 16},
		{"far steep", 4, -(1 << 30), 4, 1 << 30, 16},
		{"outside", 20, 20, 30, 30, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene := NewScene(16, 16)
			if got := scene.Line(tt.x0, tt.y0, tt.x1, tt.y1, ColorWhite); got != tt.want {
				t.Errorf("Line wrote %d pixels, want %d", got, tt.want)
			}
			if scene.inside(tt.x0, tt.y0) && scene.ColorAt(tt.x0, tt.y0) != ColorWhite {
				t.Errorf("start pixel not drawn")
			}
			if scene.inside(tt.x1, tt.y1) && scene.ColorAt(tt.x1, tt.y1) != ColorWhite {
				t.Errorf("end pixel not drawn")
			}
		})
	}
}

func TestSnapshotAndClear(t *testing.T) {
	scene := NewScene(4, 3)
	scene.Set(0, 0, ColorRed)
	frame := scene.Snapshot()
	scene.Clear(ColorBlue)

	if frame.At(0, 0) != ColorRed {
		t.Errorf("snapshot changed after clear")
	}
	if frame.At(10, 10) != ColorBlack {
		t.Errorf("out of frame lookup should be black")
	}
	if scene.ColorAt(0, 0) != ColorBlue || scene.DepthAt(0, 0) != DepthCleared {
		t.Errorf("clear did not reset the buffers")
	}

	img := frame.RGBA()
	if got := img.RGBAAt(0, 2); got != (color.RGBA{R: 0xFF, A: 0xFF}) {
		t.Errorf("bottom-left pixel maps to image row 2, got %v", got)
	}
}

func TestColorHelpers(t *testing.T) {
	c := PackRGB(0x12, 0x34, 0x56)
	if c != 0x123456 {
		t.Fatalf("PackRGB = %06x", c)
	}
	if r, g, b := UnpackRGB(c); r != 0x12 || g != 0x34 || b != 0x56 {
		t.Errorf("UnpackRGB = %x %x %x", r, g, b)
	}

	tests := []struct {
		intensity float32
		want      uint32
	}{
		{1, 0xC86432},
		{0.5, 0x643219},
		{0, 0},
		{-1, 0},
		{2, 0xC86432},
	}
	for _, tt := range tests {
		if got := ScaleColor(0xC86432, tt.intensity); got != tt.want {
			t.Errorf("ScaleColor(%v) = %06x, want %06x", tt.intensity, got, tt.want)
		}
	}
	if Gray(1) != ColorWhite {
		t.Errorf("Gray(1) = %06x", Gray(1))
	}
}
