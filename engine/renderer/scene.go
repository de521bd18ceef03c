package renderer

import (
	"fmt"
	m "math"

	"github.com/spaghettifunk/tinyrender/engine/math"
)

// DepthCleared is the depth buffer value after Clear. Larger depth is nearer.
const DepthCleared float32 = -m.MaxFloat32

// Barycentric weights are rejected when the doubled triangle area is at or
// below this magnitude.
const degenerateArea float32 = 1e-2

/**
 * @brief The render target: a packed RGB color buffer plus a depth buffer
 * of the same size. Both are row-major with (0,0) at the bottom-left and
 * persist until Clear is called.
 */
type Scene struct {
	width  int
	height int
	color  []uint32
	depth  []float32
}

func NewScene(width, height int) *Scene {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("renderer: invalid scene size %dx%d", width, height))
	}
	s := &Scene{
		width:  width,
		height: height,
		color:  make([]uint32, width*height),
		depth:  make([]float32, width*height),
	}
	s.Clear(ColorBlack)
	return s
}

func (s *Scene) Width() int  { return s.width }
func (s *Scene) Height() int { return s.height }

// Clear fills the color buffer with background and resets every depth value.
func (s *Scene) Clear(background uint32) {
	for i := range s.color {
		s.color[i] = background
		s.depth[i] = DepthCleared
	}
}

func (s *Scene) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.width && y < s.height
}

// Set writes a color without touching the depth buffer. Writes outside the
// buffer are dropped and report false.
func (s *Scene) Set(x, y int, color uint32) bool {
	if !s.inside(x, y) {
		return false
	}
	s.color[x+y*s.width] = color
	return true
}

// ColorAt returns the packed color at (x, y). Panics outside the buffer.
func (s *Scene) ColorAt(x, y int) uint32 {
	if !s.inside(x, y) {
		panic(fmt.Sprintf("renderer: pixel (%d, %d) outside %dx%d scene", x, y, s.width, s.height))
	}
	return s.color[x+y*s.width]
}

// DepthAt returns the stored depth at (x, y). Panics outside the buffer.
func (s *Scene) DepthAt(x, y int) float32 {
	if !s.inside(x, y) {
		panic(fmt.Sprintf("renderer: pixel (%d, %d) outside %dx%d scene", x, y, s.width, s.height))
	}
	return s.depth[x+y*s.width]
}

// Snapshot copies the color buffer.
func (s *Scene) Snapshot() Frame {
	pixels := make([]uint32, len(s.color))
	copy(pixels, s.color)
	return Frame{Width: s.width, Height: s.height, Pixels: pixels}
}

/**
 * @brief Returns the barycentric coordinates of p relative to the screen
 * triangle (a, b, c). A component is negative when p lies outside; a
 * degenerate triangle yields (-1, 1, 1).
 */
func barycentric(a, b, c, p math.Vector[float32]) math.Vector[float32] {
	sx := math.NewVector(c.X()-a.X(), b.X()-a.X(), a.X()-p.X())
	sy := math.NewVector(c.Y()-a.Y(), b.Y()-a.Y(), a.Y()-p.Y())
	u := sx.Cross(sy)
	if float32(m.Abs(float64(u.Z()))) <= degenerateArea {
		return math.NewVector[float32](-1, 1, 1)
	}
	return math.NewVector(1-(u.X()+u.Y())/u.Z(), u.Y()/u.Z(), u.X()/u.Z())
}

/**
 * @brief Rasterizes one triangle with depth testing and programmable shading.
 *
 * @param clip 4x3 matrix whose columns are the clip-space corners, as
 * returned by the shader's Vertex stage.
 * @param shader Shades every covered pixel; it may discard.
 * @param viewport Maps normalized device coordinates to pixels.
 * @return The number of pixels written.
 */
func (s *Scene) Triangle(clip math.Matrix, shader Shader, viewport math.Matrix) int {
	if clip.Rows() != 4 || clip.Cols() != 3 {
		panic(fmt.Sprintf("renderer: triangle needs a 4x3 clip matrix, got %dx%d", clip.Rows(), clip.Cols()))
	}

	// Screen-space corners after the perspective divide.
	pts := viewport.Mul(clip)
	var screen [3]math.Vector[float32]
	var w [3]float32
	for i := 0; i < 3; i++ {
		col := pts.Col(i)
		w[i] = col.W()
		// A corner on the eye plane has no screen position.
		if w[i] == 0 || !finite(w[i]) {
			return 0
		}
		screen[i] = col.Div(w[i]).Proj(2)
		if !finite(screen[i].X()) || !finite(screen[i].Y()) {
			return 0
		}
	}
	if screen[0].Y() == screen[1].Y() && screen[0].Y() == screen[2].Y() {
		return 0
	}

	bboxMin := math.NewVector[float32](m.MaxFloat32, m.MaxFloat32)
	bboxMax := math.NewVector[float32](-m.MaxFloat32, -m.MaxFloat32)
	limit := math.NewVector(float32(s.width-1), float32(s.height-1))
	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			bboxMin.Set(j, math.Clamp(min(bboxMin.At(j), screen[i].At(j)), 0, limit.At(j)))
			bboxMax.Set(j, math.Clamp(max(bboxMax.At(j), screen[i].At(j)), 0, limit.At(j)))
		}
	}

	depthRow := clip.Row(2)
	written := 0
	for x := int(bboxMin.X()); x <= int(bboxMax.X()); x++ {
		for y := int(bboxMin.Y()); y <= int(bboxMax.Y()); y++ {
			p := math.NewVector(float32(x), float32(y))
			bcScreen := barycentric(screen[0], screen[1], screen[2], p)
			if !(bcScreen.X() >= 0 && bcScreen.Y() >= 0 && bcScreen.Z() >= 0) {
				continue
			}

			bcClip := math.NewVector(bcScreen.X()/w[0], bcScreen.Y()/w[1], bcScreen.Z()/w[2])
			bcClip = bcClip.Div(bcClip.X() + bcClip.Y() + bcClip.Z())

			idx := x + y*s.width
			fragDepth := depthRow.Dot(bcClip)
			// NaN depth never passes.
			if !(fragDepth > s.depth[idx]) {
				continue
			}

			color, discard := shader.Fragment(bcClip)
			if discard {
				continue
			}
			s.depth[idx] = fragDepth
			s.color[idx] = color
			written++
		}
	}
	return written
}

/**
 * @brief Fills a screen-space triangle with a flat color by walking its
 * edges row by row. Corners are (x, y, depth); x and y are truncated to
 * whole pixels. Uses the same depth test as Triangle.
 * @return The number of pixels written.
 */
func (s *Scene) FillTriangle(pts [3]math.Vector[float32], color uint32) int {
	t := [3]math.Vector[float32]{}
	for i, p := range pts {
		t[i] = math.NewVector(float32(int(p.X())), float32(int(p.Y())), p.Z())
	}
	if t[0].Y() == t[1].Y() && t[0].Y() == t[2].Y() {
		return 0
	}
	// Sort lower-to-upper.
	if t[0].Y() > t[1].Y() {
		t[0], t[1] = t[1], t[0]
	}
	if t[0].Y() > t[2].Y() {
		t[0], t[2] = t[2], t[0]
	}
	if t[1].Y() > t[2].Y() {
		t[1], t[2] = t[2], t[1]
	}

	totalHeight := t[2].Y() - t[0].Y()
	lowerHeight := t[1].Y() - t[0].Y()
	written := 0
	for i := 0; i < int(totalHeight); i++ {
		fi := float32(i)
		secondHalf := fi > lowerHeight || t[1].Y() == t[0].Y()
		alpha := fi / totalHeight

		a := t[0].Add(t[2].Sub(t[0]).Scale(alpha))
		var b math.Vector[float32]
		if secondHalf {
			beta := (fi - lowerHeight) / (t[2].Y() - t[1].Y())
			b = t[1].Add(t[2].Sub(t[1]).Scale(beta))
		} else {
			beta := fi / lowerHeight
			b = t[0].Add(t[1].Sub(t[0]).Scale(beta))
		}
		if a.X() > b.X() {
			a, b = b, a
		}

		y := int(t[0].Y()) + i
		ax, bx := int(a.X()), int(b.X())
		for x := ax; x <= bx; x++ {
			if !s.inside(x, y) {
				continue
			}
			phi := float32(1)
			if bx != ax {
				phi = float32(x-ax) / float32(bx-ax)
			}
			z := a.Z() + (b.Z()-a.Z())*phi
			idx := x + y*s.width
			if s.depth[idx] >= z {
				continue
			}
			s.depth[idx] = z
			s.color[idx] = color
			written++
		}
	}
	return written
}

/**
 * @brief Draws a line between two pixels with Bresenham's algorithm.
 * The segment is clipped to the buffer first, so far endpoints cost no
 * more than on-screen ones; depth is ignored.
 * @return The number of pixels written.
 */
func (s *Scene) Line(x0, y0, x1, y1 int, color uint32) int {
	return s.segment(float64(x0), float64(y0), float64(x1), float64(y1), color)
}

// segment clips a sub-pixel segment to the buffer, rounds the clipped
// endpoints and rasterizes what is left.
func (s *Scene) segment(fx0, fy0, fx1, fy1 float64, color uint32) int {
	fx0, fy0, fx1, fy1, ok := clipSegment(fx0, fy0, fx1, fy1, float64(s.width-1), float64(s.height-1))
	if !ok {
		return 0
	}
	x0, y0 := int(m.Round(fx0)), int(m.Round(fy0))
	x1, y1 := int(m.Round(fx1)), int(m.Round(fy1))

	steep := false
	if abs(x0-x1) < abs(y0-y1) {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
		steep = true
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	dx := x1 - x0
	derror := abs(y1-y0) * 2
	errAcc := 0
	y := y0
	written := 0
	for x := x0; x <= x1; x++ {
		var ok bool
		if steep {
			ok = s.Set(y, x, color)
		} else {
			ok = s.Set(x, y, color)
		}
		if ok {
			written++
		}
		errAcc += derror
		if errAcc > dx {
			if y1 > y0 {
				y++
			} else {
				y--
			}
			errAcc -= dx * 2
		}
	}
	return written
}

/**
 * @brief Liang-Barsky clipping of a segment against [0,xmax]x[0,ymax].
 * @return The clipped endpoints, and false when nothing is left or an
 * endpoint is not finite.
 */
func clipSegment(x0, y0, x1, y1, xmax, ymax float64) (float64, float64, float64, float64, bool) {
	for _, v := range [4]float64{x0, y0, x1, y1} {
		if m.IsNaN(v) || m.IsInf(v, 0) {
			return 0, 0, 0, 0, false
		}
	}
	dx, dy := x1-x0, y1-y0
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{x0, xmax - x0, y0, ymax - y0}
	t0, t1 := 0.0, 1.0
	for i := range p {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q[i] / p[i]
		if p[i] < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, r)
		}
	}
	if t1 < 1 {
		x1, y1 = x0+t1*dx, y0+t1*dy
	}
	if t0 > 0 {
		x0, y0 = x0+t0*dx, y0+t0*dy
	}
	return x0, y0, x1, y1, true
}

func finite(v float32) bool {
	return !m.IsNaN(float64(v)) && !m.IsInf(float64(v), 0)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
