package shaders

import (
	"errors"
	"testing"

	"github.com/spaghettifunk/tinyrender/engine/core"
	"github.com/spaghettifunk/tinyrender/engine/math"
	"github.com/spaghettifunk/tinyrender/engine/renderer"
)

// triangleMesh is a single face with explicit corners, uvs and normals.
type triangleMesh struct {
	verts   [3]math.Vector[float32]
	uvs     [3]math.Vector[float32]
	normals [3]math.Vector[float32]
}

func (m *triangleMesh) FaceCount() int                            { return 1 }
func (m *triangleMesh) VertexCount() int                          { return 3 }
func (m *triangleMesh) Vertex(face, nth int) math.Vector[float32] { return m.verts[nth] }
func (m *triangleMesh) UV(face, nth int) math.Vector[float32]     { return m.uvs[nth] }
func (m *triangleMesh) Normal(face, nth int) math.Vector[float32] { return m.normals[nth] }

// newTriangle returns a counter-clockwise triangle in NDC facing +z.
func newTriangle(normal math.Vector[float32]) *triangleMesh {
	return &triangleMesh{
		verts: [3]math.Vector[float32]{
			math.NewVector[float32](-1, -1, 0),
			math.NewVector[float32](1, -1, 0),
			math.NewVector[float32](-1, 1, 0),
		},
		uvs: [3]math.Vector[float32]{
			math.NewVector[float32](0, 0),
			math.NewVector[float32](0.99, 0),
			math.NewVector[float32](0, 0.99),
		},
		normals: [3]math.Vector[float32]{normal, normal, normal},
	}
}

// checker is a 2x2 texture.
type checker struct{}

func (checker) Width() int  { return 2 }
func (checker) Height() int { return 2 }
func (checker) Pixel(x, y int) uint32 {
	x = math.Clamp(x, 0, 1)
	y = math.Clamp(y, 0, 1)
	return [2][2]uint32{
		{renderer.ColorRed, renderer.ColorGreen},
		{renderer.ColorBlue, renderer.ColorWhite},
	}[y][x]
}

func draw(t *testing.T, mesh renderer.Mesh, shader renderer.Shader) (*renderer.Scene, renderer.Stats) {
	t.Helper()
	scene := renderer.NewScene(16, 16)
	stats := renderer.DrawMesh(scene, mesh, shader, math.Viewport(0, 0, 16, 16, 255))
	return scene, stats
}

func TestUniformShaderIdentityTransform(t *testing.T) {
	mesh := newTriangle(math.NewVector[float32](0, 0, 1))
	shader := NewUniformShader(mesh, Uniforms{}, renderer.ColorGreen)

	clip := shader.Vertex(0, 1)
	if !clip.Compare(math.NewVector[float32](1, -1, 0, 1), 1e-6) {
		t.Errorf("clip = %v, want (1, -1, 0, 1)", clip)
	}

	scene, stats := draw(t, mesh, shader)
	if stats.Pixels == 0 {
		t.Fatal("uniform shader wrote nothing")
	}
	if got := scene.ColorAt(2, 2); got != renderer.ColorGreen {
		t.Errorf("pixel (2,2) = %06x, want green", got)
	}
}

func TestFlatShader(t *testing.T) {
	mesh := newTriangle(math.NewVector[float32](0, 0, 1))
	scene, stats := draw(t, mesh, NewFlatShader(mesh, Uniforms{}, renderer.ColorWhite))
	if stats.Pixels == 0 {
		t.Fatal("front face wrote nothing")
	}
	if got := scene.ColorAt(2, 2); got != renderer.ColorWhite {
		t.Errorf("lit pixel = %06x, want white", got)
	}

	back := newTriangle(math.NewVector[float32](0, 0, 1))
	back.verts[1], back.verts[2] = back.verts[2], back.verts[1]
	if _, stats := draw(t, back, NewFlatShader(back, Uniforms{}, renderer.ColorWhite)); stats.Pixels != 0 {
		t.Errorf("back face wrote %d pixels, want discarded", stats.Pixels)
	}

	// Light at 60 degrees from the normal halves the intensity.
	half := Uniforms{LightDir: math.NewVector[float32](0, 0.8660254, 0.5)}
	scene, _ = draw(t, mesh, NewFlatShader(mesh, half, renderer.ColorWhite))
	if got := scene.ColorAt(2, 2); got != 0x7F7F7F {
		t.Errorf("half lit pixel = %06x, want 7f7f7f", got)
	}
}

func TestGouraudShader(t *testing.T) {
	lit := newTriangle(math.NewVector[float32](0, 0, 2))
	scene, _ := draw(t, lit, NewGouraudShader(lit, Uniforms{}, renderer.ColorRed))
	if got := scene.ColorAt(2, 2); got != renderer.ColorRed {
		t.Errorf("lit pixel = %06x, want red", got)
	}

	// Back-lit corners are still drawn, in black.
	dark := newTriangle(math.NewVector[float32](0, 0, -1))
	scene, stats := draw(t, dark, NewGouraudShader(dark, Uniforms{}, renderer.ColorRed))
	if stats.Pixels == 0 {
		t.Fatal("gouraud must not discard")
	}
	if got := scene.ColorAt(2, 2); got != renderer.ColorBlack {
		t.Errorf("dark pixel = %06x, want black", got)
	}

	// Interpolation: full intensity at corner 0 only.
	mixed := newTriangle(math.NewVector[float32](0, 0, 1))
	mixed.normals[1] = math.NewVector[float32](0, 0, -1)
	mixed.normals[2] = math.NewVector[float32](0, 0, -1)
	shader := NewGouraudShader(mixed, Uniforms{}, renderer.ColorWhite)
	for nth := 0; nth < 3; nth++ {
		shader.Vertex(0, nth)
	}
	if got, _ := shader.Fragment(math.NewVector[float32](0.5, 0.25, 0.25)); got != 0x7F7F7F {
		t.Errorf("interpolated color = %06x, want 7f7f7f", got)
	}
}

func TestTexturedShader(t *testing.T) {
	mesh := newTriangle(math.NewVector[float32](0, 0, 1))
	shader := NewTexturedShader(mesh, checker{}, Uniforms{})
	for nth := 0; nth < 3; nth++ {
		shader.Vertex(0, nth)
	}

	tests := []struct {
		name string
		bar  math.Vector[float32]
		want uint32
	}{
		{"corner 0", math.NewVector[float32](1, 0, 0), renderer.ColorRed},
		{"corner 1", math.NewVector[float32](0, 1, 0), renderer.ColorGreen},
		{"corner 2", math.NewVector[float32](0, 0, 1), renderer.ColorBlue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, discard := shader.Fragment(tt.bar)
			if discard || got != tt.want {
				t.Errorf("Fragment(%v) = (%06x, %v), want %06x", tt.bar, got, discard, tt.want)
			}
		})
	}

	key := renderer.ColorGreen
	shader.ColorKey = &key
	if _, discard := shader.Fragment(math.NewVector[float32](0, 1, 0)); !discard {
		t.Errorf("color-keyed texel was not discarded")
	}
	if _, discard := shader.Fragment(math.NewVector[float32](1, 0, 0)); discard {
		t.Errorf("non-keyed texel was discarded")
	}

	if got := shader.Sample(math.NewVector[float32](5, -3)); got != renderer.ColorGreen {
		t.Errorf("out of range sample = %06x, want clamped green", got)
	}
}

func TestTexturedShaderUnlit(t *testing.T) {
	// Lit from behind: the lit variant goes black, the unlit one keeps the texel.
	mesh := newTriangle(math.NewVector[float32](0, 0, -1))
	shader := NewTexturedShader(mesh, checker{}, Uniforms{})
	for nth := 0; nth < 3; nth++ {
		shader.Vertex(0, nth)
	}
	bar := math.NewVector[float32](1, 0, 0)
	if got, _ := shader.Fragment(bar); got != renderer.ColorBlack {
		t.Errorf("lit back-facing texel = %06x, want black", got)
	}
	shader.Unlit = true
	if got, discard := shader.Fragment(bar); discard || got != renderer.ColorRed {
		t.Errorf("unlit texel = (%06x, %v), want red", got, discard)
	}
}

func TestConstructorsPanicOnMissingInputs(t *testing.T) {
	mesh := newTriangle(math.NewVector[float32](0, 0, 1))
	tests := []struct {
		name string
		fn   func()
		want error
	}{
		{"uniform", func() { NewUniformShader(nil, Uniforms{}, 0) }, core.ErrMissingMesh},
		{"flat", func() { NewFlatShader(nil, Uniforms{}, 0) }, core.ErrMissingMesh},
		{"gouraud", func() { NewGouraudShader(nil, Uniforms{}, 0) }, core.ErrMissingMesh},
		{"textured mesh", func() { NewTexturedShader(nil, checker{}, Uniforms{}) }, core.ErrMissingMesh},
		{"textured texture", func() { NewTexturedShader(mesh, nil, Uniforms{}) }, core.ErrMissingTexture},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				err, ok := recover().(error)
				if !ok || !errors.Is(err, tt.want) {
					t.Errorf("recovered %v, want %v", err, tt.want)
				}
			}()
			tt.fn()
		})
	}
}
