package shaders

import (
	"fmt"

	"github.com/spaghettifunk/tinyrender/engine/core"
	"github.com/spaghettifunk/tinyrender/engine/math"
	"github.com/spaghettifunk/tinyrender/engine/renderer"
)

/**
 * @brief Samples a diffuse texture at the interpolated texture coordinate
 * and modulates it by the Gouraud intensity. With Unlit set the sampled
 * color is returned as is.
 *
 * When ColorKey is set, texels of exactly that color are discarded, which
 * gives cut-out transparency for 24-bit textures.
 */
type TexturedShader struct {
	vertexStage
	Texture  renderer.Texture
	ColorKey *uint32
	Unlit    bool

	varyingIntensity math.Vector[float32]
}

func NewTexturedShader(mesh renderer.Mesh, texture renderer.Texture, uniforms Uniforms) *TexturedShader {
	if texture == nil {
		panic(fmt.Errorf("textured shader: %w", core.ErrMissingTexture))
	}
	return &TexturedShader{
		vertexStage:      newVertexStage("textured", mesh, uniforms),
		Texture:          texture,
		varyingIntensity: math.NewVectorZero[float32](3),
	}
}

func (s *TexturedShader) Vertex(face, nthvert int) math.Vector[float32] {
	intensity := max(0, s.intensity(s.mesh.Normal(face, nthvert)))
	s.varyingIntensity.Set(nthvert, intensity)
	return s.vertex(face, nthvert)
}

// Sample returns the texel at texture coordinate uv, with (0,0) the
// bottom-left corner and (1,1) the top-right one.
func (s *TexturedShader) Sample(uv math.Vector[float32]) uint32 {
	x := int(uv.X() * float32(s.Texture.Width()))
	y := int(uv.Y() * float32(s.Texture.Height()))
	return s.Texture.Pixel(x, y)
}

func (s *TexturedShader) Fragment(bar math.Vector[float32]) (uint32, bool) {
	texel := s.Sample(s.varyingUV.MulVec(bar))
	if s.ColorKey != nil && texel == *s.ColorKey {
		return 0, true
	}
	if s.Unlit {
		return texel, false
	}
	return renderer.ScaleColor(texel, s.varyingIntensity.Dot(bar)), false
}
