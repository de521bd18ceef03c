package metadata

import (
	"fmt"

	"github.com/spaghettifunk/tinyrender/engine/math"
)

/**
 * @brief Represents a texture: a grid of packed 0xRRGGBB texels with
 * (0,0) at the bottom-left.
 */
type Texture struct {
	/** @brief The texture Name. */
	Name string
	/** @brief The texture Generation. Incremented every time the data is reloaded. */
	Generation uint32
	/** @brief The number of channels the source file had. */
	ChannelCount uint8

	width  int
	height int
	pixels []uint32
}

func NewTexture(name string, width, height int) *Texture {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("metadata: invalid texture size %dx%d", width, height))
	}
	return &Texture{
		Name:   name,
		width:  width,
		height: height,
		pixels: make([]uint32, width*height),
	}
}

func (t *Texture) Width() int  { return t.width }
func (t *Texture) Height() int { return t.height }

// Pixel returns the texel at (x, y); coordinates outside the texture
// clamp to the nearest edge.
func (t *Texture) Pixel(x, y int) uint32 {
	x = math.Clamp(x, 0, t.width-1)
	y = math.Clamp(y, 0, t.height-1)
	return t.pixels[x+y*t.width]
}

// Set writes a texel. Writes outside the texture are ignored.
func (t *Texture) Set(x, y int, color uint32) {
	if x < 0 || y < 0 || x >= t.width || y >= t.height {
		return
	}
	t.pixels[x+y*t.width] = color
}

// FlipVertically swaps the rows top to bottom.
func (t *Texture) FlipVertically() {
	for y := 0; y < t.height/2; y++ {
		top := t.pixels[y*t.width : (y+1)*t.width]
		bottom := t.pixels[(t.height-1-y)*t.width : (t.height-y)*t.width]
		for x := range top {
			top[x], bottom[x] = bottom[x], top[x]
		}
	}
}

// FlipHorizontally swaps the columns left to right.
func (t *Texture) FlipHorizontally() {
	for y := 0; y < t.height; y++ {
		row := t.pixels[y*t.width : (y+1)*t.width]
		for i, j := 0, len(row)-1; i < j; i, j = i+1, j-1 {
			row[i], row[j] = row[j], row[i]
		}
	}
}
