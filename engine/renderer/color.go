package renderer

import "github.com/spaghettifunk/tinyrender/engine/math"

// Colors are packed 24-bit RGB values laid out as 0xRRGGBB.
const (
	ColorBlack uint32 = 0x000000
	ColorWhite uint32 = 0xFFFFFF
	ColorRed   uint32 = 0xFF0000
	ColorGreen uint32 = 0x00FF00
	ColorBlue  uint32 = 0x0000FF
)

// PackRGB packs the three channels into a 0xRRGGBB value.
func PackRGB(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// UnpackRGB splits a packed color into its channels.
func UnpackRGB(color uint32) (r, g, b uint8) {
	return uint8(color >> 16), uint8(color >> 8), uint8(color)
}

// ScaleColor multiplies every channel by intensity, clamped to [0, 1].
func ScaleColor(color uint32, intensity float32) uint32 {
	intensity = math.Clamp(intensity, 0, 1)
	r, g, b := UnpackRGB(color)
	return PackRGB(
		uint8(float32(r)*intensity),
		uint8(float32(g)*intensity),
		uint8(float32(b)*intensity),
	)
}

// Gray returns the packed gray level for intensity in [0, 1].
func Gray(intensity float32) uint32 {
	return ScaleColor(ColorWhite, intensity)
}
