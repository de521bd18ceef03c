package loaders

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/tinyrender/engine/core"
	"github.com/spaghettifunk/tinyrender/engine/renderer/metadata"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageLoader decodes any registered image format (png, jpeg, bmp, tiff,
// webp) into *metadata.Texture resources.
type ImageLoader struct{}

func (il *ImageLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	texture, format, err := DecodeImage(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	texture.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if p, ok := params.(*metadata.ImageResourceParams); ok && p.FlipY {
		texture.FlipVertically()
	}
	core.LogDebug("decoded %s image %s (%dx%d)", format, path, texture.Width(), texture.Height())
	return metadata.NewResource(metadata.ResourceTypeImage, texture.Name, path, uint64(info.Size()), texture), nil
}

func (il *ImageLoader) Unload(resource *metadata.Resource) error {
	if resource == nil {
		return fmt.Errorf("unload image: %w", core.ErrUnknownResourceType)
	}
	resource.Data = nil
	return nil
}

/**
 * @brief Decodes an image and converts it to a texture with (0,0) at the
 * bottom-left. Image row 0 is the top, so rows are flipped on the way.
 * @return The texture and the name of the detected format.
 */
func DecodeImage(r io.Reader) (*metadata.Texture, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, "", fmt.Errorf("%w: %v", core.ErrUnsupportedFormat, err)
		}
		return nil, "", fmt.Errorf("%w: %v", core.ErrMalformedTexture, err)
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, format, fmt.Errorf("%w: empty %s image", core.ErrMalformedTexture, format)
	}
	texture := metadata.NewTexture("", bounds.Dx(), bounds.Dy())
	texture.ChannelCount = 4
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := bounds.Max.Y - 1 - y
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			texture.Set(x-bounds.Min.X, row, (r>>8)<<16|(g>>8)<<8|b>>8)
		}
	}
	return texture, format, nil
}
