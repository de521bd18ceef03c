package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/tinyrender/engine/core"
	"github.com/spaghettifunk/tinyrender/engine/renderer/metadata"
)

const tgaHeaderSize = 18

// TGA image type codes.
const (
	tgaTrueColor    uint8 = 2
	tgaGrayscale    uint8 = 3
	tgaRLETrueColor uint8 = 10
	tgaRLEGrayscale uint8 = 11
)

// Image descriptor bits.
const (
	tgaRightToLeft uint8 = 0x10
	tgaTopToBottom uint8 = 0x20
)

type tgaHeader struct {
	IDLength        uint8
	ColorMapType    uint8
	ImageType       uint8
	ColorMapOrigin  uint16
	ColorMapLength  uint16
	ColorMapDepth   uint8
	XOrigin         uint16
	YOrigin         uint16
	Width           uint16
	Height          uint16
	BitsPerPixel    uint8
	ImageDescriptor uint8
}

// TextureLoader reads Truevision TGA files into *metadata.Texture resources.
type TextureLoader struct{}

func (tl *TextureLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	texture, err := DecodeTGA(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	texture.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if p, ok := params.(*metadata.ImageResourceParams); ok && p.FlipY {
		texture.FlipVertically()
	}
	return metadata.NewResource(metadata.ResourceTypeTexture, texture.Name, path, uint64(info.Size()), texture), nil
}

func (tl *TextureLoader) Unload(resource *metadata.Resource) error {
	if resource == nil {
		return fmt.Errorf("unload texture: %w", core.ErrUnknownResourceType)
	}
	resource.Data = nil
	return nil
}

/**
 * @brief Decodes an 8, 24 or 32 bit TGA image, raw or run-length encoded.
 * The returned texture has (0,0) at the bottom-left, whatever the origin
 * stored in the file. Alpha is dropped.
 */
func DecodeTGA(r io.Reader) (*metadata.Texture, error) {
	br := bufio.NewReader(r)

	var header tgaHeader
	if err := binary.Read(br, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", core.ErrMalformedTexture, err)
	}
	if header.ColorMapType != 0 {
		return nil, fmt.Errorf("%w: color-mapped tga", core.ErrUnsupportedFormat)
	}
	if header.Width == 0 || header.Height == 0 {
		return nil, fmt.Errorf("%w: empty image %dx%d", core.ErrMalformedTexture, header.Width, header.Height)
	}

	bytesPerPixel := int(header.BitsPerPixel >> 3)
	switch bytesPerPixel {
	case 1, 3, 4:
	default:
		return nil, fmt.Errorf("%w: %d bits per pixel", core.ErrUnsupportedFormat, header.BitsPerPixel)
	}

	if _, err := br.Discard(int(header.IDLength)); err != nil {
		return nil, fmt.Errorf("%w: reading image id: %v", core.ErrMalformedTexture, err)
	}

	width, height := int(header.Width), int(header.Height)
	data := make([]byte, width*height*bytesPerPixel)
	switch header.ImageType {
	case tgaTrueColor, tgaGrayscale:
		if _, err := io.ReadFull(br, data); err != nil {
			return nil, fmt.Errorf("%w: reading pixels: %v", core.ErrMalformedTexture, err)
		}
	case tgaRLETrueColor, tgaRLEGrayscale:
		if err := readRLE(br, data, bytesPerPixel); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: tga image type %d", core.ErrUnsupportedFormat, header.ImageType)
	}

	texture := metadata.NewTexture("", width, height)
	texture.ChannelCount = uint8(bytesPerPixel)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			px := data[(x+y*width)*bytesPerPixel:]
			var color uint32
			if bytesPerPixel == 1 {
				i := uint32(px[0])
				color = i<<16 | i<<8 | i
			} else {
				// Stored as BGR(A).
				color = uint32(px[2])<<16 | uint32(px[1])<<8 | uint32(px[0])
			}
			texture.Set(x, y, color)
		}
	}

	if header.ImageDescriptor&tgaTopToBottom != 0 {
		texture.FlipVertically()
	}
	if header.ImageDescriptor&tgaRightToLeft != 0 {
		texture.FlipHorizontally()
	}
	return texture, nil
}

// readRLE expands run-length packets until data is full.
func readRLE(br *bufio.Reader, data []byte, bytesPerPixel int) error {
	pixel := make([]byte, bytesPerPixel)
	pos := 0
	for pos < len(data) {
		chunk, err := br.ReadByte()
		if err != nil {
			return fmt.Errorf("%w: reading rle packet: %v", core.ErrMalformedTexture, err)
		}
		count := int(chunk&0x7F) + 1
		if pos+count*bytesPerPixel > len(data) {
			return fmt.Errorf("%w: rle packet overflows image", core.ErrMalformedTexture)
		}
		if chunk < 128 {
			// Raw packet: count literal pixels.
			if _, err := io.ReadFull(br, data[pos:pos+count*bytesPerPixel]); err != nil {
				return fmt.Errorf("%w: reading rle pixels: %v", core.ErrMalformedTexture, err)
			}
			pos += count * bytesPerPixel
			continue
		}
		// Run packet: one pixel repeated count times.
		if _, err := io.ReadFull(br, pixel); err != nil {
			return fmt.Errorf("%w: reading rle pixel: %v", core.ErrMalformedTexture, err)
		}
		for i := 0; i < count; i++ {
			pos += copy(data[pos:], pixel)
		}
	}
	return nil
}

/**
 * @brief Writes pixels as an uncompressed 24-bit TGA with bottom-left
 * origin. pixels are packed 0xRRGGBB, row-major, row 0 at the bottom.
 */
func EncodeTGA(w io.Writer, width, height int, pixels []uint32) error {
	if width <= 0 || height <= 0 || width > 0xFFFF || height > 0xFFFF || len(pixels) != width*height {
		return fmt.Errorf("%w: cannot encode %dx%d image from %d pixels", core.ErrUnsupportedFormat, width, height, len(pixels))
	}
	bw := bufio.NewWriter(w)
	header := tgaHeader{
		ImageType:    tgaTrueColor,
		Width:        uint16(width),
		Height:       uint16(height),
		BitsPerPixel: 24,
	}
	if err := binary.Write(bw, binary.LittleEndian, &header); err != nil {
		return err
	}
	for _, c := range pixels {
		if _, err := bw.Write([]byte{byte(c), byte(c >> 8), byte(c >> 16)}); err != nil {
			return err
		}
	}
	return bw.Flush()
}
